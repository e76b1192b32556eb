package main

import (
	"github.com/ezaanm/anchor-token-contracts/tx"
	"github.com/spf13/cobra"
)

type updateConfigArguments struct {
	Url    string
	Index  uint64
	Nonce  uint64
	Skey   string
	NoSend bool

	Owner          string
	Quorum         uint64
	Threshold      uint64
	VotingPeriod   uint64
	TimelockPeriod uint64
	MinDeposit     uint64
}

var updateConfigArgs updateConfigArguments

var updateConfigCmd = &cobra.Command{
	Use:   "update-config",
	Short: "Update governance parameters (owner only)",
	Long:  `Zero-valued flags are left unchanged.`,
	Run:   updateConfigRun,
}

func init() {
	urlFlag(updateConfigCmd, &updateConfigArgs.Url)
	updateConfigCmd.Flags().Uint64VarP(&updateConfigArgs.Index, "index", "i", 0, "account index")
	updateConfigCmd.Flags().Uint64VarP(&updateConfigArgs.Nonce, "nonce", "n", 0, "account nonce")
	updateConfigCmd.Flags().StringVarP(&updateConfigArgs.Skey, "skeyPath", "s", "./config/priv_validator_key.json", "private key path")
	updateConfigCmd.Flags().StringVarP(&updateConfigArgs.Owner, "owner", "", "", "new owner address")
	updateConfigCmd.Flags().Uint64VarP(&updateConfigArgs.Quorum, "quorum", "", 0, "quorum in basis points")
	updateConfigCmd.Flags().Uint64VarP(&updateConfigArgs.Threshold, "threshold", "", 0, "threshold in basis points")
	updateConfigCmd.Flags().Uint64VarP(&updateConfigArgs.VotingPeriod, "voting-period", "", 0, "voting period in blocks")
	updateConfigCmd.Flags().Uint64VarP(&updateConfigArgs.TimelockPeriod, "timelock-period", "", 0, "timelock period in blocks")
	updateConfigCmd.Flags().Uint64VarP(&updateConfigArgs.MinDeposit, "min-deposit", "", 0, "minimum poll deposit")
	updateConfigCmd.Flags().BoolVarP(&updateConfigArgs.NoSend, "nosend", "", false, "not send transaction but print signature")
}

func updateConfigRun(cmd *cobra.Command, args []string) {
	utx := &tx.UpdateConfigTx{}
	if updateConfigArgs.Owner != "" {
		utx.Owner = &updateConfigArgs.Owner
	}
	if updateConfigArgs.Quorum != 0 {
		utx.Quorum = &updateConfigArgs.Quorum
	}
	if updateConfigArgs.Threshold != 0 {
		utx.Threshold = &updateConfigArgs.Threshold
	}
	if updateConfigArgs.VotingPeriod != 0 {
		utx.VotingPeriod = &updateConfigArgs.VotingPeriod
	}
	if updateConfigArgs.TimelockPeriod != 0 {
		utx.TimelockPeriod = &updateConfigArgs.TimelockPeriod
	}
	if updateConfigArgs.MinDeposit != 0 {
		utx.MinDeposit = &updateConfigArgs.MinDeposit
	}
	btx := &tx.GovTx{
		Version: tx.GovTxVersion1,
		Type:    tx.GovTxTypeUpdateConfig,
		Nonce:   updateConfigArgs.Nonce,
		Sender:  updateConfigArgs.Index,
		Tx:      utx,
	}
	signAndSend(updateConfigArgs.Url, btx, updateConfigArgs.Skey, updateConfigArgs.NoSend)
}
