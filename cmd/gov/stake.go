package main

import (
	"github.com/ezaanm/anchor-token-contracts/tx"
	"github.com/spf13/cobra"
)

type stakeArguments struct {
	Url    string
	Index  uint64
	Nonce  uint64
	Skey   string
	Amount uint64
	NoSend bool
}

var stakeArgs stakeArguments

var stakeCmd = &cobra.Command{
	Use:   "stake",
	Short: "Bond stake to the sender account",
	Long:  ``,
	Run:   stakeRun,
}

func init() {
	urlFlag(stakeCmd, &stakeArgs.Url)
	stakeCmd.Flags().Uint64VarP(&stakeArgs.Index, "index", "i", 0, "account index")
	stakeCmd.Flags().Uint64VarP(&stakeArgs.Nonce, "nonce", "n", 0, "account nonce")
	stakeCmd.Flags().StringVarP(&stakeArgs.Skey, "skeyPath", "s", "./config/priv_validator_key.json", "private key path")
	stakeCmd.Flags().Uint64VarP(&stakeArgs.Amount, "amount", "a", 0, "stake amount")
	stakeCmd.Flags().BoolVarP(&stakeArgs.NoSend, "nosend", "", false, "not send transaction but print signature")
}

func stakeRun(cmd *cobra.Command, args []string) {
	btx := &tx.GovTx{
		Version: tx.GovTxVersion1,
		Type:    tx.GovTxTypeStake,
		Nonce:   stakeArgs.Nonce,
		Sender:  stakeArgs.Index,
		Tx:      &tx.StakeTx{Amount: stakeArgs.Amount},
	}
	signAndSend(stakeArgs.Url, btx, stakeArgs.Skey, stakeArgs.NoSend)
}

var unstakeArgs stakeArguments

var unstakeCmd = &cobra.Command{
	Use:   "unstake",
	Short: "Release bonded stake not locked by live votes",
	Long:  ``,
	Run:   unstakeRun,
}

func init() {
	urlFlag(unstakeCmd, &unstakeArgs.Url)
	unstakeCmd.Flags().Uint64VarP(&unstakeArgs.Index, "index", "i", 0, "account index")
	unstakeCmd.Flags().Uint64VarP(&unstakeArgs.Nonce, "nonce", "n", 0, "account nonce")
	unstakeCmd.Flags().StringVarP(&unstakeArgs.Skey, "skeyPath", "s", "./config/priv_validator_key.json", "private key path")
	unstakeCmd.Flags().Uint64VarP(&unstakeArgs.Amount, "amount", "a", 0, "unstake amount")
	unstakeCmd.Flags().BoolVarP(&unstakeArgs.NoSend, "nosend", "", false, "not send transaction but print signature")
}

func unstakeRun(cmd *cobra.Command, args []string) {
	btx := &tx.GovTx{
		Version: tx.GovTxVersion1,
		Type:    tx.GovTxTypeUnstake,
		Nonce:   unstakeArgs.Nonce,
		Sender:  unstakeArgs.Index,
		Tx:      &tx.UnstakeTx{Amount: unstakeArgs.Amount},
	}
	signAndSend(unstakeArgs.Url, btx, unstakeArgs.Skey, unstakeArgs.NoSend)
}
