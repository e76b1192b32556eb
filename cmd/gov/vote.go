package main

import (
	"fmt"

	"github.com/ezaanm/anchor-token-contracts/tx"
	"github.com/ezaanm/anchor-token-contracts/types"
	"github.com/spf13/cobra"
)

type voteArguments struct {
	Url    string
	Index  uint64
	Nonce  uint64
	Skey   string
	Poll   uint64
	Option string
	NoSend bool
}

var voteArgs voteArguments

var voteCmd = &cobra.Command{
	Use:   "vote",
	Short: "Cast a vote on an in-progress poll",
	Long:  ``,
	Run:   voteRun,
}

func init() {
	urlFlag(voteCmd, &voteArgs.Url)
	voteCmd.Flags().Uint64VarP(&voteArgs.Index, "index", "i", 0, "account index")
	voteCmd.Flags().Uint64VarP(&voteArgs.Nonce, "nonce", "n", 0, "account nonce")
	voteCmd.Flags().StringVarP(&voteArgs.Skey, "skeyPath", "s", "./config/priv_validator_key.json", "private key path")
	voteCmd.Flags().Uint64VarP(&voteArgs.Poll, "poll", "p", 0, "poll id")
	voteCmd.Flags().StringVarP(&voteArgs.Option, "option", "o", "", "yes, no or abstain")
	voteCmd.Flags().BoolVarP(&voteArgs.NoSend, "nosend", "", false, "not send transaction but print signature")
}

func voteRun(cmd *cobra.Command, args []string) {
	var option types.VoteOption
	switch voteArgs.Option {
	case "yes":
		option = types.VoteOptionYes
	case "no":
		option = types.VoteOptionNo
	case "abstain":
		option = types.VoteOptionAbstain
	default:
		fmt.Printf("invalid option:%v\n", voteArgs.Option)
		return
	}
	btx := &tx.GovTx{
		Version: tx.GovTxVersion1,
		Type:    tx.GovTxTypeCastVote,
		Nonce:   voteArgs.Nonce,
		Sender:  voteArgs.Index,
		Tx: &tx.CastVoteTx{
			Poll:   voteArgs.Poll,
			Option: option,
		},
	}
	signAndSend(voteArgs.Url, btx, voteArgs.Skey, voteArgs.NoSend)
}
