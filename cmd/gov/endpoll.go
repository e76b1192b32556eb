package main

import (
	"github.com/ezaanm/anchor-token-contracts/tx"
	"github.com/spf13/cobra"
)

type endPollArguments struct {
	Url    string
	Index  uint64
	Nonce  uint64
	Skey   string
	Poll   uint64
	NoSend bool
}

var endPollArgs endPollArguments

var endPollCmd = &cobra.Command{
	Use:   "end-poll",
	Short: "Finalize a poll whose voting period has expired",
	Long:  ``,
	Run:   endPollRun,
}

func init() {
	urlFlag(endPollCmd, &endPollArgs.Url)
	endPollCmd.Flags().Uint64VarP(&endPollArgs.Index, "index", "i", 0, "account index")
	endPollCmd.Flags().Uint64VarP(&endPollArgs.Nonce, "nonce", "n", 0, "account nonce")
	endPollCmd.Flags().StringVarP(&endPollArgs.Skey, "skeyPath", "s", "./config/priv_validator_key.json", "private key path")
	endPollCmd.Flags().Uint64VarP(&endPollArgs.Poll, "poll", "p", 0, "poll id")
	endPollCmd.Flags().BoolVarP(&endPollArgs.NoSend, "nosend", "", false, "not send transaction but print signature")
}

func endPollRun(cmd *cobra.Command, args []string) {
	btx := &tx.GovTx{
		Version: tx.GovTxVersion1,
		Type:    tx.GovTxTypeEndPoll,
		Nonce:   endPollArgs.Nonce,
		Sender:  endPollArgs.Index,
		Tx:      &tx.EndPollTx{Poll: endPollArgs.Poll},
	}
	signAndSend(endPollArgs.Url, btx, endPollArgs.Skey, endPollArgs.NoSend)
}

var executePollArgs endPollArguments

var executePollCmd = &cobra.Command{
	Use:   "execute-poll",
	Short: "Execute a passed poll after its timelock",
	Long:  ``,
	Run:   executePollRun,
}

func init() {
	urlFlag(executePollCmd, &executePollArgs.Url)
	executePollCmd.Flags().Uint64VarP(&executePollArgs.Index, "index", "i", 0, "account index")
	executePollCmd.Flags().Uint64VarP(&executePollArgs.Nonce, "nonce", "n", 0, "account nonce")
	executePollCmd.Flags().StringVarP(&executePollArgs.Skey, "skeyPath", "s", "./config/priv_validator_key.json", "private key path")
	executePollCmd.Flags().Uint64VarP(&executePollArgs.Poll, "poll", "p", 0, "poll id")
	executePollCmd.Flags().BoolVarP(&executePollArgs.NoSend, "nosend", "", false, "not send transaction but print signature")
}

func executePollRun(cmd *cobra.Command, args []string) {
	btx := &tx.GovTx{
		Version: tx.GovTxVersion1,
		Type:    tx.GovTxTypeExecutePoll,
		Nonce:   executePollArgs.Nonce,
		Sender:  executePollArgs.Index,
		Tx:      &tx.ExecutePollTx{Poll: executePollArgs.Poll},
	}
	signAndSend(executePollArgs.Url, btx, executePollArgs.Skey, executePollArgs.NoSend)
}
