package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ezaanm/anchor-token-contracts/tx"
	"github.com/ezaanm/anchor-token-contracts/types"
	"github.com/cometbft/cometbft/rpc/client/http"
	"github.com/spf13/cobra"
)

type createPollArguments struct {
	Url         string
	Index       uint64
	Nonce       uint64
	Skey        string
	Title       string
	Description string
	Link        string
	Deposit     uint64
	Msgs        string
	NoSend      bool
}

var createPollArgs createPollArguments

var createPollCmd = &cobra.Command{
	Use:   "create-poll",
	Short: "Submit a new governance poll",
	Long:  ``,
	Run:   createPollRun,
}

func init() {
	urlFlag(createPollCmd, &createPollArgs.Url)
	createPollCmd.Flags().Uint64VarP(&createPollArgs.Index, "index", "i", 0, "account index")
	createPollCmd.Flags().Uint64VarP(&createPollArgs.Nonce, "nonce", "n", 0, "account nonce")
	createPollCmd.Flags().StringVarP(&createPollArgs.Skey, "skeyPath", "s", "./config/priv_validator_key.json", "private key path")
	createPollCmd.Flags().StringVarP(&createPollArgs.Title, "title", "t", "", "poll title")
	createPollCmd.Flags().StringVarP(&createPollArgs.Description, "description", "", "", "poll description")
	createPollCmd.Flags().StringVarP(&createPollArgs.Link, "link", "l", "", "poll link")
	createPollCmd.Flags().Uint64VarP(&createPollArgs.Deposit, "deposit", "", 0, "poll deposit")
	createPollCmd.Flags().StringVarP(&createPollArgs.Msgs, "msgs", "m", "", "execute msgs json array")
	createPollCmd.Flags().BoolVarP(&createPollArgs.NoSend, "nosend", "", false, "not send transaction but print signature")
}

func createPollRun(cmd *cobra.Command, args []string) {
	var msgs []types.ExecuteMsg
	if createPollArgs.Msgs != "" {
		if err := json.Unmarshal([]byte(createPollArgs.Msgs), &msgs); err != nil {
			fmt.Printf("invalid execute msgs:%v\n", err)
			return
		}
	}
	btx := &tx.GovTx{
		Version: tx.GovTxVersion1,
		Type:    tx.GovTxTypeCreatePoll,
		Nonce:   createPollArgs.Nonce,
		Sender:  createPollArgs.Index,
		Tx: &tx.CreatePollTx{
			Title:       createPollArgs.Title,
			Description: createPollArgs.Description,
			Link:        createPollArgs.Link,
			Deposit:     createPollArgs.Deposit,
			ExecuteMsgs: msgs,
		},
	}
	signAndSend(createPollArgs.Url, btx, createPollArgs.Skey, createPollArgs.NoSend)
}

type pollArguments struct {
	Url        string
	Poll       uint64
	Status     uint64
	StartAfter uint64
	Limit      int
	Desc       bool
}

var pollArgs pollArguments

var pollCmd = &cobra.Command{
	Use:   "poll",
	Short: "Query a poll, or list polls",
	Long:  ``,
	Run:   pollRun,
}

func init() {
	urlFlag(pollCmd, &pollArgs.Url)
	pollCmd.Flags().Uint64VarP(&pollArgs.Poll, "poll", "p", 0, "poll id")
	pollCmd.Flags().Uint64VarP(&pollArgs.Status, "status", "", 0, "status filter")
	pollCmd.Flags().Uint64VarP(&pollArgs.StartAfter, "start-after", "", 0, "exclusive id cursor")
	pollCmd.Flags().IntVarP(&pollArgs.Limit, "limit", "", 0, "page limit")
	pollCmd.Flags().BoolVarP(&pollArgs.Desc, "desc", "", false, "descending order")
}

func pollRun(cmd *cobra.Command, args []string) {
	cli, err := http.New(pollArgs.Url, "/websocket")
	if err != nil {
		fmt.Printf("new client err:%v\n", err)
		return
	}
	q := struct {
		Poll       uint64 `json:"poll,omitempty"`
		Status     uint64 `json:"status,omitempty"`
		StartAfter uint64 `json:"start_after,omitempty"`
		Limit      int    `json:"limit,omitempty"`
		Desc       bool   `json:"desc,omitempty"`
	}{pollArgs.Poll, pollArgs.Status, pollArgs.StartAfter, pollArgs.Limit, pollArgs.Desc}
	dat, _ := json.Marshal(q)
	res, err := cli.ABCIQuery(context.Background(), "/polls/", dat)
	if err != nil {
		fmt.Printf("request err:%v\n", err)
		return
	}
	if res.Response.Code != 0 {
		fmt.Printf("%v\n", res.Response.Log)
		return
	}
	fmt.Println(string(res.Response.Value))
}
