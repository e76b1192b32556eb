package main

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/ezaanm/anchor-token-contracts/crypto"
	"github.com/ezaanm/anchor-token-contracts/tx"
	"github.com/cometbft/cometbft/rpc/client/http"
	"github.com/spf13/cobra"
)

func urlFlag(cmd *cobra.Command, url *string) {
	cmd.Flags().StringVarP(url, "url", "u", "http://127.0.0.1:26657", "gov-cl service url")
}

// signAndSend fills in chain id and nonce, signs the envelope with the
// key at skeyPath and broadcasts it. With noSend only the signature is
// printed.
func signAndSend(url string, btx *tx.GovTx, skeyPath string, noSend bool) {
	cli, err := http.New(url, "/websocket")
	if err != nil {
		fmt.Printf("new client err:%v\n", err)
		return
	}
	ctx := context.Background()
	gres, err := cli.Genesis(ctx)
	if err != nil {
		fmt.Printf("get chain genesis err:%v\n", err)
		return
	}
	chainId := gres.Genesis.ChainID
	if btx.Nonce == 0 {
		act, err := queryAccount(url, btx.Sender, "")
		if err != nil {
			return
		}
		btx.Nonce = act.Nonce
	}
	dat, err := btx.SigData([]byte(chainId))
	if err != nil {
		fmt.Printf("tx sign data err:%v\n", err)
		return
	}
	pv, err := crypto.LoadFilePV(skeyPath)
	if err != nil {
		fmt.Printf("load key err:%v\n", err)
		return
	}
	sig, err := pv.Sign(dat)
	if err != nil {
		fmt.Printf("sign tx err:%v\n", err)
		return
	}
	println("pubkey:", hex.EncodeToString(pv.PublicKey()))
	println("address:", pv.Address())
	sigs := [][]byte{sig}
	if noSend {
		fmt.Println("transaction signatures:")
		for _, sig := range sigs {
			fmt.Println(hex.EncodeToString(sig))
		}
		return
	}
	btx.Sig = sigs
	dat, err = tx.MarshalGovTx(btx)
	if err != nil {
		fmt.Printf("encode tx err:%v\n", err)
		return
	}
	res, err := cli.BroadcastTxSync(ctx, dat)
	if err != nil {
		fmt.Printf("broadcast tx err:%v\n", err)
		return
	}
	dat, _ = json.Marshal(res)
	fmt.Printf("%v\n", string(dat))
}
