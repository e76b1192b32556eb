package main

import (
	"encoding/base64"
	"encoding/hex"

	"fmt"

	"github.com/ezaanm/anchor-token-contracts/crypto"

	"github.com/spf13/cobra"
)

type signArguments struct {
	Skey string
	Data string
}

var signArgs signArguments

var signCmd = &cobra.Command{
	Use:   "sign",
	Short: "Sign an arbitrary message with the validator key",
	Long:  ``,
	Run:   signRun,
}

func init() {
	signCmd.Flags().StringVarP(&signArgs.Skey, "skeyPath", "s", "./config/priv_validator_key.json", "private key path")
	signCmd.Flags().StringVarP(&signArgs.Data, "data", "d", "", "message to sign")
}

func signRun(cmd *cobra.Command, args []string) {
	dat := []byte(signArgs.Data)
	pv, err := crypto.LoadFilePV(signArgs.Skey)
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
	println("signature base64:", base64.StdEncoding.EncodeToString(sig))
	println("signature:", hex.EncodeToString(sig))
}
