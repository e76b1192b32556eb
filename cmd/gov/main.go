package main

import (
	"fmt"
	"os"
)

func main() {
	clCmd.AddCommand(accountCmd)
	clCmd.AddCommand(initCmd)
	clCmd.AddCommand(versionCmd)
	clCmd.AddCommand(createPollCmd)
	clCmd.AddCommand(voteCmd)
	clCmd.AddCommand(endPollCmd)
	clCmd.AddCommand(executePollCmd)
	clCmd.AddCommand(updateConfigCmd)
	clCmd.AddCommand(stakeCmd)
	clCmd.AddCommand(unstakeCmd)
	clCmd.AddCommand(pollCmd)
	clCmd.AddCommand(signCmd)
	clCmd.AddCommand(pubkeyCmd)
	if err := clCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
