package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// GitCommit is set at build time via -ldflags.
var GitCommit string

const Version = "0.1.0"

func versionString() string {
	if len(GitCommit) >= 8 {
		return Version + "-" + GitCommit[:8]
	}
	return Version
}

var versionCmd = &cobra.Command{
	Use:     "version",
	Short:   "Print the node version",
	Aliases: []string{"V"},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(versionString())
	},
}
