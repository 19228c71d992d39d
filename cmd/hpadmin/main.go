// file: cmd/hpadmin/main.go
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pjkundert/hp-admin-crypto/cmd/hpadmin/cmd"
)

var rootCmd = &cobra.Command{
	Use:   "hpadmin",
	Short: "A CLI for managing and exercising HP admin request signatures.",
	Long: `hpadmin is the operator-side companion to the hpos-admin-auth sidecar.
It generates admin key pairs in the state-document encoding, signs requests
exactly the way the browser-side signer does, and verifies signatures offline
against a state file for debugging a rejected request.`,
	// If a subcommand is not provided, default to showing help.
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	// Add all subcommands from the cmd package
	cmd.AddCommands(rootCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra prints the error, so we just need to exit
		os.Exit(1)
	}
}
