package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "dccverify",
		Short: "Offline green pass verification",
		Long: `Offline green pass verification.

dccverify runs the same rule engine and signature check as the verification
service against local files, which is useful for debugging rule sets and
reproducing verifier decisions.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newValidateCmd())
	return root
}
