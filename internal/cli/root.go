// Package cli implements the sawtctl admin command line tool.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand builds the sawtctl command tree.
func NewRootCommand(version string) *cobra.Command {
	root := &cobra.Command{
		Use:           "sawtctl",
		Short:         "Administrative tool for a sawtlib server",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(
		newCreateAdminCommand(),
		newExportCSVCommand(),
		newSyncCommand(),
	)
	return root
}
