// Package cli implements the dragsort command line interface.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dragsort",
		Short: "Dragsort reorders lists in your terminal by dragging rows with the mouse",
		Long: `Dragsort reorders lists in your terminal by dragging rows with the mouse.

Grab a row by its grip, drag it past its siblings and drop it: displaced
rows slide out of the way and the new order is committed when the row
settles into its slot.`,
		SilenceUsage: true,
	}

	// Add subcommands
	rootCmd.AddCommand(newDemoCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newVersionCmd(version, commit, date))

	return rootCmd
}
