// Package monitor provides the CLI commands that watch processes and send
// notifications: watch, exec, notify.
package monitor

import (
	"github.com/spf13/cobra"
)

// Register adds all monitoring commands to the root command.
// This function is called from the root CLI package during initialization.
func Register(rootCmd *cobra.Command) {
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newExecCmd())
	rootCmd.AddCommand(newNotifyCmd())
}
