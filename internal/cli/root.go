// Package cli provides Cobra-based CLI commands for tellydone.
// It defines the user-facing commands: process monitoring (watch, exec),
// ad-hoc messages (notify), configuration management (config init, config
// show) and version.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/tellydone/tellydone/internal/cli/config"
	"github.com/tellydone/tellydone/internal/cli/monitor"
	"github.com/tellydone/tellydone/internal/cli/shared"
	apperrors "github.com/tellydone/tellydone/internal/errors"
)

// Command group IDs for organizing help output (re-exported from shared)
const (
	GroupGettingStarted = shared.GroupGettingStarted
	GroupMonitoring     = shared.GroupMonitoring
	GroupConfiguration  = shared.GroupConfiguration
)

var rootCmd = NewRootCmd()

// NewRootCmd builds the tellydone command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tellydone",
		Short: "Get notified when long-running processes finish",
		Long: `tellydone watches processes and tells you when they are done.

Notifications go to every endpoint listed under apprise_url in ~/.telly_done
or /etc/telly_done: Telegram, Discord, Slack, JSON webhooks, email and
desktop notifications.`,
		Example: `  # Write a configuration file
  tellydone config init

  # Notify when an existing process exits
  tellydone watch 4242

  # Run a command and notify with its exit code
  tellydone exec -- make release`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Define command groups in display order
	root.AddGroup(&cobra.Group{ID: GroupGettingStarted, Title: "Getting Started:"})
	root.AddGroup(&cobra.Group{ID: GroupMonitoring, Title: "Monitoring:"})
	root.AddGroup(&cobra.Group{ID: GroupConfiguration, Title: "Configuration:"})

	// Assign built-in help and completion to configuration group
	root.SetHelpCommandGroupID(GroupConfiguration)
	root.SetCompletionCommandGroupID(GroupConfiguration)

	// Global flags
	root.PersistentFlags().StringP(shared.ConfigFlagName, "c", "", "Path to config file (default ~/.telly_done, then /etc/telly_done)")
	root.PersistentFlags().BoolP(shared.DebugFlagName, "d", false, "Enable debug logging")

	// Register commands from subpackages
	monitor.Register(root)
	config.Register(root)
	root.AddCommand(newVersionCmd())
	return root
}

// Execute runs the root command and prints any error it returns.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !shared.IsSilent(err) {
		apperrors.FprintError(rootCmd.ErrOrStderr(), err)
	}
	return err
}
