package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tellydone/tellydone/internal/cli/shared"
	"github.com/tellydone/tellydone/internal/config"
	"github.com/tellydone/tellydone/internal/health"
	"github.com/tellydone/tellydone/internal/notify"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration and notification setup",
		Long: `Check that the configuration loads, that at least one notification endpoint
is usable, and that this platform supports process probing, process labels
and desktop notifications.`,
		Args:    cobra.NoArgs,
		GroupID: shared.GroupConfiguration,
		RunE:    runDoctor,
	}
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	log := shared.Logger(cmd)
	explicit, _ := cmd.Flags().GetString(shared.ConfigFlagName)
	cfg, err := config.Load(shared.ConfigPaths(log), explicit, log)

	report := health.RunHealthChecks(health.Inputs{
		Config:    cfg,
		ConfigErr: err,
		Sender:    notify.NewSender(),
	})
	fmt.Fprint(cmd.OutOrStdout(), health.FormatReport(report))

	if !report.Passed {
		return shared.NewExitError(shared.ExitFailure)
	}
	return nil
}
