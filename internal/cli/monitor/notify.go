package monitor

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tellydone/tellydone/internal/cli/shared"
	apperrors "github.com/tellydone/tellydone/internal/errors"
	"github.com/tellydone/tellydone/internal/notify"
)

func newNotifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notify <title> [body]",
		Short: "Send a message to every configured endpoint",
		Long: `Send a notification to every configured endpoint and report the result of
each delivery. Useful to check endpoint setup. Exits non-zero when no
endpoint accepted the message.`,
		Example: `  tellydone notify "Backup done"
  tellydone notify "Deploy" "Version 1.4 is live" --type success`,
		Args:    cobra.RangeArgs(1, 2),
		GroupID: shared.GroupGettingStarted,
		RunE:    runNotify,
	}
	cmd.Flags().StringP("type", "t", string(notify.TypeInfo), "Notification type: info, success, failure")
	return cmd
}

func runNotify(cmd *cobra.Command, args []string) error {
	kind, err := parseNotificationType(cmd)
	if err != nil {
		return err
	}

	log := shared.Logger(cmd)
	cfg, err := shared.LoadConfig(cmd, log)
	if err != nil {
		return err
	}
	dispatcher := shared.NewDispatcher(cfg, log)
	if dispatcher.Len() == 0 {
		return apperrors.NoEndpoints(cfg.Source)
	}

	body := ""
	if len(args) > 1 {
		body = args[1]
	}
	report := dispatcher.Dispatch(cmd.Context(), notify.NewNotification(args[0], body, kind))

	out := cmd.OutOrStdout()
	for _, o := range report.Outcomes {
		if o.Err != nil {
			fmt.Fprintf(out, "%s %s: %v\n", color.RedString("✗"), o.Endpoint, o.Err)
			continue
		}
		fmt.Fprintf(out, "%s %s\n", color.GreenString("✓"), o.Endpoint)
	}
	fmt.Fprintf(out, "Delivered to %d of %d endpoints\n", report.Delivered(), len(report.Outcomes))

	if report.Delivered() == 0 {
		return apperrors.DeliveryFailed(report.Err())
	}
	return nil
}

func parseNotificationType(cmd *cobra.Command) (notify.NotificationType, error) {
	raw, _ := cmd.Flags().GetString("type")
	switch kind := notify.NotificationType(strings.ToLower(strings.TrimSpace(raw))); kind {
	case notify.TypeInfo, notify.TypeSuccess, notify.TypeFailure:
		return kind, nil
	default:
		return "", apperrors.NewArgumentErrorWithUsage(
			fmt.Sprintf("unknown notification type %q", raw),
			"tellydone notify <title> [body] --type info|success|failure",
		)
	}
}
