package config

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tellydone/tellydone/internal/cli/shared"
	"github.com/tellydone/tellydone/internal/notify"
)

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		Long: `Print the configuration after applying defaults, the config file and
TELLYDONE_* environment variables, and list the notification endpoints that
will be used.`,
		Args: cobra.NoArgs,
		RunE: runConfigShow,
	}
	return cmd
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	log := shared.Logger(cmd)
	cfg, err := shared.LoadConfig(cmd, log)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Configuration Sources:")
	if cfg.Source == "" {
		fmt.Fprintln(out, "  file: none (defaults)")
	} else {
		fmt.Fprintf(out, "  file: %s\n", cfg.Source)
	}
	for _, path := range shared.ConfigPaths(log).Candidates {
		fmt.Fprintf(out, "  searched: %s\n", path)
	}
	fmt.Fprintln(out)

	shown := *cfg
	shown.AppriseURL = make([]string, len(cfg.AppriseURL))
	for i, addr := range cfg.AppriseURL {
		if strings.HasPrefix(strings.TrimSpace(addr), "#") {
			shown.AppriseURL[i] = addr
			continue
		}
		shown.AppriseURL[i] = notify.Redact(addr)
	}
	data, err := shown.Marshal()
	if err != nil {
		return err
	}
	fmt.Fprint(out, string(data))

	endpoints := notify.BuildEndpoints(cfg.AppriseURL, log)
	fmt.Fprintf(out, "\nEndpoints (%d usable):\n", len(endpoints))
	for _, ep := range endpoints {
		fmt.Fprintf(out, "  - %s\n", ep.Name())
	}
	return nil
}
