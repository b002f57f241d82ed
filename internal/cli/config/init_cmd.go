package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tellydone/tellydone/internal/config"
	apperrors "github.com/tellydone/tellydone/internal/errors"
)

// isInteractive reports whether prompts can be shown on r. Overridden in tests.
var isInteractive = func(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file interactively",
		Long: `Create a configuration file by answering a few questions: notification
URLs, continuous mode, the progress interval and whether to show full
process names.

Without a terminal, --force writes the default configuration instead.`,
		Example: `  tellydone config init
  tellydone config init --path /etc/telly_done --force`,
		Args: cobra.NoArgs,
		RunE: runInit,
	}
	cmd.Flags().String("path", "", "Where to write the file (default ~/.telly_done)")
	cmd.Flags().BoolP("force", "f", false, "Overwrite an existing file without asking")
	return cmd
}

func runInit(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("path")
	force, _ := cmd.Flags().GetBool("force")
	out := cmd.OutOrStdout()

	if path == "" {
		p, err := config.UserConfigPath()
		if err != nil {
			return apperrors.NewConfigError(err.Error(), "Pass --path to choose where to write the file")
		}
		path = p
	} else {
		path = config.ExpandHomePath(path)
	}

	in := cmd.InOrStdin()
	if !isInteractive(in) {
		if !force {
			return apperrors.NonInteractive("config init")
		}
		return writeConfig(out, path, config.Default())
	}

	prompter := config.NewPrompter(in, out)
	fmt.Fprintln(out, "Welcome to tellydone configuration setup!")
	fmt.Fprintf(out, "Creating configuration file at: %s\n", path)

	if _, err := os.Stat(path); err == nil && !force {
		overwrite, err := prompter.Confirm(fmt.Sprintf("Configuration file already exists at %s. Overwrite?", path), false)
		if err != nil {
			return apperrors.Wrap(err, apperrors.Runtime)
		}
		if !overwrite {
			fmt.Fprintln(out, config.ErrAborted.Error())
			return nil
		}
	}

	cfg, err := prompter.PromptConfiguration()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.NonInteractive("config init")
		}
		return apperrors.Wrap(err, apperrors.Runtime)
	}
	return writeConfig(out, path, cfg)
}

func writeConfig(out io.Writer, path string, cfg *config.Configuration) error {
	if err := config.WriteFile(path, cfg); err != nil {
		return apperrors.NewConfigError(err.Error(), "Check that the directory is writable", "Pass --path to write somewhere else")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return apperrors.NewConfigError(err.Error())
	}

	fmt.Fprintf(out, "\n✓ Configuration file created successfully at: %s\n", path)
	fmt.Fprintln(out, "\nGenerated configuration:")
	fmt.Fprintln(out, "----------------------------------------")
	fmt.Fprint(out, string(data))
	return nil
}
