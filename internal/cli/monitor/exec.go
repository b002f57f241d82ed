package monitor

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/tellydone/tellydone/internal/cli/shared"
	apperrors "github.com/tellydone/tellydone/internal/errors"
	"github.com/tellydone/tellydone/internal/lifecycle"
)

func newExecCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec -- <command> [args...]",
		Short: "Run a command and notify when it finishes",
		Long: `Run a command, wait for it, and send one notification with its duration and
exit code. The command's input and output are passed through unchanged and
tellydone exits with the command's exit code.

If the command cannot be started nothing is sent and the exit code is 127.`,
		Example: `  tellydone exec -- make release
  tellydone exec -- python train.py --epochs 30`,
		Args:    cobra.ArbitraryArgs,
		GroupID: shared.GroupMonitoring,
		RunE:    runExec,
	}
	// Everything after the command name belongs to the command
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func runExec(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return apperrors.MissingCommand()
	}

	log := shared.Logger(cmd)
	cfg, err := shared.LoadConfig(cmd, log)
	if err != nil {
		return err
	}
	dispatcher := shared.NewDispatcher(cfg, log)

	spawner := &lifecycle.ExecSpawner{
		Stdin:  cmd.InOrStdin(),
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	}

	// The child decides how to handle Ctrl-C; its exit code is reported.
	restore := shared.IgnoreInterrupts()
	res, err := lifecycle.Execute(cmd.Context(), dispatcher, spawner, args)
	restore()

	if err != nil {
		var spawnErr *lifecycle.SpawnError
		if errors.As(err, &spawnErr) && errors.Is(spawnErr.Err, lifecycle.ErrNoCommand) {
			return apperrors.MissingCommand()
		}
		return shared.WithExitCode(apperrors.SpawnFailed(args, err), shared.ExitSpawnFailed)
	}

	log.Debug().
		Str("command", res.Command).
		Int("exit_code", res.ExitCode).
		Dur("duration", res.Duration).
		Msg("command finished")

	if res.ExitCode != 0 {
		return shared.NewExitError(res.ExitCode)
	}
	return nil
}
