package errors

import (
	"fmt"
	"strings"
)

// InvalidPID returns an error for a pid argument that is not a positive integer.
func InvalidPID(arg string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("invalid process id %q", arg),
		"tellydone watch <pid>",
		"Pass the numeric id of a running process",
		"Find it with: pgrep -f <name>",
	)
}

// MissingCommand returns an error for exec without a command to run.
func MissingCommand() *CLIError {
	return NewArgumentErrorWithUsage(
		"no command given",
		"tellydone exec -- <command> [args...]",
		"Put the command after -- so its flags are not parsed by tellydone",
	)
}

// InvalidInterval returns an error for a watch interval flag that is not positive.
func InvalidInterval(value string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("invalid interval %q: must be a positive duration", value),
		"tellydone watch <pid> --interval 30m",
		"Use a Go duration like 90s or 30m, or a number of seconds",
	)
}

// InvalidConfig wraps a config load or validation failure.
func InvalidConfig(err error) *CLIError {
	return wrapWithMessage(err, Configuration, "invalid configuration",
		"Check the file for syntax errors and out of range values",
		"Run 'tellydone config show' to see the resolved configuration",
		"Run 'tellydone config init' to write a fresh configuration",
	)
}

// ConfigExists returns an error when config init would overwrite a file.
func ConfigExists(path string) *CLIError {
	return NewConfigError(
		fmt.Sprintf("configuration file already exists: %s", path),
		"Use --force to overwrite it",
	)
}

// NonInteractive returns an error when prompts cannot be shown.
func NonInteractive(command string) *CLIError {
	return newPrerequisiteError(
		fmt.Sprintf("%s needs an interactive terminal", command),
		"Run it from a terminal",
		"Or pass --force to write the default configuration",
	)
}

// SpawnFailed returns an error for a command that could not be started.
func SpawnFailed(argv []string, err error) *CLIError {
	cmd := strings.Join(argv, " ")
	return wrapWithMessage(err, Runtime, fmt.Sprintf("failed to start %q", cmd),
		"Check that the command exists and is executable",
		"Check your PATH",
	)
}

// NoEndpoints returns an error when no notification endpoint is configured.
func NoEndpoints(source string) *CLIError {
	where := "the configuration"
	if source != "" {
		where = source
	}
	return newPrerequisiteError(
		fmt.Sprintf("no usable notification endpoints in %s", where),
		"Add addresses under apprise_url, e.g. desktop:// or tgram://token/chat_id",
		"Or set TELLYDONE_APPRISE_URL",
		"Run 'tellydone config init' to create a configuration interactively",
	)
}

// DeliveryFailed returns an error when no endpoint accepted a notification.
func DeliveryFailed(err error) *CLIError {
	return wrapWithMessage(err, Runtime, "notification was not delivered",
		"Run with --debug to see each delivery attempt",
		"Check the endpoint addresses and network access",
	)
}
