// Package health runs environment checks for tellydone: configuration,
// notification endpoints, desktop notification tooling and process
// inspection.
package health

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tellydone/tellydone/internal/config"
	"github.com/tellydone/tellydone/internal/notify"
	"github.com/tellydone/tellydone/internal/proc"
)

// CheckResult represents the result of a single health check
type CheckResult struct {
	Name    string
	Passed  bool
	Message string
	// Warning marks a failed check that does not make the report fail
	Warning bool
}

// HealthReport contains all health check results
type HealthReport struct {
	Checks []CheckResult
	Passed bool
}

// Inputs are the resolved values the checks inspect.
type Inputs struct {
	// Config is the loaded configuration, nil when loading failed
	Config *config.Configuration
	// ConfigErr is the error from loading the configuration
	ConfigErr error
	// Sender is the desktop notification sender
	Sender notify.Sender
}

// RunHealthChecks runs all health checks and returns a report
func RunHealthChecks(in Inputs) *HealthReport {
	report := &HealthReport{
		Checks: make([]CheckResult, 0, 5),
		Passed: true,
	}

	add := func(c CheckResult) {
		report.Checks = append(report.Checks, c)
		if !c.Passed && !c.Warning {
			report.Passed = false
		}
	}

	add(CheckConfig(in.Config, in.ConfigErr))
	add(CheckEndpoints(in.Config))
	add(CheckDesktop(in.Sender))
	add(CheckProcessProbe())
	add(CheckLabels())

	return report
}

// CheckConfig reports which config file is used and whether it is valid
func CheckConfig(cfg *config.Configuration, err error) CheckResult {
	if err != nil {
		return CheckResult{
			Name:    "Configuration",
			Passed:  false,
			Message: err.Error(),
		}
	}
	if cfg == nil || cfg.Source == "" {
		return CheckResult{
			Name:    "Configuration",
			Passed:  true,
			Message: "no config file found, using defaults",
		}
	}
	return CheckResult{
		Name:    "Configuration",
		Passed:  true,
		Message: fmt.Sprintf("loaded %s", cfg.Source),
	}
}

// CheckEndpoints counts the usable notification endpoints
func CheckEndpoints(cfg *config.Configuration) CheckResult {
	if cfg == nil {
		return CheckResult{
			Name:    "Endpoints",
			Passed:  false,
			Message: "configuration not loaded",
		}
	}

	endpoints := notify.BuildEndpoints(cfg.AppriseURL, zerolog.Nop())
	if len(endpoints) == 0 {
		return CheckResult{
			Name:    "Endpoints",
			Passed:  false,
			Message: "no usable notification endpoints configured",
		}
	}

	names := make([]string, 0, len(endpoints))
	for _, ep := range endpoints {
		names = append(names, ep.Name())
	}
	msg := fmt.Sprintf("%d usable: %s", len(endpoints), strings.Join(names, ", "))
	if skipped := countConfigured(cfg.AppriseURL) - len(endpoints); skipped > 0 {
		msg += fmt.Sprintf(" (%d invalid skipped)", skipped)
	}
	return CheckResult{
		Name:    "Endpoints",
		Passed:  true,
		Message: msg,
	}
}

// CheckDesktop checks whether desktop notifications can be shown. Failing
// it only matters when desktop:// is configured, so it is a warning.
func CheckDesktop(sender notify.Sender) CheckResult {
	if sender != nil && sender.VisualAvailable() {
		return CheckResult{
			Name:    "Desktop notifications",
			Passed:  true,
			Message: fmt.Sprintf("available on %s", notify.Platform()),
		}
	}
	return CheckResult{
		Name:    "Desktop notifications",
		Passed:  false,
		Warning: true,
		Message: fmt.Sprintf("no notification tool found on %s", notify.Platform()),
	}
}

// CheckProcessProbe checks that liveness probing works on this platform
func CheckProcessProbe() CheckResult {
	status, err := proc.Check(os.Getpid())
	if err != nil || status != proc.StatusAlive {
		msg := fmt.Sprintf("probe of own process returned %s", status)
		if err != nil {
			msg += ": " + err.Error()
		}
		return CheckResult{
			Name:    "Process probe",
			Passed:  false,
			Message: msg,
		}
	}
	return CheckResult{
		Name:    "Process probe",
		Passed:  true,
		Message: "working",
	}
}

// CheckLabels checks that process command lines can be read. Without it
// notifications fall back to "PID <n>", so it is a warning.
func CheckLabels() CheckResult {
	switch runtime.GOOS {
	case "linux":
		if _, err := os.Stat("/proc/self/cmdline"); err != nil {
			return CheckResult{
				Name:    "Process labels",
				Passed:  false,
				Warning: true,
				Message: "/proc is not mounted",
			}
		}
		return CheckResult{Name: "Process labels", Passed: true, Message: "/proc available"}
	case "windows":
		return CheckResult{
			Name:    "Process labels",
			Passed:  false,
			Warning: true,
			Message: "not supported on windows, pids are shown instead",
		}
	default:
		if _, err := exec.LookPath("ps"); err != nil {
			return CheckResult{
				Name:    "Process labels",
				Passed:  false,
				Warning: true,
				Message: "ps not found in PATH",
			}
		}
		return CheckResult{Name: "Process labels", Passed: true, Message: "ps found"}
	}
}

// FormatReport formats the health report for console output
func FormatReport(report *HealthReport) string {
	var b strings.Builder

	for _, check := range report.Checks {
		switch {
		case check.Passed:
			fmt.Fprintf(&b, "✓ %s: %s\n", check.Name, check.Message)
		case check.Warning:
			fmt.Fprintf(&b, "! %s: %s\n", check.Name, check.Message)
		default:
			fmt.Fprintf(&b, "✗ Error: %s: %s\n", check.Name, check.Message)
		}
	}

	return b.String()
}

func countConfigured(addresses []string) int {
	n := 0
	for _, a := range addresses {
		a = strings.TrimSpace(a)
		if a != "" && !strings.HasPrefix(a, "#") {
			n++
		}
	}
	return n
}
