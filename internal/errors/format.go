package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	categoryColor    = color.New(color.FgRed, color.Bold)
	usageLabelColor  = color.New(color.FgYellow, color.Bold)
	fixLabelColor    = color.New(color.FgCyan, color.Bold)
	remediationColor = color.New(color.FgCyan)
)

// FprintError writes the formatted error to w. Colors are used only when
// the color package considers the terminal capable.
func FprintError(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprint(w, FormatError(err, !color.NoColor))
}

// FormatError renders err with its category, usage and remediation steps.
// Non-CLIErrors are shown as Runtime errors. Returns an empty string for nil.
func FormatError(err error, colored bool) string {
	if err == nil {
		return ""
	}
	cliErr := AsCLIError(err)
	if cliErr == nil {
		cliErr = &CLIError{Category: Runtime, Message: err.Error()}
	}

	paint := func(c *color.Color, s string) string {
		if !colored {
			return s
		}
		return c.Sprint(s)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", paint(categoryColor, cliErr.Category.String()), cliErr.Message)

	if cliErr.Usage != "" {
		fmt.Fprintf(&b, "\n%s\n  %s\n", paint(usageLabelColor, "Usage:"), cliErr.Usage)
	}

	if len(cliErr.Remediation) > 0 {
		fmt.Fprintf(&b, "\n%s\n", paint(fixLabelColor, "To fix this:"))
		for _, step := range cliErr.Remediation {
			fmt.Fprintf(&b, "  - %s\n", paint(remediationColor, step))
		}
	}
	return b.String()
}
