// Package logging builds the console logger shared by every command.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

func init() {
	zerolog.ErrorFieldName = "err"
}

// New returns a console logger writing to w. Info is the default level;
// debug lowers it to debug. Colour is used only when w is a terminal and
// NO_COLOR is unset.
func New(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	cw := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.TimeOnly,
		NoColor:    !colorEnabled(w),
	}
	return zerolog.New(cw).Level(level).With().Timestamp().Logger()
}

func colorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
