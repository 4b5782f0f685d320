// Package diag wires structured operational/diagnostic logging, kept
// deliberately separate from the timeline log in internal/logbuf (see
// that package's doc comment). Grounded on
// _examples/joeycumines-go-utilpkg/logiface-zerolog's use of
// github.com/rs/zerolog, and on the interactive-terminal detection idiom
// in _examples/gmofishsauce-wut4/emul/main.go's setupTerminal (here used
// to choose a human-readable console writer instead of raw JSON).
package diag

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// New returns a zerolog.Logger writing to w. When w is an interactive
// terminal, output is rendered with zerolog's ConsoleWriter; otherwise
// plain JSON lines are emitted, suitable for redirection to a file or
// another process.
func New(w *os.File) zerolog.Logger {
	var out io.Writer = w
	if term.IsTerminal(int(w.Fd())) {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}
	return zerolog.New(out).With().Timestamp().Logger()
}
