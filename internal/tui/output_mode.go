package tui

import (
	"io"
	"os"

	"golang.org/x/term"
)

// OutputMode decides how a command renders.
type OutputMode int

const (
	// OutputModePlain is for pipes and redirected output.
	OutputModePlain OutputMode = iota
	// OutputModeInteractive runs the Bubble Tea views.
	OutputModeInteractive
)

func (m OutputMode) String() string {
	if m == OutputModeInteractive {
		return "interactive"
	}
	return "plain"
}

type fileDescriptor interface {
	Fd() uintptr
}

// DetectOutputMode returns OutputModeInteractive when w is a terminal, unless
// forcePlain is set or TERM is "dumb".
func DetectOutputMode(w io.Writer, forcePlain bool) OutputMode {
	if forcePlain || os.Getenv("TERM") == "dumb" {
		return OutputModePlain
	}
	f, ok := w.(fileDescriptor)
	if !ok {
		return OutputModePlain
	}
	if !term.IsTerminal(int(f.Fd())) { //nolint:gosec // fd fits in int on supported platforms.
		return OutputModePlain
	}
	return OutputModeInteractive
}
