package errors

import (
	"fmt"
	"io"
	"os"
)

// Handler receives errors the host chooses to report rather than handle.
type Handler interface {
	HandleError(err *Error)
}

// LogHandler is a Handler that writes errors to an io.Writer,
// defaulting to stderr.
type LogHandler struct {
	// Out is the destination writer. Nil means os.Stderr.
	Out io.Writer
	// Verbose enables the underlying error in the output.
	Verbose bool
}

// HandleError logs an Error.
func (h *LogHandler) HandleError(err *Error) {
	if err == nil {
		return
	}
	out := h.Out
	if out == nil {
		out = os.Stderr
	}
	if h.Verbose && err.Err != nil {
		fmt.Fprintf(out, "[kestrel error] %s [%s]: %v\n", err.Op, err.Kind, err.Err)
		return
	}
	fmt.Fprintf(out, "[kestrel error] %s [%s]\n", err.Op, err.Kind)
}
