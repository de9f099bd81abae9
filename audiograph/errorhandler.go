package audiograph

import (
	"github.com/shaban/audiograph/graph"
	"github.com/shaban/audiograph/internal/alog"
)

// ErrorHandler is the pluggable sink for errors that have no caller to
// return to: a node's Run returning non-nil, or a hardware callback
// failing. Adapted from the teacher's ErrorHandler/DefaultErrorHandler
// pattern, generalized to the node/hardware error sources this pipeline
// actually has instead of channel/engine errors. Two implementations are
// provided: log-and-continue (LoggingErrorHandler) and panic
// (PanicErrorHandler); there is no log-and-escalate handler.
type ErrorHandler interface {
	HandleNodeError(node *graph.Node, err error)
	HandleHardwareError(source string, err error)
}

// LoggingErrorHandler logs every error through alog and otherwise lets the
// pipeline keep running — a failing node is skipped this round, not fatal.
type LoggingErrorHandler struct {
	log *alog.Logger
}

// NewLoggingErrorHandler returns the default ErrorHandler used by New when
// none is supplied.
func NewLoggingErrorHandler() *LoggingErrorHandler {
	return &LoggingErrorHandler{log: alog.For("errors")}
}

func (h *LoggingErrorHandler) HandleNodeError(node *graph.Node, err error) {
	name := "<node>"
	if node != nil && node.Descriptor != nil {
		name = node.Descriptor.Name
	}
	h.log.Error("node run failed", "node", name, "err", err)
}

func (h *LoggingErrorHandler) HandleHardwareError(source string, err error) {
	h.log.Error("hardware callback failed", "source", source, "err", err)
}

// PanicErrorHandler escalates every error to a panic. Useful in tests that
// must fail loudly on the first node error instead of silently skipping a
// round.
type PanicErrorHandler struct{}

func (PanicErrorHandler) HandleNodeError(node *graph.Node, err error) {
	panic(err)
}

func (PanicErrorHandler) HandleHardwareError(source string, err error) {
	panic(err)
}
