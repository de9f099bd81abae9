package graph

import "errors"

// Code identifies the kind of a graph-level failure, mirroring the error
// taxonomy of the C original (NoMem, InvalidState, InvalidPortDirection,
// IncompatiblePorts, IncompatibleChannelLayouts, IncompatibleSampleRates)
// one-to-one so callers that need the bare enum instead of errors.Is can
// branch on it.
type Code int

const (
	CodeNone Code = iota
	CodeNoMem
	CodeInvalidState
	CodeInvalidPortDirection
	CodeIncompatiblePorts
	CodeIncompatibleChannelLayouts
	CodeIncompatibleSampleRates
	CodeUnimplemented
)

func (c Code) String() string {
	switch c {
	case CodeNoMem:
		return "no_mem"
	case CodeInvalidState:
		return "invalid_state"
	case CodeInvalidPortDirection:
		return "invalid_port_direction"
	case CodeIncompatiblePorts:
		return "incompatible_ports"
	case CodeIncompatibleChannelLayouts:
		return "incompatible_channel_layouts"
	case CodeIncompatibleSampleRates:
		return "incompatible_sample_rates"
	case CodeUnimplemented:
		return "unimplemented"
	default:
		return "none"
	}
}

// Error is a graph-level error carrying a Code alongside the usual message.
type Error struct {
	Code Code
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func newErr(code Code, msg string) error {
	return &Error{Code: code, Msg: msg}
}

// Sentinels for errors.Is comparisons; each wraps a concrete *Error with a
// stable Code so callers can either compare with errors.Is against these or
// type-assert to *Error and read Code directly.
var (
	ErrNoMem                      = newErr(CodeNoMem, "graph: allocation failed")
	ErrInvalidState               = newErr(CodeInvalidState, "graph: invalid state")
	ErrInvalidPortDirection       = newErr(CodeInvalidPortDirection, "graph: invalid port direction")
	ErrIncompatiblePorts          = newErr(CodeIncompatiblePorts, "graph: incompatible ports")
	ErrIncompatibleChannelLayouts = newErr(CodeIncompatibleChannelLayouts, "graph: incompatible channel layouts")
	ErrIncompatibleSampleRates    = newErr(CodeIncompatibleSampleRates, "graph: incompatible sample rates")
	ErrUnimplemented              = newErr(CodeUnimplemented, "graph: unimplemented")
)

// Is lets errors.Is(err, graph.ErrIncompatiblePorts) succeed for any *Error
// sharing the same Code, not just the exact sentinel instance.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}
