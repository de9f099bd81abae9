// Package alog is the pipeline's structured logging wrapper. Every package
// under this module logs through here rather than calling charmbracelet/log
// directly, so the output format (prefix, level, timestamps) stays
// consistent across the core, the hardware backends, and the CLI.
package alog

import (
	"os"

	"github.com/charmbracelet/log"
)

// Logger is the shape every package in this module logs through.
type Logger = log.Logger

var base = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	TimeFormat:      "15:04:05.000",
})

// For returns a logger prefixed with component, e.g. alog.For("manager").
func For(component string) *Logger {
	return base.WithPrefix(component)
}

// SetLevel adjusts the minimum level logged across every component logger
// created through For (they all share the underlying charmbracelet/log
// instance's level).
func SetLevel(level log.Level) {
	base.SetLevel(level)
}
