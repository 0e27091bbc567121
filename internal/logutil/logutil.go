// Package logutil wraps github.com/charmbracelet/log behind a small
// interface so the dynamic network and the sequencer can accept a
// logger without pulling every caller into charmbracelet's
// concrete type. The static fundsp layer never imports this package:
// logging inside process/tick would itself be a real-time-safety
// violation.
package logutil

import (
	"os"

	"github.com/charmbracelet/log"
)

// Logger is the minimal structured-logging surface the dynamic
// network (C5) and sequencer (C6) log diagnostics through.
type Logger interface {
	Debug(msg interface{}, kv ...interface{})
	Info(msg interface{}, kv ...interface{})
	Warn(msg interface{}, kv ...interface{})
	Error(msg interface{}, kv ...interface{})
}

// nopLogger silences everything; used whenever a nil Logger is passed
// to a constructor.
type nopLogger struct{}

func (nopLogger) Debug(interface{}, ...interface{}) {}
func (nopLogger) Info(interface{}, ...interface{})  {}
func (nopLogger) Warn(interface{}, ...interface{})  {}
func (nopLogger) Error(interface{}, ...interface{}) {}

// Nop is the silent Logger.
var Nop Logger = nopLogger{}

// Or returns l if non-nil, else Nop — the pattern every constructor
// that accepts an optional Logger uses.
func Or(l Logger) Logger {
	if l == nil {
		return Nop
	}
	return l
}

// New builds a Logger backed by charmbracelet/log, writing to w with
// the given name prefix (e.g. "dynamic", "sequencer").
func New(w *os.File, name string) Logger {
	l := log.NewWithOptions(w, log.Options{Prefix: name})
	return charmLogger{l}
}

type charmLogger struct {
	l *log.Logger
}

func (c charmLogger) Debug(msg interface{}, kv ...interface{}) { c.l.Debug(msg, kv...) }
func (c charmLogger) Info(msg interface{}, kv ...interface{})  { c.l.Info(msg, kv...) }
func (c charmLogger) Warn(msg interface{}, kv ...interface{})  { c.l.Warn(msg, kv...) }
func (c charmLogger) Error(msg interface{}, kv ...interface{}) { c.l.Error(msg, kv...) }
