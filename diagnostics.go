package kmap

import (
	"errors"

	"github.com/charmbracelet/log"
)

// Diagnostic describes a non-fatal problem observed while configuring a
// widget. Diagnostics never interrupt the caller.
type Diagnostic struct {
	Component string
	Operation string
	Property  string
	Err       error
}

// DiagnosticLogger records diagnostics.
type DiagnosticLogger interface {
	LogDiagnostic(Diagnostic)
}

// DiagnosticLoggerFunc adapts a function to DiagnosticLogger.
type DiagnosticLoggerFunc func(Diagnostic)

// LogDiagnostic implements DiagnosticLogger.
func (f DiagnosticLoggerFunc) LogDiagnostic(d Diagnostic) {
	if f != nil {
		f(d)
	}
}

type noopDiagnosticLogger struct{}

func (noopDiagnosticLogger) LogDiagnostic(Diagnostic) {}

// CharmLogger reports diagnostics as warn-level structured log lines.
func CharmLogger(logger *log.Logger) DiagnosticLogger {
	if logger == nil {
		return noopDiagnosticLogger{}
	}
	return DiagnosticLoggerFunc(func(d Diagnostic) {
		keyvals := []any{"component", d.Component, "op", d.Operation}
		if d.Property != "" {
			keyvals = append(keyvals, "property", d.Property)
		}
		if d.Err != nil {
			keyvals = append(keyvals, "err", d.Err)
		}
		logger.Warn(diagnosticMessage(d), keyvals...)
	})
}

func diagnosticMessage(d Diagnostic) string {
	switch {
	case errors.Is(d.Err, ErrUndefinedProperty):
		return "undefined property"
	default:
		return "diagnostic"
	}
}

func diagnosticFrom(err *PropertyError) Diagnostic {
	return Diagnostic{
		Component: err.Component,
		Operation: err.Operation,
		Property:  err.Property,
		Err:       err,
	}
}
