package core

import "fmt"

// Logger is the logging interface used across the renderer
type Logger interface {
	Printf(format string, args ...interface{})
}

// DefaultLogger writes to stdout
type DefaultLogger struct{}

// NewDefaultLogger creates a logger that prints to stdout
func NewDefaultLogger() *DefaultLogger {
	return &DefaultLogger{}
}

// Printf prints a formatted message to stdout
func (l *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NopLogger discards everything
type NopLogger struct{}

// Printf does nothing
func (NopLogger) Printf(format string, args ...interface{}) {}
