// Package logger provides the logging interface shared by the colsched
// commands, the screen state machine and the view-model daemon.
package logger

import (
	"fmt"
	"log"
	"sync"
)

// Logger defines the interface for leveled logging across all colsched components.
type Logger interface {
	// Debug logs a diagnostic message (e.g., "schedule fetch #3 discarded").
	// Implementations may drop it unless debug output was requested.
	Debug(format string, args ...interface{})

	// Info logs an informational message (e.g., "loaded 42 groups").
	Info(format string, args ...interface{})

	// Warning logs a warning message (e.g., "default group missing, using first").
	Warning(format string, args ...interface{})

	// Error logs an error message (e.g., "schedule fetch failed: network down").
	Error(format string, args ...interface{})

	// Close releases resources held by the logger. Safe to call multiple times.
	Close() error
}

// StandardLogger wraps the stdlib *log.Logger for console/file output.
type StandardLogger struct {
	logger *log.Logger
	prefix string
	debug  bool
}

// NewStandardLogger creates a logger that wraps the given *log.Logger.
// Debug messages are discarded unless debug is true.
func NewStandardLogger(l *log.Logger, debug bool) *StandardLogger {
	return &StandardLogger{logger: l, debug: debug}
}

// Named returns a logger writing to the same backend whose messages
// carry the component name, e.g. "[INFO] screen: loaded 3 groups".
func (s *StandardLogger) Named(component string) *StandardLogger {
	return &StandardLogger{
		logger: s.logger,
		prefix: s.prefix + component + ": ",
		debug:  s.debug,
	}
}

func (s *StandardLogger) printf(level, format string, args ...interface{}) {
	s.logger.Printf(level+" "+s.prefix+format, args...)
}

// Debug logs a message with [DEBUG] prefix when debug output is enabled.
func (s *StandardLogger) Debug(format string, args ...interface{}) {
	if !s.debug {
		return
	}
	s.printf("[DEBUG]", format, args...)
}

// Info logs an informational message with [INFO] prefix.
func (s *StandardLogger) Info(format string, args ...interface{}) {
	s.printf("[INFO]", format, args...)
}

// Warning logs a warning message with [WARNING] prefix.
func (s *StandardLogger) Warning(format string, args ...interface{}) {
	s.printf("[WARNING]", format, args...)
}

// Error logs an error message with [ERROR] prefix.
func (s *StandardLogger) Error(format string, args ...interface{}) {
	s.printf("[ERROR]", format, args...)
}

// Close is a no-op for StandardLogger (no resources to release).
func (s *StandardLogger) Close() error {
	return nil
}

// NopLogger is a logger that discards all messages.
type NopLogger struct{}

// NewNopLogger creates a logger that discards all messages.
func NewNopLogger() *NopLogger {
	return &NopLogger{}
}

func (n *NopLogger) Debug(format string, args ...interface{})   {}
func (n *NopLogger) Info(format string, args ...interface{})    {}
func (n *NopLogger) Warning(format string, args ...interface{}) {}
func (n *NopLogger) Error(format string, args ...interface{})   {}

// Close is a no-op.
func (n *NopLogger) Close() error {
	return nil
}

var (
	_ Logger = (*StandardLogger)(nil)
	_ Logger = (*NopLogger)(nil)
)

// MockLogger records all log calls for verification in tests.
// It guards its slices so goroutines started by the screen can log
// into it; read the fields only after those goroutines are done.
type MockLogger struct {
	mu           sync.Mutex
	DebugCalls   []string
	InfoCalls    []string
	WarningCalls []string
	ErrorCalls   []string
	CloseCalled  bool
}

// NewMockLogger creates a new MockLogger for testing.
func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

func (m *MockLogger) record(dst *[]string, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	*dst = append(*dst, fmt.Sprintf(format, args...))
}

// Debug records the formatted message.
func (m *MockLogger) Debug(format string, args ...interface{}) {
	m.record(&m.DebugCalls, format, args...)
}

// Info records the formatted message.
func (m *MockLogger) Info(format string, args ...interface{}) {
	m.record(&m.InfoCalls, format, args...)
}

// Warning records the formatted message.
func (m *MockLogger) Warning(format string, args ...interface{}) {
	m.record(&m.WarningCalls, format, args...)
}

// Error records the formatted message.
func (m *MockLogger) Error(format string, args ...interface{}) {
	m.record(&m.ErrorCalls, format, args...)
}

// Calls returns a copy of the messages recorded at level, one of
// "debug", "info", "warning" or "error". Use it while goroutines may
// still be logging.
func (m *MockLogger) Calls(level string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var src []string
	switch level {
	case "debug":
		src = m.DebugCalls
	case "info":
		src = m.InfoCalls
	case "warning":
		src = m.WarningCalls
	case "error":
		src = m.ErrorCalls
	}
	return append([]string(nil), src...)
}

// Close records that Close was called.
func (m *MockLogger) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CloseCalled = true
	return nil
}

var _ Logger = (*MockLogger)(nil)
