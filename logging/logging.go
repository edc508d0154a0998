// Package logging contains the leveled, appender based logger used by the dhfk tools.
package logging

import (
	"io"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var (
	globalMu     sync.RWMutex
	globalLogger = NewLogger("dhfk")

	// GlobalLogLevel is raised to debug by the CLI's --debug flag, see SetDebug.
	GlobalLogLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
)

// ReplaceGlobal replaces the global loggers.
func ReplaceGlobal(logger Logger) {
	globalMu.Lock()
	globalLogger = logger
	globalMu.Unlock()
}

// Global returns the global logger.
func Global() Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

// SetDebug turns debug output on or off for every logger, whatever their own levels.
func SetDebug(debug bool) {
	if debug {
		GlobalLogLevel.SetLevel(zap.DebugLevel)
		return
	}
	GlobalLogLevel.SetLevel(zap.InfoLevel)
}

func newImpl(name string, level Level, utc bool, appenders ...Appender) *impl {
	return &impl{name: name, level: NewAtomicLevelAt(level), utc: utc, appenders: appenders}
}

// NewLogger returns a new logger that outputs Info+ logs to stdout in UTC.
func NewLogger(name string) Logger {
	return newImpl(name, INFO, true, NewStdoutAppender())
}

// NewWriterLogger returns a new logger that outputs Info+ logs to the given writer in UTC. The CLI
// uses it to log to its error writer.
func NewWriterLogger(name string, writer io.Writer) Logger {
	return newImpl(name, INFO, true, NewWriterAppender(writer))
}

// NewObservedTestLogger returns a logger that outputs Debug+ logs to the test object in local time and
// also saves them to an in memory observer.
func NewObservedTestLogger(tb testing.TB) (Logger, *observer.ObservedLogs) {
	observerCore, observedLogs := observer.New(zap.LevelEnablerFunc(zapcore.DebugLevel.Enabled))
	return newImpl("", DEBUG, false, NewTestAppender(tb), observerCore), observedLogs
}
