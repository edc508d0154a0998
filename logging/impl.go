package logging

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/samber/lo"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the logging interface used across dhfk. It mirrors the sugared zap API but routes
// every entry through a set of Appenders.
type Logger interface {
	Debug(args ...interface{})
	Debugf(template string, args ...interface{})
	Debugw(msg string, keysAndValues ...interface{})
	Info(args ...interface{})
	Infof(template string, args ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warn(args ...interface{})
	Warnf(template string, args ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Error(args ...interface{})
	Errorf(template string, args ...interface{})
	Errorw(msg string, keysAndValues ...interface{})

	Sublogger(subname string) Logger
	AddAppender(appender Appender)
	SetLevel(level Level)
	GetLevel() Level
	Sync() error
}

// impl fans every enabled entry out to its appenders.
type impl struct {
	name  string
	level AtomicLevel
	utc   bool

	appenders []Appender
}

// Stack depth from callerOf back to the code that called a Logger method:
// callerOf <- emit <- Logger method <- caller.
const callerDepth = 3

func (imp *impl) AddAppender(appender Appender) {
	imp.appenders = append(imp.appenders, appender)
}

func (imp *impl) SetLevel(level Level) {
	imp.level.Set(level)
}

func (imp *impl) GetLevel() Level {
	return imp.level.Get()
}

// Sublogger shares the appenders of imp and starts at its current level.
func (imp *impl) Sublogger(subname string) Logger {
	name := subname
	if imp.name != "" {
		name = imp.name + "." + subname
	}
	return &impl{name: name, level: NewAtomicLevelAt(imp.GetLevel()), utc: imp.utc, appenders: imp.appenders}
}

func (imp *impl) Sync() error {
	var err error
	for _, appender := range imp.appenders {
		err = multierr.Append(err, appender.Sync())
	}
	return err
}

// enabled reports whether an entry at level is written. The --debug flag raises GlobalLogLevel,
// which turns on every logger regardless of its own level.
func (imp *impl) enabled(level Level) bool {
	return GlobalLogLevel.Enabled(zapcore.DebugLevel) || level >= imp.GetLevel()
}

// emit builds and writes one entry. The message is fmt.Sprintf(template, args...) when there are
// args and a template, fmt.Sprint(args...) when there is no template, and the template verbatim
// otherwise. Formatting is skipped entirely when level is disabled.
func (imp *impl) emit(level Level, template string, args, keysAndValues []interface{}) {
	if !imp.enabled(level) {
		return
	}

	msg := template
	switch {
	case template == "":
		msg = fmt.Sprint(args...)
	case len(args) > 0:
		msg = fmt.Sprintf(template, args...)
	}

	now := time.Now()
	if imp.utc {
		now = now.UTC()
	}
	entry := zapcore.Entry{
		Level:      level.AsZap(),
		Time:       now,
		LoggerName: imp.name,
		Message:    msg,
		Caller:     callerOf(callerDepth),
	}
	fields := keyValueFields(keysAndValues)

	for _, appender := range imp.appenders {
		if err := appender.Write(entry, fields); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}

var errUnpairedKey = errors.New("unpaired log key")

// keyValueFields pairs up alternating keys and values. A trailing key without a value is kept
// with errUnpairedKey as its value.
func keyValueFields(keysAndValues []interface{}) []zapcore.Field {
	return lo.Map(lo.Chunk(keysAndValues, 2), func(pair []interface{}, _ int) zapcore.Field {
		if len(pair) == 1 {
			return zap.Any(fmt.Sprint(pair[0]), errUnpairedKey)
		}
		return zap.Any(fmt.Sprint(pair[0]), pair[1])
	})
}

// callerOf resolves the file, line and function skip frames above it, e.g. "logging/impl_test.go:36".
func callerOf(skip int) zapcore.EntryCaller {
	pc, file, line, ok := runtime.Caller(skip)
	caller := zapcore.NewEntryCaller(pc, file, line, ok)
	if fn := runtime.FuncForPC(pc); ok && fn != nil {
		caller.Function = fn.Name()
	}
	return caller
}

func (imp *impl) Debug(args ...interface{}) { imp.emit(DEBUG, "", args, nil) }

func (imp *impl) Debugf(template string, args ...interface{}) { imp.emit(DEBUG, template, args, nil) }

func (imp *impl) Debugw(msg string, keysAndValues ...interface{}) {
	imp.emit(DEBUG, msg, nil, keysAndValues)
}

func (imp *impl) Info(args ...interface{}) { imp.emit(INFO, "", args, nil) }

func (imp *impl) Infof(template string, args ...interface{}) { imp.emit(INFO, template, args, nil) }

func (imp *impl) Infow(msg string, keysAndValues ...interface{}) {
	imp.emit(INFO, msg, nil, keysAndValues)
}

func (imp *impl) Warn(args ...interface{}) { imp.emit(WARN, "", args, nil) }

func (imp *impl) Warnf(template string, args ...interface{}) { imp.emit(WARN, template, args, nil) }

func (imp *impl) Warnw(msg string, keysAndValues ...interface{}) {
	imp.emit(WARN, msg, nil, keysAndValues)
}

func (imp *impl) Error(args ...interface{}) { imp.emit(ERROR, "", args, nil) }

func (imp *impl) Errorf(template string, args ...interface{}) { imp.emit(ERROR, template, args, nil) }

func (imp *impl) Errorw(msg string, keysAndValues ...interface{}) {
	imp.emit(ERROR, msg, nil, keysAndValues)
}
