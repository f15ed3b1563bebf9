package logging

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Frames between the user's call and caller(): Info -> logs -> entry -> caller.
const callerSkip = 4

type logger struct {
	name      string
	level     AtomicLevel
	utc       bool
	appenders []Appender
}

func newLogger(name string, level Level, utc bool, appenders ...Appender) *logger {
	return &logger{name: name, level: NewAtomicLevelAt(level), utc: utc, appenders: appenders}
}

func (l *logger) AddAppender(appender Appender) {
	l.appenders = append(l.appenders, appender)
}

func (l *logger) SetLevel(level Level) {
	l.level.Set(level)
}

func (l *logger) GetLevel() Level {
	return l.level.Get()
}

func (l *logger) Sublogger(subname string) Logger {
	name := subname
	if l.name != "" {
		name = l.name + "." + subname
	}
	return newLogger(name, l.level.Get(), l.utc, l.appenders...)
}

func (l *logger) Sync() error {
	var errs error
	for _, appender := range l.appenders {
		errs = multierr.Append(errs, appender.Sync())
	}
	return errs
}

func (l *logger) enabled(level Level) bool {
	return level >= l.level.Get()
}

func (l *logger) entry(level Level, msg string) zapcore.Entry {
	now := time.Now()
	if l.utc {
		now = now.UTC()
	}
	return zapcore.Entry{
		Level:      level.AsZap(),
		Time:       now,
		LoggerName: l.name,
		Message:    msg,
		Caller:     caller(),
	}
}

func (l *logger) write(entry zapcore.Entry, fields []zapcore.Field) {
	for _, appender := range l.appenders {
		if err := appender.Write(entry, fields); err != nil {
			fmt.Fprintln(os.Stderr, err) //nolint:errcheck
		}
	}
}

func (l *logger) logs(level Level, args []interface{}) {
	if l.enabled(level) {
		l.write(l.entry(level, fmt.Sprint(args...)), nil)
	}
}

func (l *logger) logf(level Level, template string, args []interface{}) {
	if l.enabled(level) {
		l.write(l.entry(level, fmt.Sprintf(template, args...)), nil)
	}
}

func (l *logger) logw(level Level, msg string, keysAndValues []interface{}) {
	if l.enabled(level) {
		l.write(l.entry(level, msg), toFields(keysAndValues))
	}
}

// toFields pairs up alternating keys and values. A trailing key without a value is kept with an
// error as its value.
func toFields(keysAndValues []interface{}) []zapcore.Field {
	fields := make([]zapcore.Field, 0, (len(keysAndValues)+1)/2)
	for i := 0; i < len(keysAndValues); i += 2 {
		key := fmt.Sprint(keysAndValues[i])
		if i+1 == len(keysAndValues) {
			fields = append(fields, zap.Any(key, errors.New("unpaired log key")))
			break
		}
		fields = append(fields, zap.Any(key, keysAndValues[i+1]))
	}
	return fields
}

func caller() zapcore.EntryCaller {
	pc, file, line, ok := runtime.Caller(callerSkip)
	if !ok {
		return zapcore.EntryCaller{}
	}
	c := zapcore.EntryCaller{Defined: true, PC: pc, File: file, Line: line}
	if fn := runtime.FuncForPC(pc); fn != nil {
		c.Function = fn.Name()
	}
	return c
}

func (l *logger) Debug(args ...interface{})                   { l.logs(DEBUG, args) }
func (l *logger) Debugf(template string, args ...interface{}) { l.logf(DEBUG, template, args) }
func (l *logger) Debugw(msg string, kv ...interface{})        { l.logw(DEBUG, msg, kv) }
func (l *logger) Info(args ...interface{})                    { l.logs(INFO, args) }
func (l *logger) Infof(template string, args ...interface{})  { l.logf(INFO, template, args) }
func (l *logger) Infow(msg string, kv ...interface{})         { l.logw(INFO, msg, kv) }
func (l *logger) Warn(args ...interface{})                    { l.logs(WARN, args) }
func (l *logger) Warnf(template string, args ...interface{})  { l.logf(WARN, template, args) }
func (l *logger) Warnw(msg string, kv ...interface{})         { l.logw(WARN, msg, kv) }
func (l *logger) Error(args ...interface{})                   { l.logs(ERROR, args) }
func (l *logger) Errorf(template string, args ...interface{}) { l.logf(ERROR, template, args) }
func (l *logger) Errorw(msg string, kv ...interface{})        { l.logw(ERROR, msg, kv) }

// These Fatal* methods log as errors then exit the process.
func (l *logger) Fatal(args ...interface{}) {
	l.logs(ERROR, args)
	os.Exit(1)
}

func (l *logger) Fatalf(template string, args ...interface{}) {
	l.logf(ERROR, template, args)
	os.Exit(1)
}

func (l *logger) Fatalw(msg string, kv ...interface{}) {
	l.logw(ERROR, msg, kv)
	os.Exit(1)
}

func (l *logger) Desugar() *zap.Logger {
	return zap.New(loggerCore{l: l}, zap.AddCaller()).Named(l.name)
}

// loggerCore lets a *zap.Logger write through a logger's level and appenders.
type loggerCore struct {
	l      *logger
	fields []zapcore.Field
}

func (c loggerCore) Enabled(level zapcore.Level) bool {
	return level >= c.l.GetLevel().AsZap()
}

func (c loggerCore) With(fields []zapcore.Field) zapcore.Core {
	return loggerCore{l: c.l, fields: append(append([]zapcore.Field(nil), c.fields...), fields...)}
}

func (c loggerCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}
	return checked
}

func (c loggerCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	c.l.write(entry, append(append([]zapcore.Field(nil), c.fields...), fields...))
	return nil
}

func (c loggerCore) Sync() error {
	return c.l.Sync()
}
