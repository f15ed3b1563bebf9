package logging

import (
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

// testAppender sends entries to testing.TB.Log, so lines are attributed to the right test even
// when tests run in parallel.
type testAppender struct {
	tb      testing.TB
	encoder zapcore.Encoder
}

// NewTestAppender returns an appender logging through tb.
func NewTestAppender(tb testing.TB) Appender {
	return &testAppender{tb: tb, encoder: zapcore.NewConsoleEncoder(encoderConfig())}
}

func (app *testAppender) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	app.tb.Helper()
	buf, err := app.encoder.EncodeEntry(entry, fields)
	if err != nil {
		app.tb.Log(entry.Message)
		return err
	}
	defer buf.Free()
	app.tb.Log(strings.TrimSuffix(buf.String(), "\n"))
	return nil
}

func (app *testAppender) Sync() error {
	return nil
}
