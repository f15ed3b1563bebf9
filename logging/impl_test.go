package logging

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.viam.com/test"
)

func TestLevelFromString(t *testing.T) {
	for inp, expected := range map[string]Level{
		"debug":   DEBUG,
		"INFO":    INFO,
		" warn ":  WARN,
		"warning": WARN,
		"Error":   ERROR,
	} {
		level, err := LevelFromString(inp)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, level, test.ShouldEqual, expected)
	}

	_, err := LevelFromString("loud")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "loud")
}

func TestLevelAsZap(t *testing.T) {
	test.That(t, DEBUG.AsZap().String(), test.ShouldEqual, "debug")
	test.That(t, ERROR.AsZap().String(), test.ShouldEqual, "error")
	test.That(t, WARN.String(), test.ShouldEqual, "Warn")
}

func TestObservedLogsRespectLevel(t *testing.T) {
	logger, logs := NewObservedTestLogger(t)
	logger.Debugw("planning clock", "board", "arty", "sys_clk_freq", 100e6)
	test.That(t, logs.Len(), test.ShouldEqual, 1)
	entry := logs.All()[0]
	test.That(t, entry.Message, test.ShouldEqual, "planning clock")
	test.That(t, entry.ContextMap()["board"], test.ShouldEqual, "arty")

	logger.SetLevel(WARN)
	logger.Info("dropped")
	logger.Warnf("kept %d", 1)
	test.That(t, logs.Len(), test.ShouldEqual, 2)
	test.That(t, logs.All()[1].Message, test.ShouldEqual, "kept 1")
}

func TestSublogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewBlankLogger("boards")
	logger.AddAppender(NewWriterAppender(&buf))

	sub := logger.Sublogger("toolchain")
	sub.Info("writing constraints")

	line := buf.String()
	test.That(t, line, test.ShouldContainSubstring, "boards.toolchain")
	test.That(t, line, test.ShouldContainSubstring, "writing constraints")
	test.That(t, line, test.ShouldContainSubstring, "INFO")
	test.That(t, line, test.ShouldContainSubstring, "impl_test.go")

	// Changing the sublogger's level does not affect the parent.
	sub.SetLevel(ERROR)
	test.That(t, logger.GetLevel(), test.ShouldEqual, DEBUG)
}

func TestUnpairedKey(t *testing.T) {
	var buf bytes.Buffer
	logger := NewBlankLogger("")
	logger.AddAppender(NewWriterAppender(&buf))
	logger.Infow("odd", "lonely")
	test.That(t, strings.Contains(buf.String(), "unpaired log key"), test.ShouldBeTrue)
}

func TestToFields(t *testing.T) {
	fields := toFields([]interface{}{"board", "arty", 7, 100e6})
	test.That(t, fields, test.ShouldHaveLength, 2)
	test.That(t, fields[0].Key, test.ShouldEqual, "board")
	test.That(t, fields[1].Key, test.ShouldEqual, "7")
	test.That(t, toFields(nil), test.ShouldBeEmpty)
}

func TestGlobal(t *testing.T) {
	orig := Global()
	defer ReplaceGlobal(orig)

	replacement := NewBlankLogger("replacement")
	ReplaceGlobal(replacement)
	test.That(t, Global(), test.ShouldEqual, replacement)
}

func TestDesugar(t *testing.T) {
	logger, logs := NewObservedTestLogger(t)
	zl := logger.Sublogger("openocd").Desugar()
	zl.Debug("probing chain", zap.String("cable", "ft2232"))
	test.That(t, logs.Len(), test.ShouldEqual, 1)
	entry := logs.All()[0]
	test.That(t, entry.LoggerName, test.ShouldEqual, "openocd")
	test.That(t, entry.ContextMap()["cable"], test.ShouldEqual, "ft2232")

	logger.SetLevel(WARN)
	logger.Desugar().With(zap.Int("page", 3)).Info("dropped")
	logger.Desugar().With(zap.Int("page", 3)).Warn("kept")
	test.That(t, logs.Len(), test.ShouldEqual, 2)
	test.That(t, logs.All()[1].ContextMap()["page"], test.ShouldEqual, int64(3))
}
