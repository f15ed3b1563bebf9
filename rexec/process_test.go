package rexec

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"

	"go.fpgaboards.dev/boards/logging"
)

func TestProcessConfigRoundTripJSON(t *testing.T) {
	config := ProcessConfig{
		Name: "openFPGALoader",
		Args: []string{"-b", "arty", "top.bit"},
		CWD:  "build",
		Log:  true,
	}
	md, err := json.Marshal(config)
	test.That(t, err, test.ShouldBeNil)

	var rt ProcessConfig
	test.That(t, json.Unmarshal(md, &rt), test.ShouldBeNil)
	test.That(t, rt, test.ShouldResemble, config)
}

func TestProcessConfigString(t *testing.T) {
	config := ProcessConfig{Name: "sh", Args: []string{"-c", "echo 'hi there'", ""}}
	test.That(t, config.String(), test.ShouldEqual, `sh -c 'echo '\''hi there'\''' ''`)
	test.That(t, ProcessConfig{}.Validate(), test.ShouldNotBeNil)
}

func TestExecRunner(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	logger, logs := logging.NewObservedTestLogger(t)

	t.Run("writer", func(t *testing.T) {
		var out bytes.Buffer
		r := NewWriterRunner(logger, &out)
		err := r.Run(context.Background(), ProcessConfig{Name: "sh", Args: []string{"-c", "echo out; echo err >&2"}})
		test.That(t, err, test.ShouldBeNil)
		test.That(t, out.String(), test.ShouldEqual, "out\nerr\n")
	})

	t.Run("cwd", func(t *testing.T) {
		var out bytes.Buffer
		dir := t.TempDir()
		r := NewWriterRunner(logger, &out)
		err := r.Run(context.Background(), ProcessConfig{Name: "sh", Args: []string{"-c", "pwd"}, CWD: dir})
		test.That(t, err, test.ShouldBeNil)
		test.That(t, out.String(), test.ShouldContainSubstring, filepath.Base(dir))

		err = r.Run(context.Background(), ProcessConfig{Name: "sh", Args: []string{"-c", "true"}, CWD: filepath.Join(dir, "missing")})
		test.That(t, err, test.ShouldNotBeNil)
	})

	t.Run("logged", func(t *testing.T) {
		var out bytes.Buffer
		r := NewWriterRunner(logger, &out)
		err := r.Run(context.Background(), ProcessConfig{Name: "sh", Args: []string{"-c", "echo logged-line"}, Log: true})
		test.That(t, err, test.ShouldBeNil)
		test.That(t, out.Len(), test.ShouldEqual, 0)
		output := logs.FilterMessage("process output").All()
		test.That(t, output, test.ShouldHaveLength, 1)
		test.That(t, output[0].ContextMap()["output"], test.ShouldEqual, "logged-line\n")
	})

	t.Run("failure", func(t *testing.T) {
		r := NewWriterRunner(logger, &bytes.Buffer{})
		err := r.Run(context.Background(), ProcessConfig{Name: "sh", Args: []string{"-c", "exit 3"}})
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "sh failed")
	})

	t.Run("missing tool", func(t *testing.T) {
		r := NewRunner(logger)
		err := r.Run(context.Background(), ProcessConfig{Name: "definitely-not-a-real-fpga-tool"})
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "not found")
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		r := NewWriterRunner(logger, &bytes.Buffer{})
		err := r.Run(ctx, ProcessConfig{Name: "sh", Args: []string{"-c", "sleep 5"}})
		test.That(t, err, test.ShouldNotBeNil)
	})
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	test.That(t, r.Run(context.Background(), ProcessConfig{Name: "iceprog", Args: []string{"top.bin"}}), test.ShouldBeNil)
	test.That(t, r.Run(context.Background(), ProcessConfig{}), test.ShouldNotBeNil)
	test.That(t, r.Commands(), test.ShouldResemble, []string{"iceprog top.bin"})

	boom := errors.New("boom")
	r.RunFunc = func(ctx context.Context, config ProcessConfig) error { return boom }
	test.That(t, r.Run(context.Background(), ProcessConfig{Name: "iceprog"}), test.ShouldEqual, boom)
	test.That(t, r.Calls, test.ShouldHaveLength, 2)
}
