package rexec

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/pkg/errors"
	"go.viam.com/utils/pexec"

	"go.fpgaboards.dev/boards/logging"
)

// A Runner runs a process to completion.
type Runner interface {
	Run(ctx context.Context, config ProcessConfig) error
}

// ExecRunner runs processes on the local machine as one-shot managed processes.
type ExecRunner struct {
	logger logging.Logger
	out    io.Writer
}

// NewRunner returns a Runner copying process output to stdout, or to logger for processes
// configured with Log.
func NewRunner(logger logging.Logger) *ExecRunner {
	return &ExecRunner{logger: logger, out: os.Stdout}
}

// NewWriterRunner returns a Runner copying the combined process output to out.
func NewWriterRunner(logger logging.Logger, out io.Writer) *ExecRunner {
	return &ExecRunner{logger: logger, out: out}
}

// Run starts the process and waits for it. Cancelling ctx kills the process.
func (r *ExecRunner) Run(ctx context.Context, config ProcessConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}
	r.logger.Infow("running", "cmd", config.String(), "cwd", config.CWD)

	pconf := pexec.ProcessConfig{
		ID:      config.Name,
		Name:    config.Name,
		Args:    config.Args,
		CWD:     config.CWD,
		OneShot: true,
		Log:     config.Log,
	}
	if !config.Log {
		pconf.LogWriter = r.out
	}
	if err := pexec.NewManagedProcess(pconf, r.logger).Start(ctx); err != nil {
		if ctx.Err() != nil {
			return errors.Wrapf(ctx.Err(), "%s interrupted", config.Name)
		}
		return errors.Wrapf(err, "%s failed", config.Name)
	}
	return nil
}

// Recorder is a Runner that records processes instead of running them. RunFunc, when set,
// decides the outcome of each call.
type Recorder struct {
	mu      sync.Mutex
	Calls   []ProcessConfig
	RunFunc func(ctx context.Context, config ProcessConfig) error
}

// Run records config.
func (r *Recorder) Run(ctx context.Context, config ProcessConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	r.Calls = append(r.Calls, config)
	r.mu.Unlock()
	if r.RunFunc != nil {
		return r.RunFunc(ctx, config)
	}
	return nil
}

// Commands returns the recorded command lines.
func (r *Recorder) Commands() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.Calls))
	for _, c := range r.Calls {
		out = append(out, c.String())
	}
	return out
}
