// Package rexec runs the external tools a build or a programming step needs: synthesis,
// place and route, bitstream packers and programmers.
package rexec

import (
	"strings"

	"github.com/pkg/errors"
)

// ProcessConfig describes one tool invocation.
type ProcessConfig struct {
	Name string   `json:"name"`
	Args []string `json:"args"`
	CWD  string   `json:"cwd"`
	// Log sends the tool's output to the logger instead of the runner's writers.
	Log bool `json:"log"`
}

// Validate ensures the config names a tool.
func (config ProcessConfig) Validate() error {
	if strings.TrimSpace(config.Name) == "" {
		return errors.New("process name is required")
	}
	return nil
}

// String renders the command line the way a shell user would type it.
func (config ProcessConfig) String() string {
	parts := make([]string, 0, len(config.Args)+1)
	parts = append(parts, quote(config.Name))
	for _, arg := range config.Args {
		parts = append(parts, quote(arg))
	}
	return strings.Join(parts, " ")
}

func quote(s string) string {
	if s == "" {
		return "''"
	}
	if strings.ContainsAny(s, " \t\n'\"\\$`;&|<>()*?[]{}") {
		return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
	}
	return s
}
