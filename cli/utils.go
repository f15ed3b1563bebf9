package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

var (
	infoColor    = color.New(color.FgCyan)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
)

// printf prints a message with no prefix.
func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, format+"\n", a...)
}

// infof prints a message prefixed by a cyan "Info: ".
func infof(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	infoColor.Fprint(w, "Info: ")
	printf(w, format, a...)
}

// warningf prints a message prefixed by a bold yellow "Warning: ".
func warningf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	warningColor.Fprint(w, "Warning: ")
	printf(w, format, a...)
}

// Errorf prints a message prefixed by a bold red "Error: ".
func Errorf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	errorColor.Fprint(w, "Error: ")
	printf(w, format, a...)
}

func joinNames(names []string) string {
	return strings.Join(names, ", ")
}

// boardArg returns the single positional <board> argument.
func boardArg(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", errors.Errorf("expected one board name, got %d arguments", c.NArg())
	}
	return c.Args().First(), nil
}

func checkSize(name string, size int) error {
	if size < 0 {
		return errors.Errorf("--%s must not be negative", name)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
