package cli

import (
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"

	"go.fpgaboards.dev/boards/buildstore"
	"go.fpgaboards.dev/boards/utils"
)

// HistoryAction is the corresponding action for 'history'.
func HistoryAction(c *cli.Context) error {
	env, err := envFrom(c)
	if err != nil {
		return err
	}
	store, err := env.history(c.Context)
	if err != nil {
		return err
	}
	builds, err := store.List(c.Context, buildstore.Filter{
		Board: c.String(historyFlagBoard),
		Limit: c.Int(historyFlagLimit),
	})
	if err != nil {
		return err
	}
	if len(builds) == 0 {
		printf(c.App.Writer, "no builds recorded")
		return nil
	}

	t := newTable(c.App.Writer, table.Row{"ID", "Started", "Board", "Variant", "Toolchain", "Sys clock", "Status", "Duration", "Output"})
	for _, b := range builds {
		duration := ""
		if !b.FinishedAt.IsZero() {
			duration = b.FinishedAt.Sub(b.StartedAt).String()
		}
		status := string(b.Status)
		if b.Error != "" {
			status += ": " + b.Error
		}
		t.AppendRow(table.Row{
			b.ID, b.StartedAt.Local().Format(time.DateTime), b.Board, b.Variant, b.Toolchain,
			utils.FormatFrequency(b.SysClkFreq), status, duration, b.OutputDir,
		})
	}
	t.Render()
	return nil
}
