package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	"periph.io/x/conn/v3/pin/pinreg"

	"go.fpgaboards.dev/boards/platform"
	"go.fpgaboards.dev/boards/registry"
	"go.fpgaboards.dev/boards/toolchain"
	"go.fpgaboards.dev/boards/utils"
)

func newTable(w io.Writer, header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(header)
	return t
}

func boardPlatform(c *cli.Context, reg registry.Registration) (*platform.Platform, error) {
	p, err := reg.Platform(platform.Options{
		Variant:  c.String(boardFlagVariant),
		Revision: c.String(boardFlagRevision),
	})
	return p, errors.Wrap(err, reg.Name)
}

// ListBoardsAction is the corresponding action for 'list'.
func ListBoardsAction(c *cli.Context) error {
	regs := registry.All()
	if name := c.String(listFlagTier); name != "" {
		tier, err := registry.ParseTier(name)
		if err != nil {
			return err
		}
		regs = lo.Filter(regs, func(reg registry.Registration, _ int) bool { return reg.Tier == tier })
	}

	t := newTable(c.App.Writer, table.Row{"Tier", "Board", "Alias", "Family", "Device", "Toolchain", "Description"})
	for _, reg := range regs {
		p, err := reg.Platform(platform.Options{})
		if err != nil {
			warningf(c.App.ErrWriter, "%s: %v", reg.Name, err)
			continue
		}
		t.AppendRow(table.Row{reg.Tier, reg.Name, reg.Alias(), p.Family, p.Device, p.Toolchain, reg.Description})
	}
	t.Render()
	return nil
}

func withDefault(values []string, def string) string {
	return joinNames(lo.Map(values, func(v string, _ int) string {
		if v == def {
			return v + " (default)"
		}
		return v
	}))
}

// ShowBoardAction is the corresponding action for 'show'.
func ShowBoardAction(c *cli.Context) error {
	name, err := boardArg(c)
	if err != nil {
		return err
	}
	reg, err := registry.Lookup(name)
	if err != nil {
		return err
	}
	p, err := boardPlatform(c, reg)
	if err != nil {
		return err
	}
	spec := reg.Target
	w := c.App.Writer

	printf(w, "Board:       %s (%s)", reg.Name, reg.Tier)
	if alias := reg.Alias(); alias != "" {
		printf(w, "Alias:       %s", alias)
	}
	if reg.Description != "" {
		printf(w, "Description: %s", reg.Description)
	}
	if reg.URL != "" {
		printf(w, "URL:         %s", reg.URL)
	}
	printf(w, "Device:      %s (%s %s)", p.Device, p.Family.Vendor(), p.Family)
	printf(w, "Toolchain:   %s (supported: %s)", p.Toolchain, joinNames(lo.Map(toolchain.Supported(p.Family),
		func(k toolchain.Kind, _ int) string { return string(k) })))
	if p.DefaultClkName != "" {
		printf(w, "Clock:       %s, %s", p.DefaultClkName, utils.FormatFrequency(1e9/p.DefaultClkPeriod))
	}
	printf(w, "Programmer:  %s %s", p.Programmer.Kind, p.Programmer.Config)
	if len(spec.Variants) != 0 {
		printf(w, "Variants:    %s", withDefault(spec.Variants, spec.DefaultVariant))
	}
	if len(spec.Revisions) != 0 {
		printf(w, "Revisions:   %s", withDefault(spec.Revisions, spec.DefaultRevision))
	}
	printf(w, "Sys clock:   %s", utils.FormatFrequency(spec.DefaultSysClkFreq))
	if spec.ResetResource != "" {
		printf(w, "Reset:       %s", spec.ResetResource)
	}

	if len(spec.Peripherals) != 0 {
		printf(w, "")
		t := newTable(w, table.Row{"Peripheral", "Default", "Resources", "Variants"})
		for _, per := range spec.Peripherals {
			variants := "all"
			if len(per.Variants) != 0 {
				variants = joinNames(per.Variants)
			}
			t.AppendRow(table.Row{per.Name, per.Default, joinNames(per.Resources), variants})
		}
		t.Render()
	}

	printf(w, "")
	t := newTable(w, table.Row{"Resource", "Pins", "IO standard"})
	for _, res := range p.IO {
		t.AppendRow(table.Row{res.ID(), describePins(res), res.IOStandard})
	}
	t.Render()

	return showHeaders(w, p)
}

func describePins(res platform.Resource) string {
	if len(res.Subsignals) == 0 {
		return res.Pins
	}
	return strings.Join(lo.Map(res.Subsignals, func(sub platform.Subsignal, _ int) string {
		return sub.Name + "=" + sub.Pins
	}), " ")
}

// showHeaders prints the board connectors as registered in periph.io's pin registry.
func showHeaders(w io.Writer, p *platform.Platform) error {
	if len(p.Connectors) == 0 {
		return nil
	}
	if err := platform.RegisterHeaders(p); err != nil {
		return err
	}
	all := pinreg.All()
	for _, conn := range p.Connectors {
		name := platform.HeaderName(p.Name, conn.Name)
		rows, ok := all[name]
		if !ok {
			continue
		}
		printf(w, "")
		printf(w, "Connector %s", name)
		t := newTable(w, table.Row{"Pin", "Site"})
		keys := conn.Keys()
		for _, row := range rows {
			for i, pin := range row {
				t.AppendRow(table.Row{keys[i], pin.Name()})
			}
		}
		t.Render()
	}
	return nil
}

// ReadmeAction is the corresponding action for 'readme'.
func ReadmeAction(c *cli.Context) (err error) {
	w := c.App.Writer
	if path := c.String(readmeFlagOutput); path != "" {
		//nolint:gosec
		f, createErr := os.Create(path)
		if createErr != nil {
			return errors.Wrap(createErr, "creating readme")
		}
		defer func() {
			err = multierr.Combine(err, errors.Wrap(f.Close(), "writing readme"))
		}()
		w = f
	}

	for _, tier := range registry.Tiers {
		regs := lo.Filter(registry.All(), func(reg registry.Registration, _ int) bool { return reg.Tier == tier })
		if len(regs) == 0 {
			continue
		}
		fmt.Fprintf(w, "## %s\n\n", strings.ToUpper(string(tier[:1]))+string(tier[1:])) //nolint:errcheck
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.AppendHeader(table.Row{"Board", "Alias", "Device", "Toolchain", "Description"})
		for _, reg := range regs {
			p, err := reg.Platform(platform.Options{})
			if err != nil {
				return errors.Wrap(err, reg.Name)
			}
			board := reg.Name
			if reg.URL != "" {
				board = fmt.Sprintf("[%s](%s)", reg.Name, reg.URL)
			}
			t.AppendRow(table.Row{board, reg.Alias(), p.Device, p.Toolchain, reg.Description})
		}
		t.RenderMarkdown()
		fmt.Fprintln(w) //nolint:errcheck
	}
	return nil
}
