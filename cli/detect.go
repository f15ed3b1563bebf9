package cli

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"

	"go.fpgaboards.dev/boards/registry"
	"go.fpgaboards.dev/boards/usb"
)

// DetectAction is the corresponding action for 'detect'. It lists attached USB devices that a
// board of the catalog is programmed through.
func DetectAction(c *cli.Context) error {
	known := map[usb.Identifier]bool{}
	for _, reg := range registry.All() {
		for _, id := range reg.USB {
			known[id] = true
		}
	}
	devices, err := usb.Search(func(id usb.Identifier) bool { return c.Bool(detectFlagAll) || known[id] })
	if err != nil {
		return err
	}
	if len(devices) == 0 {
		printf(c.App.Writer, "no boards found")
		return nil
	}

	t := newTable(c.App.Writer, table.Row{"Bus", "ID", "Product", "Serial", "Ports", "Boards"})
	for _, dev := range devices {
		product := strings.TrimSpace(dev.Manufacturer + " " + dev.Product)
		boards := lo.Map(registry.MatchUSB(dev.ID), func(reg registry.Registration, _ int) string { return reg.Name })
		t.AppendRow(table.Row{dev.Path, dev.ID, product, dev.Serial, joinNames(dev.TTYs), joinNames(boards)})
	}
	t.Render()
	return nil
}
