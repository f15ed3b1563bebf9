package platform

import (
	"fmt"
	"strings"
)

func pmodPins(pmod string, positions ...int) string {
	refs := make([]string, len(positions))
	for i, pos := range positions {
		refs[i] = fmt.Sprintf("%s:%d", pmod, pos)
	}
	return strings.Join(refs, " ")
}

// RawPmod exposes all eight signal pins of a PMOD connector as one resource named after it.
func RawPmod(pmod string) []Resource {
	return []Resource{
		{Name: pmod, Pins: pmodPins(pmod, 0, 1, 2, 3, 4, 5, 6, 7), IOStandard: "LVCMOS33"},
	}
}

// USBUARTPmod is a USB-UART module (e.g. Digilent PmodUSBUART) plugged in the top row.
func USBUARTPmod(pmod string) []Resource {
	return []Resource{
		{
			Name: "usb_uart",
			Subsignals: []Subsignal{
				{Name: "tx", Pins: pmodPins(pmod, 1)},
				{Name: "rx", Pins: pmodPins(pmod, 2)},
			},
			IOStandard: "LVCMOS33",
		},
	}
}

// SDCardPmod is a microSD module (e.g. Digilent PmodMicroSD), usable either in SPI or in native
// SD mode.
func SDCardPmod(pmod string) []Resource {
	return []Resource{
		{
			Name: "spisdcard",
			Subsignals: []Subsignal{
				{Name: "clk", Pins: pmodPins(pmod, 3)},
				{Name: "mosi", Pins: pmodPins(pmod, 1), Misc: []string{"PULLUP"}},
				{Name: "cs_n", Pins: pmodPins(pmod, 0), Misc: []string{"PULLUP"}},
				{Name: "miso", Pins: pmodPins(pmod, 2), Misc: []string{"PULLUP"}},
			},
			IOStandard: "LVCMOS33",
		},
		{
			Name: "sdcard",
			Subsignals: []Subsignal{
				{Name: "data", Pins: pmodPins(pmod, 2, 4, 5, 0), Misc: []string{"PULLUP"}},
				{Name: "cmd", Pins: pmodPins(pmod, 1), Misc: []string{"PULLUP"}},
				{Name: "clk", Pins: pmodPins(pmod, 3)},
				{Name: "cd", Pins: pmodPins(pmod, 6)},
			},
			IOStandard: "LVCMOS33",
		},
	}
}

// Extensions maps extension names accepted on the command line to their constructors.
var Extensions = map[string]func(pmod string) []Resource{
	"raw":     RawPmod,
	"usbuart": USBUARTPmod,
	"sdcard":  SDCardPmod,
}
