package community

import (
	"go.fpgaboards.dev/boards/platform"
	"go.fpgaboards.dev/boards/registry"
	"go.fpgaboards.dev/boards/soc"
	"go.fpgaboards.dev/boards/usb"
)

var icesugarIO = []platform.Resource{
	{Name: "clk12", Pins: "35", IOStandard: "LVCMOS33"},

	{Name: "user_led_n", Number: 0, Pins: "40", IOStandard: "LVCMOS33"},
	{Name: "user_led_n", Number: 1, Pins: "41", IOStandard: "LVCMOS33"},
	{Name: "user_led_n", Number: 2, Pins: "39", IOStandard: "LVCMOS33"},

	{Name: "user_sw", Number: 0, Pins: "18", IOStandard: "LVCMOS33"},
	{Name: "user_sw", Number: 1, Pins: "19", IOStandard: "LVCMOS33"},
	{Name: "user_sw", Number: 2, Pins: "20", IOStandard: "LVCMOS33"},
	{Name: "user_sw", Number: 3, Pins: "21", IOStandard: "LVCMOS33"},

	{Name: "serial", IOStandard: "LVCMOS33", Subsignals: []platform.Subsignal{
		{Name: "rx", Pins: "4"},
		{Name: "tx", Pins: "6", Misc: []string{"-pullup yes"}},
	}},

	{Name: "spiflash", IOStandard: "LVCMOS33", Subsignals: []platform.Subsignal{
		{Name: "cs_n", Pins: "16"},
		{Name: "clk", Pins: "15"},
		{Name: "mosi", Pins: "14"},
		{Name: "miso", Pins: "17"},
	}},

	{Name: "usb", IOStandard: "LVCMOS33", Subsignals: []platform.Subsignal{
		{Name: "d_p", Pins: "10"},
		{Name: "d_n", Pins: "9"},
		{Name: "pullup", Pins: "11"},
	}},
}

var icesugarConnectors = []platform.Connector{
	{Name: "pmod1", Pins: "10 6 3 48 47 2 4 9"},
	{Name: "pmod2", Pins: "46 44 42 37 36 38 43 45"},
	{Name: "pmod3", Pins: "34 31 27 25 23 26 28 32"},
	{Name: "pmod4", Pins: "21 20 19 18 - - - -"},
}

// NewIcesugar returns the iCESugar 1.5 platform.
func NewIcesugar(opts platform.Options) (*platform.Platform, error) {
	return platform.New(platform.Config{
		Name:             "muselab_icesugar",
		Family:           platform.FamilyICE40,
		Device:           "iCE40UP5K-SG48",
		Toolchain:        opts.ToolchainOr("icestorm"),
		DefaultClkName:   "clk12",
		DefaultClkPeriod: 1e9 / 12e6,
		IO:               icesugarIO,
		Connectors:       icesugarConnectors,
		Programmer:       platform.ProgrammerSpec{Kind: "icesprog"},
	})
}

func init() {
	registry.Register(registry.Registration{
		Name:        "muselab_icesugar",
		Tier:        registry.TierCommunity,
		Vendor:      "muselab",
		Description: "MuseLab iCESugar, iCE40UP5K with a drag and drop programmer",
		URL:         "https://github.com/wuxx/icesugar",
		USB:         []usb.Identifier{{Vendor: 0x1d50, Product: 0x602b}},
		Platform:    NewIcesugar,
		Target: soc.TargetSpec{
			DefaultSysClkFreq: 24e6,
			Peripherals: []soc.Peripheral{
				{Name: "leds", Resources: []string{"user_led_n"}, Default: true},
				{Name: "switches", Resources: []string{"user_sw"}},
				{Name: "spiflash", Resources: []string{"spiflash"}},
			},
		},
	})
}
