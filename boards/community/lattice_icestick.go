package community

import (
	"go.fpgaboards.dev/boards/platform"
	"go.fpgaboards.dev/boards/registry"
	"go.fpgaboards.dev/boards/soc"
	"go.fpgaboards.dev/boards/usb"
)

var icestickIO = []platform.Resource{
	{Name: "clk12", Pins: "21", IOStandard: "LVCMOS33"},

	{Name: "user_led", Number: 0, Pins: "99", IOStandard: "LVCMOS33"},
	{Name: "user_led", Number: 1, Pins: "98", IOStandard: "LVCMOS33"},
	{Name: "user_led", Number: 2, Pins: "97", IOStandard: "LVCMOS33"},
	{Name: "user_led", Number: 3, Pins: "96", IOStandard: "LVCMOS33"},
	{Name: "user_led", Number: 4, Pins: "95", IOStandard: "LVCMOS33"},

	{Name: "serial", IOStandard: "LVCMOS33", Subsignals: []platform.Subsignal{
		{Name: "rx", Pins: "9"},
		{Name: "tx", Pins: "8", Misc: []string{"-pullup yes"}},
		{Name: "rts", Pins: "7"},
		{Name: "cts", Pins: "4"},
		{Name: "dtr", Pins: "3"},
		{Name: "dsr", Pins: "2"},
		{Name: "dcd", Pins: "1"},
	}},

	{Name: "irda", IOStandard: "LVCMOS33", Subsignals: []platform.Subsignal{
		{Name: "rx", Pins: "106"},
		{Name: "tx", Pins: "105"},
		{Name: "sd", Pins: "107"},
	}},

	{Name: "spiflash", IOStandard: "LVCMOS33", Subsignals: []platform.Subsignal{
		{Name: "cs_n", Pins: "71"},
		{Name: "clk", Pins: "70"},
		{Name: "mosi", Pins: "67"},
		{Name: "miso", Pins: "68"},
	}},
}

var icestickConnectors = []platform.Connector{
	{Name: "gpio", Pins: "44 45 47 48 56 60 61 62"},
	{Name: "pmoda", Pins: "78 79 80 81 87 88 90 91"},
}

// NewIcestick returns the iCEstick evaluation kit platform.
func NewIcestick(opts platform.Options) (*platform.Platform, error) {
	return platform.New(platform.Config{
		Name:             "lattice_icestick",
		Family:           platform.FamilyICE40,
		Device:           "iCE40HX1K-TQ144",
		Toolchain:        opts.ToolchainOr("icestorm"),
		DefaultClkName:   "clk12",
		DefaultClkPeriod: 1e9 / 12e6,
		IO:               icestickIO,
		Connectors:       icestickConnectors,
		Programmer:       platform.ProgrammerSpec{Kind: "iceprog"},
	})
}

func init() {
	registry.Register(registry.Registration{
		Name:        "lattice_icestick",
		Tier:        registry.TierCommunity,
		Vendor:      "lattice",
		Description: "Lattice iCEstick, iCE40HX1K on a USB stick with an IrDA transceiver",
		URL:         "https://www.latticesemi.com/icestick",
		USB:         []usb.Identifier{usb.FT2232H},
		Platform:    NewIcestick,
		Target: soc.TargetSpec{
			DefaultSysClkFreq: 12e6,
			// A HX1K only has 8KiB of block RAM.
			DefaultCPU:         "serv",
			IntegratedROMSize:  0x1000,
			IntegratedSRAMSize: 0x200,
			Peripherals: []soc.Peripheral{
				{Name: "leds", Resources: []string{"user_led"}, Default: true},
				{Name: "irda", Resources: []string{"irda"}},
				{Name: "spiflash", Resources: []string{"spiflash"}},
			},
		},
	})
}
