package community

import (
	"go.fpgaboards.dev/boards/platform"
	"go.fpgaboards.dev/boards/registry"
	"go.fpgaboards.dev/boards/soc"
	"go.fpgaboards.dev/boards/usb"
)

var tinyfpgaBXIO = []platform.Resource{
	{Name: "clk16", Pins: "B2", IOStandard: "LVCMOS33"},
	{Name: "user_led", Pins: "B3", IOStandard: "LVCMOS33"},

	{Name: "usb", IOStandard: "LVCMOS33", Subsignals: []platform.Subsignal{
		{Name: "d_p", Pins: "B4"},
		{Name: "d_n", Pins: "A4"},
		{Name: "pullup", Pins: "A3"},
	}},

	{Name: "spiflash", IOStandard: "LVCMOS33", Subsignals: []platform.Subsignal{
		{Name: "cs_n", Pins: "F7"},
		{Name: "clk", Pins: "G7"},
		{Name: "mosi", Pins: "G6"},
		{Name: "miso", Pins: "H7"},
		{Name: "wp", Pins: "H4"},
		{Name: "hold", Pins: "J8"},
	}},

	// No USB-UART on the board: an external adapter goes on the first two GPIOs.
	{Name: "serial", IOStandard: "LVCMOS33", Subsignals: []platform.Subsignal{
		{Name: "tx", Pins: "gpio:0"},
		{Name: "rx", Pins: "gpio:1"},
	}},
}

var tinyfpgaBXConnectors = []platform.Connector{
	{Name: "gpio", Pins: "A2 A1 B1 C2 C1 D2 D1 E2 E1 G2 H1 J1 H2 H9 D9 D8 C9 A9 B8 A8 B7 A7 B6 A6"},
	{Name: "extra", Pins: "G1 J3 J4 G9 J9 E8 J2"},
}

// NewTinyFPGABX returns the TinyFPGA BX platform.
func NewTinyFPGABX(opts platform.Options) (*platform.Platform, error) {
	return platform.New(platform.Config{
		Name:             "tinyfpga_bx",
		Family:           platform.FamilyICE40,
		Device:           "iCE40LP8K-CM81",
		Toolchain:        opts.ToolchainOr("icestorm"),
		DefaultClkName:   "clk16",
		DefaultClkPeriod: 1e9 / 16e6,
		IO:               tinyfpgaBXIO,
		Connectors:       tinyfpgaBXConnectors,
		Programmer:       platform.ProgrammerSpec{Kind: "tinyprog"},
	})
}

func init() {
	registry.Register(registry.Registration{
		Name:        "tinyfpga_bx",
		Tier:        registry.TierCommunity,
		Description: "TinyFPGA BX, iCE40LP8K breadboard module with a USB bootloader",
		URL:         "https://tinyfpga.com/bx/guide.html",
		USB:         []usb.Identifier{{Vendor: 0x1d50, Product: 0x6130}},
		Platform:    NewTinyFPGABX,
		Target: soc.TargetSpec{
			DefaultSysClkFreq: 16e6,
			DefaultCPU:        "picorv32",
			// User images start after the bootloader.
			FlashOffset:        0x28000,
			IntegratedROMSize:  0x2000,
			IntegratedSRAMSize: 0x1000,
			Peripherals: []soc.Peripheral{
				{Name: "leds", Resources: []string{"user_led"}, Default: true},
				{Name: "spiflash", Resources: []string{"spiflash"}},
			},
		},
	})
}
