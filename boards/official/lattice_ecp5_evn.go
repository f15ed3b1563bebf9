package official

import (
	"go.fpgaboards.dev/boards/platform"
	"go.fpgaboards.dev/boards/registry"
	"go.fpgaboards.dev/boards/soc"
	"go.fpgaboards.dev/boards/usb"
)

var ecp5EVNIO = []platform.Resource{
	{Name: "clk12", Pins: "A10", IOStandard: "LVCMOS33"},
	{Name: "rst_n", Pins: "G2", IOStandard: "LVCMOS33"},

	{Name: "user_led", Number: 0, Pins: "A13", IOStandard: "LVCMOS25"},
	{Name: "user_led", Number: 1, Pins: "A12", IOStandard: "LVCMOS25"},
	{Name: "user_led", Number: 2, Pins: "B19", IOStandard: "LVCMOS25"},
	{Name: "user_led", Number: 3, Pins: "A18", IOStandard: "LVCMOS25"},
	{Name: "user_led", Number: 4, Pins: "B18", IOStandard: "LVCMOS25"},
	{Name: "user_led", Number: 5, Pins: "C17", IOStandard: "LVCMOS25"},
	{Name: "user_led", Number: 6, Pins: "A17", IOStandard: "LVCMOS25"},
	{Name: "user_led", Number: 7, Pins: "B17", IOStandard: "LVCMOS25"},

	{Name: "user_btn", Number: 0, Pins: "P4", IOStandard: "LVCMOS33"},

	{Name: "user_dip_btn", Number: 0, Pins: "J1", IOStandard: "LVCMOS15"},
	{Name: "user_dip_btn", Number: 1, Pins: "H1", IOStandard: "LVCMOS15"},
	{Name: "user_dip_btn", Number: 2, Pins: "K1", IOStandard: "LVCMOS15"},
	{Name: "user_dip_btn", Number: 3, Pins: "E15", IOStandard: "LVCMOS25"},
	{Name: "user_dip_btn", Number: 4, Pins: "D16", IOStandard: "LVCMOS25"},
	{Name: "user_dip_btn", Number: 5, Pins: "B16", IOStandard: "LVCMOS25"},
	{Name: "user_dip_btn", Number: 6, Pins: "C16", IOStandard: "LVCMOS25"},
	{Name: "user_dip_btn", Number: 7, Pins: "A16", IOStandard: "LVCMOS25"},

	{Name: "serial", IOStandard: "LVCMOS33", Subsignals: []platform.Subsignal{
		{Name: "rx", Pins: "P2"},
		{Name: "tx", Pins: "P3"},
	}},

	{Name: "spiflash", IOStandard: "LVCMOS33", Subsignals: []platform.Subsignal{
		{Name: "cs_n", Pins: "R2"},
		{Name: "mosi", Pins: "W2"},
		{Name: "miso", Pins: "V2"},
		{Name: "wp", Pins: "Y2"},
		{Name: "hold", Pins: "W1"},
	}},
}

var ecp5EVNConnectors = []platform.Connector{
	// Odd positions of J40 are ground.
	{Name: "j40", Pins: "- K2 - J2 - H2 - K3 - J4 - J5 - H3 - K4 - J3 - H4"},
	{Name: "j39", Pins: "- - N19 M20 L20 L19 J19 K20 G19 K18 H20 J18 G20 L16 F20 J17 E20 H18 D20 G18 - -"},
}

// NewLatticeECP5EVN returns the ECP5 5G evaluation board platform.
func NewLatticeECP5EVN(opts platform.Options) (*platform.Platform, error) {
	return platform.New(platform.Config{
		Name:             "lattice_ecp5_evn",
		Family:           platform.FamilyECP5,
		Device:           "LFE5UM5G-85F-8BG381C",
		Toolchain:        opts.ToolchainOr("trellis"),
		DefaultClkName:   "clk12",
		DefaultClkPeriod: 1e9 / 12e6,
		IO:               ecp5EVNIO,
		Connectors:       ecp5EVNConnectors,
		Programmer:       platform.ProgrammerSpec{Kind: "openocd", Config: "ecp5-evn.cfg"},
	})
}

func init() {
	registry.Register(registry.Registration{
		Name:        "lattice_ecp5_evn",
		Tier:        registry.TierOfficial,
		Vendor:      "lattice",
		Description: "Lattice ECP5 5G evaluation board, LFE5UM5G-85F",
		URL:         "https://www.latticesemi.com/products/developmentboardsandkits/ecp5evaluationboard",
		USB:         []usb.Identifier{usb.FT2232H},
		Platform:    NewLatticeECP5EVN,
		Target: soc.TargetSpec{
			DefaultSysClkFreq: 60e6,
			ResetResource:     "rst_n",
			ResetActiveLow:    true,
			Peripherals: []soc.Peripheral{
				{Name: "leds", Resources: []string{"user_led"}, Default: true},
				{Name: "switches", Resources: []string{"user_dip_btn", "user_btn"}},
				{Name: "spiflash", Resources: []string{"spiflash"}},
			},
		},
	})
}
