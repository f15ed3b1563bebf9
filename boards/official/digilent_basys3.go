package official

import (
	"go.fpgaboards.dev/boards/platform"
	"go.fpgaboards.dev/boards/registry"
	"go.fpgaboards.dev/boards/soc"
	"go.fpgaboards.dev/boards/usb"
)

var basys3IO = []platform.Resource{
	{Name: "clk100", Pins: "W5", IOStandard: "LVCMOS33"},
	{Name: "user_btnc", Pins: "U18", IOStandard: "LVCMOS33"},
	{Name: "user_btnu", Pins: "T18", IOStandard: "LVCMOS33"},
	{Name: "user_btnl", Pins: "W19", IOStandard: "LVCMOS33"},
	{Name: "user_btnr", Pins: "T17", IOStandard: "LVCMOS33"},
	{Name: "user_btnd", Pins: "U17", IOStandard: "LVCMOS33"},

	{Name: "user_led", Number: 0, Pins: "U16", IOStandard: "LVCMOS33"},
	{Name: "user_led", Number: 1, Pins: "E19", IOStandard: "LVCMOS33"},
	{Name: "user_led", Number: 2, Pins: "U19", IOStandard: "LVCMOS33"},
	{Name: "user_led", Number: 3, Pins: "V19", IOStandard: "LVCMOS33"},
	{Name: "user_led", Number: 4, Pins: "W18", IOStandard: "LVCMOS33"},
	{Name: "user_led", Number: 5, Pins: "U15", IOStandard: "LVCMOS33"},
	{Name: "user_led", Number: 6, Pins: "U14", IOStandard: "LVCMOS33"},
	{Name: "user_led", Number: 7, Pins: "V14", IOStandard: "LVCMOS33"},
	{Name: "user_led", Number: 8, Pins: "V13", IOStandard: "LVCMOS33"},
	{Name: "user_led", Number: 9, Pins: "V3", IOStandard: "LVCMOS33"},
	{Name: "user_led", Number: 10, Pins: "W3", IOStandard: "LVCMOS33"},
	{Name: "user_led", Number: 11, Pins: "U3", IOStandard: "LVCMOS33"},
	{Name: "user_led", Number: 12, Pins: "P3", IOStandard: "LVCMOS33"},
	{Name: "user_led", Number: 13, Pins: "N3", IOStandard: "LVCMOS33"},
	{Name: "user_led", Number: 14, Pins: "P1", IOStandard: "LVCMOS33"},
	{Name: "user_led", Number: 15, Pins: "L1", IOStandard: "LVCMOS33"},

	{Name: "user_sw", Number: 0, Pins: "V17", IOStandard: "LVCMOS33"},
	{Name: "user_sw", Number: 1, Pins: "V16", IOStandard: "LVCMOS33"},
	{Name: "user_sw", Number: 2, Pins: "W16", IOStandard: "LVCMOS33"},
	{Name: "user_sw", Number: 3, Pins: "W17", IOStandard: "LVCMOS33"},
	{Name: "user_sw", Number: 4, Pins: "W15", IOStandard: "LVCMOS33"},
	{Name: "user_sw", Number: 5, Pins: "V15", IOStandard: "LVCMOS33"},
	{Name: "user_sw", Number: 6, Pins: "W14", IOStandard: "LVCMOS33"},
	{Name: "user_sw", Number: 7, Pins: "W13", IOStandard: "LVCMOS33"},
	{Name: "user_sw", Number: 8, Pins: "V2", IOStandard: "LVCMOS33"},
	{Name: "user_sw", Number: 9, Pins: "T3", IOStandard: "LVCMOS33"},
	{Name: "user_sw", Number: 10, Pins: "T2", IOStandard: "LVCMOS33"},
	{Name: "user_sw", Number: 11, Pins: "R3", IOStandard: "LVCMOS33"},
	{Name: "user_sw", Number: 12, Pins: "W2", IOStandard: "LVCMOS33"},
	{Name: "user_sw", Number: 13, Pins: "U1", IOStandard: "LVCMOS33"},
	{Name: "user_sw", Number: 14, Pins: "T1", IOStandard: "LVCMOS33"},
	{Name: "user_sw", Number: 15, Pins: "R2", IOStandard: "LVCMOS33"},

	{Name: "serial", IOStandard: "LVCMOS33", Subsignals: []platform.Subsignal{
		{Name: "tx", Pins: "A18"},
		{Name: "rx", Pins: "B18"},
	}},

	{Name: "seven_seg_ctrl", IOStandard: "LVCMOS33", Subsignals: []platform.Subsignal{
		{Name: "an", Pins: "U2 U4 V4 W4"},
		{Name: "seg", Pins: "W7 W6 U8 V8 U5 V5 U7"},
		{Name: "dp", Pins: "V7"},
	}},

	{Name: "vga", IOStandard: "LVCMOS33", Subsignals: []platform.Subsignal{
		{Name: "hsync_n", Pins: "P19"},
		{Name: "vsync_n", Pins: "R19"},
		{Name: "r", Pins: "G19 H19 J19 N19"},
		{Name: "g", Pins: "J17 H17 G17 D17"},
		{Name: "b", Pins: "N18 L18 K18 J18"},
	}},

	{Name: "ps2", IOStandard: "LVCMOS33", Misc: []string{"PULLUP=TRUE"}, Subsignals: []platform.Subsignal{
		{Name: "clk", Pins: "C17"},
		{Name: "data", Pins: "B17"},
	}},

	{Name: "spiflash4x", IOStandard: "LVCMOS33", Subsignals: []platform.Subsignal{
		{Name: "cs_n", Pins: "K19"},
		{Name: "dq", Pins: "D18 D19 G18 F18"},
	}},
}

var basys3Connectors = []platform.Connector{
	{Name: "pmoda", Pins: "J1 L2 J2 G2 H1 K2 H2 G3"},
	{Name: "pmodb", Pins: "A14 A16 B15 B16 A15 A17 C15 C16"},
	{Name: "pmodc", Pins: "K17 M18 N17 P18 L17 M19 P17 R18"},
	{Name: "pmodxdac", Pins: "J3 L3 M2 N2 K3 M3 M1 N1"},
}

// NewDigilentBasys3 returns the Basys 3 platform.
func NewDigilentBasys3(opts platform.Options) (*platform.Platform, error) {
	return platform.New(platform.Config{
		Name:             "digilent_basys3",
		Family:           platform.FamilyArtix7,
		Device:           "xc7a35tcpg236-1",
		Toolchain:        opts.ToolchainOr("vivado"),
		DefaultClkName:   "clk100",
		DefaultClkPeriod: 1e9 / 100e6,
		IO:               basys3IO,
		Connectors:       basys3Connectors,
		Programmer:       platform.ProgrammerSpec{Kind: "openocd", Config: "openocd_xc7_ft2232.cfg", FlashProxy: "bscan_spi_xc7a35t.bit"},
		BitstreamCommands: []string{
			"set_property BITSTREAM.CONFIG.SPI_BUSWIDTH 4 [current_design]",
			"set_property BITSTREAM.CONFIG.CONFIGRATE 33 [current_design]",
			"set_property CONFIG_VOLTAGE 3.3 [current_design]",
			"set_property CFGBVS VCCO [current_design]",
		},
	})
}

func init() {
	registry.Register(registry.Registration{
		Name:        "digilent_basys3",
		Tier:        registry.TierOfficial,
		Vendor:      "digilent",
		Description: "Digilent Basys 3, Artix-7 35T trainer board with switches, seven segment display and VGA",
		URL:         "https://digilent.com/shop/basys-3-artix-7-fpga-trainer-board-recommended-for-introductory-users/",
		USB:         []usb.Identifier{usb.FT2232H},
		Platform:    NewDigilentBasys3,
		Target: soc.TargetSpec{
			DefaultSysClkFreq: 75e6,
			ClockPrimitive:    "S7MMCM",
			Speedgrade:        -1,
			ResetResource:     "user_btnc",
			Peripherals: []soc.Peripheral{
				{Name: "leds", Resources: []string{"user_led"}, Default: true},
				{Name: "switches", Resources: []string{"user_sw"}},
				{Name: "seven_seg", Resources: []string{"seven_seg_ctrl"}},
				{Name: "vga", Resources: []string{"vga"}},
				{Name: "ps2", Resources: []string{"ps2"}},
				{Name: "spiflash", Resources: []string{"spiflash4x"}},
			},
		},
	})
}
