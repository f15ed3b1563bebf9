package official

import (
	"go.fpgaboards.dev/boards/platform"
	"go.fpgaboards.dev/boards/registry"
	"go.fpgaboards.dev/boards/soc"
	"go.fpgaboards.dev/boards/usb"
)

var nexys4ddrIO = []platform.Resource{
	{Name: "clk100", Pins: "E3", IOStandard: "LVCMOS33"},
	{Name: "cpu_reset", Pins: "C12", IOStandard: "LVCMOS33"},

	{Name: "user_led", Number: 0, Pins: "H17", IOStandard: "LVCMOS33"},
	{Name: "user_led", Number: 1, Pins: "K15", IOStandard: "LVCMOS33"},
	{Name: "user_led", Number: 2, Pins: "J13", IOStandard: "LVCMOS33"},
	{Name: "user_led", Number: 3, Pins: "N14", IOStandard: "LVCMOS33"},
	{Name: "user_led", Number: 4, Pins: "R18", IOStandard: "LVCMOS33"},
	{Name: "user_led", Number: 5, Pins: "V17", IOStandard: "LVCMOS33"},
	{Name: "user_led", Number: 6, Pins: "U17", IOStandard: "LVCMOS33"},
	{Name: "user_led", Number: 7, Pins: "U16", IOStandard: "LVCMOS33"},
	{Name: "user_led", Number: 8, Pins: "V16", IOStandard: "LVCMOS33"},
	{Name: "user_led", Number: 9, Pins: "T15", IOStandard: "LVCMOS33"},
	{Name: "user_led", Number: 10, Pins: "U14", IOStandard: "LVCMOS33"},
	{Name: "user_led", Number: 11, Pins: "T16", IOStandard: "LVCMOS33"},
	{Name: "user_led", Number: 12, Pins: "V15", IOStandard: "LVCMOS33"},
	{Name: "user_led", Number: 13, Pins: "V14", IOStandard: "LVCMOS33"},
	{Name: "user_led", Number: 14, Pins: "V12", IOStandard: "LVCMOS33"},
	{Name: "user_led", Number: 15, Pins: "V11", IOStandard: "LVCMOS33"},

	{Name: "user_sw", Number: 0, Pins: "J15", IOStandard: "LVCMOS33"},
	{Name: "user_sw", Number: 1, Pins: "L16", IOStandard: "LVCMOS33"},
	{Name: "user_sw", Number: 2, Pins: "M13", IOStandard: "LVCMOS33"},
	{Name: "user_sw", Number: 3, Pins: "R15", IOStandard: "LVCMOS33"},
	{Name: "user_sw", Number: 4, Pins: "R17", IOStandard: "LVCMOS33"},
	{Name: "user_sw", Number: 5, Pins: "T18", IOStandard: "LVCMOS33"},
	{Name: "user_sw", Number: 6, Pins: "U18", IOStandard: "LVCMOS33"},
	{Name: "user_sw", Number: 7, Pins: "R13", IOStandard: "LVCMOS33"},

	{Name: "user_btn", Number: 0, Pins: "N17", IOStandard: "LVCMOS33"},
	{Name: "user_btn", Number: 1, Pins: "M18", IOStandard: "LVCMOS33"},
	{Name: "user_btn", Number: 2, Pins: "P17", IOStandard: "LVCMOS33"},
	{Name: "user_btn", Number: 3, Pins: "M17", IOStandard: "LVCMOS33"},
	{Name: "user_btn", Number: 4, Pins: "P18", IOStandard: "LVCMOS33"},

	{Name: "serial", IOStandard: "LVCMOS33", Subsignals: []platform.Subsignal{
		{Name: "tx", Pins: "D4"},
		{Name: "rx", Pins: "C4"},
	}},

	{Name: "sdcard", IOStandard: "LVCMOS33", Misc: []string{"SLEW=FAST"}, Subsignals: []platform.Subsignal{
		{Name: "clk", Pins: "B1"},
		{Name: "cmd", Pins: "C1", Misc: []string{"PULLUP=TRUE"}},
		{Name: "data", Pins: "C2 E1 F1 D2", Misc: []string{"PULLUP=TRUE"}},
		{Name: "cd", Pins: "A1"},
	}},
	{Name: "sdcard_reset", Pins: "E2", IOStandard: "LVCMOS33"},

	{Name: "ddram", IOStandard: "SSTL18_II", Misc: []string{"SLEW=FAST"}, Subsignals: []platform.Subsignal{
		{Name: "a", Pins: "M4 P4 M6 T1 L3 P5 M2 N1 L4 N5 R2 K5 N6"},
		{Name: "ba", Pins: "P2 P3 R1"},
		{Name: "ras_n", Pins: "N4"},
		{Name: "cas_n", Pins: "L1"},
		{Name: "we_n", Pins: "N2"},
		{Name: "dm", Pins: "T6 U1"},
		{Name: "dq", Pins: "R7 V6 R8 U7 V7 R6 U6 R5 T5 U3 V5 U4 V4 T4 V1 T3"},
		{Name: "dqs_p", Pins: "U9 U2", IOStandard: "DIFF_SSTL18_II"},
		{Name: "dqs_n", Pins: "V9 V2", IOStandard: "DIFF_SSTL18_II"},
		{Name: "clk_p", Pins: "L6", IOStandard: "DIFF_SSTL18_II"},
		{Name: "clk_n", Pins: "L5", IOStandard: "DIFF_SSTL18_II"},
		{Name: "cke", Pins: "M1"},
		{Name: "odt", Pins: "M3"},
		{Name: "cs_n", Pins: "K6"},
	}},

	{Name: "eth_clocks", IOStandard: "LVCMOS33", Subsignals: []platform.Subsignal{
		{Name: "ref_clk", Pins: "D5"},
	}},
	{Name: "eth", IOStandard: "LVCMOS33", Subsignals: []platform.Subsignal{
		{Name: "rst_n", Pins: "B3"},
		{Name: "rx_data", Pins: "C11 D10"},
		{Name: "crs_dv", Pins: "D9"},
		{Name: "tx_en", Pins: "B9"},
		{Name: "tx_data", Pins: "A10 A8"},
		{Name: "mdc", Pins: "C9"},
		{Name: "mdio", Pins: "A9"},
		{Name: "rx_er", Pins: "C10"},
		{Name: "int_n", Pins: "D8"},
	}},
}

var nexys4ddrConnectors = []platform.Connector{
	{Name: "pmoda", Pins: "C17 D18 E18 G17 D17 E17 F18 G18"},
	{Name: "pmodb", Pins: "D14 F16 G16 H14 E16 F13 G13 H16"},
	{Name: "pmodc", Pins: "K1 F6 J2 G6 E7 J3 J4 E6"},
	{Name: "pmodd", Pins: "H4 H1 G1 G3 H2 G4 G2 F3"},
	{Name: "pmodxdac", Pins: "A13 A15 B16 B18 A14 A16 B17 A18"},
}

// NewDigilentNexys4DDR returns the Nexys 4 DDR platform.
func NewDigilentNexys4DDR(opts platform.Options) (*platform.Platform, error) {
	return platform.New(platform.Config{
		Name:             "digilent_nexys4ddr",
		Family:           platform.FamilyArtix7,
		Device:           "xc7a100t-csg324-1",
		Toolchain:        opts.ToolchainOr("vivado"),
		DefaultClkName:   "clk100",
		DefaultClkPeriod: 1e9 / 100e6,
		IO:               nexys4ddrIO,
		Connectors:       nexys4ddrConnectors,
		Programmer:       platform.ProgrammerSpec{Kind: "openocd", Config: "openocd_xc7_ft2232.cfg", FlashProxy: "bscan_spi_xc7a100t.bit"},
		BitstreamCommands: []string{
			"set_property INTERNAL_VREF 0.750 [get_iobanks 34]",
		},
	})
}

func init() {
	registry.Register(registry.Registration{
		Name:        "digilent_nexys4ddr",
		Tier:        registry.TierOfficial,
		Vendor:      "digilent",
		Description: "Digilent Nexys 4 DDR, Artix-7 100T with DDR2, microSD and RMII Ethernet",
		URL:         "https://digilent.com/reference/programmable-logic/nexys-4-ddr/start",
		USB:         []usb.Identifier{usb.FT2232H},
		Platform:    NewDigilentNexys4DDR,
		Target: soc.TargetSpec{
			DefaultSysClkFreq: 75e6,
			ClockPrimitive:    "S7MMCM",
			Speedgrade:        -1,
			ResetResource:     "cpu_reset",
			ResetActiveLow:    true,
			Domains: []soc.ClockDomain{
				{Name: "sys2x", Ratio: 2},
				{Name: "sys2x_dqs", Ratio: 2, Phase: 90},
				{Name: "idelay", Freq: 200e6},
				{Name: "eth", Freq: 50e6},
			},
			Peripherals: []soc.Peripheral{
				{Name: "leds", Resources: []string{"user_led"}, Default: true},
				{Name: "switches", Resources: []string{"user_sw", "user_btn"}},
				{Name: "sdcard", Resources: []string{"sdcard", "sdcard_reset"}},
				{Name: "ddram", Resources: []string{"ddram"}},
				{Name: "ethernet", Resources: []string{"eth_clocks", "eth"}},
			},
		},
	})
}
