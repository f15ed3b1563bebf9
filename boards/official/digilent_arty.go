package official

import (
	"go.fpgaboards.dev/boards/platform"
	"go.fpgaboards.dev/boards/registry"
	"go.fpgaboards.dev/boards/soc"
	"go.fpgaboards.dev/boards/usb"
)

// Arty A7 reference manual: https://digilent.com/reference/programmable-logic/arty-a7/reference-manual
var artyDevices = map[string]string{
	"a7-35":  "xc7a35ticsg324-1L",
	"a7-100": "xc7a100tcsg324-1",
}

var artyIO = []platform.Resource{
	{Name: "clk100", Pins: "E3", IOStandard: "LVCMOS33"},
	{Name: "cpu_reset", Pins: "C2", IOStandard: "LVCMOS33"},

	{Name: "user_led", Number: 0, Pins: "H5", IOStandard: "LVCMOS33"},
	{Name: "user_led", Number: 1, Pins: "J5", IOStandard: "LVCMOS33"},
	{Name: "user_led", Number: 2, Pins: "T9", IOStandard: "LVCMOS33"},
	{Name: "user_led", Number: 3, Pins: "T10", IOStandard: "LVCMOS33"},

	{Name: "rgb_led", Number: 0, IOStandard: "LVCMOS33", Subsignals: []platform.Subsignal{
		{Name: "r", Pins: "G6"}, {Name: "g", Pins: "F6"}, {Name: "b", Pins: "E1"},
	}},
	{Name: "rgb_led", Number: 1, IOStandard: "LVCMOS33", Subsignals: []platform.Subsignal{
		{Name: "r", Pins: "G3"}, {Name: "g", Pins: "J4"}, {Name: "b", Pins: "G4"},
	}},
	{Name: "rgb_led", Number: 2, IOStandard: "LVCMOS33", Subsignals: []platform.Subsignal{
		{Name: "r", Pins: "J3"}, {Name: "g", Pins: "J2"}, {Name: "b", Pins: "H4"},
	}},
	{Name: "rgb_led", Number: 3, IOStandard: "LVCMOS33", Subsignals: []platform.Subsignal{
		{Name: "r", Pins: "K1"}, {Name: "g", Pins: "H6"}, {Name: "b", Pins: "K2"},
	}},

	{Name: "user_sw", Number: 0, Pins: "A8", IOStandard: "LVCMOS33"},
	{Name: "user_sw", Number: 1, Pins: "C11", IOStandard: "LVCMOS33"},
	{Name: "user_sw", Number: 2, Pins: "C10", IOStandard: "LVCMOS33"},
	{Name: "user_sw", Number: 3, Pins: "A10", IOStandard: "LVCMOS33"},

	{Name: "user_btn", Number: 0, Pins: "D9", IOStandard: "LVCMOS33"},
	{Name: "user_btn", Number: 1, Pins: "C9", IOStandard: "LVCMOS33"},
	{Name: "user_btn", Number: 2, Pins: "B9", IOStandard: "LVCMOS33"},
	{Name: "user_btn", Number: 3, Pins: "B8", IOStandard: "LVCMOS33"},

	{Name: "serial", IOStandard: "LVCMOS33", Subsignals: []platform.Subsignal{
		{Name: "tx", Pins: "D10"},
		{Name: "rx", Pins: "A9"},
	}},

	{Name: "spiflash4x", IOStandard: "LVCMOS33", Subsignals: []platform.Subsignal{
		{Name: "cs_n", Pins: "L13"},
		{Name: "clk", Pins: "L16"},
		{Name: "dq", Pins: "K17 K18 L14 M14"},
	}},

	{Name: "ddram", Misc: []string{"SLEW=FAST"}, IOStandard: "SSTL135", Subsignals: []platform.Subsignal{
		{Name: "a", Pins: "R2 M6 N4 T1 N6 R7 V6 U7 R8 V7 R6 U6 T6 T8"},
		{Name: "ba", Pins: "R1 P4 P2"},
		{Name: "ras_n", Pins: "P3"},
		{Name: "cas_n", Pins: "M4"},
		{Name: "we_n", Pins: "P5"},
		{Name: "cs_n", Pins: "U8"},
		{Name: "dm", Pins: "L1 U1"},
		{Name: "dq", Pins: "K5 L3 K3 L6 M3 M1 L4 M2 V4 T5 U4 V5 V1 T3 U3 R3", Misc: []string{"SLEW=FAST", "IN_TERM=UNTUNED_SPLIT_40"}},
		{Name: "dqs_p", Pins: "N2 U2", IOStandard: "DIFF_SSTL135"},
		{Name: "dqs_n", Pins: "N1 V2", IOStandard: "DIFF_SSTL135"},
		{Name: "clk_p", Pins: "U9", IOStandard: "DIFF_SSTL135"},
		{Name: "clk_n", Pins: "V9", IOStandard: "DIFF_SSTL135"},
		{Name: "cke", Pins: "N5"},
		{Name: "odt", Pins: "R5"},
		{Name: "reset_n", Pins: "K6"},
	}},

	{Name: "eth_ref_clk", Pins: "G18", IOStandard: "LVCMOS33"},
	{Name: "eth_clocks", IOStandard: "LVCMOS33", Subsignals: []platform.Subsignal{
		{Name: "tx", Pins: "H16"},
		{Name: "rx", Pins: "F15"},
	}},
	{Name: "eth", IOStandard: "LVCMOS33", Subsignals: []platform.Subsignal{
		{Name: "rst_n", Pins: "C16"},
		{Name: "mdio", Pins: "K13"},
		{Name: "mdc", Pins: "F16"},
		{Name: "rx_dv", Pins: "G16"},
		{Name: "rx_er", Pins: "C17"},
		{Name: "rx_data", Pins: "D18 E17 E18 G17"},
		{Name: "tx_en", Pins: "H15"},
		{Name: "tx_data", Pins: "H14 J14 J13 H17"},
		{Name: "col", Pins: "D17"},
		{Name: "crs", Pins: "G14"},
	}},
}

var artyConnectors = []platform.Connector{
	{Name: "pmoda", Pins: "G13 B11 A11 D12 D13 B18 A18 K16"},
	{Name: "pmodb", Pins: "E15 E16 D15 C15 J17 J18 K15 J15"},
	{Name: "pmodc", Pins: "U12 V12 V10 V11 U14 V14 T13 U13"},
	{Name: "pmodd", Pins: "D4 D3 F4 F3 E2 D2 H2 G2"},
	{Name: "ck_io", Pins: "V15 U16 P14 T11 R12 T14 T15 T16 N15 M16 V17 U18 R17 P17"},
}

// NewDigilentArty returns the Arty A7 platform. Variants are "a7-35" and "a7-100".
func NewDigilentArty(opts platform.Options) (*platform.Platform, error) {
	variant, err := platform.SelectVariant(opts.Variant, "a7-35", []string{"a7-35", "a7-100"})
	if err != nil {
		return nil, err
	}
	proxy := "bscan_spi_xc7a35t.bit"
	if variant == "a7-100" {
		proxy = "bscan_spi_xc7a100t.bit"
	}
	return platform.New(platform.Config{
		Name:             "digilent_arty",
		Family:           platform.FamilyArtix7,
		Device:           artyDevices[variant],
		Toolchain:        opts.ToolchainOr("vivado"),
		DefaultClkName:   "clk100",
		DefaultClkPeriod: 1e9 / 100e6,
		IO:               artyIO,
		Connectors:       artyConnectors,
		Programmer:       platform.ProgrammerSpec{Kind: "openocd", Config: "openocd_xc7_ft2232.cfg", FlashProxy: proxy},
		BitstreamCommands: []string{
			"set_property BITSTREAM.CONFIG.SPI_BUSWIDTH 4 [current_design]",
		},
		AdditionalCommands: []string{
			`write_cfgmem -force -format bin -interface spix4 -size 16 -loadbit "up 0x0 {build_name}.bit" -file {build_name}.bin`,
		},
	})
}

func init() {
	registry.Register(registry.Registration{
		Name:        "digilent_arty",
		Tier:        registry.TierOfficial,
		Vendor:      "digilent",
		Description: "Digilent Arty A7, Artix-7 35T/100T with DDR3 and 10/100 Ethernet",
		URL:         "https://digilent.com/shop/arty-a7-artix-7-fpga-development-board/",
		USB:         []usb.Identifier{usb.FT2232H},
		Platform:    NewDigilentArty,
		Target: soc.TargetSpec{
			DefaultSysClkFreq: 100e6,
			ClockPrimitive:    "S7PLL",
			Speedgrade:        -1,
			ResetResource:     "cpu_reset",
			ResetActiveLow:    true,
			Domains: []soc.ClockDomain{
				{Name: "sys4x", Ratio: 4},
				{Name: "sys4x_dqs", Ratio: 4, Phase: 90},
				{Name: "idelay", Freq: 200e6},
			},
			Peripherals: []soc.Peripheral{
				{Name: "leds", Resources: []string{"user_led"}, Default: true},
				{Name: "rgb_leds", Resources: []string{"rgb_led"}},
				{Name: "switches", Resources: []string{"user_sw", "user_btn"}},
				{Name: "spiflash", Resources: []string{"spiflash4x"}},
				{Name: "ddram", Resources: []string{"ddram"}},
				{Name: "ethernet", Resources: []string{"eth_ref_clk", "eth_clocks", "eth"}},
			},
			DefaultVariant: "a7-35",
			Variants:       []string{"a7-35", "a7-100"},
		},
	})
}
