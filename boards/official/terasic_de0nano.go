package official

import (
	"go.fpgaboards.dev/boards/platform"
	"go.fpgaboards.dev/boards/registry"
	"go.fpgaboards.dev/boards/soc"
	"go.fpgaboards.dev/boards/usb"
)

var de0nanoIO = []platform.Resource{
	{Name: "clk50", Pins: "R8", IOStandard: "3.3-V LVTTL"},

	{Name: "user_led", Number: 0, Pins: "A15", IOStandard: "3.3-V LVTTL"},
	{Name: "user_led", Number: 1, Pins: "A13", IOStandard: "3.3-V LVTTL"},
	{Name: "user_led", Number: 2, Pins: "B13", IOStandard: "3.3-V LVTTL"},
	{Name: "user_led", Number: 3, Pins: "A11", IOStandard: "3.3-V LVTTL"},
	{Name: "user_led", Number: 4, Pins: "D1", IOStandard: "3.3-V LVTTL"},
	{Name: "user_led", Number: 5, Pins: "F3", IOStandard: "3.3-V LVTTL"},
	{Name: "user_led", Number: 6, Pins: "B1", IOStandard: "3.3-V LVTTL"},
	{Name: "user_led", Number: 7, Pins: "L3", IOStandard: "3.3-V LVTTL"},

	{Name: "key", Number: 0, Pins: "J15", IOStandard: "3.3-V LVTTL"},
	{Name: "key", Number: 1, Pins: "E1", IOStandard: "3.3-V LVTTL"},

	{Name: "user_sw", Number: 0, Pins: "M1", IOStandard: "3.3-V LVTTL"},
	{Name: "user_sw", Number: 1, Pins: "T8", IOStandard: "3.3-V LVTTL"},
	{Name: "user_sw", Number: 2, Pins: "B9", IOStandard: "3.3-V LVTTL"},
	{Name: "user_sw", Number: 3, Pins: "M15", IOStandard: "3.3-V LVTTL"},

	{Name: "serial", IOStandard: "3.3-V LVTTL", Subsignals: []platform.Subsignal{
		{Name: "tx", Pins: "gpio_0:0"},
		{Name: "rx", Pins: "gpio_0:1"},
	}},

	{Name: "sdram_clock", Pins: "R4", IOStandard: "3.3-V LVTTL"},
	{Name: "sdram", IOStandard: "3.3-V LVTTL", Subsignals: []platform.Subsignal{
		{Name: "a", Pins: "P2 N5 N6 M8 P8 T7 N8 T6 R1 P1 N2 N1 L4"},
		{Name: "ba", Pins: "M7 M6"},
		{Name: "cs_n", Pins: "P6"},
		{Name: "cke", Pins: "L7"},
		{Name: "ras_n", Pins: "L2"},
		{Name: "cas_n", Pins: "L1"},
		{Name: "we_n", Pins: "C2"},
		{Name: "dq", Pins: "G2 G1 L8 K5 K2 J2 J1 R7 T4 T2 T3 R3 R5 P3 N3 K1"},
		{Name: "dm", Pins: "R6 T5"},
	}},

	{Name: "epcs", IOStandard: "3.3-V LVTTL", Subsignals: []platform.Subsignal{
		{Name: "data0", Pins: "H2"},
		{Name: "dclk", Pins: "H1"},
		{Name: "ncs0", Pins: "D2"},
		{Name: "asd0", Pins: "C1"},
	}},

	{Name: "adc", IOStandard: "3.3-V LVTTL", Subsignals: []platform.Subsignal{
		{Name: "cs_n", Pins: "A10"},
		{Name: "saddr", Pins: "B10"},
		{Name: "sclk", Pins: "B14"},
		{Name: "sdat", Pins: "A9"},
	}},
}

var de0nanoConnectors = []platform.Connector{
	{Name: "gpio_0", Pins: "D3 C3 A2 A3 B3 B4 A4 B5 A5 D5 B6 A6 B7 D6 A7 C6 C8 E6 E7 D8 E8 F8 F9 E9 C9 D9 E11 E10 C11 B11 A12 D11 D12 B12"},
	{Name: "gpio_1", Pins: "F13 T15 T14 T13 R13 T12 R12 T11 T10 R11 P11 R10 N12 P9 N9 N11 L16 K16 R16 L15 P15 P16 R14 N16 N15 P14 L14 N14 M10 L13 J16 K15 J13 J14"},
}

// NewTerasicDE0Nano returns the DE0-Nano platform.
func NewTerasicDE0Nano(opts platform.Options) (*platform.Platform, error) {
	return platform.New(platform.Config{
		Name:             "terasic_de0nano",
		Family:           platform.FamilyCycloneIV,
		Device:           "EP4CE22F17C6",
		Toolchain:        opts.ToolchainOr("quartus"),
		DefaultClkName:   "clk50",
		DefaultClkPeriod: 1e9 / 50e6,
		IO:               de0nanoIO,
		Connectors:       de0nanoConnectors,
		Programmer:       platform.ProgrammerSpec{Kind: "quartus_pgm"},
	})
}

func init() {
	registry.Register(registry.Registration{
		Name:        "terasic_de0nano",
		Tier:        registry.TierOfficial,
		Vendor:      "terasic",
		Description: "Terasic DE0-Nano, Cyclone IV EP4CE22 with 32MB SDRAM and an 8 channel ADC",
		URL:         "https://www.terasic.com.tw/cgi-bin/page/archive.pl?Language=English&No=593",
		USB:         []usb.Identifier{usb.USBBlaster},
		Platform:    NewTerasicDE0Nano,
		Target: soc.TargetSpec{
			DefaultSysClkFreq: 50e6,
			Domains: []soc.ClockDomain{
				{Name: "sys_ps", Ratio: 1, Phase: 270},
			},
			ResetResource:  "key",
			ResetActiveLow: true,
			Peripherals: []soc.Peripheral{
				{Name: "leds", Resources: []string{"user_led"}, Default: true},
				{Name: "switches", Resources: []string{"user_sw"}},
				{Name: "sdram", Resources: []string{"sdram_clock", "sdram"}},
				{Name: "adc", Resources: []string{"adc"}},
				{Name: "spiflash", Resources: []string{"epcs"}},
			},
		},
	})
}
