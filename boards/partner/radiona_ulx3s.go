package partner

import (
	"fmt"

	"go.fpgaboards.dev/boards/platform"
	"go.fpgaboards.dev/boards/registry"
	"go.fpgaboards.dev/boards/soc"
	"go.fpgaboards.dev/boards/usb"
)

var ulx3sVariants = []string{"12F", "25F", "45F", "85F"}

var ulx3sIO = []platform.Resource{
	{Name: "clk25", Pins: "G2", IOStandard: "LVCMOS33"},
	{Name: "rst_n", Pins: "D6", IOStandard: "LVCMOS33", Misc: []string{"PULLMODE=UP"}},

	{Name: "user_led", Number: 0, Pins: "B2", IOStandard: "LVCMOS33", Misc: []string{"DRIVE=4"}},
	{Name: "user_led", Number: 1, Pins: "C2", IOStandard: "LVCMOS33", Misc: []string{"DRIVE=4"}},
	{Name: "user_led", Number: 2, Pins: "C1", IOStandard: "LVCMOS33", Misc: []string{"DRIVE=4"}},
	{Name: "user_led", Number: 3, Pins: "D2", IOStandard: "LVCMOS33", Misc: []string{"DRIVE=4"}},
	{Name: "user_led", Number: 4, Pins: "D1", IOStandard: "LVCMOS33", Misc: []string{"DRIVE=4"}},
	{Name: "user_led", Number: 5, Pins: "E2", IOStandard: "LVCMOS33", Misc: []string{"DRIVE=4"}},
	{Name: "user_led", Number: 6, Pins: "E1", IOStandard: "LVCMOS33", Misc: []string{"DRIVE=4"}},
	{Name: "user_led", Number: 7, Pins: "H3", IOStandard: "LVCMOS33", Misc: []string{"DRIVE=4"}},

	{Name: "user_btn", Number: 0, Pins: "R1", IOStandard: "LVCMOS33", Misc: []string{"PULLMODE=DOWN"}},
	{Name: "user_btn", Number: 1, Pins: "T1", IOStandard: "LVCMOS33", Misc: []string{"PULLMODE=DOWN"}},
	{Name: "user_btn", Number: 2, Pins: "R18", IOStandard: "LVCMOS33", Misc: []string{"PULLMODE=DOWN"}},
	{Name: "user_btn", Number: 3, Pins: "V1", IOStandard: "LVCMOS33", Misc: []string{"PULLMODE=DOWN"}},
	{Name: "user_btn", Number: 4, Pins: "U1", IOStandard: "LVCMOS33", Misc: []string{"PULLMODE=DOWN"}},
	{Name: "user_btn", Number: 5, Pins: "H16", IOStandard: "LVCMOS33", Misc: []string{"PULLMODE=DOWN"}},

	{Name: "serial", IOStandard: "LVCMOS33", Subsignals: []platform.Subsignal{
		{Name: "tx", Pins: "L4"},
		{Name: "rx", Pins: "M1"},
	}},

	{Name: "sdram_clock", Pins: "F19", IOStandard: "LVCMOS33", Misc: []string{"SLEWRATE=FAST"}},
	{Name: "sdram", IOStandard: "LVCMOS33", Misc: []string{"SLEWRATE=FAST"}, Subsignals: []platform.Subsignal{
		{Name: "a", Pins: "M20 M19 L20 L19 K20 K19 K18 J20 J19 H20 N19 G20 G19"},
		{Name: "dq", Pins: "J16 L18 M18 N18 P18 T18 T17 U20 E19 D20 D19 C20 E18 F18 J18 J17"},
		{Name: "we_n", Pins: "T20"},
		{Name: "ras_n", Pins: "R20"},
		{Name: "cas_n", Pins: "T19"},
		{Name: "cs_n", Pins: "P20"},
		{Name: "cke", Pins: "F20"},
		{Name: "ba", Pins: "P19 N20"},
		{Name: "dm", Pins: "U19 E20"},
	}},

	{Name: "spisdcard", IOStandard: "LVCMOS33", Misc: []string{"SLEWRATE=FAST"}, Subsignals: []platform.Subsignal{
		{Name: "clk", Pins: "J1"},
		{Name: "mosi", Pins: "J3", Misc: []string{"PULLMODE=UP"}},
		{Name: "cs_n", Pins: "H1", Misc: []string{"PULLMODE=UP"}},
		{Name: "miso", Pins: "K2", Misc: []string{"PULLMODE=UP"}},
	}},

	{Name: "gpdi", IOStandard: "LVCMOS33D", Misc: []string{"DRIVE=4"}, Subsignals: []platform.Subsignal{
		{Name: "clk_p", Pins: "A17"},
		{Name: "data0_p", Pins: "A16"},
		{Name: "data1_p", Pins: "A14"},
		{Name: "data2_p", Pins: "A12"},
	}},

	{Name: "wifi_gpio0", Pins: "L2", IOStandard: "LVCMOS33"},
}

var ulx3sConnectors = []platform.Connector{
	// GPIO header pairs, positive pins first.
	{Name: "gp", Pins: "B11 A10 A9 B9 B10 B8 C8 A7 B6 A5 A4 A3 B4 B3 C3 E7 D7 C6 D5 C7 B5 E8 D8 C9 B12 A11 B13 C13"},
	{Name: "gn", Pins: "C11 A12 C10 A8 D9 A6 B7 C4 C5 A2 B1 C2 B15 D10 D11 E9 E11 D12 F11 E12 F12 D13 E13 D14 E14 D15 E15 F16"},
}

// NewULX3S returns the ULX3S platform. Variants follow the ECP5 size: "12F", "25F", "45F" and
// "85F".
func NewULX3S(opts platform.Options) (*platform.Platform, error) {
	variant, err := platform.SelectVariant(opts.Variant, "85F", ulx3sVariants)
	if err != nil {
		return nil, err
	}
	return platform.New(platform.Config{
		Name:             "radiona_ulx3s",
		Family:           platform.FamilyECP5,
		Device:           fmt.Sprintf("LFE5U-%s-6BG381C", variant),
		Toolchain:        opts.ToolchainOr("trellis"),
		DefaultClkName:   "clk25",
		DefaultClkPeriod: 1e9 / 25e6,
		IO:               ulx3sIO,
		Connectors:       ulx3sConnectors,
		Programmer:       platform.ProgrammerSpec{Kind: "fujprog"},
	})
}

func init() {
	registry.Register(registry.Registration{
		Name:        "radiona_ulx3s",
		Tier:        registry.TierPartner,
		Vendor:      "radiona",
		Description: "Radiona ULX3S, ECP5 12F to 85F with 32MB SDRAM, GPDI video out and an ESP32",
		URL:         "https://radiona.org/ulx3s/",
		USB:         []usb.Identifier{usb.FT231X},
		Platform:    NewULX3S,
		Target: soc.TargetSpec{
			DefaultSysClkFreq: 50e6,
			ResetResource:     "rst_n",
			ResetActiveLow:    true,
			Domains: []soc.ClockDomain{
				{Name: "sys_ps", Ratio: 1, Phase: 180},
			},
			Peripherals: []soc.Peripheral{
				{Name: "leds", Resources: []string{"user_led"}, Default: true},
				{Name: "buttons", Resources: []string{"user_btn"}},
				{Name: "sdram", Resources: []string{"sdram_clock", "sdram"}, Default: true},
				{Name: "sdcard", Resources: []string{"spisdcard"}},
				{Name: "video", Resources: []string{"gpdi"}},
			},
			DefaultVariant: "85F",
			Variants:       ulx3sVariants,
		},
	})
}
