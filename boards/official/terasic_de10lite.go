package official

import (
	"go.fpgaboards.dev/boards/platform"
	"go.fpgaboards.dev/boards/registry"
	"go.fpgaboards.dev/boards/soc"
	"go.fpgaboards.dev/boards/usb"
)

var de10liteIO = []platform.Resource{
	{Name: "clk50", Pins: "P11", IOStandard: "3.3-V LVTTL"},

	{Name: "user_led", Number: 0, Pins: "A8", IOStandard: "3.3-V LVTTL"},
	{Name: "user_led", Number: 1, Pins: "A9", IOStandard: "3.3-V LVTTL"},
	{Name: "user_led", Number: 2, Pins: "A10", IOStandard: "3.3-V LVTTL"},
	{Name: "user_led", Number: 3, Pins: "B10", IOStandard: "3.3-V LVTTL"},
	{Name: "user_led", Number: 4, Pins: "D13", IOStandard: "3.3-V LVTTL"},
	{Name: "user_led", Number: 5, Pins: "C13", IOStandard: "3.3-V LVTTL"},
	{Name: "user_led", Number: 6, Pins: "E14", IOStandard: "3.3-V LVTTL"},
	{Name: "user_led", Number: 7, Pins: "D14", IOStandard: "3.3-V LVTTL"},
	{Name: "user_led", Number: 8, Pins: "A11", IOStandard: "3.3-V LVTTL"},
	{Name: "user_led", Number: 9, Pins: "B11", IOStandard: "3.3-V LVTTL"},

	{Name: "user_btn", Number: 0, Pins: "B8", IOStandard: "3.3 V SCHMITT TRIGGER"},
	{Name: "user_btn", Number: 1, Pins: "A7", IOStandard: "3.3 V SCHMITT TRIGGER"},

	{Name: "user_sw", Number: 0, Pins: "C10", IOStandard: "3.3-V LVTTL"},
	{Name: "user_sw", Number: 1, Pins: "C11", IOStandard: "3.3-V LVTTL"},
	{Name: "user_sw", Number: 2, Pins: "D12", IOStandard: "3.3-V LVTTL"},
	{Name: "user_sw", Number: 3, Pins: "C12", IOStandard: "3.3-V LVTTL"},
	{Name: "user_sw", Number: 4, Pins: "A12", IOStandard: "3.3-V LVTTL"},
	{Name: "user_sw", Number: 5, Pins: "B12", IOStandard: "3.3-V LVTTL"},
	{Name: "user_sw", Number: 6, Pins: "A13", IOStandard: "3.3-V LVTTL"},
	{Name: "user_sw", Number: 7, Pins: "A14", IOStandard: "3.3-V LVTTL"},
	{Name: "user_sw", Number: 8, Pins: "B14", IOStandard: "3.3-V LVTTL"},
	{Name: "user_sw", Number: 9, Pins: "F15", IOStandard: "3.3-V LVTTL"},

	// There is no USB-UART on the board: the serial port sits on the Arduino header.
	{Name: "serial", IOStandard: "3.3-V LVTTL", Subsignals: []platform.Subsignal{
		{Name: "tx", Pins: "arduino:1"},
		{Name: "rx", Pins: "arduino:0"},
	}},

	{Name: "seven_seg", Number: 0, Pins: "C14 E15 C15 C16 E16 D17 C17 D15", IOStandard: "3.3-V LVTTL"},
	{Name: "seven_seg", Number: 1, Pins: "C18 D18 E18 B16 A17 A18 B17 A16", IOStandard: "3.3-V LVTTL"},
	{Name: "seven_seg", Number: 2, Pins: "B20 A20 B19 A21 B21 C22 B22 A19", IOStandard: "3.3-V LVTTL"},
	{Name: "seven_seg", Number: 3, Pins: "F21 E22 E21 C19 C20 D19 E17 D22", IOStandard: "3.3-V LVTTL"},
	{Name: "seven_seg", Number: 4, Pins: "F18 E20 E19 J18 H19 F19 F20 F17", IOStandard: "3.3-V LVTTL"},
	{Name: "seven_seg", Number: 5, Pins: "J20 K20 L18 N18 M20 N19 N20 L19", IOStandard: "3.3-V LVTTL"},

	{Name: "vga", IOStandard: "3.3-V LVTTL", Subsignals: []platform.Subsignal{
		{Name: "hsync_n", Pins: "N3"},
		{Name: "vsync_n", Pins: "N1"},
		{Name: "r", Pins: "AA1 V1 Y2 Y1"},
		{Name: "g", Pins: "W1 T2 R2 R1"},
		{Name: "b", Pins: "P1 T1 P4 N2"},
	}},

	{Name: "sdram_clock", Pins: "L14", IOStandard: "3.3-V LVTTL"},
	{Name: "sdram", IOStandard: "3.3-V LVTTL", Subsignals: []platform.Subsignal{
		{Name: "a", Pins: "U17 W19 V18 U18 U19 T18 T19 R18 P18 P19 T20 P20 R20"},
		{Name: "ba", Pins: "T21 T22"},
		{Name: "cs_n", Pins: "U20"},
		{Name: "cke", Pins: "N22"},
		{Name: "ras_n", Pins: "U22"},
		{Name: "cas_n", Pins: "U21"},
		{Name: "we_n", Pins: "V20"},
		{Name: "dq", Pins: "Y21 Y20 AA22 AA21 Y22 W22 W20 V21 P21 J22 H21 H22 G22 G20 G19 F22"},
		{Name: "dm", Pins: "V22 J21"},
	}},
}

var de10liteConnectors = []platform.Connector{
	{Name: "arduino", Pins: "AB5 AB6 AB7 AB8 AB9 AB10 AB12 AB11 AB13 AB14 AA15 AB17 AB19 AB20 Y18 AA18"},
	{Name: "gpio_0", Pins: "V10 W10 V9 W9 V8 W8 V7 W7 W6 V5 W5 AA15 AA14 W13 W12 AB13 AB12 Y11 AB11 W11 AB10 AA10 AA9 Y8 AA8 Y7 AA7 Y6 AA6 Y5 AA5 Y4 AB3 Y3 AB2 AA2"},
}

// NewTerasicDE10Lite returns the DE10-Lite platform.
func NewTerasicDE10Lite(opts platform.Options) (*platform.Platform, error) {
	return platform.New(platform.Config{
		Name:             "terasic_de10lite",
		Family:           platform.FamilyMAX10,
		Device:           "10M50DAF484C7G",
		Toolchain:        opts.ToolchainOr("quartus"),
		DefaultClkName:   "clk50",
		DefaultClkPeriod: 1e9 / 50e6,
		IO:               de10liteIO,
		Connectors:       de10liteConnectors,
		Programmer:       platform.ProgrammerSpec{Kind: "quartus_pgm"},
		AdditionalCommands: []string{
			"quartus_cpf -c {build_name}.sof {build_name}.pof",
		},
	})
}

func init() {
	registry.Register(registry.Registration{
		Name:        "terasic_de10lite",
		Tier:        registry.TierOfficial,
		Vendor:      "terasic",
		Description: "Terasic DE10-Lite, MAX 10 10M50 with SDRAM, VGA and six seven segment digits",
		URL:         "https://www.terasic.com.tw/cgi-bin/page/archive.pl?Language=English&No=1021",
		USB:         []usb.Identifier{usb.USBBlaster},
		Platform:    NewTerasicDE10Lite,
		Target: soc.TargetSpec{
			DefaultSysClkFreq: 50e6,
			ResetResource:     "user_btn",
			ResetActiveLow:    true,
			Peripherals: []soc.Peripheral{
				{Name: "leds", Resources: []string{"user_led"}, Default: true},
				{Name: "switches", Resources: []string{"user_sw"}},
				{Name: "seven_seg", Resources: []string{"seven_seg"}},
				{Name: "vga", Resources: []string{"vga"}},
				{Name: "sdram", Resources: []string{"sdram_clock", "sdram"}},
			},
		},
	})
}
