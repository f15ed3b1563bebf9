package community

import (
	"go.fpgaboards.dev/boards/platform"
	"go.fpgaboards.dev/boards/registry"
	"go.fpgaboards.dev/boards/soc"
)

var colorlightRevisions = []string{"6.0", "6.1", "7.0", "8.0"}

// On every revision the serial port is borrowed from the LED and button pins; it only works
// when those are left alone.
var colorlightV6IO = []platform.Resource{
	{Name: "clk25", Pins: "P6", IOStandard: "LVCMOS33"},
	{Name: "user_led_n", Pins: "P11", IOStandard: "LVCMOS33"},
	{Name: "user_btn_n", Pins: "M13", IOStandard: "LVCMOS33"},
	{Name: "serial", IOStandard: "LVCMOS33", Subsignals: []platform.Subsignal{
		{Name: "tx", Pins: "P11"},
		{Name: "rx", Pins: "M13"},
	}},
	{Name: "spiflash", IOStandard: "LVCMOS33", Subsignals: []platform.Subsignal{
		{Name: "cs_n", Pins: "R2"},
		{Name: "mosi", Pins: "T2"},
		{Name: "miso", Pins: "R1"},
	}},
	{Name: "sdram_clock", Pins: "C8", IOStandard: "LVCMOS33"},
	{Name: "sdram", IOStandard: "LVCMOS33", Subsignals: []platform.Subsignal{
		{Name: "a", Pins: "A9 E10 B12 D13 C12 D11 D10 E9 D9 B7 A12"},
		{Name: "dq", Pins: "B13 C11 C10 A11 C9 E8 B6 B9 A6 B5 A5 B4 B3 C3 A2 B2 E2 D3 A4 E4 D4 C4 E5 D5 E6 D6 D8 A8 B8 B10 B11 E11"},
		{Name: "we_n", Pins: "C7"},
		{Name: "ras_n", Pins: "D7"},
		{Name: "cas_n", Pins: "E7"},
		{Name: "ba", Pins: "A7"},
	}},
	{Name: "eth_clocks", IOStandard: "LVCMOS33", Subsignals: []platform.Subsignal{
		{Name: "tx", Pins: "M2"},
		{Name: "rx", Pins: "M1"},
	}},
	{Name: "eth", IOStandard: "LVCMOS33", Subsignals: []platform.Subsignal{
		{Name: "rst_n", Pins: "P4"},
		{Name: "mdio", Pins: "P5"},
		{Name: "mdc", Pins: "N5"},
		{Name: "rx_ctl", Pins: "N6"},
		{Name: "rx_data", Pins: "N1 M5 N4 L4"},
		{Name: "tx_ctl", Pins: "M3"},
		{Name: "tx_data", Pins: "L1 L3 P2 L5"},
	}},
}

var colorlightV7IO = []platform.Resource{
	{Name: "clk25", Pins: "P6", IOStandard: "LVCMOS33"},
	{Name: "user_led_n", Pins: "T6", IOStandard: "LVCMOS33"},
	{Name: "user_btn_n", Pins: "R7", IOStandard: "LVCMOS33"},
	{Name: "serial", IOStandard: "LVCMOS33", Subsignals: []platform.Subsignal{
		{Name: "tx", Pins: "T6"},
		{Name: "rx", Pins: "R7"},
	}},
	{Name: "spiflash", IOStandard: "LVCMOS33", Subsignals: []platform.Subsignal{
		{Name: "cs_n", Pins: "N8"},
		{Name: "mosi", Pins: "T8"},
		{Name: "miso", Pins: "T7"},
	}},
	{Name: "sdram_clock", Pins: "C6", IOStandard: "LVCMOS33"},
	{Name: "sdram", IOStandard: "LVCMOS33", Subsignals: []platform.Subsignal{
		{Name: "a", Pins: "A9 B9 B10 C10 D9 C9 E9 D8 E8 C7 B8"},
		{Name: "dq", Pins: "B2 A2 C3 A3 B3 A4 B4 A5 E7 C5 D5 E6 C4 D4 E4 D3 A13 B13 C12 B12 D12 C11 B11 A11 D14 C14 E13 D13 C13 B14 A14 E12"},
		{Name: "we_n", Pins: "B5"},
		{Name: "ras_n", Pins: "B6"},
		{Name: "cas_n", Pins: "A6"},
		{Name: "ba", Pins: "B7"},
	}},
	{Name: "eth_clocks", IOStandard: "LVCMOS33", Subsignals: []platform.Subsignal{
		{Name: "tx", Pins: "M2"},
		{Name: "rx", Pins: "M1"},
	}},
	{Name: "eth", IOStandard: "LVCMOS33", Subsignals: []platform.Subsignal{
		{Name: "rst_n", Pins: "P5"},
		{Name: "mdio", Pins: "T2"},
		{Name: "mdc", Pins: "P3"},
		{Name: "rx_ctl", Pins: "N6"},
		{Name: "rx_data", Pins: "N1 M5 N5 M6"},
		{Name: "tx_ctl", Pins: "M3"},
		{Name: "tx_data", Pins: "L1 L3 P2 L4"},
	}},
}

var colorlightConnectors = []platform.Connector{
	{Name: "j1", Pins: "C4 D4 E4 - D3 E3 F4 - F3 F5 G3 - G4 H3 H4 G5 H5 -"},
	{Name: "j2", Pins: "F1 F2 G2 - G1 H2 H1 - J1 J2 J3 - J4 K3 K4 J5 K5 -"},
}

// NewColorlight5A75B returns the Colorlight 5A-75B platform. Revisions are "6.0", "6.1", "7.0"
// and "8.0"; 8.0 kept the 7.0 pinout.
func NewColorlight5A75B(opts platform.Options) (*platform.Platform, error) {
	rev, err := platform.ParseRevision(opts.Revision, "7.0", colorlightRevisions)
	if err != nil {
		return nil, err
	}
	io := colorlightV6IO
	if platform.RevisionAtLeast(rev, "7.0") {
		io = colorlightV7IO
	}
	return platform.New(platform.Config{
		Name:             "colorlight_5a_75b",
		Family:           platform.FamilyECP5,
		Device:           "LFE5U-25F-6BG256C",
		Toolchain:        opts.ToolchainOr("trellis"),
		DefaultClkName:   "clk25",
		DefaultClkPeriod: 1e9 / 25e6,
		IO:               io,
		Connectors:       colorlightConnectors,
		Programmer:       platform.ProgrammerSpec{Kind: "openfpgaloader", Config: "colorlight"},
	})
}

func init() {
	registry.Register(registry.Registration{
		Name:        "colorlight_5a_75b",
		Tier:        registry.TierCommunity,
		Vendor:      "colorlight",
		Description: "Colorlight 5A-75B LED panel receiver card, ECP5 25F with two gigabit PHYs",
		URL:         "https://github.com/q3k/chubby75/tree/master/5a-75b",
		Platform:    NewColorlight5A75B,
		Target: soc.TargetSpec{
			DefaultSysClkFreq: 60e6,
			Peripherals: []soc.Peripheral{
				{Name: "leds", Resources: []string{"user_led_n"}},
				{Name: "button", Resources: []string{"user_btn_n"}},
				{Name: "spiflash", Resources: []string{"spiflash"}},
				{Name: "sdram", Resources: []string{"sdram_clock", "sdram"}},
				{Name: "ethernet", Resources: []string{"eth_clocks", "eth"}},
			},
			DefaultRevision: "7.0",
			Revisions:       colorlightRevisions,
		},
	})
}
