package partner

import (
	"go.fpgaboards.dev/boards/platform"
	"go.fpgaboards.dev/boards/registry"
	"go.fpgaboards.dev/boards/soc"
	"go.fpgaboards.dev/boards/usb"
)

var tangNano9KIO = []platform.Resource{
	{Name: "clk27", Pins: "52", IOStandard: "LVCMOS33"},
	{Name: "rst_n", Pins: "4", IOStandard: "LVCMOS18"},
	{Name: "user_btn", Number: 0, Pins: "3", IOStandard: "LVCMOS18"},

	{Name: "user_led", Number: 0, Pins: "10", IOStandard: "LVCMOS18"},
	{Name: "user_led", Number: 1, Pins: "11", IOStandard: "LVCMOS18"},
	{Name: "user_led", Number: 2, Pins: "13", IOStandard: "LVCMOS18"},
	{Name: "user_led", Number: 3, Pins: "14", IOStandard: "LVCMOS18"},
	{Name: "user_led", Number: 4, Pins: "15", IOStandard: "LVCMOS18"},
	{Name: "user_led", Number: 5, Pins: "16", IOStandard: "LVCMOS18"},

	{Name: "serial", IOStandard: "LVCMOS33", Subsignals: []platform.Subsignal{
		{Name: "rx", Pins: "18"},
		{Name: "tx", Pins: "17"},
	}},

	{Name: "spiflash", IOStandard: "LVCMOS33", Subsignals: []platform.Subsignal{
		{Name: "cs_n", Pins: "60"},
		{Name: "clk", Pins: "59"},
		{Name: "miso", Pins: "62"},
		{Name: "mosi", Pins: "61"},
	}},

	{Name: "spisdcard", IOStandard: "LVCMOS33", Subsignals: []platform.Subsignal{
		{Name: "clk", Pins: "36"},
		{Name: "mosi", Pins: "37"},
		{Name: "cs_n", Pins: "38"},
		{Name: "miso", Pins: "39"},
	}},

	{Name: "lcd", IOStandard: "LVCMOS33", Subsignals: []platform.Subsignal{
		{Name: "clk", Pins: "35"},
		{Name: "hsync", Pins: "25"},
		{Name: "vsync", Pins: "26"},
		{Name: "de", Pins: "33"},
		{Name: "r", Pins: "27 28 29 30 31"},
		{Name: "g", Pins: "32 48 49 40 34 55"},
		{Name: "b", Pins: "41 42 51 53 54"},
	}},
}

var tangNano9KConnectors = []platform.Connector{
	{Name: "j6", Pins: "38 37 36 39 25 26 27 28 29 30 33 34 40 35 41 42 51 53 54 55 56 57 68 69"},
	{Name: "j7", Pins: "63 86 85 84 83 82 81 80 79 77 76 75 74 73 72 71 70 - 48 49 31 32 - -"},
}

// NewTangNano9K returns the Tang Nano 9K platform.
func NewTangNano9K(opts platform.Options) (*platform.Platform, error) {
	return platform.New(platform.Config{
		Name:             "sipeed_tang_nano_9k",
		Family:           platform.FamilyGW1N,
		Device:           "GW1NR-LV9QN88PC6/I5",
		Toolchain:        opts.ToolchainOr("gowin"),
		DefaultClkName:   "clk27",
		DefaultClkPeriod: 1e9 / 27e6,
		IO:               tangNano9KIO,
		Connectors:       tangNano9KConnectors,
		Programmer:       platform.ProgrammerSpec{Kind: "openfpgaloader", Config: "tangnano9k"},
		ToolchainOptions: map[string]string{"gowin_family": "GW1N-9C"},
	})
}

func init() {
	registry.Register(registry.Registration{
		Name:        "sipeed_tang_nano_9k",
		Tier:        registry.TierPartner,
		Vendor:      "sipeed",
		Description: "Sipeed Tang Nano 9K, Gowin GW1NR-9 with PSRAM and an RGB LCD connector",
		URL:         "https://wiki.sipeed.com/hardware/en/tang/Tang-Nano-9K/Nano-9K.html",
		USB:         []usb.Identifier{usb.FT2232H},
		Platform:    NewTangNano9K,
		Target: soc.TargetSpec{
			DefaultSysClkFreq: 27e6,
			ResetResource:     "rst_n",
			ResetActiveLow:    true,
			Peripherals: []soc.Peripheral{
				{Name: "leds", Resources: []string{"user_led"}, Default: true},
				{Name: "spiflash", Resources: []string{"spiflash"}},
				{Name: "sdcard", Resources: []string{"spisdcard"}},
				{Name: "lcd", Resources: []string{"lcd"}},
			},
		},
	})
}
