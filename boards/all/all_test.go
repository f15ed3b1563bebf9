package all

import (
	"testing"

	"go.viam.com/test"

	"go.fpgaboards.dev/boards/platform"
	"go.fpgaboards.dev/boards/registry"
	"go.fpgaboards.dev/boards/soc"
	"go.fpgaboards.dev/boards/toolchain"
)

func TestCatalog(t *testing.T) {
	regs := registry.All()
	test.That(t, len(regs), test.ShouldEqual, 16)

	count := map[registry.Tier]int{}
	for _, reg := range regs {
		count[reg.Tier]++
	}
	test.That(t, count[registry.TierOfficial], test.ShouldEqual, 6)
	test.That(t, count[registry.TierPartner], test.ShouldEqual, 5)
	test.That(t, count[registry.TierCommunity], test.ShouldEqual, 5)
}

func TestAliases(t *testing.T) {
	for alias, name := range map[string]string{
		"arty":         "digilent_arty",
		"icebreaker":   "1bitsquared_icebreaker",
		"ecp5_evn":     "lattice_ecp5_evn",
		"icestick":     "lattice_icestick",
		"5a_75b":       "colorlight_5a_75b",
		"tang_nano_9k": "sipeed_tang_nano_9k",
		"tinyfpga_bx":  "tinyfpga_bx",
	} {
		reg, err := registry.Lookup(alias)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, reg.Name, test.ShouldEqual, name)
	}
}

// optionSets lists the platform options worth constructing for a board: the defaults, then every
// variant and every revision.
func optionSets(spec soc.TargetSpec) []platform.Options {
	sets := []platform.Options{{}}
	for _, v := range spec.Variants {
		sets = append(sets, platform.Options{Variant: v})
	}
	for _, r := range spec.Revisions {
		sets = append(sets, platform.Options{Revision: r})
	}
	return sets
}

func TestBoardsConstruct(t *testing.T) {
	for _, reg := range registry.All() {
		reg := reg
		t.Run(reg.Name, func(t *testing.T) {
			for _, opts := range optionSets(reg.Target) {
				p, err := reg.Platform(opts)
				test.That(t, err, test.ShouldBeNil)
				test.That(t, p.Name, test.ShouldEqual, reg.Name)
				test.That(t, toolchain.Check(toolchain.Kind(p.Toolchain), p.Family), test.ShouldBeNil)
			}

			_, err := reg.Platform(platform.Options{Variant: "no-such-variant"})
			if len(reg.Target.Variants) > 0 {
				test.That(t, err, test.ShouldNotBeNil)
			}
		})
	}
}

func TestBoardsMinimalSoC(t *testing.T) {
	for _, reg := range registry.All() {
		reg := reg
		t.Run(reg.Name, func(t *testing.T) {
			for _, opts := range optionSets(reg.Target) {
				p, err := reg.Platform(opts)
				test.That(t, err, test.ShouldBeNil)

				s, err := soc.NewBaseSoC(p, reg.Target, soc.Options{Variant: opts.Variant, Revision: opts.Revision})
				test.That(t, err, test.ShouldBeNil)
				m := s.Manifest
				test.That(t, m.Board, test.ShouldEqual, reg.Name)
				test.That(t, m.SysClkFreq, test.ShouldEqual, reg.Target.DefaultSysClkFreq)
				test.That(t, m.CRG.Domains[0].Name, test.ShouldEqual, "sys")
				test.That(t, m.Constraints.Clocks, test.ShouldHaveLength, 1)
				if m.UART.Mode == "serial" || m.UART.Mode == "usb_acm" {
					test.That(t, m.UART.Ports, test.ShouldNotBeEmpty)
				}

				files, err := toolchain.Render(p, toolchain.Kind(p.Toolchain), toolchain.Options{})
				test.That(t, err, test.ShouldBeNil)
				test.That(t, files, test.ShouldNotBeEmpty)
			}
		})
	}
}

func TestBoardsHeaders(t *testing.T) {
	for _, reg := range registry.All() {
		p, err := reg.Platform(platform.Options{})
		test.That(t, err, test.ShouldBeNil)
		test.That(t, platform.RegisterHeaders(p), test.ShouldBeNil)
	}
}

func TestFomuVariantPeripherals(t *testing.T) {
	reg, err := registry.Lookup("fomu")
	test.That(t, err, test.ShouldBeNil)

	for variant, with := range map[string]string{"pvt": "touch", "hacker": "touch", "evt": "buttons"} {
		p, err := reg.Platform(platform.Options{Variant: variant})
		test.That(t, err, test.ShouldBeNil)
		s, err := soc.NewBaseSoC(p, reg.Target, soc.Options{Variant: variant, With: []string{with}})
		test.That(t, err, test.ShouldBeNil)
		test.That(t, s.Manifest.Peripherals[len(s.Manifest.Peripherals)-1].Name, test.ShouldEqual, with)
	}

	p, err := reg.Platform(platform.Options{Variant: "pvt"})
	test.That(t, err, test.ShouldBeNil)
	_, err = soc.NewBaseSoC(p, reg.Target, soc.Options{Variant: "pvt", With: []string{"buttons"}})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "not on the pvt variant")
}
