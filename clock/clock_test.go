package clock

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"

	"go.fpgaboards.dev/boards/platform"
)

func withinMargin(t *testing.T, conf *Config) {
	t.Helper()
	for _, out := range conf.Outputs {
		test.That(t, math.Abs(out.Achieved-out.Freq), test.ShouldBeLessThanOrEqualTo, out.Freq*DefaultMargin)
	}
}

func TestS7PLL(t *testing.T) {
	g := NewS7PLL(-1)
	test.That(t, g.Primitive(), test.ShouldEqual, "PLLE2_ADV")
	test.That(t, g.Register(100e6), test.ShouldBeNil)
	test.That(t, g.AddOutput("sys", 100e6, 0, 0), test.ShouldBeNil)
	test.That(t, g.AddOutput("sys4x", 400e6, 0, 0), test.ShouldBeNil)
	test.That(t, g.AddOutput("idelay", 200e6, 0, 0), test.ShouldBeNil)

	conf, err := g.Compute()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, conf.VCOFreq, test.ShouldEqual, 1600e6)
	test.That(t, conf.Params["DIVCLK_DIVIDE"], test.ShouldEqual, 1)
	test.That(t, conf.Params["CLKFBOUT_MULT"], test.ShouldEqual, 16)
	test.That(t, conf.Params["CLKOUT0_DIVIDE"], test.ShouldEqual, 16)
	test.That(t, conf.Params["CLKOUT1_DIVIDE"], test.ShouldEqual, 4)
	test.That(t, conf.Params["CLKOUT2_DIVIDE"], test.ShouldEqual, 8)
	withinMargin(t, conf)

	out, ok := conf.Output("sys4x")
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, out.Achieved, test.ShouldEqual, 400e6)
	_, ok = conf.Output("nope")
	test.That(t, ok, test.ShouldBeFalse)
}

func TestS7MMCM(t *testing.T) {
	g := NewS7MMCM(1)
	test.That(t, g.Register(100e6), test.ShouldBeNil)
	test.That(t, g.AddOutput("sys", 75e6, 0, 90), test.ShouldBeNil)
	conf, err := g.Compute()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, conf.VCOFreq, test.ShouldBeGreaterThanOrEqualTo, 600e6)
	test.That(t, conf.VCOFreq, test.ShouldBeLessThanOrEqualTo, 1200e6)
	test.That(t, conf.Outputs[0].Phase, test.ShouldEqual, 90)
	withinMargin(t, conf)
}

func TestECP5PLL(t *testing.T) {
	g := NewECP5PLL()
	test.That(t, g.Register(25e6), test.ShouldBeNil)
	test.That(t, g.AddOutput("sys", 50e6, 0, 0), test.ShouldBeNil)
	conf, err := g.Compute()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, conf.Primitive, test.ShouldEqual, "EHXPLLL")
	test.That(t, conf.Params["CLKI_DIV"], test.ShouldEqual, 1)
	test.That(t, conf.Params["CLKFB_DIV"], test.ShouldEqual, 16)
	test.That(t, conf.Params["CLKOP_DIV"], test.ShouldEqual, 8)
	test.That(t, conf.Params["CLKOS3_DIV"], test.ShouldEqual, 1)
	test.That(t, conf.Attrs["FEEDBK_PATH"], test.ShouldEqual, "INT_OS3")

	for _, name := range []string{"a", "b"} {
		test.That(t, g.AddOutput(name, 25e6, 0, 0), test.ShouldBeNil)
	}
	err = g.AddOutput("c", 25e6, 0, 0)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "at most 3 outputs")
}

func TestICE40PLL(t *testing.T) {
	g := NewICE40PLL()
	test.That(t, g.Register(12e6), test.ShouldBeNil)
	test.That(t, g.AddOutput("sys", 48e6, 0, 0), test.ShouldBeNil)
	conf, err := g.Compute()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, conf.Params["DIVR"], test.ShouldEqual, 0)
	test.That(t, conf.Params["DIVF"], test.ShouldEqual, 63)
	test.That(t, conf.Params["DIVQ"], test.ShouldEqual, 4)
	test.That(t, conf.Params["FILTER_RANGE"], test.ShouldEqual, 1)
	test.That(t, conf.VCOFreq, test.ShouldEqual, 768e6)
	test.That(t, conf.Outputs[0].Achieved, test.ShouldEqual, 48e6)

	t.Run("single output", func(t *testing.T) {
		err := g.AddOutput("other", 24e6, 0, 0)
		test.That(t, err, test.ShouldNotBeNil)
	})

	t.Run("no phase", func(t *testing.T) {
		g := NewICE40PLL()
		err := g.AddOutput("sys", 24e6, 0, 90)
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "phase")
	})

	t.Run("out of range", func(t *testing.T) {
		g := NewICE40PLL()
		test.That(t, g.Register(12e6), test.ShouldBeNil)
		test.That(t, g.AddOutput("sys", 300e6, 0, 0), test.ShouldBeNil)
		_, err := g.Compute()
		var noConf *NoConfigError
		test.That(t, errors.As(err, &noConf), test.ShouldBeTrue)
		test.That(t, noConf.Input, test.ShouldEqual, 12e6)
		test.That(t, err.Error(), test.ShouldContainSubstring, "sys=300.000MHz")
	})
}

func TestIntelPLL(t *testing.T) {
	for _, g := range []Generator{NewCycloneIVPLL(), NewMAX10PLL()} {
		test.That(t, g.Register(50e6), test.ShouldBeNil)
		test.That(t, g.AddOutput("sys", 50e6, 0, 0), test.ShouldBeNil)
		test.That(t, g.AddOutput("sys_ps", 50e6, 0, 270), test.ShouldBeNil)
		conf, err := g.Compute()
		test.That(t, err, test.ShouldBeNil)
		test.That(t, conf.Params["n"], test.ShouldEqual, 1)
		test.That(t, conf.Params["m"], test.ShouldEqual, 26)
		test.That(t, conf.Params["c0"], test.ShouldEqual, 26)
		test.That(t, conf.Params["c1"], test.ShouldEqual, 26)
		test.That(t, conf.Outputs[1].Phase, test.ShouldEqual, 270)
	}
}

func TestGW1NPLL(t *testing.T) {
	g := NewGW1NPLL()
	test.That(t, g.Register(27e6), test.ShouldBeNil)
	test.That(t, g.AddOutput("sys", 27e6, 0, 0), test.ShouldBeNil)
	conf, err := g.Compute()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, conf.Params["IDIV_SEL"], test.ShouldEqual, 0)
	test.That(t, conf.Params["FBDIV_SEL"], test.ShouldEqual, 0)
	test.That(t, conf.Params["ODIV_SEL"], test.ShouldEqual, 16)
	test.That(t, conf.VCOFreq, test.ShouldEqual, 432e6)
}

func TestRegisterAndReady(t *testing.T) {
	g := NewECP5PLL()
	_, err := g.Compute()
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "no input clock")

	test.That(t, g.Register(1e6), test.ShouldNotBeNil)
	test.That(t, g.Register(25e6), test.ShouldBeNil)
	test.That(t, g.Register(25e6), test.ShouldNotBeNil)

	_, err = g.Compute()
	test.That(t, err.Error(), test.ShouldContainSubstring, "no outputs")

	test.That(t, g.AddOutput("sys", 0, 0, 0), test.ShouldNotBeNil)
	test.That(t, g.AddOutput("sys", 50e6, 0, 0), test.ShouldBeNil)
	test.That(t, g.AddOutput("sys", 50e6, 0, 0), test.ShouldNotBeNil)
}

func TestForFamily(t *testing.T) {
	for family, primitive := range map[platform.Family]string{
		platform.FamilyArtix7:    "PLLE2_ADV",
		platform.FamilyECP5:      "EHXPLLL",
		platform.FamilyICE40:     "SB_PLL40_CORE",
		platform.FamilyCycloneIV: "ALTPLL",
		platform.FamilyMAX10:     "ALTPLL",
		platform.FamilyGW1N:      "rPLL",
	} {
		g, err := ForFamily(family, 1)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, g.Primitive(), test.ShouldEqual, primitive)
	}
	_, err := ForFamily("virtex2", 1)
	test.That(t, err, test.ShouldNotBeNil)

	g, err := New("s7mmcm", 2)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, g.Primitive(), test.ShouldEqual, "MMCME2_ADV")
	_, err = New("bogus", 1)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "S7PLL")
}
