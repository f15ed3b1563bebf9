package registry

import (
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"

	"go.fpgaboards.dev/boards/platform"
	"go.fpgaboards.dev/boards/usb"
)

func noPlatform(platform.Options) (*platform.Platform, error) {
	return nil, errors.New("not needed")
}

func testRegistry() *Registry {
	r := New()
	for _, reg := range []Registration{
		{Name: "digilent_arty", Tier: TierOfficial, Vendor: "digilent", USB: []usb.Identifier{usb.FT2232H}},
		{Name: "digilent_basys3", Tier: TierOfficial, Vendor: "digilent", USB: []usb.Identifier{usb.FT2232H}},
		{Name: "radiona_ulx3s", Tier: TierPartner, Vendor: "radiona", USB: []usb.Identifier{usb.FT231X}},
		{Name: "digilent_arty", Tier: TierCommunity, Vendor: "digilent", Description: "shadowed"},
		{Name: "acme_dev", Tier: TierCommunity, Vendor: "acme"},
		{Name: "other_dev", Tier: TierCommunity, Vendor: "other"},
		{Name: "ulx3s", Tier: TierCommunity},
	} {
		reg.Platform = noPlatform
		r.Register(reg)
	}
	return r
}

func TestAlias(t *testing.T) {
	test.That(t, Registration{Name: "digilent_arty", Vendor: "digilent"}.Alias(), test.ShouldEqual, "arty")
	test.That(t, Registration{Name: "1bitsquared_icebreaker", Vendor: "1bitsquared"}.Alias(), test.ShouldEqual, "icebreaker")
	test.That(t, Registration{Name: "tinyfpga_bx", Vendor: "lattice"}.Alias(), test.ShouldBeEmpty)
	test.That(t, Registration{Name: "plain"}.Alias(), test.ShouldBeEmpty)
}

func TestLookup(t *testing.T) {
	r := testRegistry()

	reg, err := r.Lookup("digilent_arty")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, reg.Tier, test.ShouldEqual, TierOfficial)

	reg, err = r.Lookup("arty")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, reg.Name, test.ShouldEqual, "digilent_arty")
	test.That(t, reg.Tier, test.ShouldEqual, TierOfficial)

	// a full name in a later tier wins over an alias in an earlier one
	reg, err = r.Lookup("ulx3s")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, reg.Tier, test.ShouldEqual, TierCommunity)

	reg, err = r.LookupTier(TierPartner, "ulx3s")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, reg.Name, test.ShouldEqual, "radiona_ulx3s")

	reg, err = r.LookupTier(TierCommunity, "digilent_arty")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, reg.Description, test.ShouldEqual, "shadowed")
}

func TestLookupErrors(t *testing.T) {
	r := testRegistry()
	r.Register(Registration{Name: "other_dev2", Tier: TierCommunity, Vendor: "other", Platform: noPlatform})
	r.Register(Registration{Name: "third_dev", Tier: TierCommunity, Vendor: "third", Platform: noPlatform})

	_, err := r.Lookup("dev")
	var ambiguous *AmbiguousAliasError
	test.That(t, errors.As(err, &ambiguous), test.ShouldBeTrue)
	test.That(t, ambiguous.Candidates, test.ShouldResemble, []string{"acme_dev", "other_dev", "third_dev"})
	test.That(t, err.Error(), test.ShouldContainSubstring, `community alias "dev" is ambiguous`)

	_, err = r.Lookup("arti")
	test.That(t, IsNotFound(err), test.ShouldBeTrue)
	var nf *NotFoundError
	test.That(t, errors.As(err, &nf), test.ShouldBeTrue)
	test.That(t, nf.Suggestions, test.ShouldContain, "arty")
	test.That(t, err.Error(), test.ShouldContainSubstring, "did you mean")

	_, err = r.Lookup("zzzzzzzzzz")
	test.That(t, IsNotFound(err), test.ShouldBeTrue)
	test.That(t, err.Error(), test.ShouldEqual, `board "zzzzzzzzzz" not found`)

	_, err = r.LookupTier(TierPartner, "arty")
	test.That(t, IsNotFound(err), test.ShouldBeTrue)
}

func TestRegisterPanics(t *testing.T) {
	r := testRegistry()
	test.That(t, func() {
		r.Register(Registration{Name: "digilent_arty", Tier: TierOfficial, Platform: noPlatform})
	}, test.ShouldPanic)
	test.That(t, func() {
		r.Register(Registration{Name: "Bad Name", Tier: TierOfficial, Platform: noPlatform})
	}, test.ShouldPanic)
	test.That(t, func() {
		r.Register(Registration{Name: "ok", Tier: "vendor", Platform: noPlatform})
	}, test.ShouldPanic)
	test.That(t, func() {
		r.Register(Registration{Name: "ok", Tier: TierOfficial})
	}, test.ShouldPanic)
}

func TestAll(t *testing.T) {
	all := testRegistry().All()
	var names []string
	for _, reg := range all {
		names = append(names, string(reg.Tier)+"/"+reg.Name)
	}
	test.That(t, names, test.ShouldResemble, []string{
		"official/digilent_arty",
		"official/digilent_basys3",
		"partner/radiona_ulx3s",
		"community/acme_dev",
		"community/digilent_arty",
		"community/other_dev",
		"community/ulx3s",
	})
}

func TestMatchUSB(t *testing.T) {
	r := testRegistry()
	names := func(regs []Registration) []string {
		var out []string
		for _, reg := range regs {
			out = append(out, reg.Name)
		}
		return out
	}
	test.That(t, names(r.MatchUSB(usb.FT2232H)), test.ShouldResemble, []string{"digilent_arty", "digilent_basys3"})
	test.That(t, names(r.MatchUSB(usb.FT231X)), test.ShouldResemble, []string{"radiona_ulx3s"})
	test.That(t, r.MatchUSB(usb.USBBlaster), test.ShouldBeEmpty)
}

func TestParseTier(t *testing.T) {
	tier, err := ParseTier("Partner")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, tier, test.ShouldEqual, TierPartner)
	_, err = ParseTier("gold")
	test.That(t, err, test.ShouldNotBeNil)
}
