package platform

import (
	"testing"

	"go.viam.com/test"
)

func TestSelectVariant(t *testing.T) {
	v, err := SelectVariant("", "a7-35", []string{"a7-35", "a7-100"})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, v, test.ShouldEqual, "a7-35")

	v, err = SelectVariant("a7-100", "a7-35", []string{"a7-35", "a7-100"})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, v, test.ShouldEqual, "a7-100")

	_, err = SelectVariant("a7-200", "a7-35", []string{"a7-35", "a7-100"})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `unsupported variant "a7-200"; expected one of: a7-35, a7-100`)
}

func TestParseRevision(t *testing.T) {
	known := []string{"6.0", "6.1", "7.0", "8.0"}
	v, err := ParseRevision("", "7.0", known)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, v.Major(), test.ShouldEqual, uint64(7))
	test.That(t, RevisionAtLeast(v, "7.0"), test.ShouldBeTrue)
	test.That(t, RevisionAtLeast(v, "8.0"), test.ShouldBeFalse)

	v, err = ParseRevision("6.1", "7.0", known)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, v.Minor(), test.ShouldEqual, uint64(1))
	test.That(t, RevisionAtLeast(v, "7.0"), test.ShouldBeFalse)

	v, err = ParseRevision("r0.2", "r0.2", []string{"r0.1", "r0.2"})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, v.String(), test.ShouldEqual, "0.2.0")

	_, err = ParseRevision("9.0", "7.0", known)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = ParseRevision("bogus", "bogus", []string{"bogus"})
	test.That(t, err, test.ShouldNotBeNil)
}
