//go:build linux

package cli

import (
	"os"
	"path/filepath"
	"testing"

	"go.viam.com/test"

	"go.fpgaboards.dev/boards/usb"
)

func TestDetect(t *testing.T) {
	ta := setup(t)
	root := t.TempDir()
	prev := usb.SysPath
	usb.SysPath = root
	t.Cleanup(func() { usb.SysPath = prev })

	test.That(t, ta.run("detect"), test.ShouldBeNil)
	test.That(t, ta.out.String(), test.ShouldContainSubstring, "no boards found")

	for dir, ids := range map[string][2]string{
		"1-1": {"1209", "5af0"},
		"1-2": {"046d", "c52b"},
	} {
		test.That(t, os.MkdirAll(filepath.Join(root, dir), 0o750), test.ShouldBeNil)
		test.That(t, os.WriteFile(filepath.Join(root, dir, "idVendor"), []byte(ids[0]), 0o600), test.ShouldBeNil)
		test.That(t, os.WriteFile(filepath.Join(root, dir, "idProduct"), []byte(ids[1]), 0o600), test.ShouldBeNil)
	}
	test.That(t, ta.run("detect"), test.ShouldBeNil)
	out := ta.out.String()
	test.That(t, out, test.ShouldContainSubstring, "1209:5af0")
	test.That(t, out, test.ShouldContainSubstring, "gsd_orangecrab")
	test.That(t, out, test.ShouldNotContainSubstring, "046d:c52b")

	test.That(t, ta.run("detect", "--all"), test.ShouldBeNil)
	test.That(t, ta.out.String(), test.ShouldContainSubstring, "046d:c52b")
}
