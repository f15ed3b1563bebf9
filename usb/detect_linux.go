//go:build linux

package usb

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// SysPath is where the kernel lists USB devices. It's a variable in case you need to override it
// during tests.
var SysPath = "/sys/bus/usb/devices"

// Search lists the attached USB devices for which includeDevice returns true. A nil includeDevice
// includes everything.
func Search(includeDevice func(id Identifier) bool) ([]Description, error) {
	entries, err := os.ReadDir(SysPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "listing usb devices")
	}
	var results []Description
	for _, entry := range entries {
		// interfaces are named like 1-1.2:1.0, hubs' root devices usb1
		if strings.Contains(entry.Name(), ":") || strings.HasPrefix(entry.Name(), "usb") {
			continue
		}
		dir := filepath.Join(SysPath, entry.Name())
		vendor, errV := readAttr(dir, "idVendor")
		product, errP := readAttr(dir, "idProduct")
		if errV != nil || errP != nil {
			continue
		}
		id, err := ParseIdentifier(vendor + ":" + product)
		if err != nil {
			continue
		}
		if includeDevice != nil && !includeDevice(id) {
			continue
		}
		manufacturer, _ := readAttr(dir, "manufacturer")
		name, _ := readAttr(dir, "product")
		serial, _ := readAttr(dir, "serial")
		results = append(results, Description{
			ID:           id,
			Path:         entry.Name(),
			Manufacturer: manufacturer,
			Product:      name,
			Serial:       serial,
			TTYs:         ttys(dir),
		})
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })
	return results, nil
}

func readAttr(dir, name string) (string, error) {
	//nolint:gosec
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// ttys finds the tty nodes below the device's interfaces: usb-serial adapters show up as
// <intf>/ttyUSB0, CDC ACM ports as <intf>/tty/ttyACM0.
func ttys(dir string) []string {
	var out []string
	for _, pattern := range []string{"*:*/ttyUSB*", "*:*/tty/tty*"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			continue
		}
		for _, m := range matches {
			out = append(out, filepath.Join("/dev", filepath.Base(m)))
		}
	}
	sort.Strings(out)
	return out
}
