// Package usb finds USB devices attached to the host, so that boards plugged in can be matched
// against the catalog by their vendor and product ids.
package usb

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Identifier identifies a USB product by the vendor who produced it and the product id the
// vendor gave it.
type Identifier struct {
	Vendor  uint16 `json:"vendor" yaml:"vendor"`
	Product uint16 `json:"product" yaml:"product"`
}

// String renders the identifier the way lsusb does, e.g. "0403:6010".
func (id Identifier) String() string {
	return fmt.Sprintf("%04x:%04x", id.Vendor, id.Product)
}

// ParseIdentifier parses a "vvvv:pppp" hexadecimal identifier.
func ParseIdentifier(s string) (Identifier, error) {
	vendor, product, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return Identifier{}, errors.Errorf("usb id %q must be VENDOR:PRODUCT", s)
	}
	v, err := strconv.ParseUint(vendor, 16, 16)
	if err != nil {
		return Identifier{}, errors.Wrapf(err, "usb vendor id %q", vendor)
	}
	p, err := strconv.ParseUint(product, 16, 16)
	if err != nil {
		return Identifier{}, errors.Wrapf(err, "usb product id %q", product)
	}
	return Identifier{Vendor: uint16(v), Product: uint16(p)}, nil
}

// Common programming interfaces found on FPGA boards.
var (
	FT2232H    = Identifier{Vendor: 0x0403, Product: 0x6010}
	FT231X     = Identifier{Vendor: 0x0403, Product: 0x6015}
	USBBlaster = Identifier{Vendor: 0x09fb, Product: 0x6001}
)

// Description describes a USB device attached to the host.
type Description struct {
	ID           Identifier
	Path         string
	Manufacturer string
	Product      string
	Serial       string
	// TTYs are the serial ports the device exposes, e.g. /dev/ttyUSB1.
	TTYs []string
}
