//go:build !linux

package usb

import "github.com/pkg/errors"

// Search is only implemented on linux.
func Search(includeDevice func(id Identifier) bool) ([]Description, error) {
	return nil, errors.New("usb device search is only supported on linux")
}
