package platform

import (
	"sync"

	"github.com/pkg/errors"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/pin"
	"periph.io/x/conn/v3/pin/pinreg"
)

var (
	headersMu  sync.Mutex
	registered = map[string]bool{}
)

// HeaderName is the periph.io header name used for a board connector.
func HeaderName(board, connector string) string {
	return board + "." + connector
}

// RegisterHeaders publishes the board's connectors in periph.io's pin registry so they can be
// browsed with the usual pinreg tooling. Unconnected positions show up as gpio.INVALID.
// Calling it again for the same board is a no-op.
func RegisterHeaders(p *Platform) error {
	headersMu.Lock()
	defer headersMu.Unlock()
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, conn := range p.Connectors {
		name := HeaderName(p.Name, conn.Name)
		if registered[name] {
			continue
		}
		keys := conn.Keys()
		row := make([]pin.Pin, 0, len(keys))
		for _, key := range keys {
			target, err := conn.Lookup(key)
			if err != nil {
				return err
			}
			if target == Unconnected {
				row = append(row, gpio.INVALID)
				continue
			}
			site, err := resolvePin(p.Connectors, target)
			if err != nil {
				return err
			}
			row = append(row, &pin.BasicPin{N: site})
		}
		if err := pinreg.Register(name, [][]pin.Pin{row}); err != nil {
			return errors.Wrapf(err, "registering header %s", name)
		}
		registered[name] = true
	}
	return nil
}
