package platform

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Pin is one package pin of a requested signal, with its electrical settings resolved.
type Pin struct {
	// Net is the top-level port name, e.g. "clk100", "serial_tx" or "user_led[2]".
	Net        string   `json:"net" yaml:"net"`
	Resource   string   `json:"resource" yaml:"resource"`
	Subsignal  string   `json:"subsignal,omitempty" yaml:"subsignal,omitempty"`
	Index      int      `json:"index" yaml:"index"`
	Site       string   `json:"site" yaml:"site"`
	IOStandard string   `json:"io_standard,omitempty" yaml:"io_standard,omitempty"`
	Misc       []string `json:"misc,omitempty" yaml:"misc,omitempty"`
}

// Signal is a requested resource with every connector reference resolved.
type Signal struct {
	Resource Resource
	// Port is the base port name. Resources with a single instance use their bare name,
	// otherwise the number is appended ("user_led0").
	Port string
	Pins []Pin
}

// Width is the number of pins of the signal.
func (s *Signal) Width() int {
	return len(s.Pins)
}

// Sub returns the pins belonging to a subsignal.
func (s *Signal) Sub(name string) []Pin {
	var out []Pin
	for _, pin := range s.Pins {
		if pin.Subsignal == name {
			out = append(out, pin)
		}
	}
	return out
}

// HasSub reports whether the signal has the named subsignal.
func (s *Signal) HasSub(name string) bool {
	return len(s.Sub(name)) != 0
}

func resolvePin(conns []Connector, pin string) (string, error) {
	seen := map[string]bool{}
	for IsConnectorRef(pin) {
		if seen[pin] {
			return "", errors.Errorf("connector reference cycle at %q", pin)
		}
		seen[pin] = true
		connName, key, _ := strings.Cut(pin, ":")
		var conn *Connector
		for i := range conns {
			if conns[i].Name == connName {
				conn = &conns[i]
				break
			}
		}
		if conn == nil {
			return "", errors.Errorf("unknown connector %q in %q", connName, pin)
		}
		target, err := conn.Lookup(key)
		if err != nil {
			return "", err
		}
		if target == Unconnected {
			return "", errors.Errorf("connector position %q is not connected", pin)
		}
		pin = target
	}
	return pin, nil
}

func resolveResource(conns []Connector, res Resource, numbered bool) (*Signal, error) {
	hasPins := strings.TrimSpace(res.Pins) != ""
	if hasPins == (len(res.Subsignals) != 0) {
		return nil, errors.Errorf("resource %s must have either pins or subsignals", res.ID())
	}

	port := res.Name
	if numbered {
		port += strconv.Itoa(res.Number)
	}
	sig := &Signal{Resource: res, Port: port}

	addPins := func(net, sub, pins, iostd string, misc []string) error {
		list := splitPins(pins)
		if len(list) == 0 {
			return errors.Errorf("resource %s subsignal %q has no pins", res.ID(), sub)
		}
		for i, ref := range list {
			site, err := resolvePin(conns, ref)
			if err != nil {
				return errors.Wrapf(err, "resource %s", res.ID())
			}
			pinNet := net
			if len(list) > 1 {
				pinNet = fmt.Sprintf("%s[%d]", net, i)
			}
			sig.Pins = append(sig.Pins, Pin{
				Net:        pinNet,
				Resource:   res.ID(),
				Subsignal:  sub,
				Index:      i,
				Site:       site,
				IOStandard: iostd,
				Misc:       misc,
			})
		}
		return nil
	}

	if hasPins {
		if err := addPins(port, "", res.Pins, res.IOStandard, res.Misc); err != nil {
			return nil, err
		}
	} else {
		seenSubs := map[string]bool{}
		for _, sub := range res.Subsignals {
			if seenSubs[sub.Name] {
				return nil, errors.Errorf("resource %s has duplicate subsignal %q", res.ID(), sub.Name)
			}
			seenSubs[sub.Name] = true
			err := addPins(port+"_"+sub.Name, sub.Name, sub.Pins,
				inheritIOStandard(sub.IOStandard, res.IOStandard), inheritMisc(sub.Misc, res.Misc))
			if err != nil {
				return nil, err
			}
		}
	}

	sites := map[string]bool{}
	for _, pin := range sig.Pins {
		if sites[pin.Site] {
			return nil, errors.Errorf("resource %s uses pin %s twice", res.ID(), pin.Site)
		}
		sites[pin.Site] = true
	}
	return sig, nil
}
