// Package platform describes FPGA boards: their pin tables, connectors, device and toolchain
// parameters. A Platform hands out pins to whoever builds a design for the board and keeps
// track of what has been requested so constraints can be emitted afterwards.
package platform

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.fpgaboards.dev/boards/utils"
)

// Config is the declarative description of a board. Board files fill one in and hand it to New.
type Config struct {
	Name               string            `json:"name" yaml:"name"`
	Family             Family            `json:"family" yaml:"family"`
	Device             string            `json:"device" yaml:"device"`
	Toolchain          string            `json:"toolchain" yaml:"toolchain"`
	DefaultClkName     string            `json:"default_clk_name,omitempty" yaml:"default_clk_name,omitempty"`
	DefaultClkPeriod   float64           `json:"default_clk_period,omitempty" yaml:"default_clk_period,omitempty"`
	IO                 []Resource        `json:"io" yaml:"io"`
	Connectors         []Connector       `json:"connectors,omitempty" yaml:"connectors,omitempty"`
	Programmer         ProgrammerSpec    `json:"programmer" yaml:"programmer"`
	BitstreamCommands  []string          `json:"bitstream_commands,omitempty" yaml:"bitstream_commands,omitempty"`
	AdditionalCommands []string          `json:"additional_commands,omitempty" yaml:"additional_commands,omitempty"`
	ToolchainOptions   map[string]string `json:"toolchain_options,omitempty" yaml:"toolchain_options,omitempty"`
}

// Validate ensures the pin table and connectors are internally consistent.
func (conf *Config) Validate() error {
	var errs error
	if !utils.ValidNameRegex.MatchString(conf.Name) {
		errs = multierr.Append(errs, utils.ErrInvalidName(conf.Name))
	}
	if conf.Device == "" {
		errs = multierr.Append(errs, utils.NewConfigValidationFieldRequiredError(conf.Name, "device"))
	}
	if conf.Family.Vendor() == "" {
		errs = multierr.Append(errs, errors.Errorf("%s: unknown device family %q", conf.Name, conf.Family))
	}

	seenConnectors := map[string]bool{}
	for _, c := range conf.Connectors {
		if seenConnectors[c.Name] {
			errs = multierr.Append(errs, errors.Errorf("%s: duplicate connector %q", conf.Name, c.Name))
		}
		seenConnectors[c.Name] = true
		if c.Pins != "" && c.Map != nil {
			errs = multierr.Append(errs, errors.Errorf("%s: connector %q has both a pin list and a pin map", conf.Name, c.Name))
		}
	}

	seen := map[string]bool{}
	for _, res := range conf.IO {
		if seen[res.ID()] {
			errs = multierr.Append(errs, errors.Errorf("%s: duplicate resource %s", conf.Name, res.ID()))
		}
		seen[res.ID()] = true
		if _, err := resolveResource(conf.Connectors, res, false); err != nil {
			errs = multierr.Append(errs, errors.Wrap(err, conf.Name))
		}
	}

	if conf.DefaultClkName != "" {
		if !seen[Resource{Name: conf.DefaultClkName}.ID()] {
			errs = multierr.Append(errs, errors.Errorf("%s: default clock %q is not in the pin table", conf.Name, conf.DefaultClkName))
		}
		if conf.DefaultClkPeriod <= 0 {
			errs = multierr.Append(errs, errors.Errorf("%s: default clock period must be positive", conf.Name))
		}
	}
	return errs
}

// PeriodConstraint is a timing constraint on a clock net.
type PeriodConstraint struct {
	Net      string  `json:"net" yaml:"net"`
	PeriodNS float64 `json:"period_ns" yaml:"period_ns"`
}

// Constraints is everything a toolchain needs to place the requested signals.
type Constraints struct {
	Pins   []Pin              `json:"pins" yaml:"pins"`
	Clocks []PeriodConstraint `json:"clocks" yaml:"clocks"`
}

// A Platform is a board ready to have its resources requested.
type Platform struct {
	Config

	mu        sync.Mutex
	requested map[string]*Signal
	sites     map[string]string
	order     []*Signal
	periods   []PeriodConstraint
}

// New validates a board description and returns a Platform with nothing requested yet.
func New(conf Config) (*Platform, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	// The pin table usually lives in a package level variable; copy it so extensions never
	// leak into other Platforms of the same board.
	conf.IO = append([]Resource(nil), conf.IO...)
	conf.Connectors = append([]Connector(nil), conf.Connectors...)
	return &Platform{
		Config:    conf,
		requested: map[string]*Signal{},
		sites:     map[string]string{},
	}, nil
}

// Resolve turns a connector reference into a package pin. Package pins are returned as is.
func (p *Platform) Resolve(pin string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return resolvePin(p.Connectors, pin)
}

// Lookup returns the resource without requesting it.
func (p *Platform) Lookup(name string, number int) (Resource, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	res, ok := p.find(name, number)
	if !ok {
		return Resource{}, &ResourceNotFoundError{Board: p.Name, Name: name, Number: number}
	}
	return res, nil
}

// HasResource reports whether any instance of the named resource exists.
func (p *Platform) HasResource(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, res := range p.IO {
		if res.Name == name {
			return true
		}
	}
	return false
}

// Request hands out a resource. Each resource can be requested once, and two requested
// resources may not share a package pin.
func (p *Platform) Request(name string, number int) (*Signal, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	res, ok := p.find(name, number)
	if !ok {
		return nil, &ResourceNotFoundError{Board: p.Name, Name: name, Number: number}
	}
	return p.requestLocked(res)
}

// RequestNext requests the lowest numbered instance of name that is still available.
func (p *Platform) RequestNext(name string) (*Signal, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, res := range p.instances(name) {
		if _, taken := p.requested[res.ID()]; !taken {
			return p.requestLocked(res)
		}
	}
	return nil, &ResourceNotFoundError{Board: p.Name, Name: name, Number: -1}
}

// RequestAll requests every remaining instance of name, in number order. Either all of them are
// requested or, on error, none.
func (p *Platform) RequestAll(name string) ([]*Signal, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	var sigs []*Signal
	pending := map[string]string{}
	for _, res := range p.instances(name) {
		if _, taken := p.requested[res.ID()]; taken {
			continue
		}
		sig, err := p.checkLocked(res, pending)
		if err != nil {
			return nil, err
		}
		for _, pin := range sig.Pins {
			pending[pin.Site] = res.ID()
		}
		sigs = append(sigs, sig)
	}
	if len(sigs) == 0 {
		return nil, &ResourceNotFoundError{Board: p.Name, Name: name, Number: -1}
	}
	for _, sig := range sigs {
		p.commitLocked(sig)
	}
	return sigs, nil
}

// Requested returns the requested signals in request order.
func (p *Platform) Requested() []*Signal {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*Signal(nil), p.order...)
}

// AddExtension appends resources to the pin table, typically modules plugged into connectors.
// Nothing is added unless every resource is valid. Adding an instance of a resource that is
// already requested is an error since it would change the requested signal's port name.
func (p *Platform) AddExtension(resources ...Resource) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	batch := map[string]bool{}
	for _, res := range resources {
		if _, exists := p.find(res.Name, res.Number); exists || batch[res.ID()] {
			return errors.Errorf("%s: extension resource %s already exists", p.Name, res.ID())
		}
		batch[res.ID()] = true
		for _, sig := range p.order {
			if sig.Resource.Name == res.Name {
				return errors.Errorf("%s: extension adds %s but %s is already requested",
					p.Name, res.ID(), sig.Resource.ID())
			}
		}
		if _, err := resolveResource(p.Connectors, res, false); err != nil {
			return errors.Wrapf(err, "%s: extension", p.Name)
		}
	}
	p.IO = append(p.IO, resources...)
	return nil
}

// AddPeriodConstraint constrains the clock carried by a requested single pin signal.
func (p *Platform) AddPeriodConstraint(sig *Signal, periodNS float64) error {
	if sig == nil || len(sig.Pins) != 1 {
		return errors.New("period constraints apply to single pin signals")
	}
	if periodNS <= 0 {
		return errors.Errorf("invalid period %fns", periodNS)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.addPeriodLocked(sig.Pins[0].Net, periodNS)
}

func (p *Platform) constrainedLocked(net string) bool {
	for _, existing := range p.periods {
		if existing.Net == net {
			return true
		}
	}
	return false
}

func (p *Platform) addPeriodLocked(net string, periodNS float64) error {
	for _, existing := range p.periods {
		if existing.Net != net {
			continue
		}
		if existing.PeriodNS != periodNS {
			return errors.Errorf("clock %s already constrained to %.2fns, new constraint to %.2fns",
				net, existing.PeriodNS, periodNS)
		}
		return nil
	}
	p.periods = append(p.periods, PeriodConstraint{Net: net, PeriodNS: periodNS})
	return nil
}

// Finalize returns the constraints for everything requested so far, adding the default clock
// period when the default clock was requested and is not constrained yet. A period set with
// AddPeriodConstraint on the default clock wins over DefaultClkPeriod.
func (p *Platform) Finalize() Constraints {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.DefaultClkName != "" {
		if sig, ok := p.requested[Resource{Name: p.DefaultClkName}.ID()]; ok && len(sig.Pins) == 1 {
			if !p.constrainedLocked(sig.Pins[0].Net) {
				p.periods = append(p.periods, PeriodConstraint{Net: sig.Pins[0].Net, PeriodNS: p.DefaultClkPeriod})
			}
		}
	}
	var cons Constraints
	for _, sig := range p.order {
		cons.Pins = append(cons.Pins, sig.Pins...)
	}
	cons.Clocks = append(cons.Clocks, p.periods...)
	return cons
}

func (p *Platform) find(name string, number int) (Resource, bool) {
	for _, res := range p.IO {
		if res.Name == name && res.Number == number {
			return res, true
		}
	}
	return Resource{}, false
}

func (p *Platform) instances(name string) []Resource {
	var out []Resource
	for _, res := range p.IO {
		if res.Name == name {
			out = append(out, res)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

func (p *Platform) requestLocked(res Resource) (*Signal, error) {
	sig, err := p.checkLocked(res, nil)
	if err != nil {
		return nil, err
	}
	p.commitLocked(sig)
	return sig, nil
}

// checkLocked resolves res without requesting it. pending holds the sites of other resources
// about to be requested along with it.
func (p *Platform) checkLocked(res Resource, pending map[string]string) (*Signal, error) {
	if _, taken := p.requested[res.ID()]; taken {
		return nil, errors.Wrapf(ErrAlreadyRequested, "%s %s", p.Name, res.ID())
	}
	sig, err := resolveResource(p.Connectors, res, len(p.instances(res.Name)) > 1)
	if err != nil {
		return nil, err
	}
	for _, pin := range sig.Pins {
		holder, used := p.sites[pin.Site]
		if !used {
			holder, used = pending[pin.Site]
		}
		if used {
			return nil, &PinConflictError{Site: pin.Site, Holder: holder, Wanted: res.ID()}
		}
	}
	return sig, nil
}

func (p *Platform) commitLocked(sig *Signal) {
	for _, pin := range sig.Pins {
		p.sites[pin.Site] = sig.Resource.ID()
	}
	p.requested[sig.Resource.ID()] = sig
	p.order = append(p.order, sig)
}
