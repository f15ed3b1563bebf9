// Package registry is the catalog of supported boards. Board packages register themselves at
// init time under one of three tiers; lookups probe the tiers in order.
package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"go.fpgaboards.dev/boards/platform"
	"go.fpgaboards.dev/boards/soc"
	"go.fpgaboards.dev/boards/usb"
	"go.fpgaboards.dev/boards/utils"
)

// Tier is how closely a board is maintained.
type Tier string

// Tiers, in lookup order.
const (
	TierOfficial  Tier = "official"
	TierPartner   Tier = "partner"
	TierCommunity Tier = "community"
)

// Tiers lists the tiers in lookup order.
var Tiers = []Tier{TierOfficial, TierPartner, TierCommunity}

// ParseTier validates a tier name.
func ParseTier(name string) (Tier, error) {
	t := Tier(strings.ToLower(name))
	if !lo.Contains(Tiers, t) {
		return "", utils.NewUnsupportedOptionError("tier", name, lo.Map(Tiers, func(t Tier, _ int) string { return string(t) }))
	}
	return t, nil
}

func (t Tier) rank() int {
	return lo.IndexOf(Tiers, t)
}

// Registration is everything known about a board.
type Registration struct {
	Name        string
	Tier        Tier
	Vendor      string
	Description string
	URL         string
	Platform    platform.Constructor
	Target      soc.TargetSpec
	// USB lists the ids the board's programming interface enumerates with.
	USB []usb.Identifier
}

// Alias is the name with the "<vendor>_" prefix stripped, or "" when the name has no such
// prefix.
func (r Registration) Alias() string {
	prefix := r.Vendor + "_"
	if r.Vendor == "" || !strings.HasPrefix(r.Name, prefix) || r.Name == prefix {
		return ""
	}
	return strings.TrimPrefix(r.Name, prefix)
}

// A NotFoundError is returned when no board matches a name.
type NotFoundError struct {
	Name        string
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("board %q not found", e.Name)
	if len(e.Suggestions) != 0 {
		msg += fmt.Sprintf("; did you mean %s?", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

// IsNotFound returns if the given error is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// An AmbiguousAliasError is returned when a short alias names several boards of a tier.
type AmbiguousAliasError struct {
	Alias      string
	Tier       Tier
	Candidates []string
}

func (e *AmbiguousAliasError) Error() string {
	return fmt.Sprintf("%s alias %q is ambiguous: %s", e.Tier, e.Alias, strings.Join(e.Candidates, ", "))
}

// Registry holds registrations per tier.
type Registry struct {
	mu      sync.RWMutex
	boards  map[Tier]map[string]Registration
	aliases map[Tier]map[string][]string
}

// New returns an empty registry.
func New() *Registry {
	r := &Registry{
		boards:  map[Tier]map[string]Registration{},
		aliases: map[Tier]map[string][]string{},
	}
	for _, t := range Tiers {
		r.boards[t] = map[string]Registration{}
		r.aliases[t] = map[string][]string{}
	}
	return r
}

// Register adds a board. It panics on an invalid registration or a name registered twice in a
// tier.
func (r *Registry) Register(reg Registration) {
	if !utils.ValidNameRegex.MatchString(reg.Name) {
		panic(utils.ErrInvalidName(reg.Name))
	}
	if reg.Tier.rank() < 0 {
		panic(errors.Errorf("board %s has unknown tier %q", reg.Name, reg.Tier))
	}
	if reg.Platform == nil {
		panic(errors.Errorf("board %s has no platform constructor", reg.Name))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, old := r.boards[reg.Tier][reg.Name]; old {
		panic(errors.Errorf("trying to register two %s boards named %s", reg.Tier, reg.Name))
	}
	r.boards[reg.Tier][reg.Name] = reg
	if alias := reg.Alias(); alias != "" {
		r.aliases[reg.Tier][alias] = append(r.aliases[reg.Tier][alias], reg.Name)
	}
}

// Lookup finds a board by full name, then by alias, probing the tiers in order.
func (r *Registry) Lookup(name string) (Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range Tiers {
		if reg, ok := r.boards[t][name]; ok {
			return reg, nil
		}
	}
	for _, t := range Tiers {
		if reg, ok, err := r.lookupAliasLocked(t, name); ok || err != nil {
			return reg, err
		}
	}
	return Registration{}, &NotFoundError{Name: name, Suggestions: r.suggestLocked(name)}
}

// LookupTier finds a board by full name or alias within one tier.
func (r *Registry) LookupTier(tier Tier, name string) (Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if reg, ok := r.boards[tier][name]; ok {
		return reg, nil
	}
	if reg, ok, err := r.lookupAliasLocked(tier, name); ok || err != nil {
		return reg, err
	}
	return Registration{}, &NotFoundError{Name: name, Suggestions: r.suggestLocked(name)}
}

func (r *Registry) lookupAliasLocked(tier Tier, alias string) (Registration, bool, error) {
	names := r.aliases[tier][alias]
	switch len(names) {
	case 0:
		return Registration{}, false, nil
	case 1:
		return r.boards[tier][names[0]], true, nil
	}
	candidates := append([]string(nil), names...)
	sort.Strings(candidates)
	return Registration{}, false, &AmbiguousAliasError{Alias: alias, Tier: tier, Candidates: candidates}
}

// All returns every registration sorted by tier, then name.
func (r *Registry) All() []Registration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Registration
	for _, t := range Tiers {
		out = append(out, lo.Values(r.boards[t])...)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Tier != out[j].Tier {
			return out[i].Tier.rank() < out[j].Tier.rank()
		}
		return out[i].Name < out[j].Name
	})
	return out
}

const maxSuggestions = 3

func (r *Registry) suggestLocked(name string) []string {
	var targets []string
	for _, t := range Tiers {
		targets = append(targets, lo.Keys(r.boards[t])...)
		targets = append(targets, lo.Keys(r.aliases[t])...)
	}
	targets = lo.Uniq(targets)

	type candidate struct {
		name     string
		distance int
	}
	var found []candidate
	for _, rank := range fuzzy.RankFindNormalizedFold(name, targets) {
		found = append(found, candidate{rank.Target, rank.Distance})
	}
	for _, target := range targets {
		if d := fuzzy.LevenshteinDistance(strings.ToLower(name), target); d <= 2 {
			found = append(found, candidate{target, d})
		}
	}
	sort.SliceStable(found, func(i, j int) bool {
		if found[i].distance != found[j].distance {
			return found[i].distance < found[j].distance
		}
		return found[i].name < found[j].name
	})
	names := lo.Uniq(lo.Map(found, func(c candidate, _ int) string { return c.name }))
	if len(names) > maxSuggestions {
		names = names[:maxSuggestions]
	}
	return names
}

// MatchUSB returns the boards whose programming interface uses id, sorted like All.
func (r *Registry) MatchUSB(id usb.Identifier) []Registration {
	return lo.Filter(r.All(), func(reg Registration, _ int) bool {
		return lo.Contains(reg.USB, id)
	})
}

var global = New()

// Register adds a board to the global registry.
func Register(reg Registration) {
	global.Register(reg)
}

// Lookup finds a board in the global registry.
func Lookup(name string) (Registration, error) {
	return global.Lookup(name)
}

// LookupTier finds a board of one tier in the global registry.
func LookupTier(tier Tier, name string) (Registration, error) {
	return global.LookupTier(tier, name)
}

// All returns every board of the global registry.
func All() []Registration {
	return global.All()
}

// MatchUSB returns the boards of the global registry using USB id id.
func MatchUSB(id usb.Identifier) []Registration {
	return global.MatchUSB(id)
}
