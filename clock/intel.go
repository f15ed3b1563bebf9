package clock

import (
	"fmt"
)

type intelPLL struct {
	base
	pfdRange freqRange
	vcoRange freqRange
	n        intRange
	m        intRange
	c        intRange
}

// NewCycloneIVPLL returns a Cyclone IV ALTPLL generator.
func NewCycloneIVPLL() Generator {
	return newIntelPLL()
}

// NewMAX10PLL returns a MAX 10 ALTPLL generator. MAX 10 shares the Cyclone IV PLL limits.
func NewMAX10PLL() Generator {
	return newIntelPLL()
}

func newIntelPLL() *intelPLL {
	return &intelPLL{
		base: base{
			primitive:     "ALTPLL",
			inputRange:    freqRange{5e6, 472.5e6},
			maxOutputs:    5,
			supportsPhase: true,
		},
		pfdRange: freqRange{5e6, 325e6},
		vcoRange: freqRange{600e6, 1300e6},
		n:        intRange{1, 512},
		m:        intRange{1, 512},
		c:        intRange{1, 512},
	}
}

func (g *intelPLL) Compute() (*Config, error) {
	if err := g.ready(); err != nil {
		return nil, err
	}
	divs := rangeInts(g.c)
	for n := g.n.min; n <= g.n.max; n++ {
		if !g.pfdRange.contains(g.input / float64(n)) {
			continue
		}
		for m := g.m.max; m >= g.m.min; m-- {
			vco := g.input * float64(m) / float64(n)
			if !g.vcoRange.contains(vco) {
				continue
			}
			outs, ok := g.matchOutputs(vco, divs)
			if !ok {
				continue
			}
			params := map[string]int{"n": n, "m": m}
			for i, out := range outs {
				params[fmt.Sprintf("c%d", i)] = out.Divider
			}
			return &Config{
				Primitive: g.primitive,
				InputFreq: g.input,
				VCOFreq:   vco,
				Params:    params,
				Outputs:   outs,
			}, nil
		}
	}
	return nil, g.noConfig()
}
