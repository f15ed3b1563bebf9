package clock

import (
	"math"
)

var gowinODivs = []int{2, 4, 8, 16, 32, 48, 64, 80, 96, 112, 128}

// gw1nPLL drives rPLL: CLKOUT = FCLKIN * FBDIV / IDIV and VCO = CLKOUT * ODIV.
type gw1nPLL struct {
	base
	pfdRange freqRange
	vcoRange freqRange
	outRange freqRange
	idiv     intRange
	fbdiv    intRange
}

// NewGW1NPLL returns a Gowin GW1N rPLL generator. It has a single output.
func NewGW1NPLL() Generator {
	return &gw1nPLL{
		base: base{
			primitive:  "rPLL",
			inputRange: freqRange{3e6, 400e6},
			maxOutputs: 1,
		},
		pfdRange: freqRange{3e6, 400e6},
		vcoRange: freqRange{400e6, 1200e6},
		outRange: freqRange{3.125e6, 600e6},
		idiv:     intRange{1, 64},
		fbdiv:    intRange{1, 64},
	}
}

func (g *gw1nPLL) Compute() (*Config, error) {
	if err := g.ready(); err != nil {
		return nil, err
	}
	want := g.outputs[0]
	var best *Config
	bestErr := math.Inf(1)
	for i := g.idiv.min; i <= g.idiv.max; i++ {
		pfd := g.input / float64(i)
		if !g.pfdRange.contains(pfd) {
			continue
		}
		for fb := g.fbdiv.min; fb <= g.fbdiv.max; fb++ {
			out := pfd * float64(fb)
			if !g.outRange.contains(out) {
				continue
			}
			diff := math.Abs(out - want.Freq)
			if diff > want.Freq*want.Margin || diff >= bestErr {
				continue
			}
			for _, od := range gowinODivs {
				vco := out * float64(od)
				if !g.vcoRange.contains(vco) {
					continue
				}
				bestErr = diff
				best = &Config{
					Primitive: g.primitive,
					InputFreq: g.input,
					VCOFreq:   vco,
					Params: map[string]int{
						"IDIV_SEL":  i - 1,
						"FBDIV_SEL": fb - 1,
						"ODIV_SEL":  od,
					},
					Outputs: []OutputConfig{{
						Name: want.Name, Freq: want.Freq, Achieved: out, Divider: 1,
					}},
				}
				break
			}
		}
	}
	if best == nil {
		return nil, g.noConfig()
	}
	return best, nil
}
