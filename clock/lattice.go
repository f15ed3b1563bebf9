package clock

import (
	"math"
)

// ecp5PLL drives EHXPLLL with the internal CLKOS3 feedback path at divider 1, leaving CLKOP,
// CLKOS and CLKOS2 for outputs.
type ecp5PLL struct {
	base
	pfdRange freqRange
	vcoRange freqRange
	clkiDiv  intRange
	clkfbDiv intRange
	clkoDiv  intRange
}

var ecp5OutputNames = []string{"CLKOP", "CLKOS", "CLKOS2"}

// NewECP5PLL returns an ECP5 EHXPLLL generator.
func NewECP5PLL() Generator {
	return &ecp5PLL{
		base: base{
			primitive:     "EHXPLLL",
			inputRange:    freqRange{8e6, 400e6},
			maxOutputs:    len(ecp5OutputNames),
			supportsPhase: true,
		},
		pfdRange: freqRange{3.125e6, 400e6},
		vcoRange: freqRange{400e6, 800e6},
		clkiDiv:  intRange{1, 128},
		clkfbDiv: intRange{1, 128},
		clkoDiv:  intRange{1, 128},
	}
}

func (g *ecp5PLL) Compute() (*Config, error) {
	if err := g.ready(); err != nil {
		return nil, err
	}
	divs := rangeInts(g.clkoDiv)
	for ci := g.clkiDiv.min; ci <= g.clkiDiv.max; ci++ {
		pfd := g.input / float64(ci)
		if !g.pfdRange.contains(pfd) {
			continue
		}
		for fb := g.clkfbDiv.min; fb <= g.clkfbDiv.max; fb++ {
			vco := pfd * float64(fb)
			if !g.vcoRange.contains(vco) {
				continue
			}
			outs, ok := g.matchOutputs(vco, divs)
			if !ok {
				continue
			}
			params := map[string]int{
				"CLKI_DIV":   ci,
				"CLKFB_DIV":  fb,
				"CLKOS3_DIV": 1,
			}
			for i, out := range outs {
				params[ecp5OutputNames[i]+"_DIV"] = out.Divider
			}
			return &Config{
				Primitive: g.primitive,
				InputFreq: g.input,
				VCOFreq:   vco,
				Params:    params,
				Attrs:     map[string]string{"FEEDBK_PATH": "INT_OS3"},
				Outputs:   outs,
			}, nil
		}
	}
	return nil, g.noConfig()
}

// ice40PLL drives SB_PLL40_CORE in SIMPLE feedback mode:
// Fout = Fin * (DIVF+1) / ((DIVR+1) * 2^DIVQ).
type ice40PLL struct {
	base
	pfdRange freqRange
	vcoRange freqRange
	outRange freqRange
	divr     intRange
	divf     intRange
	divq     intRange
}

// NewICE40PLL returns an iCE40 SB_PLL40 generator. It has a single output.
func NewICE40PLL() Generator {
	return &ice40PLL{
		base: base{
			primitive:  "SB_PLL40_CORE",
			inputRange: freqRange{10e6, 133e6},
			maxOutputs: 1,
		},
		pfdRange: freqRange{10e6, 133e6},
		vcoRange: freqRange{533e6, 1066e6},
		outRange: freqRange{16e6, 275e6},
		divr:     intRange{0, 15},
		divf:     intRange{0, 127},
		divq:     intRange{0, 6},
	}
}

// Compute keeps the combination with the smallest frequency error, the way icepll does.
func (g *ice40PLL) Compute() (*Config, error) {
	if err := g.ready(); err != nil {
		return nil, err
	}
	want := g.outputs[0]
	var (
		best                *Config
		bestErr             = math.Inf(1)
		bestR, bestF, bestQ int
	)
	for r := g.divr.min; r <= g.divr.max; r++ {
		pfd := g.input / float64(r+1)
		if !g.pfdRange.contains(pfd) {
			continue
		}
		for f := g.divf.min; f <= g.divf.max; f++ {
			vco := pfd * float64(f+1)
			if !g.vcoRange.contains(vco) {
				continue
			}
			for q := g.divq.min; q <= g.divq.max; q++ {
				out := vco / float64(int(1)<<q)
				if !g.outRange.contains(out) {
					continue
				}
				diff := math.Abs(out - want.Freq)
				if diff > want.Freq*want.Margin || diff >= bestErr {
					continue
				}
				bestErr = diff
				bestR, bestF, bestQ = r, f, q
				best = &Config{
					Primitive: g.primitive,
					InputFreq: g.input,
					VCOFreq:   vco,
					Attrs:     map[string]string{"FEEDBACK_PATH": "SIMPLE"},
					Outputs: []OutputConfig{{
						Name: want.Name, Freq: want.Freq, Achieved: out, Divider: 1 << q,
					}},
				}
			}
		}
	}
	if best == nil {
		return nil, g.noConfig()
	}
	best.Params = map[string]int{
		"DIVR":         bestR,
		"DIVF":         bestF,
		"DIVQ":         bestQ,
		"FILTER_RANGE": ice40FilterRange(g.input / float64(bestR+1)),
	}
	return best, nil
}

func ice40FilterRange(pfd float64) int {
	mhz := pfd / 1e6
	switch {
	case mhz < 17:
		return 1
	case mhz < 26:
		return 2
	case mhz < 44:
		return 3
	case mhz < 66:
		return 4
	case mhz < 101:
		return 5
	default:
		return 6
	}
}
