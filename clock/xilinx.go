package clock

import (
	"fmt"
)

type xilinx7 struct {
	base
	multParam string
	pfdRange  freqRange
	vcoRange  freqRange
	divclk    intRange
	mult      intRange
	outDiv    intRange
}

// NewS7MMCM returns a 7-series MMCME2_ADV generator for the given speedgrade (1, 2 or 3, sign
// ignored).
func NewS7MMCM(speedgrade int) Generator {
	vcoMax, pfdMax := 1200e6, 450e6
	switch abs(speedgrade) {
	case 2:
		vcoMax, pfdMax = 1440e6, 500e6
	case 3:
		vcoMax, pfdMax = 1600e6, 550e6
	}
	return &xilinx7{
		base: base{
			primitive:     "MMCME2_ADV",
			inputRange:    freqRange{10e6, 800e6},
			maxOutputs:    7,
			supportsPhase: true,
		},
		multParam: "CLKFBOUT_MULT_F",
		pfdRange:  freqRange{10e6, pfdMax},
		vcoRange:  freqRange{600e6, vcoMax},
		divclk:    intRange{1, 106},
		mult:      intRange{2, 64},
		outDiv:    intRange{1, 128},
	}
}

// NewS7PLL returns a 7-series PLLE2_ADV generator for the given speedgrade.
func NewS7PLL(speedgrade int) Generator {
	vcoMax, pfdMax := 1600e6, 450e6
	switch abs(speedgrade) {
	case 2:
		vcoMax, pfdMax = 1866e6, 500e6
	case 3:
		vcoMax, pfdMax = 2133e6, 550e6
	}
	return &xilinx7{
		base: base{
			primitive:     "PLLE2_ADV",
			inputRange:    freqRange{19e6, 800e6},
			maxOutputs:    6,
			supportsPhase: true,
		},
		multParam: "CLKFBOUT_MULT",
		pfdRange:  freqRange{19e6, pfdMax},
		vcoRange:  freqRange{800e6, vcoMax},
		divclk:    intRange{1, 56},
		mult:      intRange{2, 64},
		outDiv:    intRange{1, 128},
	}
}

// Compute walks the input divider upwards and the feedback multiplier downwards, so the first
// match runs the VCO as fast as the constraints allow.
func (g *xilinx7) Compute() (*Config, error) {
	if err := g.ready(); err != nil {
		return nil, err
	}
	divs := rangeInts(g.outDiv)
	for d := g.divclk.min; d <= g.divclk.max; d++ {
		if !g.pfdRange.contains(g.input / float64(d)) {
			continue
		}
		for m := g.mult.max; m >= g.mult.min; m-- {
			vco := g.input * float64(m) / float64(d)
			if !g.vcoRange.contains(vco) {
				continue
			}
			outs, ok := g.matchOutputs(vco, divs)
			if !ok {
				continue
			}
			params := map[string]int{
				"DIVCLK_DIVIDE": d,
				g.multParam:     m,
			}
			for i, out := range outs {
				params[fmt.Sprintf("CLKOUT%d_DIVIDE", i)] = out.Divider
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

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}
