package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var freqSuffixes = []struct {
	suffix string
	scale  float64
}{
	{"ghz", 1e9},
	{"mhz", 1e6},
	{"khz", 1e3},
	{"hz", 1},
	{"g", 1e9},
	{"m", 1e6},
	{"k", 1e3},
}

// ParseFrequency parses a frequency given either as a plain number of hertz ("100e6",
// "48000000") or with a unit suffix ("100MHz", "12.5 m", "32khz").
func ParseFrequency(inp string) (float64, error) {
	s := strings.ToLower(strings.TrimSpace(inp))
	if s == "" {
		return 0, errors.New("empty frequency")
	}
	scale := 1.0
	for _, fs := range freqSuffixes {
		if strings.HasSuffix(s, fs.suffix) {
			scale = fs.scale
			s = strings.TrimSpace(strings.TrimSuffix(s, fs.suffix))
			break
		}
	}
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid frequency %q", inp)
	}
	hz := val * scale
	if hz <= 0 {
		return 0, errors.Errorf("frequency %q must be positive", inp)
	}
	return hz, nil
}

// FormatFrequency renders a frequency in MHz, e.g. "100.000MHz".
func FormatFrequency(hz float64) string {
	return fmt.Sprintf("%.3fMHz", hz/1e6)
}

// PeriodNS converts a frequency in hertz to a period in nanoseconds.
func PeriodNS(hz float64) float64 {
	return 1e9 / hz
}
