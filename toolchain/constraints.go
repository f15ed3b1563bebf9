package toolchain

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"go.fpgaboards.dev/boards/platform"
	"go.fpgaboards.dev/boards/utils"
)

// A ConstraintWriter renders finalized constraints in one vendor format.
type ConstraintWriter func(w io.Writer, cons platform.Constraints) error

// Misc attributes are written as KEY=VALUE in pin tables.
func splitMisc(misc string) (string, string) {
	k, v, ok := strings.Cut(misc, "=")
	if !ok {
		return misc, ""
	}
	return k, v
}

func freqMHz(periodNS float64) float64 {
	return 1e3 / periodNS
}

type lineWriter struct {
	w   *bufio.Writer
	err error
}

func newLineWriter(w io.Writer) *lineWriter {
	return &lineWriter{w: bufio.NewWriter(w)}
}

func (lw *lineWriter) printf(format string, args ...interface{}) {
	if lw.err != nil {
		return
	}
	_, lw.err = fmt.Fprintf(lw.w, format+"\n", args...)
}

func (lw *lineWriter) flush() error {
	if lw.err != nil {
		return errors.Wrap(lw.err, "writing constraints")
	}
	return errors.Wrap(lw.w.Flush(), "writing constraints")
}

// WriteXDC writes Vivado constraints.
func WriteXDC(w io.Writer, cons platform.Constraints) error {
	lw := newLineWriter(w)
	for _, pin := range cons.Pins {
		lw.printf("set_property LOC %s [get_ports {%s}]", pin.Site, pin.Net)
		if pin.IOStandard != "" {
			lw.printf("set_property IOSTANDARD %s [get_ports {%s}]", pin.IOStandard, pin.Net)
		}
		for _, misc := range pin.Misc {
			k, v := splitMisc(misc)
			if v == "" {
				v = "TRUE"
			}
			lw.printf("set_property %s %s [get_ports {%s}]", k, v, pin.Net)
		}
	}
	for _, clk := range cons.Clocks {
		lw.printf("create_clock -name %s -period %.3f [get_ports {%s}]", clockName(clk.Net), clk.PeriodNS, clk.Net)
	}
	return lw.flush()
}

// WritePCF writes iCE40 physical constraints for nextpnr-ice40. Misc entries are passed as
// set_io flags, e.g. "-pullup yes".
func WritePCF(w io.Writer, cons platform.Constraints) error {
	lw := newLineWriter(w)
	for _, pin := range cons.Pins {
		flags := ""
		for _, misc := range pin.Misc {
			flags += misc + " "
		}
		lw.printf("set_io %s%s %s", flags, pin.Net, pin.Site)
	}
	for _, clk := range cons.Clocks {
		lw.printf("set_frequency %s %.3f", clk.Net, freqMHz(clk.PeriodNS))
	}
	return lw.flush()
}

// WriteLPF writes Lattice preference constraints, used by both nextpnr-ecp5 and Diamond.
func WriteLPF(w io.Writer, cons platform.Constraints) error {
	lw := newLineWriter(w)
	lw.printf("BLOCK RESETPATHS;")
	lw.printf("BLOCK ASYNCPATHS;")
	for _, pin := range cons.Pins {
		lw.printf("LOCATE COMP \"%s\" SITE \"%s\";", pin.Net, pin.Site)
		attrs := make([]string, 0, len(pin.Misc)+1)
		if pin.IOStandard != "" {
			attrs = append(attrs, "IO_TYPE="+pin.IOStandard)
		}
		attrs = append(attrs, pin.Misc...)
		if len(attrs) != 0 {
			lw.printf("IOBUF PORT \"%s\" %s;", pin.Net, strings.Join(attrs, " "))
		}
	}
	for _, clk := range cons.Clocks {
		lw.printf("FREQUENCY PORT \"%s\" %.3f MHz;", clk.Net, freqMHz(clk.PeriodNS))
	}
	return lw.flush()
}

// WriteQSF writes the pin assignment part of a Quartus settings file. Clocks go to the SDC.
func WriteQSF(w io.Writer, cons platform.Constraints) error {
	lw := newLineWriter(w)
	for _, pin := range cons.Pins {
		lw.printf("set_location_assignment -comment \"%s\" -to %s Pin_%s", pin.Resource, pin.Net, pin.Site)
		if pin.IOStandard != "" {
			lw.printf("set_instance_assignment -name io_standard \"%s\" -to %s", pin.IOStandard, pin.Net)
		}
		for _, misc := range pin.Misc {
			k, v := splitMisc(misc)
			if v == "" {
				v = "ON"
			}
			lw.printf("set_instance_assignment -name %s \"%s\" -to %s", k, v, pin.Net)
		}
	}
	return lw.flush()
}

// WriteSDC writes Synopsys design constraints with one clock per period constraint.
func WriteSDC(w io.Writer, cons platform.Constraints) error {
	lw := newLineWriter(w)
	for _, clk := range cons.Clocks {
		lw.printf("create_clock -name %s -period %.3f [get_ports {%s}]", clockName(clk.Net), clk.PeriodNS, clk.Net)
	}
	return lw.flush()
}

// WriteCST writes Gowin physical constraints.
func WriteCST(w io.Writer, cons platform.Constraints) error {
	lw := newLineWriter(w)
	for _, pin := range cons.Pins {
		lw.printf("IO_LOC \"%s\" %s;", pin.Net, pin.Site)
		attrs := make([]string, 0, len(pin.Misc)+1)
		if pin.IOStandard != "" {
			attrs = append(attrs, "IO_TYPE="+pin.IOStandard)
		}
		attrs = append(attrs, pin.Misc...)
		if len(attrs) != 0 {
			lw.printf("IO_PORT \"%s\" %s;", pin.Net, strings.Join(attrs, " "))
		}
	}
	return lw.flush()
}

// clockName makes a net usable as a clock name: indexed nets lose their brackets.
func clockName(net string) string {
	return strings.NewReplacer("[", "_", "]", "").Replace(net)
}

var constraintFormats = map[string]ConstraintWriter{
	"xdc": WriteXDC,
	"pcf": WritePCF,
	"lpf": WriteLPF,
	"qsf": WriteQSF,
	"sdc": WriteSDC,
	"cst": WriteCST,
}

// ConstraintFormats lists the formats accepted by ConstraintWriterFor.
func ConstraintFormats() []string {
	return []string{"cst", "lpf", "pcf", "qsf", "sdc", "xdc"}
}

// ConstraintWriterFor returns the writer for a format name such as "xdc".
func ConstraintWriterFor(format string) (ConstraintWriter, error) {
	w, ok := constraintFormats[strings.ToLower(format)]
	if !ok {
		return nil, utils.NewUnsupportedOptionError("constraint format", format, ConstraintFormats())
	}
	return w, nil
}

// PinFormat is the format kind takes pin locations in.
func PinFormat(kind Kind) string {
	switch kind {
	case Vivado:
		return "xdc"
	case IceStorm:
		return "pcf"
	case Trellis, Diamond:
		return "lpf"
	case Quartus:
		return "qsf"
	case Gowin:
		return "cst"
	}
	return ""
}
