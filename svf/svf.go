// Package svf converts raw FPGA bitstreams into Serial Vector Format JTAG programs.
package svf

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math/bits"
	"strings"

	"github.com/pkg/errors"

	"go.fpgaboards.dev/boards/utils"
)

// JTAG instructions of the Lattice configuration interface.
const (
	opIDCODE         = 0xE0
	opISCEnable      = 0xC6
	opISCErase       = 0x0E
	opLSCCheckBusy   = 0xF0
	opLSCReadStatus  = 0x3C
	opLSCInitAddress = 0x46
	opLSCProgIncrNV  = 0x70
	opLSCBitstream   = 0x7A
	opISCProgramDone = 0x5E
	opISCDisable     = 0x26
	opBypass         = 0xFF
	opLSCRefresh     = 0x79
)

// A Profile describes how a device family takes its configuration over JTAG.
type Profile struct {
	Name string
	// PageBytes is the flash page size. Zero sends the whole bitstream in one burst.
	PageBytes int
	// EraseOperand is the ISC_ERASE operand: which sectors to clear.
	EraseOperand byte
	// Flash marks profiles writing internal non-volatile memory.
	Flash bool
}

// Built-in profiles.
var (
	MachXO2 = Profile{Name: "machxo2", PageBytes: 16, EraseOperand: 0x04, Flash: true}
	MachXO3 = Profile{Name: "machxo3", PageBytes: 16, EraseOperand: 0x04, Flash: true}
	ECP5    = Profile{Name: "ecp5", EraseOperand: 0x01}
)

var profiles = map[string]Profile{
	MachXO2.Name: MachXO2,
	MachXO3.Name: MachXO3,
	ECP5.Name:    ECP5,
}

// ProfileNames lists the built-in profiles.
func ProfileNames() []string {
	return []string{ECP5.Name, MachXO2.Name, MachXO3.Name}
}

// LookupProfile returns a built-in profile by name.
func LookupProfile(name string) (Profile, error) {
	p, ok := profiles[strings.ToLower(name)]
	if !ok {
		return Profile{}, utils.NewUnsupportedOptionError("svf profile", name, ProfileNames())
	}
	return p, nil
}

// Options tune the generated program.
type Options struct {
	Profile Profile
	// Frequency is the TCK frequency in hertz. Zero means 1MHz.
	Frequency float64
	// IDCode, when non-zero, is checked before anything is written.
	IDCode uint32
}

// DefaultFrequency is the TCK frequency used when Options.Frequency is zero.
const DefaultFrequency = 1e6

// StripHeader removes a Lattice comment header (0xFF 0x00 ... 0x00 0xFF) or a Xilinx .bit
// header from bitstream, returning the raw configuration data.
func StripHeader(bitstream []byte) ([]byte, error) {
	switch {
	case len(bitstream) >= 2 && bitstream[0] == 0xFF && bitstream[1] == 0x00:
		// Search from the opening 0x00: an empty comment block is FF 00 FF.
		end := bytes.Index(bitstream[1:], []byte{0x00, 0xFF})
		if end < 0 {
			return nil, errors.New("unterminated lattice bitstream header")
		}
		return bitstream[1+end+2:], nil
	case len(bitstream) >= 13 && bytes.Equal(bitstream[:13], xilinxMagic):
		return stripXilinxHeader(bitstream)
	}
	return bitstream, nil
}

var xilinxMagic = []byte{0x00, 0x09, 0x0F, 0xF0, 0x0F, 0xF0, 0x0F, 0xF0, 0x0F, 0xF0, 0x00, 0x00, 0x01}

// stripXilinxHeader walks the .bit key/length records ('a' design, 'b' part, 'c' date,
// 'd' time) up to the 'e' record, which holds the raw data.
func stripXilinxHeader(bitstream []byte) ([]byte, error) {
	rest := bitstream[len(xilinxMagic):]
	for len(rest) > 0 {
		key := rest[0]
		rest = rest[1:]
		if key == 'e' {
			if len(rest) < 4 {
				return nil, errors.New("truncated .bit data record")
			}
			n := binary.BigEndian.Uint32(rest)
			rest = rest[4:]
			if uint64(n) > uint64(len(rest)) {
				return nil, errors.Errorf(".bit data record claims %d bytes, %d present", n, len(rest))
			}
			return rest[:n], nil
		}
		if len(rest) < 2 {
			return nil, errors.Errorf("truncated .bit record %q", key)
		}
		n := int(binary.BigEndian.Uint16(rest))
		rest = rest[2:]
		if n > len(rest) {
			return nil, errors.Errorf(".bit record %q claims %d bytes, %d present", key, n, len(rest))
		}
		rest = rest[n:]
	}
	return nil, errors.New(".bit file has no data record")
}

// ReverseBits returns a copy of data with the bit order of every byte reversed. SVF shifts
// least significant bit first while bitstreams are stored most significant bit first.
func ReverseBits(data []byte) []byte {
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = bits.Reverse8(b)
	}
	return out
}

// Pages splits data into size byte pages, padding the last page with 0xFF.
func Pages(data []byte, size int) [][]byte {
	if size <= 0 {
		return [][]byte{data}
	}
	var pages [][]byte
	for off := 0; off < len(data); off += size {
		page := make([]byte, size)
		for i := range page {
			page[i] = 0xFF
		}
		copy(page, data[off:min(off+size, len(data))])
		pages = append(pages, page)
	}
	return pages
}

// hexMSB renders data as an SVF hex string. SVF writes the last shifted bit first, so the
// byte order is reversed.
func hexMSB(data []byte) string {
	var sb strings.Builder
	sb.Grow(len(data) * 2)
	for i := len(data) - 1; i >= 0; i-- {
		fmt.Fprintf(&sb, "%02X", data[i])
	}
	return sb.String()
}

type writer struct {
	w   *bufio.Writer
	err error
}

func (w *writer) printf(format string, args ...interface{}) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.w, format, args...)
}

func (w *writer) comment(text string) {
	w.printf("! %s\n", text)
}

func (w *writer) sir(op byte) {
	w.printf("SIR 8 TDI (%02X);\n", op)
}

func (w *writer) sdr(data []byte) {
	w.printf("SDR %d TDI (%s);\n", len(data)*8, hexMSB(data))
}

func (w *writer) runtest(tck int, sec float64) {
	w.printf("RUNTEST IDLE %d TCK %.2E SEC;\n", tck, sec)
}

// Convert writes an SVF program loading bitstream to w.
func Convert(w io.Writer, bitstream []byte, opts Options) error {
	data, err := StripHeader(bitstream)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return errors.New("empty bitstream")
	}
	if opts.Profile.Name == "" {
		opts.Profile = MachXO2
	}
	if opts.Frequency == 0 {
		opts.Frequency = DefaultFrequency
	}
	if opts.Frequency < 0 {
		return errors.Errorf("invalid TCK frequency %v", opts.Frequency)
	}

	out := &writer{w: bufio.NewWriter(w)}
	out.comment(fmt.Sprintf("%s configuration, %d bytes", opts.Profile.Name, len(data)))
	out.printf("TRST OFF;\nENDIR IDLE;\nENDDR IDLE;\nSTATE RESET;\nSTATE IDLE;\n")
	out.printf("FREQUENCY %.2E HZ;\n", opts.Frequency)

	if opts.IDCode != 0 {
		out.comment("Check the IDCODE")
		out.sir(opIDCODE)
		out.printf("SDR 32 TDI (00000000) TDO (%08X) MASK (FFFFFFFF);\n", opts.IDCode)
	}

	out.comment("Enable the programming mode")
	out.sir(opISCEnable)
	out.sdr([]byte{0x00})
	out.runtest(2, 1e-2)

	out.comment("Erase the device")
	out.sir(opISCErase)
	out.sdr([]byte{opts.Profile.EraseOperand})
	out.runtest(2, 1e-2)
	out.sir(opLSCCheckBusy)
	out.printf("SDR 1 TDI (0) TDO (0);\n")

	reversed := ReverseBits(data)
	if opts.Profile.Flash {
		out.comment("Initialize the address")
		out.sir(opLSCInitAddress)
		out.sdr([]byte{0x04})
		out.runtest(2, 1e-2)
		out.comment("Program the flash pages")
		for _, page := range Pages(reversed, opts.Profile.PageBytes) {
			out.sir(opLSCProgIncrNV)
			out.sdr(page)
			out.runtest(2, 1e-3)
		}
	} else {
		out.comment("Load the bitstream")
		out.sir(opLSCInitAddress)
		out.sdr([]byte{0x01})
		out.runtest(2, 1e-2)
		out.sir(opLSCBitstream)
		out.runtest(2, 1e-2)
		for _, page := range Pages(reversed, opts.Profile.PageBytes) {
			out.sdr(page)
		}
		out.runtest(2, 1e-2)
	}

	out.comment("Program the DONE bit")
	out.sir(opISCProgramDone)
	out.runtest(2, 2e-4)
	out.sir(opLSCReadStatus)
	out.printf("SDR 32 TDI (00000000) TDO (00000100) MASK (00002100);\n")

	out.comment("Exit the programming mode")
	out.sir(opISCDisable)
	out.runtest(2, 1e-3)
	out.sir(opBypass)
	out.runtest(2, 1e-3)
	if opts.Profile.Flash {
		out.sir(opLSCRefresh)
		out.runtest(2, 1e-1)
	}

	if out.err != nil {
		return errors.Wrap(out.err, "writing svf")
	}
	return errors.Wrap(out.w.Flush(), "writing svf")
}
