package svf

import (
	"bytes"
	"strings"
	"testing"

	"go.viam.com/test"
)

func TestReverseBits(t *testing.T) {
	in := []byte{0x01, 0x80, 0xF0, 0xA5}
	test.That(t, ReverseBits(in), test.ShouldResemble, []byte{0x80, 0x01, 0x0F, 0xA5})
	test.That(t, in[0], test.ShouldEqual, byte(0x01))
}

func TestPages(t *testing.T) {
	data := make([]byte, 20)
	for i := range data {
		data[i] = byte(i)
	}
	pages := Pages(data, 16)
	test.That(t, pages, test.ShouldHaveLength, 2)
	test.That(t, pages[0], test.ShouldResemble, data[:16])
	test.That(t, pages[1][:4], test.ShouldResemble, data[16:])
	test.That(t, pages[1][4:], test.ShouldResemble, bytes.Repeat([]byte{0xFF}, 12))

	test.That(t, Pages(data, 0), test.ShouldResemble, [][]byte{data})
	test.That(t, Pages(data[:16], 16), test.ShouldHaveLength, 1)
}

func TestHexMSB(t *testing.T) {
	test.That(t, hexMSB([]byte{0x01, 0x02, 0xAB}), test.ShouldEqual, "AB0201")
}

func TestStripHeader(t *testing.T) {
	t.Run("lattice", func(t *testing.T) {
		raw := []byte{0xFF, 0x00, 'L', 'C', 'M', 'X', 'O', 0x00, 'd', 'a', 't', 'e', 0x00, 0xFF, 0xFF, 0xFF, 0xBD, 0xB3}
		data, err := StripHeader(raw)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, data, test.ShouldResemble, []byte{0xFF, 0xFF, 0xBD, 0xB3})

		_, err = StripHeader([]byte{0xFF, 0x00, 'x'})
		test.That(t, err, test.ShouldNotBeNil)
	})

	t.Run("lattice empty comment", func(t *testing.T) {
		data, err := StripHeader([]byte{0xFF, 0x00, 0xFF, 0xFF, 0xFF, 0xBD, 0xB3})
		test.That(t, err, test.ShouldBeNil)
		test.That(t, data, test.ShouldResemble, []byte{0xFF, 0xFF, 0xBD, 0xB3})
	})

	t.Run("xilinx", func(t *testing.T) {
		var raw []byte
		raw = append(raw, xilinxMagic...)
		raw = append(raw, 'a', 0x00, 0x04, 't', 'o', 'p', 0x00)
		raw = append(raw, 'b', 0x00, 0x03, 'x', 'c', 0x00)
		raw = append(raw, 'e', 0x00, 0x00, 0x00, 0x02, 0xAA, 0x99)
		data, err := StripHeader(raw)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, data, test.ShouldResemble, []byte{0xAA, 0x99})

		_, err = StripHeader(append(append([]byte{}, xilinxMagic...), 'a', 0x00, 0x09, 'x'))
		test.That(t, err, test.ShouldNotBeNil)
		_, err = StripHeader(append(append([]byte{}, xilinxMagic...), 'e', 0x00, 0x00, 0x00, 0x09, 0x01))
		test.That(t, err, test.ShouldNotBeNil)
	})

	t.Run("raw", func(t *testing.T) {
		data, err := StripHeader([]byte{0x12, 0x34})
		test.That(t, err, test.ShouldBeNil)
		test.That(t, data, test.ShouldResemble, []byte{0x12, 0x34})
	})
}

func TestConvertMachXO2(t *testing.T) {
	bitstream := make([]byte, 40)
	for i := range bitstream {
		bitstream[i] = 0x01
	}
	var buf bytes.Buffer
	err := Convert(&buf, bitstream, Options{Profile: MachXO2, IDCode: 0x012BA043})
	test.That(t, err, test.ShouldBeNil)
	out := buf.String()

	test.That(t, out, test.ShouldStartWith, "! machxo2 configuration, 40 bytes\nTRST OFF;\nENDIR IDLE;\nENDDR IDLE;\n")
	test.That(t, out, test.ShouldContainSubstring, "FREQUENCY 1.00E+06 HZ;\n")
	test.That(t, out, test.ShouldContainSubstring, "SDR 32 TDI (00000000) TDO (012BA043) MASK (FFFFFFFF);\n")
	test.That(t, out, test.ShouldContainSubstring, "SIR 8 TDI (0E);\nSDR 8 TDI (04);\n")
	test.That(t, strings.Count(out, "SIR 8 TDI (70);"), test.ShouldEqual, 3)
	test.That(t, strings.Count(out, "SDR 128 TDI ("), test.ShouldEqual, 3)
	test.That(t, out, test.ShouldContainSubstring, "SDR 128 TDI ("+strings.Repeat("80", 16)+");\nRUNTEST IDLE 2 TCK 1.00E-03 SEC;\n")
	test.That(t, out, test.ShouldContainSubstring, "SDR 128 TDI ("+strings.Repeat("FF", 8)+strings.Repeat("80", 8)+");\n")
	test.That(t, out, test.ShouldContainSubstring, "SIR 8 TDI (5E);")
	test.That(t, out, test.ShouldContainSubstring, "SIR 8 TDI (26);")
	test.That(t, out, test.ShouldContainSubstring, "SIR 8 TDI (FF);")
	test.That(t, out, test.ShouldEndWith, "SIR 8 TDI (79);\nRUNTEST IDLE 2 TCK 1.00E-01 SEC;\n")
}

func TestConvertECP5(t *testing.T) {
	var buf bytes.Buffer
	err := Convert(&buf, []byte{0x01, 0x02, 0x03}, Options{Profile: ECP5, Frequency: 10e6})
	test.That(t, err, test.ShouldBeNil)
	out := buf.String()
	test.That(t, out, test.ShouldContainSubstring, "FREQUENCY 1.00E+07 HZ;")
	test.That(t, out, test.ShouldNotContainSubstring, "IDCODE")
	test.That(t, out, test.ShouldContainSubstring, "SIR 8 TDI (7A);")
	test.That(t, out, test.ShouldContainSubstring, "SDR 24 TDI (C04080);")
	test.That(t, out, test.ShouldNotContainSubstring, "SIR 8 TDI (79);")
}

func TestConvertErrors(t *testing.T) {
	var buf bytes.Buffer
	test.That(t, Convert(&buf, nil, Options{}), test.ShouldNotBeNil)
	test.That(t, Convert(&buf, []byte{0x01}, Options{Frequency: -1}), test.ShouldNotBeNil)
}

func TestLookupProfile(t *testing.T) {
	p, err := LookupProfile("ECP5")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, p, test.ShouldResemble, ECP5)
	_, err = LookupProfile("virtex")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "machxo2")
}
