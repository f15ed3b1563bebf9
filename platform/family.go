package platform

// Vendor is an FPGA silicon vendor.
type Vendor string

// Supported vendors.
const (
	VendorXilinx  Vendor = "xilinx"
	VendorLattice Vendor = "lattice"
	VendorIntel   Vendor = "intel"
	VendorGowin   Vendor = "gowin"
)

// Family is a device family. Clock generation and constraint formats depend on it.
type Family string

// Supported device families.
const (
	FamilyArtix7    Family = "artix7"
	FamilyICE40     Family = "ice40"
	FamilyECP5      Family = "ecp5"
	FamilyMAX10     Family = "max10"
	FamilyCycloneIV Family = "cycloneiv"
	FamilyGW1N      Family = "gw1n"
)

// Families lists the supported device families.
var Families = []Family{FamilyArtix7, FamilyICE40, FamilyECP5, FamilyMAX10, FamilyCycloneIV, FamilyGW1N}

// Vendor returns the vendor making the family, or "" for an unknown family.
func (f Family) Vendor() Vendor {
	switch f {
	case FamilyArtix7:
		return VendorXilinx
	case FamilyICE40, FamilyECP5:
		return VendorLattice
	case FamilyMAX10, FamilyCycloneIV:
		return VendorIntel
	case FamilyGW1N:
		return VendorGowin
	}
	return ""
}

// ProgrammerSpec selects how bitstreams reach the board. Config is tool specific: an OpenOCD
// config file, an openFPGALoader board name, a DFU vid:pid, ...
type ProgrammerSpec struct {
	Kind       string   `json:"kind" yaml:"kind"`
	Config     string   `json:"config,omitempty" yaml:"config,omitempty"`
	FlashProxy string   `json:"flash_proxy,omitempty" yaml:"flash_proxy,omitempty"`
	Args       []string `json:"args,omitempty" yaml:"args,omitempty"`
}
