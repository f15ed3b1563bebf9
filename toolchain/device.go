package toolchain

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"go.fpgaboards.dev/boards/platform"
)

var ecp5Packages = map[string]string{
	"BG256": "CABGA256",
	"BG381": "CABGA381",
	"BG554": "CABGA554",
	"BG756": "CABGA756",
	"MG285": "CSFBGA285",
}

// ice40NextpnrArgs maps "iCE40UP5K-SG48" to "--up5k --package sg48".
func ice40NextpnrArgs(device string) (string, error) {
	d := strings.ToLower(device)
	if !strings.HasPrefix(d, "ice40") {
		return "", errors.Errorf("unrecognized iCE40 device %q", device)
	}
	size, pkg, ok := strings.Cut(strings.TrimPrefix(d, "ice40"), "-")
	if !ok || size == "" || pkg == "" {
		return "", errors.Errorf("unrecognized iCE40 device %q", device)
	}
	return fmt.Sprintf("--%s --package %s", size, pkg), nil
}

// ecp5NextpnrArgs maps "LFE5U-25F-6BG381C" to "--25k --package CABGA381 --speed 6".
func ecp5NextpnrArgs(device string) (string, error) {
	parts := strings.Split(strings.ToUpper(device), "-")
	if len(parts) != 3 || len(parts[2]) < 6 {
		return "", errors.Errorf("unrecognized ECP5 device %q", device)
	}
	var prefix string
	switch parts[0] {
	case "LFE5U":
	case "LFE5UM":
		prefix = "um-"
	case "LFE5UM5G":
		prefix = "um5g-"
	default:
		return "", errors.Errorf("unrecognized ECP5 device %q", device)
	}
	size := strings.ToLower(strings.TrimSuffix(parts[1], "F")) + "k"
	speed := parts[2][:1]
	pkg, ok := ecp5Packages[parts[2][1:6]]
	if !ok {
		return "", errors.Errorf("unrecognized ECP5 package in %q", device)
	}
	return fmt.Sprintf("--%s%s --package %s --speed %s", prefix, size, pkg, speed), nil
}

func quartusFamily(family platform.Family) string {
	switch family {
	case platform.FamilyMAX10:
		return "MAX 10"
	case platform.FamilyCycloneIV:
		return "Cyclone IV E"
	}
	return ""
}

// familyParams fills the device dependent script parameters. ToolchainOptions entries win over
// what is derived from the device name.
func familyParams(p *platform.Platform, params *scriptParams) error {
	opts := p.ToolchainOptions
	params.NextpnrArgs = opts["nextpnr_args"]
	switch p.Family {
	case platform.FamilyICE40:
		if params.NextpnrArgs == "" {
			args, err := ice40NextpnrArgs(p.Device)
			if err != nil {
				return err
			}
			params.NextpnrArgs = args
		}
	case platform.FamilyECP5:
		if params.NextpnrArgs == "" {
			args, err := ecp5NextpnrArgs(p.Device)
			if err != nil {
				return err
			}
			params.NextpnrArgs = args
		}
	case platform.FamilyCycloneIV, platform.FamilyMAX10:
		params.QuartusFamily = opts["quartus_family"]
		if params.QuartusFamily == "" {
			params.QuartusFamily = quartusFamily(p.Family)
		}
	case platform.FamilyGW1N:
		params.GowinFamily = opts["gowin_family"]
		if params.GowinFamily == "" {
			return errors.Errorf("%s: gowin_family toolchain option is required", p.Name)
		}
	case platform.FamilyArtix7:
	}
	return nil
}
