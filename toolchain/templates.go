package toolchain

import (
	"strings"
	"text/template"
)

var funcs = template.FuncMap{
	"join": strings.Join,
}

func mustTemplate(name, text string) *template.Template {
	return template.Must(template.New(name).Funcs(funcs).Parse(text))
}

var vivadoTcl = mustTemplate("vivado.tcl", `create_project -force -name {{.BuildName}} -part {{.Device}}
set_msg_config -id {Common 17-55} -new_severity {Warning}
{{range .Sources}}read_verilog {{"{"}}{{.}}{{"}"}}
{{end}}{{range .Constraints}}read_xdc {{.}}
{{end}}synth_design -directive default -top {{.BuildName}} -part {{.Device}}
report_utilization -file {{.BuildName}}_utilization_synth.rpt
opt_design -directive default
place_design -directive default
route_design -directive default
report_timing_summary -max_paths 10 -file {{.BuildName}}_timing.rpt
report_utilization -file {{.BuildName}}_utilization_place.rpt
{{range .BitstreamCommands}}{{.}}
{{end}}write_bitstream -force {{.BuildName}}.bit
{{range .AdditionalCommands}}{{.}}
{{end}}quit
`)

var vivadoSh = mustTemplate("vivado.sh", `#!/bin/sh
set -e
vivado -mode batch -source build_{{.BuildName}}.tcl
`)

var icestormSh = mustTemplate("icestorm.sh", `#!/bin/sh
set -e
yosys -l {{.BuildName}}.rpt -p "{{range .Sources}}read_verilog {{.}}; {{end}}synth_ice40 -top {{.BuildName}} -json {{.BuildName}}.json"
nextpnr-ice40 --json {{.BuildName}}.json --pcf {{.BuildName}}.pcf --asc {{.BuildName}}.asc --seed {{.Seed}} {{.NextpnrArgs}}
icepack -s {{.BuildName}}.asc {{.BuildName}}.bin
{{range .BitstreamCommands}}{{.}}
{{end}}{{range .AdditionalCommands}}{{.}}
{{end}}`)

var trellisSh = mustTemplate("trellis.sh", `#!/bin/sh
set -e
yosys -l {{.BuildName}}.rpt -p "{{range .Sources}}read_verilog {{.}}; {{end}}synth_ecp5 -abc9 -top {{.BuildName}} -json {{.BuildName}}.json"
nextpnr-ecp5 --json {{.BuildName}}.json --lpf {{.BuildName}}.lpf --textcfg {{.BuildName}}.config --seed {{.Seed}} {{.NextpnrArgs}}
ecppack {{.PackArgs}}--bit {{.BuildName}}.bit --svf {{.BuildName}}.svf {{.BuildName}}.config
{{range .BitstreamCommands}}{{.}}
{{end}}{{range .AdditionalCommands}}{{.}}
{{end}}`)

var gowinSh = mustTemplate("gowin.sh", `#!/bin/sh
set -e
yosys -l {{.BuildName}}.rpt -p "{{range .Sources}}read_verilog {{.}}; {{end}}synth_gowin -top {{.BuildName}} -json {{.BuildName}}.json"
nextpnr-himbaechel --json {{.BuildName}}.json --write {{.BuildName}}_pnr.json --device {{.Device}} --vopt family={{.GowinFamily}} --vopt cst={{.BuildName}}.cst --seed {{.Seed}} {{.NextpnrArgs}}
gowin_pack -d {{.GowinFamily}} -o {{.BuildName}}.fs {{.BuildName}}_pnr.json
{{range .BitstreamCommands}}{{.}}
{{end}}{{range .AdditionalCommands}}{{.}}
{{end}}`)

var quartusQsf = mustTemplate("quartus.qsf", `set_global_assignment -name FAMILY "{{.QuartusFamily}}"
set_global_assignment -name DEVICE {{.Device}}
set_global_assignment -name TOP_LEVEL_ENTITY {{.BuildName}}
{{range .Sources}}set_global_assignment -name VERILOG_FILE {{.}}
{{end}}set_global_assignment -name SDC_FILE {{.BuildName}}.sdc
set_global_assignment -name SEED {{.Seed}}
set_global_assignment -name GENERATE_RBF_FILE ON
`)

var quartusSh = mustTemplate("quartus.sh", `#!/bin/sh
set -e
quartus_map --read_settings_files=on --write_settings_files=off {{.BuildName}} -c {{.BuildName}}
quartus_fit --read_settings_files=off --write_settings_files=off {{.BuildName}} -c {{.BuildName}}
quartus_asm --read_settings_files=off --write_settings_files=off {{.BuildName}} -c {{.BuildName}}
quartus_sta {{.BuildName}} -c {{.BuildName}}
{{range .BitstreamCommands}}{{.}}
{{end}}{{range .AdditionalCommands}}{{.}}
{{end}}`)

var diamondTcl = mustTemplate("diamond.tcl", `prj_project new -name "{{.BuildName}}" -impl "impl" -dev {{.Device}} -synthesis "synplify"
{{range .Sources}}prj_src add "{{.}}"
{{end}}{{range .Constraints}}prj_src add "{{.}}"
{{end}}prj_impl option top "{{.BuildName}}"
prj_project save
prj_run Synthesis -impl impl -forceOne
prj_run Translate -impl impl
prj_run Map -impl impl
prj_run PAR -impl impl
{{range .BitstreamCommands}}{{.}}
{{end}}prj_run Export -impl impl -task Bitgen
{{range .AdditionalCommands}}{{.}}
{{end}}prj_project close
`)

var diamondSh = mustTemplate("diamond.sh", `#!/bin/sh
set -e
diamondc build_{{.BuildName}}.tcl
`)
