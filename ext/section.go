package ext

import "fmt"

// SectionFentry returns an fentry program's ELF section: "fentry/<func>".
func SectionFentry(function string) string {
	return fmt.Sprintf("fentry/%s", function)
}

// SectionFexit returns an fexit program's ELF section: "fexit/<func>".
func SectionFexit(function string) string {
	return fmt.Sprintf("fexit/%s", function)
}

// SectionLSM returns an LSM program's ELF section: "lsm/<hook>".
func SectionLSM(hook string) string {
	return fmt.Sprintf("lsm/%s", hook)
}

// SectionFlowDissector is the flow dissector's fixed ELF section: there is
// at most one per network namespace, so it carries no name suffix.
func SectionFlowDissector() string {
	return "flow_dissector"
}

// SectionIter returns a BPF iterator program's ELF section:
// "iter/<btf_name>".
func SectionIter(btfName string) string {
	return fmt.Sprintf("iter/%s", btfName)
}

// SectionStructOps returns a struct_ops callback's ELF section:
// "struct_ops/<struct>/<callback>".
func SectionStructOps(structName, callback string) string {
	return fmt.Sprintf("struct_ops/%s/%s", structName, callback)
}

// SectionPerfEvent is the perf-event program's fixed ELF section.
func SectionPerfEvent() string {
	return "perf_event"
}
