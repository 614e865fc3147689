package trace

import "fmt"

// SectionKprobe returns a kprobe program's ELF section: "kprobe/<func>".
func SectionKprobe(function string) string {
	return fmt.Sprintf("kprobe/%s", function)
}

// SectionKretprobe returns a kretprobe program's ELF section:
// "kretprobe/<func>".
func SectionKretprobe(function string) string {
	return fmt.Sprintf("kretprobe/%s", function)
}

// SectionUprobe returns a uprobe program's ELF section:
// "uprobe/<libname>:<symbol>".
func SectionUprobe(library, symbol string) string {
	return fmt.Sprintf("uprobe/%s:%s", library, symbol)
}

// SectionURetprobe returns a uretprobe program's ELF section:
// "uretprobe/<libname>:<symbol>".
func SectionURetprobe(library, symbol string) string {
	return fmt.Sprintf("uretprobe/%s:%s", library, symbol)
}

// SectionTracepoint returns a tracepoint program's ELF section:
// "tracepoint/<category>/<name>".
func SectionTracepoint(category, name string) string {
	return fmt.Sprintf("tracepoint/%s/%s", category, name)
}

// SectionRawTracepoint returns a raw-tracepoint program's ELF section:
// "raw_tracepoint/<name>". Raw tracepoints have no category component —
// they attach by the tracepoint's bare name.
func SectionRawTracepoint(name string) string {
	return fmt.Sprintf("raw_tracepoint/%s", name)
}
