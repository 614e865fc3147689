package xdp

import "fmt"

// Section returns the canonical ELF section name for an XDP program:
// "xdp" for the unnamed default program, "xdp/<name>" for a named one.
func Section(name string) string {
	if name == "" {
		return "xdp"
	}
	return fmt.Sprintf("xdp/%s", name)
}
