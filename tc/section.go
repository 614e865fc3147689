package tc

import "fmt"

// Direction selects which clsact hook a program attaches to.
type Direction int

const (
	Ingress Direction = iota
	Egress
)

// Section returns the canonical ELF section name for a TC program:
// "tc/ingress" or "tc/egress" for the unnamed default program in that
// direction, "tc/ingress/<name>" or "tc/egress/<name>" for a named one.
func Section(dir Direction, name string) string {
	base := "tc/ingress"
	if dir == Egress {
		base = "tc/egress"
	}
	if name == "" {
		return base
	}
	return fmt.Sprintf("%s/%s", base, name)
}
