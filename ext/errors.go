package ext

import "fmt"

// argOutOfRange reports that n does not name one of the five argument
// registers (r1..r5) the trampoline-based program types deliver.
func argOutOfRange(n int) error {
	return fmt.Errorf("ext: argument index %d out of range [0,5)", n)
}
