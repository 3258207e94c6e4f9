package litmus

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes the program listing in the column layout existing consumers
// expect: one row per instruction position, one column per thread, columns
// separated by double tabs, a triple tab where a thread has run out of
// instructions.
func Fprint(w io.Writer, p *Program) error {
	for i := 0; i < p.MaxLen(); i++ {
		for t := 0; t < p.NumThreads(); t++ {
			if i < p.Len(t) {
				if _, err := fmt.Fprintf(w, "%s\t\t", p.Instr(t, i)); err != nil {
					return err
				}
			} else {
				if _, err := io.WriteString(w, "\t\t\t"); err != nil {
					return err
				}
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

// Sprint returns the program listing as a string.
func Sprint(p *Program) string {
	var b strings.Builder
	// strings.Builder writes never fail.
	_ = Fprint(&b, p)
	return b.String()
}
