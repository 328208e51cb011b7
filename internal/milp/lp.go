package milp

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
)

// maxTermsPerLine keeps LP lines comfortably under the historical 255-column
// limit some readers still enforce.
const maxTermsPerLine = 8

// WriteLP emits the model in CPLEX LP format, readable by CBC, Gurobi and CPLEX.
func (m *Model) WriteLP(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "\\ %s\n", m.name)
	if m.sense == Maximize {
		fmt.Fprintln(bw, "Maximize")
	} else {
		fmt.Fprintln(bw, "Minimize")
	}
	writeExpr(bw, "obj", m.objective)

	fmt.Fprintln(bw, "Subject To")
	for _, c := range m.cons {
		// Constant terms fold into the right-hand side.
		e := c.Expr
		rhs := c.RHS - e.Const
		e.Const = 0
		writeConstraint(bw, c.Name, e, c.Op, rhs)
	}

	fmt.Fprintln(bw, "Bounds")
	for _, v := range m.vars {
		if v.kind == Binary {
			continue
		}
		switch {
		case math.IsInf(v.up, 1) && v.low == 0:
			// default bounds, nothing to declare
		case math.IsInf(v.up, 1):
			fmt.Fprintf(bw, "%s >= %s\n", v.name, lpFloat(v.low))
		default:
			fmt.Fprintf(bw, "%s <= %s <= %s\n", lpFloat(v.low), v.name, lpFloat(v.up))
		}
	}

	var binaries []*Var
	for _, v := range m.vars {
		if v.kind == Binary {
			binaries = append(binaries, v)
		}
	}
	if len(binaries) > 0 {
		fmt.Fprintln(bw, "Binaries")
		for i, v := range binaries {
			if i > 0 && i%maxTermsPerLine == 0 {
				fmt.Fprintln(bw)
			}
			fmt.Fprintf(bw, "%s ", v.name)
		}
		fmt.Fprintln(bw)
	}

	fmt.Fprintln(bw, "End")
	return bw.Flush()
}

// WriteLPFile writes the LP representation to path, truncating any previous dump.
func (m *Model) WriteLPFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := m.WriteLP(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeExpr(w io.Writer, label string, e Expr) {
	fmt.Fprintf(w, "%s:", label)
	n := 0
	for _, t := range e.Terms {
		if t.Coef == 0 {
			continue
		}
		if n > 0 && n%maxTermsPerLine == 0 {
			fmt.Fprintln(w)
			fmt.Fprint(w, " ")
		}
		if t.Coef < 0 {
			fmt.Fprintf(w, " - %s %s", lpFloat(-t.Coef), t.Var.name)
		} else {
			fmt.Fprintf(w, " + %s %s", lpFloat(t.Coef), t.Var.name)
		}
		n++
	}
	if e.Const != 0 {
		if e.Const < 0 {
			fmt.Fprintf(w, " - %s", lpFloat(-e.Const))
		} else {
			fmt.Fprintf(w, " + %s", lpFloat(e.Const))
		}
		n++
	}
	if n == 0 {
		fmt.Fprint(w, " 0")
	}
	fmt.Fprintln(w)
}

func writeConstraint(w io.Writer, name string, e Expr, op Op, rhs float64) {
	fmt.Fprintf(w, "%s:", name)
	n := 0
	for _, t := range e.Terms {
		if t.Coef == 0 {
			continue
		}
		if n > 0 && n%maxTermsPerLine == 0 {
			fmt.Fprintln(w)
			fmt.Fprint(w, " ")
		}
		if t.Coef < 0 {
			fmt.Fprintf(w, " - %s %s", lpFloat(-t.Coef), t.Var.name)
		} else {
			fmt.Fprintf(w, " + %s %s", lpFloat(t.Coef), t.Var.name)
		}
		n++
	}
	if n == 0 {
		fmt.Fprint(w, " 0")
	}
	fmt.Fprintf(w, " %s %s\n", op, lpFloat(rhs))
}

// lpFloat formats coefficients without exponent notation, which not every LP
// reader accepts.
func lpFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	return s
}
