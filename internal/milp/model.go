// Package milp provides a small mixed-integer linear programming layer:
// an in-process model representation, a CPLEX-LP file writer, and exec-based
// solver backends (CBC, Gurobi, CPLEX) behind a common interface.
package milp

import (
	"fmt"
	"math"
	"strings"
)

// Sense is the optimisation direction.
type Sense int

const (
	Minimize Sense = iota
	Maximize
)

// VarKind distinguishes continuous from binary decision variables.
type VarKind int

const (
	Continuous VarKind = iota
	Binary
)

// Var is a decision variable. Create through Model.AddVar / Model.AddBinary.
type Var struct {
	name string
	low  float64
	up   float64
	kind VarKind
}

func (v *Var) Name() string  { return v.name }
func (v *Var) Low() float64  { return v.low }
func (v *Var) Up() float64   { return v.up }
func (v *Var) Kind() VarKind { return v.kind }

// Term is one coefficient*variable product in a linear expression.
type Term struct {
	Coef float64
	Var  *Var
}

// Expr is a linear expression: sum of terms plus a constant.
// The zero value is a valid empty expression.
type Expr struct {
	Terms []Term
	Const float64
}

// Add appends coef*v and returns the extended expression.
func (e Expr) Add(coef float64, v *Var) Expr {
	e.Terms = append(e.Terms, Term{Coef: coef, Var: v})
	return e
}

// AddConst shifts the expression by c.
func (e Expr) AddConst(c float64) Expr {
	e.Const += c
	return e
}

// Eval computes the expression value for the given variable assignment.
// Variables absent from values count as zero.
func (e Expr) Eval(values map[string]float64) float64 {
	total := e.Const
	for _, t := range e.Terms {
		total += t.Coef * values[t.Var.Name()]
	}
	return total
}

// Op is a constraint relation.
type Op int

const (
	LE Op = iota
	GE
	EQ
)

func (o Op) String() string {
	switch o {
	case LE:
		return "<="
	case GE:
		return ">="
	default:
		return "="
	}
}

// Constraint is a linear constraint expr op rhs.
type Constraint struct {
	Name string
	Expr Expr
	Op   Op
	RHS  float64
}

// Satisfied reports whether the constraint holds for the assignment within tol.
func (c *Constraint) Satisfied(values map[string]float64, tol float64) bool {
	lhs := c.Expr.Eval(values)
	switch c.Op {
	case LE:
		return lhs <= c.RHS+tol
	case GE:
		return lhs >= c.RHS-tol
	default:
		return math.Abs(lhs-c.RHS) <= tol
	}
}

// Model is a MILP under construction. Not safe for concurrent use; each solve
// builds its own model.
type Model struct {
	name      string
	sense     Sense
	vars      []*Var
	byName    map[string]*Var
	cons      []*Constraint
	objective Expr
}

func NewModel(name string, sense Sense) *Model {
	return &Model{
		name:   sanitizeName(name),
		sense:  sense,
		byName: make(map[string]*Var),
	}
}

func (m *Model) Name() string               { return m.name }
func (m *Model) Sense() Sense               { return m.sense }
func (m *Model) Vars() []*Var               { return m.vars }
func (m *Model) Constraints() []*Constraint { return m.cons }
func (m *Model) Objective() Expr            { return m.objective }
func (m *Model) NumVars() int               { return len(m.vars) }
func (m *Model) NumConstraints() int        { return len(m.cons) }

// AddVar registers a continuous variable with bounds [low, up].
// Names are sanitised to the LP-format alphabet and must be unique.
func (m *Model) AddVar(name string, low, up float64) *Var {
	return m.addVar(name, low, up, Continuous)
}

// AddBinary registers a {0,1} variable.
func (m *Model) AddBinary(name string) *Var {
	return m.addVar(name, 0, 1, Binary)
}

func (m *Model) addVar(name string, low, up float64, kind VarKind) *Var {
	n := sanitizeName(name)
	if _, dup := m.byName[n]; dup {
		panic(fmt.Sprintf("milp: duplicate variable name %q", n))
	}
	v := &Var{name: n, low: low, up: up, kind: kind}
	m.vars = append(m.vars, v)
	m.byName[n] = v
	return v
}

// Var returns the variable registered under name (after sanitisation), or nil.
func (m *Model) Var(name string) *Var {
	return m.byName[sanitizeName(name)]
}

// AddConstraint appends expr op rhs under the given (sanitised) name.
func (m *Model) AddConstraint(name string, expr Expr, op Op, rhs float64) *Constraint {
	c := &Constraint{Name: sanitizeName(name), Expr: expr, Op: op, RHS: rhs}
	m.cons = append(m.cons, c)
	return c
}

// SetObjective replaces the objective expression.
func (m *Model) SetObjective(expr Expr) {
	m.objective = expr
}

// sanitizeName maps arbitrary names onto the LP-format alphabet. Timestamp
// keys like "2018-01-01 00:30" carry spaces, dashes and colons that LP files
// cannot represent in identifiers.
func sanitizeName(name string) string {
	if name == "" {
		return "_"
	}
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	s := b.String()
	if s[0] >= '0' && s[0] <= '9' {
		s = "_" + s
	}
	return s
}
