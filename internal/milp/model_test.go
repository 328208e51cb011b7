package milp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"charge_power_m1_2018-01-01 00:30", "charge_power_m1_2018_01_01_00_30"},
		{"plain", "plain"},
		{"2018 start", "_2018_start"},
		{"", "_"},
	}
	for _, tc := range tests {
		if got := sanitizeName(tc.in); got != tc.want {
			t.Errorf("sanitizeName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestExprEval(t *testing.T) {
	m := NewModel("test", Maximize)
	x := m.AddVar("x", 0, 10)
	y := m.AddVar("y", 0, 10)

	e := Expr{}.Add(2, x).Add(-3, y).AddConst(1)
	got := e.Eval(map[string]float64{"x": 4, "y": 2})
	require.Equal(t, 2.0*4-3.0*2+1, got)

	// Unassigned variables count as zero.
	require.Equal(t, 1.0, e.Eval(map[string]float64{}))
}

func TestConstraintSatisfied(t *testing.T) {
	m := NewModel("test", Maximize)
	x := m.AddVar("x", 0, 10)

	le := m.AddConstraint("c_le", Expr{}.Add(1, x), LE, 5)
	ge := m.AddConstraint("c_ge", Expr{}.Add(1, x), GE, 5)
	eq := m.AddConstraint("c_eq", Expr{}.Add(1, x), EQ, 5)

	at := func(v float64) map[string]float64 { return map[string]float64{"x": v} }

	require.True(t, le.Satisfied(at(5), 1e-6))
	require.False(t, le.Satisfied(at(5.1), 1e-6))
	require.True(t, ge.Satisfied(at(5), 1e-6))
	require.False(t, ge.Satisfied(at(4.9), 1e-6))
	require.True(t, eq.Satisfied(at(5+1e-9), 1e-6))
	require.False(t, eq.Satisfied(at(5.1), 1e-6))
}

func TestModelVarLookup(t *testing.T) {
	m := NewModel("test", Minimize)
	v := m.AddVar("soc 2018-01-01 00:00", 0, 4)
	require.Same(t, v, m.Var("soc 2018-01-01 00:00"))
	require.Same(t, v, m.Var("soc_2018_01_01_00_00"))
	require.Nil(t, m.Var("missing"))
	require.Equal(t, 1, m.NumVars())
}
