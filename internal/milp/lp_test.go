package milp

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func buildSmallModel() *Model {
	m := NewModel("small", Maximize)
	x := m.AddVar("x", 0, 2)
	y := m.AddVar("y", 0, 3)
	b := m.AddBinary("b")
	m.AddConstraint("cap", Expr{}.Add(1, x).Add(1, y), LE, 4)
	m.AddConstraint("gate", Expr{}.Add(1, x).Add(-2, b), LE, 0)
	m.SetObjective(Expr{}.Add(3, x).Add(2, y))
	return m
}

func TestWriteLPSections(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, buildSmallModel().WriteLP(&sb))
	out := sb.String()

	require.Contains(t, out, "Maximize")
	require.Contains(t, out, "obj: + 3 x + 2 y")
	require.Contains(t, out, "Subject To")
	require.Contains(t, out, "cap: + 1 x + 1 y <= 4")
	require.Contains(t, out, "gate: + 1 x - 2 b <= 0")
	require.Contains(t, out, "Bounds")
	require.Contains(t, out, "0 <= x <= 2")
	require.Contains(t, out, "Binaries")
	require.Contains(t, out, "b")
	require.True(t, strings.HasSuffix(strings.TrimSpace(out), "End"))

	// Binary bounds live in the Binaries section only.
	require.NotContains(t, out, "0 <= b <= 1")
}

func TestWriteLPFoldsConstantIntoRHS(t *testing.T) {
	m := NewModel("c", Minimize)
	x := m.AddVar("x", 0, 10)
	m.AddConstraint("shifted", Expr{}.Add(1, x).AddConst(2), LE, 5)
	m.SetObjective(Expr{}.Add(1, x))

	var sb strings.Builder
	require.NoError(t, m.WriteLP(&sb))
	require.Contains(t, sb.String(), "shifted: + 1 x <= 3")
}

func TestWriteLPEmptyObjective(t *testing.T) {
	m := NewModel("empty", Maximize)
	m.AddVar("x", 0, 1)

	var sb strings.Builder
	require.NoError(t, m.WriteLP(&sb))
	require.Contains(t, sb.String(), "obj: 0")
}

func TestWriteLPWrapsLongExpressions(t *testing.T) {
	m := NewModel("wide", Maximize)
	e := Expr{}
	for i := 0; i < 30; i++ {
		e = e.Add(1, m.AddVar(fmt.Sprintf("vv%02d", i), 0, 1))
	}
	m.AddConstraint("wide", e, LE, 10)
	m.SetObjective(e)

	var sb strings.Builder
	require.NoError(t, m.WriteLP(&sb))
	for _, line := range strings.Split(sb.String(), "\n") {
		require.Less(t, len(line), 200, "line too long: %q", line)
	}
}
