package milp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseGurobiSolution(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.sol")
	require.NoError(t, os.WriteFile(path, []byte(`# Solution for model small
# Objective value = 1.0000000000e+01
x 2
y 2
b 1
`), 0o644))

	values, err := parseGurobiSolution(path)
	require.NoError(t, err)
	require.Equal(t, map[string]float64{"x": 2, "y": 2, "b": 1}, values)
}

func TestGurobiStatusClassification(t *testing.T) {
	tests := []struct {
		out  string
		want Status
	}{
		{"Optimal solution found (tolerance 1.00e-02)", StatusOptimal},
		{"Model is infeasible", StatusInfeasible},
		{"Model is unbounded", StatusUnbounded},
		{"Time limit reached\nSolution count 3", StatusFeasible},
		{"", StatusNotSolved},
	}
	for _, tc := range tests {
		if got := gurobiStatus(tc.out); got != tc.want {
			t.Errorf("gurobiStatus(%q) = %s, want %s", tc.out, got, tc.want)
		}
	}
}

func TestParseCPLEXSolution(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.sol")
	require.NoError(t, os.WriteFile(path, []byte(`<?xml version="1.0" encoding="UTF-8"?>
<CPLEXSolution version="1.2">
 <header problemName="small" solutionStatusString="integer optimal solution" objectiveValue="10"/>
 <variables>
  <variable name="x" index="0" value="2"/>
  <variable name="y" index="1" value="2"/>
  <variable name="b" index="2" value="1"/>
 </variables>
</CPLEXSolution>
`), 0o644))

	status, values, err := parseCPLEXSolution(path)
	require.NoError(t, err)
	require.Equal(t, StatusOptimal, status)
	require.Equal(t, map[string]float64{"x": 2, "y": 2, "b": 1}, values)
}

func TestCPLEXStatusClassification(t *testing.T) {
	tests := []struct {
		in   string
		want Status
	}{
		{"optimal", StatusOptimal},
		{"integer optimal solution", StatusOptimal},
		{"integer infeasible", StatusInfeasible},
		{"unbounded", StatusUnbounded},
		{"time limit exceeded, integer feasible", StatusFeasible},
		{"", StatusNotSolved},
	}
	for _, tc := range tests {
		if got := cplexStatus(tc.in); got != tc.want {
			t.Errorf("cplexStatus(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}
