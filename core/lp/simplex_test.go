package lp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolve_SimpleBoxBoundedMinimization(t *testing.T) {
	p := NewProblem()
	x := p.AddVar(1, 0, 1)
	y := p.AddVar(2, 0, 1)
	p.AddConstraint([]Term{{Var: x, Coef: 1}, {Var: y, Coef: 1}}, EQ, 1)

	sol, err := p.Solve()
	require.NoError(t, err)
	// Minimizing x + 2y subject to x+y=1 pushes all mass to x.
	assert.InDelta(t, 1.0, sol.Value(x), 1e-6)
	assert.InDelta(t, 0.0, sol.Value(y), 1e-6)
}

func TestSolve_CapacityConstraint(t *testing.T) {
	p := NewProblem()
	x := p.AddVar(0, 0, 1)
	y := p.AddVar(0, 0, 1)
	p.AddConstraint([]Term{{Var: x, Coef: 1}, {Var: y, Coef: 1}}, EQ, 1)
	p.AddConstraint([]Term{{Var: x, Coef: 10}, {Var: y, Coef: 1}}, LE, 5)

	sol, err := p.Solve()
	require.NoError(t, err)
	assert.LessOrEqual(t, 10*sol.Value(x)+sol.Value(y), 5.0+1e-6)
	assert.InDelta(t, 1.0, sol.Value(x)+sol.Value(y), 1e-6)
}

func TestSolve_Infeasible(t *testing.T) {
	p := NewProblem()
	x := p.AddVar(1, 0, 1)
	p.AddConstraint([]Term{{Var: x, Coef: 1}}, GE, 2) // x <= 1 but must be >= 2
	_, err := p.Solve()
	assert.ErrorIs(t, err, ErrInfeasible)
}

func TestSolve_NonzeroLowerBound(t *testing.T) {
	p := NewProblem()
	x := p.AddVar(1, 2, 5)
	sol, err := p.Solve()
	require.NoError(t, err)
	assert.InDelta(t, 2.0, sol.Value(x), 1e-6)
}

func TestSolve_GreaterEqualConstraint(t *testing.T) {
	p := NewProblem()
	x := p.AddVar(1, 0, 10)
	p.AddConstraint([]Term{{Var: x, Coef: 1}}, GE, 3)
	sol, err := p.Solve()
	require.NoError(t, err)
	assert.InDelta(t, 3.0, sol.Value(x), 1e-6)
}
