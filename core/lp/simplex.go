package lp

import "math"

// pivotEps is the tolerance used inside the simplex tableau for sign and
// ratio-test comparisons. It is tighter than the ε=1e-6 spec §9 mandates
// for comparisons against *solved* LP outputs; that coarser tolerance is
// applied by callers (dayassign, theaterassign) reading Solution values.
const pivotEps = 1e-9

// artificialFeasibilityEps bounds how large a leftover artificial-variable
// value may be after phase 1 before the problem is declared infeasible.
const artificialFeasibilityEps = 1e-6

// standardForm is the two-phase tableau built from a Problem: variables
// shifted to start at 0, explicit upper-bound rows, and slack/surplus/
// artificial columns appended per constraint.
type standardForm struct {
	numOrig int // number of shifted original variables (= len(problem.vars))
	lo      []float64

	totalCols int
	rows      int

	a            [][]float64 // rows x totalCols
	b            []float64
	objPhase2    []float64
	isArtificial []bool
	basis        []int
}

// Solve builds the standard form and runs the two-phase simplex. On
// success it returns a Solution with values restored to the caller's
// original (unshifted) bounds.
func (p *Problem) Solve() (*Solution, error) {
	sf := p.buildStandardForm()

	if sf.rows == 0 {
		// No constraints at all: every variable sits at its lower bound in a
		// minimization with no pull unless objective is negative, but with
		// no constraints the only feasible assignment under our bounded
		// construction is every shifted var at 0 (its lower bound), since we
		// still emitted explicit upper-bound rows whenever a var has a
		// finite upper bound. An unconstrained, unbounded-above variable
		// with negative cost is genuinely unbounded.
		for i, v := range p.vars {
			if math.IsInf(v.hi, 1) && v.obj < 0 {
				return nil, ErrUnbounded
			}
			_ = i
		}
		values := make([]float64, len(p.vars))
		for i, v := range p.vars {
			values[i] = v.lo
		}
		return &Solution{values: values}, nil
	}

	// Phase 1: minimize sum of artificial variables.
	phase1Cost := make([]float64, sf.totalCols)
	for j, art := range sf.isArtificial {
		if art {
			phase1Cost[j] = 1
		}
	}
	objRow, err := sf.runSimplex(phase1Cost, nil)
	if err != nil {
		return nil, err
	}

	phase1Value := 0.0
	for i, col := range sf.basis {
		if sf.isArtificial[col] {
			phase1Value += sf.b[i]
		}
	}
	if phase1Value > artificialFeasibilityEps {
		return nil, ErrInfeasible
	}
	_ = objRow

	// Phase 2: recompute reduced costs for the real objective from the
	// canonical tableau left by phase 1, forbidding artificial columns from
	// re-entering the basis.
	_, err = sf.runSimplex(sf.objPhase2, sf.isArtificial)
	if err != nil {
		return nil, err
	}

	return sf.extractSolution(), nil
}

func (p *Problem) buildStandardForm() *standardForm {
	n := len(p.vars)
	lo := make([]float64, n)
	hi := make([]float64, n)
	for i, v := range p.vars {
		lo[i] = v.lo
		hi[i] = v.hi
	}

	// Shifted-variable constraints, rhs' = rhs - Σ a_i·lo_i.
	type rawRow struct {
		coef []float64
		op   Op
		rhs  float64
	}
	var rows []rawRow
	for _, c := range p.constraints {
		coef := make([]float64, n)
		rhs := c.rhs
		for _, t := range c.terms {
			coef[t.Var] += t.Coef
			rhs -= t.Coef * lo[t.Var]
		}
		rows = append(rows, rawRow{coef: coef, op: c.op, rhs: rhs})
	}
	for i := range p.vars {
		if !math.IsInf(hi[i], 1) {
			coef := make([]float64, n)
			coef[i] = 1
			rows = append(rows, rawRow{coef: coef, op: LE, rhs: hi[i] - lo[i]})
		}
	}

	m := len(rows)
	// Column layout: [0,n) shifted vars, then one extra column per row
	// (slack, surplus, or artificial), then a second artificial column for
	// GE/EQ rows that need one.
	totalCols := n
	colKind := make([]int, 0, m) // 0=slack,1=surplus,2=artificial, per extra column in order
	for _, r := range rows {
		switch r.op {
		case LE:
			totalCols++
			colKind = append(colKind, 0)
		case GE:
			totalCols += 2
			colKind = append(colKind, 1, 2)
		case EQ:
			totalCols++
			colKind = append(colKind, 2)
		}
	}

	a := make([][]float64, m)
	b := make([]float64, m)
	isArtificial := make([]bool, totalCols)
	basis := make([]int, m)
	extraCol := n

	for i, r := range rows {
		row := make([]float64, totalCols)
		copy(row, r.coef)
		rhs := r.rhs
		op := r.op
		if rhs < 0 {
			for j := range row {
				row[j] = -row[j]
			}
			rhs = -rhs
			switch op {
			case LE:
				op = GE
			case GE:
				op = LE
			}
		}

		switch op {
		case LE:
			row[extraCol] = 1
			basis[i] = extraCol
			extraCol++
		case GE:
			row[extraCol] = -1   // surplus
			row[extraCol+1] = 1  // artificial
			isArtificial[extraCol+1] = true
			basis[i] = extraCol + 1
			extraCol += 2
		case EQ:
			row[extraCol] = 1 // artificial
			isArtificial[extraCol] = true
			basis[i] = extraCol
			extraCol++
		}

		a[i] = row
		b[i] = rhs
	}

	objPhase2 := make([]float64, totalCols)
	for i, v := range p.vars {
		objPhase2[i] = v.obj
	}

	return &standardForm{
		numOrig:      n,
		lo:           lo,
		totalCols:    totalCols,
		rows:         m,
		a:            a,
		b:            b,
		objPhase2:    objPhase2,
		isArtificial: isArtificial,
		basis:        basis,
	}
}

// runSimplex drives the tableau to optimality for the given cost vector,
// using Bland's rule throughout to guarantee termination without cycling.
// forbidden, if non-nil, marks columns that may never be chosen to enter
// (used in phase 2 to keep artificial variables out of the basis).
func (sf *standardForm) runSimplex(cost []float64, forbidden []bool) ([]float64, error) {
	m := sf.rows
	objRow := make([]float64, sf.totalCols)
	cB := make([]float64, m)
	for i, col := range sf.basis {
		cB[i] = cost[col]
	}
	for j := 0; j < sf.totalCols; j++ {
		z := 0.0
		for i := 0; i < m; i++ {
			z += cB[i] * sf.a[i][j]
		}
		objRow[j] = cost[j] - z
	}

	maxIters := 2000 + 50*(m+sf.totalCols)
	for iter := 0; ; iter++ {
		if iter >= maxIters {
			return nil, ErrNumericError
		}

		entering := -1
		for j := 0; j < sf.totalCols; j++ {
			if forbidden != nil && forbidden[j] {
				continue
			}
			if objRow[j] < -pivotEps {
				entering = j
				break // Bland's rule: smallest index with negative reduced cost.
			}
		}
		if entering == -1 {
			return objRow, nil
		}

		leaving := -1
		bestRatio := math.Inf(1)
		for i := 0; i < m; i++ {
			if sf.a[i][entering] <= pivotEps {
				continue
			}
			ratio := sf.b[i] / sf.a[i][entering]
			if ratio < bestRatio-pivotEps ||
				(ratio < bestRatio+pivotEps && (leaving == -1 || sf.basis[i] < sf.basis[leaving])) {
				bestRatio = ratio
				leaving = i
			}
		}
		if leaving == -1 {
			return nil, ErrUnbounded
		}

		sf.pivot(leaving, entering, objRow)
		sf.basis[leaving] = entering
	}
}

// pivot performs Gauss-Jordan elimination on row `row`, column `col`,
// normalizing the pivot row and eliminating the column from every other
// row and from objRow.
func (sf *standardForm) pivot(row, col int, objRow []float64) {
	pivotVal := sf.a[row][col]
	for j := 0; j < sf.totalCols; j++ {
		sf.a[row][j] /= pivotVal
	}
	sf.b[row] /= pivotVal

	for i := 0; i < sf.rows; i++ {
		if i == row {
			continue
		}
		factor := sf.a[i][col]
		if factor == 0 {
			continue
		}
		for j := 0; j < sf.totalCols; j++ {
			sf.a[i][j] -= factor * sf.a[row][j]
		}
		sf.b[i] -= factor * sf.b[row]
	}

	factor := objRow[col]
	if factor != 0 {
		for j := 0; j < sf.totalCols; j++ {
			objRow[j] -= factor * sf.a[row][j]
		}
	}
}

func (sf *standardForm) extractSolution() *Solution {
	shifted := make([]float64, sf.numOrig)
	for i, col := range sf.basis {
		if col < sf.numOrig {
			shifted[col] = sf.b[i]
		}
	}
	values := make([]float64, sf.numOrig)
	for i := range values {
		values[i] = shifted[i] + sf.lo[i]
	}
	return &Solution{values: values}
}
