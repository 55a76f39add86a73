package algebra

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnsupportedSystem is returned when the elimination rules cannot isolate
// any remaining unknown. The system may still have solutions outside the
// supported class; the solver never guesses.
var ErrUnsupportedSystem = errors.New("algebra: cannot isolate any unknown")

// Relation is the comparison in a branch side condition.
type Relation int

const (
	RelGE Relation = iota // expr >= 0
	RelGT                 // expr > 0
)

// Condition is a side condition under which a solution branch is valid,
// written as expr >= 0 or expr > 0.
type Condition struct {
	Expr Expr
	Rel  Relation
}

func (c Condition) String() string {
	if c.Rel == RelGT {
		return c.Expr.String() + " > 0"
	}
	return c.Expr.String() + " >= 0"
}

// Branch is one formal solution of a system: a closed-form expression for
// every unknown in terms of the remaining free symbols, plus the side
// conditions its radicals impose.
type Branch struct {
	Values     map[string]Expr
	Conditions []Condition
}

// solveState is the working state of one elimination path. Cloned on every
// branch point so paths never share mutable data.
type solveState struct {
	residuals []Expr
	remaining []string
	solved    map[string]Expr
}

func (s *solveState) clone() *solveState {
	c := &solveState{
		residuals: append([]Expr(nil), s.residuals...),
		remaining: append([]string(nil), s.remaining...),
		solved:    make(map[string]Expr, len(s.solved)),
	}
	for k, v := range s.solved {
		c.solved[k] = v
	}
	return c
}

func (s *solveState) dropResidual(i int) {
	s.residuals = append(append([]Expr(nil), s.residuals[:i]...), s.residuals[i+1:]...)
}

func (s *solveState) dropUnknown(name string) {
	out := make([]string, 0, len(s.remaining)-1)
	for _, u := range s.remaining {
		if u != name {
			out = append(out, u)
		}
	}
	s.remaining = out
}

// bindAffine records unknown = val and substitutes it everywhere.
func (s *solveState) bindAffine(name string, val Expr) {
	for i, r := range s.residuals {
		s.residuals[i] = Expand(r.Substitute(name, val))
	}
	for k, v := range s.solved {
		s.solved[k] = v.Substitute(name, val)
	}
	s.solved[name] = val
}

// bindSqrt records unknown = root^2 where root is a chosen value of
// sqrt(unknown), substituting powers so the root's sign survives in
// expressions written in terms of sqrt(unknown).
func (s *solveState) bindSqrt(name string, root Expr) {
	for i, r := range s.residuals {
		s.residuals[i] = Expand(SubstituteSqrt(r, name, root))
	}
	for k, v := range s.solved {
		s.solved[k] = SubstituteSqrt(v, name, root)
	}
	s.solved[name] = PowInt(root, 2)
}

// SolveSystem solves the given residual equations (each understood as
// residual = 0) for the unknowns, returning every formal solution branch.
// Residuals must be canonical; unknown order fixes branch enumeration order.
func SolveSystem(ctx context.Context, residuals []Expr, unknowns []string) ([]Branch, error) {
	st := &solveState{
		residuals: make([]Expr, len(residuals)),
		remaining: append([]string(nil), unknowns...),
		solved:    map[string]Expr{},
	}
	for i, r := range residuals {
		st.residuals[i] = Expand(r)
	}
	return solveRec(ctx, st, unknowns)
}

func solveRec(ctx context.Context, st *solveState, unknowns []string) ([]Branch, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// Drop residuals already satisfied identically.
		kept := st.residuals[:0]
		for _, r := range st.residuals {
			if !IsZero(r) {
				kept = append(kept, r)
			}
		}
		st.residuals = kept

		if !eliminateAffine(st) {
			break
		}
	}

	if len(st.remaining) == 0 {
		return finalize(st, unknowns)
	}

	// No residual is affine in any unknown: look for one that is a
	// quadratic in the square root of its sole remaining unknown.
	for _, u := range st.remaining {
		for i, r := range st.residuals {
			if !soleUnknown(r, st.remaining, u) {
				continue
			}
			roots, ok := sqrtQuadraticRoots(r, u)
			if !ok {
				continue
			}
			var branches []Branch
			for _, root := range roots {
				sub := st.clone()
				sub.dropResidual(i)
				sub.dropUnknown(u)
				sub.bindSqrt(u, root)
				got, err := solveRec(ctx, sub, unknowns)
				if err != nil {
					return nil, err
				}
				branches = append(branches, got...)
			}
			return branches, nil
		}
	}

	return nil, fmt.Errorf("%w: %d unknowns remain over %d residuals",
		ErrUnsupportedSystem, len(st.remaining), len(st.residuals))
}

// eliminateAffine performs one affine elimination step, reporting whether it
// made progress.
func eliminateAffine(st *solveState) bool {
	for _, u := range st.remaining {
		for i, r := range st.residuals {
			a, b, ok := LinearParts(r, u)
			if !ok || IsZero(a) {
				continue
			}
			val := Divide(Neg(b), a)
			st.dropResidual(i)
			st.dropUnknown(u)
			st.bindAffine(u, val)
			return true
		}
	}
	return false
}

// finalize checks that the path is consistent and produces its branch.
func finalize(st *solveState, unknowns []string) ([]Branch, error) {
	for _, r := range st.residuals {
		if IsZero(r) {
			continue
		}
		if len(FreeSymbols(r)) == 0 {
			// A constant non-zero residual: this path is contradictory,
			// not an error.
			return nil, nil
		}
		return nil, fmt.Errorf("%w: residual %s not resolved", ErrUnsupportedSystem, r)
	}
	b := Branch{Values: make(map[string]Expr, len(unknowns))}
	for _, u := range unknowns {
		v, ok := st.solved[u]
		if !ok {
			return nil, fmt.Errorf("%w: unknown %s never isolated", ErrUnsupportedSystem, u)
		}
		b.Values[u] = v
		b.Conditions = appendConditions(b.Conditions, v)
	}
	return []Branch{b}, nil
}

// soleUnknown reports whether u is the only remaining unknown occurring in r.
func soleUnknown(r Expr, remaining []string, u string) bool {
	free := FreeSymbols(r)
	if _, ok := free[u]; !ok {
		return false
	}
	for _, other := range remaining {
		if other == u {
			continue
		}
		if _, ok := free[other]; ok {
			return false
		}
	}
	return true
}

// sqrtQuadraticRoots solves a residual that is univariate in u, treating it
// as a polynomial of degree at most two in t = sqrt(u) after clearing
// negative powers of t. It returns every root as an expression for sqrt(u).
func sqrtQuadraticRoots(r Expr, u string) ([]Expr, bool) {
	const tname = "~sqrt~"
	rt := Expand(SubstituteSqrt(r, u, NewSym(tname)))
	pc, ok := PolyCoeffs(rt, tname)
	if !ok || len(pc) == 0 {
		return nil, false
	}
	minDeg, maxDeg := 0, 0
	first := true
	for d := range pc {
		if first {
			minDeg, maxDeg = d, d
			first = false
			continue
		}
		if d < minDeg {
			minDeg = d
		}
		if d > maxDeg {
			maxDeg = d
		}
	}
	if maxDeg-minDeg > 2 || maxDeg == minDeg {
		return nil, false
	}
	// Multiplying by t^(-minDeg) is sound: t = sqrt(u) is nonzero on the
	// economy's domain.
	coeff := func(d int) Expr {
		if c, ok := pc[d]; ok {
			return c
		}
		return NewInt(0)
	}
	return quadraticRoots(coeff(minDeg+2), coeff(minDeg+1), coeff(minDeg))
}

// quadraticRoots returns the exact roots of a*t^2 + b*t + c = 0, in the
// order (+) root then (-) root.
func quadraticRoots(a, b, c Expr) ([]Expr, bool) {
	if IsZero(a) {
		if IsZero(b) {
			return nil, false
		}
		return []Expr{Divide(Neg(c), b)}, true
	}
	disc := Expand(Subtract(Product(b, b), Product(NewInt(4), a, c)))
	twoA := Product(NewInt(2), a)
	if IsZero(disc) {
		return []Expr{Divide(Neg(b), twoA)}, true
	}
	s := Sqrt(disc)
	return []Expr{
		Divide(Sum(Neg(b), s), twoA),
		Divide(Subtract(Neg(b), s), twoA),
	}, true
}

// appendConditions collects the domain conditions implied by radicals in v:
// every symbolic radicand must be non-negative.
func appendConditions(conds []Condition, v Expr) []Condition {
	for _, rad := range symbolicRadicands(v, nil) {
		dup := false
		for _, c := range conds {
			if Equal(c.Expr, rad) {
				dup = true
				break
			}
		}
		if !dup {
			conds = append(conds, Condition{Expr: rad, Rel: RelGE})
		}
	}
	return conds
}

func symbolicRadicands(e Expr, out []Expr) []Expr {
	switch v := e.(type) {
	case *Add:
		for _, t := range v.terms {
			out = symbolicRadicands(t, out)
		}
	case *Mul:
		for _, f := range v.factors {
			out = symbolicRadicands(f, out)
		}
	case *Pow:
		if !v.exp.IsInt() && len(FreeSymbols(v.base)) > 0 {
			out = append(out, v.base)
		}
		out = symbolicRadicands(v.base, out)
	}
	return out
}
