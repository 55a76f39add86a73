package algebra

import "math/big"

// Expand distributes products over sums and multiplies out positive integer
// powers of sums, then recanonicalizes. Two algebraically equal expressions
// in the supported class expand to the same canonical form, which is what the
// identity checks in the pipeline rely on.
func Expand(e Expr) Expr {
	switch v := e.(type) {
	case *Add:
		out := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			out[i] = Expand(t)
		}
		return Sum(out...)
	case *Mul:
		return expandProduct(v.factors)
	case *Pow:
		base := Expand(v.base)
		if _, ok := base.(*Add); ok && v.exp.IsInt() && v.exp.Sign() > 0 {
			n := v.exp.Num().Int64()
			factors := make([]Expr, n)
			for i := range factors {
				factors[i] = base
			}
			return expandProduct(factors)
		}
		return Power(base, v.exp)
	}
	return e
}

// expandProduct expands each factor and distributes over any sums among them.
func expandProduct(factors []Expr) Expr {
	combos := [][]Expr{{}}
	hasAdd := false
	for _, f := range factors {
		ef := Expand(f)
		if a, ok := ef.(*Add); ok {
			hasAdd = true
			next := make([][]Expr, 0, len(combos)*len(a.terms))
			for _, c := range combos {
				for _, t := range a.terms {
					cc := make([]Expr, len(c), len(c)+1)
					copy(cc, c)
					next = append(next, append(cc, t))
				}
			}
			combos = next
			continue
		}
		for i := range combos {
			combos[i] = append(combos[i], ef)
		}
	}
	terms := make([]Expr, len(combos))
	for i, c := range combos {
		p := Product(c...)
		// Distributed terms can themselves carry sum factors; keep
		// expanding until none remain.
		if hasAdd && containsAddFactor(p) {
			p = Expand(p)
		}
		terms[i] = p
	}
	return Sum(terms...)
}

func containsAddFactor(e Expr) bool {
	m, ok := e.(*Mul)
	if !ok {
		_, isAdd := e.(*Add)
		return isAdd
	}
	for _, f := range m.factors {
		if _, ok := f.(*Add); ok {
			return true
		}
	}
	return false
}

// PolyCoeffs extracts the coefficients of e viewed as a polynomial (with
// possibly negative integer degrees) in the named symbol. It reports false if
// the symbol occurs with a fractional exponent or inside an opaque subterm.
// e should already be expanded.
func PolyCoeffs(e Expr, name string) (map[int]Expr, bool) {
	var terms []Expr
	if a, ok := e.(*Add); ok {
		terms = a.terms
	} else {
		terms = []Expr{e}
	}
	out := map[int]Expr{}
	for _, t := range terms {
		deg := 0
		var rest []Expr
		var factors []Expr
		if m, ok := t.(*Mul); ok {
			factors = m.factors
		} else {
			factors = []Expr{t}
		}
		for _, f := range factors {
			switch v := f.(type) {
			case *Sym:
				if v.name == name {
					deg++
					continue
				}
			case *Pow:
				if bs, ok := v.base.(*Sym); ok && bs.name == name {
					if !v.exp.IsInt() {
						return nil, false
					}
					deg += int(v.exp.Num().Int64())
					continue
				}
			}
			if ContainsSymbol(f, name) {
				return nil, false
			}
			rest = append(rest, f)
		}
		coeff := Expr(NewInt(1))
		if len(rest) > 0 {
			coeff = Product(rest...)
		}
		if prev, ok := out[deg]; ok {
			out[deg] = Sum(prev, coeff)
		} else {
			out[deg] = coeff
		}
	}
	return out, true
}

// LinearParts decomposes e as a*name + b with a and b free of the symbol,
// reporting false when e is not affine in it.
func LinearParts(e Expr, name string) (a, b Expr, ok bool) {
	pc, ok := PolyCoeffs(Expand(e), name)
	if !ok {
		return nil, nil, false
	}
	a, b = Expr(NewInt(0)), Expr(NewInt(0))
	for deg, c := range pc {
		switch deg {
		case 0:
			b = c
		case 1:
			a = c
		default:
			return nil, nil, false
		}
	}
	return a, b, true
}

// SubstituteSqrt replaces every power of the named symbol in e using the
// identity name = sqrtVal^2, so that name^p becomes sqrtVal^(2p). This is the
// substitution that keeps the sign of a chosen square root attached to
// expressions written in terms of sqrt(name).
func SubstituteSqrt(e Expr, name string, sqrtVal Expr) Expr {
	switch v := e.(type) {
	case *Sym:
		if v.name == name {
			return PowInt(sqrtVal, 2)
		}
		return v
	case *Pow:
		if bs, ok := v.base.(*Sym); ok && bs.name == name {
			return Power(sqrtVal, new(big.Rat).Add(v.exp, v.exp))
		}
		return Power(SubstituteSqrt(v.base, name, sqrtVal), v.exp)
	case *Add:
		out := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			out[i] = SubstituteSqrt(t, name, sqrtVal)
		}
		return Sum(out...)
	case *Mul:
		out := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			out[i] = SubstituteSqrt(f, name, sqrtVal)
		}
		return Product(out...)
	}
	return e
}
