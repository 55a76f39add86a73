package algebra

import (
	"math/big"
	"sort"
)

// Sum returns the canonical sum of the given terms.
func Sum(terms ...Expr) Expr {
	flat := make([]Expr, 0, len(terms))
	for _, t := range terms {
		if a, ok := t.(*Add); ok {
			flat = append(flat, a.terms...)
		} else {
			flat = append(flat, t)
		}
	}

	// Collect like terms by monomial key.
	numAccum := new(big.Rat)
	coeffs := map[string]*big.Rat{}
	monos := map[string]Expr{}
	order := []string{}
	for _, t := range flat {
		c, mono := coeffSplit(t)
		if mono == nil {
			numAccum.Add(numAccum, c)
			continue
		}
		k := mono.key()
		if _, seen := coeffs[k]; !seen {
			coeffs[k] = new(big.Rat)
			monos[k] = mono
			order = append(order, k)
		}
		coeffs[k].Add(coeffs[k], c)
	}

	result := make([]Expr, 0, len(order)+1)
	sort.Strings(order)
	for _, k := range order {
		c := coeffs[k]
		if c.Sign() == 0 {
			continue
		}
		if c.Cmp(ratOne) == 0 {
			result = append(result, monos[k])
		} else {
			result = append(result, Product(NewRatBig(c), monos[k]))
		}
	}
	if numAccum.Sign() != 0 {
		result = append(result, NewRatBig(numAccum))
	}

	switch len(result) {
	case 0:
		return NewInt(0)
	case 1:
		return result[0]
	}
	return &Add{terms: result}
}

// Product returns the canonical product of the given factors.
func Product(factors ...Expr) Expr {
	flat := make([]Expr, 0, len(factors))
	for _, f := range factors {
		if m, ok := f.(*Mul); ok {
			flat = append(flat, m.factors...)
		} else {
			flat = append(flat, f)
		}
	}

	coeff := new(big.Rat).Set(ratOne)
	radicand := new(big.Rat).Set(ratOne) // product of numeric bases under exponent 1/2
	type powAcc struct {
		base Expr
		exp  *big.Rat
	}
	accum := map[string]*powAcc{}
	order := []string{}
	opaque := []Expr{}

	addPower := func(base Expr, exp *big.Rat) {
		k := base.key()
		if acc, ok := accum[k]; ok {
			acc.exp.Add(acc.exp, exp)
			return
		}
		accum[k] = &powAcc{base: base, exp: new(big.Rat).Set(exp)}
		order = append(order, k)
	}

	for _, f := range flat {
		switch v := f.(type) {
		case *Num:
			if v.val.Sign() == 0 {
				return NewInt(0)
			}
			coeff.Mul(coeff, v.val)
		case *Pow:
			if nb, ok := v.base.(*Num); ok {
				if !applyNumericPower(coeff, radicand, nb.val, v.exp) {
					opaque = append(opaque, v)
				}
				continue
			}
			addPower(v.base, v.exp)
		default:
			addPower(f, ratOne)
		}
	}

	if radicand.Cmp(ratOne) != 0 {
		c, f, ok := normalizeSqrtRat(radicand)
		if ok {
			coeff.Mul(coeff, c)
			if f.Cmp(big.NewInt(1)) != 0 {
				opaque = append(opaque, &Pow{base: NewRatBig(new(big.Rat).SetInt(f)), exp: new(big.Rat).Set(ratHalf)})
			}
		} else {
			opaque = append(opaque, &Pow{base: NewRatBig(radicand), exp: new(big.Rat).Set(ratHalf)})
		}
	}

	rebuilt := make([]Expr, 0, len(order)+len(opaque))
	for _, k := range order {
		acc := accum[k]
		e := Power(acc.base, acc.exp)
		if n, ok := e.(*Num); ok {
			if n.val.Sign() == 0 {
				return NewInt(0)
			}
			coeff.Mul(coeff, n.val)
			continue
		}
		rebuilt = append(rebuilt, e)
	}
	rebuilt = append(rebuilt, opaque...)
	sortByKey(rebuilt)

	if len(rebuilt) == 0 {
		return NewRatBig(coeff)
	}
	if coeff.Cmp(ratOne) == 0 {
		if len(rebuilt) == 1 {
			return rebuilt[0]
		}
		return &Mul{factors: rebuilt}
	}
	return &Mul{factors: append([]Expr{NewRatBig(coeff)}, rebuilt...)}
}

// Power returns base raised to the rational exponent exp, canonicalized.
func Power(base Expr, exp *big.Rat) Expr {
	if exp.Sign() == 0 {
		return NewInt(1)
	}
	if exp.Cmp(ratOne) == 0 {
		return base
	}
	switch v := base.(type) {
	case *Num:
		return numericPower(v.val, exp)
	case *Pow:
		return Power(v.base, new(big.Rat).Mul(v.exp, exp))
	case *Mul:
		out := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			out[i] = Power(f, exp)
		}
		return Product(out...)
	}
	return &Pow{base: base, exp: new(big.Rat).Set(exp)}
}

// Convenience constructors over Power and Product.

// Sqrt returns the square root of e.
func Sqrt(e Expr) Expr { return Power(e, ratHalf) }

// PowInt returns e raised to the integer n.
func PowInt(e Expr, n int64) Expr { return Power(e, new(big.Rat).SetInt64(n)) }

// PowRat returns e raised to p/q.
func PowRat(e Expr, p, q int64) Expr { return Power(e, big.NewRat(p, q)) }

// Neg returns -e.
func Neg(e Expr) Expr { return Product(NewInt(-1), e) }

// Subtract returns a - b.
func Subtract(a, b Expr) Expr { return Sum(a, Neg(b)) }

// Inverse returns 1/e.
func Inverse(e Expr) Expr { return PowInt(e, -1) }

// Divide returns a / b.
func Divide(a, b Expr) Expr { return Product(a, Inverse(b)) }

// numericPower evaluates a rational base under a rational exponent as far as
// exact arithmetic allows, leaving irreducible forms as Pow atoms.
func numericPower(base, exp *big.Rat) Expr {
	if base.Sign() == 0 {
		if exp.Sign() < 0 {
			panic("algebra: zero to a negative power")
		}
		return NewInt(0)
	}
	if exp.IsInt() {
		return NewRatBig(ratPowInt(base, exp.Num().Int64()))
	}
	if i, half := splitHalfInteger(exp); half && base.Sign() > 0 {
		c := ratPowInt(base, i)
		c2, f, _ := normalizeSqrtRat(base)
		c.Mul(c, c2)
		if f.Cmp(big.NewInt(1)) == 0 {
			return NewRatBig(c)
		}
		return Product(NewRatBig(c), &Pow{base: NewRatBig(new(big.Rat).SetInt(f)), exp: new(big.Rat).Set(ratHalf)})
	}
	return &Pow{base: NewRatBig(base), exp: new(big.Rat).Set(exp)}
}

// applyNumericPower folds a numeric base power into the running coefficient
// and radicand of a product. It reports false for forms it cannot fold.
func applyNumericPower(coeff, radicand, base, exp *big.Rat) bool {
	if base.Sign() <= 0 {
		return false
	}
	if exp.IsInt() {
		coeff.Mul(coeff, ratPowInt(base, exp.Num().Int64()))
		return true
	}
	if i, half := splitHalfInteger(exp); half {
		coeff.Mul(coeff, ratPowInt(base, i))
		radicand.Mul(radicand, base)
		return true
	}
	return false
}

// splitHalfInteger decomposes exp as i + 1/2 for integer i, reporting whether
// the decomposition applies.
func splitHalfInteger(exp *big.Rat) (int64, bool) {
	twice := new(big.Rat).Add(exp, exp)
	if !twice.IsInt() {
		return 0, false
	}
	t := twice.Num().Int64()
	if t%2 == 0 {
		return 0, false
	}
	return (t - 1) / 2, true
}

// ratPowInt returns r^n using exact arithmetic.
func ratPowInt(r *big.Rat, n int64) *big.Rat {
	if n < 0 {
		if r.Sign() == 0 {
			panic("algebra: zero to a negative power")
		}
		return ratPowInt(new(big.Rat).Inv(r), -n)
	}
	out := new(big.Rat).Set(ratOne)
	acc := new(big.Rat).Set(r)
	for n > 0 {
		if n&1 == 1 {
			out.Mul(out, acc)
		}
		acc.Mul(acc, acc)
		n >>= 1
	}
	return out
}

// normalizeSqrtRat rewrites sqrt(r) for positive rational r as c*sqrt(f) with
// f a square-free positive integer. It reports false for non-positive r.
func normalizeSqrtRat(r *big.Rat) (*big.Rat, *big.Int, bool) {
	if r.Sign() <= 0 {
		return nil, nil, false
	}
	num, den := r.Num(), r.Denom()
	m := new(big.Int).Mul(num, den) // sqrt(n/d) = sqrt(n*d)/d
	s, f := extractSquare(m)
	coeff := new(big.Rat).SetFrac(s, den)
	return coeff, f, true
}

// extractSquare factors m into s^2 * f with f square-free, by trial division.
// Square factors beyond the trial bound are left inside f; the result stays
// exact either way.
func extractSquare(m *big.Int) (s, f *big.Int) {
	s = big.NewInt(1)
	f = big.NewInt(1)
	rest := new(big.Int).Set(m)
	pp := new(big.Int)
	for p := int64(2); p < 1<<16; p++ {
		pb := big.NewInt(p)
		if pp.Mul(pb, pb); pp.Cmp(rest) > 0 {
			break
		}
		exp := 0
		q, rem := new(big.Int), new(big.Int)
		for {
			q.QuoRem(rest, pb, rem)
			if rem.Sign() != 0 {
				break
			}
			rest.Set(q)
			exp++
		}
		for ; exp >= 2; exp -= 2 {
			s.Mul(s, pb)
		}
		if exp == 1 {
			f.Mul(f, pb)
		}
	}
	f.Mul(f, rest)
	return s, f
}
