package algebra

import (
	"math/big"
	"sort"
	"strings"
)

// Expr is an immutable symbolic expression in canonical form.
type Expr interface {
	// Substitute returns a copy of the expression with every occurrence of
	// the named symbol replaced by v, re-canonicalized.
	Substitute(name string, v Expr) Expr

	// String renders the expression in a stable infix notation.
	String() string

	// key is a total-order identity string used for sorting and for
	// like-term collection. Equal canonical expressions have equal keys.
	key() string
}

// Equal reports whether two expressions are structurally equal in canonical
// form.
func Equal(a, b Expr) bool { return a.key() == b.key() }

// IsZero reports whether e expands and simplifies to the constant 0.
func IsZero(e Expr) bool {
	n, ok := Expand(e).(*Num)
	return ok && n.val.Sign() == 0
}

// ================= Num =================

// Num is an exact rational constant.
type Num struct{ val *big.Rat }

// NewInt returns the integer constant n.
func NewInt(n int64) *Num { return &Num{val: new(big.Rat).SetInt64(n)} }

// NewRat returns the rational constant p/q. Panics if q is zero.
func NewRat(p, q int64) *Num {
	if q == 0 {
		panic("algebra: zero denominator")
	}
	return &Num{val: new(big.Rat).SetFrac(big.NewInt(p), big.NewInt(q))}
}

// NewRatBig returns the constant with the given big.Rat value.
func NewRatBig(r *big.Rat) *Num { return &Num{val: new(big.Rat).Set(r)} }

func (n *Num) Substitute(string, Expr) Expr { return n }
func (n *Num) String() string               { return n.val.RatString() }
func (n *Num) key() string                  { return "n:" + n.val.RatString() }

// Rat returns a copy of the underlying rational value.
func (n *Num) Rat() *big.Rat { return new(big.Rat).Set(n.val) }

// Sign returns -1, 0 or +1.
func (n *Num) Sign() int { return n.val.Sign() }

func (n *Num) isOne() bool { return n.val.Cmp(ratOne) == 0 }

var (
	ratOne  = new(big.Rat).SetInt64(1)
	ratHalf = big.NewRat(1, 2)
)

// ================= Sym =================

// Sym is a named symbolic variable.
type Sym struct{ name string }

// NewSym returns the symbol with the given name.
func NewSym(name string) *Sym { return &Sym{name: name} }

// Name returns the symbol name.
func (s *Sym) Name() string { return s.name }

func (s *Sym) Substitute(name string, v Expr) Expr {
	if s.name == name {
		return v
	}
	return s
}

func (s *Sym) String() string { return s.name }
func (s *Sym) key() string    { return "s:" + s.name }

// ================= Add =================

// Add is a canonical sum: at least two unlike terms sorted by key, with at
// most one numeric term kept last.
type Add struct{ terms []Expr }

// Terms returns the terms of the sum.
func (a *Add) Terms() []Expr { return append([]Expr(nil), a.terms...) }

func (a *Add) Substitute(name string, v Expr) Expr {
	out := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		out[i] = t.Substitute(name, v)
	}
	return Sum(out...)
}

func (a *Add) String() string {
	var b strings.Builder
	for i, t := range a.terms {
		s, neg := termString(t)
		switch {
		case i == 0 && neg:
			b.WriteString("-" + s)
		case i == 0:
			b.WriteString(s)
		case neg:
			b.WriteString(" - " + s)
		default:
			b.WriteString(" + " + s)
		}
	}
	return b.String()
}

func (a *Add) key() string {
	parts := make([]string, len(a.terms))
	for i, t := range a.terms {
		parts[i] = t.key()
	}
	return "a:[" + strings.Join(parts, ",") + "]"
}

// termString renders a term without its sign, reporting whether it is
// negative.
func termString(t Expr) (string, bool) {
	switch v := t.(type) {
	case *Num:
		if v.val.Sign() < 0 {
			return NewRatBig(new(big.Rat).Neg(v.val)).String(), true
		}
	case *Mul:
		if c, ok := v.factors[0].(*Num); ok && c.val.Sign() < 0 {
			negated := Product(append([]Expr{NewRatBig(new(big.Rat).Neg(c.val))}, v.factors[1:]...)...)
			return mulString(negated), true
		}
	}
	return mulString(t), false
}

// mulString renders t, parenthesizing sums.
func mulString(t Expr) string {
	if _, ok := t.(*Add); ok {
		return "(" + t.String() + ")"
	}
	return t.String()
}

// ================= Mul =================

// Mul is a canonical product: an optional numeric coefficient first, then
// non-numeric factors sorted by key with same-base powers merged.
type Mul struct{ factors []Expr }

// Factors returns the factors of the product.
func (m *Mul) Factors() []Expr { return append([]Expr(nil), m.factors...) }

func (m *Mul) Substitute(name string, v Expr) Expr {
	out := make([]Expr, len(m.factors))
	for i, f := range m.factors {
		out[i] = f.Substitute(name, v)
	}
	return Product(out...)
}

func (m *Mul) String() string {
	parts := make([]string, len(m.factors))
	for i, f := range m.factors {
		parts[i] = mulString(f)
	}
	return strings.Join(parts, "*")
}

func (m *Mul) key() string {
	parts := make([]string, len(m.factors))
	for i, f := range m.factors {
		parts[i] = f.key()
	}
	return "m:[" + strings.Join(parts, ",") + "]"
}

// coeffSplit splits a canonical term into its rational coefficient and the
// remaining monomial (nil for pure constants).
func coeffSplit(t Expr) (*big.Rat, Expr) {
	switch v := t.(type) {
	case *Num:
		return v.Rat(), nil
	case *Mul:
		if c, ok := v.factors[0].(*Num); ok {
			rest := v.factors[1:]
			if len(rest) == 1 {
				return c.Rat(), rest[0]
			}
			return c.Rat(), &Mul{factors: append([]Expr(nil), rest...)}
		}
	}
	return new(big.Rat).Set(ratOne), t
}

// ================= Pow =================

// Pow is a canonical power: a non-numeric base (or a square-free integer base
// under exponent 1/2) raised to a rational exponent other than 0 and 1.
type Pow struct {
	base Expr
	exp  *big.Rat
}

// Base returns the base of the power.
func (p *Pow) Base() Expr { return p.base }

// Exp returns a copy of the rational exponent.
func (p *Pow) Exp() *big.Rat { return new(big.Rat).Set(p.exp) }

func (p *Pow) Substitute(name string, v Expr) Expr {
	return Power(p.base.Substitute(name, v), p.exp)
}

func (p *Pow) String() string {
	if p.exp.Cmp(ratHalf) == 0 {
		return "sqrt(" + p.base.String() + ")"
	}
	base := p.base.String()
	if _, ok := p.base.(*Sym); !ok {
		base = "(" + base + ")"
	}
	if p.exp.IsInt() {
		return base + "^" + p.exp.RatString()
	}
	return base + "^(" + p.exp.RatString() + ")"
}

func (p *Pow) key() string { return "p:(" + p.base.key() + ")^" + p.exp.RatString() }

// FreeSymbols returns the set of symbol names occurring in e.
func FreeSymbols(e Expr) map[string]struct{} {
	out := map[string]struct{}{}
	collectSymbols(e, out)
	return out
}

func collectSymbols(e Expr, out map[string]struct{}) {
	switch v := e.(type) {
	case *Sym:
		out[v.name] = struct{}{}
	case *Add:
		for _, t := range v.terms {
			collectSymbols(t, out)
		}
	case *Mul:
		for _, f := range v.factors {
			collectSymbols(f, out)
		}
	case *Pow:
		collectSymbols(v.base, out)
	}
}

// ContainsSymbol reports whether the named symbol occurs in e.
func ContainsSymbol(e Expr, name string) bool {
	_, ok := FreeSymbols(e)[name]
	return ok
}

func sortByKey(es []Expr) {
	sort.Slice(es, func(i, j int) bool { return es[i].key() < es[j].key() })
}
