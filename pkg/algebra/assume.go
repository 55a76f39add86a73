package algebra

// Truth is the three-valued result of a symbolic truth query. Positivity of
// an expression containing free symbols is not always decidable, so Unknown
// is a first-class answer rather than an error.
type Truth int

const (
	TruthUnknown Truth = iota
	TruthTrue
	TruthFalse
)

func (t Truth) String() string {
	switch t {
	case TruthTrue:
		return "true"
	case TruthFalse:
		return "false"
	}
	return "unknown"
}

// Assumptions carries domain restrictions on symbols, currently positivity.
type Assumptions struct {
	positive map[string]struct{}
}

// PositiveSymbols returns assumptions declaring the named symbols positive
// reals.
func PositiveSymbols(names ...string) Assumptions {
	pos := make(map[string]struct{}, len(names))
	for _, n := range names {
		pos[n] = struct{}{}
	}
	return Assumptions{positive: pos}
}

// ProvePositive reports whether e is provably positive for every admissible
// value of the assumed-positive symbols. TruthFalse means provably
// non-positive; TruthUnknown means the canonical form does not decide it.
func (a Assumptions) ProvePositive(e Expr) Truth {
	switch v := e.(type) {
	case *Num:
		if v.val.Sign() > 0 {
			return TruthTrue
		}
		return TruthFalse
	case *Sym:
		if _, ok := a.positive[v.name]; ok {
			return TruthTrue
		}
		return TruthUnknown
	case *Pow:
		switch a.ProvePositive(v.base) {
		case TruthTrue:
			// positive^rational > 0
			return TruthTrue
		case TruthFalse:
			if nb, ok := v.base.(*Num); ok && nb.val.Sign() < 0 && v.exp.IsInt() {
				if v.exp.Num().Int64()%2 == 0 {
					return TruthTrue
				}
				return TruthFalse
			}
		}
		return TruthUnknown
	case *Mul:
		negatives := 0
		for _, f := range v.factors {
			switch a.ProvePositive(f) {
			case TruthTrue:
			case TruthFalse:
				negatives++
			default:
				return TruthUnknown
			}
		}
		if negatives%2 == 0 {
			return TruthTrue
		}
		return TruthFalse
	case *Add:
		allPos, allNeg := true, true
		for _, t := range v.terms {
			switch a.ProvePositive(t) {
			case TruthTrue:
				allNeg = false
			case TruthFalse:
				allPos = false
			default:
				return TruthUnknown
			}
		}
		switch {
		case allPos:
			return TruthTrue
		case allNeg:
			return TruthFalse
		}
		return TruthUnknown
	}
	return TruthUnknown
}
