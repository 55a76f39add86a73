package algebra

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProvePositive(t *testing.T) {
	k := NewSym("k")
	w := NewSym("w")
	pos := PositiveSymbols("k")

	tests := []struct {
		name string
		expr Expr
		want Truth
	}{
		{
			name: "positive constant",
			expr: NewRat(2, 3),
			want: TruthTrue,
		},
		{
			name: "negative constant",
			expr: NewInt(-1),
			want: TruthFalse,
		},
		{
			name: "assumed symbol",
			expr: k,
			want: TruthTrue,
		},
		{
			name: "unassumed symbol",
			expr: w,
			want: TruthUnknown,
		},
		{
			name: "radical of assumed symbol",
			expr: Sqrt(k),
			want: TruthTrue,
		},
		{
			name: "positive coefficient times radical",
			expr: Product(NewRat(2, 3), Sqrt(NewInt(3)), Sqrt(k)),
			want: TruthTrue,
		},
		{
			name: "negative coefficient times radical",
			expr: Product(NewRat(-2, 3), Sqrt(NewInt(3)), Sqrt(k)),
			want: TruthFalse,
		},
		{
			name: "sum of positive terms",
			expr: Sum(k, NewInt(1)),
			want: TruthTrue,
		},
		{
			name: "mixed sign sum",
			expr: Subtract(k, NewInt(1)),
			want: TruthUnknown,
		},
		{
			name: "product with unassumed factor",
			expr: Product(k, w),
			want: TruthUnknown,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pos.ProvePositive(tt.expr))
		})
	}
}

func TestTruthString(t *testing.T) {
	assert.Equal(t, "true", TruthTrue.String())
	assert.Equal(t, "false", TruthFalse.String())
	assert.Equal(t, "unknown", TruthUnknown.String())
}
