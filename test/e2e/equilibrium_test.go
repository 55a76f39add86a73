package e2e

import (
	"context"
	"math/big"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/econkit/walras/internal/logging"
	"github.com/econkit/walras/internal/pipeline"
	"github.com/econkit/walras/internal/solver"
	"github.com/econkit/walras/pkg/algebra"
	"github.com/econkit/walras/pkg/core"
)

func run() *pipeline.Result {
	p, err := pipeline.New(algebra.NewEngine(), pipeline.Options{SolverTimeout: time.Minute})
	Expect(err).NotTo(HaveOccurred())

	ctx := logging.IntoContext(context.Background(), logging.NewTestLogger())
	res, err := p.Run(ctx)
	Expect(err).NotTo(HaveOccurred())
	return res
}

var _ = Describe("Walrasian equilibrium pipeline", func() {
	var res *pipeline.Result

	BeforeEach(func() {
		res = run()
	})

	Context("symbolic solve", func() {
		It("should enumerate both price roots and select the positive one", func() {
			Expect(res.Branches).To(HaveLen(2))
			Expect(res.Solution.BranchIndex).To(Equal(0))
			Expect(res.Solution.Py.String()).To(Equal("2/3*sqrt(3)*sqrt(k)"))
			Expect(res.Branches[1].Value(core.SymPy).String()).To(HavePrefix("-"))
		})

		It("should keep the numeraire normalization", func() {
			By("pricing good X at half the input price")
			Expect(res.Solution.Px.String()).To(Equal("1/2"))
		})

		It("should complete without warnings", func() {
			Expect(res.Warnings).To(BeEmpty())
		})

		It("should satisfy every equilibrium equation identically", func() {
			for _, eq := range res.System.Equations {
				bound := eq
				for name, v := range res.Solution.Values() {
					bound = bound.Substitute(name, v)
				}
				Expect(algebra.IsZero(bound.Residual())).To(BeTrue(),
					"equation %s does not close", eq)
			}
		})

		It("should exhaust the input endowment", func() {
			total := algebra.Sum(res.Solution.ZAlpha, res.Solution.ZBeta)
			Expect(algebra.Equal(algebra.Expand(total), algebra.NewSym(core.SymEndowment))).To(BeTrue())
		})

		It("should clear the Y market by Walras' law", func() {
			Expect(algebra.IsZero(res.Welfare.ExcessDemandY)).To(BeTrue())
		})

		It("should yield a constant welfare ratio", func() {
			Expect(res.Welfare.WelfareRatio.String()).To(Equal("9"))
		})
	})

	Context("with a bound endowment", func() {
		It("should evaluate to strictly positive prices and quantities", func() {
			bound := res.BindEndowment(big.NewRat(4, 1))
			for name, e := range bound.Solution.Values() {
				v, err := algebra.EvalAt(e, nil)
				Expect(err).NotTo(HaveOccurred(), name)
				Expect(v).To(BeNumerically(">", 0), name)
			}
			Expect(bound.Solution.Py.String()).To(Equal("4/3*sqrt(3)"))
		})

		It("should scale inputs linearly and prices with the square root", func() {
			at := func(k int64, e func(*pipeline.Result) algebra.Expr) float64 {
				v, err := algebra.EvalAt(e(res.BindEndowment(big.NewRat(k, 1))), nil)
				Expect(err).NotTo(HaveOccurred())
				return v
			}
			zAlpha := func(r *pipeline.Result) algebra.Expr { return r.Solution.ZAlpha }
			zBeta := func(r *pipeline.Result) algebra.Expr { return r.Solution.ZBeta }
			px := func(r *pipeline.Result) algebra.Expr { return r.Solution.Px }
			py := func(r *pipeline.Result) algebra.Expr { return r.Solution.Py }

			Expect(at(9, zAlpha)).To(BeNumerically("~", 9*at(1, zAlpha), 1e-9))
			Expect(at(9, zBeta)).To(BeNumerically("~", 9*at(1, zBeta), 1e-9))
			Expect(at(9, px)).To(BeNumerically("~", at(1, px), 1e-12))
			Expect(at(9, py)).To(BeNumerically("~", 3*at(1, py), 1e-9))
		})

		It("should keep the welfare ratio at nine for any endowment", func() {
			for _, k := range []int64{1, 2, 7, 100} {
				bound := res.BindEndowment(big.NewRat(k, 1))
				Expect(bound.Welfare.WelfareRatio.String()).To(Equal("9"), "k=%d", k)
			}
		})
	})
})

// ambiguousEngine solves exactly but never proves positivity, forcing the
// selector's fallback path.
type ambiguousEngine struct {
	*algebra.Engine
}

func (ambiguousEngine) IsAlwaysTrue(algebra.Expr, algebra.Assumptions) algebra.Truth {
	return algebra.TruthUnknown
}

var _ solver.Engine = ambiguousEngine{}

var _ = Describe("ambiguous positivity fallback", func() {
	It("should fall back to the first branch with a warning", func() {
		p, err := pipeline.New(ambiguousEngine{algebra.NewEngine()}, pipeline.Options{SolverTimeout: time.Minute})
		Expect(err).NotTo(HaveOccurred())

		ctx := logging.IntoContext(context.Background(), logging.NewTestLogger())
		res, err := p.Run(ctx)
		Expect(err).NotTo(HaveOccurred())

		Expect(res.Warnings).To(HaveLen(1))
		Expect(res.Warnings[0].Kind).To(Equal(core.WarnAmbiguousPositivity))
		Expect(res.Solution.BranchIndex).To(Equal(0))
		Expect(res.Solution.Py.String()).To(Equal("2/3*sqrt(3)*sqrt(k)"))
	})
})

var _ = Describe("solver failure modes", func() {
	It("should report a timeout as ErrSolverTimeout", func() {
		s, err := solver.New(slowEngine{}, solver.Config{Timeout: 10 * time.Millisecond})
		Expect(err).NotTo(HaveOccurred())

		sys := core.EquationSystem{Unknowns: core.Unknowns()}
		x := algebra.NewSym(core.SymPx)
		for range sys.Unknowns {
			sys.Equations = append(sys.Equations, algebra.Eq(x, x))
		}
		_, err = s.Solve(context.Background(), sys)
		Expect(err).To(MatchError(solver.ErrSolverTimeout))
	})
})

// slowEngine blocks until the context expires.
type slowEngine struct{}

func (slowEngine) Solve(ctx context.Context, _ []algebra.Equation, _ []string, _ algebra.SolveOptions) ([]algebra.Branch, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (slowEngine) IsAlwaysTrue(algebra.Expr, algebra.Assumptions) algebra.Truth {
	return algebra.TruthUnknown
}
