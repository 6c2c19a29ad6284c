package production

import (
	"log/slog"
	"sync"

	"macro-sim/internal/model"
	"macro-sim/internal/symbolic"
)

// Evaluator computes marginal products through an injected Algebra.
// A nil Algebra behaves like UnavailableAlgebra. The expressions are derived
// once, on first use; Algebra must not be changed after that.
type Evaluator struct {
	Algebra Algebra
	Logger  *slog.Logger

	once  sync.Once
	exprs Expressions
	err   error
}

func NewEvaluator(a Algebra) *Evaluator {
	return &Evaluator{Algebra: a}
}

func (e *Evaluator) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}

// Symbolic returns the derived expressions, or ErrAlgebraUnavailable.
func (e *Evaluator) Symbolic() (Expressions, error) {
	if e == nil || e.Algebra == nil {
		return Expressions{}, ErrAlgebraUnavailable
	}
	e.once.Do(func() {
		e.exprs, e.err = e.Algebra.Derive()
	})
	return e.exprs, e.err
}

// Numeric evaluates (MPK, MPL) at p. It uses the symbolic expressions when
// the algebra is available and falls back to the closed-form formulas on
// any failure, so it never errors.
func (e *Evaluator) Numeric(p model.ProductionParams) (mpk, mpl float64) {
	exprs, err := e.Symbolic()
	if err != nil {
		return MarginalProducts(p.K, p.L, p.Alpha)
	}
	return e.eval(exprs, p.K, p.L, p.Alpha)
}

func (e *Evaluator) eval(exprs Expressions, k, l, alpha float64) (float64, float64) {
	env := symbolic.Env{SymCapital: k, SymLabor: l, SymAlpha: alpha}
	mpk, err := exprs.MPK.Eval(env)
	if err != nil {
		e.logger().Debug("symbolic MPK evaluation failed, using formula", "err", err)
		return MarginalProducts(k, l, alpha)
	}
	mpl, err := exprs.MPL.Eval(env)
	if err != nil {
		e.logger().Debug("symbolic MPL evaluation failed, using formula", "err", err)
		return MarginalProducts(k, l, alpha)
	}
	return mpk, mpl
}

// Result bundles one evaluation for reporting.
type Result struct {
	Params    model.ProductionParams `json:"params"`
	Output    float64                `json:"output"`
	MPK       float64                `json:"mpk"`
	MPL       float64                `json:"mpl"`
	Symbolic  bool                   `json:"symbolic"`
	OutputStr string                 `json:"output_expr,omitempty"`
	MPKStr    string                 `json:"mpk_expr,omitempty"`
	MPLStr    string                 `json:"mpl_expr,omitempty"`
}

// Evaluate computes output and marginal products at p, attaching the
// symbolic forms when available.
func (e *Evaluator) Evaluate(p model.ProductionParams) Result {
	res := Result{Params: p, Output: Output(p)}
	res.MPK, res.MPL = e.Numeric(p)
	if exprs, err := e.Symbolic(); err == nil {
		res.Symbolic = true
		res.OutputStr = exprs.Output.String()
		res.MPKStr = exprs.MPK.String()
		res.MPLStr = exprs.MPL.String()
	}
	return res
}
