package production

import (
	"errors"

	"macro-sim/internal/symbolic"
)

// ErrAlgebraUnavailable is returned when no symbolic backend is configured.
var ErrAlgebraUnavailable = errors.New("symbolic algebra unavailable")

// Symbol names used in the derived expressions.
const (
	SymCapital = "K"
	SymLabor   = "L"
	SymAlpha   = "alpha"
)

// Expressions are the simplified closed forms of output and its partial
// derivatives, over the symbols K, L and alpha.
type Expressions struct {
	Output symbolic.Expr
	MPK    symbolic.Expr
	MPL    symbolic.Expr
}

// Algebra derives the production expressions.
type Algebra interface {
	Derive() (Expressions, error)
}

// SymbolicAlgebra derives the expressions with the symbolic kernel.
type SymbolicAlgebra struct{}

func (SymbolicAlgebra) Derive() (Expressions, error) {
	syms := symbolic.Symbols(SymCapital, SymLabor, SymAlpha)
	k, l, a := syms[0], syms[1], syms[2]

	y := symbolic.MulOf(
		symbolic.PowOf(k, a),
		symbolic.PowOf(l, symbolic.AddOf(symbolic.N(1), symbolic.MulOf(symbolic.N(-1), a))),
	)
	return Expressions{
		Output: y,
		MPK:    symbolic.Diff(y, SymCapital),
		MPL:    symbolic.Diff(y, SymLabor),
	}, nil
}

// UnavailableAlgebra stands in when symbolic derivation is switched off.
type UnavailableAlgebra struct{}

func (UnavailableAlgebra) Derive() (Expressions, error) {
	return Expressions{}, ErrAlgebraUnavailable
}
