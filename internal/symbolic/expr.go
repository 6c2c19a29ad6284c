// Package symbolic is a small expression kernel: enough algebra to build
// a production function over named symbols, differentiate it and print
// a simplified closed form.
//
// Numbers are float64. Simplification is rule-based and deterministic:
// sums collect like terms, products collect powers of a common base and
// factors are ordered by a stable key, so equal inputs print equally.
package symbolic

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

var (
	// ErrUnboundSymbol is returned by Eval when the environment lacks a value.
	ErrUnboundSymbol = errors.New("symbolic: unbound symbol")
	// ErrUndefined is returned by Eval when the value is NaN or infinite.
	ErrUndefined = errors.New("symbolic: undefined value")
)

// Env binds symbol names to values for Eval.
type Env map[string]float64

// Expr is a node of an expression tree. Nodes are immutable.
type Expr interface {
	Simplify() Expr
	String() string
	Diff(name string) Expr
	Sub(name string, value Expr) Expr
	Eval(env Env) (float64, error)
	Equal(other Expr) bool
	dependsOn(name string) bool
}

// ============================================================
// Num
// ============================================================

type Num struct{ v float64 }

func N(v float64) *Num { return &Num{v: v} }

func (n *Num) Value() float64            { return n.v }
func (n *Num) Simplify() Expr            { return n }
func (n *Num) Diff(string) Expr          { return N(0) }
func (n *Num) Sub(string, Expr) Expr     { return n }
func (n *Num) Eval(Env) (float64, error) { return n.v, nil }
func (n *Num) dependsOn(string) bool     { return false }
func (n *Num) String() string            { return strconv.FormatFloat(n.v, 'g', -1, 64) }
func (n *Num) isZero() bool              { return n.v == 0 }
func (n *Num) isOne() bool               { return n.v == 1 }

func (n *Num) Equal(other Expr) bool {
	o, ok := other.(*Num)
	return ok && o.v == n.v
}

// ============================================================
// Sym
// ============================================================

type Sym struct{ name string }

func S(name string) *Sym { return &Sym{name: name} }

// Symbols is a convenience for declaring several symbols at once.
func Symbols(names ...string) []*Sym {
	out := make([]*Sym, len(names))
	for i, n := range names {
		out[i] = S(n)
	}
	return out
}

func (s *Sym) Name() string            { return s.name }
func (s *Sym) Simplify() Expr          { return s }
func (s *Sym) String() string          { return s.name }
func (s *Sym) dependsOn(n string) bool { return s.name == n }

func (s *Sym) Equal(other Expr) bool {
	o, ok := other.(*Sym)
	return ok && o.name == s.name
}

func (s *Sym) Diff(name string) Expr {
	if s.name == name {
		return N(1)
	}
	return N(0)
}

func (s *Sym) Sub(name string, value Expr) Expr {
	if s.name == name {
		return value
	}
	return s
}

func (s *Sym) Eval(env Env) (float64, error) {
	v, ok := env[s.name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnboundSymbol, s.name)
	}
	return v, nil
}

// ============================================================
// Ln
// ============================================================

type Ln struct{ arg Expr }

func LnOf(arg Expr) Expr { return (&Ln{arg: arg}).Simplify() }

func (l *Ln) Simplify() Expr {
	arg := l.arg.Simplify()
	if n, ok := arg.(*Num); ok && n.isOne() {
		return N(0)
	}
	return &Ln{arg: arg}
}

func (l *Ln) String() string          { return "ln(" + l.arg.String() + ")" }
func (l *Ln) dependsOn(n string) bool { return l.arg.dependsOn(n) }

func (l *Ln) Equal(other Expr) bool {
	o, ok := other.(*Ln)
	return ok && l.arg.Equal(o.arg)
}

func (l *Ln) Diff(name string) Expr {
	return MulOf(l.arg.Diff(name), PowOf(l.arg, N(-1)))
}

func (l *Ln) Sub(name string, value Expr) Expr { return LnOf(l.arg.Sub(name, value)) }

func (l *Ln) Eval(env Env) (float64, error) {
	v, err := l.arg.Eval(env)
	if err != nil {
		return 0, err
	}
	return checked(math.Log(v))
}

func checked(v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrUndefined
	}
	return v, nil
}

// ============================================================
// Public helpers
// ============================================================

// Diff differentiates e with respect to name and simplifies the result.
func Diff(e Expr, name string) Expr { return e.Diff(name).Simplify() }

// Sub replaces every occurrence of name with value.
func Sub(e Expr, name string, value Expr) Expr { return e.Sub(name, value).Simplify() }

// DependsOn reports whether name occurs free in e.
func DependsOn(e Expr, name string) bool { return e.dependsOn(name) }

// Eval evaluates e under env.
func Eval(e Expr, env Env) (float64, error) { return e.Eval(env) }
