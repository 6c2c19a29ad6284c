package symbolic

import "math"

// ============================================================
// Pow
// ============================================================

type Pow struct{ base, exp Expr }

func PowOf(base, exp Expr) Expr { return (&Pow{base: base, exp: exp}).Simplify() }

func (p *Pow) Simplify() Expr {
	base := p.base.Simplify()
	exp := p.exp.Simplify()

	if en, ok := exp.(*Num); ok {
		if en.isZero() {
			return N(1)
		}
		if en.isOne() {
			return base
		}
	}
	if bn, ok := base.(*Num); ok {
		if bn.isOne() {
			return N(1)
		}
		if en, ok := exp.(*Num); ok {
			if v := math.Pow(bn.v, en.v); !math.IsNaN(v) && !math.IsInf(v, 0) {
				return N(v)
			}
		}
	}
	if inner, ok := base.(*Pow); ok {
		return PowOf(inner.base, MulOf(inner.exp, exp))
	}
	return &Pow{base: base, exp: exp}
}

func (p *Pow) String() string {
	b, e := p.base.String(), p.exp.String()
	switch p.base.(type) {
	case *Add, *Mul, *Pow:
		b = "(" + b + ")"
	}
	switch x := p.exp.(type) {
	case *Add, *Mul, *Pow:
		e = "(" + e + ")"
	case *Num:
		if x.v < 0 {
			e = "(" + e + ")"
		}
	}
	return b + "^" + e
}

// Diff uses the power rule when the exponent is free of name, the
// exponential rule when the base is, and the general form
// d(u^v) = u^v * (v' ln u + v u'/u) otherwise.
func (p *Pow) Diff(name string) Expr {
	du := p.base.Diff(name)
	dv := p.exp.Diff(name)
	if !p.exp.dependsOn(name) {
		return MulOf(p.exp, PowOf(p.base, AddOf(p.exp, N(-1))), du)
	}
	if !p.base.dependsOn(name) {
		return MulOf(PowOf(p.base, p.exp), LnOf(p.base), dv)
	}
	return MulOf(
		PowOf(p.base, p.exp),
		AddOf(
			MulOf(dv, LnOf(p.base)),
			MulOf(p.exp, du, PowOf(p.base, N(-1))),
		),
	)
}

func (p *Pow) Sub(name string, value Expr) Expr {
	return PowOf(p.base.Sub(name, value), p.exp.Sub(name, value))
}

func (p *Pow) Eval(env Env) (float64, error) {
	b, err := p.base.Eval(env)
	if err != nil {
		return 0, err
	}
	e, err := p.exp.Eval(env)
	if err != nil {
		return 0, err
	}
	return checked(math.Pow(b, e))
}

func (p *Pow) Equal(other Expr) bool {
	o, ok := other.(*Pow)
	return ok && p.base.Equal(o.base) && p.exp.Equal(o.exp)
}

func (p *Pow) dependsOn(name string) bool {
	return p.base.dependsOn(name) || p.exp.dependsOn(name)
}

func (p *Pow) Base() Expr     { return p.base }
func (p *Pow) Exponent() Expr { return p.exp }
