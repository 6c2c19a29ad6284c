package symbolic

import (
	"sort"
	"strings"
)

// ============================================================
// Add
// ============================================================

type Add struct{ terms []Expr }

func AddOf(terms ...Expr) Expr { return (&Add{terms: terms}).Simplify() }

// Simplify flattens nested sums, folds constants and collects like terms
// c1*x + c2*x into (c1+c2)*x. Non-constant terms are ordered by key and the
// constant goes last.
func (a *Add) Simplify() Expr {
	flat := make([]Expr, 0, len(a.terms))
	for _, t := range a.terms {
		s := t.Simplify()
		if inner, ok := s.(*Add); ok {
			flat = append(flat, inner.terms...)
		} else {
			flat = append(flat, s)
		}
	}

	constant := 0.0
	coeffs := map[string]float64{}
	rests := map[string]Expr{}
	order := []string{}
	for _, t := range flat {
		if n, ok := t.(*Num); ok {
			constant += n.v
			continue
		}
		c, rest := splitCoeff(t)
		key := rest.String()
		if _, seen := rests[key]; !seen {
			rests[key] = rest
			order = append(order, key)
		}
		coeffs[key] += c
	}
	sort.Strings(order)

	out := make([]Expr, 0, len(order)+1)
	for _, key := range order {
		c := coeffs[key]
		if c == 0 {
			continue
		}
		out = append(out, scale(c, rests[key]))
	}
	if constant != 0 {
		out = append(out, N(constant))
	}
	switch len(out) {
	case 0:
		return N(0)
	case 1:
		return out[0]
	}
	return &Add{terms: out}
}

// splitCoeff separates a leading numeric coefficient from a term.
func splitCoeff(e Expr) (float64, Expr) {
	m, ok := e.(*Mul)
	if !ok {
		return 1, e
	}
	n, ok := m.factors[0].(*Num)
	if !ok {
		return 1, e
	}
	rest := m.factors[1:]
	if len(rest) == 1 {
		return n.v, rest[0]
	}
	return n.v, &Mul{factors: rest}
}

// scale builds c*e without re-running the full product simplifier.
func scale(c float64, e Expr) Expr {
	if c == 1 {
		return e
	}
	if m, ok := e.(*Mul); ok {
		return &Mul{factors: append([]Expr{N(c)}, m.factors...)}
	}
	return &Mul{factors: []Expr{N(c), e}}
}

func (a *Add) String() string {
	var b strings.Builder
	for i, t := range a.terms {
		c, rest := splitCoeff(t)
		if n, ok := t.(*Num); ok {
			c, rest = n.v, nil
		}
		neg := c < 0
		switch {
		case i == 0 && neg:
			b.WriteString("-")
		case i > 0 && neg:
			b.WriteString(" - ")
		case i > 0:
			b.WriteString(" + ")
		}
		if neg {
			c = -c
		}
		switch {
		case rest == nil:
			b.WriteString(N(c).String())
		case c == 1:
			b.WriteString(rest.String())
		default:
			b.WriteString(scale(c, rest).String())
		}
	}
	return b.String()
}

func (a *Add) Diff(name string) Expr {
	d := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		d[i] = t.Diff(name)
	}
	return AddOf(d...)
}

func (a *Add) Sub(name string, value Expr) Expr {
	s := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		s[i] = t.Sub(name, value)
	}
	return AddOf(s...)
}

func (a *Add) Eval(env Env) (float64, error) {
	acc := 0.0
	for _, t := range a.terms {
		v, err := t.Eval(env)
		if err != nil {
			return 0, err
		}
		acc += v
	}
	return checked(acc)
}

func (a *Add) Equal(other Expr) bool {
	o, ok := other.(*Add)
	if !ok || len(o.terms) != len(a.terms) {
		return false
	}
	for i := range a.terms {
		if !a.terms[i].Equal(o.terms[i]) {
			return false
		}
	}
	return true
}

func (a *Add) dependsOn(name string) bool {
	for _, t := range a.terms {
		if t.dependsOn(name) {
			return true
		}
	}
	return false
}

func (a *Add) Terms() []Expr { return a.terms }
