package symbolic

import (
	"sort"
	"strings"
)

// ============================================================
// Mul
// ============================================================

type Mul struct{ factors []Expr }

func MulOf(factors ...Expr) Expr { return (&Mul{factors: factors}).Simplify() }

// Simplify flattens nested products, folds numeric factors into a leading
// coefficient and merges powers of a common base: x^a * x^b = x^(a+b).
func (m *Mul) Simplify() Expr {
	flat := make([]Expr, 0, len(m.factors))
	for _, f := range m.factors {
		s := f.Simplify()
		if inner, ok := s.(*Mul); ok {
			flat = append(flat, inner.factors...)
		} else {
			flat = append(flat, s)
		}
	}

	coeff := 1.0
	bases := map[string]Expr{}
	exps := map[string][]Expr{}
	order := []string{}
	for _, f := range flat {
		if n, ok := f.(*Num); ok {
			coeff *= n.v
			continue
		}
		base, exp := Expr(f), Expr(N(1))
		if p, ok := f.(*Pow); ok {
			base, exp = p.base, p.exp
		}
		key := base.String()
		if _, seen := bases[key]; !seen {
			bases[key] = base
			order = append(order, key)
		}
		exps[key] = append(exps[key], exp)
	}
	if coeff == 0 {
		return N(0)
	}

	others := make([]Expr, 0, len(order))
	for _, key := range order {
		f := PowOf(bases[key], AddOf(exps[key]...))
		if n, ok := f.(*Num); ok {
			coeff *= n.v
			continue
		}
		others = append(others, f)
	}
	if len(others) == 0 {
		return N(coeff)
	}
	sort.SliceStable(others, func(i, j int) bool {
		ri, rj := factorRank(others[i]), factorRank(others[j])
		if ri != rj {
			return ri < rj
		}
		return others[i].String() < others[j].String()
	})

	if coeff == 1 {
		if len(others) == 1 {
			return others[0]
		}
		return &Mul{factors: others}
	}
	return &Mul{factors: append([]Expr{N(coeff)}, others...)}
}

// factorRank orders bare symbols before powers, and powers before
// compound factors.
func factorRank(e Expr) int {
	switch e.(type) {
	case *Sym:
		return 0
	case *Pow:
		return 1
	case *Ln:
		return 2
	default:
		return 3
	}
}

func (m *Mul) String() string {
	parts := make([]string, len(m.factors))
	for i, f := range m.factors {
		if _, ok := f.(*Add); ok {
			parts[i] = "(" + f.String() + ")"
		} else {
			parts[i] = f.String()
		}
	}
	if len(parts) > 1 && parts[0] == "-1" {
		return "-" + strings.Join(parts[1:], "*")
	}
	return strings.Join(parts, "*")
}

// Diff applies the product rule.
func (m *Mul) Diff(name string) Expr {
	terms := make([]Expr, 0, len(m.factors))
	for i, fi := range m.factors {
		if !fi.dependsOn(name) {
			continue
		}
		rest := make([]Expr, 0, len(m.factors))
		rest = append(rest, fi.Diff(name))
		for j, fj := range m.factors {
			if j != i {
				rest = append(rest, fj)
			}
		}
		terms = append(terms, MulOf(rest...))
	}
	return AddOf(terms...)
}

func (m *Mul) Sub(name string, value Expr) Expr {
	s := make([]Expr, len(m.factors))
	for i, f := range m.factors {
		s[i] = f.Sub(name, value)
	}
	return MulOf(s...)
}

func (m *Mul) Eval(env Env) (float64, error) {
	acc := 1.0
	for _, f := range m.factors {
		v, err := f.Eval(env)
		if err != nil {
			return 0, err
		}
		acc *= v
	}
	return checked(acc)
}

func (m *Mul) Equal(other Expr) bool {
	o, ok := other.(*Mul)
	if !ok || len(o.factors) != len(m.factors) {
		return false
	}
	for i := range m.factors {
		if !m.factors[i].Equal(o.factors[i]) {
			return false
		}
	}
	return true
}

func (m *Mul) dependsOn(name string) bool {
	for _, f := range m.factors {
		if f.dependsOn(name) {
			return true
		}
	}
	return false
}

func (m *Mul) Factors() []Expr { return m.factors }
