package algebraic

import (
	"math/big"
	"strings"
)

// ============================================================
// Rational polynomials
// ============================================================

// QPoly is a polynomial over Q, constant coefficient first.
type QPoly []*big.Rat

// X is the polynomial x.
func X() QPoly { return QPoly{new(big.Rat), big.NewRat(1, 1)} }

// ConstQ is the constant polynomial q.
func ConstQ(q *big.Rat) QPoly { return QPoly{new(big.Rat).Set(q)}.trim() }

// NewQPoly builds a polynomial from rational coefficients, constant first.
func NewQPoly(coeffs ...*big.Rat) QPoly {
	out := make(QPoly, len(coeffs))
	for i, c := range coeffs {
		out[i] = new(big.Rat).Set(c)
	}
	return out.trim()
}

func (p QPoly) trim() QPoly {
	n := len(p)
	for n > 0 && p[n-1].Sign() == 0 {
		n--
	}
	return p[:n]
}

func (p QPoly) Degree() int { return len(p) - 1 }

func (p QPoly) IsZero() bool { return len(p) == 0 }

func (p QPoly) Coeff(i int) *big.Rat {
	if i < 0 || i >= len(p) {
		return new(big.Rat)
	}
	return new(big.Rat).Set(p[i])
}

func (p QPoly) Lead() *big.Rat { return p.Coeff(len(p) - 1) }

func (p QPoly) Equal(q QPoly) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i].Cmp(q[i]) != 0 {
			return false
		}
	}
	return true
}

func (p QPoly) String() string {
	if len(p) == 0 {
		return "0"
	}
	parts := make([]string, 0, len(p))
	for i := len(p) - 1; i >= 0; i-- {
		if p[i].Sign() == 0 {
			continue
		}
		s := p[i].RatString()
		switch i {
		case 0:
		case 1:
			s += "*x"
		default:
			s += "*x^" + big.NewInt(int64(i)).String()
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " + ")
}

func (p QPoly) Add(q QPoly) QPoly {
	out := make(QPoly, max(len(p), len(q)))
	for i := range out {
		out[i] = new(big.Rat).Add(p.Coeff(i), q.Coeff(i))
	}
	return out.trim()
}

func (p QPoly) Neg() QPoly {
	out := make(QPoly, len(p))
	for i, c := range p {
		out[i] = new(big.Rat).Neg(c)
	}
	return out
}

func (p QPoly) Sub(q QPoly) QPoly { return p.Add(q.Neg()) }

func (p QPoly) Mul(q QPoly) QPoly {
	if len(p) == 0 || len(q) == 0 {
		return nil
	}
	out := make(QPoly, len(p)+len(q)-1)
	for i := range out {
		out[i] = new(big.Rat)
	}
	t := new(big.Rat)
	for i, a := range p {
		if a.Sign() == 0 {
			continue
		}
		for j, b := range q {
			out[i+j].Add(out[i+j], t.Mul(a, b))
		}
	}
	return out.trim()
}

// Scale multiplies every coefficient by c.
func (p QPoly) Scale(c *big.Rat) QPoly {
	out := make(QPoly, len(p))
	for i, a := range p {
		out[i] = new(big.Rat).Mul(a, c)
	}
	return out.trim()
}

// Pow raises p to a non-negative integer power.
func (p QPoly) Pow(n int) QPoly {
	out := QPoly{big.NewRat(1, 1)}
	base := p
	for n > 0 {
		if n&1 == 1 {
			out = out.Mul(base)
		}
		n >>= 1
		if n > 0 {
			base = base.Mul(base)
		}
	}
	return out
}

// Eval evaluates p at a rational point.
func (p QPoly) Eval(x *big.Rat) *big.Rat {
	acc := new(big.Rat)
	for i := len(p) - 1; i >= 0; i-- {
		acc.Mul(acc, x)
		acc.Add(acc, p[i])
	}
	return acc
}

// Compose returns p(q(x)).
func (p QPoly) Compose(q QPoly) QPoly {
	var acc QPoly
	for i := len(p) - 1; i >= 0; i-- {
		acc = acc.Mul(q).Add(ConstQ(p[i]))
	}
	return acc
}

func (p QPoly) Derivative() QPoly {
	if len(p) <= 1 {
		return nil
	}
	out := make(QPoly, len(p)-1)
	for i := 1; i < len(p); i++ {
		out[i-1] = new(big.Rat).Mul(p[i], big.NewRat(int64(i), 1))
	}
	return out.trim()
}

// DivMod performs Euclidean division.
func (p QPoly) DivMod(q QPoly) (quo, rem QPoly) {
	if len(q) == 0 {
		panic("algebraic: division by zero polynomial")
	}
	rem = NewQPoly(p...)
	if len(p) < len(q) {
		return nil, rem
	}
	dq := q.Degree()
	quo = make(QPoly, len(p)-dq)
	for i := range quo {
		quo[i] = new(big.Rat)
	}
	inv := new(big.Rat).Inv(q[dq])
	for len(rem) > dq {
		k := rem.Degree()
		c := new(big.Rat).Mul(rem[k], inv)
		quo[k-dq] = c
		for j := 0; j <= dq; j++ {
			rem[k-dq+j] = new(big.Rat).Sub(rem[k-dq+j], new(big.Rat).Mul(c, q[j]))
		}
		rem = rem.trim()
	}
	return quo.trim(), rem
}

// Monic divides by the leading coefficient.
func (p QPoly) Monic() QPoly {
	if len(p) == 0 {
		return p
	}
	return p.Scale(new(big.Rat).Inv(p[len(p)-1]))
}

// GCD returns the monic greatest common divisor.
func (p QPoly) GCD(q QPoly) QPoly {
	a, b := p, q
	for len(b) > 0 {
		_, r := a.DivMod(b)
		a, b = b, r
	}
	return a.Monic()
}

// Primitive clears denominators and returns the primitive integer
// polynomial with the same roots.
func (p QPoly) Primitive() ZPoly {
	den := big.NewInt(1)
	for _, c := range p {
		d := c.Denom()
		g := new(big.Int).GCD(nil, nil, den, d)
		den.Mul(den, new(big.Int).Quo(d, g))
	}
	out := make(ZPoly, len(p))
	for i, c := range p {
		v := new(big.Int).Mul(c.Num(), den)
		out[i] = v.Quo(v, c.Denom())
	}
	return out.Primitive()
}

// SquarefreeFactors returns Yun's decomposition p = c * prod f_k^k as the
// list f_1, f_2, ... of monic factors; unit factors are returned as nil.
func (p QPoly) SquarefreeFactors() []QPoly {
	if p.Degree() < 1 {
		return nil
	}
	var out []QPoly
	f := p.Monic()
	df := f.Derivative()
	a0 := f.GCD(df)
	b, _ := f.DivMod(a0)
	c, _ := df.DivMod(a0)
	d := c.Sub(b.Derivative())
	for b.Degree() >= 1 {
		a := b.GCD(d)
		if a.Degree() >= 1 {
			out = append(out, a)
		} else {
			out = append(out, nil)
		}
		b, _ = b.DivMod(a)
		c, _ = d.DivMod(a)
		d = c.Sub(b.Derivative())
	}
	for len(out) > 0 && out[len(out)-1] == nil {
		out = out[:len(out)-1]
	}
	return out
}
