package algebraic

import (
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/njchilds90/gogrim/internal/numtheory"
	"github.com/njchilds90/gogrim/interval"
)

// ============================================================
// Integer polynomials
// ============================================================

// ZPoly is a polynomial over Z, constant coefficient first. The zero
// polynomial is the empty slice. Values are never mutated after
// construction.
type ZPoly []*big.Int

// NewZPoly builds a polynomial from small coefficients, constant first.
func NewZPoly(coeffs ...int64) ZPoly {
	p := make(ZPoly, len(coeffs))
	for i, c := range coeffs {
		p[i] = big.NewInt(c)
	}
	return p.trim()
}

func (p ZPoly) trim() ZPoly {
	n := len(p)
	for n > 0 && p[n-1].Sign() == 0 {
		n--
	}
	return p[:n]
}

// Degree returns -1 for the zero polynomial.
func (p ZPoly) Degree() int { return len(p) - 1 }

func (p ZPoly) IsZero() bool { return len(p) == 0 }

// Coeff returns the coefficient of x^i.
func (p ZPoly) Coeff(i int) *big.Int {
	if i < 0 || i >= len(p) {
		return new(big.Int)
	}
	return new(big.Int).Set(p[i])
}

func (p ZPoly) Lead() *big.Int {
	if len(p) == 0 {
		return new(big.Int)
	}
	return new(big.Int).Set(p[len(p)-1])
}

func (p ZPoly) Equal(q ZPoly) bool {
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

// Bits returns the largest coefficient bit length.
func (p ZPoly) Bits() int {
	b := 0
	for _, c := range p {
		if n := c.BitLen(); n > b {
			b = n
		}
	}
	return b
}

func (p ZPoly) String() string {
	if len(p) == 0 {
		return "0"
	}
	var sb strings.Builder
	for i := len(p) - 1; i >= 0; i-- {
		c := p[i]
		if c.Sign() == 0 {
			continue
		}
		abs := new(big.Int).Abs(c)
		switch {
		case sb.Len() == 0 && c.Sign() < 0:
			sb.WriteString("-")
		case sb.Len() > 0 && c.Sign() < 0:
			sb.WriteString(" - ")
		case sb.Len() > 0:
			sb.WriteString(" + ")
		}
		if i == 0 || abs.Cmp(big.NewInt(1)) != 0 {
			sb.WriteString(abs.String())
			if i > 0 {
				sb.WriteString("*")
			}
		}
		switch {
		case i == 1:
			sb.WriteString("x")
		case i > 1:
			fmt.Fprintf(&sb, "x^%d", i)
		}
	}
	return sb.String()
}

// Content is the gcd of the coefficients, always non-negative.
func (p ZPoly) Content() *big.Int {
	g := new(big.Int)
	for _, c := range p {
		g.GCD(nil, nil, g, new(big.Int).Abs(c))
	}
	return g
}

// Primitive divides out the content and makes the leading coefficient
// positive.
func (p ZPoly) Primitive() ZPoly {
	p = p.trim()
	if len(p) == 0 {
		return p
	}
	g := p.Content()
	if p[len(p)-1].Sign() < 0 {
		g.Neg(g)
	}
	out := make(ZPoly, len(p))
	for i, c := range p {
		out[i] = new(big.Int).Quo(c, g)
	}
	return out
}

func (p ZPoly) Neg() ZPoly {
	out := make(ZPoly, len(p))
	for i, c := range p {
		out[i] = new(big.Int).Neg(c)
	}
	return out
}

func (p ZPoly) Add(q ZPoly) ZPoly {
	n := max(len(p), len(q))
	out := make(ZPoly, n)
	for i := range out {
		out[i] = new(big.Int).Add(p.Coeff(i), q.Coeff(i))
	}
	return out.trim()
}

func (p ZPoly) Sub(q ZPoly) ZPoly { return p.Add(q.Neg()) }

func (p ZPoly) Mul(q ZPoly) ZPoly {
	if len(p) == 0 || len(q) == 0 {
		return nil
	}
	out := make(ZPoly, len(p)+len(q)-1)
	for i := range out {
		out[i] = new(big.Int)
	}
	t := new(big.Int)
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

func (p ZPoly) Derivative() ZPoly {
	if len(p) <= 1 {
		return nil
	}
	out := make(ZPoly, len(p)-1)
	for i := 1; i < len(p); i++ {
		out[i-1] = new(big.Int).Mul(p[i], big.NewInt(int64(i)))
	}
	return out.trim()
}

// Inflate returns p(x^k).
func (p ZPoly) Inflate(k int) ZPoly {
	if len(p) == 0 {
		return nil
	}
	out := make(ZPoly, (len(p)-1)*k+1)
	for i := range out {
		out[i] = new(big.Int)
	}
	for i, c := range p {
		out[i*k].Set(c)
	}
	return out
}

// NegateVar returns p(-x).
func (p ZPoly) NegateVar() ZPoly {
	out := make(ZPoly, len(p))
	for i, c := range p {
		out[i] = new(big.Int).Set(c)
		if i%2 == 1 {
			out[i].Neg(out[i])
		}
	}
	return out
}

// Reverse returns x^deg p(1/x).
func (p ZPoly) Reverse() ZPoly {
	out := make(ZPoly, len(p))
	for i, c := range p {
		out[len(p)-1-i] = new(big.Int).Set(c)
	}
	return out.trim()
}

// ScaleVar returns p(c x).
func (p ZPoly) ScaleVar(c *big.Int) ZPoly {
	out := make(ZPoly, len(p))
	pow := big.NewInt(1)
	for i, a := range p {
		out[i] = new(big.Int).Mul(a, pow)
		pow = new(big.Int).Mul(pow, c)
	}
	return out.trim()
}

// Monic returns the monic integer polynomial c^(n-1) p(x/c), whose roots
// are c times the roots of p, where c is the leading coefficient.
func (p ZPoly) Monic() ZPoly {
	n := p.Degree()
	if n < 1 {
		return p
	}
	c := p[n]
	out := make(ZPoly, n+1)
	pow := big.NewInt(1)
	for k := n; k >= 0; k-- {
		if k == n {
			out[k] = big.NewInt(1)
			continue
		}
		out[k] = new(big.Int).Mul(p[k], pow)
		pow = new(big.Int).Mul(pow, c)
	}
	return out
}

// DivExact divides p by q over Z. It reports false when q does not divide
// p exactly.
func (p ZPoly) DivExact(q ZPoly) (ZPoly, bool) {
	if len(q) == 0 {
		panic("algebraic: division by zero polynomial")
	}
	if len(p) < len(q) {
		return nil, len(p) == 0
	}
	rem := make(ZPoly, len(p))
	for i, c := range p {
		rem[i] = new(big.Int).Set(c)
	}
	dq := q.Degree()
	lead := q[dq]
	out := make(ZPoly, len(p)-dq)
	r := new(big.Int)
	for k := len(p) - 1; k >= dq; k-- {
		c, m := new(big.Int).QuoRem(rem[k], lead, r)
		if m.Sign() != 0 {
			return nil, false
		}
		out[k-dq] = c
		if c.Sign() == 0 {
			continue
		}
		for j := 0; j <= dq; j++ {
			rem[k-dq+j].Sub(rem[k-dq+j], new(big.Int).Mul(c, q[j]))
		}
	}
	for _, c := range rem[:dq] {
		if c.Sign() != 0 {
			return nil, false
		}
	}
	return out.trim(), true
}

// Q converts p to a rational polynomial.
func (p ZPoly) Q() QPoly {
	out := make(QPoly, len(p))
	for i, c := range p {
		out[i] = new(big.Rat).SetInt(c)
	}
	return out
}

// SquarefreePart returns the primitive squarefree part of p.
func (p ZPoly) SquarefreePart() ZPoly {
	if p.Degree() < 1 {
		return p.Primitive()
	}
	g := p.Q().GCD(p.Derivative().Q())
	if g.Degree() < 1 {
		return p.Primitive()
	}
	q, _ := p.Q().DivMod(g)
	return q.Primitive()
}

// Deflation writes p(x) = q(x^n) with n maximal.
func (p ZPoly) Deflation() (ZPoly, int) {
	n := 0
	for i := 1; i < len(p); i++ {
		if p[i].Sign() != 0 {
			n = gcdInt(n, i)
		}
	}
	if n <= 1 {
		return p, 1
	}
	out := make(ZPoly, (len(p)-1)/n+1)
	for i := range out {
		out[i] = new(big.Int).Set(p[i*n])
	}
	return out, n
}

func gcdInt(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// EvalBall encloses p(z).
func (p ZPoly) EvalBall(ctx interval.Context, z interval.Complex) interval.Complex {
	acc := interval.ComplexInt64(0, 0)
	for i := len(p) - 1; i >= 0; i-- {
		acc = ctx.Add(ctx.Mul(acc, z), interval.Real(interval.FromInt(p[i])))
	}
	return acc
}

// ============================================================
// Cyclotomic polynomials
// ============================================================

var cyclotomicCache = struct {
	sync.Mutex
	table map[int]ZPoly
}{table: map[int]ZPoly{}}

// Cyclotomic returns the n-th cyclotomic polynomial.
func Cyclotomic(n int) ZPoly {
	if n < 1 {
		panic("algebraic: cyclotomic index must be positive")
	}
	cyclotomicCache.Lock()
	if p, ok := cyclotomicCache.table[n]; ok {
		cyclotomicCache.Unlock()
		return p
	}
	cyclotomicCache.Unlock()

	// x^n - 1 divided by every Phi_d with d | n, d < n
	num := make(ZPoly, n+1)
	for i := range num {
		num[i] = new(big.Int)
	}
	num[0].SetInt64(-1)
	num[n].SetInt64(1)
	for d := 1; d < n; d++ {
		if n%d == 0 {
			num, _ = num.DivExact(Cyclotomic(d))
		}
	}

	cyclotomicCache.Lock()
	cyclotomicCache.table[n] = num
	cyclotomicCache.Unlock()
	return num
}

// IsCyclotomic returns n when p is the n-th cyclotomic polynomial up to
// sign, and 0 otherwise.
func (p ZPoly) IsCyclotomic() int {
	d := p.Degree()
	if d < 1 {
		return 0
	}
	q := p.Primitive()
	if q[0].CmpAbs(big.NewInt(1)) != 0 || q[d].Cmp(big.NewInt(1)) != 0 {
		return 0
	}
	// phi(n) >= sqrt(n/2), so n <= 2 d^2
	for n := 1; n <= 2*d*d+2; n++ {
		if numtheory.Totient(int64(n)) == int64(d) && Cyclotomic(n).Equal(q) {
			return n
		}
	}
	return 0
}
