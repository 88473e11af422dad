package algebraic

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/njchilds90/gogrim/internal/numtheory"
	"github.com/njchilds90/gogrim/interval"
)

// ============================================================
// Powers and roots
// ============================================================

// PowInt raises x to an integer power.
func (b Budget) PowInt(x *Number, k int64) (*Number, error) {
	switch {
	case k == 0:
		return NewInt64(1), nil
	case k == 1:
		return x, nil
	case k < 0:
		p, err := b.PowInt(x, -k)
		if err != nil {
			return nil, err
		}
		return b.Inv(p)
	case x.rat != nil:
		if k > int64(b.Bits) {
			return nil, errors.Wrapf(ErrBudgetExceeded, "rational power %d", k)
		}
		num := new(big.Int).Exp(x.rat.Num(), big.NewInt(k), nil)
		den := new(big.Int).Exp(x.rat.Denom(), big.NewInt(k), nil)
		return NewRat(new(big.Rat).SetFrac(num, den)), nil
	}
	// conjugates of (c x)^k are algebraic integers
	c := x.poly.Lead()
	scale := new(big.Int).Exp(c, big.NewInt(k), nil)
	r, err := integerPoly(func(prec uint) ([]interval.Complex, error) {
		roots, _, err := rootsOf(x.poly, prec, b)
		if err != nil {
			return nil, err
		}
		ctx := interval.NewContext(prec)
		cb := interval.Real(interval.FromInt(c))
		out := make([]interval.Complex, len(roots))
		for i, z := range roots {
			p, _ := ctx.PowInt(ctx.Mul(cb, z), big.NewInt(k))
			out[i] = p
		}
		return out, nil
	}, b)
	if err != nil {
		return nil, err
	}
	target := func(prec uint) (interval.Complex, bool) {
		z, err := x.enclosure(prec, b)
		if err != nil {
			return z, false
		}
		return interval.NewContext(prec).PowInt(z, big.NewInt(k))
	}
	poly, err := minimalFactor(r, scale, target, b)
	if err != nil {
		return nil, err
	}
	return locate(poly, target, b)
}

// Root returns the principal n-th root exp(log(x)/n).
func (b Budget) Root(x *Number, n int64) (*Number, error) {
	if n < 1 {
		return nil, errors.Wrapf(ErrUnsupported, "root of order %d", n)
	}
	if n == 1 || x.IsZero() {
		return x, nil
	}
	if x.rat != nil && x.rat.Sign() > 0 {
		if q, ok := ratRoot(x.rat, n); ok {
			return NewRat(q), nil
		}
	}
	if n*int64(x.Degree()) > int64(b.maxResultant()) {
		return nil, errors.Wrapf(ErrBudgetExceeded, "root of order %d", n)
	}
	target := func(prec uint) (interval.Complex, bool) {
		z, err := x.enclosure(prec, b)
		if err != nil {
			return z, false
		}
		ctx := interval.NewContext(prec)
		l, ok := ctx.Log(z)
		if !ok {
			return l, false
		}
		return ctx.Exp(ctx.Mul(l, interval.Real(ctx.FromRat(big.NewRat(1, n)))))
	}
	poly, err := minimalFactor(x.poly.Inflate(int(n)), big.NewInt(1), target, b)
	if err != nil {
		return nil, err
	}
	return locate(poly, target, b)
}

// ratRoot returns the n-th root of q > 0 when it is rational.
func ratRoot(q *big.Rat, n int64) (*big.Rat, bool) {
	num, ok := intRoot(q.Num(), n)
	if !ok {
		return nil, false
	}
	den, ok := intRoot(q.Denom(), n)
	if !ok {
		return nil, false
	}
	return new(big.Rat).SetFrac(num, den), true
}

func intRoot(a *big.Int, n int64) (*big.Int, bool) {
	if n == 2 {
		return numtheory.Isqrt(a)
	}
	// Newton iteration from above
	if a.Sign() == 0 {
		return new(big.Int), true
	}
	x := new(big.Int).Lsh(big.NewInt(1), uint(a.BitLen()/int(n)+1))
	nb := big.NewInt(n)
	nm1 := big.NewInt(n - 1)
	for {
		// y = ((n-1) x + a / x^(n-1)) / n
		p := new(big.Int).Exp(x, nm1, nil)
		y := new(big.Int).Quo(a, p)
		y.Add(y, new(big.Int).Mul(nm1, x))
		y.Quo(y, nb)
		if y.Cmp(x) >= 0 {
			break
		}
		x = y
	}
	return x, new(big.Int).Exp(x, nb, nil).Cmp(a) == 0
}

func (b Budget) Sqrt(x *Number) (*Number, error) { return b.Root(x, 2) }

// Pow returns the principal power x^y for a rational exponent y.
func (b Budget) Pow(x, y *Number) (*Number, error) {
	if y.rat == nil {
		return nil, errors.Wrap(ErrUnsupported, "irrational exponent")
	}
	q := y.rat
	if x.IsZero() {
		switch q.Sign() {
		case 1:
			return x, nil
		case 0:
			return NewInt64(1), nil
		}
		return nil, ErrDivisionByZero
	}
	if !q.Num().IsInt64() || !q.Denom().IsInt64() {
		return nil, errors.Wrap(ErrBudgetExceeded, "huge exponent")
	}
	r, err := b.Root(x, q.Denom().Int64())
	if err != nil {
		return nil, err
	}
	return b.PowInt(r, q.Num().Int64())
}

// ============================================================
// Parts
// ============================================================

// Re returns the real part.
func (b Budget) Re(x *Number) (*Number, error) {
	if x.IsReal() {
		return x, nil
	}
	s, err := b.Add(x, x.Conj())
	if err != nil {
		return nil, err
	}
	return b.Mul(s, NewRat(big.NewRat(1, 2)))
}

// Im returns the imaginary part.
func (b Budget) Im(x *Number) (*Number, error) {
	if x.IsReal() {
		return NewInt64(0), nil
	}
	d, err := b.Sub(x, x.Conj())
	if err != nil {
		return nil, err
	}
	// (x - conj x) / (2i) = -(i/2) (x - conj x)
	half, err := b.Mul(I(), NewRat(big.NewRat(-1, 2)))
	if err != nil {
		return nil, err
	}
	return b.Mul(d, half)
}

// Abs returns |x|.
func (b Budget) Abs(x *Number) (*Number, error) {
	if x.IsReal() {
		if x.Sign() < 0 {
			return x.Neg(), nil
		}
		return x, nil
	}
	n, err := b.Mul(x, x.Conj())
	if err != nil {
		return nil, err
	}
	return b.Sqrt(n)
}

// Sgn returns x/|x|, or zero.
func (b Budget) Sgn(x *Number) (*Number, error) {
	if x.IsReal() {
		return NewInt64(int64(x.Sign())), nil
	}
	a, err := b.Abs(x)
	if err != nil {
		return nil, err
	}
	return b.Div(x, a)
}

// ============================================================
// Comparison
// ============================================================

// Equal decides x = y exactly.
func (b Budget) Equal(x, y *Number) (bool, error) {
	if x.rat != nil || y.rat != nil {
		return x.rat != nil && y.rat != nil && x.rat.Cmp(y.rat) == 0, nil
	}
	if !x.poly.Equal(y.poly) || x.IsReal() != y.IsReal() {
		return false, nil
	}
	if !x.enc.Overlaps(y.enc) {
		return false, nil
	}
	for prec := max(x.prec, y.prec); prec <= b.maxPrec(); prec *= 2 {
		roots, ok := isolate(x.poly, prec)
		if !ok {
			continue
		}
		i, ok1 := uniqueOverlap(roots, x.enc)
		j, ok2 := uniqueOverlap(roots, y.enc)
		if ok1 && ok2 {
			return i == j, nil
		}
	}
	return false, errors.Wrap(ErrBudgetExceeded, "equality not decided")
}

// Cmp compares two real numbers.
func (b Budget) Cmp(x, y *Number) (int, error) {
	if !x.IsReal() || !y.IsReal() {
		return 0, errors.Wrap(ErrUnsupported, "comparison of non-real numbers")
	}
	if x.rat != nil && y.rat != nil {
		return x.rat.Cmp(y.rat), nil
	}
	eq, err := b.Equal(x, y)
	if err != nil {
		return 0, err
	}
	if eq {
		return 0, nil
	}
	for prec := uint(basePrec); prec <= b.maxPrec(); prec *= 2 {
		u, err := x.enclosure(prec, b)
		if err != nil {
			return 0, err
		}
		v, err := y.enclosure(prec, b)
		if err != nil {
			return 0, err
		}
		switch {
		case u.Re.Upper().Cmp(v.Re.Lower()) < 0:
			return -1, nil
		case v.Re.Upper().Cmp(u.Re.Lower()) < 0:
			return 1, nil
		}
	}
	return 0, errors.Wrap(ErrBudgetExceeded, "comparison not decided")
}

// AsQuadratic writes a number of degree at most two as a + b sqrt(c) with
// c a squarefree integer; sqrt(c) is i sqrt(-c) for negative c.
func (x *Number) AsQuadratic() (a, b *big.Rat, c *big.Int, ok bool) {
	if x.rat != nil {
		return x.Rat(), new(big.Rat), big.NewInt(0), true
	}
	if x.Degree() != 2 {
		return nil, nil, nil, false
	}
	p0, p1, p2 := x.poly[0], x.poly[1], x.poly[2]
	// roots (-p1 +- sqrt(D)) / (2 p2)
	disc := new(big.Int).Mul(p1, p1)
	disc.Sub(disc, new(big.Int).Mul(big.NewInt(4), new(big.Int).Mul(p2, p0)))
	s, f := numtheory.SquarefreeDecompose(disc, 1<<20)
	twoP2 := new(big.Int).Lsh(p2, 1)
	a = new(big.Rat).SetFrac(new(big.Int).Neg(p1), twoP2)
	b = new(big.Rat).SetFrac(f, twoP2)
	// pick the sign matching the enclosure
	if s.Sign() > 0 {
		if x.enc.Re.Upper().Cmp(new(big.Float).SetRat(a)) < 0 {
			b.Neg(b)
		}
	} else if x.enc.Im.Negative() {
		b.Neg(b)
	}
	return a, b, s, true
}

// ============================================================
// Roots of unity and trigonometric values
// ============================================================

// ExpTwoPiI returns exp(2 pi i q).
func (b Budget) ExpTwoPiI(q *big.Rat) (*Number, error) {
	k := new(big.Int).Mod(q.Num(), q.Denom())
	n := q.Denom()
	if !n.IsInt64() || n.Int64() > int64(b.maxResultant()) {
		return nil, errors.Wrapf(ErrBudgetExceeded, "root of unity of order %s", n)
	}
	kk, nn := k.Int64(), n.Int64()
	switch {
	case nn == 1:
		return NewInt64(1), nil
	case nn == 2:
		return NewInt64(-1), nil
	case nn == 4 && kk == 1:
		return I(), nil
	case nn == 4:
		return I().Neg(), nil
	}
	return locate(Cyclotomic(int(nn)), func(prec uint) (interval.Complex, bool) {
		ctx := interval.NewContext(prec)
		return ctx.Exp(ctx.MulI(twoPiFrac(ctx, kk, nn)))
	}, b)
}

// twoPiFrac encloses 2 pi k / n.
func twoPiFrac(ctx interval.Context, k, n int64) interval.Complex {
	return ctx.Mul(interval.Real(ctx.FromRat(big.NewRat(2*k, n))), interval.Real(ctx.Pi()))
}

// ExpPiI returns exp(pi i q).
func (b Budget) ExpPiI(q *big.Rat) (*Number, error) {
	return b.ExpTwoPiI(new(big.Rat).Quo(q, big.NewRat(2, 1)))
}

// CosPi returns cos(pi q).
func (b Budget) CosPi(q *big.Rat) (*Number, error) {
	h := new(big.Rat).Quo(q, big.NewRat(2, 1))
	n := h.Denom()
	if !n.IsInt64() || n.Int64() > int64(2*b.maxResultant()) {
		return nil, errors.Wrapf(ErrBudgetExceeded, "cosine of order %s", n)
	}
	nn := n.Int64()
	kk := new(big.Int).Mod(h.Num(), n).Int64()
	// 2 cos(2 pi j / n) for j <= n/2 coprime to n are the conjugates of an
	// algebraic integer
	r, err := integerPoly(func(prec uint) ([]interval.Complex, error) {
		ctx := interval.NewContext(prec)
		var out []interval.Complex
		for j := int64(0); 2*j <= nn; j++ {
			if numtheory.GCD(j, nn) != 1 {
				continue
			}
			c, ok := ctx.Cos(twoPiFrac(ctx, j, nn))
			if !ok {
				return nil, errors.Wrap(ErrBudgetExceeded, "cosine enclosure")
			}
			out = append(out, ctx.Mul2Exp(c, 1))
		}
		return out, nil
	}, b)
	if err != nil {
		return nil, err
	}
	return locate(r.ScaleVar(big.NewInt(2)), func(prec uint) (interval.Complex, bool) {
		ctx := interval.NewContext(prec)
		return ctx.Cos(twoPiFrac(ctx, kk, nn))
	}, b)
}

// SinPi returns sin(pi q).
func (b Budget) SinPi(q *big.Rat) (*Number, error) {
	return b.CosPi(new(big.Rat).Sub(big.NewRat(1, 2), q))
}

// TanPi returns tan(pi q); poles fail with ErrDivisionByZero.
func (b Budget) TanPi(q *big.Rat) (*Number, error) {
	return b.ratioPi(q, true, true)
}

func (b Budget) CotPi(q *big.Rat) (*Number, error) {
	return b.ratioPi(q, false, true)
}

func (b Budget) SecPi(q *big.Rat) (*Number, error) {
	return b.ratioPi(q, true, false)
}

func (b Budget) CscPi(q *big.Rat) (*Number, error) {
	return b.ratioPi(q, false, false)
}

// ratioPi computes sin/cos, cos/sin, 1/cos or 1/sin at pi q.
func (b Budget) ratioPi(q *big.Rat, overCos, withNum bool) (*Number, error) {
	c, err := b.CosPi(q)
	if err != nil {
		return nil, err
	}
	s, err := b.SinPi(q)
	if err != nil {
		return nil, err
	}
	num, den := s, c
	if !overCos {
		num, den = c, s
	}
	if !withNum {
		num = NewInt64(1)
	}
	return b.Div(num, den)
}
