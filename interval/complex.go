package interval

import (
	"fmt"
	"math/big"
)

// ============================================================
// Complex balls
// ============================================================

// Complex is a rectangular enclosure Re + i Im. A real value has an
// imaginary part that is exactly zero, and arithmetic keeps it that way.
type Complex struct {
	Re, Im Ball
}

func Real(b Ball) Complex { return Complex{Re: b, Im: FromInt64(0)} }

func ComplexInt64(re, im int64) Complex {
	return Complex{Re: FromInt64(re), Im: FromInt64(im)}
}

func (z Complex) String() string {
	if z.IsReal() {
		return z.Re.String()
	}
	return fmt.Sprintf("%s + %si", z.Re, z.Im)
}

// IsReal reports whether the imaginary part is exactly zero.
func (z Complex) IsReal() bool { return z.Im.IsZero() }

func (z Complex) IsExact() bool { return z.Re.IsExact() && z.Im.IsExact() }

func (z Complex) IsFinite() bool { return z.Re.IsFinite() && z.Im.IsFinite() }

func (z Complex) IsZero() bool { return z.Re.IsZero() && z.Im.IsZero() }

func (z Complex) ContainsZero() bool { return z.Re.ContainsZero() && z.Im.ContainsZero() }

// NonZero reports whether zero is certainly excluded.
func (z Complex) NonZero() bool { return !z.ContainsZero() }

func (z Complex) Overlaps(w Complex) bool {
	return z.Re.Overlaps(w.Re) && z.Im.Overlaps(w.Im)
}

// Complex128 returns the midpoint as a machine complex number.
func (z Complex) Complex128() complex128 {
	return complex(z.Re.Float64(), z.Im.Float64())
}

// RadiusUpper bounds the distance from the midpoint to any point of z.
func (z Complex) RadiusUpper() *big.Float { return radAdd(z.Re.rad, z.Im.rad) }

// Midpoint returns the exact center of z.
func (z Complex) Midpoint() Complex {
	return Complex{Re: Exact(z.Re.mid), Im: Exact(z.Im.mid)}
}

// ============================================================
// Arithmetic
// ============================================================

func (c Context) Add(z, w Complex) Complex {
	return Complex{Re: c.add(z.Re, w.Re), Im: c.add(z.Im, w.Im)}
}

func (c Context) Sub(z, w Complex) Complex {
	return Complex{Re: c.sub(z.Re, w.Re), Im: c.sub(z.Im, w.Im)}
}

func (c Context) Neg(z Complex) Complex { return Complex{Re: neg(z.Re), Im: neg(z.Im)} }

func (c Context) Conj(z Complex) Complex { return Complex{Re: z.Re, Im: neg(z.Im)} }

func (c Context) Mul(z, w Complex) Complex {
	if z.IsReal() && w.IsReal() {
		return Real(c.mul(z.Re, w.Re))
	}
	if w.IsReal() {
		return Complex{Re: c.mul(z.Re, w.Re), Im: c.mul(z.Im, w.Re)}
	}
	if z.IsReal() {
		return Complex{Re: c.mul(z.Re, w.Re), Im: c.mul(z.Re, w.Im)}
	}
	re := c.sub(c.mul(z.Re, w.Re), c.mul(z.Im, w.Im))
	im := c.add(c.mul(z.Re, w.Im), c.mul(z.Im, w.Re))
	return Complex{Re: re, Im: im}
}

// MulI multiplies by i exactly.
func (c Context) MulI(z Complex) Complex { return Complex{Re: neg(z.Im), Im: z.Re} }

// Mul2Exp multiplies by 2^k exactly.
func (c Context) Mul2Exp(z Complex, k int) Complex {
	return Complex{Re: mul2exp(z.Re, k), Im: mul2exp(z.Im, k)}
}

func (c Context) Sqr(z Complex) Complex { return c.Mul(z, z) }

// AbsSqr returns |z|^2 as a real ball.
func (c Context) AbsSqr(z Complex) Ball {
	if z.IsReal() {
		return c.sqr(z.Re)
	}
	return c.add(c.sqr(z.Re), c.sqr(z.Im))
}

func (c Context) Inv(z Complex) (Complex, bool) {
	if z.IsReal() {
		r, ok := c.inv(z.Re)
		return Real(r), ok
	}
	d := c.AbsSqr(z)
	re, ok := c.div(z.Re, d)
	if !ok {
		return Complex{}, false
	}
	im, ok := c.div(neg(z.Im), d)
	if !ok {
		return Complex{}, false
	}
	return Complex{Re: re, Im: im}, true
}

func (c Context) Div(z, w Complex) (Complex, bool) {
	if w.IsReal() {
		re, ok := c.div(z.Re, w.Re)
		if !ok {
			return Complex{}, false
		}
		im, ok := c.div(z.Im, w.Re)
		if !ok {
			return Complex{}, false
		}
		return Complex{Re: re, Im: im}, true
	}
	iw, ok := c.Inv(w)
	if !ok {
		return Complex{}, false
	}
	return c.Mul(z, iw), true
}

// PowInt raises z to an integer power; negative powers need z != 0.
func (c Context) PowInt(z Complex, n *big.Int) (Complex, bool) {
	if n.Sign() < 0 {
		p, _ := c.PowInt(z, new(big.Int).Neg(n))
		return c.Inv(p)
	}
	if z.IsReal() {
		return Real(c.powInt(z.Re, n)), true
	}
	result := ComplexInt64(1, 0)
	base := z
	e := new(big.Int).Set(n)
	for e.Sign() > 0 {
		if e.Bit(0) == 1 {
			result = c.Mul(result, base)
		}
		e.Rsh(e, 1)
		if e.Sign() > 0 {
			base = c.Sqr(base)
		}
	}
	return result, true
}

// Abs returns |z|.
func (c Context) Abs(z Complex) Ball {
	if z.IsReal() {
		return abs(z.Re)
	}
	d := c.AbsSqr(z)
	if s, ok := c.sqrt(d); ok {
		return s
	}
	hi, _ := c.sqrt(Exact(d.Upper()))
	u := hi.Upper()
	half := radScale(u, -1)
	return Ball{mid: new(big.Float).Copy(half), rad: half}
}

// Arg returns the principal argument in (-pi, pi]; it fails when z may
// touch the negative real axis or zero.
func (c Context) Arg(z Complex) (Ball, bool) { return c.atan2(z.Im, z.Re) }

// ============================================================
// Elementary functions
// ============================================================

func (c Context) Exp(z Complex) (Complex, bool) {
	ea, ok := c.exp(z.Re)
	if !ok {
		return Complex{}, false
	}
	if z.IsReal() {
		return Real(ea), true
	}
	s, co, ok := c.sinCos(z.Im)
	if !ok {
		return Complex{}, false
	}
	return Complex{Re: c.mul(ea, co), Im: c.mul(ea, s)}, true
}

// Log is the principal logarithm.
func (c Context) Log(z Complex) (Complex, bool) {
	if z.IsReal() && z.Re.Positive() {
		l, ok := c.log(z.Re)
		return Real(l), ok
	}
	arg, ok := c.Arg(z)
	if !ok {
		return Complex{}, false
	}
	d := c.AbsSqr(z)
	l, ok := c.log(d)
	if !ok {
		return Complex{}, false
	}
	return Complex{Re: mul2exp(l, -1), Im: arg}, true
}

// Sqrt is the principal square root.
func (c Context) Sqrt(z Complex) (Complex, bool) {
	if z.IsReal() {
		if z.Re.IsZero() {
			return z, true
		}
		if z.Re.Positive() {
			s, ok := c.sqrt(z.Re)
			return Real(s), ok
		}
		if z.Re.Negative() {
			s, ok := c.sqrt(neg(z.Re))
			return Complex{Re: FromInt64(0), Im: s}, ok
		}
		return Complex{}, false
	}
	l, ok := c.Log(z)
	if !ok {
		return Complex{}, false
	}
	return c.Exp(c.Mul2Exp(l, -1))
}

// Pow is z^w with the principal branch; integer exponents are exact.
func (c Context) Pow(z, w Complex) (Complex, bool) {
	if w.IsReal() && w.Re.IsExact() && w.Re.mid.IsInt() {
		n, _ := w.Re.mid.Int(nil)
		if n.Sign() == 0 {
			return ComplexInt64(1, 0), true
		}
		return c.PowInt(z, n)
	}
	if z.IsZero() {
		if w.IsReal() && w.Re.Positive() {
			return z, true
		}
		return Complex{}, false
	}
	if w.IsReal() && w.Re.IsExact() {
		// exact half-integer exponents reuse the square root
		twice := new(big.Float).Mul(w.Re.mid, big.NewFloat(2))
		if twice.IsInt() {
			n, _ := twice.Int(nil)
			s, ok := c.Sqrt(z)
			if !ok {
				return Complex{}, false
			}
			return c.PowInt(s, n)
		}
	}
	l, ok := c.Log(z)
	if !ok {
		return Complex{}, false
	}
	return c.Exp(c.Mul(w, l))
}

func (c Context) Sin(z Complex) (Complex, bool) {
	s, co, ok := c.sinCos(z.Re)
	if !ok {
		return Complex{}, false
	}
	if z.IsReal() {
		return Real(s), true
	}
	ch, ok1 := c.cosh(z.Im)
	sh, ok2 := c.sinh(z.Im)
	if !ok1 || !ok2 {
		return Complex{}, false
	}
	return Complex{Re: c.mul(s, ch), Im: c.mul(co, sh)}, true
}

func (c Context) Cos(z Complex) (Complex, bool) {
	s, co, ok := c.sinCos(z.Re)
	if !ok {
		return Complex{}, false
	}
	if z.IsReal() {
		return Real(co), true
	}
	ch, ok1 := c.cosh(z.Im)
	sh, ok2 := c.sinh(z.Im)
	if !ok1 || !ok2 {
		return Complex{}, false
	}
	return Complex{Re: c.mul(co, ch), Im: neg(c.mul(s, sh))}, true
}

func (c Context) Tan(z Complex) (Complex, bool) {
	s, ok1 := c.Sin(z)
	co, ok2 := c.Cos(z)
	if !ok1 || !ok2 {
		return Complex{}, false
	}
	return c.Div(s, co)
}

func (c Context) Sinh(z Complex) (Complex, bool) {
	if z.IsReal() {
		s, ok := c.sinh(z.Re)
		return Real(s), ok
	}
	// sinh z = -i sin(iz)
	s, ok := c.Sin(c.MulI(z))
	if !ok {
		return Complex{}, false
	}
	return c.Neg(c.MulI(s)), true
}

func (c Context) Cosh(z Complex) (Complex, bool) {
	if z.IsReal() {
		s, ok := c.cosh(z.Re)
		return Real(s), ok
	}
	return c.Cos(c.MulI(z))
}

func (c Context) Tanh(z Complex) (Complex, bool) {
	s, ok1 := c.Sinh(z)
	co, ok2 := c.Cosh(z)
	if !ok1 || !ok2 {
		return Complex{}, false
	}
	return c.Div(s, co)
}

// Atan is supported on the real line only.
func (c Context) Atan(z Complex) (Complex, bool) {
	if !z.IsReal() {
		return Complex{}, false
	}
	return Real(c.atan(z.Re)), true
}

func (c Context) Floor(z Complex) (Complex, bool) {
	if !z.IsReal() {
		return Complex{}, false
	}
	return Real(c.floor(z.Re)), true
}

func (c Context) Ceil(z Complex) (Complex, bool) {
	if !z.IsReal() {
		return Complex{}, false
	}
	return Real(c.ceil(z.Re)), true
}

// Gamma is supported on the real line away from the poles.
func (c Context) Gamma(z Complex) (Complex, bool) {
	if !z.IsReal() {
		return Complex{}, false
	}
	g, ok := c.gamma(z.Re)
	return Real(g), ok
}

func (c Context) Erf(z Complex) (Complex, bool) {
	if !z.IsReal() {
		return Complex{}, false
	}
	return Real(c.erf(z.Re)), true
}
