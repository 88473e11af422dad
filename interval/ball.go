// Package interval implements rigorous ball arithmetic over big.Float.
//
// A Ball is a midpoint and a radius; every operation returns a ball that
// contains the exact result for every choice of inputs inside the argument
// balls. Radii are kept at 64 bits and always rounded upward. A Complex is
// a rectangular pair of balls. Operations that cannot produce a finite
// enclosure (division by a ball containing zero, a log whose argument
// touches the branch cut, and so on) report failure with ok == false
// instead of returning a meaningless ball.
package interval

import (
	"fmt"
	"math/big"
)

const radPrec = 64

// DefaultPrec is the working precision used by the term evaluator.
const DefaultPrec = 128

// Context carries the working precision of midpoint arithmetic.
type Context struct {
	Prec uint
}

func NewContext(prec uint) Context {
	if prec < 32 {
		prec = 32
	}
	return Context{Prec: prec}
}

func (c Context) prec() uint {
	if c.Prec == 0 {
		return DefaultPrec
	}
	return c.Prec
}

// ============================================================
// Ball
// ============================================================

type Ball struct {
	mid *big.Float
	rad *big.Float
}

func newRad() *big.Float {
	return new(big.Float).SetPrec(radPrec).SetMode(big.ToPositiveInf)
}

func newLow() *big.Float {
	return new(big.Float).SetPrec(radPrec).SetMode(big.ToNegativeInf)
}

func zeroRad() *big.Float { return newRad() }

func radAbs(x *big.Float) *big.Float { return newRad().Abs(x) }

func radAdd(a, b *big.Float) *big.Float { return newRad().Add(a, b) }

func radMul(a, b *big.Float) *big.Float { return newRad().Mul(a, b) }

// radScale returns r * 2^k rounded up.
func radScale(r *big.Float, k int) *big.Float {
	out := newRad().Set(r)
	if out.Sign() == 0 {
		return out
	}
	return out.SetMantExp(out, k)
}

// roundErr bounds the rounding error of a midpoint computed at prec bits.
func roundErr(m *big.Float, prec uint) *big.Float {
	return radScale(radAbs(m), 1-int(prec))
}

// Exact returns the ball with radius zero around x. x is copied.
func Exact(x *big.Float) Ball {
	return Ball{mid: new(big.Float).Copy(x), rad: zeroRad()}
}

// FromInt returns the exact ball n.
func FromInt(n *big.Int) Ball {
	prec := uint(n.BitLen())
	if prec < 64 {
		prec = 64
	}
	return Ball{mid: new(big.Float).SetPrec(prec).SetInt(n), rad: zeroRad()}
}

func FromInt64(n int64) Ball { return FromInt(big.NewInt(n)) }

// FromRat encloses the rational q at the context precision.
func (c Context) FromRat(q *big.Rat) Ball {
	if q.IsInt() {
		return FromInt(q.Num())
	}
	m := new(big.Float).SetPrec(c.prec()).SetRat(q)
	b := Ball{mid: m, rad: zeroRad()}
	if m.Acc() != big.Exact {
		b.rad = roundErr(m, c.prec())
	}
	return b
}

// NewBall builds a ball from an approximation and an error bound.
func NewBall(mid, rad *big.Float) Ball {
	return Ball{mid: new(big.Float).Copy(mid), rad: radAbs(rad)}
}

func (b Ball) Mid() *big.Float { return new(big.Float).Copy(b.mid) }
func (b Ball) Rad() *big.Float { return new(big.Float).Copy(b.rad) }

// Float64 returns the midpoint rounded to the nearest float64.
func (b Ball) Float64() float64 {
	f, _ := b.mid.Float64()
	return f
}

func (b Ball) String() string {
	return fmt.Sprintf("[%s +/- %s]", b.mid.Text('g', 20), b.rad.Text('e', 3))
}

func (b Ball) IsExact() bool { return b.rad.Sign() == 0 }

func (b Ball) IsZero() bool { return b.IsExact() && b.mid.Sign() == 0 }

// IsFinite reports whether neither the midpoint nor the radius is infinite.
func (b Ball) IsFinite() bool { return !b.mid.IsInf() && !b.rad.IsInf() }

func (b Ball) boundPrec() uint {
	p := b.mid.MinPrec()
	if p < radPrec {
		p = radPrec
	}
	return p + 2
}

// Lower returns a lower bound for every point of b.
func (b Ball) Lower() *big.Float {
	return new(big.Float).SetPrec(b.boundPrec()).SetMode(big.ToNegativeInf).Sub(b.mid, b.rad)
}

// Upper returns an upper bound for every point of b.
func (b Ball) Upper() *big.Float {
	return new(big.Float).SetPrec(b.boundPrec()).SetMode(big.ToPositiveInf).Add(b.mid, b.rad)
}

// AbsUpper bounds |x| from above over the ball.
func (b Ball) AbsUpper() *big.Float { return radAdd(radAbs(b.mid), b.rad) }

// AbsLower bounds |x| from below over the ball; zero when b contains zero.
func (b Ball) AbsLower() *big.Float {
	l := newLow().Abs(b.mid)
	l.Sub(l, b.rad)
	if l.Sign() < 0 {
		return newLow()
	}
	return l
}

func (b Ball) Positive() bool    { return b.Lower().Sign() > 0 }
func (b Ball) Negative() bool    { return b.Upper().Sign() < 0 }
func (b Ball) NonNegative() bool { return b.Lower().Sign() >= 0 }
func (b Ball) NonPositive() bool { return b.Upper().Sign() <= 0 }

func (b Ball) ContainsZero() bool {
	return b.Lower().Sign() <= 0 && b.Upper().Sign() >= 0
}

// Contains reports whether the point x lies in b.
func (b Ball) Contains(x *big.Float) bool {
	return b.Lower().Cmp(x) <= 0 && b.Upper().Cmp(x) >= 0
}

func (b Ball) Overlaps(o Ball) bool {
	return b.Lower().Cmp(o.Upper()) <= 0 && o.Lower().Cmp(b.Upper()) <= 0
}

func floorFloat(x *big.Float) *big.Int {
	n, acc := x.Int(nil)
	if acc == big.Above {
		n.Sub(n, big.NewInt(1))
	}
	return n
}

func ceilFloat(x *big.Float) *big.Int {
	n, acc := x.Int(nil)
	if acc == big.Below {
		n.Add(n, big.NewInt(1))
	}
	return n
}

// ContainsInteger reports whether some integer lies in b.
func (b Ball) ContainsInteger() bool {
	if !b.IsFinite() {
		return true
	}
	return ceilFloat(b.Lower()).Cmp(floorFloat(b.Upper())) <= 0
}

// UniqueInteger returns the only integer in b, if there is exactly one.
func (b Ball) UniqueInteger() (*big.Int, bool) {
	if !b.IsFinite() {
		return nil, false
	}
	lo, hi := ceilFloat(b.Lower()), floorFloat(b.Upper())
	if lo.Cmp(hi) != 0 {
		return nil, false
	}
	return lo, true
}

// ============================================================
// Real arithmetic
// ============================================================

func (c Context) newMid() *big.Float { return new(big.Float).SetPrec(c.prec()) }

func (c Context) finish(m, rad *big.Float) Ball {
	if m.Acc() != big.Exact {
		rad = radAdd(rad, roundErr(m, c.prec()))
	}
	return Ball{mid: m, rad: rad}
}

func (c Context) add(a, b Ball) Ball {
	m := c.newMid().Add(a.mid, b.mid)
	return c.finish(m, radAdd(a.rad, b.rad))
}

func (c Context) sub(a, b Ball) Ball {
	m := c.newMid().Sub(a.mid, b.mid)
	return c.finish(m, radAdd(a.rad, b.rad))
}

func neg(a Ball) Ball {
	return Ball{mid: new(big.Float).Neg(a.mid), rad: a.rad}
}

func (c Context) mul(a, b Ball) Ball {
	m := c.newMid().Mul(a.mid, b.mid)
	r := zeroRad()
	if b.rad.Sign() != 0 {
		r = radAdd(r, radMul(radAbs(a.mid), b.rad))
	}
	if a.rad.Sign() != 0 {
		r = radAdd(r, radMul(radAbs(b.mid), a.rad))
		if b.rad.Sign() != 0 {
			r = radAdd(r, radMul(a.rad, b.rad))
		}
	}
	return c.finish(m, r)
}

// mul2exp multiplies by 2^k exactly.
func mul2exp(a Ball, k int) Ball {
	m := new(big.Float).Copy(a.mid)
	if m.Sign() != 0 {
		m.SetMantExp(m, k)
	}
	return Ball{mid: m, rad: radScale(a.rad, k)}
}

// inv fails when b may contain zero.
func (c Context) inv(b Ball) (Ball, bool) {
	lo := b.AbsLower()
	if lo.Sign() == 0 {
		return Ball{}, false
	}
	one := big.NewFloat(1)
	m := c.newMid().Quo(one, b.mid)
	// |1/x - 1/m| <= r / (|m| (|m| - r))
	r := zeroRad()
	if b.rad.Sign() != 0 {
		den := newLow().Mul(newLow().Abs(b.mid), lo)
		r = newRad().Quo(b.rad, den)
	}
	return c.finish(m, r), true
}

func (c Context) div(a, b Ball) (Ball, bool) {
	if b.IsExact() {
		if b.mid.Sign() == 0 {
			return Ball{}, false
		}
		m := c.newMid().Quo(a.mid, b.mid)
		r := newRad().Quo(a.rad, newLow().Abs(b.mid))
		return c.finish(m, r), true
	}
	ib, ok := c.inv(b)
	if !ok {
		return Ball{}, false
	}
	return c.mul(a, ib), true
}

func (c Context) sqr(a Ball) Ball { return c.mul(a, a) }

// sqrt is defined for balls whose lower bound is positive, and for the
// exact zero.
func (c Context) sqrt(a Ball) (Ball, bool) {
	if a.IsZero() {
		return a, true
	}
	lo := a.Lower()
	if lo.Sign() <= 0 {
		return Ball{}, false
	}
	m := c.newMid().Sqrt(a.mid)
	// big.Float.Sqrt does not report accuracy; always charge one extra ulp.
	r := radScale(radAbs(m), 2-int(c.prec()))
	if a.rad.Sign() != 0 {
		s := newLow().Sqrt(newLow().Set(lo))
		s.Mul(s, big.NewFloat(0.999))
		r = radAdd(r, newRad().Quo(a.rad, s))
	}
	return Ball{mid: m, rad: r}, true
}

func abs(a Ball) Ball {
	if a.mid.Sign() >= 0 {
		if a.NonNegative() {
			return a
		}
	} else if a.NonPositive() {
		return neg(a)
	}
	// straddles zero: [0, max|x|]
	hi := a.AbsUpper()
	half := radScale(hi, -1)
	return Ball{mid: new(big.Float).Copy(half), rad: half}
}

// powInt raises a to a non-negative integer power by repeated squaring.
func (c Context) powInt(a Ball, n *big.Int) Ball {
	result := FromInt64(1)
	base := a
	e := new(big.Int).Set(n)
	for e.Sign() > 0 {
		if e.Bit(0) == 1 {
			result = c.mul(result, base)
		}
		e.Rsh(e, 1)
		if e.Sign() > 0 {
			base = c.sqr(base)
		}
	}
	return result
}

// union returns a ball containing both a and b.
func (c Context) union(a, b Ball) Ball {
	lo := a.Lower()
	if l := b.Lower(); l.Cmp(lo) < 0 {
		lo = l
	}
	hi := a.Upper()
	if h := b.Upper(); h.Cmp(hi) > 0 {
		hi = h
	}
	return fromEndpoints(lo, hi, c.prec())
}

func fromEndpoints(lo, hi *big.Float, prec uint) Ball {
	m := new(big.Float).SetPrec(prec).Add(lo, hi)
	m.SetMantExp(m, -1)
	r1 := newRad().Sub(hi, m)
	r2 := newRad().Sub(m, lo)
	if r2.Cmp(r1) > 0 {
		r1 = r2
	}
	return Ball{mid: m, rad: r1}
}

// widen adds err to the radius.
func widen(a Ball, err *big.Float) Ball {
	return Ball{mid: a.mid, rad: radAdd(a.rad, err)}
}
