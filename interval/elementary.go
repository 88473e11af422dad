package interval

import (
	"math/big"
	"sync"
)

// ============================================================
// Point evaluation at working precision
// ============================================================
//
// The point routines below return an approximation whose error is below
// 2^-prec relative to max(1, |f(x)|). They work internally with guard bits
// sized to the argument reduction, and the ball wrappers charge the
// advertised error explicitly.

const guardBits = 48

func bitLen(n int64) int {
	if n < 0 {
		n = -n
	}
	l := 0
	for n > 0 {
		l++
		n >>= 1
	}
	return l
}

func newFloat(prec uint) *big.Float { return new(big.Float).SetPrec(prec) }

func setInt64(prec uint, v int64) *big.Float { return newFloat(prec).SetInt64(v) }

// atanInv returns atan(1/k) by its Taylor series.
func atanInv(k int64, prec uint) *big.Float {
	sum := newFloat(prec)
	kk := setInt64(prec, k*k)
	term := newFloat(prec).Quo(setInt64(prec, 1), setInt64(prec, k))
	eps := newFloat(prec).SetMantExp(big.NewFloat(1), -int(prec))
	for j := int64(0); ; j++ {
		t := newFloat(prec).Quo(term, setInt64(prec, 2*j+1))
		if j%2 == 0 {
			sum.Add(sum, t)
		} else {
			sum.Sub(sum, t)
		}
		if t.Cmp(eps) < 0 {
			break
		}
		term.Quo(term, kk)
	}
	return sum
}

type constCache struct {
	mu     sync.Mutex
	prec   uint
	value  *big.Float
	create func(prec uint) *big.Float
}

func (c *constCache) get(prec uint) *big.Float {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.value == nil || c.prec < prec {
		c.value = c.create(prec + 32)
		c.prec = prec
	}
	return newFloat(prec).Set(c.value)
}

var piCache = &constCache{create: func(prec uint) *big.Float {
	wp := prec + 16
	a := atanInv(5, wp)
	b := atanInv(239, wp)
	a.Mul(a, setInt64(wp, 16))
	b.Mul(b, setInt64(wp, 4))
	return a.Sub(a, b)
}}

var ln2Cache = &constCache{create: func(prec uint) *big.Float {
	// ln 2 = 2 atanh(1/3)
	wp := prec + 16
	third := newFloat(wp).Quo(setInt64(wp, 1), setInt64(wp, 3))
	return atanhSeries(third, wp)
}}

func piFloat(prec uint) *big.Float  { return piCache.get(prec) }
func ln2Float(prec uint) *big.Float { return ln2Cache.get(prec) }

// atanhSeries returns 2 atanh(y) = log((1+y)/(1-y)) for |y| <= 1/2.
func atanhSeries(y *big.Float, prec uint) *big.Float {
	y2 := newFloat(prec).Mul(y, y)
	pow := newFloat(prec).Set(y)
	sum := newFloat(prec)
	eps := newFloat(prec).SetMantExp(big.NewFloat(1), -int(prec))
	for j := int64(0); ; j++ {
		t := newFloat(prec).Quo(pow, setInt64(prec, 2*j+1))
		sum.Add(sum, t)
		if newFloat(prec).Abs(t).Cmp(eps) < 0 {
			break
		}
		pow.Mul(pow, y2)
	}
	return sum.Mul(sum, setInt64(prec, 2))
}

// expPoint returns exp(x); relative error below 2^-prec.
func expPoint(x *big.Float, prec uint) *big.Float {
	if x.Sign() == 0 {
		return setInt64(prec, 1)
	}
	// x = k ln2 + t
	kf, _ := newFloat(64).Quo(x, big.NewFloat(0.6931471805599453)).Float64()
	var k int64
	if kf < 0 {
		k = int64(kf - 0.5)
	} else {
		k = int64(kf + 0.5)
	}
	xexp := x.MantExp(nil)
	if xexp < 0 {
		xexp = 0
	}
	wp := prec + guardBits + uint(bitLen(k)) + uint(xexp)
	t := newFloat(wp).Set(x)
	if k != 0 {
		t.Sub(t, newFloat(wp).Mul(ln2Float(wp), setInt64(wp, k)))
	}
	sum := setInt64(wp, 1)
	term := setInt64(wp, 1)
	eps := newFloat(wp).SetMantExp(big.NewFloat(1), -int(wp))
	for j := int64(1); ; j++ {
		term.Mul(term, t)
		term.Quo(term, setInt64(wp, j))
		sum.Add(sum, term)
		if newFloat(wp).Abs(term).Cmp(eps) < 0 {
			break
		}
	}
	sum.SetMantExp(sum, int(k))
	return newFloat(prec).Set(sum)
}

// logPoint returns log(x) for x > 0; absolute error below 2^-prec.
func logPoint(x *big.Float, prec uint) *big.Float {
	mant := new(big.Float)
	e := x.MantExp(mant) // x = mant * 2^e, mant in [0.5, 1)
	wp := prec + guardBits + uint(bitLen(int64(e)))
	m := newFloat(wp).Set(mant)
	y := newFloat(wp).Sub(m, setInt64(wp, 1))
	y.Quo(y, newFloat(wp).Add(m, setInt64(wp, 1)))
	r := atanhSeries(y, wp)
	if e != 0 {
		r.Add(r, newFloat(wp).Mul(ln2Float(wp), setInt64(wp, int64(e))))
	}
	return newFloat(prec).Set(r)
}

// sinCosPoint returns sin(x) and cos(x); absolute error below 2^-prec.
// ok is false when |x| is too large for the reduction.
func sinCosPoint(x *big.Float, prec uint) (sin, cos *big.Float, ok bool) {
	if x.MantExp(nil) > 60 {
		return nil, nil, false
	}
	qf, _ := newFloat(64).Quo(x, big.NewFloat(1.5707963267948966)).Float64()
	var q int64
	if qf < 0 {
		q = int64(qf - 0.5)
	} else {
		q = int64(qf + 0.5)
	}
	wp := prec + guardBits + uint(bitLen(q))
	t := newFloat(wp).Set(x)
	if q != 0 {
		halfPi := piFloat(wp)
		halfPi.SetMantExp(halfPi, -1)
		t.Sub(t, newFloat(wp).Mul(halfPi, setInt64(wp, q)))
	}
	s, c := sinCosSeries(t, wp)
	switch ((q % 4) + 4) % 4 {
	case 1:
		s, c = c, s.Neg(s)
	case 2:
		s, c = s.Neg(s), c.Neg(c)
	case 3:
		s, c = c.Neg(c), s
	}
	return newFloat(prec).Set(s), newFloat(prec).Set(c), true
}

func sinCosSeries(t *big.Float, prec uint) (*big.Float, *big.Float) {
	t2 := newFloat(prec).Mul(t, t)
	eps := newFloat(prec).SetMantExp(big.NewFloat(1), -int(prec))
	sin := newFloat(prec).Set(t)
	cos := setInt64(prec, 1)
	st := newFloat(prec).Set(t)
	ct := setInt64(prec, 1)
	for j := int64(1); ; j++ {
		st.Mul(st, t2)
		st.Quo(st, setInt64(prec, (2*j)*(2*j+1)))
		ct.Mul(ct, t2)
		ct.Quo(ct, setInt64(prec, (2*j-1)*(2*j)))
		if j%2 == 1 {
			sin.Sub(sin, st)
			cos.Sub(cos, ct)
		} else {
			sin.Add(sin, st)
			cos.Add(cos, ct)
		}
		if newFloat(prec).Abs(ct).Cmp(eps) < 0 && newFloat(prec).Abs(st).Cmp(eps) < 0 {
			break
		}
	}
	return sin, cos
}

// atanPoint returns atan(x); absolute error below 2^-prec.
func atanPoint(x *big.Float, prec uint) *big.Float {
	wp := prec + guardBits
	v := newFloat(wp).Set(x)
	neg := v.Sign() < 0
	v.Abs(v)
	one := setInt64(wp, 1)
	invert := v.Cmp(one) > 0
	if invert {
		v.Quo(one, v)
	}
	// atan(v) = 2 atan(v / (1 + sqrt(1 + v^2)))
	halvings := 0
	limit := big.NewFloat(0.125)
	for v.Cmp(limit) > 0 {
		s := newFloat(wp).Mul(v, v)
		s.Add(s, one)
		s.Sqrt(s)
		s.Add(s, one)
		v.Quo(v, s)
		halvings++
	}
	v2 := newFloat(wp).Mul(v, v)
	pow := newFloat(wp).Set(v)
	sum := newFloat(wp)
	eps := newFloat(wp).SetMantExp(big.NewFloat(1), -int(wp))
	for j := int64(0); ; j++ {
		t := newFloat(wp).Quo(pow, setInt64(wp, 2*j+1))
		if j%2 == 0 {
			sum.Add(sum, t)
		} else {
			sum.Sub(sum, t)
		}
		if t.Cmp(eps) < 0 {
			break
		}
		pow.Mul(pow, v2)
	}
	sum.SetMantExp(sum, halvings)
	if invert {
		halfPi := piFloat(wp)
		halfPi.SetMantExp(halfPi, -1)
		sum.Sub(halfPi, sum)
	}
	if neg {
		sum.Neg(sum)
	}
	return newFloat(prec).Set(sum)
}

// ============================================================
// Real ball functions
// ============================================================

// pointErr is the error charged for a point routine result v.
func pointErr(v *big.Float, prec uint) *big.Float {
	r := radAbs(v)
	if r.Cmp(big.NewFloat(1)) < 0 {
		r = newRad().SetInt64(1)
	}
	return radScale(r, 2-int(prec))
}

// margin inflates a derivative bound computed at low precision.
func margin(x *big.Float) *big.Float {
	return radMul(radAbs(x), big.NewFloat(1.0625))
}

func (c Context) Pi() Ball {
	p := c.prec()
	return Ball{mid: piFloat(p), rad: pointErr(big.NewFloat(4), p)}
}

func (c Context) ln2() Ball {
	p := c.prec()
	return Ball{mid: ln2Float(p), rad: pointErr(big.NewFloat(1), p)}
}

func (c Context) exp(a Ball) (Ball, bool) {
	if a.mid.MantExp(nil) > 40 {
		return Ball{}, false
	}
	p := c.prec()
	m := expPoint(a.mid, p)
	r := pointErr(m, p)
	if a.rad.Sign() != 0 {
		hi := expPoint(a.Upper(), radPrec)
		r = radAdd(r, radMul(a.rad, margin(hi)))
	}
	return Ball{mid: m, rad: r}, true
}

// log is the real logarithm of a positive ball.
func (c Context) log(a Ball) (Ball, bool) {
	lo := a.Lower()
	if lo.Sign() <= 0 {
		return Ball{}, false
	}
	p := c.prec()
	m := logPoint(a.mid, p)
	r := pointErr(m, p)
	if a.rad.Sign() != 0 {
		r = radAdd(r, margin(newRad().Quo(a.rad, newLow().Set(lo))))
	}
	return Ball{mid: m, rad: r}, true
}

func (c Context) sinCos(a Ball) (Ball, Ball, bool) {
	if a.IsZero() {
		return FromInt64(0), FromInt64(1), true
	}
	p := c.prec()
	s, co, ok := sinCosPoint(a.mid, p)
	if !ok {
		return Ball{}, Ball{}, false
	}
	rs := radAdd(pointErr(big.NewFloat(1), p), a.rad)
	rc := radAdd(pointErr(big.NewFloat(1), p), a.rad)
	return Ball{mid: s, rad: rs}, Ball{mid: co, rad: rc}, true
}

func (c Context) atan(a Ball) Ball {
	if a.IsZero() {
		return a
	}
	p := c.prec()
	m := atanPoint(a.mid, p)
	return Ball{mid: m, rad: radAdd(pointErr(big.NewFloat(1), p), a.rad)}
}

func (c Context) sinh(a Ball) (Ball, bool) {
	if a.IsZero() {
		return a, true
	}
	ep, ok := c.exp(a)
	if !ok {
		return Ball{}, false
	}
	en, ok := c.inv(ep)
	if !ok {
		return Ball{}, false
	}
	return mul2exp(c.sub(ep, en), -1), true
}

func (c Context) cosh(a Ball) (Ball, bool) {
	if a.IsZero() {
		return FromInt64(1), true
	}
	ep, ok := c.exp(a)
	if !ok {
		return Ball{}, false
	}
	en, ok := c.inv(ep)
	if !ok {
		return Ball{}, false
	}
	return mul2exp(c.add(ep, en), -1), true
}

// atan2 returns arg(x + iy), failing on the branch cut.
func (c Context) atan2(y, x Ball) (Ball, bool) {
	switch {
	case y.IsZero():
		if x.Positive() {
			return FromInt64(0), true
		}
		if x.Negative() {
			return c.Pi(), true
		}
		return Ball{}, false
	case x.Positive():
		q, ok := c.div(y, x)
		if !ok {
			return Ball{}, false
		}
		return c.atan(q), true
	case y.Positive(), y.Negative():
		q, ok := c.div(x, y)
		if !ok {
			return Ball{}, false
		}
		halfPi := mul2exp(c.Pi(), -1)
		if y.Negative() {
			halfPi = neg(halfPi)
		}
		return c.sub(halfPi, c.atan(q)), true
	}
	return Ball{}, false
}

// floor and ceil return exact balls when the result is determined.
func (c Context) floor(a Ball) Ball {
	lo, hi := floorFloat(a.Lower()), floorFloat(a.Upper())
	if lo.Cmp(hi) == 0 {
		return FromInt(lo)
	}
	return c.union(FromInt(lo), FromInt(hi))
}

func (c Context) ceil(a Ball) Ball {
	lo, hi := ceilFloat(a.Lower()), ceilFloat(a.Upper())
	if lo.Cmp(hi) == 0 {
		return FromInt(lo)
	}
	return c.union(FromInt(lo), FromInt(hi))
}
