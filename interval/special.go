package interval

import (
	"math/big"

	"github.com/njchilds90/gogrim/internal/numtheory"
)

// ============================================================
// Constants
// ============================================================

const eulerGammaDigits = "0.57721566490153286060651209008240243104215933593992"

func (c Context) E() Ball {
	b, _ := c.exp(FromInt64(1))
	return b
}

func (c Context) GoldenRatio() Ball {
	s, _ := c.sqrt(FromInt64(5))
	return mul2exp(c.add(s, FromInt64(1)), -1)
}

// EulerGamma encloses Euler's constant from a fixed decimal expansion; the
// radius never drops below 10^-49.
func (c Context) EulerGamma() Ball {
	m, _, _ := big.ParseFloat(eulerGammaDigits, 10, c.prec()+8, big.ToNearestEven)
	return Ball{mid: m, rad: radAdd(newRad().SetFloat64(1e-49), roundErr(m, c.prec()))}
}

// Catalan computes G = pi/8 log(2 + sqrt 3) + 3/8 sum k!^2 / ((2k)! (2k+1)^2).
func (c Context) Catalan() Ball {
	p := c.prec() + 16
	wc := Context{Prec: p}
	sum := newFloat(p)
	term := setInt64(p, 1) // k!^2 / (2k)!
	eps := newFloat(p).SetMantExp(big.NewFloat(1), -int(p))
	var last *big.Float
	for k := int64(0); ; k++ {
		if k > 0 {
			term.Mul(term, setInt64(p, k))
			term.Quo(term, setInt64(p, 2*(2*k-1)))
		}
		t := newFloat(p).Quo(term, setInt64(p, (2*k+1)*(2*k+1)))
		sum.Add(sum, t)
		if t.Cmp(eps) < 0 {
			last = t
			break
		}
	}
	// terms shrink by at least 1/4 each step
	tail := radScale(radAbs(last), 1)
	series := Ball{mid: sum, rad: radAdd(tail, radScale(radAbs(sum), 8-int(p)))}
	three := FromInt64(3)
	series = mul2exp(wc.mul(series, three), -3)

	s3, _ := wc.sqrt(FromInt64(3))
	lg, _ := wc.log(wc.add(s3, FromInt64(2)))
	first := mul2exp(wc.mul(wc.Pi(), lg), -3)
	out := wc.add(first, series)
	return Ball{mid: newFloat(c.prec()).Set(out.mid), rad: radAdd(out.rad, roundErr(out.mid, c.prec()))}
}

// ============================================================
// Gamma
// ============================================================

// lgammaLarge encloses log Gamma(y) for an exact y >= threshold by the
// Stirling series with an explicit remainder bound.
func (c Context) lgammaLarge(y Ball) Ball {
	p := c.prec()
	logy, _ := c.log(y)
	half := mul2exp(FromInt64(1), -1)
	res := c.sub(c.mul(c.sub(y, half), logy), y)
	twoPi := mul2exp(c.Pi(), 1)
	lt, _ := c.log(twoPi)
	res = c.add(res, mul2exp(lt, -1))

	yinv, _ := c.inv(y)
	yinv2 := c.sqr(yinv)
	pow := yinv
	target := newRad().SetMantExp(big.NewFloat(1), -int(p)-4)
	for k := 1; k < 400; k++ {
		b := numtheory.Bernoulli(2 * k)
		coef := new(big.Rat).Quo(b, new(big.Rat).SetInt64(int64(2*k*(2*k-1))))
		term := c.mul(c.FromRat(coef), pow)
		res = c.add(res, term)
		pow = c.mul(pow, yinv2)
		// remainder bounded by the first omitted term
		bn := numtheory.Bernoulli(2*k + 2)
		next := new(big.Rat).Quo(bn, new(big.Rat).SetInt64(int64((2*k+2)*(2*k+1))))
		nb := c.mul(c.FromRat(next), pow)
		if nb.AbsUpper().Cmp(target) < 0 {
			return widen(res, nb.AbsUpper())
		}
	}
	return widen(res, newRad().SetInf(false))
}

// gammaPoint encloses Gamma(x) for an exact x that is not a pole.
func (c Context) gammaPoint(x Ball) (Ball, bool) {
	if x.mid.IsInt() && x.mid.Sign() <= 0 {
		return Ball{}, false
	}
	if x.Negative() {
		// reflection: Gamma(x) = pi / (sin(pi x) Gamma(1 - x))
		g, ok := c.gammaPoint(c.sub(FromInt64(1), x))
		if !ok {
			return Ball{}, false
		}
		s, _, ok := c.sinCos(c.mul(c.Pi(), x))
		if !ok {
			return Ball{}, false
		}
		return c.div(c.Pi(), c.mul(s, g))
	}
	threshold := int64(c.prec()/4 + 12)
	n := int64(0)
	xf, _ := x.mid.Float64()
	if xf < float64(threshold) {
		n = threshold - int64(xf)
	}
	y := c.add(x, FromInt64(n))
	lg := c.lgammaLarge(y)
	if !lg.IsFinite() {
		return Ball{}, false
	}
	g, ok := c.exp(lg)
	if !ok {
		return Ball{}, false
	}
	prod := FromInt64(1)
	for j := int64(0); j < n; j++ {
		prod = c.mul(prod, c.add(x, FromInt64(j)))
	}
	return c.div(g, prod)
}

// Gamma's minimum on the positive axis.
const gammaMinX = 1.4616321449683623

var gammaMinLower = big.NewFloat(0.8856031944)

func (c Context) gamma(a Ball) (Ball, bool) {
	if a.IsExact() {
		return c.gammaPoint(a)
	}
	lo, hi := a.Lower(), a.Upper()
	if lo.Sign() <= 0 {
		// the largest non-positive integer below hi is the nearest pole
		pole := floorFloat(hi)
		if pole.Sign() > 0 {
			pole.SetInt64(0)
		}
		if new(big.Float).SetInt(pole).Cmp(lo) >= 0 {
			return Ball{}, false
		}
	}
	if lo.Sign() <= 0 {
		// between two poles; use the reflection formula on the whole ball
		g, ok := c.gamma(c.sub(FromInt64(1), a))
		if !ok {
			return Ball{}, false
		}
		s, _, ok := c.sinCos(c.mul(c.Pi(), a))
		if !ok {
			return Ball{}, false
		}
		return c.div(c.Pi(), c.mul(s, g))
	}
	gl, ok := c.gammaPoint(Exact(lo))
	if !ok {
		return Ball{}, false
	}
	gh, ok := c.gammaPoint(Exact(hi))
	if !ok {
		return Ball{}, false
	}
	out := c.union(gl, gh)
	xm := big.NewFloat(gammaMinX)
	if lo.Cmp(xm) < 0 && hi.Cmp(xm) > 0 {
		out = c.union(out, fromEndpoints(gammaMinLower, out.Upper(), c.prec()))
	}
	return out, true
}

// ============================================================
// Error function
// ============================================================

// erfPoint encloses erf(x) for an exact x.
func (c Context) erfPoint(x Ball) Ball {
	p := c.prec()
	if x.IsZero() {
		return x
	}
	xf, _ := x.mid.Float64()
	ax := xf
	if ax < 0 {
		ax = -ax
	}
	if ax*ax > float64(p)*0.7+8 {
		one := FromInt64(1)
		if xf < 0 {
			one = FromInt64(-1)
		}
		return widen(one, newRad().SetMantExp(big.NewFloat(1), -int(p)))
	}
	wp := p + guardBits + uint(ax*ax*1.5)
	wc := Context{Prec: wp}
	// 2/sqrt(pi) sum (-1)^k x^(2k+1) / (k! (2k+1))
	x2 := wc.sqr(x)
	pow := x
	sum := FromInt64(0)
	var last Ball
	for k := int64(0); ; k++ {
		t, _ := wc.div(pow, FromInt64(2*k+1))
		if k%2 == 1 {
			t = neg(t)
		}
		sum = wc.add(sum, t)
		pow, _ = wc.div(wc.mul(pow, x2), FromInt64(k+1))
		last = pow
		if float64(k) > ax*ax+2 && last.AbsUpper().MantExp(nil) < -int(wp) {
			break
		}
	}
	// alternating with decreasing terms: tail below the next term
	sum = widen(sum, last.AbsUpper())
	sp, _ := wc.sqrt(wc.Pi())
	res, _ := wc.div(mul2exp(sum, 1), sp)
	return Ball{mid: newFloat(p).Set(res.mid), rad: radAdd(res.rad, roundErr(res.mid, p))}
}

// erf is increasing, so the hull of the endpoint values encloses it.
func (c Context) erf(a Ball) Ball {
	if a.IsExact() {
		return c.erfPoint(a)
	}
	return c.union(c.erfPoint(Exact(a.Lower())), c.erfPoint(Exact(a.Upper())))
}
