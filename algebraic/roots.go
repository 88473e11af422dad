package algebraic

import (
	"math"
	"math/big"
	"math/cmplx"

	"github.com/pkg/errors"

	"github.com/njchilds90/gogrim/interval"
)

// ============================================================
// Complex floats
// ============================================================

type cfloat struct{ re, im *big.Float }

func newCfloat(prec uint, z complex128) cfloat {
	return cfloat{
		re: new(big.Float).SetPrec(prec).SetFloat64(real(z)),
		im: new(big.Float).SetPrec(prec).SetFloat64(imag(z)),
	}
}

func (z cfloat) prec() uint { return z.re.Prec() }

func (z cfloat) add(w cfloat) cfloat {
	p := z.prec()
	return cfloat{new(big.Float).SetPrec(p).Add(z.re, w.re), new(big.Float).SetPrec(p).Add(z.im, w.im)}
}

func (z cfloat) sub(w cfloat) cfloat {
	p := z.prec()
	return cfloat{new(big.Float).SetPrec(p).Sub(z.re, w.re), new(big.Float).SetPrec(p).Sub(z.im, w.im)}
}

func (z cfloat) mul(w cfloat) cfloat {
	p := z.prec()
	a := new(big.Float).SetPrec(p).Mul(z.re, w.re)
	b := new(big.Float).SetPrec(p).Mul(z.im, w.im)
	c := new(big.Float).SetPrec(p).Mul(z.re, w.im)
	d := new(big.Float).SetPrec(p).Mul(z.im, w.re)
	return cfloat{a.Sub(a, b), c.Add(c, d)}
}

func (z cfloat) abs2() *big.Float {
	p := z.prec()
	a := new(big.Float).SetPrec(p).Mul(z.re, z.re)
	b := new(big.Float).SetPrec(p).Mul(z.im, z.im)
	return a.Add(a, b)
}

// quo returns z / w; ok is false when w is zero.
func (z cfloat) quo(w cfloat) (cfloat, bool) {
	d := w.abs2()
	if d.Sign() == 0 {
		return cfloat{}, false
	}
	p := z.prec()
	num := z.mul(cfloat{w.re, new(big.Float).SetPrec(p).Neg(w.im)})
	return cfloat{num.re.Quo(num.re, d), num.im.Quo(num.im, d)}, true
}

func (z cfloat) complex128() complex128 {
	re, _ := z.re.Float64()
	im, _ := z.im.Float64()
	return complex(re, im)
}

// evalDeriv returns p(z) and p'(z).
func evalDeriv(p ZPoly, z cfloat) (cfloat, cfloat) {
	prec := z.prec()
	zero := func() cfloat { return cfloat{new(big.Float).SetPrec(prec), new(big.Float).SetPrec(prec)} }
	v, d := zero(), zero()
	for i := len(p) - 1; i >= 0; i-- {
		d = d.mul(z).add(v)
		c := zero()
		c.re.SetInt(p[i])
		v = v.mul(z).add(c)
	}
	return v, d
}

// ============================================================
// Approximation
// ============================================================

// aberth128 approximates all roots of p in machine precision. It reports
// false when the coefficients do not fit or the iteration breaks down.
func aberth128(p ZPoly) ([]complex128, bool) {
	n := p.Degree()
	coef := make([]complex128, n+1)
	for i, c := range p {
		f, _ := new(big.Float).SetInt(c).Float64()
		if math.IsInf(f, 0) {
			return nil, false
		}
		coef[i] = complex(f, 0)
	}
	bound := 0.0
	for i := 0; i < n; i++ {
		bound = math.Max(bound, cmplx.Abs(coef[i]/coef[n]))
	}
	bound++
	z := make([]complex128, n)
	for k := range z {
		z[k] = cmplx.Rect(bound, 2*math.Pi*float64(k)/float64(n)+0.4)
	}
	for iter := 0; iter < 500; iter++ {
		worst := 0.0
		for i := range z {
			v, d := complex(0, 0), complex(0, 0)
			for k := n; k >= 0; k-- {
				d = d*z[i] + v
				v = v*z[i] + coef[k]
			}
			if v == 0 {
				continue
			}
			ratio := v / d
			var s complex128
			for j := range z {
				if j != i {
					s += 1 / (z[i] - z[j])
				}
			}
			w := ratio / (1 - ratio*s)
			if cmplx.IsNaN(w) || cmplx.IsInf(w) {
				return nil, false
			}
			z[i] -= w
			worst = math.Max(worst, cmplx.Abs(w)/math.Max(1, cmplx.Abs(z[i])))
		}
		if worst < 1e-14 {
			return z, true
		}
	}
	return z, true
}

// aberth refines approximations at the given precision.
func aberth(p ZPoly, start []complex128, prec uint) []cfloat {
	z := make([]cfloat, len(start))
	for i, s := range start {
		z[i] = newCfloat(prec, s)
	}
	tol := new(big.Float).SetMantExp(big.NewFloat(1), -2*int(prec)+16)
	for iter := 0; iter < 60+int(prec)/8; iter++ {
		done := true
		for i := range z {
			v, d := evalDeriv(p, z[i])
			ratio, ok := v.quo(d)
			if !ok {
				continue
			}
			s := cfloat{new(big.Float).SetPrec(prec), new(big.Float).SetPrec(prec)}
			one := newCfloat(prec, 1)
			for j := range z {
				if j == i {
					continue
				}
				inv, ok := one.quo(z[i].sub(z[j]))
				if ok {
					s = s.add(inv)
				}
			}
			w, ok := ratio.quo(one.sub(ratio.mul(s)))
			if !ok {
				continue
			}
			z[i] = z[i].sub(w)
			scale := z[i].abs2()
			if scale.Cmp(big.NewFloat(1)) < 0 {
				scale.SetInt64(1)
			}
			if w.abs2().Cmp(new(big.Float).Mul(tol, scale)) > 0 {
				done = false
			}
		}
		if done {
			break
		}
	}
	return z
}

// ============================================================
// Certification
// ============================================================

// isolate returns one certified enclosure per root of the squarefree
// polynomial p. Real roots are returned with an exactly zero imaginary
// part. ok is false when the enclosures could not be separated at this
// precision.
func isolate(p ZPoly, prec uint) ([]interval.Complex, bool) {
	n := p.Degree()
	if n < 1 {
		return nil, true
	}
	ctx := interval.NewContext(prec + 32)
	if n == 1 {
		q := new(big.Rat).SetFrac(new(big.Int).Neg(p[0]), p[1])
		return []interval.Complex{interval.Real(ctx.FromRat(q))}, true
	}
	start, ok := aberth128(p)
	if !ok {
		start = make([]complex128, n)
		for k := range start {
			start[k] = cmplx.Rect(2, 2*math.Pi*float64(k)/float64(n)+0.4)
		}
	}
	z := aberth(p, start, prec+32)

	lead := interval.Real(interval.FromInt(p[n]))
	radii := make([]*big.Float, n)
	for i := range z {
		zi := exactComplex(z[i])
		den := lead
		for j := range z {
			if j != i {
				den = ctx.Mul(den, ctx.Sub(zi, exactComplex(z[j])))
			}
		}
		w, ok := ctx.Div(p.EvalBall(ctx, zi), den)
		if !ok {
			return nil, false
		}
		r := new(big.Float).SetMode(big.ToPositiveInf).Add(w.Re.AbsUpper(), w.Im.AbsUpper())
		radii[i] = r.Mul(r, big.NewFloat(float64(n)))
	}

	// every pair of disks must be separated
	for i := range z {
		for j := i + 1; j < n; j++ {
			if !separated(z[i], radii[i], z[j], radii[j]) {
				return nil, false
			}
		}
	}

	out := make([]interval.Complex, n)
	for i := range z {
		out[i] = interval.Complex{
			Re: interval.NewBall(z[i].re, radii[i]),
			Im: interval.NewBall(z[i].im, radii[i]),
		}
		if new(big.Float).Abs(z[i].im).Cmp(radii[i]) > 0 {
			continue
		}
		// the disk meets the real axis; if its mirror image meets no other
		// disk, the conjugate root is the root itself
		mirror := cfloat{z[i].re, new(big.Float).Neg(z[i].im)}
		onAxis := true
		for j := range z {
			if j != i && !separated(mirror, radii[i], z[j], radii[j]) {
				onAxis = false
				break
			}
		}
		if onAxis {
			out[i] = interval.Real(interval.NewBall(z[i].re, radii[i]))
		}
	}
	return out, true
}

func exactComplex(z cfloat) interval.Complex {
	return interval.Complex{Re: interval.Exact(z.re), Im: interval.Exact(z.im)}
}

// separated reports whether the closed disks D(a, ra) and D(b, rb) are
// disjoint, with a small safety margin for rounding.
func separated(a cfloat, ra *big.Float, b cfloat, rb *big.Float) bool {
	d2 := a.sub(b).abs2()
	r := new(big.Float).SetPrec(64).SetMode(big.ToPositiveInf).Add(ra, rb)
	r.Mul(r, big.NewFloat(1.001))
	return r.Mul(r, r).Cmp(d2) < 0
}

// rootsOf isolates the roots of a squarefree p, raising the precision
// until the enclosures separate.
func rootsOf(p ZPoly, prec uint, b Budget) ([]interval.Complex, uint, error) {
	for ; prec <= b.maxPrec(); prec *= 2 {
		if rs, ok := isolate(p, prec); ok {
			return rs, prec, nil
		}
	}
	return nil, 0, errors.Wrapf(ErrBudgetExceeded, "cannot isolate roots of %s", p)
}
