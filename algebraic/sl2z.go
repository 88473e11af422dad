package algebraic

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/njchilds90/gogrim/internal/numtheory"
)

// SL2Z is an integer matrix [[A, B], [C, D]] with determinant one, acting
// on the upper half plane by tau -> (A tau + B) / (C tau + D).
type SL2Z struct {
	A, B, C, D *big.Int
}

func identitySL2Z() SL2Z {
	return SL2Z{A: big.NewInt(1), B: big.NewInt(0), C: big.NewInt(0), D: big.NewInt(1)}
}

func (g SL2Z) mul(h SL2Z) SL2Z {
	dot := func(a, b, c, d *big.Int) *big.Int {
		x := new(big.Int).Mul(a, b)
		return x.Add(x, new(big.Int).Mul(c, d))
	}
	return SL2Z{
		A: dot(g.A, h.A, g.B, h.C),
		B: dot(g.A, h.B, g.B, h.D),
		C: dot(g.C, h.A, g.D, h.C),
		D: dot(g.C, h.B, g.D, h.D),
	}
}

func (g SL2Z) normalize() SL2Z {
	if g.C.Sign() < 0 || g.C.Sign() == 0 && g.D.Sign() < 0 {
		return SL2Z{
			A: new(big.Int).Neg(g.A), B: new(big.Int).Neg(g.B),
			C: new(big.Int).Neg(g.C), D: new(big.Int).Neg(g.D),
		}
	}
	return g
}

// Ints returns the entries as int64 values when they fit.
func (g SL2Z) Ints() ([4]int64, bool) {
	var out [4]int64
	for i, v := range []*big.Int{g.A, g.B, g.C, g.D} {
		if !v.IsInt64() {
			return out, false
		}
		out[i] = v.Int64()
	}
	return out, true
}

// ReduceSL2Z moves an imaginary quadratic tau in the upper half plane to
// the standard fundamental domain |Re| <= 1/2, |tau| >= 1 (with Re < 1/2,
// and Re <= 0 on the unit circle). It returns the reduced point and g with
// tau = g tau', normalised to C > 0 or C = 0, D > 0.
func (b Budget) ReduceSL2Z(tau *Number) (*Number, SL2Z, error) {
	re, im, c, ok := tau.AsQuadratic()
	if !ok || c.Sign() >= 0 || im.Sign() <= 0 {
		return nil, SL2Z{}, errors.Wrap(ErrUnsupported, "SL2(Z) reduction needs an imaginary quadratic point in the upper half plane")
	}
	// tau = x + i y with y = v sqrt(|c|); x, v rational
	x := new(big.Rat).Set(re)
	v := new(big.Rat).Set(im)
	absC := new(big.Rat).SetInt(new(big.Int).Neg(c))
	g := identitySL2Z()
	half := big.NewRat(1, 2)
	one := big.NewRat(1, 1)
	for iter := 0; iter < 10000; iter++ {
		// translate into [-1/2, 1/2)
		shifted := new(big.Rat).Add(x, half)
		k := numtheory.RatFloor(shifted)
		if k.Sign() != 0 {
			x.Sub(x, new(big.Rat).SetInt(k))
			g = g.mul(SL2Z{A: big.NewInt(1), B: new(big.Int).Set(k), C: big.NewInt(0), D: big.NewInt(1)})
		}
		norm := new(big.Rat).Mul(x, x)
		norm.Add(norm, new(big.Rat).Mul(new(big.Rat).Mul(v, v), absC))
		cmp := norm.Cmp(one)
		if cmp > 0 || cmp == 0 && x.Sign() <= 0 {
			break
		}
		// tau -> -1/tau = (-x + i y) / |tau|^2
		x.Neg(x)
		x.Quo(x, norm)
		v.Quo(v, norm)
		g = g.mul(SL2Z{A: big.NewInt(0), B: big.NewInt(-1), C: big.NewInt(1), D: big.NewInt(0)})
	}

	// rebuild tau' = x + v sqrt(c)
	sq, err := b.Sqrt(NewInt(c))
	if err != nil {
		return nil, SL2Z{}, err
	}
	t, err := b.Mul(sq, NewRat(v))
	if err != nil {
		return nil, SL2Z{}, err
	}
	t, err = b.Add(t, NewRat(x))
	if err != nil {
		return nil, SL2Z{}, err
	}
	return t, g.normalize(), nil
}
