package algebraic

import (
	"math/big"

	"github.com/pkg/errors"
)

// ============================================================
// Rational matrices
// ============================================================

// Matrix is a dense matrix over Q stored row by row.
type Matrix struct {
	rows, cols int
	a          []*big.Rat
}

// NewMatrix copies the given rows, which must all have the same length.
func NewMatrix(rows [][]*big.Rat) (*Matrix, error) {
	if len(rows) == 0 {
		return &Matrix{}, nil
	}
	m := &Matrix{rows: len(rows), cols: len(rows[0])}
	for _, r := range rows {
		if len(r) != m.cols {
			return nil, errors.Wrap(ErrUnsupported, "ragged matrix")
		}
		for _, v := range r {
			m.a = append(m.a, new(big.Rat).Set(v))
		}
	}
	return m, nil
}

func zeroMatrix(r, c int) *Matrix {
	m := &Matrix{rows: r, cols: c, a: make([]*big.Rat, r*c)}
	for i := range m.a {
		m.a[i] = new(big.Rat)
	}
	return m
}

// Identity returns the n by n identity matrix.
func Identity(n int) *Matrix {
	m := zeroMatrix(n, n)
	for i := 0; i < n; i++ {
		m.a[i*n+i].SetInt64(1)
	}
	return m
}

// Hilbert returns the n by n Hilbert matrix 1/(i+j+1).
func Hilbert(n int) *Matrix {
	m := zeroMatrix(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			m.a[i*n+j].SetFrac64(1, int64(i+j+1))
		}
	}
	return m
}

func (m *Matrix) Rows() int { return m.rows }
func (m *Matrix) Cols() int { return m.cols }

func (m *Matrix) At(i, j int) *big.Rat { return new(big.Rat).Set(m.a[i*m.cols+j]) }

func (m *Matrix) IsSquare() bool { return m.rows == m.cols }

func (m *Matrix) Add(o *Matrix) (*Matrix, error) {
	if m.rows != o.rows || m.cols != o.cols {
		return nil, errors.Wrap(ErrUnsupported, "matrix shapes differ")
	}
	out := zeroMatrix(m.rows, m.cols)
	for i := range out.a {
		out.a[i].Add(m.a[i], o.a[i])
	}
	return out, nil
}

func (m *Matrix) Neg() *Matrix {
	out := zeroMatrix(m.rows, m.cols)
	for i := range out.a {
		out.a[i].Neg(m.a[i])
	}
	return out
}

func (m *Matrix) Sub(o *Matrix) (*Matrix, error) { return m.Add(o.Neg()) }

func (m *Matrix) Mul(o *Matrix) (*Matrix, error) {
	if m.cols != o.rows {
		return nil, errors.Wrap(ErrUnsupported, "matrix shapes do not chain")
	}
	out := zeroMatrix(m.rows, o.cols)
	t := new(big.Rat)
	for i := 0; i < m.rows; i++ {
		for k := 0; k < m.cols; k++ {
			a := m.a[i*m.cols+k]
			if a.Sign() == 0 {
				continue
			}
			for j := 0; j < o.cols; j++ {
				c := out.a[i*o.cols+j]
				c.Add(c, t.Mul(a, o.a[k*o.cols+j]))
			}
		}
	}
	return out, nil
}

func (m *Matrix) Transpose() *Matrix {
	out := zeroMatrix(m.cols, m.rows)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			out.a[j*m.rows+i].Set(m.a[i*m.cols+j])
		}
	}
	return out
}

// Pow raises a square matrix to an integer power; negative powers need an
// invertible matrix.
func (m *Matrix) Pow(n int64) (*Matrix, error) {
	if !m.IsSquare() {
		return nil, errors.Wrap(ErrUnsupported, "power of a non-square matrix")
	}
	base := m
	if n < 0 {
		inv, err := m.Inverse()
		if err != nil {
			return nil, err
		}
		base = inv
		n = -n
	}
	out := Identity(m.rows)
	for n > 0 {
		if n&1 == 1 {
			out, _ = out.Mul(base)
		}
		n >>= 1
		if n > 0 {
			base, _ = base.Mul(base)
		}
	}
	return out, nil
}

// Det computes the determinant by Gaussian elimination over Q.
func (m *Matrix) Det() (*big.Rat, error) {
	if !m.IsSquare() {
		return nil, errors.Wrap(ErrUnsupported, "determinant of a non-square matrix")
	}
	n := m.rows
	a := make([]*big.Rat, len(m.a))
	for i, v := range m.a {
		a[i] = new(big.Rat).Set(v)
	}
	det := big.NewRat(1, 1)
	for col := 0; col < n; col++ {
		pivot := -1
		for r := col; r < n; r++ {
			if a[r*n+col].Sign() != 0 {
				pivot = r
				break
			}
		}
		if pivot < 0 {
			return new(big.Rat), nil
		}
		if pivot != col {
			for j := 0; j < n; j++ {
				a[col*n+j], a[pivot*n+j] = a[pivot*n+j], a[col*n+j]
			}
			det.Neg(det)
		}
		p := a[col*n+col]
		det.Mul(det, p)
		for r := col + 1; r < n; r++ {
			if a[r*n+col].Sign() == 0 {
				continue
			}
			f := new(big.Rat).Quo(a[r*n+col], p)
			for j := col; j < n; j++ {
				a[r*n+j] = new(big.Rat).Sub(a[r*n+j], new(big.Rat).Mul(f, a[col*n+j]))
			}
		}
	}
	return det, nil
}

// Inverse computes the inverse by Gauss-Jordan elimination.
func (m *Matrix) Inverse() (*Matrix, error) {
	if !m.IsSquare() {
		return nil, errors.Wrap(ErrUnsupported, "inverse of a non-square matrix")
	}
	n := m.rows
	a := zeroMatrix(n, 2*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			a.a[i*2*n+j].Set(m.a[i*n+j])
		}
		a.a[i*2*n+n+i].SetInt64(1)
	}
	w := 2 * n
	for col := 0; col < n; col++ {
		pivot := -1
		for r := col; r < n; r++ {
			if a.a[r*w+col].Sign() != 0 {
				pivot = r
				break
			}
		}
		if pivot < 0 {
			return nil, errors.Wrap(ErrDivisionByZero, "singular matrix")
		}
		for j := 0; j < w; j++ {
			a.a[col*w+j], a.a[pivot*w+j] = a.a[pivot*w+j], a.a[col*w+j]
		}
		inv := new(big.Rat).Inv(a.a[col*w+col])
		for j := 0; j < w; j++ {
			a.a[col*w+j] = new(big.Rat).Mul(a.a[col*w+j], inv)
		}
		for r := 0; r < n; r++ {
			if r == col || a.a[r*w+col].Sign() == 0 {
				continue
			}
			f := new(big.Rat).Set(a.a[r*w+col])
			for j := 0; j < w; j++ {
				a.a[r*w+j] = new(big.Rat).Sub(a.a[r*w+j], new(big.Rat).Mul(f, a.a[col*w+j]))
			}
		}
	}
	out := zeroMatrix(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out.a[i*n+j].Set(a.a[i*w+n+j])
		}
	}
	return out, nil
}

// Charpoly returns det(x I - m) by the Faddeev-LeVerrier recurrence.
func (m *Matrix) Charpoly() (QPoly, error) {
	if !m.IsSquare() {
		return nil, errors.Wrap(ErrUnsupported, "characteristic polynomial of a non-square matrix")
	}
	n := m.rows
	coeffs := make(QPoly, n+1)
	coeffs[n] = big.NewRat(1, 1)
	mk := zeroMatrix(n, n) // M_0 = 0
	for k := 1; k <= n; k++ {
		// M_k = A M_{k-1} + c_{n-k+1} I
		shifted := zeroMatrix(n, n)
		for i := range shifted.a {
			shifted.a[i].Set(mk.a[i])
		}
		for i := 0; i < n; i++ {
			d := shifted.a[i*n+i]
			d.Add(d, coeffs[n-k+1])
		}
		mk, _ = m.Mul(shifted)
		tr := new(big.Rat)
		for i := 0; i < n; i++ {
			tr.Add(tr, mk.a[i*n+i])
		}
		coeffs[n-k] = tr.Quo(tr, big.NewRat(int64(-k), 1))
	}
	return coeffs.trim(), nil
}
