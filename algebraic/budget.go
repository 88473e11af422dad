// Package algebraic implements exact arithmetic on algebraic numbers.
//
// A Number is stored as its minimal polynomial over Z together with a
// complex ball isolating one root. Results of arithmetic are identified by
// building an integer polynomial that vanishes at the result, locating the
// result among its certified roots, and searching for the smallest
// integer factor containing it. Every operation is bounded by a Budget;
// work that would exceed it fails with ErrBudgetExceeded instead of
// running away.
package algebraic

import (
	"github.com/pkg/errors"
)

var (
	// ErrBudgetExceeded reports that a result could not be certified within
	// the degree or bit-size budget.
	ErrBudgetExceeded = errors.New("algebraic: budget exceeded")

	// ErrUnsupported reports an operation outside the algebraic numbers,
	// such as an irrational exponent.
	ErrUnsupported = errors.New("algebraic: unsupported operation")

	// ErrDivisionByZero reports an inverse of zero, a pole of tan, or a
	// singular matrix.
	ErrDivisionByZero = errors.New("algebraic: division by zero")
)

// Budget bounds the degree and coefficient bit size of every minimal
// polynomial an operation may produce.
type Budget struct {
	Degree int `yaml:"degree" validate:"min=2,max=256"`
	Bits   int `yaml:"bits" validate:"min=64,max=1048576"`
}

// DefaultBudget applies to ordinary simplification.
var DefaultBudget = Budget{Degree: 16, Bits: 4096}

// Widen returns the larger budget used for a single exact equality test.
func (b Budget) Widen() Budget {
	return Budget{Degree: b.Degree + b.Degree/4, Bits: 4 * b.Bits}
}

func (b Budget) admits(p ZPoly) error {
	if p.Degree() > b.Degree {
		return errors.Wrapf(ErrBudgetExceeded, "degree %d > %d", p.Degree(), b.Degree)
	}
	if p.Bits() > b.Bits {
		return errors.Wrapf(ErrBudgetExceeded, "coefficients of %d bits > %d", p.Bits(), b.Bits)
	}
	return nil
}

// maxPrec caps the working precision of root isolation.
func (b Budget) maxPrec() uint {
	return uint(4*b.Bits + 1024)
}

// maxResultant caps the degree of intermediate polynomials.
func (b Budget) maxResultant() int {
	return b.Degree * b.Degree
}

// maxSubsets caps the factor search.
const maxSubsets = 1 << 16
