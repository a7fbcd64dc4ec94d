package evenodd

import (
	"fmt"

	"github.com/Anthya1104/evenodd-store/internal/config"
)

// StripeLayout is the pure arithmetic derived from a file's length and its
// chosen prime p. It holds no bytes and performs no I/O; the byte-I/O layer
// and the encoder/decoder both build on it so the ceiling-division and
// padding math is computed in exactly one place.
//
// A stripe is a (p-1)-row by p-column grid of data cells: p data units
// (0..p-1), one row-parity unit (p), one diagonal-parity unit (p+1),
// p+2 units total. Diagonals are computed over a virtual p x p extension
// with an all-zero imaginary row at index p-1, so every stored column
// object — data, row parity, or diagonal parity — carries exactly p-1
// cells per stripe.
type StripeLayout struct {
	p int
	b int
	l int64
}

// NewStripeLayout validates (p, B) and derives the stripe geometry for a
// file of length L bytes. p must be an odd prime in [MinPrime, MaxPrime];
// B must be at least 1.
func NewStripeLayout(l int64, p, b int) (StripeLayout, error) {
	if !IsOddPrime(p) {
		return StripeLayout{}, fmt.Errorf("evenodd: p=%d is not an odd prime in range: %w", p, ErrBadArgument)
	}
	if b < 1 {
		return StripeLayout{}, fmt.Errorf("evenodd: cell size B=%d must be >= 1: %w", b, ErrBadArgument)
	}
	if l < 0 {
		return StripeLayout{}, fmt.Errorf("evenodd: negative length %d: %w", l, ErrBadArgument)
	}

	return StripeLayout{p: p, b: b, l: l}, nil
}

// IsOddPrime reports whether n is an odd prime in [MinPrime, MaxPrime].
// p never exceeds 97, so trial division is simpler and just as fast as
// building a sieve.
func IsOddPrime(n int) bool {
	if n < config.MinPrime || n > config.MaxPrime {
		return false
	}
	if n%2 == 0 {
		return false
	}
	for d := 3; d*d <= n; d += 2 {
		if n%d == 0 {
			return false
		}
	}
	return true
}

// P is the stripe prime.
func (s StripeLayout) P() int { return s.p }

// B is the cell size in bytes.
func (s StripeLayout) B() int { return s.b }

// L is the original, unpadded file length in bytes.
func (s StripeLayout) L() int64 { return s.l }

// DataUnits is the number of data units (and data columns) per stripe, p.
func (s StripeLayout) DataUnits() int { return s.p }

// RowParityUnit is the unit index carrying row parity, p.
func (s StripeLayout) RowParityUnit() int { return s.p }

// DiagParityUnit is the unit index carrying diagonal parity, p+1.
func (s StripeLayout) DiagParityUnit() int { return s.p + 1 }

// Rows is the number of real rows per stripe, p-1.
func (s StripeLayout) Rows() int { return s.p - 1 }

// CellsPerColumn is the number of cells any unit's column contributes per
// stripe: one per row, uniformly p-1 cells whether the unit is a data
// column, the row-parity column, or the diagonal-parity column.
func (s StripeLayout) CellsPerColumn() int { return s.p - 1 }

// StripeBytes is the number of raw data bytes one stripe holds:
// p * (p-1) * B.
func (s StripeLayout) StripeBytes() int64 {
	return int64(s.p) * int64(s.p-1) * int64(s.b)
}

// StripeCount is M, the number of stripes the file spans, ceil(L/stripeBytes).
// An empty file occupies no stripes.
func (s StripeLayout) StripeCount() int64 {
	sb := s.StripeBytes()
	return (s.l + sb - 1) / sb
}

// PaddedSize is the total logical byte length after zero-padding the final
// stripe: M * stripeBytes.
func (s StripeLayout) PaddedSize() int64 {
	return s.StripeCount() * s.StripeBytes()
}

// ColumnObjectBytes is the total on-disk length of unit u's column object
// across all M stripes: M * (p-1) * B, the same for every unit.
func (s StripeLayout) ColumnObjectBytes(unit int) int64 {
	return s.StripeCount() * int64(s.CellsPerColumn()) * int64(s.b)
}

// UnitCount is the total number of storage units, p+2.
func (s StripeLayout) UnitCount() int { return s.p + 2 }

// IsDataUnit reports whether unit is a data unit, i.e. in [0, p).
func (s StripeLayout) IsDataUnit(unit int) bool { return unit >= 0 && unit < s.p }
