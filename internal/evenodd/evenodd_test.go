package evenodd

import (
	"math/rand"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logrus.SetLevel(logrus.DebugLevel)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}

func TestIsOddPrime(t *testing.T) {
	cases := []struct {
		n    int
		want bool
	}{
		{2, false},
		{3, true},
		{4, false},
		{9, false},
		{11, true},
		{97, true},
		{98, false},
		{99, false},
		{101, false}, // out of [3,97] range even though prime
		{1, false},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, IsOddPrime(c.n), "n=%d", c.n)
	}
}

func TestNewStripeLayout(t *testing.T) {
	t.Run("RejectsNonPrime", func(t *testing.T) {
		_, err := NewStripeLayout(100, 9, 1)
		assert.ErrorIs(t, err, ErrBadArgument)
	})

	t.Run("RejectsTinyCellSize", func(t *testing.T) {
		_, err := NewStripeLayout(100, 11, 0)
		assert.ErrorIs(t, err, ErrBadArgument)
	})

	t.Run("EmptyFileOccupiesNoStripes", func(t *testing.T) {
		layout, err := NewStripeLayout(0, 3, 1)
		require.NoError(t, err)
		assert.EqualValues(t, 0, layout.StripeCount())
		assert.EqualValues(t, 0, layout.PaddedSize())
	})

	t.Run("BoundaryLengths", func(t *testing.T) {
		layout, err := NewStripeLayout(100, 11, 1)
		require.NoError(t, err)
		stripeBytes := layout.StripeBytes() // 11*10*1 = 110

		boundary := []int64{0, 1, stripeBytes - 1, stripeBytes, stripeBytes + 1}
		for _, l := range boundary {
			lay, err := NewStripeLayout(l, 11, 1)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, lay.PaddedSize(), l)
			assert.Less(t, lay.PaddedSize()-l, lay.StripeBytes())
		}
	})
}

func randomGrid(layout StripeLayout, seed int64) Grid {
	r := rand.New(rand.NewSource(seed))
	grid := NewGrid(layout)
	for _, col := range grid.Columns {
		for _, cell := range col {
			r.Read(cell)
		}
	}
	return grid
}

// TestEncodeRowInvariant checks spec invariant 1: XORing every data column
// with row parity at a given row yields zero.
func TestEncodeRowInvariant(t *testing.T) {
	for _, p := range []int{3, 5, 7, 11, 97} {
		layout, err := NewStripeLayout(1000, p, 2)
		require.NoError(t, err)

		grid := randomGrid(layout, int64(p))
		row, _ := Encode(grid)

		for i := 0; i < layout.Rows(); i++ {
			acc := make(Cell, layout.B())
			for _, col := range grid.Columns {
				xorCellInto(acc, col[i])
			}
			xorCellInto(acc, row[i])
			assert.True(t, isZeroCell(acc), "p=%d row=%d parity did not cancel", p, i)
		}
	}
}

func isZeroCell(c Cell) bool {
	for _, b := range c {
		if b != 0 {
			return false
		}
	}
	return true
}

// buildKnown assembles the full known-column map (all p+2 units) for one
// randomly generated stripe.
func buildKnown(layout StripeLayout, seed int64) (map[int]Column, Grid, Column, Column) {
	grid := randomGrid(layout, seed)
	row, diag := Encode(grid)

	known := make(map[int]Column, layout.UnitCount())
	for j, col := range grid.Columns {
		known[j] = col
	}
	known[layout.RowParityUnit()] = row
	known[layout.DiagParityUnit()] = diag
	return known, grid, row, diag
}

func assertColumnEqual(t *testing.T, want, got Column, msg string) {
	t.Helper()
	require.Equal(t, len(want), len(got), msg)
	for i := range want {
		assert.Equal(t, []byte(want[i]), []byte(got[i]), "%s row %d", msg, i)
	}
}

// TestDecodeSingleErasure exercises spec section 4.4 case 2 for every unit
// of small-to-mid primes: the decoder must reconstruct whichever single
// unit is removed.
func TestDecodeSingleErasure(t *testing.T) {
	for _, p := range []int{3, 5, 7, 11, 13} {
		layout, err := NewStripeLayout(5000, p, 1)
		require.NoError(t, err)
		known, _, _, _ := buildKnown(layout, int64(p)*7+1)

		for u := 0; u < layout.UnitCount(); u++ {
			t.Run(caseName(p, u), func(t *testing.T) {
				want := known[u]
				partial := withoutUnits(known, u)

				recovered, err := Decode(partial, layout, []int{u})
				require.NoError(t, err)
				assertColumnEqual(t, want, recovered[u], caseName(p, u))
			})
		}
	}
}

// TestDecodeDoubleErasure exercises every {a,b} pair of units for small
// primes exhaustively, and spot-checks representative pairs for p=97
// (every combination category: two parity, data+row, data+diag, two data
// adjacent and two data far apart).
func TestDecodeDoubleErasure(t *testing.T) {
	for _, p := range []int{3, 5, 7, 11, 13} {
		layout, err := NewStripeLayout(10000, p, 1)
		require.NoError(t, err)
		known, _, _, _ := buildKnown(layout, int64(p)*13+3)

		n := layout.UnitCount()
		for a := 0; a < n; a++ {
			for b := a + 1; b < n; b++ {
				t.Run(caseName(p, a)+"_"+caseName(p, b), func(t *testing.T) {
					partial := withoutUnits(known, a, b)
					recovered, err := Decode(partial, layout, []int{a, b})
					require.NoError(t, err)
					assertColumnEqual(t, known[a], recovered[a], "unit a")
					assertColumnEqual(t, known[b], recovered[b], "unit b")
				})
			}
		}
	}

	p := 97
	layout, err := NewStripeLayout(50000, p, 1)
	require.NoError(t, err)
	known, _, _, _ := buildKnown(layout, 97001)

	pairs := [][2]int{
		{p, p + 1},  // both parity
		{0, p},      // data + row parity
		{0, p + 1},  // data + diagonal parity
		{3, p},      // data + row parity
		{5, p + 1},  // data + diagonal parity
		{0, 1},      // two adjacent data columns
		{0, p - 1},  // two data columns at maximum separation
		{40, 61},    // arbitrary interior pair
	}
	for _, pair := range pairs {
		a, b := pair[0], pair[1]
		t.Run(caseName(p, a)+"_"+caseName(p, b), func(t *testing.T) {
			partial := withoutUnits(known, a, b)
			recovered, err := Decode(partial, layout, []int{a, b})
			require.NoError(t, err)
			assertColumnEqual(t, known[a], recovered[a], "unit a")
			assertColumnEqual(t, known[b], recovered[b], "unit b")
		})
	}
}

func TestDecodeTooManyFailures(t *testing.T) {
	p := 11
	layout, err := NewStripeLayout(1000, p, 1)
	require.NoError(t, err)
	known, _, _, _ := buildKnown(layout, 555)

	partial := withoutUnits(known, 0, 1, 2)
	_, err = Decode(partial, layout, []int{0, 1, 2})
	assert.ErrorIs(t, err, ErrTooManyFailures)
}

func caseName(p, u int) string {
	switch {
	case u < p:
		return "data"
	case u == p:
		return "row"
	default:
		return "diag"
	}
}

func withoutUnits(known map[int]Column, units ...int) map[int]Column {
	skip := make(map[int]bool, len(units))
	for _, u := range units {
		skip[u] = true
	}
	out := make(map[int]Column, len(known))
	for k, v := range known {
		if !skip[k] {
			out[k] = v
		}
	}
	return out
}
