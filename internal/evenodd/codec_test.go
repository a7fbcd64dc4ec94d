package evenodd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFillAndFlattenGridRoundTrip(t *testing.T) {
	layout, err := NewStripeLayout(1000, 11, 2)
	require.NoError(t, err)

	buf := make([]byte, layout.StripeBytes())
	for i := range buf {
		buf[i] = byte(i)
	}

	grid := NewGrid(layout)
	FillGrid(grid, buf)
	assert.Equal(t, buf, FlattenGrid(grid))
}

func TestFillGridPadsShortBuffer(t *testing.T) {
	layout, err := NewStripeLayout(5, 5, 1)
	require.NoError(t, err)

	short := []byte{1, 2, 3}
	grid := NewGrid(layout)
	FillGrid(grid, short)

	flat := FlattenGrid(grid)
	require.Len(t, flat, int(layout.StripeBytes()))
	assert.Equal(t, []byte{1, 2, 3}, flat[:3])
	for _, b := range flat[3:] {
		assert.Equal(t, byte(0), b)
	}
}

func TestFlattenAndParseColumnRoundTrip(t *testing.T) {
	layout, err := NewStripeLayout(1000, 7, 3)
	require.NoError(t, err)

	col := newColumn(layout.Rows(), layout.B())
	for i, cell := range col {
		for b := range cell {
			cell[b] = byte(i + b)
		}
	}

	flat := FlattenColumn(col)
	require.Len(t, flat, layout.Rows()*layout.B())

	parsed := ParseColumn(flat, layout.Rows(), layout.B())
	assertColumnEqual(t, col, parsed, "parsed column")
}
