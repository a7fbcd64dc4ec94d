package evenodd

// FillGrid populates a stripe's data columns from a flat byte buffer of
// exactly StripeBytes() bytes, short buffers are treated as implicitly
// zero-padded. Layout is column-major within the stripe: column j's
// Rows() cells come from consecutive bytes before column j+1 begins. The
// specification leaves this linearization to the implementation as long
// as the same mapping is used on write and read.
func FillGrid(grid Grid, buf []byte) {
	b := grid.Layout.B()
	idx := 0
	for _, col := range grid.Columns {
		for _, cell := range col {
			n := copy(cell, buf[min(idx, len(buf)):min(idx+b, len(buf))])
			for i := n; i < b; i++ {
				cell[i] = 0
			}
			idx += b
		}
	}
}

// FlattenGrid is the inverse of FillGrid: it concatenates every data
// column's cells back into one stripe-sized byte slice.
func FlattenGrid(grid Grid) []byte {
	out := make([]byte, 0, grid.Layout.StripeBytes())
	for _, col := range grid.Columns {
		for _, cell := range col {
			out = append(out, cell...)
		}
	}
	return out
}

// FlattenColumn concatenates one column's cells, for writing a single
// unit's contribution to a stripe to its column object.
func FlattenColumn(col Column) []byte {
	if len(col) == 0 {
		return nil
	}
	out := make([]byte, 0, len(col)*len(col[0]))
	for _, cell := range col {
		out = append(out, cell...)
	}
	return out
}

// ParseColumn splits a flat byte buffer of rows*cellSize bytes back into
// a Column of rows cells of cellSize bytes each.
func ParseColumn(buf []byte, rows, cellSize int) Column {
	col := newColumn(rows, cellSize)
	for i := range col {
		start := i * cellSize
		copy(col[i], buf[start:start+cellSize])
	}
	return col
}
