package evenodd

import "github.com/sirupsen/logrus"

// Encode produces the row-parity and diagonal-parity columns for one
// stripe grid, per the construction in spec section 4.3: row parity is a
// straight XOR convolution across the p data columns, and diagonal parity
// is a second XOR convolution across diagonals of the grid extended with
// an all-zero imaginary row at index p-1, adjusted by S so that two
// columns can always be recovered from any p of the p+2 units.
func Encode(grid Grid) (row, diag Column) {
	layout := grid.Layout
	p := layout.P()
	b := layout.B()

	row = rowParity(grid)
	diag = diagParity(grid)

	logrus.Debugf("evenodd: encoded stripe p=%d b=%d cellsPerColumn=%d", p, b, layout.CellsPerColumn())
	return row, diag
}

// rowParity computes R[i] = XOR over j<p of D[i][j], one cell per row.
func rowParity(grid Grid) Column {
	layout := grid.Layout
	r := newColumn(layout.Rows(), layout.B())
	for _, col := range grid.Columns {
		for i, cell := range col {
			xorCellInto(r[i], cell)
		}
	}
	return r
}

// diagParity computes T[d] for d in [0,p) over the grid extended with an
// all-zero imaginary row at index p-1, sets S = T[p-1], and returns
// Q[d] = S xor T[d] for d in [0,p-1).
func diagParity(grid Grid) Column {
	layout := grid.Layout
	p := layout.P()
	b := layout.B()

	t := newColumn(p, b)
	for j, col := range grid.Columns {
		for i, cell := range col {
			d := (i + j) % p
			xorCellInto(t[d], cell)
		}
	}

	s := t[p-1]
	q := newColumn(p-1, b)
	for d := 0; d < p-1; d++ {
		copy(q[d], s)
		xorCellInto(q[d], t[d])
	}
	return q
}

// diagKnownSums computes T[d] for d in [0,p) using only the data columns
// present in cols (column index -> Column), skipping any column absent
// from the map. Rows beyond the grid's real row count never contribute,
// matching the imaginary all-zero row at index p-1.
func diagKnownSums(layout StripeLayout, cols map[int]Column) Column {
	p := layout.P()
	b := layout.B()

	t := newColumn(p, b)
	for j, col := range cols {
		for i, cell := range col {
			d := (i + j) % p
			xorCellInto(t[d], cell)
		}
	}
	return t
}

func xorAllCells(layout StripeLayout, col Column) Cell {
	out := make(Cell, layout.B())
	for _, cell := range col {
		xorCellInto(out, cell)
	}
	return out
}

func xorAllColumnCellsAt(cols map[int]Column, exclude map[int]bool, row int, cellSize int) Cell {
	out := make(Cell, cellSize)
	for j, col := range cols {
		if exclude[j] {
			continue
		}
		xorCellInto(out, col[row])
	}
	return out
}
