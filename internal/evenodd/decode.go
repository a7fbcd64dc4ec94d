package evenodd

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Decode reconstructs the column objects named in missing from the
// surviving columns in known, for exactly one stripe. It dispatches to one
// of five cases by the size and membership of missing, mirroring spec
// section 4.4 case by case. known must hold every unit not listed in
// missing.
func Decode(known map[int]Column, layout StripeLayout, missing []int) (map[int]Column, error) {
	p := layout.P()
	for _, u := range missing {
		if u < 0 || u >= layout.UnitCount() {
			return nil, fmt.Errorf("evenodd: unit %d out of range [0,%d): %w", u, layout.UnitCount(), ErrBadArgument)
		}
	}

	switch len(missing) {
	case 0:
		return decodeZeroMissing(known, layout)
	case 1:
		return decodeOneMissing(known, layout, missing[0])
	case 2:
		a, b := missing[0], missing[1]
		if a > b {
			a, b = b, a
		}
		rowUnit, diagUnit := layout.RowParityUnit(), layout.DiagParityUnit()
		switch {
		case a == rowUnit && b == diagUnit:
			return decodeTwoParity(known, layout)
		case layout.IsDataUnit(a) && b == diagUnit:
			return decodeOneDataOneParity(known, layout, a, diagUnit)
		case layout.IsDataUnit(a) && b == rowUnit:
			return decodeOneDataOneParity(known, layout, a, rowUnit)
		case layout.IsDataUnit(a) && layout.IsDataUnit(b):
			return decodeTwoData(known, layout, a, b)
		default:
			return nil, fmt.Errorf("evenodd: units %d,%d are not a valid erasure pair for p=%d: %w", a, b, p, ErrBadArgument)
		}
	default:
		return nil, fmt.Errorf("evenodd: %d units missing, at most 2 tolerated: %w", len(missing), ErrTooManyFailures)
	}
}

func decodeZeroMissing(known map[int]Column, layout StripeLayout) (map[int]Column, error) {
	return map[int]Column{}, nil
}

func decodeOneMissing(known map[int]Column, layout StripeLayout, u int) (map[int]Column, error) {
	p := layout.P()

	switch {
	case u == layout.DiagParityUnit():
		dataCols := extractDataCols(known, p)
		diag := fullDiagParity(layout, dataCols)
		logrus.Debugf("evenodd: recomputed diagonal parity (unit %d) from %d data columns", u, len(dataCols))
		return map[int]Column{u: diag}, nil

	case u == layout.RowParityUnit():
		dataCols := extractDataCols(known, p)
		row := fullRowParity(layout, dataCols)
		logrus.Debugf("evenodd: recomputed row parity (unit %d) from %d data columns", u, len(dataCols))
		return map[int]Column{u: row}, nil

	case layout.IsDataUnit(u):
		row, ok := known[layout.RowParityUnit()]
		if !ok {
			return nil, fmt.Errorf("evenodd: row parity unavailable to recover data unit %d: %w", u, ErrCorruptMetadata)
		}
		col := recoverDataViaRowParity(layout, known, u, row)
		logrus.Debugf("evenodd: recovered data unit %d via row parity", u)
		return map[int]Column{u: col}, nil

	default:
		return nil, fmt.Errorf("evenodd: unit %d out of range: %w", u, ErrBadArgument)
	}
}

// decodeTwoParity handles the {p, p+1} case: all data survives, both
// parity columns are re-derived directly.
func decodeTwoParity(known map[int]Column, layout StripeLayout) (map[int]Column, error) {
	p := layout.P()
	dataCols := extractDataCols(known, p)
	if len(dataCols) != p {
		return nil, fmt.Errorf("evenodd: expected %d surviving data columns, have %d: %w", p, len(dataCols), ErrTooManyFailures)
	}
	row := fullRowParity(layout, dataCols)
	diag := fullDiagParity(layout, dataCols)
	logrus.Debugf("evenodd: recomputed both row and diagonal parity from full data")
	return map[int]Column{layout.RowParityUnit(): row, layout.DiagParityUnit(): diag}, nil
}

// decodeOneDataOneParity handles {u, p} and {u, p+1}: one data column and
// one parity column missing. If diagonal parity is the missing one, the
// data column recovers via row parity and diagonal parity is recomputed.
// If row parity is the missing one, the data column recovers via the
// diagonal-parity syndrome chase and row parity is recomputed.
func decodeOneDataOneParity(known map[int]Column, layout StripeLayout, u, missingParity int) (map[int]Column, error) {
	p := layout.P()

	if missingParity == layout.DiagParityUnit() {
		row, ok := known[layout.RowParityUnit()]
		if !ok {
			return nil, fmt.Errorf("evenodd: row parity unavailable to recover data unit %d: %w", u, ErrCorruptMetadata)
		}
		dataCol := recoverDataViaRowParity(layout, known, u, row)

		full := extractDataCols(known, p)
		full[u] = dataCol
		diag := fullDiagParity(layout, full)

		logrus.Debugf("evenodd: recovered data unit %d via row parity, recomputed diagonal parity", u)
		return map[int]Column{u: dataCol, layout.DiagParityUnit(): diag}, nil
	}

	q, ok := known[layout.DiagParityUnit()]
	if !ok {
		return nil, fmt.Errorf("evenodd: diagonal parity unavailable to recover data unit %d: %w", u, ErrCorruptMetadata)
	}
	dataCol := recoverDataViaDiagParity(layout, known, u, q)

	full := extractDataCols(known, p)
	full[u] = dataCol
	row := fullRowParity(layout, full)

	logrus.Debugf("evenodd: recovered data unit %d via diagonal parity syndrome chase, recomputed row parity", u)
	return map[int]Column{u: dataCol, layout.RowParityUnit(): row}, nil
}

// decodeTwoData handles {u, v}, u < v < p: the classic EVEN-ODD chase.
// S recovers purely from the surviving row- and diagonal-parity columns;
// the chase then walks the diagonal starting from the one diagonal with
// no contribution from column v, alternating the row and diagonal
// equations until every row is solved. gcd(v-u, p) = 1 guarantees the walk
// covers all p-1 rows in a single pass.
func decodeTwoData(known map[int]Column, layout StripeLayout, u, v int) (map[int]Column, error) {
	p := layout.P()
	b := layout.B()
	rows := layout.Rows()

	row, ok := known[layout.RowParityUnit()]
	if !ok {
		return nil, fmt.Errorf("evenodd: row parity unavailable to recover data units %d,%d: %w", u, v, ErrCorruptMetadata)
	}
	q, ok := known[layout.DiagParityUnit()]
	if !ok {
		return nil, fmt.Errorf("evenodd: diagonal parity unavailable to recover data units %d,%d: %w", u, v, ErrCorruptMetadata)
	}

	dataKnown := extractDataCols(known, p)

	s := xorAllCells(layout, row)
	xorCellInto(s, xorAllCells(layout, q))

	exclude := map[int]bool{u: true, v: true}
	rho := newColumn(rows, b)
	for i := 0; i < rows; i++ {
		copy(rho[i], row[i])
		xorCellInto(rho[i], xorAllColumnCellsAt(dataKnown, exclude, i, b))
	}

	tKnown := diagKnownSums(layout, dataKnown)
	diagSyndrome := func(d int) Cell {
		val := cloneCell(s)
		if d == p-1 {
			xorCellInto(val, tKnown[p-1])
		} else {
			xorCellInto(val, q[d])
			xorCellInto(val, tKnown[d])
		}
		return val
	}

	colU := newColumn(rows, b)
	colV := newColumn(rows, b)

	step := (((v - u) % p) + p) % p
	dSpecial := (((v - 1) % p) + p) % p
	i0 := (((dSpecial - u) % p) + p) % p

	colU[i0] = diagSyndrome(dSpecial)
	colV[i0] = cloneCell(colU[i0])
	xorCellInto(colV[i0], rho[i0])

	cur := i0
	for n := 1; n < rows; n++ {
		d := (cur + v) % p
		next := (cur + step) % p

		val := diagSyndrome(d)
		xorCellInto(val, colV[cur])
		colU[next] = val

		colV[next] = cloneCell(colU[next])
		xorCellInto(colV[next], rho[next])

		cur = next
	}

	logrus.Debugf("evenodd: recovered data units %d,%d via diagonal chase (%d rows)", u, v, rows)
	return map[int]Column{u: colU, v: colV}, nil
}

// recoverDataViaRowParity reconstructs the single missing data column
// missingUnit from row parity and every other surviving data column.
func recoverDataViaRowParity(layout StripeLayout, known map[int]Column, missingUnit int, row Column) Column {
	p := layout.P()
	rows := layout.Rows()

	out := newColumn(rows, layout.B())
	for i := 0; i < rows; i++ {
		copy(out[i], row[i])
		for j := 0; j < p; j++ {
			if j == missingUnit {
				continue
			}
			if col, ok := known[j]; ok {
				xorCellInto(out[i], col[i])
			}
		}
	}
	return out
}

// recoverDataViaDiagParity reconstructs the single missing data column u
// purely from diagonal parity and the other p-1 surviving data columns,
// without needing row parity. S recovers from the one diagonal that has
// no contribution from column u (the diagonal whose would-be u-cell falls
// on the imaginary row p-1); every other row follows directly.
func recoverDataViaDiagParity(layout StripeLayout, known map[int]Column, u int, q Column) Column {
	p := layout.P()
	rows := layout.Rows()

	dataKnown := extractDataCols(known, p)
	delete(dataKnown, u)
	tKnown := diagKnownSums(layout, dataKnown)

	specialK := (((u - 1) % p) + p) % p

	var s Cell
	if specialK == p-1 {
		s = cloneCell(tKnown[p-1])
	} else {
		s = cloneCell(q[specialK])
		xorCellInto(s, tKnown[specialK])
	}

	out := newColumn(rows, layout.B())
	for i := 0; i < rows; i++ {
		d := (i + u) % p
		val := cloneCell(s)
		if d == p-1 {
			xorCellInto(val, tKnown[p-1])
		} else {
			xorCellInto(val, q[d])
			xorCellInto(val, tKnown[d])
		}
		out[i] = val
	}
	return out
}

func extractDataCols(known map[int]Column, p int) map[int]Column {
	out := make(map[int]Column, p)
	for j := 0; j < p; j++ {
		if col, ok := known[j]; ok {
			out[j] = col
		}
	}
	return out
}

func fullRowParity(layout StripeLayout, dataCols map[int]Column) Column {
	r := newColumn(layout.Rows(), layout.B())
	for _, col := range dataCols {
		for i, cell := range col {
			xorCellInto(r[i], cell)
		}
	}
	return r
}

func fullDiagParity(layout StripeLayout, dataCols map[int]Column) Column {
	p := layout.P()
	t := diagKnownSums(layout, dataCols)
	s := t[p-1]
	q := newColumn(p-1, layout.B())
	for d := 0; d < p-1; d++ {
		copy(q[d], s)
		xorCellInto(q[d], t[d])
	}
	return q
}
