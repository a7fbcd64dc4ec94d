// Package cli is the dispatcher: it parses the four subcommand forms,
// validates their arguments, and sequences calls into internal/evenodd,
// internal/store, and internal/gendata. It carries no erasure-coding
// logic of its own beyond the per-stripe sequencing every operation needs.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/Anthya1104/evenodd-store/internal/config"
	"github.com/Anthya1104/evenodd-store/internal/evenodd"
	"github.com/Anthya1104/evenodd-store/internal/store"
	"github.com/sirupsen/logrus"
)

// WriteFile stripes srcPath and distributes it across p+2 unit
// directories under root, under the logical name srcPath.
func WriteFile(root, srcPath string, p int) error {
	if !evenodd.IsOddPrime(p) {
		return fmt.Errorf("cli: p=%d is not an odd prime in range: %w", p, evenodd.ErrBadArgument)
	}

	cat := store.NewCatalog(root)
	for u := 0; u < p+2; u++ {
		status, err := cat.Status(u, srcPath)
		if err != nil {
			return err
		}
		if status == store.Present {
			return fmt.Errorf("cli: %s already exists on unit %d: %w", srcPath, u, evenodd.ErrAlreadyExists)
		}
	}

	f, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("cli: open %s: %w", srcPath, evenodd.ErrIoFailure)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("cli: stat %s: %w", srcPath, evenodd.ErrIoFailure)
	}

	b := config.DefaultCellSize
	layout, err := evenodd.NewStripeLayout(info.Size(), p, b)
	if err != nil {
		return err
	}

	writers := make(map[int]*store.ColumnWriter, layout.UnitCount())
	for u := 0; u < layout.UnitCount(); u++ {
		w, err := store.NewColumnWriter(cat, u, srcPath)
		if err != nil {
			abortWriters(writers)
			return err
		}
		writers[u] = w
	}

	reader := bufio.NewReaderSize(f, config.IOBufferSize)
	stripeBuf := make([]byte, layout.StripeBytes())

	for s := int64(0); s < layout.StripeCount(); s++ {
		n, err := io.ReadFull(reader, stripeBuf)
		if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
			abortWriters(writers)
			return fmt.Errorf("cli: read stripe %d of %s: %w", s, srcPath, evenodd.ErrIoFailure)
		}
		for i := n; i < len(stripeBuf); i++ {
			stripeBuf[i] = 0
		}

		grid := evenodd.NewGrid(layout)
		evenodd.FillGrid(grid, stripeBuf)
		row, diag := evenodd.Encode(grid)

		for j, col := range grid.Columns {
			if _, err := writers[j].Write(evenodd.FlattenColumn(col)); err != nil {
				abortWriters(writers)
				return err
			}
		}
		if _, err := writers[layout.RowParityUnit()].Write(evenodd.FlattenColumn(row)); err != nil {
			abortWriters(writers)
			return err
		}
		if _, err := writers[layout.DiagParityUnit()].Write(evenodd.FlattenColumn(diag)); err != nil {
			abortWriters(writers)
			return err
		}
	}

	for u, w := range writers {
		if err := w.Close(); err != nil {
			return fmt.Errorf("cli: finalize unit %d for %s: %w", u, srcPath, err)
		}
	}

	meta := store.Metadata{P: uint32(p), L: uint64(info.Size()), B: uint32(b)}
	for u := 0; u < layout.UnitCount(); u++ {
		if err := store.StoreMetadata(cat, u, srcPath, meta); err != nil {
			return err
		}
	}

	logrus.Infof("cli: wrote %s (p=%d, %d bytes, %d stripes)", srcPath, p, info.Size(), layout.StripeCount())
	return nil
}

// ReadFile reconstructs logical to outPath, tolerating up to two missing
// units.
func ReadFile(root, logical, outPath string) error {
	cat := store.NewCatalog(root)
	units, err := store.DiscoverUnits(root)
	if err != nil {
		return err
	}

	var presentUnits []int
	for _, u := range units {
		status, err := cat.Status(u, logical)
		if err != nil {
			return err
		}
		if status == store.Present {
			presentUnits = append(presentUnits, u)
		}
	}
	if len(presentUnits) == 0 {
		return fmt.Errorf("cli: %s not found on any unit: %w", logical, evenodd.ErrNotFound)
	}

	meta, err := store.LoadMetadataFromAny(cat, presentUnits, logical)
	if err != nil {
		return err
	}
	layout, err := evenodd.NewStripeLayout(int64(meta.L), int(meta.P), int(meta.B))
	if err != nil {
		return err
	}

	var missing []int
	for u := 0; u < layout.UnitCount(); u++ {
		status, err := cat.Status(u, logical)
		if err != nil {
			return err
		}
		if status != store.Present {
			missing = append(missing, u)
		}
	}
	if len(missing) > 2 {
		return fmt.Errorf("cli: %d units missing for %s: %w", len(missing), logical, evenodd.ErrTooManyFailures)
	}

	readers, err := openReaders(cat, logical, layout, missing)
	if err != nil {
		return err
	}
	defer closeReaders(readers)

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("cli: create %s: %w", outPath, evenodd.ErrIoFailure)
	}
	defer out.Close()
	bw := bufio.NewWriterSize(out, config.IOBufferSize)

	remaining := int64(meta.L)
	colBuf := make([]byte, layout.CellsPerColumn()*layout.B())

	for s := int64(0); s < layout.StripeCount(); s++ {
		known := make(map[int]evenodd.Column, layout.UnitCount())
		for u, r := range readers {
			if _, err := io.ReadFull(r, colBuf); err != nil {
				return fmt.Errorf("cli: read stripe %d from unit %d for %s: %w", s, u, logical, evenodd.ErrIoFailure)
			}
			known[u] = evenodd.ParseColumn(colBuf, layout.Rows(), layout.B())
		}

		if len(missing) > 0 {
			recovered, err := evenodd.Decode(known, layout, missing)
			if err != nil {
				return err
			}
			for u, col := range recovered {
				known[u] = col
			}
		}

		grid := evenodd.Grid{Layout: layout, Columns: make([]evenodd.Column, layout.DataUnits())}
		for j := 0; j < layout.DataUnits(); j++ {
			grid.Columns[j] = known[j]
		}
		flat := evenodd.FlattenGrid(grid)

		toWrite := int64(len(flat))
		if toWrite > remaining {
			toWrite = remaining
		}
		if _, err := bw.Write(flat[:toWrite]); err != nil {
			return fmt.Errorf("cli: write %s: %w", outPath, evenodd.ErrIoFailure)
		}
		remaining -= toWrite
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("cli: flush %s: %w", outPath, evenodd.ErrIoFailure)
	}

	logrus.Infof("cli: read %s -> %s (missing units: %v)", logical, outPath, missing)
	return nil
}

// RepairUnits reconstructs every logical file the named units should
// hold, rebuilding only their content among the survivors.
func RepairUnits(root string, units []int) error {
	if len(units) < 1 || len(units) > 2 {
		return fmt.Errorf("cli: repair takes 1 or 2 unit indices, got %d: %w", len(units), evenodd.ErrBadArgument)
	}

	cat := store.NewCatalog(root)
	discovered, err := store.DiscoverUnits(root)
	if err != nil {
		return err
	}

	scanUnits := make([]int, 0, len(discovered))
	for _, u := range discovered {
		if !containsInt(units, u) {
			scanUnits = append(scanUnits, u)
		}
	}

	logicalFiles, err := cat.ListLogicalFiles(scanUnits)
	if err != nil {
		return err
	}

	for _, logical := range logicalFiles {
		if err := repairOneFile(cat, logical, units, scanUnits); err != nil {
			return err
		}
	}

	logrus.Infof("cli: repaired units %v across %d logical files", units, len(logicalFiles))
	return nil
}

func repairOneFile(cat store.Catalog, logical string, targetUnits, scanUnits []int) error {
	var presentUnits []int
	for _, u := range scanUnits {
		status, err := cat.Status(u, logical)
		if err != nil {
			return err
		}
		if status == store.Present {
			presentUnits = append(presentUnits, u)
		}
	}
	if len(presentUnits) == 0 {
		return nil
	}

	meta, err := store.LoadMetadataFromAny(cat, presentUnits, logical)
	if err != nil {
		return err
	}
	layout, err := evenodd.NewStripeLayout(int64(meta.L), int(meta.P), int(meta.B))
	if err != nil {
		return err
	}

	var missing []int
	for u := 0; u < layout.UnitCount(); u++ {
		status, err := cat.Status(u, logical)
		if err != nil {
			return err
		}
		if status != store.Present {
			missing = append(missing, u)
		}
	}
	if len(missing) > 2 {
		return fmt.Errorf("cli: %d units missing for %s: %w", len(missing), logical, evenodd.ErrTooManyFailures)
	}

	var toRebuild []int
	for _, u := range targetUnits {
		if containsInt(missing, u) {
			toRebuild = append(toRebuild, u)
		}
	}
	if len(toRebuild) == 0 {
		return nil
	}

	readers, err := openReaders(cat, logical, layout, missing)
	if err != nil {
		return err
	}
	defer closeReaders(readers)

	writers := make(map[int]*store.ColumnWriter, len(toRebuild))
	for _, u := range toRebuild {
		w, err := store.NewColumnWriter(cat, u, logical)
		if err != nil {
			abortWriters(writers)
			return err
		}
		writers[u] = w
	}

	colBuf := make([]byte, layout.CellsPerColumn()*layout.B())
	for s := int64(0); s < layout.StripeCount(); s++ {
		known := make(map[int]evenodd.Column, layout.UnitCount())
		for u, r := range readers {
			if _, err := io.ReadFull(r, colBuf); err != nil {
				abortWriters(writers)
				return fmt.Errorf("cli: read stripe %d from unit %d for %s: %w", s, u, logical, evenodd.ErrIoFailure)
			}
			known[u] = evenodd.ParseColumn(colBuf, layout.Rows(), layout.B())
		}

		recovered, err := evenodd.Decode(known, layout, missing)
		if err != nil {
			abortWriters(writers)
			return err
		}
		for _, u := range toRebuild {
			if _, err := writers[u].Write(evenodd.FlattenColumn(recovered[u])); err != nil {
				abortWriters(writers)
				return err
			}
		}
	}

	for _, u := range toRebuild {
		if err := writers[u].Close(); err != nil {
			return err
		}
		if err := store.StoreMetadata(cat, u, logical, meta); err != nil {
			return err
		}
	}

	logrus.Debugf("cli: repaired %s on units %v", logical, toRebuild)
	return nil
}

func openReaders(cat store.Catalog, logical string, layout evenodd.StripeLayout, missing []int) (map[int]*store.ColumnReader, error) {
	readers := make(map[int]*store.ColumnReader, layout.UnitCount()-len(missing))
	for u := 0; u < layout.UnitCount(); u++ {
		if containsInt(missing, u) {
			continue
		}
		r, err := store.OpenColumnReader(cat, u, logical)
		if err != nil {
			closeReaders(readers)
			return nil, err
		}
		readers[u] = r
	}
	return readers, nil
}

func closeReaders(readers map[int]*store.ColumnReader) {
	for _, r := range readers {
		r.Close()
	}
}

func abortWriters(writers map[int]*store.ColumnWriter) {
	for _, w := range writers {
		w.Abort()
	}
}

func containsInt(haystack []int, needle int) bool {
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}
	return false
}
