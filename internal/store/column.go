package store

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Anthya1104/evenodd-store/internal/config"
	"github.com/Anthya1104/evenodd-store/internal/evenodd"
	"github.com/sirupsen/logrus"
)

// ColumnWriter streams a column object to a temporary file and renames it
// into place on Close, so a reader never observes a partially written
// object. It refuses to start if the destination already exists.
type ColumnWriter struct {
	tmp       *os.File
	bw        *bufio.Writer
	finalPath string
	closed    bool
}

// NewColumnWriter opens a ColumnWriter for logical's column object on
// unit. It fails with ErrAlreadyExists if the destination already exists.
func NewColumnWriter(cat Catalog, unit int, logical string) (*ColumnWriter, error) {
	finalPath := cat.ColumnPath(unit, logical)
	dir := filepath.Dir(finalPath)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: create unit dir for %s on unit %d: %w", logical, unit, evenodd.ErrIoFailure)
	}
	if _, err := os.Stat(finalPath); err == nil {
		return nil, fmt.Errorf("store: column %s already exists on unit %d: %w", logical, unit, evenodd.ErrAlreadyExists)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("store: create temp file for %s on unit %d: %w", logical, unit, evenodd.ErrIoFailure)
	}

	return &ColumnWriter{
		tmp:       tmp,
		bw:        bufio.NewWriterSize(tmp, config.IOBufferSize),
		finalPath: finalPath,
	}, nil
}

// Write appends p to the column object under construction.
func (w *ColumnWriter) Write(p []byte) (int, error) {
	n, err := w.bw.Write(p)
	if err != nil {
		return n, fmt.Errorf("store: write column: %w", evenodd.ErrIoFailure)
	}
	return n, nil
}

// Close flushes and atomically renames the temp file into place. It is
// safe to call Close at most once; callers that abort must call Abort
// instead.
func (w *ColumnWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if err := w.bw.Flush(); err != nil {
		w.abortTemp()
		return fmt.Errorf("store: flush column %s: %w", w.finalPath, evenodd.ErrIoFailure)
	}
	if err := w.tmp.Close(); err != nil {
		w.abortTemp()
		return fmt.Errorf("store: close temp for %s: %w", w.finalPath, evenodd.ErrIoFailure)
	}
	if err := os.Rename(w.tmp.Name(), w.finalPath); err != nil {
		os.Remove(w.tmp.Name())
		return fmt.Errorf("store: rename into %s: %w", w.finalPath, evenodd.ErrIoFailure)
	}

	logrus.Debugf("store: wrote column object %s", w.finalPath)
	return nil
}

// Abort discards the in-progress write, removing the temp file without
// touching the destination.
func (w *ColumnWriter) Abort() error {
	if w.closed {
		return nil
	}
	w.closed = true
	w.tmp.Close()
	return w.abortTemp()
}

func (w *ColumnWriter) abortTemp() error {
	if err := os.Remove(w.tmp.Name()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("store: remove temp %s: %w", w.tmp.Name(), evenodd.ErrIoFailure)
	}
	return nil
}

// ColumnReader streams a column object back out of storage.
type ColumnReader struct {
	f  *os.File
	br *bufio.Reader
}

// OpenColumnReader opens logical's column object on unit for reading. It
// distinguishes unit-missing and file-missing via the Catalog, surfacing
// both as ErrNotFound since from the decoder's perspective either means
// "this unit cannot supply this column".
func OpenColumnReader(cat Catalog, unit int, logical string) (*ColumnReader, error) {
	status, err := cat.Status(unit, logical)
	if err != nil {
		return nil, err
	}
	if status != Present {
		return nil, fmt.Errorf("store: column %s on unit %d is %s: %w", logical, unit, status, evenodd.ErrNotFound)
	}

	f, err := os.Open(cat.ColumnPath(unit, logical))
	if err != nil {
		return nil, fmt.Errorf("store: open column %s on unit %d: %w", logical, unit, evenodd.ErrIoFailure)
	}

	return &ColumnReader{f: f, br: bufio.NewReaderSize(f, config.IOBufferSize)}, nil
}

// Read implements io.Reader.
func (r *ColumnReader) Read(p []byte) (int, error) {
	return r.br.Read(p)
}

// Close releases the underlying file handle.
func (r *ColumnReader) Close() error {
	return r.f.Close()
}

// LoadColumn reads logical's entire column object on unit into memory.
// Large files should prefer OpenColumnReader and stream stripe by stripe.
func LoadColumn(cat Catalog, unit int, logical string) ([]byte, error) {
	r, err := OpenColumnReader(cat, unit, logical)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("store: read column %s on unit %d: %w", logical, unit, evenodd.ErrIoFailure)
	}
	return data, nil
}

// StoreColumn writes data as logical's entire column object on unit,
// write-temp-then-rename. It fails with ErrAlreadyExists if the
// destination already exists.
func StoreColumn(cat Catalog, unit int, logical string, data []byte) error {
	w, err := NewColumnWriter(cat, unit, logical)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		w.Abort()
		return err
	}
	return w.Close()
}
