package store

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Anthya1104/evenodd-store/internal/evenodd"
)

// metadataMagic tags a valid header so a corrupted or truncated file is
// detected rather than silently misread as a different (p, L, B).
var metadataMagic = [8]byte{'E', 'V', 'N', 'O', 'D', 'D', '0', '1'}

// Metadata is the fixed 24-byte header recovered on read: the prime used
// to stripe the file, its original length, and the cell size. Any single
// surviving unit carries a full copy.
type Metadata struct {
	P uint32
	L uint64
	B uint32
}

// StoreMetadata writes logical's header on unit, write-temp-then-rename.
// Unlike StoreColumn this is allowed to overwrite: repair may need to
// recreate the header for a unit that was wholly lost.
func StoreMetadata(cat Catalog, unit int, logical string, meta Metadata) error {
	path := cat.MetaPath(unit, logical)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("store: create unit dir for metadata %s on unit %d: %w", logical, unit, evenodd.ErrIoFailure)
	}

	buf := new(bytes.Buffer)
	buf.Write(metadataMagic[:])
	binary.Write(buf, binary.LittleEndian, meta.P)
	binary.Write(buf, binary.LittleEndian, meta.L)
	binary.Write(buf, binary.LittleEndian, meta.B)

	tmp, err := os.CreateTemp(dir, ".meta-tmp-*")
	if err != nil {
		return fmt.Errorf("store: create temp metadata for %s on unit %d: %w", logical, unit, evenodd.ErrIoFailure)
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("store: write temp metadata for %s on unit %d: %w", logical, unit, evenodd.ErrIoFailure)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("store: close temp metadata for %s on unit %d: %w", logical, unit, evenodd.ErrIoFailure)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("store: rename metadata into %s: %w", path, evenodd.ErrIoFailure)
	}
	return nil
}

// LoadMetadata reads and validates logical's header on unit.
func LoadMetadata(cat Catalog, unit int, logical string) (Metadata, error) {
	path := cat.MetaPath(unit, logical)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Metadata{}, fmt.Errorf("store: no metadata for %s on unit %d: %w", logical, unit, evenodd.ErrNotFound)
		}
		return Metadata{}, fmt.Errorf("store: read metadata for %s on unit %d: %w", logical, unit, evenodd.ErrIoFailure)
	}

	const headerLen = 8 + 4 + 8 + 4
	if len(data) != headerLen || !bytes.Equal(data[:8], metadataMagic[:]) {
		return Metadata{}, fmt.Errorf("store: corrupt metadata header for %s on unit %d: %w", logical, unit, evenodd.ErrCorruptMetadata)
	}

	r := bytes.NewReader(data[8:])
	var meta Metadata
	binary.Read(r, binary.LittleEndian, &meta.P)
	binary.Read(r, binary.LittleEndian, &meta.L)
	binary.Read(r, binary.LittleEndian, &meta.B)

	return meta, nil
}

// LoadMetadataFromAny returns the first readable header across units,
// matching the spec's requirement that any single surviving unit suffice.
func LoadMetadataFromAny(cat Catalog, units []int, logical string) (Metadata, error) {
	for _, unit := range units {
		meta, err := LoadMetadata(cat, unit, logical)
		if err == nil {
			return meta, nil
		}
	}
	return Metadata{}, fmt.Errorf("store: no surviving unit carries a readable header for %s: %w", logical, evenodd.ErrCorruptMetadata)
}
