// Package gendata produces deterministic pseudo-random test files, the
// fourth CLI form. Output depends only on the requested length and seed,
// never on wall-clock time, so the same invocation always reproduces the
// same bytes for reproducible test fixtures.
package gendata

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"

	"github.com/Anthya1104/evenodd-store/internal/config"
	"github.com/Anthya1104/evenodd-store/internal/evenodd"
	"github.com/sirupsen/logrus"
)

// Generate returns exactly n pseudo-random bytes, fully determined by seed.
func Generate(n int, seed int64) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("gendata: negative length %d: %w", n, evenodd.ErrBadArgument)
	}

	r := rand.New(rand.NewSource(seed))
	out := make([]byte, n)
	if _, err := r.Read(out); err != nil {
		return nil, fmt.Errorf("gendata: read from PRNG: %w", evenodd.ErrIoFailure)
	}
	return out, nil
}

// WriteFile writes exactly n pseudo-random bytes to path, deterministic
// in seed, streaming through a buffered writer so n can be large without
// holding the whole output in memory at once.
func WriteFile(path string, n int, seed int64) error {
	if n < 0 {
		return fmt.Errorf("gendata: negative length %d: %w", n, evenodd.ErrBadArgument)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("gendata: create %s: %w", path, evenodd.ErrIoFailure)
	}
	defer f.Close()

	bw := bufio.NewWriterSize(f, config.IOBufferSize)
	r := rand.New(rand.NewSource(seed))

	buf := make([]byte, config.IOBufferSize)
	remaining := n
	for remaining > 0 {
		chunk := remaining
		if chunk > len(buf) {
			chunk = len(buf)
		}
		r.Read(buf[:chunk])
		if _, err := bw.Write(buf[:chunk]); err != nil {
			return fmt.Errorf("gendata: write %s: %w", path, evenodd.ErrIoFailure)
		}
		remaining -= chunk
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("gendata: flush %s: %w", path, evenodd.ErrIoFailure)
	}

	logrus.Debugf("gendata: wrote %d bytes to %s (seed=%d)", n, path, seed)
	return nil
}
