package store

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/Anthya1104/evenodd-store/internal/config"
	"github.com/Anthya1104/evenodd-store/internal/evenodd"
)

// DiscoverUnits lists every unit index whose storage directory currently
// exists under root, sorted ascending. A unit absent from this list is,
// by the on-disk-layout convention, lost.
func DiscoverUnits(root string) ([]int, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("store: read root %s: %w", root, evenodd.ErrIoFailure)
	}

	var units []int
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if !strings.HasPrefix(e.Name(), config.UnitDirPrefix) {
			continue
		}
		idxStr := strings.TrimPrefix(e.Name(), config.UnitDirPrefix)
		idx, err := strconv.Atoi(idxStr)
		if err != nil {
			continue
		}
		units = append(units, idx)
	}

	sort.Ints(units)
	return units, nil
}
