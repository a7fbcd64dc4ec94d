package evenodd

// EncodeStats and DecodeStats are byte counters for callers that want to
// measure Encode/Decode output; nothing in this module calls them. The
// core itself carries no process-wide state, so
// these are always constructed fresh by a caller and passed through
// explicitly rather than accumulated behind a package-level global.

// EncodeStats counts bytes produced by a sequence of Encode calls.
type EncodeStats struct {
	Stripes   int64
	RowBytes  int64
	DiagBytes int64
}

// Observe records one Encode call's output against the stats.
func (s *EncodeStats) Observe(row, diag Column) {
	s.Stripes++
	for _, c := range row {
		s.RowBytes += int64(len(c))
	}
	for _, c := range diag {
		s.DiagBytes += int64(len(c))
	}
}

// DecodeStats counts bytes reconstructed by a sequence of Decode calls.
type DecodeStats struct {
	Stripes            int64
	ReconstructedBytes int64
}

// Observe records one Decode call's output against the stats.
func (s *DecodeStats) Observe(recovered map[int]Column) {
	s.Stripes++
	for _, col := range recovered {
		for _, c := range col {
			s.ReconstructedBytes += int64(len(c))
		}
	}
}
