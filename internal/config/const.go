package config

const (
	LogLevelDebug   string = "debug"
	LogLevelInfo    string = "info"
	LogLevelWarning string = "warn"
	LogLevelError   string = "error"

	// UnitDirPrefix names the per-unit storage directories: disk0, disk1, ...
	UnitDirPrefix string = "disk"

	// DefaultCellSize is the atomic XOR block size (bytes) used by the CLI.
	// Fixed at 1 for cross-implementation compatibility, per spec open question.
	DefaultCellSize int = 1

	// MinPrime and MaxPrime bound the legal stripe parameter p.
	MinPrime int = 3
	MaxPrime int = 97

	// MetadataSuffix names the sibling file carrying (p, L, B) for a column object.
	MetadataSuffix string = ".meta"

	// IOBufferSize sizes the buffered readers/writers used for column I/O.
	IOBufferSize int = 64 * 1024
)
