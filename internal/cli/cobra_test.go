package cli

import (
	"testing"

	"github.com/Anthya1104/evenodd-store/internal/evenodd"
	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"BadArgument", evenodd.ErrBadArgument, 2},
		{"AlreadyExists", evenodd.ErrAlreadyExists, 3},
		{"NotFound", evenodd.ErrNotFound, 4},
		{"TooManyFailures", evenodd.ErrTooManyFailures, 5},
		{"CorruptMetadata", evenodd.ErrCorruptMetadata, 6},
		{"IoFailure", evenodd.ErrIoFailure, 7},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, ExitCode(c.err))
		})
	}
}

func TestRootCommandHasFourSubcommands(t *testing.T) {
	root := NewRootCommand()
	names := make([]string, 0, 4)
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"write", "read", "repair", "gendata"}, names)
}
