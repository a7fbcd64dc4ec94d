package gendata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Anthya1104/evenodd-store/internal/evenodd"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logrus.SetLevel(logrus.DebugLevel)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}

func TestGenerateIsDeterministic(t *testing.T) {
	a, err := Generate(1000, 42)
	require.NoError(t, err)
	b, err := Generate(1000, 42)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerateDiffersBySeed(t *testing.T) {
	a, err := Generate(1000, 1)
	require.NoError(t, err)
	b, err := Generate(1000, 2)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestGenerateLength(t *testing.T) {
	for _, n := range []int{0, 1, 400, 1_000_000} {
		out, err := Generate(n, 7)
		require.NoError(t, err)
		assert.Len(t, out, n)
	}
}

func TestGenerateRejectsNegativeLength(t *testing.T) {
	_, err := Generate(-1, 1)
	assert.ErrorIs(t, err, evenodd.ErrBadArgument)
}

func TestWriteFileMatchesGenerate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.bin")

	require.NoError(t, WriteFile(path, 400, 3))

	want, err := Generate(400, 3)
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestWriteFileLargerThanBuffer(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.bin")

	const n = 200000
	require.NoError(t, WriteFile(path, n, 9))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.EqualValues(t, n, info.Size())
}
