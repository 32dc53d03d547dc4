package ledger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) (*Ledger, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "processed.log")
	l, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l, path
}

func TestOpen_CreatesMissingFile(t *testing.T) {
	l, path := openTemp(t)
	assert.Equal(t, 0, l.Len())

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestRecordAndExists(t *testing.T) {
	l, _ := openTemp(t)

	require.NoError(t, l.Record("movie:603", OutcomeUploaded))
	require.NoError(t, l.Record("tv:1399:1:1", OutcomeSkipped))

	assert.True(t, l.Exists("movie:603"))
	assert.True(t, l.Exists("tv:1399:1:1"))
	assert.False(t, l.Exists("movie:604"))

	assert.Equal(t, OutcomeUploaded, l.Outcome("movie:603"))
	assert.Equal(t, OutcomeSkipped, l.Outcome("tv:1399:1:1"))
	assert.Equal(t, "", l.Outcome("movie:604"))
	assert.Equal(t, 2, l.Len())
}

func TestOpen_ReloadsRecordedEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed.log")

	l, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, l.Record("movie:603", OutcomeUploaded))
	require.NoError(t, l.Record("movie:604", OutcomeSkipped))
	require.NoError(t, l.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	assert.Equal(t, 2, reopened.Len())
	assert.Equal(t, OutcomeUploaded, reopened.Outcome("movie:603"))
	assert.Equal(t, OutcomeSkipped, reopened.Outcome("movie:604"))
}

func TestOpen_BareKeysCountAsSkipped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed.log")
	require.NoError(t, os.WriteFile(path, []byte("movie:603\n\ntv:1399:1:1 uploaded\n"), 0o644))

	l, err := Open(path)
	require.NoError(t, err)
	defer l.Close()

	assert.Equal(t, 2, l.Len())
	assert.Equal(t, OutcomeSkipped, l.Outcome("movie:603"))
	assert.Equal(t, OutcomeUploaded, l.Outcome("tv:1399:1:1"))
}

func TestRecord_AppendsAfterExistingLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed.log")
	require.NoError(t, os.WriteFile(path, []byte("movie:603 uploaded\n"), 0o644))

	l, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, l.Record("movie:604", OutcomeSkipped))
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "movie:603 uploaded\nmovie:604 skipped\n", string(data))
}
