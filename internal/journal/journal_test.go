package journal

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournal_RecordAndRecent(t *testing.T) {
	j, err := Open(":memory:")
	require.NoError(t, err)
	defer j.Close()

	j.Record(100, "SET 1", "OK SET 1")
	j.Record(250, "HOLD 100", "OK HOLD start")
	j.Record(350, "", "OK HOLD done")

	entries, err := j.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Newest first.
	assert.Equal(t, "OK HOLD done", entries[0].Reply)
	assert.Equal(t, "", entries[0].Line, "notice rows have no line")
	assert.Equal(t, "HOLD 100", entries[1].Line)
	assert.Equal(t, "SET 1", entries[2].Line)
	assert.Equal(t, uint32(100), uint32(entries[2].Tick))

	for _, e := range entries {
		assert.Equal(t, j.Session(), e.Session)
	}
}

func TestJournal_RecentHonorsLimit(t *testing.T) {
	j, err := Open(":memory:")
	require.NoError(t, err)
	defer j.Close()

	for i := 0; i < 5; i++ {
		j.Record(0, "STOP", "OK STOP")
	}
	entries, err := j.Recent(2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestJournal_EmptyDatabase(t *testing.T) {
	j, err := Open(":memory:")
	require.NoError(t, err)
	defer j.Close()

	entries, err := j.Recent(10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestJournal_PersistsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledd.db")

	j, err := Open(path)
	require.NoError(t, err)
	j.Record(10, "SET 1", "OK SET 1")
	firstSession := j.Session()
	require.NoError(t, j.Close())

	// Reopen: the row survives and the new session differs.
	j2, err := Open(path)
	require.NoError(t, err)
	defer j2.Close()
	assert.NotEqual(t, firstSession, j2.Session())

	entries, err := j2.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "SET 1", entries[0].Line)
	assert.Equal(t, firstSession, entries[0].Session)
}
