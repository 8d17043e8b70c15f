package persistence

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name    string
	Counts  map[string]int
	Updated time.Time
}

func TestSaveAndLoadGob(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "sample.gob")
	in := sample{Name: "сцена 1", Counts: map[string]int{"dog": 2}, Updated: time.Unix(100, 0).UTC()}

	require.NoError(t, SaveGob(path, in))

	var out sample
	require.NoError(t, LoadGob(path, &out))
	assert.Equal(t, in.Name, out.Name)
	assert.Equal(t, in.Counts, out.Counts)
	assert.True(t, in.Updated.Equal(out.Updated))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files are left behind")
}

func TestSaveGobOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.gob")
	require.NoError(t, SaveGob(path, sample{Name: "first"}))
	require.NoError(t, SaveGob(path, sample{Name: "second"}))

	var out sample
	require.NoError(t, LoadGob(path, &out))
	assert.Equal(t, "second", out.Name)
}

func TestLoadGobMissingFile(t *testing.T) {
	var out sample
	err := LoadGob(filepath.Join(t.TempDir(), "missing.gob"), &out)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadGobCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.gob")
	require.NoError(t, os.WriteFile(path, []byte("not gob"), 0600))

	var out sample
	err := LoadGob(path, &out)
	require.Error(t, err)
	assert.NotErrorIs(t, err, os.ErrNotExist)
}

func TestRemoveDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "script")
	require.NoError(t, SaveGob(filepath.Join(dir, "script.gob"), sample{}))

	require.NoError(t, RemoveDir(dir))
	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, RemoveDir(dir))
}
