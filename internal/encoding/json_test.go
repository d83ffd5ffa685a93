package encoding

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestLoadJSON_Missing(t *testing.T) {
	got, err := LoadJSON[sample](filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSaveJSON_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sample.json")

	require.NoError(t, SaveJSON(path, sample{Name: "a", Count: 3}))

	got, err := LoadJSON[sample](path)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, sample{Name: "a", Count: 3}, *got)

	info, err := os.Stat(path)
	require.NoError(t, err)

	if os.PathSeparator == '/' {
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}
}

func TestSaveJSON_ReplacesWithoutLeftovers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.json")

	require.NoError(t, SaveJSON(path, sample{Name: "old"}))
	require.NoError(t, SaveJSON(path, sample{Name: "new"}))

	got, err := LoadJSON[sample](path)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Name)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestLoadJSON_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := LoadJSON[sample](path)
	assert.Error(t, err)
}
