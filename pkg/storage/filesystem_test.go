package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndPath(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir)
	require.NoError(t, err)

	path, err := store.Save("report.xlsx", []byte("payload"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "report.xlsx"), path)
	assert.Equal(t, path, store.Path("report.xlsx"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)
}

func TestSaveCreatesNestedDirectories(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	path, err := store.Save(filepath.Join("2026", "report.csv"), []byte("a,b\n"))
	require.NoError(t, err)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestNewLocalStorageCreatesBaseDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	_, err := NewLocalStorage(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
