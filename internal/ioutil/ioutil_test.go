package ioutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadLinesRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "file.txt")

	lines := []string{"hello", "world", ""}
	require.NoError(t, WriteLines(path, lines))

	got, err := ReadLines(path)
	require.NoError(t, err)
	assert.Equal(t, lines, got)
}

func TestCleanLineStripsCR(t *testing.T) {
	assert.Equal(t, "abc", CleanLine("abc\r"))
	assert.Equal(t, "abc", CleanLine("abc"))
}

func TestFileExistsAndIsDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f")
	require.NoError(t, WriteLines(path, []string{"x"}))

	assert.True(t, FileExists(path))
	assert.False(t, IsDir(path))
	assert.True(t, IsDir(dir))
	assert.False(t, FileExists(filepath.Join(dir, "missing")))
}

func TestReadDirNamesSkipsSubdirsAndSorts(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteLines(filepath.Join(dir, "b"), []string{"x"}))
	require.NoError(t, WriteLines(filepath.Join(dir, "a"), []string{"x"}))
	require.NoError(t, EnsureDir(filepath.Join(dir, "sub")))

	names, err := ReadDirNames(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)
}

func TestRemoveFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f")
	require.NoError(t, WriteLines(path, []string{"x"}))

	require.NoError(t, RemoveFile(path))
	assert.False(t, FileExists(path))
	// Removing a missing file is not an error.
	require.NoError(t, RemoveFile(path))
}

func TestRemoveIfEmpty(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, EnsureDir(sub))

	removed, err := RemoveIfEmpty(sub)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.False(t, FileExists(sub))

	sub2 := filepath.Join(dir, "sub2")
	require.NoError(t, EnsureDir(sub2))
	require.NoError(t, WriteLines(filepath.Join(sub2, "f"), []string{"x"}))
	removed2, err := RemoveIfEmpty(sub2)
	require.NoError(t, err)
	assert.False(t, removed2)
}
