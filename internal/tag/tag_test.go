package tag

import (
	"path/filepath"
	"testing"

	"github.com/seanhobeck/lit/internal/hashlabel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	bh := hashlabel.ComputeSha1([]byte("branch"))
	ch := hashlabel.ComputeSha1([]byte("commit"))
	tg := New("release-1", bh, ch)

	require.NoError(t, tg.Write(dir))
	got, err := Read(dir, "release-1")
	require.NoError(t, err)
	assert.Equal(t, tg.Name, got.Name)
	assert.Equal(t, tg.BranchHash, got.BranchHash)
	assert.Equal(t, tg.CommitHash, got.CommitHash)
}

func TestDeleteRemovesRef(t *testing.T) {
	dir := t.TempDir()
	tg := New("t1", hashlabel.ComputeSha1([]byte("b")), hashlabel.ComputeSha1([]byte("c")))
	require.NoError(t, tg.Write(dir))

	require.NoError(t, Delete(dir, "t1"))
	_, err := Read(dir, "t1")
	assert.Error(t, err)
}

func TestListFiltersByBranchHash(t *testing.T) {
	dir := t.TempDir()
	bh1 := hashlabel.ComputeSha1([]byte("b1"))
	bh2 := hashlabel.ComputeSha1([]byte("b2"))
	require.NoError(t, New("t1", bh1, hashlabel.ComputeSha1([]byte("c1"))).Write(dir))
	require.NoError(t, New("t2", bh2, hashlabel.ComputeSha1([]byte("c2"))).Write(dir))
	require.NoError(t, New("t3", bh1, hashlabel.ComputeSha1([]byte("c3"))).Write(dir))

	all, err := List(dir, hashlabel.Sha1{}, false)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	filtered, err := List(dir, bh1, true)
	require.NoError(t, err)
	assert.Len(t, filtered, 2)
}

func TestPathJoinsRootAndName(t *testing.T) {
	assert.Equal(t, filepath.ToSlash(filepath.Join("/root", "name")), Path("/root", "name"))
}
