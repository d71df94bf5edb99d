package branch

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/seanhobeck/lit/internal/commit"
	"github.com/seanhobeck/lit/internal/diffengine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBranchHashStableForSameInputs(t *testing.T) {
	b1 := New("origin", 1)
	b2 := New("origin", 1)
	assert.Equal(t, b1.Hash, b2.Hash)
}

func TestNewBranchHashDiffersBySalt(t *testing.T) {
	b1 := New("origin", 1)
	b2 := New("origin", 2)
	assert.NotEqual(t, b1.Hash, b2.Hash)
}

func TestAppendCommitAdvancesHead(t *testing.T) {
	b := New("origin", 1)
	c1 := commit.New("first", time.Unix(1, 0))
	c2 := commit.New("second", time.Unix(2, 0))
	b.AppendCommit(c1)
	assert.Equal(t, 0, b.Head)
	b.AppendCommit(c2)
	assert.Equal(t, 1, b.Head)
	assert.Equal(t, 2, b.Commits.Len())
}

func TestCopyFromSharesHistoryByValue(t *testing.T) {
	src := New("origin", 1)
	src.AppendCommit(commit.New("first", time.Unix(1, 0)))

	dup := CopyFrom("feature", 2, src)
	assert.Equal(t, src.Commits.Len(), dup.Commits.Len())
	assert.NotEqual(t, src.Hash, dup.Hash)

	dup.AppendCommit(commit.New("second", time.Unix(2, 0)))
	assert.Equal(t, 1, src.Commits.Len())
	assert.Equal(t, 2, dup.Commits.Len())
}

func TestWriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	refsRoot := filepath.Join(dir, "refs", "heads")
	commitsRoot := filepath.Join(dir, "commits")
	diffsRoot := filepath.Join(dir, "diffs")

	b := New("origin", 1)
	c := commit.New("hello", time.Unix(100, 0))
	require.NoError(t, c.AppendChange(diffengine.NewFileNew("a.txt", []string{"x"}, 1)))
	require.NoError(t, c.Write(commitsRoot, diffsRoot))
	b.AppendCommit(c)

	require.NoError(t, b.Write(refsRoot))

	got, err := Read(refsRoot, commitsRoot, diffsRoot, "origin")
	require.NoError(t, err)
	assert.Equal(t, b.Name, got.Name)
	assert.Equal(t, b.Hash, got.Hash)
	assert.Equal(t, b.Head, got.Head)
	require.Equal(t, 1, got.Commits.Len())
	assert.Equal(t, c.Hash, got.Commits.At(0).Hash)
}

func TestReadMissingBranch(t *testing.T) {
	dir := t.TempDir()
	_, err := Read(filepath.Join(dir, "refs", "heads"), filepath.Join(dir, "commits"), filepath.Join(dir, "diffs"), "nope")
	assert.Error(t, err)
}
