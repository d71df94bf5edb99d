package ops

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/seanhobeck/lit/internal/branch"
	"github.com/seanhobeck/lit/internal/commit"
	"github.com/seanhobeck/lit/internal/diffengine"
	"github.com/seanhobeck/lit/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commitFileNew(t *testing.T, path, content string, at int64) *commit.Commit {
	t.Helper()
	c := commit.New(path, time.Unix(at, 0))
	require.NoError(t, c.AppendChange(diffengine.NewFileNew(path, []string{content}, at)))
	return c
}

func TestForwardInverseRoundTrip(t *testing.T) {
	root := t.TempDir()
	c := commitFileNew(t, "a.txt", "hello", 1)

	require.NoError(t, Forward(root, c))
	data, err := os.ReadFile(filepath.Join(root, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))

	require.NoError(t, Inverse(root, c))
	_, err = os.Stat(filepath.Join(root, "a.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestRollbackAndCheckout(t *testing.T) {
	root := t.TempDir()
	b := branch.New("origin", 1)
	c1 := commitFileNew(t, "a.txt", "v1", 1)
	c2 := commitFileNew(t, "b.txt", "v2", 2)
	b.AppendCommit(c1)
	b.AppendCommit(c2)

	require.NoError(t, Forward(root, c1))
	require.NoError(t, Forward(root, c2))
	assert.Equal(t, 1, b.Head)

	require.NoError(t, Rollback(root, b, c1.Hash))
	assert.Equal(t, 0, b.Head)
	_, err := os.Stat(filepath.Join(root, "b.txt"))
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, Checkout(root, b, c2.Hash))
	assert.Equal(t, 1, b.Head)
	_, err = os.Stat(filepath.Join(root, "b.txt"))
	assert.NoError(t, err)
}

func TestSwitchWithCommonAncestor(t *testing.T) {
	root := t.TempDir()
	repo := &repository.Repository{Root: root}

	base := branch.New("origin", 1)
	base.AppendCommit(commitFileNew(t, "base.txt", "v0", 1))
	require.NoError(t, Forward(root, base.Commits.At(0)))

	feature := branch.CopyFrom("feature", 2, base)
	featureCommit := commitFileNew(t, "feature.txt", "v1", 2)
	feature.AppendCommit(featureCommit)

	repo.Branches.Append(base)
	repo.Branches.Append(feature)
	repo.ActiveIdx = 0

	require.NoError(t, Switch(root, repo, "feature"))
	assert.Equal(t, 1, repo.ActiveIdx)
	_, err := os.Stat(filepath.Join(root, "feature.txt"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(root, "base.txt"))
	assert.NoError(t, err)
}

func TestSwitchWithoutCommonAncestor(t *testing.T) {
	root := t.TempDir()
	repo := &repository.Repository{Root: root}

	b1 := branch.New("b1", 1)
	c1 := commitFileNew(t, "one.txt", "v1", 1)
	b1.AppendCommit(c1)
	require.NoError(t, Forward(root, c1))

	b2 := branch.New("b2", 2)
	c2 := commitFileNew(t, "two.txt", "v2", 2)
	b2.AppendCommit(c2)

	repo.Branches.Append(b1)
	repo.Branches.Append(b2)
	repo.ActiveIdx = 0

	require.NoError(t, Switch(root, repo, "b2"))
	assert.Equal(t, 1, repo.ActiveIdx)
	assert.Equal(t, -1, b1.Head)
	_, err := os.Stat(filepath.Join(root, "one.txt"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(root, "two.txt"))
	assert.NoError(t, err)
}

func TestSwitchSameBranchIsNoop(t *testing.T) {
	root := t.TempDir()
	repo := &repository.Repository{Root: root}
	b := branch.New("origin", 1)
	repo.Branches.Append(b)
	repo.ActiveIdx = 0

	require.NoError(t, Switch(root, repo, "origin"))
	assert.Equal(t, 0, repo.ActiveIdx)
}
