package cachegc

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/seanhobeck/lit/internal/commit"
	"github.com/seanhobeck/lit/internal/diffengine"
	"github.com/seanhobeck/lit/internal/ioutil"
	"github.com/seanhobeck/lit/internal/repository"
	"github.com/seanhobeck/lit/internal/shelf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepRemovesUnreferencedObjects(t *testing.T) {
	root := t.TempDir()
	repo, err := repository.Init(root)
	require.NoError(t, err)

	live := commit.New("keep", time.Unix(1, 0))
	require.NoError(t, live.AppendChange(diffengine.NewFileNew("a.txt", []string{"x"}, 1)))
	require.NoError(t, live.Write(repository.ObjectsCommitsDir(root), repository.ObjectsDiffsDir(root)))
	repo.Active().AppendCommit(live)
	require.NoError(t, repo.Active().Write(repository.RefsHeadsDir(root)))

	dead := commit.New("orphan", time.Unix(2, 0))
	require.NoError(t, dead.AppendChange(diffengine.NewFileNew("b.txt", []string{"y"}, 2)))
	require.NoError(t, dead.Write(repository.ObjectsCommitsDir(root), repository.ObjectsDiffsDir(root)))

	shelvedDiff := diffengine.NewFileNew("c.txt", []string{"z"}, 3)
	require.NoError(t, shelf.WriteToShelved(repository.ObjectsShelvedDir(root), "origin", shelvedDiff))

	removed, err := Sweep(repo)
	require.NoError(t, err)
	assert.Equal(t, 3, removed) // orphan commit header + its diff + the shelved diff

	assert.True(t, ioutil.FileExists(live.Path(repository.ObjectsCommitsDir(root))))
	assert.False(t, ioutil.FileExists(dead.Path(repository.ObjectsCommitsDir(root))))
}

func TestSweepCollapsesEmptyShards(t *testing.T) {
	root := t.TempDir()
	repo, err := repository.Init(root)
	require.NoError(t, err)

	dead := commit.New("orphan", time.Unix(1, 0))
	require.NoError(t, dead.Write(repository.ObjectsCommitsDir(root), repository.ObjectsDiffsDir(root)))
	shardDir := filepath.Dir(dead.Path(repository.ObjectsCommitsDir(root)))

	_, err = Sweep(repo)
	require.NoError(t, err)
	assert.False(t, ioutil.FileExists(shardDir))
}
