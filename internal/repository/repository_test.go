package repository

import (
	"testing"

	"github.com/seanhobeck/lit/internal/branch"
	"github.com/seanhobeck/lit/internal/ioutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCreatesOriginAndTree(t *testing.T) {
	root := t.TempDir()
	r, err := Init(root)
	require.NoError(t, err)

	assert.Equal(t, 1, r.Branches.Len())
	assert.Equal(t, branch.Origin, r.Active().Name)
	assert.False(t, r.Readonly)
	assert.True(t, ioutil.FileExists(IndexPath(root)))
	assert.True(t, ioutil.FileExists(branch.Path(RefsHeadsDir(root), branch.Origin)))
}

func TestInitFailsIfAlreadyExists(t *testing.T) {
	root := t.TempDir()
	_, err := Init(root)
	require.NoError(t, err)

	_, err = Init(root)
	assert.Error(t, err)
}

func TestOpenRoundTrip(t *testing.T) {
	root := t.TempDir()
	r, err := Init(root)
	require.NoError(t, err)

	_, err = r.CreateBranch("feature", branch.Origin)
	require.NoError(t, err)
	require.NoError(t, r.Active().Write(RefsHeadsDir(root)))
	feature, err := r.GetBranch("feature")
	require.NoError(t, err)
	require.NoError(t, feature.Write(RefsHeadsDir(root)))
	require.NoError(t, r.Write())

	got, err := Open(root)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Branches.Len())
	assert.Equal(t, r.Epoch, got.Epoch)
	gotFeature, err := got.GetBranch("feature")
	require.NoError(t, err)
	assert.Equal(t, feature.Hash, gotFeature.Hash)
}

func TestOpenMissingRepository(t *testing.T) {
	root := t.TempDir()
	_, err := Open(root)
	assert.Error(t, err)
}

func TestCreateBranchRejectsCollision(t *testing.T) {
	root := t.TempDir()
	r, err := Init(root)
	require.NoError(t, err)

	_, err = r.CreateBranch(branch.Origin, branch.Origin)
	assert.Error(t, err)
}

func TestDeleteBranchRefusesOrigin(t *testing.T) {
	root := t.TempDir()
	r, err := Init(root)
	require.NoError(t, err)

	err = r.DeleteBranch(RefsHeadsDir(root), branch.Origin)
	assert.Error(t, err)
}

func TestDeleteBranchRemovesAndShiftsActive(t *testing.T) {
	root := t.TempDir()
	r, err := Init(root)
	require.NoError(t, err)

	nb, err := r.CreateBranch("feature", branch.Origin)
	require.NoError(t, err)
	require.NoError(t, nb.Write(RefsHeadsDir(root)))
	r.ActiveIdx = 1

	require.NoError(t, r.DeleteBranch(RefsHeadsDir(root), "feature"))
	assert.Equal(t, 1, r.Branches.Len())
	assert.Equal(t, 0, r.ActiveIdx)
	_, err = r.GetBranch("feature")
	assert.Error(t, err)
}
