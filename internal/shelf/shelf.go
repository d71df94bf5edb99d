// Package shelf implements per-branch staged (uncommitted) diffs (spec.md
// §3, §4.10). Grounded on the teacher's blob-staging idiom in main.go
// (writeBlob keyed by content hash, one file per pending change) and on
// node/node.go's non-recursive directory listing for collect_shelved.
package shelf

import (
	"github.com/seanhobeck/lit/internal/diffengine"
	"github.com/seanhobeck/lit/internal/ioutil"
	"github.com/seanhobeck/lit/internal/literr"
)

const op = "shelf"

// Dir returns the shelf directory for a given branch name under
// objectsShelvedRoot (`.lit/objects/shelved/<branch>`).
func Dir(objectsShelvedRoot, branchName string) string {
	return objectsShelvedRoot + "/" + branchName
}

// Path returns the on-disk path of a shelved diff.
func Path(objectsShelvedRoot, branchName string, d *diffengine.Diff) string {
	return Dir(objectsShelvedRoot, branchName) + "/" + d.Crc.Decimal() + ".diff"
}

// WriteToShelved ensures the shelf directory exists and writes d to it
// keyed by its CRC (spec.md §4.10 "write_to_shelved").
func WriteToShelved(objectsShelvedRoot, branchName string, d *diffengine.Diff) error {
	if err := ioutil.EnsureDir(Dir(objectsShelvedRoot, branchName)); err != nil {
		return literr.Wrap(op, literr.IOFailure, "ensure shelf directory", err)
	}
	if err := diffengine.Write(Path(objectsShelvedRoot, branchName, d), d); err != nil {
		return err
	}
	return nil
}

// CollectShelved walks the branch's shelf directory non-recursively,
// returning every staged diff in file-name order (spec.md §4.10
// "collect_shelved").
func CollectShelved(objectsShelvedRoot, branchName string) ([]*diffengine.Diff, error) {
	dir := Dir(objectsShelvedRoot, branchName)
	if !ioutil.IsDir(dir) {
		return nil, nil
	}
	names, err := ioutil.ReadDirNames(dir)
	if err != nil {
		return nil, literr.Wrap(op, literr.IOFailure, "list shelf directory", err)
	}
	out := make([]*diffengine.Diff, 0, len(names))
	for _, name := range names {
		d, err := diffengine.Read(dir + "/" + name)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// RemoveShelved deletes the on-disk shelf entry for d once it has been
// consumed by a successful commit.
func RemoveShelved(objectsShelvedRoot, branchName string, d *diffengine.Diff) error {
	if err := ioutil.RemoveFile(Path(objectsShelvedRoot, branchName, d)); err != nil {
		return literr.Wrap(op, literr.IOFailure, "remove shelved diff", err)
	}
	return nil
}

// Clear removes every shelved diff for branchName, consuming them all
// (used after a successful commit that folds in the full shelf).
func Clear(objectsShelvedRoot, branchName string) error {
	diffs, err := CollectShelved(objectsShelvedRoot, branchName)
	if err != nil {
		return err
	}
	for _, d := range diffs {
		if err := RemoveShelved(objectsShelvedRoot, branchName, d); err != nil {
			return err
		}
	}
	dir := Dir(objectsShelvedRoot, branchName)
	if !ioutil.IsDir(dir) {
		return nil
	}
	_, err = ioutil.RemoveIfEmpty(dir)
	return err
}
