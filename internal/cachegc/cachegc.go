// Package cachegc implements the cache sweeper: liveness analysis over
// `.lit/objects` from branch roots, removing unreferenced commit and diff
// objects (spec.md §4.11). The parallel-removal pool is grounded on the
// teacher's SaveBlob/CreateArchiveFile pond.WorkerPool.Submit idiom
// (main.go), repurposed from parallel blob writes to parallel stat/unlink
// of disjoint, already-identified dead object paths — still a single
// synchronous CLI invocation per spec.md §5, since Sweep blocks on
// pool.StopAndWait() before returning.
package cachegc

import (
	"os"
	"sync"
	"sync/atomic"

	"github.com/alitto/pond"

	"github.com/seanhobeck/lit/internal/branch"
	"github.com/seanhobeck/lit/internal/diffengine"
	"github.com/seanhobeck/lit/internal/ioutil"
	"github.com/seanhobeck/lit/internal/literr"
	"github.com/seanhobeck/lit/internal/repository"
	"github.com/seanhobeck/lit/internal/walker"
)

const op = "cachegc"

// Sweep walks repo's object store, computes the live set from every
// branch's commit list, removes every file outside it, and collapses any
// shard directory left empty. Returns the count of removed files.
func Sweep(repo *repository.Repository) (int, error) {
	objectsRoot := repository.ObjectsDir(repo.Root)
	commitsRoot := repository.ObjectsCommitsDir(repo.Root)
	diffsRoot := repository.ObjectsDiffsDir(repo.Root)

	live := buildLiveSet(repo, commitsRoot, diffsRoot)

	entries, err := walker.Walk(objectsRoot, true)
	if err != nil {
		return 0, literr.Wrap(op, literr.IOFailure, "walk object store", err)
	}

	var removed int64
	var firstErr error
	var mu sync.Mutex

	pool := pond.New(8, 0, pond.MinWorkers(2))
	for _, e := range entries {
		fullPath := objectsRoot + "/" + e.Path
		if e.IsDir || live[fullPath] {
			continue
		}
		path := fullPath
		pool.Submit(func() {
			if err := ioutil.RemoveFile(path); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
			atomic.AddInt64(&removed, 1)
		})
	}
	pool.StopAndWait()
	if firstErr != nil {
		return int(removed), literr.Wrap(op, literr.IOFailure, "remove unreferenced object", firstErr)
	}

	if err := collapseEmptyShards(objectsRoot); err != nil {
		return int(removed), err
	}
	return int(removed), nil
}

func buildLiveSet(repo *repository.Repository, commitsRoot, diffsRoot string) map[string]bool {
	live := make(map[string]bool)
	for _, b := range repo.Branches.Slice() {
		markBranchLive(b, commitsRoot, diffsRoot, live)
	}
	return live
}

func markBranchLive(b *branch.Branch, commitsRoot, diffsRoot string, live map[string]bool) {
	for _, c := range b.Commits.Slice() {
		live[c.Path(commitsRoot)] = true
		for _, d := range c.Changes.Slice() {
			if d.Kind.IsFolder() {
				continue
			}
			live[diffengine.ShardedPath(diffsRoot, d.Crc)] = true
		}
	}
}

// collapseEmptyShards removes any directory under objectsRoot left with no
// entries after the sweep (spec.md §4.11 "remove the parent as well").
func collapseEmptyShards(objectsRoot string) error {
	return walkDirsBottomUp(objectsRoot, func(dir string) error {
		if dir == objectsRoot {
			return nil
		}
		_, err := ioutil.RemoveIfEmpty(dir)
		return err
	})
}

func walkDirsBottomUp(root string, fn func(dir string) error) error {
	entries, err := os.ReadDir(root)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		sub := root + "/" + e.Name()
		if err := walkDirsBottomUp(sub, fn); err != nil {
			return err
		}
	}
	return fn(root)
}
