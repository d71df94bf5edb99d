// Package ops implements the operation engine: forward/inverse commit
// application, rollback, checkout, and branch switch (spec.md §4.7). New
// code implementing spec.md's algorithms directly; diff-level apply is
// delegated to internal/diffengine (ApplyForward/ApplyInverse), which is
// itself grounded on the teacher's writeBlob/removeBlob file mutators.
package ops

import (
	"github.com/seanhobeck/lit/internal/ancestry"
	"github.com/seanhobeck/lit/internal/branch"
	"github.com/seanhobeck/lit/internal/commit"
	"github.com/seanhobeck/lit/internal/diffengine"
	"github.com/seanhobeck/lit/internal/hashlabel"
	"github.com/seanhobeck/lit/internal/literr"
	"github.com/seanhobeck/lit/internal/repository"
)

const op = "ops"

// Forward applies every change in c's order to the working tree rooted at
// root (spec.md §4.7 "forward(commit)").
func Forward(root string, c *commit.Commit) error {
	for _, d := range c.Changes.Slice() {
		if err := diffengine.ApplyForward(root, d); err != nil {
			return err
		}
	}
	return nil
}

// Inverse applies the inverse of every change in c, in the same stored
// order (spec.md §5: reversing a commit does not reverse iteration order,
// since diff targets are path-disjoint within a well-formed commit).
func Inverse(root string, c *commit.Commit) error {
	for _, d := range c.Changes.Slice() {
		if err := diffengine.ApplyInverse(root, d); err != nil {
			return err
		}
	}
	return nil
}

// Rollback moves b's head backward to targetHash, applying the inverse of
// every commit from the current head down to, but not including, the
// target (spec.md §4.7 "rollback"). Policy (head ordering, readonly recomputation) is
// enforced by the dispatcher, not here.
func Rollback(root string, b *branch.Branch, targetHash hashlabel.Sha1) error {
	targetIdx, ok := ancestry.IndexOf(b, targetHash)
	if !ok {
		return literr.New(op, literr.CommitNotOnBranch, "target commit not found on branch "+b.Name)
	}
	for i := b.Head; i > targetIdx; i-- {
		if err := Inverse(root, b.Commits.At(i)); err != nil {
			return err
		}
	}
	b.Head = targetIdx
	return nil
}

// Checkout moves b's head forward to targetHash, applying forward every
// commit after the current head up to and including the target (spec.md
// §4.7 "checkout").
func Checkout(root string, b *branch.Branch, targetHash hashlabel.Sha1) error {
	targetIdx, ok := ancestry.IndexOf(b, targetHash)
	if !ok {
		return literr.New(op, literr.CommitNotOnBranch, "target commit not found on branch "+b.Name)
	}
	for i := b.Head + 1; i <= targetIdx; i++ {
		if err := Forward(root, b.Commits.At(i)); err != nil {
			return err
		}
	}
	b.Head = targetIdx
	return nil
}

// applyInverseDownTo applies the inverse of every commit in b from fromIdx
// down to (but not including) downToIdxExclusive, in descending order. It
// is the low-level primitive switch uses directly, since switch moves the
// outgoing branch's materialization state independently of b.Head's
// normal rollback/checkout semantics.
func applyInverseDownTo(root string, b *branch.Branch, fromIdx, downToIdxExclusive int) error {
	for i := fromIdx; i > downToIdxExclusive; i-- {
		if err := Inverse(root, b.Commits.At(i)); err != nil {
			return err
		}
	}
	return nil
}

// applyForwardUpTo applies forward every commit in b from (but not
// including) fromIdxExclusive up to toIdx, in ascending order.
func applyForwardUpTo(root string, b *branch.Branch, fromIdxExclusive, toIdx int) error {
	for i := fromIdxExclusive + 1; i <= toIdx; i++ {
		if err := Forward(root, b.Commits.At(i)); err != nil {
			return err
		}
	}
	return nil
}

// Switch moves the repository's active branch to targetName (spec.md
// §4.7 "switch"). If the two branches share no common ancestor, the
// active branch is rolled all the way back — including the inverse of
// its very first commit, emptying the working tree — and the target is
// then rebuilt forward from its own first commit. Otherwise only the
// divergent tail on each side is replayed.
func Switch(root string, repo *repository.Repository, targetName string) error {
	active := repo.Active()
	if active.Name == targetName {
		return nil
	}
	target, err := repo.GetBranch(targetName)
	if err != nil {
		return err
	}

	ancestorActiveIdx, ancestorTargetIdx, ok := ancestry.CommonAncestor(active, target)
	if !ok {
		if err := applyInverseDownTo(root, active, active.Head, -1); err != nil {
			return err
		}
		active.Head = -1
		if err := applyForwardUpTo(root, target, -1, target.Head); err != nil {
			return err
		}
	} else {
		if err := applyInverseDownTo(root, active, active.Head, ancestorActiveIdx); err != nil {
			return err
		}
		active.Head = ancestorActiveIdx
		if err := applyForwardUpTo(root, target, ancestorTargetIdx, target.Head); err != nil {
			return err
		}
	}

	targetIdx := repo.Branches.Find(func(b *branch.Branch) bool { return b.Name == targetName })
	repo.ActiveIdx = targetIdx
	return nil
}
