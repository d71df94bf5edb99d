// Package ancestry implements common-ancestor search and rebase conflict
// detection over the linear commit histories a branch keeps (spec.md
// §4.8-4.9). New code: the teacher's domain (Perforce changelist transfer)
// has no equivalent of branch-relative history comparison, so this is
// authored directly from the spec's two-pointer descending-timestamp
// algorithm, in the same small-helper style as internal/diffengine's LCS
// walk.
package ancestry

import (
	"github.com/seanhobeck/lit/internal/branch"
	"github.com/seanhobeck/lit/internal/commit"
	"github.com/seanhobeck/lit/internal/hashlabel"
	"github.com/seanhobeck/lit/internal/literr"
)

const op = "ancestry"

// CommonAncestor walks two descending pointers, one per branch, starting
// at each branch's last commit index. While both are non-negative: if the
// commits at the current positions share a hash, that position pair is
// the ancestor. Otherwise the pointer on the side with the larger raw
// timestamp is decremented (moving backwards in time on the more recent
// side). Returns ok=false if either history is exhausted first.
func CommonAncestor(b1, b2 *branch.Branch) (idx1, idx2 int, ok bool) {
	i := b1.Commits.Len() - 1
	j := b2.Commits.Len() - 1
	for i >= 0 && j >= 0 {
		if b1.Commits.At(i).Hash == b2.Commits.At(j).Hash {
			return i, j, true
		}
		if b1.Commits.At(i).TimestampRaw > b2.Commits.At(j).TimestampRaw {
			i--
		} else {
			j--
		}
	}
	return 0, 0, false
}

// IndexOf performs a linear scan for the commit identified by hash within
// b's commit list.
func IndexOf(b *branch.Branch, hash hashlabel.Sha1) (int, bool) {
	idx := b.Commits.Find(func(c *commit.Commit) bool { return c.Hash == hash })
	if idx < 0 {
		return 0, false
	}
	return idx, true
}

// IsConflicting reports whether c1 and c2 touch the same new_path in any
// of their changes (spec.md §4.9 "is_conflicting").
func IsConflicting(c1, c2 *commit.Commit) bool {
	for _, d1 := range c1.Changes.Slice() {
		for _, d2 := range c2.Changes.Slice() {
			if d1.NewPath == d2.NewPath {
				return true
			}
		}
	}
	return false
}

// Conflict records one colliding commit pair found while checking
// rebase feasibility.
type Conflict struct {
	Index  int
	Source *commit.Commit
	Dest   *commit.Commit
}

// IsRebasePossible locates the common ancestor of dst and src and checks
// every parallel position beyond it for a new_path collision (spec.md
// §4.9 "is_rebase_possible"). Returns every conflicting pair found; a
// non-empty result means rebase is not possible.
func IsRebasePossible(dst, src *branch.Branch) (conflicts []Conflict, ancestorOK bool) {
	ancestorDst, ancestorSrc, ok := CommonAncestor(dst, src)
	if !ok {
		return nil, false
	}

	limit := src.Head
	if dst.Commits.Len()-1 < limit {
		limit = dst.Commits.Len() - 1
	}
	if src.Commits.Len()-1 < limit {
		limit = src.Commits.Len() - 1
	}

	for i := ancestorDst + 1; i <= limit; i++ {
		srcIdx := i
		if srcIdx >= src.Commits.Len() || i >= dst.Commits.Len() {
			break
		}
		if IsConflicting(src.Commits.At(srcIdx), dst.Commits.At(i)) {
			conflicts = append(conflicts, Conflict{Index: i, Source: src.Commits.At(srcIdx), Dest: dst.Commits.At(i)})
		}
	}
	_ = ancestorSrc
	return conflicts, true
}

// Rebase appends every commit from src beyond its common ancestor with dst
// onto dst's history, sharing commit identity rather than duplicating
// objects (spec.md §4.9 "rebase"). The caller must have already confirmed
// feasibility via IsRebasePossible. Returns the number of commits appended.
func Rebase(dst, src *branch.Branch) (appended int, err error) {
	_, ancestorSrc, ok := CommonAncestor(dst, src)
	if !ok {
		return 0, literr.New(op, literr.RebaseConflict, "no common ancestor between branches")
	}
	for i := ancestorSrc + 1; i < src.Commits.Len(); i++ {
		dst.Commits.Append(src.Commits.At(i))
		appended++
	}
	return appended, nil
}
