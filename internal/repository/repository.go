package repository

import (
	"github.com/seanhobeck/lit/internal/branch"
	"github.com/seanhobeck/lit/internal/ioutil"
	"github.com/seanhobeck/lit/internal/literr"
	"github.com/seanhobeck/lit/internal/seq"
)

const op = "repository"

// Repository is the set of branches plus the active-branch pointer and
// readonly flag (spec.md §3).
type Repository struct {
	Root      string
	Branches  seq.Dyna[*branch.Branch]
	ActiveIdx int
	Readonly  bool

	// Epoch is a monotonically increasing counter bumped on every branch
	// creation, used to salt branch SHA-1 labels reproducibly (spec.md §9's
	// correction of the original's stack-address seeding).
	Epoch int64
}

// Active returns the currently active branch.
func (r *Repository) Active() *branch.Branch {
	return r.Branches.At(r.ActiveIdx)
}

// GetBranch performs a linear scan for a branch named name.
func (r *Repository) GetBranch(name string) (*branch.Branch, error) {
	idx := r.Branches.Find(func(b *branch.Branch) bool { return b.Name == name })
	if idx < 0 {
		return nil, literr.New(op, literr.BranchNotFound, "no such branch: "+name)
	}
	return r.Branches.At(idx), nil
}

// RecomputeReadonly sets Readonly per the active branch's head position. An
// empty branch (no commits yet) is never readonly.
func (r *Repository) RecomputeReadonly() {
	b := r.Active()
	if b.Commits.Len() == 0 {
		r.Readonly = false
		return
	}
	r.Readonly = b.Head != b.Commits.Len()-1
}

// Init creates a fresh repository tree under root: `.lit/`, the object
// store directories, the refs directories, and the reserved `origin`
// branch with an empty history (spec.md §4.6 "Initialize"). Fails with
// RepositoryExists if `.lit/` is already present.
func Init(root string) (*Repository, error) {
	if ioutil.IsDir(LitDir(root)) {
		return nil, literr.New(op, literr.RepositoryExists, "repository already initialized at "+root)
	}
	for _, dir := range []string{
		LitDir(root),
		ObjectsDir(root),
		ObjectsCommitsDir(root),
		ObjectsDiffsDir(root),
		ObjectsShelvedDir(root),
		root + "/.lit/refs",
		RefsHeadsDir(root),
		RefsTagsDir(root),
	} {
		if err := ioutil.EnsureDir(dir); err != nil {
			return nil, literr.Wrap(op, literr.IOFailure, "create repository tree", err)
		}
	}

	origin := branch.New(branch.Origin, 0)
	if err := origin.Write(RefsHeadsDir(root)); err != nil {
		return nil, err
	}

	r := &Repository{Root: root, Epoch: 1}
	r.Branches.Append(origin)
	r.ActiveIdx = 0
	r.RecomputeReadonly()

	if err := r.Write(); err != nil {
		return nil, err
	}
	return r, nil
}

// CreateBranch materializes a new branch named name as a copy of the
// branch named sourceName, sharing commit identities (spec.md §4.6
// "Create branch from source"). The caller is responsible for persisting
// the new branch and the repository index.
func (r *Repository) CreateBranch(name, sourceName string) (*branch.Branch, error) {
	if _, err := r.GetBranch(name); err == nil {
		return nil, literr.New(op, literr.BranchAlreadyExists, "branch already exists: "+name)
	}
	src, err := r.GetBranch(sourceName)
	if err != nil {
		return nil, err
	}
	nb := branch.CopyFrom(name, r.Epoch, src)
	r.Epoch++
	r.Branches.Append(nb)
	return nb, nil
}

// DeleteBranch removes the branch named name. Refuses to delete "origin".
// If the deleted branch was active, the caller (dispatcher) is responsible
// for switching back to origin before persisting.
func (r *Repository) DeleteBranch(refsHeadsRoot, name string) error {
	if name == branch.Origin {
		return literr.New(op, literr.BranchProtected, "cannot delete origin")
	}
	idx := r.Branches.Find(func(b *branch.Branch) bool { return b.Name == name })
	if idx < 0 {
		return literr.New(op, literr.BranchNotFound, "no such branch: "+name)
	}
	if err := ioutil.RemoveFile(branch.Path(refsHeadsRoot, name)); err != nil {
		return literr.Wrap(op, literr.IOFailure, "remove branch ref", err)
	}
	r.Branches.RemoveAt(idx)
	if r.ActiveIdx == idx {
		r.ActiveIdx = 0
	} else if r.ActiveIdx > idx {
		r.ActiveIdx--
	}
	return nil
}
