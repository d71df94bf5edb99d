// Package dispatcher maps a parsed CLI command onto the engine packages,
// enforcing the policy contracts spec.md §4.7 and §6 hang on top of the
// mechanical operations: the readonly/rollback-direction/origin-protection/
// rebase-conflict checks an operation must pass before the lower-level
// packages (ops, ancestry, repository) are allowed to touch disk. Grounded
// on the teacher's main.go command functions (cmdClone/cmdSync et al.),
// which do the same thing for Perforce changelist transfer: validate flags
// and state, then call into journal/node, never the reverse.
package dispatcher

import (
	"time"

	"github.com/seanhobeck/lit/internal/ancestry"
	"github.com/seanhobeck/lit/internal/branch"
	"github.com/seanhobeck/lit/internal/cachegc"
	"github.com/seanhobeck/lit/internal/commit"
	"github.com/seanhobeck/lit/internal/hashlabel"
	"github.com/seanhobeck/lit/internal/literr"
	"github.com/seanhobeck/lit/internal/ops"
	"github.com/seanhobeck/lit/internal/repository"
	"github.com/seanhobeck/lit/internal/session"
	"github.com/seanhobeck/lit/internal/shelf"
	"github.com/seanhobeck/lit/internal/tag"
)

const op = "dispatcher"

func requireWritable(s *session.Session) error {
	if s.Repo.Readonly {
		return literr.New(op, literr.ReadonlyViolation, "active branch is readonly; rollback or switch first")
	}
	return nil
}

// Init creates a brand-new repository at root (spec.md §4.6 "Initialize").
func Init(root, userConfigPath string) (*session.Session, error) {
	return session.Init(root, userConfigPath)
}

// Commit folds every shelved diff on the active branch into a new commit,
// appends it to the branch's history, clears the shelf, and persists
// everything touched (spec.md §4.4, §4.10).
func Commit(s *session.Session, message string) (*commit.Commit, error) {
	if err := requireWritable(s); err != nil {
		return nil, err
	}
	active := s.Repo.Active()
	shelved, err := shelf.CollectShelved(repository.ObjectsShelvedDir(s.Root), active.Name)
	if err != nil {
		return nil, err
	}
	if len(shelved) == 0 {
		return nil, literr.New(op, literr.MissingArgument, "nothing shelved to commit")
	}

	c := commit.New(message, time.Now())
	for _, d := range shelved {
		if err := c.AppendChange(d); err != nil {
			return nil, err
		}
	}
	if err := c.Write(repository.ObjectsCommitsDir(s.Root), repository.ObjectsDiffsDir(s.Root)); err != nil {
		return nil, err
	}
	active.AppendCommit(c)
	if err := active.Write(repository.RefsHeadsDir(s.Root)); err != nil {
		return nil, err
	}
	if err := shelf.Clear(repository.ObjectsShelvedDir(s.Root), active.Name); err != nil {
		return nil, err
	}
	s.Repo.RecomputeReadonly()
	if err := s.Persist(); err != nil {
		return nil, err
	}
	return c, nil
}

// Rollback moves the active branch's head to an earlier commit, refusing
// to move forward (spec.md §4.7 "rollback" is strictly backward; forward
// moves are "checkout").
func Rollback(s *session.Session, targetHash hashlabel.Sha1) error {
	active := s.Repo.Active()
	targetIdx, ok := ancestry.IndexOf(active, targetHash)
	if !ok {
		return literr.New(op, literr.CommitNotOnBranch, "target commit not found on active branch")
	}
	if targetIdx >= active.Head {
		return literr.New(op, literr.InvalidMove, "rollback target is not strictly behind the current head")
	}
	if err := ops.Rollback(s.Root, active, targetHash); err != nil {
		return err
	}
	return persistActive(s)
}

// Checkout moves the active branch's head to a later commit, refusing to
// move backward.
func Checkout(s *session.Session, targetHash hashlabel.Sha1) error {
	active := s.Repo.Active()
	targetIdx, ok := ancestry.IndexOf(active, targetHash)
	if !ok {
		return literr.New(op, literr.CommitNotOnBranch, "target commit not found on active branch")
	}
	if targetIdx <= active.Head {
		return literr.New(op, literr.InvalidMove, "checkout target is not strictly ahead of the current head")
	}
	if err := ops.Checkout(s.Root, active, targetHash); err != nil {
		return err
	}
	return persistActive(s)
}

// SwitchBranch moves the active branch pointer to name, replaying the
// working tree through the common ancestor (spec.md §4.7 "switch").
func SwitchBranch(s *session.Session, name string) error {
	outgoing := s.Repo.Active()
	if err := ops.Switch(s.Root, s.Repo, name); err != nil {
		return err
	}
	if outgoing.Name != name {
		if err := outgoing.Write(repository.RefsHeadsDir(s.Root)); err != nil {
			return err
		}
	}
	return persistActive(s)
}

// AddBranch creates a new branch named name as a copy of from (the active
// branch if from is empty).
func AddBranch(s *session.Session, name, from string) (*branch.Branch, error) {
	source := from
	if source == "" {
		source = s.Repo.Active().Name
	}
	nb, err := s.Repo.CreateBranch(name, source)
	if err != nil {
		return nil, err
	}
	if err := nb.Write(repository.RefsHeadsDir(s.Root)); err != nil {
		return nil, err
	}
	if err := s.Persist(); err != nil {
		return nil, err
	}
	return nb, nil
}

// DeleteBranch removes a branch, switching back to origin first if it was
// the active branch (spec.md §4.6 "Delete branch").
func DeleteBranch(s *session.Session, name string) error {
	if s.Repo.Active().Name == name {
		if err := SwitchBranch(s, branch.Origin); err != nil {
			return err
		}
	}
	if err := s.Repo.DeleteBranch(repository.RefsHeadsDir(s.Root), name); err != nil {
		return err
	}
	return s.Persist()
}

// RebaseBranch replays src's divergent commits onto dst (spec.md §4.9).
// If dst is the active branch, the working tree is checked out to the
// newly appended tail; otherwise only dst's stored head index advances.
func RebaseBranch(s *session.Session, dstName, srcName string) error {
	dst, err := s.Repo.GetBranch(dstName)
	if err != nil {
		return err
	}
	src, err := s.Repo.GetBranch(srcName)
	if err != nil {
		return err
	}
	conflicts, ancestorOK := ancestry.IsRebasePossible(dst, src)
	if !ancestorOK {
		return literr.New(op, literr.RebaseConflict, "no common ancestor between "+dstName+" and "+srcName)
	}
	if len(conflicts) > 0 {
		return literr.New(op, literr.RebaseConflict, "rebase would collide on a shared path")
	}

	prevLen := dst.Commits.Len()
	appended, err := ancestry.Rebase(dst, src)
	if err != nil {
		return err
	}

	if s.Repo.Active().Name == dstName {
		newTail := dst.Commits.At(prevLen + appended - 1)
		if err := ops.Checkout(s.Root, dst, newTail.Hash); err != nil {
			return err
		}
	} else {
		dst.Head += appended
	}

	if err := dst.Write(repository.RefsHeadsDir(s.Root)); err != nil {
		return err
	}
	s.Repo.RecomputeReadonly()
	return s.Persist()
}

// ClearCache sweeps `.lit/objects` for commit/diff objects unreachable
// from any branch's history and removes them (spec.md §4.11).
func ClearCache(s *session.Session) (int, error) {
	return cachegc.Sweep(s.Repo)
}

// AddTag creates a tag named name pointing at hash on the active branch.
func AddTag(s *session.Session, hash hashlabel.Sha1, name string) error {
	active := s.Repo.Active()
	if _, ok := ancestry.IndexOf(active, hash); !ok {
		return literr.New(op, literr.CommitNotOnBranch, "tagged commit not found on active branch")
	}
	if _, err := tag.Read(repository.RefsTagsDir(s.Root), name); err == nil {
		return literr.New(op, literr.TagAlreadyExists, "tag already exists: "+name)
	}
	t := tag.New(name, active.Hash, hash)
	return t.Write(repository.RefsTagsDir(s.Root))
}

// DeleteTag removes the tag named name.
func DeleteTag(s *session.Session, name string) error {
	if _, err := tag.Read(repository.RefsTagsDir(s.Root), name); err != nil {
		return err
	}
	return tag.Delete(repository.RefsTagsDir(s.Root), name)
}

// LogView is the data the CLI's `log` command renders (spec.md §6 "log").
type LogView struct {
	Branch       string
	Readonly     bool
	ShelvedCount int
	Commits      []*commit.Commit
	Tags         []*tag.Tag
}

// Log gathers the active branch's history, shelved count, and tags.
func Log(s *session.Session) (*LogView, error) {
	active := s.Repo.Active()
	shelved, err := shelf.CollectShelved(repository.ObjectsShelvedDir(s.Root), active.Name)
	if err != nil {
		return nil, err
	}
	tags, err := tag.List(repository.RefsTagsDir(s.Root), active.Hash, true)
	if err != nil {
		return nil, err
	}
	return &LogView{
		Branch:       active.Name,
		Readonly:     s.Repo.Readonly,
		ShelvedCount: len(shelved),
		Commits:      active.Commits.Slice(),
		Tags:         tags,
	}, nil
}

func persistActive(s *session.Session) error {
	if err := s.Repo.Active().Write(repository.RefsHeadsDir(s.Root)); err != nil {
		return err
	}
	s.Repo.RecomputeReadonly()
	return s.Persist()
}
