package dispatcher

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/seanhobeck/lit/internal/branch"
	"github.com/seanhobeck/lit/internal/diffengine"
	"github.com/seanhobeck/lit/internal/literr"
	"github.com/seanhobeck/lit/internal/ops"
	"github.com/seanhobeck/lit/internal/repository"
	"github.com/seanhobeck/lit/internal/session"
	"github.com/seanhobeck/lit/internal/shelf"
	"github.com/seanhobeck/lit/internal/walker"
)

// stage shelves d for the active branch, subject to the same readonly
// check every write operation enforces.
func stage(s *session.Session, d *diffengine.Diff) error {
	if err := requireWritable(s); err != nil {
		return err
	}
	return shelf.WriteToShelved(repository.ObjectsShelvedDir(s.Root), s.Repo.Active().Name, d)
}

// AddFile stages relPath as a FileNew or FileModified diff, determined by
// replaying the active branch's history up to its head rather than
// keeping a second copy of the working tree on disk: lit has no
// git-style index, so "what changed" is answered by comparing the
// working file against the content its own commit history says is
// materialized there now (internal/ops.CurrentFileContent).
func AddFile(s *session.Session, relPath string) error {
	if err := requireWritable(s); err != nil {
		return err
	}
	active := s.Repo.Active()
	rawContent, err := os.ReadFile(filepath.Join(s.Root, relPath))
	if err != nil {
		return literr.Wrap(op, literr.IOFailure, "read working file", err)
	}
	newContent, err := diffengine.ReadWorkingFile(s.Root, relPath)
	if err != nil {
		return err
	}

	oldContent, existed := ops.CurrentFileContent(active, relPath)
	now := time.Now().Unix()

	var d *diffengine.Diff
	if !existed {
		d = diffengine.NewFileNew(relPath, newContent, now)
	} else {
		d = diffengine.NewFileModified(relPath, relPath, oldContent, newContent, now, diffengine.SniffBinary(rawContent))
	}
	return stage(s, d)
}

// AddFolder stages relPath as a FolderNew diff if it is not already
// materialized according to the active branch's history.
func AddFolder(s *session.Session, relPath string) error {
	active := s.Repo.Active()
	if ops.CurrentFolderExists(active, relPath) {
		return nil
	}
	return stage(s, diffengine.NewFolderNew(relPath, time.Now().Unix()))
}

// DeleteFile stages relPath as a FileDeleted diff, reconstructing the
// content being removed from the active branch's history (the file may
// already be gone from the working tree by the time this runs).
func DeleteFile(s *session.Session, relPath string) error {
	active := s.Repo.Active()
	oldContent, existed := ops.CurrentFileContent(active, relPath)
	if !existed {
		return literr.New(op, literr.MissingArgument, "path is not tracked on the active branch: "+relPath)
	}
	return stage(s, diffengine.NewFileDeleted(relPath, oldContent, time.Now().Unix()))
}

// DeleteFolder stages relPath as a FolderDeleted diff.
func DeleteFolder(s *session.Session, relPath string) error {
	active := s.Repo.Active()
	if !ops.CurrentFolderExists(active, relPath) {
		return literr.New(op, literr.MissingArgument, "folder is not tracked on the active branch: "+relPath)
	}
	return stage(s, diffengine.NewFolderDeleted(relPath, time.Now().Unix()))
}

// AddPath stages path, a trailing slash marking a folder (spec.md §6's
// add command). A folder path stages itself and, when recursive is true,
// every file found beneath it in the working tree.
func AddPath(s *session.Session, path string, recursive bool) error {
	trimmed := strings.TrimSuffix(path, "/")
	if !strings.HasSuffix(path, "/") {
		return AddFile(s, trimmed)
	}
	if err := AddFolder(s, trimmed); err != nil {
		return err
	}
	if !recursive {
		return nil
	}
	entries, err := walker.Walk(filepath.Join(s.Root, trimmed), true)
	if err != nil {
		return literr.Wrap(op, literr.IOFailure, "walk folder for add", err)
	}
	for _, e := range entries {
		rel := filepath.ToSlash(filepath.Join(trimmed, e.Path))
		if e.IsDir {
			if err := AddFolder(s, rel); err != nil {
				return err
			}
			continue
		}
		if err := AddFile(s, rel); err != nil {
			return err
		}
	}
	return nil
}

// DeletePath stages path for removal, symmetric with AddPath: a trailing
// slash marks a folder, and recursive additionally stages every inode the
// active branch's history still shows beneath it.
func DeletePath(s *session.Session, path string, recursive bool) error {
	trimmed := strings.TrimSuffix(path, "/")
	if !strings.HasSuffix(path, "/") {
		return DeleteFile(s, trimmed)
	}
	if !recursive {
		return DeleteFolder(s, trimmed)
	}
	active := s.Repo.Active()
	for _, relPath := range trackedPathsBeneath(active, trimmed) {
		if _, existed := ops.CurrentFileContent(active, relPath); existed {
			if err := DeleteFile(s, relPath); err != nil {
				return err
			}
		}
	}
	return DeleteFolder(s, trimmed)
}

// trackedPathsBeneath scans the active branch's history up to its head
// for every distinct file path ever recorded under prefix, used by a
// recursive delete to find what to stage without a working-tree walk (the
// folder may already be gone from disk by the time this runs).
func trackedPathsBeneath(b *branch.Branch, prefix string) []string {
	seen := make(map[string]bool)
	var out []string
	walkPath := func(p string) {
		if p == prefix || !strings.HasPrefix(p, prefix+"/") {
			return
		}
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	for i := 0; i <= b.Head && i < b.Commits.Len(); i++ {
		for _, d := range b.Commits.At(i).Changes.Slice() {
			if d.Kind.IsFolder() {
				continue
			}
			walkPath(d.StoredPath)
			walkPath(d.NewPath)
		}
	}
	return out
}
