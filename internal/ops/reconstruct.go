package ops

import (
	"github.com/seanhobeck/lit/internal/branch"
	"github.com/seanhobeck/lit/internal/diffengine"
)

// CurrentFileContent replays b's history up to its head, tracking every
// diff that touches relPath as a file, and returns the content the path
// would have in the materialized working tree right now. This lets the
// dispatcher's staging commands determine whether a path is new or
// modified without a second copy of the working tree on disk — the
// branch's own commit history already carries that information.
func CurrentFileContent(b *branch.Branch, relPath string) (content []string, exists bool) {
	for i := 0; i <= b.Head && i < b.Commits.Len(); i++ {
		for _, d := range b.Commits.At(i).Changes.Slice() {
			if d.Kind.IsFolder() {
				continue
			}
			switch d.Kind {
			case diffengine.FileNew:
				if d.NewPath == relPath {
					content, exists = diffengine.ForwardLines(d.Lines), true
				}
			case diffengine.FileDeleted:
				if d.StoredPath == relPath {
					content, exists = nil, false
				}
			case diffengine.FileModified:
				if d.StoredPath == relPath && d.NewPath != relPath {
					content, exists = nil, false
				}
				if d.NewPath == relPath {
					content, exists = diffengine.ForwardLines(d.Lines), true
				}
			}
		}
	}
	return content, exists
}

// CurrentFolderExists reports whether relPath is currently materialized as
// a folder according to b's history up to its head.
func CurrentFolderExists(b *branch.Branch, relPath string) bool {
	exists := false
	for i := 0; i <= b.Head && i < b.Commits.Len(); i++ {
		for _, d := range b.Commits.At(i).Changes.Slice() {
			if !d.Kind.IsFolder() {
				continue
			}
			switch d.Kind {
			case diffengine.FolderNew:
				if d.NewPath == relPath {
					exists = true
				}
			case diffengine.FolderDeleted:
				if d.StoredPath == relPath {
					exists = false
				}
			case diffengine.FolderModified:
				if d.StoredPath == relPath && d.NewPath != relPath {
					exists = false
				}
				if d.NewPath == relPath {
					exists = true
				}
			}
		}
	}
	return exists
}
