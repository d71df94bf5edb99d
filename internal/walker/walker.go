// Package walker enumerates working-directory inodes for the add/delete
// staging commands, non-recursively (--no-recurse) or recursively (--all).
package walker

import (
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Entry describes one walked inode.
type Entry struct {
	Path    string // path relative to the walk root, slash-separated
	IsDir   bool
	ModTime time.Time
	Size    int64
}

// Walk enumerates root's contents. If recursive is false, only the
// immediate children of root are returned (mirroring --no-recurse); if
// true, the full subtree is returned (mirroring --all). Entries are sorted
// by path for deterministic output.
func Walk(root string, recursive bool) ([]Entry, error) {
	var out []Entry
	if !recursive {
		infos, err := os.ReadDir(root)
		if err != nil {
			return nil, err
		}
		for _, de := range infos {
			info, err := de.Info()
			if err != nil {
				return nil, err
			}
			out = append(out, Entry{
				Path:    de.Name(),
				IsDir:   de.IsDir(),
				ModTime: info.ModTime(),
				Size:    info.Size(),
			})
		}
	} else {
		err := filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if p == root {
				return nil
			}
			rel, relErr := filepath.Rel(root, p)
			if relErr != nil {
				return relErr
			}
			info, infoErr := d.Info()
			if infoErr != nil {
				return infoErr
			}
			out = append(out, Entry{
				Path:    filepath.ToSlash(rel),
				IsDir:   d.IsDir(),
				ModTime: info.ModTime(),
				Size:    info.Size(),
			})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}
