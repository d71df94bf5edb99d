package diffengine

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/seanhobeck/lit/internal/ioutil"
	"github.com/seanhobeck/lit/internal/literr"
)

// ApplyForward applies d, in the direction it was captured, to the working
// tree rooted at root (spec.md §4.3's per-kind contracts).
func ApplyForward(root string, d *Diff) error {
	switch d.Kind {
	case FileNew:
		return writeFile(root, d.NewPath, ForwardLines(d.Lines))
	case FileDeleted:
		return removePath(root, d.StoredPath)
	case FileModified:
		if err := writeFile(root, d.NewPath, ForwardLines(d.Lines)); err != nil {
			return err
		}
		if d.NewPath != d.StoredPath {
			return removePath(root, d.StoredPath)
		}
		return nil
	case FolderNew:
		return ioutil.EnsureDir(filepath.Join(root, d.NewPath))
	case FolderDeleted:
		return removePath(root, d.StoredPath)
	case FolderModified:
		return renamePath(root, d.StoredPath, d.NewPath)
	default:
		return literr.New(op, literr.MalformedObject, "unknown diff kind")
	}
}

// ApplyInverse applies d's mathematical inverse to the working tree rooted
// at root.
func ApplyInverse(root string, d *Diff) error {
	switch d.Kind {
	case FileNew:
		return removePath(root, d.NewPath)
	case FileDeleted:
		return writeFile(root, d.StoredPath, InverseLines(d.Lines))
	case FileModified:
		if err := writeFile(root, d.StoredPath, InverseLines(d.Lines)); err != nil {
			return err
		}
		if d.NewPath != d.StoredPath {
			return removePath(root, d.NewPath)
		}
		return nil
	case FolderNew:
		return removePath(root, d.NewPath)
	case FolderDeleted:
		return ioutil.EnsureDir(filepath.Join(root, d.StoredPath))
	case FolderModified:
		return renamePath(root, d.NewPath, d.StoredPath)
	default:
		return literr.New(op, literr.MalformedObject, "unknown diff kind")
	}
}

func writeFile(root, relPath string, lines []string) error {
	full := filepath.Join(root, relPath)
	content := strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}
	if err := ioutil.EnsureParentDir(full); err != nil {
		return literr.Wrap(op, literr.IOFailure, "ensure parent dir", err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		return literr.Wrap(op, literr.IOFailure, "write file", err)
	}
	return nil
}

func removePath(root, relPath string) error {
	full := filepath.Join(root, relPath)
	if err := os.RemoveAll(full); err != nil {
		return literr.Wrap(op, literr.IOFailure, "remove path", err)
	}
	return nil
}

func renamePath(root, from, to string) error {
	fullFrom := filepath.Join(root, from)
	fullTo := filepath.Join(root, to)
	if err := ioutil.EnsureParentDir(fullTo); err != nil {
		return literr.Wrap(op, literr.IOFailure, "ensure parent dir", err)
	}
	if err := os.Rename(fullFrom, fullTo); err != nil {
		return literr.Wrap(op, literr.IOFailure, "rename path", err)
	}
	return nil
}

// ReadWorkingFile reads path (relative to root) and splits it into lines
// without trailing tags, for use building FileNew/FileDeleted/FileModified
// diffs from the working tree.
func ReadWorkingFile(root, relPath string) ([]string, error) {
	full := filepath.Join(root, relPath)
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, literr.Wrap(op, literr.IOFailure, "read working file", err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	text := strings.TrimSuffix(string(data), "\n")
	return strings.Split(text, "\n"), nil
}
