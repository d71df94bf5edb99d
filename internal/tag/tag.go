// Package tag implements named pointers from a branch to a commit (spec.md
// §3, §4.9's sibling "Tag" component). Ref-file shape mirrors
// internal/branch's fixed-field codec, which in turn follows the teacher's
// journal.go writer idiom.
package tag

import (
	"fmt"
	"strings"

	"github.com/seanhobeck/lit/internal/hashlabel"
	"github.com/seanhobeck/lit/internal/ioutil"
	"github.com/seanhobeck/lit/internal/literr"
)

const op = "tag"

// Tag is a named pointer from a branch to a commit.
type Tag struct {
	Name       string
	BranchHash hashlabel.Sha1
	CommitHash hashlabel.Sha1
}

// New constructs a tag.
func New(name string, branchHash, commitHash hashlabel.Sha1) *Tag {
	return &Tag{Name: name, BranchHash: branchHash, CommitHash: commitHash}
}

// Path returns the ref file path for tag name under refsTagsRoot.
func Path(refsTagsRoot, name string) string {
	return refsTagsRoot + "/" + name
}

// Write persists the tag ref file.
func (t *Tag) Write(refsTagsRoot string) error {
	lines := []string{
		fmt.Sprintf("name:%s", t.Name),
		fmt.Sprintf("branch_hash:%s", t.BranchHash.Hex()),
		fmt.Sprintf("commit_hash:%s", t.CommitHash.Hex()),
	}
	if err := ioutil.WriteLines(Path(refsTagsRoot, t.Name), lines); err != nil {
		return literr.Wrap(op, literr.IOFailure, "write tag ref", err)
	}
	return nil
}

// Read loads the tag named name from refsTagsRoot.
func Read(refsTagsRoot, name string) (*Tag, error) {
	lines, err := ioutil.ReadLines(Path(refsTagsRoot, name))
	if err != nil {
		return nil, literr.Wrap(op, literr.TagNotFound, "read tag ref", err)
	}
	if len(lines) < 3 {
		return nil, literr.New(op, literr.MalformedObject, "tag ref header too short")
	}
	nameVal, err := parseField(lines[0], "name")
	if err != nil {
		return nil, err
	}
	branchHex, err := parseField(lines[1], "branch_hash")
	if err != nil {
		return nil, err
	}
	commitHex, err := parseField(lines[2], "commit_hash")
	if err != nil {
		return nil, err
	}
	branchHash, err := hashlabel.Sha1FromHex(branchHex)
	if err != nil {
		return nil, literr.Wrap(op, literr.MalformedObject, "branch_hash not valid hex", err)
	}
	commitHash, err := hashlabel.Sha1FromHex(commitHex)
	if err != nil {
		return nil, literr.Wrap(op, literr.MalformedObject, "commit_hash not valid hex", err)
	}
	return &Tag{Name: nameVal, BranchHash: branchHash, CommitHash: commitHash}, nil
}

// Delete removes the tag ref file named name.
func Delete(refsTagsRoot, name string) error {
	if err := ioutil.RemoveFile(Path(refsTagsRoot, name)); err != nil {
		return literr.Wrap(op, literr.IOFailure, "remove tag ref", err)
	}
	return nil
}

// List returns every tag under refsTagsRoot, optionally filtered to those
// whose BranchHash equals branchHash (spec.md §3 "Filtering tags by branch
// uses branch_hash equality"). Filtering is applied only when
// filterByBranch is true; otherwise branchHash is ignored.
func List(refsTagsRoot string, branchHash hashlabel.Sha1, filterByBranch bool) ([]*Tag, error) {
	entries, err := ioutil.ReadDirNames(refsTagsRoot)
	if err != nil {
		return nil, literr.Wrap(op, literr.IOFailure, "list tag refs", err)
	}
	var out []*Tag
	for _, name := range entries {
		t, err := Read(refsTagsRoot, name)
		if err != nil {
			return nil, err
		}
		if filterByBranch && t.BranchHash != branchHash {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func parseField(line, key string) (string, error) {
	prefix := key + ":"
	if !strings.HasPrefix(line, prefix) {
		return "", literr.New(op, literr.MalformedObject, fmt.Sprintf("expected %q field, got %q", key, line))
	}
	return strings.TrimPrefix(line, prefix), nil
}
