// Package branch implements the branch record: an ordered history of
// commits with a current head (spec.md §3, §4.5). Ref-file read/write
// mirrors the teacher's fixed-field Fprintf writer idiom (journal.go's
// WriteChange/WriteHeader), and branch hash naming follows go-git's
// plumbing/hash conventions (SHA1_Size/SHA1_HexSize-style constants).
package branch

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/seanhobeck/lit/internal/commit"
	"github.com/seanhobeck/lit/internal/hashlabel"
	"github.com/seanhobeck/lit/internal/ioutil"
	"github.com/seanhobeck/lit/internal/literr"
	"github.com/seanhobeck/lit/internal/seq"
)

const op = "branch"

// Origin is the name of the repository's reserved, undeletable branch.
const Origin = "origin"

// Branch is an ordered history of commits with a current head index.
type Branch struct {
	Name    string
	Hash    hashlabel.Sha1
	Commits seq.Dyna[*commit.Commit]
	Head    int // index into Commits; valid once any commit exists
}

// New allocates a branch with an empty commit history. Its hash label is
// derived from name plus salt, a per-repository monotonic counter — not a
// process/stack address (spec.md §9's explicit correction) — so that
// distinct branches created with the same name at different times still
// get distinct labels, reproducibly.
func New(name string, salt int64) *Branch {
	seed := fmt.Sprintf("branch|%s|%d", name, salt)
	return &Branch{
		Name: name,
		Hash: hashlabel.ComputeSha1([]byte(seed)),
		Head: 0,
	}
}

// CopyFrom materializes a new branch named name as a copy of src's commit
// list and head — the commits are shared by hash identity, not duplicated
// in the object store (spec.md §4.6 "Create branch from source").
func CopyFrom(name string, salt int64, src *Branch) *Branch {
	b := New(name, salt)
	b.Commits = *src.Commits.Clone()
	b.Head = src.Head
	return b
}

// AppendCommit pushes c onto the end of the branch's history and advances
// the head to it (spec.md §4.5 "Append commit").
func (b *Branch) AppendCommit(c *commit.Commit) {
	b.Commits.Append(c)
	b.Head = b.Commits.Len() - 1
}

// Path returns the ref file path for branch name under refsHeadsRoot.
func Path(refsHeadsRoot, name string) string {
	return refsHeadsRoot + "/" + name
}

// Write persists the branch ref file.
func (b *Branch) Write(refsHeadsRoot string) error {
	lines := []string{
		fmt.Sprintf("name:%s", b.Name),
		fmt.Sprintf("sha1:%s", b.Hash.Hex()),
		fmt.Sprintf("idx:%d", b.Head),
		fmt.Sprintf("count:%d", b.Commits.Len()),
	}
	for _, c := range b.Commits.Slice() {
		lines = append(lines, c.Hash.Hex())
	}
	if err := ioutil.WriteLines(Path(refsHeadsRoot, b.Name), lines); err != nil {
		return literr.Wrap(op, literr.IOFailure, "write branch ref", err)
	}
	return nil
}

// Read loads the branch named name from refsHeadsRoot, resolving each
// listed commit hash from the shared commit/diff object store.
func Read(refsHeadsRoot, commitsRoot, diffsRoot, name string) (*Branch, error) {
	lines, err := ioutil.ReadLines(Path(refsHeadsRoot, name))
	if err != nil {
		return nil, literr.Wrap(op, literr.BranchNotFound, "read branch ref", err)
	}
	if len(lines) < 4 {
		return nil, literr.New(op, literr.MalformedObject, "branch ref header too short")
	}
	nameVal, err := parseField(lines[0], "name")
	if err != nil {
		return nil, err
	}
	sha1Val, err := parseField(lines[1], "sha1")
	if err != nil {
		return nil, err
	}
	idxVal, err := parseField(lines[2], "idx")
	if err != nil {
		return nil, err
	}
	head, err := strconv.Atoi(idxVal)
	if err != nil {
		return nil, literr.Wrap(op, literr.MalformedObject, "idx not an int", err)
	}
	countVal, err := parseField(lines[3], "count")
	if err != nil {
		return nil, err
	}
	count, err := strconv.Atoi(countVal)
	if err != nil {
		return nil, literr.Wrap(op, literr.MalformedObject, "count not an int", err)
	}
	hash, err := hashlabel.Sha1FromHex(sha1Val)
	if err != nil {
		return nil, literr.Wrap(op, literr.MalformedObject, "sha1 not valid hex", err)
	}
	if len(lines) < 4+count {
		return nil, literr.New(op, literr.MalformedObject, "branch ref missing commit hash lines")
	}

	b := &Branch{Name: nameVal, Hash: hash, Head: head}
	for i := 0; i < count; i++ {
		commitHash, err := hashlabel.Sha1FromHex(lines[4+i])
		if err != nil {
			return nil, literr.Wrap(op, literr.MalformedObject, "commit hash not valid hex", err)
		}
		c, err := commit.Read(commitsRoot, diffsRoot, commitHash)
		if err != nil {
			return nil, literr.Wrap(op, literr.MissingObject, fmt.Sprintf("commit referenced by branch %s", nameVal), err)
		}
		b.Commits.Append(c)
	}
	return b, nil
}

func parseField(line, key string) (string, error) {
	prefix := key + ":"
	if !strings.HasPrefix(line, prefix) {
		return "", literr.New(op, literr.MalformedObject, fmt.Sprintf("expected %q field, got %q", key, line))
	}
	return strings.TrimPrefix(line, prefix), nil
}
