package repository

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/seanhobeck/lit/internal/branch"
	"github.com/seanhobeck/lit/internal/ioutil"
	"github.com/seanhobeck/lit/internal/literr"
)

// Write persists the repository index file (spec.md §4.6):
//
//	active:<idx>
//	count:<N>
//	readonly:<0|1>
//	epoch:<n>
//	<i>:<branch_name>      -- N lines
func (r *Repository) Write() error {
	lines := []string{
		fmt.Sprintf("active:%d", r.ActiveIdx),
		fmt.Sprintf("count:%d", r.Branches.Len()),
		fmt.Sprintf("readonly:%s", boolToFlag(r.Readonly)),
		fmt.Sprintf("epoch:%d", r.Epoch),
	}
	for i, b := range r.Branches.Slice() {
		lines = append(lines, fmt.Sprintf("%d:%s", i, b.Name))
	}
	if err := ioutil.WriteLines(IndexPath(r.Root), lines); err != nil {
		return literr.Wrap(op, literr.IOFailure, "write repository index", err)
	}
	return nil
}

// Open loads the repository rooted at root, resolving every listed branch
// from the refs/heads and object stores. Fails with RepositoryMissing if
// `.lit/` is absent.
func Open(root string) (*Repository, error) {
	if !ioutil.IsDir(LitDir(root)) {
		return nil, literr.New(op, literr.RepositoryMissing, "no repository at "+root)
	}
	lines, err := ioutil.ReadLines(IndexPath(root))
	if err != nil {
		return nil, literr.Wrap(op, literr.IOFailure, "read repository index", err)
	}
	if len(lines) < 4 {
		return nil, literr.New(op, literr.MalformedObject, "repository index header too short")
	}

	activeVal, err := parseField(lines[0], "active")
	if err != nil {
		return nil, err
	}
	active, err := strconv.Atoi(activeVal)
	if err != nil {
		return nil, literr.Wrap(op, literr.MalformedObject, "active not an int", err)
	}
	countVal, err := parseField(lines[1], "count")
	if err != nil {
		return nil, err
	}
	count, err := strconv.Atoi(countVal)
	if err != nil {
		return nil, literr.Wrap(op, literr.MalformedObject, "count not an int", err)
	}
	readonlyVal, err := parseField(lines[2], "readonly")
	if err != nil {
		return nil, err
	}
	epochVal, err := parseField(lines[3], "epoch")
	if err != nil {
		return nil, err
	}
	epoch, err := strconv.ParseInt(epochVal, 10, 64)
	if err != nil {
		return nil, literr.Wrap(op, literr.MalformedObject, "epoch not an int", err)
	}
	if len(lines) < 4+count {
		return nil, literr.New(op, literr.MalformedObject, "repository index missing branch lines")
	}

	r := &Repository{
		Root:      root,
		ActiveIdx: active,
		Readonly:  readonlyVal == "1",
		Epoch:     epoch,
	}
	for i := 0; i < count; i++ {
		_, name, err := parseIndexedField(lines[4+i])
		if err != nil {
			return nil, err
		}
		b, err := branch.Read(RefsHeadsDir(root), ObjectsCommitsDir(root), ObjectsDiffsDir(root), name)
		if err != nil {
			return nil, literr.Wrap(op, literr.MissingObject, "branch referenced by repository index", err)
		}
		r.Branches.Append(b)
	}
	return r, nil
}

func boolToFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func parseField(line, key string) (string, error) {
	prefix := key + ":"
	if !strings.HasPrefix(line, prefix) {
		return "", literr.New(op, literr.MalformedObject, fmt.Sprintf("expected %q field, got %q", key, line))
	}
	return strings.TrimPrefix(line, prefix), nil
}

func parseIndexedField(line string) (int, string, error) {
	parts := strings.SplitN(line, ":", 2)
	if len(parts) != 2 {
		return 0, "", literr.New(op, literr.MalformedObject, "malformed indexed branch line: "+line)
	}
	idx, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, "", literr.Wrap(op, literr.MalformedObject, "branch line index not an int", err)
	}
	return idx, parts[1], nil
}
