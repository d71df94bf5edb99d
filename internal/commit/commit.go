// Package commit implements the commit record: an ordered group of diffs
// with an identity (spec.md §3, §4.4). Shape is grounded on the teacher's
// GitCommit struct (ordered file list, mark/id, ref) and on
// journal/journal.go's WriteChange/WriteHeader fixed-field writer idiom,
// generalized from Perforce journal records to lit's own commit header.
package commit

import (
	"fmt"
	"time"

	"github.com/seanhobeck/lit/internal/diffengine"
	"github.com/seanhobeck/lit/internal/hashlabel"
	"github.com/seanhobeck/lit/internal/literr"
	"github.com/seanhobeck/lit/internal/seq"
)

const op = "commit"

// TimeLayout is the human-readable timestamp format persisted alongside the
// raw epoch-seconds value.
const TimeLayout = "2006-01-02 15:04:05"

// Commit is an ordered group of diffs with a content-derived identity.
type Commit struct {
	Message            string
	TimestampFormatted string
	TimestampRaw       int64
	Hash               hashlabel.Sha1
	Changes            seq.Dyna[*diffengine.Diff]

	written bool
}

// New creates a commit with the given message and timestamp. The hash is
// computed immediately from (message, formatted timestamp, change count,
// raw time) with change count 0, per spec.md §4.4 — the changes list is
// empty at creation and populated by the dispatcher before the first Write;
// once Write has run, Changes and Hash are immutable.
func New(message string, at time.Time) *Commit {
	raw := at.Unix()
	formatted := at.UTC().Format(TimeLayout)
	c := &Commit{
		Message:            message,
		TimestampFormatted: formatted,
		TimestampRaw:       raw,
	}
	c.Hash = computeHash(message, formatted, 0, raw)
	return c
}

func computeHash(message, formatted string, count int, raw int64) hashlabel.Sha1 {
	seed := fmt.Sprintf("%s|%s|%d|%d", message, formatted, count, raw)
	return hashlabel.ComputeSha1([]byte(seed))
}

// AppendChange adds d to the commit's change list. It is an error to append
// after the commit has been written.
func (c *Commit) AppendChange(d *diffengine.Diff) error {
	if c.written {
		return literr.New(op, literr.MalformedObject, "cannot append to a written commit")
	}
	c.Changes.Append(d)
	return nil
}

// Path returns the on-disk path of the commit object under commitsRoot:
// <commitsRoot>/<h[0:2]>/<h[2:40]>.
func (c *Commit) Path(commitsRoot string) string {
	hex := c.Hash.Hex()
	return commitsRoot + "/" + hex[0:2] + "/" + hex[2:]
}
