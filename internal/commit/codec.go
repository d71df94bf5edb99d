package commit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/seanhobeck/lit/internal/diffengine"
	"github.com/seanhobeck/lit/internal/hashlabel"
	"github.com/seanhobeck/lit/internal/ioutil"
	"github.com/seanhobeck/lit/internal/literr"
)

// Write persists c: each change is written to its canonical CRC-addressed
// path under diffsRoot (skipped if already present), then the commit header
// is written to its own path under commitsRoot. Children (diffs) are
// written before the parent (commit header), per spec.md §5's crash-safety
// ordering.
func (c *Commit) Write(commitsRoot, diffsRoot string) error {
	for _, d := range c.Changes.Slice() {
		path := diffengine.ShardedPath(diffsRoot, d.Crc)
		if ioutil.FileExists(path) {
			continue
		}
		if err := diffengine.Write(path, d); err != nil {
			return err
		}
	}

	lines := []string{
		fmt.Sprintf("message:%s", strconv.Quote(c.Message)),
		fmt.Sprintf("timestamp:%s", c.TimestampFormatted),
		fmt.Sprintf("sha1:%s", c.Hash.Hex()),
		fmt.Sprintf("count:%d", c.Changes.Len()),
		fmt.Sprintf("rawtime:%d", c.TimestampRaw),
	}
	for _, d := range c.Changes.Slice() {
		lines = append(lines, d.Crc.Decimal())
	}
	if err := ioutil.WriteLines(c.Path(commitsRoot), lines); err != nil {
		return literr.Wrap(op, literr.IOFailure, "write commit object", err)
	}
	c.written = true
	return nil
}

// Read loads the commit identified by hash from commitsRoot, resolving each
// referenced diff from diffsRoot. It fails with MissingObject if any
// referenced diff is absent.
func Read(commitsRoot, diffsRoot string, hash hashlabel.Sha1) (*Commit, error) {
	hex := hash.Hex()
	path := commitsRoot + "/" + hex[0:2] + "/" + hex[2:]
	lines, err := ioutil.ReadLines(path)
	if err != nil {
		return nil, literr.Wrap(op, literr.MissingObject, "read commit object", err)
	}
	if len(lines) < 5 {
		return nil, literr.New(op, literr.MalformedObject, "commit object header too short")
	}

	message, err := parseQuoted(lines[0], "message")
	if err != nil {
		return nil, err
	}
	formatted, err := parseField(lines[1], "timestamp")
	if err != nil {
		return nil, err
	}
	sha1Hex, err := parseField(lines[2], "sha1")
	if err != nil {
		return nil, err
	}
	countStr, err := parseField(lines[3], "count")
	if err != nil {
		return nil, err
	}
	count, err := strconv.Atoi(countStr)
	if err != nil {
		return nil, literr.Wrap(op, literr.MalformedObject, "count not an int", err)
	}
	rawStr, err := parseField(lines[4], "rawtime")
	if err != nil {
		return nil, err
	}
	raw, err := strconv.ParseInt(rawStr, 10, 64)
	if err != nil {
		return nil, literr.Wrap(op, literr.MalformedObject, "rawtime not an int", err)
	}

	parsedHash, err := hashlabel.Sha1FromHex(sha1Hex)
	if err != nil {
		return nil, literr.Wrap(op, literr.MalformedObject, "sha1 not valid hex", err)
	}

	c := &Commit{
		Message:            message,
		TimestampFormatted: formatted,
		TimestampRaw:       raw,
		Hash:               parsedHash,
		written:            true,
	}

	if len(lines) < 5+count {
		return nil, literr.New(op, literr.MalformedObject, "commit object missing crc lines")
	}
	for i := 0; i < count; i++ {
		crcLine := lines[5+i]
		crcVal, err := strconv.ParseUint(crcLine, 10, 32)
		if err != nil {
			return nil, literr.Wrap(op, literr.MalformedObject, "crc line not a uint32", err)
		}
		crc := hashlabel.Crc32(uint32(crcVal))
		diffPath := diffengine.ShardedPath(diffsRoot, crc)
		d, err := diffengine.Read(diffPath)
		if err != nil {
			return nil, literr.Wrap(op, literr.MissingObject, fmt.Sprintf("diff %s referenced by commit %s", crc.Decimal(), hex), err)
		}
		c.Changes.Append(d)
	}
	return c, nil
}

func parseField(line, key string) (string, error) {
	prefix := key + ":"
	if !strings.HasPrefix(line, prefix) {
		return "", literr.New(op, literr.MalformedObject, fmt.Sprintf("expected %q field, got %q", key, line))
	}
	return strings.TrimPrefix(line, prefix), nil
}

func parseQuoted(line, key string) (string, error) {
	raw, err := parseField(line, key)
	if err != nil {
		return "", err
	}
	unquoted, err := strconv.Unquote(raw)
	if err != nil {
		return "", literr.Wrap(op, literr.MalformedObject, "message not a valid quoted string", err)
	}
	return unquoted, nil
}
