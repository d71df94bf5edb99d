package diffengine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/seanhobeck/lit/internal/hashlabel"
	"github.com/seanhobeck/lit/internal/ioutil"
	"github.com/seanhobeck/lit/internal/literr"
)

const op = "diffengine"

// ShardedPath returns the on-disk path for a diff object given the objects
// root, e.g. <root>/diffs/<c2>/<c_rest>.
func ShardedPath(diffsRoot string, crc hashlabel.Crc32) string {
	prefix, rest := crc.ShardPrefix()
	return diffsRoot + "/" + prefix + "/" + rest
}

// Write serializes d to path: a fixed 5-line header (type, stored, new,
// crc32, binary), a blank line, then the tagged lines (folder diffs write
// only the header, as spec.md §4.3 requires).
func Write(path string, d *Diff) error {
	lines := []string{
		fmt.Sprintf("type:%d", int(d.Kind)),
		fmt.Sprintf("stored:%s", d.StoredPath),
		fmt.Sprintf("new:%s", d.NewPath),
		fmt.Sprintf("crc32:%d", uint32(d.Crc)),
		fmt.Sprintf("binary:%d", boolToInt(d.Binary)),
	}
	if !d.Kind.IsFolder() {
		lines = append(lines, "")
		lines = append(lines, d.Lines...)
	}
	if err := ioutil.WriteLines(path, lines); err != nil {
		return literr.Wrap(op, literr.IOFailure, "write diff object", err)
	}
	return nil
}

// Read deserializes a diff object from path.
func Read(path string) (*Diff, error) {
	lines, err := ioutil.ReadLines(path)
	if err != nil {
		return nil, literr.Wrap(op, literr.IOFailure, "read diff object", err)
	}
	if len(lines) < 5 {
		return nil, literr.New(op, literr.MalformedObject, "diff object header too short")
	}
	kindVal, err := parseField(lines[0], "type")
	if err != nil {
		return nil, err
	}
	kindInt, err := strconv.Atoi(kindVal)
	if err != nil {
		return nil, literr.Wrap(op, literr.MalformedObject, "type not an int", err)
	}
	storedVal, err := parseField(lines[1], "stored")
	if err != nil {
		return nil, err
	}
	newVal, err := parseField(lines[2], "new")
	if err != nil {
		return nil, err
	}
	crcVal, err := parseField(lines[3], "crc32")
	if err != nil {
		return nil, err
	}
	crcInt, err := strconv.ParseUint(crcVal, 10, 32)
	if err != nil {
		return nil, literr.Wrap(op, literr.MalformedObject, "crc32 not a uint32", err)
	}
	binVal, err := parseField(lines[4], "binary")
	if err != nil {
		return nil, err
	}

	d := &Diff{
		Kind:       Kind(kindInt),
		StoredPath: storedVal,
		NewPath:    newVal,
		Crc:        hashlabel.Crc32(uint32(crcInt)),
		Binary:     binVal == "1",
	}
	if len(lines) > 5 {
		// lines[5] is the blank separator.
		d.Lines = append([]string{}, lines[6:]...)
	}
	return d, nil
}

func parseField(line, key string) (string, error) {
	prefix := key + ":"
	if !strings.HasPrefix(line, prefix) {
		return "", literr.New(op, literr.MalformedObject, fmt.Sprintf("expected %q field, got %q", key, line))
	}
	return strings.TrimPrefix(line, prefix), nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
