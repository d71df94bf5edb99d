package diffengine

import "github.com/h2non/filetype"

// sniffLen is the number of leading bytes inspected, matching h2non/filetype's
// own recommended header size.
const sniffLen = 512

// SniffBinary reports whether content looks like a non-text format that
// should be snapshotted rather than line-diffed. Grounded on main.go's
// BlobFileMatcher path, which runs the same filetype.Is* checks on the
// first bytes of a blob before deciding how to journal it.
func SniffBinary(content []byte) bool {
	head := content
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	if len(head) == 0 {
		return false
	}
	if filetype.IsImage(head) || filetype.IsVideo(head) || filetype.IsArchive(head) ||
		filetype.IsAudio(head) || filetype.IsDocument(head) {
		return true
	}
	// A NUL byte in the head is a reliable enough text/binary signal for
	// content filetype doesn't recognize by magic number.
	for _, b := range head {
		if b == 0 {
			return true
		}
	}
	return false
}
