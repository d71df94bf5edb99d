// Package version provides a Print(name) helper in the same shape as the
// dropped perforce/p4prometheus/version subpackage the teacher used for
// --version output, stamped via -ldflags at build time.
package version

import "fmt"

// Set via -ldflags "-X github.com/seanhobeck/lit/internal/version.Version=...".
var (
	Version   = "dev"
	Revision  = "unknown"
	Branch    = "unknown"
	BuildDate = "unknown"
)

// Print returns a one-line identification string for name, in the
// name-version-(revision)-built-on-date shape prometheus/common/version
// popularized and p4prometheus/version followed.
func Print(name string) string {
	return fmt.Sprintf("%s, version %s (revision %s, branch %s, built %s)", name, Version, Revision, Branch, BuildDate)
}
