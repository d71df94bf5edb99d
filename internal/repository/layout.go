// Package repository implements the repository engine: the on-disk `.lit/`
// tree, the index file, the branch set, the active-branch pointer and the
// readonly flag (spec.md §3, §4.1, §4.6). Grounded on the teacher's
// config/config.go load/parse/validate split, retargeted from a YAML
// transfer-tool config onto lit's own `.lit/index` record.
package repository

// LitDir returns the path of the .lit directory under root.
func LitDir(root string) string {
	return root + "/.lit"
}

// IndexPath returns the path of the repository index file.
func IndexPath(root string) string {
	return LitDir(root) + "/index"
}

// ConfigPath returns the path of the optional key=value config file.
func ConfigPath(root string) string {
	return LitDir(root) + "/config"
}

// RefsHeadsDir returns the directory holding branch ref files.
func RefsHeadsDir(root string) string {
	return LitDir(root) + "/refs/heads"
}

// RefsTagsDir returns the directory holding tag files.
func RefsTagsDir(root string) string {
	return LitDir(root) + "/refs/tags"
}

// ObjectsDir returns the root of the content-addressed object store.
func ObjectsDir(root string) string {
	return LitDir(root) + "/objects"
}

// ObjectsCommitsDir returns the sharded commit object directory.
func ObjectsCommitsDir(root string) string {
	return ObjectsDir(root) + "/commits"
}

// ObjectsDiffsDir returns the sharded diff object directory.
func ObjectsDiffsDir(root string) string {
	return ObjectsDir(root) + "/diffs"
}

// ObjectsShelvedDir returns the per-branch shelved-diff directory root.
func ObjectsShelvedDir(root string) string {
	return ObjectsDir(root) + "/shelved"
}
