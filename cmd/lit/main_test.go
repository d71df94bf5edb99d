package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, relPath, content string) {
	t.Helper()
	full := filepath.Join(root, relPath)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func runCLI(t *testing.T, root string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, root, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestResolveAliasSubstitutesShortForm(t *testing.T) {
	assert.Equal(t, []string{"init"}, resolveAlias([]string{"-i"}))
	assert.Equal(t, []string{"--verbose", "commit", "-m", "x"}, resolveAlias([]string{"--verbose", "-c", "-m", "x"}))
	assert.Equal(t, []string{"add-branch", "dev"}, resolveAlias([]string{"-aB", "dev"}))
	assert.Equal(t, []string{"log"}, resolveAlias([]string{"log"}))
}

func TestCLIInitCommitLogRollbackCheckout(t *testing.T) {
	root := t.TempDir()

	code, out, errOut := runCLI(t, root, "init")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "initialized empty repository")

	writeFile(t, root, "a.txt", "hello\n")
	code, _, errOut = runCLI(t, root, "add", "a.txt")
	require.Equal(t, 0, code, errOut)

	code, out, errOut = runCLI(t, root, "commit", "--message", "c1")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "committed")

	code, out, errOut = runCLI(t, root, "log")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "branch origin")
	assert.Contains(t, out, "c1")

	writeFile(t, root, "a.txt", "hello\nworld\n")
	code, _, errOut = runCLI(t, root, "add", "a.txt")
	require.Equal(t, 0, code, errOut)
	code, _, errOut = runCLI(t, root, "commit", "-m", "c2")
	require.Equal(t, 0, code, errOut)

	// find c1's hash from the log output to roll back to it.
	_, out, _ = runCLI(t, root, "log")
	var c1Hash string
	for _, l := range strings.Split(out, "\n") {
		if strings.Contains(l, "c1") {
			c1Hash = strings.Fields(l)[0]
		}
	}
	require.NotEmpty(t, c1Hash)

	code, _, errOut = runCLI(t, root, "rollback", c1Hash)
	assert.Equal(t, 0, code, errOut)

	content, err := os.ReadFile(filepath.Join(root, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(content))

	code, out, errOut = runCLI(t, root, "log")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "readonly=true")

	// c2 is now ahead of head; checkout should move forward again.
	var c2Hash string
	code, out, errOut = runCLI(t, root, "log")
	require.Equal(t, 0, code, errOut)
	for _, l := range strings.Split(out, "\n") {
		if strings.Contains(l, "c2") {
			c2Hash = strings.Fields(l)[0]
		}
	}
	require.NotEmpty(t, c2Hash)
	code, _, errOut = runCLI(t, root, "checkout", c2Hash)
	assert.Equal(t, 0, code, errOut)
	content, err = os.ReadFile(filepath.Join(root, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello\nworld\n", string(content))
}

func TestCLIShortFormAliasesWork(t *testing.T) {
	root := t.TempDir()
	code, _, errOut := runCLI(t, root, "-i")
	require.Equal(t, 0, code, errOut)

	writeFile(t, root, "a.txt", "v1\n")
	code, _, errOut = runCLI(t, root, "-a", "a.txt")
	require.Equal(t, 0, code, errOut)

	code, _, errOut = runCLI(t, root, "-c", "-m", "base")
	require.Equal(t, 0, code, errOut)

	code, out, errOut := runCLI(t, root, "-l")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "base")
}

func TestCLIRejectsUnknownAction(t *testing.T) {
	root := t.TempDir()
	code, _, errOut := runCLI(t, root, "bogus-action")
	assert.NotEqual(t, 0, code)
	assert.NotEmpty(t, errOut)
}

func TestCLIAddTakesPathOrAllOrNoRecurse(t *testing.T) {
	root := t.TempDir()
	code, _, errOut := runCLI(t, root, "init")
	require.Equal(t, 0, code, errOut)

	writeFile(t, root, "dir/one.txt", "1\n")
	writeFile(t, root, "dir/two.txt", "2\n")

	code, _, errOut = runCLI(t, root, "add", "--all", "dir")
	require.Equal(t, 0, code, errOut)

	code, _, errOut = runCLI(t, root, "commit", "-m", "bulk add")
	require.Equal(t, 0, code, errOut)

	code, _, errOut = runCLI(t, root, "add")
	assert.NotEqual(t, 0, code)
	assert.NotEmpty(t, errOut)
}

func TestCLIBranchAddSwitchDelete(t *testing.T) {
	root := t.TempDir()
	_, _, errOut := runCLI(t, root, "init")
	require.Empty(t, errOut)

	writeFile(t, root, "a.txt", "v1\n")
	_, _, errOut = runCLI(t, root, "add", "a.txt")
	require.Empty(t, errOut)
	_, _, errOut = runCLI(t, root, "commit", "-m", "base")
	require.Empty(t, errOut)

	code, _, errOut := runCLI(t, root, "add-branch", "dev")
	require.Equal(t, 0, code, errOut)

	code, _, errOut = runCLI(t, root, "switch-branch", "dev")
	require.Equal(t, 0, code, errOut)

	code, out, errOut := runCLI(t, root, "log")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "branch dev")

	code, _, errOut = runCLI(t, root, "switch-branch", "origin")
	require.Equal(t, 0, code, errOut)

	code, _, errOut = runCLI(t, root, "delete-branch", "dev")
	require.Equal(t, 0, code, errOut)

	code, _, errOut = runCLI(t, root, "delete-branch", "origin")
	assert.NotEqual(t, 0, code)
	assert.NotEmpty(t, errOut)
}

func TestCLIAddTagDeleteTag(t *testing.T) {
	root := t.TempDir()
	_, _, errOut := runCLI(t, root, "init")
	require.Empty(t, errOut)

	writeFile(t, root, "a.txt", "v1\n")
	_, _, errOut = runCLI(t, root, "add", "a.txt")
	require.Empty(t, errOut)
	_, _, errOut = runCLI(t, root, "commit", "-m", "base")
	require.Empty(t, errOut)

	_, out, _ := runCLI(t, root, "log")
	var fullHash string
	for _, l := range strings.Split(out, "\n") {
		if strings.Contains(l, "base") {
			fullHash = strings.Fields(l)[0]
		}
	}
	require.NotEmpty(t, fullHash)

	code, _, errOut := runCLI(t, root, "add-tag", fullHash, "v1.0")
	require.Equal(t, 0, code, errOut)

	code, out, errOut = runCLI(t, root, "log")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "tag v1.0")

	code, _, errOut = runCLI(t, root, "delete-tag", "v1.0")
	require.Equal(t, 0, code, errOut)
}

func TestCLIClearCacheReportsRemovedCount(t *testing.T) {
	root := t.TempDir()
	_, _, errOut := runCLI(t, root, "init")
	require.Empty(t, errOut)

	code, out, errOut := runCLI(t, root, "clear-cache")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "removed")
}
