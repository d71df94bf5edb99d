package repository

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/seanhobeck/lit/internal/ioutil"
	"github.com/seanhobeck/lit/internal/literr"
)

// RepoConfig is the optional in-repository `.lit/config` file: key=value
// lines, `#` comments, blank lines skipped (spec.md §4.1). Parsed with
// bufio.Scanner the way the teacher line-scans its journal/import input,
// deliberately without a third-party parser — see DESIGN.md's
// justification for this one stdlib-only corner.
type RepoConfig struct {
	Debug bool
}

// LoadConfig reads `.lit/config` under root. A missing file yields the
// zero-value config, not an error.
func LoadConfig(root string) (*RepoConfig, error) {
	cfg := &RepoConfig{}
	path := ConfigPath(root)
	if !ioutil.FileExists(path) {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, literr.Wrap(op, literr.IOFailure, "open repository config", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		val := strings.TrimSpace(parts[1])
		switch key {
		case "debug":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return nil, literr.Wrap(op, literr.MalformedObject, "debug not a bool", err)
			}
			cfg.Debug = b
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, literr.Wrap(op, literr.IOFailure, "scan repository config", err)
	}
	return cfg, nil
}

// Save writes cfg to `.lit/config` under root.
func (cfg *RepoConfig) Save(root string) error {
	lines := []string{
		fmt.Sprintf("debug=%t", cfg.Debug),
	}
	if err := ioutil.WriteLines(ConfigPath(root), lines); err != nil {
		return literr.Wrap(op, literr.IOFailure, "write repository config", err)
	}
	return nil
}
