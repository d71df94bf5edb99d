// Package userconfig implements the optional `.litconfig.yaml` CLI
// preferences file: author name, default verbosity, a preferred pager for
// diff/log output, and a default `--max-count` for log. Adapted directly
// from config/config.go's Unmarshal/LoadConfigFile/LoadConfigString/
// validate() split, retargeted from gitp4transfer.yaml's import settings
// onto lit's own user preferences.
package userconfig

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"

	"github.com/seanhobeck/lit/internal/literr"
)

const op = "userconfig"

// DefaultVerbosity is used when the file omits the field.
const DefaultVerbosity = "info"

// DefaultMaxCount is used when the file omits the field.
const DefaultMaxCount = 20

// Config is the set of user-level CLI preferences.
type Config struct {
	Author    string `yaml:"author"`
	Verbosity string `yaml:"verbosity"`
	Pager     string `yaml:"pager"`
	MaxCount  int    `yaml:"max_count"`
}

// Unmarshal parses raw YAML content into a Config, applying defaults and
// validating the verbosity level.
func Unmarshal(content []byte) (*Config, error) {
	cfg := &Config{
		Verbosity: DefaultVerbosity,
		MaxCount:  DefaultMaxCount,
	}
	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, literr.Wrap(op, literr.MalformedObject, "invalid .litconfig.yaml", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile loads Config from filename. A missing file yields the default
// Config, not an error, since `.litconfig.yaml` is optional.
func LoadFile(filename string) (*Config, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{Verbosity: DefaultVerbosity, MaxCount: DefaultMaxCount}, nil
		}
		return nil, literr.Wrap(op, literr.IOFailure, "read .litconfig.yaml", err)
	}
	return Unmarshal(content)
}

func (c *Config) validate() error {
	switch c.Verbosity {
	case "debug", "info", "warning", "error":
	default:
		return literr.New(op, literr.MalformedObject, fmt.Sprintf("unknown verbosity %q", c.Verbosity))
	}
	if c.MaxCount < 0 {
		return literr.New(op, literr.MalformedObject, "max_count must not be negative")
	}
	return nil
}
