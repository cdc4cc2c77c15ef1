// Package config loads undupe's configuration: embedded defaults,
// overridden by an optional .undupe.toml or .undupe.yaml in the
// working directory, overridden by UNDUPE_* environment variables.
package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/undupe/pkg/errors"
)

//go:embed default.toml
var defaultConfig []byte

// Display holds the table row caps used by the presenters.
type Display struct {
	MaxGroups     int `koanf:"max_groups" toml:"max_groups"`
	MaxOperations int `koanf:"max_operations" toml:"max_operations"`
}

// Config is the resolved undupe configuration.
type Config struct {
	QuarantineDir string  `koanf:"quarantine_dir" toml:"quarantine_dir"`
	Workers       int     `koanf:"workers" toml:"workers"`
	Display       Display `koanf:"display" toml:"display"`
}

// Load resolves configuration for a run rooted at dir (usually the
// working directory). Layering: embedded defaults, then the first of
// .undupe.toml / .undupe.yaml found in dir, then UNDUPE_* environment
// variables (UNDUPE_QUARANTINE_DIR, UNDUPE_WORKERS, ...).
func Load(dir string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load default config")
	}

	candidates := []struct {
		name   string
		parser koanf.Parser
	}{
		{".undupe.toml", toml.Parser()},
		{".undupe.yaml", yaml.Parser()},
	}
	for _, c := range candidates {
		path := filepath.Join(dir, c.name)
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), c.parser); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path)
			}
			break
		}
	}

	if err := k.Load(env.Provider("UNDUPE_", ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, "UNDUPE_"))
		// UNDUPE_DISPLAY_MAX_GROUPS -> display.max_groups
		if rest, ok := strings.CutPrefix(key, "display_"); ok {
			return "display." + rest
		}
		return key
	}), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal config")
	}
	return &cfg, nil
}

// Default returns the embedded default configuration.
func Default() *Config {
	var cfg Config
	k := koanf.New(".")
	// The embedded defaults always parse; a failure here is a build
	// defect, not a runtime condition.
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		panic(err)
	}
	if err := k.Unmarshal("", &cfg); err != nil {
		panic(err)
	}
	return &cfg
}

// DefaultTOML renders the default configuration as TOML, for the
// genconfig command.
func DefaultTOML() (string, error) {
	out, err := gotoml.Marshal(Default())
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to marshal default config")
	}
	return string(out), nil
}

// rawBytesProvider feeds in-memory bytes to koanf.
type rawBytesProvider struct {
	bytes []byte
}

func (r *rawBytesProvider) ReadBytes() ([]byte, error) {
	return r.bytes, nil
}

func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New(errors.ErrInternal, "rawBytesProvider does not support Read")
}
