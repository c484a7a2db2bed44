// Package config loads pgschema's layered configuration: compiled-in
// defaults, then pgschema.yaml/.yml, then PGSCHEMA_-prefixed environment
// variables, then CLI flags, highest priority last.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const (
	DefaultSchemasRoot = "schemas"
	DefaultOutput      = "text"
)

// Config holds the settings every pgschema subcommand reads.
type Config struct {
	SchemasRoot             string `koanf:"schemas_root"`
	DefaultVersion          string `koanf:"default_version"`
	IgnoreUnknownAttributes bool   `koanf:"ignore_unknown_attributes"`
	IgnoreEmptyAttributes   bool   `koanf:"ignore_empty_attributes"`
	Output                  string `koanf:"output"`
	Verbose                 bool   `koanf:"verbose"`
}

// findConfigFile returns explicit when it is non-empty; otherwise the first
// of pgschema.yaml/pgschema.yml that exists in the current directory, or ""
// if neither does.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"pgschema.yaml", "pgschema.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load builds a Config from defaults, an optional config file, environment
// variables, and any CLI flags that were explicitly set. defaultVersion, if
// non-empty, seeds the default_version key before the file/env/flag layers
// are applied (callers pass schema.DefaultVersion here to avoid this
// package importing pkg/schema just for a string constant).
func Load(cfgFile, defaultVersion string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"schemas_root":              DefaultSchemasRoot,
		"default_version":           defaultVersion,
		"ignore_unknown_attributes": false,
		"ignore_empty_attributes":   false,
		"output":                    DefaultOutput,
		"verbose":                   false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if used := findConfigFile(cfgFile); used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", used, err)
		}
	}

	if err := k.Load(env.Provider("PGSCHEMA_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "PGSCHEMA_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment variables: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}
