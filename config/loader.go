package config

import (
	"errors"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) at path, or $TARIFF_CONFIG when path is empty
//  3. env (prefix TARIFF_)
func Load(path string) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path == "" {
		path = os.Getenv("TARIFF_CONFIG")
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Environment variables: TARIFF_ADDR, TARIFF_DB_PATH, ...
	// Map env keys like TARIFF_DB_PATH -> db_path (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	// List-valued keys (allowed_origins) are comma-separated.
	envProvider := env.ProviderWithValue("TARIFF_", ".", func(key, value string) (string, interface{}) {
		key = strings.ToLower(key)
		key = strings.TrimPrefix(key, "tariff_")
		if key == "allowed_origins" {
			return key, strings.Split(value, ",")
		}
		return key, value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if cfg.Addr == "" {
		return nil, errors.New("addr must not be empty")
	}
	if cfg.DBPath == "" {
		return nil, errors.New("db_path must not be empty")
	}
	return &cfg, nil
}
