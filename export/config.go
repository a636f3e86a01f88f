// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package export

import (
	"io"
	"runtime"

	"github.com/goccy/go-yaml"

	"github.com/utsuboco/gltfcurve/curve"
)

// Config is the configuration of one export session.
type Config struct {
	// Enabled gates whether any payload is built.
	Enabled bool
	// Policy decides what happens to splines that
	// cannot be encoded.
	Policy curve.Policy
	// Filter is an optional boolean expression that
	// selects the curve nodes to export.
	// It can refer to name, kind and splines.
	Filter string
	// Workers bounds the number of nodes processed
	// concurrently by GatherAll.
	// Zero means runtime.GOMAXPROCS(0).
	Workers int
}

// DefaultConfig returns an enabled, lenient configuration.
func DefaultConfig() Config {
	return Config{Enabled: true, Policy: curve.Lenient}
}

func (c *Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}

type configFile struct {
	Enabled *bool  `yaml:"enabled"`
	Policy  string `yaml:"policy"`
	Filter  string `yaml:"filter"`
	Workers int    `yaml:"workers"`
}

// LoadConfig decodes a YAML configuration from r.
// Fields absent from r keep the values of DefaultConfig.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	b, err := io.ReadAll(r)
	if err != nil {
		return cfg, err
	}
	var f configFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return cfg, newErr("config: " + err.Error())
	}
	if f.Enabled != nil {
		cfg.Enabled = *f.Enabled
	}
	if cfg.Policy, err = curve.ParsePolicy(f.Policy); err != nil {
		return cfg, err
	}
	if f.Workers < 0 {
		return cfg, newErr("config: negative workers")
	}
	cfg.Filter = f.Filter
	cfg.Workers = f.Workers
	return cfg, nil
}
