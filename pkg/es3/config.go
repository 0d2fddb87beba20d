package es3

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/es3vm/es3vm/internal/compat"
)

// Config is the YAML shape host tooling can use to configure an
// Interpreter declaratively instead of composing Options in Go code —
// e.g. a test harness that wants one checked-in file describing a
// fixture's compatibility flags.
type Config struct {
	Compat             string `yaml:"compat"`
	RecursionBudget    int    `yaml:"recursion_budget"`
	BytecodeVM         bool   `yaml:"bytecode_vm"`
	UnicodeIdentifiers bool   `yaml:"unicode_identifiers"`
	PreserveComments   bool   `yaml:"preserve_comments"`
}

// LoadConfigFile reads and parses a YAML Config file.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("es3: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("es3: parsing %s: %w", path, err)
	}
	return &cfg, nil
}

// Options translates a Config into the equivalent Option slice, for
// New(cfg.Options()...). A malformed compat string is returned as an
// error rather than silently dropped, unlike WithCompatString (which
// is meant for one-off CLI flags where a log line is enough).
func (c *Config) Options() ([]Option, error) {
	opts := []Option{
		WithRecursionBudget(c.RecursionBudget),
		WithBytecodeVM(c.BytecodeVM),
		WithUnicodeIdentifiers(c.UnicodeIdentifiers),
		WithPreserveComments(c.PreserveComments),
	}
	if c.Compat != "" {
		set, err := compat.Parse(nil, c.Compat)
		if err != nil {
			return nil, fmt.Errorf("es3: config compat: %w", err)
		}
		opts = append(opts, WithCompat(set))
	}
	return opts, nil
}
