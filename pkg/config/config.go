// Package config defines the bugtap pipeline configuration and its loading
// from JSON or YAML files.
package config

import (
	"fmt"

	"github.com/bugtap/bugtap/pkg/filter"
	"github.com/ohler55/ojg/jp"
)

// Config controls which stages are installed and how they behave.
type Config struct {
	// Timing enables the timing stage (X-Bug-* headers + access records).
	Timing bool `json:"timing" yaml:"timing"`

	// QueryLog enables the per-message dump stage.
	QueryLog bool `json:"queryLog" yaml:"queryLog"`

	// Capture configures the payload capture stage.
	Capture CaptureConfig `json:"capture" yaml:"capture"`

	// Log configures the operational logger.
	Log LogConfig `json:"log" yaml:"log"`

	// Store configures the in-memory capture store.
	Store StoreConfig `json:"store" yaml:"store"`
}

// CaptureConfig controls the payload capture stage.
type CaptureConfig struct {
	// Enabled installs the capture stage.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// MaxBodySize caps decoded payload bytes per message (0 = default).
	MaxBodySize int `json:"maxBodySize,omitempty" yaml:"maxBodySize,omitempty"`

	// Filter is an expression over {method, path, query, status} gating
	// which requests are recorded into the store. Empty records all.
	Filter string `json:"filter,omitempty" yaml:"filter,omitempty"`

	// Extract maps field names to JSONPath expressions evaluated against
	// decoded payloads.
	Extract map[string]string `json:"extract,omitempty" yaml:"extract,omitempty"`
}

// LogConfig controls the operational logger.
type LogConfig struct {
	// Level is the minimum level: debug, info, warn, error.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`

	// Format is text or json.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// StoreConfig controls the capture store.
type StoreConfig struct {
	// Enabled creates an in-memory store and wires it into the capture
	// stage.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// MaxEntries bounds the store (0 = default).
	MaxEntries int `json:"maxEntries,omitempty" yaml:"maxEntries,omitempty"`
}

// Default returns the configuration used when no file is supplied: timing
// and capture on, store on, query dump off.
func Default() *Config {
	return &Config{
		Timing:  true,
		Capture: CaptureConfig{Enabled: true},
		Log:     LogConfig{Level: "info", Format: "text"},
		Store:   StoreConfig{Enabled: true},
	}
}

// Validate checks that the capture filter compiles and every extraction
// path parses.
func (c *Config) Validate() error {
	if _, err := c.Capture.CompileFilter(); err != nil {
		return err
	}
	for key, path := range c.Capture.Extract {
		if _, err := jp.ParseString(path); err != nil {
			return fmt.Errorf("invalid JSONPath for %q: %w", key, err)
		}
	}
	return nil
}

// CompileFilter compiles the capture filter expression. An empty expression
// yields a nil filter, which matches everything.
func (c *CaptureConfig) CompileFilter() (*filter.Filter, error) {
	if c.Filter == "" {
		return nil, nil
	}
	return filter.Compile(c.Filter)
}
