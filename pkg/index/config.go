// Package index generates a flattened endpoint index from an API
// discovery document.
package index

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/apitools/endpointindex/internal/output"
)

// Default file locations, relative to the repository root. They mirror
// the committed layout: the discovery document is checked in under
// docs/api and the generated index sits next to it.
const (
	DefaultDiscoveryPath = "docs/api/discovery.json"
	DefaultEndpointsPath = "docs/api/endpoints.txt"
)

// Config holds all indexer configuration.
type Config struct {
	// Repository root the relative paths are resolved against
	RootDir string `json:"root_dir" yaml:"root_dir"`

	// Discovery document to read
	DiscoveryPath string `json:"discovery_path" yaml:"discovery_path"`

	// Endpoint index to write
	EndpointsPath string `json:"endpoints_path" yaml:"endpoints_path"`

	// Output format: text or json
	Format string `json:"format" yaml:"format"`

	// Pretty-print JSON output
	Pretty bool `json:"pretty" yaml:"pretty"`

	// Run-history persistence
	State StateConfig `json:"state" yaml:"state"`

	// Verbose logging
	Verbose bool `json:"verbose" yaml:"verbose"`

	// Debug mode
	Debug bool `json:"debug" yaml:"debug"`
}

// StateConfig controls run-history persistence.
type StateConfig struct {
	Enabled  bool   `json:"enabled" yaml:"enabled"`
	FilePath string `json:"file_path" yaml:"file_path"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		RootDir:       ".",
		DiscoveryPath: DefaultDiscoveryPath,
		EndpointsPath: DefaultEndpointsPath,
		Format:        output.FormatText,
		Pretty:        true,
		State: StateConfig{
			Enabled: false,
		},
		Verbose: false,
		Debug:   false,
	}
}

// InputPath returns the discovery document path resolved against the
// root directory. Absolute paths are used as-is.
func (c *Config) InputPath() string {
	return c.resolve(c.DiscoveryPath)
}

// OutputPath returns the endpoint index path resolved against the root
// directory. Absolute paths are used as-is.
func (c *Config) OutputPath() string {
	return c.resolve(c.EndpointsPath)
}

// StatePath returns the run-history database path resolved against the
// root directory.
func (c *Config) StatePath() string {
	return c.resolve(c.State.FilePath)
}

func (c *Config) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.RootDir, path)
}

// LoadFromFile loads configuration from a file (YAML or JSON).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()

	// Try YAML first, then JSON
	if err := yaml.Unmarshal(data, config); err != nil {
		if err := json.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	return config, nil
}

// SaveToFile saves configuration to a file.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".json") {
		data, err = json.MarshalIndent(c, "", "  ")
	} else {
		data, err = yaml.Marshal(c)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.RootDir == "" {
		return fmt.Errorf("root directory is required")
	}

	if c.DiscoveryPath == "" {
		return fmt.Errorf("discovery document path is required")
	}

	if c.EndpointsPath == "" {
		return fmt.Errorf("endpoint index path is required")
	}

	if c.Format != output.FormatText && c.Format != output.FormatJSON {
		return fmt.Errorf("unknown output format %q", c.Format)
	}

	if c.State.Enabled && c.State.FilePath == "" {
		return fmt.Errorf("state file path is required when state is enabled")
	}

	return nil
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	data, _ := json.Marshal(c)
	clone := &Config{}
	json.Unmarshal(data, clone)
	return clone
}
