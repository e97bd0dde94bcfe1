package feed

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"
)

// Config holds presentation-side display options. None of these affect
// store semantics.
type Config struct {
	// MaxActivities caps how many records the feed shows at once
	MaxActivities int `yaml:"maxActivities"`
	// AutoRefresh enables periodic re-pulls of the store
	AutoRefresh bool `yaml:"autoRefresh"`
	// RefreshInterval is the re-pull cadence in milliseconds
	RefreshInterval int `yaml:"refreshInterval"`
	// ShowStats prints aggregate statistics above the feed
	ShowStats bool `yaml:"showStats"`
	// ShowFilters prints the observed filterable values below the feed
	ShowFilters bool `yaml:"showFilters"`
	// Theme selects the rendering style; "plain" disables color output
	Theme string `yaml:"theme"`
}

// DefaultConfig returns the default display options
func DefaultConfig() Config {
	return Config{
		MaxActivities:   50,
		AutoRefresh:     true,
		RefreshInterval: 5000,
		ShowStats:       true,
		ShowFilters:     false,
		Theme:           "dark",
	}
}

// LoadConfig reads display options from a YAML file, applying defaults for
// any omitted field
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, goerr.Wrap(err, "failed to read feed config", goerr.V("path", path))
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, goerr.Wrap(err, "failed to parse feed config", goerr.V("path", path))
	}

	if cfg.MaxActivities <= 0 {
		cfg.MaxActivities = DefaultConfig().MaxActivities
	}
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = DefaultConfig().RefreshInterval
	}
	return cfg, nil
}
