package config

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

// Validation errors surfaced to the caller. These abort a run; everything
// else degrades per-document.
var (
	ErrInvalidTopN       = errors.New("top-N cutoff must be a positive integer")
	ErrInvalidThresholds = errors.New("confidence thresholds must satisfy 0 < accept_floor < h2_threshold < h1_threshold <= 1")
	ErrInvalidWeights    = errors.New("importance weights must be non-negative and sum to 1.0")
)

// Manager handles loading and hot-reloading configuration.
type Manager struct {
	mu        sync.RWMutex
	config    *Config
	callbacks []func(*Config)
}

// NewManager creates a new config manager and loads initial config.
func NewManager(cfgFile string) (*Manager, error) {
	cm := &Manager{
		callbacks: make([]func(*Config), 0),
	}

	if err := cm.initViper(cfgFile); err != nil {
		return nil, err
	}

	cfg, err := cm.load()
	if err != nil {
		return nil, err
	}
	cm.config = cfg

	return cm, nil
}

// initViper sets up viper with defaults and config file.
func (cm *Manager) initViper(cfgFile string) error {
	defaults := DefaultConfig()
	viper.SetDefault("heading", defaults.Heading)
	viper.SetDefault("ranking", defaults.Ranking)
	viper.SetDefault("personas", defaults.Personas)
	viper.SetDefault("pipeline", defaults.Pipeline)

	// Environment variables with DOCSIEVE_ prefix
	viper.SetEnvPrefix("DOCSIEVE")
	viper.AutomaticEnv()

	// Config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.docsieve")
	}

	// Try to read config file (not required)
	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// load parses the current viper state into a Config struct and validates it.
func (cm *Manager) load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Get returns the current configuration (thread-safe).
func (cm *Manager) Get() *Config {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.config
}

// OnChange registers a callback for config changes.
func (cm *Manager) OnChange(fn func(*Config)) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.callbacks = append(cm.callbacks, fn)
}

// WatchConfig enables hot-reloading of configuration.
func (cm *Manager) WatchConfig() {
	viper.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := cm.load()
		if err != nil {
			return
		}

		cm.mu.Lock()
		cm.config = cfg
		callbacks := make([]func(*Config), len(cm.callbacks))
		copy(callbacks, cm.callbacks)
		cm.mu.Unlock()

		for _, fn := range callbacks {
			fn(cfg)
		}
	})
	viper.WatchConfig()
}

// Validate checks configuration-level invariants. A config that fails here
// aborts the run; it is the only class of error that propagates.
func (c *Config) Validate() error {
	h := c.Heading
	if !(h.AcceptFloor > 0 && h.AcceptFloor < h.H2Threshold &&
		h.H2Threshold < h.H1Threshold && h.H1Threshold <= 1.0) {
		return ErrInvalidThresholds
	}

	r := c.Ranking
	if r.TopSections < 1 || r.TopSubsections < 1 {
		return ErrInvalidTopN
	}
	for _, w := range []float64{r.PersonaWeight, r.TaskWeight, r.LengthWeight, r.HeadingWeight} {
		if w < 0 {
			return ErrInvalidWeights
		}
	}
	sum := r.PersonaWeight + r.TaskWeight + r.LengthWeight + r.HeadingWeight
	if sum < 0.999 || sum > 1.001 {
		return ErrInvalidWeights
	}

	return nil
}

// WriteDefault writes the default configuration to the specified path.
func WriteDefault(path string) error {
	cfg := DefaultConfig()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# docsieve configuration
# Heading thresholds and ranking weights are heuristic defaults.
# Personas map role names to relevance keyword vocabularies; add an entry
# here to teach the ranker a new persona.

`)
	return os.WriteFile(path, append(header, data...), 0o644)
}
