package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/papercomputeco/parrot/pkg/dotdir"
)

const (
	configFile = "config.toml"

	// v0 is the alpha version of the config
	v0 = 0

	// CurrentV is the currently supported version, points to v0
	CurrentV = v0
)

type Configer struct {
	ddm        *dotdir.Manager
	targetPath string
}

func NewConfiger(override string) (*Configer, error) {
	cfger := &Configer{}

	cfger.ddm = dotdir.NewManager()
	target, err := cfger.ddm.Target(override)
	if err != nil {
		return nil, err
	}

	// If no .parrot/ directory was resolved, targetPath stays empty;
	// LoadConfig will return defaults and SaveConfig will error clearly.
	if target == "" {
		return cfger, nil
	}

	path := filepath.Join(target, configFile)
	_, err = os.Stat(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Always set targetPath when the directory exists so SaveConfig
	// can create or overwrite the file.
	cfger.targetPath = path

	return cfger, nil
}

// ValidConfigKeys returns the sorted list of all supported configuration key names.
func ValidConfigKeys() []string {
	keys := make([]string, 0, len(configKeys))
	for k := range configKeys {
		keys = append(keys, k)
	}

	// Return in a stable, logical order matching the TOML section layout.
	ordered := []string{
		"server.host",
		"server.port",
		"auth.api_key",
		"timing.chat_min_delay_ms",
		"timing.chat_max_delay_ms",
		"timing.embedding_delay_ms",
		"timing.chunk_delay_ms",
		"stream.mode",
		"stream.window",
		"stream.include_usage",
		"tokens.estimator",
		"embedding.dimensions",
		"embedding.deterministic",
		"limits.max_messages",
		"limits.max_content_chars",
		"limits.max_batch_size",
		"limits.max_completion_tokens",
		"seed",
	}

	// Sanity: only return keys that actually exist in the map.
	result := make([]string, 0, len(ordered))
	for _, k := range ordered {
		if _, ok := configKeys[k]; ok {
			result = append(result, k)
		}
	}

	// Append any keys in the map that we missed in the ordered list.
	seen := make(map[string]bool, len(result))
	for _, k := range result {
		seen[k] = true
	}
	for _, k := range keys {
		if !seen[k] {
			result = append(result, k)
		}
	}

	return result
}

// IsValidConfigKey returns true if the given key is a supported configuration key.
func IsValidConfigKey(key string) bool {
	_, ok := configKeys[key]
	return ok
}

func (c *Configer) GetTarget() string {
	return c.targetPath
}

// LoadConfig loads the configuration from config.toml in the target .parrot/
// directory. If the file does not exist, returns NewDefaultConfig() so callers
// always receive a fully-populated Config with sane defaults. Fields
// explicitly set in the file override the defaults.
func (c *Configer) LoadConfig() (*Config, error) {
	if c.targetPath == "" {
		return NewDefaultConfig(), nil
	}

	data, err := os.ReadFile(c.targetPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewDefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg, err := ParseConfigTOML(data)
	if err != nil {
		return nil, err
	}

	// Merge in defaults: fill in any zero-value fields from the loaded config
	applyDefaults(cfg)

	return cfg, nil
}

// applyDefaults fills zero-value fields in cfg with values from NewDefaultConfig().
func applyDefaults(cfg *Config) {
	defaults := NewDefaultConfig()

	if cfg.Version == 0 {
		cfg.Version = defaults.Version
	}

	if cfg.Server.Host == "" {
		cfg.Server.Host = defaults.Server.Host
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaults.Server.Port
	}

	if cfg.Auth.APIKey == "" {
		cfg.Auth.APIKey = defaults.Auth.APIKey
	}

	if cfg.Timing.ChatMinDelayMS == 0 {
		cfg.Timing.ChatMinDelayMS = defaults.Timing.ChatMinDelayMS
	}
	if cfg.Timing.ChatMaxDelayMS == 0 {
		cfg.Timing.ChatMaxDelayMS = defaults.Timing.ChatMaxDelayMS
	}
	if cfg.Timing.EmbeddingDelayMS == 0 {
		cfg.Timing.EmbeddingDelayMS = defaults.Timing.EmbeddingDelayMS
	}
	if cfg.Timing.ChunkDelayMS == 0 {
		cfg.Timing.ChunkDelayMS = defaults.Timing.ChunkDelayMS
	}

	if cfg.Stream.Mode == "" {
		cfg.Stream.Mode = defaults.Stream.Mode
	}
	if cfg.Stream.Window == 0 {
		cfg.Stream.Window = defaults.Stream.Window
	}

	if cfg.Tokens.Estimator == "" {
		cfg.Tokens.Estimator = defaults.Tokens.Estimator
	}

	if cfg.Embedding.Dimensions == 0 {
		cfg.Embedding.Dimensions = defaults.Embedding.Dimensions
	}

	if cfg.Limits.MaxMessages == 0 {
		cfg.Limits.MaxMessages = defaults.Limits.MaxMessages
	}
	if cfg.Limits.MaxContentChars == 0 {
		cfg.Limits.MaxContentChars = defaults.Limits.MaxContentChars
	}
	if cfg.Limits.MaxBatchSize == 0 {
		cfg.Limits.MaxBatchSize = defaults.Limits.MaxBatchSize
	}
	if cfg.Limits.MaxCompletionTokens == 0 {
		cfg.Limits.MaxCompletionTokens = defaults.Limits.MaxCompletionTokens
	}

	if len(cfg.Models) == 0 {
		cfg.Models = defaults.Models
	}
}

// SaveConfig persists the configuration to config.toml in the target .parrot/ directory.
func (c *Configer) SaveConfig(cfg *Config) error {
	if cfg == nil {
		return errors.New("cannot save nil config")
	}

	if c.targetPath == "" {
		return errors.New("cannot save empty target path")
	}

	var buf bytes.Buffer
	encoder := toml.NewEncoder(&buf)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(c.targetPath, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// SetConfigValue loads the config, sets the given key to the given value, and saves it.
// Returns an error if the key is not a valid config key.
func (c *Configer) SetConfigValue(key string, value string) error {
	info, ok := configKeys[key]
	if !ok {
		return fmt.Errorf("unknown config key: %q", key)
	}

	cfg, err := c.LoadConfig()
	if err != nil {
		return err
	}

	if err := info.set(cfg, value); err != nil {
		return err
	}

	return c.SaveConfig(cfg)
}

// GetConfigValue loads the config and returns the string representation of the given key.
// Returns an error if the key is not a valid config key.
func (c *Configer) GetConfigValue(key string) (string, error) {
	info, ok := configKeys[key]
	if !ok {
		return "", fmt.Errorf("unknown config key: %q", key)
	}

	cfg, err := c.LoadConfig()
	if err != nil {
		return "", err
	}

	return info.get(cfg), nil
}

// PresetConfig returns a Config for the named timing profile.
// Supported presets: "default", "development", "testing". The development and
// testing profiles shorten the simulated latencies for local iteration and
// test suites respectively.
// Returns an error if the preset name is not recognized.
func PresetConfig(name string) (*Config, error) {
	switch strings.ToLower(name) {
	case "default":
		return NewDefaultConfig(), nil

	case "development":
		cfg := NewDefaultConfig()
		cfg.Timing.ChatMinDelayMS = 100
		cfg.Timing.ChatMaxDelayMS = 500
		cfg.Timing.EmbeddingDelayMS = 50
		return cfg, nil

	case "testing":
		cfg := NewDefaultConfig()
		cfg.Timing.ChatMinDelayMS = 10
		cfg.Timing.ChatMaxDelayMS = 50
		cfg.Timing.EmbeddingDelayMS = 10
		return cfg, nil

	default:
		return nil, fmt.Errorf("unknown preset: %q (available: default, development, testing)", name)
	}
}

// ValidPresetNames returns the list of recognized preset names.
func ValidPresetNames() []string {
	return []string{"default", "development", "testing"}
}

// ParseConfigTOML parses raw TOML bytes into a Config.
// Returns an error if the version field is present and not equal to CurrentV.
func ParseConfigTOML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config TOML: %w", err)
	}

	if cfg.Version != 0 && cfg.Version != CurrentV {
		return nil, fmt.Errorf("unsupported config version %d (expected %d)", cfg.Version, CurrentV)
	}

	return cfg, nil
}

// Validate checks a fully-populated Config (defaults applied) for values the
// server cannot run with. Negative timing values are allowed and behave as
// zero delay.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d (must be 1-65535)", c.Server.Port)
	}

	switch c.Stream.Mode {
	case "character", "word":
	default:
		return fmt.Errorf("invalid stream.mode %q (must be character or word)", c.Stream.Mode)
	}
	if c.Stream.Window < 1 {
		return fmt.Errorf("invalid stream.window %d (must be >= 1)", c.Stream.Window)
	}

	switch c.Tokens.Estimator {
	case "words", "chars", "tiktoken":
	default:
		return fmt.Errorf("invalid tokens.estimator %q (must be words, chars, or tiktoken)", c.Tokens.Estimator)
	}

	if c.Embedding.Dimensions < 1 {
		return fmt.Errorf("invalid embedding.dimensions %d (must be >= 1)", c.Embedding.Dimensions)
	}

	if c.Limits.MaxMessages < 1 {
		return fmt.Errorf("invalid limits.max_messages %d (must be >= 1)", c.Limits.MaxMessages)
	}
	if c.Limits.MaxContentChars < 1 {
		return fmt.Errorf("invalid limits.max_content_chars %d (must be >= 1)", c.Limits.MaxContentChars)
	}
	if c.Limits.MaxBatchSize < 1 {
		return fmt.Errorf("invalid limits.max_batch_size %d (must be >= 1)", c.Limits.MaxBatchSize)
	}
	if c.Limits.MaxCompletionTokens < 1 {
		return fmt.Errorf("invalid limits.max_completion_tokens %d (must be >= 1)", c.Limits.MaxCompletionTokens)
	}

	seen := make(map[string]bool, len(c.Models))
	for _, m := range c.Models {
		if m.ID == "" {
			return errors.New("invalid models entry: id must not be empty")
		}
		if seen[m.ID] {
			return fmt.Errorf("duplicate models entry %q", m.ID)
		}
		seen[m.ID] = true
		if m.Multiplier < 0 {
			return fmt.Errorf("invalid multiplier %v for model %q (must be >= 0)", m.Multiplier, m.ID)
		}
	}

	return nil
}
