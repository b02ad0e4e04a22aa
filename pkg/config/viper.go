package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/papercomputeco/parrot/pkg/dotdir"
)

// InitViper creates and returns a configured *viper.Viper.
// It sets defaults from NewDefaultConfig(), reads the config.toml file
// (if found via dotdir resolution), and binds environment variables
// with the PARROT_ prefix.
//
// Config precedence (highest to lowest):
//  1. CLI flags (once bound via BindRegisteredFlags)
//  2. Environment variables (PARROT_SERVER_PORT, PARROT_AUTH_API_KEY, etc.)
//  3. config.toml file values
//  4. Defaults from NewDefaultConfig()
func InitViper(configDir string) (*viper.Viper, error) {
	v := viper.New()

	// 1. Register all defaults from NewDefaultConfig().
	setViperDefaults(v)

	// 2. Config file discovery via dotdir resolution.
	v.SetConfigName("config")
	v.SetConfigType("toml")

	ddm := dotdir.NewManager()
	target, err := ddm.Target(configDir)
	if err != nil {
		return nil, fmt.Errorf("resolving config dir: %w", err)
	}

	if target != "" {
		v.AddConfigPath(target)
	}

	if err := v.ReadInConfig(); err != nil {
		// Config file not found errors are fine, defaults will apply.
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	// 3. Environment variables: PARROT_SERVER_HOST, PARROT_AUTH_API_KEY, etc.
	// Empty env values count as set so PARROT_AUTH_API_KEY="" disables auth.
	v.SetEnvPrefix("PARROT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	return v, nil
}

// setViperDefaults registers defaults from NewDefaultConfig() into viper
// using dotted-key notation. This keeps defaults.go as the single source of truth.
func setViperDefaults(v *viper.Viper) {
	d := NewDefaultConfig()

	v.SetDefault("version", d.Version)

	// Server
	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)

	// Auth
	v.SetDefault("auth.api_key", d.Auth.APIKey)

	// Timing
	v.SetDefault("timing.chat_min_delay_ms", d.Timing.ChatMinDelayMS)
	v.SetDefault("timing.chat_max_delay_ms", d.Timing.ChatMaxDelayMS)
	v.SetDefault("timing.embedding_delay_ms", d.Timing.EmbeddingDelayMS)
	v.SetDefault("timing.chunk_delay_ms", d.Timing.ChunkDelayMS)

	// Stream
	v.SetDefault("stream.mode", d.Stream.Mode)
	v.SetDefault("stream.window", d.Stream.Window)
	v.SetDefault("stream.include_usage", d.Stream.IncludeUsage)

	// Tokens
	v.SetDefault("tokens.estimator", d.Tokens.Estimator)

	// Embedding
	v.SetDefault("embedding.dimensions", d.Embedding.Dimensions)
	v.SetDefault("embedding.deterministic", d.Embedding.Deterministic)

	// Limits
	v.SetDefault("limits.max_messages", d.Limits.MaxMessages)
	v.SetDefault("limits.max_content_chars", d.Limits.MaxContentChars)
	v.SetDefault("limits.max_batch_size", d.Limits.MaxBatchSize)
	v.SetDefault("limits.max_completion_tokens", d.Limits.MaxCompletionTokens)

	// Seed
	v.SetDefault("seed", d.Seed)

	// Models
	v.SetDefault("models", d.Models)
}

// FromViper unmarshals the merged viper state (flags, env, file, defaults)
// into a Config. Because InitViper registers a default for every key, the
// result is always fully populated. An empty string that survives the merge
// (an explicitly empty flag or env value) is preserved, not refilled.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "toml"
	}); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if cfg.Version != 0 && cfg.Version != CurrentV {
		return nil, fmt.Errorf("unsupported config version %d (expected %d)", cfg.Version, CurrentV)
	}

	return cfg, nil
}
