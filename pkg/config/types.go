package config

import (
	"fmt"
	"strconv"
)

// Config represents the persistent parrot configuration stored as config.toml
// in the .parrot/ directory. The TOML layout uses sections for logical grouping.
// A Config is immutable once a server has been built from it.
type Config struct {
	Version int   `toml:"version"`
	Seed    int64 `toml:"seed,omitempty"`

	Server    ServerConfig    `toml:"server"`
	Auth      AuthConfig      `toml:"auth"`
	Timing    TimingConfig    `toml:"timing"`
	Stream    StreamConfig    `toml:"stream"`
	Tokens    TokensConfig    `toml:"tokens"`
	Embedding EmbeddingConfig `toml:"embedding"`
	Limits    LimitsConfig    `toml:"limits"`

	// Models is the served catalog. Listing order is preserved on /v1/models.
	Models []ModelEntry `toml:"models,omitempty"`

	// Replies and Triggers override the built-in reply pools and keyword
	// lists per category. Absent categories keep their defaults.
	Replies  map[string][]string `toml:"replies,omitempty"`
	Triggers map[string][]string `toml:"triggers,omitempty"`
}

// ServerConfig holds listen settings.
type ServerConfig struct {
	Host string `toml:"host,omitempty"`
	Port int    `toml:"port,omitempty"`
}

// AuthConfig holds the bearer key clients must present on /v1 routes.
// An empty key at serve time disables the check; note that an empty value in
// the file is filled from defaults, so disabling requires --api-key "" or
// PARROT_AUTH_API_KEY="".
type AuthConfig struct {
	APIKey string `toml:"api_key,omitempty"`
}

// TimingConfig holds simulated latencies in milliseconds.
type TimingConfig struct {
	ChatMinDelayMS   int64 `toml:"chat_min_delay_ms,omitempty"`
	ChatMaxDelayMS   int64 `toml:"chat_max_delay_ms,omitempty"`
	EmbeddingDelayMS int64 `toml:"embedding_delay_ms,omitempty"`
	ChunkDelayMS     int64 `toml:"chunk_delay_ms,omitempty"`
}

// StreamConfig holds SSE fragmentation settings.
type StreamConfig struct {
	Mode         string `toml:"mode,omitempty"`
	Window       int    `toml:"window,omitempty"`
	IncludeUsage bool   `toml:"include_usage,omitempty"`
}

// TokensConfig selects the token counting heuristic.
type TokensConfig struct {
	Estimator string `toml:"estimator,omitempty"`
}

// EmbeddingConfig holds fake vector settings.
type EmbeddingConfig struct {
	Dimensions    int  `toml:"dimensions,omitempty"`
	Deterministic bool `toml:"deterministic,omitempty"`
}

// LimitsConfig holds request validation limits.
type LimitsConfig struct {
	MaxMessages         int `toml:"max_messages,omitempty"`
	MaxContentChars     int `toml:"max_content_chars,omitempty"`
	MaxBatchSize        int `toml:"max_batch_size,omitempty"`
	MaxCompletionTokens int `toml:"max_completion_tokens,omitempty"`
}

// ModelEntry is one catalog entry: the wire fields served on /v1/models plus
// the latency multiplier applied to chat completion delays.
type ModelEntry struct {
	ID         string  `toml:"id"`
	Created    int64   `toml:"created,omitempty"`
	OwnedBy    string  `toml:"owned_by,omitempty"`
	Multiplier float64 `toml:"multiplier,omitempty"`
}

// Model returns the catalog entry for id.
func (c *Config) Model(id string) (ModelEntry, bool) {
	for _, m := range c.Models {
		if m.ID == id {
			return m, true
		}
	}
	return ModelEntry{}, false
}

// Multipliers returns the per-model latency multiplier map from the catalog.
// Entries with a zero multiplier are omitted so they fall back to 1.0.
func (c *Config) Multipliers() map[string]float64 {
	out := make(map[string]float64, len(c.Models))
	for _, m := range c.Models {
		if m.Multiplier > 0 {
			out[m.ID] = m.Multiplier
		}
	}
	return out
}

// Addr returns the host:port listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure. The catalog
// and the reply/trigger overrides are structured values edited in the file
// directly, so they have no entries here.
var configKeys = map[string]configKeyInfo{
	"server.host": {
		get: func(c *Config) string { return c.Server.Host },
		set: func(c *Config, v string) error { c.Server.Host = v; return nil },
	},
	"server.port": {
		get: func(c *Config) string { return formatInt(int64(c.Server.Port)) },
		set: func(c *Config, v string) error {
			n, err := parseIntValue("server.port", v)
			if err != nil {
				return err
			}
			c.Server.Port = int(n)
			return nil
		},
	},
	"auth.api_key": {
		get: func(c *Config) string { return c.Auth.APIKey },
		set: func(c *Config, v string) error { c.Auth.APIKey = v; return nil },
	},
	"timing.chat_min_delay_ms": {
		get: func(c *Config) string { return formatInt(c.Timing.ChatMinDelayMS) },
		set: func(c *Config, v string) error {
			n, err := parseIntValue("timing.chat_min_delay_ms", v)
			if err != nil {
				return err
			}
			c.Timing.ChatMinDelayMS = n
			return nil
		},
	},
	"timing.chat_max_delay_ms": {
		get: func(c *Config) string { return formatInt(c.Timing.ChatMaxDelayMS) },
		set: func(c *Config, v string) error {
			n, err := parseIntValue("timing.chat_max_delay_ms", v)
			if err != nil {
				return err
			}
			c.Timing.ChatMaxDelayMS = n
			return nil
		},
	},
	"timing.embedding_delay_ms": {
		get: func(c *Config) string { return formatInt(c.Timing.EmbeddingDelayMS) },
		set: func(c *Config, v string) error {
			n, err := parseIntValue("timing.embedding_delay_ms", v)
			if err != nil {
				return err
			}
			c.Timing.EmbeddingDelayMS = n
			return nil
		},
	},
	"timing.chunk_delay_ms": {
		get: func(c *Config) string { return formatInt(c.Timing.ChunkDelayMS) },
		set: func(c *Config, v string) error {
			n, err := parseIntValue("timing.chunk_delay_ms", v)
			if err != nil {
				return err
			}
			c.Timing.ChunkDelayMS = n
			return nil
		},
	},
	"stream.mode": {
		get: func(c *Config) string { return c.Stream.Mode },
		set: func(c *Config, v string) error { c.Stream.Mode = v; return nil },
	},
	"stream.window": {
		get: func(c *Config) string { return formatInt(int64(c.Stream.Window)) },
		set: func(c *Config, v string) error {
			n, err := parseIntValue("stream.window", v)
			if err != nil {
				return err
			}
			c.Stream.Window = int(n)
			return nil
		},
	},
	"stream.include_usage": {
		get: func(c *Config) string { return strconv.FormatBool(c.Stream.IncludeUsage) },
		set: func(c *Config, v string) error {
			b, err := parseBoolValue("stream.include_usage", v)
			if err != nil {
				return err
			}
			c.Stream.IncludeUsage = b
			return nil
		},
	},
	"tokens.estimator": {
		get: func(c *Config) string { return c.Tokens.Estimator },
		set: func(c *Config, v string) error { c.Tokens.Estimator = v; return nil },
	},
	"embedding.dimensions": {
		get: func(c *Config) string { return formatInt(int64(c.Embedding.Dimensions)) },
		set: func(c *Config, v string) error {
			n, err := parseIntValue("embedding.dimensions", v)
			if err != nil {
				return err
			}
			c.Embedding.Dimensions = int(n)
			return nil
		},
	},
	"embedding.deterministic": {
		get: func(c *Config) string { return strconv.FormatBool(c.Embedding.Deterministic) },
		set: func(c *Config, v string) error {
			b, err := parseBoolValue("embedding.deterministic", v)
			if err != nil {
				return err
			}
			c.Embedding.Deterministic = b
			return nil
		},
	},
	"limits.max_messages": {
		get: func(c *Config) string { return formatInt(int64(c.Limits.MaxMessages)) },
		set: func(c *Config, v string) error {
			n, err := parseIntValue("limits.max_messages", v)
			if err != nil {
				return err
			}
			c.Limits.MaxMessages = int(n)
			return nil
		},
	},
	"limits.max_content_chars": {
		get: func(c *Config) string { return formatInt(int64(c.Limits.MaxContentChars)) },
		set: func(c *Config, v string) error {
			n, err := parseIntValue("limits.max_content_chars", v)
			if err != nil {
				return err
			}
			c.Limits.MaxContentChars = int(n)
			return nil
		},
	},
	"limits.max_batch_size": {
		get: func(c *Config) string { return formatInt(int64(c.Limits.MaxBatchSize)) },
		set: func(c *Config, v string) error {
			n, err := parseIntValue("limits.max_batch_size", v)
			if err != nil {
				return err
			}
			c.Limits.MaxBatchSize = int(n)
			return nil
		},
	},
	"limits.max_completion_tokens": {
		get: func(c *Config) string { return formatInt(int64(c.Limits.MaxCompletionTokens)) },
		set: func(c *Config, v string) error {
			n, err := parseIntValue("limits.max_completion_tokens", v)
			if err != nil {
				return err
			}
			c.Limits.MaxCompletionTokens = int(n)
			return nil
		},
	},
	"seed": {
		get: func(c *Config) string { return formatInt(c.Seed) },
		set: func(c *Config, v string) error {
			n, err := parseIntValue("seed", v)
			if err != nil {
				return err
			}
			c.Seed = n
			return nil
		},
	},
}

// formatInt renders n for config get output, with zero shown as unset.
func formatInt(n int64) string {
	if n == 0 {
		return ""
	}
	return strconv.FormatInt(n, 10)
}

func parseIntValue(key, v string) (int64, error) {
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return n, nil
}

func parseBoolValue(key, v string) (bool, error) {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return b, nil
}
