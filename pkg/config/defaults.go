package config

const (
	defaultHost   = "0.0.0.0"
	defaultPort   = 8000
	defaultAPIKey = "sk-dummy"

	defaultChatMinDelayMS   = 500
	defaultChatMaxDelayMS   = 2000
	defaultEmbeddingDelayMS = 100
	defaultChunkDelayMS     = 10

	defaultStreamMode   = "character"
	defaultStreamWindow = 1

	defaultEstimator = "words"

	defaultEmbeddingDimensions = 1536

	defaultMaxMessages         = 50
	defaultMaxContentChars     = 32000
	defaultMaxBatchSize        = 100
	defaultMaxCompletionTokens = 4096
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		Server: ServerConfig{
			Host: defaultHost,
			Port: defaultPort,
		},
		Auth: AuthConfig{
			APIKey: defaultAPIKey,
		},
		Timing: TimingConfig{
			ChatMinDelayMS:   defaultChatMinDelayMS,
			ChatMaxDelayMS:   defaultChatMaxDelayMS,
			EmbeddingDelayMS: defaultEmbeddingDelayMS,
			ChunkDelayMS:     defaultChunkDelayMS,
		},
		Stream: StreamConfig{
			Mode:   defaultStreamMode,
			Window: defaultStreamWindow,
		},
		Tokens: TokensConfig{
			Estimator: defaultEstimator,
		},
		Embedding: EmbeddingConfig{
			Dimensions: defaultEmbeddingDimensions,
		},
		Limits: LimitsConfig{
			MaxMessages:         defaultMaxMessages,
			MaxContentChars:     defaultMaxContentChars,
			MaxBatchSize:        defaultMaxBatchSize,
			MaxCompletionTokens: defaultMaxCompletionTokens,
		},
		Models: DefaultModels(),
	}
}

// DefaultModels returns the built-in model catalog. Created timestamps mirror
// the upstream service's published values so clients comparing them behave
// the same against parrot.
func DefaultModels() []ModelEntry {
	return []ModelEntry{
		{ID: "gpt-4", Created: 1677610602, OwnedBy: "openai", Multiplier: 2.5},
		{ID: "gpt-3.5-turbo", Created: 1677610603, OwnedBy: "openai", Multiplier: 1.0},
		{ID: "text-embedding-ada-002", Created: 1677610604, OwnedBy: "openai", Multiplier: 1.0},
		{ID: "gpt-4-turbo", Created: 1700538000, OwnedBy: "openai", Multiplier: 2.0},
		{ID: "gpt-4o", Created: 1709000000, OwnedBy: "openai", Multiplier: 1.8},
	}
}
