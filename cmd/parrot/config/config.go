// Package configcmder provides the config command for managing persistent
// parrot configuration stored in the .parrot/ directory.
package configcmder

import (
	"github.com/spf13/cobra"
)

const configLongDesc string = `Manage persistent parrot configuration.

Configuration is stored as config.toml in the .parrot/ directory and provides
default values for command flags. CLI flags always take precedence over
config file values.

Keys use dotted notation matching the TOML section structure:
  server.host, server.port, auth.api_key,
  timing.chat_min_delay_ms, timing.chat_max_delay_ms,
  timing.embedding_delay_ms, timing.chunk_delay_ms,
  stream.mode, stream.window, stream.include_usage,
  tokens.estimator, embedding.dimensions, embedding.deterministic,
  limits.max_messages, limits.max_content_chars,
  limits.max_batch_size, limits.max_completion_tokens, seed

Use subcommands to get, set, or list configuration values:
  parrot config set <key> <value>    Set a configuration value
  parrot config get <key>            Get a configuration value
  parrot config list                 List all configuration values

Examples:
  parrot config set server.port 9000
  parrot config set stream.mode word
  parrot config get auth.api_key
  parrot config list`

const configShortDesc string = "Manage persistent parrot configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}
