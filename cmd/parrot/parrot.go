// Package parrotcmder
package parrotcmder

import (
	"github.com/spf13/cobra"

	configcmder "github.com/papercomputeco/parrot/cmd/parrot/config"
	initcmder "github.com/papercomputeco/parrot/cmd/parrot/initcmd"
	servecmder "github.com/papercomputeco/parrot/cmd/parrot/serve"
	versioncmder "github.com/papercomputeco/parrot/cmd/version"
)

const parrotLongDesc string = `Parrot is a dummy OpenAI-compatible API server.

It answers the same HTTP surface as the hosted service with canned replies,
fake embeddings, and simulated latency, so clients can be developed and
tested without network calls or cost.

Common commands:
  parrot serve             Run the server
  parrot init              Write a default config.toml
  parrot config list       Show the effective configuration`

const parrotShortDesc string = "Parrot - Dummy OpenAI API"

func NewParrotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parrot",
		Short: parrotShortDesc,
		Long:  parrotLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override path to .parrot/ config directory")

	// Add subcommands
	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(initcmder.NewInitCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
