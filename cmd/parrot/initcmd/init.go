// Package initcmder provides the init command for writing a parrot
// config.toml into a local .parrot/ directory.
package initcmder

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/parrot/pkg/cliui"
	"github.com/papercomputeco/parrot/pkg/config"
)

const (
	dirName        = ".parrot"
	configFileName = "config.toml"
)

const initLongDesc string = `Initialize a .parrot/ directory with a config.toml.

Creates a local .parrot/ directory in the current working directory (it
takes precedence over ~/.parrot/ for all parrot commands) and writes a
fully populated config.toml. Pass --config-dir to write somewhere else.

--preset selects a named timing profile or fetches a config from a URL:
  default        Standard simulated latencies
  development    Short delays for local iteration
  testing        Near-zero delays for test suites
  http(s)://...  Remote TOML config

An existing config.toml is never overwritten unless --force is given.

Examples:
  parrot init
  parrot init --preset development
  parrot init --preset https://example.com/parrot.toml --force`

const initShortDesc string = "Initialize a local .parrot/ directory"

type initCommander struct {
	preset string
	force  bool
}

func NewInitCmd() *cobra.Command {
	cmder := &initCommander{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: initShortDesc,
		Long:  initLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			return cmder.run(configDir)
		},
	}

	cmd.Flags().StringVar(&cmder.preset, "preset", "", "Timing profile (default, development, testing) or config URL")
	cmd.Flags().BoolVarP(&cmder.force, "force", "f", false, "Overwrite an existing config.toml")

	return cmd
}

func (c *initCommander) run(configDir string) error {
	dir, err := resolveTargetDir(configDir)
	if err != nil {
		return err
	}
	path := filepath.Join(dir, configFileName)

	if _, err := os.Stat(path); err == nil {
		if !c.force {
			return fmt.Errorf("config.toml already exists at %s (use --force to overwrite)", path)
		}
		fmt.Printf("\n  %s %s\n",
			cliui.WarnStyle.Render("!"),
			cliui.DimStyle.Render("Overwriting "+path),
		)
	}

	cfg, err := c.resolvePreset()
	if err != nil {
		return err
	}

	cfger, err := config.NewConfiger(dir)
	if err != nil {
		return fmt.Errorf("resolving config path: %w", err)
	}
	if err := cfger.SaveConfig(cfg); err != nil {
		return err
	}

	fmt.Printf("\n  %s Wrote %s\n\n",
		cliui.SuccessMark,
		cliui.ValueStyle.Render(path),
	)
	return nil
}

// resolveTargetDir returns the directory config.toml should land in,
// creating it if needed. An explicit --config-dir wins over ./.parrot/.
func resolveTargetDir(configDir string) (string, error) {
	dir := configDir
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting current directory: %w", err)
		}
		dir = filepath.Join(cwd, dirName)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s directory: %w", dirName, err)
	}

	return dir, nil
}

// resolvePreset turns the --preset value into a Config. Empty means the
// defaults, an http(s) URL is fetched and parsed, anything else must name a
// timing profile.
func (c *initCommander) resolvePreset() (*config.Config, error) {
	if c.preset == "" {
		return config.NewDefaultConfig(), nil
	}
	if strings.HasPrefix(c.preset, "http://") || strings.HasPrefix(c.preset, "https://") {
		return fetchRemoteConfig(c.preset)
	}
	return config.PresetConfig(c.preset)
}

// fetchRemoteConfig downloads and parses a TOML config from url.
func fetchRemoteConfig(url string) (*config.Config, error) {
	var cfg *config.Config
	err := cliui.Step(os.Stdout, "Fetching remote config", func() error {
		client := &http.Client{Timeout: 10 * time.Second}
		resp, err := client.Get(url)
		if err != nil {
			return fmt.Errorf("fetching remote config: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("fetching remote config: HTTP %d", resp.StatusCode)
		}

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading remote config: %w", err)
		}

		cfg, err = config.ParseConfigTOML(data)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
