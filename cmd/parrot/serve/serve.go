// Package servecmder provides the serve command that runs the parrot server.
package servecmder

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/papercomputeco/parrot/pkg/cliui"
	"github.com/papercomputeco/parrot/pkg/config"
	"github.com/papercomputeco/parrot/pkg/dotdir"
	"github.com/papercomputeco/parrot/pkg/logger"
	"github.com/papercomputeco/parrot/pkg/utils"
	"github.com/papercomputeco/parrot/server"
	"github.com/papercomputeco/parrot/server/worker"
)

type ServeCommander struct {
	host    string
	port    int
	apiKey  string
	seed    int64
	watch   bool
	logFile string
	debug   bool

	configDir string
	cfg       *config.Config
	reload    func() (*config.Config, error)
	logger    *slog.Logger
}

const serveLongDesc string = `Run the parrot server.

Serves the OpenAI-compatible HTTP surface on the configured address:
  POST /v1/chat/completions    Canned chat replies, optionally streamed
  POST /v1/embeddings          Fake fixed-dimension vectors
  GET  /v1/models              The configured model catalog
  GET  /health                 Liveness plus usage counters

Flags override config.toml values, and PARROT_ environment variables
override the file as well (e.g. PARROT_SERVER_PORT=9000). Pass --watch to
rebuild the server whenever config.toml changes.`

const serveShortDesc string = "Run the parrot server"

func NewServeCmd() *cobra.Command {
	cmder := &ServeCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			cmder.configDir = configDir
			cmder.reload = func() (*config.Config, error) {
				return resolveConfig(cmd, configDir)
			}

			cfg, err := cmder.reload()
			if err != nil {
				return err
			}
			cmder.cfg = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}
			return cmder.run()
		},
	}

	config.AddStringFlag(cmd, config.ServeFlags, config.FlagHost, &cmder.host)
	config.AddIntFlag(cmd, config.ServeFlags, config.FlagPort, &cmder.port)
	config.AddStringFlag(cmd, config.ServeFlags, config.FlagAPIKey, &cmder.apiKey)
	config.AddInt64Flag(cmd, config.ServeFlags, config.FlagSeed, &cmder.seed)
	cmd.Flags().BoolVarP(&cmder.watch, "watch", "w", false, "Rebuild the server when config.toml changes")
	cmd.Flags().StringVar(&cmder.logFile, "log-file", "", "Also write JSON logs to this file")

	return cmd
}

// resolveConfig merges defaults, config.toml, PARROT_ environment variables,
// and flags changed on the command line, then validates the result.
func resolveConfig(cmd *cobra.Command, configDir string) (*config.Config, error) {
	v, err := config.InitViper(configDir)
	if err != nil {
		return nil, err
	}

	config.BindRegisteredFlags(v, cmd, config.ServeFlags, []string{
		config.FlagHost, config.FlagPort, config.FlagAPIKey, config.FlagSeed,
	})

	cfg, err := config.FromViper(v)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *ServeCommander) run() error {
	log, closeLog, err := c.newLogger()
	if err != nil {
		return err
	}
	if closeLog != nil {
		defer closeLog()
	}
	c.logger = log

	fmt.Printf("\n  %s %s\n",
		cliui.NameStyle.Render("parrot"),
		cliui.DimStyle.Render(utils.Version),
	)
	fmt.Printf("  %s %s\n\n",
		cliui.DimStyle.Render("listening on"),
		cliui.ValueStyle.Render("http://"+c.cfg.Addr()),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	var watchChan <-chan string
	if c.watch {
		watcher, ch, err := c.watchConfig()
		if err != nil {
			return err
		}
		defer watcher.Close()
		watchChan = ch
	}

	for {
		srv, err := server.New(c.cfg, c.logger)
		if err != nil {
			return fmt.Errorf("building server: %w", err)
		}

		errChan := make(chan error, 1)
		go func() {
			errChan <- srv.Run()
		}()

		rebuild := false
		for !rebuild {
			select {
			case err := <-errChan:
				return err

			case sig := <-sigChan:
				c.logger.Info("received signal, shutting down", "signal", sig.String())
				err := srv.Shutdown()
				c.logSummary(srv.Totals())
				return err

			case path := <-watchChan:
				cfg, err := c.reload()
				if err != nil {
					c.logger.Error("config change ignored", "path", path, "error", err)
					continue
				}

				c.logger.Info("config changed, rebuilding server", "path", path)
				if err := srv.Shutdown(); err != nil {
					c.logger.Warn("shutdown during rebuild", "error", err)
				}
				c.cfg = cfg
				rebuild = true
			}
		}
	}
}

// newLogger builds the serve logger: pretty output on stdout, plus JSON to
// the --log-file when given.
func (c *ServeCommander) newLogger() (*slog.Logger, func() error, error) {
	stdout := logger.New(logger.WithPretty(true), logger.WithDebug(c.debug))
	if c.logFile == "" {
		return stdout, nil, nil
	}

	f, err := os.OpenFile(c.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	file := logger.New(logger.WithJSON(true), logger.WithDebug(c.debug), logger.WithWriter(f))
	return logger.Multi(stdout, file), f.Close, nil
}

// watchConfig watches the directory holding config.toml and emits the file
// path on each write or create event that touches it. Bursts of events from
// a single save collapse into one emission.
func (c *ServeCommander) watchConfig() (*fsnotify.Watcher, <-chan string, error) {
	target, err := dotdir.NewManager().Target(c.configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("resolving config dir: %w", err)
	}
	path := filepath.Join(target, "config.toml")

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, fmt.Errorf("creating config watcher: %w", err)
	}

	if err := watcher.Add(target); err != nil {
		watcher.Close()
		return nil, nil, fmt.Errorf("watching config dir: %w", err)
	}

	ch := make(chan string, 1)
	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(path) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				select {
				case ch <- event.Name:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				c.logger.Warn("config watcher error", "error", err)
			}
		}
	}()

	return watcher, ch, nil
}

// logSummary reports what the server handled across its lifetime.
func (c *ServeCommander) logSummary(t worker.Totals) {
	c.logger.Info("served",
		"requests", t.Requests,
		"chat_completions", t.ByEndpoint[worker.EndpointChatCompletions],
		"embeddings", t.ByEndpoint[worker.EndpointEmbeddings],
		"total_tokens", t.TotalTokens,
		"dropped_samples", t.Dropped,
	)
}
