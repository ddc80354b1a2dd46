// Package commands implements the catsearchctl maintenance CLI.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/catsearch/internal/config"
	logpkg "github.com/kailas-cloud/catsearch/internal/logger"
	"github.com/kailas-cloud/catsearch/internal/version"
)

// Options holds the collaborators shared by all commands.
type Options struct {
	LoadConfig func(env string) (config.Config, error)
	NewLogger  func(env, level string) (*zap.Logger, error)
}

// DefaultOptions loads config/<env>.yaml and logs with the environment's zap setup.
func DefaultOptions() *Options {
	return &Options{
		LoadConfig: config.Load,
		NewLogger: func(env, level string) (*zap.Logger, error) {
			return logpkg.NewLogger(env, level)
		},
	}
}

// session is the loaded config and logger of one command run.
type session struct {
	cfg    config.Config
	logger *zap.Logger
}

func (o *Options) load(env string) (*session, error) {
	cfg, err := o.LoadConfig(env)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := o.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return &session{cfg: cfg, logger: logger}, nil
}

// NewRootCmd creates the root command.
func NewRootCmd(opts *Options) *cobra.Command {
	var env string

	rootCmd := &cobra.Command{
		Use:          "catsearchctl",
		Short:        "Maintenance tool for the catsearch search cache and catalog",
		Version:      version.String(),
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&env, "env", config.GetEnv(), "config environment (config/<env>.yaml)")

	load := func() (*session, error) { return opts.load(env) }

	rootCmd.AddCommand(
		newCacheCommand(load),
		newCatalogCommand(load),
	)

	return rootCmd
}
