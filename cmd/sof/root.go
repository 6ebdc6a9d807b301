package main

import (
	"context"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spiritoffootball/cli-tools-for-sof/cmd/sof/commands"
	"github.com/spiritoffootball/cli-tools-for-sof/cmd/sof/opts"
	"github.com/spiritoffootball/cli-tools-for-sof/pkg/config"
	"github.com/spiritoffootball/cli-tools-for-sof/pkg/log"
	"github.com/spiritoffootball/cli-tools-for-sof/pkg/wpcli"
	"gitlab.com/tozd/go/errors"
)

// rootFlags holds the persistent flags shared by every command
type rootFlags struct {
	configFile  string
	envFile     string
	debug       bool
	wpBinary    string
	wpPath      string
	wpURL       string
	metricsFile string
}

// NewRootCmd creates the sof root command. Fields already set on o are kept.
func NewRootCmd(o *opts.RootOpts) *cobra.Command {
	f := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "sof",
		Short: "Maintenance tools for the Spirit of Football multisite network",
		Long: `sof drives wp-cli to keep the Spirit of Football WordPress network tidy.
It can delete spam and retire custom roles on one site or across the network.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := setupLogging(cmd.Context(), f.debug)
			cmd.SetContext(ctx)
			return f.populate(ctx, cmd, o)
		},
	}

	addRootFlags(cmd, f)

	cmd.AddCommand(
		commands.NewNetworkCmd(o),
		newVersionCmd(),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, f *rootFlags) {
	cmd.PersistentFlags().StringVarP(&f.configFile, "config", "c", config.DefaultPath, "config file path")
	cmd.PersistentFlags().StringVar(&f.envFile, "env-file", config.DefaultEnvFile, "dotenv file with SOF_* overrides")
	cmd.PersistentFlags().BoolVarP(&f.debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&f.wpBinary, "wp", "", "wp-cli binary (overrides wp.binary)")
	cmd.PersistentFlags().StringVar(&f.wpPath, "path", "", "WordPress root (overrides wp.path)")
	cmd.PersistentFlags().StringVar(&f.wpURL, "url", "", "current site URL (overrides wp.url)")
	cmd.PersistentFlags().StringVar(&f.metricsFile, "metrics-file", "", "write prometheus metrics to this file")
}

// setupLogging configures zerolog based on flags
func setupLogging(ctx context.Context, debug bool) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
	return logger.WithContext(ctx)
}

// populate fills the shared options from config, environment and flags
func (f *rootFlags) populate(ctx context.Context, cmd *cobra.Command, o *opts.RootOpts) error {
	env, err := config.ReadEnv(f.envFile, cmd.Flags().Changed("env-file"))
	if err != nil {
		return errors.Errorf("loading environment: %w", err)
	}

	var cfg *config.Config
	if cmd.Flags().Changed("config") {
		cfg, err = config.Load(ctx, f.configFile, env)
	} else {
		cfg, err = config.LoadOrDefault(ctx, f.configFile, env)
	}
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}

	f.apply(cfg)
	zerolog.Ctx(ctx).Debug().Str("config", cfg.String()).Str("location", cfg.Location()).Msg("configuration ready")

	o.Config = cfg
	if o.Executor == nil {
		o.Executor = newExecutor(cfg)
	}
	if o.Logger == nil {
		o.Logger = log.New(cmd.OutOrStdout(), *zerolog.Ctx(ctx))
	}
	return nil
}

// apply lets flags win over every other source
func (f *rootFlags) apply(cfg *config.Config) {
	if f.wpBinary != "" {
		cfg.WP.Binary = f.wpBinary
	}
	if f.wpPath != "" {
		cfg.WP.Path = f.wpPath
	}
	if f.wpURL != "" {
		cfg.WP.URL = strings.TrimRight(f.wpURL, "/")
	}
	if f.metricsFile != "" {
		cfg.MetricsFile = f.metricsFile
	}
}

// newExecutor creates the wp-cli executor described by the config
func newExecutor(cfg *config.Config) *wpcli.CLI {
	cli := wpcli.NewCLI(cfg.WP.Binary)
	cli.Path = cfg.WP.Path
	cli.URL = cfg.WP.URL
	cli.Args = cfg.WP.Args
	return cli
}
