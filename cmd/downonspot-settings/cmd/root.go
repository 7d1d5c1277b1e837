package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/downonspot-settings/internal/config"
	"github.com/oshokin/downonspot-settings/internal/logger"
	"github.com/oshokin/downonspot-settings/internal/service/settings"
	"github.com/oshokin/downonspot-settings/internal/version"
)

var (
	// logLevel is the minimum level of log messages written to stderr.
	logLevel string
	// configPath is the settings file used by every subcommand.
	configPath string
	// outputFormat selects json or yaml for `show`.
	outputFormat string
	// reveal disables secret masking for `show`.
	reveal bool
	// force allows `init` to overwrite an existing file.
	force bool
	// refreshUISeconds is the UI refresh interval written by `init`.
	refreshUISeconds uint64

	// rootCmd is the base command.
	rootCmd = &cobra.Command{
		Use:   "downonspot-settings",
		Short: "Manage the DownOnSpot client settings file.",
		Long: `Creates, inspects and locates the DownOnSpot settings file.

Without --config the settings are searched in settings.json in the current
directory, then in ~/.config/downonspot.json. The first existing file wins;
if neither exists the home directory file is used.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			level, ok := logger.ParseLogLevel(logLevel)
			if !ok {
				return fmt.Errorf("unknown log level %q", logLevel)
			}

			logger.SetLevel(level)

			return nil
		},
	}

	// initCmd writes a new settings file.
	initCmd = &cobra.Command{
		Use:   "init <username> <password> <client-id> <client-secret>",
		Short: "Create a settings file with default downloader options.",
		Long: `Creates a settings file from account credentials. Downloader options get
their default values and can be edited in the file afterwards.

The file is written to --config, or settings.json in the current directory.
Credentials are stored in plaintext with owner-only permissions.`,
		Args: cobra.ExactArgs(4), //nolint:mnd // Four credentials.
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext(cmd.Context())
			defer stop()

			return settings.Init(ctx, &settings.InitOptions{
				ConfigPath:       configPath,
				Username:         args[0],
				Password:         args[1],
				ClientID:         args[2],
				ClientSecret:     args[3],
				RefreshUISeconds: &refreshUISeconds,
				Force:            force,
			})
		},
	}

	// showCmd prints the loaded settings.
	showCmd = &cobra.Command{
		Use:   "show",
		Short: "Print the settings a client would load.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signalContext(cmd.Context())
			defer stop()

			return settings.Show(ctx, &settings.ShowOptions{
				ConfigPath: configPath,
				Format:     outputFormat,
				Reveal:     reveal,
				Output:     cmd.OutOrStdout(),
			})
		},
	}

	// pathsCmd explains settings file resolution.
	pathsCmd = &cobra.Command{
		Use:   "paths",
		Short: "List searched settings locations and the one that would be loaded.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signalContext(cmd.Context())
			defer stop()

			return settings.Paths(ctx, &settings.PathsOptions{
				ConfigPath: configPath,
				Output:     cmd.OutOrStdout(),
			})
		},
	}
)

// Execute runs the CLI and exits with non-zero status on error.
func Execute() {
	defer logger.Sync()

	if err := rootCmd.Execute(); err != nil {
		logger.ErrorKV(context.Background(), "Command failed", "error", err, "kind", config.KindOf(err).String())
		logger.Sync()
		os.Exit(1)
	}
}

// signalContext cancels on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}

	return signal.NotifyContext(parent, syscall.SIGTERM, syscall.SIGINT)
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the settings file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error, fatal")

	initCmd.Flags().Uint64Var(&refreshUISeconds, "refresh-ui-seconds", config.DefaultRefreshUISeconds,
		"UI refresh interval in seconds")
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing settings file")

	showCmd.Flags().StringVarP(&outputFormat, "output", "o", settings.FormatJSON, "output format: json or yaml")
	showCmd.Flags().BoolVar(&reveal, "reveal", false, "print passwords and client secrets")

	rootCmd.AddCommand(initCmd, showCmd, pathsCmd, version.NewCommand())
}
