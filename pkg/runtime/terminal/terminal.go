package terminal

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/de-tools/sales-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/sales-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/sales-atlas/pkg/services/cache"
	"github.com/de-tools/sales-atlas/pkg/services/config"
	"github.com/de-tools/sales-atlas/pkg/services/upload"
	"github.com/de-tools/sales-atlas/pkg/store/duckdb"
	"github.com/de-tools/sales-atlas/pkg/store/duckdb/kv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	opts    Options
	session *commands.Session
	rootCmd *cobra.Command
	closers []io.Closer

	configPath   string
	profilesPath string
	profile      string
	verbose      bool
}

// Options contain configuration for the CLI. Settings, Cache and Uploader
// are built from flags and the settings file when left nil.
type Options struct {
	Output    io.Writer
	LogOutput io.Writer
	Settings  *config.Settings
	Cache     cache.ResultCache
	Uploader  commands.Uploader
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.LogOutput == nil {
		opts.LogOutput = os.Stderr
	}

	cli := &CLI{
		opts: opts,
		session: &commands.Session{
			Reporter: export.NewReporter(opts.Output),
		},
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.ExecuteContext(context.Background())
}

func (cli *CLI) ExecuteContext(ctx context.Context) error {
	defer cli.close()
	return cli.rootCmd.ExecuteContext(ctx)
}

// SetArgs overrides the process arguments.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "atlas",
		Short:             "Sales report analysis tool",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: cli.bootstrap,
	}

	home, _ := os.UserHomeDir()
	cmd.PersistentFlags().StringVar(&cli.configPath, "config", filepath.Join(home, ".sales-atlas.yaml"),
		"Path to the settings file")
	cmd.PersistentFlags().StringVar(&cli.profilesPath, "profiles", filepath.Join(home, ".atlascfg"),
		"Path to the endpoint profiles file")
	cmd.PersistentFlags().StringVar(&cli.profile, "profile", "", "Endpoint profile to use")
	cmd.PersistentFlags().BoolVarP(&cli.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(commands.NewUploadCmd(cli.session))
	cmd.AddCommand(commands.NewSummaryCmd(cli.session))
	cmd.AddCommand(commands.NewProductsCmd(cli.session))
	cmd.AddCommand(commands.NewChartsCmd(cli.session))
	cmd.AddCommand(commands.NewSearchCmd(cli.session))
	cmd.AddCommand(commands.NewExportCmd(cli.session))
	cmd.AddCommand(commands.NewRequirementsCmd(cli.session))
	cmd.AddCommand(commands.NewProfilesCmd(cli.session))

	return cmd
}

func (cli *CLI) bootstrap(cmd *cobra.Command, _ []string) error {
	settings := cli.opts.Settings
	if settings == nil {
		loaded, err := config.LoadSettings(cli.configPath, cmd.Flags().Changed("config"))
		if err != nil {
			return err
		}
		settings = loaded
	}

	if cli.profile != "" {
		registry, err := config.NewRegistry(cli.profilesPath)
		if err != nil {
			return fmt.Errorf("failed to load profiles: %w", err)
		}
		profile, err := registry.GetProfile(cmd.Context(), cli.profile)
		if err != nil {
			return err
		}
		settings.ApplyProfile(profile)
	}

	logger := cli.newLogger(settings.LogLevel)
	ctx := logger.WithContext(cmd.Context())
	cmd.SetContext(ctx)
	logger.Debug().Str("base_url", settings.BaseURL).Str("cache", settings.CachePath).Msg("settings loaded")

	cli.session.Settings = *settings
	cli.session.ProfilesPath = cli.profilesPath
	cli.session.Cache = cli.opts.Cache
	cli.session.OpenCache = func() (cache.ResultCache, error) {
		return cli.openCache(settings.CachePath)
	}
	cli.session.Uploader = cli.opts.Uploader

	if cli.session.Uploader == nil {
		cli.session.Uploader = upload.NewClient(settings.BaseURL, upload.WithTimeout(settings.Timeout))
	}

	return nil
}

func (cli *CLI) openCache(path string) (cache.ResultCache, error) {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: path})
	if err != nil {
		return nil, fmt.Errorf("failed to create DuckDB instance: %w", err)
	}
	cli.closers = append(cli.closers, db)

	store, err := kv.NewStore(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create kv store: %w", err)
	}
	return cache.New(db, store), nil
}

func (cli *CLI) newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	if cli.verbose {
		lvl = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: cli.opts.LogOutput, NoColor: true}).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

func (cli *CLI) close() {
	for _, c := range cli.closers {
		_ = c.Close()
	}
	cli.closers = nil
}
