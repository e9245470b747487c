package main

import (
	"fmt"
	"net"
	"os"
	"path/filepath"

	"github.com/de-tools/sales-atlas/pkg/render"
	"github.com/de-tools/sales-atlas/pkg/server"
	"github.com/de-tools/sales-atlas/pkg/services/cache"
	"github.com/de-tools/sales-atlas/pkg/services/config"
	"github.com/de-tools/sales-atlas/pkg/services/upload"
	"github.com/de-tools/sales-atlas/pkg/store/duckdb"
	"github.com/de-tools/sales-atlas/pkg/store/duckdb/kv"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgPath      string
	profilesPath string
	profileName  string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Sales Atlas",
		RunE:  runServer,
	}

	home, _ := os.UserHomeDir()
	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", filepath.Join(home, ".sales-atlas.yaml"),
		"Path to the settings file")
	rootCmd.Flags().StringVar(&profilesPath, "profiles", filepath.Join(home, ".atlascfg"),
		"Path to the endpoint profiles file")
	rootCmd.Flags().StringVar(&profileName, "profile", "", "Endpoint profile to use")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	settings, err := config.LoadSettings(cfgPath, cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(settings.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	if profileName != "" {
		registry, err := config.NewRegistry(profilesPath)
		if err != nil {
			return fmt.Errorf("failed to load profiles: %w", err)
		}
		profile, err := registry.GetProfile(ctx, profileName)
		if err != nil {
			return err
		}
		settings.ApplyProfile(profile)
		logger.Info().Msgf("Using endpoint profile `%s`.", profile)
	}

	db, err := duckdb.NewDB(duckdb.Settings{
		DbPath: settings.CachePath,
	})
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}
	defer db.Close()

	store, err := kv.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create kv store: %w", err)
	}
	resultCache := cache.New(db, store)
	if _, ok := resultCache.Get(ctx); ok {
		logger.Info().Msg("restored cached analysis result")
	}

	host := settings.Server.Host
	if v := os.Getenv("SERVER_HOST"); v != "" {
		host = v
	}
	port := settings.Server.Port
	if v := os.Getenv("SERVER_PORT"); v != "" {
		port = v
	}
	if host == "" || port == "" {
		return fmt.Errorf("missing server host or port configuration")
	}

	logger.Info().
		Str("base_url", settings.BaseURL).
		Str("cache", settings.CachePath).
		Msg("analysis service configured")

	webAPI := server.NewWebAPI(server.Config{
		Addr: net.JoinHostPort(host, port),
		Dependencies: server.Dependencies{
			Cache:    resultCache,
			Uploader: upload.NewClient(settings.BaseURL, upload.WithTimeout(settings.Timeout)),
			Logger:   logger,
			Currency: settings.Currency,
			Charts: render.Config{
				Width:  settings.Charts.Width,
				Height: settings.Charts.Height,
				Format: render.FormatPNG,
			},
		},
	})

	return webAPI.Start()
}
