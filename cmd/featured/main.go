package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	bolt "go.etcd.io/bbolt"

	"github.com/pders01/featured/internal/apps"
	"github.com/pders01/featured/internal/config"
	"github.com/pders01/featured/internal/debuglog"
	"github.com/pders01/featured/internal/opener"
	"github.com/pders01/featured/internal/storage"
	"github.com/pders01/featured/internal/tui"
	"github.com/pders01/featured/internal/validation"
)

// Version is the version of the application, set at build time
var Version = "dev"

var (
	configPath string
	dbPath     string
	endpoint   string
	quiet      bool
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:   "featured",
	Short: "Browse a rotating selection of featured apps in the terminal",
	Long: `featured fetches an app catalog from a spreadsheet-backed endpoint,
picks a random handful of the newest entries and shows them as a carousel.
The last fetched catalog is cached locally so the carousel opens instantly.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		defer debuglog.Close()

		if !quiet {
			tui.ShowBanner(Version)
		}
		return runTUI(cfg)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Path to configuration file")
	flags.StringVar(&dbPath, "db", "", "Path to cache database (overrides config)")
	flags.StringVar(&endpoint, "endpoint", "", "Apps endpoint URL (overrides config)")
	flags.BoolVar(&quiet, "quiet", false, "Skip startup banner")
	flags.BoolVar(&debug, "debug", false, "Write debug logs to the log file")

	rootCmd.AddCommand(versionCmd, configCmd, featuredCmd, cacheCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies command line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if dbPath != "" {
		cfg.Database.Path = dbPath
	}
	if endpoint != "" {
		cfg.Source.Endpoint = endpoint
	}
	if cfg.Source.Endpoint != "" {
		normalized, err := validation.NewEndpointValidator().ValidateAndNormalize(cfg.Source.Endpoint)
		if err != nil {
			return nil, fmt.Errorf("invalid endpoint: %w", err)
		}
		cfg.Source.Endpoint = normalized
	}

	level := debuglog.ParseLogLevel(cfg.Log.Level)
	if debug {
		level = debuglog.LevelDebug
	}
	if err := debuglog.Setup(level, cfg.Log.File); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}

	return cfg, nil
}

func openStore(cfg *config.Config) (*storage.Store, error) {
	store, err := storage.NewStoreWithTimeout(cfg.Database.Path, cfg.Database.Timeout)
	if err != nil {
		if errors.Is(err, bolt.ErrTimeout) {
			return nil, fmt.Errorf("cache %s is locked by another featured process: %w", cfg.Database.Path, err)
		}
		return nil, err
	}
	return store, nil
}

func runTUI(cfg *config.Config) error {
	tui.ApplyTheme(cfg.UI.Colors)

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if cfg.Source.Endpoint == "" {
		debuglog.Warnf("no endpoint configured, running from cache only")
	}

	app := tui.NewApp(cfg, apps.NewClient(cfg), store, opener.New(cfg))
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running UI: %w", err)
	}
	return nil
}
