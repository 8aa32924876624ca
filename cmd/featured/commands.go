package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pders01/featured/internal/apps"
	"github.com/pders01/featured/internal/carousel"
	"github.com/pders01/featured/internal/catalog"
	"github.com/pders01/featured/internal/config"
	"github.com/pders01/featured/internal/debuglog"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("featured %s\n", Version)
		fmt.Println("Featured apps carousel")
		fmt.Println("github.com/pders01/featured")
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configGenCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write the default configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		path := configPath
		if path == "" {
			path = config.DefaultConfigPath()
		}
		if err := config.GenerateDefaultConfig(path); err != nil {
			log.Fatalf("Failed to generate config: %v", err)
		}
		fmt.Printf("Generated default configuration at: %s\n", path)
	},
}

var (
	jsonOutput bool
	refresh    bool
)

var featuredCmd = &cobra.Command{
	Use:   "featured",
	Short: "Print a featured selection without starting the UI",
	Long: `Print one featured selection. The cached catalog is used when present;
--refresh fetches from the endpoint first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		defer debuglog.Close()

		list, err := loadApps(cmd.Context(), cfg, refresh)
		if err != nil {
			return err
		}

		labels, err := catalog.NewLabels(cfg.Carousel.CategoryLabels)
		if err != nil {
			return err
		}
		selector := carousel.NewSelector(cfg.Carousel.PoolSize, cfg.Carousel.FeaturedCount, nil)
		cards := catalog.NewCardBuilder(labels, cfg.Source.DetailBase).BuildAll(selector.Select(list))

		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), cards)
		}
		writeText(cmd.OutOrStdout(), cards)
		return nil
	},
}

// loadApps returns the cached catalog, fetching it when the cache is
// empty or a refresh was requested. A failed refresh falls back to the
// cache.
func loadApps(ctx context.Context, cfg *config.Config, refresh bool) ([]apps.App, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	store, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	cached, err := store.LoadApps()
	if err != nil {
		debuglog.Warnf("reading cache: %v", err)
	}
	if len(cached) > 0 && !refresh {
		return cached, nil
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Source.HTTPTimeout)
	defer cancel()

	fetched, err := apps.NewClient(cfg).FetchApps(ctx)
	if err != nil {
		if len(cached) > 0 {
			debuglog.Warnf("refresh failed, using cache: %v", err)
			return cached, nil
		}
		return nil, err
	}
	if err := store.SaveApps(fetched); err != nil {
		debuglog.Warnf("writing cache: %v", err)
	}
	return fetched, nil
}

type featuredJSON struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Summary  string `json:"summary"`
	Category string `json:"category"`
	Date     string `json:"date"`
	Image    string `json:"image"`
	Link     string `json:"link"`
}

func writeJSON(w io.Writer, cards []catalog.Card) error {
	out := make([]featuredJSON, len(cards))
	for i, c := range cards {
		out[i] = featuredJSON{
			ID:       c.ID.String(),
			Name:     c.Name,
			Summary:  c.Summary,
			Category: c.Category,
			Date:     c.Date,
			Image:    c.Image,
			Link:     c.Link,
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeText(w io.Writer, cards []catalog.Card) {
	if len(cards) == 0 {
		fmt.Fprintln(w, "No featured apps yet")
		return
	}
	for i, c := range cards {
		meta := []string{c.Category}
		if c.Date != "" {
			meta = append(meta, c.Date)
		}
		fmt.Fprintf(w, "%d. %s (%s)\n", i+1, c.Name, strings.Join(meta, " · "))
		fmt.Fprintf(w, "   %s\n", c.Summary)
		fmt.Fprintf(w, "   %s\n", c.Link)
	}
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the local app cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the cached app list",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		defer debuglog.Close()

		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Clear(); err != nil {
			return fmt.Errorf("clearing cache: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared cached apps in %s\n", cfg.Database.Path)
		return nil
	},
}

var cacheInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show what the cache holds",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		defer debuglog.Close()

		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		list, err := store.LoadApps()
		if err != nil {
			return err
		}
		cachedAt, err := store.CachedAt()
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Cache:   %s\n", cfg.Database.Path)
		fmt.Fprintf(w, "Apps:    %d\n", len(list))
		if cachedAt.IsZero() {
			fmt.Fprintln(w, "Updated: never")
		} else {
			fmt.Fprintf(w, "Updated: %s\n", cachedAt.Local().Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configGenCmd)
	cacheCmd.AddCommand(cacheClearCmd, cacheInfoCmd)

	featuredCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the selection as JSON")
	featuredCmd.Flags().BoolVar(&refresh, "refresh", false, "Fetch from the endpoint before selecting")
}
