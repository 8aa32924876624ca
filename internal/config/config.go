package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Source   SourceConfig   `mapstructure:"source"`
	Carousel CarouselConfig `mapstructure:"carousel"`
	UI       UIConfig       `mapstructure:"ui"`
	Log      LogConfig      `mapstructure:"log"`
	Opener   OpenerConfig   `mapstructure:"opener"`
}

type DatabaseConfig struct {
	Path    string        `mapstructure:"path"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type SourceConfig struct {
	Endpoint    string        `mapstructure:"endpoint"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
	UserAgent   string        `mapstructure:"user_agent"`
	DetailBase  string        `mapstructure:"detail_base"`
}

type CarouselConfig struct {
	FeaturedCount     int               `mapstructure:"featured_count"`
	PoolSize          int               `mapstructure:"pool_size"`
	AutoSlideInterval time.Duration     `mapstructure:"auto_slide_interval"`
	RefreshCooldown   time.Duration     `mapstructure:"refresh_cooldown"`
	RotateDuration    time.Duration     `mapstructure:"rotate_duration"`
	SwipeThreshold    int               `mapstructure:"swipe_threshold"`
	CellPx            int               `mapstructure:"cell_px"`
	CardWidth         int               `mapstructure:"card_width"`
	CardGap           int               `mapstructure:"card_gap"`
	CategoryLabels    map[string]string `mapstructure:"category_labels"`
}

type UIConfig struct {
	Colors UIColors `mapstructure:"colors"`
}

type UIColors struct {
	Primary   string `mapstructure:"primary"`
	Secondary string `mapstructure:"secondary"`
	Accent    string `mapstructure:"accent"`
	Text      string `mapstructure:"text"`
	Muted     string `mapstructure:"muted"`
	Error     string `mapstructure:"error"`
	Success   string `mapstructure:"success"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type OpenerConfig struct {
	// Command opens detail links. Empty means the system browser.
	Command string `mapstructure:"command"`
}

func defaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	dbPath := filepath.Join(homeDir, ".featured.db")

	return &Config{
		Database: DatabaseConfig{
			Path:    dbPath,
			Timeout: 1 * time.Second,
		},
		Source: SourceConfig{
			Endpoint:    "",
			HTTPTimeout: 30 * time.Second,
			UserAgent:   "featured/1.0 (https://github.com/pders01/featured)",
			DetailBase:  "",
		},
		Carousel: CarouselConfig{
			FeaturedCount:     5,
			PoolSize:          20,
			AutoSlideInterval: 5 * time.Second,
			RefreshCooldown:   1500 * time.Millisecond,
			RotateDuration:    300 * time.Millisecond,
			SwipeThreshold:    50,
			CellPx:            8,
			CardWidth:         34,
			CardGap:           2,
			CategoryLabels:    map[string]string{},
		},
		UI: UIConfig{
			Colors: UIColors{
				Primary:   "#FF6B6B",
				Secondary: "#4ECDC4",
				Accent:    "#95E1D3",
				Text:      "#EAEAEA",
				Muted:     "#94A3B8",
				Error:     "#F87171",
				Success:   "#4ADE80",
			},
		},
		Log: LogConfig{
			Level: "off",
			File:  "",
		},
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	return defaultConfig()
}

func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v, defaultConfig())

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		homeDir, _ := os.UserHomeDir()
		configDir := filepath.Join(homeDir, ".config", "featured")

		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(configDir)
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("FEATURED")
	v.AutomaticEnv()
	// Nested keys are not reachable through AutomaticEnv alone.
	_ = v.BindEnv("source.endpoint", "FEATURED_ENDPOINT")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if endpoint := v.GetString("source.endpoint"); endpoint != "" {
		config.Source.Endpoint = endpoint
	}

	// Expand paths after loading
	expandPaths(&config)
	applyFloors(&config)

	return &config, nil
}

// setDefaults registers every leaf key so a partial table in the config
// file does not hide the defaults of its siblings.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("database.path", cfg.Database.Path)
	v.SetDefault("database.timeout", cfg.Database.Timeout)

	v.SetDefault("source.endpoint", cfg.Source.Endpoint)
	v.SetDefault("source.http_timeout", cfg.Source.HTTPTimeout)
	v.SetDefault("source.user_agent", cfg.Source.UserAgent)
	v.SetDefault("source.detail_base", cfg.Source.DetailBase)

	c := cfg.Carousel
	v.SetDefault("carousel.featured_count", c.FeaturedCount)
	v.SetDefault("carousel.pool_size", c.PoolSize)
	v.SetDefault("carousel.auto_slide_interval", c.AutoSlideInterval)
	v.SetDefault("carousel.refresh_cooldown", c.RefreshCooldown)
	v.SetDefault("carousel.rotate_duration", c.RotateDuration)
	v.SetDefault("carousel.swipe_threshold", c.SwipeThreshold)
	v.SetDefault("carousel.cell_px", c.CellPx)
	v.SetDefault("carousel.card_width", c.CardWidth)
	v.SetDefault("carousel.card_gap", c.CardGap)

	colors := cfg.UI.Colors
	v.SetDefault("ui.colors.primary", colors.Primary)
	v.SetDefault("ui.colors.secondary", colors.Secondary)
	v.SetDefault("ui.colors.accent", colors.Accent)
	v.SetDefault("ui.colors.text", colors.Text)
	v.SetDefault("ui.colors.muted", colors.Muted)
	v.SetDefault("ui.colors.error", colors.Error)
	v.SetDefault("ui.colors.success", colors.Success)

	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.file", cfg.Log.File)
	v.SetDefault("opener.command", cfg.Opener.Command)
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) string {
	if path == "" {
		return path
	}

	// Expand tilde
	if len(path) >= 2 && path[:2] == "~/" {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}

	// Convert to absolute path if not already absolute
	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}

	return path
}

// expandPaths expands all paths in the config
func expandPaths(cfg *Config) {
	cfg.Database.Path = expandPath(cfg.Database.Path)
	cfg.Log.File = expandPath(cfg.Log.File)
}

// applyFloors replaces nonsensical carousel values with defaults.
func applyFloors(cfg *Config) {
	if cfg.Source.HTTPTimeout <= 0 {
		cfg.Source.HTTPTimeout = defaultConfig().Source.HTTPTimeout
	}
	def := defaultConfig().Carousel
	c := &cfg.Carousel
	if c.FeaturedCount <= 0 {
		c.FeaturedCount = def.FeaturedCount
	}
	if c.PoolSize <= 0 {
		c.PoolSize = def.PoolSize
	}
	if c.AutoSlideInterval <= 0 {
		c.AutoSlideInterval = def.AutoSlideInterval
	}
	if c.RefreshCooldown <= 0 {
		c.RefreshCooldown = def.RefreshCooldown
	}
	if c.RotateDuration <= 0 {
		c.RotateDuration = def.RotateDuration
	}
	if c.SwipeThreshold < 0 {
		c.SwipeThreshold = def.SwipeThreshold
	}
	if c.CellPx <= 0 {
		c.CellPx = def.CellPx
	}
	if c.CardWidth < 16 {
		c.CardWidth = def.CardWidth
	}
	if c.CardGap < 0 {
		c.CardGap = def.CardGap
	}
	if c.CategoryLabels == nil {
		c.CategoryLabels = map[string]string{}
	}
}

func Save(config *Config, path string) error {
	v := viper.New()

	// Convert durations to strings for TOML readability
	dbCfg := map[string]interface{}{
		"path":    config.Database.Path,
		"timeout": config.Database.Timeout.String(),
	}

	sourceCfg := map[string]interface{}{
		"endpoint":     config.Source.Endpoint,
		"http_timeout": config.Source.HTTPTimeout.String(),
		"user_agent":   config.Source.UserAgent,
		"detail_base":  config.Source.DetailBase,
	}

	carouselCfg := map[string]interface{}{
		"featured_count":      config.Carousel.FeaturedCount,
		"pool_size":           config.Carousel.PoolSize,
		"auto_slide_interval": config.Carousel.AutoSlideInterval.String(),
		"refresh_cooldown":    config.Carousel.RefreshCooldown.String(),
		"rotate_duration":     config.Carousel.RotateDuration.String(),
		"swipe_threshold":     config.Carousel.SwipeThreshold,
		"cell_px":             config.Carousel.CellPx,
		"card_width":          config.Carousel.CardWidth,
		"card_gap":            config.Carousel.CardGap,
		"category_labels":     config.Carousel.CategoryLabels,
	}

	v.Set("database", dbCfg)
	v.Set("source", sourceCfg)
	v.Set("carousel", carouselCfg)
	c := config.UI.Colors
	v.Set("ui", map[string]interface{}{
		"colors": map[string]interface{}{
			"primary":   c.Primary,
			"secondary": c.Secondary,
			"accent":    c.Accent,
			"text":      c.Text,
			"muted":     c.Muted,
			"error":     c.Error,
			"success":   c.Success,
		},
	})
	v.Set("log", map[string]interface{}{"level": config.Log.Level, "file": config.Log.File})
	v.Set("opener", map[string]interface{}{"command": config.Opener.Command})

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return v.WriteConfigAs(path)
}

func GenerateDefaultConfig(path string) error {
	return Save(defaultConfig(), path)
}

// DefaultConfigPath is where GenerateDefaultConfig writes without --config.
func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "featured", "config.toml")
}
