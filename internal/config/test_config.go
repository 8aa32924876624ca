package config

import "time"

// TestConfig returns a config suitable for testing
func TestConfig() *Config {
	carousel := defaultConfig().Carousel
	carousel.CategoryLabels = map[string]string{}

	return &Config{
		Database: DatabaseConfig{
			Path:    ":memory:",
			Timeout: 1 * time.Second,
		},
		Source: SourceConfig{
			Endpoint:    "http://127.0.0.1:0/exec",
			HTTPTimeout: 5 * time.Second,
			UserAgent:   "featured-test/1.0",
			DetailBase:  "https://apps.local/",
		},
		Carousel: carousel,
		UI:       defaultConfig().UI,
		Log:      LogConfig{Level: "off"},
	}
}
