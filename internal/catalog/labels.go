package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed categories.toml
var categoriesTOML []byte

type labelFile struct {
	Labels map[string]string `toml:"labels"`
}

// Labels maps category keys to display labels.
type Labels struct {
	labels map[string]string
}

// NewLabels loads the built-in table and applies overrides on top.
func NewLabels(overrides map[string]string) (*Labels, error) {
	var file labelFile
	if err := toml.Unmarshal(categoriesTOML, &file); err != nil {
		return nil, fmt.Errorf("parsing categories.toml: %w", err)
	}

	l := &Labels{labels: make(map[string]string, len(file.Labels)+len(overrides))}
	for k, v := range file.Labels {
		l.labels[strings.ToLower(k)] = v
	}
	for k, v := range overrides {
		if v = strings.TrimSpace(v); v != "" {
			l.labels[strings.ToLower(strings.TrimSpace(k))] = v
		}
	}
	return l, nil
}

// Label returns the display label for key, or key itself when unmapped.
func (l *Labels) Label(key string) string {
	if l != nil {
		if label, ok := l.labels[strings.ToLower(strings.TrimSpace(key))]; ok {
			return label
		}
	}
	return key
}

func (l *Labels) Len() int {
	if l == nil {
		return 0
	}
	return len(l.labels)
}
