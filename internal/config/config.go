// Package config loads scanner settings from a yaml file layered over
// defaults.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/willbo114-dot/hoops-edge/internal/pricing"
)

// Config holds the tunables of a scan run. Zero values mean "not set" and
// keep the default.
type Config struct {
	OutputDir      string   `yaml:"output_dir,omitempty"`
	CachePath      string   `yaml:"cache_path,omitempty"`
	DefaultBooks   []string `yaml:"default_books,omitempty"`
	SupportedBooks []string `yaml:"supported_books,omitempty"`

	KellyCap              float64                `yaml:"kelly_cap,omitempty"`
	ProbabilityThresholds pricing.RiskThresholds `yaml:"probability_thresholds,omitempty"`
	LineThresholds        pricing.RiskThresholds `yaml:"line_thresholds,omitempty"`

	OddsTTLSeconds  int `yaml:"odds_ttl_seconds,omitempty"`
	StatsTTLSeconds int `yaml:"stats_ttl_seconds,omitempty"`
}

func Default() Config {
	engine := pricing.DefaultEngine()
	return Config{
		OutputDir:             "outputs",
		CachePath:             "outputs/cache.db",
		DefaultBooks:          []string{"DK"},
		SupportedBooks:        []string{"DK", "FD"},
		KellyCap:              engine.KellyCap,
		ProbabilityThresholds: engine.Probability,
		LineThresholds:        engine.Line,
		OddsTTLSeconds:        180,
		StatsTTLSeconds:       86400,
	}
}

// Load returns the defaults overlaid with the yaml file at path. An empty
// path, a missing file or an empty file all yield plain defaults.
func Load(path string) (Config, error) {
	merged := Default()
	if path == "" {
		return merged, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return merged, nil
		}
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	data = []byte(strings.TrimSpace(string(data)))
	if len(data) == 0 {
		return merged, nil
	}

	var overrides Config
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return merge(merged, overrides), nil
}

// merge applies overrides from b onto a. Non-zero fields in b win.
func merge(a, b Config) Config {
	if b.OutputDir != "" {
		a.OutputDir = b.OutputDir
	}
	if b.CachePath != "" {
		a.CachePath = b.CachePath
	}
	if len(b.DefaultBooks) > 0 {
		a.DefaultBooks = b.DefaultBooks
	}
	if len(b.SupportedBooks) > 0 {
		a.SupportedBooks = b.SupportedBooks
	}
	if b.KellyCap != 0 {
		a.KellyCap = b.KellyCap
	}
	if b.ProbabilityThresholds != (pricing.RiskThresholds{}) {
		a.ProbabilityThresholds = b.ProbabilityThresholds
	}
	if b.LineThresholds != (pricing.RiskThresholds{}) {
		a.LineThresholds = b.LineThresholds
	}
	if b.OddsTTLSeconds != 0 {
		a.OddsTTLSeconds = b.OddsTTLSeconds
	}
	if b.StatsTTLSeconds != 0 {
		a.StatsTTLSeconds = b.StatsTTLSeconds
	}
	return a
}

// Engine builds the pricing engine configured by this config.
func (c Config) Engine() pricing.Engine {
	return pricing.Engine{
		Probability: c.ProbabilityThresholds,
		Line:        c.LineThresholds,
		KellyCap:    c.KellyCap,
	}
}

func (c Config) OddsTTL() time.Duration {
	return time.Duration(c.OddsTTLSeconds) * time.Second
}

func (c Config) StatsTTL() time.Duration {
	return time.Duration(c.StatsTTLSeconds) * time.Second
}

// SupportsBooks reports whether every requested book is supported.
func (c Config) SupportsBooks(books []string) bool {
	supported := map[string]bool{}
	for _, b := range c.SupportedBooks {
		supported[b] = true
	}
	for _, b := range books {
		if !supported[b] {
			return false
		}
	}
	return true
}
