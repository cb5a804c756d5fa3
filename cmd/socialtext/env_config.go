package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-socialtext/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string   // SOCIALTEXT_CONFIG: config file name or path
	Domains    []string // SOCIALTEXT_DOMAINS: comma-separated site domains
	Format     string   // SOCIALTEXT_FORMAT: text, json, yaml
	Color      string   // SOCIALTEXT_COLOR: auto, always, never
	AssetPath  string   // SOCIALTEXT_ASSET_PATH: directory holding lists/*.txt
	Workers    int      // SOCIALTEXT_WORKERS: parallel workers
}

// knownEnvVars lists valid SOCIALTEXT_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"SOCIALTEXT_CONFIG":     true,
	"SOCIALTEXT_DOMAINS":    true,
	"SOCIALTEXT_FORMAT":     true,
	"SOCIALTEXT_COLOR":      true,
	"SOCIALTEXT_ASSET_PATH": true,
	"SOCIALTEXT_WORKERS":    true,
	"SOCIALTEXT_CONTAINER":  true, // doctor only
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("SOCIALTEXT_CONFIG"),
		Domains:    splitList(os.Getenv("SOCIALTEXT_DOMAINS")),
		Format:     os.Getenv("SOCIALTEXT_FORMAT"),
		Color:      os.Getenv("SOCIALTEXT_COLOR"),
		AssetPath:  os.Getenv("SOCIALTEXT_ASSET_PATH"),
	}

	// Invalid worker counts are ignored, like an unset variable.
	if workers := os.Getenv("SOCIALTEXT_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 && w <= maxWorkers {
			cfg.Workers = w
		}
	}

	return cfg
}

// splitList splits a comma-separated value, dropping blank entries.
func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// unknownEnvVars returns the names of unrecognized SOCIALTEXT_* variables.
// Helps catch typos like SOCIALTEXT_DOMAIN instead of SOCIALTEXT_DOMAINS.
func unknownEnvVars() []string {
	var names []string
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "SOCIALTEXT_") {
			name, _, _ := strings.Cut(env, "=")
			if !knownEnvVars[name] {
				names = append(names, name)
			}
		}
	}
	return names
}

// warnUnknownEnvVars logs warnings for unrecognized SOCIALTEXT_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, name := range unknownEnvVars() {
		fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if len(env.Domains) > 0 && len(cfg.SiteDomains) == 0 {
		cfg.SiteDomains = env.Domains
	}
	if env.Format != "" && cfg.Output.Format == "" {
		cfg.Output.Format = env.Format
	}
	if env.Color != "" && cfg.Output.Color == "" {
		cfg.Output.Color = env.Color
	}
	if env.AssetPath != "" && cfg.Assets.BasePath == "" {
		cfg.Assets.BasePath = env.AssetPath
	}
}
