package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-socialtext/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrTooManyDomains  = errors.New("too many site domains")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length and count limits.
const (
	MaxDomains         = 32
	MaxDomainLength    = 253  // RFC 1035
	MaxTLDs            = 5000 // IANA lists ~1500
	MaxTLDLength       = 63
	MaxServices        = 64
	MaxTitleLength     = 100
	MaxURLLength       = 2048 // Browser limit
	MaxShortCodes      = 16
	MaxShortCodeLength = 32
	MaxDisplayLength   = 1000
	MaxBasePathLength  = 4096
)

// Output defaults applied when neither config, environment nor flags set a value.
const (
	DefaultFormat    = "text"
	DefaultColorMode = "auto"
)

const usernamePlaceholder = "{}"

// Config holds all configuration for text processing.
type Config struct {
	SiteDomains     []string            `yaml:"siteDomains"`     // First entry is the primary domain
	MatchSubdomains bool                `yaml:"matchSubdomains"` // Treat subdomains of site domains as local
	TextFormatter   TextFormatterConfig `yaml:"textFormatter"`
	Preview         PreviewConfig       `yaml:"preview"`
	Output          OutputConfig        `yaml:"output"`
	Assets          AssetsConfig        `yaml:"assets"`
}

// TextFormatterConfig defines tokenizer extensions.
type TextFormatterConfig struct {
	TLDList                []string        `yaml:"tldList"` // Merged with the embedded list
	ForeignMentionServices []ServiceConfig `yaml:"foreignMentionServices"`
}

// ServiceConfig describes a foreign mention service.
// A non-empty list replaces the built-in services.
type ServiceConfig struct {
	Title      string   `yaml:"title"`
	LinkTpl    string   `yaml:"linkTpl"` // "{}" is replaced by the username
	ShortCodes []string `yaml:"shortCodes"`
}

// PreviewConfig defines which links are skipped by embed selection.
type PreviewConfig struct {
	SkipLocal     bool `yaml:"skipLocal"`
	SkipNoPreview bool `yaml:"skipNoPreview"`
}

// OutputConfig defines CLI output options.
type OutputConfig struct {
	Format        string `yaml:"format"`        // "text", "json", "yaml" ("" = DefaultFormat)
	Color         string `yaml:"color"`         // "auto", "always", "never" ("" = DefaultColorMode)
	DisplayLength int    `yaml:"displayLength"` // Link display truncation in runes (0 = none)
}

// AssetsConfig defines list loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded lists
}

// Validate checks field lengths, counts and enumerated values.
// Called automatically by LoadConfig.
func (c *Config) Validate() error {
	if len(c.SiteDomains) > MaxDomains {
		return fmt.Errorf("%w: siteDomains (%d entries, max %d)", ErrTooManyDomains, len(c.SiteDomains), MaxDomains)
	}
	for i, d := range c.SiteDomains {
		field := fmt.Sprintf("siteDomains[%d]", i)
		if strings.TrimSpace(d) == "" {
			return fmt.Errorf("%w: %s: empty domain", ErrInvalidValue, field)
		}
		if err := validateFieldLength(field, d, MaxDomainLength); err != nil {
			return err
		}
	}

	if err := c.TextFormatter.validate(); err != nil {
		return err
	}

	switch strings.ToLower(c.Output.Format) {
	case "", "text", "json", "yaml":
	default:
		return fmt.Errorf("%w: output.format %q (must be text, json, or yaml)", ErrInvalidValue, c.Output.Format)
	}
	switch strings.ToLower(c.Output.Color) {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("%w: output.color %q (must be auto, always, or never)", ErrInvalidValue, c.Output.Color)
	}
	if c.Output.DisplayLength < 0 || c.Output.DisplayLength > MaxDisplayLength {
		return fmt.Errorf("%w: output.displayLength must be between 0 and %d, got %d", ErrInvalidValue, MaxDisplayLength, c.Output.DisplayLength)
	}

	if c.Assets.BasePath != "" {
		if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxBasePathLength); err != nil {
			return err
		}
		info, err := os.Stat(c.Assets.BasePath)
		if err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("%w: assets.basePath: directory does not exist: %s", ErrInvalidValue, c.Assets.BasePath)
			}
			return fmt.Errorf("assets.basePath: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("%w: assets.basePath: not a directory: %s", ErrInvalidValue, c.Assets.BasePath)
		}
	}

	return nil
}

func (t *TextFormatterConfig) validate() error {
	if len(t.TLDList) > MaxTLDs {
		return fmt.Errorf("%w: textFormatter.tldList (%d entries, max %d)", ErrInvalidValue, len(t.TLDList), MaxTLDs)
	}
	for i, tld := range t.TLDList {
		if err := validateFieldLength(fmt.Sprintf("textFormatter.tldList[%d]", i), tld, MaxTLDLength); err != nil {
			return err
		}
	}

	if len(t.ForeignMentionServices) > MaxServices {
		return fmt.Errorf("%w: textFormatter.foreignMentionServices (%d entries, max %d)", ErrInvalidValue, len(t.ForeignMentionServices), MaxServices)
	}
	for i, s := range t.ForeignMentionServices {
		prefix := fmt.Sprintf("textFormatter.foreignMentionServices[%d]", i)
		if err := validateFieldLength(prefix+".title", s.Title, MaxTitleLength); err != nil {
			return err
		}
		if err := validateFieldLength(prefix+".linkTpl", s.LinkTpl, MaxURLLength); err != nil {
			return err
		}
		if !strings.Contains(s.LinkTpl, usernamePlaceholder) {
			return fmt.Errorf("%w: %s.linkTpl: must contain %q", ErrInvalidValue, prefix, usernamePlaceholder)
		}
		if len(s.ShortCodes) == 0 || len(s.ShortCodes) > MaxShortCodes {
			return fmt.Errorf("%w: %s.shortCodes: need 1 to %d entries, got %d", ErrInvalidValue, prefix, MaxShortCodes, len(s.ShortCodes))
		}
		for j, code := range s.ShortCodes {
			field := fmt.Sprintf("%s.shortCodes[%d]", prefix, j)
			if err := validateFieldLength(field, code, MaxShortCodeLength); err != nil {
				return err
			}
			if !isASCIILetters(code) {
				return fmt.Errorf("%w: %s: %q must be ASCII letters only", ErrInvalidValue, field, code)
			}
		}
	}
	return nil
}

func isASCIILetters(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a neutral configuration: no site domains, no
// preview filters, output settings left to the caller's defaults.
func DefaultConfig() *Config {
	return &Config{
		SiteDomains: nil,
		Preview:     PreviewConfig{SkipLocal: false, SkipNoPreview: false},
		Output:      OutputConfig{Format: "", Color: ""},
		Assets:      AssetsConfig{BasePath: ""},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/socialtext/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "socialtext", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
