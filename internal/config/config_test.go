package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if len(cfg.SiteDomains) != 0 {
		t.Errorf("SiteDomains = %v, want empty", cfg.SiteDomains)
	}
	if cfg.MatchSubdomains {
		t.Error("MatchSubdomains = true, want false")
	}
	if cfg.Preview.SkipLocal || cfg.Preview.SkipNoPreview {
		t.Errorf("Preview = %+v, want all false", cfg.Preview)
	}
	if cfg.Output.Format != "" || cfg.Output.Color != "" {
		t.Errorf("Output = %+v, want empty format and color", cfg.Output)
	}
	if cfg.Assets.BasePath != "" {
		t.Errorf("Assets.BasePath = %q, want empty", cfg.Assets.BasePath)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
}

func TestValidateFieldLength(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		value     string
		maxLength int
		wantErr   bool
	}{
		{
			name:      "empty value is valid",
			fieldName: "test",
			value:     "",
			maxLength: 10,
			wantErr:   false,
		},
		{
			name:      "value at limit is valid",
			fieldName: "test",
			value:     "1234567890",
			maxLength: 10,
			wantErr:   false,
		},
		{
			name:      "value over limit returns error",
			fieldName: "test.field",
			value:     "12345678901",
			maxLength: 10,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFieldLength(tt.fieldName, tt.value, tt.maxLength)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, ErrFieldTooLong) {
					t.Errorf("error = %v, want ErrFieldTooLong", err)
				}
				if !strings.Contains(err.Error(), tt.fieldName) {
					t.Errorf("error %q should name field %q", err, tt.fieldName)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestConfig_Validate - Field Rules
// ---------------------------------------------------------------------------

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	validService := ServiceConfig{
		Title:      "Mastodon",
		LinkTpl:    "https://mastodon.social/@{}",
		ShortCodes: []string{"mstdn"},
	}

	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{
			name: "full valid config",
			cfg: Config{
				SiteDomains:     []string{"freefeed.net", "omega.freefeed.net"},
				MatchSubdomains: true,
				TextFormatter: TextFormatterConfig{
					TLDList:                []string{"lan"},
					ForeignMentionServices: []ServiceConfig{validService},
				},
				Output: OutputConfig{Format: "JSON", Color: "never", DisplayLength: 50},
			},
		},
		{
			name:    "too many domains",
			cfg:     Config{SiteDomains: make([]string, MaxDomains+1)},
			wantErr: ErrTooManyDomains,
		},
		{
			name:    "empty domain",
			cfg:     Config{SiteDomains: []string{"freefeed.net", " "}},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "domain too long",
			cfg:     Config{SiteDomains: []string{strings.Repeat("a", MaxDomainLength+1)}},
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "tld too long",
			cfg:     Config{TextFormatter: TextFormatterConfig{TLDList: []string{strings.Repeat("x", MaxTLDLength+1)}}},
			wantErr: ErrFieldTooLong,
		},
		{
			name: "template without placeholder",
			cfg: Config{TextFormatter: TextFormatterConfig{ForeignMentionServices: []ServiceConfig{
				{Title: "X", LinkTpl: "https://example.com/", ShortCodes: []string{"x"}},
			}}},
			wantErr: ErrInvalidValue,
		},
		{
			name: "service without short codes",
			cfg: Config{TextFormatter: TextFormatterConfig{ForeignMentionServices: []ServiceConfig{
				{Title: "X", LinkTpl: "https://example.com/{}"},
			}}},
			wantErr: ErrInvalidValue,
		},
		{
			name: "short code with digits",
			cfg: Config{TextFormatter: TextFormatterConfig{ForeignMentionServices: []ServiceConfig{
				{Title: "X", LinkTpl: "https://example.com/{}", ShortCodes: []string{"x1"}},
			}}},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "unknown format",
			cfg:     Config{Output: OutputConfig{Format: "xml"}},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "unknown color mode",
			cfg:     Config{Output: OutputConfig{Color: "sometimes"}},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "negative display length",
			cfg:     Config{Output: OutputConfig{DisplayLength: -1}},
			wantErr: ErrInvalidValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Validate_Assets(t *testing.T) {
	t.Parallel()

	t.Run("empty basePath is valid", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{Assets: AssetsConfig{BasePath: ""}}
		if err := cfg.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("valid directory basePath is valid", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{Assets: AssetsConfig{BasePath: t.TempDir()}}
		if err := cfg.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("nonexistent basePath returns error", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{Assets: AssetsConfig{BasePath: "/nonexistent/path/xyz123"}}
		err := cfg.Validate()
		if err == nil {
			t.Fatal("expected error for nonexistent path")
		}
		if !strings.Contains(err.Error(), "does not exist") {
			t.Errorf("error should mention 'does not exist', got: %v", err)
		}
	})

	t.Run("file instead of directory returns error", func(t *testing.T) {
		t.Parallel()
		filePath := filepath.Join(t.TempDir(), "notadir.txt")
		if err := os.WriteFile(filePath, []byte("test"), 0o644); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}

		cfg := &Config{Assets: AssetsConfig{BasePath: filePath}}
		err := cfg.Validate()
		if err == nil {
			t.Fatal("expected error for file path")
		}
		if !strings.Contains(err.Error(), "not a directory") {
			t.Errorf("error should mention 'not a directory', got: %v", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestLoadConfig - File Resolution and Parsing
// ---------------------------------------------------------------------------

func TestLoadConfig(t *testing.T) {
	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("valid file path loads config", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "test.yaml")
		content := `siteDomains:
  - freefeed.net
  - omega.freefeed.net
matchSubdomains: true
textFormatter:
  tldList: [lan]
  foreignMentionServices:
    - title: Mastodon
      linkTpl: "https://mastodon.social/@{}"
      shortCodes: [mstdn]
preview:
  skipLocal: true
output:
  format: json
`
		if err := os.WriteFile(configPath, []byte(content), 0o600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		cfg, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if len(cfg.SiteDomains) != 2 || cfg.SiteDomains[0] != "freefeed.net" {
			t.Errorf("SiteDomains = %v, want [freefeed.net omega.freefeed.net]", cfg.SiteDomains)
		}
		if !cfg.MatchSubdomains {
			t.Error("MatchSubdomains = false, want true")
		}
		if len(cfg.TextFormatter.ForeignMentionServices) != 1 {
			t.Fatalf("ForeignMentionServices = %d entries, want 1", len(cfg.TextFormatter.ForeignMentionServices))
		}
		if got := cfg.TextFormatter.ForeignMentionServices[0].ShortCodes; len(got) != 1 || got[0] != "mstdn" {
			t.Errorf("ShortCodes = %v, want [mstdn]", got)
		}
		if !cfg.Preview.SkipLocal {
			t.Error("Preview.SkipLocal = false, want true")
		}
		if cfg.Output.Format != "json" {
			t.Errorf("Output.Format = %q, want %q", cfg.Output.Format, "json")
		}
	})

	t.Run("omitted fields stay empty", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "partial.yaml")
		if err := os.WriteFile(configPath, []byte("siteDomains: [freefeed.net]\n"), 0o600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		cfg, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Output.Format != "" || cfg.Preview.SkipLocal {
			t.Errorf("cfg = %+v, want unset output and preview", cfg)
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		_, err := LoadConfig("/nonexistent/path/config.yaml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "invalid.yaml")
		if err := os.WriteFile(configPath, []byte("siteDomains: [unclosed"), 0o600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse in strict mode", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "unknown.yaml")
		content := `siteDomains: [freefeed.net]
siteTitle: "should fail"
`
		if err := os.WriteFile(configPath, []byte(content), 0o600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid value fails validation", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "badformat.yaml")
		if err := os.WriteFile(configPath, []byte("output:\n  format: xml\n"), 0o600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrInvalidValue) {
			t.Errorf("error = %v, want ErrInvalidValue", err)
		}
	})

	t.Run("config name resolves yaml in current directory", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "myconfig.yaml"), []byte("siteDomains: [from.yaml]\n"), 0o600); err != nil {
			t.Fatalf("setup: %v", err)
		}
		t.Chdir(dir)

		cfg, err := LoadConfig("myconfig")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if len(cfg.SiteDomains) != 1 || cfg.SiteDomains[0] != "from.yaml" {
			t.Errorf("SiteDomains = %v, want [from.yaml]", cfg.SiteDomains)
		}
	})

	t.Run("config name resolves yml when yaml not found", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "myconfig.yml"), []byte("siteDomains: [from.yml]\n"), 0o600); err != nil {
			t.Fatalf("setup: %v", err)
		}
		t.Chdir(dir)

		cfg, err := LoadConfig("myconfig")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if len(cfg.SiteDomains) != 1 || cfg.SiteDomains[0] != "from.yml" {
			t.Errorf("SiteDomains = %v, want [from.yml]", cfg.SiteDomains)
		}
	})

	t.Run("unknown config name lists tried paths", func(t *testing.T) {
		t.Chdir(t.TempDir())

		_, err := LoadConfig("does-not-exist")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "does-not-exist.yml") {
			t.Errorf("error %q should list tried paths", err)
		}
	})
}

func TestIsFilePath(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"work", false},
		{"./work.yaml", true},
		{"configs/work.yaml", true},
		{`C:\configs\work.yaml`, true},
	}

	for _, tt := range tests {
		if got := isFilePath(tt.input); got != tt.want {
			t.Errorf("isFilePath(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
