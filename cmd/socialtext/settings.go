package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	socialtext "github.com/alnah/go-socialtext"
	"github.com/alnah/go-socialtext/internal/config"
	"github.com/alnah/go-socialtext/internal/hints"
)

// Sentinel errors for settings resolution.
var (
	ErrUnknownFormat      = errors.New("unknown output format")
	ErrInvalidColorMode   = errors.New("invalid color mode")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

const maxWorkers = 64

var (
	outputFormats = []string{"text", "json", "yaml"}
	colorModes    = []string{"auto", "always", "never"}
)

// settings is the resolved configuration of one command run.
type settings struct {
	cfg       *config.Config
	domains   socialtext.LocalDomains
	lists     *socialtext.Lists
	tokenizer *socialtext.Tokenizer
	format    string
	color     bool
	width     int
	workers   int
}

// resolveSettings merges config file, environment and flags, then builds the
// tokenizer. Precedence: flags > env > config > defaults.
func resolveSettings(f *cmdFlags, env *Environment, logger *slog.Logger) (*settings, error) {
	envCfg := loadEnvConfig()
	if !f.common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	cfg, err := loadConfig(f.common.config, envCfg, env)
	if err != nil {
		return nil, err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(f, cfg)

	format, err := resolveFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	color, err := resolveColor(cfg.Output.Color, env.Stdout)
	if err != nil {
		return nil, err
	}
	workers, err := resolveWorkers(f.input.workers, envCfg.Workers)
	if err != nil {
		return nil, err
	}
	cfg.Output.Format = format
	if cfg.Output.Color == "" {
		cfg.Output.Color = config.DefaultColorMode
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	domains := socialtext.LocalDomains{Domains: cfg.SiteDomains, MatchSubdomains: cfg.MatchSubdomains}
	if err := domains.Validate(); err != nil {
		return nil, fmt.Errorf("%w%s", err, hints.ForInvalidDomain())
	}

	lists, err := socialtext.LoadLists(cfg.Assets.BasePath)
	if err != nil {
		return nil, fmt.Errorf("loading lists: %w%s", err, hints.ForListNotFound(cfg.Assets.BasePath))
	}

	tok, err := newTokenizer(f.tokenizer.rules, lists, cfg)
	if err != nil {
		return nil, err
	}

	s := &settings{
		cfg:       cfg,
		domains:   domains,
		lists:     lists,
		tokenizer: tok,
		format:    format,
		color:     color,
		width:     resolveWidth(f.output.width, env.Stdout),
		workers:   workers,
	}

	logger.Debug("settings resolved",
		"domains", cfg.SiteDomains,
		"rules", tok.Rules(),
		"tlds", len(lists.TLDs)+len(cfg.TextFormatter.TLDList),
		"format", s.format,
		"color", s.color,
		"width", s.width,
		"workers", s.workers,
	)
	return s, nil
}

// loadConfig returns the named config file, or a copy of the environment's
// base config when no name is given by flag or SOCIALTEXT_CONFIG.
func loadConfig(name string, envCfg *envConfig, env *Environment) (*config.Config, error) {
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name == "" {
		if env.Config == nil {
			return config.DefaultConfig(), nil
		}
		return cloneConfig(env.Config), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(userConfigCandidates(name)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// userConfigCandidates lists where a named config may be created.
func userConfigCandidates(name string) []string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	return []string{filepath.Join(dir, "socialtext", name+".yaml")}
}

// cloneConfig copies cfg so later merges never touch the caller's slices.
func cloneConfig(cfg *config.Config) *config.Config {
	c := *cfg
	c.SiteDomains = slices.Clone(cfg.SiteDomains)
	c.TextFormatter.TLDList = slices.Clone(cfg.TextFormatter.TLDList)
	c.TextFormatter.ForeignMentionServices = slices.Clone(cfg.TextFormatter.ForeignMentionServices)
	return &c
}

// mergeFlags applies command-line values over the config.
// Boolean flags only apply when set explicitly, so --subdomains=false can
// override a config file.
func mergeFlags(f *cmdFlags, cfg *config.Config) {
	if len(f.site.domains) > 0 {
		cfg.SiteDomains = slices.Clone(f.site.domains)
	}
	if f.changed["subdomains"] {
		cfg.MatchSubdomains = f.site.subdomains
	}

	if len(f.tokenizer.tlds) > 0 {
		cfg.TextFormatter.TLDList = slices.Concat(cfg.TextFormatter.TLDList, f.tokenizer.tlds)
	}
	if f.tokenizer.assetPath != "" {
		cfg.Assets.BasePath = f.tokenizer.assetPath
	}

	if f.output.format != "" {
		cfg.Output.Format = f.output.format
	}
	if f.output.color != "" {
		cfg.Output.Color = f.output.color
	}
	if f.changed["display-length"] {
		cfg.Output.DisplayLength = f.links.displayLength
	}

	if f.changed["skip-local"] {
		cfg.Preview.SkipLocal = f.embed.skipLocal
	}
	if f.changed["skip-no-preview"] {
		cfg.Preview.SkipNoPreview = f.embed.skipNoPreview
	}
}

// resolveFormat normalizes the output format, applying the default.
func resolveFormat(format string) (string, error) {
	if format == "" {
		return config.DefaultFormat, nil
	}
	format = strings.ToLower(format)
	if !slices.Contains(outputFormats, format) {
		return "", fmt.Errorf("%w: %q%s", ErrUnknownFormat, format, hints.ForUnknownValue(outputFormats))
	}
	return format, nil
}

// resolveColor decides whether structured output is highlighted.
// "auto" colors only when w is a terminal.
func resolveColor(mode string, w io.Writer) (bool, error) {
	if mode == "" {
		mode = config.DefaultColorMode
	}
	switch strings.ToLower(mode) {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		return isTerminal(w), nil
	default:
		return false, fmt.Errorf("%w: %q%s", ErrInvalidColorMode, mode, hints.ForUnknownValue(colorModes))
	}
}

// resolveWorkers validates the --workers flag and falls back to the
// environment, then to an automatic pool size.
func resolveWorkers(flagWorkers, envWorkers int) (int, error) {
	if flagWorkers < 0 || flagWorkers > maxWorkers {
		return 0, fmt.Errorf("%w: %d%s", ErrInvalidWorkerCount, flagWorkers, hints.ForWorkers(maxWorkers))
	}
	n := flagWorkers
	if n == 0 {
		n = envWorkers
	}
	return resolvePoolSize(n), nil
}

// newTokenizer builds the tokenizer from the loaded lists, config extensions
// and the --rules selection.
func newTokenizer(ruleNames []string, lists *socialtext.Lists, cfg *config.Config) (*socialtext.Tokenizer, error) {
	opts := []socialtext.Option{
		socialtext.WithTLDs(lists.TLDs),
		socialtext.WithExtraTLDs(cfg.TextFormatter.TLDList),
	}

	if services := cfg.TextFormatter.ForeignMentionServices; len(services) > 0 {
		opts = append(opts, socialtext.WithForeignServices(toForeignServices(services)))
	}

	if len(ruleNames) > 0 {
		rules := make([]socialtext.Rule, 0, len(ruleNames))
		for _, name := range ruleNames {
			r, err := socialtext.ParseRule(name)
			if err != nil {
				return nil, fmt.Errorf("%w%s", err, hints.ForUnknownValue(ruleNameList()))
			}
			rules = append(rules, r)
		}
		opts = append(opts, socialtext.WithRules(rules...))
	}

	tok, err := socialtext.NewTokenizer(opts...)
	if err != nil {
		return nil, fmt.Errorf("building tokenizer: %w", err)
	}
	return tok, nil
}

func toForeignServices(services []config.ServiceConfig) []socialtext.ForeignService {
	out := make([]socialtext.ForeignService, len(services))
	for i, s := range services {
		out[i] = socialtext.ForeignService{
			Title:      s.Title,
			LinkTpl:    s.LinkTpl,
			ShortCodes: slices.Clone(s.ShortCodes),
		}
	}
	return out
}

// ruleNameList returns the rule names accepted by --rules.
func ruleNameList() []string {
	rules := socialtext.AllRules()
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.String()
	}
	return names
}
