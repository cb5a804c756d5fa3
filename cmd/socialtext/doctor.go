package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/alnah/go-socialtext"
	"github.com/alnah/go-socialtext/internal/assets"
	"github.com/alnah/go-socialtext/internal/config"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"` // "ready", "warnings", "errors"
	Config   configInfo `json:"config"`
	Lists    listsInfo  `json:"lists"`
	Env      envInfo    `json:"environment"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// configInfo holds the result of loading the configuration.
type configInfo struct {
	Source  string   `json:"source"` // "default" or the SOCIALTEXT_CONFIG value
	Loaded  bool     `json:"loaded"`
	Domains []string `json:"site_domains,omitempty"`
	Format  string   `json:"format"`
	Color   string   `json:"color"`
}

// listsInfo holds the result of loading the TLD and no-preview lists.
type listsInfo struct {
	BasePath       string   `json:"base_path,omitempty"`
	Overrides      []string `json:"overrides,omitempty"` // lists read from BasePath
	Loaded         bool     `json:"loaded"`
	TLDs           int      `json:"tlds"`
	NoPreviewHosts int      `json:"no_preview_hosts"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS             string `json:"os"`
	Arch           string `json:"arch"`
	Container      bool   `json:"container"`
	ContainerHint  string `json:"container_hint,omitempty"`
	CI             bool   `json:"ci"`
	MaxProcs       int    `json:"gomaxprocs"`
	Workers        int    `json:"workers"`
	StdoutTerminal bool   `json:"stdout_terminal"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	jsonOutput := false
	for _, arg := range args {
		switch arg {
		case "--json":
			jsonOutput = true
		case "-h", "--help":
			printCommandUsage(env.Stdout, "doctor")
			return ExitSuccess
		default:
			fmt.Fprintf(env.Stderr, "doctor: unknown flag: %s\n", arg)
			fmt.Fprintln(env.Stderr, "Run 'socialtext help doctor' for usage.")
			return ExitUsage
		}
	}

	result := runDoctor(env)

	if jsonOutput {
		data, err := marshalJSON(result)
		if err != nil {
			return reportError(err, env)
		}
		_, _ = env.Stdout.Write(data)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(env *Environment) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:             runtime.GOOS,
			Arch:           runtime.GOARCH,
			MaxProcs:       runtime.GOMAXPROCS(0),
			StdoutTerminal: isTerminal(env.Stdout),
		},
	}

	envCfg := loadEnvConfig()
	checkEnvVars(result, envCfg)
	cfg := checkConfig(result, envCfg, env)
	checkLists(result, cfg)
	checkEnvironment(result, envCfg)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkEnvVars reports unknown SOCIALTEXT_* variables and values that
// loadEnvConfig silently ignored.
func checkEnvVars(result *doctorResult, envCfg *envConfig) {
	for _, name := range unknownEnvVars() {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Unknown environment variable %s (typo?)", name))
	}
	if v := os.Getenv("SOCIALTEXT_WORKERS"); v != "" && envCfg.Workers == 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("SOCIALTEXT_WORKERS=%q ignored (must be 1 to %d)", v, maxWorkers))
	}
}

// checkConfig loads the configuration the way message commands do and
// validates it. Returns the default config when loading fails.
func checkConfig(result *doctorResult, envCfg *envConfig, env *Environment) *config.Config {
	result.Config.Source = "default"
	if envCfg.ConfigPath != "" {
		result.Config.Source = envCfg.ConfigPath
	}

	cfg, err := loadConfig("", envCfg, env)
	if err != nil {
		result.Errors = append(result.Errors, firstLine(err))
		return config.DefaultConfig()
	}
	applyEnvConfig(envCfg, cfg)

	if err := cfg.Validate(); err != nil {
		result.Errors = append(result.Errors, "Invalid configuration: "+firstLine(err))
		return config.DefaultConfig()
	}
	result.Config.Loaded = true
	result.Config.Domains = cfg.SiteDomains

	format, err := resolveFormat(cfg.Output.Format)
	if err != nil {
		result.Errors = append(result.Errors, firstLine(err))
	}
	result.Config.Format = format
	result.Config.Color = cfg.Output.Color
	if result.Config.Color == "" {
		result.Config.Color = config.DefaultColorMode
	}

	domains := socialtext.LocalDomains{Domains: cfg.SiteDomains, MatchSubdomains: cfg.MatchSubdomains}
	switch err := domains.Validate(); {
	case err != nil:
		result.Errors = append(result.Errors, firstLine(err))
	case len(cfg.SiteDomains) == 0:
		result.Warnings = append(result.Warnings,
			"No site domains configured, every link is external. Set siteDomains or SOCIALTEXT_DOMAINS")
	}
	return cfg
}

// checkLists loads the TLD and no-preview lists.
func checkLists(result *doctorResult, cfg *config.Config) {
	result.Lists.BasePath = cfg.Assets.BasePath
	lists, err := socialtext.LoadLists(cfg.Assets.BasePath)
	if err != nil {
		result.Errors = append(result.Errors, "Loading lists: "+firstLine(err))
		return
	}
	result.Lists.Loaded = true
	result.Lists.TLDs = len(lists.TLDs)
	result.Lists.NoPreviewHosts = len(lists.NoPreviewHosts)

	if cfg.Assets.BasePath == "" {
		return
	}
	for _, name := range []string{assets.ListTLDs, assets.ListNoPreview} {
		if _, err := os.Stat(filepath.Join(cfg.Assets.BasePath, "lists", name+".txt")); err == nil {
			result.Lists.Overrides = append(result.Lists.Overrides, name)
		}
	}
	if len(result.Lists.Overrides) == 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("No list files in %s, built-in lists are used. Expected lists/tlds.txt or lists/nopreview.txt",
				cfg.Assets.BasePath))
	}
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult, envCfg *envConfig) {
	result.Env.Container, result.Env.ContainerHint = isContainer()

	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	result.Env.Workers = resolvePoolSize(envCfg.Workers)
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer() (bool, string) {
	if os.Getenv("SOCIALTEXT_CONTAINER") == "1" {
		return true, "SOCIALTEXT_CONTAINER=1"
	}
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true, "/.dockerenv"
	}
	// Podman and systemd-nspawn
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// firstLine drops the hint lines that CLI errors carry.
func firstLine(err error) string {
	msg, _, _ := strings.Cut(err.Error(), "\n")
	return msg
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "socialtext doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Configuration")
	if r.Config.Loaded {
		fmt.Fprintf(w, "  [OK] Source: %s\n", r.Config.Source)
		if len(r.Config.Domains) > 0 {
			fmt.Fprintf(w, "  [OK] Site domains: %s\n", strings.Join(r.Config.Domains, ", "))
		}
		fmt.Fprintf(w, "  [OK] Output: %s, color %s\n", r.Config.Format, r.Config.Color)
	} else {
		fmt.Fprintf(w, "  [ERROR] Not loaded (%s)\n", r.Config.Source)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Lists")
	if r.Lists.Loaded {
		source := "embedded"
		if len(r.Lists.Overrides) > 0 {
			source = fmt.Sprintf("%s (%s)", r.Lists.BasePath, strings.Join(r.Lists.Overrides, ", "))
		}
		fmt.Fprintf(w, "  [OK] Source: %s\n", source)
		fmt.Fprintf(w, "  [OK] TLDs: %d\n", r.Lists.TLDs)
		fmt.Fprintf(w, "  [OK] No-preview hosts: %d\n", r.Lists.NoPreviewHosts)
	} else {
		fmt.Fprintln(w, "  [ERROR] Not loaded")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	fmt.Fprintf(w, "  [OK] Workers: %d (GOMAXPROCS %d)\n", r.Env.Workers, r.Env.MaxProcs)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
