package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// siteFlags holds local link classification flags.
type siteFlags struct {
	domains    []string
	subdomains bool
}

// tokenizerFlags holds recognizer and list flags.
type tokenizerFlags struct {
	rules     []string
	tlds      []string
	assetPath string
}

// inputFlags holds message source flags.
type inputFlags struct {
	text    []string
	workers int
}

// outputFlags holds rendering flags.
type outputFlags struct {
	format string
	color  string
	width  int
}

// linksFlags holds links command flags.
type linksFlags struct {
	displayLength int
}

// embedFlags holds embed command flags.
type embedFlags struct {
	skipLocal     bool
	skipNoPreview bool
}

// checkboxFlags holds checkbox command flags.
type checkboxFlags struct {
	status  bool
	check   bool
	uncheck bool
	toggle  bool
}

// cmdFlags holds all flags for a message command. Each command only
// registers the groups it uses.
type cmdFlags struct {
	common    commonFlags
	site      siteFlags
	tokenizer tokenizerFlags
	input     inputFlags
	output    outputFlags
	links     linksFlags
	embed     embedFlags
	checkbox  checkboxFlags

	changed map[string]bool // flags set on the command line
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs")
}

// addSiteFlags adds site domain flags to a FlagSet.
func addSiteFlags(fs *flag.FlagSet, f *siteFlags) {
	fs.StringSliceVarP(&f.domains, "domain", "d", nil, "site domain, repeatable (first is primary)")
	fs.BoolVar(&f.subdomains, "subdomains", false, "treat subdomains of site domains as local")
}

// addTokenizerFlags adds recognizer flags to a FlagSet.
func addTokenizerFlags(fs *flag.FlagSet, f *tokenizerFlags) {
	fs.StringSliceVarP(&f.rules, "rules", "r", nil, "enabled recognizers, comma-separated (default all)")
	fs.StringSliceVar(&f.tlds, "tld", nil, "extra top-level domain, repeatable")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory holding lists/tlds.txt and lists/nopreview.txt")
}

// addInputFlags adds message source flags to a FlagSet.
func addInputFlags(fs *flag.FlagSet, f *inputFlags) {
	fs.StringArrayVarP(&f.text, "text", "t", nil, "message text, repeatable")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
}

// addOutputFlags adds rendering flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.format, "format", "f", "", "output format: text, json, yaml")
	fs.StringVar(&f.color, "color", "", "colorize json and yaml: auto, always, never")
	fs.IntVar(&f.width, "width", 0, "truncate text lines to this width (0 = terminal width, -1 = none)")
}

// addLinksFlags adds links command flags to a FlagSet.
func addLinksFlags(fs *flag.FlagSet, f *linksFlags) {
	fs.IntVar(&f.displayLength, "display-length", 0, "shorten displayed links to this many characters (0 = no limit)")
}

// addEmbedFlags adds embed command flags to a FlagSet.
func addEmbedFlags(fs *flag.FlagSet, f *embedFlags) {
	fs.BoolVar(&f.skipLocal, "skip-local", false, "skip links to the site domains")
	fs.BoolVar(&f.skipNoPreview, "skip-no-preview", false, "skip sites on the no-preview list")
}

// addCheckboxFlags adds checkbox command flags to a FlagSet.
func addCheckboxFlags(fs *flag.FlagSet, f *checkboxFlags) {
	fs.BoolVar(&f.status, "status", false, "print checked, unchecked or none (default)")
	fs.BoolVar(&f.check, "check", false, "mark the checkbox as checked")
	fs.BoolVar(&f.uncheck, "uncheck", false, "mark the checkbox as unchecked")
	fs.BoolVar(&f.toggle, "toggle", false, "flip the checkbox state")
}

// buildFlagSet creates the FlagSet of a message command, registering only
// the flag groups that command uses. Shared by parsing, help and completion.
func buildFlagSet(cmd string, f *cmdFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SortFlags = false

	switch cmd {
	case "tokens", "tags":
		addInputFlags(fs, &f.input)
		addTokenizerFlags(fs, &f.tokenizer)
		addOutputFlags(fs, &f.output)
	case "links":
		addInputFlags(fs, &f.input)
		addSiteFlags(fs, &f.site)
		addTokenizerFlags(fs, &f.tokenizer)
		addLinksFlags(fs, &f.links)
		addOutputFlags(fs, &f.output)
	case "embed":
		addInputFlags(fs, &f.input)
		addSiteFlags(fs, &f.site)
		addTokenizerFlags(fs, &f.tokenizer)
		addEmbedFlags(fs, &f.embed)
		addOutputFlags(fs, &f.output)
	case "checkbox":
		addInputFlags(fs, &f.input)
		addCheckboxFlags(fs, &f.checkbox)
		addOutputFlags(fs, &f.output)
	case "config":
		addSiteFlags(fs, &f.site)
		addTokenizerFlags(fs, &f.tokenizer)
		addOutputFlags(fs, &f.output)
	}
	addCommonFlags(fs, &f.common)

	return fs
}

// parseFlags parses the flags of a message command and returns positional args.
// Errors are returned, not printed; runMain reports them.
func parseFlags(cmd string, args []string) (*cmdFlags, []string, error) {
	f := &cmdFlags{changed: make(map[string]bool)}
	fs := buildFlagSet(cmd, f)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	fs.Visit(func(fl *flag.Flag) { f.changed[fl.Name] = true })

	return f, fs.Args(), nil
}
