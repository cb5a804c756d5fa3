package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	socialtext "github.com/alnah/go-socialtext"
	"github.com/alnah/go-socialtext/internal/hints"
	"github.com/alnah/go-socialtext/internal/yamlutil"
)

// ErrConflictingFlags is returned when mutually exclusive flags are combined.
var ErrConflictingFlags = errors.New("conflicting flags")

// ---------------------------------------------------------------------------
// tokens
// ---------------------------------------------------------------------------

type tokensRecord struct {
	Input  string             `json:"input" yaml:"input"`
	Tokens []socialtext.Token `json:"tokens" yaml:"tokens"`
}

func tokensHandler(s *settings) handler {
	return func(name, text string) (record, error) {
		tokens := s.tokenizer.Tokenize(text)
		if tokens == nil {
			tokens = []socialtext.Token{}
		}
		return tokensRecord{Input: name, Tokens: tokens}, nil
	}
}

// tokenColumns is the width of the kind and offset columns.
const tokenColumns = 24

func (r tokensRecord) writeText(w io.Writer, width int) error {
	for _, tok := range r.Tokens {
		text := fitColumn(strconv.Quote(tok.Text), width, tokenColumns)
		if _, err := fmt.Fprintf(w, "%-16s %5d  %s\n", tok.Kind, tok.Offset, text); err != nil {
			return err
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// links
// ---------------------------------------------------------------------------

type linkEntry struct {
	Text      string              `json:"text" yaml:"text"`
	Offset    int                 `json:"offset" yaml:"offset"`
	Href      string              `json:"href" yaml:"href"`
	Local     bool                `json:"local" yaml:"local"`
	LocalURI  string              `json:"localUri,omitempty" yaml:"localUri,omitempty"`
	Display   string              `json:"display" yaml:"display"`
	Platform  socialtext.Platform `json:"platform" yaml:"platform"`
	NoPreview bool                `json:"noPreview" yaml:"noPreview"`
}

type mentionEntry struct {
	Text    string `json:"text" yaml:"text"`
	Offset  int    `json:"offset" yaml:"offset"`
	User    string `json:"user" yaml:"user"`
	Service string `json:"service" yaml:"service"`
	URL     string `json:"url,omitempty" yaml:"url,omitempty"`
}

type linksRecord struct {
	Input           string         `json:"input" yaml:"input"`
	Links           []linkEntry    `json:"links" yaml:"links"`
	ForeignMentions []mentionEntry `json:"foreignMentions,omitempty" yaml:"foreignMentions,omitempty"`
}

func linksHandler(s *settings) handler {
	services := s.tokenizer.ForeignServices()
	displayLength := s.cfg.Output.DisplayLength

	return func(name, text string) (record, error) {
		tokens := s.tokenizer.Tokenize(text)
		rec := linksRecord{Input: name, Links: []linkEntry{}}

		for _, link := range socialtext.Links(tokens, s.domains) {
			href := link.Href()
			entry := linkEntry{
				Text:      link.Token().Text,
				Offset:    link.Token().Offset,
				Href:      href,
				Local:     link.IsLocal(),
				Display:   link.Display(displayLength),
				Platform:  socialtext.ClassifyURL(href),
				NoPreview: s.lists.NoPreview(href),
			}
			if entry.Local {
				entry.LocalURI = link.LocalURI()
			}
			rec.Links = append(rec.Links, entry)
		}

		for _, tok := range tokens {
			user, code, ok := socialtext.ForeignMention(tok)
			if !ok {
				continue
			}
			url, _ := socialtext.ForeignMentionURL(tok, services)
			rec.ForeignMentions = append(rec.ForeignMentions, mentionEntry{
				Text:    tok.Text,
				Offset:  tok.Offset,
				User:    user,
				Service: code,
				URL:     url,
			})
		}

		return rec, nil
	}
}

func (r linksRecord) writeText(w io.Writer, width int) error {
	for _, l := range r.Links {
		var line string
		if l.Local {
			line = fmt.Sprintf("local     %s", l.LocalURI)
		} else {
			line = fmt.Sprintf("external  %s", l.Display)
		}
		if l.Platform != socialtext.PlatformNone {
			line += "  [" + l.Platform.String() + "]"
		}
		if l.NoPreview {
			line += "  [no-preview]"
		}
		if _, err := fmt.Fprintln(w, fit(line, width)); err != nil {
			return err
		}
	}
	for _, m := range r.ForeignMentions {
		line := "mention   " + m.Text
		if m.URL != "" {
			line += "  " + m.URL
		}
		if _, err := fmt.Fprintln(w, fit(line, width)); err != nil {
			return err
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// embed
// ---------------------------------------------------------------------------

type embedRecord struct {
	Input    string              `json:"input" yaml:"input"`
	URL      string              `json:"url,omitempty" yaml:"url,omitempty"`
	Platform socialtext.Platform `json:"platform" yaml:"platform"`
	TweetID  string              `json:"tweetId,omitempty" yaml:"tweetId,omitempty"`
}

func embedHandler(s *settings) handler {
	opts := socialtext.EmbedOptions{
		SkipNoPreview:  s.cfg.Preview.SkipNoPreview,
		NoPreviewHosts: s.lists.NoPreviewHosts,
	}
	if s.cfg.Preview.SkipLocal {
		opts.SkipLocal = s.domains
	}

	return func(name, text string) (record, error) {
		rec := embedRecord{Input: name}
		url, ok := s.tokenizer.FirstLinkToEmbedWith(text, opts)
		if !ok {
			return rec, nil
		}
		rec.URL = url
		rec.Platform = socialtext.ClassifyURL(url)
		rec.TweetID, _ = socialtext.TweetID(url)
		return rec, nil
	}
}

func (r embedRecord) writeText(w io.Writer, _ int) error {
	if r.URL == "" {
		return nil
	}
	_, err := fmt.Fprintln(w, r.URL)
	return err
}

// ---------------------------------------------------------------------------
// checkbox
// ---------------------------------------------------------------------------

// Checkbox states reported by --status.
const (
	stateChecked   = "checked"
	stateUnchecked = "unchecked"
	stateNone      = "none"
)

type checkboxStatusRecord struct {
	Input string `json:"input" yaml:"input"`
	State string `json:"state" yaml:"state"`
}

type checkboxEditRecord struct {
	Input   string `json:"input" yaml:"input"`
	Text    string `json:"text" yaml:"text"`
	Checked bool   `json:"checked" yaml:"checked"`
}

// checkboxHandler picks the checkbox action. --status is the default; the
// edit actions fail with ErrNoCheckbox on text without an initial checkbox.
func checkboxHandler(f checkboxFlags) (handler, error) {
	actions := 0
	for _, set := range []bool{f.status, f.check, f.uncheck, f.toggle} {
		if set {
			actions++
		}
	}
	if actions > 1 {
		return nil, fmt.Errorf("%w: use only one of --status, --check, --uncheck or --toggle", ErrConflictingFlags)
	}

	var edit func(string) string
	switch {
	case f.check:
		edit = func(text string) string { return socialtext.SetCheckState(text, true) }
	case f.uncheck:
		edit = func(text string) string { return socialtext.SetCheckState(text, false) }
	case f.toggle:
		edit = socialtext.ToggleCheckState
	default:
		return checkboxStatus, nil
	}

	return func(name, text string) (record, error) {
		if !socialtext.HasCheckbox(text) {
			return nil, fmt.Errorf("%s: %w%s", name, socialtext.ErrNoCheckbox, hints.ForNoCheckbox())
		}
		edited := edit(text)
		return checkboxEditRecord{Input: name, Text: edited, Checked: socialtext.IsChecked(edited)}, nil
	}, nil
}

func checkboxStatus(name, text string) (record, error) {
	state := stateNone
	if socialtext.HasCheckbox(text) {
		state = stateUnchecked
		if socialtext.IsChecked(text) {
			state = stateChecked
		}
	}
	return checkboxStatusRecord{Input: name, State: state}, nil
}

func (r checkboxStatusRecord) writeText(w io.Writer, _ int) error {
	_, err := fmt.Fprintln(w, r.State)
	return err
}

func (r checkboxEditRecord) writeText(w io.Writer, _ int) error {
	_, err := io.WriteString(w, r.Text+"\n")
	return err
}

// ---------------------------------------------------------------------------
// tags
// ---------------------------------------------------------------------------

type tagsRecord struct {
	Input string   `json:"input" yaml:"input"`
	Tags  []string `json:"tags" yaml:"tags"`
}

func tagsHandler(s *settings) handler {
	return func(name, text string) (record, error) {
		tags := socialtext.Hashtags(s.tokenizer.Tokenize(text))
		if tags == nil {
			tags = []string{}
		}
		return tagsRecord{Input: name, Tags: tags}, nil
	}
}

func (r tagsRecord) writeText(w io.Writer, _ int) error {
	var b strings.Builder
	for _, tag := range r.Tags {
		b.WriteString("#" + tag + "\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// ---------------------------------------------------------------------------
// config
// ---------------------------------------------------------------------------

// runConfig prints the effective configuration after merging config file,
// environment and flags. Text format prints YAML.
func runConfig(s *settings, env *Environment) error {
	data, err := yamlutil.Marshal(s.cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	p := newPrinter(env, s, false)
	if err := p.printDocument(data); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
