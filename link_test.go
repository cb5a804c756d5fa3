package socialtext

// Notes:
// - NewLink: tests local classification against primary and alternate
//   domains, case folding, IDN hosts and subdomain matching
// - LocalURI: tests path, query and fragment assembly and root normalization
// - Malformed links: tests the degrade-to-external behavior
// - Display: tests shortening and rune-based truncation
// - ValidateDomain: tests rejected domain shapes

import (
	"errors"
	"testing"
)

var freefeedDomains = LocalDomains{Domains: []string{"freefeed.net", "omega.freefeed.net"}}

func linkToken(s string) Token {
	return Token{Kind: KindLink, Offset: 0, Text: s}
}

// ---------------------------------------------------------------------------
// TestNewLink - Local Classification
// ---------------------------------------------------------------------------

func TestNewLink(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		text         string
		domains      LocalDomains
		wantLocal    bool
		wantLocalURI string
		wantHref     string
	}{
		{
			name:         "local link",
			text:         "https://freefeed.net/some/path",
			domains:      freefeedDomains,
			wantLocal:    true,
			wantLocalURI: "/some/path",
			wantHref:     "https://freefeed.net/some/path",
		},
		{
			name:         "mixed-case URL",
			text:         "hTTps://FreeFeed.net/some/path",
			domains:      freefeedDomains,
			wantLocal:    true,
			wantLocalURI: "/some/path",
			wantHref:     "hTTps://FreeFeed.net/some/path",
		},
		{
			name:         "remote link",
			text:         "https://github.com/FreeFeed",
			domains:      freefeedDomains,
			wantLocal:    false,
			wantLocalURI: "/FreeFeed",
			wantHref:     "https://github.com/FreeFeed",
		},
		{
			name:         "root of primary domain",
			text:         "https://freefeed.net",
			domains:      freefeedDomains,
			wantLocal:    true,
			wantLocalURI: "/",
			wantHref:     "https://freefeed.net",
		},
		{
			name:         "root of alternate domain",
			text:         "https://omega.freefeed.net",
			domains:      freefeedDomains,
			wantLocal:    false,
			wantLocalURI: "/",
			wantHref:     "https://omega.freefeed.net",
		},
		{
			name:         "root slash of alternate domain",
			text:         "https://omega.freefeed.net/",
			domains:      freefeedDomains,
			wantLocal:    false,
			wantLocalURI: "/",
			wantHref:     "https://omega.freefeed.net/",
		},
		{
			name:         "non-root of alternate domain",
			text:         "https://omega.freefeed.net/hello",
			domains:      freefeedDomains,
			wantLocal:    true,
			wantLocalURI: "/hello",
			wantHref:     "https://omega.freefeed.net/hello",
		},
		{
			name:         "subdomain without subdomain matching",
			text:         "https://omega.freefeed.net/hello",
			domains:      LocalDomains{Domains: []string{"freefeed.net"}},
			wantLocal:    false,
			wantLocalURI: "/hello",
			wantHref:     "https://omega.freefeed.net/hello",
		},
		{
			name:         "subdomain with subdomain matching",
			text:         "https://omega.freefeed.net/hello",
			domains:      LocalDomains{Domains: []string{"freefeed.net"}, MatchSubdomains: true},
			wantLocal:    true,
			wantLocalURI: "/hello",
			wantHref:     "https://omega.freefeed.net/hello",
		},
		{
			name:         "suffix without dot boundary",
			text:         "https://notfreefeed.net/x",
			domains:      LocalDomains{Domains: []string{"freefeed.net"}, MatchSubdomains: true},
			wantLocal:    false,
			wantLocalURI: "/x",
			wantHref:     "https://notfreefeed.net/x",
		},
		{
			name:         "bare domain gets https",
			text:         "FreeFeed.net/abc?x=1#top",
			domains:      freefeedDomains,
			wantLocal:    true,
			wantLocalURI: "/abc?x=1#top",
			wantHref:     "https://FreeFeed.net/abc?x=1#top",
		},
		{
			name:         "query on root",
			text:         "https://freefeed.net?q=go",
			domains:      freefeedDomains,
			wantLocal:    true,
			wantLocalURI: "/?q=go",
			wantHref:     "https://freefeed.net?q=go",
		},
		{
			name:         "empty query on root",
			text:         "https://freefeed.net/?",
			domains:      freefeedDomains,
			wantLocal:    true,
			wantLocalURI: "/",
			wantHref:     "https://freefeed.net/?",
		},
		{
			name:         "empty query keeps fragment",
			text:         "https://freefeed.net/abc?#top",
			domains:      freefeedDomains,
			wantLocal:    true,
			wantLocalURI: "/abc#top",
			wantHref:     "https://freefeed.net/abc?#top",
		},
		{
			name:         "port does not change host",
			text:         "https://freefeed.net:443/x",
			domains:      freefeedDomains,
			wantLocal:    true,
			wantLocalURI: "/x",
			wantHref:     "https://freefeed.net:443/x",
		},
		{
			name:         "unicode host against unicode domain",
			text:         "https://ПРИМЕР.рф/x",
			domains:      LocalDomains{Domains: []string{"пример.рф"}},
			wantLocal:    true,
			wantLocalURI: "/x",
			wantHref:     "https://ПРИМЕР.рф/x",
		},
		{
			name:         "punycode host against unicode domain",
			text:         "https://xn--e1afmkfd.xn--p1ai/x",
			domains:      LocalDomains{Domains: []string{"пример.рф"}},
			wantLocal:    true,
			wantLocalURI: "/x",
			wantHref:     "https://xn--e1afmkfd.xn--p1ai/x",
		},
		{
			name:         "no domains configured",
			text:         "https://freefeed.net/x",
			domains:      LocalDomains{},
			wantLocal:    false,
			wantLocalURI: "/x",
			wantHref:     "https://freefeed.net/x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			l := NewLink(linkToken(tt.text), tt.domains)
			if got := l.IsLocal(); got != tt.wantLocal {
				t.Errorf("IsLocal() = %v, want %v", got, tt.wantLocal)
			}
			if got := l.LocalURI(); got != tt.wantLocalURI {
				t.Errorf("LocalURI() = %q, want %q", got, tt.wantLocalURI)
			}
			if got := l.Href(); got != tt.wantHref {
				t.Errorf("Href() = %q, want %q", got, tt.wantHref)
			}
		})
	}
}

func TestNewLink_Malformed(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"https://[::1", "http://", "https://%zz/x", ""} {
		l := NewLink(linkToken(text), LocalDomains{Domains: []string{"freefeed.net"}})
		if l.IsLocal() {
			t.Errorf("NewLink(%q).IsLocal() = true, want false", text)
		}
		if got := l.LocalURI(); got != "/" {
			t.Errorf("NewLink(%q).LocalURI() = %q, want %q", text, got, "/")
		}
		if _, ok := l.URL(); ok {
			t.Errorf("NewLink(%q).URL() ok = true, want false", text)
		}
	}
}

func TestNewLink_DoesNotMutateInputs(t *testing.T) {
	t.Parallel()

	tok := linkToken("FreeFeed.net/x")
	domains := []string{"FreeFeed.net", "omega.freefeed.net"}
	l := NewLink(tok, LocalDomains{Domains: domains})

	if l.Token() != tok {
		t.Errorf("Token() = %+v, want %+v", l.Token(), tok)
	}
	if domains[0] != "FreeFeed.net" {
		t.Errorf("domains[0] = %q, want unchanged", domains[0])
	}

	u, ok := l.URL()
	if !ok {
		t.Fatal("URL() ok = false, want true")
	}
	u.Path = "/changed"
	if again, _ := l.URL(); again.Path != "/x" {
		t.Errorf("URL() returned shared value, path = %q", again.Path)
	}
}

// ---------------------------------------------------------------------------
// TestLink_Display - Shortened Form
// ---------------------------------------------------------------------------

func TestLink_Display(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text     string
		maxRunes int
		want     string
	}{
		{"https://www.example.com/", 0, "example.com"},
		{"HTTP://WWW.Example.com/a/", 0, "Example.com/a/"},
		{"example.com/?q=/", 0, "example.com/?q=/"},
		{"https://example.com/very/long/path", 15, "example.com/ve…"},
		{"https://example.com/abc", 15, "example.com/abc"},
		{"https://пример.рф/страница", 12, "пример.рф/с…"},
	}

	for _, tt := range tests {
		l := NewLink(linkToken(tt.text), LocalDomains{})
		if got := l.Display(tt.maxRunes); got != tt.want {
			t.Errorf("Display(%q, %d) = %q, want %q", tt.text, tt.maxRunes, got, tt.want)
		}
	}
}

func TestLinks(t *testing.T) {
	t.Parallel()

	links := Links(Tokenize("see https://freefeed.net/a and github.com/x @bob"), freefeedDomains)
	if len(links) != 2 {
		t.Fatalf("Links() returned %d links, want 2", len(links))
	}
	if !links[0].IsLocal() || links[1].IsLocal() {
		t.Errorf("IsLocal() = %v, %v; want true, false", links[0].IsLocal(), links[1].IsLocal())
	}
}

// ---------------------------------------------------------------------------
// TestValidateDomain - Domain Shapes
// ---------------------------------------------------------------------------

func TestValidateDomain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		domain  string
		wantErr error
	}{
		{"freefeed.net", nil},
		{"пример.рф", nil},
		{"localhost", nil},
		{"", ErrEmptyDomain},
		{"   ", ErrEmptyDomain},
		{"https://freefeed.net", ErrInvalidDomain},
		{"freefeed.net/path", ErrInvalidDomain},
		{"freefeed.net:8080", ErrInvalidDomain},
		{"free feed.net", ErrInvalidDomain},
	}

	for _, tt := range tests {
		err := ValidateDomain(tt.domain)
		if tt.wantErr == nil {
			if err != nil {
				t.Errorf("ValidateDomain(%q) unexpected error: %v", tt.domain, err)
			}
			continue
		}
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("ValidateDomain(%q) error = %v, want %v", tt.domain, err, tt.wantErr)
		}
	}

	d := LocalDomains{Domains: []string{"freefeed.net", ""}}
	if err := d.Validate(); !errors.Is(err, ErrEmptyDomain) {
		t.Errorf("Validate() error = %v, want %v", err, ErrEmptyDomain)
	}
}
