package socialtext

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/idna"
)

// schemePattern detects an explicit URL scheme at the start of a link.
var schemePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*://`)

// LocalDomains is the set of site domains a link is compared against.
//
// Domains[0] is the primary domain: every URL on it is local. The other
// entries are alternate domains: a URL on them is local unless it points to
// the bare root. With MatchSubdomains, a host that is a subdomain of a
// configured domain (on a '.' boundary) counts as that domain.
type LocalDomains struct {
	Domains         []string
	MatchSubdomains bool
}

// Validate checks that every domain is a plain host name.
func (d LocalDomains) Validate() error {
	for _, domain := range d.Domains {
		if err := ValidateDomain(domain); err != nil {
			return err
		}
	}
	return nil
}

// ValidateDomain checks that domain is a host name without scheme, port or
// path, and that it survives IDNA lookup folding.
func ValidateDomain(domain string) error {
	if strings.TrimSpace(domain) == "" {
		return ErrEmptyDomain
	}
	if strings.ContainsAny(domain, "/:@?# \t\r\n") {
		return fmt.Errorf("%w: %q", ErrInvalidDomain, domain)
	}
	if _, err := idna.Lookup.ToASCII(strings.TrimSuffix(domain, ".")); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidDomain, domain, err)
	}
	return nil
}

// foldHost lower-cases host and converts internationalized labels to their
// ASCII form so that Unicode and punycode spellings compare equal.
func foldHost(host string) string {
	host = strings.TrimSuffix(strings.TrimSpace(host), ".")
	ascii, err := idna.Lookup.ToASCII(host)
	if err != nil {
		return strings.ToLower(host)
	}
	return ascii
}

// Link is a view over a LINK token classified against a set of site domains.
// It is computed once by NewLink and never changes.
type Link struct {
	token    Token
	href     string
	u        *url.URL // nil when the href does not parse to a URL with a host
	local    bool
	localURI string
}

// NewLink classifies tok against domains. A link that cannot be parsed is
// reported as external with local URI "/".
func NewLink(tok Token, domains LocalDomains) Link {
	l := Link{token: tok, href: hrefOf(tok.Text), localURI: "/"}

	u, err := url.Parse(l.href)
	if err != nil || u.Host == "" {
		return l
	}
	l.u = u
	l.localURI = localURIOf(u)
	l.local = isLocalHost(foldHost(u.Hostname()), l.localURI == "/", domains)
	return l
}

func hrefOf(text string) string {
	if schemePattern.MatchString(text) {
		return text
	}
	return "https://" + text
}

func localURIOf(u *url.URL) string {
	var b strings.Builder
	b.WriteString(u.EscapedPath())
	if b.Len() == 0 {
		b.WriteByte('/')
	}
	if u.RawQuery != "" {
		b.WriteByte('?')
		b.WriteString(u.RawQuery)
	}
	if u.Fragment != "" {
		b.WriteByte('#')
		b.WriteString(u.EscapedFragment())
	}
	return b.String()
}

func isLocalHost(host string, root bool, domains LocalDomains) bool {
	if host == "" {
		return false
	}
	for i, domain := range domains.Domains {
		d := foldHost(domain)
		if d == "" {
			continue
		}
		same := host == d || (domains.MatchSubdomains && strings.HasSuffix(host, "."+d))
		if !same {
			continue
		}
		if i == 0 || !root {
			return true
		}
	}
	return false
}

// Token returns the token the link was built from.
func (l Link) Token() Token {
	return l.token
}

// Href returns the link target, with https:// prefixed to bare domains.
func (l Link) Href() string {
	return l.href
}

// IsLocal reports whether the link points into the site.
func (l Link) IsLocal() bool {
	return l.local
}

// LocalURI returns path, query and fragment of the link, never empty.
// Callers should only navigate to it when IsLocal is true.
func (l Link) LocalURI() string {
	return l.localURI
}

// URL returns a copy of the parsed link, or false if it did not parse.
func (l Link) URL() (*url.URL, bool) {
	if l.u == nil {
		return nil, false
	}
	u := *l.u
	return &u, true
}

// Display returns a shortened form of the link for showing to people: the
// scheme and a leading "www." are dropped, as is the slash of a bare root.
// When maxRunes is positive, longer results are cut and end with "…".
func (l Link) Display(maxRunes int) string {
	s := l.token.Text
	if loc := schemePattern.FindStringIndex(s); loc != nil {
		s = s[loc[1]:]
	}
	if hasPrefixFold(s, "www.") {
		s = s[len("www."):]
	}
	if i := strings.IndexByte(s, '/'); i >= 0 && i == len(s)-1 && !strings.ContainsAny(s, "?#") {
		s = s[:i]
	}

	if maxRunes <= 0 || utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	cut := 0
	for n := 0; n < maxRunes-1; n++ {
		_, size := utf8.DecodeRuneInString(s[cut:])
		cut += size
	}
	return s[:cut] + "…"
}

// Links returns a Link for every LINK token in tokens, in order.
func Links(tokens []Token, domains LocalDomains) []Link {
	var links []Link
	for _, tok := range tokens {
		if tok.Kind == KindLink {
			links = append(links, NewLink(tok, domains))
		}
	}
	return links
}
