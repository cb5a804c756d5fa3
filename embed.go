package socialtext

import (
	"iter"
	"slices"
	"strings"
)

// excludeMarker placed right before a link keeps it from being embedded.
const excludeMarker = '!'

// EmbedOptions narrows the links eligible for an embedded preview.
type EmbedOptions struct {
	// SkipLocal skips links local to these domains. Empty means no link is
	// treated as local.
	SkipLocal LocalDomains

	// SkipNoPreview skips links on sites that must not be previewed.
	SkipNoPreview bool

	// NoPreviewHosts replaces the built-in no-preview list when non-nil.
	NoPreviewHosts []string
}

// FirstLinkToEmbed returns the first link of text that may get an embedded
// preview, using the default tokenizer. Links inside a spoiler and links
// written right after '!' are skipped.
func FirstLinkToEmbed(text string) (string, bool) {
	return defaultTokenizer.FirstLinkToEmbed(text)
}

// FirstLinkToEmbedWith is FirstLinkToEmbed with extra filters.
func FirstLinkToEmbedWith(text string, opts EmbedOptions) (string, bool) {
	return defaultTokenizer.FirstLinkToEmbedWith(text, opts)
}

// FirstLinkToEmbed returns the first embeddable link of text.
func (t *Tokenizer) FirstLinkToEmbed(text string) (string, bool) {
	return firstLinkToEmbed(text, t.All(text), EmbedOptions{})
}

// FirstLinkToEmbedWith returns the first embeddable link of text that also
// passes opts.
func (t *Tokenizer) FirstLinkToEmbedWith(text string, opts EmbedOptions) (string, bool) {
	return firstLinkToEmbed(text, t.All(text), opts)
}

// FirstLinkToEmbedTokens selects from tokens already produced for text.
func FirstLinkToEmbedTokens(text string, tokens []Token) (string, bool) {
	return firstLinkToEmbed(text, slices.Values(tokens), EmbedOptions{})
}

func firstLinkToEmbed(text string, tokens iter.Seq[Token], opts EmbedOptions) (string, bool) {
	noPreview := opts.NoPreviewHosts
	if noPreview == nil {
		noPreview = defaultNoPreviewHosts
	}

	inSpoiler := false
	for tok := range tokens {
		switch tok.Kind {
		case KindSpoilerStart:
			inSpoiler = true
			continue
		case KindSpoilerEnd:
			inSpoiler = false
			continue
		case KindLink:
		default:
			continue
		}

		if inSpoiler || excludedAt(text, tok.Offset) {
			continue
		}

		link := NewLink(tok, opts.SkipLocal)
		if link.IsLocal() {
			continue
		}
		href := normalizeEmbedURL(link.Href())
		if opts.SkipNoPreview && noPreviewFor(href, noPreview) {
			continue
		}
		return href, true
	}
	return "", false
}

func excludedAt(text string, offset int) bool {
	return offset > 0 && offset <= len(text) && text[offset-1] == excludeMarker
}

// normalizeEmbedURL lower-cases the scheme and host of href and gives a
// root path to URLs without one. The rest of href is kept as written.
func normalizeEmbedURL(href string) string {
	scheme, rest, ok := strings.Cut(href, "://")
	if !ok {
		return href
	}
	authEnd := strings.IndexAny(rest, "/?#")
	if authEnd < 0 {
		authEnd = len(rest)
	}
	auth, tail := rest[:authEnd], rest[authEnd:]

	userinfo := ""
	if at := strings.LastIndexByte(auth, '@'); at >= 0 {
		userinfo, auth = auth[:at+1], auth[at+1:]
	}
	if !strings.HasPrefix(tail, "/") {
		tail = "/" + tail
	}
	return strings.ToLower(scheme) + "://" + userinfo + strings.ToLower(auth) + tail
}
