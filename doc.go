// Package socialtext splits social-network message text into typed tokens
// and classifies the links it contains.
//
// # Quick Start
//
// Tokenize a message with the default pipeline:
//
//	for _, tok := range socialtext.Tokenize("[x] @alice see example.com #go") {
//	    fmt.Println(tok.Kind, tok.Offset, tok.Text)
//	}
//
// Tokens cover the input exactly: concatenating their Text values gives the
// original string back. Offsets are byte offsets into that string.
//
// # Recognizers
//
// At each position the enabled rules are tried in a fixed order and the
// first match wins:
//
//  1. Initial checkbox ([ ], [x], [✓], ...), only at offset 0
//  2. Link (https://..., ftp://..., or a bare domain with a known TLD)
//  3. E-mail address
//  4. Mention (@user)
//  5. Foreign mention (user@service, e.g. alice@tg)
//  6. Hashtag (#tag)
//  7. Back-reference arrows (^^^ or ↑↑)
//  8. Spoiler tags (<spoiler>...</spoiler>, paired)
//
// Everything else is collected into PLAIN_TEXT tokens.
//
// # Configuration
//
// Use options to build a narrower or extended tokenizer:
//
//	tok, err := socialtext.NewTokenizer(
//	    socialtext.WithRules(socialtext.RuleLink, socialtext.RuleHashtag),
//	    socialtext.WithExtraTLDs([]string{"lan"}),
//	)
//
// A Tokenizer is immutable and safe for concurrent use.
//
// # Links
//
// NewLink classifies a LINK token against the site domains. The first domain
// is the primary one; a link to the bare root of any other domain is not
// local:
//
//	domains := socialtext.LocalDomains{Domains: []string{"freefeed.net", "omega.freefeed.net"}}
//	link := socialtext.NewLink(tok, domains)
//	if link.IsLocal() {
//	    navigate(link.LocalURI())
//	}
//
// FirstLinkToEmbed picks the link that gets a preview: links inside spoilers
// and links written right after '!' are skipped.
//
// # Custom Lists
//
// The TLD and no-preview lists are embedded. LoadLists reads replacements
// from the lists/ subdirectory of a base path, falling back to the embedded
// copy of any missing list:
//
//	{basePath}/
//	└── lists/
//	    ├── tlds.txt
//	    └── nopreview.txt
package socialtext
