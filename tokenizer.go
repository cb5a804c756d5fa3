package socialtext

import (
	"fmt"
	"iter"
	"strings"
	"unicode/utf8"

	"github.com/alnah/go-socialtext/internal/assets"
)

// defaultTLDs is the built-in top-level domain list.
var defaultTLDs = assets.MustLoadList(assets.ListTLDs)

// defaultTokenizer runs the full pipeline with built-in lists.
var defaultTokenizer = mustNewTokenizer()

// Tokenizer splits text into tokens. It is immutable after construction and
// safe for concurrent use.
type Tokenizer struct {
	enabled  [ruleCount]bool
	invalid  []Rule
	tlds     map[string]struct{}
	services []ForeignService

	// derived at construction
	recognizers []recognizer
	shortCodes  map[string]int // lower-cased short code -> index in services
}

// NewTokenizer creates a Tokenizer running every rule with the built-in TLD
// list and foreign mention services. Use options to narrow or extend it.
func NewTokenizer(opts ...Option) (*Tokenizer, error) {
	t := &Tokenizer{services: DefaultForeignServices()}
	for r := Rule(0); r < ruleCount; r++ {
		t.enabled[r] = true
	}
	WithTLDs(defaultTLDs)(t)

	for _, opt := range opts {
		opt(t)
	}

	if len(t.invalid) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrUnknownRule, t.invalid[0])
	}

	t.shortCodes = make(map[string]int)
	for i, svc := range t.services {
		for _, code := range svc.ShortCodes {
			t.shortCodes[strings.ToLower(code)] = i
		}
	}

	for r := Rule(0); r < ruleCount; r++ {
		if t.enabled[r] {
			t.recognizers = append(t.recognizers, recognizers[r])
		}
	}

	return t, nil
}

func mustNewTokenizer(opts ...Option) *Tokenizer {
	t, err := NewTokenizer(opts...)
	if err != nil {
		panic("socialtext: " + err.Error())
	}
	return t
}

// Rules returns the enabled rules in priority order.
func (t *Tokenizer) Rules() []Rule {
	var rules []Rule
	for r := Rule(0); r < ruleCount; r++ {
		if t.enabled[r] {
			rules = append(rules, r)
		}
	}
	return rules
}

// ForeignServices returns a copy of the configured foreign mention services.
func (t *Tokenizer) ForeignServices() []ForeignService {
	services := make([]ForeignService, len(t.services))
	copy(services, t.services)
	return services
}

// Tokenize returns all tokens of text. Empty text yields no tokens.
func (t *Tokenizer) Tokenize(text string) []Token {
	var tokens []Token
	for tok := range t.All(text) {
		tokens = append(tokens, tok)
	}
	return tokens
}

// All returns a lazy sequence of the tokens of text. Each iteration rescans
// the text from the start.
func (t *Tokenizer) All(text string) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		sc := t.newScan(text)
		textStart := 0
		pos := 0

		for pos < len(text) {
			m, ok := t.matchAt(sc, pos)
			if !ok {
				_, size := utf8.DecodeRuneInString(text[pos:])
				pos += size
				continue
			}

			if textStart < pos {
				if !yield(Token{Kind: KindText, Offset: textStart, Text: text[textStart:pos]}) {
					return
				}
			}
			if !yield(Token{Kind: m.kind, Offset: pos, Text: text[pos:m.end]}) {
				return
			}
			pos = m.end
			textStart = pos
		}

		if textStart < len(text) {
			yield(Token{Kind: KindText, Offset: textStart, Text: text[textStart:]})
		}
	}
}

// matchAt tries the enabled recognizers in priority order at pos.
func (t *Tokenizer) matchAt(sc *scan, pos int) (match, bool) {
	for _, rec := range t.recognizers {
		if m, ok := rec(t, sc, pos); ok && m.end > pos {
			return m, true
		}
	}
	return match{}, false
}

// Tokenize splits text using the default full pipeline.
func Tokenize(text string) []Token {
	return defaultTokenizer.Tokenize(text)
}

// All returns a lazy token sequence using the default full pipeline.
func All(text string) iter.Seq[Token] {
	return defaultTokenizer.All(text)
}

// Default returns the tokenizer used by the package-level functions.
func Default() *Tokenizer {
	return defaultTokenizer
}

// hasTLD reports whether tld (any case) is in the tokenizer's TLD set.
func (t *Tokenizer) hasTLD(tld string) bool {
	_, ok := t.tlds[normalizeTLD(tld)]
	return ok
}
