package socialtext

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// HashtagName returns the name of a HASHTAG token without '#', case-folded
// and in NFC form, so that #Go, #GO and #go share one name.
func HashtagName(tok Token) (string, bool) {
	if tok.Kind != KindHashtag {
		return "", false
	}
	name := strings.TrimPrefix(tok.Text, "#")
	if name == "" {
		return "", false
	}
	// Casers keep state and cannot be shared between goroutines.
	return norm.NFC.String(cases.Fold().String(name)), true
}

// Hashtags returns the distinct hashtag names found in tokens, sorted.
func Hashtags(tokens []Token) []string {
	var names []string
	for _, tok := range tokens {
		if name, ok := HashtagName(tok); ok {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return slices.Compact(names)
}
