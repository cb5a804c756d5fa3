package socialtext

import (
	"regexp"
	"strings"
)

// spoilerTagPattern matches opening and closing spoiler tags in English and
// Russian, any case.
var spoilerTagPattern = regexp.MustCompile(`(?i)</?(?:spoiler|спойлер)>`)

// pairSpoilerTags finds spoiler tags that form start/end pairs.
// A start tag opens a region only when none is open; the next end tag closes
// it. Nested starts, stray ends and a trailing unclosed start are left out of
// the result and stay plain text.
func pairSpoilerTags(text string) map[int]match {
	locs := spoilerTagPattern.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}

	pairs := make(map[int]match)
	open := -1
	for _, loc := range locs {
		isEnd := strings.HasPrefix(text[loc[0]:], "</")
		switch {
		case !isEnd && open < 0:
			open = loc[0]
			pairs[loc[0]] = match{kind: KindSpoilerStart, end: loc[1]}
		case isEnd && open >= 0:
			pairs[loc[0]] = match{kind: KindSpoilerEnd, end: loc[1]}
			open = -1
		}
	}
	if open >= 0 {
		delete(pairs, open)
	}
	return pairs
}
