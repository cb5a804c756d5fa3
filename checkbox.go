package socialtext

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// CheckMark is written into a checkbox set to the checked state.
const CheckMark = "✓"

// checkboxPattern matches an empty box ([], [ ]) or a box holding one mark:
// x, v, *, U+2713, U+2714 or Cyrillic х, in any case. The blanks of an empty
// box are the ones isBoxSpace accepts.
var checkboxPattern = regexp.MustCompile(`(?i)\[(?:[\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}]*|[xv*\x{2713}\x{2714}\x{0445}])\]`)

// isBoxSpace reports whether r is a blank inside a checkbox or around its
// text: ASCII whitespace, space separators, line and paragraph separators,
// and the byte order mark.
func isBoxSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\u2028', '\u2029', '\ufeff':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

// ParseCheckbox returns the INITIAL_CHECKBOX token of text. A checkbox is
// recognized only at offset 0 and only when it is the single checkbox-like
// occurrence in the whole text.
func ParseCheckbox(text string) (Token, bool) {
	locs := checkboxPattern.FindAllStringIndex(text, 2)
	if len(locs) != 1 || locs[0][0] != 0 {
		return Token{}, false
	}
	return Token{Kind: KindInitialCheckbox, Offset: 0, Text: text[:locs[0][1]]}, true
}

// HasCheckbox reports whether text starts with a recognized checkbox.
func HasCheckbox(text string) bool {
	_, ok := ParseCheckbox(text)
	return ok
}

// IsChecked reports whether the box at the start of text holds a mark: the
// second rune is present and is neither whitespace nor ']'.
// It does not check that text has a checkbox.
func IsChecked(text string) bool {
	_, size := utf8.DecodeRuneInString(text)
	if size >= len(text) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(text[size:])
	return r != ']' && !isBoxSpace(r)
}

// SetCheckState rewrites the checkbox of text to the requested state and
// normalizes the remainder: "[✓] rest" or "[ ] rest" with rest trimmed.
// It panics when text has no checkbox; call HasCheckbox first.
func SetCheckState(text string, checked bool) string {
	tok, ok := ParseCheckbox(text)
	if !ok {
		panic("socialtext: SetCheckState: " + ErrNoCheckbox.Error())
	}
	mark := " "
	if checked {
		mark = CheckMark
	}
	return "[" + mark + "] " + strings.TrimFunc(text[tok.End():], isBoxSpace)
}

// ToggleCheckState flips the checkbox of text. It panics when text has no
// checkbox.
func ToggleCheckState(text string) string {
	return SetCheckState(text, !IsChecked(text))
}
