package socialtext

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Every recognizer reads only the run of runes it could match, and a run is
// tried from its first rune only (see atWordStart), so a whole scan stays
// linear in the length of the text.

// URL schemes recognized before "://", matched in any case.
var urlSchemes = [...]string{"https://", "http://", "ftp://"}

// urlStop ends a URL: ASCII whitespace, angle brackets and double quotes.
const urlStop = " \t\n\f\r<>\""

// trailingPunct is stripped from the end of links.
const trailingPunct = ".,:;!?'\""

// Bare host limits: a TLD candidate is 2 to 63 letters, a port 1 to 5 digits.
const (
	minTLDRunes  = 2
	maxTLDRunes  = 63
	maxPortDigit = 5
)

// match is the result of a successful recognizer: kind and end byte offset.
type match struct {
	kind Kind
	end  int
}

// recognizer tests for a token starting at pos.
type recognizer func(t *Tokenizer, sc *scan, pos int) (match, bool)

// recognizers is indexed by Rule; order matches canonical priority.
var recognizers = [ruleCount]recognizer{
	RuleCheckbox:       recognizeCheckbox,
	RuleLink:           recognizeLink,
	RuleEmail:          recognizeEmail,
	RuleMention:        recognizeMention,
	RuleForeignMention: recognizeForeignMention,
	RuleHashtag:        recognizeHashtag,
	RuleArrows:         recognizeArrows,
	RuleSpoiler:        recognizeSpoiler,
}

// scan holds per-call state precomputed before the position loop.
type scan struct {
	text        string
	checkboxEnd int           // -1 when the text has no initial checkbox
	spoilers    map[int]match // paired spoiler tags by offset
}

func (t *Tokenizer) newScan(text string) *scan {
	sc := &scan{text: text, checkboxEnd: -1}
	if t.enabled[RuleCheckbox] {
		if tok, ok := ParseCheckbox(text); ok {
			sc.checkboxEnd = tok.End()
		}
	}
	if t.enabled[RuleSpoiler] {
		sc.spoilers = pairSpoilerTags(text)
	}
	return sc
}

func recognizeCheckbox(_ *Tokenizer, sc *scan, pos int) (match, bool) {
	if pos != 0 || sc.checkboxEnd < 0 {
		return match{}, false
	}
	return match{kind: KindInitialCheckbox, end: sc.checkboxEnd}, true
}

func recognizeLink(t *Tokenizer, sc *scan, pos int) (match, bool) {
	text := sc.text
	// No link starts inside a host-like run: after a letter, digit, '-' or '.'.
	if !atWordStart(text, pos, "@.-") {
		return match{}, false
	}
	rest := text[pos:]

	if n := schemeLen(rest); n > 0 {
		end := n + urlRunLen(rest[n:])
		link := trimLinkTail(rest[:end])
		// The scheme ends with '/', which is never trimmed.
		if len(link) == n {
			return match{}, false
		}
		return match{kind: KindLink, end: pos + len(link)}, true
	}

	hostEnd, ok := t.bareHostEnd(rest)
	if !ok {
		return match{}, false
	}
	end := hostEnd + portLen(rest[hostEnd:])
	if end < len(rest) && strings.IndexByte("/?#", rest[end]) >= 0 {
		end += 1 + urlRunLen(rest[end+1:])
	}
	// The host ends with a letter, which is never trimmed.
	link := trimLinkTail(rest[:end])
	return match{kind: KindLink, end: pos + len(link)}, true
}

// schemeLen returns the length of the scheme and "://" at the start of s, or
// 0 when s does not start with a known scheme.
func schemeLen(s string) int {
	for _, scheme := range urlSchemes {
		if hasPrefixFold(s, scheme) {
			return len(scheme)
		}
	}
	return 0
}

// urlRunLen returns the length of the leading part of s that may belong to a
// URL.
func urlRunLen(s string) int {
	if i := strings.IndexAny(s, urlStop); i >= 0 {
		return i
	}
	return len(s)
}

// portLen returns the length of a ":port" suffix at the start of s, taking at
// most maxPortDigit digits.
func portLen(s string) int {
	if s == "" || s[0] != ':' {
		return 0
	}
	n := 1
	for n < len(s) && n <= maxPortDigit && isASCIIDigit(s[n]) {
		n++
	}
	if n == 1 {
		return 0
	}
	return n
}

// bareHostEnd returns the end of a bare host (example.com) at the start of s
// whose last label is a known TLD, or which starts with www. A host followed
// by @ belongs to an e-mail local part and does not count.
func (t *Tokenizer) bareHostEnd(s string) (int, bool) {
	tldStart, end, ok := scanBareHost(s)
	if !ok {
		return 0, false
	}
	if !t.hasTLD(s[tldStart:end]) && !hasPrefixFold(s, "www.") {
		return 0, false
	}
	if r, _ := utf8.DecodeRuneInString(s[end:]); r == '@' || isWordRune(r) || r == '-' {
		return 0, false
	}
	return end, true
}

// scanBareHost finds a host at the start of s: one or more labels, each
// followed by '.', then a TLD candidate of 2 to 63 letters. A label starts
// and ends with a letter or digit and may hold '-' inside. The longest label
// chain followed by a TLD candidate wins, and the candidate takes as many
// letters as it can. It returns the TLD bounds; the host ends at tldEnd.
//
// Each rune of s is read once while collecting labels, and each TLD attempt
// reads at most maxTLDRunes runes.
func scanBareHost(s string) (tldStart, tldEnd int, ok bool) {
	var labelEnds []int // offsets just past the dot of each label
	i := 0
	for i < len(s) {
		n := hostLabelLen(s[i:])
		if n == 0 || i+n >= len(s) || s[i+n] != '.' {
			break
		}
		i += n + 1
		labelEnds = append(labelEnds, i)
	}

	for k := len(labelEnds) - 1; k >= 0; k-- {
		start := labelEnds[k]
		size, count := runeRun(s[start:], unicode.IsLetter, maxTLDRunes)
		if count >= minTLDRunes {
			return start, start + size, true
		}
	}
	return 0, 0, false
}

// hostLabelLen returns the byte length of the label at the start of s, or 0
// when s does not start with a label that could be followed by a dot.
func hostLabelLen(s string) int {
	var last rune
	size := 0
	for size < len(s) {
		r, n := utf8.DecodeRuneInString(s[size:])
		if !isHostRune(r) && (r != '-' || size == 0) {
			break
		}
		last = r
		size += n
	}
	if last == '-' {
		return 0
	}
	return size
}

func recognizeEmail(t *Tokenizer, sc *scan, pos int) (match, bool) {
	text := sc.text
	if !atWordStart(text, pos, "._%+-@") {
		return match{}, false
	}
	rest := text[pos:]
	local, _ := runeRun(rest, isEmailLocalRune, -1)
	if local == 0 || local >= len(rest) || rest[local] != '@' {
		return match{}, false
	}
	hostEnd, ok := t.bareHostEnd(rest[local+1:])
	if !ok {
		return match{}, false
	}
	return match{kind: KindEmail, end: pos + local + 1 + hostEnd}, true
}

func recognizeMention(_ *Tokenizer, sc *scan, pos int) (match, bool) {
	text := sc.text
	if text[pos] != '@' || !atWordStart(text, pos, "@._") {
		return match{}, false
	}
	n := joinedRun(text[pos+1:], isUserNameRune, "-_")
	if n == 0 {
		return match{}, false
	}
	return match{kind: KindMention, end: pos + 1 + n}, true
}

func recognizeForeignMention(t *Tokenizer, sc *scan, pos int) (match, bool) {
	text := sc.text
	if len(t.shortCodes) == 0 || !atWordStart(text, pos, "@._-") {
		return match{}, false
	}
	rest := text[pos:]
	user := joinedRun(rest, isUserNameRune, "-_")
	if user == 0 || user >= len(rest) || rest[user] != '@' {
		return match{}, false
	}
	codeStart := user + 1
	code, _ := runeRun(rest[codeStart:], isASCIILetter, -1)
	if code == 0 {
		return match{}, false
	}
	end := codeStart + code
	if _, ok := t.shortCodes[strings.ToLower(rest[codeStart:end])]; !ok {
		return match{}, false
	}
	if continuesWord(rest[end:]) {
		return match{}, false
	}
	return match{kind: KindForeignMention, end: pos + end}, true
}

func recognizeHashtag(_ *Tokenizer, sc *scan, pos int) (match, bool) {
	text := sc.text
	if text[pos] != '#' || !atWordStart(text, pos, "#&") {
		return match{}, false
	}
	n := joinedRun(text[pos+1:], isHashtagRune, "-")
	if n == 0 {
		return match{}, false
	}
	return match{kind: KindHashtag, end: pos + 1 + n}, true
}

func recognizeArrows(_ *Tokenizer, sc *scan, pos int) (match, bool) {
	text := sc.text
	if !atWordStart(text, pos, "^↑") {
		return match{}, false
	}
	arrow, _ := utf8.DecodeRuneInString(text[pos:])
	if arrow != '^' && arrow != '↑' {
		return match{}, false
	}
	n, _ := runeRun(text[pos:], func(r rune) bool { return r == arrow }, -1)
	end := pos + n
	if r, _ := utf8.DecodeRuneInString(text[end:]); isWordRune(r) || r == '^' || r == '↑' {
		return match{}, false
	}
	return match{kind: KindArrows, end: end}, true
}

func recognizeSpoiler(_ *Tokenizer, sc *scan, pos int) (match, bool) {
	m, ok := sc.spoilers[pos]
	return m, ok
}

// trimLinkTail strips trailing punctuation that is not part of the URL,
// keeping closing brackets that have a matching opener inside the link.
// Openers are never stripped, so bracket counts are taken once and each
// stripped closer lowers its own count.
func trimLinkTail(link string) string {
	const openers, closers = "([{", ")]}"
	var opened, closed [len(openers)]int
	for i := 0; i < len(link); i++ {
		if j := strings.IndexByte(openers, link[i]); j >= 0 {
			opened[j]++
		} else if j := strings.IndexByte(closers, link[i]); j >= 0 {
			closed[j]++
		}
	}

	for link != "" {
		c := link[len(link)-1]
		if j := strings.IndexByte(closers, c); j >= 0 {
			if closed[j] <= opened[j] {
				return link
			}
			closed[j]--
		} else if strings.IndexByte(trailingPunct, c) < 0 {
			return link
		}
		link = link[:len(link)-1]
	}
	return link
}

// runeRun returns the byte size and rune count of the leading runes of s
// accepted by in, reading at most limit runes (no limit when negative).
func runeRun(s string, in func(rune) bool, limit int) (size, count int) {
	for size < len(s) && count != limit {
		r, n := utf8.DecodeRuneInString(s[size:])
		if !in(r) {
			break
		}
		size += n
		count++
	}
	return size, count
}

// joinedRun returns the byte length of the leading segments of s made of
// runes accepted by in and joined by single separators from seps. A trailing
// separator is not included. It returns 0 when s does not start with an
// accepted rune.
func joinedRun(s string, in func(rune) bool, seps string) int {
	end, i := 0, 0
	for {
		n, _ := runeRun(s[i:], in, -1)
		if n == 0 {
			return end
		}
		i += n
		end = i
		if i >= len(s) || strings.IndexByte(seps, s[i]) < 0 {
			return end
		}
		i++
	}
}

// atWordStart reports whether pos starts a new word: the preceding rune is
// absent, or neither a letter, a digit, nor one of extra.
func atWordStart(text string, pos int, extra string) bool {
	if pos == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:pos])
	return !isWordRune(r) && !strings.ContainsRune(extra, r)
}

// continuesWord reports whether s starts with a rune that would extend the
// preceding word, including a dot followed by a letter or digit.
func continuesWord(s string) bool {
	r, size := utf8.DecodeRuneInString(s)
	if isWordRune(r) || r == '-' || r == '_' || r == '@' {
		return true
	}
	if r == '.' {
		next, _ := utf8.DecodeRuneInString(s[size:])
		return isWordRune(next)
	}
	return false
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsMark(r)
}

func isHostRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}

func isEmailLocalRune(r rune) bool {
	return isHostRune(r) || strings.ContainsRune("._%+-", r)
}

// isUserNameRune accepts the ASCII letters and digits of user names.
func isUserNameRune(r rune) bool {
	return isASCIILetter(r) || ('0' <= r && r <= '9')
}

func isHashtagRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsNumber(r) || r == '_'
}

func isASCIILetter(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

func isASCIIDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
