package socialtext

import "fmt"

// Token is a classified span of the original text.
// Offset is a byte offset into the string passed to the tokenizer.
type Token struct {
	Kind   Kind   `json:"kind" yaml:"kind"`
	Offset int    `json:"offset" yaml:"offset"`
	Text   string `json:"text" yaml:"text"`
}

// End returns the byte offset just past the token.
func (t Token) End() int {
	return t.Offset + len(t.Text)
}

// Kind identifies the type of a token.
type Kind uint8

const (
	KindText Kind = iota
	KindLink
	KindEmail
	KindMention
	KindForeignMention
	KindHashtag
	KindArrows
	KindSpoilerStart
	KindSpoilerEnd
	KindInitialCheckbox
)

var kindNames = [...]string{
	KindText:            "PLAIN_TEXT",
	KindLink:            "LINK",
	KindEmail:           "EMAIL",
	KindMention:         "MENTION",
	KindForeignMention:  "FOREIGN_MENTION",
	KindHashtag:         "HASHTAG",
	KindArrows:          "ARROWS",
	KindSpoilerStart:    "SPOILER_START",
	KindSpoilerEnd:      "SPOILER_END",
	KindInitialCheckbox: "INITIAL_CHECKBOX",
}

// String returns the upper-snake name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// MarshalText encodes the kind as its name for JSON and YAML output.
func (k Kind) MarshalText() ([]byte, error) {
	if int(k) >= len(kindNames) {
		return nil, fmt.Errorf("socialtext: unknown token kind %d", uint8(k))
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText decodes a kind name produced by MarshalText.
func (k *Kind) UnmarshalText(b []byte) error {
	for i, name := range kindNames {
		if name == string(b) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("socialtext: unknown token kind %q", b)
}
