package socialtext

import (
	"fmt"
	"strings"
)

// Rule names a recognizer in the tokenizer pipeline.
type Rule uint8

// Rules in canonical priority order. When several rules match at the same
// offset, the one listed first wins.
const (
	RuleCheckbox Rule = iota
	RuleLink
	RuleEmail
	RuleMention
	RuleForeignMention
	RuleHashtag
	RuleArrows
	RuleSpoiler

	ruleCount
)

var ruleNames = [...]string{
	RuleCheckbox:       "checkbox",
	RuleLink:           "link",
	RuleEmail:          "email",
	RuleMention:        "mention",
	RuleForeignMention: "foreign-mention",
	RuleHashtag:        "hashtag",
	RuleArrows:         "arrows",
	RuleSpoiler:        "spoiler",
}

// AllRules returns every rule in canonical order.
func AllRules() []Rule {
	rules := make([]Rule, 0, ruleCount)
	for r := Rule(0); r < ruleCount; r++ {
		rules = append(rules, r)
	}
	return rules
}

// String returns the rule name used on the command line and in config files.
func (r Rule) String() string {
	if r < ruleCount {
		return ruleNames[r]
	}
	return fmt.Sprintf("Rule(%d)", uint8(r))
}

// ParseRule converts a rule name (case-insensitive) to a Rule.
func ParseRule(name string) (Rule, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for r := Rule(0); r < ruleCount; r++ {
		if ruleNames[r] == name {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRule, name)
}

// Option configures a Tokenizer.
type Option func(*Tokenizer)

// WithRules restricts the pipeline to the given rules.
// Priority always follows canonical order, whatever order rules are passed in.
func WithRules(rules ...Rule) Option {
	return func(t *Tokenizer) {
		t.enabled = [ruleCount]bool{}
		for _, r := range rules {
			if r >= ruleCount {
				t.invalid = append(t.invalid, r)
				continue
			}
			t.enabled[r] = true
		}
	}
}

// CheckboxOnly restricts the pipeline to the initial checkbox rule.
func CheckboxOnly() Option {
	return WithRules(RuleCheckbox)
}

// WithTLDs replaces the set of top-level domains accepted in bare links and
// e-mail addresses.
func WithTLDs(tlds []string) Option {
	return func(t *Tokenizer) {
		t.tlds = make(map[string]struct{}, len(tlds))
		for _, tld := range tlds {
			t.tlds[normalizeTLD(tld)] = struct{}{}
		}
	}
}

// WithExtraTLDs adds top-level domains to the current set.
func WithExtraTLDs(tlds []string) Option {
	return func(t *Tokenizer) {
		merged := make(map[string]struct{}, len(t.tlds)+len(tlds))
		for tld := range t.tlds {
			merged[tld] = struct{}{}
		}
		for _, tld := range tlds {
			merged[normalizeTLD(tld)] = struct{}{}
		}
		t.tlds = merged
	}
}

// WithForeignServices sets the services recognized in foreign mentions
// (user@service).
func WithForeignServices(services []ForeignService) Option {
	return func(t *Tokenizer) {
		t.services = make([]ForeignService, len(services))
		copy(t.services, services)
	}
}

func normalizeTLD(tld string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(tld), "."))
}
