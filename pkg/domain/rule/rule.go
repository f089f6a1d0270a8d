package rule

import (
	"fmt"
	"regexp"
	"strings"
)

// RegexMarker prefixes blocklist entries whose body is a regular expression.
// Everything after the marker is compiled case-insensitively; entries without
// the marker are matched as case-insensitive literal substrings.
const RegexMarker = "re:"

type Kind string

const (
	KindLiteral Kind = "literal"
	KindRegex   Kind = "regex"
)

// Rule is a single blocklist entry, classified once at ingestion instead of
// being re-sniffed on every check.
type Rule struct {
	// Source is the persisted form of the entry, marker included.
	Source string
	Kind   Kind

	needle  string
	pattern *regexp.Regexp
}

// Parse classifies one persisted entry. A regex-tagged entry that fails to
// compile degrades to a literal match over the pattern body (marker stripped)
// and the compile error is returned alongside the still-usable rule, so the
// caller can log the degradation. The error is nil for well-formed entries.
func Parse(source string) (Rule, error) {
	if !strings.HasPrefix(source, RegexMarker) {
		return Rule{
			Source: source,
			Kind:   KindLiteral,
			needle: strings.ToLower(source),
		}, nil
	}

	body := strings.TrimPrefix(source, RegexMarker)
	re, err := regexp.Compile("(?i)" + body)
	if err != nil {
		return Rule{
			Source: source,
			Kind:   KindLiteral,
			needle: strings.ToLower(body),
		}, fmt.Errorf("invalid pattern %q: %w", body, err)
	}

	return Rule{
		Source:  source,
		Kind:    KindRegex,
		pattern: re,
	}, nil
}

// Compile is the strict form of Parse used at add-time: a regex-tagged entry
// that does not compile is rejected outright instead of degrading.
func Compile(source string) error {
	if !strings.HasPrefix(source, RegexMarker) {
		return nil
	}
	body := strings.TrimPrefix(source, RegexMarker)
	if _, err := regexp.Compile("(?i)" + body); err != nil {
		return fmt.Errorf("invalid pattern %q: %w", body, err)
	}
	return nil
}

// ParseAll classifies every entry of a persisted set in order. Degraded
// entries stay in the result; their compile errors are collected so the
// caller can surface them.
func ParseAll(set Set) ([]Rule, []error) {
	rules := make([]Rule, 0, len(set))
	var errs []error
	for _, source := range set {
		r, err := Parse(source)
		if err != nil {
			errs = append(errs, err)
		}
		rules = append(rules, r)
	}
	return rules, errs
}

// Matches reports whether the rule hits the given text. folded must be the
// lowercased form of text; callers fold once and reuse it across a whole
// rule sequence.
func (r Rule) Matches(text, folded string) bool {
	if r.Kind == KindRegex {
		return r.pattern.MatchString(text)
	}
	return strings.Contains(folded, r.needle)
}
