package moderation

import (
	"strings"

	"github.com/cyoai/chatguard/pkg/domain/rule"
)

// Matcher decides whether a text contains blocked content under a rule
// snapshot. It holds no state and is safe for concurrent use.
type Matcher struct{}

func NewMatcher() *Matcher {
	return &Matcher{}
}

// Check folds the text once and evaluates the rules in order, returning
// true on the first hit. Later rules are not evaluated; there is no ranking
// beyond list order.
func (m *Matcher) Check(text string, rules []rule.Rule) bool {
	folded := strings.ToLower(text)
	for _, r := range rules {
		if r.Matches(text, folded) {
			return true
		}
	}
	return false
}
