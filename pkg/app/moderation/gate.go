package moderation

import (
	"context"

	"github.com/cyoai/chatguard/pkg/domain/rule"
	"github.com/cyoai/chatguard/pkg/infra/prometheus"
	"github.com/sirupsen/logrus"
)

const (
	StagePrompt   = "prompt"
	StageResponse = "response"
)

// Fixed refusal messages. They never name the rule that matched.
const (
	PromptRefusalMessage   = "[REFUSED] Your request appears to contain blocked content. Contact an administrator if you believe this is an error."
	ResponseRefusalMessage = "[REFUSED] Generated content may be unsafe. Try a different question."
)

// Gate applies the moderation check on both sides of a generation call. A
// request takes one snapshot and runs both checks against it; the snapshot
// is loaded fresh from the backing store so enforcement can never go
// permanently stale.
type Gate struct {
	repository rule.Repository
	matcher    *Matcher
	logger     *logrus.Logger
}

func NewGate(repository rule.Repository, matcher *Matcher, logger *logrus.Logger) *Gate {
	return &Gate{
		repository: repository,
		matcher:    matcher,
		logger:     logger,
	}
}

// Snapshot loads and classifies the current rule sequence. Entries that
// degraded to literal matching are logged but stay enforceable.
func (g *Gate) Snapshot(ctx context.Context) ([]rule.Rule, error) {
	set, err := g.repository.Load(ctx)
	if err != nil {
		return nil, err
	}

	rules, errs := rule.ParseAll(set)
	for _, perr := range errs {
		g.logger.WithError(perr).Warn("blocklist entry degraded to literal match")
	}
	return rules, nil
}

func (g *Gate) CheckPrompt(text string, rules []rule.Rule) bool {
	return g.check(StagePrompt, text, rules)
}

func (g *Gate) CheckResponse(text string, rules []rule.Rule) bool {
	return g.check(StageResponse, text, rules)
}

func (g *Gate) check(stage, text string, rules []rule.Rule) bool {
	blocked := g.matcher.Check(text, rules)

	outcome := "passed"
	if blocked {
		outcome = "blocked"
		g.logger.WithField("stage", stage).Info("moderation blocked content")
	}
	prometheus.ModerationChecksTotal.WithLabelValues(stage, outcome).Inc()

	return blocked
}
