package chat

import (
	"context"
	"errors"
	"time"

	"github.com/cyoai/chatguard/pkg/app/moderation"
	"github.com/cyoai/chatguard/pkg/config"
	"github.com/cyoai/chatguard/pkg/infra/httpx"
	"github.com/cyoai/chatguard/pkg/infra/prometheus"
	"github.com/cyoai/chatguard/pkg/infra/providers"
	"github.com/cyoai/chatguard/pkg/infra/providers/factory"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrGenerationFailed hides backend detail from the end user; the cause is
// logged, never returned.
var ErrGenerationFailed = errors.New("text generation failed")

// Answer is the outcome of one moderated chat exchange. A refusal is a
// first-class outcome, not an error.
type Answer struct {
	ID      string `json:"id"`
	Answer  string `json:"answer"`
	Model   string `json:"model,omitempty"`
	Refused bool   `json:"refused"`
}

type Service struct {
	gate    *moderation.Gate
	locator factory.ProviderLocator
	breaker httpx.CircuitBreaker
	cfg     *config.GenerationConfig
	logger  *logrus.Logger
}

func NewService(
	gate *moderation.Gate,
	locator factory.ProviderLocator,
	breaker httpx.CircuitBreaker,
	cfg *config.GenerationConfig,
	logger *logrus.Logger,
) *Service {
	return &Service{
		gate:    gate,
		locator: locator,
		breaker: breaker,
		cfg:     cfg,
		logger:  logger,
	}
}

// Ask moderates the prompt, generates a completion and moderates the
// output. Both checks run against the same rule snapshot; the second check
// exists because the generator itself is not moderation-aware.
func (s *Service) Ask(ctx context.Context, prompt string) (*Answer, error) {
	id, err := uuid.NewV6()
	if err != nil {
		return nil, err
	}

	rules, err := s.gate.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	if s.gate.CheckPrompt(prompt, rules) {
		return &Answer{
			ID:      id.String(),
			Answer:  moderation.PromptRefusalMessage,
			Refused: true,
		}, nil
	}

	client, err := s.locator.Get(s.cfg.Provider)
	if err != nil {
		s.logger.WithError(err).Error("failed to locate generation provider")
		return nil, ErrGenerationFailed
	}

	providerConfig := &providers.Config{
		Credentials:  providers.Credentials{ApiKey: s.cfg.ApiKey},
		Model:        s.cfg.Model,
		MaxTokens:    s.cfg.MaxTokens,
		Temperature:  s.cfg.Temperature,
		SystemPrompt: s.cfg.SystemPrompt,
		Options:      s.cfg.Options,
	}

	var completion *providers.CompletionResponse
	start := time.Now()
	err = s.breaker.Execute(func() error {
		resp, askErr := client.Ask(ctx, providerConfig, prompt)
		if askErr != nil {
			return askErr
		}
		completion = resp
		return nil
	})
	prometheus.GenerationLatency.Observe(float64(time.Since(start).Milliseconds()))

	if err != nil {
		prometheus.GenerationFailuresTotal.Inc()
		s.logger.WithError(err).Error("text generation failed")
		return nil, ErrGenerationFailed
	}

	if s.gate.CheckResponse(completion.Response, rules) {
		return &Answer{
			ID:      id.String(),
			Answer:  moderation.ResponseRefusalMessage,
			Refused: true,
		}, nil
	}

	return &Answer{
		ID:     id.String(),
		Answer: completion.Response,
		Model:  completion.Model,
	}, nil
}
