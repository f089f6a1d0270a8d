package rule

import (
	"context"
	"errors"
	"strings"
	"sync"

	domain "github.com/cyoai/chatguard/pkg/domain/rule"
	"github.com/cyoai/chatguard/pkg/infra/prometheus"
	"github.com/sirupsen/logrus"
)

var (
	ErrEmptyPattern    = errors.New("empty pattern cannot be added")
	ErrIndexOutOfRange = errors.New("rule index out of range")
)

// Service is the single-writer funnel for every blocklist mutation. The
// mutex spans the whole load-modify-save cycle so a remove-by-index racing
// with another mutation cannot shift indices between read and write.
type Service struct {
	repository domain.Repository
	logger     *logrus.Logger
	mu         sync.Mutex
}

func NewService(repository domain.Repository, logger *logrus.Logger) *Service {
	return &Service{
		repository: repository,
		logger:     logger,
	}
}

// List returns the persisted sequence as-is.
func (s *Service) List(ctx context.Context) (domain.Set, error) {
	set, err := s.repository.Load(ctx)
	if err != nil {
		return nil, err
	}
	prometheus.BlocklistRules.Set(float64(len(set)))
	return set, nil
}

// Add appends a pattern to the blocklist. Empty patterns are rejected
// before touching the store, and regex-tagged patterns must compile.
func (s *Service) Add(ctx context.Context, pattern string) (domain.Set, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil, ErrEmptyPattern
	}
	if err := domain.Compile(pattern); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	set, err := s.repository.Load(ctx)
	if err != nil {
		return nil, err
	}

	set = append(set, pattern)
	if err := s.repository.Save(ctx, set); err != nil {
		return nil, err
	}

	s.logger.WithField("pattern", pattern).Info("blocklist rule added")
	prometheus.BlocklistRules.Set(float64(len(set)))
	return set, nil
}

// Remove deletes the rule at the given index and returns the removed
// pattern with the updated sequence. An out-of-range index leaves the
// store unchanged.
func (s *Service) Remove(ctx context.Context, index int) (domain.Set, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, err := s.repository.Load(ctx)
	if err != nil {
		return nil, "", err
	}

	if index < 0 || index >= len(set) {
		return nil, "", ErrIndexOutOfRange
	}

	removed := set[index]
	set = append(set[:index], set[index+1:]...)
	if err := s.repository.Save(ctx, set); err != nil {
		return nil, "", err
	}

	s.logger.WithField("pattern", removed).Info("blocklist rule removed")
	prometheus.BlocklistRules.Set(float64(len(set)))
	return set, removed, nil
}

// Reload re-reads the backing store; this is the explicit staleness
// resolution trigger for edits made outside the process.
func (s *Service) Reload(ctx context.Context) (domain.Set, error) {
	set, err := s.repository.Load(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.WithField("count", len(set)).Info("blocklist reloaded from store")
	prometheus.BlocklistRules.Set(float64(len(set)))
	return set, nil
}

// Reset restores the fixed default sequence.
func (s *Service) Reset(ctx context.Context) (domain.Set, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, err := s.repository.Reset(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("blocklist reset to defaults")
	prometheus.BlocklistRules.Set(float64(len(set)))
	return set, nil
}
