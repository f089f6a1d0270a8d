package rule

import (
	"context"
	"path/filepath"
	"testing"

	domain "github.com/cyoai/chatguard/pkg/domain/rule"
	"github.com/cyoai/chatguard/pkg/infra/repository"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	logger := logrus.New()
	repo := repository.NewFileRuleRepository(filepath.Join(t.TempDir(), "rules.json"), logger)
	return NewService(repo, logger)
}

func TestService_AddAppendsAndPersists(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	set, err := svc.Add(ctx, "new keyword")
	require.NoError(t, err)
	assert.Equal(t, "new keyword", set[len(set)-1])

	// Duplicates are permitted, not deduplicated.
	set, err = svc.Add(ctx, "new keyword")
	require.NoError(t, err)
	assert.Equal(t, "new keyword", set[len(set)-1])
	assert.Equal(t, "new keyword", set[len(set)-2])
}

func TestService_AddRejectsEmptyPattern(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "")
	assert.ErrorIs(t, err, ErrEmptyPattern)

	_, err = svc.Add(ctx, "   \t ")
	assert.ErrorIs(t, err, ErrEmptyPattern)

	set, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Defaults(), set)
}

func TestService_AddRejectsInvalidRegex(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Add(context.Background(), "re:[unclosed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid pattern")
}

func TestService_RemoveByIndex(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	before, err := svc.List(ctx)
	require.NoError(t, err)

	set, removed, err := svc.Remove(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, before[0], removed)
	assert.Len(t, set, len(before)-1)
	assert.Equal(t, before[1:], set)
}

func TestService_RemoveOutOfRangeIsNoOp(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	before, err := svc.List(ctx)
	require.NoError(t, err)

	_, _, err = svc.Remove(ctx, 99)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, _, err = svc.Remove(ctx, -1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	after, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestService_ResetRestoresDefaults(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "custom rule")
	require.NoError(t, err)

	first, err := svc.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Defaults(), first)

	second, err := svc.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestService_ReloadReflectsStore(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "added")
	require.NoError(t, err)

	set, err := svc.Reload(ctx)
	require.NoError(t, err)
	assert.Contains(t, set, "added")
}
