package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/cyoai/chatguard/pkg/domain/rule"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) (*FileRuleRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.json")
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	return NewFileRuleRepository(path, logger), path
}

func TestLoad_MissingFileWritesDefaults(t *testing.T) {
	repo, path := newTestRepository(t)

	set, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, rule.Defaults(), set)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var onDisk []string
	require.NoError(t, json.Unmarshal(data, &onDisk))
	assert.Equal(t, []string(rule.Defaults()), onDisk)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	set := rule.Set{"alpha", "re:\\bbeta\\b", "alpha"}
	require.NoError(t, repo.Save(ctx, set))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, set, loaded)
}

func TestSave_NilSetPersistsEmptyArray(t *testing.T) {
	repo, path := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestLoad_CorruptContentRestoresDefaults(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"not json", "this is not json {{{"},
		{"not a list", `{"rules": ["a"]}`},
		{"non-string entry", `["ok", 42]`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, path := newTestRepository(t)
			ctx := context.Background()

			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o600))

			set, err := repo.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, rule.Defaults(), set)

			// The store itself must now hold the defaults.
			data, err := os.ReadFile(path)
			require.NoError(t, err)
			var onDisk []string
			require.NoError(t, json.Unmarshal(data, &onDisk))
			assert.Equal(t, []string(rule.Defaults()), onDisk)
		})
	}
}

func TestReset_Idempotent(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, rule.Set{"custom"}))

	first, err := repo.Reset(ctx)
	require.NoError(t, err)
	second, err := repo.Reset(ctx)
	require.NoError(t, err)

	assert.Equal(t, rule.Defaults(), first)
	assert.Equal(t, first, second)
}

func TestLoad_ConcurrentWithSaveObservesFullSequence(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	before := rule.Set{"a", "b", "c"}
	after := rule.Set{"a", "b", "c", "d"}
	require.NoError(t, repo.Save(ctx, before))

	var wg sync.WaitGroup
	results := make(chan rule.Set, 64)

	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			set, err := repo.Load(ctx)
			if err != nil {
				results <- nil
				return
			}
			results <- set
		}()
	}

	require.NoError(t, repo.Save(ctx, after))
	wg.Wait()
	close(results)

	for set := range results {
		require.NotNil(t, set)
		if len(set) == len(before) {
			assert.Equal(t, before, set)
		} else {
			assert.Equal(t, after, set)
		}
	}
}
