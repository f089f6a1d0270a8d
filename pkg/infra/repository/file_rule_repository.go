package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/cyoai/chatguard/pkg/domain/rule"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fastjson"
)

// FileRuleRepository persists the blocklist as a single JSON array of
// strings. Corruption of any kind (unreadable file, invalid JSON, wrong
// shape) is repaired wholesale by restoring the default sequence; no
// partial recovery is attempted.
//
// All operations are serialized behind one mutex so that a remove racing
// with another mutation cannot interleave between read and write. Readers
// always observe a fully written sequence because saves go through a
// temp-file-then-rename.
type FileRuleRepository struct {
	path   string
	logger *logrus.Logger
	mu     sync.Mutex
}

func NewFileRuleRepository(path string, logger *logrus.Logger) *FileRuleRepository {
	return &FileRuleRepository{
		path:   filepath.Clean(path),
		logger: logger,
	}
}

func (r *FileRuleRepository) Load(_ context.Context) (rule.Set, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadLocked()
}

func (r *FileRuleRepository) Save(_ context.Context, set rule.Set) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writeLocked(set)
}

func (r *FileRuleRepository) Reset(_ context.Context) (rule.Set, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.writeLocked(rule.Defaults()); err != nil {
		return nil, err
	}
	return r.loadLocked()
}

func (r *FileRuleRepository) loadLocked() (rule.Set, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		defaults := rule.Defaults()
		if werr := r.writeLocked(defaults); werr != nil {
			return nil, fmt.Errorf("initializing rule store: %w", werr)
		}
		return defaults, nil
	}
	if err != nil {
		return r.recoverLocked(err)
	}

	v, err := fastjson.ParseBytes(data)
	if err != nil {
		return r.recoverLocked(fmt.Errorf("rule store is not valid JSON: %w", err))
	}

	items, err := v.Array()
	if err != nil {
		return r.recoverLocked(fmt.Errorf("rule store is not an array: %w", err))
	}

	set := make(rule.Set, 0, len(items))
	for _, item := range items {
		s, err := item.StringBytes()
		if err != nil {
			return r.recoverLocked(fmt.Errorf("rule store holds a non-string entry: %w", err))
		}
		set = append(set, string(s))
	}
	return set, nil
}

// recoverLocked repairs a corrupt store by rewriting the defaults. The
// corruption itself is never surfaced to callers.
func (r *FileRuleRepository) recoverLocked(cause error) (rule.Set, error) {
	r.logger.WithError(cause).WithField("path", r.path).
		Warn("rule store corrupt, restoring defaults")

	defaults := rule.Defaults()
	if err := r.writeLocked(defaults); err != nil {
		return nil, fmt.Errorf("restoring default rules: %w", err)
	}
	return defaults, nil
}

func (r *FileRuleRepository) writeLocked(set rule.Set) error {
	if set == nil {
		set = rule.Set{}
	}

	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling rules: %w", err)
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, ".rules-*.json")
	if err != nil {
		return fmt.Errorf("creating temp rule store: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("writing rule store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("closing temp rule store: %w", err)
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replacing rule store: %w", err)
	}
	return nil
}
