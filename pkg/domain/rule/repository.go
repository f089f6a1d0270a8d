package rule

import "context"

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=repository_mock.go --case=underscore --with-expecter

// Repository owns the durable rule sequence. Every call touches the backing
// store; consumers that want to observe changes made elsewhere must load
// again rather than rely on a cached copy.
type Repository interface {
	// Load reads the persisted sequence, initializing or repairing the
	// backing store with the defaults when it is missing or corrupt.
	Load(ctx context.Context) (Set, error)
	// Save overwrites the backing store with the full sequence in one shot.
	Save(ctx context.Context, set Set) error
	// Reset restores the default sequence and returns it.
	Reset(ctx context.Context) (Set, error)
}
