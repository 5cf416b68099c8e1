package store

import (
	"context"

	"github.com/AlibekovAA/user-registry/internal/user/domain"
)

// Store is the persistence boundary behind registry deletes. Delete reports whether the
// backing store confirmed removal; an unknown id is (false, nil), not an error.
type Store interface {
	Delete(ctx context.Context, id domain.ID) (bool, error)
}

// StoreFunc lets a plain function act as a Store.
type StoreFunc func(ctx context.Context, id domain.ID) (bool, error)

func (f StoreFunc) Delete(ctx context.Context, id domain.ID) (bool, error) {
	return f(ctx, id)
}

type NoopStore struct{}

func (NoopStore) Delete(context.Context, domain.ID) (bool, error) {
	return false, nil
}

var (
	_ Store = StoreFunc(nil)
	_ Store = NoopStore{}
	_ Store = (*MemoryStore)(nil)
	_ Store = (*PgStore)(nil)
)
