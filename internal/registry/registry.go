package registry

import (
	"context"
	"fmt"
	"sync"

	"github.com/AlibekovAA/user-registry/internal/common/logger"
	"github.com/AlibekovAA/user-registry/internal/observability/metrics"
	"github.com/AlibekovAA/user-registry/internal/user/domain"
	"github.com/AlibekovAA/user-registry/internal/user/store"
)

// Registry is an in-memory, insertion-ordered directory of users. It does not enforce
// unique ids or usernames. Deletes go through the Store; a confirmed delete also drops
// the id from the local sequence.
type Registry struct {
	mu    sync.RWMutex
	users []domain.User
	store store.Store
	log   *logger.Logger
}

type Option func(*Registry)

// WithStore sets the delete collaborator. A nil store keeps the default NoopStore.
func WithStore(s store.Store) Option {
	return func(r *Registry) {
		if s != nil {
			r.store = s
		}
	}
}

func WithLogger(log *logger.Logger) Option {
	return func(r *Registry) {
		if log != nil {
			r.log = log
		}
	}
}

func New(opts ...Option) *Registry {
	r := &Registry{
		users: []domain.User{},
		store: store.NoopStore{},
		log:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type LoginInput struct {
	Username *string
	Password *string
}

func (r *Registry) Add(users ...domain.User) {
	if len(users) == 0 {
		return
	}

	r.mu.Lock()
	r.users = append(r.users, users...)
	size := len(r.users)
	r.mu.Unlock()

	metrics.RegistryUsersAddedTotal.Add(float64(len(users)))
	metrics.RegistryUsers.Set(float64(size))
}

func (r *Registry) All() []domain.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.User, len(r.users))
	copy(out, r.users)
	return out
}

// AllByID returns a fresh map keyed by id. Later insertions win on duplicate ids.
func (r *Registry) AllByID() map[domain.ID]domain.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byID := make(map[domain.ID]domain.User, len(r.users))
	for _, u := range r.users {
		byID[u.ID] = u
	}
	return byID
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}

// Login returns the first user whose username and password both match exactly.
// A missing username or password is ErrInvalidArgument; no match is (User{}, false, nil).
func (r *Registry) Login(ctx context.Context, input LoginInput) (domain.User, bool, error) {
	if input.Username == nil || input.Password == nil {
		r.log.WithFields(ctx, logger.Fields{
			"action": "login_invalid_argument",
		}).Warn("login rejected: missing credentials")
		metrics.RegistryLoginAttemptsTotal.WithLabelValues("invalid").Inc()
		metrics.DomainErrorsTotal.WithLabelValues(string(ErrInvalidArgument.Category()), ErrInvalidArgument.Code()).Inc()
		return domain.User{}, false, ErrInvalidArgument
	}

	username, password := *input.Username, *input.Password

	user, found := r.find(func(u domain.User) bool {
		return u.Username == username && u.Password == password
	})
	if !found {
		r.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "login_not_found",
		}).Info("login failed: no matching user")
		metrics.RegistryLoginAttemptsTotal.WithLabelValues("not_found").Inc()
		return domain.User{}, false, nil
	}

	r.log.WithFields(ctx, logger.Fields{
		"username": user.Username,
		"user_id":  user.ID,
		"action":   "login_success",
	}).Info("login success")
	metrics.RegistryLoginAttemptsTotal.WithLabelValues("success").Inc()

	return user, true, nil
}

func (r *Registry) LoginWith(ctx context.Context, username, password string) (domain.User, bool, error) {
	return r.Login(ctx, LoginInput{Username: &username, Password: &password})
}

// Delete returns whatever the store reports. The store call happens outside the lock.
func (r *Registry) Delete(ctx context.Context, id domain.ID) (bool, error) {
	deleted, err := r.store.Delete(ctx, id)
	if err != nil {
		r.log.WithFields(ctx, logger.Fields{
			"user_id": id,
			"action":  "delete_store_failed",
		}).Errorf("delete failed: %v", err)
		metrics.RegistryDeletesTotal.WithLabelValues("error").Inc()
		return false, fmt.Errorf("failed to delete user: %w", err)
	}

	if !deleted {
		r.log.WithFields(ctx, logger.Fields{
			"user_id": id,
			"action":  "delete_not_confirmed",
		}).Info("delete not confirmed by store")
		metrics.RegistryDeletesTotal.WithLabelValues("not_deleted").Inc()
		return false, nil
	}

	removed := r.evict(id)

	r.log.WithFields(ctx, logger.Fields{
		"user_id": id,
		"removed": removed,
		"action":  "delete_success",
	}).Info("delete success")
	metrics.RegistryDeletesTotal.WithLabelValues("deleted").Inc()

	return true, nil
}

func (r *Registry) find(match func(domain.User) bool) (domain.User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if match(u) {
			return u, true
		}
	}
	return domain.User{}, false
}

func (r *Registry) evict(id domain.ID) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.users[:0]
	for _, u := range r.users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	removed := len(r.users) - len(kept)
	clear(r.users[len(kept):])
	r.users = kept

	metrics.RegistryUsers.Set(float64(len(r.users)))
	return removed
}
