package registry

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlibekovAA/user-registry/internal/common/constants"
	commonerrors "github.com/AlibekovAA/user-registry/internal/common/errors"
	"github.com/AlibekovAA/user-registry/internal/common/logger"
	"github.com/AlibekovAA/user-registry/internal/observability/metrics"
	"github.com/AlibekovAA/user-registry/internal/user/domain"
	"github.com/AlibekovAA/user-registry/internal/user/store"
)

var (
	ivan  = domain.NewUser(1, "Ivan", "123")
	petro = domain.NewUser(2, "Petro", "345")
)

func strPtr(s string) *string { return &s }

func TestRegistry_AllEmptyIfNoUserAdded(t *testing.T) {
	r := New()

	users := r.All()
	assert.NotNil(t, users)
	assert.Empty(t, users)
	assert.Empty(t, r.AllByID())
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_AllPreservesInsertionOrder(t *testing.T) {
	r := New()
	r.Add(ivan, petro)
	r.Add(ivan)
	r.Add()

	assert.Equal(t, []domain.User{ivan, petro, ivan}, r.All())
	assert.Equal(t, 3, r.Len())
}

func TestRegistry_AllReturnsCopy(t *testing.T) {
	r := New()
	r.Add(ivan)

	users := r.All()
	users[0] = petro

	assert.Equal(t, []domain.User{ivan}, r.All())
}

func TestRegistry_AllByID(t *testing.T) {
	r := New()
	r.Add(ivan, petro)

	byID := r.AllByID()
	assert.Equal(t, map[domain.ID]domain.User{1: ivan, 2: petro}, byID)
}

func TestRegistry_AllByID_LastWriteWins(t *testing.T) {
	r := New()
	impostor := domain.NewUser(1, "Ivan2", "000")
	r.Add(ivan, petro, impostor)

	byID := r.AllByID()
	require.Len(t, byID, 2)
	assert.Equal(t, impostor, byID[1])
	assert.Len(t, r.All(), 3)
}

func TestRegistry_AllByID_IndependentOfRegistry(t *testing.T) {
	r := New()
	r.Add(ivan)

	byID := r.AllByID()
	delete(byID, ivan.ID)
	byID[99] = petro

	assert.Equal(t, map[domain.ID]domain.User{1: ivan}, r.AllByID())
}

func TestRegistry_LoginSuccessIfUserExists(t *testing.T) {
	r := New()
	r.Add(ivan)

	user, ok, err := r.LoginWith(context.Background(), ivan.Username, ivan.Password)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, ivan, user)
}

func TestRegistry_LoginFailIfPasswordIsNotCorrect(t *testing.T) {
	r := New()
	r.Add(ivan)

	user, ok, err := r.LoginWith(context.Background(), ivan.Username, "wrongPass")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, domain.User{}, user)
}

func TestRegistry_LoginFailedIfUserDoesNotExist(t *testing.T) {
	for i := 0; i < 5; i++ {
		r := New()
		r.Add(ivan)

		_, ok, err := r.LoginWith(context.Background(), "abc", ivan.Password)
		require.NoError(t, err)
		assert.False(t, ok)
	}
}

func TestRegistry_LoginIsCaseSensitive(t *testing.T) {
	r := New()
	r.Add(ivan)

	_, ok, err := r.LoginWith(context.Background(), "ivan", "123")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRegistry_LoginEmptyStringsAreNotMissing(t *testing.T) {
	r := New()
	blank := domain.NewUser(3, "", "")
	r.Add(ivan, blank)

	user, ok, err := r.LoginWith(context.Background(), "", "")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, blank, user)
}

func TestRegistry_LoginReturnsFirstMatch(t *testing.T) {
	r := New()
	twin := domain.NewUser(7, "Ivan", "123")
	r.Add(ivan, twin)

	user, ok, err := r.LoginWith(context.Background(), "Ivan", "123")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, ivan.ID, user.ID)
}

func TestRegistry_LoginParametrized(t *testing.T) {
	tests := []struct {
		username string
		password string
		want     domain.User
		wantOK   bool
	}{
		{"Ivan", "123", ivan, true},
		{"Petro", "345", petro, true},
		{"Petro", "dummy", domain.User{}, false},
		{"dummy", "345", domain.User{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.username+"/"+tt.password, func(t *testing.T) {
			r := New()
			r.Add(ivan, petro)

			user, ok, err := r.LoginWith(context.Background(), tt.username, tt.password)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, user)
		})
	}
}

func TestRegistry_LoginMissingCredentials(t *testing.T) {
	r := New()
	r.Add(ivan)

	tests := []struct {
		name  string
		input LoginInput
	}{
		{"nil username", LoginInput{Username: nil, Password: strPtr("dummy")}},
		{"nil password", LoginInput{Username: strPtr(ivan.Username), Password: nil}},
		{"both nil", LoginInput{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok, err := r.Login(context.Background(), tt.input)
			require.Error(t, err)
			assert.False(t, ok)
			assert.ErrorIs(t, err, ErrInvalidArgument)
			assert.Equal(t, "Username or password is null", err.Error())

			de, isDomain := commonerrors.AsDomainError(err)
			require.True(t, isDomain)
			assert.Equal(t, commonerrors.CategoryValidation, de.Category())
		})
	}
}

func TestRegistry_LoginPerformance(t *testing.T) {
	r := New()
	for i := 0; i < 10_000; i++ {
		r.Add(domain.NewUser(domain.ID(i+10), "user", "pass"))
	}
	r.Add(ivan)

	start := time.Now()
	_, ok, err := r.LoginWith(context.Background(), "abc", ivan.Password)
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Less(t, elapsed, constants.LoginLookupBudget)
}

func TestRegistry_LoginDoesNotLogPassword(t *testing.T) {
	var buf bytes.Buffer
	r := New(WithLogger(logger.NewWithWriter(&buf, "registry", "debug")))
	r.Add(ivan)

	_, _, _ = r.LoginWith(context.Background(), "Ivan", "s3cr3t-value")
	_, _, _ = r.LoginWith(context.Background(), "Ivan", "123")

	assert.NotContains(t, buf.String(), "s3cr3t-value")
	assert.NotContains(t, buf.String(), "password=")
	assert.Contains(t, buf.String(), "action=login_success")
}

func TestRegistry_ShouldDeleteExistedUser(t *testing.T) {
	s := store.NewMemoryStore()
	s.Set(ivan.ID, true)
	r := New(WithStore(s))
	r.Add(ivan, petro)

	deleted, err := r.Delete(context.Background(), ivan.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, []domain.User{petro}, r.All())
	assert.Equal(t, []domain.ID{ivan.ID}, s.Calls())
}

func TestRegistry_DeleteNotConfirmedKeepsUser(t *testing.T) {
	s := store.NewMemoryStore()
	r := New(WithStore(s))
	r.Add(ivan)

	deleted, err := r.Delete(context.Background(), ivan.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Equal(t, []domain.User{ivan}, r.All())
}

func TestRegistry_DeleteRemovesAllEntriesWithID(t *testing.T) {
	r := New(WithStore(store.StoreFunc(func(context.Context, domain.ID) (bool, error) {
		return true, nil
	})))
	r.Add(ivan, petro, domain.NewUser(1, "Ivan2", "000"))

	deleted, err := r.Delete(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, []domain.User{petro}, r.All())
}

func TestRegistry_DeleteUnknownIDConfirmedByStore(t *testing.T) {
	r := New(WithStore(store.StoreFunc(func(context.Context, domain.ID) (bool, error) {
		return true, nil
	})))
	r.Add(ivan)

	deleted, err := r.Delete(context.Background(), 42)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, []domain.User{ivan}, r.All())
}

func TestRegistry_DeleteResultFollowsStore(t *testing.T) {
	for _, want := range []bool{true, false} {
		r := New(WithStore(store.StoreFunc(func(context.Context, domain.ID) (bool, error) {
			return want, nil
		})))

		got, err := r.Delete(context.Background(), ivan.ID)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestRegistry_DeleteWithoutStoreIsNoop(t *testing.T) {
	r := New(WithStore(nil))
	r.Add(ivan)

	deleted, err := r.Delete(context.Background(), ivan.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Len(t, r.All(), 1)
}

func TestRegistry_DeleteStoreError(t *testing.T) {
	cause := errors.New("connection reset")
	r := New(WithStore(store.StoreFunc(func(context.Context, domain.ID) (bool, error) {
		return true, cause
	})))
	r.Add(ivan)

	deleted, err := r.Delete(context.Background(), ivan.ID)
	assert.False(t, deleted)
	assert.ErrorIs(t, err, cause)
	assert.True(t, strings.HasPrefix(err.Error(), "failed to delete user"))
	assert.Len(t, r.All(), 1)
}

func TestRegistry_ConcurrentAddAndRead(t *testing.T) {
	r := New()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Add(domain.NewUser(domain.ID(i*100+j), "u", "p"))
				_ = r.AllByID()
				_, _, _ = r.LoginWith(context.Background(), "u", "p")
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 800, r.Len())
	assert.Len(t, r.AllByID(), 800)
}

func TestRegistry_Metrics(t *testing.T) {
	added := testutil.ToFloat64(metrics.RegistryUsersAddedTotal)
	invalid := testutil.ToFloat64(metrics.RegistryLoginAttemptsTotal.WithLabelValues("invalid"))
	deleted := testutil.ToFloat64(metrics.RegistryDeletesTotal.WithLabelValues("deleted"))
	domainErrs := testutil.ToFloat64(metrics.DomainErrorsTotal.WithLabelValues("VALIDATION", "INVALID_ARGUMENT"))

	s := store.NewMemoryStore()
	s.Confirm(ivan.ID)
	r := New(WithStore(s))
	r.Add(ivan, petro)
	_, _, _ = r.Login(context.Background(), LoginInput{})
	_, _ = r.Delete(context.Background(), ivan.ID)

	assert.Equal(t, added+2, testutil.ToFloat64(metrics.RegistryUsersAddedTotal))
	assert.Equal(t, invalid+1, testutil.ToFloat64(metrics.RegistryLoginAttemptsTotal.WithLabelValues("invalid")))
	assert.Equal(t, deleted+1, testutil.ToFloat64(metrics.RegistryDeletesTotal.WithLabelValues("deleted")))
	assert.Equal(t, domainErrs+1, testutil.ToFloat64(metrics.DomainErrorsTotal.WithLabelValues("VALIDATION", "INVALID_ARGUMENT")))
}
