package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anoop2208prakash/LMS/internal/model"
	"github.com/Anoop2208prakash/LMS/internal/repository"
	"github.com/Anoop2208prakash/LMS/pkg/apierror"
)

func newTestService(t *testing.T) (*AuthService, *repository.MemoryUserRepository) {
	t.Helper()

	store := repository.NewMemoryUserRepository()
	svc := NewAuthService(store, NewPasswordHasher(), NewTokenManager("test-secret", time.Hour))
	return svc, store
}

func TestRegisterThenLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	id, err := svc.Register(ctx, "alice", "alice@x.com", "secret1")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, id, int64(100000))
	assert.Less(t, id, int64(1000000))

	result, err := svc.Login(ctx, "alice", "secret1")
	require.NoError(t, err)
	assert.Equal(t, id, result.ID)
	assert.Equal(t, model.RoleUser, result.Role)
	require.NotEmpty(t, result.Token)

	// The token's claims decode back to the registered identity.
	claims, err := svc.ValidateToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, model.RoleUser, claims.Role)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{"empty username", "", "a@x.com", "pw"},
		{"empty email", "alice", "", "pw"},
		{"empty password", "alice", "a@x.com", ""},
		{"whitespace username", "   ", "a@x.com", "pw"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.username, tc.email, tc.password)
			var apiErr *apierror.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, 400, apiErr.HTTPStatus)
		})
	}
}

func TestRegisterConflicts(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "alice@x.com", "secret1")
	require.NoError(t, err)

	// Same username, different email.
	_, err = svc.Register(ctx, "alice", "a2@x.com", "secret1")
	var apiErr *apierror.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "CONFLICT", apiErr.Code)
	assert.Equal(t, 400, apiErr.HTTPStatus)

	// Same email, different username.
	_, err = svc.Register(ctx, "alice2", "alice@x.com", "secret1")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "CONFLICT", apiErr.Code)
}

func TestRegisterAssignsDefaultRole(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	id, err := svc.Register(ctx, "bob", "bob@x.com", "secret1")
	require.NoError(t, err)

	user, err := store.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "secret1", user.PasswordHash)
	assert.False(t, user.CreatedAt.IsZero())
}

// duplicateIDStore forces the first n inserts to collide on the primary
// key, exercising the propose-candidate retry loop.
type duplicateIDStore struct {
	UserStore
	remaining int
	attempts  []int64
}

func (s *duplicateIDStore) Create(ctx context.Context, u model.User) error {
	s.attempts = append(s.attempts, u.ID)
	if s.remaining > 0 {
		s.remaining--
		return model.ErrDuplicateID
	}
	return s.UserStore.Create(ctx, u)
}

func TestRegisterRetriesOnDuplicateID(t *testing.T) {
	inner := repository.NewMemoryUserRepository()
	store := &duplicateIDStore{UserStore: inner, remaining: 2}
	svc := NewAuthService(store, NewPasswordHasher(), NewTokenManager("test-secret", time.Hour))

	id, err := svc.Register(context.Background(), "carol", "carol@x.com", "secret1")
	require.NoError(t, err)
	require.Len(t, store.attempts, 3)
	assert.Equal(t, store.attempts[2], id)
}

func TestRegisterGivesUpAfterRepeatedCollisions(t *testing.T) {
	inner := repository.NewMemoryUserRepository()
	store := &duplicateIDStore{UserStore: inner, remaining: maxIDAttempts}
	svc := NewAuthService(store, NewPasswordHasher(), NewTokenManager("test-secret", time.Hour))

	_, err := svc.Register(context.Background(), "dave", "dave@x.com", "secret1")
	require.Error(t, err)
	var apiErr *apierror.APIError
	assert.False(t, errors.As(err, &apiErr), "collision exhaustion is internal, not client-facing")
}

func TestLoginRejectsWithGenericMessage(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "alice@x.com", "secret1")
	require.NoError(t, err)

	_, unknownErr := svc.Login(ctx, "nobody", "secret1")
	_, wrongPwErr := svc.Login(ctx, "alice", "wrong")

	var unknownAPI, wrongAPI *apierror.APIError
	require.ErrorAs(t, unknownErr, &unknownAPI)
	require.ErrorAs(t, wrongPwErr, &wrongAPI)

	// Neither response discloses which check failed.
	assert.Equal(t, 401, unknownAPI.HTTPStatus)
	assert.Equal(t, 401, wrongAPI.HTTPStatus)
	assert.Equal(t, unknownAPI.Message, wrongAPI.Message)
}

func TestLoginValidation(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), "", "pw")
	var apiErr *apierror.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.HTTPStatus)

	_, err = svc.Login(context.Background(), "alice", "")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.HTTPStatus)
}

func TestCurrentUserReFetchesRow(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	id, err := svc.Register(ctx, "alice", "alice@x.com", "secret1")
	require.NoError(t, err)

	result, err := svc.Login(ctx, "alice", "secret1")
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, result.Role)

	// Role change after issuance is visible on the next lookup even
	// though the outstanding token still carries the old role.
	store.SetRole(id, model.RoleAdmin)

	profile, err := svc.CurrentUser(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, profile.Role)
	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, "alice@x.com", profile.Email)
	assert.False(t, profile.CreatedAt.IsZero())
}

func TestCurrentUserDeletedRow(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	id, err := svc.Register(ctx, "alice", "alice@x.com", "secret1")
	require.NoError(t, err)

	store.Delete(id)

	_, err = svc.CurrentUser(ctx, id)
	var apiErr *apierror.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.HTTPStatus)
}

func TestListUsers(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "bob", "bob@x.com", "pw1")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "alice", "alice@x.com", "pw2")
	require.NoError(t, err)

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "bob", users[1].Username)
}
