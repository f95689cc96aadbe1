package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	"github.com/Anoop2208prakash/LMS/internal/model"
	"github.com/Anoop2208prakash/LMS/pkg/apierror"
)

// maxIDAttempts bounds the candidate-id retry loop. With six-digit ids the
// keyspace is 900k, so repeated collisions within one registration mean the
// table is effectively full and an error is the honest answer.
const maxIDAttempts = 5

const (
	idLow  = 100_000
	idSpan = 900_000
)

// UserStore is the persistence surface the auth flow depends on. It is
// constructor-injected so tests can substitute an in-memory fake.
type UserStore interface {
	FindByID(ctx context.Context, id int64) (model.User, error)
	FindByUsername(ctx context.Context, username string) (model.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username string, email string) (bool, error)
	Create(ctx context.Context, u model.User) error
	List(ctx context.Context) ([]model.Profile, error)
}

type AuthService struct {
	store  UserStore
	hasher *PasswordHasher
	tokens *TokenManager
}

func NewAuthService(store UserStore, hasher *PasswordHasher, tokens *TokenManager) *AuthService {
	return &AuthService{store: store, hasher: hasher, tokens: tokens}
}

// Register creates a user row with role "user". The registering client
// cannot choose a role. The id is a random six-digit candidate; an insert
// conflict on the primary key retries with a fresh candidate, because the
// unique constraint is the only check that holds under concurrent inserts.
func (s *AuthService) Register(ctx context.Context, username string, email string, password string) (int64, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" || email == "" || password == "" {
		return 0, apierror.New("BAD_REQUEST", "Missing fields", "", http.StatusBadRequest)
	}

	exists, err := s.store.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return 0, fmt.Errorf("check existing user: %w", err)
	}
	if exists {
		return 0, apierror.New("CONFLICT", "Username or email already taken", "", http.StatusBadRequest)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return 0, err
	}

	user := model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}

	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		user.ID = idLow + rand.Int64N(idSpan)

		err := s.store.Create(ctx, user)
		if err == nil {
			return user.ID, nil
		}
		if errors.Is(err, model.ErrDuplicateID) {
			continue
		}
		if errors.Is(err, model.ErrUserAlreadyExists) {
			// Lost the race to a concurrent registration with the
			// same username or email.
			return 0, apierror.New("CONFLICT", "Username or email already taken", "", http.StatusBadRequest)
		}
		return 0, err
	}

	return 0, fmt.Errorf("exhausted %d id candidates", maxIDAttempts)
}

// Login validates credentials and mints a token. Unknown username and
// wrong password return the identical generic error so the response does
// not disclose which check failed.
func (s *AuthService) Login(ctx context.Context, username string, password string) (model.LoginResponse, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return model.LoginResponse{}, apierror.New("BAD_REQUEST", "Missing fields", "", http.StatusBadRequest)
	}

	user, err := s.store.FindByUsername(ctx, username)
	if errors.Is(err, model.ErrUserNotFound) {
		return model.LoginResponse{}, invalidCredentials()
	}
	if err != nil {
		return model.LoginResponse{}, err
	}

	match, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		// Hash engine failure, not a wrong password; surfaces as 500.
		return model.LoginResponse{}, err
	}
	if !match {
		return model.LoginResponse{}, invalidCredentials()
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return model.LoginResponse{}, fmt.Errorf("issue token: %w", err)
	}

	return model.LoginResponse{Token: token, Role: user.Role, ID: user.ID}, nil
}

// CurrentUser re-fetches the row behind a verified token instead of
// trusting the embedded claims, so a role change or deletion is visible on
// the next lookup even while the token itself stays valid.
func (s *AuthService) CurrentUser(ctx context.Context, userID int64) (model.Profile, error) {
	user, err := s.store.FindByID(ctx, userID)
	if errors.Is(err, model.ErrUserNotFound) {
		return model.Profile{}, apierror.New("NOT_FOUND", "User not found", "", http.StatusNotFound)
	}
	if err != nil {
		return model.Profile{}, err
	}

	return model.Profile{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}, nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]model.Profile, error) {
	return s.store.List(ctx)
}

// ValidateToken lets the auth middleware verify bearer tokens without
// depending on the token manager directly.
func (s *AuthService) ValidateToken(tokenString string) (*model.AuthClaims, error) {
	return s.tokens.Verify(tokenString)
}

func invalidCredentials() error {
	return apierror.New("UNAUTHORIZED", "Invalid credentials", "", http.StatusUnauthorized)
}
