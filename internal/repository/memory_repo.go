package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/Anoop2208prakash/LMS/internal/model"
)

// MemoryUserRepository is an in-memory UserStore used by tests. It enforces
// the same uniqueness semantics the SQL constraints do, including the
// duplicate-id signal, so the registration retry path is exercisable
// without a database.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[int64]model.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: map[int64]model.User{}}
}

func (r *MemoryUserRepository) FindByID(_ context.Context, id int64) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return u, nil
}

func (r *MemoryUserRepository) FindByUsername(_ context.Context, username string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return model.User{}, model.ErrUserNotFound
}

func (r *MemoryUserRepository) ExistsByUsernameOrEmail(_ context.Context, username string, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryUserRepository) Create(_ context.Context, u model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[u.ID]; ok {
		return model.ErrDuplicateID
	}
	for _, existing := range r.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return model.ErrUserAlreadyExists
		}
	}

	r.users[u.ID] = u
	return nil
}

func (r *MemoryUserRepository) List(_ context.Context) ([]model.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]model.Profile, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, model.Profile{
			ID:        u.ID,
			Username:  u.Username,
			Email:     u.Email,
			Role:      u.Role,
			CreatedAt: u.CreatedAt,
		})
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

// SetRole mutates a stored row directly, bypassing the service. Tests use
// it to simulate an out-of-band role change after token issuance.
func (r *MemoryUserRepository) SetRole(id int64, role string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.users[id]; ok {
		u.Role = role
		r.users[id] = u
	}
}

// Delete removes a row directly; tests use it to simulate account
// deletion while a token is still outstanding.
func (r *MemoryUserRepository) Delete(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.users, id)
}
