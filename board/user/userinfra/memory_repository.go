package userinfra

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/easilyhq/easily/board/user"
	"github.com/easilyhq/easily/pkg/kernel"
)

// MemoryUserRepository implements user.Repository over maps keyed by ID and
// normalized email.
type MemoryUserRepository struct {
	mu      sync.RWMutex
	byID    map[kernel.UserID]*user.User
	byEmail map[kernel.Email]*user.User
	newID   kernel.IDGenerator
	clock   kernel.Clock
}

// NewMemoryUserRepository creates an in-memory user store
func NewMemoryUserRepository(newID kernel.IDGenerator, clock kernel.Clock) *MemoryUserRepository {
	if newID == nil {
		newID = uuid.NewString
	}
	if clock == nil {
		clock = kernel.SystemClock
	}
	return &MemoryUserRepository{
		byID:    make(map[kernel.UserID]*user.User),
		byEmail: make(map[kernel.Email]*user.User),
		newID:   newID,
		clock:   clock,
	}
}

// Create stores a new user; a duplicate email is a conflict and leaves the
// store unchanged
func (r *MemoryUserRepository) Create(ctx context.Context, u *user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := u.Email.Normalized()
	if _, exists := r.byEmail[email]; exists {
		return nil, user.ErrEmailExists().WithDetail("email", email.String())
	}

	stored := *u
	stored.Email = email
	if stored.ID.IsEmpty() {
		stored.ID = kernel.NewUserID(r.newID())
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = r.clock.Now()
	}

	r.byID[stored.ID] = &stored
	r.byEmail[email] = &stored

	out := stored
	return &out, nil
}

// FindByID retrieves a user by ID
func (r *MemoryUserRepository) FindByID(ctx context.Context, id kernel.UserID) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, user.ErrUserNotFound().WithDetail("user_id", id.String())
	}
	out := *u
	return &out, nil
}

// FindByEmail retrieves a user by email, case-insensitively
func (r *MemoryUserRepository) FindByEmail(ctx context.Context, email kernel.Email) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byEmail[email.Normalized()]
	if !ok {
		return nil, user.ErrUserNotFound().WithDetail("email", email.Normalized().String())
	}
	out := *u
	return &out, nil
}

var _ user.Repository = (*MemoryUserRepository)(nil)
