package repository

import (
	"context"
	"sync"
	"time"

	authdomain "sathee-backend/internal/auth/domain"

	"github.com/google/uuid"
)

// memoryRepository is an in-memory UserRepository with the same
// semantics as the Mongo implementation, including the unique-email
// constraint and atomic reset-token consumption. It backs tests and
// can run the server without a database.
type memoryRepository struct {
	mu    sync.Mutex
	users map[string]*authdomain.User // keyed by id
}

func NewMemoryRepository() UserRepository {
	return &memoryRepository{users: make(map[string]*authdomain.User)}
}

func (r *memoryRepository) Create(ctx context.Context, user *authdomain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return ErrDuplicateEmail
		}
	}

	user.ID = uuid.New().String()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memoryRepository) FindByEmail(ctx context.Context, email string) (*authdomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *memoryRepository) FindByID(ctx context.Context, id string) (*authdomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, nil
}

func (r *memoryRepository) FindAll(ctx context.Context) ([]authdomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]authdomain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *memoryRepository) Update(ctx context.Context, user *authdomain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, u := range r.users {
		if id != user.ID && u.Email == user.Email {
			return ErrDuplicateEmail
		}
	}

	user.UpdatedAt = time.Now()
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *memoryRepository) SetResetToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return nil
	}
	expires := expiresAt
	u.ResetPasswordToken = tokenHash
	u.ResetPasswordExpires = &expires
	u.UpdatedAt = time.Now()
	return nil
}

func (r *memoryRepository) ConsumeResetToken(ctx context.Context, tokenHash, newPasswordHash string, now time.Time) (*authdomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.ResetPasswordToken == tokenHash && u.ResetPasswordToken != "" &&
			u.ResetPasswordExpires != nil && u.ResetPasswordExpires.After(now) {
			u.Password = newPasswordHash
			u.ResetPasswordToken = ""
			u.ResetPasswordExpires = nil
			u.UpdatedAt = time.Now()
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}
