package repository

import (
	"context"
	"time"

	authdomain "sathee-backend/internal/auth/domain"
)

// UserRepository is the credential store. Lookups that miss return
// (nil, nil) so callers can shape their own not-found errors.
type UserRepository interface {
	Create(ctx context.Context, user *authdomain.User) error
	FindByEmail(ctx context.Context, email string) (*authdomain.User, error)
	FindByID(ctx context.Context, id string) (*authdomain.User, error)
	FindAll(ctx context.Context) ([]authdomain.User, error)
	Update(ctx context.Context, user *authdomain.User) error
	Delete(ctx context.Context, id string) error

	// SetResetToken stores the hashed reset code and its expiry on the
	// user record, replacing any outstanding one.
	SetResetToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error

	// ConsumeResetToken atomically finds the user whose stored reset
	// hash matches and has not expired at now, sets the new password
	// hash and clears both reset fields in the same update. Returns
	// (nil, nil) when no record matches.
	ConsumeResetToken(ctx context.Context, tokenHash, newPasswordHash string, now time.Time) (*authdomain.User, error)
}
