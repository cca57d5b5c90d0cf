package usecase

import (
	"context"

	authdto "sathee-backend/internal/auth/dto"
)

// AuthUsecase is the auth flow controller. Every operation is a single
// logical transaction against the credential store and returns either
// a value or an error from pkg/apperr; the delivery layer owns the
// translation to HTTP statuses.
type AuthUsecase interface {
	Signup(ctx context.Context, req *authdto.SignupRequest) (*authdto.AuthResponse, error)
	Login(ctx context.Context, req *authdto.LoginRequest) (*authdto.AuthResponse, error)
	// Refresh verifies the refresh token and mints a new access token.
	// The refresh token itself is neither rotated nor invalidated.
	Refresh(refreshToken string) (string, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req *authdto.ResetPasswordRequest) error
	DeleteAccount(ctx context.Context, req *authdto.DeleteAccountRequest) error

	// ValidateAccessToken returns the user id embedded in a valid
	// access token; used by the Bearer middleware.
	ValidateAccessToken(token string) (string, error)
}
