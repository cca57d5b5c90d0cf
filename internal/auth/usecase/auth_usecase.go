package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	authdomain "sathee-backend/internal/auth/domain"
	authdto "sathee-backend/internal/auth/dto"
	"sathee-backend/internal/auth/repository"
	"sathee-backend/pkg/apperr"
	"sathee-backend/pkg/config"
	"sathee-backend/pkg/mailer"
)

const resetTokenTTL = time.Hour

// authUsecase implements AuthUsecase.
type authUsecase struct {
	userRepo repository.UserRepository
	mail     mailer.EmailSender
	config   *config.Config
}

// NewAuthUsecase creates a new instance of authUsecase.
func NewAuthUsecase(userRepo repository.UserRepository, mail mailer.EmailSender, cfg *config.Config) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		mail:     mail,
		config:   cfg,
	}
}

func (u *authUsecase) Signup(ctx context.Context, req *authdto.SignupRequest) (*authdto.AuthResponse, error) {
	if req.FullName == "" || req.Email == "" || req.Password == "" {
		return nil, apperr.ValidationDetails("Missing required fields", map[string]string{
			"fullName": presence(req.FullName),
			"email":    presence(req.Email),
			"password": presence(req.Password),
		})
	}

	if req.Password != req.ConfirmPassword {
		return nil, apperr.Validation("Passwords do not match")
	}

	existing, err := u.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Error creating user", err)
	}
	if existing != nil {
		return nil, apperr.New(apperr.KindConflict, "Email is already in use")
	}

	hashedPassword, err := repository.HashPassword(req.Password)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Error creating user", err)
	}

	user := &authdomain.User{
		FullName: req.FullName,
		Email:    req.Email,
		Password: hashedPassword,
		Role:     authdomain.RolePending,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperr.New(apperr.KindConflict, "Email is already in use")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "Error creating user", err)
	}

	return u.tokenResponse(user)
}

func (u *authUsecase) Login(ctx context.Context, req *authdto.LoginRequest) (*authdto.AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, apperr.Validation("Please provide email and password")
	}

	user, err := u.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Login failed", err)
	}

	// Missing user and wrong password produce the same failure so the
	// response never reveals whether the email is registered.
	if user == nil || !repository.CheckPasswordHash(req.Password, user.Password) {
		return nil, apperr.New(apperr.KindUnauthorized, "Incorrect email or password")
	}

	return u.tokenResponse(user)
}

func (u *authUsecase) Refresh(refreshToken string) (string, error) {
	userID, err := parseToken(refreshToken, u.config.JWTRefreshSecret)
	if err != nil {
		return "", apperr.New(apperr.KindUnauthorized, "Invalid refresh token")
	}

	accessToken, err := u.signAccessToken(userID)
	if err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "Invalid refresh token", err)
	}
	return accessToken, nil
}

func (u *authUsecase) ForgotPassword(ctx context.Context, email string) error {
	if email == "" {
		return apperr.Validation("Please provide your email")
	}

	user, err := u.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "Failed to send email", err)
	}
	if user == nil {
		return apperr.New(apperr.KindNotFound, "User not found")
	}

	plaintext, tokenHash, err := newResetCode()
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "Failed to send email", err)
	}

	expiresAt := time.Now().Add(resetTokenTTL)
	if err := u.userRepo.SetResetToken(ctx, user.ID, tokenHash, expiresAt); err != nil {
		return apperr.Wrap(apperr.KindInternal, "Failed to send email", err)
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", u.config.FrontendURL, plaintext)
	err = u.mail.SendEmail(ctx, mailer.SendEmailParams{
		SendTo:  user.Email,
		Subject: "Password Reset Request",
		Body:    "Click to reset password: " + resetURL,
		Tag:     "password-reset",
	})
	if err != nil {
		log.Printf("forgot password: mail delivery failed: %v", err)
		return apperr.Wrap(apperr.KindInternal, "Failed to send email", err)
	}
	return nil
}

func (u *authUsecase) ResetPassword(ctx context.Context, req *authdto.ResetPasswordRequest) error {
	if req.Token == "" || req.NewPassword == "" || req.ConfirmPassword == "" {
		return apperr.Validation("Missing fields")
	}
	if req.NewPassword != req.ConfirmPassword {
		return apperr.Validation("Passwords do not match")
	}

	newHash, err := repository.HashPassword(req.NewPassword)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "Could not reset password", err)
	}

	user, err := u.userRepo.ConsumeResetToken(ctx, hashResetCode(req.Token), newHash, time.Now())
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "Could not reset password", err)
	}

	// Wrong, expired and already-consumed codes fail identically so
	// callers cannot probe which codes are outstanding.
	if user == nil {
		return apperr.New(apperr.KindBadRequest, "Token expired or invalid")
	}
	return nil
}

func (u *authUsecase) DeleteAccount(ctx context.Context, req *authdto.DeleteAccountRequest) error {
	if req.Email == "" || req.Password == "" {
		return apperr.Validation("Email and password required")
	}

	user, err := u.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "Could not delete user", err)
	}
	if user == nil {
		return apperr.New(apperr.KindNotFound, "User not found")
	}

	// Deletion re-authenticates from the supplied credentials rather
	// than the caller's session, so it also works while logged out.
	if !repository.CheckPasswordHash(req.Password, user.Password) {
		return apperr.New(apperr.KindUnauthorized, "Incorrect password")
	}

	if err := u.userRepo.Delete(ctx, user.ID); err != nil {
		return apperr.Wrap(apperr.KindInternal, "Could not delete user", err)
	}
	return nil
}

func (u *authUsecase) ValidateAccessToken(token string) (string, error) {
	userID, err := parseToken(token, u.config.JWTSecret)
	if err != nil {
		return "", apperr.New(apperr.KindUnauthorized, "Invalid or expired token")
	}
	return userID, nil
}

func (u *authUsecase) tokenResponse(user *authdomain.User) (*authdto.AuthResponse, error) {
	accessToken, err := u.signAccessToken(user.ID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Failed to issue tokens", err)
	}

	refreshToken, err := u.signRefreshToken(user.ID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Failed to issue tokens", err)
	}

	return &authdto.AuthResponse{
		Token:        accessToken,
		RefreshToken: refreshToken,
		User: &authdto.UserResponse{
			ID:       user.ID,
			FullName: user.FullName,
			Email:    user.Email,
			Role:     user.Role,
		},
	}, nil
}

func presence(value string) string {
	if value != "" {
		return "provided"
	}
	return "missing"
}
