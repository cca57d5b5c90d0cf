package delivery

import (
	"net/http"

	authdto "sathee-backend/internal/auth/dto"
	"sathee-backend/internal/auth/usecase"
	"sathee-backend/pkg/apperr"
	"sathee-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

const refreshCookieName = "refreshToken"

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	config      *config.Config
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		config:      cfg,
	}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req authdto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.Validation("Invalid request body"))
		return
	}

	resp, err := h.authUsecase.Signup(c.Request.Context(), &req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":       "success",
		"token":        resp.Token,
		"refreshToken": resp.RefreshToken,
		"user":         resp.User,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req authdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.Validation("Invalid request body"))
		return
	}

	resp, err := h.authUsecase.Login(c.Request.Context(), &req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	h.setRefreshCookie(c, resp.RefreshToken)

	c.JSON(http.StatusOK, gin.H{
		"status":       "success",
		"token":        resp.Token,
		"refreshToken": resp.RefreshToken,
		"user":         resp.User,
	})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	// Body takes precedence over the cookie.
	var req authdto.RefreshRequest
	_ = c.ShouldBindJSON(&req)

	token := req.RefreshToken
	if token == "" {
		token, _ = c.Cookie(refreshCookieName)
	}

	if token == "" {
		apperr.Respond(c, apperr.New(apperr.KindUnauthorized, "No refresh token provided"))
		return
	}

	accessToken, err := h.authUsecase.Refresh(token)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "token": accessToken})
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req authdto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.Validation("Invalid request body"))
		return
	}

	if err := h.authUsecase.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		apperr.Respond(c, err)
		return
	}

	// The reset code travels by mail only; it is never echoed here.
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Reset link sent"})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req authdto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.Validation("Invalid request body"))
		return
	}

	if err := h.authUsecase.ResetPassword(c.Request.Context(), &req); err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Password reset successful"})
}

func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	var req authdto.DeleteAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.Validation("Invalid request body"))
		return
	}

	if err := h.authUsecase.DeleteAccount(c.Request.Context(), &req); err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "User deleted successfully"})
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, refreshToken string) {
	cookie := &http.Cookie{
		Name:     refreshCookieName,
		Value:    refreshToken,
		Path:     "/",
		MaxAge:   int(h.config.JWTRefreshExpiry.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	http.SetCookie(c.Writer, cookie)
}
