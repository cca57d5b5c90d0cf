package api

import (
	"net/http"
	"slices"

	authUsecase "sathee-backend/internal/auth/usecase"
	chatUsecase "sathee-backend/internal/chat/usecase"
	userUsecase "sathee-backend/internal/user/usecase"
	"sathee-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	authUsecase authUsecase.AuthUsecase
	userUsecase userUsecase.UserUsecase
	chatUsecase chatUsecase.ChatUsecase
	config      *config.Config
}

func NewHandler(authUc authUsecase.AuthUsecase, userUc userUsecase.UserUsecase, chatUc chatUsecase.ChatUsecase, cfg *config.Config) *Handler {
	return &Handler{
		authUsecase: authUc,
		userUsecase: userUc,
		chatUsecase: chatUc,
		config:      cfg,
	}
}

func (h *Handler) Start(addr string) error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	r.Use(corsMiddleware(h.config.AllowedOrigins))

	SetupRoutes(r, h.authUsecase, h.userUsecase, h.chatUsecase, h.config)

	return r.Run(addr)
}

// corsMiddleware allows credentialed requests from the configured
// frontend origins only.
func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" && slices.Contains(allowedOrigins, origin) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
