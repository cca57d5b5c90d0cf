package api

import (
	"net/http"

	authDelivery "sathee-backend/internal/auth/delivery"
	authUsecase "sathee-backend/internal/auth/usecase"
	chatDelivery "sathee-backend/internal/chat/delivery"
	chatUsecase "sathee-backend/internal/chat/usecase"
	userDelivery "sathee-backend/internal/user/delivery"
	userUsecase "sathee-backend/internal/user/usecase"
	"sathee-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, authUc authUsecase.AuthUsecase, userUc userUsecase.UserUsecase, chatUc chatUsecase.ChatUsecase, cfg *config.Config) {
	authHandler := authDelivery.NewAuthHandler(authUc, cfg)
	userHandler := userDelivery.NewUserHandler(userUc)
	chatHandler := chatDelivery.NewChatHandler(chatUc)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		v1 := api.Group("/v1")
		{
			auth := v1.Group("/auth")
			{
				auth.POST("/signup", authHandler.Signup)
				auth.POST("/login", authHandler.Login)
				auth.POST("/refresh", authHandler.Refresh)
				auth.POST("/forgot-password", authHandler.ForgotPassword)
				auth.POST("/reset-password", authHandler.ResetPassword)
			}

			users := v1.Group("/users")
			{
				// Deletion re-authenticates from the request body, so
				// no session middleware guards it.
				users.DELETE("/me", authHandler.DeleteAccount)

				users.GET("", userHandler.GetAllUsers)
				users.GET("/:id", userHandler.GetUser)
				users.PATCH("/:id", userHandler.UpdateUser)
			}

			// Chat accepts guests; a valid Bearer token only attributes
			// the conversation to the account.
			v1.POST("/chat", authDelivery.OptionalAuthMiddleware(authUc), chatHandler.Chat)
		}
	}
}
