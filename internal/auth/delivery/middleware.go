package delivery

import (
	"net/http"
	"strings"

	"sathee-backend/internal/auth/usecase"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware rejects requests without a valid Bearer access token
// and stores the token's user id in the context.
func AuthMiddleware(authUsecase usecase.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "fail", "message": "Authorization header required"})
			c.Abort()
			return
		}

		userID, err := authUsecase.ValidateAccessToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "fail", "message": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves the user id when a valid Bearer token
// is present but lets guests through. Invalid tokens are treated as
// guest requests rather than rejected.
func OptionalAuthMiddleware(authUsecase usecase.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if userID, err := authUsecase.ValidateAccessToken(token); err == nil {
				c.Set("userID", userID)
			}
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}
