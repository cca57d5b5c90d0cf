package delivery

import (
	"net/http"

	userdto "sathee-backend/internal/user/dto"
	"sathee-backend/internal/user/usecase"
	"sathee-backend/pkg/apperr"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userUsecase usecase.UserUsecase
}

func NewUserHandler(userUsecase usecase.UserUsecase) *UserHandler {
	return &UserHandler{userUsecase: userUsecase}
}

func (h *UserHandler) GetAllUsers(c *gin.Context) {
	users, err := h.userUsecase.GetAllUsers(c.Request.Context())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "users": users})
}

func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userUsecase.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "user": user})
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req userdto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.Validation("Invalid request body"))
		return
	}

	user, err := h.userUsecase.UpdateUser(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "user": user})
}
