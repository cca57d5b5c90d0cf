package delivery

import (
	"net/http"

	chatdto "sathee-backend/internal/chat/dto"
	"sathee-backend/internal/chat/usecase"
	"sathee-backend/pkg/apperr"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chatUsecase usecase.ChatUsecase
}

func NewChatHandler(chatUsecase usecase.ChatUsecase) *ChatHandler {
	return &ChatHandler{chatUsecase: chatUsecase}
}

func (h *ChatHandler) Chat(c *gin.Context) {
	var req chatdto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.Validation("user_input is required"))
		return
	}

	// Empty when the caller is a guest.
	userID := c.GetString("userID")

	resp, err := h.chatUsecase.Chat(c.Request.Context(), userID, &req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
