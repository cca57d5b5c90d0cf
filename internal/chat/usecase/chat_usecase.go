package usecase

import (
	"context"
	"log"

	chatdto "sathee-backend/internal/chat/dto"
	"sathee-backend/pkg/apperr"
	"sathee-backend/pkg/llm"
)

// ChatUsecase forwards one user message to the inference service.
// Guests and authenticated users get identical behavior; the userID is
// only logged so risk escalations can be traced to an account.
type ChatUsecase interface {
	Chat(ctx context.Context, userID string, req *chatdto.ChatRequest) (*chatdto.ChatResponse, error)
}

type chatUsecase struct {
	llmService llm.ChatService
}

func NewChatUsecase(llmService llm.ChatService) ChatUsecase {
	return &chatUsecase{llmService: llmService}
}

func (u *chatUsecase) Chat(ctx context.Context, userID string, req *chatdto.ChatRequest) (*chatdto.ChatResponse, error) {
	if req.UserInput == "" {
		return nil, apperr.Validation("user_input is required")
	}

	result, err := u.llmService.Chat(ctx, req.UserInput)
	if err != nil {
		// No retries: the failure surfaces to the caller on first
		// attempt and the client substitutes its own fallback text.
		log.Printf("chat: upstream failure (user=%s): %v", userOrGuest(userID), err)
		return nil, apperr.Wrap(apperr.KindUpstream, "Failed to get response from LLM API", err)
	}

	return &chatdto.ChatResponse{
		BotResponse:    result.BotResponse,
		RiskAssessment: result.RiskAssessment,
	}, nil
}

func userOrGuest(userID string) string {
	if userID == "" {
		return "guest"
	}
	return userID
}
