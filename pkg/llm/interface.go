package llm

import "context"

// ChatResult is the answer produced by the inference service for one
// user message.
type ChatResult struct {
	BotResponse    string `json:"botResponse"`
	RiskAssessment string `json:"riskAssessment"`
}

// ChatService is the interface for the external risk-scoring/LLM
// service. Implement this interface to add new inference providers.
type ChatService interface {
	Chat(ctx context.Context, userInput string) (*ChatResult, error)
}
