package dto

type ChatRequest struct {
	UserInput string `json:"user_input"`
}

type ChatResponse struct {
	BotResponse    string `json:"botResponse"`
	RiskAssessment string `json:"riskAssessment"`
}
