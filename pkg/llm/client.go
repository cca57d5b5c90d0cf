package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client implements ChatService against the HTTP inference service.
// The service exposes POST /chat taking {"user_input": ...} and
// answering {"final_safe_response": ..., "risk_assessment": ...}.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = "http://127.0.0.1:5000"
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type chatRequest struct {
	UserInput string `json:"user_input"`
}

type chatResponse struct {
	FinalSafeResponse string `json:"final_safe_response"`
	RiskAssessment    string `json:"risk_assessment"`
}

func (c *Client) Chat(ctx context.Context, userInput string) (*ChatResult, error) {
	body, err := json.Marshal(chatRequest{UserInput: userInput})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("llm request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("llm API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var result chatResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &ChatResult{
		BotResponse:    result.FinalSafeResponse,
		RiskAssessment: result.RiskAssessment,
	}, nil
}
