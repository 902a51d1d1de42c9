package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"chat-orchestrator/internal/domain"
)

const (
	cohereTemperature = 0.7
	cohereMaxTokens   = 1024
)

type cohereChatRequest struct {
	Model       string  `json:"model"`
	Message     string  `json:"message"`
	Preamble    string  `json:"preamble,omitempty"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

type cohereChatResponse struct {
	Text string `json:"text"`
}

// CohereClient is the secondary generation provider, calling Cohere's chat
// endpoint directly.
type CohereClient struct {
	BaseURL string
	Model   string
	Client  *http.Client
	apiKey  string
}

func NewCohereClient(baseURL, apiKey, model string, client *http.Client) *CohereClient {
	return &CohereClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Model:   model,
		Client:  client,
		apiKey:  apiKey,
	}
}

func (c *CohereClient) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("cohere API key is missing")
	}

	reqBody := cohereChatRequest{
		Model:       c.Model,
		Message:     userPrompt,
		Preamble:    systemPrompt,
		Temperature: cohereTemperature,
		MaxTokens:   cohereMaxTokens,
	}

	jsonPayload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/chat", c.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonPayload))
	if err != nil {
		return "", fmt.Errorf("failed to create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call chat endpoint: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("chat endpoint returned %d: %s", resp.StatusCode, string(body))
	}

	var chatResp cohereChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to decode chat response: %w", err)
	}

	text := strings.TrimSpace(chatResp.Text)
	if text == "" {
		return "", fmt.Errorf("cohere returned empty response")
	}
	return text, nil
}

func (c *CohereClient) Name() string { return "cohere" }

var _ domain.Generator = (*CohereClient)(nil)
