package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"chat-orchestrator/internal/domain"
)

// CaptionClient describes uploaded images through the hosted BLIP captioning
// model.
type CaptionClient struct {
	URL    string
	Client *http.Client
	apiKey string
}

func NewCaptionClient(url, apiKey string, client *http.Client) *CaptionClient {
	return &CaptionClient{
		URL:    url,
		Client: client,
		apiKey: apiKey,
	}
}

type captionResult struct {
	GeneratedText string `json:"generated_text"`
}

func (c *CaptionClient) Caption(ctx context.Context, image []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(image))
	if err != nil {
		return "", fmt.Errorf("failed to create caption request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call caption endpoint: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("caption endpoint returned %d: %s", resp.StatusCode, string(body))
	}

	// BLIP returns [{"generated_text": ...}]
	var results []captionResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return "", fmt.Errorf("failed to decode caption response: %w", err)
	}
	if len(results) == 0 || results[0].GeneratedText == "" {
		return "", fmt.Errorf("caption endpoint returned no caption")
	}
	return results[0].GeneratedText, nil
}

var _ domain.Captioner = (*CaptionClient)(nil)
