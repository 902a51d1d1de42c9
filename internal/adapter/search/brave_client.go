package search

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"chat-orchestrator/internal/domain"
)

const braveResultCap = 5

// BraveClient is the web connector backed by the Brave Search API.
type BraveClient struct {
	BaseURL string
	Client  *http.Client
	apiKey  string
	logger  *slog.Logger
}

func NewBraveClient(baseURL, apiKey string, client *http.Client, logger *slog.Logger) *BraveClient {
	return &BraveClient{
		BaseURL: baseURL,
		Client:  client,
		apiKey:  apiKey,
		logger:  logger,
	}
}

type braveSearchResponse struct {
	Web struct {
		Results []struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			URL         string `json:"url"`
		} `json:"results"`
	} `json:"web"`
}

// Search queries Brave and maps hits to SearchResult. Every failure mode
// (missing key, network, non-200, malformed payload) degrades to an empty
// slice so the aggregator never sees per-source errors.
func (c *BraveClient) Search(ctx context.Context, query string) []domain.SearchResult {
	if c.apiKey == "" {
		return nil
	}

	u, err := url.Parse(fmt.Sprintf("%s/res/v1/web/search", c.BaseURL))
	if err != nil {
		c.logger.Warn("web_search_failed", slog.String("error", err.Error()))
		return nil
	}
	q := u.Query()
	q.Set("q", query)
	q.Set("count", fmt.Sprintf("%d", braveResultCap))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		c.logger.Warn("web_search_failed", slog.String("error", err.Error()))
		return nil
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", c.apiKey)

	resp, err := c.Client.Do(req)
	if err != nil {
		c.logger.Warn("web_search_failed", slog.String("error", err.Error()))
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("web_search_failed", slog.Int("status_code", resp.StatusCode))
		return nil
	}

	var data braveSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		c.logger.Warn("web_search_failed", slog.String("error", err.Error()))
		return nil
	}

	results := make([]domain.SearchResult, 0, len(data.Web.Results))
	for _, r := range data.Web.Results {
		results = append(results, domain.SearchResult{
			Title:       r.Title,
			Description: r.Description,
			URL:         r.URL,
		})
	}
	return results
}

func (c *BraveClient) Name() string { return "brave" }

var _ domain.SearchConnector = (*BraveClient)(nil)
