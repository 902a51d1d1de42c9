package search

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"time"

	"chat-orchestrator/internal/domain"
)

const newsResultCap = 5

// NewsAPIClient fetches live headlines from newsapi.org for the NEWS intent
// path.
type NewsAPIClient struct {
	BaseURL string
	Client  *http.Client
	apiKey  string
	logger  *slog.Logger
}

func NewNewsAPIClient(baseURL, apiKey string, client *http.Client, logger *slog.Logger) *NewsAPIClient {
	return &NewsAPIClient{
		BaseURL: baseURL,
		Client:  client,
		apiKey:  apiKey,
		logger:  logger,
	}
}

type newsAPIResponse struct {
	Articles []struct {
		Title  string `json:"title"`
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
	Message string `json:"message"`
}

// LiveNews fetches up to five recent English articles, newest first. Provider
// errors surface the upstream message in the log and degrade to empty.
func (c *NewsAPIClient) LiveNews(ctx context.Context, query string) []domain.NewsArticle {
	if c.apiKey == "" {
		return nil
	}

	u, err := url.Parse(fmt.Sprintf("%s/v2/everything", c.BaseURL))
	if err != nil {
		c.logger.Warn("news_fetch_failed", slog.String("error", err.Error()))
		return nil
	}
	q := u.Query()
	q.Set("q", query)
	q.Set("apiKey", c.apiKey)
	q.Set("pageSize", fmt.Sprintf("%d", newsResultCap))
	q.Set("sortBy", "publishedAt")
	q.Set("language", "en")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		c.logger.Warn("news_fetch_failed", slog.String("error", err.Error()))
		return nil
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		c.logger.Warn("news_fetch_failed", slog.String("error", err.Error()))
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	var data newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		c.logger.Warn("news_fetch_failed", slog.String("error", err.Error()))
		return nil
	}
	if len(data.Articles) == 0 {
		if data.Message != "" {
			c.logger.Warn("news_provider_error", slog.String("message", data.Message))
		}
		return nil
	}

	articles := make([]domain.NewsArticle, 0, len(data.Articles))
	for _, a := range data.Articles {
		publishedAt, _ := time.Parse(time.RFC3339, a.PublishedAt)
		articles = append(articles, domain.NewsArticle{
			Title:       a.Title,
			Source:      a.Source.Name,
			URL:         a.URL,
			PublishedAt: publishedAt,
		})
	}
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].PublishedAt.After(articles[j].PublishedAt)
	})
	return articles
}

var _ domain.NewsProvider = (*NewsAPIClient)(nil)
