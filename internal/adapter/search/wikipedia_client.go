package search

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"chat-orchestrator/internal/domain"
)

const wikipediaResultCap = 3

var htmlTagPattern = regexp.MustCompile(`<[^>]+>`)

// WikipediaClient is the encyclopedia connector over the public MediaWiki
// search API.
type WikipediaClient struct {
	BaseURL string
	Client  *http.Client
	logger  *slog.Logger
}

func NewWikipediaClient(baseURL string, client *http.Client, logger *slog.Logger) *WikipediaClient {
	return &WikipediaClient{
		BaseURL: baseURL,
		Client:  client,
		logger:  logger,
	}
}

type wikipediaSearchResponse struct {
	Query struct {
		Search []struct {
			Title   string `json:"title"`
			Snippet string `json:"snippet"`
		} `json:"search"`
	} `json:"query"`
}

// Search queries the MediaWiki search endpoint. Snippets arrive as HTML, so
// markup is stripped; the article URL is synthesized from the title.
func (c *WikipediaClient) Search(ctx context.Context, query string) []domain.SearchResult {
	u, err := url.Parse(fmt.Sprintf("%s/w/api.php", c.BaseURL))
	if err != nil {
		c.logger.Warn("wikipedia_search_failed", slog.String("error", err.Error()))
		return nil
	}
	q := u.Query()
	q.Set("action", "query")
	q.Set("list", "search")
	q.Set("format", "json")
	q.Set("srsearch", query)
	q.Set("srlimit", fmt.Sprintf("%d", wikipediaResultCap))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		c.logger.Warn("wikipedia_search_failed", slog.String("error", err.Error()))
		return nil
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		c.logger.Warn("wikipedia_search_failed", slog.String("error", err.Error()))
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("wikipedia_search_failed", slog.Int("status_code", resp.StatusCode))
		return nil
	}

	var data wikipediaSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		c.logger.Warn("wikipedia_search_failed", slog.String("error", err.Error()))
		return nil
	}

	results := make([]domain.SearchResult, 0, len(data.Query.Search))
	for _, item := range data.Query.Search {
		results = append(results, domain.SearchResult{
			Title:       item.Title,
			Description: htmlTagPattern.ReplaceAllString(item.Snippet, ""),
			URL:         c.articleURL(item.Title),
		})
	}
	return results
}

func (c *WikipediaClient) articleURL(title string) string {
	slug := url.PathEscape(strings.ReplaceAll(title, " ", "_"))
	return fmt.Sprintf("%s/wiki/%s", c.BaseURL, slug)
}

func (c *WikipediaClient) Name() string { return "wikipedia" }

var _ domain.SearchConnector = (*WikipediaClient)(nil)
