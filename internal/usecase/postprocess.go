package usecase

import (
	"fmt"
	"regexp"
	"strings"

	"chat-orchestrator/internal/domain"
)

// NewsUnavailableMessage is returned on the news path when the provider
// yields no articles.
const NewsUnavailableMessage = "Sorry, I could not fetch the latest news at this time."

var urlPattern = regexp.MustCompile(`https?://\S+`)

// AutoLink wraps every bare URL in markdown link syntax, using the URL as
// both label and target. The transform does not check whether a URL already
// sits inside a link, so re-running it on formatted text mangles the links;
// it is applied exactly once per response.
func AutoLink(text string) string {
	return urlPattern.ReplaceAllString(text, "[$0]($0)")
}

// FormatNews renders headlines as a numbered markdown list with source links
// and publish times.
func FormatNews(articles []domain.NewsArticle) string {
	var sb strings.Builder
	sb.WriteString("📰 **Top News Headlines:**\n\n")
	for i, a := range articles {
		sb.WriteString(fmt.Sprintf("**%d. [%s](%s)**\n", i+1, a.Title, a.URL))
		if a.Source != "" && a.URL != "" {
			sb.WriteString(fmt.Sprintf("[Source: %s](%s)", a.Source, a.URL))
		}
		if !a.PublishedAt.IsZero() {
			sb.WriteString(fmt.Sprintf("  •  _%s_", a.PublishedAt.Format("1/2/2006, 3:04:05 PM")))
		}
		sb.WriteString("\n---\n\n")
	}
	return sb.String()
}
