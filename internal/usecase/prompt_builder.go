package usecase

import (
	"fmt"
	"strings"

	"chat-orchestrator/internal/domain"
)

const (
	maxPromptSources     = 5
	maxSourceContextSize = 1200

	generalSystemPrompt = "You are BoTesh, a helpful AI assistant. Use ONLY the web search results supplied in the prompt to answer the user's question. If the search results are not relevant, say you don't know. Quote or summarize the search results directly, and cite sources inline."

	chitChatSystemPrompt = "You are BoTesh, a friendly AI assistant. Respond to the user's greeting in a warm, conversational way."
)

// PromptInput carries everything the general path feeds into one generation
// request. Built fresh per request, never shared.
type PromptInput struct {
	UserQuery      string
	RewrittenQuery string
	History        []HistoryTurn
	Sources        []domain.SearchResult
}

// PromptBuilder assembles the (system, user) prompt pair for a generation
// request.
type PromptBuilder interface {
	BuildGeneral(input PromptInput) (systemPrompt, userPrompt string)
	BuildChitChat(message string) (systemPrompt, userPrompt string)
}

type sectionPromptBuilder struct{}

// NewPromptBuilder creates the default sectioned prompt builder.
func NewPromptBuilder() PromptBuilder {
	return &sectionPromptBuilder{}
}

func (b *sectionPromptBuilder) BuildGeneral(input PromptInput) (string, string) {
	rewritten := input.RewrittenQuery
	if strings.TrimSpace(rewritten) == "" {
		rewritten = input.UserQuery
	}

	var sb strings.Builder
	sb.WriteString("<<Conversation History>>\n")
	sb.WriteString(renderHistory(input.History))
	sb.WriteString("\n\n<<User Query>>\n")
	sb.WriteString(input.UserQuery)
	sb.WriteString("\n\n<<Rewritten Query>>\n")
	sb.WriteString(rewritten)
	sb.WriteString("\n\n<<Top Sources>>\n")
	sb.WriteString(TrimSources(input.Sources, maxPromptSources, maxSourceContextSize))

	return generalSystemPrompt, sb.String()
}

func (b *sectionPromptBuilder) BuildChitChat(message string) (string, string) {
	return chitChatSystemPrompt, message
}

func renderHistory(history []HistoryTurn) string {
	lines := make([]string, 0, len(history))
	for _, turn := range history {
		lines = append(lines, fmt.Sprintf("User: %s\nBot: %s", turn.User, turn.Bot))
	}
	return strings.Join(lines, "\n")
}

// TrimSources formats up to maxSources results as Title/Description/URL
// blocks and stops before the block that would push the running character
// total over maxChars. The cap is deterministic regardless of how many or how
// long the retrieved results are.
func TrimSources(results []domain.SearchResult, maxSources, maxChars int) string {
	if len(results) > maxSources {
		results = results[:maxSources]
	}

	total := 0
	var blocks []string
	for _, r := range results {
		block := fmt.Sprintf("Title: %s\nDescription: %s\nURL: %s", r.Title, r.Description, r.URL)
		if total+len(block) > maxChars {
			break
		}
		blocks = append(blocks, block)
		total += len(block)
	}
	return strings.Join(blocks, "\n\n")
}
