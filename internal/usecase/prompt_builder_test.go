package usecase

import (
	"fmt"
	"strings"
	"testing"

	"chat-orchestrator/internal/domain"
)

func TestTrimSources_NeverExceedsCharBudget(t *testing.T) {
	long := strings.Repeat("x", 400)
	var results []domain.SearchResult
	for i := 0; i < 10; i++ {
		results = append(results, domain.SearchResult{
			Title:       fmt.Sprintf("Result %d", i),
			Description: long,
			URL:         fmt.Sprintf("http://x.test/%d", i),
		})
	}

	out := TrimSources(results, 5, 1200)

	blocks := strings.Split(out, "\n\n")
	total := 0
	for _, b := range blocks {
		total += len(b)
	}
	if total > 1200 {
		t.Fatalf("included blocks total %d chars, budget is 1200", total)
	}
	if len(blocks) > 5 {
		t.Fatalf("included %d blocks, cap is 5", len(blocks))
	}
	// dropping is deterministic: the first blocks in order are the ones kept
	if !strings.Contains(out, "Result 0") {
		t.Fatalf("highest-priority result was dropped:\n%s", out)
	}
	if strings.Contains(out, "Result 9") {
		t.Fatalf("result beyond the count cap was included")
	}
}

func TestTrimSources_CountCap(t *testing.T) {
	var results []domain.SearchResult
	for i := 0; i < 8; i++ {
		results = append(results, domain.SearchResult{
			Title:       fmt.Sprintf("T%d", i),
			Description: "short",
			URL:         fmt.Sprintf("http://x.test/%d", i),
		})
	}

	out := TrimSources(results, 5, 1200)
	if got := strings.Count(out, "Title: "); got != 5 {
		t.Fatalf("expected 5 source blocks, got %d", got)
	}
}

func TestBuildGeneral_SectionsAndHistoryOrder(t *testing.T) {
	builder := NewPromptBuilder()

	system, user := builder.BuildGeneral(PromptInput{
		UserQuery:      "current IPL winner",
		RewrittenQuery: "IPL 2026 winner latest",
		History: []HistoryTurn{
			{User: "hi", Bot: "Hello!"},
			{User: "who won yesterday", Bot: "CSK won."},
		},
		Sources: []domain.SearchResult{
			{Title: "IPL Final", Description: "match report", URL: "http://x.test/final"},
		},
	})

	if !strings.Contains(system, "ONLY the web search results") {
		t.Fatalf("general system prompt missing grounding instruction: %q", system)
	}
	if !strings.Contains(system, "cite sources inline") {
		t.Fatalf("general system prompt missing citation instruction: %q", system)
	}

	for _, section := range []string{"<<Conversation History>>", "<<User Query>>", "<<Rewritten Query>>", "<<Top Sources>>"} {
		if !strings.Contains(user, section) {
			t.Fatalf("user prompt missing section %s", section)
		}
	}

	// pairs render oldest first, two lines each
	firstTurn := strings.Index(user, "User: hi\nBot: Hello!")
	secondTurn := strings.Index(user, "User: who won yesterday\nBot: CSK won.")
	if firstTurn == -1 || secondTurn == -1 || firstTurn > secondTurn {
		t.Fatalf("history not rendered oldest-first:\n%s", user)
	}

	if !strings.Contains(user, "Title: IPL Final\nDescription: match report\nURL: http://x.test/final") {
		t.Fatalf("source block missing:\n%s", user)
	}
}

func TestBuildGeneral_BlankRewrittenFallsBackToQuery(t *testing.T) {
	builder := NewPromptBuilder()

	_, user := builder.BuildGeneral(PromptInput{
		UserQuery:      "plain question",
		RewrittenQuery: "   ",
	})

	rewrittenSection := user[strings.Index(user, "<<Rewritten Query>>"):]
	if !strings.Contains(rewrittenSection, "plain question") {
		t.Fatalf("rewritten section should fall back to the user query:\n%s", rewrittenSection)
	}
}

func TestBuildChitChat(t *testing.T) {
	builder := NewPromptBuilder()

	system, user := builder.BuildChitChat("hello there")
	if !strings.Contains(system, "warm, conversational") {
		t.Fatalf("chit-chat system prompt missing tone instruction: %q", system)
	}
	if strings.Contains(system, "search") {
		t.Fatalf("chit-chat system prompt must not reference search context: %q", system)
	}
	if user != "hello there" {
		t.Fatalf("chit-chat user prompt should be the raw message, got %q", user)
	}
}
