package usecase

import (
	"regexp"
	"strings"

	"chat-orchestrator/internal/domain"
)

var greetingPrefixes = []string{
	"hi",
	"hello",
	"hey",
	"good morning",
	"good evening",
	"good night",
	"how are you",
	"what's up",
	"yo",
	"sup",
}

var newsPattern = regexp.MustCompile(`(?i)(latest|breaking) news|headlines|top stories`)

// RegexIntentClassifier is the default text heuristic. It is deliberately
// dumb: a greeting prefix wins, then the news pattern, then general.
type RegexIntentClassifier struct{}

func NewRegexIntentClassifier() *RegexIntentClassifier {
	return &RegexIntentClassifier{}
}

func (c *RegexIntentClassifier) Classify(message string) domain.Intent {
	trimmed := strings.ToLower(strings.TrimSpace(message))
	for _, prefix := range greetingPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return domain.IntentChitChat
		}
	}
	if newsPattern.MatchString(trimmed) {
		return domain.IntentNews
	}
	return domain.IntentGeneral
}

var _ domain.IntentClassifier = (*RegexIntentClassifier)(nil)
