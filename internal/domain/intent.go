package domain

// Intent is the handling path selected for an incoming message.
type Intent int

const (
	IntentGeneral Intent = iota
	IntentChitChat
	IntentNews
)

func (i Intent) String() string {
	switch i {
	case IntentChitChat:
		return "chit_chat"
	case IntentNews:
		return "news"
	default:
		return "general"
	}
}

// IntentClassifier decides which path handles a raw message. The default
// implementation is a text heuristic; anything honoring this contract can
// replace it.
type IntentClassifier interface {
	Classify(message string) Intent
}
