package domain

import "context"

// Generator defines the capability to turn a prompt into text via one
// language-model provider.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	Name() string
}

// Captioner describes an image for the upload endpoint.
type Captioner interface {
	Caption(ctx context.Context, image []byte) (string, error)
}
