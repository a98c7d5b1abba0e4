package adapter

import "context"

// Adapter defines the interface for LLM provider adapters.
type Adapter interface {
	// Complete sends a system and user message pair to the model and
	// returns the raw response text.
	Complete(ctx context.Context, model, systemPrompt, userPrompt string) (string, error)

	// Name returns the adapter's identifier.
	Name() string

	// Models returns the list of supported models.
	Models() []string
}
