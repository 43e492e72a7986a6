package generator

import "context"

// LLMClient abstracts the text-generation model so it can be swapped/mocked.
type LLMClient interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// LLMSettings is the base configuration handed to concrete implementations.
type LLMSettings struct {
	Provider    string
	Model       string
	APIKey      string
	BaseURL     string
	Temperature float64
	MaxTokens   int
}

// Prompt is the message pair sent to the model.
type Prompt struct {
	System string
	User   string
}
