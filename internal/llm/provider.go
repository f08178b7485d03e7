package llm

import "context"

// ProviderName identifies an LLM vendor backend.
type ProviderName string

const (
	ProviderGemini     ProviderName = "gemini"
	ProviderGroq       ProviderName = "groq"
	ProviderOpenRouter ProviderName = "openrouter"
)

// ModelConfig selects a backend and its sampling parameters. Instances
// live in the generation task registry and are immutable after startup.
type ModelConfig struct {
	Provider    ProviderName
	ModelID     string
	Temperature float64
	TopP        float64
	TopK        int
	MaxTokens   int
}

// Schema describes the JSON structure the model is asked to produce.
// Backends use their native structured-output mechanism when one exists;
// conformance is verified downstream by the response normalizer, not here.
type Schema struct {
	// Name identifies the schema, kebab-case, e.g. "quiz-response".
	Name string

	// Description is sent to the model to guide generation.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Request is a single completion call.
type Request struct {
	Model       string
	Prompt      string
	Schema      *Schema
	Temperature float64
	TopP        float64
	TopK        int
	MaxTokens   int
}

// Result is the uniform reply envelope across all backends.
type Result struct {
	Text         string
	Model        string
	InputTokens  int
	OutputTokens int
}

// Provider is a single vendor backend. Implementations make exactly one
// network call per Generate; retry policy belongs to the caller.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Result, error)
}
