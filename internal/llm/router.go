package llm

import (
	"context"

	"github.com/rs/zerolog"
)

// Credentials carries one API key per supported provider. Providers with
// an empty key are simply not constructed; requests routed to them fail
// with NotConfiguredError.
type Credentials struct {
	GeminiAPIKey     string
	GroqAPIKey       string
	OpenRouterAPIKey string
}

// Router dispatches a request to the backend named by its model config.
// The backend set is fixed at construction; there is no runtime
// registration. Callers never branch on provider identity themselves.
type Router struct {
	gemini     Provider
	groq       Provider
	openrouter Provider
	log        zerolog.Logger
}

// NewRouter builds backends for every provider with a configured key.
func NewRouter(ctx context.Context, creds Credentials, log zerolog.Logger) (*Router, error) {
	r := &Router{log: log.With().Str("component", "llm_router").Logger()}

	if creds.GeminiAPIKey != "" {
		p, err := NewGeminiProvider(ctx, creds.GeminiAPIKey)
		if err != nil {
			return nil, err
		}
		r.gemini = p
	}
	if creds.GroqAPIKey != "" {
		p, err := NewGroqProvider(creds.GroqAPIKey)
		if err != nil {
			return nil, err
		}
		r.groq = p
	}
	if creds.OpenRouterAPIKey != "" {
		p, err := NewOpenRouterProvider(creds.OpenRouterAPIKey)
		if err != nil {
			return nil, err
		}
		r.openrouter = p
	}

	return r, nil
}

// NewRouterWithBackends wires explicit backends. Used by tests to inject
// mock providers.
func NewRouterWithBackends(gemini, groq, openrouter Provider, log zerolog.Logger) *Router {
	return &Router{
		gemini:     gemini,
		groq:       groq,
		openrouter: openrouter,
		log:        log.With().Str("component", "llm_router").Logger(),
	}
}

// Generate sends the prompt to the backend selected by cfg.Provider and
// returns the normalized reply envelope. One network call, no retries.
func (r *Router) Generate(ctx context.Context, prompt string, cfg ModelConfig, schema *Schema) (*Result, error) {
	backend, err := r.backend(cfg.Provider)
	if err != nil {
		return nil, err
	}

	result, err := backend.Generate(ctx, Request{
		Model:       cfg.ModelID,
		Prompt:      prompt,
		Schema:      schema,
		Temperature: cfg.Temperature,
		TopP:        cfg.TopP,
		TopK:        cfg.TopK,
		MaxTokens:   cfg.MaxTokens,
	})
	if err != nil {
		r.log.Warn().
			Err(err).
			Str("provider", string(cfg.Provider)).
			Str("model", cfg.ModelID).
			Msg("Provider call failed")
		return nil, err
	}

	r.log.Debug().
		Str("provider", string(cfg.Provider)).
		Str("model", result.Model).
		Int("input_tokens", result.InputTokens).
		Int("output_tokens", result.OutputTokens).
		Msg("Provider call completed")

	return result, nil
}

// backend resolves a provider name to its configured backend. The switch
// is exhaustive over the provider enumeration.
func (r *Router) backend(name ProviderName) (Provider, error) {
	switch name {
	case ProviderGemini:
		if r.gemini == nil {
			return nil, &NotConfiguredError{Provider: name}
		}
		return r.gemini, nil
	case ProviderGroq:
		if r.groq == nil {
			return nil, &NotConfiguredError{Provider: name}
		}
		return r.groq, nil
	case ProviderOpenRouter:
		if r.openrouter == nil {
			return nil, &NotConfiguredError{Provider: name}
		}
		return r.openrouter, nil
	default:
		return nil, &UnsupportedProviderError{Provider: name}
	}
}
