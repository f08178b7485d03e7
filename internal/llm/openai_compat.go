package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

const (
	groqBaseURL       = "https://api.groq.com/openai/v1"
	openRouterBaseURL = "https://openrouter.ai/api/v1"
)

// openAICompatProvider implements Provider for any backend exposing the
// OpenAI chat-completions API. Groq and OpenRouter both do.
type openAICompatProvider struct {
	client *openai.Client
	name   ProviderName
}

// NewGroqProvider creates a provider targeting the Groq API.
func NewGroqProvider(apiKey string) (Provider, error) {
	return newOpenAICompat(ProviderGroq, apiKey, groqBaseURL)
}

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
func NewOpenRouterProvider(apiKey string) (Provider, error) {
	return newOpenAICompat(ProviderOpenRouter, apiKey, openRouterBaseURL)
}

func newOpenAICompat(name ProviderName, apiKey, baseURL string) (Provider, error) {
	if apiKey == "" {
		return nil, &NotConfiguredError{Provider: name}
	}

	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL

	return &openAICompatProvider{
		client: openai.NewClientWithConfig(config),
		name:   name,
	}, nil
}

// newOpenAICompatForTest builds a provider against an arbitrary base URL.
func newOpenAICompatForTest(name ProviderName, apiKey, baseURL string) Provider {
	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL
	return &openAICompatProvider{
		client: openai.NewClientWithConfig(config),
		name:   name,
	}
}

func (p *openAICompatProvider) Generate(ctx context.Context, req Request) (*Result, error) {
	chatReq := openai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		MaxCompletionTokens: req.MaxTokens,
		Temperature:         float32(req.Temperature),
	}
	if req.TopP > 0 {
		chatReq.TopP = float32(req.TopP)
	}

	// JSON-schema response format where the backend supports it. Some
	// OpenRouter-routed models are lenient here; the normalizer remains
	// the authority on conformance.
	if req.Schema != nil {
		schemaBytes, err := json.Marshal(req.Schema.Definition)
		if err != nil {
			return nil, fmt.Errorf("marshal schema: %w", err)
		}

		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   req.Schema.Name,
				Schema: json.RawMessage(schemaBytes),
				Strict: true,
			},
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, mapOpenAIError(err)
	}

	if len(resp.Choices) == 0 {
		return nil, &EmptyResponseError{Model: req.Model}
	}

	return &Result{
		Text:         resp.Choices[0].Message.Content,
		Model:        resp.Model,
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
	}, nil
}

func mapOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode == http.StatusTooManyRequests:
			return &RateLimitError{Err: err}
		case apiErr.HTTPStatusCode >= 500:
			return &UnavailableError{Err: err}
		}
	}
	return wrapTransportError(err, &UnavailableError{Err: err})
}
