package generation

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/quizforge/quizforge-backend/internal/llm"
)

// TextBackend is the slice of the provider router the generator needs.
type TextBackend interface {
	Generate(ctx context.Context, prompt string, cfg llm.ModelConfig, schema *llm.Schema) (*llm.Result, error)
}

// Meta records how a generation was produced. It is persisted alongside
// the result for audit and cost tracking.
type Meta struct {
	Task         string        `json:"task"`
	Provider     string        `json:"provider"`
	Model        string        `json:"model"`
	InputTokens  int           `json:"input_tokens,omitempty"`
	OutputTokens int           `json:"output_tokens,omitempty"`
	Duration     time.Duration `json:"duration_ms"`
}

// Generator runs the full pipeline for one task: resolve the task
// config, compose the prompt, call the provider, and normalize the
// structured output.
type Generator struct {
	registry *Registry
	backend  TextBackend
	timeout  time.Duration
	log      zerolog.Logger
}

func NewGenerator(registry *Registry, backend TextBackend, timeout time.Duration, log zerolog.Logger) *Generator {
	return &Generator{
		registry: registry,
		backend:  backend,
		timeout:  timeout,
		log:      log.With().Str("component", "generator").Logger(),
	}
}

// Registry exposes the generator's task registry for task selection.
func (g *Generator) Registry() *Registry {
	return g.registry
}

func (g *Generator) run(ctx context.Context, task string, vars map[string]string) (string, *llm.Schema, *Meta, error) {
	cfg, err := g.registry.Resolve(task)
	if err != nil {
		return "", nil, nil, err
	}
	modelCfg, err := g.registry.ModelConfig(cfg.ModelConfigName)
	if err != nil {
		return "", nil, nil, err
	}
	schema := g.registry.Schema(cfg.SchemaName)

	prompt, err := g.registry.Compose(cfg, vars)
	if err != nil {
		return "", nil, nil, err
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	result, err := g.backend.Generate(ctx, prompt, modelCfg, schema)
	elapsed := time.Since(start)
	if err != nil {
		g.log.Error().Err(err).
			Str("task", task).
			Str("model", modelCfg.ModelID).
			Dur("duration", elapsed).
			Msg("Generation failed")
		return "", nil, nil, err
	}

	g.log.Info().
		Str("task", task).
		Str("model", result.Model).
		Int("input_tokens", result.InputTokens).
		Int("output_tokens", result.OutputTokens).
		Dur("duration", elapsed).
		Msg("Generation complete")

	meta := &Meta{
		Task:         task,
		Provider:     string(modelCfg.Provider),
		Model:        result.Model,
		InputTokens:  result.InputTokens,
		OutputTokens: result.OutputTokens,
		Duration:     elapsed,
	}
	return result.Text, schema, meta, nil
}

// GenerateQuiz runs a quiz task end to end and returns the normalized
// draft with canonical IDs.
func (g *Generator) GenerateQuiz(ctx context.Context, task string, vars map[string]string) (*QuizDraft, *Meta, error) {
	text, schema, meta, err := g.run(ctx, task, vars)
	if err != nil {
		return nil, nil, err
	}
	draft, err := g.registry.NormalizeQuiz(text, schema)
	if err != nil {
		g.log.Error().Err(err).Str("task", task).Msg("Quiz output failed normalization")
		return nil, nil, err
	}
	return draft, meta, nil
}

// GenerateSummary runs a summary task end to end.
func (g *Generator) GenerateSummary(ctx context.Context, task string, vars map[string]string) (*SummaryDraft, *Meta, error) {
	text, schema, meta, err := g.run(ctx, task, vars)
	if err != nil {
		return nil, nil, err
	}
	draft, err := g.registry.NormalizeSummary(text, schema)
	if err != nil {
		g.log.Error().Err(err).Str("task", task).Msg("Summary output failed normalization")
		return nil, nil, err
	}
	return draft, meta, nil
}
