package generation

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/quizforge/quizforge-backend/internal/llm"
	"github.com/quizforge/quizforge-backend/internal/model"
)

// Task names. Selection happens through SelectQuizTask/SelectSummaryTask;
// the constants exist so callers and tests never pass raw strings around.
const (
	TaskQuizEasy         = "quiz_easy_general"
	TaskQuizMedium       = "quiz_medium_general"
	TaskQuizHard         = "quiz_hard_general"
	TaskQuizHardFast     = "quiz_hard_fast_experimental"
	TaskQuizFromMistakes = "quiz_from_mistakes_analysis"

	TaskSummaryShort  = "summary_short"
	TaskSummaryMedium = "summary_medium"
	TaskSummaryLong   = "summary_long"

	TaskSummaryYouTubeShort  = "summary_youtube_short"
	TaskSummaryYouTubeMedium = "summary_youtube_medium"
	TaskSummaryYouTubeLong   = "summary_youtube_long"

	TaskSummaryArticleShort  = "summary_article_short"
	TaskSummaryArticleMedium = "summary_article_medium"
	TaskSummaryArticleLong   = "summary_article_long"
)

// Model config names.
const (
	modelGroqLlama70BFast    = "groq_llama3_70b_fast"
	modelGeminiFlash2Strict  = "gemini_flash_2_strict"
	modelOpenRouterFlashFree = "openrouter_flash_free"
)

// Prompt template names.
const (
	tplQuizEasy         = "quiz_easy"
	tplQuizHard         = "quiz_hard"
	tplQuizFromMistakes = "quiz_from_mistakes"
	tplSummaryDetailed  = "summary_detailed"
	tplSummaryYouTube   = "summarize_youtube_transcript"
	tplSummaryArticle   = "summarize_article"
)

// TaskConfig binds a task name to its schema, model config, prompt
// template, and template variable contract. Immutable after startup.
type TaskConfig struct {
	Name               string
	SchemaName         string
	ModelConfigName    string
	PromptTemplateName string

	// RequiredVariables are the template variables the caller (or the
	// defaults) must supply. format_instructions is never listed; the
	// composer always injects it from the schema.
	RequiredVariables []string

	// DefaultParams are fallback values for template variables.
	DefaultParams map[string]string
}

// Registry is the immutable task/model/template configuration, built
// once at process start. No runtime registration.
type Registry struct {
	schemas      map[string]*llm.Schema
	modelConfigs map[string]llm.ModelConfig
	templates    map[string]string
	tasks        map[string]TaskConfig
	log          zerolog.Logger
}

// NewRegistry builds the full task registry.
func NewRegistry(log zerolog.Logger) *Registry {
	r := &Registry{
		schemas: map[string]*llm.Schema{
			SchemaQuiz:    quizSchema(),
			SchemaSummary: summarySchema(),
		},
		modelConfigs: map[string]llm.ModelConfig{
			modelGroqLlama70BFast: {
				Provider:    llm.ProviderGroq,
				ModelID:     "llama-3.3-70b-versatile",
				Temperature: 0.1,
				MaxTokens:   8192,
			},
			modelGeminiFlash2Strict: {
				Provider:    llm.ProviderGemini,
				ModelID:     "gemini-2.0-flash",
				Temperature: 0.1,
				MaxTokens:   8192,
			},
			modelOpenRouterFlashFree: {
				Provider:    llm.ProviderOpenRouter,
				ModelID:     "google/gemini-2.0-flash-exp:free",
				Temperature: 0.2,
				MaxTokens:   8192,
			},
		},
		templates: promptTemplates(),
		tasks:     make(map[string]TaskConfig),
		log:       log.With().Str("component", "task_registry").Logger(),
	}

	quizVars := []string{"input_text", "num_questions"}
	summaryVars := []string{"input_text", "length", "additional_instructions"}

	register := func(t TaskConfig) { r.tasks[t.Name] = t }

	register(TaskConfig{
		Name: TaskQuizEasy, SchemaName: SchemaQuiz,
		ModelConfigName: modelGroqLlama70BFast, PromptTemplateName: tplQuizEasy,
		RequiredVariables: quizVars,
		DefaultParams:     map[string]string{"num_questions": "5"},
	})
	register(TaskConfig{
		Name: TaskQuizMedium, SchemaName: SchemaQuiz,
		ModelConfigName: modelGeminiFlash2Strict, PromptTemplateName: tplQuizEasy,
		RequiredVariables: quizVars,
		DefaultParams:     map[string]string{"num_questions": "7"},
	})
	register(TaskConfig{
		Name: TaskQuizHard, SchemaName: SchemaQuiz,
		ModelConfigName: modelGeminiFlash2Strict, PromptTemplateName: tplQuizHard,
		RequiredVariables: quizVars,
		DefaultParams:     map[string]string{"num_questions": "5"},
	})
	register(TaskConfig{
		Name: TaskQuizHardFast, SchemaName: SchemaQuiz,
		ModelConfigName: modelOpenRouterFlashFree, PromptTemplateName: tplQuizHard,
		RequiredVariables: quizVars,
		DefaultParams:     map[string]string{"num_questions": "5"},
	})
	register(TaskConfig{
		Name: TaskQuizFromMistakes, SchemaName: SchemaQuiz,
		ModelConfigName: modelGeminiFlash2Strict, PromptTemplateName: tplQuizFromMistakes,
		RequiredVariables: quizVars,
		DefaultParams:     map[string]string{"num_questions": "3"},
	})

	summaryTask := func(name, template, length string, modelName string) TaskConfig {
		return TaskConfig{
			Name: name, SchemaName: SchemaSummary,
			ModelConfigName: modelName, PromptTemplateName: template,
			RequiredVariables: summaryVars,
			DefaultParams: map[string]string{
				"length":                  length,
				"additional_instructions": "",
			},
		}
	}

	register(summaryTask(TaskSummaryShort, tplSummaryDetailed, "Short (2-3 paragraphs)", modelGeminiFlash2Strict))
	register(summaryTask(TaskSummaryMedium, tplSummaryDetailed, "Medium (3-5 paragraphs)", modelGeminiFlash2Strict))
	register(summaryTask(TaskSummaryLong, tplSummaryDetailed, "Long (5-8 paragraphs)", modelGroqLlama70BFast))
	register(summaryTask(TaskSummaryYouTubeShort, tplSummaryYouTube, "Short (2-3 paragraphs)", modelGeminiFlash2Strict))
	register(summaryTask(TaskSummaryYouTubeMedium, tplSummaryYouTube, "Medium (3-5 paragraphs)", modelGeminiFlash2Strict))
	register(summaryTask(TaskSummaryYouTubeLong, tplSummaryYouTube, "Long (5-8 paragraphs)", modelGroqLlama70BFast))
	register(summaryTask(TaskSummaryArticleShort, tplSummaryArticle, "Short (2-3 paragraphs)", modelGeminiFlash2Strict))
	register(summaryTask(TaskSummaryArticleMedium, tplSummaryArticle, "Medium (3-5 paragraphs)", modelGeminiFlash2Strict))
	register(summaryTask(TaskSummaryArticleLong, tplSummaryArticle, "Long (5-8 paragraphs)", modelGroqLlama70BFast))

	return r
}

// Resolve returns the task config for a task name.
func (r *Registry) Resolve(task string) (TaskConfig, error) {
	cfg, ok := r.tasks[task]
	if !ok {
		return TaskConfig{}, &UnknownTaskError{Task: task}
	}
	return cfg, nil
}

// ModelConfig returns the named model configuration.
func (r *Registry) ModelConfig(name string) (llm.ModelConfig, error) {
	cfg, ok := r.modelConfigs[name]
	if !ok {
		return llm.ModelConfig{}, &UnknownModelConfigError{Name: name}
	}
	return cfg, nil
}

// Schema returns the named output schema, or nil for raw-text tasks.
func (r *Registry) Schema(name string) *llm.Schema {
	return r.schemas[name]
}

// Template returns the named prompt template.
func (r *Registry) Template(name string) (string, error) {
	tpl, ok := r.templates[name]
	if !ok {
		return "", &UnknownTemplateError{Template: name}
	}
	return tpl, nil
}

// SelectQuizTask routes a quiz request to a task name. Mistake-practice
// requests always use the dedicated analysis task regardless of
// difficulty. An unrecognized difficulty falls back to the medium tier
// with a warning; it never fails.
func (r *Registry) SelectQuizTask(difficulty model.Difficulty, isMistakeQuiz bool) string {
	if isMistakeQuiz {
		return TaskQuizFromMistakes
	}

	switch difficulty {
	case model.DifficultyEasy:
		return TaskQuizEasy
	case model.DifficultyMedium:
		return TaskQuizMedium
	case model.DifficultyHard:
		return TaskQuizHard
	default:
		r.log.Warn().
			Str("difficulty", string(difficulty)).
			Msg("Unknown difficulty, defaulting to medium task")
		return TaskQuizMedium
	}
}

// SelectSummaryTask routes a summary request by source type and length.
// Unknown lengths fall back to medium; unknown sources use the general
// text templates.
func (r *Registry) SelectSummaryTask(source model.SourceType, length model.SummaryLength) string {
	switch length {
	case model.LengthShort, model.LengthMedium, model.LengthLong:
	default:
		if length != "" {
			r.log.Warn().
				Str("length", string(length)).
				Msg("Unknown summary length, defaulting to medium")
		}
		length = model.LengthMedium
	}

	switch source {
	case model.SourceYouTube:
		return fmt.Sprintf("summary_youtube_%s", length)
	case model.SourceArticle:
		return fmt.Sprintf("summary_article_%s", length)
	default:
		return fmt.Sprintf("summary_%s", length)
	}
}

// promptTemplates returns the named prompt template table. Placeholders
// use {snake_case} names; format_instructions is always supplied by the
// composer, never by callers.
func promptTemplates() map[string]string {
	return map[string]string{
		tplQuizEasy: "Generate an easy quiz with {num_questions} questions on the topic derived from the following input. " +
			"Ensure questions cover fundamental concepts. Format the output as JSON:\n" +
			"{format_instructions}\n\nInput Text:\n{input_text}",

		tplQuizHard: "Generate a challenging quiz with {num_questions} questions on the topic derived from the following input. " +
			"Focus on advanced concepts, nuances, or complex applications. Format the output as JSON:\n" +
			"{format_instructions}\n\nInput Text:\n{input_text}",

		tplQuizFromMistakes: "Analyze the following text which contains mistakes the user made across many quizzes. " +
			"Generate a quiz with {num_questions} questions specifically designed to test understanding and correct these mistakes. " +
			"Format the output as JSON:\n" +
			"{format_instructions}\n\nInput Text (containing mistakes):\n{input_text}",

		tplSummaryDetailed: "Create a comprehensive summary of the following content:\n\n" +
			"{input_text}\n\n" +
			"Length: {length}\n" +
			"{additional_instructions}\n\n" +
			"The summary should:\n" +
			"- Capture all key points and main ideas\n" +
			"- Be well-structured with clear paragraphs\n" +
			"- Be written in professional language\n" +
			"- Maintain the original meaning and important details\n" +
			"- Use markdown formatting for better readability\n\n" +
			"Also include 4 thought-provoking questions with answers related to the content.\n\n" +
			"{format_instructions}",

		tplSummaryYouTube: "Create a summary of the following YouTube video transcript:\n\n" +
			"{input_text}\n\n" +
			"Length: {length}\n" +
			"{additional_instructions}\n\n" +
			"The summary should:\n" +
			"- Provide a concise overview of the main topics covered\n" +
			"- Extract key insights and information from the video\n" +
			"- Be well-structured and easy to follow\n" +
			"- Use markdown formatting for better readability\n\n" +
			"Also include 4 thought-provoking questions with answers that would help reinforce learning from this video.\n\n" +
			"{format_instructions}",

		tplSummaryArticle: "Create a summary of the following article:\n\n" +
			"{input_text}\n\n" +
			"Length: {length}\n" +
			"{additional_instructions}\n\n" +
			"The summary should:\n" +
			"- Capture the article's key arguments, findings, and conclusions\n" +
			"- Preserve the author's main points and supporting evidence\n" +
			"- Be well-structured and flow logically\n" +
			"- Use markdown formatting for better readability\n\n" +
			"Also include 4 thought-provoking questions with answers related to the content.\n\n" +
			"{format_instructions}",
	}
}
