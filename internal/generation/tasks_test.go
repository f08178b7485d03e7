package generation

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/quizforge/quizforge-backend/internal/llm"
	"github.com/quizforge/quizforge-backend/internal/model"
)

func newTestRegistry() *Registry {
	return NewRegistry(zerolog.Nop())
}

func TestSelectQuizTask(t *testing.T) {
	r := newTestRegistry()

	cases := []struct {
		difficulty model.Difficulty
		mistakes   bool
		want       string
	}{
		{model.DifficultyEasy, false, TaskQuizEasy},
		{model.DifficultyMedium, false, TaskQuizMedium},
		{model.DifficultyHard, false, TaskQuizHard},
		{model.Difficulty("extreme"), false, TaskQuizMedium},
		{model.Difficulty(""), false, TaskQuizMedium},
		{model.DifficultyEasy, true, TaskQuizFromMistakes},
		{model.DifficultyHard, true, TaskQuizFromMistakes},
	}
	for _, c := range cases {
		got := r.SelectQuizTask(c.difficulty, c.mistakes)
		if got != c.want {
			t.Errorf("SelectQuizTask(%q, %v) = %q, want %q", c.difficulty, c.mistakes, got, c.want)
		}
	}
}

func TestSelectSummaryTask(t *testing.T) {
	r := newTestRegistry()

	cases := []struct {
		source model.SourceType
		length model.SummaryLength
		want   string
	}{
		{model.SourceYouTube, model.LengthShort, TaskSummaryYouTubeShort},
		{model.SourceArticle, model.LengthLong, TaskSummaryArticleLong},
		{model.SourceText, model.LengthMedium, TaskSummaryMedium},
		{model.SourceText, model.SummaryLength(""), TaskSummaryMedium},
		{model.SourceYouTube, model.SummaryLength("gigantic"), TaskSummaryYouTubeMedium},
	}
	for _, c := range cases {
		got := r.SelectSummaryTask(c.source, c.length)
		if got != c.want {
			t.Errorf("SelectSummaryTask(%q, %q) = %q, want %q", c.source, c.length, got, c.want)
		}
	}
}

func TestEveryTaskResolvesCompletely(t *testing.T) {
	r := newTestRegistry()

	tasks := []string{
		TaskQuizEasy, TaskQuizMedium, TaskQuizHard, TaskQuizHardFast, TaskQuizFromMistakes,
		TaskSummaryShort, TaskSummaryMedium, TaskSummaryLong,
		TaskSummaryYouTubeShort, TaskSummaryYouTubeMedium, TaskSummaryYouTubeLong,
		TaskSummaryArticleShort, TaskSummaryArticleMedium, TaskSummaryArticleLong,
	}
	for _, name := range tasks {
		cfg, err := r.Resolve(name)
		if err != nil {
			t.Errorf("Resolve(%q): %v", name, err)
			continue
		}
		if _, err := r.ModelConfig(cfg.ModelConfigName); err != nil {
			t.Errorf("task %q references model config: %v", name, err)
		}
		if _, err := r.Template(cfg.PromptTemplateName); err != nil {
			t.Errorf("task %q references template: %v", name, err)
		}
		if r.Schema(cfg.SchemaName) == nil {
			t.Errorf("task %q has no output schema", name)
		}
	}
}

func TestResolveUnknownTask(t *testing.T) {
	r := newTestRegistry()

	_, err := r.Resolve("quiz_impossible_general")
	var unknown *UnknownTaskError
	if !errors.As(err, &unknown) {
		t.Fatalf("got %v, want UnknownTaskError", err)
	}
}

func TestQuizTasksUseExpectedModels(t *testing.T) {
	r := newTestRegistry()

	wantProviders := map[string]llm.ProviderName{
		TaskQuizEasy:         llm.ProviderGroq,
		TaskQuizMedium:       llm.ProviderGemini,
		TaskQuizHard:         llm.ProviderGemini,
		TaskQuizHardFast:     llm.ProviderOpenRouter,
		TaskQuizFromMistakes: llm.ProviderGemini,
	}
	for task, provider := range wantProviders {
		cfg, err := r.Resolve(task)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", task, err)
		}
		mc, err := r.ModelConfig(cfg.ModelConfigName)
		if err != nil {
			t.Fatalf("ModelConfig(%q): %v", cfg.ModelConfigName, err)
		}
		if mc.Provider != provider {
			t.Errorf("task %q routes to %q, want %q", task, mc.Provider, provider)
		}
	}
}
