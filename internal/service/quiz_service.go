package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/quizforge/quizforge-backend/internal/content"
	"github.com/quizforge/quizforge-backend/internal/generation"
	"github.com/quizforge/quizforge-backend/internal/grading"
	"github.com/quizforge/quizforge-backend/internal/model"
	"github.com/quizforge/quizforge-backend/internal/repository"
)

// Quiz service errors.
var (
	ErrQuizNotFound   = errors.New("quiz not found")
	ErrMissingContent = errors.New("quiz source requires content")
	ErrNotOwner       = errors.New("resource is owned by another user")
)

// maxMistakeEntries caps how many past mistakes seed a practice quiz.
const maxMistakeEntries = 10

// contentResolver fetches input text for url-based sources.
type contentResolver interface {
	Resolve(ctx context.Context, source model.SourceType, url string) (string, error)
}

// transcriptSource builds the mistake-practice input text.
type transcriptSource interface {
	BuildTranscript(ctx context.Context, userID string, maxMistakes int) (string, error)
}

// QuizService orchestrates quiz generation, retrieval, and attempts
// preparation.
type QuizService struct {
	quizzes   *repository.QuizRepository
	generator *generation.Generator
	resolver  contentResolver
	mistakes  transcriptSource
	log       zerolog.Logger
}

// NewQuizService creates a new QuizService.
func NewQuizService(
	quizzes *repository.QuizRepository,
	generator *generation.Generator,
	resolver contentResolver,
	mistakes transcriptSource,
	log zerolog.Logger,
) *QuizService {
	return &QuizService{
		quizzes:   quizzes,
		generator: generator,
		resolver:  resolver,
		mistakes:  mistakes,
		log:       log.With().Str("component", "quiz_service").Logger(),
	}
}

// Create generates a quiz from the requested source and persists it.
func (s *QuizService) Create(ctx context.Context, userID string, req model.CreateQuizRequest) (*model.Quiz, error) {
	inputText, sourceID, err := s.resolveInput(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	registry := s.generator.Registry()
	task := registry.SelectQuizTask(req.Difficulty, req.Source == model.SourceMistakes)

	vars := map[string]string{"input_text": inputText}
	if req.NumberOfQuestions > 0 {
		vars["num_questions"] = strconv.Itoa(req.NumberOfQuestions)
	}

	draft, meta, err := s.generator.GenerateQuiz(ctx, task, vars)
	if err != nil {
		return nil, err
	}

	metadata, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("encode generation metadata: %w", err)
	}

	quiz := &model.Quiz{
		QuizID:     draft.QuizID,
		Title:      draft.Title,
		Difficulty: draft.Difficulty,
		Category:   draft.Category,
		Source:     req.Source,
		SourceID:   sourceID,
		CreatedBy:  userID,
		CreatedAt:  time.Now().UTC(),
		Questions:  draft.Questions,
		Metadata:   metadata,
	}
	if err := s.quizzes.Create(ctx, quiz); err != nil {
		return nil, fmt.Errorf("store quiz: %w", err)
	}

	s.log.Info().
		Str("quiz_id", quiz.QuizID).
		Str("task", meta.Task).
		Int("questions", len(quiz.Questions)).
		Msg("Quiz created")
	return quiz, nil
}

// resolveInput produces the generation input text and the source ID for
// the requested quiz source.
func (s *QuizService) resolveInput(ctx context.Context, userID string, req model.CreateQuizRequest) (string, string, error) {
	switch req.Source {
	case model.SourceManual:
		if req.Topic == "" && req.Prompt == "" {
			return "", "", ErrMissingContent
		}
		return withInstructions(req.Topic, req.Prompt), "", nil

	case model.SourceMistakes:
		transcript, err := s.mistakes.BuildTranscript(ctx, userID, maxMistakeEntries)
		if err != nil {
			return "", "", err
		}
		return transcript, "", nil

	case model.SourceYouTube, model.SourceArticle:
		if req.ContentSource == nil || req.ContentSource.URL == "" {
			return "", "", ErrMissingContent
		}
		text, err := s.resolver.Resolve(ctx, req.Source, req.ContentSource.URL)
		if err != nil {
			return "", "", err
		}
		sourceID := req.ContentSource.URL
		if req.Source == model.SourceYouTube {
			if id := content.VideoID(sourceID); id != "" {
				sourceID = id
			}
		}
		return withInstructions(text, req.Prompt), sourceID, nil

	default:
		return "", "", ErrMissingContent
	}
}

// withInstructions appends the user's free-form prompt to the input
// text so url-based sources honor it the same way manual topics do.
func withInstructions(text, prompt string) string {
	if prompt == "" {
		return text
	}
	if text == "" {
		return prompt
	}
	return fmt.Sprintf("%s\n\nAdditional instructions: %s", text, prompt)
}

// Get retrieves a quiz owned by the user, answer key included.
func (s *QuizService) Get(ctx context.Context, quizID, userID string) (*model.Quiz, error) {
	quiz, err := s.quizzes.GetByID(ctx, quizID)
	if err != nil {
		return nil, ErrQuizNotFound
	}
	if quiz.CreatedBy != userID {
		return nil, ErrNotOwner
	}
	return quiz, nil
}

// GetForAttempt retrieves the sanitized, shuffled view of a quiz.
func (s *QuizService) GetForAttempt(ctx context.Context, quizID, userID string) (*model.AttemptQuizView, error) {
	quiz, err := s.Get(ctx, quizID, userID)
	if err != nil {
		return nil, err
	}
	return grading.PrepareForAttempt(quiz), nil
}

// List retrieves the user's quizzes, newest first.
func (s *QuizService) List(ctx context.Context, userID string, limit, offset int) ([]model.QuizSummary, int, error) {
	return s.quizzes.ListByUser(ctx, userID, limit, offset)
}

// Delete removes a quiz owned by the user.
func (s *QuizService) Delete(ctx context.Context, quizID, userID string) error {
	affected, err := s.quizzes.Delete(ctx, quizID, userID)
	if err != nil {
		return fmt.Errorf("delete quiz: %w", err)
	}
	if affected == 0 {
		return ErrQuizNotFound
	}
	return nil
}
