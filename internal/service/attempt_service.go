package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/quizforge/quizforge-backend/internal/grading"
	"github.com/quizforge/quizforge-backend/internal/model"
)

// Attempt service errors.
var (
	ErrAttemptNotFound = errors.New("attempt not found")
)

// attemptStore persists and queries attempts scoped to their user.
type attemptStore interface {
	Create(ctx context.Context, attempt *model.Attempt) error
	GetByID(ctx context.Context, attemptID, userID string) (*model.Attempt, error)
	ListByQuiz(ctx context.Context, quizID, userID string) ([]model.AttemptListItem, error)
}

// quizReader looks up quizzes with their answer keys.
type quizReader interface {
	GetByID(ctx context.Context, quizID string) (*model.Quiz, error)
}

// AttemptService grades submissions and manages attempt history.
type AttemptService struct {
	attempts attemptStore
	quizzes  quizReader
	log      zerolog.Logger
}

// NewAttemptService creates a new AttemptService.
func NewAttemptService(attempts attemptStore, quizzes quizReader, log zerolog.Logger) *AttemptService {
	return &AttemptService{
		attempts: attempts,
		quizzes:  quizzes,
		log:      log.With().Str("component", "attempt_service").Logger(),
	}
}

// Submit grades the responses against the quiz's answer key and stores
// the attempt. Attempts are immutable once stored. The returned review
// items carry the resolved texts for the result screen; they are
// derived, not persisted.
func (s *AttemptService) Submit(ctx context.Context, userID string, req model.CreateAttemptRequest) (*model.Attempt, []model.ReviewItem, error) {
	quiz, err := s.quizzes.GetByID(ctx, req.QuizID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrQuizNotFound
		}
		return nil, nil, fmt.Errorf("load quiz: %w", err)
	}
	if quiz.CreatedBy != userID {
		return nil, nil, ErrNotOwner
	}

	result := grading.Grade(quiz.Questions, req.Responses)

	attempt := &model.Attempt{
		AttemptID:     uuid.NewString(),
		QuizID:        quiz.QuizID,
		UserID:        userID,
		Responses:     result.Responses,
		Stats:         result.Stats,
		MarksObtained: result.MarksObtained,
		TotalMarks:    result.TotalMarks,
		AttemptedAt:   time.Now().UTC(),
	}
	if err := s.attempts.Create(ctx, attempt); err != nil {
		return nil, nil, fmt.Errorf("store attempt: %w", err)
	}

	s.log.Info().
		Str("attempt_id", attempt.AttemptID).
		Str("quiz_id", quiz.QuizID).
		Int("correct", result.Stats.CorrectCount).
		Int("total", result.TotalMarks).
		Msg("Attempt graded")
	return attempt, result.Review, nil
}

// Get retrieves one of the user's attempts together with its review
// view. The review is rebuilt from the quiz's current questions; if the
// quiz was deleted since, the attempt comes back without one.
func (s *AttemptService) Get(ctx context.Context, attemptID, userID string) (*model.Attempt, []model.ReviewItem, error) {
	attempt, err := s.attempts.GetByID(ctx, attemptID, userID)
	if err != nil {
		return nil, nil, ErrAttemptNotFound
	}

	quiz, err := s.quizzes.GetByID(ctx, attempt.QuizID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attempt, nil, nil
		}
		return nil, nil, fmt.Errorf("load quiz: %w", err)
	}
	return attempt, grading.Review(quiz.Questions, attempt.Responses), nil
}

// ListByQuiz retrieves the user's attempt history for one quiz.
func (s *AttemptService) ListByQuiz(ctx context.Context, quizID, userID string) ([]model.AttemptListItem, error) {
	return s.attempts.ListByQuiz(ctx, quizID, userID)
}
