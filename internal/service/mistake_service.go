package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/quizforge/quizforge-backend/internal/model"
)

// Mistake aggregation errors.
var (
	ErrNoMistakes            = errors.New("no wrong answers found to practice from")
	ErrIncompleteMistakeData = errors.New("no wrong answer could be resolved against its quiz")
)

// mistakeEntrySeparator joins aggregated mistake entries.
const mistakeEntrySeparator = "\n\n---\n\n"

// wrongResponseSource mines a user's stored wrong answers, newest first.
type wrongResponseSource interface {
	RecentWrongResponses(ctx context.Context, userID string, limit int) ([]model.WrongResponse, error)
}

// MistakeService mines a user's past wrong answers and renders them
// into the practice-quiz input text.
type MistakeService struct {
	attempts wrongResponseSource
	log      zerolog.Logger
}

// NewMistakeService creates a new MistakeService.
func NewMistakeService(attempts wrongResponseSource, log zerolog.Logger) *MistakeService {
	return &MistakeService{
		attempts: attempts,
		log:      log.With().Str("component", "mistake_service").Logger(),
	}
}

// BuildTranscript aggregates up to maxMistakes of the user's most
// recent distinct wrong answers into one text block. Recent attempts
// win: the mining window is maxMistakes*5 raw wrong responses, ordered
// newest first, deduplicated by question so a repeatedly missed
// question appears once. Individual responses whose question or choices
// can no longer be resolved are skipped; ErrNoMistakes means the user
// has no recorded wrong answers at all, ErrIncompleteMistakeData that
// wrong answers exist but none could be resolved.
func (s *MistakeService) BuildTranscript(ctx context.Context, userID string, maxMistakes int) (string, error) {
	wrong, err := s.attempts.RecentWrongResponses(ctx, userID, maxMistakes*5)
	if err != nil {
		return "", fmt.Errorf("load wrong responses: %w", err)
	}
	if len(wrong) == 0 {
		return "", ErrNoMistakes
	}

	var entries []string
	seen := make(map[string]bool)
	for _, w := range wrong {
		if len(entries) >= maxMistakes {
			break
		}
		if seen[w.QuestionID] {
			continue
		}
		seen[w.QuestionID] = true

		entry, ok := renderMistake(w)
		if !ok {
			s.log.Warn().
				Str("quiz_id", w.QuizID).
				Str("question_id", w.QuestionID).
				Msg("Skipping unresolvable wrong response")
			continue
		}
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return "", ErrIncompleteMistakeData
	}
	return strings.Join(entries, mistakeEntrySeparator), nil
}

// renderMistake resolves one wrong response against its quiz's question
// definitions and formats the practice entry.
func renderMistake(w model.WrongResponse) (string, bool) {
	var question *model.Question
	for i := range w.Questions {
		if w.Questions[i].QuestionID == w.QuestionID {
			question = &w.Questions[i]
			break
		}
	}
	if question == nil {
		return "", false
	}

	selectedText := choiceText(question.Choices, w.SelectedChoiceID)
	correctText := choiceText(question.Choices, question.CorrectChoiceID)
	if selectedText == "" || correctText == "" {
		return "", false
	}

	explanation := question.AnswerExplanation
	if explanation == "" {
		explanation = "No explanation available."
	}

	return fmt.Sprintf("Question: %s\nUser's incorrect answer: %s\nCorrect answer: %s\nExplanation: %s",
		question.QuestionText, selectedText, correctText, explanation), true
}

func choiceText(choices []model.Choice, choiceID string) string {
	for _, c := range choices {
		if c.ChoiceID == choiceID {
			return c.ChoiceText
		}
	}
	return ""
}
