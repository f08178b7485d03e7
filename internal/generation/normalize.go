package generation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/quizforge/quizforge-backend/internal/llm"
	"github.com/quizforge/quizforge-backend/internal/model"
)

// QuizDraft is a normalized quiz payload with canonical IDs assigned,
// ready to persist.
type QuizDraft struct {
	QuizID     string
	Title      string
	Difficulty model.Difficulty
	Category   string
	Questions  []model.Question
}

// SummaryDraft is a normalized summary payload.
type SummaryDraft struct {
	Title            string
	SummaryText      string
	RelatedQuestions []model.SummaryQuestion
}

// rawQuiz mirrors the quiz output schema before ID canonicalization.
type rawQuiz struct {
	QuizTitle  string           `json:"quiz_title"`
	Difficulty string           `json:"difficulty"`
	Category   string           `json:"category"`
	Questions  []model.Question `json:"questions"`
}

type rawSummary struct {
	Title            string                  `json:"title"`
	SummaryText      string                  `json:"summary_text"`
	RelatedQuestions []model.SummaryQuestion `json:"related_questions"`
}

// stripCodeFence removes a surrounding markdown code fence, if present.
// Only the first and last non-empty lines are inspected; fences inside
// the payload are left alone. Text without a fence passes through
// unchanged, so fenced and bare output normalize identically.
func stripCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 {
		return trimmed
	}
	first := strings.TrimSpace(lines[0])
	last := strings.TrimSpace(lines[len(lines)-1])
	if strings.HasPrefix(first, "```") && last == "```" {
		return strings.TrimSpace(strings.Join(lines[1:len(lines)-1], "\n"))
	}
	return trimmed
}

// parseOutput fence-strips and decodes raw model output, validating it
// against the task's schema before any structural interpretation.
func parseOutput(raw string, schema *llm.Schema, out any) error {
	cleaned := stripCodeFence(raw)

	var parsed any
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return &MalformedOutputError{Err: err, Raw: raw}
	}
	if schema != nil {
		if err := validateAgainstSchema(schema, parsed); err != nil {
			return &MalformedOutputError{Err: err, Raw: raw}
		}
	}
	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		return &MalformedOutputError{Err: err, Raw: raw}
	}
	return nil
}

// NormalizeQuiz turns raw model output into a QuizDraft with canonical
// IDs. The model's provisional IDs are discarded entirely:
//
//	quiz_id      = fresh UUID
//	question_id  = {quiz_id}-{n}   (n is 1-based position)
//	choice_id    = {question_id}-{m}
//
// correct_choice_id is remapped by matching each question's original
// correct_choice_id against the original choice IDs before they are
// overwritten. A correct_choice_id that matches no choice fails the
// whole quiz.
func (r *Registry) NormalizeQuiz(raw string, schema *llm.Schema) (*QuizDraft, error) {
	var rq rawQuiz
	if err := parseOutput(raw, schema, &rq); err != nil {
		return nil, err
	}
	if len(rq.Questions) == 0 {
		return nil, &MalformedOutputError{Err: fmt.Errorf("quiz has no questions"), Raw: raw}
	}

	quizID := uuid.NewString()
	questions := make([]model.Question, len(rq.Questions))

	for qi, q := range rq.Questions {
		newQID := fmt.Sprintf("%s-%d", quizID, qi+1)

		newCorrect := ""
		choices := make([]model.Choice, len(q.Choices))
		for ci, c := range q.Choices {
			newCID := fmt.Sprintf("%s-%d", newQID, ci+1)
			if c.ChoiceID == q.CorrectChoiceID {
				newCorrect = newCID
			}
			c.ChoiceID = newCID
			choices[ci] = c
		}
		if newCorrect == "" {
			return nil, &IDAssignmentError{QuestionIndex: qi, CorrectChoiceID: q.CorrectChoiceID}
		}

		q.QuestionID = newQID
		q.Choices = choices
		q.CorrectChoiceID = newCorrect
		questions[qi] = q
	}

	diff := model.Difficulty(strings.ToLower(strings.TrimSpace(rq.Difficulty)))
	switch diff {
	case model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard:
	default:
		diff = model.DifficultyMedium
	}

	return &QuizDraft{
		QuizID:     quizID,
		Title:      rq.QuizTitle,
		Difficulty: diff,
		Category:   rq.Category,
		Questions:  questions,
	}, nil
}

// NormalizeSummary turns raw model output into a SummaryDraft.
func (r *Registry) NormalizeSummary(raw string, schema *llm.Schema) (*SummaryDraft, error) {
	var rs rawSummary
	if err := parseOutput(raw, schema, &rs); err != nil {
		return nil, err
	}
	if strings.TrimSpace(rs.SummaryText) == "" {
		return nil, &MalformedOutputError{Err: fmt.Errorf("summary has no text"), Raw: raw}
	}
	return &SummaryDraft{
		Title:            rs.Title,
		SummaryText:      rs.SummaryText,
		RelatedQuestions: rs.RelatedQuestions,
	}, nil
}
