package model

import (
	"encoding/json"
	"time"
)

// Difficulty enumerates the supported quiz difficulty tiers.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// SourceType enumerates where generation input content comes from.
type SourceType string

const (
	SourceYouTube  SourceType = "youtube"
	SourceArticle  SourceType = "article"
	SourceManual   SourceType = "manual"
	SourceMistakes SourceType = "mistakes"
	SourceText     SourceType = "text"
)

// Choice is a single answer option within a question.
type Choice struct {
	ChoiceID          string `json:"choice_id"`
	ChoiceText        string `json:"choice_text"`
	ChoiceExplanation string `json:"choice_explanation,omitempty"`
}

// Question is a single multiple-choice question. CorrectChoiceID always
// references one of the entries in Choices.
type Question struct {
	QuestionID        string   `json:"question_id"`
	QuestionText      string   `json:"question_text"`
	Choices           []Choice `json:"choices"`
	CorrectChoiceID   string   `json:"correct_choice_id"`
	AnswerExplanation string   `json:"answer_explanation,omitempty"`
}

// Quiz is a stored quiz document. Questions are kept as one JSONB
// document in PostgreSQL since they are always read and written whole.
type Quiz struct {
	QuizID     string          `json:"quiz_id"`
	Title      string          `json:"quiz_title"`
	Difficulty Difficulty      `json:"difficulty"`
	Category   string          `json:"category"`
	Source     SourceType      `json:"quiz_source"`
	SourceID   string          `json:"source_id"`
	CreatedBy  string          `json:"created_by"`
	CreatedAt  time.Time       `json:"created_at"`
	Questions  []Question      `json:"questions"`
	Metadata   json.RawMessage `json:"metadata,omitempty"`
}

// QuizSummary is the list view of a quiz: no questions, but counts.
type QuizSummary struct {
	QuizID        string     `json:"quiz_id"`
	Title         string     `json:"quiz_title"`
	Difficulty    Difficulty `json:"difficulty"`
	Category      string     `json:"category"`
	Source        SourceType `json:"quiz_source"`
	SourceID      string     `json:"source_id"`
	CreatedAt     time.Time  `json:"created_at"`
	QuestionCount int        `json:"questions_count"`
	AttemptCount  int        `json:"attempt_count"`
}

// AttemptChoiceView is a choice as shown while attempting: no explanation.
type AttemptChoiceView struct {
	ChoiceID   string `json:"choice_id"`
	ChoiceText string `json:"choice_text"`
}

// AttemptQuestionView is a question stripped of every answer-revealing
// field, with choices in shuffled order.
type AttemptQuestionView struct {
	QuestionID   string              `json:"question_id"`
	QuestionText string              `json:"question_text"`
	Choices      []AttemptChoiceView `json:"choices"`
}

// AttemptQuizView is the sanitized, shuffled quiz served for attempting.
// Shuffling is fresh per retrieval, never persisted.
type AttemptQuizView struct {
	QuizID     string                `json:"quiz_id"`
	Title      string                `json:"quiz_title"`
	Difficulty Difficulty            `json:"difficulty"`
	Category   string                `json:"category"`
	Source     SourceType            `json:"quiz_source"`
	Questions  []AttemptQuestionView `json:"questions"`
}

// ContentSource carries the URL for url-based generation sources.
type ContentSource struct {
	URL string `json:"url" binding:"omitempty,url"`
}

// CreateQuizRequest is the payload for generating a new quiz.
type CreateQuizRequest struct {
	Source            SourceType     `json:"quiz_source" binding:"required,oneof=youtube article manual mistakes"`
	Topic             string         `json:"quiz_topic" binding:"omitempty,max=300"`
	Difficulty        Difficulty     `json:"difficulty" binding:"required,oneof=easy medium hard"`
	ContentSource     *ContentSource `json:"content_source" binding:"omitempty"`
	Prompt            string         `json:"prompt" binding:"omitempty,max=2000"`
	NumberOfQuestions int            `json:"number_of_questions" binding:"omitempty,min=1,max=20"`
}
