package model

import "time"

// AttemptResponse is one submitted answer with its graded outcome.
type AttemptResponse struct {
	QuestionID       string `json:"question_id"`
	SelectedChoiceID string `json:"selected_choice_id"`
	IsCorrect        bool   `json:"is_correct"`
}

// ReviewItem is one graded response rendered for the review screen,
// with the texts resolved so the client needs no second lookup.
type ReviewItem struct {
	QuestionID     string `json:"question_id"`
	QuestionText   string `json:"question_text"`
	SelectedChoice string `json:"selected_choice"`
	CorrectChoice  string `json:"correct_choice"`
	Explanation    string `json:"explanation"`
	IsCorrect      bool   `json:"is_correct"`
}

// AttemptStats aggregates an attempt's outcome. WrongCount counts
// unanswered questions as wrong: marks are always out of the full quiz.
type AttemptStats struct {
	CorrectCount     int      `json:"correct_count"`
	WrongCount       int      `json:"wrong_count"`
	WrongQuestionIDs []string `json:"wrong_question_ids"`
}

// Attempt is a stored quiz attempt. Immutable once created.
type Attempt struct {
	AttemptID     string            `json:"attempt_id"`
	QuizID        string            `json:"quiz_id"`
	UserID        string            `json:"user_id"`
	Responses     []AttemptResponse `json:"responses"`
	Stats         AttemptStats      `json:"stats"`
	MarksObtained int               `json:"marks_obtained"`
	TotalMarks    int               `json:"total_marks"`
	AttemptedAt   time.Time         `json:"attempted_at"`
}

// AttemptListItem is the history view of an attempt, without responses.
type AttemptListItem struct {
	AttemptID     string       `json:"attempt_id"`
	MarksObtained int          `json:"marks_obtained"`
	TotalMarks    int          `json:"total_marks"`
	Stats         AttemptStats `json:"stats"`
	AttemptedAt   time.Time    `json:"attempted_at"`
}

// SubmittedResponse is one answer as submitted by the client.
type SubmittedResponse struct {
	QuestionID       string `json:"question_id" binding:"required"`
	SelectedChoiceID string `json:"selected_choice_id"`
}

// CreateAttemptRequest is the payload for submitting quiz answers.
type CreateAttemptRequest struct {
	QuizID    string              `json:"quiz_id" binding:"required"`
	Responses []SubmittedResponse `json:"responses" binding:"required,dive"`
}

// WrongResponse is one past incorrect answer joined to its quiz's
// question definitions, as mined for mistake-practice context.
type WrongResponse struct {
	QuizID           string     `json:"quiz_id"`
	QuestionID       string     `json:"question_id"`
	SelectedChoiceID string     `json:"selected_choice_id"`
	AttemptedAt      time.Time  `json:"attempted_at"`
	Questions        []Question `json:"questions"`
}
