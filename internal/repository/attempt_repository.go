package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quizforge/quizforge-backend/internal/model"
)

// AttemptRepository handles quiz attempt data access.
type AttemptRepository struct {
	pool *pgxpool.Pool
}

// NewAttemptRepository creates a new AttemptRepository.
func NewAttemptRepository(pool *pgxpool.Pool) *AttemptRepository {
	return &AttemptRepository{pool: pool}
}

// Create stores a graded attempt. Attempts are immutable after insert.
func (r *AttemptRepository) Create(ctx context.Context, attempt *model.Attempt) error {
	responses, err := json.Marshal(attempt.Responses)
	if err != nil {
		return fmt.Errorf("encode responses: %w", err)
	}
	wrongIDs, err := json.Marshal(attempt.Stats.WrongQuestionIDs)
	if err != nil {
		return fmt.Errorf("encode wrong question ids: %w", err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO attempts (id, quiz_id, user_id, responses, correct_count, wrong_count,
		                       wrong_question_ids, marks_obtained, total_marks, attempted_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		attempt.AttemptID, attempt.QuizID, attempt.UserID, responses,
		attempt.Stats.CorrectCount, attempt.Stats.WrongCount, wrongIDs,
		attempt.MarksObtained, attempt.TotalMarks, attempt.AttemptedAt)
	return err
}

// GetByID retrieves a user's attempt with its full response list.
func (r *AttemptRepository) GetByID(ctx context.Context, attemptID, userID string) (*model.Attempt, error) {
	a := &model.Attempt{}
	var responses, wrongIDs []byte
	err := r.pool.QueryRow(ctx,
		`SELECT id, quiz_id, user_id, responses, correct_count, wrong_count,
		        wrong_question_ids, marks_obtained, total_marks, attempted_at
		 FROM attempts WHERE id = $1 AND user_id = $2`, attemptID, userID,
	).Scan(&a.AttemptID, &a.QuizID, &a.UserID, &responses, &a.Stats.CorrectCount,
		&a.Stats.WrongCount, &wrongIDs, &a.MarksObtained, &a.TotalMarks, &a.AttemptedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(responses, &a.Responses); err != nil {
		return nil, fmt.Errorf("decode responses: %w", err)
	}
	if err := json.Unmarshal(wrongIDs, &a.Stats.WrongQuestionIDs); err != nil {
		return nil, fmt.Errorf("decode wrong question ids: %w", err)
	}
	return a, nil
}

// ListByQuiz retrieves a user's attempt history for one quiz, newest
// first.
func (r *AttemptRepository) ListByQuiz(ctx context.Context, quizID, userID string) ([]model.AttemptListItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, correct_count, wrong_count, wrong_question_ids, marks_obtained, total_marks, attempted_at
		 FROM attempts
		 WHERE quiz_id = $1 AND user_id = $2
		 ORDER BY attempted_at DESC`, quizID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attempts []model.AttemptListItem
	for rows.Next() {
		var item model.AttemptListItem
		var wrongIDs []byte
		if err := rows.Scan(&item.AttemptID, &item.Stats.CorrectCount, &item.Stats.WrongCount,
			&wrongIDs, &item.MarksObtained, &item.TotalMarks, &item.AttemptedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(wrongIDs, &item.Stats.WrongQuestionIDs); err != nil {
			return nil, fmt.Errorf("decode wrong question ids: %w", err)
		}
		attempts = append(attempts, item)
	}
	return attempts, rows.Err()
}

// RecentWrongResponses mines a user's most recent incorrect answers
// across all attempts, each joined to its quiz's question definitions.
// Responses are expanded from the attempts' JSONB arrays; ordering is
// attempt recency, so the same question can appear more than once and
// callers deduplicate.
func (r *AttemptRepository) RecentWrongResponses(ctx context.Context, userID string, limit int) ([]model.WrongResponse, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT a.quiz_id, resp->>'question_id', resp->>'selected_choice_id', a.attempted_at, q.questions
		 FROM attempts a
		 JOIN quizzes q ON q.id = a.quiz_id,
		      jsonb_array_elements(a.responses) AS resp
		 WHERE a.user_id = $1 AND (resp->>'is_correct')::boolean = false
		 ORDER BY a.attempted_at DESC
		 LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var wrong []model.WrongResponse
	for rows.Next() {
		var w model.WrongResponse
		var questions []byte
		if err := rows.Scan(&w.QuizID, &w.QuestionID, &w.SelectedChoiceID, &w.AttemptedAt, &questions); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(questions, &w.Questions); err != nil {
			return nil, fmt.Errorf("decode questions: %w", err)
		}
		wrong = append(wrong, w)
	}
	return wrong, rows.Err()
}
