package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quizforge/quizforge-backend/internal/model"
)

// QuizRepository handles quiz data access. Questions live in a single
// JSONB column since a quiz is always read and written whole.
type QuizRepository struct {
	pool *pgxpool.Pool
}

// NewQuizRepository creates a new QuizRepository.
func NewQuizRepository(pool *pgxpool.Pool) *QuizRepository {
	return &QuizRepository{pool: pool}
}

// Create stores a new quiz.
func (r *QuizRepository) Create(ctx context.Context, quiz *model.Quiz) error {
	questions, err := json.Marshal(quiz.Questions)
	if err != nil {
		return fmt.Errorf("encode questions: %w", err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO quizzes (id, title, difficulty, category, source, source_id, created_by, questions, metadata, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		quiz.QuizID, quiz.Title, quiz.Difficulty, quiz.Category, quiz.Source,
		quiz.SourceID, quiz.CreatedBy, questions, quiz.Metadata, quiz.CreatedAt)
	return err
}

// GetByID retrieves a quiz with its full question set.
func (r *QuizRepository) GetByID(ctx context.Context, quizID string) (*model.Quiz, error) {
	q := &model.Quiz{}
	var questions []byte
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, difficulty, category, source, source_id, created_by, questions, metadata, created_at
		 FROM quizzes WHERE id = $1`, quizID,
	).Scan(&q.QuizID, &q.Title, &q.Difficulty, &q.Category, &q.Source,
		&q.SourceID, &q.CreatedBy, &questions, &q.Metadata, &q.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(questions, &q.Questions); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	return q, nil
}

// ListByUser retrieves a user's quizzes, newest first, without question
// bodies.
func (r *QuizRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]model.QuizSummary, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM quizzes WHERE created_by = $1`, userID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT q.id, q.title, q.difficulty, q.category, q.source, q.source_id, q.created_at,
		        jsonb_array_length(q.questions),
		        (SELECT COUNT(*) FROM attempts a WHERE a.quiz_id = q.id)
		 FROM quizzes q
		 WHERE q.created_by = $1
		 ORDER BY q.created_at DESC
		 LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var quizzes []model.QuizSummary
	for rows.Next() {
		var s model.QuizSummary
		if err := rows.Scan(&s.QuizID, &s.Title, &s.Difficulty, &s.Category, &s.Source,
			&s.SourceID, &s.CreatedAt, &s.QuestionCount, &s.AttemptCount); err != nil {
			return nil, 0, err
		}
		quizzes = append(quizzes, s)
	}
	return quizzes, total, rows.Err()
}

// Delete removes a quiz owned by the given user. Returns the number of
// rows removed so callers can distinguish missing from not-owned.
func (r *QuizRepository) Delete(ctx context.Context, quizID, userID string) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM quizzes WHERE id = $1 AND created_by = $2`, quizID, userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
