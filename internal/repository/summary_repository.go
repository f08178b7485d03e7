package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quizforge/quizforge-backend/internal/model"
)

// SummaryRepository handles summary data access.
type SummaryRepository struct {
	pool *pgxpool.Pool
}

// NewSummaryRepository creates a new SummaryRepository.
func NewSummaryRepository(pool *pgxpool.Pool) *SummaryRepository {
	return &SummaryRepository{pool: pool}
}

// Create stores a new summary.
func (r *SummaryRepository) Create(ctx context.Context, s *model.Summary) error {
	questions, err := json.Marshal(s.RelatedQuestions)
	if err != nil {
		return fmt.Errorf("encode related questions: %w", err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO summaries (id, title, summary_text, source, source_id, source_url,
		                        related_questions, created_by, metadata, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		s.SummaryID, s.Title, s.SummaryText, s.Source, s.SourceID, s.SourceURL,
		questions, s.CreatedBy, s.Metadata, s.CreatedAt)
	return err
}

// GetByID retrieves a user's summary.
func (r *SummaryRepository) GetByID(ctx context.Context, summaryID, userID string) (*model.Summary, error) {
	s := &model.Summary{}
	var questions []byte
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, summary_text, source, source_id, source_url,
		        related_questions, created_by, metadata, created_at
		 FROM summaries WHERE id = $1 AND created_by = $2`, summaryID, userID,
	).Scan(&s.SummaryID, &s.Title, &s.SummaryText, &s.Source, &s.SourceID, &s.SourceURL,
		&questions, &s.CreatedBy, &s.Metadata, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(questions, &s.RelatedQuestions); err != nil {
		return nil, fmt.Errorf("decode related questions: %w", err)
	}
	return s, nil
}

// ListByUser retrieves a user's summaries, newest first, without bodies.
func (r *SummaryRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]model.SummaryListItem, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM summaries WHERE created_by = $1`, userID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, title, source, created_at
		 FROM summaries
		 WHERE created_by = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var summaries []model.SummaryListItem
	for rows.Next() {
		var item model.SummaryListItem
		if err := rows.Scan(&item.SummaryID, &item.Title, &item.Source, &item.CreatedAt); err != nil {
			return nil, 0, err
		}
		summaries = append(summaries, item)
	}
	return summaries, total, rows.Err()
}

// Delete removes a summary owned by the given user.
func (r *SummaryRepository) Delete(ctx context.Context, summaryID, userID string) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM summaries WHERE id = $1 AND created_by = $2`, summaryID, userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
