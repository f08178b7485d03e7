package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/quizforge/quizforge-backend/internal/content"
	"github.com/quizforge/quizforge-backend/internal/generation"
	"github.com/quizforge/quizforge-backend/internal/model"
	"github.com/quizforge/quizforge-backend/internal/repository"
)

// Summary service errors.
var (
	ErrSummaryNotFound = errors.New("summary not found")
)

// SummaryService orchestrates summary generation and retrieval.
type SummaryService struct {
	summaries *repository.SummaryRepository
	generator *generation.Generator
	resolver  *content.Resolver
	log       zerolog.Logger
}

// NewSummaryService creates a new SummaryService.
func NewSummaryService(
	summaries *repository.SummaryRepository,
	generator *generation.Generator,
	resolver *content.Resolver,
	log zerolog.Logger,
) *SummaryService {
	return &SummaryService{
		summaries: summaries,
		generator: generator,
		resolver:  resolver,
		log:       log.With().Str("component", "summary_service").Logger(),
	}
}

// Create generates a summary from the requested source and persists it.
func (s *SummaryService) Create(ctx context.Context, userID string, req model.CreateSummaryRequest) (*model.Summary, error) {
	inputText, sourceID, sourceURL, err := s.resolveInput(ctx, req)
	if err != nil {
		return nil, err
	}

	registry := s.generator.Registry()
	task := registry.SelectSummaryTask(req.Source, req.Length)

	vars := map[string]string{"input_text": inputText}
	if req.Prompt != "" {
		vars["additional_instructions"] = fmt.Sprintf("Additional instructions: %s", req.Prompt)
	}

	draft, meta, err := s.generator.GenerateSummary(ctx, task, vars)
	if err != nil {
		return nil, err
	}

	metadata, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("encode generation metadata: %w", err)
	}

	summary := &model.Summary{
		SummaryID:        uuid.NewString(),
		Title:            draft.Title,
		SummaryText:      draft.SummaryText,
		Source:           req.Source,
		SourceID:         sourceID,
		SourceURL:        sourceURL,
		RelatedQuestions: draft.RelatedQuestions,
		CreatedBy:        userID,
		CreatedAt:        time.Now().UTC(),
		Metadata:         metadata,
	}
	if err := s.summaries.Create(ctx, summary); err != nil {
		return nil, fmt.Errorf("store summary: %w", err)
	}

	s.log.Info().
		Str("summary_id", summary.SummaryID).
		Str("task", meta.Task).
		Msg("Summary created")
	return summary, nil
}

func (s *SummaryService) resolveInput(ctx context.Context, req model.CreateSummaryRequest) (inputText, sourceID, sourceURL string, err error) {
	switch req.Source {
	case model.SourceText:
		if req.TextContent == "" {
			return "", "", "", ErrMissingContent
		}
		return req.TextContent, "", "", nil

	case model.SourceYouTube, model.SourceArticle:
		if req.ContentSource == nil || req.ContentSource.URL == "" {
			return "", "", "", ErrMissingContent
		}
		text, err := s.resolver.Resolve(ctx, req.Source, req.ContentSource.URL)
		if err != nil {
			return "", "", "", err
		}
		sourceID = req.ContentSource.URL
		if req.Source == model.SourceYouTube {
			if id := content.VideoID(sourceID); id != "" {
				sourceID = id
			}
		}
		return text, sourceID, req.ContentSource.URL, nil

	default:
		return "", "", "", ErrMissingContent
	}
}

// Get retrieves one of the user's summaries.
func (s *SummaryService) Get(ctx context.Context, summaryID, userID string) (*model.Summary, error) {
	summary, err := s.summaries.GetByID(ctx, summaryID, userID)
	if err != nil {
		return nil, ErrSummaryNotFound
	}
	return summary, nil
}

// List retrieves the user's summaries, newest first.
func (s *SummaryService) List(ctx context.Context, userID string, limit, offset int) ([]model.SummaryListItem, int, error) {
	return s.summaries.ListByUser(ctx, userID, limit, offset)
}

// Delete removes a summary owned by the user.
func (s *SummaryService) Delete(ctx context.Context, summaryID, userID string) error {
	affected, err := s.summaries.Delete(ctx, summaryID, userID)
	if err != nil {
		return fmt.Errorf("delete summary: %w", err)
	}
	if affected == 0 {
		return ErrSummaryNotFound
	}
	return nil
}
