package model

import (
	"encoding/json"
	"time"
)

// SummaryLength enumerates the requested summary sizes.
type SummaryLength string

const (
	LengthShort  SummaryLength = "short"
	LengthMedium SummaryLength = "medium"
	LengthLong   SummaryLength = "long"
)

// SummaryQuestion is one of the reinforcement Q&A pairs a summary carries.
type SummaryQuestion struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Summary is a stored text summary document.
type Summary struct {
	SummaryID        string            `json:"summary_id"`
	Title            string            `json:"title"`
	SummaryText      string            `json:"summary_text"`
	Source           SourceType        `json:"source_type"`
	SourceID         string            `json:"source_id"`
	SourceURL        string            `json:"source_url,omitempty"`
	RelatedQuestions []SummaryQuestion `json:"related_questions,omitempty"`
	CreatedBy        string            `json:"created_by"`
	CreatedAt        time.Time         `json:"created_at"`
	Metadata         json.RawMessage   `json:"metadata,omitempty"`
}

// SummaryListItem is the list view of a summary.
type SummaryListItem struct {
	SummaryID string     `json:"summary_id"`
	Title     string     `json:"title"`
	Source    SourceType `json:"source_type"`
	CreatedAt time.Time  `json:"created_at"`
}

// CreateSummaryRequest is the payload for generating a new summary.
type CreateSummaryRequest struct {
	Source        SourceType     `json:"summary_source" binding:"required,oneof=text youtube article"`
	ContentSource *ContentSource `json:"content_source" binding:"omitempty"`
	TextContent   string         `json:"text_content" binding:"omitempty,max=100000"`
	Prompt        string         `json:"prompt" binding:"omitempty,max=2000"`
	Length        SummaryLength  `json:"length" binding:"omitempty,oneof=short medium long"`
}
