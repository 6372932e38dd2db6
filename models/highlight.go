package models

import (
	"time"
)

type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

// HighlightCandidate is one provisional extracted highlight. SourcePrompt is
// the exact partition text the generation call received, kept so the same
// highlight can be regenerated later against the same input.
type HighlightCandidate struct {
	Content      string `json:"content"`
	SourcePrompt string `json:"source_prompt"`
	SystemRole   string `json:"system_role"`
}

// Highlight is a persisted candidate pending human review.
type Highlight struct {
	ID            string       `json:"id"`
	VideoID       string       `json:"video_id"`
	Content       string       `json:"content"`
	SourcePrompt  string       `json:"source_prompt,omitempty"`
	SystemRole    string       `json:"system_role,omitempty"`
	ReviewStatus  ReviewStatus `json:"review_status"`
	ReviewComment string       `json:"review_comment,omitempty"`
	ReviewedAt    *time.Time   `json:"reviewed_at,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

func (s ReviewStatus) Valid() bool {
	switch s {
	case ReviewPending, ReviewApproved, ReviewRejected:
		return true
	}
	return false
}
