package models

import (
	"time"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

type Channel struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	URL           string    `json:"url"`
	LastCheckedAt time.Time `json:"last_checked_at"`
}

type Video struct {
	ID          string     `json:"id"`
	ChannelID   string     `json:"channel_id,omitempty"`
	URL         string     `json:"url"`
	Title       string     `json:"title,omitempty"`
	Duration    int        `json:"duration,omitempty"`
	Status      Status     `json:"status"`
	Error       string     `json:"error,omitempty"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Status check methods
func (v *Video) IsProcessing() bool { return v.Status == StatusProcessing }
func (v *Video) IsCompleted() bool  { return v.Status == StatusCompleted }
func (v *Video) IsFailed() bool     { return v.Status == StatusFailed }

// IsStale checks if the job has been stuck in processing for too long
func (v *Video) IsStale(timeout time.Duration) bool {
	if v.Status != StatusProcessing {
		return false
	}
	return time.Since(v.UpdatedAt) > timeout
}

// Transcript holds both forms of a video's transcript. Raw is what the
// caption source returned; Processed is the copyedited output.
type Transcript struct {
	VideoID   string    `json:"video_id"`
	Raw       string    `json:"raw"`
	Processed string    `json:"processed,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
