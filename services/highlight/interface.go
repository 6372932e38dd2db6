package highlight

import (
	"context"

	"yt-highlights/models"
)

// Service manages highlight review and regeneration after the pipeline
// has produced the initial candidate set for a video.
type Service interface {
	// Get returns a single highlight by ID.
	Get(ctx context.Context, id string) (*models.Highlight, error)

	// ListByVideo returns all highlights for a video in stable order.
	ListByVideo(ctx context.Context, videoID string) ([]*models.Highlight, error)

	// Review records an editorial decision on a highlight.
	Review(ctx context.Context, id string, status models.ReviewStatus, comment string) (*models.Highlight, error)

	// Regenerate replays LLM generation for a highlight's stored prompt,
	// replacing its content and resetting it to pending review. An empty
	// systemRole keeps the role the highlight was generated with.
	Regenerate(ctx context.Context, id, systemRole string) (*models.Highlight, error)
}
