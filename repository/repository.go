package repository

import (
	"context"

	"yt-highlights/models"
)

type ChannelRepository interface {
	Save(ctx context.Context, channel *models.Channel) error
	Find(ctx context.Context, id string) (*models.Channel, error)
	List(ctx context.Context, offset, limit int) ([]*models.Channel, error)
}

type VideoRepository interface {
	Save(ctx context.Context, video *models.Video) error
	Find(ctx context.Context, id string) (*models.Video, error)
	FindByURL(ctx context.Context, url string) (*models.Video, error)
	ListByChannel(ctx context.Context, channelID string) ([]*models.Video, error)
}

type TranscriptRepository interface {
	Save(ctx context.Context, transcript *models.Transcript) error
	Find(ctx context.Context, videoID string) (*models.Transcript, error)
}

type HighlightRepository interface {
	Save(ctx context.Context, highlight *models.Highlight) error
	Find(ctx context.Context, id string) (*models.Highlight, error)
	ListByVideo(ctx context.Context, videoID string) ([]*models.Highlight, error)
	// ReplaceForVideo atomically deletes a video's pending highlights and
	// inserts the new set, so a re-run never leaves stale candidates
	// alongside fresh ones.
	ReplaceForVideo(ctx context.Context, videoID string, highlights []*models.Highlight) error
	Update(ctx context.Context, highlight *models.Highlight) error
}
