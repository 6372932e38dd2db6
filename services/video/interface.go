package video

import (
	"context"
	"time"

	"yt-highlights/models"
	"yt-highlights/youtube"
)

type Service interface {
	// Submit queues a video for transcript retrieval, copyediting, and
	// highlight extraction. Returns immediately; processing is async.
	Submit(ctx context.Context, idOrURL string) (*models.Video, error)

	// Get retrieves a video with its processing status.
	Get(ctx context.Context, id string) (*models.Video, error)

	// GetTranscript retrieves both transcript forms for a video.
	GetTranscript(ctx context.Context, videoID string) (*models.Transcript, error)

	// RegisterChannel upserts a channel for tracking.
	RegisterChannel(ctx context.Context, id, name, url string) (*models.Channel, error)

	// ListChannels pages through registered channels.
	ListChannels(ctx context.Context, offset, limit int) ([]*models.Channel, error)

	// ListChannelVideos lists a channel's videos, newest first.
	ListChannelVideos(ctx context.Context, channelID string) ([]*models.Video, error)
}

// TranscriptFetcher is the transcript-source collaborator boundary.
// Satisfied by *youtube.Client and by test stubs.
type TranscriptFetcher interface {
	FetchMetadata(ctx context.Context, videoID string) (*youtube.Metadata, error)
	FetchTranscript(ctx context.Context, videoID string) (string, error)
}

type Config struct {
	// ProcessTimeout bounds one full pipeline run for a video.
	ProcessTimeout time.Duration

	// StaleAfter is how long a video may sit in processing before a
	// resubmission restarts it.
	StaleAfter time.Duration

	// Model is recorded alongside archived transcripts.
	Model string
}
