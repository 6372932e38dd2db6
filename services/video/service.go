package video

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"yt-highlights/errors"
	"yt-highlights/models"
	"yt-highlights/pipeline"
	"yt-highlights/repository"
	"yt-highlights/storage"
	"yt-highlights/validation"
)

type service struct {
	channels    repository.ChannelRepository
	videos      repository.VideoRepository
	transcripts repository.TranscriptRepository
	highlights  repository.HighlightRepository
	fetcher     TranscriptFetcher
	pipeline    *pipeline.Pipeline
	archive     *storage.ArchiveClient
	validator   *validation.Validator
	config      Config
	logger      *logrus.Logger
}

// NewService creates the video orchestration service. archive may be nil
// when no transcript archive is configured.
func NewService(
	channels repository.ChannelRepository,
	videos repository.VideoRepository,
	transcripts repository.TranscriptRepository,
	highlights repository.HighlightRepository,
	fetcher TranscriptFetcher,
	pl *pipeline.Pipeline,
	archive *storage.ArchiveClient,
	validator *validation.Validator,
	config Config,
) Service {
	return &service{
		channels:    channels,
		videos:      videos,
		transcripts: transcripts,
		highlights:  highlights,
		fetcher:     fetcher,
		pipeline:    pl,
		archive:     archive,
		validator:   validator,
		config:      config,
		logger:      logrus.StandardLogger(),
	}
}

func (s *service) Submit(ctx context.Context, idOrURL string) (*models.Video, error) {
	const op = "VideoService.Submit"
	logger := s.logger.WithField("ref", idOrURL)

	videoID, err := s.validator.ValidateVideoRef(idOrURL)
	if err != nil {
		logger.WithError(err).Warn("Invalid video reference")
		return nil, err
	}

	video, err := s.videos.Find(ctx, videoID)
	if err == nil {
		if !shouldReprocess(video, s.config.StaleAfter) {
			return video, nil
		}
		return s.startProcessing(ctx, video)
	}
	if !errors.IsNotFound(err) {
		return nil, errors.Internal(op, err, "Failed to look up video")
	}

	video = &models.Video{
		ID:        videoID,
		URL:       "https://www.youtube.com/watch?v=" + videoID,
		CreatedAt: time.Now(),
	}

	return s.startProcessing(ctx, video)
}

// shouldReprocess mirrors the resubmission rules: completed videos are
// final, failed ones always retry, and processing ones retry only once
// stale.
func shouldReprocess(video *models.Video, staleAfter time.Duration) bool {
	switch video.Status {
	case models.StatusCompleted:
		return false
	case models.StatusProcessing:
		return video.IsStale(staleAfter)
	case models.StatusFailed:
		return true
	default:
		return true
	}
}

func (s *service) startProcessing(ctx context.Context, video *models.Video) (*models.Video, error) {
	const op = "VideoService.startProcessing"

	video.Status = models.StatusProcessing
	video.UpdatedAt = time.Now()
	video.Error = "" // Clear any previous error

	if err := s.videos.Save(ctx, video); err != nil {
		return nil, errors.Internal(op, err, "Failed to save video")
	}

	go s.processVideo(video)

	return video, nil
}

// processVideo runs the full pipeline for one video in the background:
// fetch transcript, copyedit, extract highlights, persist. Any failure
// marks the video failed; there is no partial success state.
func (s *service) processVideo(video *models.Video) {
	logger := s.logger.WithField("video_id", video.ID)
	ctx, cancel := context.WithTimeout(context.Background(), s.config.ProcessTimeout)
	defer cancel()

	logger.Info("Starting highlight pipeline")

	if err := s.runPipeline(ctx, video, logger); err != nil {
		logger.WithError(err).Error("Pipeline failed")
		video.Status = models.StatusFailed
		video.Error = err.Error()
	} else {
		now := time.Now()
		video.Status = models.StatusCompleted
		video.ProcessedAt = &now
	}

	video.UpdatedAt = time.Now()
	if err := s.videos.Save(ctx, video); err != nil {
		logger.WithError(err).Error("Failed to save video state")
	}
}

func (s *service) runPipeline(ctx context.Context, video *models.Video, logger *logrus.Entry) error {
	// Metadata failures are non-fatal; the pipeline only needs captions.
	if meta, err := s.fetcher.FetchMetadata(ctx, video.ID); err != nil {
		logger.WithError(err).Warn("Failed to fetch video metadata")
	} else {
		video.Title = meta.Title
		video.Duration = meta.Duration
		if video.ChannelID == "" {
			video.ChannelID = meta.ChannelID
		}
	}

	raw, err := s.fetcher.FetchTranscript(ctx, video.ID)
	if err != nil {
		return err
	}

	processed, err := s.pipeline.ProcessTranscript(ctx, raw)
	if err != nil {
		return err
	}

	candidates, err := s.pipeline.ExtractHighlights(ctx, processed)
	if err != nil {
		return err
	}

	now := time.Now()
	if err := s.transcripts.Save(ctx, &models.Transcript{
		VideoID:   video.ID,
		Raw:       raw,
		Processed: processed,
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		return err
	}

	highlights := make([]*models.Highlight, 0, len(candidates))
	for _, c := range candidates {
		highlights = append(highlights, &models.Highlight{
			ID:           uuid.New().String(),
			VideoID:      video.ID,
			Content:      c.Content,
			SourcePrompt: c.SourcePrompt,
			SystemRole:   c.SystemRole,
			ReviewStatus: models.ReviewPending,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}

	if err := s.highlights.ReplaceForVideo(ctx, video.ID, highlights); err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"highlights":    len(highlights),
		"raw_len":       len(raw),
		"processed_len": len(processed),
	}).Info("Pipeline completed")

	if s.archive != nil {
		if err := s.archive.SaveTranscript(ctx, video.ID, raw, processed, s.config.Model); err != nil {
			logger.WithError(err).Warn("Failed to archive transcript")
		}
	}

	return nil
}

func (s *service) Get(ctx context.Context, id string) (*models.Video, error) {
	const op = "VideoService.Get"

	if id == "" {
		return nil, errors.InvalidInput(op, nil, "ID is required")
	}

	return s.videos.Find(ctx, id)
}

func (s *service) GetTranscript(ctx context.Context, videoID string) (*models.Transcript, error) {
	const op = "VideoService.GetTranscript"

	if videoID == "" {
		return nil, errors.InvalidInput(op, nil, "Video ID is required")
	}

	return s.transcripts.Find(ctx, videoID)
}

func (s *service) RegisterChannel(ctx context.Context, id, name, url string) (*models.Channel, error) {
	const op = "VideoService.RegisterChannel"

	if id == "" {
		return nil, errors.InvalidInput(op, nil, "Channel ID is required")
	}
	if err := s.validator.ValidateURL(url); err != nil {
		return nil, err
	}

	channel := &models.Channel{
		ID:            id,
		Name:          name,
		URL:           url,
		LastCheckedAt: time.Now(),
	}
	if err := s.channels.Save(ctx, channel); err != nil {
		return nil, errors.Internal(op, err, "Failed to save channel")
	}

	return channel, nil
}

func (s *service) ListChannels(ctx context.Context, offset, limit int) ([]*models.Channel, error) {
	return s.channels.List(ctx, offset, limit)
}

func (s *service) ListChannelVideos(ctx context.Context, channelID string) ([]*models.Video, error) {
	const op = "VideoService.ListChannelVideos"

	if _, err := s.channels.Find(ctx, channelID); err != nil {
		return nil, err
	}

	videos, err := s.videos.ListByChannel(ctx, channelID)
	if err != nil {
		return nil, errors.Internal(op, err, "Failed to list videos")
	}
	return videos, nil
}
