package highlight

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"yt-highlights/errors"
	"yt-highlights/models"
	"yt-highlights/pipeline"
	"yt-highlights/repository"
)

type service struct {
	highlights repository.HighlightRepository
	pipeline   *pipeline.Pipeline
	logger     *logrus.Logger
}

// NewService creates the highlight review service.
func NewService(highlights repository.HighlightRepository, pl *pipeline.Pipeline) Service {
	return &service{
		highlights: highlights,
		pipeline:   pl,
		logger:     logrus.StandardLogger(),
	}
}

func (s *service) Get(ctx context.Context, id string) (*models.Highlight, error) {
	const op = "HighlightService.Get"

	if id == "" {
		return nil, errors.InvalidInput(op, nil, "ID is required")
	}

	return s.highlights.Find(ctx, id)
}

func (s *service) ListByVideo(ctx context.Context, videoID string) ([]*models.Highlight, error) {
	const op = "HighlightService.ListByVideo"

	if videoID == "" {
		return nil, errors.InvalidInput(op, nil, "Video ID is required")
	}

	return s.highlights.ListByVideo(ctx, videoID)
}

func (s *service) Review(ctx context.Context, id string, status models.ReviewStatus, comment string) (*models.Highlight, error) {
	const op = "HighlightService.Review"

	if !status.Valid() {
		return nil, errors.InvalidInput(op, nil, "Invalid review status")
	}

	highlight, err := s.highlights.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	highlight.ReviewStatus = status
	highlight.ReviewComment = comment
	highlight.ReviewedAt = &now
	highlight.UpdatedAt = now

	if err := s.highlights.Update(ctx, highlight); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"highlight_id": id,
		"status":       status,
	}).Info("Highlight reviewed")

	return highlight, nil
}

func (s *service) Regenerate(ctx context.Context, id, systemRole string) (*models.Highlight, error) {
	const op = "HighlightService.Regenerate"

	highlight, err := s.highlights.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if highlight.SourcePrompt == "" {
		return nil, errors.InvalidInput(op, nil, "Highlight has no stored prompt to regenerate from")
	}

	if systemRole == "" {
		systemRole = highlight.SystemRole
	}

	candidate, err := s.pipeline.RegenerateHighlight(ctx, highlight.SourcePrompt, systemRole)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	highlight.Content = candidate.Content
	highlight.SystemRole = candidate.SystemRole
	highlight.ReviewStatus = models.ReviewPending
	highlight.ReviewComment = ""
	highlight.ReviewedAt = nil
	highlight.UpdatedAt = now

	if err := s.highlights.Update(ctx, highlight); err != nil {
		return nil, err
	}

	s.logger.WithField("highlight_id", id).Info("Highlight regenerated")

	return highlight, nil
}
