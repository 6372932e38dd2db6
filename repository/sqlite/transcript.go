package sqlite

import (
	"context"
	"database/sql"

	"yt-highlights/errors"
	"yt-highlights/models"
)

type TranscriptRepository struct {
	db *sql.DB
}

func NewTranscriptRepository(db *sql.DB) *TranscriptRepository {
	return &TranscriptRepository{db: db}
}

func (r *TranscriptRepository) Save(ctx context.Context, t *models.Transcript) error {
	const op = "sqlite.TranscriptRepository.Save"

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO transcripts (video_id, raw, processed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(video_id) DO UPDATE SET
			raw = excluded.raw,
			processed = excluded.processed,
			updated_at = excluded.updated_at`,
		t.VideoID,
		t.Raw,
		t.Processed,
		t.CreatedAt,
		t.UpdatedAt,
	)
	if err != nil {
		return errors.Internal(op, err, "Failed to save transcript")
	}
	return nil
}

func (r *TranscriptRepository) Find(ctx context.Context, videoID string) (*models.Transcript, error) {
	const op = "sqlite.TranscriptRepository.Find"

	t := &models.Transcript{}
	var processed sql.NullString

	err := r.db.QueryRowContext(ctx, `
		SELECT video_id, raw, processed, created_at, updated_at
		FROM transcripts WHERE video_id = ?`, videoID).Scan(
		&t.VideoID,
		&t.Raw,
		&processed,
		&t.CreatedAt,
		&t.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NotFound(op, nil, "Transcript not found")
	}
	if err != nil {
		return nil, errors.Internal(op, err, "Failed to query transcript")
	}

	t.Processed = processed.String
	return t, nil
}
