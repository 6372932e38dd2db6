package sqlite

import (
	"context"
	"database/sql"
	"time"

	"yt-highlights/errors"
	"yt-highlights/models"
)

type VideoRepository struct {
	db *sql.DB
}

func NewVideoRepository(db *sql.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

func (r *VideoRepository) Save(ctx context.Context, video *models.Video) error {
	const op = "sqlite.VideoRepository.Save"

	for i := 0; i < 3; i++ { // Simple retry for sqlite lock contention
		err := r.save(ctx, video)
		if err == nil {
			return nil
		}
		if !isLockError(err) {
			return errors.Internal(op, err, "Failed to save video")
		}
		time.Sleep(time.Second * time.Duration(i+1))
	}
	return errors.Internal(op, nil, "Failed after retries")
}

func (r *VideoRepository) save(ctx context.Context, video *models.Video) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO videos (id, channel_id, url, title, duration, status, error, processed_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			channel_id = excluded.channel_id,
			title = excluded.title,
			duration = excluded.duration,
			status = excluded.status,
			error = excluded.error,
			processed_at = excluded.processed_at,
			updated_at = excluded.updated_at`,
		video.ID,
		video.ChannelID,
		video.URL,
		video.Title,
		video.Duration,
		string(video.Status),
		video.Error,
		video.ProcessedAt,
		video.CreatedAt,
		video.UpdatedAt,
	)
	return err
}

func (r *VideoRepository) Find(ctx context.Context, id string) (*models.Video, error) {
	const op = "sqlite.VideoRepository.Find"
	return r.scanOne(ctx, op, `
		SELECT id, channel_id, url, title, duration, status, error, processed_at, created_at, updated_at
		FROM videos WHERE id = ?`, id)
}

func (r *VideoRepository) FindByURL(ctx context.Context, url string) (*models.Video, error) {
	const op = "sqlite.VideoRepository.FindByURL"
	return r.scanOne(ctx, op, `
		SELECT id, channel_id, url, title, duration, status, error, processed_at, created_at, updated_at
		FROM videos WHERE url = ?`, url)
}

func (r *VideoRepository) scanOne(ctx context.Context, op, query string, arg interface{}) (*models.Video, error) {
	video := &models.Video{}
	var status string
	var channelID, title, errMsg sql.NullString
	var duration sql.NullInt64
	var processedAt sql.NullTime

	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&video.ID,
		&channelID,
		&video.URL,
		&title,
		&duration,
		&status,
		&errMsg,
		&processedAt,
		&video.CreatedAt,
		&video.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NotFound(op, nil, "Video not found")
	}
	if err != nil {
		return nil, errors.Internal(op, err, "Failed to query video")
	}

	video.Status = models.Status(status)
	video.ChannelID = channelID.String
	video.Title = title.String
	video.Duration = int(duration.Int64)
	video.Error = errMsg.String
	if processedAt.Valid {
		video.ProcessedAt = &processedAt.Time
	}
	return video, nil
}

func (r *VideoRepository) ListByChannel(ctx context.Context, channelID string) ([]*models.Video, error) {
	const op = "sqlite.VideoRepository.ListByChannel"

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, channel_id, url, title, duration, status, error, processed_at, created_at, updated_at
		FROM videos WHERE channel_id = ? ORDER BY created_at DESC`, channelID)
	if err != nil {
		return nil, errors.Internal(op, err, "Failed to query videos")
	}
	defer rows.Close()

	var videos []*models.Video
	for rows.Next() {
		video := &models.Video{}
		var status string
		var chID, title, errMsg sql.NullString
		var duration sql.NullInt64
		var processedAt sql.NullTime

		if err := rows.Scan(
			&video.ID,
			&chID,
			&video.URL,
			&title,
			&duration,
			&status,
			&errMsg,
			&processedAt,
			&video.CreatedAt,
			&video.UpdatedAt,
		); err != nil {
			return nil, errors.Internal(op, err, "Failed to scan video")
		}

		video.Status = models.Status(status)
		video.ChannelID = chID.String
		video.Title = title.String
		video.Duration = int(duration.Int64)
		video.Error = errMsg.String
		if processedAt.Valid {
			video.ProcessedAt = &processedAt.Time
		}
		videos = append(videos, video)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Internal(op, err, "Failed to iterate videos")
	}
	return videos, nil
}
