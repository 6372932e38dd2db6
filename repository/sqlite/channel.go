package sqlite

import (
	"context"
	"database/sql"

	"yt-highlights/errors"
	"yt-highlights/models"
)

type ChannelRepository struct {
	db *sql.DB
}

func NewChannelRepository(db *sql.DB) *ChannelRepository {
	return &ChannelRepository{db: db}
}

func (r *ChannelRepository) Save(ctx context.Context, channel *models.Channel) error {
	const op = "sqlite.ChannelRepository.Save"

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO channels (id, name, url, last_checked_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			url = excluded.url,
			last_checked_at = excluded.last_checked_at`,
		channel.ID,
		channel.Name,
		channel.URL,
		channel.LastCheckedAt,
	)
	if err != nil {
		return errors.Internal(op, err, "Failed to save channel")
	}
	return nil
}

func (r *ChannelRepository) Find(ctx context.Context, id string) (*models.Channel, error) {
	const op = "sqlite.ChannelRepository.Find"

	channel := &models.Channel{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, url, last_checked_at FROM channels WHERE id = ?`, id).Scan(
		&channel.ID,
		&channel.Name,
		&channel.URL,
		&channel.LastCheckedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NotFound(op, nil, "Channel not found")
	}
	if err != nil {
		return nil, errors.Internal(op, err, "Failed to query channel")
	}
	return channel, nil
}

func (r *ChannelRepository) List(ctx context.Context, offset, limit int) ([]*models.Channel, error) {
	const op = "sqlite.ChannelRepository.List"

	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, url, last_checked_at FROM channels
		ORDER BY name LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, errors.Internal(op, err, "Failed to query channels")
	}
	defer rows.Close()

	var channels []*models.Channel
	for rows.Next() {
		channel := &models.Channel{}
		if err := rows.Scan(&channel.ID, &channel.Name, &channel.URL, &channel.LastCheckedAt); err != nil {
			return nil, errors.Internal(op, err, "Failed to scan channel")
		}
		channels = append(channels, channel)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Internal(op, err, "Failed to iterate channels")
	}
	return channels, nil
}
