package sqlite

import (
	"context"
	"database/sql"

	"yt-highlights/errors"
	"yt-highlights/models"
)

type HighlightRepository struct {
	db *sql.DB
}

func NewHighlightRepository(db *sql.DB) *HighlightRepository {
	return &HighlightRepository{db: db}
}

const highlightColumns = `id, video_id, content, source_prompt, system_role, review_status, review_comment, reviewed_at, created_at, updated_at`

func (r *HighlightRepository) Save(ctx context.Context, h *models.Highlight) error {
	const op = "sqlite.HighlightRepository.Save"

	if err := r.insert(ctx, r.db, h); err != nil {
		return errors.Internal(op, err, "Failed to save highlight")
	}
	return nil
}

func (r *HighlightRepository) insert(ctx context.Context, ex Executor, h *models.Highlight) error {
	_, err := ex.ExecContext(ctx, `
		INSERT INTO highlights (`+highlightColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		h.ID,
		h.VideoID,
		h.Content,
		h.SourcePrompt,
		h.SystemRole,
		string(h.ReviewStatus),
		h.ReviewComment,
		h.ReviewedAt,
		h.CreatedAt,
		h.UpdatedAt,
	)
	return err
}

func (r *HighlightRepository) Find(ctx context.Context, id string) (*models.Highlight, error) {
	const op = "sqlite.HighlightRepository.Find"

	row := r.db.QueryRowContext(ctx, `
		SELECT `+highlightColumns+` FROM highlights WHERE id = ?`, id)

	h, err := scanHighlight(row)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound(op, nil, "Highlight not found")
	}
	if err != nil {
		return nil, errors.Internal(op, err, "Failed to query highlight")
	}
	return h, nil
}

func (r *HighlightRepository) ListByVideo(ctx context.Context, videoID string) ([]*models.Highlight, error) {
	const op = "sqlite.HighlightRepository.ListByVideo"

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+highlightColumns+` FROM highlights
		WHERE video_id = ? ORDER BY created_at, id`, videoID)
	if err != nil {
		return nil, errors.Internal(op, err, "Failed to query highlights")
	}
	defer rows.Close()

	var highlights []*models.Highlight
	for rows.Next() {
		h, err := scanHighlight(rows)
		if err != nil {
			return nil, errors.Internal(op, err, "Failed to scan highlight")
		}
		highlights = append(highlights, h)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Internal(op, err, "Failed to iterate highlights")
	}
	return highlights, nil
}

// ReplaceForVideo swaps a video's pending highlights for the new set in one
// transaction. Reviewed highlights are left in place.
func (r *HighlightRepository) ReplaceForVideo(ctx context.Context, videoID string, highlights []*models.Highlight) error {
	const op = "sqlite.HighlightRepository.ReplaceForVideo"

	err := WithTransaction(ctx, r.db, func(tx Executor) error {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM highlights WHERE video_id = ? AND review_status = ?`,
			videoID, string(models.ReviewPending),
		); err != nil {
			return err
		}
		for _, h := range highlights {
			if err := r.insert(ctx, tx, h); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errors.Internal(op, err, "Failed to replace highlights")
	}
	return nil
}

func (r *HighlightRepository) Update(ctx context.Context, h *models.Highlight) error {
	const op = "sqlite.HighlightRepository.Update"

	res, err := r.db.ExecContext(ctx, `
		UPDATE highlights
		SET content = ?, system_role = ?, review_status = ?, review_comment = ?, reviewed_at = ?, updated_at = ?
		WHERE id = ?`,
		h.Content,
		h.SystemRole,
		string(h.ReviewStatus),
		h.ReviewComment,
		h.ReviewedAt,
		h.UpdatedAt,
		h.ID,
	)
	if err != nil {
		return errors.Internal(op, err, "Failed to update highlight")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Internal(op, err, "Failed to check update result")
	}
	if affected == 0 {
		return errors.NotFound(op, nil, "Highlight not found")
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanHighlight(row rowScanner) (*models.Highlight, error) {
	h := &models.Highlight{}
	var status string
	var sourcePrompt, systemRole, comment sql.NullString
	var reviewedAt sql.NullTime

	err := row.Scan(
		&h.ID,
		&h.VideoID,
		&h.Content,
		&sourcePrompt,
		&systemRole,
		&status,
		&comment,
		&reviewedAt,
		&h.CreatedAt,
		&h.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	h.ReviewStatus = models.ReviewStatus(status)
	h.SourcePrompt = sourcePrompt.String
	h.SystemRole = systemRole.String
	h.ReviewComment = comment.String
	if reviewedAt.Valid {
		h.ReviewedAt = &reviewedAt.Time
	}
	return h, nil
}
