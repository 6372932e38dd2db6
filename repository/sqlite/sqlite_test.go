package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"yt-highlights/errors"
	"yt-highlights/models"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := InitDB(filepath.Join(t.TempDir(), "test.db"), 5)
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testVideo(id string) *models.Video {
	now := time.Now().UTC().Truncate(time.Second)
	return &models.Video{
		ID:        id,
		URL:       "https://www.youtube.com/watch?v=" + id,
		Title:     "Test Video",
		Duration:  300,
		Status:    models.StatusProcessing,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func testHighlight(id, videoID string) *models.Highlight {
	now := time.Now().UTC().Truncate(time.Second)
	return &models.Highlight{
		ID:           id,
		VideoID:      videoID,
		Content:      "[00:10 -> 00:42] Something notable.",
		SourcePrompt: "partition text",
		SystemRole:   "highlight role",
		ReviewStatus: models.ReviewPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestVideoRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewVideoRepository(db)
	ctx := context.Background()

	video := testVideo("dQw4w9WgXcQ")
	if err := repo.Save(ctx, video); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.Find(ctx, video.ID)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got.URL != video.URL || got.Status != models.StatusProcessing {
		t.Errorf("got %+v", got)
	}

	// Upsert on resave
	now := time.Now()
	video.Status = models.StatusCompleted
	video.ProcessedAt = &now
	if err := repo.Save(ctx, video); err != nil {
		t.Fatalf("resave: %v", err)
	}
	got, err = repo.Find(ctx, video.ID)
	if err != nil {
		t.Fatalf("Find after resave: %v", err)
	}
	if got.Status != models.StatusCompleted {
		t.Errorf("status = %q, want completed", got.Status)
	}
	if got.ProcessedAt == nil {
		t.Error("processed_at not persisted")
	}

	if got, err := repo.FindByURL(ctx, video.URL); err != nil || got.ID != video.ID {
		t.Errorf("FindByURL = %v, %v", got, err)
	}

	if _, err := repo.Find(ctx, "missing-vid-1"); !errors.IsNotFound(err) {
		t.Errorf("Find missing: got %v, want not found", err)
	}
}

func TestChannelRepository(t *testing.T) {
	db := newTestDB(t)
	channels := NewChannelRepository(db)
	videos := NewVideoRepository(db)
	ctx := context.Background()

	ch := &models.Channel{
		ID:            "UC123",
		Name:          "Test Channel",
		URL:           "https://www.youtube.com/@test",
		LastCheckedAt: time.Now(),
	}
	if err := channels.Save(ctx, ch); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := channels.Find(ctx, ch.ID)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got.Name != ch.Name {
		t.Errorf("name = %q", got.Name)
	}

	list, err := channels.List(ctx, 0, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("got %d channels, want 1", len(list))
	}

	v := testVideo("aaaaaaaaaaa")
	v.ChannelID = ch.ID
	if err := videos.Save(ctx, v); err != nil {
		t.Fatalf("Save video: %v", err)
	}
	byChannel, err := videos.ListByChannel(ctx, ch.ID)
	if err != nil {
		t.Fatalf("ListByChannel: %v", err)
	}
	if len(byChannel) != 1 || byChannel[0].ID != v.ID {
		t.Errorf("ListByChannel = %+v", byChannel)
	}
}

func TestTranscriptRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewTranscriptRepository(db)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	tr := &models.Transcript{
		VideoID:   "dQw4w9WgXcQ",
		Raw:       "[00:01 -> 00:05] raw line",
		Processed: "[00:01 -> 00:05] edited line",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := repo.Save(ctx, tr); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.Find(ctx, tr.VideoID)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got.Raw != tr.Raw || got.Processed != tr.Processed {
		t.Errorf("got %+v", got)
	}

	// Upsert replaces the processed text on reprocessing.
	tr.Processed = "[00:01 -> 00:05] better edit"
	if err := repo.Save(ctx, tr); err != nil {
		t.Fatalf("resave: %v", err)
	}
	got, _ = repo.Find(ctx, tr.VideoID)
	if got.Processed != tr.Processed {
		t.Errorf("processed = %q", got.Processed)
	}

	if _, err := repo.Find(ctx, "missing"); !errors.IsNotFound(err) {
		t.Errorf("Find missing: got %v, want not found", err)
	}
}

func TestHighlightRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewHighlightRepository(db)
	ctx := context.Background()

	h := testHighlight("h1", "dQw4w9WgXcQ")
	if err := repo.Save(ctx, h); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.Find(ctx, h.ID)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got.Content != h.Content || got.SourcePrompt != h.SourcePrompt {
		t.Errorf("got %+v", got)
	}
	if got.ReviewStatus != models.ReviewPending {
		t.Errorf("review status = %q", got.ReviewStatus)
	}

	now := time.Now().UTC().Truncate(time.Second)
	got.ReviewStatus = models.ReviewApproved
	got.ReviewComment = "ship it"
	got.ReviewedAt = &now
	got.UpdatedAt = now
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, _ = repo.Find(ctx, h.ID)
	if got.ReviewStatus != models.ReviewApproved || got.ReviewComment != "ship it" {
		t.Errorf("got %+v", got)
	}
	if got.ReviewedAt == nil {
		t.Error("reviewed_at not persisted")
	}

	missing := testHighlight("missing", "dQw4w9WgXcQ")
	if err := repo.Update(ctx, missing); !errors.IsNotFound(err) {
		t.Errorf("Update missing: got %v, want not found", err)
	}
}

// ReplaceForVideo must swap out pending highlights while leaving reviewed
// ones untouched.
func TestHighlightReplaceForVideo(t *testing.T) {
	db := newTestDB(t)
	repo := NewHighlightRepository(db)
	ctx := context.Background()

	const videoID = "dQw4w9WgXcQ"

	approved := testHighlight("h-approved", videoID)
	approved.ReviewStatus = models.ReviewApproved
	pending := testHighlight("h-pending", videoID)
	for _, h := range []*models.Highlight{approved, pending} {
		if err := repo.Save(ctx, h); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	replacement := testHighlight("h-new", videoID)
	replacement.CreatedAt = replacement.CreatedAt.Add(time.Second)
	if err := repo.ReplaceForVideo(ctx, videoID, []*models.Highlight{replacement}); err != nil {
		t.Fatalf("ReplaceForVideo: %v", err)
	}

	list, err := repo.ListByVideo(ctx, videoID)
	if err != nil {
		t.Fatalf("ListByVideo: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d highlights, want 2", len(list))
	}

	ids := map[string]bool{}
	for _, h := range list {
		ids[h.ID] = true
	}
	if !ids["h-approved"] || !ids["h-new"] {
		t.Errorf("survivors = %v", ids)
	}
	if ids["h-pending"] {
		t.Error("pending highlight survived replacement")
	}
}

// A failed insert inside ReplaceForVideo must roll back the delete.
func TestHighlightReplaceForVideoAtomic(t *testing.T) {
	db := newTestDB(t)
	repo := NewHighlightRepository(db)
	ctx := context.Background()

	const videoID = "dQw4w9WgXcQ"

	existing := testHighlight("h-existing", videoID)
	if err := repo.Save(ctx, existing); err != nil {
		t.Fatalf("Save: %v", err)
	}

	bad := testHighlight("h-bad", videoID)
	bad.ReviewStatus = "nonsense" // violates the CHECK constraint
	if err := repo.ReplaceForVideo(ctx, videoID, []*models.Highlight{bad}); err == nil {
		t.Fatal("expected error for invalid review status")
	}

	list, err := repo.ListByVideo(ctx, videoID)
	if err != nil {
		t.Fatalf("ListByVideo: %v", err)
	}
	if len(list) != 1 || list[0].ID != "h-existing" {
		t.Errorf("rollback failed, got %+v", list)
	}
}
