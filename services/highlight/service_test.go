package highlight

import (
	"context"
	"fmt"
	"testing"
	"time"

	"yt-highlights/errors"
	"yt-highlights/llm"
	"yt-highlights/models"
	"yt-highlights/pipeline"
)

type fakeRepo struct {
	highlights map[string]*models.Highlight
	updated    map[string]*models.Highlight
}

func newFakeRepo(highlights ...*models.Highlight) *fakeRepo {
	f := &fakeRepo{
		highlights: map[string]*models.Highlight{},
		updated:    map[string]*models.Highlight{},
	}
	for _, h := range highlights {
		f.highlights[h.ID] = h
	}
	return f
}

func (f *fakeRepo) Save(ctx context.Context, h *models.Highlight) error {
	f.highlights[h.ID] = h
	return nil
}

func (f *fakeRepo) Find(ctx context.Context, id string) (*models.Highlight, error) {
	h, ok := f.highlights[id]
	if !ok {
		return nil, errors.NotFound("fake.Find", nil, "Highlight not found")
	}
	clone := *h
	return &clone, nil
}

func (f *fakeRepo) ListByVideo(ctx context.Context, videoID string) ([]*models.Highlight, error) {
	var out []*models.Highlight
	for _, h := range f.highlights {
		if h.VideoID == videoID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeRepo) ReplaceForVideo(ctx context.Context, videoID string, highlights []*models.Highlight) error {
	return nil
}

func (f *fakeRepo) Update(ctx context.Context, h *models.Highlight) error {
	if _, ok := f.highlights[h.ID]; !ok {
		return errors.NotFound("fake.Update", nil, "Highlight not found")
	}
	clone := *h
	f.highlights[h.ID] = &clone
	f.updated[h.ID] = &clone
	return nil
}

type fixedGenerator struct {
	response string
	err      error
}

func (g *fixedGenerator) Generate(ctx context.Context, req llm.Request) (string, error) {
	return g.response, g.err
}

func testHighlight() *models.Highlight {
	return &models.Highlight{
		ID:           "h1",
		VideoID:      "dQw4w9WgXcQ",
		Content:      "[00:10 -> 00:42] Original content.",
		SourcePrompt: "[00:01 -> 00:05] hello\n[00:05 -> 00:09] world",
		SystemRole:   "stored role",
		ReviewStatus: models.ReviewPending,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

func newService(repo *fakeRepo, gen llm.Generator) Service {
	return NewService(repo, pipeline.New(gen, pipeline.Config{
		Model:                "test-model",
		MaxTokens:            100,
		HighlightTemperature: 0.4,
	}))
}

func TestReview(t *testing.T) {
	repo := newFakeRepo(testHighlight())
	svc := newService(repo, &fixedGenerator{response: "unused"})

	h, err := svc.Review(context.Background(), "h1", models.ReviewApproved, "good one")
	if err != nil {
		t.Fatalf("Review: %v", err)
	}

	if h.ReviewStatus != models.ReviewApproved {
		t.Errorf("status = %q", h.ReviewStatus)
	}
	if h.ReviewComment != "good one" {
		t.Errorf("comment = %q", h.ReviewComment)
	}
	if h.ReviewedAt == nil {
		t.Error("reviewed_at not set")
	}
	if _, ok := repo.updated["h1"]; !ok {
		t.Error("review not persisted")
	}
}

func TestReviewInvalidStatus(t *testing.T) {
	repo := newFakeRepo(testHighlight())
	svc := newService(repo, &fixedGenerator{response: "unused"})

	if _, err := svc.Review(context.Background(), "h1", "maybe", ""); err == nil {
		t.Fatal("expected error for invalid status")
	}
	if len(repo.updated) != 0 {
		t.Error("invalid review reached the repository")
	}
}

func TestReviewMissingHighlight(t *testing.T) {
	svc := newService(newFakeRepo(), &fixedGenerator{response: "unused"})

	if _, err := svc.Review(context.Background(), "nope", models.ReviewRejected, ""); !errors.IsNotFound(err) {
		t.Errorf("got %v, want not found", err)
	}
}

func TestRegenerate(t *testing.T) {
	original := testHighlight()
	now := time.Now()
	original.ReviewStatus = models.ReviewRejected
	original.ReviewComment = "too vague"
	original.ReviewedAt = &now

	repo := newFakeRepo(original)
	svc := newService(repo, &fixedGenerator{response: "[00:10 -> 00:42] Sharper content."})

	h, err := svc.Regenerate(context.Background(), "h1", "")
	if err != nil {
		t.Fatalf("Regenerate: %v", err)
	}

	if h.Content != "[00:10 -> 00:42] Sharper content." {
		t.Errorf("content = %q", h.Content)
	}
	if h.SourcePrompt != original.SourcePrompt {
		t.Error("source prompt changed across regeneration")
	}
	if h.SystemRole != "stored role" {
		t.Errorf("role = %q, want the stored role", h.SystemRole)
	}
	// Regeneration resets the review cycle.
	if h.ReviewStatus != models.ReviewPending {
		t.Errorf("status = %q, want pending", h.ReviewStatus)
	}
	if h.ReviewedAt != nil || h.ReviewComment != "" {
		t.Errorf("review fields not cleared: %+v", h)
	}
}

func TestRegenerateCustomRole(t *testing.T) {
	repo := newFakeRepo(testHighlight())
	svc := newService(repo, &fixedGenerator{response: "new content"})

	h, err := svc.Regenerate(context.Background(), "h1", "different role")
	if err != nil {
		t.Fatalf("Regenerate: %v", err)
	}
	if h.SystemRole != "different role" {
		t.Errorf("role = %q", h.SystemRole)
	}
}

func TestRegenerateGenerationFailure(t *testing.T) {
	original := testHighlight()
	repo := newFakeRepo(original)
	svc := newService(repo, &fixedGenerator{err: fmt.Errorf("generation refused")})

	if _, err := svc.Regenerate(context.Background(), "h1", ""); err == nil {
		t.Fatal("expected error")
	}

	// The stored highlight must be untouched on failure.
	h, _ := repo.Find(context.Background(), "h1")
	if h.Content != original.Content {
		t.Errorf("content changed despite failure: %q", h.Content)
	}
}
