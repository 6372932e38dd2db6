package handlers

import (
	"github.com/gofiber/fiber/v2"

	"yt-highlights/errors"
	"yt-highlights/models"
	"yt-highlights/services/video"
)

type VideoHandler struct {
	service video.Service
}

func NewVideoHandler(service video.Service) *VideoHandler {
	return &VideoHandler{service: service}
}

type submitVideoRequest struct {
	URL string `json:"url"`
}

// Submit accepts a video URL or bare ID and kicks off background
// processing. Responds immediately with the video's current state.
func (h *VideoHandler) Submit(c *fiber.Ctx) error {
	const op = "VideoHandler.Submit"

	var req submitVideoRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.InvalidInput(op, err, "Invalid request body")
	}
	if req.URL == "" {
		return errors.InvalidInput(op, nil, "URL is required")
	}

	v, err := h.service.Submit(c.Context(), req.URL)
	if err != nil {
		return err
	}

	status := fiber.StatusOK
	if v.IsProcessing() {
		status = fiber.StatusAccepted
	}
	return c.Status(status).JSON(models.NewVideoResponse(v))
}

func (h *VideoHandler) Get(c *fiber.Ctx) error {
	v, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(models.NewVideoResponse(v))
}

// GetTranscript returns the raw and processed transcript text for a video.
func (h *VideoHandler) GetTranscript(c *fiber.Ctx) error {
	t, err := h.service.GetTranscript(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"video_id":  t.VideoID,
		"raw":       t.Raw,
		"processed": t.Processed,
	})
}
