package handlers

import (
	"github.com/gofiber/fiber/v2"

	"yt-highlights/errors"
	"yt-highlights/models"
	"yt-highlights/services/highlight"
)

type HighlightHandler struct {
	service highlight.Service
}

func NewHighlightHandler(service highlight.Service) *HighlightHandler {
	return &HighlightHandler{service: service}
}

// ListByVideo returns every highlight for a video in generation order.
func (h *HighlightHandler) ListByVideo(c *fiber.Ctx) error {
	highlights, err := h.service.ListByVideo(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}

	responses := make([]*models.HighlightResponse, 0, len(highlights))
	for _, hl := range highlights {
		responses = append(responses, models.NewHighlightResponse(hl))
	}
	return c.JSON(responses)
}

type reviewRequest struct {
	ReviewStatus  models.ReviewStatus `json:"review_status"`
	ReviewComment string              `json:"review_comment"`
}

// Review records an approve/reject decision on a highlight.
func (h *HighlightHandler) Review(c *fiber.Ctx) error {
	const op = "HighlightHandler.Review"

	var req reviewRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.InvalidInput(op, err, "Invalid request body")
	}

	hl, err := h.service.Review(c.Context(), c.Params("id"), req.ReviewStatus, req.ReviewComment)
	if err != nil {
		return err
	}
	return c.JSON(models.NewHighlightResponse(hl))
}

type regenerateRequest struct {
	SystemRole string `json:"system_role"`
}

// Regenerate replays generation for one highlight from its stored prompt.
// The body is optional; an empty system role keeps the original one.
func (h *HighlightHandler) Regenerate(c *fiber.Ctx) error {
	var req regenerateRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return errors.InvalidInput("HighlightHandler.Regenerate", err, "Invalid request body")
		}
	}

	hl, err := h.service.Regenerate(c.Context(), c.Params("id"), req.SystemRole)
	if err != nil {
		return err
	}
	return c.JSON(models.NewHighlightResponse(hl))
}
