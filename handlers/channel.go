package handlers

import (
	"github.com/gofiber/fiber/v2"

	"yt-highlights/errors"
	"yt-highlights/models"
	"yt-highlights/services/video"
)

type ChannelHandler struct {
	service video.Service
}

func NewChannelHandler(service video.Service) *ChannelHandler {
	return &ChannelHandler{service: service}
}

type registerChannelRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

func (h *ChannelHandler) Register(c *fiber.Ctx) error {
	const op = "ChannelHandler.Register"

	var req registerChannelRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.InvalidInput(op, err, "Invalid request body")
	}

	channel, err := h.service.RegisterChannel(c.Context(), req.ID, req.Name, req.URL)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(channel)
}

func (h *ChannelHandler) List(c *fiber.Ctx) error {
	offset := c.QueryInt("offset", 0)
	limit := c.QueryInt("limit", 0)

	channels, err := h.service.ListChannels(c.Context(), offset, limit)
	if err != nil {
		return err
	}
	return c.JSON(channels)
}

// ListVideos returns the known videos for one channel.
func (h *ChannelHandler) ListVideos(c *fiber.Ctx) error {
	videos, err := h.service.ListChannelVideos(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}

	responses := make([]*models.VideoResponse, 0, len(videos))
	for _, v := range videos {
		responses = append(responses, models.NewVideoResponse(v))
	}
	return c.JSON(responses)
}
