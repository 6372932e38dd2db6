package handlers

import (
	stderrors "errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"yt-highlights/errors"
)

// ErrorHandler is the app-wide fiber error handler. Application errors map
// to their own status code and message; anything else is a 500 with a
// generic body so internals never leak to callers.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		logrus.WithFields(logrus.Fields{
			"op":   appErr.Op,
			"kind": appErr.Kind,
			"path": c.Path(),
		}).WithError(err).Warn("Request failed")
		return c.Status(appErr.Code).JSON(fiber.Map{
			"error": appErr.Message,
		})
	}

	var fiberErr *fiber.Error
	if stderrors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"error": fiberErr.Message,
		})
	}

	logrus.WithField("path", c.Path()).WithError(err).Error("Unhandled error")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Internal server error",
	})
}

// HealthCheck reports process liveness.
func HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}
