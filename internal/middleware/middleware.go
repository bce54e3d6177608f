package middleware

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/wichananm65/online-supermarket/internal/metrics"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "requestid"
)

// RequestID reuses the caller's X-Request-ID or mints a new one.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(RequestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals(requestIDKey, rid)
		c.Set(RequestIDHeader, rid)
		return c.Next()
	}
}

func GetRequestID(c *fiber.Ctx) string {
	if rid, ok := c.Locals(requestIDKey).(string); ok {
		return rid
	}
	return ""
}

// Logging writes one access log line per request and records its latency.
func Logging(logger zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// let the error handler pick the status before we read it
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		dur := time.Since(start)
		status := c.Response().StatusCode()

		route := c.Route().Path
		metrics.RecordAPIRequest(c.Method(), route, strconv.Itoa(status), dur)
		logger.Info().
			Str("rid", GetRequestID(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("dur", dur).
			Int("size", len(c.Response().Body())).
			Msg("http")
		return nil
	}
}

// ErrorHandler renders errors as {"message": ...} bodies.
func ErrorHandler(logger zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var ferr *fiber.Error
		if errors.As(err, &ferr) {
			code = ferr.Code
		}
		if code >= fiber.StatusInternalServerError {
			logger.Error().Err(err).Str("rid", GetRequestID(c)).Str("path", c.Path()).Msg("request failed")
		}
		msg := err.Error()
		if code >= fiber.StatusInternalServerError {
			msg = "internal server error"
		}
		return c.Status(code).JSON(fiber.Map{"message": msg})
	}
}
