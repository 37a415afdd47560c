package handlers

import (
	"errors"
	"fmt"
	"strings"

	"shopapi/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"
)

// summaryLines is how many lines of an internal error are kept.
const summaryLines = 5

// responder writes error responses shared by every handler.
type responder struct {
	logger zerolog.Logger
	// exposeDetails returns the error summary to the client instead of a
	// redacted body.
	exposeDetails bool
}

var statusByCode = map[string]int{
	models.ErrCodeInvalidBody:       fiber.StatusBadRequest,
	models.ErrCodeValidationFailed:  fiber.StatusBadRequest,
	models.ErrCodeProductIDRequired: fiber.StatusBadRequest,
	models.ErrCodeProductIDTaken:    fiber.StatusBadRequest,
	models.ErrCodeProductIDConflict: fiber.StatusConflict,
	models.ErrCodeUserConflict:      fiber.StatusConflict,
	models.ErrCodeProductNotFound:   fiber.StatusNotFound,
	models.ErrCodeUnauthorized:      fiber.StatusUnauthorized,
}

// fail maps err onto an HTTP response. Domain errors become 4xx responses,
// anything else is an internal error.
func (r responder) fail(c *fiber.Ctx, op string, err error) error {
	var domainErr *models.DomainError
	if errors.As(err, &domainErr) {
		status, ok := statusByCode[domainErr.Code]
		if !ok {
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(models.ErrorResponse{
			Error:   domainErr.Code,
			Message: domainErr.Message,
			Errors:  domainErr.Fields,
		})
	}
	return r.internal(c, op, err)
}

func (r responder) badBody(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
		Error:   models.ErrCodeInvalidBody,
		Message: fmt.Sprintf("Invalid request body: %v", err),
	})
}

// internal logs the summarised error and answers 500.
func (r responder) internal(c *fiber.Ctx, op string, err error) error {
	summary := Summarize(err, summaryLines)
	reqID := requestID(c)
	r.logger.Error().
		Str("op", op).
		Str("request_id", reqID).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("Error in " + op + ":\n" + summary)

	if r.exposeDetails {
		return c.Status(fiber.StatusInternalServerError).SendString("Internal Error: \n" + summary)
	}
	return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
		Error:         models.ErrCodeInternalError,
		Message:       "Internal Error",
		CorrelationID: reqID,
	})
}

// Summarize returns the first maxLines non-empty lines of err's text.
func Summarize(err error, maxLines int) string {
	if err == nil {
		return ""
	}
	fields := strings.FieldsFunc(fmt.Sprintf("%+v", err), func(r rune) bool {
		return r == '\r' || r == '\n'
	})
	lines := make([]string, 0, maxLines)
	for _, line := range fields {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == maxLines {
			break
		}
	}
	return strings.Join(lines, "\n")
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok {
		return id
	}
	return ""
}
