package server

import (
	"log/slog"
	"strconv"

	"aurasocial/internal/middleware"
	"aurasocial/internal/models"
	"aurasocial/internal/service"

	"github.com/gofiber/fiber/v2"
)

// parsePagination extracts limit and offset query parameters. Defaults and
// clamping are applied by service.Page.
func parsePagination(c *fiber.Ctx) service.Page {
	return service.Page{
		Limit:  c.QueryInt("limit", service.DefaultLimit),
		Offset: c.QueryInt("offset", 0),
	}.Normalize()
}

// parseInt64Param extracts a route parameter as a positive integer.
func parseInt64Param(c *fiber.Ctx, param string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(param), 10, 64)
	if err != nil || id <= 0 {
		return 0, models.NewValidationError("Invalid " + param)
	}
	return id, nil
}

// parseUintParam extracts a route parameter as a positive surrogate id.
func parseUintParam(c *fiber.Ctx, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(param), 10, 64)
	if err != nil || id == 0 {
		return 0, models.NewValidationError("Invalid " + param)
	}
	return uint(id), nil
}

func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return models.NewValidationError("Invalid request body")
	}
	return nil
}

// fail writes err as a JSON error. Validation, conflict and not-found errors
// keep their own message; anything else is reported with the action-specific
// message so storage details never reach the client.
func fail(c *fiber.Ctx, err error, action string) error {
	status := models.StatusFor(err)
	if status != fiber.StatusInternalServerError {
		return models.RespondWithError(c, status, err)
	}

	middleware.Logger.ErrorContext(c.UserContext(), action, slog.String("error", err.Error()))
	return models.RespondWithError(c, status, &models.AppError{
		Code:    models.CodeInternal,
		Message: action,
		Err:     err,
	})
}

func success(c *fiber.Ctx, extra fiber.Map) error {
	body := fiber.Map{"success": true}
	for k, v := range extra {
		body[k] = v
	}
	return c.JSON(body)
}
