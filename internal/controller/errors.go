package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/benbeisheim/variantchess-backend/internal/engine"
	"github.com/benbeisheim/variantchess-backend/internal/model"
	"github.com/benbeisheim/variantchess-backend/internal/notation"
	"github.com/benbeisheim/variantchess-backend/internal/service"
)

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrPlayerNotInGame),
		errors.Is(err, model.ErrNotAuthorized),
		errors.Is(err, engine.ErrNotYourTurn):
		return fiber.StatusForbidden
	case errors.Is(err, engine.ErrIllegalMove),
		errors.Is(err, engine.ErrEmptySquare):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, engine.ErrCannotUndo),
		errors.Is(err, model.ErrGameFull),
		errors.Is(err, model.ErrAlreadyQueued),
		errors.Is(err, model.ErrConnectionExists),
		errors.Is(err, service.ErrGameExists):
		return fiber.StatusConflict
	case errors.Is(err, notation.ErrBadSquare),
		errors.Is(err, engine.ErrInvalidSteps),
		errors.Is(err, engine.ErrUnknownMode),
		errors.Is(err, engine.ErrOutOfBounds):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

func errorResponse(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}
