package handler

import (
	"errors"
	"strings"

	"pitchmatch/internal/delivery/http/middleware"
	"pitchmatch/internal/pkg/response"
	"pitchmatch/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// mapUsecaseError converts usecase sentinels into the AppError rendered by
// the error middleware.
func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrValidation):
		return middleware.NewAppError(fiber.StatusBadRequest, validationMessage(err), nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrStartupNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Startup profile not found", nil, err)
	case errors.Is(err, usecase.ErrInvestorNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Investor profile not found", nil, err)
	case errors.Is(err, usecase.ErrNoInvestors):
		return middleware.NewAppError(fiber.StatusNotFound, "No investor profiles found", nil, err)
	case errors.Is(err, usecase.ErrMatchNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Match not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidStatusTransition):
		return middleware.NewAppError(fiber.StatusConflict, "Invalid match status transition", nil, err)
	case errors.Is(err, usecase.ErrConfiguration):
		return middleware.NewAppError(fiber.StatusInternalServerError, "Server configuration error", nil, err)
	case errors.Is(err, usecase.ErrAnalysisFailed):
		return middleware.NewAppError(fiber.StatusInternalServerError, "Deck analysis failed", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

// validationMessage strips the sentinel prefix so callers see only the
// field-level reason.
func validationMessage(err error) string {
	msg := strings.TrimPrefix(err.Error(), usecase.ErrValidation.Error()+": ")
	if msg == "" || msg == usecase.ErrValidation.Error() {
		return "Bad request"
	}
	return msg
}

func badRequest(msg string, cause error) error {
	return middleware.NewAppError(fiber.StatusBadRequest, msg, nil, cause)
}

func unauthorized() error {
	return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
}
