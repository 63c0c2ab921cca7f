package middleware

import (
	"cmp"
	"errors"

	"pitchmatch/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// AppError is what handlers return for any non-2xx outcome. Cause is logged
// but never rendered.
type AppError struct {
	StatusCode int
	Message    string
	Data       any
	Cause      error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func NewAppError(statusCode int, message string, data any, cause error) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Data: data, Cause: cause}
}

type ErrorMiddleware struct {
	logger *zap.Logger
}

func NewErrorMiddleware(logger *zap.Logger) *ErrorMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorMiddleware{logger: logger}
}

func (m *ErrorMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				m.logger.Error("panic recovered",
					zap.Any("panic", r),
					zap.String("method", c.Method()),
					zap.String("path", c.Path()),
				)
				err = response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError, nil)
			}
		}()

		err = c.Next()
		if err == nil {
			return nil
		}

		status, msg, data := normalizeError(err)
		if status >= fiber.StatusInternalServerError {
			m.logger.Error("request failed",
				zap.Int("status", status),
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}
		return response.Error(c, status, msg, data)
	}
}

// normalizeError turns err into the rendered status, message and data.
// Server errors keep an explicit AppError message but drop data and cause.
// Anything else at 5xx is reported as a generic internal error.
func normalizeError(err error) (int, string, any) {
	var (
		appErr   *AppError
		fiberErr *fiber.Error
	)
	switch {
	case errors.As(err, &appErr) && appErr.StatusCode >= 400 && appErr.StatusCode <= 599:
		msg := cmp.Or(appErr.Message, response.DefaultMessage(appErr.StatusCode))
		if appErr.StatusCode >= fiber.StatusInternalServerError {
			return appErr.StatusCode, msg, nil
		}
		return appErr.StatusCode, msg, appErr.Data

	case errors.As(err, &fiberErr) && fiberErr.Code >= 400 && fiberErr.Code < fiber.StatusInternalServerError:
		return fiberErr.Code, cmp.Or(fiberErr.Message, response.DefaultMessage(fiberErr.Code)), nil

	default:
		return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
	}
}
