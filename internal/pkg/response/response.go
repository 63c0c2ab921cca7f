package response

import "github.com/gofiber/fiber/v3"

// SemanticResponse is the envelope of every profile, board and error body.
type SemanticResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

const (
	MessageOK                  = "ok"
	MessageCreated             = "created"
	MessageBadRequest          = "bad request"
	MessageUnauthorized        = "unauthorized"
	MessageForbidden           = "forbidden"
	MessageNotFound            = "not found"
	MessageConflict            = "conflict"
	MessageUnprocessableEntity = "unprocessable entity"
	MessageInternalServerError = "internal server error"
	MessageServiceUnavailable  = "service unavailable"
	MessageError               = "error"
)

var defaultMessages = map[int]string{
	fiber.StatusOK:                  MessageOK,
	fiber.StatusCreated:             MessageCreated,
	fiber.StatusBadRequest:          MessageBadRequest,
	fiber.StatusUnauthorized:        MessageUnauthorized,
	fiber.StatusForbidden:           MessageForbidden,
	fiber.StatusNotFound:            MessageNotFound,
	fiber.StatusConflict:            MessageConflict,
	fiber.StatusUnprocessableEntity: MessageUnprocessableEntity,
	fiber.StatusServiceUnavailable:  MessageServiceUnavailable,
}

func Success(c fiber.Ctx, status int, message string, data any) error {
	return envelope(c, status, message, data)
}

func Error(c fiber.Ctx, status int, message string, data any) error {
	return envelope(c, status, message, data)
}

// Raw writes body as the top-level JSON document, for endpoints whose
// callers expect fields such as success at the root.
func Raw(c fiber.Ctx, status int, body any) error {
	return c.Status(validStatus(status)).JSON(body)
}

// DefaultMessage is the message used when a response carries none.
func DefaultMessage(status int) string {
	if msg, ok := defaultMessages[status]; ok {
		return msg
	}
	if status >= fiber.StatusInternalServerError {
		return MessageInternalServerError
	}
	return MessageError
}

func envelope(c fiber.Ctx, status int, message string, data any) error {
	status = validStatus(status)
	if message == "" {
		message = DefaultMessage(status)
	}
	return c.Status(status).JSON(SemanticResponse{Status: status, Message: message, Data: data})
}

func validStatus(status int) int {
	if status < 100 || status > 599 {
		return fiber.StatusInternalServerError
	}
	return status
}
