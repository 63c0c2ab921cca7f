package handler

import (
	"strconv"
	"strings"

	"pitchmatch/internal/domain/match"

	"github.com/gofiber/fiber/v3"
)

// parseBoardFilter reads ?status=&min_score=&limit= from a board request.
func parseBoardFilter(c fiber.Ctx) (match.Filter, error) {
	var f match.Filter

	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		st, ok := match.ParseStatus(raw)
		if !ok {
			return match.Filter{}, badRequest("status must be one of pending, connected, rejected", nil)
		}
		f.Status = &st
	}

	if raw := strings.TrimSpace(c.Query("min_score")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > 100 {
			return match.Filter{}, badRequest("min_score must be an integer between 0 and 100", err)
		}
		f.MinScore = n
	}

	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return match.Filter{}, badRequest("limit must be a positive integer", err)
		}
		f.Limit = n
	}

	return f.Normalized(), nil
}
