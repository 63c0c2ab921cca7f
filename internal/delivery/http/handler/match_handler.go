package handler

import (
	"strings"

	"pitchmatch/internal/delivery/http/dto"
	"pitchmatch/internal/delivery/http/middleware"
	"pitchmatch/internal/domain/match"
	"pitchmatch/internal/pkg/jwt"
	"pitchmatch/internal/pkg/response"
	"pitchmatch/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type MatchHandler struct {
	matching usecase.MatchingUsecase
	board    usecase.MatchBoardUsecase
}

func NewMatchHandler(matching usecase.MatchingUsecase, board usecase.MatchBoardUsecase) *MatchHandler {
	return &MatchHandler{matching: matching, board: board}
}

// RegisterRoutes expects r to be behind the auth middleware.
func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/calculate", h.Calculate)
	r.Get("/preview", middleware.RequireRole(jwt.RoleStartup), h.Preview)
	r.Patch("/:match_id/status", h.UpdateStatus)
}

// Calculate rebuilds the matches of one startup. Startups may only
// recalculate themselves; admins may recalculate anyone.
func (h *MatchHandler) Calculate(c fiber.Ctx) error {
	userID, role, ok := middleware.Caller(c)
	if !ok {
		return unauthorized()
	}

	var req dto.CalculateMatchesRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request body", err)
	}

	raw := strings.TrimSpace(req.StartupID)
	if raw == "" {
		return badRequest("startup_id is required", nil)
	}
	startupID, err := uuid.Parse(raw)
	if err != nil {
		return badRequest("startup_id must be a UUID", err)
	}

	if role != jwt.RoleAdmin && startupID != userID {
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, nil)
	}

	res, err := h.matching.Recalculate(c.Context(), startupID)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Raw(c, fiber.StatusOK, dto.NewCalculateMatchesResponse(res))
}

func (h *MatchHandler) Preview(c fiber.Ctx) error {
	userID, _, ok := middleware.Caller(c)
	if !ok {
		return unauthorized()
	}

	raw := strings.TrimSpace(c.Query("investor_id"))
	if raw == "" {
		return badRequest("investor_id is required", nil)
	}
	investorID, err := uuid.Parse(raw)
	if err != nil {
		return badRequest("investor_id must be a UUID", err)
	}

	p, err := h.matching.Preview(c.Context(), userID, investorID)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchPreviewResponse(p))
}

func (h *MatchHandler) UpdateStatus(c fiber.Ctx) error {
	userID, _, ok := middleware.Caller(c)
	if !ok {
		return unauthorized()
	}

	matchID, err := uuid.Parse(c.Params("match_id"))
	if err != nil {
		return badRequest("match_id must be a UUID", err)
	}

	var req dto.UpdateMatchStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request body", err)
	}

	m, err := h.board.UpdateStatus(c.Context(), userID, matchID, match.Status(req.Status))
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchResponse(m))
}
