package handler

import (
	"pitchmatch/internal/delivery/http/dto"
	"pitchmatch/internal/delivery/http/middleware"
	"pitchmatch/internal/pkg/response"
	"pitchmatch/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// StartupHandler serves the authenticated startup's own resources.
type StartupHandler struct {
	profiles usecase.ProfileUsecase
	board    usecase.MatchBoardUsecase
	analysis usecase.DeckAnalysisUsecase
}

func NewStartupHandler(profiles usecase.ProfileUsecase, board usecase.MatchBoardUsecase, analysis usecase.DeckAnalysisUsecase) *StartupHandler {
	return &StartupHandler{profiles: profiles, board: board, analysis: analysis}
}

func (h *StartupHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	me := r.Group("/me")
	me.Get("/profile", h.GetProfile)
	me.Put("/profile", h.SaveProfile)
	me.Get("/matches", h.ListMatches)
	me.Post("/analysis", h.AnalyzeDeck)
}

func (h *StartupHandler) GetProfile(c fiber.Ctx) error {
	userID, _, ok := middleware.Caller(c)
	if !ok {
		return unauthorized()
	}

	p, err := h.profiles.GetStartupProfile(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewStartupProfileResponse(p))
}

func (h *StartupHandler) SaveProfile(c fiber.Ctx) error {
	userID, _, ok := middleware.Caller(c)
	if !ok {
		return unauthorized()
	}

	var req dto.StartupProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request body", err)
	}

	p, err := h.profiles.SaveStartupProfile(c.Context(), userID, req.Input())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewStartupProfileResponse(p))
}

func (h *StartupHandler) ListMatches(c fiber.Ctx) error {
	userID, _, ok := middleware.Caller(c)
	if !ok {
		return unauthorized()
	}

	f, err := parseBoardFilter(c)
	if err != nil {
		return err
	}

	views, err := h.board.ListForStartup(c.Context(), userID, f)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchBoard(views))
}

func (h *StartupHandler) AnalyzeDeck(c fiber.Ctx) error {
	userID, _, ok := middleware.Caller(c)
	if !ok {
		return unauthorized()
	}

	var req dto.DeckAnalysisRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request body", err)
	}

	p, err := h.analysis.AnalyzeStartupDeck(c.Context(), userID, req.Input())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewStartupProfileResponse(p))
}
