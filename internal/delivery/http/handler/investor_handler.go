package handler

import (
	"pitchmatch/internal/delivery/http/dto"
	"pitchmatch/internal/delivery/http/middleware"
	"pitchmatch/internal/pkg/response"
	"pitchmatch/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// InvestorHandler serves the authenticated investor's own resources.
type InvestorHandler struct {
	profiles usecase.ProfileUsecase
	board    usecase.MatchBoardUsecase
	analysis usecase.DeckAnalysisUsecase
}

func NewInvestorHandler(profiles usecase.ProfileUsecase, board usecase.MatchBoardUsecase, analysis usecase.DeckAnalysisUsecase) *InvestorHandler {
	return &InvestorHandler{profiles: profiles, board: board, analysis: analysis}
}

func (h *InvestorHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	me := r.Group("/me")
	me.Get("/profile", h.GetProfile)
	me.Put("/profile", h.SaveProfile)
	me.Get("/matches", h.ListMatches)
	me.Post("/analysis", h.AnalyzeDeck)
}

func (h *InvestorHandler) GetProfile(c fiber.Ctx) error {
	userID, _, ok := middleware.Caller(c)
	if !ok {
		return unauthorized()
	}

	p, err := h.profiles.GetInvestorProfile(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewInvestorProfileResponse(p))
}

func (h *InvestorHandler) SaveProfile(c fiber.Ctx) error {
	userID, _, ok := middleware.Caller(c)
	if !ok {
		return unauthorized()
	}

	var req dto.InvestorProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request body", err)
	}

	p, err := h.profiles.SaveInvestorProfile(c.Context(), userID, req.Input())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewInvestorProfileResponse(p))
}

func (h *InvestorHandler) ListMatches(c fiber.Ctx) error {
	userID, _, ok := middleware.Caller(c)
	if !ok {
		return unauthorized()
	}

	f, err := parseBoardFilter(c)
	if err != nil {
		return err
	}

	views, err := h.board.ListForInvestor(c.Context(), userID, f)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchBoard(views))
}

func (h *InvestorHandler) AnalyzeDeck(c fiber.Ctx) error {
	userID, _, ok := middleware.Caller(c)
	if !ok {
		return unauthorized()
	}

	var req dto.DeckAnalysisRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request body", err)
	}

	p, err := h.analysis.AnalyzeInvestorDeck(c.Context(), userID, req.Input())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewInvestorProfileResponse(p))
}
