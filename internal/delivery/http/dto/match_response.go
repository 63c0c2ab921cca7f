package dto

import (
	"time"

	"pitchmatch/internal/domain/match"
	"pitchmatch/internal/usecase"

	"github.com/google/uuid"
)

type CalculateMatchesRequest struct {
	StartupID string `json:"startup_id"`
}

type UpdateMatchStatusRequest struct {
	Status string `json:"status"`
}

type MatchResponse struct {
	ID              uuid.UUID `json:"id"`
	StartupID       uuid.UUID `json:"startup_id"`
	InvestorID      uuid.UUID `json:"investor_id"`
	MatchPercentage int       `json:"match_percentage"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// MatchBoardItem is a match as shown on one side's dashboard.
type MatchBoardItem struct {
	MatchResponse
	CounterpartName *string `json:"counterpart_name"`
}

type CalculateMatchesResponse struct {
	Success        bool            `json:"success"`
	MatchesCreated int             `json:"matches_created"`
	Matches        []MatchResponse `json:"matches"`
}

type ScoreBreakdownResponse struct {
	Sector     float64 `json:"sector"`
	Stage      float64 `json:"stage"`
	Geography  float64 `json:"geography"`
	Readiness  float64 `json:"readiness"`
	TicketSize float64 `json:"ticket_size"`
}

type MatchPreviewResponse struct {
	StartupID  uuid.UUID              `json:"startup_id"`
	InvestorID uuid.UUID              `json:"investor_id"`
	MatchScore int                    `json:"match_score"`
	Breakdown  ScoreBreakdownResponse `json:"breakdown"`
}

func NewMatchResponse(m match.Match) MatchResponse {
	return MatchResponse{
		ID:              m.ID,
		StartupID:       m.StartupID,
		InvestorID:      m.InvestorID,
		MatchPercentage: m.MatchPercentage,
		Status:          string(m.Status),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func NewCalculateMatchesResponse(res usecase.RecalculationResult) CalculateMatchesResponse {
	out := CalculateMatchesResponse{
		Success:        true,
		MatchesCreated: res.MatchesCreated,
		Matches:        make([]MatchResponse, 0, len(res.Matches)),
	}
	for _, m := range res.Matches {
		out.Matches = append(out.Matches, NewMatchResponse(m))
	}
	return out
}

func NewMatchBoard(views []match.View) []MatchBoardItem {
	out := make([]MatchBoardItem, 0, len(views))
	for _, v := range views {
		out = append(out, MatchBoardItem{MatchResponse: NewMatchResponse(v.Match), CounterpartName: v.CounterpartName})
	}
	return out
}

func NewMatchPreviewResponse(p usecase.Preview) MatchPreviewResponse {
	b := p.Result.Breakdown
	return MatchPreviewResponse{
		StartupID:  p.StartupID,
		InvestorID: p.InvestorID,
		MatchScore: p.Result.MatchScore,
		Breakdown: ScoreBreakdownResponse{
			Sector:     b.Sector,
			Stage:      b.Stage,
			Geography:  b.Geography,
			Readiness:  b.Readiness,
			TicketSize: b.TicketSize,
		},
	}
}
