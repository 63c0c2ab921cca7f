package dto

import (
	"time"

	"pitchmatch/internal/domain/investor"
	"pitchmatch/internal/domain/startup"
	"pitchmatch/internal/usecase"

	"github.com/google/uuid"
)

type StartupProfileRequest struct {
	CompanyName    *string  `json:"company_name"`
	Website        *string  `json:"website"`
	Description    *string  `json:"description"`
	Industry       *string  `json:"industry"`
	Stage          *string  `json:"stage"`
	Headquarters   *string  `json:"headquarters"`
	FundingAsk     *string  `json:"funding_ask"`
	ReadinessScore *float64 `json:"readiness_score"`
}

func (r StartupProfileRequest) Input() usecase.StartupProfileInput {
	return usecase.StartupProfileInput{
		CompanyName:    r.CompanyName,
		Website:        r.Website,
		Description:    r.Description,
		Industry:       r.Industry,
		Stage:          r.Stage,
		Headquarters:   r.Headquarters,
		FundingAsk:     r.FundingAsk,
		ReadinessScore: r.ReadinessScore,
	}
}

type InvestorProfileRequest struct {
	OrganizationName *string  `json:"organization_name"`
	Website          *string  `json:"website"`
	Description      *string  `json:"description"`
	FocusSectors     []string `json:"focus_sectors"`
	FocusStages      []string `json:"focus_stages"`
	GeographyFocus   []string `json:"geography_focus"`
	TicketSizeMin    *float64 `json:"ticket_size_min"`
	TicketSizeMax    *float64 `json:"ticket_size_max"`
}

func (r InvestorProfileRequest) Input() usecase.InvestorProfileInput {
	return usecase.InvestorProfileInput{
		OrganizationName: r.OrganizationName,
		Website:          r.Website,
		Description:      r.Description,
		FocusSectors:     r.FocusSectors,
		FocusStages:      r.FocusStages,
		GeographyFocus:   r.GeographyFocus,
		TicketSizeMin:    r.TicketSizeMin,
		TicketSizeMax:    r.TicketSizeMax,
	}
}

// DeckAnalysisRequest carries deck text that was already extracted from the
// uploaded file.
type DeckAnalysisRequest struct {
	FileName string `json:"file_name"`
	Content  string `json:"content"`
}

func (r DeckAnalysisRequest) Input() usecase.DeckInput {
	return usecase.DeckInput{FileName: r.FileName, Content: r.Content}
}

type StartupProfileResponse struct {
	ID             uuid.UUID  `json:"id"`
	UserID         uuid.UUID  `json:"user_id"`
	CompanyName    *string    `json:"company_name"`
	Website        *string    `json:"website"`
	Description    *string    `json:"description"`
	Industry       *string    `json:"industry"`
	Stage          *string    `json:"stage"`
	Headquarters   *string    `json:"headquarters"`
	FundingAsk     *string    `json:"funding_ask"`
	ReadinessScore *float64   `json:"readiness_score"`
	AIAnalyzedAt   *time.Time `json:"ai_analyzed_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func NewStartupProfileResponse(p startup.Profile) StartupProfileResponse {
	return StartupProfileResponse{
		ID:             p.ID,
		UserID:         p.UserID,
		CompanyName:    p.CompanyName,
		Website:        p.Website,
		Description:    p.Description,
		Industry:       p.Industry,
		Stage:          p.Stage,
		Headquarters:   p.Headquarters,
		FundingAsk:     p.FundingAsk,
		ReadinessScore: p.ReadinessScore,
		AIAnalyzedAt:   p.AIAnalyzedAt,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

type InvestorProfileResponse struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"user_id"`
	OrganizationName *string   `json:"organization_name"`
	Website          *string   `json:"website"`
	Description      *string   `json:"description"`
	FocusSectors     []string  `json:"focus_sectors"`
	FocusStages      []string  `json:"focus_stages"`
	GeographyFocus   []string  `json:"geography_focus"`
	TicketSizeMin    *float64  `json:"ticket_size_min"`
	TicketSizeMax    *float64  `json:"ticket_size_max"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func NewInvestorProfileResponse(p investor.Profile) InvestorProfileResponse {
	return InvestorProfileResponse{
		ID:               p.ID,
		UserID:           p.UserID,
		OrganizationName: p.OrganizationName,
		Website:          p.Website,
		Description:      p.Description,
		FocusSectors:     nonNil(p.FocusSectors),
		FocusStages:      nonNil(p.FocusStages),
		GeographyFocus:   nonNil(p.GeographyFocus),
		TicketSizeMin:    p.TicketSizeMin,
		TicketSizeMax:    p.TicketSizeMax,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
