package usecase

import (
	"context"
	"errors"
	"math"
	"strings"

	"pitchmatch/internal/domain/investor"
	"pitchmatch/internal/domain/startup"
	"pitchmatch/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type StartupProfileInput struct {
	CompanyName    *string
	Website        *string
	Description    *string
	Industry       *string
	Stage          *string
	Headquarters   *string
	FundingAsk     *string
	ReadinessScore *float64
}

type InvestorProfileInput struct {
	OrganizationName *string
	Website          *string
	Description      *string
	FocusSectors     []string
	FocusStages      []string
	GeographyFocus   []string
	TicketSizeMin    *float64
	TicketSizeMax    *float64
}

type ProfileUsecase interface {
	GetStartupProfile(ctx context.Context, userID uuid.UUID) (startup.Profile, error)
	SaveStartupProfile(ctx context.Context, userID uuid.UUID, in StartupProfileInput) (startup.Profile, error)
	GetInvestorProfile(ctx context.Context, userID uuid.UUID) (investor.Profile, error)
	SaveInvestorProfile(ctx context.Context, userID uuid.UUID, in InvestorProfileInput) (investor.Profile, error)
}

type Profile struct {
	startups     repository.StartupProfileRepository
	investors    repository.InvestorProfileRepository
	recalculator Recalculator
	logger       *zap.Logger
}

func NewProfileUsecase(startups repository.StartupProfileRepository, investors repository.InvestorProfileRepository, recalculator Recalculator, logger *zap.Logger) *Profile {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Profile{startups: startups, investors: investors, recalculator: recalculator, logger: logger}
}

func (u *Profile) GetStartupProfile(ctx context.Context, userID uuid.UUID) (startup.Profile, error) {
	if userID == uuid.Nil {
		return startup.Profile{}, ErrUnauthorized
	}
	p, err := u.startups.FindByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return startup.Profile{}, ErrStartupNotFound
	}
	if err != nil {
		return startup.Profile{}, persistenceError("load startup", err)
	}
	return p, nil
}

// SaveStartupProfile replaces the editable fields of the caller's profile and
// then refreshes its matches. A failed refresh is logged only; the profile
// write already succeeded.
func (u *Profile) SaveStartupProfile(ctx context.Context, userID uuid.UUID, in StartupProfileInput) (startup.Profile, error) {
	if userID == uuid.Nil {
		return startup.Profile{}, ErrUnauthorized
	}
	if r := in.ReadinessScore; r != nil && (math.IsNaN(*r) || *r < 0 || *r > 100) {
		return startup.Profile{}, validationError("readiness_score must be between 0 and 100")
	}

	p, err := u.startups.FindByUserID(ctx, userID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		p = startup.Profile{UserID: userID}
	case err != nil:
		return startup.Profile{}, persistenceError("load startup", err)
	}

	p.CompanyName = cleanString(in.CompanyName)
	p.Website = cleanString(in.Website)
	p.Description = cleanString(in.Description)
	p.Industry = cleanString(in.Industry)
	p.Stage = cleanString(in.Stage)
	p.Headquarters = cleanString(in.Headquarters)
	p.FundingAsk = cleanString(in.FundingAsk)
	p.ReadinessScore = in.ReadinessScore

	saved, err := u.startups.Upsert(ctx, p)
	if err != nil {
		return startup.Profile{}, persistenceError("save startup", err)
	}

	refreshMatches(ctx, u.recalculator, u.logger, userID)
	return saved, nil
}

func (u *Profile) GetInvestorProfile(ctx context.Context, userID uuid.UUID) (investor.Profile, error) {
	if userID == uuid.Nil {
		return investor.Profile{}, ErrUnauthorized
	}
	p, err := u.investors.FindByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return investor.Profile{}, ErrInvestorNotFound
	}
	if err != nil {
		return investor.Profile{}, persistenceError("load investor", err)
	}
	return p, nil
}

// SaveInvestorProfile replaces the caller's investor profile. Matches are not
// refreshed here; the next batch run picks the change up.
func (u *Profile) SaveInvestorProfile(ctx context.Context, userID uuid.UUID, in InvestorProfileInput) (investor.Profile, error) {
	if userID == uuid.Nil {
		return investor.Profile{}, ErrUnauthorized
	}
	if err := validateTicket(in.TicketSizeMin, in.TicketSizeMax); err != nil {
		return investor.Profile{}, err
	}

	p, err := u.investors.FindByUserID(ctx, userID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		p = investor.Profile{UserID: userID}
	case err != nil:
		return investor.Profile{}, persistenceError("load investor", err)
	}

	p.OrganizationName = cleanString(in.OrganizationName)
	p.Website = cleanString(in.Website)
	p.Description = cleanString(in.Description)
	p.FocusSectors = cleanList(in.FocusSectors)
	p.FocusStages = cleanList(in.FocusStages)
	p.GeographyFocus = cleanList(in.GeographyFocus)
	p.TicketSizeMin = in.TicketSizeMin
	p.TicketSizeMax = in.TicketSizeMax

	saved, err := u.investors.Upsert(ctx, p)
	if err != nil {
		return investor.Profile{}, persistenceError("save investor", err)
	}
	return saved, nil
}

func validateTicket(lo, hi *float64) error {
	for _, v := range []*float64{lo, hi} {
		if v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0) || *v < 0) {
			return validationError("ticket sizes must be non-negative numbers")
		}
	}
	if lo != nil && hi != nil && *lo > 0 && *hi > 0 && *lo > *hi {
		return validationError("ticket_size_min must not exceed ticket_size_max")
	}
	return nil
}

func refreshMatches(ctx context.Context, r Recalculator, logger *zap.Logger, startupID uuid.UUID) {
	if r == nil {
		return
	}
	if _, err := r.Recalculate(ctx, startupID); err != nil {
		level := zap.WarnLevel
		if errors.Is(err, ErrNoInvestors) {
			level = zap.DebugLevel
		}
		logger.Log(level, "match refresh after profile save failed",
			zap.String("startup_id", startupID.String()),
			zap.Error(err),
		)
	}
}

func cleanString(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		v := strings.TrimSpace(s)
		if v == "" {
			continue
		}
		k := strings.ToLower(v)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, v)
	}
	return out
}
