package startup

import (
	"time"

	"github.com/google/uuid"
)

// Profile is owned by a startup user. UserID is the owner key that matches
// reference as startup_id.
type Profile struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	CompanyName    *string
	Website        *string
	Description    *string
	Industry       *string
	Stage          *string
	Headquarters   *string
	FundingAsk     *string
	ReadinessScore *float64
	AIAnalyzedAt   *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Analysis is what deck extraction could read for a startup. Nil fields were
// not found and leave the profile untouched when merged.
type Analysis struct {
	CompanyName    *string
	Industry       *string
	Stage          *string
	Headquarters   *string
	FundingAsk     *string
	ReadinessScore *float64
}

// Merge copies every field the analysis found onto p.
func (p Profile) Merge(a Analysis, analyzedAt time.Time) Profile {
	if a.CompanyName != nil {
		p.CompanyName = a.CompanyName
	}
	if a.Industry != nil {
		p.Industry = a.Industry
	}
	if a.Stage != nil {
		p.Stage = a.Stage
	}
	if a.Headquarters != nil {
		p.Headquarters = a.Headquarters
	}
	if a.FundingAsk != nil {
		p.FundingAsk = a.FundingAsk
	}
	if a.ReadinessScore != nil {
		p.ReadinessScore = a.ReadinessScore
	}
	p.AIAnalyzedAt = &analyzedAt
	return p
}
