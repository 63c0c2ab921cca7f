package investor

import (
	"time"

	"github.com/google/uuid"
)

// Profile is owned by an investor user. UserID is the owner key that matches
// reference as investor_id.
type Profile struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	OrganizationName *string
	Website          *string
	Description      *string
	FocusSectors     []string
	FocusStages      []string
	GeographyFocus   []string
	TicketSizeMin    *float64
	TicketSizeMax    *float64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type Analysis struct {
	OrganizationName *string
	FocusSectors     []string
	FocusStages      []string
	GeographyFocus   []string
	TicketSizeMin    *float64
	TicketSizeMax    *float64
}

// Merge copies every non-empty field of a onto p.
func (p Profile) Merge(a Analysis) Profile {
	if a.OrganizationName != nil {
		p.OrganizationName = a.OrganizationName
	}
	if len(a.FocusSectors) > 0 {
		p.FocusSectors = a.FocusSectors
	}
	if len(a.FocusStages) > 0 {
		p.FocusStages = a.FocusStages
	}
	if len(a.GeographyFocus) > 0 {
		p.GeographyFocus = a.GeographyFocus
	}
	if a.TicketSizeMin != nil {
		p.TicketSizeMin = a.TicketSizeMin
	}
	if a.TicketSizeMax != nil {
		p.TicketSizeMax = a.TicketSizeMax
	}
	return p
}
