package match

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConnected Status = "connected"
	StatusRejected  Status = "rejected"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending, true
	case StatusConnected:
		return StatusConnected, true
	case StatusRejected:
		return StatusRejected, true
	default:
		return "", false
	}
}

// CanTransition reports whether a participant may move a match from one
// status to another. Setting the current status again is a no-op and allowed.
func (s Status) CanTransition(to Status) bool {
	if s == to {
		return true
	}
	return s == StatusPending && (to == StatusConnected || to == StatusRejected)
}

// Match pairs one startup with one investor. At most one row exists per
// (StartupID, InvestorID); MatchPercentage is only rewritten by a full
// recalculation.
type Match struct {
	ID              uuid.UUID
	StartupID       uuid.UUID
	InvestorID      uuid.UUID
	MatchPercentage int
	Status          Status
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Involves reports whether userID is the startup or investor side of m.
func (m Match) Involves(userID uuid.UUID) bool {
	if userID == uuid.Nil {
		return false
	}
	return m.StartupID == userID || m.InvestorID == userID
}

// View is a match as listed on a participant's board, with the display name
// of the other side when its profile carries one.
type View struct {
	Match
	CounterpartName *string
}

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// Filter narrows a board listing. A nil Status keeps every status.
type Filter struct {
	Status   *Status
	MinScore int
	Limit    int
}

// Normalized clamps the filter to valid bounds.
func (f Filter) Normalized() Filter {
	if f.MinScore < 0 {
		f.MinScore = 0
	}
	if f.Limit <= 0 {
		f.Limit = DefaultListLimit
	}
	if f.Limit > MaxListLimit {
		f.Limit = MaxListLimit
	}
	return f
}
