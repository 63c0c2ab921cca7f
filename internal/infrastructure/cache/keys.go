package cache

import (
	"fmt"

	"pitchmatch/internal/domain/match"

	"github.com/google/uuid"
)

// Board owners, as used in match list keys.
const (
	OwnerStartup  = "startup"
	OwnerInvestor = "investor"
)

// MatchListKey identifies one filtered board listing for an owner.
func MatchListKey(owner string, id uuid.UUID, f match.Filter) string {
	status := "all"
	if f.Status != nil {
		status = string(*f.Status)
	}
	return fmt.Sprintf("matches:%s:%s:s=%s:min=%d:lim=%d", owner, id, status, f.MinScore, f.Limit)
}

// MatchListPattern matches every cached listing of one owner.
func MatchListPattern(owner string, id uuid.UUID) string {
	return fmt.Sprintf("matches:%s:%s:*", owner, id)
}

// AllInvestorListsPattern matches every investor board.
func AllInvestorListsPattern() string {
	return "matches:" + OwnerInvestor + ":*"
}
