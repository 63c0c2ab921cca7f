package dto

import (
	"pitchmatch/internal/usecase"

	"github.com/google/uuid"
)

// BatchItemResponse carries matches_created on success and error on failure.
type BatchItemResponse struct {
	StartupID      uuid.UUID `json:"startup_id"`
	Success        bool      `json:"success"`
	MatchesCreated *int      `json:"matches_created,omitempty"`
	Error          string    `json:"error,omitempty"`
}

type BatchRecalculationResponse struct {
	Success           bool                `json:"success"`
	StartupsProcessed int                 `json:"startups_processed"`
	Successes         int                 `json:"successes"`
	Failures          int                 `json:"failures"`
	Results           []BatchItemResponse `json:"results"`
}

func NewBatchRecalculationResponse(r usecase.BatchReport) BatchRecalculationResponse {
	out := BatchRecalculationResponse{
		Success:           true,
		StartupsProcessed: r.StartupsProcessed,
		Successes:         r.Successes,
		Failures:          r.Failures,
		Results:           make([]BatchItemResponse, 0, len(r.Results)),
	}
	for _, it := range r.Results {
		item := BatchItemResponse{StartupID: it.StartupID, Success: it.Success}
		if it.Success {
			n := it.MatchesCreated
			item.MatchesCreated = &n
		} else {
			item.Error = it.Error
		}
		out.Results = append(out.Results, item)
	}
	return out
}
