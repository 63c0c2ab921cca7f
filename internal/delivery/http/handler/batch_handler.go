package handler

import (
	"pitchmatch/internal/delivery/http/dto"
	"pitchmatch/internal/delivery/http/middleware"
	"pitchmatch/internal/pkg/response"
	"pitchmatch/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type BatchHandler struct {
	batch  usecase.BatchUsecase
	logger *zap.Logger
}

func NewBatchHandler(batch usecase.BatchUsecase, logger *zap.Logger) *BatchHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BatchHandler{batch: batch, logger: logger}
}

// RecalculateAll must sit behind the cron auth middleware. Per-startup
// failures are reported in the body with a 200 status.
func (h *BatchHandler) RecalculateAll(c fiber.Ctx) error {
	report, err := h.batch.RecalculateAll(c.Context())
	if err != nil {
		h.logger.Error("batch recalculation failed", zap.Error(err))
		return middleware.NewAppError(fiber.StatusInternalServerError, "Failed to recalculate matches", nil, err)
	}

	return response.Raw(c, fiber.StatusOK, dto.NewBatchRecalculationResponse(report))
}
