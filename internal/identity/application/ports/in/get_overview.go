package in

import (
	"context"

	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/identity/domain"
)

// GetOverviewInput — входные данные для обзора платформы
type GetOverviewInput struct {
	// Пустая структура, параметры не требуются
}

// GetOverviewOutput — выходные данные обзора платформы
type GetOverviewOutput struct {
	Timestamp   string              `json:"timestamp"`
	Global      domain.GlobalStats  `json:"global"`
	Diagnostics []domain.Diagnostic `json:"diagnostics,omitempty"`
}

// GetOverviewUseCase — use case обзора платформы
type GetOverviewUseCase interface {
	Execute(ctx context.Context, input GetOverviewInput) (*GetOverviewOutput, error)
}
