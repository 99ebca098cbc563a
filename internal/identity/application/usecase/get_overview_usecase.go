package usecase

import (
	"context"
	"time"

	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/identity/application/ports/in"
)

// GetOverviewUseCase отдает глобальную сводку из текущего снимка
type GetOverviewUseCase struct {
	engine *Engine
}

func NewGetOverviewUseCase(engine *Engine) *GetOverviewUseCase {
	return &GetOverviewUseCase{engine: engine}
}

func (uc *GetOverviewUseCase) Execute(_ context.Context, _ in.GetOverviewInput) (*in.GetOverviewOutput, error) {
	snap, ok := uc.engine.Snapshot()
	if !ok {
		return nil, ErrSnapshotNotReady
	}

	return &in.GetOverviewOutput{
		Timestamp:   snap.ComputedAt.UTC().Format(time.RFC3339),
		Global:      snap.Global,
		Diagnostics: snap.Diagnostics,
	}, nil
}
