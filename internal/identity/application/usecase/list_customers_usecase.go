package usecase

import (
	"context"
	"errors"

	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/identity/application/ports/in"
)

var ErrSnapshotNotReady = errors.New("customer directory not computed yet")

// ListCustomersUseCase отдает клиентов из текущего снимка каталога.
// Никогда не ходит в БД: каталог — производная величина, его источник
// правды — движок пересчета.
type ListCustomersUseCase struct {
	engine *Engine
}

func NewListCustomersUseCase(engine *Engine) *ListCustomersUseCase {
	return &ListCustomersUseCase{engine: engine}
}

func (uc *ListCustomersUseCase) Execute(_ context.Context, input in.ListCustomersInput) (*in.ListCustomersOutput, error) {
	snap, ok := uc.engine.Snapshot()
	if !ok {
		return nil, ErrSnapshotNotReady
	}

	filtered := make([]in.CustomerDTO, 0, len(snap.Customers))
	for _, c := range snap.Customers {
		if input.SourceTag != "" && c.SourceTag != input.SourceTag {
			continue
		}
		filtered = append(filtered, in.CustomerDTO{
			Customer: c,
			Stats:    snap.Stats[c.Key],
		})
	}

	total := len(filtered)
	limit := input.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	offset := input.Offset
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	return &in.ListCustomersOutput{
		Customers:  filtered[offset:end],
		TotalCount: total,
		Limit:      limit,
		Offset:     offset,
	}, nil
}
