package transfer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/nmarin/posflow-api/internal/application/dto"
	"github.com/nmarin/posflow-api/internal/application/scope"
	"github.com/nmarin/posflow-api/internal/domain/entity"
	"github.com/nmarin/posflow-api/internal/domain/repository"
	"github.com/nmarin/posflow-api/internal/domain/transfer"
)

// StatisticsUseCase agregados de traslados por empresa/sede, con cache de TTL
// corto al frente (las estadísticas toleran estar unos segundos desfasadas).
type StatisticsUseCase struct {
	transfers repository.TransferRepository
	cache     StatsCache
}

// NewStatisticsUseCase construye el caso de uso. cache puede ser nil.
func NewStatisticsUseCase(transfers repository.TransferRepository, cache StatsCache) *StatisticsUseCase {
	return &StatisticsUseCase{transfers: transfers, cache: cache}
}

// Get devuelve conteos por estado y cantidades movidas, según el alcance del actor.
func (uc *StatisticsUseCase) Get(ctx context.Context, actor scope.Actor) (*dto.TransferStatisticsResponse, error) {
	visible := actor.VisibleScope()
	key := statsKey(actor.CompanyID, visible)

	if uc.cache != nil {
		if payload, err := uc.cache.GetStatistics(ctx, key); err == nil && payload != nil {
			var cached dto.TransferStatisticsResponse
			if json.Unmarshal(payload, &cached) == nil {
				return &cached, nil
			}
		}
	}

	counts, err := uc.transfers.Statistics(actor.CompanyID, visible)
	if err != nil {
		return nil, err
	}

	out := &dto.TransferStatisticsResponse{
		ByStatus:         make(map[string]int64),
		QuantityByStatus: make(map[string]decimal.Decimal),
		QuantityMoved:    decimal.Zero,
	}
	for _, c := range counts {
		out.Total += c.Count
		out.ByStatus[string(c.Status)] = c.Count
		out.QuantityByStatus[string(c.Status)] = c.Quantity
		if c.Status == transfer.StatusDelivered {
			out.QuantityMoved = out.QuantityMoved.Add(c.Quantity)
		}
	}

	if uc.cache != nil {
		if payload, err := json.Marshal(out); err == nil {
			_ = uc.cache.PutStatistics(ctx, key, payload)
		}
	}
	return out, nil
}

func statsKey(companyID string, s *entity.Scope) string {
	if s == nil {
		return fmt.Sprintf("transfers:stats:%s:all", companyID)
	}
	return fmt.Sprintf("transfers:stats:%s:%s:%s", companyID, s.Type, s.ID)
}
