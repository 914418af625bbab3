package transfer

import (
	"context"

	"github.com/nmarin/posflow-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad: cualquier error dentro
// de fn hace rollback completo, sin decrementos parciales.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.InventoryItemRepository,
		transferRepo repository.TransferRepository,
		movementRepo repository.StockMovementRepository,
	) error) error
}

// StatsCache puerto de cache para estadísticas (TTL corto, implementado sobre Redis).
// Miss se señala con (nil, nil).
type StatsCache interface {
	GetStatistics(ctx context.Context, key string) ([]byte, error)
	PutStatistics(ctx context.Context, key string, payload []byte) error
}
