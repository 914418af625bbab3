package repository

import (
	"time"

	"github.com/nmarin/posflow-api/internal/domain/entity"
)

// MovementFilter filtros del log de movimientos.
type MovementFilter struct {
	CompanyID       string
	Scope           *entity.Scope
	InventoryItemID string
	Type            string
	From            *time.Time
	To              *time.Time
	Limit           int
	Offset          int
}

// StockMovementRepository define el puerto del log de movimientos de stock.
// Solo inserción y lectura: el log es append-only.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByReference(referenceID string) ([]*entity.StockMovement, error)
	List(filter MovementFilter) ([]*entity.StockMovement, error)
}
