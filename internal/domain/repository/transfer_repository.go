package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nmarin/posflow-api/internal/domain/entity"
	"github.com/nmarin/posflow-api/internal/domain/transfer"
)

// TransferFilter filtros de listado de traslados.
// Scope restringe a traslados donde la sede participa como origen o destino
// (así el cajero ve entradas y salidas de su sucursal).
type TransferFilter struct {
	CompanyID string
	Scope     *entity.Scope
	Status    transfer.Status
	Type      string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// StatusCount agregado por estado para estadísticas.
type StatusCount struct {
	Status   transfer.Status
	Count    int64
	Quantity decimal.Decimal // suma de cantidades de los items
}

// TransferRepository define el puerto de persistencia para traslados.
type TransferRepository interface {
	// Create persiste el encabezado y sus items.
	Create(t *entity.Transfer) error
	// GetByID devuelve el traslado con items, o nil si no existe.
	GetByID(id string) (*entity.Transfer, error)
	// UpdateStatus cambia el estado con guarda CAS sobre el estado previo:
	// si la fila ya no está en from, no afecta filas y retorna domain.ErrConflict.
	// approvedBy solo se escribe si no es nil.
	UpdateStatus(id string, from, to transfer.Status, approvedBy *string) error
	List(filter TransferFilter) ([]*entity.Transfer, error)
	Statistics(companyID string, scope *entity.Scope) ([]StatusCount, error)
}
