package repository

import (
	"github.com/shopspring/decimal"

	"github.com/nmarin/posflow-api/internal/domain/entity"
)

// InventoryItemRepository define el puerto de persistencia para items de inventario.
// Los métodos ForUpdate bloquean la fila (SELECT FOR UPDATE) y deben usarse
// dentro de una transacción: son la barrera contra doble reserva de stock.
type InventoryItemRepository interface {
	Create(item *entity.InventoryItem) error
	GetByID(id string) (*entity.InventoryItem, error)
	GetForUpdate(id string) (*entity.InventoryItem, error)
	GetBySKU(companyID string, scope entity.Scope, sku string) (*entity.InventoryItem, error)
	GetBySKUForUpdate(companyID string, scope entity.Scope, sku string) (*entity.InventoryItem, error)
	// UpdateStock suma quantity (con signo) al stock actual del item.
	UpdateStock(id string, quantity decimal.Decimal) error
	Update(item *entity.InventoryItem) error
	ListByScope(companyID string, scope entity.Scope, limit, offset int) ([]*entity.InventoryItem, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.InventoryItem, error)
	Delete(id string) error
}
