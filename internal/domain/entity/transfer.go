package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nmarin/posflow-api/internal/domain/transfer"
)

// Tipos de traslado. El tipo determina qué clase de sede participa en ambos extremos.
const (
	TransferTypeWarehouseToWarehouse = "WAREHOUSE_TO_WAREHOUSE"
	TransferTypeBranchToBranch       = "BRANCH_TO_BRANCH"
)

// ValidTransferType indica si el tipo de traslado es conocido.
func ValidTransferType(t string) bool {
	return t == TransferTypeWarehouseToWarehouse || t == TransferTypeBranchToBranch
}

// ScopeTypeForTransfer devuelve el tipo de sede que exige el tipo de traslado.
func ScopeTypeForTransfer(transferType string) string {
	if transferType == TransferTypeBranchToBranch {
		return ScopeBranch
	}
	return ScopeWarehouse
}

// Transfer representa un traslado de inventario entre dos sedes de la misma empresa.
// El stock de origen se descuenta al crear (reserva blanda); el de destino se
// abona al completar. Cancelar antes de entregar repone la reserva.
type Transfer struct {
	ID         string
	CompanyID  string
	Type       string // WAREHOUSE_TO_WAREHOUSE | BRANCH_TO_BRANCH
	From       Scope
	To         Scope
	Status     transfer.Status
	Notes      string
	Items      []TransferItem
	CreatedBy  string
	ApprovedBy string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TransferItem línea de un traslado. Inmutable una vez creado el traslado.
// SKU y Name se copian del item de origen para que el traslado sea legible
// aunque el item cambie o desaparezca después.
type TransferItem struct {
	TransferID      string
	InventoryItemID string
	SKU             string
	Name            string
	Quantity        decimal.Decimal
}
