package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeTransferOut   = "TRANSFER_OUT"   // salida por traslado
	MovementTypeTransferIn    = "TRANSFER_IN"    // entrada por traslado (incluye reversa de cancelación en origen)
	MovementTypeAdjustmentIn  = "ADJUSTMENT_IN"  // ajuste manual positivo
	MovementTypeAdjustmentOut = "ADJUSTMENT_OUT" // ajuste manual negativo
)

// StockMovement registro de auditoría de un cambio de existencias.
// Append-only: nunca se actualiza ni se borra. Quantity lleva signo
// (negativo salidas, positivo entradas); ReferenceID apunta a la causa
// (ID del traslado o del ajuste).
type StockMovement struct {
	ID              string
	CompanyID       string
	InventoryItemID string
	Scope           Scope
	Type            string
	Quantity        decimal.Decimal
	ReferenceID     string
	Notes           string
	CreatedAt       time.Time
	CreatedBy       string
}
