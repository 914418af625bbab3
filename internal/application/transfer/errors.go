package transfer

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/nmarin/posflow-api/internal/domain"
)

// InsufficientStockError stock disponible menor al solicitado para un item.
// Reporta disponible vs solicitado para que el cliente pueda corregir.
type InsufficientStockError struct {
	InventoryItemID string
	SKU             string
	Available       decimal.Decimal
	Requested       decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s: disponible %s, solicitado %s",
		e.SKU, e.Available.String(), e.Requested.String())
}

// Unwrap permite errors.Is(err, domain.ErrInsufficientStock).
func (e *InsufficientStockError) Unwrap() error { return domain.ErrInsufficientStock }

// TransfersDisabledError la sede tiene los traslados deshabilitados por settings.
type TransfersDisabledError struct {
	ScopeType string
	ScopeID   string
	Direction string // "outgoing" | "incoming"
}

func (e *TransfersDisabledError) Error() string {
	return fmt.Sprintf("la sede %s/%s no permite traslados %s", e.ScopeType, e.ScopeID, e.Direction)
}

// Unwrap permite errors.Is(err, domain.ErrForbidden).
func (e *TransfersDisabledError) Unwrap() error { return domain.ErrForbidden }
