package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem representa un SKU con existencias en una sede concreta.
// El SKU es único por (company, scope); el mismo SKU en otra sede es otra fila.
// Invariante: CurrentStock nunca es negativo.
type InventoryItem struct {
	ID           string
	CompanyID    string
	Scope        Scope
	SKU          string
	Name         string
	Description  string
	CurrentStock decimal.Decimal
	CostPrice    decimal.Decimal
	SellingPrice decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
