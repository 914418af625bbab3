package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTransferRequest body para POST /api/transfers.
type CreateTransferRequest struct {
	TransferType string                      `json:"transfer_type"` // WAREHOUSE_TO_WAREHOUSE | BRANCH_TO_BRANCH
	FromScope    ScopeDTO                    `json:"from_scope"`
	ToScope      ScopeDTO                    `json:"to_scope"`
	Items        []CreateTransferItemRequest `json:"items"`
	Notes        string                      `json:"notes,omitempty"`
}

// CreateTransferItemRequest línea solicitada.
type CreateTransferItemRequest struct {
	InventoryItemID string          `json:"inventory_item_id"`
	Quantity        decimal.Decimal `json:"quantity"`
}

// UpdateTransferStatusRequest body para PUT /api/transfers/:id/status.
type UpdateTransferStatusRequest struct {
	Status string `json:"status"` // approved | shipped | cancelled
	Notes  string `json:"notes,omitempty"`
}

// CompleteTransferRequest body para PUT /api/transfers/:id/complete.
type CompleteTransferRequest struct {
	Notes string `json:"notes,omitempty"`
}

// TransferItemResponse línea del traslado en respuestas.
type TransferItemResponse struct {
	InventoryItemID string          `json:"inventory_item_id"`
	SKU             string          `json:"sku"`
	Name            string          `json:"name"`
	Quantity        decimal.Decimal `json:"quantity"`
}

// TransferResponse traslado en respuestas.
type TransferResponse struct {
	ID           string                 `json:"id"`
	CompanyID    string                 `json:"company_id"`
	TransferType string                 `json:"transfer_type"`
	FromScope    ScopeDTO               `json:"from_scope"`
	ToScope      ScopeDTO               `json:"to_scope"`
	Status       string                 `json:"status"`
	Notes        string                 `json:"notes,omitempty"`
	Items        []TransferItemResponse `json:"items"`
	CreatedBy    string                 `json:"created_by"`
	ApprovedBy   string                 `json:"approved_by,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

// TransferListResponse listado paginado de traslados.
type TransferListResponse struct {
	Items []TransferResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// TransferListFilter query params de GET /api/transfers.
type TransferListFilter struct {
	Status string `query:"status"`
	Type   string `query:"type"`
	From   string `query:"from"` // fecha RFC3339 o YYYY-MM-DD
	To     string `query:"to"`
	PageRequest
}

// MovementLogFilter query params de GET /api/transfers/logs.
type MovementLogFilter struct {
	Type   string `query:"type"`
	ItemID string `query:"item_id"`
	From   string `query:"from"`
	To     string `query:"to"`
	PageRequest
}

// TransferStatisticsResponse agregados para GET /api/transfers/statistics.
type TransferStatisticsResponse struct {
	Total            int64                      `json:"total"`
	ByStatus         map[string]int64           `json:"by_status"`
	QuantityMoved    decimal.Decimal            `json:"quantity_moved"` // suma de cantidades de traslados entregados
	QuantityByStatus map[string]decimal.Decimal `json:"quantity_by_status"`
}
