package dto

import "time"

// TransferSettingsDTO configuración de traslados de una sede.
type TransferSettingsDTO struct {
	AllowOutgoingTransfers bool `json:"allow_outgoing_transfers"`
	AllowIncomingTransfers bool `json:"allow_incoming_transfers"`
}

// CreateLocationRequest body para POST /api/branches y POST /api/warehouses.
type CreateLocationRequest struct {
	Name     string               `json:"name"`
	Address  string               `json:"address"`
	Settings *TransferSettingsDTO `json:"settings,omitempty"`
}

// UpdateLocationRequest body para PUT /api/branches/:id y PUT /api/warehouses/:id.
type UpdateLocationRequest struct {
	Name     *string              `json:"name,omitempty"`
	Address  *string              `json:"address,omitempty"`
	Settings *TransferSettingsDTO `json:"settings,omitempty"`
}

// LocationResponse sucursal o bodega en respuestas.
type LocationResponse struct {
	ID        string              `json:"id"`
	CompanyID string              `json:"company_id"`
	ScopeType string              `json:"scope_type"` // BRANCH | WAREHOUSE
	Name      string              `json:"name"`
	Address   string              `json:"address"`
	Settings  TransferSettingsDTO `json:"settings"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// LocationListResponse listado paginado de sedes.
type LocationListResponse struct {
	Items []LocationResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
