package entity

import "time"

// Tipos de sede (frontera de tenencia del inventario).
const (
	ScopeBranch    = "BRANCH"
	ScopeWarehouse = "WAREHOUSE"
)

// Scope identifica una sede: sucursal o bodega.
type Scope struct {
	Type string `json:"type"` // BRANCH | WAREHOUSE
	ID   string `json:"id"`
}

// ValidScopeType indica si el tipo de sede es conocido.
func ValidScopeType(t string) bool {
	return t == ScopeBranch || t == ScopeWarehouse
}

// Equals compara dos scopes por tipo e ID.
func (s Scope) Equals(o Scope) bool {
	return s.Type == o.Type && s.ID == o.ID
}

// TransferSettings configuración por sede que habilita o bloquea traslados.
// Se persiste como JSONB en branches/warehouses y se resuelve a un objeto
// inmutable antes de entrar a los casos de uso.
type TransferSettings struct {
	AllowOutgoingTransfers bool `json:"allow_outgoing_transfers"`
	AllowIncomingTransfers bool `json:"allow_incoming_transfers"`
}

// DefaultTransferSettings traslados habilitados en ambos sentidos.
func DefaultTransferSettings() TransferSettings {
	return TransferSettings{AllowOutgoingTransfers: true, AllowIncomingTransfers: true}
}

// Branch representa una sucursal (punto de venta).
type Branch struct {
	ID        string
	CompanyID string
	Name      string
	Address   string
	Settings  TransferSettings
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Scope devuelve el scope de la sucursal.
func (b *Branch) Scope() Scope { return Scope{Type: ScopeBranch, ID: b.ID} }

// Warehouse representa una bodega donde se almacena inventario.
type Warehouse struct {
	ID        string
	CompanyID string
	Name      string
	Address   string
	Settings  TransferSettings
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Scope devuelve el scope de la bodega.
func (w *Warehouse) Scope() Scope { return Scope{Type: ScopeWarehouse, ID: w.ID} }
