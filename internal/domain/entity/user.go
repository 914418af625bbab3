package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero" // encargado de bodega
	RoleCajero    = "cajero"    // cajero de sucursal
)

// User representa un usuario del sistema (pertenece a una Company).
// Un bodeguero tiene WarehouseID asignado; un cajero tiene BranchID; admin no requiere sede.
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, bodeguero, cajero
	BranchID     string
	WarehouseID  string
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
