package entity

import "time"

// Company representa una empresa (tenant). Sedes, usuarios e inventario cuelgan de ella.
type Company struct {
	ID        string
	Name      string
	NIT       string
	CreatedAt time.Time
	UpdatedAt time.Time
}
