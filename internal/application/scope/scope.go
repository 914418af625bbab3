// Package scope modela al actor autenticado y la resolución de sedes.
// La autorización depende de configuración por sede: en lugar de re-consultar
// y parsear settings JSON en cada handler, aquí se resuelve una sola vez a un
// objeto inmutable que los casos de uso reciben ya validado.
package scope

import (
	"context"
	"fmt"

	"github.com/nmarin/posflow-api/internal/domain"
	"github.com/nmarin/posflow-api/internal/domain/entity"
	"github.com/nmarin/posflow-api/internal/domain/repository"
)

// Actor usuario autenticado con su rol y sede asignada (desde los claims JWT).
type Actor struct {
	UserID      string
	CompanyID   string
	Role        string
	BranchID    string
	WarehouseID string
}

// IsAdmin indica si el actor es administrador.
func (a Actor) IsAdmin() bool { return a.Role == entity.RoleAdmin }

// AssignedScope devuelve la sede asignada del actor, si tiene.
func (a Actor) AssignedScope() (entity.Scope, bool) {
	switch a.Role {
	case entity.RoleCajero:
		if a.BranchID != "" {
			return entity.Scope{Type: entity.ScopeBranch, ID: a.BranchID}, true
		}
	case entity.RoleBodeguero:
		if a.WarehouseID != "" {
			return entity.Scope{Type: entity.ScopeWarehouse, ID: a.WarehouseID}, true
		}
	}
	return entity.Scope{}, false
}

// CanCreateTransfer indica si el rol puede crear el tipo de traslado:
// cajero solo BRANCH_TO_BRANCH, bodeguero solo WAREHOUSE_TO_WAREHOUSE, admin ambos.
func (a Actor) CanCreateTransfer(transferType string) bool {
	switch a.Role {
	case entity.RoleAdmin:
		return true
	case entity.RoleCajero:
		return transferType == entity.TransferTypeBranchToBranch
	case entity.RoleBodeguero:
		return transferType == entity.TransferTypeWarehouseToWarehouse
	}
	return false
}

// CanAccessScope indica si el actor puede operar sobre la sede:
// admin sobre cualquiera de su empresa; el resto solo sobre su sede asignada.
func (a Actor) CanAccessScope(s entity.Scope) bool {
	if a.IsAdmin() {
		return true
	}
	own, ok := a.AssignedScope()
	return ok && own.Equals(s)
}

// VisibleScope devuelve la sede a la que se restringen los listados del actor,
// o nil si ve toda la empresa (admin).
func (a Actor) VisibleScope() *entity.Scope {
	if a.IsAdmin() {
		return nil
	}
	if own, ok := a.AssignedScope(); ok {
		return &own
	}
	// Sin sede asignada ni rol admin: scope imposible, no ve nada.
	return &entity.Scope{Type: "NONE", ID: ""}
}

// Location sede resuelta: existencia verificada, empresa y settings cargados.
type Location struct {
	Scope     entity.Scope           `json:"scope"`
	CompanyID string                 `json:"company_id"`
	Name      string                 `json:"name"`
	Address   string                 `json:"address"`
	Settings  entity.TransferSettings `json:"settings"`
}

// Cache puerto de cache para sedes resueltas (implementado sobre Redis).
// Miss se señala con (nil, nil); un error de cache nunca debe tumbar la operación.
type Cache interface {
	GetLocation(ctx context.Context, s entity.Scope) (*Location, error)
	PutLocation(ctx context.Context, loc *Location) error
	InvalidateLocation(ctx context.Context, s entity.Scope) error
}

// Resolver resuelve scopes contra sucursales/bodegas, con cache al frente.
type Resolver struct {
	branches   repository.BranchRepository
	warehouses repository.WarehouseRepository
	cache      Cache
}

// NewResolver construye el resolver. cache puede ser nil (sin Redis).
func NewResolver(branches repository.BranchRepository, warehouses repository.WarehouseRepository, cache Cache) *Resolver {
	return &Resolver{branches: branches, warehouses: warehouses, cache: cache}
}

// Resolve carga la sede indicada validando que exista y pertenezca a la empresa.
// Retorna domain.ErrNotFound si no existe y domain.ErrForbidden si es de otra empresa.
func (r *Resolver) Resolve(ctx context.Context, companyID string, s entity.Scope) (*Location, error) {
	if !entity.ValidScopeType(s.Type) || s.ID == "" {
		return nil, fmt.Errorf("scope %s/%s: %w", s.Type, s.ID, domain.ErrInvalidInput)
	}

	if r.cache != nil {
		if loc, err := r.cache.GetLocation(ctx, s); err == nil && loc != nil {
			if loc.CompanyID != companyID {
				return nil, domain.ErrForbidden
			}
			return loc, nil
		}
	}

	loc, err := r.load(s)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrNotFound
	}
	if r.cache != nil {
		_ = r.cache.PutLocation(ctx, loc)
	}
	if loc.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return loc, nil
}

// Invalidate borra la sede del cache (tras actualizar settings).
func (r *Resolver) Invalidate(ctx context.Context, s entity.Scope) {
	if r.cache != nil {
		_ = r.cache.InvalidateLocation(ctx, s)
	}
}

func (r *Resolver) load(s entity.Scope) (*Location, error) {
	switch s.Type {
	case entity.ScopeBranch:
		b, err := r.branches.GetByID(s.ID)
		if err != nil || b == nil {
			return nil, err
		}
		return &Location{Scope: b.Scope(), CompanyID: b.CompanyID, Name: b.Name, Address: b.Address, Settings: b.Settings}, nil
	case entity.ScopeWarehouse:
		w, err := r.warehouses.GetByID(s.ID)
		if err != nil || w == nil {
			return nil, err
		}
		return &Location{Scope: w.Scope(), CompanyID: w.CompanyID, Name: w.Name, Address: w.Address, Settings: w.Settings}, nil
	}
	return nil, domain.ErrInvalidInput
}
