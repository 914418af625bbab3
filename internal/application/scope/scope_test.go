package scope_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmarin/posflow-api/internal/application/scope"
	"github.com/nmarin/posflow-api/internal/domain"
	"github.com/nmarin/posflow-api/internal/domain/entity"
)

func TestActor_CanCreateTransfer(t *testing.T) {
	cases := []struct {
		name         string
		role         string
		transferType string
		want         bool
	}{
		{"admin puede entre bodegas", entity.RoleAdmin, entity.TransferTypeWarehouseToWarehouse, true},
		{"admin puede entre sucursales", entity.RoleAdmin, entity.TransferTypeBranchToBranch, true},
		{"bodeguero solo entre bodegas", entity.RoleBodeguero, entity.TransferTypeWarehouseToWarehouse, true},
		{"bodeguero no entre sucursales", entity.RoleBodeguero, entity.TransferTypeBranchToBranch, false},
		{"cajero solo entre sucursales", entity.RoleCajero, entity.TransferTypeBranchToBranch, true},
		{"cajero no entre bodegas", entity.RoleCajero, entity.TransferTypeWarehouseToWarehouse, false},
		{"rol desconocido nada", "auditor", entity.TransferTypeBranchToBranch, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := scope.Actor{Role: tc.role}
			assert.Equal(t, tc.want, a.CanCreateTransfer(tc.transferType))
		})
	}
}

func TestActor_AssignedScope(t *testing.T) {
	cajero := scope.Actor{Role: entity.RoleCajero, BranchID: "br-1"}
	s, ok := cajero.AssignedScope()
	require.True(t, ok)
	assert.Equal(t, entity.Scope{Type: entity.ScopeBranch, ID: "br-1"}, s)

	bodeguero := scope.Actor{Role: entity.RoleBodeguero, WarehouseID: "wh-1"}
	s, ok = bodeguero.AssignedScope()
	require.True(t, ok)
	assert.Equal(t, entity.Scope{Type: entity.ScopeWarehouse, ID: "wh-1"}, s)

	// Un admin no tiene sede asignada; un cajero sin sucursal tampoco.
	_, ok = scope.Actor{Role: entity.RoleAdmin}.AssignedScope()
	assert.False(t, ok)
	_, ok = scope.Actor{Role: entity.RoleCajero}.AssignedScope()
	assert.False(t, ok)
}

func TestActor_CanAccessScope(t *testing.T) {
	branch := entity.Scope{Type: entity.ScopeBranch, ID: "br-1"}
	otherBranch := entity.Scope{Type: entity.ScopeBranch, ID: "br-2"}

	admin := scope.Actor{Role: entity.RoleAdmin}
	assert.True(t, admin.CanAccessScope(branch))
	assert.True(t, admin.CanAccessScope(otherBranch))

	cajero := scope.Actor{Role: entity.RoleCajero, BranchID: "br-1"}
	assert.True(t, cajero.CanAccessScope(branch))
	assert.False(t, cajero.CanAccessScope(otherBranch))
}

func TestActor_VisibleScope(t *testing.T) {
	assert.Nil(t, scope.Actor{Role: entity.RoleAdmin}.VisibleScope(), "admin ve toda la empresa")

	visible := scope.Actor{Role: entity.RoleBodeguero, WarehouseID: "wh-1"}.VisibleScope()
	require.NotNil(t, visible)
	assert.Equal(t, entity.Scope{Type: entity.ScopeWarehouse, ID: "wh-1"}, *visible)

	// Rol sin sede asignada: scope imposible, los listados no devuelven nada.
	none := scope.Actor{Role: entity.RoleCajero}.VisibleScope()
	require.NotNil(t, none)
	assert.Equal(t, "NONE", none.Type)
}

// ──────────────────────────────────────────────────────────────────────────────

type stubBranchRepo struct {
	branches map[string]*entity.Branch
	calls    int
}

func (r *stubBranchRepo) Create(*entity.Branch) error { return nil }
func (r *stubBranchRepo) GetByID(id string) (*entity.Branch, error) {
	r.calls++
	return r.branches[id], nil
}
func (r *stubBranchRepo) Update(*entity.Branch) error { return nil }
func (r *stubBranchRepo) ListByCompany(string, int, int) ([]*entity.Branch, error) {
	return nil, nil
}
func (r *stubBranchRepo) Delete(string) error { return nil }

type stubWarehouseRepo struct {
	warehouses map[string]*entity.Warehouse
}

func (r *stubWarehouseRepo) Create(*entity.Warehouse) error { return nil }
func (r *stubWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	return r.warehouses[id], nil
}
func (r *stubWarehouseRepo) Update(*entity.Warehouse) error { return nil }
func (r *stubWarehouseRepo) ListByCompany(string, int, int) ([]*entity.Warehouse, error) {
	return nil, nil
}
func (r *stubWarehouseRepo) Delete(string) error { return nil }

type memLocationCache struct {
	entries map[string]*scope.Location
}

func cacheKey(s entity.Scope) string { return s.Type + ":" + s.ID }

func (c *memLocationCache) GetLocation(_ context.Context, s entity.Scope) (*scope.Location, error) {
	return c.entries[cacheKey(s)], nil
}

func (c *memLocationCache) PutLocation(_ context.Context, loc *scope.Location) error {
	c.entries[cacheKey(loc.Scope)] = loc
	return nil
}

func (c *memLocationCache) InvalidateLocation(_ context.Context, s entity.Scope) error {
	delete(c.entries, cacheKey(s))
	return nil
}

func newTestResolver(cache scope.Cache) (*scope.Resolver, *stubBranchRepo) {
	branches := &stubBranchRepo{branches: map[string]*entity.Branch{
		"br-1": {ID: "br-1", CompanyID: "comp-1", Name: "Centro", Settings: entity.DefaultTransferSettings()},
	}}
	warehouses := &stubWarehouseRepo{warehouses: map[string]*entity.Warehouse{
		"wh-1": {ID: "wh-1", CompanyID: "comp-1", Name: "Central", Settings: entity.DefaultTransferSettings()},
	}}
	return scope.NewResolver(branches, warehouses, cache), branches
}

func TestResolver_ResuelveSucursalYBodega(t *testing.T) {
	r, _ := newTestResolver(nil)

	loc, err := r.Resolve(context.Background(), "comp-1", entity.Scope{Type: entity.ScopeBranch, ID: "br-1"})
	require.NoError(t, err)
	assert.Equal(t, "Centro", loc.Name)
	assert.True(t, loc.Settings.AllowOutgoingTransfers)

	loc, err = r.Resolve(context.Background(), "comp-1", entity.Scope{Type: entity.ScopeWarehouse, ID: "wh-1"})
	require.NoError(t, err)
	assert.Equal(t, "Central", loc.Name)
}

func TestResolver_NoExisteYOtraEmpresa(t *testing.T) {
	r, _ := newTestResolver(nil)

	_, err := r.Resolve(context.Background(), "comp-1", entity.Scope{Type: entity.ScopeBranch, ID: "br-fantasma"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = r.Resolve(context.Background(), "comp-ajena", entity.Scope{Type: entity.ScopeBranch, ID: "br-1"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestResolver_ScopeInvalido(t *testing.T) {
	r, _ := newTestResolver(nil)

	_, err := r.Resolve(context.Background(), "comp-1", entity.Scope{Type: "PLANETA", ID: "x"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = r.Resolve(context.Background(), "comp-1", entity.Scope{Type: entity.ScopeBranch, ID: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestResolver_CachePrimeroEInvalidacion(t *testing.T) {
	cache := &memLocationCache{entries: map[string]*scope.Location{}}
	r, branches := newTestResolver(cache)
	s := entity.Scope{Type: entity.ScopeBranch, ID: "br-1"}

	// Primer resolve: miss, consulta el repo y puebla el cache.
	_, err := r.Resolve(context.Background(), "comp-1", s)
	require.NoError(t, err)
	assert.Equal(t, 1, branches.calls)
	assert.NotEmpty(t, cache.entries)

	// Segundo resolve: hit, no vuelve al repo.
	_, err = r.Resolve(context.Background(), "comp-1", s)
	require.NoError(t, err)
	assert.Equal(t, 1, branches.calls)

	// Tras invalidar, vuelve al repo.
	r.Invalidate(context.Background(), s)
	_, err = r.Resolve(context.Background(), "comp-1", s)
	require.NoError(t, err)
	assert.Equal(t, 2, branches.calls)
}
