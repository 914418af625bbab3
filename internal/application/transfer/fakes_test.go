package transfer_test

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/nmarin/posflow-api/internal/domain"
	"github.com/nmarin/posflow-api/internal/domain/entity"
	"github.com/nmarin/posflow-api/internal/domain/repository"
	domaintransfer "github.com/nmarin/posflow-api/internal/domain/transfer"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: mismo contrato que los adaptadores PostgreSQL, incluida
// la reversión total de la "transacción" cuando el callback falla.
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	items     map[string]*entity.InventoryItem
	transfers map[string]*entity.Transfer
	movements []*entity.StockMovement

	// itemLookupErr simula fallos de consulta por ID (caída de la conexión,
	// timeout) para los caminos que deben abortar la transacción.
	itemLookupErr map[string]error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		items:         make(map[string]*entity.InventoryItem),
		transfers:     make(map[string]*entity.Transfer),
		itemLookupErr: make(map[string]error),
	}
}

type storeSnapshot struct {
	items     map[string]entity.InventoryItem
	transfers map[string]entity.Transfer
	movements []*entity.StockMovement
}

func (s *fakeStore) snapshot() storeSnapshot {
	snap := storeSnapshot{
		items:     make(map[string]entity.InventoryItem, len(s.items)),
		transfers: make(map[string]entity.Transfer, len(s.transfers)),
		movements: append([]*entity.StockMovement(nil), s.movements...),
	}
	for id, it := range s.items {
		snap.items[id] = *it
	}
	for id, t := range s.transfers {
		cp := *t
		cp.Items = append([]entity.TransferItem(nil), t.Items...)
		snap.transfers[id] = cp
	}
	return snap
}

func (s *fakeStore) restore(snap storeSnapshot) {
	s.items = make(map[string]*entity.InventoryItem, len(snap.items))
	for id, it := range snap.items {
		cp := it
		s.items[id] = &cp
	}
	s.transfers = make(map[string]*entity.Transfer, len(snap.transfers))
	for id, t := range snap.transfers {
		cp := t
		s.transfers[id] = &cp
	}
	s.movements = snap.movements
}

// fakeTxRunner ejecuta fn sobre el store y lo revierte completo si fn falla.
type fakeTxRunner struct {
	store *fakeStore
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	transferRepo repository.TransferRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	snap := r.store.snapshot()
	err := fn(
		&fakeItemRepo{store: r.store},
		&fakeTransferRepo{store: r.store},
		&fakeMovementRepo{store: r.store},
	)
	if err != nil {
		r.store.restore(snap)
	}
	return err
}

// ── Items ─────────────────────────────────────────────────────────────────────

type fakeItemRepo struct {
	store *fakeStore
}

func (r *fakeItemRepo) Create(item *entity.InventoryItem) error {
	if _, exists := r.store.items[item.ID]; exists {
		return domain.ErrDuplicate
	}
	cp := *item
	r.store.items[item.ID] = &cp
	return nil
}

func (r *fakeItemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	if err := r.store.itemLookupErr[id]; err != nil {
		return nil, err
	}
	it, ok := r.store.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *fakeItemRepo) GetForUpdate(id string) (*entity.InventoryItem, error) {
	it, ok := r.store.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *fakeItemRepo) GetBySKU(companyID string, scope entity.Scope, sku string) (*entity.InventoryItem, error) {
	for _, it := range r.store.items {
		if it.CompanyID == companyID && it.Scope.Equals(scope) && it.SKU == sku {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeItemRepo) GetBySKUForUpdate(companyID string, scope entity.Scope, sku string) (*entity.InventoryItem, error) {
	return r.GetBySKU(companyID, scope, sku)
}

func (r *fakeItemRepo) UpdateStock(id string, quantity decimal.Decimal) error {
	it, ok := r.store.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.CurrentStock = it.CurrentStock.Add(quantity)
	return nil
}

func (r *fakeItemRepo) Update(item *entity.InventoryItem) error {
	if _, ok := r.store.items[item.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *item
	r.store.items[item.ID] = &cp
	return nil
}

func (r *fakeItemRepo) ListByScope(companyID string, scope entity.Scope, limit, offset int) ([]*entity.InventoryItem, error) {
	var list []*entity.InventoryItem
	for _, it := range r.store.items {
		if it.CompanyID == companyID && it.Scope.Equals(scope) {
			cp := *it
			list = append(list, &cp)
		}
	}
	sortItems(list)
	return paginate(list, limit, offset), nil
}

func (r *fakeItemRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.InventoryItem, error) {
	var list []*entity.InventoryItem
	for _, it := range r.store.items {
		if it.CompanyID == companyID {
			cp := *it
			list = append(list, &cp)
		}
	}
	sortItems(list)
	return paginate(list, limit, offset), nil
}

func (r *fakeItemRepo) Delete(id string) error {
	delete(r.store.items, id)
	return nil
}

func sortItems(list []*entity.InventoryItem) {
	sort.Slice(list, func(i, j int) bool { return list[i].SKU < list[j].SKU })
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

// ── Transfers ─────────────────────────────────────────────────────────────────

type fakeTransferRepo struct {
	store *fakeStore
}

func (r *fakeTransferRepo) Create(t *entity.Transfer) error {
	cp := *t
	cp.Items = append([]entity.TransferItem(nil), t.Items...)
	r.store.transfers[t.ID] = &cp
	return nil
}

func (r *fakeTransferRepo) GetByID(id string) (*entity.Transfer, error) {
	t, ok := r.store.transfers[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	cp.Items = append([]entity.TransferItem(nil), t.Items...)
	return &cp, nil
}

func (r *fakeTransferRepo) UpdateStatus(id string, from, to domaintransfer.Status, approvedBy *string) error {
	t, ok := r.store.transfers[id]
	if !ok || t.Status != from {
		return domain.ErrConflict
	}
	t.Status = to
	if approvedBy != nil {
		t.ApprovedBy = *approvedBy
	}
	return nil
}

func (r *fakeTransferRepo) List(filter repository.TransferFilter) ([]*entity.Transfer, error) {
	var list []*entity.Transfer
	for _, t := range r.store.transfers {
		if t.CompanyID != filter.CompanyID {
			continue
		}
		if filter.Scope != nil && !t.From.Equals(*filter.Scope) && !t.To.Equals(*filter.Scope) {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.Type != "" && t.Type != filter.Type {
			continue
		}
		// Rango de fechas inclusivo, como el BETWEEN de los repos reales.
		if filter.From != nil && t.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && t.CreatedAt.After(*filter.To) {
			continue
		}
		cp := *t
		cp.Items = append([]entity.TransferItem(nil), t.Items...)
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return paginate(list, filter.Limit, filter.Offset), nil
}

func (r *fakeTransferRepo) Statistics(companyID string, scope *entity.Scope) ([]repository.StatusCount, error) {
	byStatus := make(map[domaintransfer.Status]*repository.StatusCount)
	for _, t := range r.store.transfers {
		if t.CompanyID != companyID {
			continue
		}
		if scope != nil && !t.From.Equals(*scope) && !t.To.Equals(*scope) {
			continue
		}
		c, ok := byStatus[t.Status]
		if !ok {
			c = &repository.StatusCount{Status: t.Status, Quantity: decimal.Zero}
			byStatus[t.Status] = c
		}
		c.Count++
		for _, it := range t.Items {
			c.Quantity = c.Quantity.Add(it.Quantity)
		}
	}
	var counts []repository.StatusCount
	for _, c := range byStatus {
		counts = append(counts, *c)
	}
	return counts, nil
}

// ── Movimientos ───────────────────────────────────────────────────────────────

type fakeMovementRepo struct {
	store *fakeStore
}

func (r *fakeMovementRepo) Create(movement *entity.StockMovement) error {
	cp := *movement
	r.store.movements = append(r.store.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) ListByReference(referenceID string) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	for _, m := range r.store.movements {
		if m.ReferenceID == referenceID {
			cp := *m
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *fakeMovementRepo) List(filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	for _, m := range r.store.movements {
		if m.CompanyID != filter.CompanyID {
			continue
		}
		if filter.Scope != nil && !m.Scope.Equals(*filter.Scope) {
			continue
		}
		if filter.InventoryItemID != "" && m.InventoryItemID != filter.InventoryItemID {
			continue
		}
		if filter.Type != "" && m.Type != filter.Type {
			continue
		}
		if filter.From != nil && m.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && m.CreatedAt.After(*filter.To) {
			continue
		}
		cp := *m
		list = append(list, &cp)
	}
	return paginate(list, filter.Limit, filter.Offset), nil
}

// ── Sedes (para el resolver) ──────────────────────────────────────────────────

type fakeBranchRepo struct {
	branches map[string]*entity.Branch
}

func (r *fakeBranchRepo) Create(b *entity.Branch) error {
	r.branches[b.ID] = b
	return nil
}

func (r *fakeBranchRepo) GetByID(id string) (*entity.Branch, error) {
	b, ok := r.branches[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBranchRepo) Update(b *entity.Branch) error {
	r.branches[b.ID] = b
	return nil
}

func (r *fakeBranchRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Branch, error) {
	var list []*entity.Branch
	for _, b := range r.branches {
		if b.CompanyID == companyID {
			list = append(list, b)
		}
	}
	return list, nil
}

func (r *fakeBranchRepo) Delete(id string) error {
	delete(r.branches, id)
	return nil
}

type fakeWarehouseRepo struct {
	warehouses map[string]*entity.Warehouse
}

func (r *fakeWarehouseRepo) Create(w *entity.Warehouse) error {
	r.warehouses[w.ID] = w
	return nil
}

func (r *fakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	w, ok := r.warehouses[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *fakeWarehouseRepo) Update(w *entity.Warehouse) error {
	r.warehouses[w.ID] = w
	return nil
}

func (r *fakeWarehouseRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Warehouse, error) {
	var list []*entity.Warehouse
	for _, w := range r.warehouses {
		if w.CompanyID == companyID {
			list = append(list, w)
		}
	}
	return list, nil
}

func (r *fakeWarehouseRepo) Delete(id string) error {
	delete(r.warehouses, id)
	return nil
}
