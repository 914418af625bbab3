package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/nmarin/posflow-api/internal/domain"
	"github.com/nmarin/posflow-api/internal/domain/entity"
	"github.com/nmarin/posflow-api/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

// InventoryItemRepo implementación sobre PostgreSQL (usable con pool o tx).
// Las variantes ForUpdate bloquean la fila; solo tienen sentido dentro de una tx.
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

const itemSelect = `
	SELECT id, company_id, scope_type, scope_id, sku, name, description, current_stock, cost_price, selling_price, created_at, updated_at
	FROM inventory_items`

// Create persiste un item de inventario.
func (r *InventoryItemRepo) Create(item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (id, company_id, scope_type, scope_id, sku, name, description, current_stock, cost_price, selling_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.CompanyID, item.Scope.Type, item.Scope.ID, item.SKU, item.Name, item.Description,
		item.CurrentStock, item.CostPrice, item.SellingPrice, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory item: %w", err)
	}
	return nil
}

// GetByID obtiene un item por ID.
func (r *InventoryItemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	return r.queryOne(itemSelect+` WHERE id = $1`, id)
}

// GetForUpdate obtiene un item bloqueando la fila (SELECT FOR UPDATE).
func (r *InventoryItemRepo) GetForUpdate(id string) (*entity.InventoryItem, error) {
	return r.queryOne(itemSelect+` WHERE id = $1 FOR UPDATE`, id)
}

// GetBySKU obtiene el item de un SKU en una sede.
func (r *InventoryItemRepo) GetBySKU(companyID string, scope entity.Scope, sku string) (*entity.InventoryItem, error) {
	return r.queryOne(itemSelect+` WHERE company_id = $1 AND scope_type = $2 AND scope_id = $3 AND sku = $4`,
		companyID, scope.Type, scope.ID, sku)
}

// GetBySKUForUpdate como GetBySKU pero bloqueando la fila.
func (r *InventoryItemRepo) GetBySKUForUpdate(companyID string, scope entity.Scope, sku string) (*entity.InventoryItem, error) {
	return r.queryOne(itemSelect+` WHERE company_id = $1 AND scope_type = $2 AND scope_id = $3 AND sku = $4 FOR UPDATE`,
		companyID, scope.Type, scope.ID, sku)
}

// UpdateStock suma quantity (con signo) al stock actual del item.
// El CHECK de la tabla impide dejar stock negativo aunque algún caso de uso falle en validar.
func (r *InventoryItemRepo) UpdateStock(id string, quantity decimal.Decimal) error {
	query := `
		UPDATE inventory_items SET current_stock = current_stock + $2, updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, id, quantity)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Update actualiza los campos editables de un item (no el stock).
func (r *InventoryItemRepo) Update(item *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items SET name = $2, description = $3, cost_price = $4, selling_price = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Description, item.CostPrice, item.SellingPrice, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update inventory item: %w", err)
	}
	return nil
}

// ListByScope lista items de una sede con paginación.
func (r *InventoryItemRepo) ListByScope(companyID string, scope entity.Scope, limit, offset int) ([]*entity.InventoryItem, error) {
	query := itemSelect + ` WHERE company_id = $1 AND scope_type = $2 AND scope_id = $3 ORDER BY sku LIMIT $4 OFFSET $5`
	return r.queryMany(query, companyID, scope.Type, scope.ID, limit, offset)
}

// ListByCompany lista items de toda la empresa con paginación.
func (r *InventoryItemRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.InventoryItem, error) {
	query := itemSelect + ` WHERE company_id = $1 ORDER BY sku LIMIT $2 OFFSET $3`
	return r.queryMany(query, companyID, limit, offset)
}

// Delete elimina un item por ID.
func (r *InventoryItemRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete inventory item: %w", err)
	}
	return nil
}

func (r *InventoryItemRepo) queryOne(query string, args ...any) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&it.ID, &it.CompanyID, &it.Scope.Type, &it.Scope.ID, &it.SKU, &it.Name, &it.Description,
		&it.CurrentStock, &it.CostPrice, &it.SellingPrice, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return &it, nil
}

func (r *InventoryItemRepo) queryMany(query string, args ...any) ([]*entity.InventoryItem, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryItem
	for rows.Next() {
		var it entity.InventoryItem
		if err := rows.Scan(&it.ID, &it.CompanyID, &it.Scope.Type, &it.Scope.ID, &it.SKU, &it.Name, &it.Description,
			&it.CurrentStock, &it.CostPrice, &it.SellingPrice, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}
