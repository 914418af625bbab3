package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/nmarin/posflow-api/internal/domain"
	"github.com/nmarin/posflow-api/internal/domain/entity"
	"github.com/nmarin/posflow-api/internal/domain/repository"
	"github.com/nmarin/posflow-api/internal/domain/transfer"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implementación sobre PostgreSQL (usable con pool o tx).
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

const transferSelect = `
	SELECT id, company_id, transfer_type, from_scope_type, from_scope_id, to_scope_type, to_scope_id,
	       status, notes, created_by, approved_by, created_at, updated_at
	FROM transfers`

// Create persiste el encabezado del traslado y sus items.
func (r *TransferRepo) Create(t *entity.Transfer) error {
	ctx := context.Background()
	query := `
		INSERT INTO transfers (id, company_id, transfer_type, from_scope_type, from_scope_id, to_scope_type, to_scope_id, status, notes, created_by, approved_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.CompanyID, t.Type, t.From.Type, t.From.ID, t.To.Type, t.To.ID,
		string(t.Status), t.Notes, t.CreatedBy, nullIfEmpty(t.ApprovedBy), t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transfer: %w", err)
	}

	itemQuery := `
		INSERT INTO transfer_items (transfer_id, inventory_item_id, sku, name, quantity)
		VALUES ($1, $2, $3, $4, $5)`
	for _, item := range t.Items {
		if _, err := r.q.Exec(ctx, itemQuery,
			t.ID, item.InventoryItemID, item.SKU, item.Name, item.Quantity,
		); err != nil {
			return fmt.Errorf("insert transfer item: %w", err)
		}
	}
	return nil
}

// GetByID devuelve el traslado con sus items, o nil si no existe.
func (r *TransferRepo) GetByID(id string) (*entity.Transfer, error) {
	t, err := r.scanOne(transferSelect+` WHERE id = $1`, id)
	if err != nil || t == nil {
		return t, err
	}
	items, err := r.loadItems(t.ID)
	if err != nil {
		return nil, err
	}
	t.Items = items
	return t, nil
}

// UpdateStatus cambia el estado con guarda CAS sobre el estado previo.
// Si la fila ya no está en from (otro proceso ganó la carrera) retorna domain.ErrConflict.
func (r *TransferRepo) UpdateStatus(id string, from, to transfer.Status, approvedBy *string) error {
	query := `
		UPDATE transfers SET status = $3, approved_by = COALESCE($4, approved_by), updated_at = now()
		WHERE id = $1 AND status = $2`
	cmd, err := r.q.Exec(context.Background(), query, id, string(from), string(to), approvedBy)
	if err != nil {
		return fmt.Errorf("update transfer status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

// List lista traslados según filtros; la sede filtra como origen o destino.
func (r *TransferRepo) List(filter repository.TransferFilter) ([]*entity.Transfer, error) {
	query := transferSelect + ` WHERE company_id = $1`
	args := []any{filter.CompanyID}
	pos := 2
	if filter.Scope != nil {
		query += fmt.Sprintf(` AND ((from_scope_type = $%d AND from_scope_id = $%d) OR (to_scope_type = $%d AND to_scope_id = $%d))`,
			pos, pos+1, pos, pos+1)
		args = append(args, filter.Scope.Type, filter.Scope.ID)
		pos += 2
	}
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, string(filter.Status))
		pos++
	}
	if filter.Type != "" {
		query += fmt.Sprintf(" AND transfer_type = $%d", pos)
		args = append(args, filter.Type)
		pos++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transfer
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, t := range list {
		items, err := r.loadItems(t.ID)
		if err != nil {
			return nil, err
		}
		t.Items = items
	}
	return list, nil
}

// Statistics agrega conteo y cantidad total de items por estado.
func (r *TransferRepo) Statistics(companyID string, scope *entity.Scope) ([]repository.StatusCount, error) {
	query := `
		SELECT t.status, COUNT(DISTINCT t.id), COALESCE(SUM(ti.quantity), 0)
		FROM transfers t
		LEFT JOIN transfer_items ti ON ti.transfer_id = t.id
		WHERE t.company_id = $1`
	args := []any{companyID}
	if scope != nil {
		query += ` AND ((t.from_scope_type = $2 AND t.from_scope_id = $3) OR (t.to_scope_type = $2 AND t.to_scope_id = $3))`
		args = append(args, scope.Type, scope.ID)
	}
	query += ` GROUP BY t.status`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("transfer statistics: %w", err)
	}
	defer rows.Close()
	var counts []repository.StatusCount
	for rows.Next() {
		var c repository.StatusCount
		var status string
		if err := rows.Scan(&status, &c.Count, &c.Quantity); err != nil {
			return nil, fmt.Errorf("scan statistics: %w", err)
		}
		c.Status = transfer.Status(status)
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func (r *TransferRepo) scanOne(query string, args ...any) (*entity.Transfer, error) {
	row := r.q.QueryRow(context.Background(), query, args...)
	t, err := scanTransferRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	return t, nil
}

func (r *TransferRepo) loadItems(transferID string) ([]entity.TransferItem, error) {
	query := `
		SELECT transfer_id, inventory_item_id, sku, name, quantity
		FROM transfer_items WHERE transfer_id = $1 ORDER BY sku`
	rows, err := r.q.Query(context.Background(), query, transferID)
	if err != nil {
		return nil, fmt.Errorf("list transfer items: %w", err)
	}
	defer rows.Close()
	var items []entity.TransferItem
	for rows.Next() {
		var it entity.TransferItem
		if err := rows.Scan(&it.TransferID, &it.InventoryItemID, &it.SKU, &it.Name, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan transfer item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransferRow(row rowScanner) (*entity.Transfer, error) {
	var t entity.Transfer
	var status string
	var approvedBy *string
	err := row.Scan(
		&t.ID, &t.CompanyID, &t.Type, &t.From.Type, &t.From.ID, &t.To.Type, &t.To.ID,
		&status, &t.Notes, &t.CreatedBy, &approvedBy, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.Status = transfer.Status(status)
	if approvedBy != nil {
		t.ApprovedBy = *approvedBy
	}
	return &t, nil
}

func scanTransfer(rows pgx.Rows) (*entity.Transfer, error) {
	t, err := scanTransferRow(rows)
	if err != nil {
		return nil, fmt.Errorf("scan transfer: %w", err)
	}
	return t, nil
}
