package transfer

import (
	"context"
	"fmt"
	"time"

	"github.com/nmarin/posflow-api/internal/application/dto"
	"github.com/nmarin/posflow-api/internal/application/scope"
	"github.com/nmarin/posflow-api/internal/domain"
	"github.com/nmarin/posflow-api/internal/domain/entity"
	"github.com/nmarin/posflow-api/internal/domain/repository"
	"github.com/nmarin/posflow-api/internal/domain/transfer"
)

// QueryUseCase lecturas de traslados y del log de movimientos, restringidas
// por el alcance del rol: cajero ve su sucursal, bodeguero su bodega,
// admin toda la empresa.
type QueryUseCase struct {
	transfers repository.TransferRepository
	movements repository.StockMovementRepository
}

// NewQueryUseCase construye el caso de uso de consultas.
func NewQueryUseCase(transfers repository.TransferRepository, movements repository.StockMovementRepository) *QueryUseCase {
	return &QueryUseCase{transfers: transfers, movements: movements}
}

// List lista traslados con filtros opcionales (estado, tipo, rango de fechas).
func (uc *QueryUseCase) List(ctx context.Context, actor scope.Actor, in dto.TransferListFilter) (*dto.TransferListResponse, error) {
	in.DefaultPage()

	filter := repository.TransferFilter{
		CompanyID: actor.CompanyID,
		Scope:     actor.VisibleScope(),
		Type:      in.Type,
		Limit:     in.Limit,
		Offset:    in.Offset,
	}
	if in.Status != "" {
		st, err := transfer.ParseStatus(in.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = st
	}
	var err error
	if filter.From, err = parseDate(in.From); err != nil {
		return nil, err
	}
	if filter.To, err = parseDate(in.To); err != nil {
		return nil, err
	}

	list, err := uc.transfers.List(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransferResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *ToTransferResponse(t))
	}
	return &dto.TransferListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// GetByID devuelve un traslado si el actor puede verlo (participa su sede).
func (uc *QueryUseCase) GetByID(ctx context.Context, actor scope.Actor, id string) (*dto.TransferResponse, error) {
	t, err := uc.visibleTransfer(actor, id)
	if err != nil {
		return nil, err
	}
	return ToTransferResponse(t), nil
}

// Movements devuelve el log de movimientos generado por un traslado.
func (uc *QueryUseCase) Movements(ctx context.Context, actor scope.Actor, transferID string) ([]dto.MovementResponse, error) {
	if _, err := uc.visibleTransfer(actor, transferID); err != nil {
		return nil, err
	}
	movs, err := uc.movements.ListByReference(transferID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, toMovementResponse(m))
	}
	return out, nil
}

// Logs lista el log de auditoría de movimientos, restringido al alcance del actor.
func (uc *QueryUseCase) Logs(ctx context.Context, actor scope.Actor, in dto.MovementLogFilter) (*dto.MovementListResponse, error) {
	in.DefaultPage()

	filter := repository.MovementFilter{
		CompanyID:       actor.CompanyID,
		Scope:           actor.VisibleScope(),
		InventoryItemID: in.ItemID,
		Type:            in.Type,
		Limit:           in.Limit,
		Offset:          in.Offset,
	}
	var err error
	if filter.From, err = parseDate(in.From); err != nil {
		return nil, err
	}
	if filter.To, err = parseDate(in.To); err != nil {
		return nil, err
	}

	movs, err := uc.movements.List(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		items = append(items, toMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

func (uc *QueryUseCase) visibleTransfer(actor scope.Actor, id string) (*entity.Transfer, error) {
	t, err := uc.transfers.GetByID(id)
	if err != nil {
		return nil, err
	}
	if t == nil || t.CompanyID != actor.CompanyID {
		return nil, domain.ErrNotFound
	}
	if !actor.IsAdmin() && !actor.CanAccessScope(t.From) && !actor.CanAccessScope(t.To) {
		return nil, domain.ErrForbidden
	}
	return t, nil
}

// parseDate acepta RFC3339 o fecha simple YYYY-MM-DD; vacío devuelve nil.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return &ts, nil
	}
	ts, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("fecha %q inválida: %w", s, domain.ErrInvalidInput)
	}
	return &ts, nil
}

// ToTransferResponse mapea la entidad al DTO de respuesta.
func ToTransferResponse(t *entity.Transfer) *dto.TransferResponse {
	if t == nil {
		return nil
	}
	items := make([]dto.TransferItemResponse, 0, len(t.Items))
	for _, it := range t.Items {
		items = append(items, dto.TransferItemResponse{
			InventoryItemID: it.InventoryItemID,
			SKU:             it.SKU,
			Name:            it.Name,
			Quantity:        it.Quantity,
		})
	}
	return &dto.TransferResponse{
		ID:           t.ID,
		CompanyID:    t.CompanyID,
		TransferType: t.Type,
		FromScope:    dto.ScopeDTO{Type: t.From.Type, ID: t.From.ID},
		ToScope:      dto.ScopeDTO{Type: t.To.Type, ID: t.To.ID},
		Status:       string(t.Status),
		Notes:        t.Notes,
		Items:        items,
		CreatedBy:    t.CreatedBy,
		ApprovedBy:   t.ApprovedBy,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func toMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:              m.ID,
		InventoryItemID: m.InventoryItemID,
		Scope:           dto.ScopeDTO{Type: m.Scope.Type, ID: m.Scope.ID},
		Type:            m.Type,
		Quantity:        m.Quantity,
		ReferenceID:     m.ReferenceID,
		Notes:           m.Notes,
		CreatedAt:       m.CreatedAt,
		CreatedBy:       m.CreatedBy,
	}
}
