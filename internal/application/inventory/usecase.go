// Package inventory contiene los casos de uso de items y ajustes de inventario.
package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nmarin/posflow-api/internal/application/dto"
	"github.com/nmarin/posflow-api/internal/application/scope"
	"github.com/nmarin/posflow-api/internal/application/transfer"
	"github.com/nmarin/posflow-api/internal/domain"
	"github.com/nmarin/posflow-api/internal/domain/entity"
	"github.com/nmarin/posflow-api/internal/domain/repository"
)

// UseCase casos de uso de inventario: CRUD de items y ajustes manuales.
// El stock nunca se edita directo: todo cambio pasa por un movimiento.
type UseCase struct {
	txRunner  transfer.TxRunner
	items     repository.InventoryItemRepository
	movements repository.StockMovementRepository
	resolver  *scope.Resolver
}

// NewUseCase construye el caso de uso de inventario.
func NewUseCase(txRunner transfer.TxRunner, items repository.InventoryItemRepository, movements repository.StockMovementRepository, resolver *scope.Resolver) *UseCase {
	return &UseCase{txRunner: txRunner, items: items, movements: movements, resolver: resolver}
}

// CreateItem crea un item en una sede. Si trae stock inicial registra el
// movimiento ADJUSTMENT_IN correspondiente en la misma transacción.
func (uc *UseCase) CreateItem(ctx context.Context, actor scope.Actor, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	s := entity.Scope{Type: in.Scope.Type, ID: in.Scope.ID}
	if in.SKU == "" || in.Name == "" {
		return nil, fmt.Errorf("sku y name son obligatorios: %w", domain.ErrInvalidInput)
	}
	if in.InitialStock.IsNegative() {
		return nil, fmt.Errorf("initial_stock no puede ser negativo: %w", domain.ErrInvalidInput)
	}
	if !actor.CanAccessScope(s) {
		return nil, domain.ErrForbidden
	}
	// Valida existencia y empresa de la sede.
	if _, err := uc.resolver.Resolve(ctx, actor.CompanyID, s); err != nil {
		return nil, err
	}

	existing, err := uc.items.GetBySKU(actor.CompanyID, s, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("sku %q ya existe en la sede: %w", in.SKU, domain.ErrDuplicate)
	}

	now := time.Now()
	item := &entity.InventoryItem{
		ID:           uuid.New().String(),
		CompanyID:    actor.CompanyID,
		Scope:        s,
		SKU:          in.SKU,
		Name:         in.Name,
		Description:  in.Description,
		CurrentStock: in.InitialStock,
		CostPrice:    in.CostPrice,
		SellingPrice: in.SellingPrice,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = uc.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		_ repository.TransferRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		if err := itemRepo.Create(item); err != nil {
			return err
		}
		if item.CurrentStock.IsPositive() {
			return movementRepo.Create(&entity.StockMovement{
				ID:              uuid.New().String(),
				CompanyID:       item.CompanyID,
				InventoryItemID: item.ID,
				Scope:           item.Scope,
				Type:            entity.MovementTypeAdjustmentIn,
				Quantity:        item.CurrentStock,
				ReferenceID:     item.ID,
				Notes:           "stock inicial",
				CreatedAt:       now,
				CreatedBy:       actor.UserID,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// GetItem obtiene un item visible para el actor.
func (uc *UseCase) GetItem(actor scope.Actor, id string) (*dto.ItemResponse, error) {
	item, err := uc.visibleItem(actor, id)
	if err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// UpdateItem actualiza los campos editables de un item (nunca el stock).
func (uc *UseCase) UpdateItem(actor scope.Actor, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.visibleItem(actor, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.CostPrice != nil {
		item.CostPrice = *in.CostPrice
	}
	if in.SellingPrice != nil {
		item.SellingPrice = *in.SellingPrice
	}
	item.UpdatedAt = time.Now()
	if err := uc.items.Update(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// ListItems lista items. Admin ve toda la empresa (o filtra por sede);
// el resto solo su sede asignada.
func (uc *UseCase) ListItems(actor scope.Actor, filterScope *entity.Scope, page dto.PageRequest) (*dto.ItemListResponse, error) {
	page.DefaultPage()

	effective := filterScope
	if visible := actor.VisibleScope(); visible != nil {
		effective = visible
	}

	var (
		list []*entity.InventoryItem
		err  error
	)
	if effective != nil {
		list, err = uc.items.ListByScope(actor.CompanyID, *effective, page.Limit, page.Offset)
	} else {
		list, err = uc.items.ListByCompany(actor.CompanyID, page.Limit, page.Offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *toItemResponse(it))
	}
	return &dto.ItemListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// DeleteItem elimina un item. Solo admin.
func (uc *UseCase) DeleteItem(actor scope.Actor, id string) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	item, err := uc.items.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil || item.CompanyID != actor.CompanyID {
		return domain.ErrNotFound
	}
	return uc.items.Delete(id)
}

// RegisterAdjustment registra un ajuste manual de stock. Bloquea la fila del
// item, valida que la salida no deje stock negativo y deja el movimiento en
// el log, todo en una transacción.
func (uc *UseCase) RegisterAdjustment(ctx context.Context, actor scope.Actor, in dto.RegisterAdjustmentRequest) (*dto.MovementResponse, error) {
	if in.Type != entity.MovementTypeAdjustmentIn && in.Type != entity.MovementTypeAdjustmentOut {
		return nil, fmt.Errorf("tipo de ajuste %q desconocido: %w", in.Type, domain.ErrInvalidInput)
	}
	if !in.Quantity.IsPositive() {
		return nil, fmt.Errorf("quantity debe ser positiva: %w", domain.ErrInvalidInput)
	}

	var movement *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		_ repository.TransferRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		item, err := itemRepo.GetForUpdate(in.InventoryItemID)
		if err != nil {
			return err
		}
		if item == nil || item.CompanyID != actor.CompanyID {
			return domain.ErrNotFound
		}
		if !actor.CanAccessScope(item.Scope) {
			return domain.ErrForbidden
		}

		delta := in.Quantity
		if in.Type == entity.MovementTypeAdjustmentOut {
			if item.CurrentStock.LessThan(in.Quantity) {
				return &transfer.InsufficientStockError{
					InventoryItemID: item.ID,
					SKU:             item.SKU,
					Available:       item.CurrentStock,
					Requested:       in.Quantity,
				}
			}
			delta = in.Quantity.Neg()
		}
		if err := itemRepo.UpdateStock(item.ID, delta); err != nil {
			return err
		}

		movement = &entity.StockMovement{
			ID:              uuid.New().String(),
			CompanyID:       item.CompanyID,
			InventoryItemID: item.ID,
			Scope:           item.Scope,
			Type:            in.Type,
			Quantity:        delta,
			ReferenceID:     "",
			Notes:           in.Notes,
			CreatedAt:       time.Now(),
			CreatedBy:       actor.UserID,
		}
		return movementRepo.Create(movement)
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponse(movement), nil
}

// ListMovements lista el log de movimientos visible para el actor.
func (uc *UseCase) ListMovements(actor scope.Actor, in dto.MovementLogFilter) (*dto.MovementListResponse, error) {
	in.DefaultPage()
	filter := repository.MovementFilter{
		CompanyID:       actor.CompanyID,
		Scope:           actor.VisibleScope(),
		InventoryItemID: in.ItemID,
		Type:            in.Type,
		Limit:           in.Limit,
		Offset:          in.Offset,
	}
	list, err := uc.movements.List(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

func (uc *UseCase) visibleItem(actor scope.Actor, id string) (*entity.InventoryItem, error) {
	item, err := uc.items.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil || item.CompanyID != actor.CompanyID {
		return nil, domain.ErrNotFound
	}
	if !actor.CanAccessScope(item.Scope) {
		return nil, domain.ErrForbidden
	}
	return item, nil
}

func toItemResponse(it *entity.InventoryItem) *dto.ItemResponse {
	if it == nil {
		return nil
	}
	return &dto.ItemResponse{
		ID:           it.ID,
		CompanyID:    it.CompanyID,
		Scope:        dto.ScopeDTO{Type: it.Scope.Type, ID: it.Scope.ID},
		SKU:          it.SKU,
		Name:         it.Name,
		Description:  it.Description,
		CurrentStock: it.CurrentStock,
		CostPrice:    it.CostPrice,
		SellingPrice: it.SellingPrice,
		CreatedAt:    it.CreatedAt,
		UpdatedAt:    it.UpdatedAt,
	}
}

func toMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
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
