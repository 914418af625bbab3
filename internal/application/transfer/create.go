package transfer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nmarin/posflow-api/internal/application/scope"
	"github.com/nmarin/posflow-api/internal/domain"
	"github.com/nmarin/posflow-api/internal/domain/entity"
	"github.com/nmarin/posflow-api/internal/domain/repository"
	"github.com/nmarin/posflow-api/internal/domain/transfer"
)

// WorkflowUseCase orquesta las fases transaccionales del traslado:
// creación (reserva de stock en origen), cambio de estado (incluida la
// cancelación con reposición) y completado (abono en destino).
// Cada fase es una transacción de BD con bloqueo de fila (SELECT FOR UPDATE).
type WorkflowUseCase struct {
	txRunner  TxRunner
	transfers repository.TransferRepository
	resolver  *scope.Resolver
}

// NewWorkflowUseCase construye el caso de uso.
func NewWorkflowUseCase(txRunner TxRunner, transfers repository.TransferRepository, resolver *scope.Resolver) *WorkflowUseCase {
	return &WorkflowUseCase{txRunner: txRunner, transfers: transfers, resolver: resolver}
}

// CreateItemInput línea solicitada en la creación.
type CreateItemInput struct {
	InventoryItemID string
	Quantity        decimal.Decimal
}

// CreateInput entrada para crear un traslado.
type CreateInput struct {
	Actor        scope.Actor
	TransferType string
	From         entity.Scope
	To           entity.Scope
	Items        []CreateItemInput
	Notes        string
}

// Create valida permisos, settings de sede y disponibilidad, y dentro de una
// transacción inserta el traslado, descuenta el stock de origen (reserva
// blanda) y registra un movimiento TRANSFER_OUT por item. Todo o nada:
// cualquier fallo revierte la transacción completa.
func (uc *WorkflowUseCase) Create(ctx context.Context, in CreateInput) (*entity.Transfer, error) {
	if err := validateCreateInput(in); err != nil {
		return nil, err
	}

	// (a) El rol solo puede crear el tipo de traslado de su clase de sede.
	if !in.Actor.CanCreateTransfer(in.TransferType) {
		return nil, fmt.Errorf("el rol %s no puede crear traslados %s: %w",
			in.Actor.Role, in.TransferType, domain.ErrForbidden)
	}

	// (b) Settings de la sede origen: traslados salientes habilitados.
	from, err := uc.resolver.Resolve(ctx, in.Actor.CompanyID, in.From)
	if err != nil {
		return nil, err
	}
	if !from.Settings.AllowOutgoingTransfers {
		return nil, &TransfersDisabledError{ScopeType: in.From.Type, ScopeID: in.From.ID, Direction: "outgoing"}
	}

	to, err := uc.resolver.Resolve(ctx, in.Actor.CompanyID, in.To)
	if err != nil {
		return nil, err
	}
	if !to.Settings.AllowIncomingTransfers {
		return nil, &TransfersDisabledError{ScopeType: in.To.Type, ScopeID: in.To.ID, Direction: "incoming"}
	}

	// (c) La sede asignada del actor debe ser la sede origen declarada (admin exento).
	if !in.Actor.CanAccessScope(in.From) {
		return nil, fmt.Errorf("la sede origen no corresponde a la sede asignada: %w", domain.ErrForbidden)
	}

	now := time.Now()
	t := &entity.Transfer{
		ID:        uuid.New().String(),
		CompanyID: in.Actor.CompanyID,
		Type:      in.TransferType,
		From:      in.From,
		To:        in.To,
		Status:    transfer.StatusPending,
		Notes:     in.Notes,
		CreatedBy: in.Actor.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// (d) Disponibilidad bajo bloqueo de fila, dentro de la misma transacción
	// que el decremento: dos creaciones concurrentes sobre el mismo item no
	// pueden reservar ambas el mismo stock.
	err = uc.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		transferRepo repository.TransferRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		for _, line := range in.Items {
			item, err := itemRepo.GetForUpdate(line.InventoryItemID)
			if err != nil {
				return err
			}
			if item == nil || item.CompanyID != in.Actor.CompanyID || !item.Scope.Equals(in.From) {
				return fmt.Errorf("item %s no existe en la sede origen: %w", line.InventoryItemID, domain.ErrNotFound)
			}
			if item.CurrentStock.LessThan(line.Quantity) {
				return &InsufficientStockError{
					InventoryItemID: item.ID,
					SKU:             item.SKU,
					Available:       item.CurrentStock,
					Requested:       line.Quantity,
				}
			}
			if err := itemRepo.UpdateStock(item.ID, line.Quantity.Neg()); err != nil {
				return err
			}
			t.Items = append(t.Items, entity.TransferItem{
				TransferID:      t.ID,
				InventoryItemID: item.ID,
				SKU:             item.SKU,
				Name:            item.Name,
				Quantity:        line.Quantity,
			})
			mov := &entity.StockMovement{
				ID:              uuid.New().String(),
				CompanyID:       in.Actor.CompanyID,
				InventoryItemID: item.ID,
				Scope:           in.From,
				Type:            entity.MovementTypeTransferOut,
				Quantity:        line.Quantity.Neg(),
				ReferenceID:     t.ID,
				CreatedAt:       now,
				CreatedBy:       in.Actor.UserID,
			}
			if err := movementRepo.Create(mov); err != nil {
				return err
			}
		}
		return transferRepo.Create(t)
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func validateCreateInput(in CreateInput) error {
	if !entity.ValidTransferType(in.TransferType) {
		return fmt.Errorf("tipo de traslado %q: %w", in.TransferType, domain.ErrInvalidInput)
	}
	wantScope := entity.ScopeTypeForTransfer(in.TransferType)
	if in.From.Type != wantScope || in.To.Type != wantScope {
		return fmt.Errorf("el traslado %s exige sedes %s: %w", in.TransferType, wantScope, domain.ErrInvalidInput)
	}
	if in.From.ID == "" || in.To.ID == "" || in.From.Equals(in.To) {
		return fmt.Errorf("sedes origen/destino inválidas: %w", domain.ErrInvalidInput)
	}
	if len(in.Items) == 0 {
		return fmt.Errorf("el traslado no tiene items: %w", domain.ErrInvalidInput)
	}
	seen := make(map[string]struct{}, len(in.Items))
	for _, line := range in.Items {
		if line.InventoryItemID == "" || !line.Quantity.GreaterThan(decimal.Zero) {
			return fmt.Errorf("item con ID o cantidad inválida: %w", domain.ErrInvalidInput)
		}
		if _, dup := seen[line.InventoryItemID]; dup {
			return fmt.Errorf("item %s repetido: %w", line.InventoryItemID, domain.ErrInvalidInput)
		}
		seen[line.InventoryItemID] = struct{}{}
	}
	return nil
}
