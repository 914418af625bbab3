package transfer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nmarin/posflow-api/internal/application/scope"
	"github.com/nmarin/posflow-api/internal/domain"
	"github.com/nmarin/posflow-api/internal/domain/entity"
	"github.com/nmarin/posflow-api/internal/domain/repository"
	"github.com/nmarin/posflow-api/internal/domain/transfer"
)

// UpdateStatus aplica una transición administrativa (approved, shipped,
// cancelled) validada contra la tabla central de transiciones. Solo admin.
// delivered no se acepta aquí: el abono en destino exige la fase Complete.
// Cancelar un traslado no entregado repone la reserva en origen en la misma
// transacción, con movimientos compensatorios en el log.
func (uc *WorkflowUseCase) UpdateStatus(ctx context.Context, actor scope.Actor, transferID, statusStr, notes string) (*entity.Transfer, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("solo admin puede cambiar el estado de un traslado: %w", domain.ErrForbidden)
	}

	target, err := transfer.ParseStatus(statusStr)
	if err != nil {
		return nil, err
	}
	if target == transfer.StatusDelivered {
		return nil, fmt.Errorf("delivered solo vía completar traslado: %w", domain.ErrInvalidInput)
	}

	t, err := uc.transfers.GetByID(transferID)
	if err != nil {
		return nil, err
	}
	if t == nil || t.CompanyID != actor.CompanyID {
		return nil, domain.ErrNotFound
	}
	if _, err := t.Status.Transition(target); err != nil {
		return nil, err
	}

	var approvedBy *string
	if target == transfer.StatusApproved {
		approvedBy = &actor.UserID
	}

	now := time.Now()
	if target == transfer.StatusCancelled {
		err = uc.cancel(ctx, actor, t, notes, now)
	} else {
		err = uc.transfers.UpdateStatus(t.ID, t.Status, target, approvedBy)
	}
	if err != nil {
		return nil, err
	}

	t.Status = target
	if approvedBy != nil {
		t.ApprovedBy = *approvedBy
	}
	t.UpdatedAt = now
	return t, nil
}

// cancel repone en origen el stock reservado en la creación. La reversa se
// registra como TRANSFER_IN en la sede origen, manteniendo el log append-only.
func (uc *WorkflowUseCase) cancel(ctx context.Context, actor scope.Actor, t *entity.Transfer, notes string, now time.Time) error {
	return uc.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		transferRepo repository.TransferRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		// CAS primero: una cancelación concurrente no debe reponer dos veces.
		if err := transferRepo.UpdateStatus(t.ID, t.Status, transfer.StatusCancelled, nil); err != nil {
			return err
		}
		for _, line := range t.Items {
			if err := addStockAtScope(itemRepo, t, line, t.From, now); err != nil {
				return err
			}
			movNotes := notes
			if movNotes == "" {
				movNotes = "reversa por cancelación de traslado"
			}
			mov := &entity.StockMovement{
				ID:              uuid.New().String(),
				CompanyID:       t.CompanyID,
				InventoryItemID: line.InventoryItemID,
				Scope:           t.From,
				Type:            entity.MovementTypeTransferIn,
				Quantity:        line.Quantity,
				ReferenceID:     t.ID,
				Notes:           movNotes,
				CreatedAt:       now,
				CreatedBy:       actor.UserID,
			}
			if err := movementRepo.Create(mov); err != nil {
				return err
			}
		}
		return nil
	})
}
