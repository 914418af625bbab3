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

// Complete entrega el traslado: dentro de una transacción abona el stock en
// destino (creando el item por SKU si no existe), registra un movimiento
// TRANSFER_IN por item y marca el traslado como delivered. El origen ya fue
// descontado en la creación y no se toca de nuevo.
// Solo admin o bodeguero; el bodeguero debe estar asignado a la sede destino.
func (uc *WorkflowUseCase) Complete(ctx context.Context, actor scope.Actor, transferID, notes string) (*entity.Transfer, error) {
	if actor.Role != entity.RoleAdmin && actor.Role != entity.RoleBodeguero {
		return nil, fmt.Errorf("el rol %s no puede completar traslados: %w", actor.Role, domain.ErrForbidden)
	}

	t, err := uc.transfers.GetByID(transferID)
	if err != nil {
		return nil, err
	}
	if t == nil || t.CompanyID != actor.CompanyID {
		return nil, domain.ErrNotFound
	}
	if !actor.CanAccessScope(t.To) {
		return nil, fmt.Errorf("la sede destino no corresponde a la sede asignada: %w", domain.ErrForbidden)
	}
	if _, err := t.Status.Transition(transfer.StatusDelivered); err != nil {
		return nil, err
	}

	now := time.Now()
	err = uc.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		transferRepo repository.TransferRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		// CAS sobre el estado: si otro completado/cancelación ganó la carrera,
		// UpdateStatus no afecta filas y toda la transacción se revierte.
		if err := transferRepo.UpdateStatus(t.ID, t.Status, transfer.StatusDelivered, nil); err != nil {
			return err
		}
		for _, line := range t.Items {
			if err := addStockAtScope(itemRepo, t, line, t.To, now); err != nil {
				return err
			}
			mov := &entity.StockMovement{
				ID:              uuid.New().String(),
				CompanyID:       t.CompanyID,
				InventoryItemID: line.InventoryItemID,
				Scope:           t.To,
				Type:            entity.MovementTypeTransferIn,
				Quantity:        line.Quantity,
				ReferenceID:     t.ID,
				Notes:           notes,
				CreatedAt:       now,
				CreatedBy:       actor.UserID,
			}
			if err := movementRepo.Create(mov); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	t.Status = transfer.StatusDelivered
	t.UpdatedAt = now
	return t, nil
}

// addStockAtScope abona la cantidad de la línea en la sede indicada, bajo
// bloqueo de fila. Si el SKU no existe en la sede, crea el item copiando los
// campos estáticos del item de origen (o de la línea si el origen ya no existe).
func addStockAtScope(itemRepo repository.InventoryItemRepository, t *entity.Transfer, line entity.TransferItem, at entity.Scope, now time.Time) error {
	dest, err := itemRepo.GetBySKUForUpdate(t.CompanyID, at, line.SKU)
	if err != nil {
		return err
	}
	if dest != nil {
		return itemRepo.UpdateStock(dest.ID, line.Quantity)
	}

	fresh := &entity.InventoryItem{
		ID:           uuid.New().String(),
		CompanyID:    t.CompanyID,
		Scope:        at,
		SKU:          line.SKU,
		Name:         line.Name,
		CurrentStock: line.Quantity,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// Un fallo de la consulta aborta la transacción; solo el origen ya
	// eliminado habilita el fallback a los datos de la línea.
	source, err := itemRepo.GetByID(line.InventoryItemID)
	if err != nil {
		return err
	}
	if source != nil {
		fresh.Description = source.Description
		fresh.CostPrice = source.CostPrice
		fresh.SellingPrice = source.SellingPrice
	}
	return itemRepo.Create(fresh)
}
