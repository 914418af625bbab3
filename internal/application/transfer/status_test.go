package transfer_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmarin/posflow-api/internal/domain"
	"github.com/nmarin/posflow-api/internal/domain/entity"
	domaintransfer "github.com/nmarin/posflow-api/internal/domain/transfer"
)

func TestActualizarEstado_AprobarRegistraAprobador(t *testing.T) {
	env := newTestEnv(t)
	env.seedItem("item-1", "SKU-001", scopeWHCentral, "10")

	tr := pendingTransfer(t, env, domaintransfer.StatusPending, "item-1", "4")

	got, err := env.workflow.UpdateStatus(context.Background(), adminActor, tr.ID, "approved", "")
	require.NoError(t, err)
	assert.Equal(t, domaintransfer.StatusApproved, got.Status)
	assert.Equal(t, adminActor.UserID, got.ApprovedBy)

	persisted, err := env.query.GetByID(context.Background(), adminActor, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, "approved", persisted.Status)
	assert.Equal(t, adminActor.UserID, persisted.ApprovedBy)
}

func TestActualizarEstado_SoloAdmin(t *testing.T) {
	env := newTestEnv(t)
	env.seedItem("item-1", "SKU-001", scopeWHCentral, "10")

	tr := pendingTransfer(t, env, domaintransfer.StatusPending, "item-1", "4")

	_, err := env.workflow.UpdateStatus(context.Background(), bodeguero, tr.ID, "approved", "")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = env.workflow.UpdateStatus(context.Background(), cajero, tr.ID, "approved", "")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestActualizarEstado_DeliveredSoloViaCompletar(t *testing.T) {
	env := newTestEnv(t)
	env.seedItem("item-1", "SKU-001", scopeWHCentral, "10")

	tr := pendingTransfer(t, env, domaintransfer.StatusShipped, "item-1", "4")

	// delivered por la vía administrativa saltaría el abono en destino.
	_, err := env.workflow.UpdateStatus(context.Background(), adminActor, tr.ID, "delivered", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestActualizarEstado_TransicionInvalida(t *testing.T) {
	env := newTestEnv(t)
	env.seedItem("item-1", "SKU-001", scopeWHCentral, "10")

	tr := pendingTransfer(t, env, domaintransfer.StatusPending, "item-1", "4")

	// pending → shipped se salta la aprobación.
	_, err := env.workflow.UpdateStatus(context.Background(), adminActor, tr.ID, "shipped", "")
	assert.ErrorIs(t, err, domain.ErrConflict)

	var transition *domaintransfer.TransitionError
	require.ErrorAs(t, err, &transition)
	assert.Equal(t, domaintransfer.StatusPending, transition.From)
	assert.Equal(t, domaintransfer.StatusShipped, transition.To)
}

func TestActualizarEstado_EstadoDesconocido(t *testing.T) {
	env := newTestEnv(t)
	env.seedItem("item-1", "SKU-001", scopeWHCentral, "10")

	tr := pendingTransfer(t, env, domaintransfer.StatusPending, "item-1", "4")

	_, err := env.workflow.UpdateStatus(context.Background(), adminActor, tr.ID, "perdido", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCancelarTraslado_ReponeStockEnOrigen(t *testing.T) {
	env := newTestEnv(t)
	env.seedItem("item-1", "SKU-001", scopeWHCentral, "10")

	tr := pendingTransfer(t, env, domaintransfer.StatusApproved, "item-1", "4")
	require.True(t, env.stockOf(t, "item-1").Equal(decimal.RequireFromString("6")))

	got, err := env.workflow.UpdateStatus(context.Background(), adminActor, tr.ID, "cancelled", "sobrestock en destino")
	require.NoError(t, err)
	assert.Equal(t, domaintransfer.StatusCancelled, got.Status)

	// La reserva vuelve al origen.
	assert.True(t, env.stockOf(t, "item-1").Equal(decimal.RequireFromString("10")))

	// El log queda append-only: la salida original más la reversa.
	movs, err := (&fakeMovementRepo{store: env.store}).ListByReference(tr.ID)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, entity.MovementTypeTransferOut, movs[0].Type)
	assert.Equal(t, entity.MovementTypeTransferIn, movs[1].Type)
	assert.True(t, movs[1].Quantity.Equal(decimal.RequireFromString("4")))
	assert.Equal(t, scopeWHCentral, movs[1].Scope)
	assert.Equal(t, "sobrestock en destino", movs[1].Notes)
}

func TestCancelarTraslado_DespachadoTambienRepone(t *testing.T) {
	env := newTestEnv(t)
	env.seedItem("item-1", "SKU-001", scopeWHCentral, "10")

	tr := pendingTransfer(t, env, domaintransfer.StatusShipped, "item-1", "4")

	_, err := env.workflow.UpdateStatus(context.Background(), adminActor, tr.ID, "cancelled", "")
	require.NoError(t, err)
	assert.True(t, env.stockOf(t, "item-1").Equal(decimal.RequireFromString("10")))
}

func TestCancelarTraslado_EntregadoEsTerminal(t *testing.T) {
	env := newTestEnv(t)
	env.seedItem("item-1", "SKU-001", scopeWHCentral, "10")
	env.seedItem("item-2", "SKU-001", scopeWHNorte, "0")

	tr := pendingTransfer(t, env, domaintransfer.StatusApproved, "item-1", "4")
	_, err := env.workflow.Complete(context.Background(), adminActor, tr.ID, "")
	require.NoError(t, err)

	_, err = env.workflow.UpdateStatus(context.Background(), adminActor, tr.ID, "cancelled", "")
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Nada se repone: el destino ya recibió la mercadería.
	assert.True(t, env.stockOf(t, "item-1").Equal(decimal.RequireFromString("6")))
	assert.True(t, env.stockOf(t, "item-2").Equal(decimal.RequireFromString("4")))
}

func TestCancelarTraslado_DobleCancelacionNoReponeDosVeces(t *testing.T) {
	env := newTestEnv(t)
	env.seedItem("item-1", "SKU-001", scopeWHCentral, "10")

	tr := pendingTransfer(t, env, domaintransfer.StatusPending, "item-1", "4")

	_, err := env.workflow.UpdateStatus(context.Background(), adminActor, tr.ID, "cancelled", "")
	require.NoError(t, err)

	_, err = env.workflow.UpdateStatus(context.Background(), adminActor, tr.ID, "cancelled", "")
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.True(t, env.stockOf(t, "item-1").Equal(decimal.RequireFromString("10")),
		"la segunda cancelación no debe reponer de nuevo")
}
