package transfer_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmarin/posflow-api/internal/domain"
	"github.com/nmarin/posflow-api/internal/domain/transfer"
)

func TestParseStatus_EstadosConocidos(t *testing.T) {
	for _, s := range []string{"pending", "approved", "shipped", "delivered", "cancelled"} {
		st, err := transfer.ParseStatus(s)
		require.NoError(t, err, "estado %q debe ser válido", s)
		assert.Equal(t, transfer.Status(s), st)
	}
}

func TestParseStatus_EstadoDesconocido(t *testing.T) {
	// "COMPLETED" era un alias histórico; el único nombre autoritativo es "delivered".
	for _, s := range []string{"COMPLETED", "PENDING", "en_camino", ""} {
		_, err := transfer.ParseStatus(s)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "estado %q debe rechazarse", s)
	}
}

func TestTransition_TablaCompleta(t *testing.T) {
	cases := []struct {
		from, to transfer.Status
		ok       bool
	}{
		{transfer.StatusPending, transfer.StatusApproved, true},
		{transfer.StatusPending, transfer.StatusCancelled, true},
		{transfer.StatusPending, transfer.StatusShipped, false},
		{transfer.StatusPending, transfer.StatusDelivered, false},
		{transfer.StatusApproved, transfer.StatusShipped, true},
		{transfer.StatusApproved, transfer.StatusDelivered, true},
		{transfer.StatusApproved, transfer.StatusCancelled, true},
		{transfer.StatusApproved, transfer.StatusPending, false},
		{transfer.StatusShipped, transfer.StatusDelivered, true},
		{transfer.StatusShipped, transfer.StatusCancelled, true},
		{transfer.StatusShipped, transfer.StatusApproved, false},
		// Estados terminales: ninguna transición, ni siquiera a cancelled.
		{transfer.StatusDelivered, transfer.StatusPending, false},
		{transfer.StatusDelivered, transfer.StatusCancelled, false},
		{transfer.StatusCancelled, transfer.StatusPending, false},
		{transfer.StatusCancelled, transfer.StatusApproved, false},
	}
	for _, c := range cases {
		got, err := c.from.Transition(c.to)
		if c.ok {
			require.NoError(t, err, "%s → %s debe permitirse", c.from, c.to)
			assert.Equal(t, c.to, got)
		} else {
			require.Error(t, err, "%s → %s debe rechazarse", c.from, c.to)
			assert.Equal(t, c.from, got, "el estado no debe cambiar en transición ilegal")

			var te *transfer.TransitionError
			require.True(t, errors.As(err, &te))
			assert.Equal(t, c.from, te.From)
			assert.Equal(t, c.to, te.To)
			assert.ErrorIs(t, err, domain.ErrConflict)
		}
	}
}

func TestTerminal(t *testing.T) {
	assert.True(t, transfer.StatusDelivered.Terminal())
	assert.True(t, transfer.StatusCancelled.Terminal())
	assert.False(t, transfer.StatusPending.Terminal())
	assert.False(t, transfer.StatusApproved.Terminal())
	assert.False(t, transfer.StatusShipped.Terminal())
}
