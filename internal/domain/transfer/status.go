// Package transfer contiene las reglas de dominio del ciclo de vida de un
// traslado. El estado es un tipo cerrado con tabla de transiciones explícita:
// las transiciones ilegales se rechazan aquí, en un solo lugar, en vez de
// comparar strings dispersos por los controladores.
package transfer

import (
	"fmt"

	"github.com/nmarin/posflow-api/internal/domain"
)

// Status estado del traslado.
type Status string

// Ciclo de vida: pending → approved → shipped → delivered; cancelable
// mientras no sea terminal. "delivered" es el único nombre autoritativo del
// estado final exitoso.
const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// transitions tabla de transiciones permitidas.
// approved → delivered permite completar un traslado sin paso de despacho
// explícito (flujo directo bodega a bodega).
var transitions = map[Status][]Status{
	StatusPending:   {StatusApproved, StatusCancelled},
	StatusApproved:  {StatusShipped, StatusDelivered, StatusCancelled},
	StatusShipped:   {StatusDelivered, StatusCancelled},
	StatusDelivered: {},
	StatusCancelled: {},
}

// ParseStatus valida un estado recibido del exterior.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if _, ok := transitions[st]; !ok {
		return "", fmt.Errorf("estado de traslado desconocido %q: %w", s, domain.ErrInvalidInput)
	}
	return st, nil
}

// Terminal indica si el estado no admite más transiciones.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransition indica si la transición s → to está permitida.
func (s Status) CanTransition(to Status) bool {
	for _, t := range transitions[s] {
		if t == to {
			return true
		}
	}
	return false
}

// Transition valida la transición y devuelve el nuevo estado, o TransitionError.
func (s Status) Transition(to Status) (Status, error) {
	if !s.CanTransition(to) {
		return s, &TransitionError{From: s, To: to}
	}
	return to, nil
}

// TransitionError transición de estado no permitida.
type TransitionError struct {
	From Status
	To   Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("transición de traslado no permitida: %s → %s", e.From, e.To)
}

// Unwrap permite errors.Is(err, domain.ErrConflict).
func (e *TransitionError) Unwrap() error { return domain.ErrConflict }
