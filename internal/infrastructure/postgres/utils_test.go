package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", ConstraintName: "inventory_items_company_scope_sku_key"}

	assert.True(t, isUniqueViolation(unique))
	assert.True(t, isUniqueViolation(fmt.Errorf("insertar item: %w", unique)), "debe verse a través de wraps")

	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}), "una FK violada no es duplicado")
	assert.False(t, isUniqueViolation(errors.New("23505 en el texto no basta")))
	assert.False(t, isUniqueViolation(nil))
}
