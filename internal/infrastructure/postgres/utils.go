package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Código de error de PostgreSQL que los repos traducen a domain.ErrDuplicate.
const codeUniqueViolation = "23505"

// isUniqueViolation indica si err viene de un índice único del esquema
// (SKU por sede, email por empresa).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation
}
