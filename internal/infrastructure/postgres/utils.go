package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// pgCode extrae el código SQLSTATE de un error de PostgreSQL, o "" si no aplica.
func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return pgCode(err) == "23505" || strings.Contains(err.Error(), "23505")
}

// isForeignKeyViolation verifica si un error es una violación de clave foránea
// (23503): borrar un registro aún referenciado por movimientos, saldos o líneas.
func isForeignKeyViolation(err error) bool {
	return pgCode(err) == "23503" || strings.Contains(err.Error(), "23503")
}
