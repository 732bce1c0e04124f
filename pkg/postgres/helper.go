package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// IsUndefinedTable проверяет, является ли ошибка отсутствием таблицы (SQLSTATE 42P01).
//
// Работает с обернутыми ошибками благодаря errors.As.
func IsUndefinedTable(err error) bool {
	return hasSQLState(err, "42P01")
}

func hasSQLState(err error, code string) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == code
	}
	return false
}
