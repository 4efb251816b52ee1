package postgres

import (
	"errors"

	"crm-service/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// mapError переводит ошибки драйвера в сигнальные ошибки домена,
// чтобы наружу не утекали engine-специфичные коды.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return domain.ErrDuplicate
		case "23503": // foreign_key_violation - ссылка на несуществующую запись
			return domain.ErrNotFound
		}
	}
	return err
}
