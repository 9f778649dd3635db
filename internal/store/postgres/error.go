package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrPgCode refers to https://www.postgresql.org/docs/current/errcodes-appendix.html
type ErrPgCode string

func (e ErrPgCode) String() string { return string(e) }

const (
	ErrPgCodeUniqueConstraints ErrPgCode = "23505"
	ErrPgCodeForeignKey        ErrPgCode = "23503"
)

// ErrorCodeEqual reports whether err carries the postgres error code
func ErrorCodeEqual(err error, code ErrPgCode) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code.String()
}
