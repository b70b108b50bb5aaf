package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"design-folio/common/contract"
)

// Store is the hand-written query layer over the document tables. Every
// write is a single statement, so per-document atomicity comes from
// postgres itself.
type Store struct {
	db contract.DbConn
}

func New(db contract.DbConn) *Store {
	return &Store{db: db}
}

// IsUniqueViolation reports whether err is a postgres unique-constraint
// error. Used to catch create races that slip past the exists check.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
