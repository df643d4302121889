package store

import (
	"context"
	"database/sql"
)

// Execer, Getter and Selecter are the slices of sqlx the stores depend on;
// both *sqlx.DB and *sqlx.Tx satisfy them, so store methods can run inside or
// outside a transaction.

type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type Getter interface {
	GetContext(ctx context.Context, dest any, query string, args ...any) error
}

type Selecter interface {
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
}

type DB interface {
	Execer
	Getter
	Selecter
}
