package duckdb

import (
	"context"
	"database/sql"
)

type txKey struct{}

// WithTransaction carries a transaction through the context so store
// methods can join a scan iteration's write without changing their
// signatures.
func WithTransaction(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// GetTransaction returns the transaction in the context, or nil when
// the call runs outside one.
func GetTransaction(ctx context.Context) *sql.Tx {
	tx, _ := ctx.Value(txKey{}).(*sql.Tx)
	return tx
}
