// Package db holds small database/sql helpers shared by the sqlite stores.
package db

import (
	"database/sql"

	"github.com/cockroachdb/errors"
)

// WithTx executes fn within a transaction.
// It handles Begin, Rollback on error, and Commit on success.
func WithTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer tx.Rollback() //nolint:errcheck // rollback on error is intentional

	if err := fn(tx); err != nil {
		return err
	}
	return errors.Wrap(tx.Commit(), "commit transaction")
}

// NullStringValue returns the string value or empty string if not valid.
func NullStringValue(n sql.NullString) string {
	if !n.Valid {
		return ""
	}
	return n.String
}

// NullFloat64Or returns the float value, or def if not valid.
func NullFloat64Or(n sql.NullFloat64, def float64) float64 {
	if !n.Valid {
		return def
	}
	return n.Float64
}
