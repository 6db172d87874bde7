package pgsql

import (
	"context"
	"errors"

	"github.com/invoiced-app/invoice_backend/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// isUniqueViolation reports whether err is a unique-constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// wrapStorageErr maps backend failures to app errors, preserving duplicate-key
// violations as apperrors.ErrDuplicate for callers that retry or report them.
func wrapStorageErr(message string, err error) error {
	if isUniqueViolation(err) {
		return apperrors.NewAppError(409, message, apperrors.ErrDuplicate)
	}
	return apperrors.NewAppError(500, message, err)
}
