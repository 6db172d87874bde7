package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TxManager starts database transactions. Callers own the returned pgx.Tx and
// must either commit or roll it back on every exit path.
type TxManager interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
