package pgsql

import (
	portsrepo "github.com/invoiced-app/invoice_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	invoiceRepo := newPgxInvoiceRepository(dbPool)

	return portsrepo.RepositoryProvider{
		TxManager:   &BaseRepository{Pool: dbPool},
		UserRepo:    userRepo,
		InvoiceRepo: invoiceRepo,
	}
}
