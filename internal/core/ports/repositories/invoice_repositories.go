package repositories

import (
	"context"

	"github.com/invoiced-app/invoice_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// InvoiceReader defines read operations for invoice data
type InvoiceReader interface {
	// FindInvoiceByID retrieves a single invoice joined with its owner.
	FindInvoiceByID(ctx context.Context, invoiceID int64) (*domain.InvoiceWithUser, error)

	// FindInvoices retrieves all invoices joined with their owners.
	FindInvoices(ctx context.Context) ([]domain.InvoiceWithUser, error)
}

// InvoiceWriter defines write operations for invoice data
type InvoiceWriter interface {
	// SaveInvoiceTx persists one invoice within the supplied transaction and
	// returns its assigned ID.
	SaveInvoiceTx(ctx context.Context, tx pgx.Tx, invoice domain.Invoice) (int64, error)

	// SaveInvoicesTx persists a batch of invoices within the supplied transaction.
	SaveInvoicesTx(ctx context.Context, tx pgx.Tx, invoices []domain.Invoice) error
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}
