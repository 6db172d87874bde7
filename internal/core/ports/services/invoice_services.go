package services

import (
	"context"

	"github.com/invoiced-app/invoice_backend/internal/core/domain"
	"github.com/invoiced-app/invoice_backend/internal/dto"
)

// InvoiceReaderSvc defines read operations for invoices
type InvoiceReaderSvc interface {
	// ListInvoices retrieves all invoices with their owning users.
	ListInvoices(ctx context.Context) ([]domain.InvoiceWithUser, error)
}

// InvoiceWriterSvc defines write operations for invoices
type InvoiceWriterSvc interface {
	// CreateInvoice creates a new account holder together with their first
	// invoice. Fails if the account number is already taken.
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.InvoiceWithUser, error)
}

// InvoiceSvcFacade combines all invoice-related service interfaces
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
}

// BulkUploadSvc runs the bulk invoice ingestion pipeline over an uploaded file.
type BulkUploadSvc interface {
	// IngestFile decodes the file at filePath, creates any missing account
	// holders and one invoice per record, all within a single transaction.
	// The file is deleted before IngestFile returns, on every path.
	IngestFile(ctx context.Context, filePath string, requestingUserID string) (string, error)
}
