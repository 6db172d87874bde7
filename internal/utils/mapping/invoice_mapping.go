package mapping

import (
	"github.com/invoiced-app/invoice_backend/internal/core/domain"
	"github.com/invoiced-app/invoice_backend/internal/models"
)

// ToModelInvoice converts a domain Invoice to a model Invoice
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:     d.InvoiceID,
		Amount:        d.Amount,
		Currency:      d.Currency,
		DueOn:         d.DueOn,
		AccountNumber: d.AccountNumber,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoice converts a model Invoice to a domain Invoice
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:     m.InvoiceID,
		Amount:        m.Amount,
		Currency:      m.Currency,
		DueOn:         m.DueOn,
		AccountNumber: m.AccountNumber,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
