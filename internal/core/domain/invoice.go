package domain

import "time"

// Invoice represents a receivable owed by an account holder. Amount is an
// integer in the smallest unit of Currency. Invoices reference their owner by
// account number, not by the internal user ID.
type Invoice struct {
	InvoiceID     int64     `json:"invoiceID"`
	Amount        int64     `json:"amount"`
	Currency      string    `json:"currency"`
	DueOn         time.Time `json:"dueOn"`
	AccountNumber string    `json:"accountNumber"`
	AuditFields
}

// InvoiceWithUser is an invoice joined with the owning user's public fields.
type InvoiceWithUser struct {
	Invoice
	User InvoiceUser `json:"user"`
}

// InvoiceUser is the subset of user fields exposed alongside an invoice.
type InvoiceUser struct {
	AccountNumber string `json:"accountNumber"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
}
