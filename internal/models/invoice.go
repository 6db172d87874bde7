package models

import "time"

// Invoice is the persistence representation of an invoice row.
type Invoice struct {
	InvoiceID     int64     `db:"invoice_id"`
	Amount        int64     `db:"amount"`
	Currency      string    `db:"currency"`
	DueOn         time.Time `db:"due_on"`
	AccountNumber string    `db:"account_number"`
	AuditFields
}
