package dto

import (
	"time"

	"github.com/invoiced-app/invoice_backend/internal/core/domain"
	"github.com/invoiced-app/invoice_backend/internal/utils"
)

// CreateInvoiceRequest defines the payload for single invoice creation.
// The referenced account number must not exist yet; the user is created
// together with the invoice.
type CreateInvoiceRequest struct {
	AccountNumber string `json:"accountNumber" binding:"required"`
	FirstName     string `json:"firstName" binding:"required"`
	LastName      string `json:"lastName" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=6"`
	Role          string `json:"role" binding:"required,oneof=ADMIN CUSTOMER"`
	Amount        int64  `json:"amount" binding:"required,gt=0"`
	Currency      string `json:"currency" binding:"required"`
	DueOn         string `json:"dueOn" binding:"required"`
}

// InvoiceResponse is the public representation of an invoice. Amount is in
// the smallest unit of Currency; DisplayAmount is the formatted major-unit
// string.
type InvoiceResponse struct {
	InvoiceID     int64       `json:"invoiceID"`
	Amount        int64       `json:"amount"`
	DisplayAmount string      `json:"displayAmount"`
	Currency      string      `json:"currency"`
	DueOn         string      `json:"dueOn"`
	AccountNumber string      `json:"accountNumber"`
	CreatedAt     time.Time   `json:"createdAt"`
	User          InvoiceUser `json:"user"`
}

// InvoiceUser is the owner subset embedded in invoice responses.
type InvoiceUser struct {
	AccountNumber string `json:"accountNumber"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
}

// ToInvoiceResponse converts a domain.InvoiceWithUser to an InvoiceResponse DTO
func ToInvoiceResponse(inv *domain.InvoiceWithUser) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:     inv.InvoiceID,
		Amount:        inv.Amount,
		DisplayAmount: utils.FormatMinorUnits(inv.Amount, inv.Currency),
		Currency:      inv.Currency,
		DueOn:         inv.DueOn.Format("2006-01-02"),
		AccountNumber: inv.AccountNumber,
		CreatedAt:     inv.CreatedAt,
		User: InvoiceUser{
			AccountNumber: inv.User.AccountNumber,
			FirstName:     inv.User.FirstName,
			LastName:      inv.User.LastName,
			Email:         inv.User.Email,
		},
	}
}

// ListInvoicesResponse wraps the list of invoices.
type ListInvoicesResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
}

// ToListInvoicesResponse converts domain invoices to a ListInvoicesResponse DTO
func ToListInvoicesResponse(invoices []domain.InvoiceWithUser) ListInvoicesResponse {
	responses := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = ToInvoiceResponse(&invoices[i])
	}
	return ListInvoicesResponse{Invoices: responses}
}

// BulkUploadResponse is returned by the bulk upload endpoint.
type BulkUploadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
