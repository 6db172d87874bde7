package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/invoiced-app/invoice_backend/internal/apperrors"
	"github.com/invoiced-app/invoice_backend/internal/core/domain"
	portsrepo "github.com/invoiced-app/invoice_backend/internal/core/ports/repositories"
	portssvc "github.com/invoiced-app/invoice_backend/internal/core/ports/services"
	"github.com/invoiced-app/invoice_backend/internal/dto"
	"github.com/invoiced-app/invoice_backend/internal/utils"
)

type InvoiceService struct {
	txManager   portsrepo.TxManager
	userRepo    portsrepo.UserRepositoryFacade
	invoiceRepo portsrepo.InvoiceRepositoryFacade
}

func NewInvoiceService(
	txManager portsrepo.TxManager,
	userRepo portsrepo.UserRepositoryFacade,
	invoiceRepo portsrepo.InvoiceRepositoryFacade,
) *InvoiceService {
	return &InvoiceService{
		txManager:   txManager,
		userRepo:    userRepo,
		invoiceRepo: invoiceRepo,
	}
}

// Ensure InvoiceService implements portssvc.InvoiceSvcFacade
var _ portssvc.InvoiceSvcFacade = (*InvoiceService)(nil)

func (s *InvoiceService) ListInvoices(ctx context.Context) ([]domain.InvoiceWithUser, error) {
	return s.invoiceRepo.FindInvoices(ctx)
}

// CreateInvoice creates a new account holder and their invoice in one
// transaction. The account number must not be in use yet.
func (s *InvoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.InvoiceWithUser, error) {
	dueOn, ok := utils.ParseDate(req.DueOn)
	if !ok {
		return nil, &apperrors.DateParseError{Value: req.DueOn}
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to hash password", err)
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx) // no-op after a successful commit
	}()

	existing, err := s.userRepo.FindUsersByAccountNumbers(ctx, tx, []string{req.AccountNumber})
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, apperrors.NewAppError(400, "User already exists with this account number.", apperrors.ErrDuplicate)
	}

	now := time.Now()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	user := domain.User{
		UserID:        uuid.NewString(),
		AccountNumber: req.AccountNumber,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         strings.ToLower(req.Email),
		PasswordHash:  passwordHash,
		Role:          domain.Role(req.Role),
		AuditFields:   audit,
	}
	if err := s.userRepo.SaveUserTx(ctx, tx, user); err != nil {
		return nil, err
	}

	invoice := domain.Invoice{
		Amount:        req.Amount,
		Currency:      req.Currency,
		DueOn:         dueOn,
		AccountNumber: req.AccountNumber,
		AuditFields:   audit,
	}
	invoiceID, err := s.invoiceRepo.SaveInvoiceTx(ctx, tx, invoice)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperrors.NewAppError(500, "failed to commit invoice creation", err)
	}

	return s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
}
