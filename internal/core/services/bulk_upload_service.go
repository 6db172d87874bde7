package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/invoiced-app/invoice_backend/internal/apperrors"
	"github.com/invoiced-app/invoice_backend/internal/core/domain"
	portsrepo "github.com/invoiced-app/invoice_backend/internal/core/ports/repositories"
	portssvc "github.com/invoiced-app/invoice_backend/internal/core/ports/services"
	"github.com/invoiced-app/invoice_backend/internal/middleware"
	"github.com/invoiced-app/invoice_backend/internal/recordio"
	"github.com/invoiced-app/invoice_backend/internal/utils"
)

const (
	// defaultBulkPassword is the placeholder credential hashed into every
	// bulk-created user. Holders are expected to reset it on first login.
	defaultBulkPassword = "123456"

	defaultCurrency = "USD"

	defaultBatchSize = 100
)

// bulkRequiredFields must all be present in the first record of an upload.
// Only the first record is checked; the rest of the file is trusted to share
// its shape.
var bulkRequiredFields = []string{
	"account_number",
	"first_name",
	"last_name",
	"email",
	"amount",
	"currency",
	"due_on",
}

// BulkUploadService ingests an uploaded file of invoice records: decode,
// validate, reconcile against existing account numbers, then write users and
// invoices in batches inside a single transaction. The uploaded file is
// removed on every exit path.
type BulkUploadService struct {
	txManager   portsrepo.TxManager
	userRepo    portsrepo.UserRepositoryFacade
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	batchSize   int
}

func NewBulkUploadService(
	txManager portsrepo.TxManager,
	userRepo portsrepo.UserRepositoryFacade,
	invoiceRepo portsrepo.InvoiceRepositoryFacade,
	batchSize int,
) *BulkUploadService {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &BulkUploadService{
		txManager:   txManager,
		userRepo:    userRepo,
		invoiceRepo: invoiceRepo,
		batchSize:   batchSize,
	}
}

// Ensure BulkUploadService implements portssvc.BulkUploadSvc
var _ portssvc.BulkUploadSvc = (*BulkUploadService)(nil)

func (s *BulkUploadService) IngestFile(ctx context.Context, filePath string, requestingUserID string) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	defer s.removeUploadedFile(logger, filePath)

	decoder, err := recordio.Open(filePath)
	if err != nil {
		return "", err
	}

	// The whole file is materialized here: reconciliation needs the complete
	// account-number set before any write happens.
	var records []recordio.Record
	if err := decoder.Each(func(r recordio.Record) error {
		records = append(records, r)
		return nil
	}); err != nil {
		return "", err
	}

	if len(records) == 0 {
		return "", apperrors.ErrNoData
	}
	if err := checkRequiredFields(records[0]); err != nil {
		return "", err
	}

	// No transaction is held during the parse phase; open it only now.
	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = tx.Rollback(ctx) // no-op after a successful commit
	}()

	accountNumbers := make([]string, len(records))
	for i, r := range records {
		accountNumbers[i] = fieldString(r, "account_number")
	}

	existing, err := s.userRepo.FindUsersByAccountNumbers(ctx, tx, accountNumbers)
	if err != nil {
		return "", err
	}
	known := make(map[string]struct{}, len(existing))
	for _, u := range existing {
		known[u.AccountNumber] = struct{}{}
	}

	var newRecords []recordio.Record
	for _, r := range records {
		if _, ok := known[fieldString(r, "account_number")]; !ok {
			newRecords = append(newRecords, r)
		}
	}

	now := time.Now()
	if len(newRecords) > 0 {
		if err := s.writeUsers(ctx, tx, newRecords, requestingUserID, now); err != nil {
			return "", err
		}
	}
	if err := s.writeInvoices(ctx, tx, records, requestingUserID, now); err != nil {
		return "", err
	}

	if err := tx.Commit(ctx); err != nil {
		return "", apperrors.NewAppError(500, "failed to commit bulk upload transaction", err)
	}

	logger.Info("Bulk upload committed",
		slog.Int("records", len(records)),
		slog.Int("new_users", len(newRecords)),
	)
	return "Bulk invoice creation completed successfully.", nil
}

// writeUsers upserts one user per record in fixed-size batches. Every
// bulk-created user gets the same placeholder credential hash and the
// CUSTOMER role; re-uploaded account numbers only refresh names and the
// update timestamp.
func (s *BulkUploadService) writeUsers(ctx context.Context, tx pgx.Tx, records []recordio.Record, requestingUserID string, now time.Time) error {
	passwordHash, err := utils.HashPassword(defaultBulkPassword)
	if err != nil {
		return apperrors.NewAppError(500, "failed to hash placeholder password", err)
	}

	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     requestingUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: requestingUserID,
	}

	for start := 0; start < len(records); start += s.batchSize {
		end := min(start+s.batchSize, len(records))
		batch := make([]domain.User, 0, end-start)
		for _, r := range records[start:end] {
			batch = append(batch, domain.User{
				UserID:        uuid.NewString(),
				AccountNumber: fieldString(r, "account_number"),
				FirstName:     fieldString(r, "first_name"),
				LastName:      fieldString(r, "last_name"),
				Email:         strings.ToLower(fieldString(r, "email")),
				PasswordHash:  passwordHash,
				Role:          domain.RoleCustomer,
				AuditFields:   audit,
			})
		}
		if err := s.userRepo.UpsertUsersTx(ctx, tx, batch); err != nil {
			return err
		}
	}
	return nil
}

// writeInvoices inserts one invoice per record in fixed-size batches. Due
// dates are coerced here; a single bad value fails the whole write.
func (s *BulkUploadService) writeInvoices(ctx context.Context, tx pgx.Tx, records []recordio.Record, requestingUserID string, now time.Time) error {
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     requestingUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: requestingUserID,
	}

	for start := 0; start < len(records); start += s.batchSize {
		end := min(start+s.batchSize, len(records))
		batch := make([]domain.Invoice, 0, end-start)
		for _, r := range records[start:end] {
			rawDate := fieldString(r, "due_on")
			dueOn, ok := utils.ParseDate(rawDate)
			if !ok {
				return &apperrors.DateParseError{Value: rawDate}
			}

			amount, err := amountValue(r)
			if err != nil {
				return err
			}

			currency := fieldString(r, "currency")
			if currency == "" {
				currency = defaultCurrency
			}

			batch = append(batch, domain.Invoice{
				Amount:        amount,
				Currency:      currency,
				DueOn:         dueOn,
				AccountNumber: fieldString(r, "account_number"),
				AuditFields:   audit,
			})
		}
		if err := s.invoiceRepo.SaveInvoicesTx(ctx, tx, batch); err != nil {
			return err
		}
	}
	return nil
}

// removeUploadedFile deletes the request-scoped upload. Tolerates the file
// already being gone.
func (s *BulkUploadService) removeUploadedFile(logger *slog.Logger, path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Error("Failed to remove uploaded file",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
	}
}

func checkRequiredFields(first recordio.Record) error {
	var missing []string
	for _, field := range bulkRequiredFields {
		if _, ok := first[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return &apperrors.MissingFieldsError{Fields: missing}
	}
	return nil
}

// fieldString renders a raw record value as a string. JSON files may carry
// numbers where CSV carries text; both are accepted.
func fieldString(r recordio.Record, key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// amountValue coerces a record's amount into minor units.
func amountValue(r recordio.Record) (int64, error) {
	switch v := r["amount"].(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, apperrors.NewAppError(400, fmt.Sprintf("invalid amount value: %v", v), apperrors.ErrValidation)
		}
		return int64(v), nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, apperrors.NewAppError(400, "invalid amount value: "+v, apperrors.ErrValidation)
		}
		return n, nil
	default:
		return 0, apperrors.NewAppError(400, fmt.Sprintf("invalid amount value: %v", v), apperrors.ErrValidation)
	}
}
