package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"github.com/invoiced-app/invoice_backend/internal/core/domain"
	portsrepo "github.com/invoiced-app/invoice_backend/internal/core/ports/repositories"
)

// --- Mock transaction ---

// mockTx satisfies pgx.Tx through embedding; only Commit and Rollback are
// implemented, which is all the services touch.
type mockTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *mockTx) Commit(ctx context.Context) error {
	if t.commitErr != nil {
		return t.commitErr
	}
	t.committed = true
	return nil
}

func (t *mockTx) Rollback(ctx context.Context) error {
	if t.committed {
		return pgx.ErrTxClosed
	}
	t.rolledBack = true
	return nil
}

// --- Mock TxManager ---

type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

var _ portsrepo.TxManager = (*MockTxManager)(nil)

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) SaveUserTx(ctx context.Context, tx pgx.Tx, user domain.User) error {
	args := m.Called(ctx, tx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiryTime time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, expiryTime)
	return args.Error(0)
}

func (m *MockUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) FindUsersByAccountNumbers(ctx context.Context, tx pgx.Tx, accountNumbers []string) ([]domain.User, error) {
	args := m.Called(ctx, tx, accountNumbers)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) UpsertUsersTx(ctx context.Context, tx pgx.Tx, users []domain.User) error {
	args := m.Called(ctx, tx, users)
	return args.Error(0)
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

// --- Mock InvoiceRepository ---

type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID int64) (*domain.InvoiceWithUser, error) {
	args := m.Called(ctx, invoiceID)
	var invoice *domain.InvoiceWithUser
	if args.Get(0) != nil {
		invoice = args.Get(0).(*domain.InvoiceWithUser)
	}
	return invoice, args.Error(1)
}

func (m *MockInvoiceRepository) FindInvoices(ctx context.Context) ([]domain.InvoiceWithUser, error) {
	args := m.Called(ctx)
	var invoices []domain.InvoiceWithUser
	if args.Get(0) != nil {
		invoices = args.Get(0).([]domain.InvoiceWithUser)
	}
	return invoices, args.Error(1)
}

func (m *MockInvoiceRepository) SaveInvoiceTx(ctx context.Context, tx pgx.Tx, invoice domain.Invoice) (int64, error) {
	args := m.Called(ctx, tx, invoice)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) SaveInvoicesTx(ctx context.Context, tx pgx.Tx, invoices []domain.Invoice) error {
	args := m.Called(ctx, tx, invoices)
	return args.Error(0)
}

var _ portsrepo.InvoiceRepositoryFacade = (*MockInvoiceRepository)(nil)
