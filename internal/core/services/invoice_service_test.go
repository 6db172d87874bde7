package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/invoiced-app/invoice_backend/internal/apperrors"
	"github.com/invoiced-app/invoice_backend/internal/core/domain"
	portssvc "github.com/invoiced-app/invoice_backend/internal/core/ports/services"
	"github.com/invoiced-app/invoice_backend/internal/core/services"
	"github.com/invoiced-app/invoice_backend/internal/dto"
)

type InvoiceServiceTestSuite struct {
	suite.Suite
	mockTxMgr       *MockTxManager
	mockUserRepo    *MockUserRepository
	mockInvoiceRepo *MockInvoiceRepository
	tx              *mockTx
	service         portssvc.InvoiceSvcFacade
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.mockTxMgr = new(MockTxManager)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.tx = &mockTx{}
	suite.service = services.NewInvoiceService(suite.mockTxMgr, suite.mockUserRepo, suite.mockInvoiceRepo)
}

func validCreateInvoiceRequest() dto.CreateInvoiceRequest {
	return dto.CreateInvoiceRequest{
		AccountNumber: "AC900",
		FirstName:     "Ada",
		LastName:      "Lovelace",
		Email:         "Ada@Example.com",
		Password:      "password123",
		Role:          "CUSTOMER",
		Amount:        1500,
		Currency:      "USD",
		DueOn:         "2026-09-01",
	}
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_Success() {
	ctx := context.Background()
	req := validCreateInvoiceRequest()
	created := &domain.InvoiceWithUser{
		Invoice: domain.Invoice{InvoiceID: 42, Amount: 1500, Currency: "USD", AccountNumber: "AC900"},
		User:    domain.InvoiceUser{AccountNumber: "AC900", Email: "ada@example.com"},
	}

	suite.mockTxMgr.On("Begin", ctx).Return(suite.tx, nil).Once()
	suite.mockUserRepo.On("FindUsersByAccountNumbers", ctx, suite.tx, []string{"AC900"}).
		Return(nil, nil).Once()
	suite.mockUserRepo.On("SaveUserTx", ctx, suite.tx, mock.MatchedBy(func(user domain.User) bool {
		return user.AccountNumber == "AC900" &&
			user.Email == "ada@example.com" &&
			user.Role == domain.RoleCustomer &&
			user.PasswordHash != "" && user.PasswordHash != req.Password &&
			user.CreatedBy == "admin-1"
	})).Return(nil).Once()
	suite.mockInvoiceRepo.On("SaveInvoiceTx", ctx, suite.tx, mock.MatchedBy(func(invoice domain.Invoice) bool {
		return invoice.Amount == 1500 &&
			invoice.AccountNumber == "AC900" &&
			invoice.DueOn.Format("2006-01-02") == "2026-09-01"
	})).Return(int64(42), nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, int64(42)).Return(created, nil).Once()

	invoice, err := suite.service.CreateInvoice(ctx, req, "admin-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(invoice)
	suite.Equal(int64(42), invoice.InvoiceID)
	suite.True(suite.tx.committed)
	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_AccountNumberTaken() {
	ctx := context.Background()
	req := validCreateInvoiceRequest()

	suite.mockTxMgr.On("Begin", ctx).Return(suite.tx, nil).Once()
	suite.mockUserRepo.On("FindUsersByAccountNumbers", ctx, suite.tx, []string{"AC900"}).
		Return([]domain.User{{AccountNumber: "AC900"}}, nil).Once()

	invoice, err := suite.service.CreateInvoice(ctx, req, "admin-1")

	suite.Require().Error(err)
	suite.Nil(invoice)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.True(suite.tx.rolledBack)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUserTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_BadDueDate() {
	ctx := context.Background()
	req := validCreateInvoiceRequest()
	req.DueOn = "soon"

	invoice, err := suite.service.CreateInvoice(ctx, req, "admin-1")

	suite.Require().Error(err)
	suite.Nil(invoice)
	var dateErr *apperrors.DateParseError
	suite.Require().ErrorAs(err, &dateErr)
	suite.Equal("soon", dateErr.Value)
	// No transaction is opened for a request that fails validation.
	suite.mockTxMgr.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_SaveError_RollsBack() {
	ctx := context.Background()
	req := validCreateInvoiceRequest()
	expectedErr := assert.AnError

	suite.mockTxMgr.On("Begin", ctx).Return(suite.tx, nil).Once()
	suite.mockUserRepo.On("FindUsersByAccountNumbers", ctx, suite.tx, []string{"AC900"}).
		Return(nil, nil).Once()
	suite.mockUserRepo.On("SaveUserTx", ctx, suite.tx, mock.AnythingOfType("domain.User")).
		Return(expectedErr).Once()

	invoice, err := suite.service.CreateInvoice(ctx, req, "admin-1")

	suite.Require().Error(err)
	suite.Nil(invoice)
	suite.ErrorIs(err, expectedErr)
	suite.True(suite.tx.rolledBack)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveInvoiceTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestListInvoices_Success() {
	ctx := context.Background()
	expected := []domain.InvoiceWithUser{
		{Invoice: domain.Invoice{InvoiceID: 1}},
		{Invoice: domain.Invoice{InvoiceID: 2}},
	}

	suite.mockInvoiceRepo.On("FindInvoices", ctx).Return(expected, nil).Once()

	invoices, err := suite.service.ListInvoices(ctx)

	suite.Require().NoError(err)
	suite.Len(invoices, 2)
}

func TestInvoiceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}
