package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/invoiced-app/invoice_backend/internal/apperrors"
	"github.com/invoiced-app/invoice_backend/internal/core/domain"
	portssvc "github.com/invoiced-app/invoice_backend/internal/core/ports/services"
	"github.com/invoiced-app/invoice_backend/internal/dto"
	"github.com/invoiced-app/invoice_backend/internal/handlers"
	"github.com/invoiced-app/invoice_backend/internal/middleware"
	"github.com/invoiced-app/invoice_backend/internal/platform/config"
)

// --- Mock InvoiceService ---

type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) ListInvoices(ctx context.Context) ([]domain.InvoiceWithUser, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoiceWithUser), args.Error(1)
}

func (m *MockInvoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.InvoiceWithUser, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvoiceWithUser), args.Error(1)
}

var _ portssvc.InvoiceSvcFacade = (*MockInvoiceService)(nil)

// --- Mock BulkUploadService ---

type MockBulkUploadService struct {
	mock.Mock
}

func (m *MockBulkUploadService) IngestFile(ctx context.Context, filePath string, requestingUserID string) (string, error) {
	args := m.Called(ctx, filePath, requestingUserID)
	return args.String(0), args.Error(1)
}

var _ portssvc.BulkUploadSvc = (*MockBulkUploadService)(nil)

// --- Test Suite ---

type InvoiceHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockInvoice *MockInvoiceService
	mockBulk    *MockBulkUploadService
	uploadDir   string
	jwtSecret   string
}

func (suite *InvoiceHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	suite.Require().NoError(err)
	return signed
}

func (suite *InvoiceHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.uploadDir = suite.T().TempDir()
	suite.mockInvoice = new(MockInvoiceService)
	suite.mockBulk = new(MockBulkUploadService)

	cfg := &config.Config{
		UploadDir:      suite.uploadDir,
		UploadMaxBytes: 10 * 1024 * 1024,
	}
	h := handlers.NewInvoiceHandler(suite.mockInvoice, suite.mockBulk, cfg)

	suite.router = gin.New()
	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(suite.jwtSecret))
	v1.GET("/invoices", h.ListInvoices)
	v1.POST("/invoices", h.CreateInvoice)
	v1.POST("/invoices/bulk-upload", h.BulkUpload)
}

// multipartUpload builds a multipart body carrying one "file" part.
func (suite *InvoiceHandlerTestSuite) multipartUpload(filename, content string) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	suite.Require().NoError(err)
	_, err = part.Write([]byte(content))
	suite.Require().NoError(err)
	suite.Require().NoError(writer.Close())
	return body, writer.FormDataContentType()
}

func (suite *InvoiceHandlerTestSuite) TestBulkUpload_Success() {
	content := "account_number,first_name,last_name,email,amount,currency,due_on\n" +
		"AC100,Ada,Lovelace,ada@example.com,1500,USD,2026-09-01\n"
	body, contentType := suite.multipartUpload("invoices.csv", content)

	suite.mockBulk.On("IngestFile", mock.Anything, mock.MatchedBy(func(path string) bool {
		return filepath.Dir(path) == suite.uploadDir && strings.HasSuffix(path, "-invoices.csv")
	}), "user-123").Return("Bulk invoice creation completed successfully.", nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices/bulk-upload", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("user-123"))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.BulkUploadResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Success)
	suite.Equal("Bulk invoice creation completed successfully.", resp.Message)
	suite.mockBulk.AssertExpectations(suite.T())
}

func (suite *InvoiceHandlerTestSuite) TestBulkUpload_RejectsUnsupportedExtension() {
	body, contentType := suite.multipartUpload("invoices.txt", "some text")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices/bulk-upload", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("user-123"))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "Only CSV and JSON files are allowed.")
	suite.mockBulk.AssertNotCalled(suite.T(), "IngestFile", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceHandlerTestSuite) TestBulkUpload_RejectsOversizedFile() {
	suite.mockBulk = new(MockBulkUploadService)
	cfg := &config.Config{UploadDir: suite.uploadDir, UploadMaxBytes: 16}
	h := handlers.NewInvoiceHandler(suite.mockInvoice, suite.mockBulk, cfg)
	suite.router = gin.New()
	suite.router.POST("/api/v1/invoices/bulk-upload", middleware.AuthMiddleware(suite.jwtSecret), h.BulkUpload)

	body, contentType := suite.multipartUpload("invoices.csv", strings.Repeat("x", 64))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices/bulk-upload", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("user-123"))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "too large")
	suite.mockBulk.AssertNotCalled(suite.T(), "IngestFile", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceHandlerTestSuite) TestBulkUpload_MissingFile() {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices/bulk-upload", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("user-123"))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "No file uploaded.")
}

func (suite *InvoiceHandlerTestSuite) TestBulkUpload_RequiresAuth() {
	body, contentType := suite.multipartUpload("invoices.csv", "a\n1\n")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices/bulk-upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockBulk.AssertNotCalled(suite.T(), "IngestFile", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceHandlerTestSuite) TestBulkUpload_ServiceErrorMapped() {
	body, contentType := suite.multipartUpload("empty.csv", "account_number\n")

	suite.mockBulk.On("IngestFile", mock.Anything, mock.Anything, "user-123").
		Return("", apperrors.ErrNoData).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices/bulk-upload", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("user-123"))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "No data found in uploaded file.")
}

func (suite *InvoiceHandlerTestSuite) TestListInvoices_Success() {
	expected := []domain.InvoiceWithUser{
		{
			Invoice: domain.Invoice{InvoiceID: 1, Amount: 1500, Currency: "USD",
				DueOn: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), AccountNumber: "AC100"},
			User: domain.InvoiceUser{AccountNumber: "AC100", FirstName: "Ada"},
		},
	}
	suite.mockInvoice.On("ListInvoices", mock.Anything).Return(expected, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("user-123"))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListInvoicesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Invoices, 1)
	suite.Equal(int64(1), resp.Invoices[0].InvoiceID)
	suite.Equal("15.00", resp.Invoices[0].DisplayAmount)
	suite.Equal("2026-09-01", resp.Invoices[0].DueOn)
}

func (suite *InvoiceHandlerTestSuite) TestCreateInvoice_Success() {
	reqBody := dto.CreateInvoiceRequest{
		AccountNumber: "AC900",
		FirstName:     "Ada",
		LastName:      "Lovelace",
		Email:         "ada@example.com",
		Password:      "password123",
		Role:          "CUSTOMER",
		Amount:        1500,
		Currency:      "USD",
		DueOn:         "2026-09-01",
	}
	created := &domain.InvoiceWithUser{
		Invoice: domain.Invoice{InvoiceID: 7, Amount: 1500, Currency: "USD",
			DueOn: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), AccountNumber: "AC900"},
		User: domain.InvoiceUser{AccountNumber: "AC900"},
	}

	suite.mockInvoice.On("CreateInvoice", mock.Anything, reqBody, "user-123").
		Return(created, nil).Once()

	payload, err := json.Marshal(reqBody)
	suite.Require().NoError(err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("user-123"))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.InvoiceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(7), resp.InvoiceID)
}

func (suite *InvoiceHandlerTestSuite) TestCreateInvoice_InvalidRole() {
	payload := []byte(fmt.Sprintf(`{
		"accountNumber": "AC900", "firstName": "Ada", "lastName": "Lovelace",
		"email": "ada@example.com", "password": "password123", "role": %q,
		"amount": 1500, "currency": "USD", "dueOn": "2026-09-01"}`, "SUPERUSER"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("user-123"))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockInvoice.AssertNotCalled(suite.T(), "CreateInvoice", mock.Anything, mock.Anything, mock.Anything)
}

func TestInvoiceHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceHandlerTestSuite))
}
