package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/invoiced-app/invoice_backend/internal/core/ports/services"
	"github.com/invoiced-app/invoice_backend/internal/dto"
	"github.com/invoiced-app/invoice_backend/internal/middleware"
	"github.com/invoiced-app/invoice_backend/internal/platform/config"
)

// InvoiceHandler handles invoice requests, including bulk file uploads.
type InvoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
	bulkService    portssvc.BulkUploadSvc
	uploadDir      string
	uploadMaxBytes int64
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(is portssvc.InvoiceSvcFacade, bs portssvc.BulkUploadSvc, cfg *config.Config) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: is,
		bulkService:    bs,
		uploadDir:      cfg.UploadDir,
		uploadMaxBytes: cfg.UploadMaxBytes,
	}
}

// registerInvoiceRoutes sets up the protected invoice routes.
func registerInvoiceRoutes(rg *gin.RouterGroup, is portssvc.InvoiceSvcFacade, bs portssvc.BulkUploadSvc, cfg *config.Config) {
	h := NewInvoiceHandler(is, bs, cfg)

	invoices := rg.Group("/invoices")
	{
		invoices.GET("", h.ListInvoices)
		invoices.POST("", h.CreateInvoice)
		invoices.POST("/bulk-upload", h.BulkUpload)
	}
}

// ListInvoices godoc
// @Summary List invoices
// @Description Returns all invoices with their owning users.
// @Tags invoices
// @Produce json
// @Success 200 {object} dto.ListInvoicesResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoices [get]
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	invoices, err := h.invoiceService.ListInvoices(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListInvoicesResponse(invoices))
}

// CreateInvoice godoc
// @Summary Create invoice
// @Description Creates a new account holder together with their first invoice.
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoice body dto.CreateInvoiceRequest true "Invoice data"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoices [post]
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice))
}

// BulkUpload godoc
// @Summary Bulk invoice upload
// @Description Ingests a CSV or JSON file of invoice records. Missing account
// @Description holders are created, one invoice is written per record, all in a
// @Description single transaction. The uploaded file is always deleted.
// @Tags invoices
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV or JSON file"
// @Success 200 {object} dto.BulkUploadResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoices/bulk-upload [post]
func (h *InvoiceHandler) BulkUpload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "No file uploaded."})
		return
	}

	if fileHeader.Size > h.uploadMaxBytes {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Uploaded file is too large."})
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext != ".csv" && ext != ".json" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Only CSV and JSON files are allowed."})
		return
	}

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		respondError(c, err)
		return
	}

	dst := filepath.Join(h.uploadDir, fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(fileHeader.Filename)))
	if err := c.SaveUploadedFile(fileHeader, dst); err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to save uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to save uploaded file."})
		return
	}

	message, err := h.bulkService.IngestFile(c.Request.Context(), dst, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BulkUploadResponse{Success: true, Message: message})
}
