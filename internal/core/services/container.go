package services

import (
	portsrepo "github.com/invoiced-app/invoice_backend/internal/core/ports/repositories"
	portssvc "github.com/invoiced-app/invoice_backend/internal/core/ports/services"
	"github.com/invoiced-app/invoice_backend/internal/platform/config"
)

// NewServiceContainer wires repositories into the application services.
func NewServiceContainer(repos portsrepo.RepositoryProvider, cfg *config.Config) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		User:       NewUserService(repos.UserRepo),
		Invoice:    NewInvoiceService(repos.TxManager, repos.UserRepo, repos.InvoiceRepo),
		BulkUpload: NewBulkUploadService(repos.TxManager, repos.UserRepo, repos.InvoiceRepo, cfg.BulkBatchSize),
	}
}
