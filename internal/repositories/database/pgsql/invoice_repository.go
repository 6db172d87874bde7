package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/invoiced-app/invoice_backend/internal/apperrors"
	"github.com/invoiced-app/invoice_backend/internal/core/domain"
	portsrepo "github.com/invoiced-app/invoice_backend/internal/core/ports/repositories"
	"github.com/invoiced-app/invoice_backend/internal/models"
	"github.com/invoiced-app/invoice_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxInvoiceRepository struct {
	BaseRepository
}

func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxInvoiceRepository implements portsrepo.InvoiceRepositoryFacade
var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

// invoiceWithUserQuery joins invoices with their owning users on the
// externally visible account number.
const invoiceWithUserQuery = `
	SELECT i.invoice_id, i.amount, i.currency, i.due_on, i.account_number,
	       i.created_at, i.created_by, i.last_updated_at, i.last_updated_by,
	       u.account_number, u.first_name, u.last_name, u.email
	FROM invoices i
	JOIN users u ON u.account_number = i.account_number
`

func scanInvoiceWithUser(row pgx.Row) (*domain.InvoiceWithUser, error) {
	var m models.Invoice
	var owner domain.InvoiceUser
	err := row.Scan(
		&m.InvoiceID,
		&m.Amount,
		&m.Currency,
		&m.DueOn,
		&m.AccountNumber,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&owner.AccountNumber,
		&owner.FirstName,
		&owner.LastName,
		&owner.Email,
	)
	if err != nil {
		return nil, err
	}
	return &domain.InvoiceWithUser{
		Invoice: mapping.ToDomainInvoice(m),
		User:    owner,
	}, nil
}

func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID int64) (*domain.InvoiceWithUser, error) {
	query := invoiceWithUserQuery + ` WHERE i.invoice_id = $1;`
	inv, err := scanInvoiceWithUser(r.Pool.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invoice %d: %w", invoiceID, err)
	}
	return inv, nil
}

func (r *PgxInvoiceRepository) FindInvoices(ctx context.Context) ([]domain.InvoiceWithUser, error) {
	query := invoiceWithUserQuery + ` ORDER BY i.invoice_id;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	invoices := []domain.InvoiceWithUser{}
	for rows.Next() {
		inv, err := scanInvoiceWithUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		invoices = append(invoices, *inv)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating invoice rows: %w", rows.Err())
	}
	return invoices, nil
}

const insertInvoiceQuery = `
	INSERT INTO invoices (amount, currency, due_on, account_number,
		created_at, created_by, last_updated_at, last_updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

func (r *PgxInvoiceRepository) SaveInvoiceTx(ctx context.Context, tx pgx.Tx, invoice domain.Invoice) (int64, error) {
	m := mapping.ToModelInvoice(invoice)
	var invoiceID int64
	err := tx.QueryRow(ctx, insertInvoiceQuery+` RETURNING invoice_id;`,
		m.Amount,
		m.Currency,
		m.DueOn,
		m.AccountNumber,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	).Scan(&invoiceID)
	if err != nil {
		return 0, wrapStorageErr("failed to save invoice", err)
	}
	return invoiceID, nil
}

func (r *PgxInvoiceRepository) SaveInvoicesTx(ctx context.Context, tx pgx.Tx, invoices []domain.Invoice) error {
	batch := &pgx.Batch{}
	for _, invoice := range invoices {
		m := mapping.ToModelInvoice(invoice)
		batch.Queue(insertInvoiceQuery+`;`,
			m.Amount,
			m.Currency,
			m.DueOn,
			m.AccountNumber,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return wrapStorageErr("failed to execute invoice insert batch", err)
	}
	return nil
}
