package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/LeaseFlowHQ/leaseflow_backend/internal/apperrors"
	"github.com/LeaseFlowHQ/leaseflow_backend/internal/core/domain"
	portsrepo "github.com/LeaseFlowHQ/leaseflow_backend/internal/core/ports/repositories"
	"github.com/LeaseFlowHQ/leaseflow_backend/internal/models"
	"github.com/LeaseFlowHQ/leaseflow_backend/internal/utils/mapping"
)

type PgxInvoiceRepository struct {
	BaseRepository
}

// newPgxInvoiceRepository creates a new repository for invoice data.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryWithTx {
	return &PgxInvoiceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.InvoiceRepositoryWithTx = (*PgxInvoiceRepository)(nil)

const invoiceColumns = `
	invoice_id, invoice_no, status, invoice_date, due_date, period_from, period_to,
	currency_code, exchange_rate, tax_id,
	sub_total, tax_amount, discount_amount, total_amount, paid_amount, balance_amount, amount_precision,
	is_recurring, recurrence_pattern, next_invoice_date,
	version, created_at, created_by, last_updated_at, last_updated_by`

func scanInvoiceRow(row pgx.CollectableRow) (models.Invoice, error) {
	var inv models.Invoice
	err := row.Scan(
		&inv.InvoiceID,
		&inv.InvoiceNo,
		&inv.Status,
		&inv.InvoiceDate,
		&inv.DueDate,
		&inv.PeriodFrom,
		&inv.PeriodTo,
		&inv.CurrencyCode,
		&inv.ExchangeRate,
		&inv.TaxID,
		&inv.SubTotal,
		&inv.TaxAmount,
		&inv.DiscountAmount,
		&inv.TotalAmount,
		&inv.PaidAmount,
		&inv.BalanceAmount,
		&inv.AmountPrecision,
		&inv.IsRecurring,
		&inv.RecurrencePattern,
		&inv.NextInvoiceDate,
		&inv.Version,
		&inv.CreatedAt,
		&inv.CreatedBy,
		&inv.LastUpdatedAt,
		&inv.LastUpdatedBy,
	)
	return inv, err
}

// SaveInvoice persists a new invoice.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)

	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25);
	`

	_, err := r.Pool.Exec(ctx, query,
		m.InvoiceID, m.InvoiceNo, m.Status, m.InvoiceDate, m.DueDate, m.PeriodFrom, m.PeriodTo,
		m.CurrencyCode, m.ExchangeRate, m.TaxID,
		m.SubTotal, m.TaxAmount, m.DiscountAmount, m.TotalAmount, m.PaidAmount, m.BalanceAmount, m.AmountPrecision,
		m.IsRecurring, m.RecurrencePattern, m.NextInvoiceDate,
		m.Version, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)

	if err != nil {
		return fmt.Errorf("failed to save invoice %s: %w", m.InvoiceID, err)
	}
	return nil
}

// FindInvoiceByID retrieves an invoice by its ID.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1;`

	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoice %s: %w", invoiceID, err)
	}
	defer rows.Close()

	m, err := pgx.CollectOneRow(rows, scanInvoiceRow)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invoice by id %s: %w", invoiceID, err)
	}

	domainInv := mapping.ToDomainInvoice(m)
	return &domainInv, nil
}

// ListInvoices retrieves invoices ordered by invoice date, newest first.
func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, limit int, offset int) ([]domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices ORDER BY invoice_date DESC, invoice_id LIMIT $1 OFFSET $2;`

	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	modelInvoices, err := pgx.CollectRows(rows, scanInvoiceRow)
	if err != nil {
		return nil, fmt.Errorf("failed to scan invoices: %w", err)
	}

	return mapping.ToDomainInvoiceSlice(modelInvoices), nil
}

// UpdateInvoice persists changes to an invoice, conditional on the stored row
// still carrying expectedVersion.
func (r *PgxInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice, expectedVersion int64) error {
	m := mapping.ToModelInvoice(invoice)

	query := `
		UPDATE invoices SET
			status = $2, invoice_date = $3, due_date = $4, period_from = $5, period_to = $6,
			exchange_rate = $7, tax_id = $8,
			sub_total = $9, tax_amount = $10, discount_amount = $11, total_amount = $12,
			paid_amount = $13, balance_amount = $14, amount_precision = $15,
			is_recurring = $16, recurrence_pattern = $17, next_invoice_date = $18,
			version = $19, last_updated_at = $20, last_updated_by = $21
		WHERE invoice_id = $1 AND version = $22;
	`

	tag, err := r.Pool.Exec(ctx, query,
		m.InvoiceID,
		m.Status, m.InvoiceDate, m.DueDate, m.PeriodFrom, m.PeriodTo,
		m.ExchangeRate, m.TaxID,
		m.SubTotal, m.TaxAmount, m.DiscountAmount, m.TotalAmount,
		m.PaidAmount, m.BalanceAmount, m.AmountPrecision,
		m.IsRecurring, m.RecurrencePattern, m.NextInvoiceDate,
		m.Version, m.LastUpdatedAt, m.LastUpdatedBy,
		expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("failed to update invoice %s: %w", m.InvoiceID, err)
	}

	if tag.RowsAffected() == 0 {
		// Either the row is gone or another writer bumped the version first.
		if _, findErr := r.FindInvoiceByID(ctx, m.InvoiceID); findErr != nil {
			return findErr
		}
		return apperrors.ErrStaleVersion
	}
	return nil
}

// DeleteInvoice removes an invoice row.
func (r *PgxInvoiceRepository) DeleteInvoice(ctx context.Context, invoiceID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM invoices WHERE invoice_id = $1;`, invoiceID)
	if err != nil {
		return fmt.Errorf("failed to delete invoice %s: %w", invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
