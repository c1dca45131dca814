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

type PgxReceiptRepository struct {
	BaseRepository
}

// newPgxReceiptRepository creates a new repository for receipt data.
func newPgxReceiptRepository(pool *pgxpool.Pool) portsrepo.ReceiptRepositoryWithTx {
	return &PgxReceiptRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ReceiptRepositoryWithTx = (*PgxReceiptRepository)(nil)

const receiptColumns = `
	receipt_id, invoice_id, received_amount, currency_code, amount_precision,
	status, receipt_date, reference,
	version, created_at, created_by, last_updated_at, last_updated_by`

func scanReceiptRow(row pgx.CollectableRow) (models.Receipt, error) {
	var rc models.Receipt
	err := row.Scan(
		&rc.ReceiptID,
		&rc.InvoiceID,
		&rc.ReceivedAmount,
		&rc.CurrencyCode,
		&rc.AmountPrecision,
		&rc.Status,
		&rc.ReceiptDate,
		&rc.Reference,
		&rc.Version,
		&rc.CreatedAt,
		&rc.CreatedBy,
		&rc.LastUpdatedAt,
		&rc.LastUpdatedBy,
	)
	return rc, err
}

// SaveReceipt persists a new receipt.
func (r *PgxReceiptRepository) SaveReceipt(ctx context.Context, receipt domain.Receipt) error {
	m := mapping.ToModelReceipt(receipt)

	query := `
		INSERT INTO receipts (` + receiptColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`

	_, err := r.Pool.Exec(ctx, query,
		m.ReceiptID, m.InvoiceID, m.ReceivedAmount, m.CurrencyCode, m.AmountPrecision,
		m.Status, m.ReceiptDate, m.Reference,
		m.Version, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)

	if err != nil {
		return fmt.Errorf("failed to save receipt %s: %w", m.ReceiptID, err)
	}
	return nil
}

// FindReceiptByID retrieves a receipt by its ID.
func (r *PgxReceiptRepository) FindReceiptByID(ctx context.Context, receiptID string) (*domain.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM receipts WHERE receipt_id = $1;`

	rows, err := r.Pool.Query(ctx, query, receiptID)
	if err != nil {
		return nil, fmt.Errorf("failed to query receipt %s: %w", receiptID, err)
	}
	defer rows.Close()

	m, err := pgx.CollectOneRow(rows, scanReceiptRow)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find receipt by id %s: %w", receiptID, err)
	}

	domainReceipt := mapping.ToDomainReceipt(m)
	return &domainReceipt, nil
}

// FindReceiptsByInvoiceID retrieves all receipts recorded against an invoice.
func (r *PgxReceiptRepository) FindReceiptsByInvoiceID(ctx context.Context, invoiceID string) ([]domain.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM receipts WHERE invoice_id = $1 ORDER BY receipt_date, receipt_id;`

	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query receipts for invoice %s: %w", invoiceID, err)
	}
	defer rows.Close()

	modelReceipts, err := pgx.CollectRows(rows, scanReceiptRow)
	if err != nil {
		return nil, fmt.Errorf("failed to scan receipts: %w", err)
	}

	return mapping.ToDomainReceiptSlice(modelReceipts), nil
}

// UpdateReceipt persists changes to a receipt, conditional on expectedVersion.
func (r *PgxReceiptRepository) UpdateReceipt(ctx context.Context, receipt domain.Receipt, expectedVersion int64) error {
	m := mapping.ToModelReceipt(receipt)

	query := `
		UPDATE receipts SET
			received_amount = $2, currency_code = $3, amount_precision = $4,
			status = $5, receipt_date = $6, reference = $7,
			version = $8, last_updated_at = $9, last_updated_by = $10
		WHERE receipt_id = $1 AND version = $11;
	`

	tag, err := r.Pool.Exec(ctx, query,
		m.ReceiptID,
		m.ReceivedAmount, m.CurrencyCode, m.AmountPrecision,
		m.Status, m.ReceiptDate, m.Reference,
		m.Version, m.LastUpdatedAt, m.LastUpdatedBy,
		expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("failed to update receipt %s: %w", m.ReceiptID, err)
	}

	if tag.RowsAffected() == 0 {
		if _, findErr := r.FindReceiptByID(ctx, m.ReceiptID); findErr != nil {
			return findErr
		}
		return apperrors.ErrStaleVersion
	}
	return nil
}
