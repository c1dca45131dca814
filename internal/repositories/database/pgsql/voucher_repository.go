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

type PgxVoucherRepository struct {
	BaseRepository
}

// newPgxVoucherRepository creates a new repository for payment voucher data.
func newPgxVoucherRepository(pool *pgxpool.Pool) portsrepo.VoucherRepositoryWithTx {
	return &PgxVoucherRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.VoucherRepositoryWithTx = (*PgxVoucherRepository)(nil)

const voucherColumns = `
	voucher_no, voucher_date, status, total_amount, currency_code, amount_precision,
	exchange_rate, tax_id, payment_type, instrument,
	cost_center_1_id, cost_center_2_id, cost_center_3_id, cost_center_4_id, copy_cost_centers_to_lines,
	attachment_ids, reversal_of,
	version, created_at, created_by, last_updated_at, last_updated_by`

const voucherLineColumns = `
	line_id, voucher_no, line_no, account_id, amount, tax_percentage, tax_amount,
	cost_center_1_id, cost_center_2_id, cost_center_3_id, cost_center_4_id, description`

func scanVoucherRow(row pgx.CollectableRow) (models.PaymentVoucher, error) {
	var v models.PaymentVoucher
	err := row.Scan(
		&v.VoucherNo,
		&v.VoucherDate,
		&v.Status,
		&v.TotalAmount,
		&v.CurrencyCode,
		&v.AmountPrecision,
		&v.ExchangeRate,
		&v.TaxID,
		&v.PaymentType,
		&v.InstrumentJSON,
		&v.CostCenter1ID,
		&v.CostCenter2ID,
		&v.CostCenter3ID,
		&v.CostCenter4ID,
		&v.CopyCostCentersToLines,
		&v.AttachmentIDs,
		&v.ReversalOf,
		&v.Version,
		&v.CreatedAt,
		&v.CreatedBy,
		&v.LastUpdatedAt,
		&v.LastUpdatedBy,
	)
	return v, err
}

func scanVoucherLineRow(row pgx.CollectableRow) (models.VoucherLine, error) {
	var l models.VoucherLine
	err := row.Scan(
		&l.LineID,
		&l.VoucherNo,
		&l.LineNo,
		&l.AccountID,
		&l.Amount,
		&l.TaxPercentage,
		&l.TaxAmount,
		&l.CostCenter1ID,
		&l.CostCenter2ID,
		&l.CostCenter3ID,
		&l.CostCenter4ID,
		&l.Description,
	)
	return l, err
}

func insertVoucherLines(ctx context.Context, tx pgx.Tx, lines []models.VoucherLine) error {
	query := `
		INSERT INTO voucher_lines (` + voucherLineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	for _, l := range lines {
		_, err := tx.Exec(ctx, query,
			l.LineID, l.VoucherNo, l.LineNo, l.AccountID, l.Amount, l.TaxPercentage, l.TaxAmount,
			l.CostCenter1ID, l.CostCenter2ID, l.CostCenter3ID, l.CostCenter4ID, l.Description,
		)
		if err != nil {
			return fmt.Errorf("failed to insert voucher line %s: %w", l.LineID, err)
		}
	}
	return nil
}

// SaveVoucher persists a new voucher together with its lines in one
// transaction.
func (r *PgxVoucherRepository) SaveVoucher(ctx context.Context, voucher domain.PaymentVoucher) error {
	header, lines, err := mapping.ToModelVoucher(voucher)
	if err != nil {
		return err
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	query := `
		INSERT INTO payment_vouchers (` + voucherColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22);
	`
	_, err = tx.Exec(ctx, query,
		header.VoucherNo, header.VoucherDate, header.Status, header.TotalAmount, header.CurrencyCode, header.AmountPrecision,
		header.ExchangeRate, header.TaxID, header.PaymentType, header.InstrumentJSON,
		header.CostCenter1ID, header.CostCenter2ID, header.CostCenter3ID, header.CostCenter4ID, header.CopyCostCentersToLines,
		header.AttachmentIDs, header.ReversalOf,
		header.Version, header.CreatedAt, header.CreatedBy, header.LastUpdatedAt, header.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save voucher %s: %w", header.VoucherNo, err)
	}

	if err := insertVoucherLines(ctx, tx, lines); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindVoucherByNo retrieves a voucher with its lines by voucher number.
func (r *PgxVoucherRepository) FindVoucherByNo(ctx context.Context, voucherNo string) (*domain.PaymentVoucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM payment_vouchers WHERE voucher_no = $1;`

	rows, err := r.Pool.Query(ctx, query, voucherNo)
	if err != nil {
		return nil, fmt.Errorf("failed to query voucher %s: %w", voucherNo, err)
	}

	header, err := pgx.CollectOneRow(rows, scanVoucherRow)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find voucher by no %s: %w", voucherNo, err)
	}

	lines, err := r.findLines(ctx, voucherNo)
	if err != nil {
		return nil, err
	}

	domainVoucher, err := mapping.ToDomainVoucher(header, lines)
	if err != nil {
		return nil, err
	}
	return &domainVoucher, nil
}

func (r *PgxVoucherRepository) findLines(ctx context.Context, voucherNo string) ([]models.VoucherLine, error) {
	query := `SELECT ` + voucherLineColumns + ` FROM voucher_lines WHERE voucher_no = $1 ORDER BY line_no;`

	rows, err := r.Pool.Query(ctx, query, voucherNo)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for voucher %s: %w", voucherNo, err)
	}
	defer rows.Close()

	lines, err := pgx.CollectRows(rows, scanVoucherLineRow)
	if err != nil {
		return nil, fmt.Errorf("failed to scan voucher lines: %w", err)
	}
	return lines, nil
}

// ListVouchers retrieves vouchers with their lines, newest first.
func (r *PgxVoucherRepository) ListVouchers(ctx context.Context, limit int, offset int) ([]domain.PaymentVoucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM payment_vouchers ORDER BY voucher_date DESC, voucher_no LIMIT $1 OFFSET $2;`

	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query vouchers: %w", err)
	}
	defer rows.Close()

	headers, err := pgx.CollectRows(rows, scanVoucherRow)
	if err != nil {
		return nil, fmt.Errorf("failed to scan vouchers: %w", err)
	}

	vouchers := make([]domain.PaymentVoucher, 0, len(headers))
	for _, header := range headers {
		lines, err := r.findLines(ctx, header.VoucherNo)
		if err != nil {
			return nil, err
		}
		domainVoucher, err := mapping.ToDomainVoucher(header, lines)
		if err != nil {
			return nil, err
		}
		vouchers = append(vouchers, domainVoucher)
	}
	return vouchers, nil
}

// UpdateVoucher replaces a voucher and its lines in one transaction,
// conditional on expectedVersion.
func (r *PgxVoucherRepository) UpdateVoucher(ctx context.Context, voucher domain.PaymentVoucher, expectedVersion int64) error {
	header, lines, err := mapping.ToModelVoucher(voucher)
	if err != nil {
		return err
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	query := `
		UPDATE payment_vouchers SET
			voucher_date = $2, status = $3, total_amount = $4, amount_precision = $5,
			exchange_rate = $6, tax_id = $7, payment_type = $8, instrument = $9,
			cost_center_1_id = $10, cost_center_2_id = $11, cost_center_3_id = $12, cost_center_4_id = $13,
			copy_cost_centers_to_lines = $14, attachment_ids = $15, reversal_of = $16,
			version = $17, last_updated_at = $18, last_updated_by = $19
		WHERE voucher_no = $1 AND version = $20;
	`
	tag, err := tx.Exec(ctx, query,
		header.VoucherNo,
		header.VoucherDate, header.Status, header.TotalAmount, header.AmountPrecision,
		header.ExchangeRate, header.TaxID, header.PaymentType, header.InstrumentJSON,
		header.CostCenter1ID, header.CostCenter2ID, header.CostCenter3ID, header.CostCenter4ID,
		header.CopyCostCentersToLines, header.AttachmentIDs, header.ReversalOf,
		header.Version, header.LastUpdatedAt, header.LastUpdatedBy,
		expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("failed to update voucher %s: %w", header.VoucherNo, err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM payment_vouchers WHERE voucher_no = $1);`, header.VoucherNo).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check voucher %s: %w", header.VoucherNo, err)
		}
		if !exists {
			return apperrors.ErrNotFound
		}
		return apperrors.ErrStaleVersion
	}

	if _, err := tx.Exec(ctx, `DELETE FROM voucher_lines WHERE voucher_no = $1;`, header.VoucherNo); err != nil {
		return fmt.Errorf("failed to clear lines for voucher %s: %w", header.VoucherNo, err)
	}
	if err := insertVoucherLines(ctx, tx, lines); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}
