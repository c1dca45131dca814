package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/LeaseFlowHQ/leaseflow_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		InvoiceRepo:    newPgxInvoiceRepository(dbPool),
		ReceiptRepo:    newPgxReceiptRepository(dbPool),
		VoucherRepo:    newPgxVoucherRepository(dbPool),
		CostCenterRepo: newPgxCostCenterRepository(dbPool),
		TaxRepo:        newPgxTaxRepository(dbPool),
		CurrencyRepo:   newPgxCurrencyRepository(dbPool),
	}
}
