package services

import (
	portsrepo "github.com/LeaseFlowHQ/leaseflow_backend/internal/core/ports/repositories"
	portssvc "github.com/LeaseFlowHQ/leaseflow_backend/internal/core/ports/services"
)

// NewContainer wires every service against the repository provider and returns
// the container handed to the HTTP layer.
func NewContainer(repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	costCenterSvc := NewCostCenterService(repos.CostCenterRepo)

	return &portssvc.ServiceContainer{
		Invoice:        NewInvoiceService(repos.InvoiceRepo, repos.TaxRepo, repos.CurrencyRepo),
		Reconciliation: NewReconciliationService(repos.InvoiceRepo, repos.ReceiptRepo),
		Voucher:        NewVoucherService(repos.VoucherRepo, repos.CurrencyRepo, costCenterSvc),
		CostCenter:     costCenterSvc,
		Tax:            NewTaxService(repos.TaxRepo),
		Currency:       NewCurrencyService(repos.CurrencyRepo),
	}
}
