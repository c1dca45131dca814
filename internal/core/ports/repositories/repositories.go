package repositories

// RepositoryProvider bundles the concrete repositories handed to the service
// container at startup.
type RepositoryProvider struct {
	InvoiceRepo    InvoiceRepositoryWithTx
	ReceiptRepo    ReceiptRepositoryWithTx
	VoucherRepo    VoucherRepositoryWithTx
	CostCenterRepo CostCenterRepositoryWithTx
	TaxRepo        TaxRepositoryWithTx
	CurrencyRepo   CurrencyRepositoryWithTx
}
