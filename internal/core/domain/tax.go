package domain

import "github.com/shopspring/decimal"

// Tax represents a named tax rate applied to invoices and voucher lines.
type Tax struct {
	TaxID       string          `json:"taxID"`       // Primary Key (e.g., UUID)
	Name        string          `json:"name"`        // e.g., "VAT 10%"
	RatePercent decimal.Decimal `json:"ratePercent"` // e.g., 10 for 10%
	IsInclusive bool            `json:"isInclusive"` // tax already contained in the base amount
	AuditFields
}
