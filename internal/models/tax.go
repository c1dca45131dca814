package models

import "github.com/shopspring/decimal"

// Tax mirrors the taxes table.
type Tax struct {
	TaxID       string          `json:"taxID"` // Primary Key (e.g., UUID)
	Name        string          `json:"name"`
	RatePercent decimal.Decimal `json:"ratePercent"`
	IsInclusive bool            `json:"isInclusive"`
	AuditFields
}
