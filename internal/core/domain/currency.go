package domain

// Currency represents a supported currency.
// Precision is the number of minor-unit decimal places (2 for most currencies,
// 0 for e.g. JPY) and drives all Money rounding for amounts in this currency.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // Primary Key (e.g., "USD")
	Symbol       string `json:"symbol"`       // e.g., "$"
	Name         string `json:"name"`         // e.g., "US Dollar"
	Precision    int32  `json:"precision"`    // minor-unit decimal places
	AuditFields
}
