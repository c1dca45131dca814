package models

// Currency mirrors the currencies table.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // Primary Key, ISO 4217
	Symbol       string `json:"symbol"`
	Name         string `json:"name"`
	Precision    int32  `json:"precision"` // minor-unit decimal places
	AuditFields
}
