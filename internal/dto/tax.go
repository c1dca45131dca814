package dto

import (
	"time"

	"github.com/LeaseFlowHQ/leaseflow_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTaxRequest defines the data needed to create a tax definition.
type CreateTaxRequest struct {
	Name        string          `json:"name" binding:"required"`
	RatePercent decimal.Decimal `json:"ratePercent" binding:"required"`
	IsInclusive bool            `json:"isInclusive"`
}

// TaxResponse defines the data returned for a tax definition.
type TaxResponse struct {
	TaxID         string          `json:"taxID"`
	Name          string          `json:"name"`
	RatePercent   decimal.Decimal `json:"ratePercent"`
	IsInclusive   bool            `json:"isInclusive"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ToTaxResponse converts a domain.Tax to a TaxResponse DTO.
func ToTaxResponse(t *domain.Tax) TaxResponse {
	return TaxResponse{
		TaxID:         t.TaxID,
		Name:          t.Name,
		RatePercent:   t.RatePercent,
		IsInclusive:   t.IsInclusive,
		CreatedAt:     t.CreatedAt,
		LastUpdatedAt: t.LastUpdatedAt,
	}
}

// ToListTaxResponse converts a slice of taxes.
func ToListTaxResponse(taxes []domain.Tax) []TaxResponse {
	res := make([]TaxResponse, len(taxes))
	for i := range taxes {
		res[i] = ToTaxResponse(&taxes[i])
	}
	return res
}
