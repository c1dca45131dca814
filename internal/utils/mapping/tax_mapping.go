package mapping

import (
	"github.com/LeaseFlowHQ/leaseflow_backend/internal/core/domain"
	"github.com/LeaseFlowHQ/leaseflow_backend/internal/models"
)

// ToModelTax converts a domain Tax to a model Tax
func ToModelTax(d domain.Tax) models.Tax {
	return models.Tax{
		TaxID:       d.TaxID,
		Name:        d.Name,
		RatePercent: d.RatePercent,
		IsInclusive: d.IsInclusive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTax converts a model Tax to a domain Tax
func ToDomainTax(m models.Tax) domain.Tax {
	return domain.Tax{
		TaxID:       m.TaxID,
		Name:        m.Name,
		RatePercent: m.RatePercent,
		IsInclusive: m.IsInclusive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTaxSlice converts a slice of model Taxes to domain Taxes
func ToDomainTaxSlice(ms []models.Tax) []domain.Tax {
	ds := make([]domain.Tax, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTax(m)
	}
	return ds
}
