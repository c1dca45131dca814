package mapping

import (
	"github.com/LeaseFlowHQ/leaseflow_backend/internal/core/domain"
	"github.com/LeaseFlowHQ/leaseflow_backend/internal/models"
)

// ToModelCostCenter converts a domain CostCenter to a model CostCenter
func ToModelCostCenter(d domain.CostCenter) models.CostCenter {
	return models.CostCenter{
		CostCenterID: d.CostCenterID,
		ParentID:     d.ParentID,
		Level:        d.Level,
		Code:         d.Code,
		Name:         d.Name,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCostCenter converts a model CostCenter to a domain CostCenter
func ToDomainCostCenter(m models.CostCenter) domain.CostCenter {
	return domain.CostCenter{
		CostCenterID: m.CostCenterID,
		ParentID:     m.ParentID,
		Level:        m.Level,
		Code:         m.Code,
		Name:         m.Name,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCostCenterSlice converts a slice of model CostCenters to domain CostCenters
func ToDomainCostCenterSlice(ms []models.CostCenter) []domain.CostCenter {
	ds := make([]domain.CostCenter, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCostCenter(m)
	}
	return ds
}
