package dto

import (
	"time"

	"github.com/LeaseFlowHQ/leaseflow_backend/internal/core/domain"
)

// CreateCostCenterRequest defines the data needed to create a cost center
// node. ParentID is required for every level above 1.
type CreateCostCenterRequest struct {
	ParentID *string `json:"parentID"`
	Level    int     `json:"level" binding:"required,min=1,max=4"`
	Code     string  `json:"code" binding:"required"`
	Name     string  `json:"name" binding:"required"`
}

// CostCenterResponse defines the data returned for a cost center node.
type CostCenterResponse struct {
	CostCenterID  string    `json:"costCenterID"`
	ParentID      *string   `json:"parentID,omitempty"`
	Level         int       `json:"level"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ToCostCenterResponse converts a domain.CostCenter to a CostCenterResponse DTO.
func ToCostCenterResponse(cc *domain.CostCenter) CostCenterResponse {
	return CostCenterResponse{
		CostCenterID:  cc.CostCenterID,
		ParentID:      cc.ParentID,
		Level:         cc.Level,
		Code:          cc.Code,
		Name:          cc.Name,
		CreatedAt:     cc.CreatedAt,
		LastUpdatedAt: cc.LastUpdatedAt,
	}
}

// ToListCostCenterResponse converts a slice of cost centers.
func ToListCostCenterResponse(centers []domain.CostCenter) []CostCenterResponse {
	res := make([]CostCenterResponse, len(centers))
	for i := range centers {
		res[i] = ToCostCenterResponse(&centers[i])
	}
	return res
}
