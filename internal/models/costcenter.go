package models

// CostCenter mirrors the cost_centers table. Level is 1..4 and ParentID is
// null only at level 1.
type CostCenter struct {
	CostCenterID string  `json:"costCenterID"` // Primary Key (e.g., UUID)
	ParentID     *string `json:"parentID"`     // FK -> CostCenter.costCenterID
	Level        int     `json:"level"`
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	AuditFields
}
