package domain

import "fmt"

// CostCenterMaxLevel is the depth of the cost-center hierarchy.
const CostCenterMaxLevel = 4

// CostCenter is one node of the 4-level cost-center hierarchy. Level 1 nodes
// have no parent; every deeper node points at its level n-1 parent.
type CostCenter struct {
	CostCenterID string  `json:"costCenterID"` // Primary Key (e.g., UUID)
	ParentID     *string `json:"parentID"`     // nil for level 1
	Level        int     `json:"level"`        // 1..4
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	AuditFields
}

// CostCenterSelection is an ordered 4-tuple of cost-center IDs. Each level is
// only meaningful when every level above it is set: L2 requires L1, L3
// requires L1+L2, L4 requires all three.
type CostCenterSelection struct {
	Level1ID *string `json:"costCenter1ID"`
	Level2ID *string `json:"costCenter2ID"`
	Level3ID *string `json:"costCenter3ID"`
	Level4ID *string `json:"costCenter4ID"`
}

// IsEmpty reports whether no level is selected.
func (s CostCenterSelection) IsEmpty() bool {
	return s.Level1ID == nil && s.Level2ID == nil && s.Level3ID == nil && s.Level4ID == nil
}

// LevelID returns the selected ID at the given level (1..4).
func (s CostCenterSelection) LevelID(level int) *string {
	switch level {
	case 1:
		return s.Level1ID
	case 2:
		return s.Level2ID
	case 3:
		return s.Level3ID
	case 4:
		return s.Level4ID
	}
	return nil
}

// Select returns a new selection with the given level set to id and every
// deeper level cleared. Selecting a level whose parent chain is incomplete
// fails; selecting level 1 is always legal.
func (s CostCenterSelection) Select(level int, id *string) (CostCenterSelection, error) {
	if level < 1 || level > CostCenterMaxLevel {
		return s, fmt.Errorf("cost center level must be 1..%d, got %d", CostCenterMaxLevel, level)
	}
	for l := 1; l < level; l++ {
		if s.LevelID(l) == nil {
			return s, fmt.Errorf("cost center level %d requires a selection at level %d", level, l)
		}
	}
	next := s
	switch level {
	case 1:
		next.Level1ID = id
		next.Level2ID, next.Level3ID, next.Level4ID = nil, nil, nil
	case 2:
		next.Level2ID = id
		next.Level3ID, next.Level4ID = nil, nil
	case 3:
		next.Level3ID = id
		next.Level4ID = nil
	case 4:
		next.Level4ID = id
	}
	return next, nil
}

// Validate checks chain contiguity: no level may be set while a level above
// it is empty.
func (s CostCenterSelection) Validate() error {
	seenGap := false
	for l := 1; l <= CostCenterMaxLevel; l++ {
		if s.LevelID(l) == nil {
			seenGap = true
			continue
		}
		if seenGap {
			return fmt.Errorf("cost center level %d is set without its parent levels", l)
		}
	}
	return nil
}

// MergeDefaults fills unset levels from header defaults. An explicitly set
// line-level chain always wins in full: if any level is set on the line, the
// line's own chain is kept untouched so a header copy never splices into a
// manually chosen hierarchy.
func (s CostCenterSelection) MergeDefaults(header CostCenterSelection) CostCenterSelection {
	if !s.IsEmpty() {
		return s
	}
	return header
}

// Chain returns the contiguous selected IDs from level 1 down.
func (s CostCenterSelection) Chain() []string {
	chain := make([]string, 0, CostCenterMaxLevel)
	for l := 1; l <= CostCenterMaxLevel; l++ {
		id := s.LevelID(l)
		if id == nil {
			break
		}
		chain = append(chain, *id)
	}
	return chain
}
