package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeaseFlowHQ/leaseflow_backend/internal/core/domain"
)

func stringPtr(s string) *string {
	return &s
}

func TestCostCenterSelection_Select(t *testing.T) {
	full := domain.CostCenterSelection{
		Level1ID: stringPtr("cc1"),
		Level2ID: stringPtr("cc2"),
		Level3ID: stringPtr("cc3"),
		Level4ID: stringPtr("cc4"),
	}

	t.Run("selecting level 1 clears all deeper levels", func(t *testing.T) {
		next, err := full.Select(1, stringPtr("cc1-new"))
		require.NoError(t, err)
		assert.Equal(t, "cc1-new", *next.Level1ID)
		assert.Nil(t, next.Level2ID)
		assert.Nil(t, next.Level3ID)
		assert.Nil(t, next.Level4ID)
	})

	t.Run("selecting level 2 clears levels 3 and 4", func(t *testing.T) {
		next, err := full.Select(2, stringPtr("cc2-new"))
		require.NoError(t, err)
		assert.Equal(t, "cc1", *next.Level1ID)
		assert.Equal(t, "cc2-new", *next.Level2ID)
		assert.Nil(t, next.Level3ID)
		assert.Nil(t, next.Level4ID)
	})

	t.Run("selecting level 4 keeps the chain above", func(t *testing.T) {
		next, err := full.Select(4, stringPtr("cc4-new"))
		require.NoError(t, err)
		assert.Equal(t, "cc3", *next.Level3ID)
		assert.Equal(t, "cc4-new", *next.Level4ID)
	})

	t.Run("selecting a level without its parent fails", func(t *testing.T) {
		empty := domain.CostCenterSelection{}
		_, err := empty.Select(2, stringPtr("cc2"))
		assert.Error(t, err)

		partial := domain.CostCenterSelection{Level1ID: stringPtr("cc1")}
		_, err = partial.Select(3, stringPtr("cc3"))
		assert.Error(t, err)
	})

	t.Run("level 1 is always selectable", func(t *testing.T) {
		empty := domain.CostCenterSelection{}
		next, err := empty.Select(1, stringPtr("cc1"))
		require.NoError(t, err)
		assert.Equal(t, "cc1", *next.Level1ID)
	})

	t.Run("out of range level fails", func(t *testing.T) {
		_, err := full.Select(0, stringPtr("x"))
		assert.Error(t, err)
		_, err = full.Select(5, stringPtr("x"))
		assert.Error(t, err)
	})

	t.Run("clearing a level clears everything below it", func(t *testing.T) {
		next, err := full.Select(2, nil)
		require.NoError(t, err)
		assert.Equal(t, "cc1", *next.Level1ID)
		assert.Nil(t, next.Level2ID)
		assert.Nil(t, next.Level3ID)
		assert.Nil(t, next.Level4ID)
	})
}

func TestCostCenterSelection_Validate(t *testing.T) {
	tests := []struct {
		name      string
		selection domain.CostCenterSelection
		wantErr   bool
	}{
		{"empty selection is valid", domain.CostCenterSelection{}, false},
		{"level 1 only", domain.CostCenterSelection{Level1ID: stringPtr("a")}, false},
		{
			"full contiguous chain",
			domain.CostCenterSelection{
				Level1ID: stringPtr("a"), Level2ID: stringPtr("b"),
				Level3ID: stringPtr("c"), Level4ID: stringPtr("d"),
			},
			false,
		},
		{"level 2 without level 1", domain.CostCenterSelection{Level2ID: stringPtr("b")}, true},
		{
			"gap between level 1 and level 3",
			domain.CostCenterSelection{Level1ID: stringPtr("a"), Level3ID: stringPtr("c")},
			true,
		},
		{"level 4 alone", domain.CostCenterSelection{Level4ID: stringPtr("d")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.selection.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCostCenterSelection_MergeDefaults(t *testing.T) {
	header := domain.CostCenterSelection{
		Level1ID: stringPtr("h1"),
		Level2ID: stringPtr("h2"),
	}

	t.Run("empty line takes the full header chain", func(t *testing.T) {
		merged := domain.CostCenterSelection{}.MergeDefaults(header)
		assert.Equal(t, header, merged)
	})

	t.Run("line with any level set keeps its own chain untouched", func(t *testing.T) {
		line := domain.CostCenterSelection{Level1ID: stringPtr("l1")}
		merged := line.MergeDefaults(header)
		assert.Equal(t, line, merged)
		assert.Nil(t, merged.Level2ID, "header levels must never splice into a manual chain")
	})
}

func TestCostCenterSelection_Chain(t *testing.T) {
	selection := domain.CostCenterSelection{
		Level1ID: stringPtr("a"),
		Level2ID: stringPtr("b"),
	}
	assert.Equal(t, []string{"a", "b"}, selection.Chain())

	assert.Empty(t, domain.CostCenterSelection{}.Chain())

	// Chain stops at the first gap.
	gapped := domain.CostCenterSelection{Level1ID: stringPtr("a"), Level3ID: stringPtr("c")}
	assert.Equal(t, []string{"a"}, gapped.Chain())
}
