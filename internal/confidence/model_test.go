package confidence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name      string
		dimension Dimension
		value     int
		expected  int
	}{
		{"negative floors at zero", DimensionIntent, -5, 0},
		{"within range passes through", DimensionIntent, 50, 50},
		{"intent caps at 97", DimensionIntent, 150, 97},
		{"identity caps at 99", DimensionIdentity, 100, 99},
		{"income caps at 92", DimensionIncome, 100, 92},
		{"credit caps at 96", DimensionCredit, 100, 96},
		{"value at cap is kept", DimensionIdentity, 99, 99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Clamp(tt.dimension, tt.value))
		})
	}
}

func TestRecompute(t *testing.T) {
	t.Run("weighted sum of capped values", func(t *testing.T) {
		v := Vector{Intent: 50, Identity: 50, Income: 50, Credit: 50}
		overall, _ := NewModel().Recompute(&v)
		assert.Equal(t, 50, overall)
		assert.Equal(t, 50, v.Overall)
	})

	t.Run("rounds half up", func(t *testing.T) {
		// .30*55 + .25*50 + .25*50 + .20*50 = 51.5
		v := Vector{Intent: 55, Identity: 50, Income: 50, Credit: 50}
		overall, _ := NewModel().Recompute(&v)
		assert.Equal(t, 52, overall)
	})

	t.Run("structural ceiling is 96", func(t *testing.T) {
		// Raw values far above the caps cannot push overall past the
		// cap-weighted maximum.
		v := Vector{Intent: 100, Identity: 100, Income: 100, Credit: 100}
		overall, _ := NewModel().Recompute(&v)
		assert.Equal(t, 96, overall)
	})

	t.Run("raw values are not mutated", func(t *testing.T) {
		v := Vector{Intent: 150, Identity: 120, Income: 100, Credit: 100}
		NewModel().Recompute(&v)
		assert.Equal(t, 150, v.Intent)
		assert.Equal(t, 120, v.Identity)
	})
}

func TestStagnation(t *testing.T) {
	t.Run("flags once overall holds for three consecutive repeats", func(t *testing.T) {
		m := NewModel()
		v := Vector{Intent: 50, Identity: 50, Income: 50, Credit: 50}

		// First recompute establishes the baseline (0 -> 50 is a change).
		_, stagnant := m.Recompute(&v)
		assert.False(t, stagnant)
		_, stagnant = m.Recompute(&v)
		assert.False(t, stagnant)
		_, stagnant = m.Recompute(&v)
		assert.False(t, stagnant)
		assert.Equal(t, 2, m.StagnantFor())

		_, stagnant = m.Recompute(&v)
		assert.True(t, stagnant)
		assert.Equal(t, 3, m.StagnantFor())
	})

	t.Run("change resets the counter", func(t *testing.T) {
		m := NewModel()
		v := Vector{Intent: 50, Identity: 50, Income: 50, Credit: 50}
		m.Recompute(&v)
		m.Recompute(&v)

		v.Intent = 80
		_, stagnant := m.Recompute(&v)
		assert.False(t, stagnant)
		assert.Equal(t, 0, m.StagnantFor())
	})

	t.Run("keeps flagging while stagnant", func(t *testing.T) {
		m := NewModel()
		v := Vector{Intent: 50, Identity: 50, Income: 50, Credit: 50}
		for i := 0; i < 3; i++ {
			m.Recompute(&v)
		}
		_, stagnant := m.Recompute(&v)
		assert.True(t, stagnant)
	})
}

func TestWeakest(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vector
		expected Dimension
	}{
		{"all equal keeps fixed-order first", Vector{Intent: 10, Identity: 10, Income: 10, Credit: 10}, DimensionIntent},
		{"identity lowest", Vector{Intent: 50, Identity: 5, Income: 10, Credit: 10}, DimensionIdentity},
		{"credit lowest", Vector{Intent: 50, Identity: 40, Income: 30, Credit: 20}, DimensionCredit},
		{"tie between income and credit keeps income", Vector{Intent: 50, Identity: 40, Income: 20, Credit: 20}, DimensionIncome},
		{"zero vector keeps intent", Vector{}, DimensionIntent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.vector.Weakest())
		})
	}
}
