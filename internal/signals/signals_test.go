package signals

import (
	"context"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockSourceLookup(t *testing.T) {
	ctx := context.Background()
	src := NewMockSource(42)

	t.Run("known identifier resolves fixture", func(t *testing.T) {
		p, ok, err := src.LookupProfile(ctx, "ABCDE1234F")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "Rahul Sharma", p.Name)
		assert.Equal(t, 780, p.CreditScore)
	})

	t.Run("unknown identifier misses", func(t *testing.T) {
		_, ok, err := src.LookupProfile(ctx, "NOPE")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestMockSourceSynthesis(t *testing.T) {
	ctx := context.Background()
	src := NewMockSource(42)

	t.Run("profile stays inside the generation ranges", func(t *testing.T) {
		for i := 0; i < 20; i++ {
			p, err := src.SynthesizeProfile(ctx, "ZZZZZ0000Z")
			require.NoError(t, err)
			assert.True(t, p.Verified)
			assert.Equal(t, "ZZZZZ0000Z", p.TaxID)
			assert.GreaterOrEqual(t, p.CreditScore, 650)
			assert.Less(t, p.CreditScore, 850)
			assert.GreaterOrEqual(t, p.MonthlyIncome, 40000.0)
			assert.Less(t, p.MonthlyIncome, 140000.0)
		}
	})

	t.Run("tax id has the expected shape", func(t *testing.T) {
		id := src.SynthesizeTaxID()
		require.Len(t, id, 10)
		for _, r := range id[:5] {
			assert.True(t, unicode.IsUpper(r))
		}
		for _, r := range id[5:9] {
			assert.True(t, unicode.IsDigit(r))
		}
		assert.True(t, unicode.IsUpper(rune(id[9])))
	})

	t.Run("address pairs city with its state", func(t *testing.T) {
		for i := 0; i < 10; i++ {
			addr, err := src.FetchAddress(ctx)
			require.NoError(t, err)
			idx := -1
			for j, c := range addressCities {
				if c == addr.City {
					idx = j
					break
				}
			}
			require.GreaterOrEqual(t, idx, 0)
			assert.Equal(t, addressStates[idx], addr.State)
			assert.Len(t, addr.PostalCode, 6)
		}
	})

	t.Run("employer tier follows the salary bracket", func(t *testing.T) {
		assert.Contains(t, largeEmployers, src.SynthesizeEmployer(150000))
		assert.Contains(t, mediumEmployers, src.SynthesizeEmployer(75000))
		assert.Contains(t, smallEmployers, src.SynthesizeEmployer(30000))
	})
}

func TestBetween(t *testing.T) {
	src := NewMockSource(42)

	t.Run("stays inside inclusive bounds", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			v := src.Between(85, 94)
			assert.GreaterOrEqual(t, v, 85)
			assert.LessOrEqual(t, v, 94)
		}
	})

	t.Run("degenerate range returns the bound", func(t *testing.T) {
		assert.Equal(t, 7, src.Between(7, 7))
	})
}

func TestStaticSource(t *testing.T) {
	ctx := context.Background()

	t.Run("offset rolls clamp to the band", func(t *testing.T) {
		src := &StaticSource{Offset: 3}
		assert.Equal(t, 88, src.Between(85, 94))

		src.Offset = 50
		assert.Equal(t, 94, src.Between(85, 94))
	})

	t.Run("custom registry overrides the builtin", func(t *testing.T) {
		src := &StaticSource{Registry: map[string]Profile{"X": {Name: "Custom"}}}
		p, ok, err := src.LookupProfile(ctx, "X")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "Custom", p.Name)

		_, ok, err = src.LookupProfile(ctx, "ABCDE1234F")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
