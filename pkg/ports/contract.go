package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/photosphere/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunAtomDataCacheContract runs a suite of tests to verify that an
// AtomDataCache implementation adheres to the interface contract.
func RunAtomDataCacheContract(t *testing.T, cache AtomDataCache) {
	ctx := context.Background()
	key := "contract-test-" + time.Now().Format("20060102150405")

	elements := []domain.Element{
		{AtomicNumber: 1, Symbol: "H", Name: "Hydrogen", Mass: 1.008, IonizationEnergies: []float64{13.598}},
		{AtomicNumber: 2, Symbol: "He", Name: "Helium", Mass: 4.0026, IonizationEnergies: []float64{24.587, 54.418}},
	}

	t.Run("Save and Load", func(t *testing.T) {
		require.NoError(t, cache.Save(ctx, key, elements), "Save should not return error")

		loaded, err := cache.Load(ctx, key)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, elements, loaded)
	})

	t.Run("Load returns a copy", func(t *testing.T) {
		require.NoError(t, cache.Save(ctx, key, elements))

		loaded, err := cache.Load(ctx, key)
		require.NoError(t, err)
		loaded[0].Mass = 99
		loaded[1].IonizationEnergies[0] = 0

		again, err := cache.Load(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, 1.008, again[0].Mass)
		assert.Equal(t, 24.587, again[1].IonizationEnergies[0])
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, cache.Save(ctx, key, elements[:1]))

		loaded, err := cache.Load(ctx, key)
		require.NoError(t, err)
		assert.Len(t, loaded, 1)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := cache.Load(ctx, "non-existent-"+key)
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, cache.Save(ctx, key, elements))

		require.NoError(t, cache.Delete(ctx, key), "Delete should not return error")

		_, err := cache.Load(ctx, key)
		assert.ErrorIs(t, err, domain.ErrCacheMiss, "Load after Delete should return ErrCacheMiss")

		assert.NoError(t, cache.Delete(ctx, key), "Deleting twice should not return error")
	})
}
