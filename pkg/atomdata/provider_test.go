package atomdata_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/photosphere/internal/logging"
	"github.com/aretw0/photosphere/internal/testutils"
	loamAdapter "github.com/aretw0/photosphere/pkg/adapters/loam"
	"github.com/aretw0/photosphere/pkg/adapters/memory"
	"github.com/aretw0/photosphere/pkg/atomdata"
	"github.com/aretw0/photosphere/pkg/domain"
	"github.com/aretw0/photosphere/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource []domain.Element

func (s staticSource) Elements(context.Context) ([]domain.Element, error) {
	return domain.CloneElements(s), nil
}

type failingCache struct{ saves int }

func (f *failingCache) Save(context.Context, string, []domain.Element) error {
	f.saves++
	return errors.New("cache down")
}

func (f *failingCache) Load(context.Context, string) ([]domain.Element, error) {
	return nil, errors.New("cache down")
}

func (f *failingCache) Delete(context.Context, string) error { return nil }

func openLoam(path string) (ports.AtomDataSource, error) {
	return loamAdapter.Open(path)
}

func TestProvider_FileWithoutCache(t *testing.T) {
	path := testutils.WriteAtomData(t, t.TempDir(), 30)

	ds, err := atomdata.NewProvider().Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 30, ds.Len())
}

func TestProvider_PopulatesCache(t *testing.T) {
	ctx := context.Background()
	path := testutils.WriteAtomData(t, t.TempDir(), 5)
	cache := memory.NewCache()

	_, err := atomdata.NewProvider(atomdata.WithCache(cache)).Load(ctx, path)
	require.NoError(t, err)

	key, err := atomdata.CacheKey(path)
	require.NoError(t, err)
	cached, err := cache.Load(ctx, key)
	require.NoError(t, err)
	assert.Len(t, cached, 5)
}

func TestProvider_CacheHitSkipsStore(t *testing.T) {
	ctx := context.Background()
	path := testutils.WriteAtomData(t, t.TempDir(), 30)

	key, err := atomdata.CacheKey(path)
	require.NoError(t, err)
	cache := memory.NewCache()
	require.NoError(t, cache.Save(ctx, key, testutils.Elements(2)))

	ds, err := atomdata.NewProvider(atomdata.WithCache(cache)).Load(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Len(), "cached content is returned without reading the file")
}

func TestProvider_InvalidCacheEntryIsReplaced(t *testing.T) {
	ctx := context.Background()
	path := testutils.WriteAtomData(t, t.TempDir(), 3)

	key, err := atomdata.CacheKey(path)
	require.NoError(t, err)
	cache := memory.NewCache()
	require.NoError(t, cache.Save(ctx, key, []domain.Element{{AtomicNumber: 1}}))

	ds, err := atomdata.NewProvider(atomdata.WithCache(cache)).Load(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 3, ds.Len())

	cached, err := cache.Load(ctx, key)
	require.NoError(t, err)
	assert.Len(t, cached, 3)
}

func TestProvider_CacheFailureFallsThrough(t *testing.T) {
	path := testutils.WriteAtomData(t, t.TempDir(), 4)
	cache := &failingCache{}

	ds, err := atomdata.NewProvider(
		atomdata.WithCache(cache),
		atomdata.WithLogger(logging.NewNop()),
	).Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 4, ds.Len())
	assert.Equal(t, 1, cache.saves)
}

func TestProvider_ContentChangeChangesKey(t *testing.T) {
	dir := t.TempDir()
	path := testutils.WriteAtomData(t, dir, 3)
	before, err := atomdata.CacheKey(path)
	require.NoError(t, err)

	testutils.WriteAtomData(t, dir, 12)
	after, err := atomdata.CacheKey(path)
	require.NoError(t, err)
	assert.NotEqual(t, before, after)
}

func TestProvider_Directory(t *testing.T) {
	dir := testutils.WriteAtomDataDir(t, t.TempDir(), 8)

	t.Run("without opener", func(t *testing.T) {
		_, err := atomdata.NewProvider().Load(context.Background(), dir)
		assert.ErrorIs(t, err, atomdata.ErrNoDirectorySource)
		var le *atomdata.LoadError
		assert.ErrorAs(t, err, &le)
	})

	t.Run("loam source", func(t *testing.T) {
		ds, err := atomdata.NewProvider(atomdata.WithDirectoryOpener(openLoam)).Load(context.Background(), dir)
		require.NoError(t, err)
		assert.Equal(t, atomdata.ElementRange(8), ds.AtomicNumbers())
	})

	t.Run("custom source", func(t *testing.T) {
		open := func(string) (ports.AtomDataSource, error) {
			return staticSource(testutils.Elements(3)), nil
		}
		ds, err := atomdata.NewProvider(atomdata.WithDirectoryOpener(open)).Load(context.Background(), dir)
		require.NoError(t, err)
		assert.Equal(t, 3, ds.Len())
	})
}

func TestProvider_MissingPath(t *testing.T) {
	_, err := atomdata.NewProvider().Load(context.Background(), "/definitely/not/here.yaml")
	var le *atomdata.LoadError
	require.ErrorAs(t, err, &le)
}
