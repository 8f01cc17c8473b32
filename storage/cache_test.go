package storage_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tidbyt.dev/daytrip"
	"tidbyt.dev/daytrip/storage"
	"tidbyt.dev/daytrip/testutil"
)

func TestCacheRoundTrip(t *testing.T) {
	dir := testutil.BuildFeedDir(t, map[string][]string{
		"agency.txt": {
			"agency_id,agency_name,agency_url,agency_timezone",
			"a1,Acme Transit,http://example.com,UTC",
		},
	})

	cache, err := storage.Open(":memory:")
	require.NoError(t, err)
	defer cache.Close()

	_, ok, err := cache.Load(dir)
	require.NoError(t, err)
	require.False(t, ok)

	feed, err := daytrip.Load(dir)
	require.NoError(t, err)
	require.NoError(t, cache.Store(dir, feed))

	got, ok, err := cache.Load(dir)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, feed.Agencies["a1"].Name, got.Agencies["a1"].Name)
}

func TestCacheMissAfterDirectoryModified(t *testing.T) {
	dir := testutil.BuildFeedDir(t, map[string][]string{})

	cache, err := storage.Open(":memory:")
	require.NoError(t, err)
	defer cache.Close()

	feed, err := daytrip.Load(dir)
	require.NoError(t, err)
	require.NoError(t, cache.Store(dir, feed))

	_, ok, err := cache.Load(dir)
	require.NoError(t, err)
	require.True(t, ok)

	// advance a file's mtime past the cached entry
	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "agency.txt"), future, future))

	_, ok, err = cache.Load(dir)
	require.NoError(t, err)
	require.False(t, ok)
}
