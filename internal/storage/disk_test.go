package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRetrieveRoundTrip(t *testing.T) {
	s := NewDiskStore(t.TempDir())

	for _, payload := range [][]byte{
		[]byte("hello"),
		{},
		{0x00, 0xff, 0x10},
	} {
		location, err := s.Store(payload)
		require.NoError(t, err)

		got, err := s.Retrieve(location)
		require.NoError(t, err)
		assert.Equal(t, payload, got)
	}
}

func TestStoreCreatesRootLazily(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "blobs")
	s := NewDiskStore(root)

	_, err := os.Stat(root)
	require.True(t, os.IsNotExist(err))

	location, err := s.Store([]byte("x"))
	require.NoError(t, err)
	assert.Equal(t, root, filepath.Dir(location))
}

func TestLocationsAreUnique(t *testing.T) {
	s := NewDiskStore(t.TempDir())

	a, err := s.Store([]byte("same"))
	require.NoError(t, err)
	b, err := s.Store([]byte("same"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "no dedup: identical payloads get distinct locations")
}

func TestRetrieveMissing(t *testing.T) {
	s := NewDiskStore(t.TempDir())

	_, err := s.Retrieve(filepath.Join(t.TempDir(), "nope"))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestThumbnailLocationConvention(t *testing.T) {
	s := NewDiskStore(t.TempDir())

	assert.Equal(t, "/data/abc_500", s.ThumbnailLocation("/data/abc", 500))
	assert.Equal(t, "/data/abc_100", s.ThumbnailLocation("/data/abc", 100))
}

func TestPutOverwrites(t *testing.T) {
	s := NewDiskStore(t.TempDir())

	location, err := s.Store([]byte("v1"))
	require.NoError(t, err)

	derived := s.ThumbnailLocation(location, 200)
	require.NoError(t, s.Put(derived, []byte("first")))
	require.NoError(t, s.Put(derived, []byte("second")))

	got, err := s.Retrieve(derived)
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), got)
}
