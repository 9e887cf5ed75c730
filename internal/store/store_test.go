package store

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microfab-data/lithopath/internal/toolpath"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "archive.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testToolpath(points int) *toolpath.Toolpath {
	tp := &toolpath.Toolpath{Layers: 2}
	for i := 0; i < points; i++ {
		tp.Points = append(tp.Points, toolpath.Point{
			X:     float64(i) * 0.5,
			Y:     float64(i) * 0.25,
			Z:     float64(i / 5),
			Power: 20,
			Speed: 50000,
		})
	}
	return tp
}

func TestPutGet(t *testing.T) {
	s := openTestStore(t)

	tp := testToolpath(10)
	id, err := s.Put("cube-10um", tp)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	got, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, tp.Layers, got.Layers)
	assert.Empty(t, cmp.Diff(tp.Points, got.Points))
}

func TestGet_NotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Get("no-such-id")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestList(t *testing.T) {
	s := openTestStore(t)

	ida, err := s.Put("first", testToolpath(4))
	require.NoError(t, err)
	idb, err := s.Put("second", testToolpath(6))
	require.NoError(t, err)

	records, err := s.List()
	require.NoError(t, err)
	require.Len(t, records, 2)

	byID := map[string]Record{}
	for _, r := range records {
		byID[r.ID] = r
	}
	require.Contains(t, byID, ida)
	require.Contains(t, byID, idb)

	first := byID[ida]
	assert.Equal(t, "first", first.Name)
	assert.Equal(t, 4, first.NumPoints)
	assert.Equal(t, 2, first.NumLayers)
	assert.Greater(t, first.TotalLength, 0.0)
	assert.Greater(t, first.TimeEstimate, 0.0)
	assert.False(t, first.CreatedAt.IsZero())
}

func TestList_Empty(t *testing.T) {
	s := openTestStore(t)

	records, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)

	id, err := s.Put("scratch", testToolpath(3))
	require.NoError(t, err)

	require.NoError(t, s.Delete(id))

	_, err = s.Get(id)
	assert.Error(t, err)

	err = s.Delete(id)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.db")

	s, err := Open(path)
	require.NoError(t, err)
	id, err := s.Put("persisted", testToolpath(5))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	got, err := s2.Get(id)
	require.NoError(t, err)
	assert.Equal(t, 5, got.NumPoints())
}
