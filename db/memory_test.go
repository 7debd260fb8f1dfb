package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sea-routing/model"
)

func sampleLocations() []model.Location {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	uk := &model.Country{ID: 1, Name: "United Kingdom", Code: "GB"}
	ca := &model.Country{ID: 2, Name: "Canada", Code: "CA"}
	return []model.Location{
		{ID: 1, Name: "ST. MARY'S (SCILLY ISL.)", Lat: 49.9167, Lon: -6.3167, Type: model.LocationPort, Country: uk, UpdatedAt: base},
		{ID: 2, Name: "MILLHAVEN", Lat: 44.2, Lon: -76.7333, Type: model.LocationPort, Country: ca, UpdatedAt: base.Add(time.Hour)},
		{ID: 3, Name: "Penzance", Lat: 50.1186, Lon: -5.5372, Type: model.LocationCity, Country: uk, UpdatedAt: base.Add(2 * time.Hour)},
	}
}

func TestMemoryStore_FindByName(t *testing.T) {
	s := NewMemoryLocationStore(sampleLocations()...)
	ctx := context.Background()

	loc, err := s.FindByName(ctx, "MILLHAVEN")
	require.NoError(t, err)
	require.NotNil(t, loc)
	assert.Equal(t, uint(2), loc.ID)

	loc, err = s.FindByName(ctx, "millhaven")
	require.NoError(t, err)
	assert.Nil(t, loc, "name lookup is exact")

	loc, err = s.FindByID(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Penzance", loc.Name)

	loc, err = s.FindByID(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, loc)
}

func TestMemoryStore_SearchFilters(t *testing.T) {
	s := NewMemoryLocationStore(sampleLocations()...)
	ctx := context.Background()

	locs, count, err := s.Search(ctx, model.LocationFilter{
		Exact: &model.Coordinate{Lat: 49.9167, Lon: -6.3167},
		Type:  model.LocationPort,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, uint(1), locs[0].ID)

	locs, _, err = s.Search(ctx, model.LocationFilter{
		Near:   &model.Coordinate{Lat: 50, Lon: -6},
		Radius: 1,
	})
	require.NoError(t, err)
	assert.Len(t, locs, 2, "planar pre-filter keeps the two Cornish locations")

	locs, count, err = s.Search(ctx, model.LocationFilter{CountryName: "kingdom", Sort: model.SortAsc})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Equal(t, uint(1), locs[0].ID)
	assert.Equal(t, uint(3), locs[1].ID)

	_, count, err = s.Search(ctx, model.LocationFilter{Keyword: "canada"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestMemoryStore_SearchPaging(t *testing.T) {
	s := NewMemoryLocationStore(sampleLocations()...)

	locs, count, err := s.Search(context.Background(), model.LocationFilter{Sort: model.SortDesc, Take: 1, Skip: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(3), count, "count ignores paging")
	require.Len(t, locs, 1)
	assert.Equal(t, uint(2), locs[0].ID)

	locs, _, err = s.Search(context.Background(), model.LocationFilter{Skip: 10})
	require.NoError(t, err)
	assert.Empty(t, locs)
}
