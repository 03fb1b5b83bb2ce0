package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourdesk/internal/catalog"
	apperrors "tourdesk/internal/errors"
	"tourdesk/internal/models"
)

type failingSearcher struct{ indexed int }

func (f *failingSearcher) Search(context.Context, string, string, int, int) (models.SearchShowsResponse, error) {
	return models.SearchShowsResponse{}, errors.New("index unavailable")
}

func (f *failingSearcher) IndexShows(_ context.Context, docs []models.ShowDocument) error {
	f.indexed = len(docs)
	return nil
}

func TestCatalogListAllAndRegion(t *testing.T) {
	svc := NewCatalogService(catalog.NewStatic(), nil)
	ctx := context.Background()

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all.Regions, 4)

	same, err := svc.List(ctx, catalog.AllRegions)
	require.NoError(t, err)
	assert.Len(t, same.Regions, 4)

	latam, err := svc.List(ctx, "LATIN AMERICA")
	require.NoError(t, err)
	require.Len(t, latam.Regions, 1)

	none, err := svc.List(ctx, "latin america")
	require.NoError(t, err)
	assert.Empty(t, none.Regions)
}

func TestCatalogStats(t *testing.T) {
	svc := NewCatalogService(catalog.NewStatic(), nil)
	stats, err := svc.Stats(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, models.CatalogStats{Shows: 38, Cities: 17, Countries: 7, Regions: 4}, stats)
}

func TestCatalogGetShow(t *testing.T) {
	svc := NewCatalogService(catalog.NewStatic(), nil)
	ctx := context.Background()

	show, err := svc.GetShow(ctx, "bangkok-12-03")
	require.NoError(t, err)
	assert.True(t, show.Purchasable)

	sold, err := svc.GetShow(ctx, "tokyo-04-17")
	require.NoError(t, err)
	assert.False(t, sold.Purchasable)

	_, err = svc.GetShow(ctx, "atlantis-01-01")
	assert.ErrorIs(t, err, apperrors.ErrShowNotFound)
}

func TestCatalogSearchFallsBackToScan(t *testing.T) {
	searcher := &failingSearcher{}
	svc := NewCatalogService(catalog.NewStatic(), searcher)

	resp, err := svc.Search(context.Background(), "bangkok", "", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Total)
	assert.Len(t, resp.Shows, 2)
	assert.Equal(t, "THAILAND", resp.Shows[0].Country)

	page2, err := svc.Search(context.Background(), "bangkok", "", 2, 2)
	require.NoError(t, err)
	assert.Len(t, page2.Shows, 1)

	require.NoError(t, svc.Reindex(context.Background()))
	assert.Equal(t, 38, searcher.indexed)
}

func TestCatalogSearchHugePage(t *testing.T) {
	svc := NewCatalogService(catalog.NewStatic(), &failingSearcher{})

	resp, err := svc.Search(context.Background(), "", "", math.MaxInt, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(38), resp.Total)
	assert.Empty(t, resp.Shows)
}

type stubFinder struct {
	shows map[string]models.Show
	err   error
	calls int
}

func (f *stubFinder) GetByID(_ context.Context, id string) (*models.Show, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.shows[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func TestCatalogShowUsesFinder(t *testing.T) {
	ctx := context.Background()
	finder := &stubFinder{shows: map[string]models.Show{
		"lima-12-20": {ID: "lima-12-20", City: "Lima", VIPSeats: 5},
	}}
	svc := NewCatalogService(catalog.NewStatic(), nil).WithFinder(finder)

	show, err := svc.GetShow(ctx, "lima-12-20")
	require.NoError(t, err)
	assert.Equal(t, "Lima", show.City)
	assert.True(t, show.LowStock)

	_, err = svc.Show(ctx, "bangkok-12-03")
	assert.ErrorIs(t, err, apperrors.ErrShowNotFound)
	assert.Equal(t, 2, finder.calls)

	finder.err = errors.New("connection refused")
	_, err = svc.Show(ctx, "lima-12-20")
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrShowNotFound)
}
