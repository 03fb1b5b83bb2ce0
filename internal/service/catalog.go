package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"tourdesk/internal/catalog"
	apperrors "tourdesk/internal/errors"
	"tourdesk/internal/models"
)

// Searcher is the full-text show index
type Searcher interface {
	Search(ctx context.Context, query, region string, page, pageSize int) (models.SearchShowsResponse, error)
	IndexShows(ctx context.Context, docs []models.ShowDocument) error
}

// ShowFinder looks a single show up without loading the whole catalog.
// GetByID returns nil when there is no such show.
type ShowFinder interface {
	GetByID(ctx context.Context, id string) (*models.Show, error)
}

type CatalogService struct {
	source   catalog.Source
	searcher Searcher
	finder   ShowFinder
}

// NewCatalogService; searcher may be nil, search then runs in memory
func NewCatalogService(source catalog.Source, searcher Searcher) *CatalogService {
	return &CatalogService{source: source, searcher: searcher}
}

// WithFinder routes single-show lookups to f
func (s *CatalogService) WithFinder(f ShowFinder) *CatalogService {
	s.finder = f
	return s
}

func (s *CatalogService) regions(ctx context.Context, region string) ([]models.Region, error) {
	regions, err := s.source.Regions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	if region == catalog.AllRegions {
		region = ""
	}
	return catalog.Query(regions, region), nil
}

// List returns the catalog tree, optionally narrowed to one region
func (s *CatalogService) List(ctx context.Context, region string) (models.ListCatalogResponse, error) {
	regions, err := s.regions(ctx, region)
	if err != nil {
		return models.ListCatalogResponse{}, err
	}
	return catalog.Response(regions), nil
}

func (s *CatalogService) Stats(ctx context.Context, region string) (models.CatalogStats, error) {
	regions, err := s.regions(ctx, region)
	if err != nil {
		return models.CatalogStats{}, err
	}
	return catalog.Summarize(regions), nil
}

// RegionNames returns the filter entries, ALL first
func (s *CatalogService) RegionNames(ctx context.Context) ([]string, error) {
	regions, err := s.regions(ctx, "")
	if err != nil {
		return nil, err
	}
	return catalog.RegionNames(regions), nil
}

func (s *CatalogService) Show(ctx context.Context, id string) (models.Show, error) {
	if s.finder != nil {
		show, err := s.finder.GetByID(ctx, id)
		if err != nil {
			return models.Show{}, err
		}
		if show == nil {
			return models.Show{}, apperrors.ErrShowNotFound
		}
		return *show, nil
	}

	regions, err := s.regions(ctx, "")
	if err != nil {
		return models.Show{}, err
	}
	show, ok := catalog.Find(regions, id)
	if !ok {
		return models.Show{}, apperrors.ErrShowNotFound
	}
	return show, nil
}

func (s *CatalogService) GetShow(ctx context.Context, id string) (models.ShowResponse, error) {
	show, err := s.Show(ctx, id)
	if err != nil {
		return models.ShowResponse{}, err
	}
	return models.ShowResponse{Show: show, Purchasable: catalog.Purchasable(show), LowStock: catalog.LowStock(show)}, nil
}

// Search uses the index when there is one. Index failures fall back to a
// substring match over the catalog.
func (s *CatalogService) Search(ctx context.Context, query, region string, page, pageSize int) (models.SearchShowsResponse, error) {
	if region == catalog.AllRegions {
		region = ""
	}
	if s.searcher != nil {
		resp, err := s.searcher.Search(ctx, query, region, page, pageSize)
		if err == nil {
			return resp, nil
		}
		slog.Warn("Show index search failed, using catalog scan", "error", err)
	}

	regions, err := s.regions(ctx, region)
	if err != nil {
		return models.SearchShowsResponse{}, err
	}
	return scan(catalog.Documents(regions), query, page, pageSize), nil
}

// Reindex pushes the whole catalog into the search index
func (s *CatalogService) Reindex(ctx context.Context) error {
	if s.searcher == nil {
		return nil
	}
	regions, err := s.regions(ctx, "")
	if err != nil {
		return err
	}
	return s.searcher.IndexShows(ctx, catalog.Documents(regions))
}

func scan(docs []models.ShowDocument, query string, page, pageSize int) models.SearchShowsResponse {
	q := strings.ToLower(strings.TrimSpace(query))
	matched := make([]models.ShowDocument, 0)
	for _, d := range docs {
		if q == "" ||
			strings.Contains(strings.ToLower(d.City), q) ||
			strings.Contains(strings.ToLower(d.Venue), q) ||
			strings.Contains(strings.ToLower(d.Country), q) {
			matched = append(matched, d)
		}
	}

	total := int64(len(matched))
	if pageSize <= 0 {
		pageSize = 20
	}
	if page < 1 {
		page = 1
	}
	// (page-1)*pageSize overflows for huge pages
	from := len(matched)
	if page-1 < len(matched)/pageSize+1 {
		from = min((page-1)*pageSize, len(matched))
	}
	to := min(from+pageSize, len(matched))
	return models.SearchShowsResponse{Shows: matched[from:to], Total: total}
}
