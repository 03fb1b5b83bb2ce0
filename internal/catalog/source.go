package catalog

import (
	"context"

	"tourdesk/internal/models"
)

// Source yields the full region -> country -> show tree with current seat
// counts and prices. Implementations must return data the caller may keep.
type Source interface {
	Regions(ctx context.Context) ([]models.Region, error)
}

// Static serves the built-in tour schedule
type Static struct {
	regions []models.Region
}

// NewStatic returns a source over the built-in dataset
func NewStatic() *Static {
	return &Static{regions: tourData}
}

// NewStaticFrom returns a source over the given regions
func NewStaticFrom(regions []models.Region) *Static {
	return &Static{regions: Clone(regions)}
}

// Regions returns a deep copy of the dataset
func (s *Static) Regions(_ context.Context) ([]models.Region, error) {
	return Clone(s.regions), nil
}

// Clone deep-copies a region tree so that shows held by callers are
// independent of the source.
func Clone(regions []models.Region) []models.Region {
	if regions == nil {
		return nil
	}
	out := make([]models.Region, len(regions))
	for i, r := range regions {
		out[i] = models.Region{Name: r.Name, Emoji: r.Emoji}
		out[i].Countries = make([]models.Country, len(r.Countries))
		for j, c := range r.Countries {
			shows := make([]models.Show, len(c.Shows))
			copy(shows, c.Shows)
			out[i].Countries[j] = models.Country{Name: c.Name, Flag: c.Flag, Shows: shows}
		}
	}
	return out
}
