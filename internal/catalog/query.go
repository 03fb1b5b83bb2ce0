package catalog

import (
	"tourdesk/internal/models"
)

// AllRegions is the filter-bar entry meaning "no region filter"
const AllRegions = "ALL"

// LowStockThreshold is the VIP seat count at or below which a show is
// flagged as running out.
const LowStockThreshold = 15

// Query returns the regions matching filter. An empty filter returns every
// region; otherwise only the region whose name equals filter exactly is
// returned, or an empty slice when there is none.
func Query(regions []models.Region, filter string) []models.Region {
	if filter == "" {
		return regions
	}
	result := make([]models.Region, 0, 1)
	for _, r := range regions {
		if r.Name == filter {
			result = append(result, r)
		}
	}
	return result
}

// Summarize folds the region tree into the headline numbers
func Summarize(regions []models.Region) models.CatalogStats {
	cities := make(map[string]struct{})
	stats := models.CatalogStats{Regions: len(regions)}
	for _, r := range regions {
		stats.Countries += len(r.Countries)
		for _, c := range r.Countries {
			stats.Shows += len(c.Shows)
			for _, s := range c.Shows {
				cities[s.City] = struct{}{}
			}
		}
	}
	stats.Cities = len(cities)
	return stats
}

// RegionNames returns the filter-bar entries: AllRegions followed by every
// region name in catalog order.
func RegionNames(regions []models.Region) []string {
	names := make([]string, 0, len(regions)+1)
	names = append(names, AllRegions)
	for _, r := range regions {
		names = append(names, r.Name)
	}
	return names
}

// Find looks a show up by ID
func Find(regions []models.Region, showID string) (models.Show, bool) {
	for _, r := range regions {
		for _, c := range r.Countries {
			for _, s := range c.Shows {
				if s.ID == showID {
					return s, true
				}
			}
		}
	}
	return models.Show{}, false
}

// Documents flattens the tree into search documents
func Documents(regions []models.Region) []models.ShowDocument {
	var docs []models.ShowDocument
	for _, r := range regions {
		for _, c := range r.Countries {
			for _, s := range c.Shows {
				docs = append(docs, models.ShowDocument{Show: s, Region: r.Name, Country: c.Name})
			}
		}
	}
	return docs
}

// Purchasable gates the "buy" action. Only VIP availability counts: a show
// with standard seats left but no VIP seats is not purchasable.
func Purchasable(s models.Show) bool {
	return !s.SoldOut && s.VIPSeats > 0
}

// LowStock reports whether the VIP counter is low enough to signal urgency
func LowStock(s models.Show) bool {
	return s.VIPSeats > 0 && s.VIPSeats <= LowStockThreshold
}

// Response decorates regions with purchasability flags for the API
func Response(regions []models.Region) models.ListCatalogResponse {
	resp := models.ListCatalogResponse{Regions: make([]models.RegionResponse, 0, len(regions))}
	for _, r := range regions {
		rr := models.RegionResponse{Name: r.Name, Emoji: r.Emoji, Countries: make([]models.CountryResponse, 0, len(r.Countries))}
		for _, c := range r.Countries {
			cr := models.CountryResponse{Name: c.Name, Flag: c.Flag, AllSoldOut: c.AllSoldOut(), Shows: make([]models.ShowResponse, 0, len(c.Shows))}
			for _, s := range c.Shows {
				cr.Shows = append(cr.Shows, models.ShowResponse{Show: s, Purchasable: Purchasable(s), LowStock: LowStock(s)})
			}
			rr.Countries = append(rr.Countries, cr)
		}
		resp.Regions = append(resp.Regions, rr)
	}
	return resp
}
