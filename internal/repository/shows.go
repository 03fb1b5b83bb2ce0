package repository

import (
	"context"
	"database/sql"
	"fmt"

	"tourdesk/internal/database"
	"tourdesk/internal/models"
)

// ShowRepository stores the tour catalog in Postgres. It is a catalog.Source.
type ShowRepository struct {
	db *database.DB
}

func NewShowRepository(db *database.DB) *ShowRepository {
	return &ShowRepository{db: db}
}

// showRow is one line of the flattened region/country/show join
type showRow struct {
	Region      string
	RegionEmoji string
	Country     string
	CountryFlag string
	Show        models.Show
}

const regionsQuery = `
	SELECT r.name, r.emoji, c.name, c.flag,
	       s.id, s.date, s.city, s.venue, s.address, s.day,
	       s.standard_price, s.vip_price, s.standard_seats, s.vip_seats, s.sold_out
	FROM regions r
	JOIN countries c ON c.region = r.name
	JOIN shows s ON s.country = c.name
	ORDER BY r.position, c.position, s.position`

// Regions loads the whole catalog tree in display order
func (r *ShowRepository) Regions(ctx context.Context) ([]models.Region, error) {
	rows, err := r.db.QueryContext(ctx, regionsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}
	defer rows.Close()

	var flat []showRow
	for rows.Next() {
		var row showRow
		s := &row.Show
		if err := rows.Scan(
			&row.Region, &row.RegionEmoji, &row.Country, &row.CountryFlag,
			&s.ID, &s.Date, &s.City, &s.Venue, &s.Address, &s.Day,
			&s.StandardPrice, &s.VIPPrice, &s.StandardSeats, &s.VIPSeats, &s.SoldOut,
		); err != nil {
			return nil, fmt.Errorf("failed to scan show: %w", err)
		}
		flat = append(flat, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return buildTree(flat), nil
}

// GetByID returns nil when the show does not exist
func (r *ShowRepository) GetByID(ctx context.Context, id string) (*models.Show, error) {
	s := &models.Show{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, date, city, venue, address, day,
		       standard_price, vip_price, standard_seats, vip_seats, sold_out
		FROM shows WHERE id = $1`, id).Scan(
		&s.ID, &s.Date, &s.City, &s.Venue, &s.Address, &s.Day,
		&s.StandardPrice, &s.VIPPrice, &s.StandardSeats, &s.VIPSeats, &s.SoldOut,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get show %s: %w", id, err)
	}
	return s, nil
}

// ReplaceAll swaps the stored catalog for regions in one transaction
func (r *ShowRepository) ReplaceAll(ctx context.Context, regions []models.Region) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{`DELETE FROM shows`, `DELETE FROM countries`, `DELETE FROM regions`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to clear catalog: %w", err)
		}
	}

	for ri, region := range regions {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO regions (name, emoji, position) VALUES ($1, $2, $3)`,
			region.Name, region.Emoji, ri); err != nil {
			return fmt.Errorf("failed to insert region %s: %w", region.Name, err)
		}
		for ci, country := range region.Countries {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO countries (name, region, flag, position) VALUES ($1, $2, $3, $4)`,
				country.Name, region.Name, country.Flag, ci); err != nil {
				return fmt.Errorf("failed to insert country %s: %w", country.Name, err)
			}
			for si, s := range country.Shows {
				if _, err := tx.ExecContext(ctx, `
					INSERT INTO shows (id, country, date, city, venue, address, day,
					                   standard_price, vip_price, standard_seats, vip_seats, sold_out, position)
					VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
					s.ID, country.Name, s.Date, s.City, s.Venue, s.Address, s.Day,
					s.StandardPrice, s.VIPPrice, s.StandardSeats, s.VIPSeats, s.SoldOut, si); err != nil {
					return fmt.Errorf("failed to insert show %s: %w", s.ID, err)
				}
			}
		}
	}

	return tx.Commit()
}

// buildTree folds ordered join rows back into the region tree
func buildTree(rows []showRow) []models.Region {
	regions := []models.Region{}
	for _, row := range rows {
		if n := len(regions); n == 0 || regions[n-1].Name != row.Region {
			regions = append(regions, models.Region{Name: row.Region, Emoji: row.RegionEmoji})
		}
		region := &regions[len(regions)-1]
		if n := len(region.Countries); n == 0 || region.Countries[n-1].Name != row.Country {
			region.Countries = append(region.Countries, models.Country{Name: row.Country, Flag: row.CountryFlag})
		}
		country := &region.Countries[len(region.Countries)-1]
		country.Shows = append(country.Shows, row.Show)
	}
	return regions
}
