package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/qiuyou/courtside/internal/domain/venue"
	"github.com/qiuyou/courtside/internal/repository"
)

const venueColumns = `
	id, name, city, address, latitude, longitude, court_count, price_range,
	facilities, phone, open_hours, rating, created_at`

// VenueRepository implements venue.Repository for SQLite
type VenueRepository struct {
	db *DB
}

// NewVenueRepository creates a new VenueRepository
func NewVenueRepository(db *DB) *VenueRepository {
	return &VenueRepository{db: db}
}

// Create inserts a new venue
func (r *VenueRepository) Create(ctx context.Context, v *venue.Venue) error {
	query := `INSERT INTO venues (` + venueColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		v.ID,
		v.Name,
		v.City,
		v.Address,
		v.Latitude,
		v.Longitude,
		v.CourtCount,
		nullString(v.PriceRange),
		nullString(v.Facilities),
		nullString(v.Phone),
		nullString(v.OpenHours),
		v.Rating,
		v.CreatedAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("failed to create venue: %w", err)
	}
	return nil
}

// Get retrieves a venue by ID
func (r *VenueRepository) Get(ctx context.Context, id string) (*venue.Venue, error) {
	v, err := scanVenue(r.db.QueryRowContext(ctx, `SELECT `+venueColumns+` FROM venues WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get venue: %w", err)
	}
	return v, nil
}

// ListByCity returns a city's venues, best rated first
func (r *VenueRepository) ListByCity(ctx context.Context, city string) ([]venue.Venue, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+venueColumns+` FROM venues WHERE city = ? ORDER BY rating DESC, name ASC`, city)
	if err != nil {
		return nil, fmt.Errorf("failed to list venues: %w", err)
	}
	defer rows.Close()

	var venues []venue.Venue
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan venue: %w", err)
		}
		venues = append(venues, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating venue rows: %w", err)
	}
	return venues, nil
}

// Cities returns the distinct venue cities
func (r *VenueRepository) Cities(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT city FROM venues ORDER BY city`)
	if err != nil {
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}
	defer rows.Close()

	var cities []string
	for rows.Next() {
		var city string
		if err := rows.Scan(&city); err != nil {
			return nil, fmt.Errorf("failed to scan city: %w", err)
		}
		cities = append(cities, city)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating city rows: %w", err)
	}
	return cities, nil
}

// Count returns the number of stored venues
func (r *VenueRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM venues`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count venues: %w", err)
	}
	return count, nil
}

func scanVenue(row rowScanner) (*venue.Venue, error) {
	var v venue.Venue
	var priceRange, facilities, phone, openHours sql.NullString
	if err := row.Scan(
		&v.ID,
		&v.Name,
		&v.City,
		&v.Address,
		&v.Latitude,
		&v.Longitude,
		&v.CourtCount,
		&priceRange,
		&facilities,
		&phone,
		&openHours,
		&v.Rating,
		&v.CreatedAt,
	); err != nil {
		return nil, err
	}
	v.PriceRange = priceRange.String
	v.Facilities = facilities.String
	v.Phone = phone.String
	v.OpenHours = openHours.String
	return &v, nil
}
