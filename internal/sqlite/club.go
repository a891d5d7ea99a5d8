package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/qiuyou/courtside/internal/domain/venue"
	"github.com/qiuyou/courtside/internal/repository"
)

const clubColumns = `
	id, name, address, latitude, longitude, court_count, facilities,
	contact_phone, images, created_at`

// ClubRepository implements venue.ClubRepository for SQLite
type ClubRepository struct {
	db *DB
}

// NewClubRepository creates a new ClubRepository
func NewClubRepository(db *DB) *ClubRepository {
	return &ClubRepository{db: db}
}

// Create inserts a new club
func (r *ClubRepository) Create(ctx context.Context, c *venue.Club) error {
	images, err := encodeStrings(c.Images)
	if err != nil {
		return err
	}
	query := `INSERT INTO clubs (` + clubColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		c.ID,
		c.Name,
		c.Address,
		c.Latitude,
		c.Longitude,
		c.CourtCount,
		nullString(c.Facilities),
		nullString(c.ContactPhone),
		images,
		c.CreatedAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("failed to create club: %w", err)
	}
	return nil
}

// Get retrieves a club by ID
func (r *ClubRepository) Get(ctx context.Context, id string) (*venue.Club, error) {
	c, err := scanClub(r.db.QueryRowContext(ctx, `SELECT `+clubColumns+` FROM clubs WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get club: %w", err)
	}
	return c, nil
}

// List returns all clubs ordered by name
func (r *ClubRepository) List(ctx context.Context) ([]venue.Club, error) {
	return r.query(ctx, `SELECT `+clubColumns+` FROM clubs ORDER BY name`)
}

// SearchByName returns clubs whose name contains query
func (r *ClubRepository) SearchByName(ctx context.Context, query string) ([]venue.Club, error) {
	pattern := "%" + escapeLike(query) + "%"
	return r.query(ctx, `SELECT `+clubColumns+` FROM clubs WHERE name LIKE ? ESCAPE '\' ORDER BY name`, pattern)
}

func (r *ClubRepository) query(ctx context.Context, query string, args ...interface{}) ([]venue.Club, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list clubs: %w", err)
	}
	defer rows.Close()

	var clubs []venue.Club
	for rows.Next() {
		c, err := scanClub(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan club: %w", err)
		}
		clubs = append(clubs, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating club rows: %w", err)
	}
	return clubs, nil
}

func scanClub(row rowScanner) (*venue.Club, error) {
	var c venue.Club
	var facilities, phone sql.NullString
	var images string
	if err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Address,
		&c.Latitude,
		&c.Longitude,
		&c.CourtCount,
		&facilities,
		&phone,
		&images,
		&c.CreatedAt,
	); err != nil {
		return nil, err
	}
	c.Facilities = facilities.String
	c.ContactPhone = phone.String
	decoded, err := decodeStrings(images)
	if err != nil {
		return nil, err
	}
	c.Images = decoded
	return &c, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
