package venue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/qiuyou/courtside/internal/repository"
)

// Service handles venue and club lookups.
type Service struct {
	venues Repository
	clubs  ClubRepository
	logger *slog.Logger
}

// NewService creates a new venue service.
func NewService(venues Repository, clubs ClubRepository, logger *slog.Logger) *Service {
	return &Service{venues: venues, clubs: clubs, logger: logger}
}

// Seed loads the built-in catalogue when no venue is stored yet.
func (s *Service) Seed(ctx context.Context) (int, error) {
	n, err := s.venues.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("counting venues: %w", err)
	}
	if n > 0 {
		return 0, nil
	}
	seed, err := SeedVenues()
	if err != nil {
		return 0, err
	}
	now := time.Now()
	for i := range seed {
		v := seed[i]
		v.CreatedAt = now
		if v.Rating == 0 {
			v.Rating = DefaultRating
		}
		if err := s.venues.Create(ctx, &v); err != nil {
			return i, fmt.Errorf("seeding venue %s: %w", v.ID, err)
		}
	}
	if s.logger != nil {
		s.logger.Info("seeded venues", "count", len(seed))
	}
	return len(seed), nil
}

// Get fetches a venue by ID.
func (s *Service) Get(ctx context.Context, id string) (*Venue, error) {
	v, err := s.venues.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, fmt.Errorf("getting venue: %w", err)
	}
	return v, nil
}

// ListByCity returns a city's venues, best rated first.
func (s *Service) ListByCity(ctx context.Context, city string) ([]Venue, error) {
	if strings.TrimSpace(city) == "" {
		return nil, ErrInvalidInput
	}
	return s.venues.ListByCity(ctx, strings.TrimSpace(city))
}

// Cities returns the distinct cities with venues, or the default list.
func (s *Service) Cities(ctx context.Context) ([]string, error) {
	cities, err := s.venues.Cities(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing cities: %w", err)
	}
	if len(cities) == 0 {
		return append([]string(nil), DefaultCities...), nil
	}
	return cities, nil
}

// CreateClubRequest defines club creation inputs.
type CreateClubRequest struct {
	Name         string
	Address      string
	Latitude     float64
	Longitude    float64
	CourtCount   int
	Facilities   string
	ContactPhone string
	Images       []string
}

// CreateClub registers a club.
func (s *Service) CreateClub(ctx context.Context, req CreateClubRequest) (*Club, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Address) == "" {
		return nil, ErrInvalidInput
	}
	courts := req.CourtCount
	if courts <= 0 {
		courts = 1
	}
	c := &Club{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Address:      strings.TrimSpace(req.Address),
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		CourtCount:   courts,
		Facilities:   req.Facilities,
		ContactPhone: req.ContactPhone,
		Images:       req.Images,
		CreatedAt:    time.Now(),
	}
	if err := s.clubs.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("creating club: %w", err)
	}
	return c, nil
}

// GetClub fetches a club by ID.
func (s *Service) GetClub(ctx context.Context, id string) (*Club, error) {
	c, err := s.clubs.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, fmt.Errorf("getting club: %w", err)
	}
	return c, nil
}

// ListClubs returns all clubs by name.
func (s *Service) ListClubs(ctx context.Context) ([]Club, error) {
	return s.clubs.List(ctx)
}

// SearchClubs returns clubs whose name contains query. An empty query lists all clubs.
func (s *Service) SearchClubs(ctx context.Context, query string) ([]Club, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.clubs.List(ctx)
	}
	return s.clubs.SearchByName(ctx, query)
}
