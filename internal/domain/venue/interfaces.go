package venue

import "context"

// Repository provides persistence operations for venues.
type Repository interface {
	Create(ctx context.Context, v *Venue) error
	Get(ctx context.Context, id string) (*Venue, error)
	ListByCity(ctx context.Context, city string) ([]Venue, error)
	Cities(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int, error)
}

// ClubRepository provides persistence operations for clubs.
type ClubRepository interface {
	Create(ctx context.Context, c *Club) error
	Get(ctx context.Context, id string) (*Club, error)
	List(ctx context.Context) ([]Club, error)
	SearchByName(ctx context.Context, query string) ([]Club, error)
}
