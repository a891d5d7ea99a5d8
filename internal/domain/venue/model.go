package venue

import "time"

// Venue is a physical location activities can be held at.
type Venue struct {
	ID         string    `json:"id" yaml:"id"`
	Name       string    `json:"name" yaml:"name"`
	City       string    `json:"city" yaml:"city"`
	Address    string    `json:"address" yaml:"address"`
	Latitude   float64   `json:"latitude" yaml:"latitude"`
	Longitude  float64   `json:"longitude" yaml:"longitude"`
	CourtCount int       `json:"court_count" yaml:"court_count"`
	PriceRange string    `json:"price_range" yaml:"price_range"`
	Facilities string    `json:"facilities" yaml:"facilities"`
	Phone      string    `json:"phone,omitempty" yaml:"phone"`
	OpenHours  string    `json:"open_hours,omitempty" yaml:"open_hours"`
	Rating     float64   `json:"rating" yaml:"rating"`
	CreatedAt  time.Time `json:"created_at" yaml:"-"`
}

// Club is a venue operator that may host activities.
type Club struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	CourtCount   int       `json:"court_count"`
	Facilities   string    `json:"facilities,omitempty"`
	ContactPhone string    `json:"contact_phone,omitempty"`
	Images       []string  `json:"images,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// DefaultRating is assigned to venues that were never rated.
const DefaultRating = 4.5

// DefaultCities is returned when no venue has been stored yet.
var DefaultCities = []string{"北京市", "上海市", "广州市", "深圳市", "杭州市", "成都市"}
