package venue

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

type seedFile struct {
	Venues []Venue `yaml:"venues"`
}

// SeedVenues returns the built-in venue catalogue.
func SeedVenues() ([]Venue, error) {
	var file seedFile
	if err := yaml.Unmarshal(seedYAML, &file); err != nil {
		return nil, fmt.Errorf("failed to parse venue seed: %w", err)
	}
	return file.Venues, nil
}
