package activity

import "time"

// Query selects listable activities of one type, optionally on a single day.
type Query struct {
	Type Type
	// Date selects the calendar day containing this instant, in the service location.
	Date *time.Time
}

// ListOptions is the resolved store-level filter for open activities.
type ListOptions struct {
	Type  Type
	From  time.Time
	Until *time.Time
}
