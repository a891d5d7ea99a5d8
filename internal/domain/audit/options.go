package audit

// ListOptions provides filtering options for listing audit entries.
type ListOptions struct {
	ActivityID string
	UserID     string
	Kind       *Kind
	Limit      int
	Offset     int
}
