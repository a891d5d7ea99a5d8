package mcp

// ToolDefinition describes one MCP tool.
type ToolDefinition struct {
	Name        string
	Description string
	InputSchema map[string]any
}

func prop(typ, description string) map[string]any {
	return map[string]any{"type": typ, "description": description}
}

func object(properties map[string]any, required ...string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

var activityTypeProp = map[string]any{
	"type":        "string",
	"description": "Activity type (defaults to PLAY)",
	"enum":        []string{"PLAY", "COURSE", "TOURNAMENT"},
}

var paymentMethodProp = map[string]any{
	"type":        "string",
	"description": "Payment method",
	"enum":        []string{"WECHAT", "ALIPAY", "BANK"},
}

// buildToolCatalog returns all available MCP tools
func buildToolCatalog() []ToolDefinition {
	return []ToolDefinition{
		// Activities
		{
			Name:        "create_activity",
			Description: "Publish a new tennis activity. The caller becomes its creator and, unless creator_participates is false, takes the first seat.",
			InputSchema: object(map[string]any{
				"type":                 activityTypeProp,
				"title":                prop("string", "Title (generated from the type and date when omitted)"),
				"club_id":              prop("string", "Owning club ID"),
				"location":             prop("string", "Court or venue name"),
				"start_time":           prop("string", "Start time (RFC 3339)"),
				"end_time":             prop("string", "End time (RFC 3339), after start_time"),
				"max_participants":     prop("integer", "Number of seats, at least 1"),
				"fee":                  prop("number", "Per-seat fee, 0 for free activities"),
				"skill_level":          prop("string", "Expected skill level, e.g. NTRP 3.5"),
				"category":             prop("string", "Free-form category"),
				"description":          prop("string", "Details shown to players"),
				"creator_participates": prop("boolean", "Whether the creator takes a seat (default true)"),
				"images": map[string]any{
					"type":        "array",
					"description": "Image URLs",
					"items":       map[string]any{"type": "string"},
				},
			}, "start_time", "end_time", "max_participants"),
		},
		{
			Name:        "get_activity",
			Description: "Get an activity by ID",
			InputSchema: object(map[string]any{
				"id": prop("string", "Activity ID"),
			}, "id"),
		},
		{
			Name:        "list_activities",
			Description: "List open activities of one type that have not started yet, optionally on a single day",
			InputSchema: object(map[string]any{
				"type": activityTypeProp,
				"date": prop("string", "Calendar day (YYYY-MM-DD)"),
			}),
		},
		{
			Name:        "count_activities_by_date",
			Description: "Count listable activities per day for a range of days",
			InputSchema: object(map[string]any{
				"type": activityTypeProp,
				"from": prop("string", "First day (YYYY-MM-DD, defaults to today)"),
				"days": prop("integer", "Number of days, 1 to 31 (default 7)"),
			}),
		},
		{
			Name:        "list_my_activities",
			Description: "List activities created by the caller",
			InputSchema: object(map[string]any{
				"type": activityTypeProp,
			}),
		},
		{
			Name:        "cancel_activity",
			Description: "Cancel an open or full activity. Creator only.",
			InputSchema: object(map[string]any{
				"id": prop("string", "Activity ID"),
			}, "id"),
		},
		{
			Name:        "complete_activity",
			Description: "Mark an open or full activity as completed. Creator only.",
			InputSchema: object(map[string]any{
				"id": prop("string", "Activity ID"),
			}, "id"),
		},
		{
			Name:        "delete_activity",
			Description: "Delete an activity together with its registrations. Creator only.",
			InputSchema: object(map[string]any{
				"id": prop("string", "Activity ID"),
			}, "id"),
		},

		// Registrations
		{
			Name:        "register_activity",
			Description: "Take a seat in an activity",
			InputSchema: object(map[string]any{
				"activity_id": prop("string", "Activity ID"),
			}, "activity_id"),
		},
		{
			Name:        "cancel_registration",
			Description: "Give up the caller's seat in an activity",
			InputSchema: object(map[string]any{
				"activity_id": prop("string", "Activity ID"),
			}, "activity_id"),
		},
		{
			Name:        "pay_registration",
			Description: "Pay the fee for one of the caller's registrations",
			InputSchema: object(map[string]any{
				"registration_id": prop("string", "Registration ID"),
				"payment_method":  paymentMethodProp,
			}, "registration_id", "payment_method"),
		},
		{
			Name:        "list_participants",
			Description: "List the users holding a seat in an activity",
			InputSchema: object(map[string]any{
				"activity_id": prop("string", "Activity ID"),
			}, "activity_id"),
		},
		{
			Name:        "list_registered_activities",
			Description: "List activities the caller holds a seat in",
			InputSchema: object(map[string]any{}),
		},

		// Comments
		{
			Name:        "post_comment",
			Description: "Comment on an activity",
			InputSchema: object(map[string]any{
				"activity_id": prop("string", "Activity ID"),
				"content":     prop("string", "Comment text, up to 500 characters"),
				"rating":      prop("integer", "Optional score from 1 to 5"),
			}, "activity_id", "content"),
		},
		{
			Name:        "list_comments",
			Description: "List comments on an activity, newest first",
			InputSchema: object(map[string]any{
				"activity_id": prop("string", "Activity ID"),
			}, "activity_id"),
		},
		{
			Name:        "rate_activity",
			Description: "Rate an activity from 1 to 5. Rating again replaces the earlier score.",
			InputSchema: object(map[string]any{
				"activity_id": prop("string", "Activity ID"),
				"score":       prop("integer", "Score from 1 to 5"),
				"comment":     prop("string", "Optional remark"),
			}, "activity_id", "score"),
		},

		// Venues
		{
			Name:        "list_venues",
			Description: "List venues in a city, or the known cities when city is omitted",
			InputSchema: object(map[string]any{
				"city": prop("string", "City name"),
			}),
		},

		// Audit
		{
			Name:        "get_recent_audit",
			Description: "Get recent lifecycle events, optionally for one activity",
			InputSchema: object(map[string]any{
				"activity_id": prop("string", "Activity ID to filter by"),
				"limit":       prop("integer", "Maximum number of entries"),
			}),
		},
	}
}
