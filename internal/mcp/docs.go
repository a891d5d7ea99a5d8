package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `courtside books seats in tennis activities: pickup play, coached courses and tournaments.

Core concepts:
- Activity: a scheduled event with max_participants seats, a fee and a status (OPEN, FULL, CANCELLED, COMPLETED).
- Registration: one user's seat in one activity. At most one active registration per user and activity.
- Days are calendar days in the server's time zone (Asia/Shanghai unless configured otherwise).

Default workflow:
1) Browse: count_activities_by_date to find busy days, then list_activities for a type and day.
2) Inspect: get_activity and list_participants before joining.
3) Join: register_activity. If payment_required is true, follow with pay_registration.
4) Leave: cancel_registration frees the seat and reopens a full activity.
5) Organize: create_activity, then cancel_activity or complete_activity when done. Only the creator may change an activity.

Errors come back as JSON with a code such as ACTIVITY_FULL, ACTIVITY_CLOSED or NOT_FOUND and a recovery_hint.

Docs:
- courtside://docs/index
- courtside://docs/concepts
- courtside://docs/workflows/registration
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "courtside://docs/index",
		Name:        "docs_index",
		Title:       "courtside docs index",
		Description: "Entry point for agent-facing docs and the tool groups.",
		Content: `# courtside: Agent Docs Index

## Tool groups

- Activities: ` + "`create_activity`" + `, ` + "`get_activity`" + `, ` + "`list_activities`" + `, ` + "`count_activities_by_date`" + `, ` + "`list_my_activities`" + `, ` + "`cancel_activity`" + `, ` + "`complete_activity`" + `, ` + "`delete_activity`" + `
- Registrations: ` + "`register_activity`" + `, ` + "`cancel_registration`" + `, ` + "`pay_registration`" + `, ` + "`list_participants`" + `, ` + "`list_registered_activities`" + `
- Comments: ` + "`post_comment`" + `, ` + "`list_comments`" + `, ` + "`rate_activity`" + `
- Venues: ` + "`list_venues`" + `
- Audit: ` + "`get_recent_audit`" + `

## Docs

- ` + "`courtside://docs/concepts`" + `: statuses, seats and listing rules.
- ` + "`courtside://docs/workflows/registration`" + `: joining, paying and leaving.
`,
	},
	{
		URI:         "courtside://docs/concepts",
		Name:        "docs_concepts",
		Title:       "Concepts and invariants",
		Description: "Activity statuses, seat accounting and listing rules.",
		Content: `# Concepts and invariants

## Status

- OPEN: seats are available.
- FULL: every seat is taken. Cancelling a registration reopens the activity.
- CANCELLED and COMPLETED are terminal. Registrations are refused and nothing transitions out.

## Seats

- ` + "`current_participants`" + ` always equals the number of active registrations.
- It never exceeds ` + "`max_participants`" + `.
- The creator holds a seat unless the activity was created with ` + "`creator_participates: false`" + `.
- Lowering ` + "`max_participants`" + ` below the seats already taken is rejected.

## Listing

- ` + "`list_activities`" + ` returns OPEN activities that have not started, soonest first.
- A ` + "`date`" + ` restricts results to that calendar day in the server's time zone.
- ` + "`count_activities_by_date`" + ` applies the same rules and returns a zero for empty days.
`,
	},
	{
		URI:         "courtside://docs/workflows/registration",
		Name:        "docs_workflow_registration",
		Title:       "Workflow: registration",
		Description: "Joining an activity, paying the fee and leaving.",
		Content: `# Workflow: registration

1. ` + "`get_activity`" + ` and check ` + "`status`" + ` and ` + "`current_participants`" + `.
2. ` + "`register_activity`" + `. Expect ` + "`ACTIVITY_FULL`" + ` when the last seat went first and ` + "`CONFLICT`" + ` when already registered.
3. When ` + "`payment_required`" + ` is true, call ` + "`pay_registration`" + ` with the returned registration ID.
4. ` + "`cancel_registration`" + ` to leave. A second cancel reports ` + "`NOT_FOUND`" + `.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
