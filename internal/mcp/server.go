package mcp

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/qiuyou/courtside/internal/auth"
	"github.com/qiuyou/courtside/internal/domain/activity"
	"github.com/qiuyou/courtside/internal/domain/audit"
	"github.com/qiuyou/courtside/internal/domain/comment"
	"github.com/qiuyou/courtside/internal/domain/registration"
	"github.com/qiuyou/courtside/internal/domain/user"
	"github.com/qiuyou/courtside/internal/domain/venue"
)

// Version is reported to MCP clients during initialization.
const Version = "0.1.0"

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	Create(ctx context.Context, req activity.CreateRequest) (*activity.Activity, error)
	Get(ctx context.Context, id string) (*activity.Activity, error)
	Cancel(ctx context.Context, id, actorID string) (*activity.Activity, error)
	Complete(ctx context.Context, id, actorID string) (*activity.Activity, error)
	Delete(ctx context.Context, id, actorID string) error
	ListByType(ctx context.Context, q activity.Query) ([]activity.Activity, error)
	CountByDate(ctx context.Context, typ activity.Type, from time.Time, days int) ([]activity.DayCount, error)
	ListByCreator(ctx context.Context, creatorID string, typ *activity.Type) ([]activity.Activity, error)
	ListRegistered(ctx context.Context, userID string) ([]activity.Activity, error)
	Location() *time.Location
}

// RegistrationService defines registration operations needed by MCP.
type RegistrationService interface {
	Register(ctx context.Context, activityID, userID string) (*registration.Registration, error)
	Cancel(ctx context.Context, activityID, userID string) error
	Participants(ctx context.Context, activityID string) ([]user.User, error)
	Pay(ctx context.Context, registrationID, userID string, method registration.PaymentMethod) (*registration.Registration, error)
}

// CommentService defines comment operations needed by MCP.
type CommentService interface {
	Post(ctx context.Context, req comment.PostRequest) (*comment.Comment, error)
	List(ctx context.Context, activityID string) ([]comment.Comment, error)
	Rate(ctx context.Context, activityID, userID string, score int, remark string) (*comment.Rating, error)
}

// VenueService defines venue lookups needed by MCP.
type VenueService interface {
	ListByCity(ctx context.Context, city string) ([]venue.Venue, error)
	Cities(ctx context.Context) ([]string, error)
}

// AuditService defines audit log reads needed by MCP.
type AuditService interface {
	Recent(ctx context.Context, opts audit.ListOptions) ([]audit.Entry, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Activities    ActivityService
	Registrations RegistrationService
	Comments      CommentService
	Venues        VenueService
	Audit         AuditService
}

// Config contains server configuration.
type Config struct {
	Services      Services
	Resolver      UserResolver
	AuthEnabled   bool
	DefaultUser   string
	TransportMode string // "stdio" or "http"
	Logger        *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "courtside",
		Version: Version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	// Stdio is local only and always runs as the default user.
	if cfg.TransportMode != "stdio" && cfg.AuthEnabled {
		server.AddReceivingMiddleware(authMiddleware(cfg.Resolver))
	} else {
		server.AddReceivingMiddleware(noAuthMiddleware(cfg.DefaultUser))
	}
	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, NewHandler(cfg.Services))

	return server
}

func registerTools(server *sdkmcp.Server, handler *Handler) {
	for _, def := range buildToolCatalog() {
		name := def.Name
		server.AddTool(&sdkmcp.Tool{
			Name:        name,
			Description: def.Description,
			InputSchema: def.InputSchema,
		}, func(ctx context.Context, req *sdkmcp.CallToolRequest) (*sdkmcp.CallToolResult, error) {
			userID, ok := auth.UserIDFrom(ctx)
			if !ok {
				return errorResult(&APIError{Code: "UNAUTHORIZED", Message: "authentication required"}), nil
			}
			var args json.RawMessage
			if req != nil && req.Params != nil {
				args = req.Params.Arguments
			}
			out, err := handler.Handle(ctx, userID, name, args)
			if err != nil {
				return errorResult(err), nil
			}
			return textResult(out, false), nil
		})
	}
}

func errorResult(err error) *sdkmcp.CallToolResult {
	if apiErr, ok := err.(*APIError); ok {
		return textResult(apiErr, true)
	}
	return textResult(&APIError{Code: "INTERNAL", Message: err.Error()}, true)
}

func textResult(v any, isError bool) *sdkmcp.CallToolResult {
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: formatPayload(v)}},
		IsError: isError,
	}
}
