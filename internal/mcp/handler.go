package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/qiuyou/courtside/internal/domain/activity"
	"github.com/qiuyou/courtside/internal/domain/audit"
	"github.com/qiuyou/courtside/internal/domain/comment"
	"github.com/qiuyou/courtside/internal/domain/registration"
)

const defaultCountDays = 7

// Handler dispatches MCP tool calls to the domain services.
type Handler struct {
	svc Services
}

// NewHandler creates a new MCP handler.
func NewHandler(svc Services) *Handler {
	return &Handler{svc: svc}
}

// Handle runs the named tool on behalf of userID.
func (h *Handler) Handle(ctx context.Context, userID, method string, params json.RawMessage) (any, error) {
	switch method {
	case "create_activity":
		var req CreateActivityParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		start, err := time.Parse(time.RFC3339, req.StartTime)
		if err != nil {
			return nil, mapError(fmt.Errorf("%w: start_time must be RFC3339", activity.ErrInvalidInput))
		}
		end, err := time.Parse(time.RFC3339, req.EndTime)
		if err != nil {
			return nil, mapError(fmt.Errorf("%w: end_time must be RFC3339", activity.ErrInvalidInput))
		}
		act, err := h.svc.Activities.Create(ctx, activity.CreateRequest{
			CreatorID:           userID,
			Type:                activity.ParseType(req.Type),
			Title:               req.Title,
			ClubID:              req.ClubID,
			Location:            req.Location,
			StartTime:           start,
			EndTime:             end,
			MaxParticipants:     req.MaxParticipants,
			Fee:                 req.Fee,
			SkillLevel:          req.SkillLevel,
			Category:            req.Category,
			Description:         req.Description,
			Images:              req.Images,
			CreatorParticipates: req.CreatorParticipates,
		})
		if err != nil {
			return nil, mapError(err)
		}
		return act, nil
	case "get_activity":
		var req ActivityIDParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		act, err := h.svc.Activities.Get(ctx, req.ID)
		if err != nil {
			return nil, mapError(err)
		}
		return act, nil
	case "list_activities":
		var req ListActivitiesParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		q := activity.Query{Type: activity.ParseType(req.Type)}
		if req.Date != "" {
			day, err := h.parseDate(req.Date)
			if err != nil {
				return nil, err
			}
			q.Date = &day
		}
		acts, err := h.svc.Activities.ListByType(ctx, q)
		if err != nil {
			return nil, mapError(err)
		}
		return summarize(acts), nil
	case "count_activities_by_date":
		var req CountActivitiesParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		from := time.Now()
		if req.From != "" {
			day, err := h.parseDate(req.From)
			if err != nil {
				return nil, err
			}
			from = day
		}
		days := req.Days
		if days == 0 {
			days = defaultCountDays
		}
		counts, err := h.svc.Activities.CountByDate(ctx, activity.ParseType(req.Type), from, days)
		if err != nil {
			return nil, mapError(err)
		}
		return counts, nil
	case "list_my_activities":
		var req ListMyActivitiesParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		var typ *activity.Type
		if req.Type != "" {
			t := activity.ParseType(req.Type)
			typ = &t
		}
		acts, err := h.svc.Activities.ListByCreator(ctx, userID, typ)
		if err != nil {
			return nil, mapError(err)
		}
		return summarize(acts), nil
	case "cancel_activity", "complete_activity":
		var req ActivityIDParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		transition := h.svc.Activities.Cancel
		if method == "complete_activity" {
			transition = h.svc.Activities.Complete
		}
		act, err := transition(ctx, req.ID, userID)
		if err != nil {
			return nil, mapError(err)
		}
		return act, nil
	case "delete_activity":
		var req ActivityIDParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if err := h.svc.Activities.Delete(ctx, req.ID, userID); err != nil {
			return nil, mapError(err)
		}
		return StatusResult{Status: "deleted"}, nil
	case "register_activity":
		var req RegistrationParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		reg, err := h.svc.Registrations.Register(ctx, req.ActivityID, userID)
		if err != nil {
			return nil, mapError(err)
		}
		act, err := h.svc.Activities.Get(ctx, req.ActivityID)
		if err != nil {
			return nil, mapError(err)
		}
		return RegistrationResult{
			Registration:    *reg,
			PaymentRequired: act.Fee > 0,
			PaymentAmount:   act.Fee,
		}, nil
	case "cancel_registration":
		var req RegistrationParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if err := h.svc.Registrations.Cancel(ctx, req.ActivityID, userID); err != nil {
			return nil, mapError(err)
		}
		return StatusResult{Status: "cancelled"}, nil
	case "pay_registration":
		var req PayRegistrationParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		pm, ok := registration.ParsePaymentMethod(req.PaymentMethod)
		if !ok {
			return nil, mapError(fmt.Errorf("%w: unknown payment method %q", registration.ErrInvalidInput, req.PaymentMethod))
		}
		reg, err := h.svc.Registrations.Pay(ctx, req.RegistrationID, userID, pm)
		if err != nil {
			return nil, mapError(err)
		}
		return reg, nil
	case "list_participants":
		var req RegistrationParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		users, err := h.svc.Registrations.Participants(ctx, req.ActivityID)
		if err != nil {
			return nil, mapError(err)
		}
		return users, nil
	case "list_registered_activities":
		acts, err := h.svc.Activities.ListRegistered(ctx, userID)
		if err != nil {
			return nil, mapError(err)
		}
		return summarize(acts), nil
	case "post_comment":
		var req PostCommentParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		c, err := h.svc.Comments.Post(ctx, comment.PostRequest{
			ActivityID: req.ActivityID,
			UserID:     userID,
			Content:    req.Content,
			Rating:     req.Rating,
		})
		if err != nil {
			return nil, mapError(err)
		}
		return c, nil
	case "list_comments":
		var req RegistrationParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		comments, err := h.svc.Comments.List(ctx, req.ActivityID)
		if err != nil {
			return nil, mapError(err)
		}
		return comments, nil
	case "rate_activity":
		var req RateActivityParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		r, err := h.svc.Comments.Rate(ctx, req.ActivityID, userID, req.Score, req.Comment)
		if err != nil {
			return nil, mapError(err)
		}
		return r, nil
	case "list_venues":
		var req ListVenuesParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if req.City == "" {
			cities, err := h.svc.Venues.Cities(ctx)
			if err != nil {
				return nil, mapError(err)
			}
			return map[string]any{"cities": cities}, nil
		}
		venues, err := h.svc.Venues.ListByCity(ctx, req.City)
		if err != nil {
			return nil, mapError(err)
		}
		return venues, nil
	case "get_recent_audit":
		var req RecentAuditParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		entries, err := h.svc.Audit.Recent(ctx, audit.ListOptions{ActivityID: req.ActivityID, Limit: req.Limit})
		if err != nil {
			return nil, mapError(err)
		}
		return entries, nil
	default:
		return nil, fmt.Errorf("%w: %s", errUnknownTool, method)
	}
}

func (h *Handler) parseDate(s string) (time.Time, error) {
	day, err := activity.ParseDate(s, h.svc.Activities.Location())
	if err != nil {
		return time.Time{}, mapError(err)
	}
	return day, nil
}

func decodeParams(params json.RawMessage, out any) error {
	if len(params) == 0 {
		return nil
	}
	if err := json.Unmarshal(params, out); err != nil {
		return &APIError{Code: "INVALID_INPUT", Message: "invalid arguments", Details: err.Error()}
	}
	return nil
}
