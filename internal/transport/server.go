package transport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/qiuyou/courtside/internal/domain/activity"
	"github.com/qiuyou/courtside/internal/domain/comment"
	"github.com/qiuyou/courtside/internal/domain/registration"
	"github.com/qiuyou/courtside/internal/domain/user"
	"github.com/qiuyou/courtside/internal/domain/venue"
	"github.com/qiuyou/courtside/internal/remote"
)

// UserService defines account and profile operations needed by the API.
type UserService interface {
	Login(ctx context.Context, account, password string) (*user.Session, error)
	SignUp(ctx context.Context, req user.SignUpRequest) (*user.Session, error)
	Accept(ctx context.Context, sess *user.Session) (*user.Session, error)
	Get(ctx context.Context, id string) (*user.User, error)
	UpdateProfile(ctx context.Context, req user.UpdateProfileRequest) (*user.User, error)
}

// ActivityService defines activity operations needed by the API.
type ActivityService interface {
	Create(ctx context.Context, req activity.CreateRequest) (*activity.Activity, error)
	Get(ctx context.Context, id string) (*activity.Activity, error)
	Update(ctx context.Context, req activity.UpdateRequest) (*activity.Activity, error)
	Cancel(ctx context.Context, id, actorID string) (*activity.Activity, error)
	Complete(ctx context.Context, id, actorID string) (*activity.Activity, error)
	Delete(ctx context.Context, id, actorID string) error
	ListByType(ctx context.Context, q activity.Query) ([]activity.Activity, error)
	CountByDate(ctx context.Context, typ activity.Type, from time.Time, days int) ([]activity.DayCount, error)
	ListByCreator(ctx context.Context, creatorID string, typ *activity.Type) ([]activity.Activity, error)
	ListRegistered(ctx context.Context, userID string) ([]activity.Activity, error)
	Location() *time.Location
}

// RegistrationService defines registration operations needed by the API.
type RegistrationService interface {
	Register(ctx context.Context, activityID, userID string) (*registration.Registration, error)
	Cancel(ctx context.Context, activityID, userID string) error
	IsRegistered(ctx context.Context, activityID, userID string) (bool, error)
	Participants(ctx context.Context, activityID string) ([]user.User, error)
	Pay(ctx context.Context, registrationID, userID string, method registration.PaymentMethod) (*registration.Registration, error)
}

// CommentService defines comment and rating operations needed by the API.
type CommentService interface {
	Post(ctx context.Context, req comment.PostRequest) (*comment.Comment, error)
	List(ctx context.Context, activityID string) ([]comment.Comment, error)
	Delete(ctx context.Context, id, actorID string) error
	Rate(ctx context.Context, activityID, userID string, score int, remark string) (*comment.Rating, error)
	Summary(ctx context.Context, activityID string) (comment.RatingSummary, error)
	UserRating(ctx context.Context, activityID, userID string) (*comment.Rating, error)
}

// VenueService defines venue and club operations needed by the API.
type VenueService interface {
	ListByCity(ctx context.Context, city string) ([]venue.Venue, error)
	Cities(ctx context.Context) ([]string, error)
	Get(ctx context.Context, id string) (*venue.Venue, error)
	ListClubs(ctx context.Context) ([]venue.Club, error)
	SearchClubs(ctx context.Context, query string) ([]venue.Club, error)
	GetClub(ctx context.Context, id string) (*venue.Club, error)
}

// RemoteService defines the remote calls proxied by the API.
type RemoteService interface {
	LoginPhone(ctx context.Context, phone, code string) (*user.Session, error)
	LoginWechat(ctx context.Context, profile remote.WechatProfile) (*user.Session, error)
	PaymentStatus(ctx context.Context, paymentID string) (*remote.Payment, error)
	UploadImage(ctx context.Context, filename string, size int64) (string, error)
}

// Services contains all domain services needed by the API.
type Services struct {
	Users         UserService
	Activities    ActivityService
	Registrations RegistrationService
	Comments      CommentService
	Venues        VenueService
	Remote        RemoteService
}

// Config contains router configuration.
type Config struct {
	Services    Services
	Resolver    UserResolver
	AuthEnabled bool
	DefaultUser string
	RateLimiter *RateLimiter
	Observer    RequestObserver
	Metrics     http.Handler
	MCP         http.Handler
	Logger      *slog.Logger
}

// Server holds the REST handlers.
type Server struct {
	svc    Services
	logger *slog.Logger
}

// NewRouter builds the HTTP router: health, metrics, MCP and the REST API.
func NewRouter(cfg Config) *chi.Mux {
	r := chi.NewRouter()
	r.Use(RecoveryMiddleware(cfg.Logger))
	r.Use(LanguageMiddleware)

	srv := &Server{svc: cfg.Services, logger: cfg.Logger}

	r.Get("/health", srv.handleHealth)
	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics)
	}
	if cfg.MCP != nil {
		r.Handle("/mcp", cfg.MCP)
		r.Handle("/mcp/*", cfg.MCP)
	}

	optional := NoAuthMiddleware(cfg.DefaultUser)
	required := optional
	if cfg.AuthEnabled {
		optional = OptionalAuthMiddleware(cfg.Resolver)
		required = AuthMiddleware(cfg.Resolver)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(LoggingMiddleware(cfg.Logger, cfg.Observer))

		// Anonymous callers allowed.
		r.Group(func(r chi.Router) {
			r.Use(optional)
			if cfg.RateLimiter != nil {
				r.Use(cfg.RateLimiter.Middleware)
			}

			r.Post("/auth/login", srv.handleLogin)
			r.Post("/auth/login/phone", srv.handleLoginPhone)
			r.Post("/auth/login/wechat", srv.handleLoginWechat)
			r.Post("/auth/register", srv.handleSignUp)

			r.Get("/activities", srv.handleListActivities)
			r.Get("/activities/counts", srv.handleCountActivities)
			r.Get("/activities/{id}", srv.handleGetActivity)
			r.Get("/activities/{id}/participants", srv.handleParticipants)
			r.Get("/activities/{id}/comments", srv.handleListComments)

			r.Get("/venues", srv.handleListVenues)
			r.Get("/venues/cities", srv.handleCities)
			r.Get("/venues/{id}", srv.handleGetVenue)
			r.Get("/clubs", srv.handleListClubs)
			r.Get("/clubs/{id}", srv.handleGetClub)
		})

		r.Group(func(r chi.Router) {
			r.Use(required)
			if cfg.RateLimiter != nil {
				r.Use(cfg.RateLimiter.Middleware)
			}

			r.Get("/user/profile", srv.handleGetProfile)
			r.Put("/user/profile", srv.handleUpdateProfile)

			r.Post("/activities", srv.handleCreateActivity)
			r.Get("/activities/my", srv.handleMyActivities)
			r.Get("/activities/registered", srv.handleRegisteredActivities)
			r.Put("/activities/{id}", srv.handleUpdateActivity)
			r.Delete("/activities/{id}", srv.handleDeleteActivity)
			r.Post("/activities/{id}/cancel", srv.handleCancelActivity)
			r.Post("/activities/{id}/complete", srv.handleCompleteActivity)

			r.Post("/activities/{id}/register", srv.handleRegister)
			r.Delete("/activities/{id}/register", srv.handleCancelRegistration)
			r.Post("/registrations/{id}/payment", srv.handlePay)
			r.Get("/payments/{id}", srv.handlePaymentStatus)

			r.Post("/activities/{id}/comments", srv.handlePostComment)
			r.Delete("/comments/{id}", srv.handleDeleteComment)
			r.Post("/activities/{id}/rating", srv.handleRate)
			r.Get("/activities/{id}/rating", srv.handleRatingSummary)

			r.Post("/upload/image", srv.handleUploadImage)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
