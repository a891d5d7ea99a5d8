package testserver

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/qiuyou/courtside/internal/auth"
	"github.com/qiuyou/courtside/internal/domain/activity"
	"github.com/qiuyou/courtside/internal/domain/audit"
	"github.com/qiuyou/courtside/internal/domain/comment"
	"github.com/qiuyou/courtside/internal/domain/registration"
	"github.com/qiuyou/courtside/internal/domain/user"
	"github.com/qiuyou/courtside/internal/domain/venue"
	"github.com/qiuyou/courtside/internal/mcp"
	"github.com/qiuyou/courtside/internal/metrics"
	"github.com/qiuyou/courtside/internal/remote"
	"github.com/qiuyou/courtside/internal/sqlite"
	"github.com/qiuyou/courtside/internal/transport"
)

const secret = "test-secret"

// Options tweak the stack built by New.
type Options struct {
	// AuthDisabled runs every request as DefaultUser.
	AuthDisabled bool
	DefaultUser  string
	RateLimiter  *transport.RateLimiter
}

// TestServer is a full in-memory stack behind an httptest server.
type TestServer struct {
	Server   *httptest.Server
	DB       *sqlite.DB
	Tokens   *auth.Tokens
	Remote   *remote.Mock
	Users    *user.Service
	Registry *prometheus.Registry
}

// New starts a server with authentication enabled.
func New(t *testing.T) *TestServer {
	return NewWithOptions(t, Options{})
}

// NewWithOptions starts a server configured by opts.
func NewWithOptions(t *testing.T, opts Options) *TestServer {
	t.Helper()
	ctx := context.Background()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	loc, err := time.LoadLocation("Asia/Shanghai")
	require.NoError(t, err)

	tokens := auth.NewTokens(auth.Config{Secret: secret})
	rem := remote.NewMock(tokens, remote.Latency{}).WithHashCost(bcrypt.MinCost)
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	userRepo := sqlite.NewUserRepository(db)
	auditSvc := audit.NewService(sqlite.NewAuditRepository(db), logger)

	userSvc := user.NewService(userRepo, rem, logger)
	activitySvc := activity.NewService(sqlite.NewActivityRepository(db), auditSvc, nil, loc, logger)
	registrationSvc := registration.NewService(sqlite.NewRegistrationRepository(db), rem, auditSvc, nil, collector, logger)
	commentSvc := comment.NewService(sqlite.NewCommentRepository(db), sqlite.NewRatingRepository(db), userRepo, logger)
	venueSvc := venue.NewService(sqlite.NewVenueRepository(db), sqlite.NewClubRepository(db), logger)

	_, err = venueSvc.Seed(ctx)
	require.NoError(t, err)

	defaultUser := opts.DefaultUser
	if defaultUser == "" {
		defaultUser = "local"
	}
	if opts.AuthDisabled {
		_, err = userSvc.Ensure(ctx, defaultUser, defaultUser)
		require.NoError(t, err)
	}

	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Activities:    activitySvc,
			Registrations: registrationSvc,
			Comments:      commentSvc,
			Venues:        venueSvc,
			Audit:         auditSvc,
		},
		Resolver:      tokens,
		AuthEnabled:   !opts.AuthDisabled,
		DefaultUser:   defaultUser,
		TransportMode: "http",
		Logger:        logger,
	})
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(func(*http.Request) *sdkmcp.Server {
		return mcpServer
	}, nil)

	router := transport.NewRouter(transport.Config{
		Services: transport.Services{
			Users:         userSvc,
			Activities:    activitySvc,
			Registrations: registrationSvc,
			Comments:      commentSvc,
			Venues:        venueSvc,
			Remote:        rem,
		},
		Resolver:    tokens,
		AuthEnabled: !opts.AuthDisabled,
		DefaultUser: defaultUser,
		RateLimiter: opts.RateLimiter,
		Observer:    collector,
		Metrics:     metrics.Handler(registry),
		MCP:         mcpHandler,
		Logger:      logger,
	})
	server := httptest.NewServer(router)

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return &TestServer{
		Server:   server,
		DB:       db,
		Tokens:   tokens,
		Remote:   rem,
		Users:    userSvc,
		Registry: registry,
	}
}

// SignUp registers username and returns the session token.
func (ts *TestServer) SignUp(t *testing.T, username string) (string, string) {
	t.Helper()
	sess, err := ts.Users.SignUp(context.Background(), user.SignUpRequest{
		Username: username,
		Password: "secret123",
		Nickname: username,
	})
	require.NoError(t, err)
	return sess.Token, sess.User.ID
}
