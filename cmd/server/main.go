package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/time/rate"

	"github.com/qiuyou/courtside/internal/auth"
	"github.com/qiuyou/courtside/internal/config"
	"github.com/qiuyou/courtside/internal/domain/activity"
	"github.com/qiuyou/courtside/internal/domain/audit"
	"github.com/qiuyou/courtside/internal/domain/comment"
	"github.com/qiuyou/courtside/internal/domain/registration"
	"github.com/qiuyou/courtside/internal/domain/user"
	"github.com/qiuyou/courtside/internal/domain/venue"
	"github.com/qiuyou/courtside/internal/events"
	"github.com/qiuyou/courtside/internal/mcp"
	"github.com/qiuyou/courtside/internal/metrics"
	"github.com/qiuyou/courtside/internal/remote"
	"github.com/qiuyou/courtside/internal/sqlite"
	"github.com/qiuyou/courtside/internal/telemetry"
	"github.com/qiuyou/courtside/internal/transport"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Use stderr for logs in stdio mode to keep stdout clean for JSON-RPC.
	logWriter := io.Writer(os.Stdout)
	if cfg.Transport.Mode == "stdio" {
		logWriter = os.Stderr
	}
	if cfg.Log.File != "" {
		lf, err := openTailFile(cfg.Log.File, cfg.Log.MaxBytes)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			defer lf.Close()
			logWriter = lf
		}
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	ctx := context.Background()

	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Config{
		Endpoint:    cfg.Telemetry.Endpoint,
		ServiceName: "courtside",
		Version:     version,
	})
	if err != nil {
		logger.Error("failed to set up tracing", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn("tracing shutdown failed", "error", err)
		}
	}()

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		logger.Error("failed to prepare database path", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	var (
		activityEvents     activity.EventPublisher
		registrationEvents registration.EventPublisher
	)
	if cfg.Broker.URL != "" {
		publisher, err := events.NewPublisher(cfg.Broker.URL, logger)
		if err != nil {
			logger.Error("failed to connect to broker", "error", err)
			os.Exit(1)
		}
		defer publisher.Close()
		activityEvents = publisher
		registrationEvents = publisher
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(registry)

	secret := cfg.Auth.Secret
	if secret == "" {
		secret = randomSecret()
		logger.Warn("no auth secret configured, tokens will not survive a restart")
	}
	tokens := auth.NewTokens(auth.Config{Secret: secret, TTL: cfg.Auth.TokenTTL})
	rem := remote.NewMock(tokens, remote.Latency{Min: cfg.Remote.LatencyMin, Max: cfg.Remote.LatencyMax})

	userRepo := sqlite.NewUserRepository(db)
	auditSvc := audit.NewService(sqlite.NewAuditRepository(db), logger)

	userSvc := user.NewService(userRepo, rem, logger)
	activitySvc := activity.NewService(sqlite.NewActivityRepository(db), auditSvc, activityEvents, cfg.Location(), logger)
	registrationSvc := registration.NewService(sqlite.NewRegistrationRepository(db), rem, auditSvc, registrationEvents, collector, logger)
	commentSvc := comment.NewService(sqlite.NewCommentRepository(db), sqlite.NewRatingRepository(db), userRepo, logger)
	venueSvc := venue.NewService(sqlite.NewVenueRepository(db), sqlite.NewClubRepository(db), logger)

	if n, err := venueSvc.Seed(ctx); err != nil {
		logger.Error("failed to seed venues", "error", err)
		os.Exit(1)
	} else if n > 0 {
		logger.Info("seeded venues", "count", n)
	}

	// Stdio always runs unauthenticated, so the default user must exist there too.
	if !cfg.Auth.Enabled || cfg.Transport.Mode == "stdio" {
		if _, err := userSvc.Ensure(ctx, cfg.Auth.DefaultUser, cfg.Auth.DefaultUser); err != nil {
			logger.Error("failed to create default user", "error", err)
			os.Exit(1)
		}
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
		AuthEnabled:   cfg.Auth.Enabled,
		DefaultUser:   cfg.Auth.DefaultUser,
		TransportMode: cfg.Transport.Mode,
		Logger:        logger,
	})

	if cfg.Transport.Mode == "stdio" {
		runStdioMode(logger, mcpServer)
		return
	}

	limiter := transport.NewRateLimiter(transport.RateLimiterConfig{
		Rate:  rate.Limit(cfg.RateLimit.RequestsPerSecond),
		Burst: cfg.RateLimit.Burst,
	}, logger)
	defer limiter.Stop()

	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(r *http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{
			Stateless:      false,
			SessionTimeout: 30 * time.Minute,
		},
	)

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
		AuthEnabled: cfg.Auth.Enabled,
		DefaultUser: cfg.Auth.DefaultUser,
		RateLimiter: limiter,
		Observer:    collector,
		Metrics:     metrics.Handler(registry),
		MCP:         mcpHandler,
		Logger:      logger,
	})

	runHTTPMode(logger, router, cfg.Server.Host, cfg.Server.Port)
}

func runStdioMode(logger *slog.Logger, mcpServer *sdkmcp.Server) {
	logger.Info("starting stdio transport", "auth", "disabled")

	stdio := &sdkmcp.StdioTransport{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-stop
		logger.Info("shutting down")
		cancel()
	}()

	// Run blocks until stdin closes or context is canceled
	if err := mcpServer.Run(ctx, stdio); err != nil {
		logger.Error("stdio server error", "error", err)
	}
}

func runHTTPMode(logger *slog.Logger, handler http.Handler, host string, port int) {
	addr := fmt.Sprintf("%s:%d", host, port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer)
}

func randomSecret() string {
	buf := make([]byte, 32)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
