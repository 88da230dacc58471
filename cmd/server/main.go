package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gradinvite/config"
	_ "gradinvite/docs"
	"gradinvite/internal/adapters/auth"
	"gradinvite/internal/adapters/chat"
	"gradinvite/internal/adapters/email"
	"gradinvite/internal/adapters/ratelimit"
	deliveryhttp "gradinvite/internal/delivery/http"
	"gradinvite/internal/delivery/http/controllers"
	"gradinvite/internal/delivery/http/middleware"
	"gradinvite/internal/domain"
	"gradinvite/internal/repository/cache"
	"gradinvite/internal/repository/mongodb"
	"gradinvite/internal/repository/postgres"
	"gradinvite/internal/services"
)

// @title Graduation Invitations API
// @version 1.0
// @description Issues and verifies six digit invitation codes for graduation events.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger := config.NewLogger()
	if err := run(logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

type stores struct {
	events      domain.EventRepository
	invitations domain.InvitationRepository
	close       func(context.Context)
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		st.close(closeCtx)
	}()
	events := cache.NewEventRepository(st.events, cfg.EventCacheTTL)

	mailer, err := email.NewMailer(cfg.Mailer(), logger)
	if err != nil {
		return fmt.Errorf("init mailer: %w", err)
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)

	completer := chat.NewAzureCompleter(cfg.Azure)
	if completer == nil {
		logger.Warn("chat assistant disabled: Azure OpenAI settings incomplete")
	}

	if cfg.AdminPasswordHash == "" {
		logger.Warn("ADMIN_PASSWORD_HASH not set: admin login disabled")
	}
	authService := services.NewAuthService(cfg.AdminPasswordHash, auth.NewBcryptChecker(), auth.NewJWTIssuer(cfg.SecretKey), cfg.TokenTTL)
	eventService := services.NewEventService(events, cfg.ContextTimeout)
	invitationService := services.NewInvitationService(
		st.invitations, events, emailService,
		services.NewDigitCodeGenerator(services.InvitationCodeLength),
		cfg.InviteMaxAttempts, cfg.ContextTimeout, logger,
	)
	chatService := services.NewChatService(events, completer, cfg.ContextTimeout)

	limiter := newVerifyLimiter(ctx, cfg, logger)

	router := deliveryhttp.NewRouter(deliveryhttp.Controllers{
		Event:      controllers.NewEventController(logger, eventService),
		Invitation: controllers.NewInvitationController(logger, invitationService),
		Chat:       controllers.NewChatController(logger, chatService),
		Auth:       controllers.NewAuthController(logger, authService),
	}, auth.NewJWTVerifier(cfg.SecretKey), limiter, cfg.TrustedProxies, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           middleware.LoggingMiddleware(logger, middleware.CORS(cfg.AllowedOrigins, router)),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.ContextTimeout + 20*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr, "storage", cfg.StorageDriver, "env", cfg.Environment)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err = <-errCh
	case err = <-errCh:
	}

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

func openStores(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*stores, error) {
	switch cfg.StorageDriver {
	case config.StorageMongo:
		client, err := mongodb.Open(ctx, cfg.MongoURI)
		if err != nil {
			return nil, fmt.Errorf("init mongo: %w", err)
		}
		db := client.Database(cfg.MongoDatabase)
		idxCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := mongodb.EnsureIndexes(idxCtx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, fmt.Errorf("ensure mongo indexes: %w", err)
		}
		logger.Info("using mongo storage", "database", cfg.MongoDatabase)
		return &stores{
			events:      mongodb.NewEventRepository(db),
			invitations: mongodb.NewInvitationRepository(db),
			close:       func(ctx context.Context) { _ = client.Disconnect(ctx) },
		}, nil
	default:
		db, err := postgres.Open(ctx, cfg.DBUrl)
		if err != nil {
			return nil, fmt.Errorf("init postgres: %w", err)
		}
		migrateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := postgres.NewMigrator(db).Up(migrateCtx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		logger.Info("using postgres storage")
		return &stores{
			events:      postgres.NewEventRepository(db),
			invitations: postgres.NewInvitationRepository(db),
			close:       func(context.Context) { _ = db.Close() },
		}, nil
	}
}

// newVerifyLimiter returns nil, meaning no limiting, when rate limiting is
// off or Redis cannot be reached at startup.
func newVerifyLimiter(ctx context.Context, cfg *config.Config, logger *slog.Logger) middleware.RateLimiter {
	if !cfg.RateLimitEnabled || cfg.RedisAddr == "" {
		logger.Info("code verification rate limit disabled")
		return nil
	}
	rdb, err := ratelimit.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Warn("redis unavailable, code verification is not rate limited", "addr", cfg.RedisAddr, "err", err)
		return nil
	}
	return ratelimit.NewRedisTokenBucket(rdb, cfg.RateLimit())
}
