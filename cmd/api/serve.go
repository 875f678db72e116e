// AngelaMos | 2026
// serve.go

package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"github.com/vipinpawar/jeopardy-app/internal/address"
	"github.com/vipinpawar/jeopardy-app/internal/admin"
	"github.com/vipinpawar/jeopardy-app/internal/auth"
	"github.com/vipinpawar/jeopardy-app/internal/blog"
	"github.com/vipinpawar/jeopardy-app/internal/captcha"
	"github.com/vipinpawar/jeopardy-app/internal/cart"
	"github.com/vipinpawar/jeopardy-app/internal/catalog"
	"github.com/vipinpawar/jeopardy-app/internal/config"
	"github.com/vipinpawar/jeopardy-app/internal/contact"
	"github.com/vipinpawar/jeopardy-app/internal/core"
	"github.com/vipinpawar/jeopardy-app/internal/health"
	"github.com/vipinpawar/jeopardy-app/internal/leaderboard"
	"github.com/vipinpawar/jeopardy-app/internal/mailer"
	"github.com/vipinpawar/jeopardy-app/internal/membership"
	"github.com/vipinpawar/jeopardy-app/internal/metrics"
	"github.com/vipinpawar/jeopardy-app/internal/middleware"
	"github.com/vipinpawar/jeopardy-app/internal/mq"
	"github.com/vipinpawar/jeopardy-app/internal/notify"
	"github.com/vipinpawar/jeopardy-app/internal/purchase"
	"github.com/vipinpawar/jeopardy-app/internal/quiz"
	"github.com/vipinpawar/jeopardy-app/internal/server"
	"github.com/vipinpawar/jeopardy-app/internal/storage"
	"github.com/vipinpawar/jeopardy-app/internal/user"
	"github.com/vipinpawar/jeopardy-app/internal/wishlist"
)

const (
	drainDelay = 5 * time.Second

	strictRequestsPerMinute = 10
	strictBurst             = 5
)

func newServeCmd(load loader) *cobra.Command {
	var migrateFirst bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := load()
			if err != nil {
				return err
			}

			if migrateFirst {
				if err := migrateUp(cfg.Database.URL); err != nil {
					return err
				}
				logger.Info("migrations applied")
			}

			return serve(cmd.Context(), cfg, logger)
		},
	}
	cmd.Flags().BoolVar(&migrateFirst, "migrate", false, "apply pending migrations before serving")

	return cmd
}

//nolint:funlen // bootstrap code is inherently verbose
func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	if store != nil {
		logger.Info("object storage ready",
			"backend", cfg.Storage.Backend,
			"bucket", store.Bucket(),
		)
	}

	broker, err := mq.New(ctx, cfg.Queue)
	if err != nil {
		return err
	}

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "ES256",
		"key_id", jwtManager.GetKeyID(),
	)

	mail := mailer.New(cfg.Mail, logger)
	if !mail.Enabled() {
		logger.Warn("mail is not configured, e-mail features are disabled")
	}
	captchaVerifier := captcha.NewVerifier(cfg.Captcha)

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo)
	userHandler := user.NewHandler(userSvc)

	authSvc := auth.NewService(auth.ServiceConfig{
		Repo:          auth.NewRepository(db.DB),
		JWT:           jwtManager,
		UserProvider:  userSvc,
		Captcha:       captchaVerifier,
		Mailer:        mail,
		Versions:      auth.NewRedisVersionCache(redis.Client, cfg.Redis.KeyPrefix),
		PublicBaseURL: cfg.App.PublicBaseURL,
		Logger:        logger,
	})
	authHandler := auth.NewHandler(authSvc)

	membershipSvc := membership.NewService(userRepo)
	membershipHandler := membership.NewHandler(membershipSvc)

	itemRepo := catalog.NewRepository(db.DB)
	catalogHandler := catalog.NewHandler(
		catalog.NewService(catalog.ServiceConfig{
			Repo:   itemRepo,
			Tiers:  membershipSvc,
			Store:  store,
			Logger: logger,
		}),
		cfg.Storage.MaxUploadSize,
	)

	cartSvc := cart.NewService(cart.NewRepository(db.DB), membershipSvc)
	cartHandler := cart.NewHandler(cartSvc)

	wishlistHandler := wishlist.NewHandler(
		wishlist.NewService(wishlist.NewRepository(db.DB), cartSvc, membershipSvc),
	)

	var notifier purchase.Notifier = notify.NewMailNotifier(userRepo, mail)
	if broker != nil {
		notifier = notify.NewQueueNotifier(broker, cfg.Queue.NotificationChannel)
		logger.Info("download notifications queued",
			"backend", cfg.Queue.Backend,
			"channel", cfg.Queue.NotificationChannel,
		)
	}

	purchaseHandler := purchase.NewHandler(purchase.NewService(purchase.ServiceConfig{
		Store:    purchase.NewStore(db.DB),
		Items:    itemRepo,
		Tiers:    membershipSvc,
		Notifier: notifier,
		Logger:   logger,
	}))

	leaderboardSvc := leaderboard.NewService(userRepo, cfg.Quiz.LeaderboardLimit)
	leaderboardHandler := leaderboard.NewHandler(leaderboardSvc)

	quizHandler := quiz.NewHandler(quiz.NewService(
		quiz.NewRepository(db.DB),
		quiz.NewRedisTracker(redis.Client, redis.Key, cfg.Quiz.SessionTTL),
		leaderboardSvc,
	))

	addressHandler := address.NewHandler(address.NewService(address.NewRepository(db.DB)))
	contactHandler := contact.NewHandler(contact.NewService(mail))
	blogHandler := blog.NewHandler(blog.NewService(blog.NewRepository(db.DB)))
	captchaHandler := captcha.NewHandler(captchaVerifier)

	checkers := map[string]health.Checker{
		"database": db,
		"redis":    redis,
	}
	if store != nil {
		checkers["storage"] = health.CheckerFunc(store.Ping)
	}
	healthHandler := health.NewHandler(checkers)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		Counter:    db,
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	if telemetry != nil {
		router.Use(middleware.Tracing)
	}
	router.Use(middleware.Logger(logger))
	if cfg.Metrics.Enabled {
		router.Use(metrics.Middleware)
	}
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Prefix: cfg.Redis.KeyPrefix,
			Limit: middleware.PerWindow(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
				cfg.RateLimit.Window,
			),
			FailOpen: true,
			Bypass: middleware.BypassPaths(
				"/healthz",
				"/livez",
				"/readyz",
				cfg.Metrics.Path,
			),
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	if cfg.Metrics.Enabled {
		router.Handle(cfg.Metrics.Path, metrics.Handler())
	}

	router.Get("/.well-known/jwks.json", jwtManager.GetJWKSHandler())

	authenticator := middleware.Authenticator(authSvc)
	optionalAuth := middleware.OptionalAuth(authSvc)
	adminOnly := middleware.RequireAdmin

	// Signed-in shopping and play routes are limited per membership tier.
	memberLimit := middleware.MembershipRateLimiter(
		redis.Client,
		cfg.Redis.KeyPrefix,
		middleware.DefaultMembershipLimits,
	)

	// Credential and outbound-mail endpoints get a tight per-endpoint budget.
	strictLimit := middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
		Scope:    "strict",
		Prefix:   cfg.Redis.KeyPrefix,
		Limit:    middleware.PerMinute(strictRequestsPerMinute, strictBurst),
		KeyFunc:  middleware.KeyByEndpoint,
		FailOpen: true,
	}).Handler
	member := func(next http.Handler) http.Handler {
		return authenticator(memberLimit(next))
	}

	router.Route("/v1", func(r chi.Router) {
		strict := r.With(strictLimit)
		authHandler.RegisterRoutes(strict, authenticator)
		strict.Post("/users", authHandler.Register)

		userHandler.RegisterRoutes(r, authenticator)
		userHandler.RegisterAdminRoutes(r, authenticator, adminOnly)

		membershipHandler.RegisterRoutes(r, authenticator)
		membershipHandler.RegisterAdminRoutes(r, authenticator, adminOnly)

		catalogHandler.RegisterRoutes(r, optionalAuth)
		catalogHandler.RegisterAdminRoutes(r, authenticator, adminOnly)

		cartHandler.RegisterRoutes(r, member)
		wishlistHandler.RegisterRoutes(r, member)
		purchaseHandler.RegisterRoutes(r, member)
		addressHandler.RegisterRoutes(r, authenticator)

		leaderboardHandler.RegisterRoutes(r, authenticator)
		quizHandler.RegisterRoutes(r, member, optionalAuth)
		quizHandler.RegisterAdminRoutes(r, authenticator, adminOnly)

		blogHandler.RegisterRoutes(r)
		blogHandler.RegisterAdminRoutes(r, authenticator, adminOnly)

		contactHandler.RegisterRoutes(strict)
		captchaHandler.RegisterRoutes(strict)

		adminHandler.RegisterRoutes(r, authenticator, adminOnly)
	})

	healthHandler.SetReady(true)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if broker != nil {
		if err := broker.Close(); err != nil {
			logger.Error("broker close error", "error", err)
		}
	}

	if store != nil {
		if err := store.Close(); err != nil {
			logger.Error("storage close error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}
