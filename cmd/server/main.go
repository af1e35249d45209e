package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/AnshRaj112/captionly-backend/internal/config"
	"github.com/AnshRaj112/captionly-backend/internal/database"
	"github.com/AnshRaj112/captionly-backend/internal/gemini"
	"github.com/AnshRaj112/captionly-backend/internal/handlers"
	"github.com/AnshRaj112/captionly-backend/internal/logging"
	"github.com/AnshRaj112/captionly-backend/internal/middleware"
	"github.com/AnshRaj112/captionly-backend/internal/routes"
	"github.com/AnshRaj112/captionly-backend/internal/services"
	"github.com/AnshRaj112/captionly-backend/internal/sms"
	"github.com/AnshRaj112/captionly-backend/internal/store"
)

func main() {
	// Load env
	envErr := godotenv.Load()

	// Load configuration
	cfg := config.Load()
	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.IsProduction())
	ctx := context.Background()

	if envErr != nil {
		logger.Info(ctx, "no .env file found")
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error(ctx, "server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *logging.SlogLogger) error {
	accounts, contents, closeStore, err := openStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	sender, err := newSMSSender(cfg, logger)
	if err != nil {
		return err
	}

	if cfg.GoogleAPIKey == "" {
		return errors.New("GOOGLE_API_KEY is required")
	}
	llm, err := gemini.NewGenerator(ctx, cfg.GoogleAPIKey, cfg.GeminiModel)
	if err != nil {
		return err
	}
	defer llm.Close()
	logger.Info(ctx, "gemini client initialized", "model", cfg.GeminiModel)

	timeouts := handlers.DefaultTimeouts()
	timeouts.Generation = cfg.GenerationTimeout
	h := handlers.New(
		services.NewAccessCodeService(accounts, sender, cfg.SMSCountryCode),
		services.NewContentGenerator(llm),
		services.NewContentService(contents),
		logger,
		timeouts,
	)

	// Access code issuance is limited per IP when Redis is available
	var issueLimiter func(http.Handler) http.Handler
	if cfg.RedisURI != "" {
		rdb, err := database.ConnectRedis(ctx, cfg.RedisURI)
		if err != nil {
			logger.Warn(ctx, "redis unavailable, access code rate limiting disabled", "error", err)
		} else {
			defer rdb.Close()
			issueLimiter = newIssueLimiter(rdb, cfg, logger).Middleware
			logger.Info(ctx, "redis connected, access code rate limiting enabled",
				"limit", cfg.AccessCodeRateLimit,
				"window", cfg.AccessCodeRateWindow.String(),
			)
		}
	}

	// Setup router
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity(cfg.TrustProxy) {
			r.Use(mw)
		}
		logger.Info(ctx, "production security enabled")
	}

	routes.SetupRoutes(r, h, issueLimiter)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx, "captionly backend running", "port", cfg.Port, "env", cfg.Environment)
		errCh <- srv.ListenAndServe()
	}()

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-sigCtx.Done():
	}

	logger.Info(ctx, "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newIssueLimiter(rdb *redis.Client, cfg *config.Config, logger logging.Logger) *middleware.RedisRateLimiter {
	return middleware.NewRedisRateLimiter(rdb, "access_code", cfg.AccessCodeRateLimit, cfg.AccessCodeRateWindow, cfg.TrustProxy, logger)
}

// openStores connects the configured storage driver and returns the
// account and content stores plus a close func.
func openStores(ctx context.Context, cfg *config.Config, logger logging.Logger) (services.AccountStore, services.ContentStore, func(), error) {
	switch cfg.StorageDriver {
	case config.StorageMongo:
		logger.Info(ctx, "connecting to mongodb", "database", cfg.MongoDatabase)
		client, db, err := database.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, nil, nil, err
		}
		contents := store.NewMongoContentStore(db)
		if err := contents.EnsureIndexes(ctx); err != nil {
			logger.Warn(ctx, "failed to ensure mongodb indexes", "error", err)
		}
		return store.NewMongoAccountStore(db), contents, closeMongo(client, logger), nil

	case config.StoragePostgres:
		logger.Info(ctx, "connecting to postgresql")
		db, err := database.ConnectPostgres(ctx, cfg.PostgresURI)
		if err != nil {
			return nil, nil, nil, err
		}
		return store.NewPostgresAccountStore(db), store.NewPostgresContentStore(db), closeSQL(db), nil

	case config.StorageMemory:
		if cfg.IsProduction() {
			return nil, nil, nil, errors.New("memory storage is not allowed in production")
		}
		logger.Warn(ctx, "using in-memory storage, data is lost on restart")
		return store.NewMemoryAccountStore(), store.NewMemoryContentStore(), func() {}, nil
	}
	return nil, nil, nil, errors.New("unknown STORAGE_DRIVER: " + cfg.StorageDriver)
}

func closeMongo(client *mongo.Client, logger logging.Logger) func() {
	return func() {
		if err := database.DisconnectMongo(client); err != nil {
			logger.Warn(context.Background(), "mongodb disconnect failed", "error", err)
		}
	}
}

func closeSQL(db *sql.DB) func() {
	return func() { db.Close() }
}

func newSMSSender(cfg *config.Config, logger logging.Logger) (services.SMSSender, error) {
	if cfg.HasTwilio() {
		return sms.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioPhoneNumber), nil
	}
	if cfg.IsProduction() {
		return nil, errors.New("twilio credentials are required in production")
	}
	logger.Warn(context.Background(), "twilio not configured, access codes will only be logged")
	return sms.NewLogSender(logger), nil
}
