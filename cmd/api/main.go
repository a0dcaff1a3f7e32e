package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	apiv1 "carbontrack/carbontrack-backend/api/v1"
	"carbontrack/carbontrack-backend/internal/analytics"
	"carbontrack/carbontrack-backend/internal/auth"
	"carbontrack/carbontrack-backend/internal/config"
	"carbontrack/carbontrack-backend/internal/emissions"
	"carbontrack/carbontrack-backend/internal/middleware"
	"carbontrack/carbontrack-backend/internal/observability"
	"carbontrack/carbontrack-backend/internal/reports"
	"carbontrack/carbontrack-backend/internal/users"
	"carbontrack/carbontrack-backend/pkg/pdf"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(os.Getenv("CONFIG_PATH"))
	if err != nil {
		panic(err)
	}

	logger, err := newLogger(cfg.Logging.Level)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.ConnectTimeout)
	client, err := mongo.Connect(ctx, mongoopts.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		cancel()
		logger.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	if err := client.Ping(ctx, nil); err != nil {
		cancel()
		logger.Fatal("failed to ping MongoDB", zap.Error(err))
	}
	db := client.Database(cfg.Mongo.Database)

	if err := users.EnsureIndexes(ctx, db); err != nil {
		cancel()
		logger.Fatal("failed to create user indexes", zap.Error(err))
	}
	if err := emissions.EnsureIndexes(ctx, db); err != nil {
		cancel()
		logger.Fatal("failed to create emission indexes", zap.Error(err))
	}
	cancel()
	logger.Info("connected to MongoDB", zap.String("database", cfg.Mongo.Database))

	// ---------------- REPOSITORIES ----------------
	userRepo := users.NewRepository(db)
	emissionRepo := emissions.NewRepository(db)
	reportRepo := reports.NewRepository(db)

	// ---------------- SERVICES ----------------
	userService := users.NewService(userRepo)
	authService := auth.NewService(userRepo, cfg.Security.JWTSecret, cfg.Security.JWTTTL, cfg.Security.BcryptCost)
	emissionService := emissions.NewService(emissionRepo)
	engine := analytics.NewEngine(emissionRepo)
	reportService := reports.NewService(engine, emissionRepo, userRepo, reportRepo)

	// ---------------- ROUTER ----------------
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestLogger(logger),
		middleware.CORS(cfg.CORS.AllowedOrigins),
		middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst).Limit(),
		observability.HTTPMetrics(),
	)

	router.GET("/api/health", func(c *gin.Context) {
		apiv1.SuccessMessage(c, http.StatusOK, "server is running healthy", nil)
	})
	router.GET("/metrics", gin.WrapH(observability.Handler()))

	requireAuth := middleware.RequireAuth(cfg.Security.JWTSecret)
	api := router.Group("/api/v1")
	auth.RegisterRoutes(api, auth.NewHandler(authService, userService), requireAuth)

	protected := api.Group("", requireAuth)
	users.NewHandler(userService).RegisterRoutes(protected)
	emissions.NewHandler(emissionService).RegisterRoutes(protected)
	analytics.NewHandler(engine).RegisterRoutes(protected)
	reports.NewHandler(reportService, pdf.NewGenerator()).RegisterRoutes(protected)

	server := &http.Server{
		Addr:         cfg.Server.GetServerAddr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		logger.Error("failed to disconnect from MongoDB", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}
	return cfg.Build()
}
