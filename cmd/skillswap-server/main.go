package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/skillswap/skillswap/internal/auth"
	"github.com/skillswap/skillswap/internal/config"
	"github.com/skillswap/skillswap/internal/metrics"
	"github.com/skillswap/skillswap/internal/skills"
	"github.com/skillswap/skillswap/internal/storage"
	"github.com/skillswap/skillswap/internal/swaps"
	"github.com/skillswap/skillswap/internal/users"
	"github.com/uptrace/bun"
)

// AppState holds all application services
type AppState struct {
	Logger       *zap.Logger
	DB           *bun.DB
	AuthService  auth.AuthService
	UserService  users.UserService
	SkillService skills.SkillService
	SwapService  swaps.SwapService
	Metrics      *metrics.Manager
}

func main() {
	config.Load()

	logger := initLogger()
	logger.Info("Configuration loaded", zap.String("source", "config.Load()"))

	as, err := newAppState(logger)
	if err != nil {
		logger.Fatal("Failed to initialize application state", zap.Error(err))
	}

	ctx := context.Background()
	if err := storage.Migrate(ctx, as.DB); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	router := setupRouter(as)

	addr := fmt.Sprintf("%s:%d", config.Http().Host, config.Http().Port)

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	done := setupSignalHandler(as, server, logger)

	logger.Info("Starting SkillSwap server", zap.String("address", addr))

	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Failed to start server", zap.Error(err))
	}

	<-done
	logger.Info("Server shutdown complete")
}

// newAppState creates and initializes the application state. Services are
// constructed explicitly and passed where needed; there is no ambient
// global client.
func newAppState(logger *zap.Logger) (*AppState, error) {
	pgConfig := config.Postgres()

	logger.Info("Database configuration",
		zap.String("host", pgConfig.Host),
		zap.Int("port", pgConfig.Port),
		zap.String("database", pgConfig.Database),
		zap.String("user", pgConfig.User))

	db := storage.Connect(pgConfig.DSN(), pgConfig.MaxOpenConnections)

	authConfig := config.Auth()
	authStore := auth.NewPostgresStore(db)
	authService := auth.NewService(
		authStore,
		authStore,
		authConfig.BcryptCost,
		time.Duration(authConfig.SessionTTLHours)*time.Hour,
	)

	skillStore := skills.NewPostgresStore(db)
	skillService := skills.NewService(skillStore)

	userStore := users.NewPostgresStore(db)
	userService := users.NewService(userStore, skillStore)

	swapStore := swaps.NewPostgresStore(db)
	swapService := swaps.NewService(swapStore)

	return &AppState{
		Logger:       logger,
		DB:           db,
		AuthService:  authService,
		UserService:  userService,
		SkillService: skillService,
		SwapService:  swapService,
		Metrics:      metrics.NewManager(),
	}, nil
}

func initLogger() *zap.Logger {
	logConfig := config.Logger()

	var config zap.Config
	if logConfig.Format == "json" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
	}

	switch logConfig.Level {
	case "debug":
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		config.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	return logger
}

// MetricsMiddleware counts served requests by method and status code
func MetricsMiddleware(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		as.Metrics.HTTPRequest(c.Request.Method, strconv.Itoa(c.Writer.Status()))
	}
}

func setupRouter(as *AppState) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	router.Use(cors.Default())
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	if config.Metrics().Enabled {
		router.Use(MetricsMiddleware(as))
		router.GET("/metrics", gin.WrapH(
			promhttp.HandlerFor(as.Metrics.Registry(), promhttp.HandlerOpts{})))
	}

	// Health endpoint
	router.GET("/health", func(c *gin.Context) {
		ctx := c.Request.Context()

		if err := storage.Ping(ctx, as.DB); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"timestamp": time.Now().Format(time.RFC3339),
				"error":     err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Format(time.RFC3339),
			"services": gin.H{
				"database": "healthy",
			},
		})
	})

	router.Use(auth.Middleware(as.AuthService))

	// AUTH API
	authGroup := router.Group("/auth/v1")
	{
		authGroup.POST("/signup", signUp(as))
		authGroup.POST("/signin", signIn(as))
		authGroup.POST("/signout", signOut(as))
		authGroup.GET("/me", currentUser(as))
	}

	// MARKETPLACE API
	api := router.Group("/api/v1")
	{
		profiles := api.Group("/profiles")
		{
			profiles.GET("/", browseProfiles(as))
			profiles.GET("/:userId", getProfile(as))
			profiles.PUT("/:userId", auth.RequireActor(), updateProfile(as))
		}

		skillRoutes := api.Group("/skills", auth.RequireActor())
		{
			skillRoutes.POST("/", addSkill(as))
			skillRoutes.DELETE("/:skillId", removeSkill(as))
		}

		api.GET("/users/:userId/karma", getKarma(as))

		swapRoutes := api.Group("/swaps", auth.RequireActor())
		{
			swapRoutes.POST("/", createSwap(as))
			swapRoutes.GET("/", listSwaps(as))
			swapRoutes.POST("/:swapId/accept", transitionSwap(as, swaps.StatusAccepted))
			swapRoutes.POST("/:swapId/reject", transitionSwap(as, swaps.StatusRejected))
			swapRoutes.POST("/:swapId/cancel", transitionSwap(as, swaps.StatusCancelled))
		}
	}

	return router
}

func setupSignalHandler(as *AppState, server *http.Server, logger *zap.Logger) chan struct{} {
	done := make(chan struct{}, 1)

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-signalCh

		logger.Info("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Error during server shutdown", zap.Error(err))
		}

		if err := as.DB.Close(); err != nil {
			logger.Error("Error closing database", zap.Error(err))
		}

		done <- struct{}{}
	}()

	return done
}
