package container

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	database "github.com/pavlohrechko/go-dating-recommendations/app/db"
	"github.com/pavlohrechko/go-dating-recommendations/app/observability/metrics"
	"github.com/pavlohrechko/go-dating-recommendations/config"
	"github.com/pavlohrechko/go-dating-recommendations/internal/api/activity"
	"github.com/pavlohrechko/go-dating-recommendations/internal/api/profiles"
	"github.com/pavlohrechko/go-dating-recommendations/internal/api/recommendation"
	"github.com/pavlohrechko/go-dating-recommendations/internal/notifications"
)

// Container holds all application dependencies
type Container struct {
	Config                *config.Config
	Logger                *slog.Logger
	Pool                  *pgxpool.Pool
	ActivityHandler       *activity.HandlerImpl
	RecommendationHandler *recommendation.HandlerImpl
	NotificationHub       *notifications.Hub
}

// NewContainer initializes and returns a new dependency container
func NewContainer(cfg *config.Config, logger *slog.Logger) (*Container, error) {
	dbConfig, err := database.NewDatabaseConfig(cfg, logger)
	if err != nil {
		logger.Error("Failed to generate database config", slog.Any("error", err))
		return nil, err
	}

	pool, err := database.Init(dbConfig.ConnectionURL, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.Any("error", err))
		return nil, err
	}

	metrics.InitAppMetrics()

	activityRepo := activity.NewPostgresActivityRepo(pool, logger)
	activityService := activity.NewService(activityRepo, logger)
	activityHandler := activity.NewHandlerImpl(activityService, logger)

	profileProvider := profiles.NewHTTPProfileProvider(cfg.Providers.Profile.BaseURL, cfg.Providers.Profile.Timeout, logger)

	recommendationService := recommendation.NewService(activityService, profileProvider, logger)
	recommendationHandler := recommendation.NewHandlerImpl(recommendationService, metrics.Get(), logger)

	notificationHub := notifications.NewHub(activityService, logger)

	return &Container{
		Config:                cfg,
		Logger:                logger,
		Pool:                  pool,
		ActivityHandler:       activityHandler,
		RecommendationHandler: recommendationHandler,
		NotificationHub:       notificationHub,
	}, nil
}

// Close releases all resources held by the container
func (c *Container) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
}

// WaitForDB waits for the database to be ready
func (c *Container) WaitForDB(ctx context.Context) bool {
	return database.WaitForDB(ctx, c.Pool, c.Logger)
}

// RunMigrations runs database migrations
func (c *Container) RunMigrations(connectionURL string) error {
	return database.RunMigrations(connectionURL, c.Logger)
}
