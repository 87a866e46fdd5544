package container

import (
	"va-backend/internal/config"
	"va-backend/internal/event"
	"va-backend/internal/ws"
	"va-backend/pkg/logger"
	"va-backend/pkg/redis"
)

// Container holds shared application dependencies. Repositories and services
// are wired in main once the database is up.
type Container struct {
	Config      *config.Config
	Logger      *logger.Logger
	RedisClient *redis.Client
	Bus         *event.Bus
	Hub         *ws.Hub
}

// New creates a new dependency injection container
func New(cfg *config.Config, logger *logger.Logger) (*Container, error) {
	// Initialize Redis client if Redis URL is configured
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(cfg.RedisURL, cfg.Environment, logger.Logger)
		if err != nil {
			logger.WithError(err).Warn("Failed to initialize Redis client, proceeding without caching")
		} else {
			redisClient = client
			logger.Info("Redis client initialized successfully")
		}
	} else {
		logger.Info("Redis URL not configured, proceeding without caching")
	}

	return &Container{
		Config:      cfg,
		Logger:      logger,
		RedisClient: redisClient,
		Bus:         event.NewBus(logger.Logger),
		Hub:         ws.NewHub(logger.Logger),
	}, nil
}

// GetLogger returns the logger
func (c *Container) GetLogger() *logger.Logger {
	return c.Logger
}

// GetConfig returns the configuration
func (c *Container) GetConfig() *config.Config {
	return c.Config
}

// GetRedisClient returns the Redis client (may be nil if not configured)
func (c *Container) GetRedisClient() *redis.Client {
	return c.RedisClient
}

// HasRedis returns true if Redis client is available
func (c *Container) HasRedis() bool {
	return c.RedisClient != nil
}

// GetBus returns the in-process notification event bus
func (c *Container) GetBus() *event.Bus {
	return c.Bus
}

// GetHub returns the push-channel room hub
func (c *Container) GetHub() *ws.Hub {
	return c.Hub
}
