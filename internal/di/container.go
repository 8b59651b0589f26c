package di

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"cityseed/internal/seed"
	"cityseed/internal/seed/adapter/events"
	"cityseed/internal/seed/config"
	"cityseed/internal/shared/eventbus"
	"cityseed/internal/shared/logger"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Container owns the process-wide connections and the seed module
type Container struct {
	mu sync.RWMutex
	// Module instances
	SeedModule *seed.SeedModule
	// Connections
	MongoClient *mongo.Client
	MongoDB     *mongo.Database
	Redis       *redis.Client
	// Event bus shared by the modules
	Bus *eventbus.EventBus
	// Logger
	Logger logger.Logger
}

// NewContainer creates an empty container
func NewContainer(log logger.Logger) *Container {
	if log == nil {
		log = logger.NewLogger()
	}
	return &Container{Logger: log.WithComponent("container")}
}

// InitializeMongo connects to MongoDB and checks the connection with a ping
func (c *Container) InitializeMongo(ctx context.Context, cfg *config.Config) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoDBURI))
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	c.MongoClient = client
	c.MongoDB = client.Database(cfg.DatabaseName)
	c.Logger.Infof("MongoDB connection established (database %s)", cfg.DatabaseName)
	return nil
}

// InitializeEvents creates the event bus and, when Redis is configured and
// reachable, subscribes the Redis stream publisher to it. An unreachable Redis
// only disables publishing.
func (c *Container) InitializeEvents(ctx context.Context, cfg *config.Config) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Bus = eventbus.NewEventBus(c.Logger)
	if !cfg.Redis.Enabled() {
		c.Logger.Debug("Redis not configured, seed events stay in-process")
		return nil
	}

	client := config.NewRedisClient(cfg.Redis)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		c.Logger.Warnf("Redis at %s unreachable, seed events will not be published: %v", cfg.Redis.GetAddr(), err)
		return nil
	}

	c.Redis = client
	events.NewRedisSeedPublisher(client, cfg.Redis.Stream, c.Logger).Register(c.Bus)
	c.Logger.Infof("Seed events published to Redis stream %s", cfg.Redis.Stream)
	return nil
}

// InitializeSeed creates the seed module. InitializeMongo must have succeeded.
func (c *Container) InitializeSeed(cfg *config.Config) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.MongoDB == nil {
		return fmt.Errorf("MongoDB must be initialized before the seed module")
	}

	var bus eventbus.EventBusInterface
	if c.Bus != nil {
		bus = c.Bus
	}

	module, err := seed.NewSeedModule(c.MongoDB, cfg, bus, c.Logger)
	if err != nil {
		return fmt.Errorf("failed to create seed module: %w", err)
	}
	c.SeedModule = module
	return nil
}

// HealthCheck pings the connections the container holds
func (c *Container) HealthCheck(ctx context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.MongoClient == nil {
		return errors.New("MongoDB not initialized")
	}
	if err := c.MongoClient.Ping(ctx, nil); err != nil {
		return fmt.Errorf("MongoDB health check failed: %w", err)
	}
	if c.Redis != nil {
		if err := c.Redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("Redis health check failed: %w", err)
		}
	}
	return nil
}

// Close releases every connection, reporting all failures
func (c *Container) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
		c.Redis = nil
	}
	if c.MongoClient != nil {
		if err := c.MongoClient.Disconnect(ctx); err != nil {
			errs = append(errs, fmt.Errorf("disconnect mongodb: %w", err))
		}
		c.MongoClient = nil
		c.MongoDB = nil
	}
	return errors.Join(errs...)
}
