package cli

import (
	"context"
	"fmt"

	"github.com/Callmevbdu/alx-files-manager/internal/config"
	"github.com/Callmevbdu/alx-files-manager/internal/content"
	"github.com/Callmevbdu/alx-files-manager/internal/domain"
	"github.com/Callmevbdu/alx-files-manager/internal/queue"
	"github.com/Callmevbdu/alx-files-manager/internal/sessions"
	mongodb "github.com/Callmevbdu/alx-files-manager/internal/storage/mongo"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Dependencies bundles the shared backends both the API server and the
// workers are built on.
type Dependencies struct {
	Config *config.Config

	MongoClient *mongo.Client
	RedisClient *redis.Client

	Users    domain.UserStore
	Files    domain.FileStore
	Content  *content.DiskStore
	Sessions domain.SessionStore

	ThumbnailQueue *queue.RedisQueue
	WelcomeQueue   *queue.RedisQueue
}

// BuildDependencies connects to Mongo and Redis and wires up the stores
// and queues.
func BuildDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	log.Info().Msg("Building service dependencies")

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := mongoClient.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	db := mongoClient.Database(cfg.MongoDatabase)

	if err := mongodb.EnsureUserIndexes(ctx, db); err != nil {
		return nil, err
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddress})

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	contentStore, err := content.NewDiskStore(content.DiskStoreDependencies{Root: cfg.FolderPath})
	if err != nil {
		return nil, err
	}

	deps := &Dependencies{
		Config:      cfg,
		MongoClient: mongoClient,
		RedisClient: redisClient,
		Users:       mongodb.NewUserStore(mongodb.UserStoreDependencies{Database: db}),
		Files:       mongodb.NewFileStore(mongodb.FileStoreDependencies{Database: db}),
		Content:     contentStore,
		Sessions: sessions.NewRedisSessionStore(sessions.RedisSessionStoreDependencies{
			Client: redisClient,
			TTL:    cfg.SessionTTL,
		}),
		ThumbnailQueue: queue.NewRedisQueue(queue.RedisQueueDependencies{
			Client: redisClient,
			Name:   domain.QueueThumbnails,
		}),
		WelcomeQueue: queue.NewRedisQueue(queue.RedisQueueDependencies{
			Client: redisClient,
			Name:   domain.QueueWelcome,
		}),
	}

	log.Info().Msg("Service dependencies built successfully")

	return deps, nil
}

func (d *Dependencies) Close(ctx context.Context) {
	if err := d.MongoClient.Disconnect(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to disconnect from mongo")
	}
	if err := d.RedisClient.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close redis client")
	}
}
