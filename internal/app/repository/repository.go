package repository

import (
	"Backend-CMS/internal/app/config"
	"Backend-CMS/internal/app/dsn"
	"Backend-CMS/internal/app/redis"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Repository struct {
	db          *gorm.DB
	redisClient *redis.Client
	config      *config.Config
	Article     *ArticleRepository
	Topic       *TopicRepository
	Project     *ProjectRepository
	Subscriber  *SubscriberRepository
	User        *UserRepository
	Upload      *UploadRepository
}

func NewRepository(cfg *config.Config) (*Repository, error) {
	db, err := gorm.Open(postgres.Open(dsn.FromEnv()), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		logrus.Warnf("Failed to initialize Redis client: %v", err)
		// List caching and the token blacklist degrade gracefully.
	}

	minioClient, err := initMinIOClient(cfg)
	if err != nil {
		return nil, err
	}

	repo := &Repository{
		db:          db,
		redisClient: redisClient,
		config:      cfg,
		Article:     NewArticleRepository(db, minioClient, cfg),
		Topic:       NewTopicRepository(db),
		Project:     NewProjectRepository(db),
		Subscriber:  NewSubscriberRepository(db),
		User:        NewUserRepository(db),
		Upload:      NewUploadRepository(minioClient, cfg),
	}

	return repo, nil
}

// GetRedisClient returns the redis client, nil when redis is unavailable.
func (r *Repository) GetRedisClient() *redis.Client {
	return r.redisClient
}

// Config returns the loaded service configuration.
func (r *Repository) Config() *config.Config {
	return r.config
}

// Close shuts down the external connections.
func (r *Repository) Close() {
	if r.redisClient != nil {
		if err := r.redisClient.Close(); err != nil {
			logrus.Errorf("Error closing Redis client: %v", err)
		}
	}
}

func initMinIOClient(cfg *config.Config) (*minio.Client, error) {
	minioClient, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %v", err)
	}

	ctx := context.Background()

	_, err = minioClient.ListBuckets(ctx)
	if err != nil {
		return nil, fmt.Errorf("minio connection test failed: %v", err)
	}

	exists, err := minioClient.BucketExists(ctx, cfg.UploadBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %v", err)
	}

	if !exists {
		err = minioClient.MakeBucket(ctx, cfg.UploadBucket, minio.MakeBucketOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to create bucket: %v", err)
		}
	}

	logrus.Info("MinIO client initialized successfully")
	return minioClient, nil
}
