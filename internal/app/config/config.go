package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	ServiceHost string
	ServicePort int

	// JWT Configuration
	JWTSecret        string
	JWTAccessExpire  time.Duration
	JWTRefreshExpire time.Duration

	// Redis Configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// MinIO Configuration
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	UploadBucket   string

	// List query cache staleness window
	ListCacheTTL time.Duration
}

func NewConfig() (*Config, error) {
	var err error

	_ = godotenv.Load()

	configName := "config"
	if os.Getenv("CONFIG_NAME") != "" {
		configName = os.Getenv("CONFIG_NAME")
	}

	viper.SetConfigName(configName)
	viper.SetConfigType("toml")
	viper.AddConfigPath("config")
	viper.AddConfigPath(".")
	viper.WatchConfig()

	err = viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	err = viper.Unmarshal(cfg)
	if err != nil {
		return nil, err
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "your-default-secret-key-for-development-change-in-production"
		log.Warn("Using default JWT secret - change in production!")
	}
	cfg.JWTSecret = jwtSecret

	accessExpire := 24 * time.Hour
	if exp := os.Getenv("JWT_ACCESS_EXPIRE"); exp != "" {
		if parsed, err := time.ParseDuration(exp); err == nil {
			accessExpire = parsed
		}
	}
	cfg.JWTAccessExpire = accessExpire

	refreshExpire := 168 * time.Hour
	if exp := os.Getenv("JWT_REFRESH_EXPIRE"); exp != "" {
		if parsed, err := time.ParseDuration(exp); err == nil {
			refreshExpire = parsed
		}
	}
	cfg.JWTRefreshExpire = refreshExpire

	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	cfg.RedisPort = getEnv("REDIS_PORT", "6379")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")

	redisDB := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if db, err := strconv.Atoi(dbStr); err == nil {
			redisDB = db
		}
	}
	cfg.RedisDB = redisDB

	cfg.MinioEndpoint = getEnv("MINIO_ENDPOINT", "localhost:9000")
	cfg.MinioAccessKey = getEnv("MINIO_ACCESS_KEY", "minio")
	cfg.MinioSecretKey = getEnv("MINIO_SECRET_KEY", "minio124")
	cfg.MinioUseSSL = os.Getenv("MINIO_USE_SSL") == "true"
	cfg.UploadBucket = getEnv("MINIO_UPLOAD_BUCKET", "cms-uploads")

	cfg.ListCacheTTL = 30 * time.Second
	if ttl := os.Getenv("LIST_CACHE_TTL"); ttl != "" {
		if parsed, err := time.ParseDuration(ttl); err == nil {
			cfg.ListCacheTTL = parsed
		}
	}

	log.Info("config parsed")

	return cfg, nil
}

// getEnv returns the environment variable or the fallback.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
