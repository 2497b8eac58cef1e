package config

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

const (
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

type Config struct {
	Port        string
	StoreDriver string
	StorePrefix string
	CacheTTL    time.Duration
	LogLevel    string

	KafkaBroker string
	EventsTopic string

	GitHubOwner  string
	GitHubRepo   string
	GitHubBranch string
	GitHubPath   string
	GitHubAPIURL string
	GitHubToken  string
	MenuJSONURL  string

	AdminUser         string
	AdminPasswordHash string
	AdminPassword     string

	PublicBaseURL string
}

// Load reads the environment, picking up a .env file when one is present.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	ttl, err := time.ParseDuration(getEnv("CACHE_TTL", "5m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}

	cfg := Config{
		Port:        getEnv("MENU_SVC_PORT", "8081"),
		StoreDriver: getEnv("STORE_DRIVER", DriverRedis),
		StorePrefix: getEnv("STORE_PREFIX", "cafe-menu"),
		CacheTTL:    ttl,
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		KafkaBroker: os.Getenv("KAFKA_BROKER"),
		EventsTopic: getEnv("MENU_EVENTS_TOPIC", "menu-events"),

		GitHubOwner:  os.Getenv("GITHUB_OWNER"),
		GitHubRepo:   os.Getenv("GITHUB_REPO"),
		GitHubBranch: getEnv("GITHUB_BRANCH", "main"),
		GitHubPath:   getEnv("GITHUB_MENU_PATH", "menu.json"),
		GitHubAPIURL: os.Getenv("GITHUB_API_URL"),
		GitHubToken:  os.Getenv("GITHUB_TOKEN"),
		MenuJSONURL:  os.Getenv("MENU_JSON_URL"),

		AdminUser:         getEnv("ADMIN_USER", "admin"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),

		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
	}

	if cfg.StoreDriver != DriverRedis && cfg.StoreDriver != DriverPostgres {
		return Config{}, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
	if cfg.AdminPasswordHash == "" && cfg.AdminPassword == "" {
		return Config{}, fmt.Errorf("ADMIN_PASSWORD_HASH or ADMIN_PASSWORD must be set")
	}
	return cfg, nil
}

func (c Config) GitHubEnabled() bool {
	return c.GitHubOwner != "" && c.GitHubRepo != ""
}

func (c Config) KafkaEnabled() bool {
	return c.KafkaBroker != ""
}

// NewLogger returns a JSON logger; unknown levels fall back to info.
func NewLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}

func MustInitPostgres(log logrus.FieldLogger) *sql.DB {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getEnv("DB_HOST", "localhost"), getEnv("DB_PORT", "5432"), os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"), os.Getenv("DB_NAME"), getEnv("DB_SSLMODE", "disable"))

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}

	if err = db.Ping(); err != nil {
		log.WithError(err).Fatal("failed to ping database")
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis(log logrus.FieldLogger) *redis.Client {
	db, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	client := redis.NewClient(&redis.Options{
		Addr:     getEnv("REDIS_HOST", "localhost") + ":" + getEnv("REDIS_PORT", "6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.WithError(err).Fatal("failed to connect to redis")
	}

	return client
}

func NewKafkaReader(broker, topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{broker},
		Topic:   topic,
		GroupID: groupID,
	})
}

func NewKafkaWriter(broker, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(broker),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
