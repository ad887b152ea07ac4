package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Poll     PollConfig
	Tracing  TracingConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	NotificationLog    string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type PollConfig struct {
	GroupServiceURL string        // where the group backend lives; defaults to this server
	Interval        time.Duration // clamped to scheduler.MinInterval
	MinInterval     time.Duration
	FetchTimeout    time.Duration
	RetryBudget     time.Duration // total time spent retrying one poll request
	StateBackend    string        // "redis" or "memory"
	QueueTopic      string
}

type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	port := getEnv("APP_PORT", "3000")
	baseURL := getEnv("APP_BASE_URL", "http://localhost:"+port)

	return &Config{
		App: AppConfig{
			Port:               port,
			BaseURL:            baseURL,
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			NotificationLog:    getEnv("NOTIFICATION_LOG_FILE_PATH", "logs/notification.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Poll: PollConfig{
			GroupServiceURL: getEnv("GROUP_SERVICE_URL", baseURL),
			Interval:        getEnvAsDuration("POLL_INTERVAL", 15*time.Minute),
			MinInterval:     getEnvAsDuration("POLL_MIN_INTERVAL", 15*time.Minute),
			FetchTimeout:    getEnvAsDuration("POLL_FETCH_TIMEOUT", 15*time.Second),
			RetryBudget:     getEnvAsDuration("POLL_RETRY_BUDGET", 2*time.Minute),
			StateBackend:    getEnv("POLL_STATE_BACKEND", "redis"),
			QueueTopic:      getEnv("POLL_QUEUE_TOPIC", "CHORE_POLL_REQUESTED"),
		},
		Tracing: TracingConfig{
			Enabled:     getEnvAsBool("OTEL_ENABLED", false),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "household-sync-backend"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go durations ("90s") or plain seconds ("90").
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	if d, err := time.ParseDuration(strValue); err == nil {
		return d
	}
	if secs := getEnvAsInt(key, -1); secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
