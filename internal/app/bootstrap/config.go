package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ServiceID string

	HTTPPort int
	GRPCPort int

	DatabaseURL  string
	RedisURL     string
	KafkaBrokers []string
	JWTSecret    string

	MaxDBConns               int32
	KafkaConsumerGroup       string
	KafkaTopicUserRegistered string
	KafkaTopicUserDeleted    string
	KafkaTopicVoteCast       string

	OutboxPollInterval   time.Duration
	OutboxBatchSize      int
	ConsumerPollInterval time.Duration

	StoreTimeout        time.Duration
	LeaderboardLimit    int
	LeaderboardCacheTTL time.Duration
	VoteBurstLimit      int
	VoteBurstWindow     time.Duration
	IdempotencyTTL      time.Duration
	EventDedupTTL       time.Duration
}

type configFile struct {
	Service struct {
		ID       string `yaml:"id"`
		HTTPPort int    `yaml:"http_port"`
		GRPCPort int    `yaml:"grpc_port"`
	} `yaml:"service"`
	Dependencies struct {
		PostgresURL              string   `yaml:"postgres_url"`
		RedisURL                 string   `yaml:"redis_url"`
		KafkaBrokers             []string `yaml:"kafka_brokers"`
		KafkaConsumerGroup       string   `yaml:"kafka_consumer_group"`
		KafkaTopicUserRegistered string   `yaml:"kafka_topic_user_registered"`
		KafkaTopicUserDeleted    string   `yaml:"kafka_topic_user_deleted"`
		KafkaTopicVoteCast       string   `yaml:"kafka_topic_vote_cast"`
		JWTSecret                string   `yaml:"jwt_secret"`
	} `yaml:"dependencies"`
	Voting struct {
		LeaderboardLimit        int `yaml:"leaderboard_limit"`
		LeaderboardCacheSeconds int `yaml:"leaderboard_cache_seconds"`
		BurstLimit              int `yaml:"burst_limit"`
		BurstWindowSeconds      int `yaml:"burst_window_seconds"`
	} `yaml:"voting"`
}

func LoadConfig(path string) (Config, error) {
	cfg := Config{
		ServiceID:                "voting-service",
		HTTPPort:                 8080,
		GRPCPort:                 9090,
		MaxDBConns:               20,
		KafkaConsumerGroup:       "voting-service",
		KafkaTopicUserRegistered: "user.registered",
		KafkaTopicUserDeleted:    "user.deleted",
		KafkaTopicVoteCast:       "vote.cast",
		OutboxPollInterval:       2 * time.Second,
		OutboxBatchSize:          100,
		ConsumerPollInterval:     2 * time.Second,
		StoreTimeout:             5 * time.Second,
		LeaderboardLimit:         20,
		LeaderboardCacheTTL:      30 * time.Second,
		VoteBurstLimit:           30,
		VoteBurstWindow:          time.Minute,
		IdempotencyTTL:           24 * time.Hour,
		EventDedupTTL:            7 * 24 * time.Hour,
	}

	raw, err := os.ReadFile(path)
	if err == nil {
		var f configFile
		if unmarshalErr := yaml.Unmarshal(raw, &f); unmarshalErr != nil {
			return Config{}, fmt.Errorf("parse config file: %w", unmarshalErr)
		}
		if f.Service.ID != "" {
			cfg.ServiceID = f.Service.ID
		}
		if f.Service.HTTPPort > 0 {
			cfg.HTTPPort = f.Service.HTTPPort
		}
		if f.Service.GRPCPort > 0 {
			cfg.GRPCPort = f.Service.GRPCPort
		}
		if f.Dependencies.PostgresURL != "" {
			cfg.DatabaseURL = f.Dependencies.PostgresURL
		}
		if f.Dependencies.RedisURL != "" {
			cfg.RedisURL = f.Dependencies.RedisURL
		}
		if len(f.Dependencies.KafkaBrokers) > 0 {
			cfg.KafkaBrokers = trimNonEmpty(f.Dependencies.KafkaBrokers)
		}
		if f.Dependencies.KafkaConsumerGroup != "" {
			cfg.KafkaConsumerGroup = f.Dependencies.KafkaConsumerGroup
		}
		if f.Dependencies.KafkaTopicUserRegistered != "" {
			cfg.KafkaTopicUserRegistered = f.Dependencies.KafkaTopicUserRegistered
		}
		if f.Dependencies.KafkaTopicUserDeleted != "" {
			cfg.KafkaTopicUserDeleted = f.Dependencies.KafkaTopicUserDeleted
		}
		if f.Dependencies.KafkaTopicVoteCast != "" {
			cfg.KafkaTopicVoteCast = f.Dependencies.KafkaTopicVoteCast
		}
		if f.Dependencies.JWTSecret != "" {
			cfg.JWTSecret = f.Dependencies.JWTSecret
		}
		if f.Voting.LeaderboardLimit > 0 {
			cfg.LeaderboardLimit = f.Voting.LeaderboardLimit
		}
		if f.Voting.LeaderboardCacheSeconds > 0 {
			cfg.LeaderboardCacheTTL = time.Duration(f.Voting.LeaderboardCacheSeconds) * time.Second
		}
		if f.Voting.BurstLimit > 0 {
			cfg.VoteBurstLimit = f.Voting.BurstLimit
		}
		if f.Voting.BurstWindowSeconds > 0 {
			cfg.VoteBurstWindow = time.Duration(f.Voting.BurstWindowSeconds) * time.Second
		}
	}

	cfg.DatabaseURL = envOrDefault("DB_URL", envOrDefault("POSTGRES_URL", cfg.DatabaseURL))
	cfg.RedisURL = envOrDefault("REDIS_URL", cfg.RedisURL)
	cfg.KafkaBrokers = envCSV("KAFKA_BROKERS", cfg.KafkaBrokers)
	cfg.KafkaConsumerGroup = envOrDefault("KAFKA_CONSUMER_GROUP", cfg.KafkaConsumerGroup)
	cfg.KafkaTopicUserRegistered = envOrDefault("KAFKA_TOPIC_USER_REGISTERED", cfg.KafkaTopicUserRegistered)
	cfg.KafkaTopicUserDeleted = envOrDefault("KAFKA_TOPIC_USER_DELETED", cfg.KafkaTopicUserDeleted)
	cfg.KafkaTopicVoteCast = envOrDefault("KAFKA_TOPIC_VOTE_CAST", cfg.KafkaTopicVoteCast)
	cfg.JWTSecret = envOrDefault("JWT_SECRET", cfg.JWTSecret)
	cfg.HTTPPort = envInt("HTTP_PORT", cfg.HTTPPort)
	cfg.GRPCPort = envInt("GRPC_PORT", cfg.GRPCPort)
	cfg.MaxDBConns = int32(envInt("DB_MAX_CONNS", int(cfg.MaxDBConns)))
	cfg.OutboxPollInterval = time.Duration(envInt("OUTBOX_POLL_SECONDS", int(cfg.OutboxPollInterval.Seconds()))) * time.Second
	cfg.OutboxBatchSize = envInt("OUTBOX_BATCH_SIZE", cfg.OutboxBatchSize)
	cfg.ConsumerPollInterval = time.Duration(envInt("CONSUMER_POLL_SECONDS", int(cfg.ConsumerPollInterval.Seconds()))) * time.Second
	cfg.StoreTimeout = time.Duration(envInt("STORE_TIMEOUT_SECONDS", int(cfg.StoreTimeout.Seconds()))) * time.Second
	cfg.LeaderboardLimit = envInt("LEADERBOARD_LIMIT", cfg.LeaderboardLimit)
	cfg.LeaderboardCacheTTL = time.Duration(envInt("LEADERBOARD_CACHE_SECONDS", int(cfg.LeaderboardCacheTTL.Seconds()))) * time.Second
	cfg.VoteBurstLimit = envInt("VOTE_BURST_LIMIT", cfg.VoteBurstLimit)
	cfg.VoteBurstWindow = time.Duration(envInt("VOTE_BURST_WINDOW_SECONDS", int(cfg.VoteBurstWindow.Seconds()))) * time.Second
	cfg.IdempotencyTTL = time.Duration(envInt("IDEMPOTENCY_TTL_HOURS", int(cfg.IdempotencyTTL.Hours()))) * time.Hour
	cfg.EventDedupTTL = time.Duration(envInt("EVENT_DEDUP_TTL_HOURS", int(cfg.EventDedupTTL.Hours()))) * time.Hour

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("missing DB_URL/POSTGRES_URL")
	}
	if cfg.RedisURL == "" {
		return Config{}, fmt.Errorf("missing REDIS_URL")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("missing JWT_SECRET")
	}
	return cfg, nil
}

func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func envCSV(name string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	items := strings.Split(raw, ",")
	return trimNonEmpty(items)
}

func trimNonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
