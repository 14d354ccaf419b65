package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr             string
	MongoURI         string
	MongoDatabase    string
	InstructorsTable string
	EvaluationTable  string
	Timeout          time.Duration
	Timezone         string
	ServerLog        *log.Logger
	AllowedOrigins   []string
}

// Load reads environment variables and returns a fully populated Config.
// .env があれば先に読み込む。無くてもエラーにしない。
func Load() Config {
	_ = godotenv.Load()

	timeout := 10 * time.Second
	if v := os.Getenv("MONGO_CONNECT_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			timeout = parsed
		}
	}

	allowedOrigins := parseList("API_ALLOWED_ORIGINS", []string{"*"})

	cfg := Config{
		Addr:             envOrDefault("HTTP_ADDR", ":8080"),
		MongoURI:         envOrDefault("MONGO_URI", "mongodb://mongo:27017"),
		MongoDatabase:    envOrDefault("MONGO_DB", "evaluation-collection"),
		InstructorsTable: envOrDefault("INSTRUCTORS_TABLE", "instructors"),
		EvaluationTable:  envOrDefault("EVALUATION_TABLE", "evaluation"),
		Timeout:          timeout,
		Timezone:         envOrDefault("TIMEZONE", "Asia/Tokyo"),
		ServerLog:        log.New(os.Stdout, "[evaluation-api] ", log.LstdFlags|log.Lshortfile),
		AllowedOrigins:   allowedOrigins,
	}

	cfg.ServerLog.Printf("loaded config: database=%q instructorsTable=%q evaluationTable=%q", cfg.MongoDatabase, cfg.InstructorsTable, cfg.EvaluationTable)

	return cfg
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}
