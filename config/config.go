package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	MongoURI       string
	MongoDB        string
	NATSURL        string
	Port           string
	JWTSecret      string
	SessionTimeout time.Duration
}

// Load reads the service configuration from the environment. MONGO_URI is
// the only hard requirement; everything else has a workable default except
// JWT_SECRET, which is required because the interaction and stats routes
// are token-protected.
func Load() Config {
	cfg := Config{
		MongoURI:       os.Getenv("MONGO_URI"),
		MongoDB:        getEnvOrDefault("MONGO_DB", "digestdb"),
		NATSURL:        getEnvOrDefault("NATS_URL", "nats://localhost:4222"),
		Port:           getEnvOrDefault("PORT", "8080"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		SessionTimeout: time.Duration(getEnvIntOrDefault("SESSION_TIMEOUT_HOURS", 24)) * time.Hour,
	}

	if cfg.MongoURI == "" {
		log.Fatal("MONGO_URI is not set")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	log.Printf("[INFO] Config: db=%s, nats=%s, port=%s, sessionTimeout=%s",
		cfg.MongoDB, cfg.NATSURL, cfg.Port, cfg.SessionTimeout)

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
