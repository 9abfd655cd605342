// Package config loads runtime configuration from environment variables.
// Required variables abort startup with a fatal log; optional features
// (Redis, RabbitMQ) degrade gracefully when their variables are absent.
package config

import (
	"log"
	"os"
	"strconv"
)

// Config holds the core settings every process needs: HTTP binding,
// MySQL connection, token signing and hashing parameters.
type Config struct {
	Env            string // "dev", "test" or "prod"
	Port           string // HTTP port to listen on
	DBUser         string
	DBPass         string // empty allowed for local setups
	DBHost         string
	DBPort         string
	DBName         string
	JWTSecret      string // HS256 signing secret for access and refresh tokens
	AccessTTLMin   int    // access token lifetime in minutes
	RefreshTTLDays int    // refresh token lifetime in days
	BcryptCost     int    // cost factor for password hashing
	EventsEnabled  bool   // publish booking events to RabbitMQ
}

// Load reads the configuration. Missing required variables are fatal.
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"),
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),
		RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),
		BcryptCost:     mustInt("BCRYPT_COST"),
		EventsEnabled:  envBool("EVENTS_ENABLED", true),
	}
}

func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
