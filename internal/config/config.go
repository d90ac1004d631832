// Copyright (c) 2026 Alexander G.
// Author: Alexander G. (Samsonix)
// License: MIT
// Project: BTS & MSISDN Admin Server

package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// MaskSecret hides everything but the first and last character.
func MaskSecret(secret string) string {
	if len(secret) == 0 {
		return ""
	}
	if len(secret) <= 2 {
		return strings.Repeat("*", len(secret))
	}
	return string(secret[0]) + strings.Repeat("*", len(secret)-2) + string(secret[len(secret)-1])
}

type Config struct {
	Port             string
	DBDriver         string
	DBPath           string
	DatabaseURL      string
	JwtSecret        string
	SessionSecure    bool
	CorsAllowOrigins string
	SeedDatabase     bool

	GoogleEnabled      bool
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}

func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnv("PORT", "5000"),
		DBDriver:         strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
		DBPath:           getEnv("DATABASE_PATH", "telco-admin.db"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		JwtSecret:        getEnv("JWT_SECRET", "change-me-in-prod"),
		SessionSecure:    getEnvBool("SESSION_SECURE", false),
		CorsAllowOrigins: getEnv("CORS_ALLOW_ORIGINS", ""),
		SeedDatabase:     getEnvBool("SEED_DATABASE", true),

		GoogleEnabled:      getEnvBool("GOOGLE_OAUTH_ENABLED", false),
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", "http://localhost:5000/api/auth/google/callback"),
	}

	return cfg, nil
}

// GoogleConfigured reports whether the Google identity provider can be used.
func (c *Config) GoogleConfigured() bool {
	return c.GoogleEnabled && c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	val, err := strconv.ParseBool(strValue)
	if err != nil {
		return fallback
	}
	return val
}
