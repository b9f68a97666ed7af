package testutil

import (
	"time"

	"github.com/fpt-software/website-api/internal/config"
)

// NewTestConfig creates a test configuration
// This removes the need for environment variables during testing
func NewTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name: "website-api-test",
			Env:  "test",
			Port: 8080,
		},
		Database: config.DatabaseConfig{
			Driver:        config.DriverSQLite,
			Name:          ":memory:",
			MaxIdleConns:  1,
			MaxOpenConns:  1,
			IsAutoMigrate: true,
		},
		JWT: config.JWTConfig{
			Secret: "test-jwt-secret-key-must-be-at-least-32-characters-long",
			Expiry: 24 * time.Hour,
		},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"*"},
			MaxAge:         86400,
		},
		Server: config.ServerConfig{
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			GracefulTimeout: 30 * time.Second,
			RequestTimeout:  30 * time.Second,
		},
		Upload: config.UploadConfig{
			Driver:       config.StorageLocal,
			Dir:          "uploads",
			PublicPrefix: "/uploads/",
			MaxSizeBytes: 10 * 1024 * 1024,
		},
		Cache: config.CacheConfig{
			Driver: config.CacheMemory,
			TTL:    time.Minute,
		},
		RateLimit: config.RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             100,
		},
	}
}
