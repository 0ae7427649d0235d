package config

import "os"

// Config holds the runtime settings read from the environment.
type Config struct {
	Addr           string
	DatabaseDSN    string
	RedisAddr      string
	RedisPassword  string
	AccessPassword string
	SessionSecret  string
}

// Load reads the configuration from environment variables, falling back
// to development defaults.
func Load() *Config {
	return &Config{
		Addr:           getenv("ADDR", ":8080"),
		DatabaseDSN:    getenv("DATABASE_DSN", "host=localhost user=user password=password dbname=cotilliondb port=5432 sslmode=disable"),
		RedisAddr:      getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		AccessPassword: getenv("ACCESS_PASSWORD", "change-me"),
		SessionSecret:  getenv("SESSION_SECRET", "dev-secret-please-change"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
