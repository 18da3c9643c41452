package config

import (
	"os"
	"strings"
)

type Config struct {
	PostgresURI    string
	RedisURI       string
	MongoURI       string
	EncryptionKey  string // base64-encoded 32-byte AES key for email at rest
	Port           string
	AllowedOrigins []string
	PasswordPolicy string // "strict" (default) or "legacy"
	Environment    string // ENV: production, development, etc.
}

func Load() *Config {
	env := strings.ToLower(strings.TrimSpace(getEnv("ENV", "development")))

	allowedOrigins := parseOrigins(getEnv("ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{getEnv("FRONTEND_URL", "http://localhost:3000")}
	}

	return &Config{
		PostgresURI:    getEnv("POSTGRES_URI", "postgres://localhost:5432/seatbook?sslmode=disable"),
		RedisURI:       getEnv("REDIS_URI", "redis://localhost:6379/0"),
		MongoURI:       getEnv("MONGO_URI", ""),
		EncryptionKey:  getEnv("ENCRYPTION_KEY", ""),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: allowedOrigins,
		PasswordPolicy: getEnv("PASSWORD_POLICY", "strict"),
		Environment:    env,
	}
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
