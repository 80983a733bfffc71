package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cast"
)

// WithEnv applies environment variable overrides using the provided prefix.
//
// Server:
//
//	PORT, ENVIRONMENT
//
// Database:
//
//	DATABASE_URL - "memory" (default) or "postgres://..." / "postgresql://..."
//	DB_SCHEMA, RUN_MIGRATIONS
//
// Cache and events:
//
//	REDIS_URL, CACHE_TTL (e.g. "5m")
//	NATS_URL, NATS_SUBJECT_PREFIX
//	KAFKA_BROKERS (comma separated), KAFKA_TOPIC
//	SNAPSHOT_URL - "memory://", "file:///path" or "s3://bucket/prefix?region=us-east-1"
//
// Generation and HTTP:
//
//	GEMINI_API_KEY (falls back to unprefixed GEMINI_API_KEY), GEMINI_MODEL,
//	GENERATION_TIMEOUT, STRICT_CARDINALITY, PREVIEW_DOMAIN, JWT_SECRET, API_KEY_SHA256
func WithEnv(prefix string) Option {
	return func(c *ServerConfig) error {
		setString(prefix, "PORT", &c.Port)
		setString(prefix, "ENVIRONMENT", &c.Environment)

		if err := applyDatabaseEnv(prefix, c); err != nil {
			return err
		}
		setString(prefix, "DB_SCHEMA", &c.DBSchema)
		if err := setBool(prefix, "RUN_MIGRATIONS", &c.RunMigrations); err != nil {
			return err
		}

		setString(prefix, "REDIS_URL", &c.RedisURL)
		if v, ok := lookupEnv(prefix, "CACHE_TTL"); ok && v != "" {
			d, err := cast.ToDurationE(v)
			if err != nil {
				return fmt.Errorf("invalid duration for %sCACHE_TTL: %w", prefix, err)
			}
			c.CacheTTL = d
		}

		setString(prefix, "NATS_URL", &c.NATSURL)
		setString(prefix, "NATS_SUBJECT_PREFIX", &c.NATSSubjectPrefix)
		if v, ok := lookupEnv(prefix, "KAFKA_BROKERS"); ok && v != "" {
			c.KafkaBrokers = splitList(v)
		}
		setString(prefix, "KAFKA_TOPIC", &c.KafkaTopic)
		setString(prefix, "SNAPSHOT_URL", &c.SnapshotURL)

		setString(prefix, "GEMINI_API_KEY", &c.GeminiAPIKey)
		if c.GeminiAPIKey == "" {
			c.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
		}
		setString(prefix, "GEMINI_MODEL", &c.GeminiModel)
		if v, ok := lookupEnv(prefix, "GENERATION_TIMEOUT"); ok && v != "" {
			d, err := cast.ToDurationE(v)
			if err != nil {
				return fmt.Errorf("invalid duration for %sGENERATION_TIMEOUT: %w", prefix, err)
			}
			c.GenerationTimeout = d
		}
		if err := setBool(prefix, "STRICT_CARDINALITY", &c.StrictCardinality); err != nil {
			return err
		}

		setString(prefix, "PREVIEW_DOMAIN", &c.PreviewDomain)
		setString(prefix, "JWT_SECRET", &c.JWTSecret)
		setString(prefix, "API_KEY_SHA256", &c.APIKeySHA256)

		return nil
	}
}

// applyDatabaseEnv picks the database type from the URL scheme.
func applyDatabaseEnv(prefix string, c *ServerConfig) error {
	dbURL, hasURL := lookupEnv(prefix, "DATABASE_URL")
	if !hasURL || dbURL == "" {
		return nil
	}
	if dbURL == "memory" {
		c.DatabaseType = "memory"
		c.DatabaseURL = ""
		return nil
	}
	if strings.HasPrefix(dbURL, "postgresql://") || strings.HasPrefix(dbURL, "postgres://") {
		c.DatabaseType = "postgres"
		c.DatabaseURL = dbURL
		return nil
	}
	return fmt.Errorf("unsupported DATABASE_URL format: %s (use 'memory' or 'postgresql://...')", dbURL)
}

func lookupEnv(prefix, key string) (string, bool) {
	return os.LookupEnv(prefix + key)
}

func setString(prefix, key string, dst *string) {
	if v, ok := lookupEnv(prefix, key); ok && v != "" {
		*dst = v
	}
}

func setBool(prefix, key string, dst *bool) error {
	raw, ok := lookupEnv(prefix, key)
	if !ok || raw == "" {
		return nil
	}
	b, err := cast.ToBoolE(raw)
	if err != nil {
		return fmt.Errorf("invalid boolean for %s%s: %w", prefix, key, err)
	}
	*dst = b
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
