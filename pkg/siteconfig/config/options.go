package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// WithFile overlays values from a YAML, TOML, JSON or .env file. Keys missing
// from the file keep their current values.
func WithFile(path string) Option {
	return func(c *ServerConfig) error {
		if path == "" {
			return fmt.Errorf("config file path cannot be empty")
		}
		if err := cleanenv.ReadConfig(path, c); err != nil {
			return fmt.Errorf("read config file %s: %w", path, err)
		}
		return nil
	}
}

// WithPort sets the server port
func WithPort(port string) Option {
	return func(c *ServerConfig) error {
		if port == "" {
			return fmt.Errorf("port cannot be empty")
		}
		c.Port = port
		return nil
	}
}

// WithEnvironment sets the environment (development, production, testing)
func WithEnvironment(env string) Option {
	return func(c *ServerConfig) error {
		if env == "" {
			return fmt.Errorf("environment cannot be empty")
		}
		c.Environment = env
		return nil
	}
}

// WithDatabase configures the database backend
func WithDatabase(dbType, url string) Option {
	return func(c *ServerConfig) error {
		if dbType != "memory" && dbType != "postgres" {
			return fmt.Errorf("database type must be 'memory' or 'postgres', got: %s", dbType)
		}
		if dbType == "postgres" && url == "" {
			return fmt.Errorf("database URL is required for postgres")
		}
		c.DatabaseType = dbType
		c.DatabaseURL = url
		return nil
	}
}

// WithDatabaseSchema sets the database schema (for Postgres)
func WithDatabaseSchema(schema string) Option {
	return func(c *ServerConfig) error {
		c.DBSchema = schema
		return nil
	}
}

// WithMigrations runs pending migrations when the service is built.
func WithMigrations(enabled bool) Option {
	return func(c *ServerConfig) error {
		c.RunMigrations = enabled
		return nil
	}
}

// WithRedisCache puts a Redis read cache in front of the repository.
func WithRedisCache(redisURL string, ttl time.Duration) Option {
	return func(c *ServerConfig) error {
		if redisURL == "" {
			return fmt.Errorf("redis URL cannot be empty")
		}
		c.RedisURL = redisURL
		if ttl > 0 {
			c.CacheTTL = ttl
		}
		return nil
	}
}

// WithNATS publishes lifecycle events to NATS.
func WithNATS(url, subjectPrefix string) Option {
	return func(c *ServerConfig) error {
		if url == "" {
			return fmt.Errorf("NATS URL cannot be empty")
		}
		c.NATSURL = url
		c.NATSSubjectPrefix = subjectPrefix
		return nil
	}
}

// WithKafka publishes lifecycle events to a Kafka topic.
func WithKafka(brokers []string, topic string) Option {
	return func(c *ServerConfig) error {
		if len(brokers) == 0 {
			return fmt.Errorf("kafka brokers cannot be empty")
		}
		if topic == "" {
			return fmt.Errorf("kafka topic cannot be empty")
		}
		c.KafkaBrokers = brokers
		c.KafkaTopic = topic
		return nil
	}
}

// WithSnapshotURL enables snapshot writes. See ServerConfig.SnapshotURL.
func WithSnapshotURL(raw string) Option {
	return func(c *ServerConfig) error {
		if _, err := parseSnapshotURL(raw); err != nil {
			return err
		}
		c.SnapshotURL = raw
		return nil
	}
}

// WithGemini configures the content generator.
func WithGemini(apiKey, model string) Option {
	return func(c *ServerConfig) error {
		c.GeminiAPIKey = apiKey
		if model != "" {
			c.GeminiModel = model
		}
		return nil
	}
}

// WithGenerationTimeout bounds each generator call.
func WithGenerationTimeout(d time.Duration) Option {
	return func(c *ServerConfig) error {
		if d < 0 {
			return fmt.Errorf("generation timeout cannot be negative")
		}
		c.GenerationTimeout = d
		return nil
	}
}

// WithStrictCardinality rejects short collections instead of padding them.
func WithStrictCardinality(strict bool) Option {
	return func(c *ServerConfig) error {
		c.StrictCardinality = strict
		return nil
	}
}

// WithPreviewDomain sets the domain used for preview URLs.
func WithPreviewDomain(domain string) Option {
	return func(c *ServerConfig) error {
		c.PreviewDomain = domain
		return nil
	}
}

// WithJWTSecret gates the HTTP API behind HS256 bearer tokens.
func WithJWTSecret(secret string) Option {
	return func(c *ServerConfig) error {
		c.JWTSecret = secret
		return nil
	}
}
