package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/tendant/simple-site/pkg/siteconfig"
)

// Option applies configuration to a ServerConfig instance.
type Option func(*ServerConfig) error

// Load constructs a ServerConfig by applying the supplied options on top of library defaults.
func Load(opts ...Option) (*ServerConfig, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() ServerConfig {
	return ServerConfig{
		Port:              "8080",
		Environment:       "development",
		DatabaseType:      "memory",
		CacheTTL:          5 * time.Minute,
		SnapshotURL:       "",
		GeminiModel:       "gemini-2.5-flash",
		GenerationTimeout: siteconfig.DefaultGenerationTimeout,
		PreviewDomain:     "sites.localhost",
	}
}

// ServerConfig represents configuration for the site config service and server.
type ServerConfig struct {
	Port        string `yaml:"port" toml:"port"`
	Environment string `yaml:"environment" toml:"environment"` // development, production, testing

	// Database configuration
	DatabaseURL   string `yaml:"database_url" toml:"database_url"`
	DatabaseType  string `yaml:"database_type" toml:"database_type"` // "memory", "postgres"
	DBSchema      string `yaml:"db_schema" toml:"db_schema"`
	RunMigrations bool   `yaml:"run_migrations" toml:"run_migrations"`

	// Read cache in front of the repository. Empty disables it.
	RedisURL string        `yaml:"redis_url" toml:"redis_url"`
	CacheTTL time.Duration `yaml:"cache_ttl" toml:"cache_ttl"`

	// Event sinks. Each is enabled by a non-empty address.
	NATSURL           string   `yaml:"nats_url" toml:"nats_url"`
	NATSSubjectPrefix string   `yaml:"nats_subject_prefix" toml:"nats_subject_prefix"`
	KafkaBrokers      []string `yaml:"kafka_brokers" toml:"kafka_brokers"`
	KafkaTopic        string   `yaml:"kafka_topic" toml:"kafka_topic"`

	// SnapshotURL selects where <slug>.json snapshots are written:
	// "memory://", "file:///path" or "s3://bucket/prefix?region=..&endpoint=..".
	// Empty disables snapshots.
	SnapshotURL string `yaml:"snapshot_url" toml:"snapshot_url"`

	// Content generation
	GeminiAPIKey      string        `yaml:"gemini_api_key" toml:"gemini_api_key"`
	GeminiModel       string        `yaml:"gemini_model" toml:"gemini_model"`
	GenerationTimeout time.Duration `yaml:"generation_timeout" toml:"generation_timeout"`
	StrictCardinality bool          `yaml:"strict_cardinality" toml:"strict_cardinality"`

	// HTTP surface
	PreviewDomain string `yaml:"preview_domain" toml:"preview_domain"`
	JWTSecret     string `yaml:"jwt_secret" toml:"jwt_secret"`
	APIKeySHA256  string `yaml:"api_key_sha256" toml:"api_key_sha256"`
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}

	if c.DatabaseType != "memory" && c.DatabaseType != "postgres" {
		return errors.New("database_type must be 'memory' or 'postgres'")
	}

	if c.DatabaseType == "postgres" && c.DatabaseURL == "" {
		return errors.New("database_url is required when using postgres")
	}

	if c.RunMigrations && c.DatabaseType != "postgres" {
		return errors.New("run_migrations requires database_type 'postgres'")
	}

	if len(c.KafkaBrokers) > 0 && c.KafkaTopic == "" {
		return errors.New("kafka_topic is required when kafka_brokers is set")
	}

	if c.SnapshotURL != "" {
		if _, err := parseSnapshotURL(c.SnapshotURL); err != nil {
			return err
		}
	}

	if c.GenerationTimeout < 0 {
		return errors.New("generation_timeout cannot be negative")
	}

	return nil
}

// snapshotTarget is a parsed SnapshotURL.
type snapshotTarget struct {
	Scheme string // memory, file, s3
	Path   string // filesystem directory
	Bucket string
	Prefix string
	Query  url.Values
}

func parseSnapshotURL(raw string) (*snapshotTarget, error) {
	if raw == "memory" {
		raw = "memory://"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid snapshot_url %q: %w", raw, err)
	}

	switch u.Scheme {
	case "memory":
		return &snapshotTarget{Scheme: "memory"}, nil
	case "file":
		path := u.Path
		if u.Host != "" {
			// file://relative/dir
			path = u.Host + u.Path
		}
		if path == "" {
			return nil, errors.New("filesystem path cannot be empty in snapshot_url")
		}
		return &snapshotTarget{Scheme: "file", Path: path}, nil
	case "s3":
		if u.Host == "" {
			return nil, errors.New("S3 bucket name cannot be empty in snapshot_url")
		}
		prefix := strings.TrimPrefix(u.Path, "/")
		if prefix != "" && !strings.HasSuffix(prefix, "/") {
			prefix += "/"
		}
		return &snapshotTarget{Scheme: "s3", Bucket: u.Host, Prefix: prefix, Query: u.Query()}, nil
	default:
		return nil, fmt.Errorf("unsupported snapshot_url format: %s (use 'memory://', 'file://...', or 's3://...')", raw)
	}
}
