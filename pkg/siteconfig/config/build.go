package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cast"

	"github.com/tendant/simple-site/pkg/siteconfig"
	"github.com/tendant/simple-site/pkg/siteconfig/events"
	"github.com/tendant/simple-site/pkg/siteconfig/generator"
	"github.com/tendant/simple-site/pkg/siteconfig/repo/cached"
	"github.com/tendant/simple-site/pkg/siteconfig/repo/memory"
	repopg "github.com/tendant/simple-site/pkg/siteconfig/repo/postgres"
	"github.com/tendant/simple-site/pkg/siteconfig/snapshot"
	fsstorage "github.com/tendant/simple-site/pkg/siteconfig/storage/fs"
	memorystorage "github.com/tendant/simple-site/pkg/siteconfig/storage/memory"
	s3storage "github.com/tendant/simple-site/pkg/siteconfig/storage/s3"
)

// BuildService creates a Service from the configuration. The returned
// cleanup function releases every connection the service owns; it is safe to
// call when BuildService fails.
func (c *ServerConfig) BuildService(ctx context.Context) (siteconfig.Service, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	options := []siteconfig.Option{
		siteconfig.WithGenerationTimeout(c.GenerationTimeout),
	}
	if c.StrictCardinality {
		options = append(options, siteconfig.WithStrictCardinality())
	}

	repo, closeRepo, err := c.buildRepository(ctx)
	if err != nil {
		return nil, cleanup, fmt.Errorf("failed to build repository: %w", err)
	}
	closers = append(closers, closeRepo)

	if c.RedisURL != "" {
		cache, err := cached.NewRedisCache(ctx, c.RedisURL)
		if err != nil {
			return nil, cleanup, fmt.Errorf("failed to connect cache: %w", err)
		}
		closers = append(closers, func() { cache.Close() })
		repo = cached.New(repo, cache, cached.WithTTL(c.CacheTTL))
	}
	options = append(options, siteconfig.WithRepository(repo))

	if c.GeminiAPIKey != "" {
		model, err := generator.NewGeminiModel(ctx, c.GeminiAPIKey, c.GeminiModel)
		if err != nil {
			return nil, cleanup, err
		}
		gen, err := generator.New(model)
		if err != nil {
			return nil, cleanup, err
		}
		options = append(options, siteconfig.WithGenerator(gen))
	} else {
		slog.Warn("No generation API key configured; generate endpoints will report a configuration error")
	}

	if c.NATSURL != "" {
		var natsOpts []events.NATSOption
		if c.NATSSubjectPrefix != "" {
			natsOpts = append(natsOpts, events.WithSubjectPrefix(c.NATSSubjectPrefix))
		}
		sink, err := events.NewNATSSink(c.NATSURL, natsOpts...)
		if err != nil {
			return nil, cleanup, err
		}
		closers = append(closers, func() { sink.Close() })
		options = append(options, siteconfig.WithEventSink(sink))
	}

	if len(c.KafkaBrokers) > 0 {
		sink, err := events.NewKafkaSink(c.KafkaBrokers, c.KafkaTopic)
		if err != nil {
			return nil, cleanup, err
		}
		closers = append(closers, func() { sink.Close() })
		options = append(options, siteconfig.WithEventSink(sink))
	}

	if c.SnapshotURL != "" {
		store, err := c.BuildSnapshotStore(ctx)
		if err != nil {
			return nil, cleanup, fmt.Errorf("failed to build snapshot store: %w", err)
		}
		options = append(options, siteconfig.WithEventSink(snapshot.New(store)))
	}

	svc, err := siteconfig.New(options...)
	if err != nil {
		return nil, cleanup, err
	}
	return svc, cleanup, nil
}

// buildRepository creates a Repository based on the configuration
func (c *ServerConfig) buildRepository(ctx context.Context) (siteconfig.Repository, func(), error) {
	switch c.DatabaseType {
	case "memory":
		return memory.New(), func() {}, nil
	case "postgres":
		if c.DatabaseURL == "" {
			return nil, nil, errors.New("database_url is required for postgres")
		}
		if c.RunMigrations {
			if err := c.Migrate(); err != nil {
				return nil, nil, err
			}
		}
		pool, err := newPool(ctx, c.DatabaseURL, c.DBSchema)
		if err != nil {
			return nil, nil, err
		}
		return repopg.NewWithPool(pool), pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported database type: %s", c.DatabaseType)
	}
}

// Migrate applies pending schema migrations to the configured postgres
// database, inside DBSchema when one is set.
func (c *ServerConfig) Migrate() error {
	if c.DatabaseType != "postgres" || c.DatabaseURL == "" {
		return errors.New("migrations require a postgres database_url")
	}
	migrateURL, err := withSearchPath(c.DatabaseURL, c.DBSchema)
	if err != nil {
		return err
	}
	if err := repopg.Migrate(migrateURL); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func newPool(ctx context.Context, databaseURL, schema string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DATABASE_URL: %w", err)
	}
	if schema != "" {
		cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
			_, err := conn.Exec(ctx, "SELECT set_config('search_path', $1, false)", schema)
			return err
		}
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}
	return pool, nil
}

// withSearchPath adds a search_path runtime parameter to a postgres URL.
func withSearchPath(databaseURL, schema string) (string, error) {
	if schema == "" {
		return databaseURL, nil
	}
	u, err := url.Parse(databaseURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse DATABASE_URL: %w", err)
	}
	q := u.Query()
	q.Set("search_path", schema)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// PingPostgres verifies connectivity to Postgres, failing if schema (when
// provided) cannot be selected.
func PingPostgres(ctx context.Context, databaseURL, schema string) error {
	if databaseURL == "" {
		return errors.New("database_url is required")
	}
	pool, err := newPool(ctx, databaseURL, schema)
	if err != nil {
		return err
	}
	defer pool.Close()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// BuildSnapshotStore creates the blob store named by SnapshotURL.
func (c *ServerConfig) BuildSnapshotStore(ctx context.Context) (siteconfig.BlobStore, error) {
	target, err := parseSnapshotURL(c.SnapshotURL)
	if err != nil {
		return nil, err
	}

	switch target.Scheme {
	case "memory":
		return memorystorage.New(), nil

	case "file":
		return fsstorage.New(fsstorage.Config{BaseDir: target.Path})

	case "s3":
		q := target.Query
		s3Config := s3storage.Config{
			Region:                 firstNonEmpty(q.Get("region"), os.Getenv("AWS_REGION"), "us-east-1"),
			Bucket:                 target.Bucket,
			Prefix:                 target.Prefix,
			AccessKeyID:            os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey:        os.Getenv("AWS_SECRET_ACCESS_KEY"),
			Endpoint:               q.Get("endpoint"),
			UsePathStyle:           cast.ToBool(q.Get("path_style")),
			EnableSSE:              q.Get("sse") != "",
			SSEAlgorithm:           q.Get("sse"),
			SSEKMSKeyID:            q.Get("kms_key_id"),
			CreateBucketIfNotExist: cast.ToBool(q.Get("create_bucket")),
		}
		return s3storage.New(ctx, s3Config)

	default:
		return nil, fmt.Errorf("unsupported snapshot storage: %s", target.Scheme)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
