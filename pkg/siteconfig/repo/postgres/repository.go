package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tendant/simple-site/pkg/siteconfig"
)

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository implements siteconfig.Repository using PostgreSQL
type Repository struct {
	db DBTX
}

// New creates a new PostgreSQL repository
func New(db DBTX) *Repository {
	return &Repository{db: db}
}

// NewWithPool creates a new PostgreSQL repository with connection pool
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return &Repository{db: pool}
}

// Error handling helper
func (r *Repository) handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%w: %s", siteconfig.ErrDuplicateIdentity, pgErr.ConstraintName)
		case "23502": // not_null_violation
			return fmt.Errorf("required field %s is missing", pgErr.ColumnName)
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - database migration required")
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return siteconfig.ErrNotFound
	}

	return fmt.Errorf("database error in %s: %w", operation, err)
}

const selectColumns = `id, slug, niche, status, config, created_at, updated_at`

// CreateRecord inserts record. Slug collisions surface from the unique
// constraint, never from a pre-check.
func (r *Repository) CreateRecord(ctx context.Context, record *siteconfig.Record) error {
	data, err := json.Marshal(record.Config)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	query := `
		INSERT INTO site_config (
			id, slug, niche, status, config, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = r.db.Exec(ctx, query,
		record.ID, record.Slug, record.Niche, string(record.Status),
		data, record.CreatedAt, record.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("create site config", err)
	}

	return nil
}

func (r *Repository) GetRecordBySlug(ctx context.Context, slug string) (*siteconfig.Record, error) {
	query := `SELECT ` + selectColumns + ` FROM site_config WHERE slug = $1`

	record, err := scanRecord(r.db.QueryRow(ctx, query, slug))
	if err != nil {
		return nil, r.handlePostgresError("get site config", err)
	}
	return record, nil
}

func (r *Repository) UpdateRecord(ctx context.Context, record *siteconfig.Record) error {
	data, err := json.Marshal(record.Config)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	query := `
		UPDATE site_config SET
			status = $2, config = $3, updated_at = $4
		WHERE slug = $1`

	tag, err := r.db.Exec(ctx, query, record.Slug, string(record.Status), data, record.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("update site config", err)
	}
	if tag.RowsAffected() == 0 {
		return siteconfig.ErrNotFound
	}

	return nil
}

func (r *Repository) ListRecords(ctx context.Context, params siteconfig.ListParams) ([]*siteconfig.Record, error) {
	search := strings.TrimSpace(params.Search)

	var limit interface{}
	if params.Limit > 0 {
		limit = params.Limit
	}

	query := `
		SELECT ` + selectColumns + `
		FROM site_config
		WHERE $1::text = ''
		   OR slug ILIKE $2
		   OR config->'business'->>'name' ILIKE $2
		   OR config->'business'->>'city' ILIKE $2
		ORDER BY created_at DESC, slug
		LIMIT $3`

	rows, err := r.db.Query(ctx, query, search, "%"+escapeLike(search)+"%", limit)
	if err != nil {
		return nil, r.handlePostgresError("list site configs", err)
	}
	defer rows.Close()

	var records []*siteconfig.Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, r.handlePostgresError("scan site config", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, r.handlePostgresError("iterate site config rows", err)
	}

	return records, nil
}

func scanRecord(row pgx.Row) (*siteconfig.Record, error) {
	var (
		record siteconfig.Record
		status string
		data   []byte
	)
	if err := row.Scan(&record.ID, &record.Slug, &record.Niche, &status, &data,
		&record.CreatedAt, &record.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &record.Config); err != nil {
		return nil, fmt.Errorf("decode config for %s: %w", record.Slug, err)
	}
	record.Status = siteconfig.RecordStatus(status)
	return &record, nil
}

// escapeLike escapes ILIKE wildcards so search text matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
