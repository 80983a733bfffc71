// Package snapshot mirrors every created or updated site config into a blob
// store as <slug>.json, for static renderers that read configs from object
// storage instead of the database.
package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/tendant/simple-site/pkg/siteconfig"
)

// Sink implements siteconfig.EventSink by writing snapshots to a BlobStore.
type Sink struct {
	store siteconfig.BlobStore
}

// New creates a snapshot sink.
func New(store siteconfig.BlobStore) *Sink {
	return &Sink{store: store}
}

var _ siteconfig.EventSink = (*Sink)(nil)

// Key returns the object key for slug.
func Key(slug string) string {
	return slug + ".json"
}

func (s *Sink) ConfigCreated(ctx context.Context, record *siteconfig.Record) error {
	return s.write(ctx, record)
}

func (s *Sink) ConfigUpdated(ctx context.Context, record *siteconfig.Record) error {
	return s.write(ctx, record)
}

func (s *Sink) write(ctx context.Context, record *siteconfig.Record) error {
	data, err := json.MarshalIndent(record.Config, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot for %s: %w", record.Slug, err)
	}
	return s.store.UploadWithParams(ctx, bytes.NewReader(data), siteconfig.UploadParams{
		ObjectKey: Key(record.Slug),
		MimeType:  "application/json",
	})
}

// Read loads the snapshot for slug.
func (s *Sink) Read(ctx context.Context, slug string) (*siteconfig.Config, error) {
	rc, err := s.store.Download(ctx, Key(slug))
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", slug, err)
	}
	var cfg siteconfig.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", slug, err)
	}
	return &cfg, nil
}
