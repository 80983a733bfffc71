package siteconfig

import (
	"context"
	"io"
	"time"
)

// Repository defines the interface for site config persistence.
//
// CreateRecord must detect slug collisions itself and return an error
// matching ErrDuplicateIdentity; callers never pre-check. GetRecordBySlug and
// UpdateRecord return ErrNotFound for unknown slugs.
type Repository interface {
	CreateRecord(ctx context.Context, record *Record) error
	GetRecordBySlug(ctx context.Context, slug string) (*Record, error)
	UpdateRecord(ctx context.Context, record *Record) error
	ListRecords(ctx context.Context, params ListParams) ([]*Record, error)
}

// Generator turns raw business information into a candidate config.
type Generator interface {
	// FromClientInfo generates content for structured client info.
	FromClientInfo(ctx context.Context, info ClientInfo) (*Config, error)

	// FromDescription generates a whole candidate from a free-text description.
	FromDescription(ctx context.Context, req DescriptionRequest) (*Config, error)
}

// EventSink defines the interface for event handling
type EventSink interface {
	// ConfigCreated is fired after a record is inserted
	ConfigCreated(ctx context.Context, record *Record) error

	// ConfigUpdated is fired after a record is updated
	ConfigUpdated(ctx context.Context, record *Record) error
}

// BlobStore defines the interface for object storage backends used for
// config snapshots.
type BlobStore interface {
	// Upload uploads content directly
	Upload(ctx context.Context, objectKey string, reader io.Reader) error

	// UploadWithParams uploads content with additional parameters
	UploadWithParams(ctx context.Context, reader io.Reader, params UploadParams) error

	// Download downloads content directly
	Download(ctx context.Context, objectKey string) (io.ReadCloser, error)

	// GetObjectMeta retrieves metadata for an object
	GetObjectMeta(ctx context.Context, objectKey string) (*ObjectMeta, error)
}

// ObjectMeta contains metadata about an object in storage
type ObjectMeta struct {
	Key         string
	Size        int64
	ContentType string
	UpdatedAt   time.Time
	ETag        string
	Metadata    map[string]string
}

// UploadParams contains parameters for uploading an object
type UploadParams struct {
	ObjectKey string
	MimeType  string
}
