package siteconfig

import "context"

// Service defines the main interface for creating and maintaining site configs
type Service interface {
	// Create normalizes, validates and inserts a candidate.
	Create(ctx context.Context, candidate Config) (*Record, error)

	// GenerateFromClientInfo runs generation mode A and creates the result.
	GenerateFromClientInfo(ctx context.Context, info ClientInfo) (*Record, error)

	// GenerateFromDescription runs generation mode B and creates the result.
	GenerateFromDescription(ctx context.Context, req DescriptionRequest) (*Record, error)

	// GetBySlug returns the record for slug. A missing record is reported
	// with found == false and a nil error.
	GetBySlug(ctx context.Context, slug string) (record *Record, found bool, err error)

	// Update merges patch into the stored config, keeping its identity.
	Update(ctx context.Context, slug string, patch Patch) (*Record, error)

	// List returns records newest first.
	List(ctx context.Context, params ListParams) ([]*Record, error)
}
