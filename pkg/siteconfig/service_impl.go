package siteconfig

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// DefaultGenerationTimeout bounds a single call to the generator.
const DefaultGenerationTimeout = 60 * time.Second

const (
	modeClientInfo  = "client_info"
	modeDescription = "description"
)

// service implements the Service interface
type service struct {
	repository        Repository
	generator         Generator
	eventSinks        []EventSink
	logger            *slog.Logger
	normalizeOptions  NormalizeOptions
	generationTimeout time.Duration
	now               func() time.Time
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithRepository sets the repository for the service
func WithRepository(repo Repository) Option {
	return func(s *service) {
		s.repository = repo
	}
}

// WithGenerator sets the content generator. Without one, generation calls
// fail with ErrConfigurationError.
func WithGenerator(g Generator) Option {
	return func(s *service) {
		s.generator = g
	}
}

// WithEventSink adds an event sink. Sinks are called in registration order.
func WithEventSink(sink EventSink) Option {
	return func(s *service) {
		if sink != nil {
			s.eventSinks = append(s.eventSinks, sink)
		}
	}
}

// WithLogger sets the structured logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStrictCardinality disables placeholder padding, so candidates with too
// few services or areas are rejected instead of filled with filler entries.
func WithStrictCardinality() Option {
	return func(s *service) {
		s.normalizeOptions.PadCollections = false
	}
}

// WithGenerationTimeout bounds each generator call. Zero disables the bound.
func WithGenerationTimeout(d time.Duration) Option {
	return func(s *service) {
		s.generationTimeout = d
	}
}

// WithClock overrides the time source used for record timestamps
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{
		logger:            slog.Default(),
		normalizeOptions:  DefaultNormalizeOptions(),
		generationTimeout: DefaultGenerationTimeout,
		now:               time.Now,
	}

	for _, option := range options {
		option(s)
	}

	if s.repository == nil {
		return nil, fmt.Errorf("repository is required")
	}

	return s, nil
}

func (s *service) Create(ctx context.Context, candidate Config) (*Record, error) {
	cfg := NormalizeWith(candidate, s.normalizeOptions)
	if cfg.Slug == "" {
		cfg.Slug = DeriveSlug(cfg.Business.Name, cfg.Business.City, cfg.Business.State)
	}

	if err := Validate(&cfg); err != nil {
		validationFailuresTotal.WithLabelValues("create").Inc()
		s.logger.Info("Rejected site config candidate", "slug", cfg.Slug, "error", err)
		return nil, err
	}

	now := s.now().UTC()
	record := &Record{
		ID:        uuid.New(),
		Slug:      cfg.Slug,
		Niche:     cfg.Niche,
		Status:    StatusPreview,
		CreatedAt: now,
		UpdatedAt: now,
		Config:    cfg,
	}

	if err := s.repository.CreateRecord(ctx, record); err != nil {
		if errors.Is(err, ErrDuplicateIdentity) {
			duplicateIdentityTotal.Inc()
			s.logger.Info("Site config slug already exists", "slug", record.Slug)
		}
		return nil, storeError("create", record.Slug, err)
	}

	recordsCreatedTotal.Inc()
	s.logger.Info("Site config created", "slug", record.Slug, "id", record.ID.String())

	for _, sink := range s.eventSinks {
		if err := sink.ConfigCreated(ctx, record.Clone()); err != nil {
			s.logger.Warn("Event sink failed", "event", "created", "slug", record.Slug, "error", err)
		}
	}

	return record.Clone(), nil
}

func (s *service) GenerateFromClientInfo(ctx context.Context, info ClientInfo) (*Record, error) {
	candidate, err := s.generate(ctx, modeClientInfo, func(ctx context.Context) (*Config, error) {
		return s.generator.FromClientInfo(ctx, info)
	})
	if err != nil {
		return nil, err
	}
	return s.Create(ctx, *candidate)
}

func (s *service) GenerateFromDescription(ctx context.Context, req DescriptionRequest) (*Record, error) {
	candidate, err := s.generate(ctx, modeDescription, func(ctx context.Context) (*Config, error) {
		return s.generator.FromDescription(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return s.Create(ctx, *candidate)
}

// generate runs one generator call under the configured timeout. Nothing is
// cached; a failed call leaves no trace besides the returned error.
func (s *service) generate(ctx context.Context, mode string, call func(context.Context) (*Config, error)) (*Config, error) {
	if s.generator == nil {
		generationsTotal.WithLabelValues(mode, "unconfigured").Inc()
		return nil, &GenerationError{Mode: mode, Err: ErrConfigurationError}
	}

	if s.generationTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.generationTimeout)
		defer cancel()
	}

	start := s.now()
	candidate, err := call(ctx)
	if err == nil && candidate == nil {
		err = errors.New("generator returned no content")
	}
	if errors.Is(err, ErrValidationFailed) {
		generationsTotal.WithLabelValues(mode, "rejected").Inc()
		return nil, err
	}
	if err != nil {
		if !errors.Is(err, ErrGenerationFailed) && !errors.Is(err, ErrConfigurationError) {
			err = fmt.Errorf("%w: %w", ErrGenerationFailed, err)
		}
		generationsTotal.WithLabelValues(mode, "failed").Inc()
		s.logger.Error("Content generation failed", "mode", mode, "error", err)
		return nil, &GenerationError{Mode: mode, Err: err}
	}

	generationsTotal.WithLabelValues(mode, "ok").Inc()
	s.logger.Info("Content generated", "mode", mode, "duration", s.now().Sub(start))
	return candidate, nil
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*Record, bool, error) {
	record, err := s.repository.GetRecordBySlug(ctx, slug)
	if errors.Is(err, ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, storeError("get", slug, err)
	}
	return record, true, nil
}

// Update is a plain read-modify-write. Two concurrent updates of the same
// slug are last-write-wins: the later write silently replaces the earlier.
func (s *service) Update(ctx context.Context, slug string, patch Patch) (*Record, error) {
	existing, err := s.repository.GetRecordBySlug(ctx, slug)
	if err != nil {
		return nil, storeError("update", slug, err)
	}

	merged := ApplyPatch(existing.Config, patch)
	if err := Validate(&merged); err != nil {
		validationFailuresTotal.WithLabelValues("update").Inc()
		s.logger.Info("Rejected site config update", "slug", slug, "error", err)
		return nil, err
	}

	updated := existing.Clone()
	updated.Config = merged
	updated.UpdatedAt = s.now().UTC()

	if err := s.repository.UpdateRecord(ctx, updated); err != nil {
		return nil, storeError("update", slug, err)
	}

	recordsUpdatedTotal.Inc()
	s.logger.Info("Site config updated", "slug", slug)

	for _, sink := range s.eventSinks {
		if err := sink.ConfigUpdated(ctx, updated.Clone()); err != nil {
			s.logger.Warn("Event sink failed", "event", "updated", "slug", slug, "error", err)
		}
	}

	return updated.Clone(), nil
}

func (s *service) List(ctx context.Context, params ListParams) ([]*Record, error) {
	records, err := s.repository.ListRecords(ctx, params)
	if err != nil {
		return nil, storeError("list", params.Search, err)
	}
	return records, nil
}

// storeError passes caller-facing sentinels through unchanged and wraps
// anything else with the attempted operation.
func storeError(op, slug string, err error) error {
	if errors.Is(err, ErrDuplicateIdentity) || errors.Is(err, ErrNotFound) {
		return err
	}
	return &RecordError{Slug: slug, Op: op, Err: err}
}
