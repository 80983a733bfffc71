// Package generator implements siteconfig.Generator on top of a language
// model. The model only supplies copy; output is decoded, cleaned and clamped
// here so downstream normalization sees a well-formed candidate.
package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tendant/simple-site/pkg/siteconfig"
)

// Model produces a raw text completion for a prompt.
type Model interface {
	Generate(ctx context.Context, p Prompt) (string, error)
}

// ModelFunc adapts a function to Model.
type ModelFunc func(ctx context.Context, p Prompt) (string, error)

func (f ModelFunc) Generate(ctx context.Context, p Prompt) (string, error) {
	return f(ctx, p)
}

// Generator implements siteconfig.Generator.
type Generator struct {
	model  Model
	logger *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// New creates a generator backed by model.
func New(model Model, opts ...Option) (*Generator, error) {
	if model == nil {
		return nil, fmt.Errorf("%w: model is required", siteconfig.ErrConfigurationError)
	}
	g := &Generator{model: model, logger: slog.Default()}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

var _ siteconfig.Generator = (*Generator)(nil)

// FromClientInfo fills in marketing content around the caller's business
// details. Business identity and placeId always come from info.
func (g *Generator) FromClientInfo(ctx context.Context, info siteconfig.ClientInfo) (*siteconfig.Config, error) {
	b, err := g.call(ctx, clientInfoPrompt(info))
	if err != nil {
		return nil, err
	}
	cfg := shapeClientInfo(b, info)
	return &cfg, nil
}

// FromDescription builds a whole candidate from free text.
func (g *Generator) FromDescription(ctx context.Context, req siteconfig.DescriptionRequest) (*siteconfig.Config, error) {
	if strings.TrimSpace(req.Description) == "" {
		return nil, &siteconfig.ValidationError{Violations: []siteconfig.Violation{{
			Field:   "description",
			Rule:    "required",
			Message: "description is required",
		}}}
	}

	b, err := g.call(ctx, descriptionPrompt(req))
	if err != nil {
		return nil, err
	}
	cfg := shapeDescription(b, req)
	return &cfg, nil
}

func (g *Generator) call(ctx context.Context, p Prompt) (bundle, error) {
	raw, err := g.model.Generate(ctx, p)
	if err != nil {
		return bundle{}, fmt.Errorf("%w: %w", siteconfig.ErrGenerationFailed, err)
	}
	b, err := decodeBundle(raw)
	if err != nil {
		g.logger.Warn("Unparseable model output", "error", err, "length", len(raw))
		return bundle{}, err
	}
	return b, nil
}

func decodeBundle(raw string) (bundle, error) {
	text := extractJSON(stripCodeFences(raw))
	if text == "" {
		return bundle{}, fmt.Errorf("%w: no JSON object in model output", siteconfig.ErrGenerationFailed)
	}
	var b bundle
	if err := json.Unmarshal([]byte(text), &b); err != nil {
		return bundle{}, fmt.Errorf("%w: decode model output: %w", siteconfig.ErrGenerationFailed, err)
	}
	return b, nil
}
