package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth"
	"github.com/go-chi/render"
	"github.com/spf13/cast"

	"github.com/tendant/simple-site/pkg/siteconfig"
)

// maxListLimit caps a single list page.
const maxListLimit = 200

// RecordResponse is the response body for a site config record
type RecordResponse struct {
	ID         string            `json:"id"`
	Slug       string            `json:"slug"`
	Niche      string            `json:"niche"`
	Status     string            `json:"status"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
	PreviewURL string            `json:"preview_url"`
	ReviewURL  string            `json:"review_url,omitempty"`
	Config     siteconfig.Config `json:"config"`
}

// ListResponse is the response body for a list request
type ListResponse struct {
	Items []RecordResponse `json:"items"`
	Count int              `json:"count"`
}

// ReviewURLResponse is the response body for a review link request
type ReviewURLResponse struct {
	PlaceID string `json:"placeId"`
	URL     string `json:"url"`
}

// ConfigHandler handles HTTP requests for site configs
type ConfigHandler struct {
	service       siteconfig.Service
	previewDomain string
	auth          *jwtauth.JWTAuth
	logger        *slog.Logger
}

// HandlerOption configures a ConfigHandler.
type HandlerOption func(*ConfigHandler)

// WithPreviewDomain sets the domain used to build preview URLs.
func WithPreviewDomain(domain string) HandlerOption {
	return func(h *ConfigHandler) {
		h.previewDomain = domain
	}
}

// WithJWTAuth requires a valid bearer token on every /configs route.
func WithJWTAuth(auth *jwtauth.JWTAuth) HandlerOption {
	return func(h *ConfigHandler) {
		h.auth = auth
	}
}

// WithLogger sets the handler logger.
func WithLogger(logger *slog.Logger) HandlerOption {
	return func(h *ConfigHandler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// NewConfigHandler creates a new site config handler
func NewConfigHandler(service siteconfig.Service, opts ...HandlerOption) *ConfigHandler {
	h := &ConfigHandler{
		service:       service,
		previewDomain: "sites.localhost",
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the handler's routes on r.
func (h *ConfigHandler) Register(r chi.Router) {
	r.Route("/configs", func(r chi.Router) {
		if h.auth != nil {
			r.Use(jwtauth.Verifier(h.auth))
			r.Use(jwtauth.Authenticator)
		}
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.Post("/", h.CreateConfig)
		r.Post("/generate", h.GenerateFromClientInfo)
		r.Post("/describe", h.GenerateFromDescription)
		r.Get("/", h.ListConfigs)
		r.Get("/{slug}", h.GetConfig)
		r.Patch("/{slug}", h.UpdateConfig)
	})
	r.Get("/review-url", h.GetReviewURL)
}

// Routes returns a router with every route registered.
func (h *ConfigHandler) Routes() chi.Router {
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func (h *ConfigHandler) toResponse(record *siteconfig.Record) RecordResponse {
	resp := RecordResponse{
		ID:         record.ID.String(),
		Slug:       record.Slug,
		Niche:      record.Niche,
		Status:     string(record.Status),
		CreatedAt:  record.CreatedAt,
		UpdatedAt:  record.UpdatedAt,
		PreviewURL: siteconfig.PreviewURL(h.previewDomain, record.Slug),
		Config:     record.Config,
	}
	if u, err := siteconfig.ReviewURL(record.Config.PlaceID); err == nil {
		resp.ReviewURL = u
	}
	return resp
}

// CreateConfig creates a record from a structured candidate
func (h *ConfigHandler) CreateConfig(w http.ResponseWriter, r *http.Request) {
	var candidate siteconfig.Config
	if err := json.NewDecoder(r.Body).Decode(&candidate); err != nil {
		h.writeError(w, r, badRequest("invalid JSON body: "+err.Error()))
		return
	}

	record, err := h.service.Create(r.Context(), candidate)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.logger.Info("Site config created", "slug", record.Slug)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, h.toResponse(record))
}

// GenerateFromClientInfo generates and creates a record from structured client info
func (h *ConfigHandler) GenerateFromClientInfo(w http.ResponseWriter, r *http.Request) {
	var info siteconfig.ClientInfo
	if err := json.NewDecoder(r.Body).Decode(&info); err != nil {
		h.writeError(w, r, badRequest("invalid JSON body: "+err.Error()))
		return
	}

	record, err := h.service.GenerateFromClientInfo(r.Context(), info)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, h.toResponse(record))
}

// GenerateFromDescription generates and creates a record from free text
func (h *ConfigHandler) GenerateFromDescription(w http.ResponseWriter, r *http.Request) {
	var req siteconfig.DescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, badRequest("invalid JSON body: "+err.Error()))
		return
	}

	record, err := h.service.GenerateFromDescription(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, h.toResponse(record))
}

// GetConfig retrieves a record by slug
func (h *ConfigHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	record, found, err := h.service.GetBySlug(r.Context(), slug)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if !found {
		h.writeError(w, r, siteconfig.ErrNotFound)
		return
	}

	render.JSON(w, r, h.toResponse(record))
}

// UpdateConfig merges a partial update into a record
func (h *ConfigHandler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	var patch siteconfig.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.writeError(w, r, badRequest("invalid JSON body: "+err.Error()))
		return
	}

	record, err := h.service.Update(r.Context(), slug, patch)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.logger.Info("Site config updated", "slug", slug)
	render.JSON(w, r, h.toResponse(record))
}

// ListConfigs lists records newest first
func (h *ConfigHandler) ListConfigs(w http.ResponseWriter, r *http.Request) {
	params := siteconfig.ListParams{
		Search: strings.TrimSpace(r.URL.Query().Get("search")),
		Limit:  50,
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := cast.ToIntE(raw)
		if err != nil || limit <= 0 {
			h.writeError(w, r, badRequest("limit must be a positive integer"))
			return
		}
		params.Limit = min(limit, maxListLimit)
	}

	records, err := h.service.List(r.Context(), params)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp := ListResponse{Items: make([]RecordResponse, 0, len(records))}
	for _, record := range records {
		resp.Items = append(resp.Items, h.toResponse(record))
	}
	resp.Count = len(resp.Items)
	render.JSON(w, r, resp)
}

// GetReviewURL builds the review deep-link for a place ID
func (h *ConfigHandler) GetReviewURL(w http.ResponseWriter, r *http.Request) {
	placeID := r.URL.Query().Get("placeId")

	u, err := siteconfig.ReviewURL(placeID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	render.JSON(w, r, ReviewURLResponse{PlaceID: placeID, URL: u})
}
