package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/jwtauth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/simple-site/pkg/siteconfig"
	"github.com/tendant/simple-site/pkg/siteconfig/repo/memory"
)

type stubGenerator struct {
	cfg *siteconfig.Config
	err error
}

func (g *stubGenerator) FromClientInfo(ctx context.Context, info siteconfig.ClientInfo) (*siteconfig.Config, error) {
	if g.err != nil {
		return nil, g.err
	}
	cfg := g.cfg.Clone()
	cfg.Business = siteconfig.Business{Name: info.BusinessName, City: info.City, State: info.State, Phone: info.Phone}
	cfg.PlaceID = info.PlaceID
	return &cfg, nil
}

func (g *stubGenerator) FromDescription(ctx context.Context, req siteconfig.DescriptionRequest) (*siteconfig.Config, error) {
	if g.err != nil {
		return nil, g.err
	}
	cfg := g.cfg.Clone()
	cfg.PlaceID = req.PlaceID
	return &cfg, nil
}

func validCandidate() siteconfig.Config {
	return siteconfig.Config{
		Business:    siteconfig.Business{Name: "Elite Cleaning", City: "Los Angeles", State: "CA", Phone: "555-0100"},
		PlaceID:     "ChIJ123",
		Offer:       siteconfig.Offer{ShortText: "10% off your first clean"},
		Services:    []siteconfig.ServiceEntry{{Name: "Standard"}, {Name: "Deep"}, {Name: "Move-out"}, {Name: "Office"}},
		AreasServed: []string{"Los Angeles", "Pasadena"},
	}
}

func setupHandlerTest(t *testing.T, gen siteconfig.Generator, opts ...HandlerOption) (http.Handler, siteconfig.Service) {
	t.Helper()
	svcOpts := []siteconfig.Option{siteconfig.WithRepository(memory.New())}
	if gen != nil {
		svcOpts = append(svcOpts, siteconfig.WithGenerator(gen))
	}
	svc, err := siteconfig.New(svcOpts...)
	require.NoError(t, err)

	h := NewConfigHandler(svc, append([]HandlerOption{WithPreviewDomain("https://preview.example.com")}, opts...)...)
	return h.Routes(), svc
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestConfigHandler_CreateAndGet(t *testing.T) {
	router, _ := setupHandlerTest(t, nil)

	rec := doJSON(t, router, http.MethodPost, "/configs", validCandidate())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created RecordResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "elite-cleaning-los-angeles-ca", created.Slug)
	assert.Equal(t, "preview", created.Status)
	assert.Equal(t, "https://preview.example.com/elite-cleaning-los-angeles-ca", created.PreviewURL)
	assert.Equal(t, "https://search.google.com/local/writereview?placeid=ChIJ123", created.ReviewURL)

	rec = doJSON(t, router, http.MethodGet, "/configs/"+created.Slug, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got RecordResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Elite Cleaning", got.Config.Business.Name)
}

func TestConfigHandler_CreateErrors(t *testing.T) {
	router, _ := setupHandlerTest(t, nil)

	rec := doJSON(t, router, http.MethodPost, "/configs", validCandidate())
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/configs", validCandidate())
	assert.Equal(t, http.StatusConflict, rec.Code)

	bad := validCandidate()
	bad.Business.Name = ""
	bad.Branding.PrimaryColor = "blue"
	rec = doJSON(t, router, http.MethodPost, "/configs", bad)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, "validation_failed", errResp.Code)
	assert.GreaterOrEqual(t, len(errResp.Violations), 2)

	req := httptest.NewRequest(http.MethodPost, "/configs", bytes.NewBufferString("{not json"))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestConfigHandler_GetMissing(t *testing.T) {
	router, _ := setupHandlerTest(t, nil)
	rec := doJSON(t, router, http.MethodGet, "/configs/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestConfigHandler_Update(t *testing.T) {
	router, _ := setupHandlerTest(t, nil)
	rec := doJSON(t, router, http.MethodPost, "/configs", validCandidate())
	require.Equal(t, http.StatusCreated, rec.Code)

	patch := map[string]any{
		"slug":     "hijacked",
		"branding": map[string]any{"accentColor": "#000000"},
		"offer":    map[string]any{"shortText": "Spring special"},
	}
	rec = doJSON(t, router, http.MethodPatch, "/configs/elite-cleaning-los-angeles-ca", patch)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated RecordResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "elite-cleaning-los-angeles-ca", updated.Slug)
	assert.Equal(t, "elite-cleaning-los-angeles-ca", updated.Config.Slug)
	assert.Equal(t, "#000000", updated.Config.Branding.AccentColor)
	assert.Equal(t, siteconfig.FallbackPrimaryColor, updated.Config.Branding.PrimaryColor)
	assert.Equal(t, "Spring special", updated.Config.Offer.ShortText)

	rec = doJSON(t, router, http.MethodPatch, "/configs/nope", patch)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodPatch, "/configs/elite-cleaning-los-angeles-ca", map[string]any{"areasServed": []string{}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestConfigHandler_List(t *testing.T) {
	router, _ := setupHandlerTest(t, nil)

	for _, city := range []string{"Los Angeles", "Austin", "Boston"} {
		c := validCandidate()
		c.Business.City = city
		rec := doJSON(t, router, http.MethodPost, "/configs", c)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doJSON(t, router, http.MethodGet, "/configs?search=austin", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list ListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Equal(t, 1, list.Count)
	assert.Equal(t, "Austin", list.Items[0].Config.Business.City)

	rec = doJSON(t, router, http.MethodGet, "/configs?limit=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, 2, list.Count)

	rec = doJSON(t, router, http.MethodGet, "/configs?limit=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestConfigHandler_Generate(t *testing.T) {
	gen := &stubGenerator{cfg: &siteconfig.Config{
		Offer:       siteconfig.Offer{ShortText: "Generated offer"},
		Services:    []siteconfig.ServiceEntry{{Name: "A"}, {Name: "B"}},
		AreasServed: []string{"Downtown"},
	}}
	router, _ := setupHandlerTest(t, gen)

	rec := doJSON(t, router, http.MethodPost, "/configs/generate", siteconfig.ClientInfo{
		BusinessName: "Sparkle Co", City: "Austin", State: "tx", Phone: "555-0101", PlaceID: "ChIJabc",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created RecordResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "sparkle-co-austin-tx", created.Slug)
	assert.Len(t, created.Config.Services, siteconfig.MinServices)
	assert.Len(t, created.Config.AreasServed, siteconfig.MinAreas)
}

func TestConfigHandler_GenerateErrors(t *testing.T) {
	tests := []struct {
		name   string
		gen    siteconfig.Generator
		status int
	}{
		{name: "no generator", gen: nil, status: http.StatusServiceUnavailable},
		{name: "generator failure", gen: &stubGenerator{err: errors.New("upstream 500")}, status: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := setupHandlerTest(t, tt.gen)
			rec := doJSON(t, router, http.MethodPost, "/configs/describe", siteconfig.DescriptionRequest{Description: "We clean"})
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestConfigHandler_ReviewURL(t *testing.T) {
	router, _ := setupHandlerTest(t, nil)

	rec := doJSON(t, router, http.MethodGet, "/review-url?placeId=ChIJ%2Bx", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp ReviewURLResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "https://search.google.com/local/writereview?placeid=ChIJ%2Bx", resp.URL)

	rec = doJSON(t, router, http.MethodGet, "/review-url", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestConfigHandler_JWTGate(t *testing.T) {
	auth := jwtauth.New("HS256", []byte("test-secret"), nil)
	router, _ := setupHandlerTest(t, nil, WithJWTAuth(auth))

	rec := doJSON(t, router, http.MethodGet, "/configs", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	_, token, err := auth.Encode(map[string]interface{}{"sub": "admin"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/configs", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	rec = doJSON(t, router, http.MethodGet, "/review-url?placeId=abc", nil)
	assert.Equal(t, http.StatusOK, rec.Code, "review links stay public")
}
