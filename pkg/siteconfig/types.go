package siteconfig

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// NicheCleaning is the only category this system generates sites for.
const NicheCleaning = "cleaning"

// DefaultTemplateID is the rendering template assigned when a candidate names none.
const DefaultTemplateID = "cleaning-classic"

// RecordStatus is the lifecycle state of a persisted record.
type RecordStatus string

// Record status constants (typed).
const (
	StatusPreview   RecordStatus = "preview"
	StatusPublished RecordStatus = "published"
)

// IsValid reports whether s is a known record status.
func (s RecordStatus) IsValid() bool {
	switch s {
	case StatusPreview, StatusPublished:
		return true
	}
	return false
}

// Config is a site configuration document. Values that have not passed
// Validate are called candidates.
type Config struct {
	Slug          string         `json:"slug"`
	Niche         string         `json:"niche"`
	TemplateID    string         `json:"templateId"`
	Business      Business       `json:"business"`
	PlaceID       string         `json:"placeId"`
	Offer         Offer          `json:"offer"`
	Branding      Branding       `json:"branding"`
	Services      []ServiceEntry `json:"services"`
	AreasServed   []string       `json:"areasServed"`
	Hours         string         `json:"hours,omitempty"`
	Map           *MapBlock      `json:"map,omitempty"`
	SampleReviews []Review       `json:"sampleReviews,omitempty"`
}

// Business identifies the business a site is generated for.
type Business struct {
	Name  string `json:"name"`
	City  string `json:"city"`
	State string `json:"state"`
	Phone string `json:"phone"`
}

// Offer is the headline promotion shown on the site.
type Offer struct {
	ShortText string `json:"shortText"`
}

// Branding holds the two theme colors as hex strings.
type Branding struct {
	PrimaryColor string `json:"primaryColor,omitempty"`
	AccentColor  string `json:"accentColor,omitempty"`
}

// ServiceEntry is one offered service. Description is optional; records
// produced from structured client info carry names only.
type ServiceEntry struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// UnmarshalJSON accepts either a bare string or a {name, description} object,
// so records stored with plain-string services still decode.
func (s *ServiceEntry) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*s = ServiceEntry{Name: name}
		return nil
	}
	type plain ServiceEntry
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*s = ServiceEntry(p)
	return nil
}

// MapBlock locates the service area. Coordinates are optional.
type MapBlock struct {
	Lat         *float64 `json:"lat,omitempty"`
	Lng         *float64 `json:"lng,omitempty"`
	RadiusMiles float64  `json:"radiusMiles"`
}

// Review is a sample customer review.
type Review struct {
	Name  string `json:"name"`
	Text  string `json:"text"`
	Stars int    `json:"stars"`
}

// Record is a persisted site configuration.
type Record struct {
	ID        uuid.UUID    `json:"id"`
	Slug      string       `json:"slug"`
	Niche     string       `json:"niche"`
	Status    RecordStatus `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	Config    Config       `json:"config"`
}

// Clone returns a deep copy of c. Stores and the service hand out clones so
// that no two requests share slices or pointers.
func (c Config) Clone() Config {
	out := c
	if c.Services != nil {
		out.Services = append([]ServiceEntry(nil), c.Services...)
	}
	if c.AreasServed != nil {
		out.AreasServed = append([]string(nil), c.AreasServed...)
	}
	if c.SampleReviews != nil {
		out.SampleReviews = append([]Review(nil), c.SampleReviews...)
	}
	if c.Map != nil {
		m := *c.Map
		if c.Map.Lat != nil {
			lat := *c.Map.Lat
			m.Lat = &lat
		}
		if c.Map.Lng != nil {
			lng := *c.Map.Lng
			m.Lng = &lng
		}
		out.Map = &m
	}
	return out
}

// Clone returns a deep copy of r.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	out := *r
	out.Config = r.Config.Clone()
	return &out
}

// ServiceNames returns the names of the configured services in order.
func (c Config) ServiceNames() []string {
	names := make([]string, len(c.Services))
	for i, s := range c.Services {
		names[i] = s.Name
	}
	return names
}
