package siteconfig

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	maxOfferLength = 500
	stateLength    = 2
)

var (
	hexColorPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	slugPattern     = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// IsHexColor reports whether s is a 3- or 6-digit hex color such as "#fff".
func IsHexColor(s string) bool {
	return hexColorPattern.MatchString(s)
}

// Validate checks a candidate against every config invariant. It returns nil
// or a *ValidationError listing all violations.
func Validate(c *Config) error {
	var v validator

	if c == nil {
		v.add("config", "required", "config is required")
		return v.err()
	}

	switch {
	case c.Slug == "":
		v.add("slug", "required", "slug is required")
	case len(c.Slug) > MaxSlugLength:
		v.add("slug", "max_length", fmt.Sprintf("slug must be at most %d characters", MaxSlugLength))
	case !slugPattern.MatchString(c.Slug):
		v.add("slug", "pattern", "slug must contain only lowercase letters, digits and single hyphens")
	}

	if c.Niche != NicheCleaning {
		v.add("niche", "literal", fmt.Sprintf("niche must be %q", NicheCleaning))
	}
	if strings.TrimSpace(c.TemplateID) == "" {
		v.add("templateId", "required", "templateId is required")
	}

	v.required("business.name", c.Business.Name)
	v.required("business.city", c.Business.City)
	v.required("business.phone", c.Business.Phone)
	if v.required("business.state", c.Business.State) && utf8.RuneCountInString(c.Business.State) != stateLength {
		v.add("business.state", "length", "state must be exactly 2 characters")
	}

	v.required("placeId", c.PlaceID)

	if v.required("offer.shortText", c.Offer.ShortText) && utf8.RuneCountInString(c.Offer.ShortText) > maxOfferLength {
		v.add("offer.shortText", "max_length", fmt.Sprintf("offer must be at most %d characters", maxOfferLength))
	}

	if c.Branding.PrimaryColor != "" && !IsHexColor(c.Branding.PrimaryColor) {
		v.add("branding.primaryColor", "hex_color", "primaryColor must be a 3- or 6-digit hex color")
	}
	if c.Branding.AccentColor != "" && !IsHexColor(c.Branding.AccentColor) {
		v.add("branding.accentColor", "hex_color", "accentColor must be a 3- or 6-digit hex color")
	}

	switch n := len(c.Services); {
	case n < MinServices:
		v.add("services", "min_items", fmt.Sprintf("insufficient services: %d given, at least %d required", n, MinServices))
	case n > MaxServices:
		v.add("services", "max_items", fmt.Sprintf("too many services: %d given, at most %d allowed", n, MaxServices))
	}
	for i, s := range c.Services {
		v.required(fmt.Sprintf("services[%d].name", i), s.Name)
	}

	switch n := len(c.AreasServed); {
	case n < MinAreas:
		v.add("areasServed", "min_items", fmt.Sprintf("insufficient areas: %d given, at least %d required", n, MinAreas))
	case n > MaxAreas:
		v.add("areasServed", "max_items", fmt.Sprintf("too many areas: %d given, at most %d allowed", n, MaxAreas))
	}
	for i, a := range c.AreasServed {
		v.required(fmt.Sprintf("areasServed[%d]", i), a)
	}

	if m := c.Map; m != nil {
		if m.Lat != nil && (*m.Lat < -90 || *m.Lat > 90) {
			v.add("map.lat", "range", "lat must be between -90 and 90")
		}
		if m.Lng != nil && (*m.Lng < -180 || *m.Lng > 180) {
			v.add("map.lng", "range", "lng must be between -180 and 180")
		}
		if m.RadiusMiles <= 0 {
			v.add("map.radiusMiles", "positive", "radiusMiles must be greater than 0")
		}
	}

	for i, r := range c.SampleReviews {
		v.required(fmt.Sprintf("sampleReviews[%d].name", i), r.Name)
		v.required(fmt.Sprintf("sampleReviews[%d].text", i), r.Text)
		if r.Stars < 1 || r.Stars > 5 {
			v.add(fmt.Sprintf("sampleReviews[%d].stars", i), "range", "stars must be between 1 and 5")
		}
	}

	return v.err()
}

type validator struct {
	violations []Violation
}

func (v *validator) add(field, rule, msg string) {
	v.violations = append(v.violations, Violation{Field: field, Rule: rule, Message: msg})
}

// required records a violation for blank values and reports whether value was present.
func (v *validator) required(field, value string) bool {
	if strings.TrimSpace(value) == "" {
		v.add(field, "required", field+" is required")
		return false
	}
	return true
}

func (v *validator) err() error {
	if len(v.violations) == 0 {
		return nil
	}
	return &ValidationError{Violations: v.violations}
}
