package siteconfig

import (
	"net/url"
	"strings"
)

// ReviewURLBase is the external write-a-review endpoint keyed by place ID.
const ReviewURLBase = "https://search.google.com/local/writereview"

// ReviewURL builds the review deep-link for a place ID.
func ReviewURL(placeID string) (string, error) {
	if strings.TrimSpace(placeID) == "" {
		return "", &ValidationError{Violations: []Violation{{
			Field:   "placeId",
			Rule:    "required",
			Message: "placeId is required to build a review link",
		}}}
	}
	q := url.Values{}
	q.Set("placeid", placeID)
	return ReviewURLBase + "?" + q.Encode(), nil
}

// PreviewURL joins the preview domain and slug into the public preview address.
func PreviewURL(domain, slug string) string {
	return strings.TrimRight(domain, "/") + "/" + slug
}
