package siteconfig

// Request DTOs

// ClientInfo is the structured input for generation mode A.
type ClientInfo struct {
	BusinessName string `json:"businessName"`
	City         string `json:"city"`
	State        string `json:"state"`
	Phone        string `json:"phone"`
	PlaceID      string `json:"placeId"`
	Description  string `json:"description,omitempty"`
}

// DescriptionRequest is the free-text input for generation mode B.
type DescriptionRequest struct {
	Description string `json:"description"`
	PlaceID     string `json:"placeId,omitempty"`
}

// ListParams filters and caps List results. Search matches slug, business
// name and city case-insensitively. Limit <= 0 returns every match.
type ListParams struct {
	Search string
	Limit  int
}
