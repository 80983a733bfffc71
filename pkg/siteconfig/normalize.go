package siteconfig

import "strings"

// Cardinality bounds enforced by the persisted schema.
const (
	MinServices = 4
	MaxServices = 10
	MinAreas    = 2
	MaxAreas    = 15
)

// DefaultRadiusMiles is applied to any map block without a radius.
const DefaultRadiusMiles = 15

// Fallback theme colors used when a candidate supplies none.
const (
	FallbackPrimaryColor = "#2563EB"
	FallbackAccentColor  = "#F59E0B"
)

// Placeholder values used by the padding floor.
const (
	PlaceholderService = "Service"
	PlaceholderArea    = "Area"
)

// DefaultReviews is the canned review set supplied to candidates without reviews.
func DefaultReviews() []Review {
	return []Review{
		{Name: "Maria G.", Text: "Friendly team, spotless results. Booking was easy and they showed up on time.", Stars: 5},
		{Name: "James T.", Text: "Great attention to detail. Our place has never looked better.", Stars: 5},
		{Name: "Priya K.", Text: "Reliable and fairly priced. We've booked them every month since.", Stars: 4},
	}
}

// NormalizeOptions tunes Normalize.
type NormalizeOptions struct {
	// PadCollections appends placeholder services and areas until the
	// schema minimums are met. When false, short collections are left as-is
	// and Validate rejects them.
	PadCollections bool
}

// DefaultNormalizeOptions returns the options used by Normalize.
func DefaultNormalizeOptions() NormalizeOptions {
	return NormalizeOptions{PadCollections: true}
}

// Normalize fills defaults, clamps collections and pads them to the schema
// minimums. It never makes an invalid business identity valid; it only
// guarantees that every block exists for Validate to inspect.
//
// Normalize(Normalize(c)) equals Normalize(c).
func Normalize(c Config) Config {
	return NormalizeWith(c, DefaultNormalizeOptions())
}

// NormalizeWith is Normalize with explicit options.
func NormalizeWith(c Config, opts NormalizeOptions) Config {
	out := c.Clone()

	out.Business.Name = strings.TrimSpace(out.Business.Name)
	out.Business.City = strings.TrimSpace(out.Business.City)
	out.Business.State = strings.ToUpper(strings.TrimSpace(out.Business.State))
	out.Business.Phone = strings.TrimSpace(out.Business.Phone)
	out.PlaceID = strings.TrimSpace(out.PlaceID)

	if out.Niche == "" {
		out.Niche = NicheCleaning
	}
	if out.TemplateID == "" {
		out.TemplateID = DefaultTemplateID
	}

	if out.Branding.PrimaryColor == "" {
		out.Branding.PrimaryColor = FallbackPrimaryColor
	}
	if out.Branding.AccentColor == "" {
		out.Branding.AccentColor = FallbackAccentColor
	}

	if len(out.Services) > MaxServices {
		out.Services = out.Services[:MaxServices]
	}
	if len(out.AreasServed) > MaxAreas {
		out.AreasServed = out.AreasServed[:MaxAreas]
	}

	if out.Map == nil {
		out.Map = &MapBlock{}
	}
	if out.Map.RadiusMiles == 0 {
		out.Map.RadiusMiles = DefaultRadiusMiles
	}

	if len(out.SampleReviews) == 0 {
		out.SampleReviews = DefaultReviews()
	}

	if opts.PadCollections {
		for len(out.Services) < MinServices {
			out.Services = append(out.Services, ServiceEntry{Name: PlaceholderService})
		}
		for len(out.AreasServed) < MinAreas {
			out.AreasServed = append(out.AreasServed, PlaceholderArea)
		}
	}

	return out
}
