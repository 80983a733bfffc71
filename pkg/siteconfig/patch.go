package siteconfig

// Patch is a partial update. Nil fields are left untouched. Object blocks
// merge field by field; lists replace the stored list wholesale.
//
// Slug, Niche and TemplateID are accepted so that request bodies decode, but
// ApplyPatch always keeps the stored values.
type Patch struct {
	Slug          *string         `json:"slug,omitempty"`
	Niche         *string         `json:"niche,omitempty"`
	TemplateID    *string         `json:"templateId,omitempty"`
	Business      *BusinessPatch  `json:"business,omitempty"`
	PlaceID       *string         `json:"placeId,omitempty"`
	Offer         *OfferPatch     `json:"offer,omitempty"`
	Branding      *BrandingPatch  `json:"branding,omitempty"`
	Services      *[]ServiceEntry `json:"services,omitempty"`
	AreasServed   *[]string       `json:"areasServed,omitempty"`
	Hours         *string         `json:"hours,omitempty"`
	Map           *MapPatch       `json:"map,omitempty"`
	SampleReviews *[]Review       `json:"sampleReviews,omitempty"`
}

// BusinessPatch updates individual business fields.
type BusinessPatch struct {
	Name  *string `json:"name,omitempty"`
	City  *string `json:"city,omitempty"`
	State *string `json:"state,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

// OfferPatch updates the offer.
type OfferPatch struct {
	ShortText *string `json:"shortText,omitempty"`
}

// BrandingPatch updates individual colors.
type BrandingPatch struct {
	PrimaryColor *string `json:"primaryColor,omitempty"`
	AccentColor  *string `json:"accentColor,omitempty"`
}

// MapPatch updates individual map fields.
type MapPatch struct {
	Lat         *float64 `json:"lat,omitempty"`
	Lng         *float64 `json:"lng,omitempty"`
	RadiusMiles *float64 `json:"radiusMiles,omitempty"`
}

// ApplyPatch merges p over existing and returns the result. existing is not
// modified. Identity fields always come from existing.
func ApplyPatch(existing Config, p Patch) Config {
	out := existing.Clone()

	if b := p.Business; b != nil {
		setString(&out.Business.Name, b.Name)
		setString(&out.Business.City, b.City)
		setString(&out.Business.State, b.State)
		setString(&out.Business.Phone, b.Phone)
	}
	setString(&out.PlaceID, p.PlaceID)
	if p.Offer != nil {
		setString(&out.Offer.ShortText, p.Offer.ShortText)
	}
	if b := p.Branding; b != nil {
		setString(&out.Branding.PrimaryColor, b.PrimaryColor)
		setString(&out.Branding.AccentColor, b.AccentColor)
	}
	if p.Services != nil {
		out.Services = append([]ServiceEntry{}, (*p.Services)...)
	}
	if p.AreasServed != nil {
		out.AreasServed = append([]string{}, (*p.AreasServed)...)
	}
	setString(&out.Hours, p.Hours)
	if m := p.Map; m != nil {
		if out.Map == nil {
			out.Map = &MapBlock{}
		}
		if m.Lat != nil {
			lat := *m.Lat
			out.Map.Lat = &lat
		}
		if m.Lng != nil {
			lng := *m.Lng
			out.Map.Lng = &lng
		}
		if m.RadiusMiles != nil {
			out.Map.RadiusMiles = *m.RadiusMiles
		}
	}
	if p.SampleReviews != nil {
		out.SampleReviews = append([]Review{}, (*p.SampleReviews)...)
	}

	out.Slug = existing.Slug
	out.Niche = existing.Niche
	out.TemplateID = existing.TemplateID
	return out
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
