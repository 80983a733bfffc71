package generator

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/tendant/simple-site/pkg/siteconfig"
)

// bundle is the content a model returns. Both modes decode into it; the
// business block is only read in description mode.
type bundle struct {
	Business      siteconfig.Business       `json:"business"`
	Services      []siteconfig.ServiceEntry `json:"services"`
	AreasServed   []string                  `json:"areasServed"`
	Offer         offerText                 `json:"offer"`
	Branding      siteconfig.Branding       `json:"branding"`
	Hours         string                    `json:"hours"`
	SampleReviews []siteconfig.Review       `json:"sampleReviews"`
}

// offerText accepts either "text" or {"shortText": "text"}.
type offerText string

func (o *offerText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*o = offerText(s)
		return nil
	}
	var obj struct {
		ShortText string `json:"shortText"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*o = offerText(obj.ShortText)
	return nil
}

// shapeClientInfo turns client-info output into a candidate. Identity fields
// come from the request, never from the model.
func shapeClientInfo(b bundle, info siteconfig.ClientInfo) siteconfig.Config {
	cfg := siteconfig.Config{
		Business: siteconfig.Business{
			Name:  strings.TrimSpace(info.BusinessName),
			City:  strings.TrimSpace(info.City),
			State: strings.TrimSpace(info.State),
			Phone: strings.TrimSpace(info.Phone),
		},
		PlaceID:       strings.TrimSpace(info.PlaceID),
		Offer:         siteconfig.Offer{ShortText: strings.TrimSpace(string(b.Offer))},
		Branding:      b.Branding,
		Hours:         strings.TrimSpace(b.Hours),
		SampleReviews: b.SampleReviews,
	}

	for _, s := range cleanServices(b.Services) {
		cfg.Services = append(cfg.Services, siteconfig.ServiceEntry{Name: s.Name})
	}
	for _, d := range defaultServices {
		if len(cfg.Services) >= siteconfig.MinServices {
			break
		}
		if !hasService(cfg.Services, d.Name) {
			cfg.Services = append(cfg.Services, siteconfig.ServiceEntry{Name: d.Name})
		}
	}

	cfg.AreasServed = cleanStrings(b.AreasServed)
	cfg.AreasServed = padStrings(cfg.AreasServed, fallbackAreas(cfg.Business.City), siteconfig.MinAreas)

	if len(cfg.SampleReviews) == 0 {
		cfg.SampleReviews = cannedReviews(cfg.Business.Name, cfg.Business.City)[:3]
	}

	return cfg
}

// shapeDescription clamps description-mode output to its tighter bounds.
func shapeDescription(b bundle, req siteconfig.DescriptionRequest) siteconfig.Config {
	state := strings.ToUpper(strings.TrimSpace(b.Business.State))
	if r := []rune(state); len(r) > 2 {
		state = string(r[:2])
	}

	cfg := siteconfig.Config{
		Business: siteconfig.Business{
			Name:  strings.TrimSpace(b.Business.Name),
			City:  strings.TrimSpace(b.Business.City),
			State: state,
			Phone: strings.TrimSpace(b.Business.Phone),
		},
		PlaceID: strings.TrimSpace(req.PlaceID),
		Offer:   siteconfig.Offer{ShortText: strings.TrimSpace(string(b.Offer))},
		Hours:   strings.TrimSpace(b.Hours),
	}

	cfg.Branding = b.Branding
	if !siteconfig.IsHexColor(cfg.Branding.PrimaryColor) {
		cfg.Branding.PrimaryColor = siteconfig.FallbackPrimaryColor
	}
	if !siteconfig.IsHexColor(cfg.Branding.AccentColor) {
		cfg.Branding.AccentColor = siteconfig.FallbackAccentColor
	}

	cfg.Services = cleanServices(b.Services)
	for _, d := range defaultServices {
		if len(cfg.Services) >= DescriptionMinServices {
			break
		}
		if !hasService(cfg.Services, d.Name) {
			cfg.Services = append(cfg.Services, d)
		}
	}
	if len(cfg.Services) > DescriptionMaxServices {
		cfg.Services = cfg.Services[:DescriptionMaxServices]
	}

	cfg.AreasServed = padStrings(cleanStrings(b.AreasServed), descriptionAreas(cfg.Business.City), DescriptionMinAreas)
	if len(cfg.AreasServed) > DescriptionMaxAreas {
		cfg.AreasServed = cfg.AreasServed[:DescriptionMaxAreas]
	}

	cfg.SampleReviews = append([]siteconfig.Review(nil), b.SampleReviews...)
	for _, r := range cannedReviews(cfg.Business.Name, cfg.Business.City) {
		if len(cfg.SampleReviews) >= DescriptionMinReviews {
			break
		}
		cfg.SampleReviews = append(cfg.SampleReviews, r)
	}
	if len(cfg.SampleReviews) > DescriptionMaxReviews {
		cfg.SampleReviews = cfg.SampleReviews[:DescriptionMaxReviews]
	}

	return cfg
}

func cleanServices(in []siteconfig.ServiceEntry) []siteconfig.ServiceEntry {
	var out []siteconfig.ServiceEntry
	for _, s := range in {
		s.Name = strings.TrimSpace(s.Name)
		s.Description = strings.TrimSpace(s.Description)
		if s.Name == "" || hasService(out, s.Name) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func hasService(list []siteconfig.ServiceEntry, name string) bool {
	for _, s := range list {
		if strings.EqualFold(s.Name, name) {
			return true
		}
	}
	return false
}

func cleanStrings(in []string) []string {
	var out []string
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || containsFold(out, s) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// padStrings appends fallbacks not already present until list has min entries.
func padStrings(list, fallbacks []string, min int) []string {
	for _, f := range fallbacks {
		if len(list) >= min {
			break
		}
		f = strings.TrimSpace(f)
		if f == "" || containsFold(list, f) {
			continue
		}
		list = append(list, f)
	}
	return list
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
