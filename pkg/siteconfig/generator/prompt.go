package generator

import (
	"fmt"
	"strings"

	"github.com/tendant/simple-site/pkg/siteconfig"
)

// Prompt is a single request to a language model.
type Prompt struct {
	System string
	User   string
}

const clientInfoSystem = `You write marketing copy for local cleaning businesses.
Respond with a single JSON object and nothing else, using exactly these keys:
{
  "services": ["service name", ...],            // 4 to 8 services
  "areasServed": ["neighborhood or town", ...],  // 3 to 10 areas near the business
  "offer": "short promotional offer",            // under 120 characters
  "branding": {"primaryColor": "#RRGGBB", "accentColor": "#RRGGBB"},
  "hours": "opening hours",
  "sampleReviews": [{"name": "First L.", "text": "...", "stars": 5}, ...]  // 3 reviews
}`

const descriptionSystem = `You build website content for local cleaning businesses from a free-text description.
Respond with a single JSON object and nothing else, using exactly these keys:
{
  "business": {"name": "...", "city": "...", "state": "two-letter code", "phone": "..."},
  "services": [{"name": "...", "description": "one sentence"}, ...],  // 4 to 6 services
  "areasServed": ["...", ...],                                         // 5 to 15 areas
  "offer": "short promotional offer",
  "branding": {"primaryColor": "#RRGGBB", "accentColor": "#RRGGBB"},
  "hours": "opening hours",
  "sampleReviews": [{"name": "First L.", "text": "...", "stars": 5}, ...]  // 3 to 5 reviews
}
Use only facts stated in the description for the business block.`

func clientInfoPrompt(info siteconfig.ClientInfo) Prompt {
	var b strings.Builder
	fmt.Fprintf(&b, "Business name: %s\n", strings.TrimSpace(info.BusinessName))
	fmt.Fprintf(&b, "Location: %s, %s\n", strings.TrimSpace(info.City), strings.TrimSpace(info.State))
	if phone := strings.TrimSpace(info.Phone); phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", phone)
	}
	if desc := strings.TrimSpace(info.Description); desc != "" {
		fmt.Fprintf(&b, "About the business: %s\n", desc)
	}
	return Prompt{System: clientInfoSystem, User: b.String()}
}

func descriptionPrompt(req siteconfig.DescriptionRequest) Prompt {
	return Prompt{
		System: descriptionSystem,
		User:   "Description:\n" + strings.TrimSpace(req.Description),
	}
}
