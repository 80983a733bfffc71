package generator

import (
	"fmt"
	"strings"

	"github.com/tendant/simple-site/pkg/siteconfig"
)

// Bounds applied to description-mode output. The service floor matches the
// persisted schema minimum so a shaped candidate never needs placeholder padding.
const (
	DescriptionMinServices = siteconfig.MinServices
	DescriptionMaxServices = 6
	DescriptionMinAreas    = 5
	DescriptionMaxAreas    = siteconfig.MaxAreas
	DescriptionMinReviews  = 3
	DescriptionMaxReviews  = 5
)

// defaultServices pads short service lists.
var defaultServices = []siteconfig.ServiceEntry{
	{Name: "Standard Home Cleaning", Description: "Recurring dusting, vacuuming, mopping and kitchen and bath upkeep."},
	{Name: "Deep Cleaning", Description: "Top-to-bottom detail work for baseboards, fixtures, appliances and grime build-up."},
	{Name: "Move-In/Move-Out Cleaning", Description: "Empty-home cleaning that gets deposits back and new keys ready."},
	{Name: "Office Cleaning", Description: "After-hours cleaning for small offices, break rooms and restrooms."},
	{Name: "Post-Construction Cleaning", Description: "Dust and debris removal after remodels and new builds."},
	{Name: "Window Cleaning", Description: "Streak-free interior and exterior glass, tracks and sills."},
}

// cannedReviews returns sample reviews that mention the business.
func cannedReviews(name, city string) []siteconfig.Review {
	if name == "" {
		name = "this team"
	}
	where := "in town"
	if city != "" {
		where = "in " + city
	}
	return []siteconfig.Review{
		{Name: "Sarah M.", Text: fmt.Sprintf("%s did an amazing job. Best cleaning service %s!", name, where), Stars: 5},
		{Name: "David R.", Text: fmt.Sprintf("Booked %s for a deep clean and they exceeded every expectation.", name), Stars: 5},
		{Name: "Linda K.", Text: fmt.Sprintf("Reliable, friendly and thorough. Glad we found %s %s.", name, where), Stars: 5},
		{Name: "Carlos P.", Text: "On time, fairly priced and the house looked fantastic.", Stars: 4},
		{Name: "Amy W.", Text: "They took care of every detail. Highly recommend.", Stars: 5},
	}
}

// fallbackAreas are appended to client-info output with fewer than two areas.
func fallbackAreas(city string) []string {
	return []string{strings.TrimSpace(city + " Metro"), "Surrounding Areas"}
}

// descriptionAreas pads description-mode output.
func descriptionAreas(city string) []string {
	return []string{city, strings.TrimSpace(city + " Metro"), "Surrounding Areas", "Downtown", "Suburbs"}
}
