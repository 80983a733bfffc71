package siteconfig

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxSlugLength is the longest slug the schema accepts.
const MaxSlugLength = 100

// DeriveSlug builds the URL-safe identifier for a business. Letters are
// lower-cased and stripped of diacritics, and every run of other characters
// becomes a single hyphen. The result is deterministic but not unique.
func DeriveSlug(businessName, city, state string) string {
	joined := strings.Join([]string{businessName, city, state}, " ")

	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), joined)
	if err != nil {
		folded = joined
	}

	var b strings.Builder
	b.Grow(len(folded))
	pendingHyphen := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	return truncateSlug(b.String())
}

func truncateSlug(s string) string {
	if len(s) <= MaxSlugLength {
		return s
	}
	cut := s[:MaxSlugLength]
	// Back off to the previous word boundary unless the cut already lands on one.
	if s[MaxSlugLength] != '-' {
		if i := strings.LastIndexByte(cut, '-'); i > MaxSlugLength/2 {
			cut = cut[:i]
		}
	}
	return strings.TrimRight(cut, "-")
}
