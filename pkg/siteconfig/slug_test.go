package siteconfig_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tendant/simple-site/pkg/siteconfig"
)

func TestDeriveSlug(t *testing.T) {
	tests := []struct {
		name                string
		business, city, st string
		want                string
	}{
		{name: "basic", business: "Elite Cleaning", city: "LA", st: "ca", want: "elite-cleaning-la-ca"},
		{name: "punctuation collapses", business: "A+ Maids & Co.", city: "St. Louis", st: "MO", want: "a-maids-co-st-louis-mo"},
		{name: "diacritics folded", business: "Café Limpieza", city: "San José", st: "CA", want: "cafe-limpieza-san-jose-ca"},
		{name: "leading and trailing junk", business: "  --Sparkle!!", city: " Austin ", st: "TX--", want: "sparkle-austin-tx"},
		{name: "digits kept", business: "24/7 Cleaners", city: "Reno", st: "NV", want: "24-7-cleaners-reno-nv"},
		{name: "nothing usable", business: "!!!", city: "", st: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, siteconfig.DeriveSlug(tt.business, tt.city, tt.st))
		})
	}
}

func TestDeriveSlug_Deterministic(t *testing.T) {
	a := siteconfig.DeriveSlug("Elite Cleaning", "Los Angeles", "CA")
	b := siteconfig.DeriveSlug("Elite Cleaning", "Los Angeles", "CA")
	assert.Equal(t, a, b)
	assert.Equal(t, a, siteconfig.DeriveSlug("ELITE   cleaning", "los-angeles", "ca"))
}

func TestDeriveSlug_Truncates(t *testing.T) {
	long := strings.Repeat("sparkling ", 20)
	slug := siteconfig.DeriveSlug(long, "Los Angeles", "CA")

	assert.LessOrEqual(t, len(slug), siteconfig.MaxSlugLength)
	assert.False(t, strings.HasSuffix(slug, "-"))
	assert.True(t, strings.HasPrefix(slug, "sparkling-sparkling"))
	for _, word := range strings.Split(slug, "-") {
		assert.Equal(t, "sparkling", word, "truncation must not split a word")
	}

	c := siteconfig.Config{Slug: slug}
	err := siteconfig.Validate(&c)
	if err != nil {
		assert.NotContains(t, err.Error(), "slug:")
	}
}
