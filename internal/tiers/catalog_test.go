package tiers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupKnownKeys(t *testing.T) {
	catalog := DefaultCatalog()

	for _, key := range catalog.Keys() {
		tier, ok := catalog.Lookup(key)
		assert.True(t, ok)
		assert.Equal(t, key, string(tier.Key))
		assert.NotEmpty(t, tier.DisplayName)
		assert.NotEmpty(t, tier.ColorToken)
		assert.NotEmpty(t, tier.SupportHours)
		assert.NotEmpty(t, tier.SeverityLevels)
		assert.Positive(t, tier.AuthorizedContactLimit)
		assert.Positive(t, tier.TenantLimit)
	}
}

func TestLookupUnknownKeyFallsBackToFirstEntry(t *testing.T) {
	catalog := DefaultCatalog()

	tier, ok := catalog.Lookup("unknown-tier")
	assert.False(t, ok)
	assert.Equal(t, catalog.First(), tier)
	assert.Equal(t, TierBronze, tier.Key)

	tier, ok = catalog.Lookup("")
	assert.False(t, ok)
	assert.Equal(t, TierBronze, tier.Key)
}

func TestCatalogOrderIsStable(t *testing.T) {
	catalog := DefaultCatalog()
	assert.Equal(t, []string{"bronze", "silver", "gold", "platinum"}, catalog.Keys())
}

func TestBronzeContactLimit(t *testing.T) {
	catalog := DefaultCatalog()
	bronze, ok := catalog.Lookup("bronze")
	assert.True(t, ok)
	assert.Equal(t, 2, bronze.AuthorizedContactLimit)
}

func TestPlatinumHasUnlimitedRequests(t *testing.T) {
	catalog := DefaultCatalog()
	platinum, ok := catalog.Lookup("platinum")
	assert.True(t, ok)
	assert.Equal(t, UnlimitedRequests, platinum.IncludedRequestCount)
	assert.True(t, platinum.CriticalSituationSupport)
}
