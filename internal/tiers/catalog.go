// Package tiers provides the static support tier catalog.
package tiers

// TierKey identifies a support plan level
type TierKey string

const (
	TierBronze   TierKey = "bronze"
	TierSilver   TierKey = "silver"
	TierGold     TierKey = "gold"
	TierPlatinum TierKey = "platinum"
)

// UnlimitedRequests marks a tier without a request quota
const UnlimitedRequests = 0

// Definition describes the fixed attributes of one support tier
type Definition struct {
	Key                      TierKey
	DisplayName              string
	ColorToken               string
	SupportHours             string
	SeverityLevels           []string
	AuthorizedContactLimit   int
	TenantLimit              int
	IncludedRequestCount     int
	CriticalSituationSupport bool
	Products                 []string
}

// Catalog is an ordered, read-only set of tier definitions. The entry
// order is part of the contract: an unknown key resolves to the first
// entry.
type Catalog struct {
	entries []Definition
}

// DefaultCatalog returns the built-in tier catalog
func DefaultCatalog() *Catalog {
	return &Catalog{
		entries: []Definition{
			{
				Key:                      TierBronze,
				DisplayName:              "Bronze",
				ColorToken:               "#cd7f32",
				SupportHours:             "Mo-Fr 9:00-17:00",
				SeverityLevels:           []string{"C"},
				AuthorizedContactLimit:   2,
				TenantLimit:              1,
				IncludedRequestCount:     5,
				CriticalSituationSupport: false,
				Products:                 []string{"Microsoft 365"},
			},
			{
				Key:                      TierSilver,
				DisplayName:              "Silver",
				ColorToken:               "#8e9ba5",
				SupportHours:             "Mo-Fr 7:00-19:00",
				SeverityLevels:           []string{"B", "C"},
				AuthorizedContactLimit:   4,
				TenantLimit:              2,
				IncludedRequestCount:     15,
				CriticalSituationSupport: false,
				Products:                 []string{"Microsoft 365", "Microsoft Entra ID"},
			},
			{
				Key:                      TierGold,
				DisplayName:              "Gold",
				ColorToken:               "#d4af37",
				SupportHours:             "24x7",
				SeverityLevels:           []string{"A", "B", "C"},
				AuthorizedContactLimit:   6,
				TenantLimit:              5,
				IncludedRequestCount:     30,
				CriticalSituationSupport: true,
				Products:                 []string{"Microsoft 365", "Microsoft Entra ID", "Microsoft Azure"},
			},
			{
				Key:                      TierPlatinum,
				DisplayName:              "Platinum",
				ColorToken:               "#5b6770",
				SupportHours:             "24x7",
				SeverityLevels:           []string{"A", "B", "C"},
				AuthorizedContactLimit:   10,
				TenantLimit:              10,
				IncludedRequestCount:     UnlimitedRequests,
				CriticalSituationSupport: true,
				Products:                 []string{"Microsoft 365", "Microsoft Entra ID", "Microsoft Azure", "Dynamics 365"},
			},
		},
	}
}

// Lookup returns the definition for key. An unknown key resolves to the
// first catalog entry; the returned bool reports whether the key matched
// so callers can record the fallback without changing output.
func (c *Catalog) Lookup(key string) (Definition, bool) {
	for _, entry := range c.entries {
		if string(entry.Key) == key {
			return entry, true
		}
	}
	return c.entries[0], false
}

// First returns the fallback entry
func (c *Catalog) First() Definition {
	return c.entries[0]
}

// Keys returns the tier keys in catalog order
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.entries))
	for _, entry := range c.entries {
		keys = append(keys, string(entry.Key))
	}
	return keys
}
