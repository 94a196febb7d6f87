package analytics

import "github.com/driftlab/beacon-analytics/internal/models"

// LinkIndex maps a tracking-link code to its click counters so that
// joining campaigns to links is a single lookup per campaign.
type LinkIndex map[string]models.Link

// BuildLinkIndex indexes links by code. External exports can contain
// duplicate codes; the last occurrence wins.
func BuildLinkIndex(links []models.Link) LinkIndex {
	ix := make(LinkIndex, len(links))
	for _, l := range links {
		ix[l.Code] = l
	}
	return ix
}

// Lookup resolves a campaign's link code. An empty or unmapped code
// yields a zero-valued Link: a campaign with no resolvable link simply
// contributes zero clicks.
func (ix LinkIndex) Lookup(code string) models.Link {
	if code == "" {
		return models.Link{}
	}
	return ix[code]
}

// campaignGroups holds campaigns bucketed by a grouping key with the
// keys kept in first-seen order, so downstream ranking stays
// deterministic for identical input.
type campaignGroups struct {
	order []string
	byKey map[string][]models.Campaign
}

func groupCampaigns(campaigns []models.Campaign, key func(models.Campaign) string) *campaignGroups {
	g := &campaignGroups{byKey: make(map[string][]models.Campaign)}
	for _, c := range campaigns {
		k := key(c)
		if k == "" {
			continue
		}
		if _, ok := g.byKey[k]; !ok {
			g.order = append(g.order, k)
		}
		g.byKey[k] = append(g.byKey[k], c)
	}
	return g
}

// GroupByOwner buckets campaigns by their owning user, insertion order
// preserved.
func GroupByOwner(campaigns []models.Campaign) map[string][]models.Campaign {
	return groupCampaigns(campaigns, func(c models.Campaign) string { return c.OwnerUserID }).byKey
}

// GroupByProduct buckets campaigns by promoted product. Campaigns that
// do not promote a product are excluded.
func GroupByProduct(campaigns []models.Campaign) map[string][]models.Campaign {
	return groupCampaigns(campaigns, func(c models.Campaign) string { return c.ProductID }).byKey
}
