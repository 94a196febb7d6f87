package analytics

import (
	"math"

	"github.com/driftlab/beacon-analytics/internal/models"
)

// OwnerAggregate is one affiliate's row in a performance table or
// leaderboard. Score, Rank and Tier are filled in by ApplyScores and
// RankOwners; the aggregation itself only produces the raw counts.
type OwnerAggregate struct {
	OwnerKey             string  `json:"owner_key"`
	CampaignCount        int     `json:"campaign_count"`
	DistinctProductCount int     `json:"distinct_product_count"`
	TotalClicks          int64   `json:"total_clicks"`
	UniqueClicks         int64   `json:"unique_clicks"`
	ContentCount         int     `json:"content_count"`
	Score                float64 `json:"score"`
	Rank                 int     `json:"rank"`
	Tier                 Tier    `json:"tier"`
}

// ProductAggregate is one product's row in a performance rollup.
type ProductAggregate struct {
	ProductID              string `json:"product_id"`
	CampaignCount          int    `json:"campaign_count"`
	DistinctAffiliateCount int    `json:"distinct_affiliate_count"`
	TotalClicks            int64  `json:"total_clicks"`
	UniqueClicks           int64  `json:"unique_clicks"`
}

// AggregateByOwner rolls campaigns, their tracking links and their
// content up into one row per owning affiliate. Only owners with at
// least one campaign inside the window are emitted; rows come out in
// first-seen campaign order.
func AggregateByOwner(campaigns []models.Campaign, links []models.Link, content []models.ContentRecord, w Window) []OwnerAggregate {
	campaigns = FilterCampaigns(campaigns, w)
	ix := BuildLinkIndex(links)
	groups := groupCampaigns(campaigns, func(c models.Campaign) string { return c.OwnerUserID })
	contentPerCampaign := countContentByCampaign(content)

	result := make([]OwnerAggregate, 0, len(groups.order))
	for _, owner := range groups.order {
		group := groups.byKey[owner]
		agg := OwnerAggregate{OwnerKey: owner, CampaignCount: len(group), Tier: TierNone}

		products := make(map[string]struct{})
		for _, c := range group {
			if c.ProductID != "" {
				products[c.ProductID] = struct{}{}
			}
			total, unique := clickContribution(ix, c.LinkCode)
			agg.TotalClicks += total
			agg.UniqueClicks += unique
			agg.ContentCount += contentPerCampaign[c.ID]
		}
		agg.DistinctProductCount = len(products)
		result = append(result, agg)
	}
	return result
}

// AggregateByProduct rolls campaigns and their tracking links up into
// one row per promoted product. Campaigns without a product are skipped
// entirely; products nobody promoted are never emitted.
func AggregateByProduct(campaigns []models.Campaign, links []models.Link, w Window) []ProductAggregate {
	campaigns = FilterCampaigns(campaigns, w)
	ix := BuildLinkIndex(links)
	groups := groupCampaigns(campaigns, func(c models.Campaign) string { return c.ProductID })

	result := make([]ProductAggregate, 0, len(groups.order))
	for _, productID := range groups.order {
		group := groups.byKey[productID]
		agg := ProductAggregate{ProductID: productID, CampaignCount: len(group)}

		affiliates := make(map[string]struct{})
		for _, c := range group {
			if c.OwnerUserID != "" {
				affiliates[c.OwnerUserID] = struct{}{}
			}
			total, unique := clickContribution(ix, c.LinkCode)
			agg.TotalClicks += total
			agg.UniqueClicks += unique
		}
		agg.DistinctAffiliateCount = len(affiliates)
		result = append(result, agg)
	}
	return result
}

// countContentByCampaign counts content records per campaign id in a
// single pass so each group lookup is O(1).
func countContentByCampaign(content []models.ContentRecord) map[string]int {
	counts := make(map[string]int, len(content))
	for _, cr := range content {
		if cr.CampaignID == "" {
			continue
		}
		counts[cr.CampaignID]++
	}
	return counts
}

// clickContribution resolves one campaign's click counts. Counters from
// the tracking backend can be negative or inconsistent; negatives are
// zeroed and the unique count is clamped to the total.
func clickContribution(ix LinkIndex, code string) (total, unique int64) {
	l := ix.Lookup(code)
	total = clampCount(l.TotalClicks)
	unique = clampCount(l.UniqueClicks)
	if unique > total {
		unique = total
	}
	return total, unique
}

func clampCount(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}

// clampUSD zeroes negative or NaN monetary values coming from external
// billing exports.
func clampUSD(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}
