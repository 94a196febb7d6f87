package analytics

import "sort"

// Tier marks the top three leaderboard positions.
type Tier string

const (
	TierGold   Tier = "gold"
	TierSilver Tier = "silver"
	TierBronze Tier = "bronze"
	TierNone   Tier = "none"
)

// RankMetric selects what a leaderboard is ordered by.
type RankMetric string

const (
	// MetricScore orders by the weighted score (the default leaderboard).
	MetricScore RankMetric = "score"
	// MetricClicks orders by raw total clicks (plain performance tables).
	MetricClicks RankMetric = "clicks"
)

// RankOwners stable-sorts the aggregates descending by the chosen
// metric and assigns dense 1-based ranks and medal tiers. Ties keep the
// input order (first seen wins the earlier rank), so repeated calls on
// identical input produce identical output.
func RankOwners(aggs []OwnerAggregate, metric RankMetric) []OwnerAggregate {
	ranked := make([]OwnerAggregate, len(aggs))
	copy(ranked, aggs)

	switch metric {
	case MetricClicks:
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].TotalClicks > ranked[j].TotalClicks
		})
	default:
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].Score > ranked[j].Score
		})
	}

	for i := range ranked {
		ranked[i].Rank = i + 1
		ranked[i].Tier = tierForRank(i + 1)
	}
	return ranked
}

// RankProducts stable-sorts product rollups descending by total clicks.
func RankProducts(aggs []ProductAggregate) []ProductAggregate {
	ranked := make([]ProductAggregate, len(aggs))
	copy(ranked, aggs)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalClicks > ranked[j].TotalClicks
	})
	return ranked
}

func tierForRank(rank int) Tier {
	switch rank {
	case 1:
		return TierGold
	case 2:
		return TierSilver
	case 3:
		return TierBronze
	default:
		return TierNone
	}
}
