// Package analytics is the performance aggregation and ranking engine:
// it joins campaign, link and content snapshots, rolls them up per
// affiliate or per product, scores and ranks the result, and projects
// provider credit balances. Every function is a pure computation over
// caller-supplied slices: no I/O, no clock, no shared state, and no
// failure mode beyond an empty result for empty input.
package analytics

import "github.com/driftlab/beacon-analytics/internal/models"

// Leaderboard aggregates, scores and ranks affiliates in one call. The
// window restricts which campaigns participate; the metric selects the
// sort axis. Output is fully deterministic for identical input.
func Leaderboard(campaigns []models.Campaign, links []models.Link, content []models.ContentRecord, w Window, metric RankMetric) []OwnerAggregate {
	aggs := AggregateByOwner(campaigns, links, content, w)
	ApplyScores(aggs)
	return RankOwners(aggs, metric)
}

// ProductRollup aggregates and ranks product performance in one call.
func ProductRollup(campaigns []models.Campaign, links []models.Link, w Window) []ProductAggregate {
	return RankProducts(AggregateByProduct(campaigns, links, w))
}
