package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftlab/beacon-analytics/internal/models"
)

// threeOwnerFixture builds the canonical scenario: A has 10 clicks, 2
// content pieces and 1 campaign; B has 100 clicks, no content and 3
// campaigns; C has no clicks, 5 content pieces and 1 campaign.
func threeOwnerFixture() ([]models.Campaign, []models.Link, []models.ContentRecord) {
	campaigns := []models.Campaign{
		campaign("a1", "A", "", "la", testBase),
		campaign("b1", "B", "", "lb", testBase),
		campaign("b2", "B", "", "", testBase),
		campaign("b3", "B", "", "", testBase),
		campaign("c1", "C", "", "", testBase),
	}
	links := []models.Link{
		{Code: "la", TotalClicks: 10, UniqueClicks: 10},
		{Code: "lb", TotalClicks: 100, UniqueClicks: 80},
	}
	var content []models.ContentRecord
	for _, id := range []string{"x1", "x2"} {
		content = append(content, models.ContentRecord{ID: id, CampaignID: "a1", CreatedAt: testBase})
	}
	for _, id := range []string{"y1", "y2", "y3", "y4", "y5"} {
		content = append(content, models.ContentRecord{ID: id, CampaignID: "c1", CreatedAt: testBase})
	}
	return campaigns, links, content
}

func TestLeaderboardScoringAndTiers(t *testing.T) {
	campaigns, links, content := threeOwnerFixture()

	board := Leaderboard(campaigns, links, content, Window{}, MetricScore)
	require.Len(t, board, 3)

	assert.Equal(t, "B", board[0].OwnerKey)
	assert.Equal(t, "C", board[1].OwnerKey)
	assert.Equal(t, "A", board[2].OwnerKey)

	// B maxes out both the clicks and campaigns axes.
	assert.InDelta(t, 70.0, board[0].Score, 1e-9)
	// C: content 100, campaigns 1/3 of max.
	assert.InDelta(t, 0.3*100+0.2*100.0/3, board[1].Score, 1e-9)
	// A: clicks 10, content 40, campaigns 1/3 of max.
	assert.InDelta(t, 0.5*10+0.3*40+0.2*100.0/3, board[2].Score, 1e-9)

	assert.Equal(t, TierGold, board[0].Tier)
	assert.Equal(t, TierSilver, board[1].Tier)
	assert.Equal(t, TierBronze, board[2].Tier)
}

func TestLeaderboardRankDensity(t *testing.T) {
	campaigns, links, content := threeOwnerFixture()

	board := Leaderboard(campaigns, links, content, Window{}, MetricScore)
	for i, row := range board {
		assert.Equal(t, i+1, row.Rank)
	}
}

func TestLeaderboardDeterminism(t *testing.T) {
	campaigns, links, content := threeOwnerFixture()

	first := Leaderboard(campaigns, links, content, Window{}, MetricScore)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Leaderboard(campaigns, links, content, Window{}, MetricScore))
	}
}

func TestLeaderboardByClicks(t *testing.T) {
	campaigns, links, content := threeOwnerFixture()

	board := Leaderboard(campaigns, links, content, Window{}, MetricClicks)
	require.Len(t, board, 3)
	assert.Equal(t, "B", board[0].OwnerKey)
	assert.Equal(t, "A", board[1].OwnerKey)
	assert.Equal(t, "C", board[2].OwnerKey)
}

func TestLeaderboardTieBreakKeepsInputOrder(t *testing.T) {
	// Identical raw counts everywhere: every owner scores the same, so
	// the stable sort must keep first-seen order.
	campaigns := []models.Campaign{
		campaign("1", "first", "", "", testBase),
		campaign("2", "second", "", "", testBase),
		campaign("3", "third", "", "", testBase),
	}

	board := Leaderboard(campaigns, nil, nil, Window{}, MetricScore)
	require.Len(t, board, 3)
	assert.Equal(t, []string{"first", "second", "third"},
		[]string{board[0].OwnerKey, board[1].OwnerKey, board[2].OwnerKey})
	assert.Equal(t, []int{1, 2, 3}, []int{board[0].Rank, board[1].Rank, board[2].Rank})
}

func TestApplyScoresBounds(t *testing.T) {
	campaigns, links, content := threeOwnerFixture()
	aggs := AggregateByOwner(campaigns, links, content, Window{})
	ApplyScores(aggs)

	for _, a := range aggs {
		assert.GreaterOrEqual(t, a.Score, 0.0)
		assert.LessOrEqual(t, a.Score, 100.0)
	}
}

func TestApplyScoresAllZeroAxis(t *testing.T) {
	aggs := []OwnerAggregate{
		{OwnerKey: "a", CampaignCount: 1},
		{OwnerKey: "b", CampaignCount: 1},
	}
	ApplyScores(aggs)
	// Clicks and content axes are all-zero; only the campaign axis
	// contributes, and both owners share its maximum.
	for _, a := range aggs {
		assert.InDelta(t, 20.0, a.Score, 1e-9)
	}
}

func TestProductRollupRanksByClicks(t *testing.T) {
	campaigns := []models.Campaign{
		campaign("c1", "alice", "small", "l1", testBase),
		campaign("c2", "bob", "big", "l2", testBase),
	}
	links := []models.Link{
		{Code: "l1", TotalClicks: 5, UniqueClicks: 5},
		{Code: "l2", TotalClicks: 50, UniqueClicks: 40},
	}

	rollup := ProductRollup(campaigns, links, Window{})
	require.Len(t, rollup, 2)
	assert.Equal(t, "big", rollup[0].ProductID)
	assert.Equal(t, "small", rollup[1].ProductID)
}
