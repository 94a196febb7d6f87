package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftlab/beacon-analytics/internal/models"
)

var testBase = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func campaign(id, owner, product, link string, created time.Time) models.Campaign {
	return models.Campaign{ID: id, OwnerUserID: owner, ProductID: product, LinkCode: link, CreatedAt: created}
}

func TestAggregateByOwner(t *testing.T) {
	campaigns := []models.Campaign{
		campaign("c1", "alice", "p1", "L1", testBase),
		campaign("c2", "alice", "p2", "L2", testBase),
		campaign("c3", "bob", "p1", "L1", testBase),
	}
	links := []models.Link{
		{Code: "L1", TotalClicks: 100, UniqueClicks: 60},
		{Code: "L2", TotalClicks: 10, UniqueClicks: 5},
	}
	content := []models.ContentRecord{
		{ID: "ct1", CampaignID: "c1", Compliance: models.ComplianceCompliant, CreatedAt: testBase},
		{ID: "ct2", CampaignID: "c1", Compliance: models.ComplianceNone, CreatedAt: testBase},
		{ID: "ct3", CampaignID: "c3", Compliance: models.ComplianceWarning, CreatedAt: testBase},
	}

	aggs := AggregateByOwner(campaigns, links, content, Window{})
	require.Len(t, aggs, 2)

	alice := aggs[0]
	assert.Equal(t, "alice", alice.OwnerKey)
	assert.Equal(t, 2, alice.CampaignCount)
	assert.Equal(t, 2, alice.DistinctProductCount)
	assert.Equal(t, int64(110), alice.TotalClicks)
	assert.Equal(t, int64(65), alice.UniqueClicks)
	assert.Equal(t, 2, alice.ContentCount)

	bob := aggs[1]
	assert.Equal(t, "bob", bob.OwnerKey)
	// Bob shares L1 with Alice; his campaign still contributes the full
	// link counts (traffic attribution, not link deduplication).
	assert.Equal(t, int64(100), bob.TotalClicks)
	assert.Equal(t, 1, bob.ContentCount)
}

func TestAggregateByOwnerUnresolvedLink(t *testing.T) {
	campaigns := []models.Campaign{
		campaign("c1", "alice", "", "missing", testBase),
		campaign("c2", "bob", "", "", testBase),
	}

	aggs := AggregateByOwner(campaigns, nil, nil, Window{})
	require.Len(t, aggs, 2)
	for _, a := range aggs {
		assert.Zero(t, a.TotalClicks)
		assert.Zero(t, a.UniqueClicks)
		assert.Equal(t, 1, a.CampaignCount)
	}
}

func TestAggregateByOwnerClampsMalformedLink(t *testing.T) {
	campaigns := []models.Campaign{
		campaign("c1", "alice", "", "bad-unique", testBase),
		campaign("c2", "bob", "", "negative", testBase),
	}
	links := []models.Link{
		{Code: "bad-unique", TotalClicks: 5, UniqueClicks: 9},
		{Code: "negative", TotalClicks: -3, UniqueClicks: -1},
	}

	aggs := AggregateByOwner(campaigns, links, nil, Window{})
	require.Len(t, aggs, 2)
	assert.Equal(t, int64(5), aggs[0].TotalClicks)
	assert.Equal(t, int64(5), aggs[0].UniqueClicks, "unique clamped to total")
	assert.Zero(t, aggs[1].TotalClicks)
	assert.Zero(t, aggs[1].UniqueClicks)
}

func TestAggregateByOwnerEmptyInput(t *testing.T) {
	aggs := AggregateByOwner(nil, nil, nil, Window{})
	assert.Empty(t, aggs)
}

func TestAggregateByOwnerWindow(t *testing.T) {
	campaigns := []models.Campaign{
		campaign("old", "alice", "", "L1", testBase.AddDate(0, 0, -40)),
		campaign("recent", "alice", "", "L2", testBase.AddDate(0, 0, -3)),
		campaign("other", "bob", "", "L1", testBase.AddDate(0, 0, -60)),
	}
	links := []models.Link{
		{Code: "L1", TotalClicks: 100, UniqueClicks: 100},
		{Code: "L2", TotalClicks: 7, UniqueClicks: 7},
	}

	aggs := AggregateByOwner(campaigns, links, nil, LastDays(30, testBase))
	require.Len(t, aggs, 1, "owners with no campaigns in the window are dropped")
	assert.Equal(t, "alice", aggs[0].OwnerKey)
	assert.Equal(t, 1, aggs[0].CampaignCount)
	assert.Equal(t, int64(7), aggs[0].TotalClicks)
}

func TestAggregateByProduct(t *testing.T) {
	campaigns := []models.Campaign{
		campaign("c1", "alice", "p1", "L1", testBase),
		campaign("c2", "bob", "p1", "L2", testBase),
		campaign("c3", "alice", "", "L1", testBase), // no product, excluded
		campaign("c4", "alice", "p2", "", testBase),
	}
	links := []models.Link{
		{Code: "L1", TotalClicks: 30, UniqueClicks: 20},
		{Code: "L2", TotalClicks: 12, UniqueClicks: 12},
	}

	aggs := AggregateByProduct(campaigns, links, Window{})
	require.Len(t, aggs, 2)

	p1 := aggs[0]
	assert.Equal(t, "p1", p1.ProductID)
	assert.Equal(t, 2, p1.CampaignCount)
	assert.Equal(t, 2, p1.DistinctAffiliateCount)
	assert.Equal(t, int64(42), p1.TotalClicks)
	assert.Equal(t, int64(32), p1.UniqueClicks)

	p2 := aggs[1]
	assert.Equal(t, "p2", p2.ProductID)
	assert.Equal(t, 1, p2.DistinctAffiliateCount)
	assert.Zero(t, p2.TotalClicks)
}

func TestBuildLinkIndexLastWriteWins(t *testing.T) {
	ix := BuildLinkIndex([]models.Link{
		{Code: "dup", TotalClicks: 1, UniqueClicks: 1},
		{Code: "dup", TotalClicks: 9, UniqueClicks: 4},
	})
	assert.Equal(t, int64(9), ix.Lookup("dup").TotalClicks)
	assert.Equal(t, models.Link{}, ix.Lookup("absent"))
	assert.Equal(t, models.Link{}, ix.Lookup(""))
}
