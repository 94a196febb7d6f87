package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftlab/beacon-analytics/internal/models"
)

func TestMemoryStoreCampaignOrder(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	for _, id := range []string{"c1", "c2", "c3"} {
		require.NoError(t, s.UpsertCampaign(ctx, models.Campaign{ID: id, OwnerUserID: "u", CreatedAt: time.Now()}))
	}
	// Updating an existing campaign must not move it.
	require.NoError(t, s.UpsertCampaign(ctx, models.Campaign{ID: "c1", OwnerUserID: "other"}))

	got, err := s.ListCampaigns(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "c1", got[0].ID)
	assert.Equal(t, "other", got[0].OwnerUserID)
	assert.Equal(t, "c3", got[2].ID)
}

func TestMemoryStoreSnapshotIsolation(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.UpsertLink(ctx, models.Link{Code: "l1", TotalClicks: 5}))

	first, err := s.ListLinks(ctx)
	require.NoError(t, err)
	first[0].TotalClicks = 999

	second, err := s.ListLinks(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), second[0].TotalClicks)
}

func TestMemoryStoreGetMiss(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	c, err := s.GetCampaign(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, c)

	l, err := s.GetLink(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, l)
}

func TestMemoryStoreDeleteCampaign(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.UpsertCampaign(ctx, models.Campaign{ID: "c1", OwnerUserID: "u"}))
	require.NoError(t, s.UpsertCampaign(ctx, models.Campaign{ID: "c2", OwnerUserID: "u"}))

	require.NoError(t, s.DeleteCampaign(ctx, "c1"))
	require.NoError(t, s.DeleteCampaign(ctx, "c1")) // idempotent

	got, err := s.ListCampaigns(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "c2", got[0].ID)
}

func TestMemoryStoreBilling(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.AddDeposit(ctx, models.Deposit{ProviderName: "p", AmountUSD: 10, DepositDate: time.Now()}))
	require.NoError(t, s.AddUsage(ctx, models.UsageRecord{ProviderName: "p", CostUSD: 2, Date: time.Now()}))

	deposits, err := s.ListDeposits(ctx)
	require.NoError(t, err)
	assert.Len(t, deposits, 1)

	records, err := s.ListUsage(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
