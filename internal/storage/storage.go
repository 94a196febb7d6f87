// Package storage holds the fact repositories that back the analytics
// engine. Repositories hand out snapshot copies in insertion order so
// the engine's tie-breaking stays reproducible; they never expose
// internal slices for mutation.
package storage

import (
	"context"

	"github.com/driftlab/beacon-analytics/internal/models"
)

// CampaignRepo defines operations for campaign facts.
type CampaignRepo interface {
	ListCampaigns(ctx context.Context) ([]models.Campaign, error)
	GetCampaign(ctx context.Context, id string) (*models.Campaign, error)
	UpsertCampaign(ctx context.Context, c models.Campaign) error
	DeleteCampaign(ctx context.Context, id string) error
}

// LinkRepo defines operations for tracking-link facts.
type LinkRepo interface {
	ListLinks(ctx context.Context) ([]models.Link, error)
	GetLink(ctx context.Context, code string) (*models.Link, error)
	UpsertLink(ctx context.Context, l models.Link) error
}

// ContentRepo defines operations for content-record facts.
type ContentRepo interface {
	ListContent(ctx context.Context) ([]models.ContentRecord, error)
	AddContent(ctx context.Context, cr models.ContentRecord) error
}

// ProductRepo defines operations for product facts.
type ProductRepo interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	UpsertProduct(ctx context.Context, p models.Product) error
}

// BillingRepo defines operations for provider deposit and usage facts.
type BillingRepo interface {
	ListDeposits(ctx context.Context) ([]models.Deposit, error)
	AddDeposit(ctx context.Context, d models.Deposit) error
	ListUsage(ctx context.Context) ([]models.UsageRecord, error)
	AddUsage(ctx context.Context, u models.UsageRecord) error
}

// FactStore is the full set of repositories the reporting layer reads.
type FactStore interface {
	CampaignRepo
	LinkRepo
	ContentRepo
	ProductRepo
	BillingRepo
}
