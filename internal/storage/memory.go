package storage

import (
	"context"
	"sync"

	"github.com/driftlab/beacon-analytics/internal/models"
)

// MemoryStore is an in-memory FactStore. Upserted entities keep their
// original insertion position; list methods return fresh copies so a
// snapshot handed to the analytics engine cannot be mutated underneath
// a concurrent call. Intended for tests and for running without a
// database.
type MemoryStore struct {
	mu sync.RWMutex

	campaigns     map[string]models.Campaign
	campaignOrder []string
	links         map[string]models.Link
	linkOrder     []string
	products      map[string]models.Product
	productOrder  []string

	content  []models.ContentRecord
	deposits []models.Deposit
	usage    []models.UsageRecord
}

// NewMemoryStore creates an empty in-memory fact store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		campaigns: make(map[string]models.Campaign),
		links:     make(map[string]models.Link),
		products:  make(map[string]models.Product),
	}
}

// ---- Campaigns ----

func (s *MemoryStore) ListCampaigns(ctx context.Context) ([]models.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Campaign, 0, len(s.campaignOrder))
	for _, id := range s.campaignOrder {
		out = append(out, s.campaigns[id])
	}
	return out, nil
}

func (s *MemoryStore) GetCampaign(ctx context.Context, id string) (*models.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.campaigns[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (s *MemoryStore) UpsertCampaign(ctx context.Context, c models.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.campaigns[c.ID]; !ok {
		s.campaignOrder = append(s.campaignOrder, c.ID)
	}
	s.campaigns[c.ID] = c
	return nil
}

func (s *MemoryStore) DeleteCampaign(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.campaigns[id]; !ok {
		return nil
	}
	delete(s.campaigns, id)
	for i, cid := range s.campaignOrder {
		if cid == id {
			s.campaignOrder = append(s.campaignOrder[:i], s.campaignOrder[i+1:]...)
			break
		}
	}
	return nil
}

// ---- Links ----

func (s *MemoryStore) ListLinks(ctx context.Context) ([]models.Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Link, 0, len(s.linkOrder))
	for _, code := range s.linkOrder {
		out = append(out, s.links[code])
	}
	return out, nil
}

func (s *MemoryStore) GetLink(ctx context.Context, code string) (*models.Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if l, ok := s.links[code]; ok {
		return &l, nil
	}
	return nil, nil
}

func (s *MemoryStore) UpsertLink(ctx context.Context, l models.Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.links[l.Code]; !ok {
		s.linkOrder = append(s.linkOrder, l.Code)
	}
	s.links[l.Code] = l
	return nil
}

// ---- Content ----

func (s *MemoryStore) ListContent(ctx context.Context) ([]models.ContentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ContentRecord, len(s.content))
	copy(out, s.content)
	return out, nil
}

func (s *MemoryStore) AddContent(ctx context.Context, cr models.ContentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.content = append(s.content, cr)
	return nil
}

// ---- Products ----

func (s *MemoryStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Product, 0, len(s.productOrder))
	for _, id := range s.productOrder {
		out = append(out, s.products[id])
	}
	return out, nil
}

func (s *MemoryStore) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (s *MemoryStore) UpsertProduct(ctx context.Context, p models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[p.ID]; !ok {
		s.productOrder = append(s.productOrder, p.ID)
	}
	s.products[p.ID] = p
	return nil
}

// ---- Billing ----

func (s *MemoryStore) ListDeposits(ctx context.Context) ([]models.Deposit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Deposit, len(s.deposits))
	copy(out, s.deposits)
	return out, nil
}

func (s *MemoryStore) AddDeposit(ctx context.Context, d models.Deposit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deposits = append(s.deposits, d)
	return nil
}

func (s *MemoryStore) ListUsage(ctx context.Context) ([]models.UsageRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.UsageRecord, len(s.usage))
	copy(out, s.usage)
	return out, nil
}

func (s *MemoryStore) AddUsage(ctx context.Context, u models.UsageRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.usage = append(s.usage, u)
	return nil
}
