package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/driftlab/beacon-analytics/internal/models"
)

// PostgresStore implements FactStore on PostgreSQL. Rows carry a serial
// seq column and every list query orders by it, so snapshots come back
// in insertion order just like MemoryStore.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a PostgreSQL-backed fact store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// EnsureSchema creates the fact tables when they do not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS campaigns (
			seq           BIGSERIAL,
			id            TEXT PRIMARY KEY,
			owner_user_id TEXT NOT NULL,
			product_id    TEXT,
			link_code     TEXT,
			created_at    TIMESTAMPTZ NOT NULL
		);
		CREATE TABLE IF NOT EXISTS links (
			seq           BIGSERIAL,
			code          TEXT PRIMARY KEY,
			total_clicks  BIGINT NOT NULL DEFAULT 0,
			unique_clicks BIGINT NOT NULL DEFAULT 0
		);
		CREATE TABLE IF NOT EXISTS content_records (
			seq               BIGSERIAL,
			id                TEXT PRIMARY KEY,
			campaign_id       TEXT NOT NULL,
			sequence_id       TEXT,
			compliance_status TEXT NOT NULL DEFAULT 'none',
			created_at        TIMESTAMPTZ NOT NULL
		);
		CREATE TABLE IF NOT EXISTS products (
			seq                BIGSERIAL,
			id                 TEXT PRIMARY KEY,
			owner_developer_id TEXT,
			name               TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS deposits (
			seq           BIGSERIAL PRIMARY KEY,
			provider_name TEXT NOT NULL,
			amount_usd    DOUBLE PRECISION NOT NULL,
			deposit_date  TIMESTAMPTZ NOT NULL
		);
		CREATE TABLE IF NOT EXISTS usage_records (
			seq           BIGSERIAL PRIMARY KEY,
			provider_name TEXT NOT NULL,
			date          TIMESTAMPTZ NOT NULL,
			cost_usd      DOUBLE PRECISION NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// ---- Campaigns ----

func (s *PostgresStore) ListCampaigns(ctx context.Context) ([]models.Campaign, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, owner_user_id, product_id, link_code, created_at
		FROM campaigns ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	defer rows.Close()

	var out []models.Campaign
	for rows.Next() {
		var c models.Campaign
		var productID, linkCode *string
		if err := rows.Scan(&c.ID, &c.OwnerUserID, &productID, &linkCode, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan campaign: %w", err)
		}
		c.ProductID = deref(productID)
		c.LinkCode = deref(linkCode)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *PostgresStore) GetCampaign(ctx context.Context, id string) (*models.Campaign, error) {
	var c models.Campaign
	var productID, linkCode *string
	err := s.pool.QueryRow(ctx, `
		SELECT id, owner_user_id, product_id, link_code, created_at
		FROM campaigns WHERE id = $1
	`, id).Scan(&c.ID, &c.OwnerUserID, &productID, &linkCode, &c.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}
	c.ProductID = deref(productID)
	c.LinkCode = deref(linkCode)
	return &c, nil
}

func (s *PostgresStore) UpsertCampaign(ctx context.Context, c models.Campaign) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO campaigns (id, owner_user_id, product_id, link_code, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			owner_user_id = EXCLUDED.owner_user_id,
			product_id    = EXCLUDED.product_id,
			link_code     = EXCLUDED.link_code,
			created_at    = EXCLUDED.created_at
	`, c.ID, c.OwnerUserID, nullString(c.ProductID), nullString(c.LinkCode), c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert campaign: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteCampaign(ctx context.Context, id string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM campaigns WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete campaign: %w", err)
	}
	return nil
}

// ---- Links ----

func (s *PostgresStore) ListLinks(ctx context.Context) ([]models.Link, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT code, total_clicks, unique_clicks FROM links ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list links: %w", err)
	}
	defer rows.Close()

	var out []models.Link
	for rows.Next() {
		var l models.Link
		if err := rows.Scan(&l.Code, &l.TotalClicks, &l.UniqueClicks); err != nil {
			return nil, fmt.Errorf("failed to scan link: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *PostgresStore) GetLink(ctx context.Context, code string) (*models.Link, error) {
	var l models.Link
	err := s.pool.QueryRow(ctx, `
		SELECT code, total_clicks, unique_clicks FROM links WHERE code = $1
	`, code).Scan(&l.Code, &l.TotalClicks, &l.UniqueClicks)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get link: %w", err)
	}
	return &l, nil
}

func (s *PostgresStore) UpsertLink(ctx context.Context, l models.Link) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO links (code, total_clicks, unique_clicks)
		VALUES ($1, $2, $3)
		ON CONFLICT (code) DO UPDATE SET
			total_clicks  = EXCLUDED.total_clicks,
			unique_clicks = EXCLUDED.unique_clicks
	`, l.Code, l.TotalClicks, l.UniqueClicks)
	if err != nil {
		return fmt.Errorf("failed to upsert link: %w", err)
	}
	return nil
}

// ---- Content ----

func (s *PostgresStore) ListContent(ctx context.Context) ([]models.ContentRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, campaign_id, sequence_id, compliance_status, created_at
		FROM content_records ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list content: %w", err)
	}
	defer rows.Close()

	var out []models.ContentRecord
	for rows.Next() {
		var cr models.ContentRecord
		var sequenceID *string
		var compliance string
		if err := rows.Scan(&cr.ID, &cr.CampaignID, &sequenceID, &compliance, &cr.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan content record: %w", err)
		}
		cr.SequenceID = deref(sequenceID)
		cr.Compliance = models.ComplianceStatus(compliance)
		out = append(out, cr)
	}
	return out, rows.Err()
}

func (s *PostgresStore) AddContent(ctx context.Context, cr models.ContentRecord) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO content_records (id, campaign_id, sequence_id, compliance_status, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
	`, cr.ID, cr.CampaignID, nullString(cr.SequenceID), string(cr.Compliance), cr.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to add content record: %w", err)
	}
	return nil
}

// ---- Products ----

func (s *PostgresStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, owner_developer_id, name FROM products ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var out []models.Product
	for rows.Next() {
		var p models.Product
		var owner *string
		if err := rows.Scan(&p.ID, &owner, &p.Name); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		p.OwnerDeveloperID = deref(owner)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *PostgresStore) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	var owner *string
	err := s.pool.QueryRow(ctx, `
		SELECT id, owner_developer_id, name FROM products WHERE id = $1
	`, id).Scan(&p.ID, &owner, &p.Name)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	p.OwnerDeveloperID = deref(owner)
	return &p, nil
}

func (s *PostgresStore) UpsertProduct(ctx context.Context, p models.Product) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO products (id, owner_developer_id, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			owner_developer_id = EXCLUDED.owner_developer_id,
			name               = EXCLUDED.name
	`, p.ID, nullString(p.OwnerDeveloperID), p.Name)
	if err != nil {
		return fmt.Errorf("failed to upsert product: %w", err)
	}
	return nil
}

// nullString converts an empty string to a SQL NULL.
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
