package storage

import (
	"context"
	"fmt"

	"github.com/driftlab/beacon-analytics/internal/models"
)

// ---- Deposits ----

func (s *PostgresStore) ListDeposits(ctx context.Context) ([]models.Deposit, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT provider_name, amount_usd, deposit_date FROM deposits ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list deposits: %w", err)
	}
	defer rows.Close()

	var out []models.Deposit
	for rows.Next() {
		var d models.Deposit
		if err := rows.Scan(&d.ProviderName, &d.AmountUSD, &d.DepositDate); err != nil {
			return nil, fmt.Errorf("failed to scan deposit: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *PostgresStore) AddDeposit(ctx context.Context, d models.Deposit) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO deposits (provider_name, amount_usd, deposit_date)
		VALUES ($1, $2, $3)
	`, d.ProviderName, d.AmountUSD, d.DepositDate)
	if err != nil {
		return fmt.Errorf("failed to add deposit: %w", err)
	}
	return nil
}

// ---- Usage ----

func (s *PostgresStore) ListUsage(ctx context.Context) ([]models.UsageRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT provider_name, date, cost_usd FROM usage_records ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list usage records: %w", err)
	}
	defer rows.Close()

	var out []models.UsageRecord
	for rows.Next() {
		var u models.UsageRecord
		if err := rows.Scan(&u.ProviderName, &u.Date, &u.CostUSD); err != nil {
			return nil, fmt.Errorf("failed to scan usage record: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *PostgresStore) AddUsage(ctx context.Context, u models.UsageRecord) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO usage_records (provider_name, date, cost_usd)
		VALUES ($1, $2, $3)
	`, u.ProviderName, u.Date, u.CostUSD)
	if err != nil {
		return fmt.Errorf("failed to add usage record: %w", err)
	}
	return nil
}
