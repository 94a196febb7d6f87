package models

import (
	"errors"
	"time"
)

// Deposit is a credit purchase against an external provider account.
type Deposit struct {
	ProviderName string    `json:"provider_name"`
	AmountUSD    float64   `json:"amount_usd"`
	DepositDate  time.Time `json:"deposit_date"`
}

func (d *Deposit) Validate() error {
	if d.ProviderName == "" {
		return errors.New("provider_name is required")
	}
	if d.AmountUSD <= 0 {
		return errors.New("amount_usd must be > 0")
	}
	return nil
}

// UsageRecord is one day of metered spend against a provider account.
type UsageRecord struct {
	ProviderName string    `json:"provider_name"`
	Date         time.Time `json:"date"`
	CostUSD      float64   `json:"cost_usd"`
}

func (u *UsageRecord) Validate() error {
	if u.ProviderName == "" {
		return errors.New("provider_name is required")
	}
	if u.CostUSD < 0 {
		return errors.New("cost_usd must be >= 0")
	}
	return nil
}
