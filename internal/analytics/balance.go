package analytics

import (
	"sort"
	"time"

	"github.com/driftlab/beacon-analytics/internal/models"
)

// ProviderStatus classifies how much runway a provider balance has left.
type ProviderStatus string

const (
	StatusHealthy  ProviderStatus = "healthy"
	StatusWarning  ProviderStatus = "warning"
	StatusCritical ProviderStatus = "critical"
)

// DaysRemainingUnbounded is the DaysRemaining sentinel for a positive
// balance with no recent spend: the runway is effectively infinite.
const DaysRemainingUnbounded = -1

// Runway thresholds in days.
const (
	criticalRunwayDays = 7
	warningRunwayDays  = 30
	burnRateWindowDays = 30
)

// ProviderBalance is one provider's row in the credit balance table.
type ProviderBalance struct {
	ProviderName    string         `json:"provider_name"`
	TotalDeposits   float64        `json:"total_deposits"`
	TotalSpent      float64        `json:"total_spent"`
	CurrentBalance  float64        `json:"current_balance"`
	Last30DaysSpent float64        `json:"last_30_days_spent"`
	DailyBurnRate   float64        `json:"daily_burn_rate"`
	DaysRemaining   float64        `json:"days_remaining"`
	Status          ProviderStatus `json:"status"`
}

// AnalyzeProviders joins deposit and usage facts per provider and
// derives balance, burn rate, a days-remaining projection and a health
// status. The window restricts which facts enter the aggregation; the
// burn rate always looks at the 30 days up to ref. Rows come out sorted
// by provider name so output is stable across calls.
func AnalyzeProviders(deposits []models.Deposit, usage []models.UsageRecord, ref time.Time, w Window) []ProviderBalance {
	deposits = FilterDeposits(deposits, w)
	usage = FilterUsage(usage, w)

	byName := make(map[string]*ProviderBalance)
	providerRow := func(name string) *ProviderBalance {
		row, ok := byName[name]
		if !ok {
			row = &ProviderBalance{ProviderName: name}
			byName[name] = row
		}
		return row
	}

	for _, d := range deposits {
		if d.ProviderName == "" {
			continue
		}
		providerRow(d.ProviderName).TotalDeposits += clampUSD(d.AmountUSD)
	}

	burnWindow := LastDays(burnRateWindowDays, ref)
	for _, u := range usage {
		if u.ProviderName == "" {
			continue
		}
		row := providerRow(u.ProviderName)
		cost := clampUSD(u.CostUSD)
		row.TotalSpent += cost
		if burnWindow.Contains(u.Date) {
			row.Last30DaysSpent += cost
		}
	}

	result := make([]ProviderBalance, 0, len(byName))
	for _, row := range byName {
		row.CurrentBalance = row.TotalDeposits - row.TotalSpent
		row.DailyBurnRate = row.Last30DaysSpent / burnRateWindowDays
		row.DaysRemaining, row.Status = classifyRunway(row.CurrentBalance, row.DailyBurnRate)
		result = append(result, *row)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ProviderName < result[j].ProviderName
	})
	return result
}

// classifyRunway projects days of runway from balance and burn rate.
// With no burn and a positive balance the runway is unbounded; with no
// burn and nothing left it is zero. A projection that comes out
// negative (overspent balance) is floored at zero so it classifies as
// critical rather than slipping past the thresholds.
func classifyRunway(balance, burnRate float64) (float64, ProviderStatus) {
	var days float64
	switch {
	case burnRate > 0:
		days = balance / burnRate
		if days < 0 {
			days = 0
		}
	case balance > 0:
		return DaysRemainingUnbounded, StatusHealthy
	default:
		days = 0
	}

	switch {
	case days < criticalRunwayDays:
		return days, StatusCritical
	case days < warningRunwayDays:
		return days, StatusWarning
	default:
		return days, StatusHealthy
	}
}
