package analytics

import (
	"time"

	"github.com/driftlab/beacon-analytics/internal/models"
)

// Window is an inclusive date range restricting which facts participate
// in an aggregation. The zero Window matches everything ("all time").
type Window struct {
	Start time.Time
	End   time.Time
	// active distinguishes a real range from the zero value.
	active bool
}

// LastDays returns the window [ref-days, ref], inclusive of both ends.
// A non-positive days yields the all-time window. The reference instant
// is explicit so callers control the clock; the core never reads one.
func LastDays(days int, ref time.Time) Window {
	if days <= 0 {
		return Window{}
	}
	return Window{
		Start:  ref.AddDate(0, 0, -days),
		End:    ref,
		active: true,
	}
}

// Between returns an explicit inclusive window.
func Between(start, end time.Time) Window {
	return Window{Start: start, End: end, active: true}
}

// Contains reports whether t falls inside the window. Both boundaries
// are inclusive.
func (w Window) Contains(t time.Time) bool {
	if !w.active {
		return true
	}
	return !t.Before(w.Start) && !t.After(w.End)
}

// IsAllTime reports whether the window matches every fact.
func (w Window) IsAllTime() bool {
	return !w.active
}

// FilterCampaigns returns the campaigns whose CreatedAt falls inside the
// window, preserving input order. The all-time window returns the input
// slice untouched.
func FilterCampaigns(campaigns []models.Campaign, w Window) []models.Campaign {
	if !w.active {
		return campaigns
	}
	out := make([]models.Campaign, 0, len(campaigns))
	for _, c := range campaigns {
		if w.Contains(c.CreatedAt) {
			out = append(out, c)
		}
	}
	return out
}

// FilterDeposits returns the deposits whose DepositDate falls inside the
// window, preserving input order.
func FilterDeposits(deposits []models.Deposit, w Window) []models.Deposit {
	if !w.active {
		return deposits
	}
	out := make([]models.Deposit, 0, len(deposits))
	for _, d := range deposits {
		if w.Contains(d.DepositDate) {
			out = append(out, d)
		}
	}
	return out
}

// FilterUsage returns the usage records whose Date falls inside the
// window, preserving input order.
func FilterUsage(usage []models.UsageRecord, w Window) []models.UsageRecord {
	if !w.active {
		return usage
	}
	out := make([]models.UsageRecord, 0, len(usage))
	for _, u := range usage {
		if w.Contains(u.Date) {
			out = append(out, u)
		}
	}
	return out
}
