package analytics

// Leaderboard weighting: clicks 50%, content 30%, campaigns 20%.
const (
	weightClicks    = 0.5
	weightContent   = 0.3
	weightCampaigns = 0.2
)

// ApplyScores computes each owner's weighted score in place. Every axis
// is normalized against the maximum raw value across the current result
// set and scaled to 0-100, so the best performer on an axis scores 100
// on that axis regardless of absolute scale. Normalization bases are
// recomputed on every call; scores are relative to this result set only.
func ApplyScores(aggs []OwnerAggregate) {
	var maxClicks, maxContent, maxCampaigns float64
	for _, a := range aggs {
		if v := float64(a.TotalClicks); v > maxClicks {
			maxClicks = v
		}
		if v := float64(a.ContentCount); v > maxContent {
			maxContent = v
		}
		if v := float64(a.CampaignCount); v > maxCampaigns {
			maxCampaigns = v
		}
	}

	for i := range aggs {
		a := &aggs[i]
		clicks := normalize(float64(a.TotalClicks), maxClicks)
		content := normalize(float64(a.ContentCount), maxContent)
		campaigns := normalize(float64(a.CampaignCount), maxCampaigns)
		a.Score = weightClicks*clicks + weightContent*content + weightCampaigns*campaigns
	}
}

// normalize scales raw against the result-set maximum to 0-100. The
// denominator floor of 1 keeps an all-zero axis at 0 instead of NaN.
func normalize(raw, max float64) float64 {
	if max < 1 {
		max = 1
	}
	return raw / max * 100
}
