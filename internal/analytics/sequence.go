package analytics

import (
	"sort"
	"time"

	"github.com/driftlab/beacon-analytics/internal/models"
)

// DefaultSequenceGap is the tolerance used to infer that two content
// records without an explicit sequence id belong to the same send
// sequence. Records produced by one sequence generation land within a
// few seconds of each other; 30s keeps slow generations together
// without merging separate sends.
const DefaultSequenceGap = 30 * time.Second

// ContentSequence is a group of content records that were produced as
// one send sequence.
type ContentSequence struct {
	SequenceID string                 `json:"sequence_id"`
	Records    []models.ContentRecord `json:"records"`
}

// GroupSequences groups content records into send sequences. Records
// carrying an explicit SequenceID are grouped by it; records without
// one fall back to creation-time proximity, chaining a record onto the
// previous one when the gap between them is at most the tolerance. The
// fallback group borrows the id of its first record. A non-positive gap
// selects DefaultSequenceGap.
func GroupSequences(records []models.ContentRecord, gap time.Duration) []ContentSequence {
	if gap <= 0 {
		gap = DefaultSequenceGap
	}

	var explicitOrder []string
	explicit := make(map[string][]models.ContentRecord)
	var inferred []models.ContentRecord

	for _, r := range records {
		if r.SequenceID != "" {
			if _, ok := explicit[r.SequenceID]; !ok {
				explicitOrder = append(explicitOrder, r.SequenceID)
			}
			explicit[r.SequenceID] = append(explicit[r.SequenceID], r)
			continue
		}
		inferred = append(inferred, r)
	}

	var result []ContentSequence
	for _, id := range explicitOrder {
		result = append(result, ContentSequence{SequenceID: id, Records: explicit[id]})
	}

	sort.SliceStable(inferred, func(i, j int) bool {
		return inferred[i].CreatedAt.Before(inferred[j].CreatedAt)
	})
	var current *ContentSequence
	for _, r := range inferred {
		if current != nil {
			last := current.Records[len(current.Records)-1]
			if r.CreatedAt.Sub(last.CreatedAt) <= gap {
				current.Records = append(current.Records, r)
				continue
			}
			result = append(result, *current)
		}
		current = &ContentSequence{SequenceID: r.ID, Records: []models.ContentRecord{r}}
	}
	if current != nil {
		result = append(result, *current)
	}
	return result
}
