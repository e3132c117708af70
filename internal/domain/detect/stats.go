package detect

import (
	"strings"

	"github.com/dstreit/einbuerger-api/internal/domain"
)

// Stats summarizes how a list of words classifies against the detector's
// heuristics. Baseline words count toward the B1 bucket; advanced words are
// tallied both in Advanced and in their estimated tier; everything else falls
// into the unclassified A2 middle ground.
type Stats struct {
	Total    int `json:"total"`
	A1       int `json:"a1"`
	A2       int `json:"a2"`
	B1       int `json:"b1"`
	B2       int `json:"b2"`
	C1       int `json:"c1"`
	Advanced int `json:"advanced"`
}

// Classify tallies the given words. Order does not matter and duplicates are
// counted each time they appear.
func (d *Detector) Classify(words []string) Stats {
	stats := Stats{Total: len(words)}

	for _, word := range words {
		if _, basic := d.baseline[strings.ToLower(word)]; basic {
			stats.B1++
			continue
		}
		if !d.isAdvanced(word) {
			stats.A2++
			continue
		}

		stats.Advanced++
		switch EstimateDifficulty(word) {
		case domain.DifficultyA1:
			stats.A1++
		case domain.DifficultyA2:
			stats.A2++
		case domain.DifficultyB1:
			stats.B1++
		case domain.DifficultyB2:
			stats.B2++
		case domain.DifficultyC1:
			stats.C1++
		}
	}
	return stats
}
