// Package rank implements the rank-aware promotion projection: weighted
// KRA aggregation under the current major band, bracket increments, and
// the cross-rank recomputation rule. The hierarchy, band weights, and
// bracket table are fixed, versioned constants; projections are computed
// on demand and never persisted as the source of truth for rank.
package rank

import (
	"fmt"
	"strings"
)

// Totals carries the four raw per-KRA scores a projection is computed from.
type Totals struct {
	KRA1 float64 `json:"kra_i"`
	KRA2 float64 `json:"kra_ii"`
	KRA3 float64 `json:"kra_iii"`
	KRA4 float64 `json:"kra_iv"`
}

// Weights is one major band's KRA weight vector. Vectors sum to 1.0.
type Weights struct {
	KRA1 float64
	KRA2 float64
	KRA3 float64
	KRA4 float64
}

// Apply computes the weighted score for the given raw totals.
func (w Weights) Apply(t Totals) float64 {
	return t.KRA1*w.KRA1 + t.KRA2*w.KRA2 + t.KRA3*w.KRA3 + t.KRA4*w.KRA4
}

// Major band names, in promotion order. Later bands shift weight from
// KRA I (instruction) toward KRA II (research).
const (
	BandInstructor          = "Instructor"
	BandAssistantProfessor  = "Assistant Professor"
	BandAssociateProfessor  = "Associate Professor"
	BandProfessor           = "Professor"
	BandUniversityProfessor = "College/University Professor"
)

// bands orders the major bands and fixes each band's weight vector
// (NBC 461 C9, table 2.2).
var bands = []struct {
	name    string
	weights Weights
}{
	{BandInstructor, Weights{KRA1: 0.60, KRA2: 0.10, KRA3: 0.20, KRA4: 0.10}},
	{BandAssistantProfessor, Weights{KRA1: 0.50, KRA2: 0.20, KRA3: 0.20, KRA4: 0.10}},
	{BandAssociateProfessor, Weights{KRA1: 0.40, KRA2: 0.30, KRA3: 0.20, KRA4: 0.10}},
	{BandProfessor, Weights{KRA1: 0.30, KRA2: 0.40, KRA3: 0.20, KRA4: 0.10}},
	{BandUniversityProfessor, Weights{KRA1: 0.20, KRA2: 0.50, KRA3: 0.20, KRA4: 0.10}},
}

// Hierarchy orders every sub-rank (NBC 461, table 3.2). Any rank string
// used in a projection must exist here; unknown input normalizes to the
// first entry.
var Hierarchy = []string{
	"Instructor I", "Instructor II", "Instructor III",
	"Assistant Professor I", "Assistant Professor II", "Assistant Professor III", "Assistant Professor IV",
	"Associate Professor I", "Associate Professor II", "Associate Professor III", "Associate Professor IV", "Associate Professor V",
	"Professor I", "Professor II", "Professor III", "Professor IV", "Professor V", "Professor VI",
	"College/University Professor",
}

// brackets lists the inclusive lower score bounds, ascending; crossing
// bracket i earns i+1 sub-rank increments (table 3.1).
var brackets = []float64{41, 51, 61, 71, 81, 91}

// Increments maps a weighted score to its sub-rank increment count.
func Increments(score float64) int {
	n := 0
	for _, lower := range brackets {
		if score >= lower {
			n++
		}
	}
	return n
}

// Projection is the outcome of one promotion computation.
type Projection struct {
	CurrentRank         string  `json:"current_rank"`
	ProjectedRank       string  `json:"projected_rank"`
	Increments          int     `json:"increments"`
	WeightedScore       float64 `json:"weighted_score"`
	PointsToNextBracket float64 `json:"points_to_next_bracket"`
	StatusMessage       string  `json:"status_message"`
}

// Normalize returns rank if it exists in the hierarchy, else the
// hierarchy's first entry.
func Normalize(rank string) string {
	for _, r := range Hierarchy {
		if r == rank {
			return rank
		}
	}
	return Hierarchy[0]
}

// MajorBand extracts the major band of a sub-rank ("Professor II" →
// "Professor"). Falls back to the first band for unrecognized input.
func MajorBand(rank string) string {
	// Later bands first: "Assistant Professor I" must not match "Professor".
	for i := len(bands) - 1; i >= 0; i-- {
		if strings.HasPrefix(rank, bands[i].name) {
			return bands[i].name
		}
	}
	return bands[0].name
}

// BandWeights returns the weight vector for a major band.
func BandWeights(band string) Weights {
	for _, b := range bands {
		if b.name == band {
			return b.weights
		}
	}
	return bands[0].weights
}

func nextBand(band string) string {
	for i, b := range bands {
		if b.name == band && i+1 < len(bands) {
			return bands[i+1].name
		}
	}
	return band
}

// bandBoundary returns the highest hierarchy index still inside the major
// band of the rank at index idx.
func bandBoundary(idx int) int {
	band := MajorBand(Hierarchy[idx])
	boundary := idx
	for i := idx; i < len(Hierarchy); i++ {
		if MajorBand(Hierarchy[i]) != band {
			break
		}
		boundary = i
	}
	return boundary
}

// Project computes a promotion projection from the current rank and four
// raw KRA totals. A projection that would cross the current major band's
// boundary is recomputed under the next band's weights: one earned
// increment admits entry to that band's first rank only; otherwise the
// projection caps at the top of the current band and the original
// weighted score stands. From the terminal band there is no next band to
// recompute under, so the projection clamps at the top of the hierarchy.
func Project(currentRank string, totals Totals) Projection {
	currentRank = Normalize(currentRank)

	currentIdx := 0
	for i, r := range Hierarchy {
		if r == currentRank {
			currentIdx = i
			break
		}
	}

	band := MajorBand(currentRank)
	weighted := BandWeights(band).Apply(totals)
	increments := Increments(weighted)

	projectedIdx := currentIdx + increments
	boundary := bandBoundary(currentIdx)
	next := nextBand(band)

	var (
		finalRank string
		displayed float64
		status    string
	)

	if projectedIdx > boundary && next != band {
		recomputed := BandWeights(next).Apply(totals)

		if Increments(recomputed) >= 1 {
			finalRank = Hierarchy[boundary+1]
			displayed = recomputed
			status = fmt.Sprintf("Promoted to %s (Cross-Rank Qualified)", finalRank)
		} else {
			finalRank = Hierarchy[boundary]
			displayed = weighted
			status = fmt.Sprintf("Capped at %s (Did not meet %s threshold)", finalRank, next)
		}
	} else {
		clamped := min(projectedIdx, boundary)
		finalRank = Hierarchy[clamped]
		displayed = weighted
		if clamped > currentIdx {
			status = fmt.Sprintf("+%d Sub-ranks", clamped-currentIdx)
		} else {
			status = "No Movement"
		}
	}

	return Projection{
		CurrentRank:         currentRank,
		ProjectedRank:       finalRank,
		Increments:          increments,
		WeightedScore:       displayed,
		PointsToNextBracket: pointsToNextBracket(displayed),
		StatusMessage:       status,
	}
}

func pointsToNextBracket(score float64) float64 {
	for _, lower := range brackets {
		if lower > score {
			return lower - score
		}
	}
	return 0
}
