package matching

import (
	"math"
	"strings"
)

// Sub-score constants. They are empirical and kept for compatibility with
// existing match rows; change them only together with product.
const (
	scoreNeutral = 0.5

	sectorExact    = 1.0
	sectorContains = 0.9
	sectorRelated  = 0.8
	sectorBaseline = 0.3

	stageExact    = 1.0
	stageAdjacent = 0.7
	stageBaseline = 0.2

	geoMatch    = 1.0
	geoCountry  = 0.9
	geoBaseline = 0.4

	ticketInRange = 1.0
	ticketNear    = 0.7
	ticketOutside = 0.3

	ticketNearLowFactor  = 0.5
	ticketNearHighFactor = 1.5
)

type readinessStep struct {
	min   float64
	score float64
}

// readinessSteps is checked top-down; anything below the last step scores
// readinessFloor.
var readinessSteps = []readinessStep{
	{min: 80, score: 1.0},
	{min: 70, score: 0.9},
	{min: 60, score: 0.8},
	{min: 50, score: 0.6},
	{min: 40, score: 0.4},
}

const readinessFloor = 0.3

func sectorScore(t Taxonomy, industry *string, sectors []string) float64 {
	ind := normalizePtr(industry)
	inv := cleanList(sectors)
	if ind == "" || len(inv) == 0 {
		return scoreNeutral
	}

	best := sectorBaseline
	for _, sec := range inv {
		switch {
		case ind == sec:
			return sectorExact
		case containsEither(ind, sec):
			best = math.Max(best, sectorContains)
		case t.SectorsRelated(ind, sec):
			best = math.Max(best, sectorRelated)
		}
	}
	return best
}

func stageScore(t Taxonomy, stage *string, stages []string) float64 {
	st := normalizePtr(stage)
	inv := cleanList(stages)
	if st == "" || len(inv) == 0 {
		return scoreNeutral
	}

	for _, s := range inv {
		if st == s {
			return stageExact
		}
	}

	startupIdx := t.StageIndex(st)
	if startupIdx < 0 {
		return stageBaseline
	}

	best := stageBaseline
	for _, s := range inv {
		idx := t.StageIndex(s)
		if idx < 0 {
			continue
		}
		switch absInt(startupIdx - idx) {
		case 0:
			return stageExact
		case 1:
			best = stageAdjacent
		}
	}
	return best
}

func geographyScore(t Taxonomy, headquarters *string, geos []string) float64 {
	hq := normalizePtr(headquarters)
	inv := cleanList(geos)
	if hq == "" || len(inv) == 0 {
		return scoreNeutral
	}

	best := geoBaseline
	for _, geo := range inv {
		if containsEither(hq, geo) {
			return geoMatch
		}
		if t.isTexasHQ(hq) && t.isTexasGeo(geo) {
			return geoMatch
		}
		if t.isUSGeo(geo) && t.isUSHQ(hq) {
			best = geoCountry
		}
	}
	return best
}

func readinessScore(score *float64) float64 {
	if score == nil || *score == 0 || math.IsNaN(*score) {
		return scoreNeutral
	}
	for _, step := range readinessSteps {
		if *score >= step.min {
			return step.score
		}
	}
	return readinessFloor
}

func ticketScore(fundingAsk *string, minSize, maxSize *float64) float64 {
	lo, hasLo := positive(minSize)
	hi, hasHi := positive(maxSize)
	if fundingAsk == nil || (!hasLo && !hasHi) {
		return scoreNeutral
	}

	ask, ok := ParseAmount(*fundingAsk)
	if !ok {
		return scoreNeutral
	}
	if !hasLo {
		lo = 0
	}
	if !hasHi {
		hi = math.Inf(1)
	}

	if ask >= lo && ask <= hi {
		return ticketInRange
	}
	if ask >= lo*ticketNearLowFactor && ask <= hi*ticketNearHighFactor {
		return ticketNear
	}
	return ticketOutside
}

func containsEither(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func positive(v *float64) (float64, bool) {
	if v == nil || math.IsNaN(*v) || *v <= 0 {
		return 0, false
	}
	return *v, true
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
