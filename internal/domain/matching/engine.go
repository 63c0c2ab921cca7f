package matching

import (
	"math"
)

type Startup struct {
	Industry       *string
	Stage          *string
	Headquarters   *string
	FundingAsk     *string
	ReadinessScore *float64
}

type Investor struct {
	FocusSectors   []string
	FocusStages    []string
	GeographyFocus []string
	TicketSizeMin  *float64
	TicketSizeMax  *float64
}

type Weights struct {
	Sector     float64
	Stage      float64
	Geography  float64
	Readiness  float64
	TicketSize float64
}

func DefaultWeights() Weights {
	return Weights{Sector: 30, Stage: 25, Geography: 15, Readiness: 20, TicketSize: 10}
}

func (w Weights) Total() float64 {
	return w.Sector + w.Stage + w.Geography + w.Readiness + w.TicketSize
}

func (w Weights) valid() bool {
	for _, v := range []float64{w.Sector, w.Stage, w.Geography, w.Readiness, w.TicketSize} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return w.Total() > 0
}

// Breakdown holds each sub-score normalized to [0,1].
type Breakdown struct {
	Sector     float64
	Stage      float64
	Geography  float64
	Readiness  float64
	TicketSize float64
}

type Result struct {
	MatchScore int
	Breakdown  Breakdown
}

type Engine struct {
	weights  Weights
	taxonomy Taxonomy
}

type Option func(*Engine)

// WithWeights replaces the default weights. Invalid weights (negative, or
// summing to zero) are ignored.
func WithWeights(w Weights) Option {
	return func(e *Engine) {
		if w.valid() {
			e.weights = w
		}
	}
}

func WithTaxonomy(t Taxonomy) Option {
	return func(e *Engine) {
		e.taxonomy = t.normalized()
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{weights: DefaultWeights(), taxonomy: DefaultTaxonomy().normalized()}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

var defaultEngine = NewEngine()

// Calculate scores a pair with the default weights and taxonomy.
func Calculate(s Startup, inv Investor) Result {
	return defaultEngine.Score(s, inv)
}

func (e *Engine) Weights() Weights {
	return e.weights
}

// Score returns the weighted average of the five sub-scores as an integer
// percentage. All weights stay in the denominator even when a sub-score falls
// back to neutral. Score never performs I/O.
func (e *Engine) Score(s Startup, inv Investor) Result {
	b := Breakdown{
		Sector:     sectorScore(e.taxonomy, s.Industry, inv.FocusSectors),
		Stage:      stageScore(e.taxonomy, s.Stage, inv.FocusStages),
		Geography:  geographyScore(e.taxonomy, s.Headquarters, inv.GeographyFocus),
		Readiness:  readinessScore(s.ReadinessScore),
		TicketSize: ticketScore(s.FundingAsk, inv.TicketSizeMin, inv.TicketSizeMax),
	}

	w := e.weights
	weighted := b.Sector*w.Sector +
		b.Stage*w.Stage +
		b.Geography*w.Geography +
		b.Readiness*w.Readiness +
		b.TicketSize*w.TicketSize

	score := int(math.Round(100 * weighted / w.Total()))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return Result{MatchScore: score, Breakdown: b}
}
