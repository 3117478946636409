// Package tips converts two teams' season statistics into ranked betting
// recommendations with bounded confidence scores.
package tips

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"
)

// Market is a betting category within which one pick is recommended.
type Market string

// Supported markets, in evaluation order. Evaluation order is also the
// tie-break order when two tips share a confidence score.
const (
	MarketGoals    Market = "Goals"
	MarketHandicap Market = "Handicap"
	MarketCards    Market = "Cards"
	MarketCorners  Market = "Corners"
)

// BettingTip is one recommendation. Confidence is an integer percentage kept
// numeric internally; formatting to "72%" belongs at the display boundary.
// Simulated marks tips drawn without provider data backing them.
type BettingTip struct {
	Market     Market `json:"market"`
	Pick       string `json:"pick"`
	Rationale  string `json:"rationale"`
	Confidence int    `json:"confidence"`
	Simulated  bool   `json:"simulated"`
}

// AnalysisResult holds all tips for one match, ranked by confidence.
type AnalysisResult struct {
	BestTip   BettingTip   `json:"best_tip"`
	OtherTips []BettingTip `json:"other_tips"`
}

// ErrNoAnalysisPossible indicates every market was skipped for missing or
// degenerate inputs.
var ErrNoAnalysisPossible = errors.New("insufficient data for any market")

// TeamInput is one side of a match: the display name plus season statistics.
type TeamInput struct {
	Name            string
	GoalsForAvg     *float64
	GoalsAgainstAvg *float64
	YellowCards     int
	MatchesPlayed   int
}

// Market thresholds and confidence bounds.
const (
	goalsLineThreshold    = 1.4
	handicapDiffThreshold = 0.3
	cardsLineThreshold    = 4.5

	goalsMinConfidence    = 65
	goalsMaxConfidence    = 90
	handicapMinConfidence = 60
	handicapMaxConfidence = 95
	cardsMinConfidence    = 60
	cardsMaxConfidence    = 90
	cornersMinConfidence  = 65
	cornersMaxConfidence  = 85
)

// Engine evaluates markets for a match. It performs no I/O; the only state is
// the random source backing the simulated corners market.
type Engine struct {
	mu               sync.Mutex
	rng              *rand.Rand
	includeSimulated bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the random source for simulated markets, for deterministic tests.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithoutSimulatedMarkets disables markets that have no provider data behind
// them (currently corners).
func WithoutSimulatedMarkets() Option {
	return func(e *Engine) { e.includeSimulated = false }
}

// NewEngine creates a tip inference engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		rng:              rand.New(rand.NewSource(time.Now().UnixNano())),
		includeSimulated: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Analyze produces ranked tips for home vs away. Each market contributes a
// tip only when its inputs are present; a market with missing inputs is
// skipped, never defaulted. Zero tips yields ErrNoAnalysisPossible.
func (e *Engine) Analyze(home, away TeamInput) (*AnalysisResult, error) {
	var tips []BettingTip

	if tip, ok := goalsTip(home, away); ok {
		tips = append(tips, tip)
	}
	if tip, ok := handicapTip(home, away); ok {
		tips = append(tips, tip)
	}
	if tip, ok := cardsTip(home, away); ok {
		tips = append(tips, tip)
	}
	if e.includeSimulated {
		tips = append(tips, e.cornersTip())
	}

	if len(tips) == 0 {
		return nil, ErrNoAnalysisPossible
	}

	// Stable sort keeps market evaluation order as the tie-break.
	sort.SliceStable(tips, func(i, j int) bool {
		return tips[i].Confidence > tips[j].Confidence
	})

	return &AnalysisResult{
		BestTip:   tips[0],
		OtherTips: tips[1:],
	}, nil
}

// goalsTip recommends over/under 2.5 goals from the combined scoring average.
func goalsTip(home, away TeamInput) (BettingTip, bool) {
	if home.GoalsForAvg == nil || away.GoalsForAvg == nil {
		return BettingTip{}, false
	}

	combined := (*home.GoalsForAvg + *away.GoalsForAvg) / 2

	pick := "Under 2.5 goals"
	rationale := fmt.Sprintf("Low combined goal average (%.2f).", combined)
	base := goalsLineThreshold - combined
	if combined > goalsLineThreshold {
		pick = "Over 2.5 goals"
		rationale = fmt.Sprintf("High combined goal average (%.2f).", combined)
		base = combined
	}

	return BettingTip{
		Market:     MarketGoals,
		Pick:       pick,
		Rationale:  rationale,
		Confidence: clampConfidence(goalsMinConfidence+base*10, goalsMinConfidence, goalsMaxConfidence),
	}, true
}

// handicapTip recommends a half-goal handicap from the goal-difference gap
// between the sides. A gap of exactly zero still produces a tip: the away
// side at +0.5, since it fails the home-favoring branch.
func handicapTip(home, away TeamInput) (BettingTip, bool) {
	if home.GoalsForAvg == nil || home.GoalsAgainstAvg == nil ||
		away.GoalsForAvg == nil || away.GoalsAgainstAvg == nil {
		return BettingTip{}, false
	}

	powerDiff := (*home.GoalsForAvg - *home.GoalsAgainstAvg) - (*away.GoalsForAvg - *away.GoalsAgainstAvg)

	pick := fmt.Sprintf("%s +0.5", away.Name)
	rationale := "Away side should keep the game tight."
	if powerDiff > handicapDiffThreshold {
		pick = fmt.Sprintf("%s -0.5", home.Name)
		rationale = "Home side holds the stronger goal difference."
	}

	return BettingTip{
		Market:     MarketHandicap,
		Pick:       pick,
		Rationale:  rationale,
		Confidence: clampConfidence(handicapMinConfidence+math.Abs(powerDiff)*10, handicapMinConfidence, handicapMaxConfidence),
	}, true
}

// cardsTip recommends over/under 4.5 cards from the combined yellow-card
// rate. Skipped when either side has no played matches.
func cardsTip(home, away TeamInput) (BettingTip, bool) {
	if home.MatchesPlayed == 0 || away.MatchesPlayed == 0 {
		return BettingTip{}, false
	}

	homeRate := float64(home.YellowCards) / float64(home.MatchesPlayed)
	awayRate := float64(away.YellowCards) / float64(away.MatchesPlayed)
	combined := homeRate + awayRate

	pick := "Under 4.5 cards"
	rationale := fmt.Sprintf("Combined average of %.2f cards suggests a clean game.", combined)
	if combined > cardsLineThreshold {
		pick = "Over 4.5 cards"
		rationale = fmt.Sprintf("Combined average of %.2f cards points to a foul-heavy game.", combined)
	}

	return BettingTip{
		Market:     MarketCards,
		Pick:       pick,
		Rationale:  rationale,
		Confidence: clampConfidence(cardsMinConfidence+math.Abs(combined-cardsLineThreshold)*5, cardsMinConfidence, cardsMaxConfidence),
	}, true
}

// cornersTip draws a bounded pseudo-random corners recommendation. The
// provider feed carries no corner data, so this market is simulated and
// flagged as such.
func (e *Engine) cornersTip() BettingTip {
	e.mu.Lock()
	confidence := cornersMinConfidence + e.rng.Intn(cornersMaxConfidence-cornersMinConfidence+1)
	e.mu.Unlock()

	return BettingTip{
		Market:     MarketCorners,
		Pick:       "Over 9.5",
		Rationale:  "Corner volume is simulated; the provider feed has no corner data.",
		Confidence: confidence,
		Simulated:  true,
	}
}

// clampConfidence bounds a raw confidence value to [min, max] and floors it
// to an integer percentage.
func clampConfidence(v, min, max float64) int {
	if v < min {
		v = min
	}
	if v > max {
		v = max
	}
	return int(math.Floor(v))
}
