package fitness

import "github.com/cardgenome/evolve/genome"

// StylePresets maps a style name to the per-metric weight table used to
// combine the eight scored FitnessMetrics components into total_fitness.
// Every preset leans hard on rules_complexity: a game that can't be
// explained quickly doesn't get played regardless of how good its other
// numbers are.
var StylePresets = map[string]map[string]float64{
	"balanced": {
		"decision_density":      0.25, // no meaningful decisions, no game
		"skill_vs_luck":         0.20,
		"rules_complexity":      0.18,
		"comeback_potential":    0.12,
		"interaction_frequency": 0.10,
		"tension_curve":         0.08,
		"bluffing_depth":        0.00,
		"betting_engagement":    0.07,
	},
	"bluffing": {
		"rules_complexity":      0.35,
		"decision_density":      0.05,
		"comeback_potential":    0.05,
		"tension_curve":         0.05,
		"interaction_frequency": 0.08,
		"skill_vs_luck":         0.05,
		"bluffing_depth":        0.18,
		"betting_engagement":    0.19,
	},
	"strategic": {
		"rules_complexity":      0.30,
		"decision_density":      0.20,
		"comeback_potential":    0.08,
		"tension_curve":         0.05,
		"interaction_frequency": 0.10,
		"skill_vs_luck":         0.27, // strategy players reward mastery over luck
		"bluffing_depth":        0.00,
		"betting_engagement":    0.00,
	},
	"party": {
		"rules_complexity":      0.50, // must be explainable in a minute or two
		"decision_density":      0.04,
		"comeback_potential":    0.12,
		"tension_curve":         0.06,
		"interaction_frequency": 0.14,
		"skill_vs_luck":         0.04, // luck-friendly: everyone at the table can win
		"bluffing_depth":        0.00,
		"betting_engagement":    0.10,
	},
	"trick-taking": {
		"rules_complexity":      0.30, // familiar pattern lowers the learning barrier
		"decision_density":      0.15,
		"comeback_potential":    0.10,
		"tension_curve":         0.12,
		"interaction_frequency": 0.18,
		"skill_vs_luck":         0.15,
		"bluffing_depth":        0.00,
		"betting_engagement":    0.00,
	},
}

const defaultStyle = "balanced"

// resolveWeights picks the effective weight table for NewEvaluator: an
// explicit weights map wins outright (style becomes "custom"); otherwise
// a known style preset is used; otherwise balanced.
func resolveWeights(style string, weights map[string]float64) (map[string]float64, string) {
	if weights != nil {
		return copyWeights(weights), "custom"
	}
	if preset, ok := StylePresets[style]; ok {
		return copyWeights(preset), style
	}
	return copyWeights(StylePresets[defaultStyle]), defaultStyle
}

// normalizeInPlace rescales w so its values sum to 1.0.
func normalizeInPlace(w map[string]float64) {
	var total float64
	for _, v := range w {
		total += v
	}
	for k := range w {
		w[k] /= total
	}
}

// Evaluator turns (genome, simulation results) into FitnessMetrics using
// a fixed, normalized set of per-metric weights.
type Evaluator struct {
	weights map[string]float64
	style   string
	cache   map[string]*FitnessMetrics
}

// NewEvaluator builds an Evaluator. An explicit weights map takes
// precedence over style; an unrecognized style falls back to "balanced".
// Weights are always renormalized to sum to 1.0.
func NewEvaluator(style string, weights map[string]float64) *Evaluator {
	finalWeights, finalStyle := resolveWeights(style, weights)
	normalizeInPlace(finalWeights)

	return &Evaluator{
		weights: finalWeights,
		style:   finalStyle,
		cache:   make(map[string]*FitnessMetrics),
	}
}

// Style returns the resolved style name ("custom" if weights overrode it).
func (e *Evaluator) Style() string {
	return e.style
}

// Weights returns a defensive copy of the evaluator's weight table.
func (e *Evaluator) Weights() map[string]float64 {
	return copyWeights(e.weights)
}

// Evaluate computes FitnessMetrics for a genome against aggregated
// simulation results.
func (e *Evaluator) Evaluate(g *genome.GameGenome, results *SimulationResults) *FitnessMetrics {
	return ComputeMetrics(g, results, e.weights, e.style)
}

// ClearCache drops any cached metrics.
func (e *Evaluator) ClearCache() {
	e.cache = make(map[string]*FitnessMetrics)
}

func copyWeights(w map[string]float64) map[string]float64 {
	result := make(map[string]float64, len(w))
	for k, v := range w {
		result[k] = v
	}
	return result
}
