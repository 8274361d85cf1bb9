package evolution

import (
	"github.com/cardgenome/evolve/genome"
	"github.com/cardgenome/evolve/simulation"
)

// SkillGapResult holds the outcome of pitting a strong AI against a weak AI
// on the same genome. A genome where the strong AI barely beats the weak one
// has little decision-driven skill ceiling, no matter how its structural
// fitness metrics score it.
type SkillGapResult struct {
	StrongWinRate float64 // Fraction of games the strong AI won
	WeakWinRate   float64 // Fraction of games the weak AI won
	DrawRate      float64
	GamesPlayed   int
	SkillGap      float64 // StrongWinRate - WeakWinRate, clamped to [0, 1]
}

// SkillEvaluator measures empirical skill expression by running a strong AI
// against a weak one on candidate genomes, on a periodic cadence, rather than
// relying solely on the structural SkillVsLuck heuristic.
type SkillEvaluator struct {
	StrongAI       simulation.AIPlayerType
	WeakAI         simulation.AIPlayerType
	GamesPerEval   int
	MCTSIterations int
}

// NewSkillEvaluator creates a skill evaluator pitting MCTS against a random
// player, the cheapest combination that still measures whether better play
// actually wins more often.
func NewSkillEvaluator(gamesPerEval int, mctsIterations int) *SkillEvaluator {
	if gamesPerEval <= 0 {
		gamesPerEval = 40
	}
	if mctsIterations <= 0 {
		mctsIterations = 100
	}
	return &SkillEvaluator{
		StrongAI:       simulation.MCTS100AI,
		WeakAI:         simulation.RandomAI,
		GamesPerEval:   gamesPerEval,
		MCTSIterations: mctsIterations,
	}
}

// Evaluate runs the strong-vs-weak batch and reports the measured skill gap.
func (se *SkillEvaluator) Evaluate(g *genome.GameGenome, seed uint64) *SkillGapResult {
	stats := simulation.RunBatchTypedAsymmetric(g, se.GamesPerEval, se.StrongAI, se.WeakAI, se.MCTSIterations, seed)

	played := int(stats.TotalGames)
	if played == 0 {
		return &SkillGapResult{GamesPlayed: 0}
	}

	var strongWins, weakWins uint32
	if len(stats.Wins) > 0 {
		strongWins = stats.Wins[0]
	}
	if len(stats.Wins) > 1 {
		weakWins = stats.Wins[1]
	}

	strongRate := float64(strongWins) / float64(played)
	weakRate := float64(weakWins) / float64(played)
	drawRate := float64(stats.Draws) / float64(played)

	gap := strongRate - weakRate
	if gap < 0 {
		gap = 0
	}

	return &SkillGapResult{
		StrongWinRate: strongRate,
		WeakWinRate:   weakRate,
		DrawRate:      drawRate,
		GamesPlayed:   played,
		SkillGap:      gap,
	}
}

// EvaluatePopulation measures the skill gap for the top N individuals by
// fitness, mutating their FitnessMetrics in place via a penalty applied to
// TotalFitness when the gap falls below minGap. Individuals whose best play
// can't reliably beat random play are bad candidates regardless of how they
// scored on cheaper structural metrics.
func (se *SkillEvaluator) EvaluatePopulation(individuals []*Individual, topN int, minGap float64, seed uint64) []*SkillGapResult {
	if len(individuals) == 0 {
		return nil
	}
	if topN <= 0 || topN > len(individuals) {
		topN = len(individuals)
	}

	sorted := make([]*Individual, len(individuals))
	copy(sorted, individuals)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].Fitness > sorted[j-1].Fitness; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}

	results := make([]*SkillGapResult, 0, topN)
	for i := 0; i < topN; i++ {
		ind := sorted[i]
		result := se.Evaluate(ind.Genome, seed+uint64(i))
		results = append(results, result)

		if result.GamesPlayed > 0 && result.SkillGap < minGap {
			penalty := 1.0 - (minGap-result.SkillGap)
			if penalty < 0 {
				penalty = 0
			}
			ind.Fitness *= penalty
			if ind.FitnessMetrics != nil {
				ind.FitnessMetrics.TotalFitness = ind.Fitness
			}
		}
	}

	return results
}
