// Package fitness provides fitness evaluation for evolved card game genomes.
package fitness

import (
	"math"

	"github.com/cardgenome/evolve/genome"
)

// SimulationResults holds the results from batch game simulation.
type SimulationResults struct {
	TotalGames  int
	Wins        []int   // Wins per player (index = player ID)
	PlayerCount int     // Number of players (2-4)
	Draws       int
	AvgTurns    float64
	Errors      int

	// Decision instrumentation
	TotalDecisions  int
	TotalValidMoves int
	ForcedDecisions int
	TotalHandSize   int // For filtering ratio calculation
	TotalInteractions int
	TotalActions    int

	// Bluffing metrics (ClaimPhase games)
	TotalClaims      int
	TotalBluffs      int
	TotalChallenges  int
	SuccessfulBluffs int
	SuccessfulCatches int

	// Betting metrics (BettingPhase games)
	TotalBets    int
	BettingBluffs int
	FoldWins     int
	ShowdownWins int
	AllInCount   int

	// Tension curve metrics
	LeadChanges     int
	DecisiveTurnPct float64
	ClosestMargin   float64
	TrailingWinners int // Games where winner was behind at midpoint

	// Solitaire detection metrics
	MoveDisruptionEvents int
	ContentionEvents     int
	ForcedResponseEvents int
	OpponentTurnCount    int

	// Team play metrics
	TeamWins []int // Win count per team (nil if not a team game)
}

// Player0Wins returns wins for player 0 (backward compatibility).
func (r *SimulationResults) Player0Wins() int {
	if len(r.Wins) > 0 {
		return r.Wins[0]
	}
	return 0
}

// Player1Wins returns wins for player 1 (backward compatibility).
func (r *SimulationResults) Player1Wins() int {
	if len(r.Wins) > 1 {
		return r.Wins[1]
	}
	return 0
}

// FitnessMetrics contains the complete fitness evaluation.
type FitnessMetrics struct {
	DecisionDensity      float64
	ComebackPotential    float64
	TensionCurve         float64
	InteractionFrequency float64
	RulesComplexity      float64
	SessionLength        float64 // Tracked but not averaged (constraint only)
	SkillVsLuck          float64
	BluffingDepth        float64 // Quality of bluffing mechanics
	BettingEngagement    float64 // Psychological appeal of betting
	TotalFitness         float64
	GamesSimulated       int
	Valid                bool
}

// invalidMetrics is the zero-fitness sentinel returned whenever a genome
// fails a hard quality gate before any weighted scoring happens.
func invalidMetrics(gamesSimulated int) *FitnessMetrics {
	return &FitnessMetrics{GamesSimulated: gamesSimulated, Valid: false}
}

// clamp01 bounds v to [0,1].
func clamp01(v float64) float64 {
	return math.Max(0.0, math.Min(1.0, v))
}

// ratio is x/y, or 0 when there's no denominator.
func ratio(x, y int) float64 {
	if y <= 0 {
		return 0.0
	}
	return float64(x) / float64(y)
}

// nearTarget scores how close rate sits to a style target: 1.0 on target,
// falling off linearly at the given slope.
func nearTarget(rate, target, slope float64) float64 {
	return clamp01(1.0 - math.Abs(rate-target)*slope)
}

// plateauScore ramps linearly up to rampEnd, holds 1.0 through plateauEnd,
// then declines at declineRate down to floor. The shape rewards "enough but
// not absurd" rates.
func plateauScore(v, rampEnd, plateauEnd, declineRate, floor float64) float64 {
	switch {
	case v < rampEnd:
		return v / rampEnd
	case v <= plateauEnd:
		return 1.0
	default:
		return math.Max(floor, 1.0-(v-plateauEnd)*declineRate)
	}
}

// maxInt returns the largest element of a non-empty slice, or 0 for an
// empty one.
func maxInt(vals []int) int {
	m := 0
	for _, v := range vals {
		if v > m {
			m = v
		}
	}
	return m
}

// qualityMultiplier folds the three multiplicative quality gates
// (comeback floor, skill floor, one-sidedness) and the coherence penalty
// into a single [0,1] scale factor applied to the weighted fitness sum.
func qualityMultiplier(g *genome.GameGenome, results *SimulationResults, comebackPotential, skillVsLuck float64) float64 {
	multiplier := 1.0

	if comebackPotential < 0.15 {
		multiplier *= 0.5
	}
	if skillVsLuck < 0.15 {
		multiplier *= 0.7
	}
	if results.TotalGames > 0 && len(results.Wins) >= 2 {
		if maxWinRate := float64(maxInt(results.Wins)) / float64(results.TotalGames); maxWinRate > 0.80 {
			multiplier *= 0.6
		}
	}

	multiplier *= 1.0 - calculateCoherencePenalty(g)
	return multiplier
}

// weightedFitness combines the eight scored components per the style's
// weight table. tension_curve is multiplied by decision_density as an
// interaction term: drama only counts as fitness when choices matter.
func weightedFitness(weights map[string]float64, decisionDensity, comebackPotential, tensionCurve, interactionFrequency, rulesComplexity, skillVsLuck, bluffingDepth, bettingEngagement float64) float64 {
	effectiveTension := tensionCurve * decisionDensity
	return weights["decision_density"]*decisionDensity +
		weights["comeback_potential"]*comebackPotential +
		weights["tension_curve"]*effectiveTension +
		weights["interaction_frequency"]*interactionFrequency +
		weights["rules_complexity"]*rulesComplexity +
		weights["skill_vs_luck"]*skillVsLuck +
		weights["bluffing_depth"]*bluffingDepth +
		weights["betting_engagement"]*bettingEngagement
}

// ComputeMetrics scores a genome against its aggregated simulation
// results: each of the eight weighted components, the session-length
// constraint, then the multiplicative quality gates.
func ComputeMetrics(g *genome.GameGenome, results *SimulationResults, weights map[string]float64, style string) *FitnessMetrics {
	if results.Errors > results.TotalGames/2 || results.TotalGames == 0 {
		return invalidMetrics(results.TotalGames)
	}

	decisionDensity := computeDecisionDensity(g, results)
	comebackPotential := computeComebackPotential(results)
	tensionCurve := computeTensionCurve(results)
	interactionFrequency := computeInteractionFrequency(g, results)
	rulesComplexity := ComputeRulesComplexity(g)

	sessionLength, withinSessionBudget := computeSessionLength(results)
	if !withinSessionBudget {
		return invalidMetrics(results.TotalGames)
	}

	skillVsLuck := computeSkillVsLuck(g, results, comebackPotential, style)
	bluffingDepth := computeBluffingDepth(results)
	bettingEngagement := computeBettingEngagement(results)

	totalFitness := weightedFitness(weights, decisionDensity, comebackPotential, tensionCurve,
		interactionFrequency, rulesComplexity, skillVsLuck, bluffingDepth, bettingEngagement)
	totalFitness *= qualityMultiplier(g, results, comebackPotential, skillVsLuck)

	return &FitnessMetrics{
		DecisionDensity:      decisionDensity,
		ComebackPotential:    comebackPotential,
		TensionCurve:         tensionCurve,
		InteractionFrequency: interactionFrequency,
		RulesComplexity:      rulesComplexity,
		SessionLength:        sessionLength,
		SkillVsLuck:          skillVsLuck,
		BluffingDepth:        bluffingDepth,
		BettingEngagement:    bettingEngagement,
		TotalFitness:         totalFitness,
		GamesSimulated:       results.TotalGames,
		Valid:                results.Errors == 0 && results.TotalGames > 0,
	}
}

func computeDecisionDensity(g *genome.GameGenome, results *SimulationResults) float64 {
	if results.TotalDecisions > 0 {
		return instrumentedDecisionDensity(results)
	}
	return structuralDecisionDensity(g)
}

// instrumentedDecisionDensity scores decision quality from the real
// per-decision counters: how many options players saw, how constrained the
// options were (a filtering multiplier discourages unconstrained chaos),
// any variety bonus past one move per card, and how rarely a decision was
// forced.
func instrumentedDecisionDensity(results *SimulationResults) float64 {
	avgValidMoves := ratio(results.TotalValidMoves, results.TotalDecisions)
	forcedRatio := ratio(results.ForcedDecisions, results.TotalDecisions)

	var filteringScore, varietyScore float64
	if results.TotalHandSize > 0 {
		movesPerCard := ratio(results.TotalValidMoves, results.TotalHandSize)
		if movesPerCard <= 1.0 {
			filteringScore = 1.0 - movesPerCard
		} else {
			filteringScore = 0.3
			varietyScore = math.Min(0.5, (movesPerCard-1.0)*0.15)
		}
	}

	rawChoiceScore := math.Min(1.0, (avgValidMoves-1)/6.0)
	constraintMultiplier := 0.2 + (filteringScore * 0.8)
	choiceScore := rawChoiceScore * constraintMultiplier

	return math.Min(1.0,
		choiceScore*0.35+
			filteringScore*0.30+
			varietyScore+
			(1.0-forcedRatio)*0.20)
}

// structuralDecisionDensity is the pre-simulation fallback: estimate
// decision richness from phase and condition counts alone.
func structuralDecisionDensity(g *genome.GameGenome) float64 {
	optionalPhases := 0
	hasConditions := 0

	for _, p := range g.TurnStructure.Phases {
		switch phase := p.(type) {
		case *genome.DrawPhase:
			if !phase.Mandatory {
				optionalPhases++
			}
			if phase.Condition != nil {
				hasConditions++
			}
		case *genome.PlayPhase:
			if !phase.Mandatory {
				optionalPhases++
			}
			if phase.ValidPlayCondition != nil {
				hasConditions++
			}
		}
	}

	return math.Min(1.0,
		math.Min(1.0, float64(len(g.TurnStructure.Phases))/6.0)*0.5+
			math.Min(1.0, float64(optionalPhases)/3.0)*0.3+
			math.Min(1.0, float64(hasConditions)/3.0)*0.2)
}

func computeComebackPotential(results *SimulationResults) float64 {
	if results.PlayerCount == 0 {
		return 0.0
	}

	// Win rate balance
	expectedRate := 1.0 / float64(results.PlayerCount)
	maxDeviation := 1.0 - expectedRate

	var avgDeviation float64
	if results.TotalGames > 0 {
		var totalDeviation float64
		for _, wins := range results.Wins {
			actualRate := float64(wins) / float64(results.TotalGames)
			var deviation float64
			if maxDeviation > 0 {
				deviation = math.Abs(actualRate-expectedRate) / maxDeviation
			}
			totalDeviation += deviation
		}
		avgDeviation = totalDeviation / float64(len(results.Wins))
	}

	balanceScore := 1.0 - avgDeviation

	// Trailing winner frequency
	decisiveGames := results.TotalGames - results.Draws - results.Errors
	var trailingScore float64
	if decisiveGames > 0 && results.TrailingWinners > 0 {
		trailingFreq := float64(results.TrailingWinners) / float64(decisiveGames)
		trailingScore = 1.0 - math.Abs(0.5-trailingFreq)*2
	} else {
		trailingScore = balanceScore
	}

	return trailingScore*0.6 + balanceScore*0.4
}

func computeTensionCurve(results *SimulationResults) float64 {
	isBettingGame := results.TotalBets > 0
	hasMeaningfulTracking := results.LeadChanges > 0

	if isBettingGame && !hasMeaningfulTracking {
		// Betting game with no lead tracking: use betting-based tension
		gamesPlayed := float64(max(1, results.TotalGames-results.Draws-results.Errors))
		betsPerGame := float64(results.TotalBets) / gamesPlayed
		allInRate := float64(results.AllInCount) / gamesPlayed
		showdownRate := float64(results.ShowdownWins) / gamesPlayed

		betActivityScore := math.Min(1.0, betsPerGame/3.0)
		allInScore := math.Min(1.0, allInRate*2)
		showdownScore := math.Min(1.0, showdownRate)

		return betActivityScore*0.4 + allInScore*0.3 + showdownScore*0.3
	}

	if hasMeaningfulTracking {
		turnsPerExpectedChange := 20.0
		expectedChanges := math.Max(1, results.AvgTurns/turnsPerExpectedChange)
		leadChangeScore := math.Min(1.0, float64(results.LeadChanges)/expectedChanges)
		decisiveTurnScore := results.DecisiveTurnPct
		marginScore := 1.0 - results.ClosestMargin

		return leadChangeScore*0.4 + decisiveTurnScore*0.4 + marginScore*0.2
	}

	if results.ClosestMargin > 0 && results.ClosestMargin < 1.0 {
		marginScore := 1.0 - results.ClosestMargin
		decisiveScore := results.DecisiveTurnPct
		return marginScore*0.5 + decisiveScore*0.5
	}

	// Fallback
	turnScore := math.Min(1.0, results.AvgTurns/100.0)
	lengthBonus := math.Min(1.0, math.Max(0.0, (results.AvgTurns-20)/50.0))
	return math.Min(0.6, turnScore*0.6+lengthBonus*0.4)
}

func computeInteractionFrequency(g *genome.GameGenome, results *SimulationResults) float64 {
	if results.OpponentTurnCount > 0 {
		moveDisruption := math.Min(1.0, ratio(results.MoveDisruptionEvents, results.OpponentTurnCount))
		forcedResponse := math.Min(1.0, ratio(results.ForcedResponseEvents, results.OpponentTurnCount))
		contention := math.Min(1.0, ratio(results.ContentionEvents, results.TotalActions))

		return (moveDisruption + contention + forcedResponse) / 3.0
	}

	if results.TotalActions > 0 {
		return math.Min(1.0, ratio(results.TotalInteractions, results.TotalActions))
	}

	// Fallback to heuristic
	specialEffectsScore := math.Min(1.0, float64(len(g.Effects))/3.0)
	var trickBasedScore float64
	if g.TurnStructure.IsTrickBased {
		trickBasedScore = 0.3
	}
	multiPhaseScore := math.Min(0.4, float64(len(g.TurnStructure.Phases))/10.0)

	return math.Min(1.0, specialEffectsScore*0.4+trickBasedScore+multiPhaseScore)
}

func computeSessionLength(results *SimulationResults) (float64, bool) {
	estimatedDurationSec := results.AvgTurns * 2 // 2 sec per turn
	targetMax := float64(60 * 60)                // 60 minutes

	if estimatedDurationSec > targetMax {
		return 0.0, false // Constraint violated
	}

	optimalSec := float64(15 * 60) // 15 minutes is ideal
	if estimatedDurationSec < optimalSec {
		return estimatedDurationSec / optimalSec, true
	}

	// Gradual decline from 15-60 min
	return 1.0 - (estimatedDurationSec-optimalSec)/(targetMax-optimalSec)*0.5, true
}

func computeSkillVsLuck(g *genome.GameGenome, results *SimulationResults, comebackPotential float64, style string) float64 {
	// Estimate skill potential from game structure
	lengthFactor := math.Min(1.0, results.AvgTurns/80.0)
	balanceFactor := comebackPotential

	phaseComplexity := len(g.TurnStructure.Phases) + len(g.Effects)
	if g.TurnStructure.IsTrickBased {
		phaseComplexity++
	}
	complexityFactor := math.Min(1.0, float64(phaseComplexity)/8.0)

	skillVsLuck := math.Min(1.0,
		lengthFactor*0.4+
			balanceFactor*0.3+
			complexityFactor*0.3)

	// For party style, invert skill metric
	if style == "party" {
		skillVsLuck = 1.0 - skillVsLuck
	}

	return skillVsLuck
}

func computeBluffingDepth(results *SimulationResults) float64 {
	if results.TotalClaims > 0 {
		// ClaimPhase bluffing: best games bluff often enough to be worth
		// challenging, and challenges pay off about half the time
		bluffScore := nearTarget(ratio(results.TotalBluffs, results.TotalClaims), 0.6, 2)
		challengeScore := nearTarget(ratio(results.TotalChallenges, results.TotalClaims), 0.4, 2)

		var balanceScore float64
		if outcomes := results.SuccessfulBluffs + results.SuccessfulCatches; outcomes > 0 {
			balanceScore = nearTarget(ratio(results.SuccessfulBluffs, outcomes), 0.5, 2)
		}

		return bluffScore*0.3 + challengeScore*0.3 + balanceScore*0.4
	}

	if results.TotalBets > 0 {
		// BettingPhase bluffing
		bluffScore := nearTarget(ratio(results.BettingBluffs, results.TotalBets), 0.3, 3)

		var foldScore float64
		if wins := results.FoldWins + results.ShowdownWins; wins > 0 {
			foldScore = nearTarget(ratio(results.FoldWins, wins), 0.35, 3)
		}

		allInScore := nearTarget(ratio(results.AllInCount, results.TotalBets), 0.10, 10)

		return bluffScore*0.35 + foldScore*0.40 + allInScore*0.25
	}

	return 0.0
}

func computeBettingEngagement(results *SimulationResults) float64 {
	if results.TotalBets == 0 {
		return 0.0
	}

	totalGames := float64(results.TotalGames)
	totalWins := 0
	for _, w := range results.Wins {
		totalWins += w
	}

	// Resolution rate
	var resolutionScore float64
	if totalGames > 0 {
		resolutionRate := float64(totalWins) / totalGames
		resolutionScore = math.Min(1.0, resolutionRate*1.5)
	}

	// All-in drama: some shoves electrify a table, constant shoving numbs it
	var dramaScore float64
	if totalGames > 0 {
		dramaScore = plateauScore(float64(results.AllInCount)/totalGames, 0.05, 0.25, 2.0, 0.3)
	}

	// Betting activity: a live table without endless grinding
	var activityScore float64
	if totalGames > 0 {
		activityScore = plateauScore(float64(results.TotalBets)/totalGames, 2.0, 20.0, 1.0/50.0, 0.5)
	}

	// Win variance
	varianceScore := 0.5
	if totalWins > 0 {
		balance := 1.0 - (float64(maxInt(results.Wins)) / float64(totalWins))
		varianceScore = balance * 2
	}

	// Showdown excitement
	showdownScore := 0.5
	if totalResolved := results.FoldWins + results.ShowdownWins; totalResolved > 0 {
		showdownScore = nearTarget(ratio(results.ShowdownWins, totalResolved), 0.75, 2)
	}

	return resolutionScore*0.30 +
		dramaScore*0.20 +
		activityScore*0.15 +
		varianceScore*0.15 +
		showdownScore*0.20
}

func calculateCoherencePenalty(g *genome.GameGenome) float64 {
	penalty := 0.0

	winTypes := make(map[genome.WinConditionType]bool)
	for _, wc := range g.WinConditions {
		winTypes[wc.Type] = true
	}

	mode := g.TurnStructure.TableauMode

	// WAR conflicts with empty_hand
	if mode == genome.TableauModeWar && winTypes[genome.WinTypeEmptyHand] {
		penalty += 0.30
	}

	// MATCH_RANK conflicts with capture_all
	if mode == genome.TableauModeMatchRank && winTypes[genome.WinTypeCaptureAll] {
		penalty += 0.20
	}

	// SEQUENCE conflicts with capture_all
	if mode == genome.TableauModeSequence && winTypes[genome.WinTypeCaptureAll] {
		penalty += 0.30
	}

	return math.Min(penalty, 0.50)
}
