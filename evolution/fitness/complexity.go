package fitness

import (
	"math"

	"github.com/cardgenome/evolve/genome"
)

// ComplexityBreakdown provides detailed breakdown of cognitive complexity sources.
type ComplexityBreakdown struct {
	// Core mechanics
	PhaseExplanationCost float64 // Cost of explaining each phase type
	ConditionComplexity  float64 // Nesting depth, conjunctions
	SpecialEffectsCost   float64 // Unique rules to memorize

	// State tracking (invisible but costly)
	MemoryRequirements float64 // Cards to track, hidden info
	StateTrackingCost  float64 // Trump suit, who passed, etc.

	// Familiarity discounts
	FamiliarPatternDiscount float64 // Trick-taking, draw-play, etc.

	// Final score
	TotalComplexity      float64 // 0.0 = trivial, 1.0 = very complex
	ExplanationSentences  int    // Estimated sentences to explain
}

// InvertedScore returns 1.0 - complexity for fitness (simpler = better).
func (c *ComplexityBreakdown) InvertedScore() float64 {
	return math.Max(0.0, 1.0-c.TotalComplexity)
}

// complexityWeights are the fixed contributions of each cost component to
// the raw (pre-discount) complexity score; they sum to 1.0.
var complexityWeights = struct {
	phase, condition, effects, memory, state, implicit float64
}{
	phase: 0.22, condition: 0.20, effects: 0.15,
	memory: 0.18, state: 0.10, implicit: 0.15,
}

// CalculateComplexity computes cognitive complexity of a game's rules.
func CalculateComplexity(g *genome.GameGenome) *ComplexityBreakdown {
	phaseCost := calculatePhaseCost(g)
	conditionCost := calculateConditionComplexity(g)
	effectsCost := calculateEffectsCost(g)
	memoryCost := calculateMemoryCost(g)
	stateCost := calculateStateTrackingCost(g)
	implicitCost := calculateImplicitComplexity(g)
	discount := calculateFamiliarityDiscount(g)

	w := complexityWeights
	rawComplexity := phaseCost*w.phase +
		capRatio(conditionCost, 0.40)*w.condition +
		capRatio(effectsCost, 0.15)*w.effects +
		memoryCost*w.memory +
		capRatio(stateCost, 0.40)*w.state +
		implicitCost*w.implicit

	// Familiarity discount is multiplicative and capped at 40%.
	discountFactor := math.Min(0.40, discount*0.50)
	total := rawComplexity * (1.0 - discountFactor)

	// Power transform spreads scores out across the 0-1 range.
	total = math.Min(1.0, math.Pow(total, 0.6))

	return &ComplexityBreakdown{
		PhaseExplanationCost:    phaseCost,
		ConditionComplexity:     conditionCost,
		SpecialEffectsCost:      effectsCost,
		MemoryRequirements:      memoryCost,
		StateTrackingCost:       stateCost,
		FamiliarPatternDiscount: discount,
		TotalComplexity:         total,
		ExplanationSentences:    estimateExplanationSentences(g),
	}
}

// capRatio scales v against ceiling and clamps the result to at most 1.0.
func capRatio(v, ceiling float64) float64 {
	return math.Min(1.0, v/ceiling)
}

// ComputeRulesComplexity returns the inverted complexity score for fitness.
// Returns 0.0-1.0 where 1.0 = simplest, 0.0 = most complex.
func ComputeRulesComplexity(g *genome.GameGenome) float64 {
	return CalculateComplexity(g).InvertedScore()
}

// baselinePhaseCosts are the "explanation units" for a phase type with no
// extra parameters attached.
var baselinePhaseCosts = map[uint8]float64{
	genome.PhaseTypeDraw:    0.08, // "Draw a card"
	genome.PhaseTypePlay:    0.15, // May have conditions
	genome.PhaseTypeDiscard: 0.10, // Simple
	genome.PhaseTypeTrick:   0.45, // Lead, follow suit, trump, highest wins, scoring
	genome.PhaseTypeBetting: 0.50, // Check, bet, call, raise, fold, all-in, pot
	genome.PhaseTypeClaim:   0.55, // Claim, lie option, challenge, truth check
	genome.PhaseTypeBidding: 0.40, // Contract bidding
}

func calculatePhaseCost(g *genome.GameGenome) float64 {
	cost := 0.0
	distinctTypes := make(map[uint8]bool)

	for _, p := range g.TurnStructure.Phases {
		phaseType := p.PhaseType()
		distinctTypes[phaseType] = true
		baseCost := baselinePhaseCosts[phaseType]
		if baseCost == 0 {
			baseCost = 0.10
		}
		cost += baseCost + phaseParameterCost(p)
	}

	numPhases := len(g.TurnStructure.Phases)
	numDistinct := len(distinctTypes)
	if numDuplicates := numPhases - numDistinct; numDuplicates > 0 {
		cost = math.Max(0.1, cost-float64(numDuplicates)*0.10)
	}

	// Bonus for many distinct phase types.
	cost += float64(numDistinct) * 0.06

	return math.Min(1.0, cost)
}

// phaseParameterCost adds the incremental cost a phase's own parameters
// bring on top of its baseline type cost.
func phaseParameterCost(p genome.Phase) float64 {
	switch phase := p.(type) {
	case *genome.DrawPhase:
		extra := 0.0
		if phase.Source == genome.LocationOpponentHand {
			extra += 0.15
		}
		if !phase.Mandatory {
			extra += 0.05
		}
		if phase.Condition != nil {
			extra += 0.12
		}
		return extra
	case *genome.PlayPhase:
		if phase.ValidPlayCondition != nil {
			return 0.15
		}
	case *genome.DiscardPhase:
		extra := 0.0
		if phase.Count > 1 {
			extra += 0.10
		}
		if phase.MatchCondition != nil {
			extra += 0.12
		}
		return extra
	case *genome.ClaimPhase:
		extra := 0.0
		if phase.SequentialRank {
			extra += 0.05
		}
		if phase.PilePenalty {
			extra += 0.05
		}
		return extra
	}
	return 0.0
}

// countConditionClauses counts the leaf comparisons in a condition tree, so
// a compound AND/OR node costs as much as the clauses it actually combines
// instead of being flattened to a single clause.
func countConditionClauses(c *genome.Condition) int {
	if c == nil {
		return 0
	}
	if c.Kind != genome.ConditionCompound {
		return 1
	}
	total := 0
	for _, child := range c.Children {
		total += countConditionClauses(child)
	}
	return total
}

func calculateConditionComplexity(g *genome.GameGenome) float64 {
	totalClauses := len(g.Effects) // special effects count as implicit conditions
	conditionCount := 0

	for _, p := range g.TurnStructure.Phases {
		switch phase := p.(type) {
		case *genome.DrawPhase:
			if phase.Condition != nil {
				conditionCount++
				totalClauses += countConditionClauses(phase.Condition)
			}
		case *genome.PlayPhase:
			if phase.ValidPlayCondition != nil {
				conditionCount++
				totalClauses += countConditionClauses(phase.ValidPlayCondition)
			}
		case *genome.DiscardPhase:
			if phase.MatchCondition != nil {
				conditionCount++
				totalClauses += countConditionClauses(phase.MatchCondition)
			}
		}
	}

	if conditionCount == 0 && len(g.Effects) == 0 {
		return 0.0
	}

	presenceScore := math.Min(0.4, 0.15+float64(conditionCount)*0.08)
	clauseScore := math.Min(1.0, float64(totalClauses)/8.0)

	return presenceScore*0.50 + clauseScore*0.50
}

func calculateEffectsCost(g *genome.GameGenome) float64 {
	if len(g.Effects) == 0 {
		return 0.0
	}

	effectTypes := make(map[genome.EffectType]bool)
	for _, effect := range g.Effects {
		effectTypes[effect.Effect] = true
	}
	uniqueTypes := len(effectTypes)
	totalEffects := len(g.Effects)

	typeCost := float64(uniqueTypes) * 0.15
	var exceptionCost float64
	if totalEffects > uniqueTypes {
		exceptionCost = float64(totalEffects-uniqueTypes) * 0.05
	}

	cost := typeCost + exceptionCost
	// Effects printed on the cards themselves need no memorizing.
	if g.Setup.CustomPrintedDeck {
		cost *= 0.20
	}

	return math.Min(1.0, cost)
}

func calculateMemoryCost(g *genome.GameGenome) float64 {
	cost := 0.08 // hidden-information baseline

	for _, wc := range g.WinConditions {
		switch wc.Type {
		case genome.WinTypeMostCaptured:
			cost += 0.20
		case genome.WinTypeLowScore:
			cost += 0.15
		case genome.WinTypeBestHand:
			cost += 0.35 // Poker hand rankings
		}
	}

	for _, p := range g.TurnStructure.Phases {
		switch phase := p.(type) {
		case *genome.TrickPhase:
			cost += 0.30 // Card counting
		case *genome.ClaimPhase:
			cost += 0.25 // Track claims and opponent behavior
		case *genome.BettingPhase:
			cost += 0.15 // Pot math, position
		case *genome.DiscardPhase:
			if phase.Count > 1 {
				cost += 0.15 // Pair/set matching
			}
		}
	}

	// Which ranks are wild is one more thing to hold in mind
	cost += float64(len(g.Setup.WildCards)) * 0.05

	return math.Min(1.0, cost)
}

func calculateStateTrackingCost(g *genome.GameGenome) float64 {
	cost := 0.0

	for _, p := range g.TurnStructure.Phases {
		switch p.(type) {
		case *genome.TrickPhase:
			cost += 0.15 // Trump suit, lead suit
		case *genome.BettingPhase:
			cost += 0.20 // Pot, current bet, who's in
		}
	}

	for _, effect := range g.Effects {
		switch effect.Effect {
		case genome.EffectReverse:
			cost += 0.10
		case genome.EffectSkipNext:
			cost += 0.05
		}
	}

	// A trump that moves between hands is extra state to re-establish
	if g.Setup.TrumpMode != genome.TrumpFixed {
		cost += 0.10
	}
	// Each seat past two adds table-state to follow
	if extra := g.EffectivePlayerCount() - 2; extra > 0 {
		cost += float64(extra) * 0.05
	}

	return math.Min(1.0, cost)
}

func calculateImplicitComplexity(g *genome.GameGenome) float64 {
	cost := 0.0

	for _, wc := range g.WinConditions {
		switch wc.Type {
		case genome.WinTypeBestHand:
			cost += 0.50 // Poker hand rankings
		case genome.WinTypeLowScore:
			cost += 0.20 // Point counting
		case genome.WinTypeMostCaptured:
			cost += 0.15 // Capture rules
		}
	}

	for _, p := range g.TurnStructure.Phases {
		if phase, ok := p.(*genome.PlayPhase); ok {
			if phase.Target == genome.LocationTableau && phase.MaxCards > 1 {
				cost += 0.25 // Meld/run formation
				break
			}
		}
	}

	cost += float64(len(g.CardScoring)) * 0.10

	return math.Min(1.0, cost)
}

func calculateFamiliarityDiscount(g *genome.GameGenome) float64 {
	var hasTrick, hasDraw, hasPlay, hasBetting bool

	for _, p := range g.TurnStructure.Phases {
		switch p.(type) {
		case *genome.TrickPhase:
			hasTrick = true
		case *genome.DrawPhase:
			hasDraw = true
		case *genome.PlayPhase:
			hasPlay = true
		case *genome.BettingPhase:
			hasBetting = true
		}
	}

	discount := 0.0
	if hasTrick {
		discount += 0.15 // Trick-taking is familiar (Hearts, Spades, Bridge)
	}
	if hasDraw && hasPlay && len(g.TurnStructure.Phases) <= 3 {
		discount += 0.10 // Simple draw-play pattern (Crazy Eights, Uno)
	}
	if hasBetting {
		discount += 0.08 // Betting is familiar (Poker)
	}
	if len(g.TurnStructure.Phases) == 1 {
		if _, ok := g.TurnStructure.Phases[0].(*genome.PlayPhase); ok {
			discount += 0.25 // War is trivial
		}
	}

	return math.Min(1.0, discount)
}

// phaseExplanationSentences is how many sentences it takes to explain one
// occurrence of a phase type, before any parameter-driven extras.
var phaseExplanationSentences = map[uint8]int{
	genome.PhaseTypeDraw:    1,
	genome.PhaseTypePlay:    2,
	genome.PhaseTypeDiscard: 1,
	genome.PhaseTypeTrick:   5, // Lead, follow, trump, resolution, scoring
	genome.PhaseTypeBetting: 4, // Check, bet, raise, fold
	genome.PhaseTypeClaim:   3, // Claim, challenge, resolution
	genome.PhaseTypeBidding: 3, // Bidding rules
}

func estimateExplanationSentences(g *genome.GameGenome) int {
	sentences := 2 // Setup

	for _, p := range g.TurnStructure.Phases {
		n, ok := phaseExplanationSentences[p.PhaseType()]
		if !ok {
			n = 1
		}
		sentences += n
		if phase, ok := p.(*genome.PlayPhase); ok && phase.ValidPlayCondition != nil {
			sentences++
		}
	}

	if len(g.Effects) > 0 {
		effectTypes := make(map[genome.EffectType]bool)
		for _, e := range g.Effects {
			effectTypes[e.Effect] = true
		}
		sentences += len(effectTypes) * 2
	}

	sentences += len(g.WinConditions)

	return sentences
}
