// Package evolution provides genetic algorithm operators for evolving card game genomes.
package evolution

import (
	"math/rand"

	"github.com/cardgenome/evolve/evolution/operators"
	"github.com/cardgenome/evolve/genome"
)

// CrossoverOperator defines the interface for crossover operations.
type CrossoverOperator interface {
	// Crossover produces offspring from two parent genomes.
	Crossover(parent1, parent2 *genome.GameGenome, rng *rand.Rand) (*genome.GameGenome, *genome.GameGenome)

	// Probability returns the probability of crossover being applied.
	Probability() float64
}

// UniformCrossover implements uniform crossover where each gene is
// randomly selected from one of the two parents.
type UniformCrossover struct {
	probability float64
}

// NewUniformCrossover creates a new uniform crossover operator.
func NewUniformCrossover(probability float64) *UniformCrossover {
	return &UniformCrossover{probability: probability}
}

// Probability returns the crossover probability.
func (c *UniformCrossover) Probability() float64 {
	return c.probability
}

// coinFlipSwap exchanges the two referenced genes with probability 0.5,
// the per-gene mixing step of uniform crossover.
func coinFlipSwap[T any](rng *rand.Rand, a, b *T) {
	if rng.Float64() < 0.5 {
		*a, *b = *b, *a
	}
}

// Crossover produces two offspring by randomly selecting genes from parents.
func (c *UniformCrossover) Crossover(parent1, parent2 *genome.GameGenome, rng *rand.Rand) (*genome.GameGenome, *genome.GameGenome) {
	child1 := operators.CloneGenome(parent1)
	child2 := operators.CloneGenome(parent2)

	// Setup rules gene by gene
	coinFlipSwap(rng, &child1.Setup.CardsPerPlayer, &child2.Setup.CardsPerPlayer)
	coinFlipSwap(rng, &child1.Setup.DealToTableau, &child2.Setup.DealToTableau)
	coinFlipSwap(rng, &child1.Setup.StartingChips, &child2.Setup.StartingChips)
	coinFlipSwap(rng, &child1.Setup.TableauSize, &child2.Setup.TableauSize)

	// Turn structure parameters
	coinFlipSwap(rng, &child1.TurnStructure.MaxTurns, &child2.TurnStructure.MaxTurns)
	coinFlipSwap(rng, &child1.TurnStructure.TableauMode, &child2.TurnStructure.TableauMode)
	coinFlipSwap(rng, &child1.TurnStructure.SequenceDirection, &child2.TurnStructure.SequenceDirection)
	coinFlipSwap(rng, &child1.TurnStructure.IsTrickBased, &child2.TurnStructure.IsTrickBased)

	// Phase lists mix through one-point crossover instead of a swap
	child1.TurnStructure.Phases, child2.TurnStructure.Phases =
		crossoverPhases(parent1.TurnStructure.Phases, parent2.TurnStructure.Phases, rng)

	// Whole-list and whole-struct genes
	coinFlipSwap(rng, &child1.WinConditions, &child2.WinConditions)
	coinFlipSwap(rng, &child1.Effects, &child2.Effects)
	coinFlipSwap(rng, &child1.CardScoring, &child2.CardScoring)
	coinFlipSwap(rng, &child1.HandEval, &child2.HandEval)
	coinFlipSwap(rng, &child1.Teams, &child2.Teams)

	// Generate new names and identities for children
	child1.Name = parent1.Name + "-X"
	child2.Name = parent2.Name + "-X"
	child1.ID = genome.NewGenomeID(rng)
	child2.ID = genome.NewGenomeID(rng)
	child1.Generation = max(parent1.Generation, parent2.Generation) + 1
	child2.Generation = max(parent1.Generation, parent2.Generation) + 1

	return child1, child2
}

// maxChildPhases caps how long a crossover child's phase list can grow;
// concatenating two parents would otherwise double turn length every
// generation.
const maxChildPhases = 5

// crossoverPhases performs one-point crossover on phase lists.
func crossoverPhases(phases1, phases2 []genome.Phase, rng *rand.Rand) ([]genome.Phase, []genome.Phase) {
	if len(phases1) == 0 && len(phases2) == 0 {
		return nil, nil
	}
	if len(phases1) == 0 {
		return clonePhases(phases2), nil
	}
	if len(phases2) == 0 {
		return nil, clonePhases(phases1)
	}

	// Pick crossover points: child1 = phases1[:point1] + phases2[point2:],
	// child2 the complement
	point1 := rng.Intn(len(phases1) + 1)
	point2 := rng.Intn(len(phases2) + 1)

	child1Phases := splicePhases(phases1[:point1], phases2[point2:])
	child2Phases := splicePhases(phases2[:point2], phases1[point1:])

	// An empty splice falls back to a full copy of one parent
	if len(child1Phases) == 0 {
		child1Phases = clonePhases(phases1)
	}
	if len(child2Phases) == 0 {
		child2Phases = clonePhases(phases2)
	}

	return capPhases(child1Phases), capPhases(child2Phases)
}

// splicePhases deep-copies head then tail into one child phase list.
func splicePhases(head, tail []genome.Phase) []genome.Phase {
	out := make([]genome.Phase, 0, len(head)+len(tail))
	for _, p := range head {
		out = append(out, operators.ClonePhase(p))
	}
	for _, p := range tail {
		out = append(out, operators.ClonePhase(p))
	}
	return out
}

// capPhases truncates a child phase list to the crossover limit.
func capPhases(phases []genome.Phase) []genome.Phase {
	if len(phases) > maxChildPhases {
		return phases[:maxChildPhases]
	}
	return phases
}

func clonePhases(phases []genome.Phase) []genome.Phase {
	if phases == nil {
		return nil
	}
	result := make([]genome.Phase, len(phases))
	for i, p := range phases {
		result[i] = operators.ClonePhase(p)
	}
	return result
}

// SinglePointCrossover implements single-point crossover on the linear genome representation.
type SinglePointCrossover struct {
	probability float64
}

// NewSinglePointCrossover creates a new single-point crossover operator.
func NewSinglePointCrossover(probability float64) *SinglePointCrossover {
	return &SinglePointCrossover{probability: probability}
}

// Probability returns the crossover probability.
func (c *SinglePointCrossover) Probability() float64 {
	return c.probability
}

// Crossover produces two offspring by selecting a random crossover point.
func (c *SinglePointCrossover) Crossover(parent1, parent2 *genome.GameGenome, rng *rand.Rand) (*genome.GameGenome, *genome.GameGenome) {
	child1 := operators.CloneGenome(parent1)
	child2 := operators.CloneGenome(parent2)

	// One cut across the genome's four gene groups: everything in the
	// chosen group trades sides together
	switch rng.Intn(4) {
	case 0: // setup
		child1.Setup, child2.Setup = child2.Setup, child1.Setup
	case 1: // phases and turn structure
		child1.TurnStructure, child2.TurnStructure = child2.TurnStructure, child1.TurnStructure
	case 2: // win conditions and scoring
		child1.WinConditions, child2.WinConditions = child2.WinConditions, child1.WinConditions
		child1.CardScoring, child2.CardScoring = child2.CardScoring, child1.CardScoring
	case 3: // effects, hand evaluation, teams
		child1.Effects, child2.Effects = child2.Effects, child1.Effects
		child1.HandEval, child2.HandEval = child2.HandEval, child1.HandEval
		child1.Teams, child2.Teams = child2.Teams, child1.Teams
	}

	// Generate new names and identities for children
	child1.Name = parent1.Name + "-X"
	child2.Name = parent2.Name + "-X"
	child1.ID = genome.NewGenomeID(rng)
	child2.ID = genome.NewGenomeID(rng)
	child1.Generation = max(parent1.Generation, parent2.Generation) + 1
	child2.Generation = max(parent1.Generation, parent2.Generation) + 1

	return child1, child2
}
