// Package operators provides genetic mutation operators for evolving card game genomes.
package operators

import (
	"math/rand"

	"github.com/cardgenome/evolve/genome"
)

// MutationOperator is the interface for all mutation operators.
type MutationOperator interface {
	// Mutate applies the mutation to a genome and returns a new mutated genome.
	// The original genome should not be modified.
	Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome

	// Probability returns the probability of this mutation being applied.
	Probability() float64

	// Name returns a human-readable name for this operator.
	Name() string
}

// BaseMutation provides common functionality for mutation operators.
type BaseMutation struct {
	probability float64
	name        string
}

// Probability returns the mutation probability.
func (m *BaseMutation) Probability() float64 {
	return m.probability
}

// Name returns the mutation name.
func (m *BaseMutation) Name() string {
	return m.name
}

// ShouldApply returns true if the mutation should be applied based on probability.
func (m *BaseMutation) ShouldApply(rng *rand.Rand) bool {
	return rng.Float64() < m.probability
}

// CloneGenome creates a deep copy of a genome for mutation.
// This is necessary because Go genomes use slices which share underlying arrays.
func CloneGenome(g *genome.GameGenome) *genome.GameGenome {
	return g.Clone()
}

// cloneCondition deep-copies a condition tree so mutating the clone's
// tree never reaches back into the original genome's.
func cloneCondition(c *genome.Condition) *genome.Condition {
	return c.Clone()
}

// ClonePhase copies a phase, including any attached condition pointer so
// the clone owns its own tree rather than sharing the source's. Exported
// so crossover operators can clone individual phases the same way
// mutation operators do.
func ClonePhase(p genome.Phase) genome.Phase {
	switch phase := p.(type) {
	case *genome.DrawPhase:
		clone := *phase
		clone.Condition = cloneCondition(phase.Condition)
		return &clone
	case *genome.PlayPhase:
		clone := *phase
		clone.ValidPlayCondition = cloneCondition(phase.ValidPlayCondition)
		return &clone
	case *genome.DiscardPhase:
		clone := *phase
		clone.MatchCondition = cloneCondition(phase.MatchCondition)
		return &clone
	case *genome.TrickPhase:
		clone := *phase
		return &clone
	case *genome.BettingPhase:
		clone := *phase
		return &clone
	case *genome.BiddingPhase:
		clone := *phase
		return &clone
	case *genome.ClaimPhase:
		clone := *phase
		return &clone
	default:
		return p
	}
}

// Registry holds all available mutation operators.
type Registry struct {
	operators []MutationOperator
}

// NewRegistry creates a new mutation operator registry.
func NewRegistry() *Registry {
	return &Registry{
		operators: make([]MutationOperator, 0),
	}
}

// Register adds a mutation operator to the registry.
func (r *Registry) Register(op MutationOperator) {
	r.operators = append(r.operators, op)
}

// Operators returns all registered operators.
func (r *Registry) Operators() []MutationOperator {
	return r.operators
}

// ApplyAll applies all operators to a genome based on their probabilities.
// Returns the mutated genome. A genome that was actually changed gets an
// incremented generation and a fresh random id, so id-keyed fitness caches
// never serve the parent's score for a mutated child.
func (r *Registry) ApplyAll(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	mutated := g
	for _, op := range r.operators {
		if rng.Float64() < op.Probability() {
			mutated = op.Mutate(mutated, rng)
		}
	}
	if mutated != g {
		mutated.Generation = g.Generation + 1
		mutated.ID = genome.NewGenomeID(rng)
	}
	return mutated
}

// MutationPipeline wraps a Registry and provides a convenient Apply interface.
type MutationPipeline struct {
	registry *Registry
}

// NewMutationPipeline creates a new mutation pipeline from a registry.
func NewMutationPipeline(registry *Registry) *MutationPipeline {
	return &MutationPipeline{registry: registry}
}

// Apply applies the mutation pipeline to a genome in-place.
func (p *MutationPipeline) Apply(g *genome.GameGenome, rng *rand.Rand) {
	mutated := p.registry.ApplyAll(g, rng)
	// Copy the mutated result back to the original genome
	*g = *mutated
}

// NewDefaultPipeline creates a mutation pipeline with default probabilities.
func NewDefaultPipeline(rng *rand.Rand) *MutationPipeline {
	registry := NewRegistry()

	// Setup mutations
	RegisterSetupMutations(registry)

	// Phase mutations
	RegisterPhaseMutations(registry)
	RegisterStructureMutations(registry)

	// Condition mutations
	RegisterConditionMutations(registry)

	// Hand evaluation and team play
	RegisterHandEvalMutations(registry)
	RegisterTeamMutations(registry)

	// Coherence repair runs last so it can clean up after everything above
	RegisterCleanupMutations(registry)

	return NewMutationPipeline(registry)
}

// NewAggressivePipeline creates a mutation pipeline with higher mutation rates.
// Used when diversity drops to inject more variation.
func NewAggressivePipeline(rng *rand.Rand) *MutationPipeline {
	registry := NewRegistry()

	// Setup mutations with higher probabilities
	registry.Register(NewCardsPerPlayerMutation(0.2))
	registry.Register(NewMaxTurnsMutation(0.1))
	registry.Register(NewStartingChipsMutation(0.1))
	registry.Register(NewTableauSizeMutation(0.15))
	registry.Register(NewDealToTableauMutation(0.1))
	registry.Register(NewTableauModeMutation(0.1))
	registry.Register(NewSequenceDirectionMutation(0.1))
	registry.Register(NewTrickBasedMutation(0.1))

	// Phase mutations with higher probabilities
	registry.Register(NewAddDrawPhaseMutation(0.15))
	registry.Register(NewRemovePhaseMutation(0.15))
	registry.Register(NewModifyPlayPhaseMutation(0.15))
	registry.Register(NewAddBettingPhaseMutation(0.1))
	registry.Register(NewModifyBettingPhaseMutation(0.1))
	registry.Register(NewAddTrickPhaseMutation(0.1))
	registry.Register(NewModifyTrickPhaseMutation(0.1))
	registry.Register(NewAddDiscardPhaseMutation(0.1))
	registry.Register(NewSwapPhaseOrderMutation(0.1))

	// Condition mutations with higher probabilities
	registry.Register(NewAddConditionMutation(0.1))
	registry.Register(NewRemoveConditionMutation(0.1))
	registry.Register(NewModifyConditionMutation(0.1))

	// Structural jumps, doubled from the default rates
	registry.Register(NewShuffleAllPhasesMutation(0.04))
	registry.Register(NewReplacePhaseMutation(0.1))
	registry.Register(NewAddClaimPhaseMutation(0.06))
	registry.Register(NewPlayerCountMutation(0.06))
	registry.Register(NewTrumpSuitMutation(0.06))
	registry.Register(NewWildCardMutation(0.06))

	// Coherence repair still runs last
	registry.Register(NewCleanupOrphanedResourcesMutation(0.9))

	return NewMutationPipeline(registry)
}
