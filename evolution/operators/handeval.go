package operators

import (
	"math/rand"

	"github.com/cardgenome/evolve/genome"
)

// ModifyHandPatternMutation perturbs the priority of one hand pattern,
// letting evolution reorder a showdown's hand ranking ladder.
type ModifyHandPatternMutation struct {
	BaseMutation
}

// NewModifyHandPatternMutation creates a new hand pattern mutation.
func NewModifyHandPatternMutation(probability float64) *ModifyHandPatternMutation {
	return &ModifyHandPatternMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "ModifyHandPattern",
		},
	}
}

// Mutate shifts one pattern's priority by 5-10 in either direction.
func (m *ModifyHandPatternMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	if g.HandEval == nil || len(g.HandEval.Patterns) == 0 {
		return g
	}

	clone := CloneGenome(g)
	idx := rng.Intn(len(clone.HandEval.Patterns))
	pattern := &clone.HandEval.Patterns[idx]

	delta := rng.Intn(6) + 5 // 5-10
	if rng.Float64() < 0.5 {
		if int(pattern.Priority) > delta {
			pattern.Priority -= uint8(delta)
		} else {
			pattern.Priority = 1
		}
	} else if int(pattern.Priority)+delta <= 255 {
		pattern.Priority += uint8(delta)
	}

	return clone
}

// ModifyCardValueMutation perturbs one card's point value in a
// point-total evaluation (Blackjack-style scoring tables).
type ModifyCardValueMutation struct {
	BaseMutation
}

// NewModifyCardValueMutation creates a new card value mutation.
func NewModifyCardValueMutation(probability float64) *ModifyCardValueMutation {
	return &ModifyCardValueMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "ModifyCardValue",
		},
	}
}

// Mutate shifts one card value by 1-2 in either direction.
func (m *ModifyCardValueMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	if g.HandEval == nil || len(g.HandEval.CardValues) == 0 {
		return g
	}

	clone := CloneGenome(g)
	idx := rng.Intn(len(clone.HandEval.CardValues))
	value := &clone.HandEval.CardValues[idx]

	delta := uint8(rng.Intn(2) + 1) // 1-2
	if rng.Float64() < 0.5 && value.Value > delta {
		value.Value -= delta
	} else if int(value.Value)+int(delta) <= 20 {
		value.Value += delta
	}

	return clone
}

// RegisterHandEvalMutations adds the hand evaluation operators to a
// registry.
func RegisterHandEvalMutations(r *Registry) {
	r.Register(NewModifyHandPatternMutation(0.03))
	r.Register(NewModifyCardValueMutation(0.03))
}
