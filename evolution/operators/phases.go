// Package operators provides genetic mutation operators for evolving card game genomes.
package operators

import (
	"math/rand"

	"github.com/cardgenome/evolve/genome"
)

// defaultMaxPhases bounds how long a turn can grow through Add*Phase
// mutations.
const defaultMaxPhases = 8

// allSuits is the sample space for random trump/breaking-suit picks.
var allSuits = []uint8{
	genome.SuitHearts,
	genome.SuitDiamonds,
	genome.SuitClubs,
	genome.SuitSpades,
}

// drawSources and playTargets are the locations phase mutations sample.
var drawSources = []genome.Location{
	genome.LocationDeck,
	genome.LocationDiscard,
	genome.LocationTableau,
}

var playTargets = []genome.Location{
	genome.LocationDiscard,
	genome.LocationTableau,
}

// addPhase clones g and inserts a freshly built phase at a random spot,
// refusing to grow past maxPhases. Reports whether the phase went in.
func addPhase(g *genome.GameGenome, rng *rand.Rand, maxPhases int, build func() genome.Phase) (*genome.GameGenome, bool) {
	clone := CloneGenome(g)
	if len(clone.TurnStructure.Phases) >= maxPhases {
		return clone, false
	}
	pos := rng.Intn(len(clone.TurnStructure.Phases) + 1)
	clone.TurnStructure.Phases = insertPhase(clone.TurnStructure.Phases, pos, build())
	return clone, true
}

// modifyPhase clones g, picks a random phase of type T, and swaps in the
// result of mutate applied to it. Returns the clone unchanged when no
// phase of that type exists.
func modifyPhase[T genome.Phase](g *genome.GameGenome, rng *rand.Rand, mutate func(T) genome.Phase) *genome.GameGenome {
	clone := CloneGenome(g)
	indices := findPhaseIndices[T](clone.TurnStructure.Phases)
	if len(indices) == 0 {
		return clone
	}
	idx := indices[rng.Intn(len(indices))]
	clone.TurnStructure.Phases[idx] = mutate(clone.TurnStructure.Phases[idx].(T))
	return clone
}

// AddDrawPhaseMutation adds a new draw phase to the turn structure.
type AddDrawPhaseMutation struct {
	BaseMutation
	maxPhases int
}

// NewAddDrawPhaseMutation creates a new add draw phase mutation.
func NewAddDrawPhaseMutation(probability float64) *AddDrawPhaseMutation {
	return &AddDrawPhaseMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "AddDrawPhase",
		},
		maxPhases: defaultMaxPhases,
	}
}

// Mutate adds a new draw phase at a random position.
func (m *AddDrawPhaseMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone, _ := addPhase(g, rng, m.maxPhases, func() genome.Phase {
		return &genome.DrawPhase{
			Source:    drawSources[rng.Intn(len(drawSources))],
			Count:     rng.Intn(3) + 1,     // 1-3 cards
			Mandatory: rng.Float64() < 0.7, // 70% chance mandatory
		}
	})
	return clone
}

// AddPlayPhaseMutation adds a new play phase to the turn structure.
type AddPlayPhaseMutation struct {
	BaseMutation
	maxPhases int
}

// NewAddPlayPhaseMutation creates a new add play phase mutation.
func NewAddPlayPhaseMutation(probability float64) *AddPlayPhaseMutation {
	return &AddPlayPhaseMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "AddPlayPhase",
		},
		maxPhases: defaultMaxPhases,
	}
}

// Mutate adds a new play phase at a random position.
func (m *AddPlayPhaseMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone, _ := addPhase(g, rng, m.maxPhases, func() genome.Phase {
		return &genome.PlayPhase{
			Target:       playTargets[rng.Intn(len(playTargets))],
			MinCards:     1,
			MaxCards:     rng.Intn(3) + 1,     // 1-3 cards
			PassIfUnable: rng.Float64() < 0.5, // 50% chance can pass
		}
	})
	return clone
}

// AddDiscardPhaseMutation adds a new discard phase to the turn structure.
type AddDiscardPhaseMutation struct {
	BaseMutation
	maxPhases int
}

// NewAddDiscardPhaseMutation creates a new add discard phase mutation.
func NewAddDiscardPhaseMutation(probability float64) *AddDiscardPhaseMutation {
	return &AddDiscardPhaseMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "AddDiscardPhase",
		},
		maxPhases: defaultMaxPhases,
	}
}

// Mutate adds a new discard phase at a random position.
func (m *AddDiscardPhaseMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone, _ := addPhase(g, rng, m.maxPhases, func() genome.Phase {
		return &genome.DiscardPhase{
			Target:    genome.LocationDiscard,
			Count:     rng.Intn(3) + 1, // 1-3 cards
			Mandatory: rng.Float64() < 0.7,
		}
	})
	return clone
}

// AddTrickPhaseMutation adds a new trick-taking phase to the turn structure.
type AddTrickPhaseMutation struct {
	BaseMutation
	maxPhases int
}

// NewAddTrickPhaseMutation creates a new add trick phase mutation.
func NewAddTrickPhaseMutation(probability float64) *AddTrickPhaseMutation {
	return &AddTrickPhaseMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "AddTrickPhase",
		},
		maxPhases: defaultMaxPhases,
	}
}

// Mutate adds a new trick phase at a random position.
func (m *AddTrickPhaseMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone, added := addPhase(g, rng, m.maxPhases, func() genome.Phase {
		newPhase := &genome.TrickPhase{
			LeadSuitRequired: rng.Float64() < 0.8,
			TrumpSuit:        255, // No trump by default
			HighCardWins:     rng.Float64() < 0.9,
		}
		if rng.Float64() < 0.4 {
			newPhase.TrumpSuit = allSuits[rng.Intn(len(allSuits))]
		}
		// Set breaking suit for games like Hearts
		if rng.Float64() < 0.3 {
			newPhase.BreakingSuit = allSuits[rng.Intn(len(allSuits))]
		}
		return newPhase
	})
	if added {
		clone.TurnStructure.IsTrickBased = true
	}
	return clone
}

// AddBettingPhaseMutation adds a new betting phase to the turn structure.
type AddBettingPhaseMutation struct {
	BaseMutation
	maxPhases int
}

// NewAddBettingPhaseMutation creates a new add betting phase mutation.
func NewAddBettingPhaseMutation(probability float64) *AddBettingPhaseMutation {
	return &AddBettingPhaseMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "AddBettingPhase",
		},
		maxPhases: defaultMaxPhases,
	}
}

// Mutate adds a new betting phase at a random position.
func (m *AddBettingPhaseMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	minBets := []int{5, 10, 20, 25, 50}
	clone, added := addPhase(g, rng, m.maxPhases, func() genome.Phase {
		return &genome.BettingPhase{
			MinBet:    minBets[rng.Intn(len(minBets))],
			MaxRaises: rng.Intn(4) + 1, // 1-4 raises
		}
	})
	// Betting needs chips behind it
	if added && clone.Setup.StartingChips == 0 {
		clone.Setup.StartingChips = (rng.Intn(9) + 1) * 100 // 100-900
	}
	return clone
}

// RemovePhaseMutation removes a phase from the turn structure.
type RemovePhaseMutation struct {
	BaseMutation
	minPhases int
}

// NewRemovePhaseMutation creates a new remove phase mutation.
func NewRemovePhaseMutation(probability float64) *RemovePhaseMutation {
	return &RemovePhaseMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "RemovePhase",
		},
		minPhases: 1, // Must have at least 1 phase
	}
}

// Mutate removes a random phase from the turn structure.
func (m *RemovePhaseMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := CloneGenome(g)

	if len(clone.TurnStructure.Phases) <= m.minPhases {
		return clone // Can't remove more phases
	}

	pos := rng.Intn(len(clone.TurnStructure.Phases))
	clone.TurnStructure.Phases = removePhase(clone.TurnStructure.Phases, pos)

	return clone
}

// SwapPhaseOrderMutation swaps the order of two phases.
type SwapPhaseOrderMutation struct {
	BaseMutation
}

// NewSwapPhaseOrderMutation creates a new swap phase order mutation.
func NewSwapPhaseOrderMutation(probability float64) *SwapPhaseOrderMutation {
	return &SwapPhaseOrderMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "SwapPhaseOrder",
		},
	}
}

// Mutate swaps the position of two random phases.
func (m *SwapPhaseOrderMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := CloneGenome(g)

	phases := clone.TurnStructure.Phases
	if len(phases) < 2 {
		return clone // Need at least 2 phases to swap
	}

	pos1 := rng.Intn(len(phases))
	pos2 := pos1
	for pos2 == pos1 {
		pos2 = rng.Intn(len(phases))
	}
	phases[pos1], phases[pos2] = phases[pos2], phases[pos1]

	return clone
}

// ModifyDrawPhaseMutation modifies parameters of an existing draw phase.
type ModifyDrawPhaseMutation struct {
	BaseMutation
}

// NewModifyDrawPhaseMutation creates a new modify draw phase mutation.
func NewModifyDrawPhaseMutation(probability float64) *ModifyDrawPhaseMutation {
	return &ModifyDrawPhaseMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "ModifyDrawPhase",
		},
	}
}

// Mutate modifies one parameter of a random draw phase.
func (m *ModifyDrawPhaseMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	return modifyPhase(g, rng, func(p *genome.DrawPhase) genome.Phase {
		newPhase := *p
		switch rng.Intn(3) {
		case 0: // Modify source
			newPhase.Source = drawSources[rng.Intn(len(drawSources))]
		case 1: // Modify count
			newPhase.Count = clampInt(newPhase.Count+rng.Intn(3)-1, 1, 5)
		case 2: // Toggle mandatory
			newPhase.Mandatory = !newPhase.Mandatory
		}
		return &newPhase
	})
}

// ModifyPlayPhaseMutation modifies parameters of an existing play phase.
type ModifyPlayPhaseMutation struct {
	BaseMutation
}

// NewModifyPlayPhaseMutation creates a new modify play phase mutation.
func NewModifyPlayPhaseMutation(probability float64) *ModifyPlayPhaseMutation {
	return &ModifyPlayPhaseMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "ModifyPlayPhase",
		},
	}
}

// Mutate modifies one parameter of a random play phase, keeping min/max
// card counts mutually consistent.
func (m *ModifyPlayPhaseMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	return modifyPhase(g, rng, func(p *genome.PlayPhase) genome.Phase {
		newPhase := *p
		switch rng.Intn(4) {
		case 0: // Modify target
			newPhase.Target = playTargets[rng.Intn(len(playTargets))]
		case 1: // Modify min cards
			newPhase.MinCards = clampInt(newPhase.MinCards+rng.Intn(3)-1, 0, newPhase.MaxCards)
		case 2: // Modify max cards
			newPhase.MaxCards += rng.Intn(3) - 1
			if newPhase.MaxCards < 1 {
				newPhase.MaxCards = 1
			}
			if newPhase.MaxCards < newPhase.MinCards {
				newPhase.MaxCards = newPhase.MinCards
			}
		case 3: // Toggle pass if unable
			newPhase.PassIfUnable = !newPhase.PassIfUnable
		}
		return &newPhase
	})
}

// ModifyTrickPhaseMutation modifies parameters of an existing trick phase.
type ModifyTrickPhaseMutation struct {
	BaseMutation
}

// NewModifyTrickPhaseMutation creates a new modify trick phase mutation.
func NewModifyTrickPhaseMutation(probability float64) *ModifyTrickPhaseMutation {
	return &ModifyTrickPhaseMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "ModifyTrickPhase",
		},
	}
}

// Mutate modifies one parameter of a random trick phase.
func (m *ModifyTrickPhaseMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	return modifyPhase(g, rng, func(p *genome.TrickPhase) genome.Phase {
		newPhase := *p
		switch rng.Intn(4) {
		case 0: // Toggle lead suit required
			newPhase.LeadSuitRequired = !newPhase.LeadSuitRequired
		case 1: // Change trump suit
			if rng.Float64() < 0.3 {
				newPhase.TrumpSuit = 255 // No trump
			} else {
				newPhase.TrumpSuit = allSuits[rng.Intn(len(allSuits))]
			}
		case 2: // Toggle highest wins
			newPhase.HighCardWins = !newPhase.HighCardWins
		case 3: // Change breaking suit
			if rng.Float64() < 0.5 {
				newPhase.BreakingSuit = 0 // No breaking suit
			} else {
				newPhase.BreakingSuit = allSuits[rng.Intn(len(allSuits))]
			}
		}
		return &newPhase
	})
}

// ModifyBettingPhaseMutation modifies parameters of an existing betting phase.
type ModifyBettingPhaseMutation struct {
	BaseMutation
}

// NewModifyBettingPhaseMutation creates a new modify betting phase mutation.
func NewModifyBettingPhaseMutation(probability float64) *ModifyBettingPhaseMutation {
	return &ModifyBettingPhaseMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "ModifyBettingPhase",
		},
	}
}

// Mutate modifies one parameter of a random betting phase.
func (m *ModifyBettingPhaseMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	return modifyPhase(g, rng, func(p *genome.BettingPhase) genome.Phase {
		newPhase := *p
		switch rng.Intn(2) {
		case 0: // Modify min bet
			minBets := []int{5, 10, 20, 25, 50, 100}
			newPhase.MinBet = minBets[rng.Intn(len(minBets))]
		case 1: // Modify max raises
			newPhase.MaxRaises = clampInt(newPhase.MaxRaises+rng.Intn(3)-1, 1, 5)
		}
		return &newPhase
	})
}

// Helper functions

// findPhaseIndices returns the positions of every phase of type T, so a
// Modify*Mutation can pick one at random without a manual type-switch scan.
func findPhaseIndices[T genome.Phase](phases []genome.Phase) []int {
	var indices []int
	for i, p := range phases {
		if _, ok := p.(T); ok {
			indices = append(indices, i)
		}
	}
	return indices
}

func insertPhase(phases []genome.Phase, pos int, phase genome.Phase) []genome.Phase {
	result := make([]genome.Phase, len(phases)+1)
	copy(result[:pos], phases[:pos])
	result[pos] = phase
	copy(result[pos+1:], phases[pos:])
	return result
}

func removePhase(phases []genome.Phase, pos int) []genome.Phase {
	result := make([]genome.Phase, len(phases)-1)
	copy(result[:pos], phases[:pos])
	copy(result[pos:], phases[pos+1:])
	return result
}

// RegisterPhaseMutations adds all phase-related mutations to a registry.
func RegisterPhaseMutations(r *Registry) {
	r.Register(NewAddDrawPhaseMutation(0.08))
	r.Register(NewAddPlayPhaseMutation(0.08))
	r.Register(NewAddDiscardPhaseMutation(0.05))
	r.Register(NewAddTrickPhaseMutation(0.05))
	r.Register(NewAddBettingPhaseMutation(0.03))
	r.Register(NewRemovePhaseMutation(0.08))
	r.Register(NewSwapPhaseOrderMutation(0.05))
	r.Register(NewModifyDrawPhaseMutation(0.10))
	r.Register(NewModifyPlayPhaseMutation(0.10))
	r.Register(NewModifyTrickPhaseMutation(0.05))
	r.Register(NewModifyBettingPhaseMutation(0.03))
}
