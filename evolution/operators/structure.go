package operators

import (
	"math/rand"

	"github.com/cardgenome/evolve/genome"
)

// ShuffleAllPhasesMutation rewrites the entire phase ordering at once - a
// much larger structural jump than SwapPhaseOrder, used to escape local
// optima where only the phase sequence is wrong.
type ShuffleAllPhasesMutation struct {
	BaseMutation
}

// NewShuffleAllPhasesMutation creates a new shuffle-all mutation.
func NewShuffleAllPhasesMutation(probability float64) *ShuffleAllPhasesMutation {
	return &ShuffleAllPhasesMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "ShuffleAllPhases",
		},
	}
}

// Mutate randomly permutes the phase list.
func (m *ShuffleAllPhasesMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := CloneGenome(g)
	phases := clone.TurnStructure.Phases
	if len(phases) < 2 {
		return clone
	}
	rng.Shuffle(len(phases), func(i, j int) {
		phases[i], phases[j] = phases[j], phases[i]
	})
	return clone
}

// ReplacePhaseMutation swaps one phase for a freshly generated phase,
// sampled by randomPhase (draw/play heavy, discard medium, trick/claim
// light); the new phase can be of the same kind as the one it replaces.
type ReplacePhaseMutation struct {
	BaseMutation
}

// NewReplacePhaseMutation creates a new replace phase mutation.
func NewReplacePhaseMutation(probability float64) *ReplacePhaseMutation {
	return &ReplacePhaseMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "ReplacePhase",
		},
	}
}

// Mutate replaces a random phase with a random new one.
func (m *ReplacePhaseMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := CloneGenome(g)
	phases := clone.TurnStructure.Phases
	if len(phases) == 0 {
		return clone
	}
	pos := rng.Intn(len(phases))
	phases[pos] = randomPhase(rng)
	return clone
}

// randomPhase samples a new phase with the catalogue's weighting:
// draw 30 / play 30 / discard 20 / trick 10 / claim 10.
func randomPhase(rng *rand.Rand) genome.Phase {
	roll := rng.Intn(100)
	switch {
	case roll < 30:
		return &genome.DrawPhase{
			Source:    genome.LocationDeck,
			Count:     rng.Intn(3) + 1,
			Mandatory: rng.Float64() < 0.5,
		}
	case roll < 60:
		return &genome.PlayPhase{
			Target:       genome.LocationDiscard,
			MinCards:     1,
			MaxCards:     1,
			Mandatory:    rng.Float64() < 0.5,
			PassIfUnable: true,
		}
	case roll < 80:
		return &genome.DiscardPhase{
			Target:    genome.LocationDiscard,
			Count:     1,
			Mandatory: rng.Float64() < 0.5,
		}
	case roll < 90:
		return &genome.TrickPhase{
			LeadSuitRequired: rng.Float64() < 0.8,
			TrumpSuit:        255,
			HighCardWins:     true,
		}
	default:
		return &genome.ClaimPhase{
			MinCards:       1,
			MaxCards:       rng.Intn(4) + 1,
			SequentialRank: rng.Float64() < 0.7,
			AllowChallenge: true,
			PilePenalty:    rng.Float64() < 0.5,
		}
	}
}

// AddClaimPhaseMutation introduces bluffing mechanics.
type AddClaimPhaseMutation struct {
	BaseMutation
	maxPhases int
}

// NewAddClaimPhaseMutation creates a new add claim phase mutation.
func NewAddClaimPhaseMutation(probability float64) *AddClaimPhaseMutation {
	return &AddClaimPhaseMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "AddClaimPhase",
		},
		maxPhases: 8,
	}
}

// Mutate adds a claim phase unless one already exists.
func (m *AddClaimPhaseMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := CloneGenome(g)
	if len(clone.TurnStructure.Phases) >= m.maxPhases {
		return clone
	}
	if len(findPhaseIndices[*genome.ClaimPhase](clone.TurnStructure.Phases)) > 0 {
		return clone
	}

	newPhase := &genome.ClaimPhase{
		MinCards:       1,
		MaxCards:       rng.Intn(4) + 1,
		SequentialRank: rng.Float64() < 0.7,
		AllowChallenge: true,
		PilePenalty:    rng.Float64() < 0.5,
	}
	pos := rng.Intn(len(clone.TurnStructure.Phases) + 1)
	clone.TurnStructure.Phases = insertPhase(clone.TurnStructure.Phases, pos, newPhase)
	return clone
}

// ModifyClaimPhaseMutation perturbs one claim phase field.
type ModifyClaimPhaseMutation struct {
	BaseMutation
}

// NewModifyClaimPhaseMutation creates a new modify claim phase mutation.
func NewModifyClaimPhaseMutation(probability float64) *ModifyClaimPhaseMutation {
	return &ModifyClaimPhaseMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "ModifyClaimPhase",
		},
	}
}

// Mutate modifies a random claim phase field.
func (m *ModifyClaimPhaseMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := CloneGenome(g)
	indices := findPhaseIndices[*genome.ClaimPhase](clone.TurnStructure.Phases)
	if len(indices) == 0 {
		return clone
	}
	idx := indices[rng.Intn(len(indices))]
	newPhase := *clone.TurnStructure.Phases[idx].(*genome.ClaimPhase)

	switch rng.Intn(4) {
	case 0:
		newPhase.MaxCards = clampInt(newPhase.MaxCards+rng.Intn(3)-1, 1, 4)
		if newPhase.MinCards > newPhase.MaxCards {
			newPhase.MinCards = newPhase.MaxCards
		}
	case 1:
		newPhase.SequentialRank = !newPhase.SequentialRank
	case 2:
		newPhase.AllowChallenge = !newPhase.AllowChallenge
	case 3:
		newPhase.PilePenalty = !newPhase.PilePenalty
	}

	clone.TurnStructure.Phases[idx] = &newPhase
	return clone
}

// RemoveBettingPhaseMutation strips betting from a game, clearing chips so
// the result stays coherent.
type RemoveBettingPhaseMutation struct {
	BaseMutation
}

// NewRemoveBettingPhaseMutation creates a new remove betting phase mutation.
func NewRemoveBettingPhaseMutation(probability float64) *RemoveBettingPhaseMutation {
	return &RemoveBettingPhaseMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "RemoveBettingPhase",
		},
	}
}

// Mutate removes one betting phase; chips are cleared when the last one goes.
func (m *RemoveBettingPhaseMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := CloneGenome(g)
	indices := findPhaseIndices[*genome.BettingPhase](clone.TurnStructure.Phases)
	if len(indices) == 0 || len(clone.TurnStructure.Phases) <= 1 {
		return clone
	}

	idx := indices[rng.Intn(len(indices))]
	clone.TurnStructure.Phases = removePhase(clone.TurnStructure.Phases, idx)

	if len(indices) == 1 {
		clone.Setup.StartingChips = 0
	}
	return clone
}

// AddBiddingPhaseMutation introduces Spades-style contract bidding. Gated
// on a TrickPhase being present (contracts are counted in tricks) and at
// most one bidding phase per genome.
type AddBiddingPhaseMutation struct {
	BaseMutation
	maxPhases int
}

// NewAddBiddingPhaseMutation creates a new add bidding phase mutation.
func NewAddBiddingPhaseMutation(probability float64) *AddBiddingPhaseMutation {
	return &AddBiddingPhaseMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "AddBiddingPhase",
		},
		maxPhases: 8,
	}
}

// Mutate prepends a bidding phase when the genome plays tricks.
func (m *AddBiddingPhaseMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := CloneGenome(g)
	if len(clone.TurnStructure.Phases) >= m.maxPhases {
		return clone
	}
	if len(findPhaseIndices[*genome.TrickPhase](clone.TurnStructure.Phases)) == 0 {
		return clone
	}
	if len(findPhaseIndices[*genome.BiddingPhase](clone.TurnStructure.Phases)) > 0 {
		return clone
	}

	maxBid := clone.Setup.CardsPerPlayer
	if maxBid <= 0 {
		maxBid = 13
	}
	newPhase := &genome.BiddingPhase{
		MinBid:                1,
		MaxBid:                maxBid,
		AllowNil:              rng.Float64() < 0.5,
		PointsPerTrickBid:     10,
		OvertrickPoints:       1,
		FailedContractPenalty: 10,
		NilBonus:              100,
		NilPenalty:            100,
		BagLimit:              10,
		BagPenalty:            100,
	}

	// Bidding always precedes play
	clone.TurnStructure.Phases = insertPhase(clone.TurnStructure.Phases, 0, newPhase)
	return clone
}

// RemoveBiddingPhaseMutation drops contract bidding.
type RemoveBiddingPhaseMutation struct {
	BaseMutation
}

// NewRemoveBiddingPhaseMutation creates a new remove bidding phase mutation.
func NewRemoveBiddingPhaseMutation(probability float64) *RemoveBiddingPhaseMutation {
	return &RemoveBiddingPhaseMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "RemoveBiddingPhase",
		},
	}
}

// Mutate removes one bidding phase.
func (m *RemoveBiddingPhaseMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := CloneGenome(g)
	indices := findPhaseIndices[*genome.BiddingPhase](clone.TurnStructure.Phases)
	if len(indices) == 0 || len(clone.TurnStructure.Phases) <= 1 {
		return clone
	}
	idx := indices[rng.Intn(len(indices))]
	clone.TurnStructure.Phases = removePhase(clone.TurnStructure.Phases, idx)
	return clone
}

// ModifyBiddingPhaseMutation perturbs one contract-scoring knob.
type ModifyBiddingPhaseMutation struct {
	BaseMutation
}

// NewModifyBiddingPhaseMutation creates a new modify bidding phase mutation.
func NewModifyBiddingPhaseMutation(probability float64) *ModifyBiddingPhaseMutation {
	return &ModifyBiddingPhaseMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "ModifyBiddingPhase",
		},
	}
}

// Mutate modifies one field of a random bidding phase.
func (m *ModifyBiddingPhaseMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := CloneGenome(g)
	indices := findPhaseIndices[*genome.BiddingPhase](clone.TurnStructure.Phases)
	if len(indices) == 0 {
		return clone
	}
	idx := indices[rng.Intn(len(indices))]
	newPhase := *clone.TurnStructure.Phases[idx].(*genome.BiddingPhase)

	switch rng.Intn(5) {
	case 0:
		newPhase.AllowNil = !newPhase.AllowNil
	case 1:
		newPhase.PointsPerTrickBid = clampInt(newPhase.PointsPerTrickBid+rng.Intn(11)-5, 1, 20)
	case 2:
		newPhase.OvertrickPoints = clampInt(newPhase.OvertrickPoints+rng.Intn(3)-1, 0, 5)
	case 3:
		newPhase.BagLimit = clampInt(newPhase.BagLimit+rng.Intn(5)-2, 3, 15)
	case 4:
		newPhase.NilBonus = clampInt(newPhase.NilBonus+rng.Intn(101)-50, 50, 200)
		newPhase.NilPenalty = newPhase.NilBonus
	}

	clone.TurnStructure.Phases[idx] = &newPhase
	return clone
}

// RegisterStructureMutations adds the larger structural operators to a
// registry.
func RegisterStructureMutations(r *Registry) {
	r.Register(NewShuffleAllPhasesMutation(0.02))
	r.Register(NewReplacePhaseMutation(0.05))
	r.Register(NewAddClaimPhaseMutation(0.03))
	r.Register(NewModifyClaimPhaseMutation(0.03))
	r.Register(NewRemoveBettingPhaseMutation(0.02))
	r.Register(NewAddBiddingPhaseMutation(0.02))
	r.Register(NewRemoveBiddingPhaseMutation(0.02))
	r.Register(NewModifyBiddingPhaseMutation(0.03))
}
