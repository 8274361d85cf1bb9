// Package operators provides genetic mutation operators for evolving card game genomes.
package operators

import (
	"math/rand"

	"github.com/cardgenome/evolve/genome"
)

// clampInt bounds v to [lo, hi].
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// pickDifferent draws a random value from choices that differs from
// current, looping only as long as there's actually another option.
func pickDifferent[T comparable](rng *rand.Rand, choices []T, current T) T {
	for {
		pick := choices[rng.Intn(len(choices))]
		if pick != current || len(choices) == 1 {
			return pick
		}
	}
}

// CardsPerPlayerMutation modifies the number of cards dealt to each player.
type CardsPerPlayerMutation struct {
	BaseMutation
	minCards int
	maxCards int
}

// NewCardsPerPlayerMutation creates a new cards per player mutation.
func NewCardsPerPlayerMutation(probability float64) *CardsPerPlayerMutation {
	return &CardsPerPlayerMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "CardsPerPlayer",
		},
		minCards: 1,
		maxCards: 26, // Half of a standard 52-card deck for 2 players
	}
}

// Mutate adjusts the cards per player within valid bounds.
func (m *CardsPerPlayerMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := CloneGenome(g)

	// Delta mutation: +/- 1-2 cards
	delta := rng.Intn(5) - 2 // -2 to +2
	if delta == 0 {
		delta = 1 // Ensure some change
	}

	clone.Setup.CardsPerPlayer = clampInt(clone.Setup.CardsPerPlayer+delta, m.minCards, m.maxCards)
	return clone
}

// MaxTurnsMutation modifies the maximum number of turns before a game ends.
type MaxTurnsMutation struct {
	BaseMutation
	minTurns int
	maxTurns int
}

// NewMaxTurnsMutation creates a new max turns mutation.
func NewMaxTurnsMutation(probability float64) *MaxTurnsMutation {
	return &MaxTurnsMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "MaxTurns",
		},
		minTurns: 10,
		maxTurns: 2000,
	}
}

// Mutate adjusts the maximum turns within valid bounds.
func (m *MaxTurnsMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := CloneGenome(g)

	// Multiplicative mutation for large ranges
	factor := 0.8 + rng.Float64()*0.4 // 0.8x to 1.2x
	newValue := int(float64(clone.TurnStructure.MaxTurns) * factor)

	clone.TurnStructure.MaxTurns = clampInt(newValue, m.minTurns, m.maxTurns)
	return clone
}

// StartingChipsMutation modifies the starting chips for betting games.
type StartingChipsMutation struct {
	BaseMutation
	minChips int
	maxChips int
}

// NewStartingChipsMutation creates a new starting chips mutation.
func NewStartingChipsMutation(probability float64) *StartingChipsMutation {
	return &StartingChipsMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "StartingChips",
		},
		minChips: 0,    // 0 = no betting
		maxChips: 5000,
	}
}

// Mutate adjusts the starting chips.
func (m *StartingChipsMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := CloneGenome(g)

	if clone.Setup.StartingChips == 0 {
		// Enable betting with random starting chips; chips with nothing to
		// bet them on would just be cleaned back up, so make sure a betting
		// phase exists.
		clone.Setup.StartingChips = (rng.Intn(9) + 1) * 100 // 100-900 in steps of 100
		if len(findPhaseIndices[*genome.BettingPhase](clone.TurnStructure.Phases)) == 0 {
			minBets := []int{5, 10, 20, 25}
			newPhase := &genome.BettingPhase{
				MinBet:    minBets[rng.Intn(len(minBets))],
				MaxRaises: rng.Intn(3) + 1,
			}
			pos := rng.Intn(len(clone.TurnStructure.Phases) + 1)
			clone.TurnStructure.Phases = insertPhase(clone.TurnStructure.Phases, pos, newPhase)
		}
	} else {
		// Multiplicative mutation
		factor := 0.7 + rng.Float64()*0.6 // 0.7x to 1.3x
		newValue := int(float64(clone.Setup.StartingChips) * factor)
		clone.Setup.StartingChips = clampInt(newValue, m.minChips, m.maxChips)
	}

	return clone
}

// TableauSizeMutation modifies the size of the tableau (shared card area).
type TableauSizeMutation struct {
	BaseMutation
	minSize int
	maxSize int
}

// NewTableauSizeMutation creates a new tableau size mutation.
func NewTableauSizeMutation(probability float64) *TableauSizeMutation {
	return &TableauSizeMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "TableauSize",
		},
		minSize: 0,
		maxSize: 10,
	}
}

// Mutate adjusts the tableau size.
func (m *TableauSizeMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := CloneGenome(g)

	// Delta mutation: +/- 1
	delta := rng.Intn(3) - 1 // -1 to +1
	clone.Setup.TableauSize = clampInt(clone.Setup.TableauSize+delta, m.minSize, m.maxSize)
	return clone
}

// DealToTableauMutation adjusts how many cards are dealt to the tableau at game start.
type DealToTableauMutation struct {
	BaseMutation
}

// NewDealToTableauMutation creates a new deal to tableau mutation.
func NewDealToTableauMutation(probability float64) *DealToTableauMutation {
	return &DealToTableauMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "DealToTableau",
		},
	}
}

// Mutate adjusts the deal to tableau count.
func (m *DealToTableauMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := CloneGenome(g)

	// Delta mutation: +/- 1 card
	delta := rng.Intn(3) - 1 // -1 to +1
	clone.Setup.DealToTableau = clampInt(clone.Setup.DealToTableau+delta, 0, 10)
	return clone
}

// TableauModeMutation changes the tableau mode (war comparison, sequence building, etc.).
type TableauModeMutation struct {
	BaseMutation
}

// NewTableauModeMutation creates a new tableau mode mutation.
func NewTableauModeMutation(probability float64) *TableauModeMutation {
	return &TableauModeMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "TableauMode",
		},
	}
}

// Mutate changes the tableau mode to a random valid value.
func (m *TableauModeMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := CloneGenome(g)

	modes := []genome.TableauMode{
		genome.TableauModeNone,
		genome.TableauModeMatchRank,
		genome.TableauModeSequence,
	}
	// War resolution is strictly head-to-head
	if clone.EffectivePlayerCount() == 2 {
		modes = append(modes, genome.TableauModeWar)
	}
	clone.TurnStructure.TableauMode = pickDifferent(rng, modes, clone.TurnStructure.TableauMode)
	return clone
}

// SequenceDirectionMutation changes the sequence direction for sequence games.
type SequenceDirectionMutation struct {
	BaseMutation
}

// NewSequenceDirectionMutation creates a new sequence direction mutation.
func NewSequenceDirectionMutation(probability float64) *SequenceDirectionMutation {
	return &SequenceDirectionMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "SequenceDirection",
		},
	}
}

// Mutate changes the sequence direction.
func (m *SequenceDirectionMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := CloneGenome(g)

	directions := []genome.SequenceDirection{
		genome.SequenceAscending,
		genome.SequenceDescending,
		genome.SequenceBoth,
	}
	clone.TurnStructure.SequenceDirection = pickDifferent(rng, directions, clone.TurnStructure.SequenceDirection)
	return clone
}

// TrickBasedMutation toggles whether the game uses trick-taking mechanics.
type TrickBasedMutation struct {
	BaseMutation
}

// NewTrickBasedMutation creates a new trick-based mutation.
func NewTrickBasedMutation(probability float64) *TrickBasedMutation {
	return &TrickBasedMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "TrickBased",
		},
	}
}

// Mutate toggles the trick-based setting.
func (m *TrickBasedMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := CloneGenome(g)
	clone.TurnStructure.IsTrickBased = !clone.TurnStructure.IsTrickBased
	return clone
}

// PlayerCountMutation changes how many players sit at the table.
type PlayerCountMutation struct {
	BaseMutation
}

// NewPlayerCountMutation creates a new player count mutation.
func NewPlayerCountMutation(probability float64) *PlayerCountMutation {
	return &PlayerCountMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "PlayerCount",
		},
	}
}

// Mutate picks a different player count, dropping configuration that no
// longer fits (War beyond 2 players, teams over an odd count).
func (m *PlayerCountMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := CloneGenome(g)

	counts := []int{2, 3, 4}
	clone.PlayerCount = pickDifferent(rng, counts, clone.EffectivePlayerCount())

	if clone.PlayerCount != 2 && clone.TurnStructure.TableauMode == genome.TableauModeWar {
		clone.TurnStructure.TableauMode = genome.TableauModeNone
	}
	if clone.Teams != nil && (clone.PlayerCount < 4 || clone.PlayerCount%2 != 0) {
		clone.Teams = nil
	}
	// Keep the deal inside the deck
	maxCards := genome.StandardDeckSize / clone.PlayerCount
	if clone.Setup.CardsPerPlayer > maxCards {
		clone.Setup.CardsPerPlayer = maxCards
	}

	return clone
}

// TrumpSuitMutation changes the setup-level trump configuration.
type TrumpSuitMutation struct {
	BaseMutation
}

// NewTrumpSuitMutation creates a new trump suit mutation.
func NewTrumpSuitMutation(probability float64) *TrumpSuitMutation {
	return &TrumpSuitMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "TrumpSuit",
		},
	}
}

// Mutate changes the trump suit or its selection mode.
func (m *TrumpSuitMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := CloneGenome(g)

	if rng.Float64() < 0.3 {
		clone.Setup.TrumpSuit = 0
		clone.Setup.TrumpMode = genome.TrumpFixed
		return clone
	}

	clone.Setup.TrumpSuit = uint8(rng.Intn(4)) + 1
	modes := []genome.TrumpMode{genome.TrumpFixed, genome.TrumpRotating, genome.TrumpRandom}
	clone.Setup.TrumpMode = modes[rng.Intn(len(modes))]
	return clone
}

// TableauVisibilityMutation flips one of the information-visibility flags.
type TableauVisibilityMutation struct {
	BaseMutation
}

// NewTableauVisibilityMutation creates a new visibility mutation.
func NewTableauVisibilityMutation(probability float64) *TableauVisibilityMutation {
	return &TableauVisibilityMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "TableauVisibility",
		},
	}
}

// Mutate toggles a random visibility flag.
func (m *TableauVisibilityMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := CloneGenome(g)
	switch rng.Intn(3) {
	case 0:
		clone.Setup.HandVisible = !clone.Setup.HandVisible
	case 1:
		clone.Setup.DeckVisible = !clone.Setup.DeckVisible
	case 2:
		clone.Setup.DiscardVisible = !clone.Setup.DiscardVisible
	}
	return clone
}

// WildCardMutation adds or removes a wild rank.
type WildCardMutation struct {
	BaseMutation
}

// NewWildCardMutation creates a new wild card mutation.
func NewWildCardMutation(probability float64) *WildCardMutation {
	return &WildCardMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "WildCards",
		},
	}
}

// Mutate adds a wild rank (up to 2) or removes an existing one.
func (m *WildCardMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := CloneGenome(g)
	wilds := clone.Setup.WildCards

	if len(wilds) > 0 && (len(wilds) >= 2 || rng.Float64() < 0.5) {
		idx := rng.Intn(len(wilds))
		clone.Setup.WildCards = append(wilds[:idx], wilds[idx+1:]...)
		return clone
	}

	candidate := uint8(rng.Intn(13))
	for _, w := range wilds {
		if w == candidate {
			return clone
		}
	}
	clone.Setup.WildCards = append(wilds, candidate)
	return clone
}

// RegisterSetupMutations adds all setup-related mutations to a registry.
func RegisterSetupMutations(r *Registry) {
	r.Register(NewCardsPerPlayerMutation(0.1))
	r.Register(NewMaxTurnsMutation(0.05))
	r.Register(NewStartingChipsMutation(0.05))
	r.Register(NewTableauSizeMutation(0.08))
	r.Register(NewDealToTableauMutation(0.05))
	r.Register(NewTableauModeMutation(0.05))
	r.Register(NewSequenceDirectionMutation(0.05))
	r.Register(NewTrickBasedMutation(0.05))
	r.Register(NewPlayerCountMutation(0.03))
	r.Register(NewTrumpSuitMutation(0.03))
	r.Register(NewTableauVisibilityMutation(0.02))
	r.Register(NewWildCardMutation(0.03))
}
