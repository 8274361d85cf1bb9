package operators

import (
	"math/rand"
	"testing"

	"github.com/cardgenome/evolve/genome"
)

func TestEnableTeamModeGatedOnPlayerCount(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	m := NewEnableTeamModeMutation(1.0)

	twoPlayer := genome.CreateWarGenome()
	result := m.Mutate(twoPlayer, rng)
	if result.Teams != nil {
		t.Error("Team mode must not enable for a 2-player game")
	}

	fourPlayer := genome.CreateHeartsGenome()
	result = m.Mutate(fourPlayer, rng)
	if result.Teams == nil || !result.Teams.Enabled {
		t.Fatal("Team mode should enable for a 4-player game")
	}
	if len(result.Teams.Teams) != 2 {
		t.Errorf("Expected 2 teams, got %d", len(result.Teams.Teams))
	}
	// Alternating seats: 0&2 vs 1&3
	if result.Teams.Teams[0][0] != 0 || result.Teams.Teams[0][1] != 2 {
		t.Errorf("Expected seats 0,2 on team 0, got %v", result.Teams.Teams[0])
	}
	if len(genome.ValidateGenome(result)) != 0 {
		t.Errorf("Enabled teams should validate cleanly: %v", genome.ValidateGenome(result))
	}
}

func TestMutateTeamAssignmentKeepsPartition(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	m := NewMutateTeamAssignmentMutation(1.0)

	g := genome.CreatePartnershipSpadesGenome()
	result := m.Mutate(g, rng)

	seen := make(map[int]int)
	for _, team := range result.Teams.Teams {
		for _, p := range team {
			seen[p]++
		}
	}
	for p := 0; p < 4; p++ {
		if seen[p] != 1 {
			t.Errorf("Player %d appears %d times after swap", p, seen[p])
		}
	}
}

func TestCleanupOrphanedChips(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	m := NewCleanupOrphanedResourcesMutation(1.0)

	g := genome.CreateWarGenome()
	g.Setup.StartingChips = 500 // no betting phase anywhere

	result := m.Mutate(g, rng)
	if result.Setup.StartingChips != 0 {
		t.Error("Cleanup should drop chips with no betting phase")
	}
}

func TestCleanupOrphanedHandEval(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	m := NewCleanupOrphanedResourcesMutation(1.0)

	g := genome.CreateCrazyEightsGenome()
	g.HandEval = &genome.HandEvaluation{Method: genome.EvalMethodHighCard}

	result := m.Mutate(g, rng)
	if result.HandEval != nil {
		t.Error("Cleanup should drop hand evaluation with no showdown")
	}
}

func TestCleanupLeavesCoherentGenomesAlone(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	m := NewCleanupOrphanedResourcesMutation(1.0)

	g := genome.CreateSimplePokerGenome()
	result := m.Mutate(g, rng)

	if result != g {
		t.Error("A coherent genome should pass through untouched")
	}
}

func TestAddBiddingPhaseRequiresTrickPhase(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	m := NewAddBiddingPhaseMutation(1.0)

	noTricks := genome.CreateCrazyEightsGenome()
	result := m.Mutate(noTricks, rng)
	if len(findPhaseIndices[*genome.BiddingPhase](result.TurnStructure.Phases)) != 0 {
		t.Error("Bidding must not be added without a trick phase")
	}

	withTricks := genome.CreateHeartsGenome()
	result = m.Mutate(withTricks, rng)
	indices := findPhaseIndices[*genome.BiddingPhase](result.TurnStructure.Phases)
	if len(indices) != 1 {
		t.Fatalf("Expected exactly one bidding phase, got %d", len(indices))
	}
	if indices[0] != 0 {
		t.Error("Bidding should be inserted before play")
	}

	// Second application is a no-op: one bidding phase max
	again := m.Mutate(result, rng)
	if len(findPhaseIndices[*genome.BiddingPhase](again.TurnStructure.Phases)) != 1 {
		t.Error("A second bidding phase must not be added")
	}
}

func TestRemoveBettingPhaseClearsChips(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	m := NewRemoveBettingPhaseMutation(1.0)

	g := genome.CreateBlackjackGenome()
	result := m.Mutate(g, rng)

	if len(findPhaseIndices[*genome.BettingPhase](result.TurnStructure.Phases)) != 0 {
		t.Error("Betting phase should be removed")
	}
	if result.Setup.StartingChips != 0 {
		t.Error("Chips should be cleared with the last betting phase")
	}
}

func TestShuffleAllPhasesPreservesMultiset(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	m := NewShuffleAllPhasesMutation(1.0)

	g := genome.CreateDrawPokerGenome()
	result := m.Mutate(g, rng)

	if len(result.TurnStructure.Phases) != len(g.TurnStructure.Phases) {
		t.Fatal("Shuffle must not change the phase count")
	}
	counts := make(map[uint8]int)
	for _, p := range g.TurnStructure.Phases {
		counts[p.PhaseType()]++
	}
	for _, p := range result.TurnStructure.Phases {
		counts[p.PhaseType()]--
	}
	for pt, c := range counts {
		if c != 0 {
			t.Errorf("Phase type %d count changed by %d", pt, c)
		}
	}
}

func TestModifyHandPatternShiftsPriority(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	m := NewModifyHandPatternMutation(1.0)

	g := genome.CreateSimplePokerGenome()
	result := m.Mutate(g, rng)

	changed := false
	for i := range g.HandEval.Patterns {
		if result.HandEval.Patterns[i].Priority != g.HandEval.Patterns[i].Priority {
			changed = true
			break
		}
	}
	if !changed {
		t.Error("Expected one pattern priority to change")
	}
}

func TestPlayerCountMutationKeepsGenomeCoherent(t *testing.T) {
	rng := rand.New(rand.NewSource(10))
	m := NewPlayerCountMutation(1.0)

	for i := 0; i < 20; i++ {
		g := genome.CreateWarGenome()
		result := m.Mutate(g, rng)
		if result.EffectivePlayerCount() != 2 &&
			result.TurnStructure.TableauMode == genome.TableauModeWar {
			t.Error("War tableau must not survive a move away from 2 players")
		}
		if result.Setup.CardsPerPlayer*result.EffectivePlayerCount() > genome.StandardDeckSize {
			t.Error("Player count change overflowed the deck")
		}
	}
}

func TestMutatedGenomeGetsFreshIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	registry := NewRegistry()
	registry.Register(NewCardsPerPlayerMutation(1.0)) // always fires

	g := genome.CreateWarGenome()
	g.ID = "g-parent"
	g.Generation = 3

	mutated := registry.ApplyAll(g, rng)
	if mutated == g {
		t.Fatal("Expected a mutated copy")
	}
	if mutated.ID == "g-parent" || mutated.ID == "" {
		t.Errorf("Mutated child should get a fresh id, got %q", mutated.ID)
	}
	if mutated.Generation != 4 {
		t.Errorf("Expected generation 4, got %d", mutated.Generation)
	}
}
