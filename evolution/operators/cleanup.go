package operators

import (
	"math/rand"

	"github.com/cardgenome/evolve/genome"
)

// CleanupOrphanedResourcesMutation is the coherence-repair pass run at the
// end of every mutation pipeline: structural mutations routinely strand
// resources (chips with no betting phase, hand evaluation with no
// showdown), and stranded resources fail the coherence check outright.
// Repairing them here keeps mutated offspring evaluable instead of
// auto-zeroed.
type CleanupOrphanedResourcesMutation struct {
	BaseMutation
}

// NewCleanupOrphanedResourcesMutation creates the coherence repair mutation.
func NewCleanupOrphanedResourcesMutation(probability float64) *CleanupOrphanedResourcesMutation {
	return &CleanupOrphanedResourcesMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "CleanupOrphanedResources",
		},
	}
}

// Mutate removes resources no phase or win condition can ever use.
func (m *CleanupOrphanedResourcesMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	hasBetting := false
	for _, phase := range g.TurnStructure.Phases {
		if _, ok := phase.(*genome.BettingPhase); ok {
			hasBetting = true
			break
		}
	}

	usesHandEval := hasBetting
	for _, wc := range g.WinConditions {
		if wc.Type == genome.WinTypeBestHand {
			usesHandEval = true
		}
	}

	orphanedChips := g.Setup.StartingChips > 0 && !hasBetting
	orphanedEval := g.HandEval != nil && !usesHandEval
	orphanedTeams := g.Teams != nil && g.Teams.Enabled &&
		(g.EffectivePlayerCount() < 4 || g.EffectivePlayerCount()%2 != 0)

	if !orphanedChips && !orphanedEval && !orphanedTeams {
		return g
	}

	clone := CloneGenome(g)
	if orphanedChips {
		clone.Setup.StartingChips = 0
	}
	if orphanedEval {
		clone.HandEval = nil
	}
	if orphanedTeams {
		clone.Teams = nil
	}
	return clone
}

// RegisterCleanupMutations adds the coherence repair pass to a registry.
// It runs with high probability so incoherent offspring are rare.
func RegisterCleanupMutations(r *Registry) {
	r.Register(NewCleanupOrphanedResourcesMutation(0.9))
}
