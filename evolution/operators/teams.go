package operators

import (
	"math/rand"

	"github.com/cardgenome/evolve/genome"
)

// EnableTeamModeMutation turns an individual game into a partnership game.
// Only applies to even player counts of 4+; the default partition is
// alternating seats (0&2 vs 1&3), the standard partnership layout.
type EnableTeamModeMutation struct {
	BaseMutation
}

// NewEnableTeamModeMutation creates a new enable team mode mutation.
func NewEnableTeamModeMutation(probability float64) *EnableTeamModeMutation {
	return &EnableTeamModeMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "EnableTeamMode",
		},
	}
}

// Mutate enables team play with an alternating-seat partition.
func (m *EnableTeamModeMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	playerCount := g.EffectivePlayerCount()
	if playerCount < 4 || playerCount%2 != 0 {
		return g
	}
	if g.Teams != nil && g.Teams.Enabled {
		return g
	}

	clone := CloneGenome(g)
	teams := make([][]int, 2)
	for p := 0; p < playerCount; p++ {
		teams[p%2] = append(teams[p%2], p)
	}
	clone.Teams = &genome.TeamConfig{Enabled: true, Teams: teams}
	return clone
}

// DisableTeamModeMutation reverts a partnership game to individual play.
type DisableTeamModeMutation struct {
	BaseMutation
}

// NewDisableTeamModeMutation creates a new disable team mode mutation.
func NewDisableTeamModeMutation(probability float64) *DisableTeamModeMutation {
	return &DisableTeamModeMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "DisableTeamMode",
		},
	}
}

// Mutate drops the team configuration.
func (m *DisableTeamModeMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	if g.Teams == nil || !g.Teams.Enabled {
		return g
	}
	clone := CloneGenome(g)
	clone.Teams = nil
	return clone
}

// MutateTeamAssignmentMutation swaps one player between two teams, keeping
// the partition property intact.
type MutateTeamAssignmentMutation struct {
	BaseMutation
}

// NewMutateTeamAssignmentMutation creates a new team assignment mutation.
func NewMutateTeamAssignmentMutation(probability float64) *MutateTeamAssignmentMutation {
	return &MutateTeamAssignmentMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "MutateTeamAssignment",
		},
	}
}

// Mutate exchanges one player from each of two random teams.
func (m *MutateTeamAssignmentMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	if g.Teams == nil || !g.Teams.Enabled || len(g.Teams.Teams) < 2 {
		return g
	}

	clone := CloneGenome(g)
	teams := clone.Teams.Teams

	t1 := rng.Intn(len(teams))
	t2 := t1
	for t2 == t1 {
		t2 = rng.Intn(len(teams))
	}
	if len(teams[t1]) == 0 || len(teams[t2]) == 0 {
		return clone
	}

	i1 := rng.Intn(len(teams[t1]))
	i2 := rng.Intn(len(teams[t2]))
	teams[t1][i1], teams[t2][i2] = teams[t2][i2], teams[t1][i1]

	return clone
}

// RegisterTeamMutations adds the team play operators to a registry.
func RegisterTeamMutations(r *Registry) {
	r.Register(NewEnableTeamModeMutation(0.02))
	r.Register(NewDisableTeamModeMutation(0.02))
	r.Register(NewMutateTeamAssignmentMutation(0.03))
}
