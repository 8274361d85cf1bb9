package simulation

import "github.com/cardgenome/evolve/engine"

// movesDisrupted reports whether the legal-move set changed between two
// snapshots, used to detect when an action disturbed the set of moves
// available to a solitaire player.
func movesDisrupted(before, after []engine.LegalMove) bool {
	if len(before) != len(after) {
		return true
	}
	for i := range before {
		if before[i] != after[i] {
			return true
		}
	}
	return false
}
