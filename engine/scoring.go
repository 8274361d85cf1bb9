package engine

// EvaluateContracts applies Spades-style contract scoring to every team:
// nil bids settle first, then the team contract against tricks actually
// won, including overtrick bag accumulation and the bag-limit penalty.
func EvaluateContracts(state *GameState, scoring *ContractScoring) {
	if len(state.TeamScores) == 0 {
		return
	}

	for teamIdx := range state.TeamScores {
		teamPlayers := playersOnTeam(state, teamIdx)

		var tricksWon int32
		for _, playerIdx := range teamPlayers {
			player := &state.Players[playerIdx]
			if player.IsNilBid {
				if player.TricksWon == 0 {
					state.TeamScores[teamIdx] += int32(scoring.NilBonus)
				} else {
					state.TeamScores[teamIdx] -= int32(scoring.NilPenalty)
				}
			}
			tricksWon += int32(player.TricksWon)
		}

		settleTeamContract(state, scoring, teamIdx, tricksWon)
	}
}

// settleTeamContract scores the non-Nil contract bid for one team against
// the tricks its members actually took.
func settleTeamContract(state *GameState, scoring *ContractScoring, teamIdx int, tricksWon int32) {
	contract := int32(state.TeamContracts[teamIdx])

	if tricksWon < contract {
		state.TeamScores[teamIdx] -= contract * int32(scoring.FailedContractPenalty)
		return
	}

	state.TeamScores[teamIdx] += contract * int32(scoring.PointsPerTrickBid)
	overtricks := int(tricksWon - contract)
	state.TeamScores[teamIdx] += int32(overtricks * scoring.OvertrickPoints)

	state.AccumulatedBags[teamIdx] += int8(overtricks)
	if state.AccumulatedBags[teamIdx] >= int8(scoring.BagLimit) {
		state.TeamScores[teamIdx] -= int32(scoring.BagPenalty)
		state.AccumulatedBags[teamIdx] -= int8(scoring.BagLimit)
	}
}

// playersOnTeam returns the player indices assigned to teamIdx.
func playersOnTeam(state *GameState, teamIdx int) []int {
	var members []int
	for playerIdx, team := range state.PlayerToTeam {
		if int(team) == teamIdx {
			members = append(members, playerIdx)
		}
	}
	return members
}
