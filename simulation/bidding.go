package simulation

import (
	"math/rand"

	"github.com/cardgenome/evolve/engine"
)

// hasBiddingPhase reports whether the legacy bytecode genome declares a
// bidding phase (Spades-style contract bidding) anywhere in its turn structure.
func hasBiddingPhase(genome *engine.Genome) bool {
	for _, phase := range genome.TurnPhases {
		if phase.PhaseType == engine.PhaseTypeBidding {
			return true
		}
	}
	return false
}

// getBiddingPhaseData returns the raw bytecode section for the genome's
// bidding phase, or nil if it has none.
func getBiddingPhaseData(genome *engine.Genome) []byte {
	for _, phase := range genome.TurnPhases {
		if phase.PhaseType == engine.PhaseTypeBidding {
			return phase.Data
		}
	}
	return nil
}

// selectGreedyBid estimates trick-taking strength from high cards and bids
// accordingly, clamped to the phase's legal range.
func selectGreedyBid(state *engine.GameState, phase engine.BiddingPhase, playerIdx int) engine.BidMove {
	hand := state.Players[playerIdx].Hand

	// Count cards that look likely to win a trick: Ace/King/Queen-high ranks.
	strongCards := 0
	for _, card := range hand {
		if card.Rank == 10 || card.Rank == 12 || card.Rank == 11 {
			strongCards++
		}
	}

	estimate := strongCards
	if estimate < phase.MinBid {
		estimate = phase.MinBid
	}
	if estimate > phase.MaxBid {
		estimate = phase.MaxBid
	}

	if estimate == 0 && phase.AllowNil {
		return engine.BidMove{Value: 0, IsNil: true}
	}
	return engine.BidMove{Value: estimate}
}

// runBiddingRound has every player submit a bid in turn order, recording it
// on the shared game state before trick play begins.
func runBiddingRound(state *engine.GameState, genome *engine.Genome, aiTypes []AIPlayerType) {
	data := getBiddingPhaseData(genome)
	if data == nil {
		return
	}

	phase, _, err := engine.ParseBiddingPhaseData(data)
	if err != nil {
		return
	}

	state.BiddingComplete = false
	numPlayers := int(state.NumPlayers)
	if numPlayers == 0 {
		numPlayers = len(state.Players)
	}

	for i := 0; i < numPlayers; i++ {
		state.Players[i].CurrentBid = -1
		state.Players[i].IsNilBid = false
	}

	startPlayer := int(state.CurrentPlayer)
	for i := 0; i < numPlayers; i++ {
		playerIdx := (startPlayer + i) % numPlayers

		var bid engine.BidMove
		aiType := RandomAI
		if playerIdx < len(aiTypes) {
			aiType = aiTypes[playerIdx]
		}

		switch aiType {
		case GreedyAI:
			bid = selectGreedyBid(state, phase, playerIdx)
		default:
			handSize := len(state.Players[playerIdx].Hand)
			bidMoves := engine.GenerateBidMoves(phase, handSize)
			if len(bidMoves) > 0 {
				bid = bidMoves[rand.Intn(len(bidMoves))]
			} else {
				bid = engine.BidMove{Value: phase.MinBid}
			}
		}

		engine.ApplyBidMove(state, playerIdx, bid)
	}

	state.BiddingComplete = true
}
