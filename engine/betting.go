package engine

// BettingAction represents a betting action type
type BettingAction int

const (
	BettingCheck BettingAction = iota
	BettingBet
	BettingCall
	BettingRaise
	BettingAllIn
	BettingFold
)

// seated returns the players actually in the game. Pooled states always
// carry MaxPlayers backing slots; an unseated slot must never count as an
// active bettor.
func seated(gs *GameState) []PlayerState {
	n := int(gs.NumPlayers)
	if n == 0 || n > len(gs.Players) {
		n = len(gs.Players)
	}
	return gs.Players[:n]
}

// GenerateBettingMoves returns all valid betting actions for a player
func GenerateBettingMoves(gs *GameState, phase *BettingPhaseData, playerID int) []BettingAction {
	player := &gs.Players[playerID]

	// Can't act if folded, all-in, or no chips
	if player.HasFolded || player.IsAllIn || player.Chips <= 0 {
		return nil
	}

	if toCall := gs.CurrentBet - player.CurrentBet; toCall > 0 {
		return facingBetActions(gs, phase, player, toCall)
	}
	return openingActions(phase, player)
}

// openingActions are the choices when no bet is live: check, open, or
// shove when the minimum bet is out of reach.
func openingActions(phase *BettingPhaseData, player *PlayerState) []BettingAction {
	moves := []BettingAction{BettingCheck}
	if player.Chips >= int64(phase.MinBet) {
		moves = append(moves, BettingBet)
	} else if player.Chips > 0 {
		moves = append(moves, BettingAllIn)
	}
	return moves
}

// facingBetActions are the choices against a live bet: call, raise while
// the raise cap allows, shove short stacks, always fold.
func facingBetActions(gs *GameState, phase *BettingPhaseData, player *PlayerState, toCall int64) []BettingAction {
	moves := make([]BettingAction, 0, 4)
	if player.Chips >= toCall {
		moves = append(moves, BettingCall)
		if player.Chips >= toCall+int64(phase.MinBet) && gs.RaiseCount < phase.MaxRaises {
			moves = append(moves, BettingRaise)
		}
	}
	if player.Chips > 0 && player.Chips < toCall {
		moves = append(moves, BettingAllIn)
	}
	return append(moves, BettingFold)
}

// commitChips moves chips from a player into the pot and their live bet.
func commitChips(gs *GameState, player *PlayerState, amount int64) {
	player.Chips -= amount
	player.CurrentBet += amount
	gs.Pot += amount
}

// ApplyBettingAction executes a betting action, mutating the game state
func ApplyBettingAction(gs *GameState, phase *BettingPhaseData, playerID int, action BettingAction) {
	player := &gs.Players[playerID]

	switch action {
	case BettingCheck:
		// No change
	case BettingBet:
		commitChips(gs, player, int64(phase.MinBet))
		gs.CurrentBet = int64(phase.MinBet)
	case BettingCall:
		commitChips(gs, player, gs.CurrentBet-player.CurrentBet)
	case BettingRaise:
		toCall := gs.CurrentBet - player.CurrentBet
		commitChips(gs, player, toCall+int64(phase.MinBet))
		gs.CurrentBet = player.CurrentBet
		gs.RaiseCount++
	case BettingAllIn:
		commitChips(gs, player, player.Chips)
		player.IsAllIn = true
		if player.CurrentBet > gs.CurrentBet {
			gs.CurrentBet = player.CurrentBet
		}
	case BettingFold:
		player.HasFolded = true
	}
}

// CountActivePlayers returns the number of players who haven't folded
func CountActivePlayers(gs *GameState) int {
	count := 0
	for _, p := range seated(gs) {
		if !p.HasFolded {
			count++
		}
	}
	return count
}

// CountActingPlayers returns the number of players who can still act
// (not folded, not all-in, and have chips)
func CountActingPlayers(gs *GameState) int {
	count := 0
	for _, p := range seated(gs) {
		if !p.HasFolded && !p.IsAllIn && p.Chips > 0 {
			count++
		}
	}
	return count
}

// AllBetsMatched returns true if all active players have matched the current bet
// or are all-in/folded
func AllBetsMatched(gs *GameState) bool {
	for _, p := range seated(gs) {
		if !p.HasFolded && !p.IsAllIn && p.CurrentBet != gs.CurrentBet {
			return false
		}
	}
	return true
}

// ResolveShowdown determines which players are eligible to win the pot
// Returns a slice of player IDs that are still in the hand (not folded)
// If only one player remains, they win automatically
// If multiple players remain, actual hand comparison is done elsewhere
func ResolveShowdown(gs *GameState) []int {
	activePlayers := []int{}
	for i := range seated(gs) {
		if !gs.Players[i].HasFolded {
			activePlayers = append(activePlayers, i)
		}
	}

	return activePlayers
}

// AwardPot distributes the pot to the winner(s)
// If multiple winners, pot is split evenly with remainder going to first winner
func AwardPot(gs *GameState, winnerIDs []int) {
	if len(winnerIDs) == 0 {
		return
	}

	// Split pot evenly among winners
	share := gs.Pot / int64(len(winnerIDs))
	remainder := gs.Pot % int64(len(winnerIDs))

	for i, winnerID := range winnerIDs {
		gs.Players[winnerID].Chips += share
		if i == 0 {
			gs.Players[winnerID].Chips += remainder
		}
	}
	gs.Pot = 0
}

// FindBestPokerWinner compares the hand strength of every non-folded player
// still in a showdown and returns the strongest hand's player ID, or -1 if
// there are no eligible players. Ties resolve to the first player reached
// (stable, matching FindBestPointTotalWinner's tie-breaking convention).
func FindBestPokerWinner(state *GameState, numPlayers int) int8 {
	if numPlayers == 0 || numPlayers > len(state.Players) {
		numPlayers = len(state.Players)
	}

	best := int8(-1)
	bestStrength := -1.0

	for i := 0; i < numPlayers; i++ {
		if state.Players[i].HasFolded {
			continue
		}
		strength := EvaluateHandStrength(state.Players[i].Hand)
		if strength > bestStrength {
			bestStrength = strength
			best = int8(i)
		}
	}

	return best
}

// SelectRandomBettingAction picks a random action from available moves.
func SelectRandomBettingAction(moves []BettingAction, rngIntn func(n int) int) BettingAction {
	if len(moves) == 0 {
		return BettingFold // Fallback
	}
	return moves[rngIntn(len(moves))]
}

// greedyPreferences maps hand-strength tiers to action preference order.
var greedyPreferences = []struct {
	minStrength float64
	order       []BettingAction
}{
	{0.7, []BettingAction{BettingRaise, BettingBet, BettingAllIn}},
	{0.3, []BettingAction{BettingCall, BettingCheck}},
	{0.0, []BettingAction{BettingCheck}},
}

// SelectGreedyBettingAction picks an action by hand strength: strong hands
// push chips in, medium hands keep up, weak hands check or get out.
func SelectGreedyBettingAction(gs *GameState, moves []BettingAction, handStrength float64) BettingAction {
	for _, tier := range greedyPreferences {
		if handStrength <= tier.minStrength {
			continue
		}
		for _, want := range tier.order {
			if containsBettingAction(moves, want) {
				return want
			}
		}
	}
	if containsBettingAction(moves, BettingCheck) {
		return BettingCheck
	}
	return BettingFold
}

// containsBettingAction checks if action is in moves
func containsBettingAction(moves []BettingAction, target BettingAction) bool {
	for _, m := range moves {
		if m == target {
			return true
		}
	}
	return false
}

// EvaluateHandStrength returns a 0-1 score from pair count and high card
// over the canonical rank ordinals (2=0 .. A=12): up to 0.6 for matched
// ranks (pair/trips/quads), up to 0.4 for the highest card held.
func EvaluateHandStrength(hand []Card) float64 {
	if len(hand) == 0 {
		return 0.0
	}

	rankCounts := make(map[uint8]int)
	for _, card := range hand {
		rankCounts[card.Rank]++
	}

	maxCount := 0
	highRank := uint8(0)
	for rank, count := range rankCounts {
		if count > maxCount {
			maxCount = count
		}
		if rank > highRank {
			highRank = rank
		}
	}

	// pairScore: 0 for no pair, 0.2 for pair, 0.4 for trips, 0.6 for quads
	pairScore := float64(maxCount-1) * 0.2
	// highCardScore: 0-0.4 scaled by the card's comparison value (2..14)
	highCardScore := float64(highRank+2) / 14.0 * 0.4

	return min(pairScore+highCardScore, 1.0)
}
