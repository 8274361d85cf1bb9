package engine

import "testing"

func claimTestState(numPlayers int) *GameState {
	state := GetState()
	state.NumPlayers = uint8(numPlayers)
	return state
}

func TestParseClaimPhaseDataRoundTrip(t *testing.T) {
	rules := ClaimPhaseRules{
		MinCards:       1,
		MaxCards:       4,
		SequentialRank: true,
		AllowChallenge: true,
		PilePenalty:    false,
	}

	decoded := ParseClaimPhaseData(EncodeClaimPhaseData(rules))
	if decoded != rules {
		t.Errorf("Round trip mismatch: got %+v, want %+v", decoded, rules)
	}
}

func TestParseClaimPhaseDataDefaults(t *testing.T) {
	rules := ParseClaimPhaseData(nil)
	if rules.MinCards != 1 || rules.MaxCards != 1 {
		t.Errorf("Expected 1/1 card defaults, got %d/%d", rules.MinCards, rules.MaxCards)
	}
	if !rules.AllowChallenge {
		t.Error("Expected challenges allowed by default")
	}
}

func TestApplyClaimPlaySequentialRank(t *testing.T) {
	state := claimTestState(2)
	defer PutState(state)

	state.Players[0].Hand = []Card{{Rank: 5, Suit: 0}}
	state.NextClaimRank = 3

	rules := ClaimPhaseRules{MinCards: 1, MaxCards: 1, SequentialRank: true, AllowChallenge: true}
	wasBluff := state.ApplyClaimPlay(0, 0, rules)

	if !wasBluff {
		t.Error("Playing rank 5 while claiming rank 3 should be a bluff")
	}
	if state.CurrentClaim == nil {
		t.Fatal("Expected an active claim")
	}
	if state.CurrentClaim.ClaimedRank != 3 {
		t.Errorf("Expected claimed rank 3, got %d", state.CurrentClaim.ClaimedRank)
	}
	if state.NextClaimRank != 4 {
		t.Errorf("Expected claim rank cycle to advance to 4, got %d", state.NextClaimRank)
	}
	if len(state.Players[0].Hand) != 0 {
		t.Error("Claimed card should leave the hand")
	}
}

func TestResolveChallengeCatchesBluff(t *testing.T) {
	state := claimTestState(2)
	defer PutState(state)

	state.Discard = []Card{{Rank: 1, Suit: 1}, {Rank: 2, Suit: 2}}
	state.CurrentClaim = &Claim{
		ClaimerID:    0,
		ClaimedRank:  7,
		ClaimedCount: 1,
		CardsPlayed:  []Card{{Rank: 4, Suit: 3}},
	}

	rules := ClaimPhaseRules{MinCards: 1, MaxCards: 1, AllowChallenge: true, PilePenalty: true}
	caught := state.ResolveChallenge(1, rules)

	if !caught {
		t.Error("Challenger should catch a rank-4 card claimed as rank 7")
	}
	if state.CurrentClaim != nil {
		t.Error("Claim should be resolved")
	}
	// Claimer takes the claimed card plus the staked discard pile
	if len(state.Players[0].Hand) != 3 {
		t.Errorf("Expected claimer to take 3 cards, got %d", len(state.Players[0].Hand))
	}
	if len(state.Discard) != 0 {
		t.Errorf("Discard pile should be empty, has %d", len(state.Discard))
	}
}

func TestResolveChallengeTruthfulClaim(t *testing.T) {
	state := claimTestState(2)
	defer PutState(state)

	state.CurrentClaim = &Claim{
		ClaimerID:    0,
		ClaimedRank:  7,
		ClaimedCount: 1,
		CardsPlayed:  []Card{{Rank: 7, Suit: 3}},
	}

	rules := ClaimPhaseRules{MinCards: 1, MaxCards: 1, AllowChallenge: true}
	caught := state.ResolveChallenge(1, rules)

	if caught {
		t.Error("A truthful claim should not be caught")
	}
	// Without pile penalty the challenger takes just the claimed card
	if len(state.Players[1].Hand) != 1 {
		t.Errorf("Expected challenger to take 1 card, got %d", len(state.Players[1].Hand))
	}
}

func TestResolveChallengeWildRankCounts(t *testing.T) {
	state := claimTestState(2)
	defer PutState(state)

	state.SetWildRanks([]uint8{6}) // eights wild
	state.CurrentClaim = &Claim{
		ClaimerID:    0,
		ClaimedRank:  10,
		ClaimedCount: 1,
		CardsPlayed:  []Card{{Rank: 6, Suit: 0}},
	}

	rules := ClaimPhaseRules{MinCards: 1, MaxCards: 1, AllowChallenge: true}
	if caught := state.ResolveChallenge(1, rules); caught {
		t.Error("A wild card should back any claimed rank")
	}
}

func TestAcceptClaimMovesCardsToDiscard(t *testing.T) {
	state := claimTestState(2)
	defer PutState(state)

	state.CurrentClaim = &Claim{
		ClaimerID:    0,
		ClaimedRank:  2,
		ClaimedCount: 1,
		CardsPlayed:  []Card{{Rank: 9, Suit: 1}},
	}

	state.AcceptClaim()

	if state.CurrentClaim != nil {
		t.Error("Claim should be cleared")
	}
	if len(state.Discard) != 1 {
		t.Errorf("Expected 1 card on discard, got %d", len(state.Discard))
	}
}

func TestClaimMovesGeneratedAndApplied(t *testing.T) {
	state := claimTestState(2)
	defer PutState(state)

	state.Players[0].Hand = []Card{{Rank: 0, Suit: 0}, {Rank: 1, Suit: 1}}
	state.Players[1].Hand = []Card{{Rank: 2, Suit: 2}}

	rules := ClaimPhaseRules{MinCards: 1, MaxCards: 1, SequentialRank: true, AllowChallenge: true}
	g := &Genome{
		Header: &BytecodeHeader{MaxTurns: 100, PlayerCount: 2},
		TurnPhases: []PhaseDescriptor{
			{PhaseType: 6, Data: EncodeClaimPhaseData(rules)},
		},
	}

	moves := GenerateLegalMoves(state, g)
	if len(moves) != 2 {
		t.Fatalf("Expected one claim move per card, got %d", len(moves))
	}

	ApplyMove(state, &moves[0], g)
	if state.CurrentClaim == nil {
		t.Fatal("Applying a claim move should open a claim")
	}

	// Next player can now challenge or accept
	moves = GenerateLegalMoves(state, g)
	hasChallenge, hasPass := false, false
	for _, m := range moves {
		switch m.CardIndex {
		case MoveChallenge:
			hasChallenge = true
		case MovePass:
			hasPass = true
		}
	}
	if !hasChallenge || !hasPass {
		t.Errorf("Expected challenge and pass options, got %+v", moves)
	}
}
