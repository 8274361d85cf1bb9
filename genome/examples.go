// Package genome provides seed genomes for testing and evolution.
package genome

// Suit constants, matching the canonical ordinal scheme used throughout
// the bytecode encoding.
const (
	SuitHearts   uint8 = 0
	SuitDiamonds uint8 = 1
	SuitClubs    uint8 = 2
	SuitSpades   uint8 = 3
	SuitAny      uint8 = 255
)

// Rank constants, 2=0 through Ace=12, with a sentinel wildcard value.
const (
	RankTwo   uint8 = 0
	RankThree uint8 = 1
	RankFour  uint8 = 2
	RankFive  uint8 = 3
	RankSix   uint8 = 4
	RankSeven uint8 = 5
	RankEight uint8 = 6
	RankNine  uint8 = 7
	RankTen   uint8 = 8
	RankJack  uint8 = 9
	RankQueen uint8 = 10
	RankKing  uint8 = 11
	RankAce   uint8 = 12
	RankAny   uint8 = 255
)

// standardPokerPatterns is the standard five-card hand ranking ladder,
// shared by every seed genome that scores a poker-style showdown.
func standardPokerPatterns() []HandPattern {
	return []HandPattern{
		{Name: "Royal Flush", Priority: 100, RequiredCount: 5, SameSuitCount: 5, SequenceLength: 5, RequiredRanks: []uint8{RankTen, RankJack, RankQueen, RankKing, RankAce}},
		{Name: "Straight Flush", Priority: 90, RequiredCount: 5, SameSuitCount: 5, SequenceLength: 5},
		{Name: "Four of a Kind", Priority: 80, RequiredCount: 5, SameRankGroups: []uint8{4}},
		{Name: "Full House", Priority: 70, RequiredCount: 5, SameRankGroups: []uint8{3, 2}},
		{Name: "Flush", Priority: 60, RequiredCount: 5, SameSuitCount: 5},
		{Name: "Straight", Priority: 50, RequiredCount: 5, SequenceLength: 5, SequenceWrap: true},
		{Name: "Three of a Kind", Priority: 40, RequiredCount: 5, SameRankGroups: []uint8{3}},
		{Name: "Two Pair", Priority: 30, RequiredCount: 5, SameRankGroups: []uint8{2, 2}},
		{Name: "One Pair", Priority: 20, RequiredCount: 5, SameRankGroups: []uint8{2}},
		{Name: "High Card", Priority: 10, RequiredCount: 5},
	}
}

// handSizeCondition builds the recurring "hand size compares to n"
// predicate used to gate optional draws (empty-hand redraws, five-card
// charlies, draw-to-five).
func handSizeCondition(operator uint8, value int32) *Condition {
	return &Condition{OpCode: 0, Operator: operator, Value: value}
}

const (
	cmpEQ uint8 = 0
	cmpLT uint8 = 1
)

// CreateWarGenome creates the War card game genome.
// War is a pure luck game with zero meaningful decisions.
func CreateWarGenome() *GameGenome {
	return &GameGenome{
		Name: "War",
		Setup: SetupRules{
			CardsPerPlayer: 26,
		},
		TurnStructure: TurnStructure{
			Phases: []Phase{
				&PlayPhase{Target: LocationTableau, MinCards: 1, MaxCards: 1},
			},
			MaxTurns:    1000,
			TableauMode: TableauModeWar,
		},
		WinConditions: []WinCondition{
			{Type: WinTypeCaptureAll},
		},
	}
}

// CreateBettingWarGenome creates War with betting mechanics layered on top
// of the standard pile-capture resolution.
func CreateBettingWarGenome() *GameGenome {
	return &GameGenome{
		Name: "Betting War",
		Setup: SetupRules{
			CardsPerPlayer: 26,
			StartingChips:  500,
		},
		TurnStructure: TurnStructure{
			Phases: []Phase{
				&BettingPhase{MinBet: 10, MaxRaises: 2},
				&PlayPhase{Target: LocationTableau, MinCards: 1, MaxCards: 1},
			},
			MaxTurns:    1000,
			TableauMode: TableauModeWar,
		},
		WinConditions: []WinCondition{
			{Type: WinTypeCaptureAll},
		},
		HandEval: &HandEvaluation{Method: EvalMethodHighCard},
	}
}

// CreateHeartsGenome creates classic 4-player Hearts: must follow suit,
// hearts can't lead until broken, lowest score wins at hand end.
func CreateHeartsGenome() *GameGenome {
	return &GameGenome{
		Name:        "Hearts",
		PlayerCount: 4,
		Setup: SetupRules{
			CardsPerPlayer: 13, // 4 players x 13 = 52
		},
		TurnStructure: TurnStructure{
			Phases: []Phase{
				&TrickPhase{
					LeadSuitRequired: true,
					TrumpSuit:        255, // no trump
					HighCardWins:     true,
					BreakingSuit:     SuitHearts,
				},
			},
			MaxTurns: 200,
		},
		WinConditions: []WinCondition{
			{Type: WinTypeLowScore, Threshold: 100},
			{Type: WinTypeAllHandsEmpty, TriggerMode: TriggerAllHandsEmpty, Comparison: CompareLowest},
		},
		CardScoring: []CardScoringRule{
			{Suit: SuitHearts, Rank: RankAny, Points: 1, Trigger: TriggerTrickWin},
			{Suit: SuitSpades, Rank: RankQueen, Points: 13, Trigger: TriggerTrickWin},
		},
	}
}

// CreateScotchWhistGenome creates Scotch Whist (Catch the Ten), a
// trump-based trick-taking game scored by cards captured.
func CreateScotchWhistGenome() *GameGenome {
	return &GameGenome{
		Name:        "Scotch Whist",
		PlayerCount: 4,
		Setup: SetupRules{
			CardsPerPlayer: 13,
		},
		TurnStructure: TurnStructure{
			Phases: []Phase{
				&TrickPhase{LeadSuitRequired: true, TrumpSuit: SuitSpades, HighCardWins: true},
			},
			MaxTurns: 200,
		},
		WinConditions: []WinCondition{
			{Type: WinTypeMostCaptured, TriggerMode: TriggerAllHandsEmpty},
		},
	}
}

// CreateKnockoutWhistGenome creates Knock-Out Whist, a simpler
// elimination-flavored trick-taking game over a shorter 28-card deal.
func CreateKnockoutWhistGenome() *GameGenome {
	return &GameGenome{
		Name:        "Knock-Out Whist",
		PlayerCount: 4,
		Setup: SetupRules{
			CardsPerPlayer: 7, // 4 players x 7 = 28 cards
		},
		TurnStructure: TurnStructure{
			Phases: []Phase{
				&TrickPhase{LeadSuitRequired: true, TrumpSuit: SuitHearts, HighCardWins: true},
			},
			MaxTurns: 100,
		},
		WinConditions: []WinCondition{
			{Type: WinTypeMostCaptured, TriggerMode: TriggerAllHandsEmpty},
		},
	}
}

// spadesBidding is the contract-scoring table shared by solo and
// partnership Spades.
func spadesBidding() *BiddingPhase {
	return &BiddingPhase{
		MinBid:                1,
		MaxBid:                13,
		AllowNil:              true,
		PointsPerTrickBid:     10,
		OvertrickPoints:       1,
		FailedContractPenalty: 10,
		NilBonus:              100,
		NilPenalty:            100,
		BagLimit:              10,
		BagPenalty:            100,
	}
}

func spadesTrick() *TrickPhase {
	return &TrickPhase{
		LeadSuitRequired: true,
		TrumpSuit:        SuitSpades,
		HighCardWins:     true,
		BreakingSuit:     SuitSpades,
	}
}

// CreateSpadesGenome creates Spades with bidding: fixed spade trump and
// contract scoring, first to 500 wins.
func CreateSpadesGenome() *GameGenome {
	return &GameGenome{
		Name:        "Spades",
		PlayerCount: 4,
		Setup: SetupRules{
			CardsPerPlayer: 13,
		},
		TurnStructure: TurnStructure{
			Phases:   []Phase{spadesBidding(), spadesTrick()},
			MaxTurns: 200,
		},
		WinConditions: []WinCondition{
			{Type: WinTypeFirstToScore, Threshold: 500},
		},
	}
}

// CreatePartnershipSpadesGenome creates Partnership Spades: 4 players in
// two teams, seats 0&2 versus 1&3.
func CreatePartnershipSpadesGenome() *GameGenome {
	return &GameGenome{
		Name:        "Partnership Spades",
		PlayerCount: 4,
		Setup: SetupRules{
			CardsPerPlayer: 13,
		},
		TurnStructure: TurnStructure{
			Phases:   []Phase{spadesBidding(), spadesTrick()},
			MaxTurns: 200,
		},
		WinConditions: []WinCondition{
			{Type: WinTypeFirstToScore, Threshold: 500},
		},
		Teams: &TeamConfig{
			Enabled: true,
			Teams:   [][]int{{0, 2}, {1, 3}},
		},
	}
}

// CreateCrazyEightsGenome creates Crazy 8s: match suit/rank of the
// discard top (8s wild), first to empty their hand wins. Valid-play
// matching is the interpreter's condition evaluation, not genome data.
func CreateCrazyEightsGenome() *GameGenome {
	return &GameGenome{
		Name: "Crazy Eights",
		Setup: SetupRules{
			CardsPerPlayer: 10,
			DealToTableau:  1,
			WildCards:      []uint8{RankEight},
		},
		TurnStructure: TurnStructure{
			Phases: []Phase{
				&DrawPhase{Source: LocationDeck, Count: 1, Mandatory: false},
				&PlayPhase{
					Target:       LocationDiscard,
					MinCards:     1,
					MaxCards:     4,
					Mandatory:    true,
					PassIfUnable: true,
				},
			},
			MaxTurns: 500,
		},
		WinConditions: []WinCondition{
			{Type: WinTypeEmptyHand},
		},
	}
}

// CreateOldMaidGenome creates Old Maid: draw from your right-hand
// opponent, discard matched pairs, avoid being stuck with the odd card.
func CreateOldMaidGenome() *GameGenome {
	return &GameGenome{
		Name: "Old Maid",
		Setup: SetupRules{
			CardsPerPlayer: 13,
			DealToTableau:  1, // removed to leave an odd card in play
		},
		TurnStructure: TurnStructure{
			Phases: []Phase{
				&DrawPhase{Source: LocationOpponentHand, Count: 1, Mandatory: true},
				&DiscardPhase{Target: LocationDiscard, Count: 2, Mandatory: false}, // only fires with a pair in hand
			},
			MaxTurns: 100,
		},
		WinConditions: []WinCondition{
			{Type: WinTypeEmptyHand},
		},
	}
}

// CreatePresidentGenome creates President/Daifugo: a climbing shedding
// game where 2 outranks everything and the first empty hand wins. The
// "must beat the top card" rule lives in the interpreter.
func CreatePresidentGenome() *GameGenome {
	return &GameGenome{
		Name:        "President",
		PlayerCount: 4,
		Setup: SetupRules{
			CardsPerPlayer: 13, // 4 players x 13 = 52
		},
		TurnStructure: TurnStructure{
			Phases: []Phase{
				&PlayPhase{
					Target:       LocationTableau,
					MinCards:     1,
					MaxCards:     1,
					Mandatory:    true,
					PassIfUnable: true,
				},
			},
			MaxTurns: 300,
		},
		WinConditions: []WinCondition{
			{Type: WinTypeEmptyHand},
		},
	}
}

// CreateFanTanGenome creates Fan Tan / Sevens: a shedding game that
// builds sequential runs outward on the tableau.
func CreateFanTanGenome() *GameGenome {
	return &GameGenome{
		Name: "Fan Tan",
		Setup: SetupRules{
			CardsPerPlayer: 10,
		},
		TurnStructure: TurnStructure{
			Phases: []Phase{
				&PlayPhase{
					Target:       LocationTableau,
					MinCards:     1,
					MaxCards:     1,
					Mandatory:    true,
					PassIfUnable: true,
				},
				&DrawPhase{Source: LocationDeck, Count: 1, Mandatory: false},
			},
			MaxTurns:          150,
			TableauMode:       TableauModeSequence,
			SequenceDirection: SequenceBoth,
		},
		WinConditions: []WinCondition{
			{Type: WinTypeEmptyHand},
		},
	}
}

// CreateUnoStyleGenome creates an Uno-style shedding game with
// trigger-rank special effects (draw-two, skip, reverse).
func CreateUnoStyleGenome() *GameGenome {
	return &GameGenome{
		Name: "Uno Style",
		Setup: SetupRules{
			CardsPerPlayer: 7,
			DealToTableau:  1,
		},
		TurnStructure: TurnStructure{
			Phases: []Phase{
				&PlayPhase{
					Target:       LocationDiscard,
					MinCards:     1,
					MaxCards:     1,
					Mandatory:    false,
					PassIfUnable: true,
				},
				&DrawPhase{Source: LocationDeck, Count: 1, Mandatory: false},
			},
			MaxTurns: 500,
		},
		WinConditions: []WinCondition{
			{Type: WinTypeEmptyHand},
		},
		Effects: []SpecialEffect{
			{TriggerRank: RankTwo, Effect: EffectDrawTwo, Target: 0, Value: 2},
			{TriggerRank: RankJack, Effect: EffectSkipNext, Target: 0, Value: 1},
			{TriggerRank: RankQueen, Effect: EffectReverse, Target: 2, Value: 1},
		},
	}
}

// CreateGinRummyGenome creates simplified Gin Rummy: draw, meld to the
// tableau, discard, first empty hand wins.
func CreateGinRummyGenome() *GameGenome {
	return &GameGenome{
		Name: "Gin Rummy",
		Setup: SetupRules{
			CardsPerPlayer: 10,
			DealToTableau:  1,
		},
		TurnStructure: TurnStructure{
			Phases: []Phase{
				&DrawPhase{Source: LocationDeck, Count: 1, Mandatory: true},
				&PlayPhase{Target: LocationTableau, MinCards: 0, MaxCards: 10, Mandatory: false},
				&DiscardPhase{Target: LocationDiscard, Count: 1, Mandatory: true},
			},
			MaxTurns: 100,
		},
		WinConditions: []WinCondition{
			{Type: WinTypeEmptyHand},
		},
	}
}

// CreateGoFishGenome creates Go Fish: draw, lay down pairs/sets, complete
// books of four for score, first empty hand or highest score wins.
func CreateGoFishGenome() *GameGenome {
	return &GameGenome{
		Name: "Go Fish",
		Setup: SetupRules{
			CardsPerPlayer: 10,
		},
		TurnStructure: TurnStructure{
			Phases: []Phase{
				&DrawPhase{Source: LocationDeck, Count: 1, Mandatory: true},
				&PlayPhase{Target: LocationTableau, MinCards: 2, MaxCards: 4}, // pairs or sets
				&PlayPhase{Target: LocationDiscard, MinCards: 4, MaxCards: 4}, // completed books, scored
				&DiscardPhase{Target: LocationDiscard, Count: 1, Mandatory: false},
			},
			MaxTurns: 200,
		},
		WinConditions: []WinCondition{
			{Type: WinTypeHighScore, Threshold: 1},
			{Type: WinTypeEmptyHand},
		},
		CardScoring: []CardScoringRule{
			// Each card laid down toward a book is worth a point
			{Suit: SuitAny, Rank: RankAny, Points: 1, Trigger: TriggerPlay},
		},
	}
}

// CreateSimplePokerGenome creates Simple Poker: 5-card hands, one betting
// round, best hand wins at showdown.
func CreateSimplePokerGenome() *GameGenome {
	return &GameGenome{
		Name: "Simple Poker",
		Setup: SetupRules{
			CardsPerPlayer: 5,
			StartingChips:  1000,
		},
		TurnStructure: TurnStructure{
			Phases:   []Phase{&BettingPhase{MinBet: 10, MaxRaises: 3}},
			MaxTurns: 10,
		},
		WinConditions: []WinCondition{
			{Type: WinTypeBestHand},
		},
		HandEval: &HandEvaluation{
			Method:   EvalMethodPatternMatch,
			Patterns: standardPokerPatterns(),
		},
	}
}

// CreateCheatGenome creates I Doubt It / Cheat / BS: claim-and-challenge
// bluffing, first empty hand wins.
func CreateCheatGenome() *GameGenome {
	return &GameGenome{
		Name:        "Cheat",
		PlayerCount: 4,
		Setup: SetupRules{
			CardsPerPlayer: 13,
		},
		TurnStructure: TurnStructure{
			Phases: []Phase{&ClaimPhase{
				MinCards:       1,
				MaxCards:       4,
				SequentialRank: true,
				AllowChallenge: true,
				PilePenalty:    true,
			}},
			MaxTurns: 2000,
		},
		WinConditions: []WinCondition{
			{Type: WinTypeEmptyHand},
		},
	}
}

// CreateScopaGenome creates Scopa, the Italian rank-matching capture
// game: play a card to sweep matching tableau cards, redraw on empty hand.
func CreateScopaGenome() *GameGenome {
	return &GameGenome{
		Name: "Scopa",
		Setup: SetupRules{
			CardsPerPlayer: 3,
			DealToTableau:  4,
		},
		TurnStructure: TurnStructure{
			Phases: []Phase{
				&PlayPhase{Target: LocationTableau, MinCards: 1, MaxCards: 1},
				&DrawPhase{
					Source:    LocationDeck,
					Count:     3,
					Mandatory: true,
					Condition: handSizeCondition(cmpEQ, 0),
				},
			},
			MaxTurns:    100,
			TableauMode: TableauModeMatchRank,
		},
		WinConditions: []WinCondition{
			{Type: WinTypeMostCaptured},
		},
	}
}

// CreateDrawPokerGenome creates Draw Poker: bet, discard and draw to
// improve the hand, bet again, best hand wins.
func CreateDrawPokerGenome() *GameGenome {
	return &GameGenome{
		Name: "Draw Poker",
		Setup: SetupRules{
			CardsPerPlayer: 5,
			StartingChips:  1000,
		},
		TurnStructure: TurnStructure{
			Phases: []Phase{
				&BettingPhase{MinBet: 20, MaxRaises: 3},
				&DiscardPhase{Target: LocationDiscard, Count: 3, Mandatory: false},
				&DrawPhase{
					Source:    LocationDeck,
					Count:     3,
					Mandatory: false,
					Condition: handSizeCondition(cmpLT, 5),
				},
			},
			MaxTurns: 20,
		},
		WinConditions: []WinCondition{
			{Type: WinTypeBestHand},
		},
		HandEval: &HandEvaluation{
			Method:   EvalMethodPatternMatch,
			Patterns: standardPokerPatterns(),
		},
	}
}

// CreateBlackjackGenome creates Blackjack/21: draw toward a 21-point
// total without busting, a five-card charlie caps the draw.
func CreateBlackjackGenome() *GameGenome {
	return &GameGenome{
		Name: "Blackjack",
		Setup: SetupRules{
			CardsPerPlayer: 2,
			StartingChips:  500,
		},
		TurnStructure: TurnStructure{
			Phases: []Phase{
				&BettingPhase{MinBet: 25, MaxRaises: 1},
				&DrawPhase{
					Source:    LocationDeck,
					Count:     1,
					Mandatory: false,
					Condition: handSizeCondition(cmpLT, 5), // five-card charlie cap
				},
			},
			MaxTurns: 20,
		},
		WinConditions: []WinCondition{
			{Type: WinTypeHighScore, Threshold: 21},
		},
		HandEval: &HandEvaluation{
			Method:        EvalMethodPointTotal,
			TargetValue:   21,
			BustThreshold: 22,
			CardValues: []CardValue{
				{Rank: RankAce, Value: 1, AltValue: 11},
				{Rank: RankTwo, Value: 2},
				{Rank: RankThree, Value: 3},
				{Rank: RankFour, Value: 4},
				{Rank: RankFive, Value: 5},
				{Rank: RankSix, Value: 6},
				{Rank: RankSeven, Value: 7},
				{Rank: RankEight, Value: 8},
				{Rank: RankNine, Value: 9},
				{Rank: RankTen, Value: 10},
				{Rank: RankJack, Value: 10},
				{Rank: RankQueen, Value: 10},
				{Rank: RankKing, Value: 10},
			},
		},
	}
}

// GetSeedGenomes returns the curated library of known games used to seed
// an initial population, spanning the mechanic families the evolution
// engine is meant to explore: luck-only, trick-taking, shedding/matching,
// set collection, and betting.
func GetSeedGenomes() []*GameGenome {
	return []*GameGenome{
		CreateWarGenome(),
		CreateBettingWarGenome(),

		CreateHeartsGenome(),
		CreateScotchWhistGenome(),
		CreateKnockoutWhistGenome(),
		CreateSpadesGenome(),
		CreatePartnershipSpadesGenome(),

		CreateCrazyEightsGenome(),
		CreateOldMaidGenome(),
		CreatePresidentGenome(),
		CreateFanTanGenome(),
		CreateUnoStyleGenome(),

		CreateGinRummyGenome(),
		CreateGoFishGenome(),

		CreateSimplePokerGenome(),

		CreateCheatGenome(),
		CreateScopaGenome(),
		CreateDrawPokerGenome(),
		CreateBlackjackGenome(),
	}
}
