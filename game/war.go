package game

import (
	"math/rand"
)

// warDeckSize is the card count of a standard deck with suit stripped
// (only rank comparisons matter for War).
const warDeckSize = 52

// WarGame is a minimal two-player War simulation used as a baseline
// comparison point for genome-driven tableau=War games.
type WarGame struct {
	Player1Hand []int
	Player2Hand []int
	Turns       int
	rng         *rand.Rand
}

// WarResult is the outcome of a complete War game.
type WarResult struct {
	Winner int
	Turns  int
}

// freshWarDeck builds the 52-card rank deck (four copies of ranks 1-13)
// shuffled by rng.
func freshWarDeck(rng *rand.Rand) []int {
	deck := make([]int, 0, warDeckSize)
	for suit := 0; suit < 4; suit++ {
		for rank := 1; rank <= 13; rank++ {
			deck = append(deck, rank)
		}
	}
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}

// NewWarGame deals a fresh, seeded War game split evenly between two hands.
func NewWarGame(seed int64) *WarGame {
	rng := rand.New(rand.NewSource(seed))
	deck := freshWarDeck(rng)
	half := len(deck) / 2
	return &WarGame{
		Player1Hand: deck[:half],
		Player2Hand: deck[half:],
		rng:         rng,
	}
}

// PlayBattle resolves one round: both players flip their top card, higher
// rank wins both cards, and a tie escalates into a four-card War.
func (g *WarGame) PlayBattle() {
	if len(g.Player1Hand) == 0 || len(g.Player2Hand) == 0 {
		return
	}
	defer func() { g.Turns++ }()

	p1Card, p2Card := g.Player1Hand[0], g.Player2Hand[0]
	g.Player1Hand = g.Player1Hand[1:]
	g.Player2Hand = g.Player2Hand[1:]

	switch {
	case p1Card > p2Card:
		g.Player1Hand = append(g.Player1Hand, p1Card, p2Card)
	case p2Card > p1Card:
		g.Player2Hand = append(g.Player2Hand, p2Card, p1Card)
	default:
		g.resolveWar(p1Card, p2Card)
	}
}

// resolveWar handles a tied flip: each side antes four more cards into a
// shared pile and the pile is awarded by comparing two of the anted
// cards. If either side lacks the cards to ante, the tied cards are
// simply returned to their owners.
func (g *WarGame) resolveWar(p1Card, p2Card int) {
	const stake = 4
	if len(g.Player1Hand) < stake || len(g.Player2Hand) < stake {
		g.Player1Hand = append(g.Player1Hand, p1Card)
		g.Player2Hand = append(g.Player2Hand, p2Card)
		return
	}

	pile := make([]int, 0, 2+2*stake)
	pile = append(pile, p1Card, p2Card)
	pile = append(pile, g.Player1Hand[:stake]...)
	pile = append(pile, g.Player2Hand[:stake]...)
	g.Player1Hand = g.Player1Hand[stake:]
	g.Player2Hand = g.Player2Hand[stake:]

	if pile[len(pile)-stake] > pile[len(pile)-1] {
		g.Player1Hand = append(g.Player1Hand, pile...)
	} else {
		g.Player2Hand = append(g.Player2Hand, pile...)
	}
}

// IsGameOver reports whether either player has run out of cards.
func (g *WarGame) IsGameOver() bool {
	return len(g.Player1Hand) == 0 || len(g.Player2Hand) == 0
}

// GetWinner returns 1 or 2 for whichever player holds more cards.
func (g *WarGame) GetWinner() int {
	if len(g.Player1Hand) > len(g.Player2Hand) {
		return 1
	}
	return 2
}

// PlayWarGame runs battles until one player is cleaned out or maxTurns is
// reached, whichever comes first.
func PlayWarGame(seed int64, maxTurns int) WarResult {
	g := NewWarGame(seed)
	for !g.IsGameOver() && g.Turns < maxTurns {
		g.PlayBattle()
	}
	return WarResult{Winner: g.GetWinner(), Turns: g.Turns}
}
