package engine

// Special-effect kinds a triggering card can carry.
const (
	EFFECT_SKIP_NEXT = iota
	EFFECT_REVERSE
	EFFECT_DRAW_CARDS
	EFFECT_EXTRA_TURN
	EFFECT_FORCE_DISCARD
)

// Target selectors for a special effect.
const (
	TARGET_NEXT_PLAYER = iota
	TARGET_PREV_PLAYER
	TARGET_PLAYER_CHOICE
	TARGET_RANDOM_OPPONENT
	TARGET_ALL_OPPONENTS
	TARGET_LEFT_OPPONENT
	TARGET_RIGHT_OPPONENT
)

// SpecialEffect binds a trigger rank to an effect kind, target, and
// magnitude, as declared on a genome.
type SpecialEffect struct {
	TriggerRank uint8
	EffectType  uint8
	Target      uint8
	Value       uint8
}

// RNG is the minimal randomness capability special-effect resolution
// needs; nil disables effects that would otherwise consult it.
type RNG interface {
	Intn(n int) int
}

// ApplyEffect resolves one special effect against state in place.
func ApplyEffect(state *GameState, effect *SpecialEffect, rng RNG) {
	switch effect.EffectType {
	case EFFECT_SKIP_NEXT:
		addSkip(state, int(effect.Value))

	case EFFECT_REVERSE:
		state.PlayDirection *= -1

	case EFFECT_DRAW_CARDS:
		forEachTarget(state, effect.Target, rng, func(targetID int) {
			dealFromDeck(state, targetID, int(effect.Value))
		})

	case EFFECT_EXTRA_TURN:
		// Skipping every other player leaves the actor's turn again.
		state.SkipCount = state.NumPlayers - 1

	case EFFECT_FORCE_DISCARD:
		forEachTarget(state, effect.Target, rng, func(targetID int) {
			discardFromTop(state, targetID, int(effect.Value))
		})

	default:
		// Unrecognized effect kinds are no-ops so newer genomes stay
		// loadable by older interpreters.
	}
}

// addSkip accumulates skip steps, capped so a chain of effects can never
// skip a full revolution and starve every other player.
func addSkip(state *GameState, value int) {
	state.SkipCount += uint8(value)
	if maxSkip := state.NumPlayers - 1; state.SkipCount > maxSkip {
		state.SkipCount = maxSkip
	}
}

// dealFromDeck moves up to n cards from the deck top into a player's hand.
func dealFromDeck(state *GameState, playerID, n int) {
	for i := 0; i < n && len(state.Deck) > 0; i++ {
		card := state.Deck[0]
		state.Deck = state.Deck[1:]
		state.Players[playerID].Hand = append(state.Players[playerID].Hand, card)
	}
}

// discardFromTop removes up to n cards from the back of a player's hand
// onto the discard pile.
func discardFromTop(state *GameState, playerID, n int) {
	hand := &state.Players[playerID].Hand
	if n > len(*hand) {
		n = len(*hand)
	}
	for i := 0; i < n; i++ {
		card := (*hand)[len(*hand)-1]
		*hand = (*hand)[:len(*hand)-1]
		state.Discard = append(state.Discard, card)
	}
}

// singleTarget resolves a non-broadcast selector to one player index, or
// -1 if the selector (ALL_OPPONENTS) requires iterating every opponent.
func singleTarget(state *GameState, target uint8) int {
	current := int(state.CurrentPlayer)
	numPlayers := int(state.NumPlayers)
	direction := int(state.PlayDirection)

	switch target {
	case TARGET_NEXT_PLAYER:
		return (current + direction + numPlayers) % numPlayers
	case TARGET_PREV_PLAYER:
		return (current - direction + numPlayers) % numPlayers
	case TARGET_ALL_OPPONENTS:
		return -1
	default:
		return (current + 1) % numPlayers
	}
}

// forEachTarget invokes action for every player a target selector resolves
// to — one player for single-target selectors, every opponent for
// ALL_OPPONENTS.
func forEachTarget(state *GameState, target uint8, rng RNG, action func(int)) {
	targetID := singleTarget(state, target)
	if targetID != -1 {
		action(targetID)
		return
	}
	for i := 0; i < int(state.NumPlayers); i++ {
		if i != int(state.CurrentPlayer) {
			action(i)
		}
	}
}

// AdvanceTurn moves CurrentPlayer to the next active seat, honoring
// PlayDirection and any pending SkipCount, then clears the skip.
func AdvanceTurn(state *GameState) {
	step := int(state.PlayDirection)
	numPlayers := int(state.NumPlayers)
	next := int(state.CurrentPlayer)

	for i := 0; i <= int(state.SkipCount); i++ {
		next = (next + step + numPlayers) % numPlayers
	}

	state.CurrentPlayer = uint8(next)
	state.SkipCount = 0
}
