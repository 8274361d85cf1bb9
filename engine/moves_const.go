package engine

// Sentinel CardIndex values used by LegalMove for moves that aren't a simple
// "play hand[CardIndex]" action. Non-negative CardIndex values always mean
// "the card at this index in the current player's hand."
const (
	MoveDraw     = -1 // draw/hit from the phase's source location
	MovePlayPass = -2 // decline to play this turn (PassIfUnable)
	MoveDrawPass = -3 // stand/stay (blackjack-style: stop drawing)
	MoveChallenge = -4 // challenge the current claim
	MovePass      = -5 // decline to challenge a claim

	// MoveBidOffset anchors the bid-value encoding: CardIndex = MoveBidOffset - bid.Value.
	// Bid values are small non-negative integers (0 = nil bid), so the resulting
	// range (MoveBidOffset down to MoveBidOffset-MaxBid) never collides with the
	// other sentinel ranges below.
	MoveBidOffset = -200

	// Betting actions are encoded as CardIndex = -10 - int(action) for the six
	// BettingAction values (Check=0 .. Fold=5), giving the inclusive range
	// [-15, -10]. MoveBettingCheck is the least negative (Check), MoveBettingFold
	// the most negative (Fold).
	MoveBettingCheck = -10
	MoveBettingFold  = -15

	// Multi-card "set" plays (e.g. Go Fish book-laying) encode the played rank
	// as CardIndex = -int(rank) - 100.
	MoveSetPlayOffset = -100
)
