package engine

import (
	"encoding/binary"
	"errors"
)

// BiddingPhase describes a contract-bidding round (Spades-style).
type BiddingPhase struct {
	MinBid   int  // Minimum bid value
	MaxBid   int  // Maximum bid value
	AllowNil bool // If true, players may bid "Nil" (zero tricks)
}

// ContractScoring holds the per-team scoring parameters applied once a hand
// of contract bidding resolves. See EvaluateContracts in scoring.go.
type ContractScoring struct {
	PointsPerTrickBid     int // Points per trick bid (e.g., 10 for Spades)
	OvertrickPoints       int // Points per overtrick ("bag")
	FailedContractPenalty int // Penalty multiplier for failing contract
	NilBonus              int // Bonus for a successful Nil bid
	NilPenalty            int // Penalty for a failed Nil bid
	BagLimit              int // Number of bags before penalty triggers
	BagPenalty            int // Penalty applied when bag limit is reached
}

// BidMove represents a single bid option offered to a player.
type BidMove struct {
	Value int  // Tricks bid (0 for a Nil bid)
	IsNil bool // True for a Nil bid
}

// GenerateBidMoves enumerates legal bids for a player. handSize is accepted
// for symmetry with other move generators and future hand-size-capped bids;
// the current rule set only bounds bids by [MinBid, MaxBid].
func GenerateBidMoves(phase BiddingPhase, handSize int) []BidMove {
	moves := make([]BidMove, 0, phase.MaxBid-phase.MinBid+2)
	if phase.AllowNil {
		moves = append(moves, BidMove{Value: 0, IsNil: true})
	}
	for v := phase.MinBid; v <= phase.MaxBid; v++ {
		moves = append(moves, BidMove{Value: v})
	}
	return moves
}

// ApplyBidMove records a player's bid on the game state.
func ApplyBidMove(state *GameState, playerIdx int, bid BidMove) {
	state.Players[playerIdx].CurrentBid = int8(bid.Value)
	state.Players[playerIdx].IsNilBid = bid.IsNil
}

// ParseBiddingPhaseData decodes a 16-byte BiddingPhase bytecode section into
// the bidding range plus the contract scoring parameters that ride alongside
// it. Layout: opcode:1 + min_bid:1 + max_bid:1 + flags:1 + points_per_trick:1 +
// overtrick_points:1 + failed_contract_penalty:1 + nil_bonus:2 + nil_penalty:2 +
// bag_limit:1 + bag_penalty:2 + reserved:2 = 16 bytes.
func ParseBiddingPhaseData(data []byte) (BiddingPhase, ContractScoring, error) {
	if len(data) < 16 {
		return BiddingPhase{}, ContractScoring{}, errors.New("bidding phase data too short: need 16 bytes")
	}

	phase := BiddingPhase{
		MinBid:   int(data[1]),
		MaxBid:   int(data[2]),
		AllowNil: data[3]&0x01 == 0x01,
	}

	scoring := ContractScoring{
		PointsPerTrickBid:     int(data[4]),
		OvertrickPoints:       int(data[5]),
		FailedContractPenalty: int(data[6]),
		NilBonus:              int(binary.BigEndian.Uint16(data[7:9])),
		NilPenalty:            int(binary.BigEndian.Uint16(data[9:11])),
		BagLimit:              int(data[11]),
		BagPenalty:            int(binary.BigEndian.Uint16(data[12:14])),
	}

	return phase, scoring, nil
}
