package engine

// TensionMetrics tracks tension curve data during simulation
type TensionMetrics struct {
	LeadChanges   int     // Number of times leader switched
	DecisiveTurn  int     // Turn when winner took PERMANENT lead
	ClosestMargin float32 // Smallest normalized gap between 1st and 2nd (0 = tied)
	TotalTurns    int     // For computing decisive turn percentage

	// WinnerWasTrailing is true if the eventual winner was not the leader at
	// the game's midpoint. Set by Finalize.
	WinnerWasTrailing bool

	// Internal tracking (not serialized)
	currentLeader int   // Player ID of current leader (-1 for tie)
	leaderHistory []int // Leader at each turn (for permanent lead calculation)
}

// LeaderDetector interface for game-type-specific leader detection
type LeaderDetector interface {
	GetLeader(state *GameState) int     // Returns player ID or -1 for tie
	GetMargin(state *GameState) float32 // Normalized gap (0-1), 0 = tied, 1 = max gap
}

// NewTensionMetrics creates initialized tension tracker
func NewTensionMetrics(numPlayers int) *TensionMetrics {
	return &TensionMetrics{
		currentLeader: -1,
		ClosestMargin: 1.0,
		leaderHistory: make([]int, 0, 100),
	}
}

// Update records the leader and margin after a single move has been applied.
// Call once per ply; lead changes and the decisive turn are derived from the
// resulting leaderHistory in Finalize.
func (tm *TensionMetrics) Update(state *GameState, detector LeaderDetector) {
	if detector == nil {
		return
	}

	tm.TotalTurns++

	leader := detector.GetLeader(state)
	if leader != tm.currentLeader && tm.currentLeader != -1 && leader != -1 {
		tm.LeadChanges++
	}
	if leader != -1 {
		tm.currentLeader = leader
	}
	tm.leaderHistory = append(tm.leaderHistory, leader)

	margin := detector.GetMargin(state)
	if margin < tm.ClosestMargin {
		tm.ClosestMargin = margin
	}
}

// Finalize computes the decisive-turn point and whether the winner was
// trailing at the game's midpoint. winner is -1 for a draw/no-winner game,
// in which case WinnerWasTrailing is left false and DecisiveTurn unset.
func (tm *TensionMetrics) Finalize(winner int) {
	if winner < 0 || len(tm.leaderHistory) == 0 {
		return
	}

	// Decisive turn: the first turn after which the winner remained the
	// leader (or tied) for the rest of the game.
	decisive := -1
	for i := len(tm.leaderHistory) - 1; i >= 0; i-- {
		if tm.leaderHistory[i] != winner && tm.leaderHistory[i] != -1 {
			decisive = i + 1
			break
		}
	}
	if decisive == -1 {
		decisive = 0
	}
	tm.DecisiveTurn = decisive

	mid := len(tm.leaderHistory) / 2
	if mid < len(tm.leaderHistory) {
		midLeader := tm.leaderHistory[mid]
		tm.WinnerWasTrailing = midLeader != -1 && midLeader != winner
	}
}

// DecisiveTurnPct returns the decisive turn as a fraction of the game's
// length (0 = decided immediately, 1 = decided on the final move).
func (tm *TensionMetrics) DecisiveTurnPct() float64 {
	if tm.TotalTurns == 0 {
		return 0
	}
	return float64(tm.DecisiveTurn) / float64(tm.TotalTurns)
}

// scoreLeaderDetector tracks the leader by raw Score, used for point-scoring
// and betting games (Score doubles as chip/pot standing for betting games
// that don't track Score directly).
type scoreLeaderDetector struct{}

func (scoreLeaderDetector) GetLeader(state *GameState) int {
	best := int32(-1 << 31)
	leader := -1
	tied := false
	for i := range state.Players {
		s := state.Players[i].Score
		if s > best {
			best = s
			leader = i
			tied = false
		} else if s == best {
			tied = true
		}
	}
	if tied {
		return -1
	}
	return leader
}

func (scoreLeaderDetector) GetMargin(state *GameState) float32 {
	if len(state.Players) < 2 {
		return 1.0
	}
	best, second := int32(-1<<31), int32(-1<<31)
	for i := range state.Players {
		s := state.Players[i].Score
		if s > best {
			second = best
			best = s
		} else if s > second {
			second = s
		}
	}
	spread := best - second
	if spread < 0 {
		spread = 0
	}
	norm := float32(spread) / 100.0
	if norm > 1.0 {
		norm = 1.0
	}
	return 1.0 - norm
}

// tricksLeaderDetector tracks the leader by tricks won, for trick-based games
// where Score isn't updated until the hand ends.
type tricksLeaderDetector struct{}

func (tricksLeaderDetector) GetLeader(state *GameState) int {
	best := int8(-1)
	leader := -1
	tied := false
	for i := range state.Players {
		t := int8(state.Players[i].TricksWon)
		if t > best {
			best = t
			leader = i
			tied = false
		} else if t == best {
			tied = true
		}
	}
	if tied {
		return -1
	}
	return leader
}

func (tricksLeaderDetector) GetMargin(state *GameState) float32 {
	if len(state.Players) < 2 {
		return 1.0
	}
	best, second := int8(-1), int8(-1)
	for i := range state.Players {
		t := int8(state.Players[i].TricksWon)
		if t > best {
			second = best
			best = t
		} else if t > second {
			second = t
		}
	}
	total := int(state.CardsPerPlayer) * len(state.Players)
	if total == 0 {
		total = 1
	}
	norm := float32(best-second) / float32(total)
	if norm > 1.0 {
		norm = 1.0
	}
	return 1.0 - norm
}

// SelectLeaderDetector picks the appropriate LeaderDetector for a genome:
// trick-based games track standing via tricks won (Score is dormant until
// hand-end scoring), everything else tracks standing via Score directly.
func SelectLeaderDetector(g *Genome) LeaderDetector {
	for _, phase := range g.TurnPhases {
		if phase.PhaseType == PhaseTypeTrick {
			return tricksLeaderDetector{}
		}
	}
	return scoreLeaderDetector{}
}
