package simulation

import (
	"encoding/binary"
	"math/rand"
	"time"

	"github.com/cardgenome/evolve/engine"
	"github.com/cardgenome/evolve/genome"
	"github.com/cardgenome/evolve/mcts"
)

// RunBatchTyped simulates multiple games with a typed genome and AI configuration.
// This is the new entry point for the pure Go evolution system.
// NOTE: This is the serial version. Use RunBatchTypedParallel for parallel execution.
func RunBatchTyped(g *genome.GameGenome, numGames int, aiType AIPlayerType, mctsIterations int, seed uint64) AggregatedStats {
	results := make([]GameResult, numGames)
	rng := rand.New(rand.NewSource(int64(seed)))

	for i := 0; i < numGames; i++ {
		gameSeed := rng.Uint64()
		results[i] = RunSingleGameTyped(g, aiType, mctsIterations, gameSeed)
	}

	return aggregateResults(results)
}

// RunBatchTypedParallel simulates multiple games in parallel using typed genomes.
// This achieves significant speedup on multi-core systems.
func RunBatchTypedParallel(g *genome.GameGenome, numGames int, aiType AIPlayerType, mctsIterations int, seed uint64) AggregatedStats {
	return RunBatchTypedParallelN(g, numGames, aiType, mctsIterations, seed, 0)
}

// RunBatchTypedParallelN simulates multiple games in parallel with a specified number of workers.
func RunBatchTypedParallelN(g *genome.GameGenome, numGames int, aiType AIPlayerType, mctsIterations int, seed uint64, numWorkers int) AggregatedStats {
	return runPoolBatch(numGames, numWorkers, seed, func(gameSeed uint64) GameResult {
		return RunSingleGameTyped(g, aiType, mctsIterations, gameSeed)
	})
}

// GameTimeout is the maximum duration for a single game (prevents infinite loops)
const GameTimeout = 100 * time.Millisecond

// RunSingleGameTyped plays one complete game using a typed genome.
func RunSingleGameTyped(g *genome.GameGenome, aiType AIPlayerType, mctsIterations int, seed uint64) GameResult {
	start := time.Now()
	var metrics GameMetrics

	// Initialize game state
	state := engine.GetState()
	defer engine.PutState(state)

	// Setup deck and shuffle
	setupDeck(state, seed)

	// Per-game RNG for AI decisions, decorrelated from the shuffle seed
	gameRng := rand.New(rand.NewSource(int64(seed ^ 0x9E3779B97F4A7C15)))

	// Read setup from typed genome
	cardsPerPlayer := g.Setup.CardsPerPlayer
	if cardsPerPlayer <= 0 {
		cardsPerPlayer = 26 // Default for War
	}

	initialDiscardCount := g.Setup.DealToTableau
	if initialDiscardCount == 0 {
		initialDiscardCount = g.Setup.InitialDiscardCount
	}
	startingChips := g.Setup.StartingChips

	// Determine number of players
	numPlayers := g.EffectivePlayerCount()

	state.NumPlayers = uint8(numPlayers)
	state.CardsPerPlayer = cardsPerPlayer

	// Set tableau mode from typed genome
	state.TableauMode = uint8(g.TurnStructure.TableauMode)
	state.SequenceDirection = uint8(g.TurnStructure.SequenceDirection)

	// Initialize teams if configured
	if g.Teams != nil && g.Teams.Enabled && len(g.Teams.Teams) > 0 {
		teams := make([][]int, len(g.Teams.Teams))
		for i, team := range g.Teams.Teams {
			teams[i] = make([]int, len(team))
			copy(teams[i], team)
		}
		state.InitializeTeams(teams)
	}

	// Deal cards to each player
	for i := 0; i < cardsPerPlayer; i++ {
		for p := 0; p < numPlayers; p++ {
			state.DrawCard(uint8(p), engine.LocationDeck)
		}
	}

	// Deal initial cards to discard/tableau
	if initialDiscardCount > 0 && len(state.Deck) >= initialDiscardCount {
		// Initialize tableau pile if needed for TableauMode games
		if state.TableauMode != 0 && len(state.Tableau) == 0 {
			state.Tableau = make([][]engine.Card, 1)
			state.Tableau[0] = make([]engine.Card, 0, initialDiscardCount)
		}
		for i := 0; i < initialDiscardCount; i++ {
			if len(state.Deck) > 0 {
				card := state.Deck[len(state.Deck)-1]
				state.Deck = state.Deck[:len(state.Deck)-1]
				if state.TableauMode != 0 {
					state.Tableau[0] = append(state.Tableau[0], card)
				} else {
					state.Discard = append(state.Discard, card)
				}
			}
		}
	}

	// Initialize chips if this genome uses betting
	if startingChips > 0 {
		state.InitializeChips(startingChips)
	}

	// Setup-level modifiers: wild ranks and trump selection
	state.SetWildRanks(g.Setup.WildCards)
	state.TrumpOverride = effectiveTrumpSuit(g, state, gameRng)

	// Compat genome backs the legacy engine paths (leader detection, ApplyMove)
	bytecodeGenome := createCompatGenome(g)

	// Initialize tension tracking
	detector := engine.SelectLeaderDetector(bytecodeGenome)
	tensionMetrics := engine.NewTensionMetrics(int(state.NumPlayers))

	// Game loop with turn limit protection
	maxTurns := uint32(g.TurnStructure.MaxTurns)
	if maxTurns == 0 {
		maxTurns = 1000 // Default
	}

	prevMoveWasInteraction := false

	for state.TurnNumber < maxTurns {
		// Check timeout to prevent infinite loops from bad genomes
		if time.Since(start) > GameTimeout {
			tensionMetrics.Finalize(-1)
			return GameResult{
				WinnerID:    -1,
				WinningTeam: -1,
				TurnCount:   state.TurnNumber,
				DurationNs:  uint64(time.Since(start).Nanoseconds()),
				Error:       "timeout",
				Metrics:     metrics,
			}
		}

		// Check win conditions
		winner := checkWinConditionsTyped(state, g)
		if winner >= 0 {
			tensionMetrics.Finalize(int(winner))
			metrics.LeadChanges = uint32(tensionMetrics.LeadChanges)
			metrics.DecisiveTurnPct = tensionMetrics.DecisiveTurnPct()
			metrics.ClosestMargin = tensionMetrics.ClosestMargin
			metrics.WinnerWasTrailing = tensionMetrics.WinnerWasTrailing
			return GameResult{
				WinnerID:    winner,
				WinningTeam: state.WinningTeam,
				TurnCount:   state.TurnNumber,
				DurationNs:  uint64(time.Since(start).Nanoseconds()),
				Metrics:     metrics,
			}
		}

		// Generate legal moves using typed interpreter
		moves := genome.GenerateLegalMovesTyped(state, g)

		// Check if this is a betting phase
		if hasBettingMoves(moves) {
			bettingPhase := findBettingPhase(g)
			if bettingPhase != nil {
				err := runBettingRoundTyped(state, g, bettingPhase, aiType, &metrics, tensionMetrics, detector, gameRng)
				if err != "" {
					tensionMetrics.Finalize(-1)
					metrics.LeadChanges = uint32(tensionMetrics.LeadChanges)
					metrics.DecisiveTurnPct = tensionMetrics.DecisiveTurnPct()
					metrics.ClosestMargin = tensionMetrics.ClosestMargin
					metrics.WinnerWasTrailing = tensionMetrics.WinnerWasTrailing
					return GameResult{
						WinnerID:    -1,
						WinningTeam: -1,
						TurnCount:   state.TurnNumber,
						DurationNs:  uint64(time.Since(start).Nanoseconds()),
						Error:       err,
						Metrics:     metrics,
					}
				}

				state.BettingComplete = true

				// Resolve showdown after betting
				foldShortHands(state, g)
				winners := engine.ResolveShowdown(state)
				if len(winners) == 1 {
					engine.AwardPot(state, winners)
					metrics.FoldWins++
				} else if len(winners) > 1 {
					winner := showdownWinner(state, g)
					if winner >= 0 {
						engine.AwardPot(state, []int{int(winner)})
						metrics.ShowdownWins++
					}
				}

				state.ResetHand()
				state.TrumpOverride = effectiveTrumpSuit(g, state, gameRng)
				continue
			}
		}

		// Check if this is a bidding phase
		if hasBiddingMoves(moves) {
			aiTypes := make([]AIPlayerType, state.NumPlayers)
			for i := range aiTypes {
				aiTypes[i] = aiType
			}
			runBiddingRoundTyped(state, g, aiTypes, gameRng)
			continue
		}

		if len(moves) == 0 {
			tensionMetrics.Finalize(-1)
			metrics.LeadChanges = uint32(tensionMetrics.LeadChanges)
			metrics.DecisiveTurnPct = tensionMetrics.DecisiveTurnPct()
			metrics.ClosestMargin = tensionMetrics.ClosestMargin
			metrics.WinnerWasTrailing = tensionMetrics.WinnerWasTrailing
			return GameResult{
				WinnerID:    -1,
				WinningTeam: -1,
				TurnCount:   state.TurnNumber,
				DurationNs:  uint64(time.Since(start).Nanoseconds()),
				Error:       "no legal moves",
				Metrics:     metrics,
			}
		}

		// Phase 1 instrumentation
		metrics.TotalDecisions++
		metrics.TotalValidMoves += uint64(len(moves))
		metrics.TotalHandSize += uint64(len(state.Players[state.CurrentPlayer].Hand))
		if state.CurrentPlayer != 0 {
			metrics.OpponentTurnCount++
		}
		if len(moves) == 1 {
			metrics.ForcedDecisions++
			if prevMoveWasInteraction {
				metrics.ForcedResponseEvents++
			}
		}

		// Select and apply move
		var move *engine.LegalMove

		if len(moves) == 1 {
			move = &moves[0]
		} else {
			switch aiType {
			case RandomAI:
				move = &moves[gameRng.Intn(len(moves))]
			case GreedyAI:
				move = selectGreedyMoveTyped(state, g, moves)
			case MCTS100AI, MCTS500AI, MCTS1000AI, MCTS2000AI:
				// Use bytecode genome for MCTS (requires existing infrastructure)
				move = mcts.Search(state, bytecodeGenome, mctsIterations, mcts.DefaultExplorationParam)
			default:
				move = &moves[0]
			}
		}

		if move == nil {
			tensionMetrics.Finalize(-1)
			metrics.LeadChanges = uint32(tensionMetrics.LeadChanges)
			metrics.DecisiveTurnPct = tensionMetrics.DecisiveTurnPct()
			metrics.ClosestMargin = tensionMetrics.ClosestMargin
			metrics.WinnerWasTrailing = tensionMetrics.WinnerWasTrailing
			return GameResult{
				WinnerID:    -1,
				WinningTeam: -1,
				TurnCount:   state.TurnNumber,
				DurationNs:  uint64(time.Since(start).Nanoseconds()),
				Error:       "AI returned nil move",
				Metrics:     metrics,
			}
		}

		// Instrumentation
		metrics.TotalActions++
		interaction := isInteractionTyped(state, move, g)
		if interaction {
			metrics.TotalInteractions++
			if state.CurrentPlayer != 0 {
				metrics.MoveDisruptionEvents++
			}
		}
		if move.TargetLoc == engine.LocationTableau {
			metrics.ContentionEvents++
		}
		prevMoveWasInteraction = interaction

		trackClaimMetrics(state, move, g, &metrics)
		applyMoveTyped(state, move, g)

		// Update tension tracking
		tensionMetrics.Update(state, detector)
	}

	// Max turns reached - draw
	tensionMetrics.Finalize(-1)
	metrics.LeadChanges = uint32(tensionMetrics.LeadChanges)
	metrics.DecisiveTurnPct = tensionMetrics.DecisiveTurnPct()
	metrics.ClosestMargin = tensionMetrics.ClosestMargin
	metrics.WinnerWasTrailing = tensionMetrics.WinnerWasTrailing
	return GameResult{
		WinnerID:    -1,
		WinningTeam: -1,
		TurnCount:   state.TurnNumber,
		DurationNs:  uint64(time.Since(start).Nanoseconds()),
		Metrics:     metrics,
	}
}

// RunBatchTypedAsymmetric simulates games pitting two different AI types
// against each other on the same typed genome. Used for empirical skill-gap
// measurement: a genome where a strong AI (e.g. MCTS) can't reliably beat a
// weak one (e.g. Random) has little decision-driven skill, regardless of
// what the structural SkillVsLuck heuristic estimates.
func RunBatchTypedAsymmetric(g *genome.GameGenome, numGames int, strongAI AIPlayerType, weakAI AIPlayerType, mctsIterations int, seed uint64) AggregatedStats {
	results := make([]GameResult, numGames)
	rng := rand.New(rand.NewSource(int64(seed)))

	for i := 0; i < numGames; i++ {
		gameSeed := rng.Uint64()
		// Alternate which seat the strong AI occupies so seat order can't
		// bias the measured win rate.
		if i%2 == 0 {
			results[i] = runSingleGameTypedAsymmetric(g, strongAI, weakAI, mctsIterations, gameSeed)
		} else {
			r := runSingleGameTypedAsymmetric(g, weakAI, strongAI, mctsIterations, gameSeed)
			if r.WinnerID == 0 {
				r.WinnerID = 1
			} else if r.WinnerID == 1 {
				r.WinnerID = 0
			}
			results[i] = r
		}
	}

	return aggregateResults(results)
}

// runSingleGameTypedAsymmetric plays one game with player 0 driven by
// aiType0 and every other player driven by aiType1.
func runSingleGameTypedAsymmetric(g *genome.GameGenome, aiType0 AIPlayerType, aiType1 AIPlayerType, mctsIterations int, seed uint64) GameResult {
	start := time.Now()
	var metrics GameMetrics

	state := engine.GetState()
	defer engine.PutState(state)

	setupDeck(state, seed)

	gameRng := rand.New(rand.NewSource(int64(seed ^ 0x9E3779B97F4A7C15)))

	cardsPerPlayer := g.Setup.CardsPerPlayer
	if cardsPerPlayer <= 0 {
		cardsPerPlayer = 26
	}
	numPlayers := g.EffectivePlayerCount()

	state.NumPlayers = uint8(numPlayers)
	state.CardsPerPlayer = cardsPerPlayer
	state.TableauMode = uint8(g.TurnStructure.TableauMode)
	state.SequenceDirection = uint8(g.TurnStructure.SequenceDirection)

	for i := 0; i < cardsPerPlayer; i++ {
		for p := 0; p < numPlayers; p++ {
			state.DrawCard(uint8(p), engine.LocationDeck)
		}
	}

	if g.Setup.StartingChips > 0 {
		state.InitializeChips(g.Setup.StartingChips)
	}

	state.SetWildRanks(g.Setup.WildCards)
	state.TrumpOverride = effectiveTrumpSuit(g, state, gameRng)

	bytecodeGenome := createCompatGenome(g)
	detector := engine.SelectLeaderDetector(bytecodeGenome)
	tensionMetrics := engine.NewTensionMetrics(int(state.NumPlayers))

	maxTurns := uint32(g.TurnStructure.MaxTurns)
	if maxTurns == 0 {
		maxTurns = 1000
	}

	finalize := func(winner int8) GameResult {
		tensionMetrics.Finalize(int(winner))
		metrics.LeadChanges = uint32(tensionMetrics.LeadChanges)
		metrics.DecisiveTurnPct = tensionMetrics.DecisiveTurnPct()
		metrics.ClosestMargin = tensionMetrics.ClosestMargin
		metrics.WinnerWasTrailing = tensionMetrics.WinnerWasTrailing
		return GameResult{
			WinnerID:    winner,
			WinningTeam: state.WinningTeam,
			TurnCount:   state.TurnNumber,
			DurationNs:  uint64(time.Since(start).Nanoseconds()),
			Metrics:     metrics,
		}
	}

	prevMoveWasInteraction := false

	for state.TurnNumber < maxTurns {
		if time.Since(start) > GameTimeout {
			r := finalize(-1)
			r.WinningTeam = -1
			r.Error = "timeout"
			return r
		}

		winner := checkWinConditionsTyped(state, g)
		if winner >= 0 {
			return finalize(winner)
		}

		moves := genome.GenerateLegalMovesTyped(state, g)

		aiType := aiType1
		if state.CurrentPlayer == 0 {
			aiType = aiType0
		}

		if hasBettingMoves(moves) {
			bettingPhase := findBettingPhase(g)
			if bettingPhase != nil {
				err := runBettingRoundTyped(state, g, bettingPhase, aiType, &metrics, tensionMetrics, detector, gameRng)
				if err != "" {
					r := finalize(-1)
					r.WinningTeam = -1
					r.Error = err
					return r
				}
				state.BettingComplete = true
				foldShortHands(state, g)
				winners := engine.ResolveShowdown(state)
				if len(winners) == 1 {
					engine.AwardPot(state, winners)
					metrics.FoldWins++
				} else if len(winners) > 1 {
					w := showdownWinner(state, g)
					if w >= 0 {
						engine.AwardPot(state, []int{int(w)})
						metrics.ShowdownWins++
					}
				}
				state.ResetHand()
				state.TrumpOverride = effectiveTrumpSuit(g, state, gameRng)
				continue
			}
		}

		if hasBiddingMoves(moves) {
			aiTypes := make([]AIPlayerType, state.NumPlayers)
			for i := range aiTypes {
				if i == 0 {
					aiTypes[i] = aiType0
				} else {
					aiTypes[i] = aiType1
				}
			}
			runBiddingRoundTyped(state, g, aiTypes, gameRng)
			continue
		}

		if len(moves) == 0 {
			r := finalize(-1)
			r.WinningTeam = -1
			r.Error = "no legal moves"
			return r
		}

		metrics.TotalDecisions++
		metrics.TotalValidMoves += uint64(len(moves))
		metrics.TotalHandSize += uint64(len(state.Players[state.CurrentPlayer].Hand))
		if state.CurrentPlayer != 0 {
			metrics.OpponentTurnCount++
		}
		if len(moves) == 1 {
			metrics.ForcedDecisions++
			if prevMoveWasInteraction {
				metrics.ForcedResponseEvents++
			}
		}

		var move *engine.LegalMove
		if len(moves) == 1 {
			move = &moves[0]
		} else {
			switch aiType {
			case RandomAI:
				move = &moves[gameRng.Intn(len(moves))]
			case GreedyAI:
				move = selectGreedyMoveTyped(state, g, moves)
			case MCTS100AI, MCTS500AI, MCTS1000AI, MCTS2000AI:
				move = mcts.Search(state, bytecodeGenome, mctsIterations, mcts.DefaultExplorationParam)
			default:
				move = &moves[0]
			}
		}

		if move == nil {
			r := finalize(-1)
			r.WinningTeam = -1
			r.Error = "AI returned nil move"
			return r
		}

		metrics.TotalActions++
		interaction := isInteractionTyped(state, move, g)
		if interaction {
			metrics.TotalInteractions++
			if state.CurrentPlayer != 0 {
				metrics.MoveDisruptionEvents++
			}
		}
		if move.TargetLoc == engine.LocationTableau {
			metrics.ContentionEvents++
		}
		prevMoveWasInteraction = interaction

		trackClaimMetrics(state, move, g, &metrics)
		applyMoveTyped(state, move, g)
		tensionMetrics.Update(state, detector)
	}

	r := finalize(-1)
	r.WinningTeam = -1
	return r
}

// checkWinConditionsTyped evaluates the genome's win conditions in declared
// order against the current state. Trigger modes gate when a condition is
// even considered; Comparison picks the winner direction for comparative
// conditions. Ties resolve to the lowest player id.
func checkWinConditionsTyped(state *engine.GameState, g *genome.GameGenome) int8 {
	// No game ends before the genome's minimum length
	if g.MinTurns > 0 && state.TurnNumber < uint32(g.MinTurns) {
		return -1
	}

	for _, wc := range g.WinConditions {
		winner := evaluateWinConditionTyped(state, g, wc)
		if winner >= 0 {
			if len(state.PlayerToTeam) > int(winner) && state.PlayerToTeam[winner] >= 0 {
				state.WinningTeam = state.PlayerToTeam[winner]
			}
			return winner
		}
	}

	return -1 // No winner yet
}

// evaluateWinConditionTyped checks a single win condition, returning the
// winning player or -1.
func evaluateWinConditionTyped(state *engine.GameState, g *genome.GameGenome, wc genome.WinCondition) int8 {
	numPlayers := int(state.NumPlayers)

	// Trigger-mode gates apply regardless of condition type
	switch wc.TriggerMode {
	case genome.TriggerAllHandsEmpty:
		if !allHandsEmpty(state) {
			return -1
		}
	case genome.TriggerDeckEmpty:
		if len(state.Deck) > 0 {
			return -1
		}
	}

	switch wc.Type {
	case genome.WinTypeEmptyHand:
		for i := 0; i < numPlayers; i++ {
			if len(state.Players[i].Hand) == 0 {
				return int8(i)
			}
		}

	case genome.WinTypeCaptureAll:
		for i := 0; i < numPlayers; i++ {
			held := len(state.Players[i].Hand) + len(state.Players[i].Captured)
			if held == 52 {
				return int8(i)
			}
		}
		// Partial-deal variants: one player holds everything still in play
		for i := 0; i < numPlayers; i++ {
			if len(state.Players[i].Hand) == 0 {
				continue
			}
			othersEmpty := true
			for j := 0; j < numPlayers; j++ {
				if j != i && len(state.Players[j].Hand) > 0 {
					othersEmpty = false
					break
				}
			}
			if othersEmpty {
				return int8(i)
			}
		}

	case genome.WinTypeAllHandsEmpty:
		if !allHandsEmpty(state) {
			return -1
		}
		engine.ApplyHandEndScoring(state, createCompatGenome(g))
		return bestByScore(state, numPlayers, wc.Comparison)

	case genome.WinTypeDeckEmpty:
		if len(state.Deck) > 0 {
			return -1
		}
		engine.ApplyHandEndScoring(state, createCompatGenome(g))
		return bestByScore(state, numPlayers, wc.Comparison)

	case genome.WinTypeHighScore:
		for i := 0; i < numPlayers; i++ {
			if state.Players[i].Score >= wc.Threshold {
				if wc.Comparison == genome.CompareLowest {
					return bestByScore(state, numPlayers, genome.CompareLowest)
				}
				return bestByScore(state, numPlayers, genome.CompareHighest)
			}
		}

	case genome.WinTypeLowScore:
		// Someone hitting the threshold ends the game; lowest score wins
		for i := 0; i < numPlayers; i++ {
			if state.Players[i].Score >= wc.Threshold {
				return bestByScore(state, numPlayers, genome.CompareLowest)
			}
		}

	case genome.WinTypeFirstToScore:
		for i := 0; i < numPlayers; i++ {
			if state.Players[i].Score >= wc.Threshold {
				return int8(i)
			}
		}

	case genome.WinTypeMostCaptured:
		if wc.TriggerMode == genome.TriggerImmediate && !(allHandsEmpty(state) && len(state.Deck) == 0) {
			return -1
		}
		best, bestCount := -1, -1
		for i := 0; i < numPlayers; i++ {
			count := len(state.Players[i].Captured)
			if count == 0 {
				count = int(state.Players[i].TricksWon)
			}
			if count > bestCount {
				bestCount = count
				best = i
			}
		}
		if best >= 0 && bestCount > 0 {
			return int8(best)
		}

	case genome.WinTypeMostTricks, genome.WinTypeFewestTricks:
		if wc.TriggerMode == genome.TriggerImmediate && !allHandsEmpty(state) {
			return -1
		}
		best := -1
		var bestTricks int
		for i := 0; i < numPlayers; i++ {
			tricks := int(state.Players[i].TricksWon)
			better := tricks > bestTricks
			if wc.Type == genome.WinTypeFewestTricks {
				better = best < 0 || tricks < bestTricks
			}
			if best < 0 || better {
				bestTricks = tricks
				best = i
			}
		}
		if best >= 0 {
			return int8(best)
		}

	case genome.WinTypeMostChips:
		remaining, last := 0, -1
		for i := 0; i < numPlayers; i++ {
			if state.Players[i].Chips > 0 {
				remaining++
				last = i
			}
		}
		if wc.TriggerMode == genome.TriggerImmediate {
			// Last player holding chips takes the game
			if remaining == 1 {
				return int8(last)
			}
			return -1
		}
		best, bestChips := -1, int64(-1)
		for i := 0; i < numPlayers; i++ {
			if state.Players[i].Chips > bestChips {
				bestChips = state.Players[i].Chips
				best = i
			}
		}
		if best >= 0 {
			return int8(best)
		}

	case genome.WinTypeBestHand:
		// Handled by showdown resolution, not the per-move check
		return -1
	}

	return -1
}

// allHandsEmpty reports whether every player's hand is exhausted.
func allHandsEmpty(state *engine.GameState) bool {
	for i := 0; i < int(state.NumPlayers); i++ {
		if len(state.Players[i].Hand) > 0 {
			return false
		}
	}
	return true
}

// bestByScore returns the player with the highest (or lowest) score.
func bestByScore(state *engine.GameState, numPlayers int, cmp genome.WinComparison) int8 {
	best := 0
	for i := 1; i < numPlayers; i++ {
		if cmp == genome.CompareLowest {
			if state.Players[i].Score < state.Players[best].Score {
				best = i
			}
		} else if state.Players[i].Score > state.Players[best].Score {
			best = i
		}
	}
	return int8(best)
}

// effectiveTrumpSuit resolves the setup-level trump for the current hand.
// Fixed trump is used as declared; rotating trump advances one suit per
// completed hand; random trump is drawn from the per-game RNG.
func effectiveTrumpSuit(g *genome.GameGenome, state *engine.GameState, rng *rand.Rand) uint8 {
	switch g.Setup.TrumpMode {
	case genome.TrumpRandom:
		return uint8(rng.Intn(4))
	case genome.TrumpRotating:
		base := uint16(0)
		if g.Setup.TrumpSuit != 0 {
			base = uint16(g.Setup.TrumpSuit - 1)
		}
		return uint8((base + state.HandNumber) % 4)
	default:
		if g.Setup.TrumpSuit == 0 || g.Setup.TrumpSuit > 4 {
			return 255
		}
		return g.Setup.TrumpSuit - 1
	}
}

// claimRules converts a typed ClaimPhase to the engine's decoded form.
func claimRules(p *genome.ClaimPhase) engine.ClaimPhaseRules {
	rules := engine.ClaimPhaseRules{
		MinCards:       p.MinCards,
		MaxCards:       p.MaxCards,
		SequentialRank: p.SequentialRank,
		AllowChallenge: p.AllowChallenge,
		PilePenalty:    p.PilePenalty,
	}
	if rules.MinCards <= 0 {
		rules.MinCards = 1
	}
	if rules.MaxCards < rules.MinCards {
		rules.MaxCards = rules.MinCards
	}
	return rules
}

// trackClaimMetrics records claim/bluff instrumentation for a move about to
// be applied to a ClaimPhase.
func trackClaimMetrics(state *engine.GameState, move *engine.LegalMove, g *genome.GameGenome, metrics *GameMetrics) {
	if move.PhaseIndex >= len(g.TurnStructure.Phases) {
		return
	}
	cp, ok := g.TurnStructure.Phases[move.PhaseIndex].(*genome.ClaimPhase)
	if !ok {
		return
	}

	switch {
	case move.CardIndex >= 0:
		metrics.TotalClaims++
		if cp.SequentialRank && move.CardIndex < len(state.Players[state.CurrentPlayer].Hand) {
			card := state.Players[state.CurrentPlayer].Hand[move.CardIndex]
			if card.Rank != state.NextClaimRank && !state.IsWildRank(card.Rank) {
				metrics.TotalBluffs++
			}
		}
	case move.CardIndex == engine.MoveChallenge:
		metrics.TotalChallenges++
		if claimIsBluff(state) {
			metrics.SuccessfulCatches++
		}
	case move.CardIndex == engine.MovePass:
		if claimIsBluff(state) {
			metrics.SuccessfulBluffs++
		}
	}
}

// claimIsBluff reports whether the active claim's face-down cards fail to
// back the claimed rank.
func claimIsBluff(state *engine.GameState) bool {
	claim := state.CurrentClaim
	if claim == nil {
		return false
	}
	for _, card := range claim.CardsPlayed {
		if card.Rank != claim.ClaimedRank && !state.IsWildRank(card.Rank) {
			return true
		}
	}
	return false
}


// showdownWinner resolves a multi-way showdown with the genome's own hand
// evaluation: point-total games (Blackjack) compare against the target,
// everything else falls back to the poker-strength heuristic.
func showdownWinner(state *engine.GameState, g *genome.GameGenome) int8 {
	if g.HandEval != nil && g.HandEval.Method == genome.EvalMethodPointTotal {
		return engine.FindBestPointTotalWinner(state, int(state.NumPlayers), compatHandEval(g.HandEval))
	}
	return engine.FindBestPokerWinner(state, int(state.NumPlayers))
}

// compatHandEval mirrors a typed HandEvaluation into the engine's shape.
func compatHandEval(he *genome.HandEvaluation) *engine.HandEvaluation {
	if he == nil {
		return nil
	}
	out := &engine.HandEvaluation{
		Method:        uint8(he.Method),
		TargetValue:   he.TargetValue,
		BustThreshold: he.BustThreshold,
	}
	for _, cv := range he.CardValues {
		out.CardValues = append(out.CardValues, engine.CardValue{
			Rank:     cv.Rank,
			Value:    cv.Value,
			AltValue: cv.AltValue,
		})
	}
	return out
}

// foldShortHands enforces a best_hand win condition's required_hand_size:
// a player who cannot field enough cards at showdown is out of the hand.
func foldShortHands(state *engine.GameState, g *genome.GameGenome) {
	required := 0
	for _, wc := range g.WinConditions {
		if wc.Type == genome.WinTypeBestHand && wc.RequiredHandSize > required {
			required = wc.RequiredHandSize
		}
	}
	if required == 0 {
		return
	}
	for i := 0; i < int(state.NumPlayers); i++ {
		if len(state.Players[i].Hand) < required {
			state.Players[i].HasFolded = true
		}
	}
}

// findBettingPhase returns the first BettingPhase in the genome, or nil.
func findBettingPhase(g *genome.GameGenome) *genome.BettingPhase {
	for _, phase := range g.TurnStructure.Phases {
		if bp, ok := phase.(*genome.BettingPhase); ok {
			return bp
		}
	}
	return nil
}

// findBiddingPhase returns the first BiddingPhase in the genome, or nil.
func findBiddingPhase(g *genome.GameGenome) *genome.BiddingPhase {
	for _, phase := range g.TurnStructure.Phases {
		if bp, ok := phase.(*genome.BiddingPhase); ok {
			return bp
		}
	}
	return nil
}

// hasBettingMoves checks if any moves are betting actions.
func hasBettingMoves(moves []engine.LegalMove) bool {
	for _, m := range moves {
		if m.CardIndex <= engine.MoveBettingCheck && m.CardIndex >= engine.MoveBettingFold {
			return true
		}
	}
	return false
}

// hasBiddingMoves checks if any moves are bid actions, recognized by the
// MoveBidOffset sentinel encoding (see engine/moves_const.go).
func hasBiddingMoves(moves []engine.LegalMove) bool {
	for _, m := range moves {
		if m.CardIndex <= engine.MoveBidOffset {
			return true
		}
	}
	return false
}

func anyNeedsToAct(needsToAct []bool) bool {
	for _, v := range needsToAct {
		if v {
			return true
		}
	}
	return false
}

// runBettingRoundTyped executes a betting round using typed genome.
func runBettingRoundTyped(state *engine.GameState, g *genome.GameGenome, bettingPhase *genome.BettingPhase, aiType AIPlayerType, metrics *GameMetrics, tensionMetrics *engine.TensionMetrics, detector engine.LeaderDetector, rng *rand.Rand) string {
	// Convert to engine type for compatibility
	engineBettingPhase := &engine.BettingPhaseData{
		MinBet:    bettingPhase.MinBet,
		MaxRaises: bettingPhase.MaxRaises,
	}

	// Track who needs to act
	needsToAct := make([]bool, state.NumPlayers)
	for i := 0; i < int(state.NumPlayers); i++ {
		p := &state.Players[i]
		needsToAct[i] = !p.HasFolded && !p.IsAllIn && p.Chips > 0
	}

	currentPlayer := state.BettingStartPlayer % int(state.NumPlayers)
	maxActions := int(state.NumPlayers) * (bettingPhase.MaxRaises + 2) * 2

	for actionCount := 0; actionCount < maxActions; actionCount++ {
		if engine.CountActivePlayers(state) <= 1 {
			break
		}
		if engine.CountActingPlayers(state) == 0 {
			break
		}
		if !anyNeedsToAct(needsToAct) && engine.AllBetsMatched(state) {
			break
		}

		startSearch := currentPlayer
		for !needsToAct[currentPlayer] {
			currentPlayer = (currentPlayer + 1) % int(state.NumPlayers)
			if currentPlayer == startSearch {
				break
			}
		}
		if !needsToAct[currentPlayer] {
			break
		}

		moves := engine.GenerateBettingMoves(state, engineBettingPhase, currentPlayer)
		if len(moves) == 0 {
			needsToAct[currentPlayer] = false
			currentPlayer = (currentPlayer + 1) % int(state.NumPlayers)
			continue
		}

		metrics.TotalDecisions++
		metrics.TotalValidMoves += uint64(len(moves))
		if len(moves) == 1 {
			metrics.ForcedDecisions++
		}

		var action engine.BettingAction
		switch aiType {
		case GreedyAI:
			handStrength := engine.EvaluateHandStrength(state.Players[currentPlayer].Hand)
			action = engine.SelectGreedyBettingAction(state, moves, handStrength)
		default:
			action = engine.SelectRandomBettingAction(moves, rng.Intn)
		}

		handStrength := engine.EvaluateHandStrength(state.Players[currentPlayer].Hand)
		if action == engine.BettingBet || action == engine.BettingRaise || action == engine.BettingAllIn {
			metrics.TotalBets++
			if handStrength < 0.3 {
				metrics.BettingBluffs++
			}
		}
		if action == engine.BettingAllIn {
			metrics.AllInCount++
		}

		oldCurrentBet := state.CurrentBet
		engine.ApplyBettingAction(state, engineBettingPhase, currentPlayer, action)
		metrics.TotalActions++
		metrics.TotalInteractions++

		if tensionMetrics != nil && detector != nil {
			tensionMetrics.Update(state, detector)
		}

		if state.CurrentBet > oldCurrentBet {
			for i := 0; i < int(state.NumPlayers); i++ {
				p := &state.Players[i]
				if !p.HasFolded && !p.IsAllIn && p.Chips > 0 && i != currentPlayer {
					needsToAct[i] = true
				}
			}
		}

		needsToAct[currentPlayer] = false
		currentPlayer = (currentPlayer + 1) % int(state.NumPlayers)
		state.TurnNumber++
	}

	return ""
}

// runBiddingRoundTyped executes a bidding round using typed genome.
func runBiddingRoundTyped(state *engine.GameState, g *genome.GameGenome, aiTypes []AIPlayerType, rng *rand.Rand) {
	biddingPhase := findBiddingPhase(g)
	if biddingPhase == nil {
		return
	}

	// Convert to engine type
	engineBiddingPhase := engine.BiddingPhase{
		MinBid:   biddingPhase.MinBid,
		MaxBid:   biddingPhase.MaxBid,
		AllowNil: biddingPhase.AllowNil,
	}

	// Reset bidding state
	state.BiddingComplete = false
	for i := 0; i < int(state.NumPlayers); i++ {
		state.Players[i].CurrentBid = -1
		state.Players[i].IsNilBid = false
	}

	startPlayer := int(state.CurrentPlayer)
	for i := 0; i < int(state.NumPlayers); i++ {
		playerIdx := (startPlayer + i) % int(state.NumPlayers)

		var bid engine.BidMove
		aiType := aiTypes[playerIdx]
		switch aiType {
		case GreedyAI:
			bid = selectGreedyBid(state, engineBiddingPhase, playerIdx)
		default:
			handSize := len(state.Players[playerIdx].Hand)
			bidMoves := engine.GenerateBidMoves(engineBiddingPhase, handSize)
			if len(bidMoves) > 0 {
				bid = bidMoves[rng.Intn(len(bidMoves))]
			} else {
				bid = engine.BidMove{Value: 1, IsNil: false}
			}
		}

		engine.ApplyBidMove(state, playerIdx, bid)
		state.TurnNumber++
	}
}

// selectGreedyMoveTyped picks the move that maximizes immediate score.
func selectGreedyMoveTyped(state *engine.GameState, g *genome.GameGenome, moves []engine.LegalMove) *engine.LegalMove {
	bestMove := &moves[0]
	bestScore := scoreMove(state, &moves[0])

	for i := 1; i < len(moves); i++ {
		score := scoreMove(state, &moves[i])
		if score > bestScore {
			bestScore = score
			bestMove = &moves[i]
		}
	}

	return bestMove
}

// isInteractionTyped determines if a move affects opponent state.
func isInteractionTyped(state *engine.GameState, move *engine.LegalMove, g *genome.GameGenome) bool {
	if move.PhaseIndex >= len(g.TurnStructure.Phases) {
		return false
	}

	phase := g.TurnStructure.Phases[move.PhaseIndex]

	switch phase.(type) {
	case *genome.DrawPhase:
		if move.TargetLoc == engine.LocationOpponentHand {
			return true
		}
	case *genome.PlayPhase:
		if move.TargetLoc == engine.LocationTableau {
			return true
		}
	case *genome.TrickPhase:
		return true
	case *genome.ClaimPhase:
		return true
	case *genome.BettingPhase:
		return true
	}

	return false
}

// applyMoveTyped applies a move using typed phase information.
func applyMoveTyped(state *engine.GameState, move *engine.LegalMove, g *genome.GameGenome) {
	// Use existing engine.ApplyMove with a compatibility wrapper
	bytecodeGenome := createCompatGenome(g)
	engine.ApplyMove(state, move, bytecodeGenome)
}

// createCompatGenome creates a bytecode genome for compatibility with existing engine functions.
// This is a temporary bridge during the transition to pure typed genomes.
func createCompatGenome(g *genome.GameGenome) *engine.Genome {
	// Create minimal bytecode genome for compatibility
	result := &engine.Genome{
		Header: &engine.BytecodeHeader{
			MaxTurns:          uint32(g.TurnStructure.MaxTurns),
			TableauMode:       uint8(g.TurnStructure.TableauMode),
			SequenceDirection: uint8(g.TurnStructure.SequenceDirection),
			PlayerCount:       uint32(g.EffectivePlayerCount()),
		},
		TurnPhases:    make([]engine.PhaseDescriptor, len(g.TurnStructure.Phases)),
		WinConditions: make([]engine.WinCondition, len(g.WinConditions)),
		Effects:       make(map[uint8]engine.SpecialEffect),
	}

	// Convert phases to descriptors, encoding each phase's fields into the
	// same Data byte layout engine/bytecode.go's parseTurnStructure and
	// engine/movegen.go expect, so the legacy interpreter sees real
	// condition/draw-count/bidding parameters instead of an empty section.
	for i, phase := range g.TurnStructure.Phases {
		result.TurnPhases[i] = engine.PhaseDescriptor{
			PhaseType: phase.PhaseType(),
			Data:      encodePhaseData(phase),
		}
	}

	// Convert win conditions
	for i, wc := range g.WinConditions {
		result.WinConditions[i] = engine.WinCondition{
			WinType:   uint8(wc.Type),
			Threshold: wc.Threshold,
		}
	}

	// Convert effects
	for _, effect := range g.Effects {
		result.Effects[effect.TriggerRank] = engine.SpecialEffect{
			TriggerRank: effect.TriggerRank,
			EffectType:  uint8(effect.Effect),
			Target:      effect.Target,
			Value:       effect.Value,
		}
	}

	// Convert card scoring rules (trick wins, captures, plays, hand end)
	for _, rule := range g.CardScoring {
		result.CardScoring = append(result.CardScoring, engine.CardScoringRule{
			Suit:    rule.Suit,
			Rank:    rule.Rank,
			Points:  rule.Points,
			Trigger: uint8(rule.Trigger),
		})
	}

	return result
}

// encodePhaseData serializes a typed genome.Phase into the raw Data bytes
// the legacy bytecode interpreter (engine/movegen.go, engine/bidding.go)
// expects for its PhaseType. Layouts mirror engine/bytecode.go's
// parseTurnStructure comments field-for-field.
func encodePhaseData(phase genome.Phase) []byte {
	switch p := phase.(type) {
	case *genome.DrawPhase:
		// source:1 + count:4 + mandatory:1 + conditionLen:4 + condition,
		// same length-prefix scheme as the play phase so readers never
		// have to know the condition buffer's internal layout
		var condBytes []byte
		if p.Condition != nil {
			condBytes = genome.EncodeConditionBytes(p.Condition)
		}
		data := make([]byte, 10, 10+len(condBytes))
		data[0] = byte(p.Source)
		binary.BigEndian.PutUint32(data[1:5], uint32(p.Count))
		if p.Mandatory {
			data[5] = 1
		}
		binary.BigEndian.PutUint32(data[6:10], uint32(len(condBytes)))
		data = append(data, condBytes...)
		return data

	case *genome.PlayPhase:
		// target:1 + min:1 + max:1 + mandatory:1 + pass_if_unable:1 + conditionLen:4 + condition
		condBytes := genome.EncodeConditionBytes(p.ValidPlayCondition)
		if p.ValidPlayCondition == nil {
			condBytes = nil
		}
		data := make([]byte, 9, 9+len(condBytes))
		data[0] = byte(p.Target)
		data[1] = byte(p.MinCards)
		data[2] = byte(p.MaxCards)
		if p.Mandatory {
			data[3] = 1
		}
		if p.PassIfUnable {
			data[4] = 1
		}
		binary.BigEndian.PutUint32(data[5:9], uint32(len(condBytes)))
		data = append(data, condBytes...)
		return data

	case *genome.DiscardPhase:
		// target:1 + count:4 + mandatory:1 = 6 bytes
		data := make([]byte, 6)
		data[0] = byte(p.Target)
		binary.BigEndian.PutUint32(data[1:5], uint32(p.Count))
		if p.Mandatory {
			data[5] = 1
		}
		return data

	case *genome.TrickPhase:
		// lead_suit_required:1 + trump_suit:1 + high_card_wins:1 + breaking_suit:1 = 4 bytes
		data := make([]byte, 4)
		if p.LeadSuitRequired {
			data[0] = 1
		}
		data[1] = p.TrumpSuit
		if p.HighCardWins {
			data[2] = 1
		}
		data[3] = p.BreakingSuit
		return data

	case *genome.BettingPhase:
		// min_bet:4 + max_raises:4 = 8 bytes
		data := make([]byte, 8)
		binary.BigEndian.PutUint32(data[0:4], uint32(p.MinBet))
		binary.BigEndian.PutUint32(data[4:8], uint32(p.MaxRaises))
		return data

	case *genome.ClaimPhase:
		return engine.EncodeClaimPhaseData(claimRules(p))

	case *genome.BiddingPhase:
		// engine.ParseBiddingPhaseData reads: [0]=opcode (unused) + min:1 +
		// max:1 + flags:1 + points_per_trick:1 + overtrick_points:1 +
		// failed_contract_penalty:1 + nil_bonus:2 + nil_penalty:2 +
		// bag_limit:1 + bag_penalty:2 + reserved:2 = 16 bytes
		data := make([]byte, 16)
		data[0] = engine.PhaseTypeBidding
		data[1] = byte(p.MinBid)
		data[2] = byte(p.MaxBid)
		if p.AllowNil {
			data[3] = 0x01
		}
		data[4] = byte(p.PointsPerTrickBid)
		data[5] = byte(p.OvertrickPoints)
		data[6] = byte(p.FailedContractPenalty)
		binary.BigEndian.PutUint16(data[7:9], uint16(p.NilBonus))
		binary.BigEndian.PutUint16(data[9:11], uint16(p.NilPenalty))
		data[11] = byte(p.BagLimit)
		binary.BigEndian.PutUint16(data[12:14], uint16(p.BagPenalty))
		return data

	default:
		return nil
	}
}
