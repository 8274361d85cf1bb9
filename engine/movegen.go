package engine

import "encoding/binary"

// LegalMove represents a possible action
type LegalMove struct {
	PhaseIndex int
	CardIndex  int // -1 if not card-specific
	TargetLoc  Location
}

// GenerateLegalMoves returns all valid moves for current player
func GenerateLegalMoves(state *GameState, genome *Genome) []LegalMove {
	moves := make([]LegalMove, 0, 10)
	currentPlayer := state.CurrentPlayer

	for phaseIdx, phase := range genome.TurnPhases {
		switch phase.PhaseType {
		case 1: // DrawPhase
			if len(phase.Data) < 6 {
				continue
			}
			source := Location(phase.Data[0])
			mandatory := phase.Data[5] == 1

			// A phase-level condition gates the whole draw (empty-hand
			// redraws, draw-to-five), mirroring the typed interpreter
			if len(phase.Data) >= 10 {
				condLen := int(binary.BigEndian.Uint32(phase.Data[6:10]))
				if condLen > 0 && 10+condLen <= len(phase.Data) &&
					!EvaluateCondition(state, currentPlayer, phase.Data[10:10+condLen]) {
					continue
				}
			}

			// Check if can draw
			canDraw := false
			switch source {
			case LocationDeck:
				canDraw = len(state.Deck) > 0
			case LocationDiscard:
				canDraw = len(state.Discard) > 0
			case LocationOpponentHand:
				opponentID := (currentPlayer + 1) % state.NumPlayers
				canDraw = len(state.Players[opponentID].Hand) > 0
			}

			if canDraw || mandatory {
				moves = append(moves, LegalMove{
					PhaseIndex: phaseIdx,
					CardIndex:  -1,
					TargetLoc:  source,
				})
			}

		case 2: // PlayPhase
			if len(phase.Data) < 3 {
				continue
			}
			target := Location(phase.Data[0])
			minCards := int(phase.Data[1])
			maxCards := int(phase.Data[2])

			// Optional valid-play condition: length-prefixed buffer after the
			// five fixed bytes (target, min, max, mandatory, pass_if_unable).
			var condBytes []byte
			if len(phase.Data) >= 9 {
				condLen := int(binary.BigEndian.Uint32(phase.Data[5:9]))
				if condLen > 0 && 9+condLen <= len(phase.Data) {
					condBytes = phase.Data[9 : 9+condLen]
				}
			}

			// Single-card plays only on this path
			if minCards <= 1 && maxCards >= 1 {
				for cardIdx, card := range state.Players[currentPlayer].Hand {
					if condBytes != nil && !EvaluateCardCondition(state, currentPlayer, card, condBytes) {
						continue
					}
					moves = append(moves, LegalMove{
						PhaseIndex: phaseIdx,
						CardIndex:  cardIdx,
						TargetLoc:  target,
					})
				}
			}

		case 3: // DiscardPhase
			// Always allow discard if have cards
			if len(state.Players[currentPlayer].Hand) > 0 {
				for cardIdx := range state.Players[currentPlayer].Hand {
					moves = append(moves, LegalMove{
						PhaseIndex: phaseIdx,
						CardIndex:  cardIdx,
						TargetLoc:  LocationDiscard,
					})
				}
			}

		case 4: // TrickPhase
			if len(phase.Data) < 4 {
				continue
			}
			leadSuitRequired := phase.Data[0] == 1
			// trumpSuit := phase.Data[1]  // 255 = none
			// highCardWins := phase.Data[2] == 1
			breakingSuit := phase.Data[3] // 255 = none

			hand := state.Players[currentPlayer].Hand
			if len(hand) == 0 {
				continue
			}

			// Determine if we're leading or following
			isLeading := len(state.CurrentTrick) == 0

			if isLeading {
				// Leading: can play any card, except breaking suit until broken
				for cardIdx, card := range hand {
					// If breaking suit (e.g., Hearts) and not broken yet, can't lead it
					if breakingSuit != 255 && card.Suit == breakingSuit && !state.HeartsBroken {
						// Check if player has any non-breaking suit cards
						hasOther := false
						for _, c := range hand {
							if c.Suit != breakingSuit {
								hasOther = true
								break
							}
						}
						if hasOther {
							continue // Can't lead breaking suit
						}
						// If only breaking suit cards, can lead them
					}
					moves = append(moves, LegalMove{
						PhaseIndex: phaseIdx,
						CardIndex:  cardIdx,
						TargetLoc:  LocationTableau, // Use tableau as trick area
					})
				}
			} else {
				// Following: must follow suit if able
				leadSuit := state.CurrentTrick[0].Card.Suit

				if leadSuitRequired {
					// Check if we have cards of lead suit
					hasLeadSuit := false
					for _, card := range hand {
						if card.Suit == leadSuit {
							hasLeadSuit = true
							break
						}
					}

					if hasLeadSuit {
						// Must follow suit
						for cardIdx, card := range hand {
							if card.Suit == leadSuit {
								moves = append(moves, LegalMove{
									PhaseIndex: phaseIdx,
									CardIndex:  cardIdx,
									TargetLoc:  LocationTableau,
								})
							}
						}
					} else {
						// Can't follow suit - can play any card
						for cardIdx := range hand {
							moves = append(moves, LegalMove{
								PhaseIndex: phaseIdx,
								CardIndex:  cardIdx,
								TargetLoc:  LocationTableau,
							})
						}
					}
				} else {
					// No suit following required - can play any card
					for cardIdx := range hand {
						moves = append(moves, LegalMove{
							PhaseIndex: phaseIdx,
							CardIndex:  cardIdx,
							TargetLoc:  LocationTableau,
						})
					}
				}
			}

		case 6: // ClaimPhase
			rules := ParseClaimPhaseData(phase.Data)
			if state.CurrentClaim == nil {
				for cardIdx := range state.Players[currentPlayer].Hand {
					moves = append(moves, LegalMove{
						PhaseIndex: phaseIdx,
						CardIndex:  cardIdx,
						TargetLoc:  LocationDiscard,
					})
				}
			} else if currentPlayer != state.CurrentClaim.ClaimerID {
				if rules.AllowChallenge {
					moves = append(moves, LegalMove{
						PhaseIndex: phaseIdx,
						CardIndex:  MoveChallenge,
						TargetLoc:  LocationDiscard,
					})
				}
				moves = append(moves, LegalMove{
					PhaseIndex: phaseIdx,
					CardIndex:  MovePass,
					TargetLoc:  LocationDiscard,
				})
			}
		}
	}

	return moves
}

// ApplyMove executes a legal move, mutating state
func ApplyMove(state *GameState, move *LegalMove, genome *Genome) {
	if move.PhaseIndex >= len(genome.TurnPhases) {
		return
	}

	phase := genome.TurnPhases[move.PhaseIndex]
	currentPlayer := state.CurrentPlayer

	switch phase.PhaseType {
	case 1: // DrawPhase
		if len(phase.Data) >= 5 {
			count := int(binary.BigEndian.Uint32(phase.Data[1:5]))
			for i := 0; i < count; i++ {
				state.DrawCard(currentPlayer, move.TargetLoc)
			}
		}

	case 2: // PlayPhase
		if move.CardIndex >= 0 {
			var played Card
			if move.CardIndex < len(state.Players[currentPlayer].Hand) {
				played = state.Players[currentPlayer].Hand[move.CardIndex]
			}
			state.PlayCard(currentPlayer, move.CardIndex, move.TargetLoc)
			state.Players[currentPlayer].Score += scoreCardForTrigger(genome, played, TriggerPlay)

			// WAR tableau mode: once every player has contributed a card to the
			// battle pile, compare and award the pile to the highest rank.
			if move.TargetLoc == LocationTableau {
				mode := state.TableauMode
				if mode == 0 && genome.Header != nil {
					mode = genome.Header.TableauMode
				}
				switch mode {
				case TableauModeWar:
					numPlayers := int(state.NumPlayers)
					if numPlayers == 0 {
						numPlayers = len(state.Players)
					}
					resolveWarBattle(state, numPlayers)
				case TableauModeMatchRank:
					resolveRankCapture(state, currentPlayer, genome)
				}
			}
		}

	case 3: // DiscardPhase
		if move.CardIndex >= 0 {
			state.PlayCard(currentPlayer, move.CardIndex, LocationDiscard)
		}

	case 4: // TrickPhase
		if move.CardIndex >= 0 && move.CardIndex < len(state.Players[currentPlayer].Hand) {
			card := state.Players[currentPlayer].Hand[move.CardIndex]

			// Remove card from hand
			state.Players[currentPlayer].Hand = append(
				state.Players[currentPlayer].Hand[:move.CardIndex],
				state.Players[currentPlayer].Hand[move.CardIndex+1:]...,
			)

			// Add to current trick
			state.CurrentTrick = append(state.CurrentTrick, TrickCard{
				PlayerID: currentPlayer,
				Card:     card,
			})

			// Check if this card breaks hearts (or other breaking suit)
			if len(phase.Data) >= 4 {
				breakingSuit := phase.Data[3]
				if breakingSuit != 255 && card.Suit == breakingSuit {
					state.HeartsBroken = true
				}
			}

			// Check if trick is complete
			numPlayers := int(state.NumPlayers)
			if numPlayers == 0 {
				numPlayers = 2 // Default to 2 players
			}
			if len(state.CurrentTrick) >= numPlayers {
				// Resolve trick
				resolveTrick(state, genome, phase)
				return // Don't advance turn normally - resolveTrick sets next player
			}
		}

	case 6: // ClaimPhase
		rules := ParseClaimPhaseData(phase.Data)
		switch {
		case move.CardIndex >= 0:
			state.ApplyClaimPlay(currentPlayer, move.CardIndex, rules)
		case move.CardIndex == MoveChallenge:
			state.ResolveChallenge(currentPlayer, rules)
		case move.CardIndex == MovePass:
			state.AcceptClaim()
		}
	}

	// Advance turn
	if state.NumPlayers == 0 {
		state.CurrentPlayer = 1 - currentPlayer // Fallback for 2 players
	} else {
		state.CurrentPlayer = (state.CurrentPlayer + 1) % state.NumPlayers
	}
	state.TurnNumber++
}

// resolveTrick determines the winner and scores points
func resolveTrick(state *GameState, genome *Genome, phase PhaseDescriptor) {
	if len(state.CurrentTrick) == 0 {
		return
	}

	// Parse phase data
	trumpSuit := uint8(255) // None
	highCardWins := true
	if len(phase.Data) >= 4 {
		trumpSuit = phase.Data[1]
		highCardWins = phase.Data[2] == 1
	}
	if state.TrumpOverride != 255 {
		trumpSuit = state.TrumpOverride
	}

	leadSuit := state.CurrentTrick[0].Card.Suit
	winnerIdx := 0
	winningCard := state.CurrentTrick[0].Card

	for i := 1; i < len(state.CurrentTrick); i++ {
		tc := state.CurrentTrick[i]
		card := tc.Card

		// Determine if this card beats the current winner
		beats := false

		if trumpSuit != 255 {
			// Trump game rules
			winnerIsTrump := winningCard.Suit == trumpSuit
			cardIsTrump := card.Suit == trumpSuit

			if cardIsTrump && !winnerIsTrump {
				// Trump beats non-trump
				beats = true
			} else if cardIsTrump && winnerIsTrump {
				// Both trump - compare ranks
				if highCardWins {
					beats = card.Rank > winningCard.Rank
				} else {
					beats = card.Rank < winningCard.Rank
				}
			} else if !cardIsTrump && !winnerIsTrump && card.Suit == leadSuit {
				// Neither trump - must follow suit to win
				if winningCard.Suit == leadSuit {
					if highCardWins {
						beats = card.Rank > winningCard.Rank
					} else {
						beats = card.Rank < winningCard.Rank
					}
				} else {
					// Current winner didn't follow suit, this card does
					beats = true
				}
			}
		} else {
			// No trump - only lead suit counts
			if card.Suit == leadSuit {
				if winningCard.Suit != leadSuit {
					beats = true
				} else if highCardWins {
					beats = card.Rank > winningCard.Rank
				} else {
					beats = card.Rank < winningCard.Rank
				}
			}
		}

		if beats {
			winnerIdx = i
			winningCard = card
		}
	}

	winner := state.CurrentTrick[winnerIdx].PlayerID

	// Score points per the genome's card scoring rules (TriggerTrickWin).
	points := int32(0)
	for _, tc := range state.CurrentTrick {
		points += scoreCardForTrigger(genome, tc.Card, TriggerTrickWin)
	}
	state.Players[winner].Score += points

	state.Players[winner].TricksWon++

	// Clear current trick
	state.CurrentTrick = state.CurrentTrick[:0]

	// Winner leads next trick
	state.CurrentPlayer = winner
	state.TrickLeader = winner
	state.TurnNumber++
}

// resolveWarBattle handles War-style card comparison: once every player has
// contributed one card to the battle pile (tableau[0]), the highest rank
// takes the whole pile. Ties leave the pile in place for the next round
// (a "war"), matching the traditional rule that tied cards stay face-down
// on the pile until broken.
func resolveWarBattle(state *GameState, numPlayers int) {
	if len(state.Tableau) == 0 || len(state.Tableau[0]) < numPlayers {
		return
	}

	tableau := state.Tableau[0]
	battle := tableau[len(tableau)-numPlayers:]

	bestRank := battle[0].Rank
	winner := 0
	tied := false
	for i := 1; i < len(battle); i++ {
		if battle[i].Rank > bestRank {
			bestRank = battle[i].Rank
			winner = i
			tied = false
		} else if battle[i].Rank == bestRank {
			tied = true
		}
	}

	if tied {
		return // leave the pile; next round's cards pile on top
	}

	for _, card := range tableau {
		state.Players[winner].Hand = append(state.Players[winner].Hand, card)
	}

	state.Tableau[0] = state.Tableau[0][:0]
}

// scoreCardForTrigger sums the genome's card scoring rules that fire on the
// given trigger for one card.
func scoreCardForTrigger(genome *Genome, card Card, trigger uint8) int32 {
	points := int32(0)
	for _, rule := range genome.CardScoring {
		if rule.Trigger != trigger {
			continue
		}
		if rule.Suit != 255 && rule.Suit != card.Suit {
			continue
		}
		if rule.Rank != 255 && rule.Rank != card.Rank {
			continue
		}
		points += int32(rule.Points)
	}
	return points
}

// calculateTrickPoints totals the genome's TriggerTrickWin card scoring
// rules over the cards in the current trick. breakingSuit does not change
// the total; a genome with no such rules scores nothing for a trick.
func calculateTrickPoints(state *GameState, genome *Genome, breakingSuit uint8) int32 {
	points := int32(0)
	for _, tc := range state.CurrentTrick {
		points += scoreCardForTrigger(genome, tc.Card, TriggerTrickWin)
	}
	return points
}

// ApplyHandEndScoring awards HandEnd-trigger points for every card a player
// still holds or has captured when the hand closes.
func ApplyHandEndScoring(state *GameState, genome *Genome) {
	for i := range state.Players {
		p := &state.Players[i]
		for _, card := range p.Hand {
			p.Score += scoreCardForTrigger(genome, card, TriggerHandEnd)
		}
		for _, card := range p.Captured {
			p.Score += scoreCardForTrigger(genome, card, TriggerHandEnd)
		}
	}
}

// resolveRankCapture handles MatchRank tableau mode: when the played card's
// rank (or a wild) matches a card already in the pile, the player captures
// the whole pile. CardScoring rules with a Capture trigger score here.
func resolveRankCapture(state *GameState, playerID uint8, genome *Genome) {
	if len(state.Tableau) == 0 || len(state.Tableau[0]) < 2 {
		return
	}
	pile := state.Tableau[0]
	played := pile[len(pile)-1]

	matched := state.IsWildRank(played.Rank)
	if !matched {
		for _, card := range pile[:len(pile)-1] {
			if card.Rank == played.Rank {
				matched = true
				break
			}
		}
	}
	if !matched {
		return
	}

	player := &state.Players[playerID]
	player.Captured = append(player.Captured, pile...)
	player.TricksWon++ // doubles as the capture count for win checks

	// One point per captured card, plus any explicit capture scoring rules
	for _, card := range pile {
		player.Score += 1 + scoreCardForTrigger(genome, card, TriggerCapture)
	}

	state.Tableau[0] = state.Tableau[0][:0]
}

// CheckWinConditions evaluates win conditions, returns winner ID or -1.
// In a team game the winner's team is recorded in state.WinningTeam.
// Exported so mcts package can use it
func CheckWinConditions(state *GameState, genome *Genome) (winner int8) {
	defer func() {
		if winner >= 0 && int(winner) < len(state.PlayerToTeam) && state.PlayerToTeam[winner] >= 0 {
			state.WinningTeam = state.PlayerToTeam[winner]
		}
	}()

	// Pooled states always carry MaxPlayers slots; only the first
	// NumPlayers are seated, and an unseated slot's empty hand must not
	// win an empty_hand game.
	n := int(state.NumPlayers)
	if n == 0 || n > len(state.Players) {
		n = len(state.Players)
	}
	players := state.Players[:n]

	for _, wc := range genome.WinConditions {
		switch wc.WinType {
		case 0: // empty_hand
			for playerID, player := range players {
				if len(player.Hand) == 0 {
					return int8(playerID)
				}
			}
		case 1: // high_score (highest score wins, triggers when anyone reaches threshold)
			maxScore := int32(-1)
			winner := int8(-1)
			triggered := false
			for playerID, player := range players {
				if player.Score >= wc.Threshold {
					triggered = true
				}
				if player.Score > maxScore {
					maxScore = player.Score
					winner = int8(playerID)
				}
			}
			if triggered && winner >= 0 {
				return winner
			}
		case 2: // first_to_score
			for playerID, player := range players {
				if player.Score >= wc.Threshold {
					return int8(playerID)
				}
			}
		case 3: // capture_all
			for playerID, player := range players {
				if len(player.Hand) == 52 {
					return int8(playerID)
				}
			}
		case 4: // low_score (Hearts: lowest score wins when anyone reaches threshold)
			minScore := int32(999999)
			winner := int8(-1)
			triggered := false
			for playerID, player := range players {
				if player.Score >= wc.Threshold {
					triggered = true
				}
				if player.Score < minScore {
					minScore = player.Score
					winner = int8(playerID)
				}
			}
			if triggered && winner >= 0 {
				return winner
			}
		case 5: // all_hands_empty (trick-taking: hand ends when all empty)
			allEmpty := true
			for _, player := range players {
				if len(player.Hand) > 0 {
					allEmpty = false
					break
				}
			}
			if allEmpty {
				// In trick-taking games, lowest score wins when hand ends
				minScore := int32(999999)
				winner := int8(-1)
				for playerID, player := range players {
					if player.Score < minScore {
						minScore = player.Score
						winner = int8(playerID)
					}
				}
				return winner
			}
		case 7: // most_captured (most tricks won, triggers when deck and hands are empty)
			if len(state.Deck) > 0 {
				continue
			}
			allEmpty := true
			for _, player := range players {
				if len(player.Hand) > 0 {
					allEmpty = false
					break
				}
			}
			if !allEmpty {
				continue
			}
			mostTricks := int8(-1)
			winner := int8(-1)
			for playerID, player := range players {
				if int8(player.TricksWon) > mostTricks {
					mostTricks = int8(player.TricksWon)
					winner = int8(playerID)
				}
			}
			return winner
		case 8: // most_chips (betting games: deck exhausted or all-but-one folded)
			active := 0
			lastActive := int8(-1)
			for playerID, player := range players {
				if !player.HasFolded {
					active++
					lastActive = int8(playerID)
				}
			}
			if active == 1 {
				return lastActive
			}
		}
	}
	return -1
}
