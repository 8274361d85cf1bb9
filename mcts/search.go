package mcts

import (
	"math/rand"

	"github.com/cardgenome/evolve/engine"
)

// DefaultExplorationParam is the conventional UCT constant, sqrt(2),
// used whenever a caller doesn't override it.
const DefaultExplorationParam = 1.414

// Search runs iterations playouts of UCT from state and returns the move
// leading to the most-visited child.
func Search(state *engine.GameState, genome *engine.Genome, iterations int, explorationParam float64) *engine.LegalMove {
	if explorationParam == 0 {
		explorationParam = DefaultExplorationParam
	}

	root := GetNode()
	defer PutNode(root)
	root.State = state.Clone()
	root.PlayerID = state.CurrentPlayer
	root.UntriedMoves = engine.GenerateLegalMoves(root.State, genome)

	for i := 0; i < iterations; i++ {
		runOnePlayout(root, genome, explorationParam)
	}

	return pickBestMove(root, state, genome)
}

// runOnePlayout performs one select-expand-simulate-backpropagate cycle
// starting from root.
func runOnePlayout(root *Node, genome *engine.Genome, explorationParam float64) {
	node := selectLeaf(root, explorationParam)
	if node == nil {
		return
	}
	if !node.IsTerminal() && len(node.UntriedMoves) > 0 {
		node = expand(node, genome)
	}
	winner := rollout(node.State, genome)
	backpropagate(node, winner)
}

// selectLeaf descends the tree via UCB1 until it reaches a node that is
// either terminal or not yet fully expanded.
func selectLeaf(root *Node, explorationParam float64) *Node {
	node := root
	for !node.IsTerminal() && node.IsFullyExpanded() {
		next := node.BestChild(explorationParam)
		if next == nil {
			return node
		}
		node = next
	}
	return node
}

// pickBestMove reads off the root's most-visited child, falling back to
// an arbitrary legal move if the tree never expanded (e.g. iterations=0).
func pickBestMove(root *Node, state *engine.GameState, genome *engine.Genome) *engine.LegalMove {
	best := root.MostVisitedChild()
	if best == nil || best.Move == nil {
		if moves := engine.GenerateLegalMoves(state, genome); len(moves) > 0 {
			return &moves[0]
		}
		return nil
	}
	moveCopy := *best.Move
	return &moveCopy
}

// expand materializes one untried move from node as a new child.
func expand(node *Node, genome *engine.Genome) *Node {
	idx := rand.Intn(len(node.UntriedMoves))
	move := node.UntriedMoves[idx]

	// swap-delete the chosen move out of the untried set
	node.UntriedMoves[idx] = node.UntriedMoves[len(node.UntriedMoves)-1]
	node.UntriedMoves = node.UntriedMoves[:len(node.UntriedMoves)-1]

	childState := node.State.Clone()
	engine.ApplyMove(childState, &move, genome)

	child := GetNode()
	child.State = childState
	child.Move = &move
	child.Parent = node
	child.PlayerID = childState.CurrentPlayer
	child.UntriedMoves = engine.GenerateLegalMoves(childState, genome)

	node.Children = append(node.Children, child)
	return child
}

// rollout plays uniformly random moves from state to a terminal
// position (or a safety cutoff at 2x max_turns), returning the winner's
// player id or -1 for a draw/stuck game.
func rollout(state *engine.GameState, genome *engine.Genome) int8 {
	simState := state.Clone()
	defer engine.PutState(simState)

	cutoff := int(genome.Header.MaxTurns) * 2
	for i := 0; i < cutoff; i++ {
		if winner := engine.CheckWinConditions(simState, genome); winner >= 0 {
			return winner
		}
		moves := engine.GenerateLegalMoves(simState, genome)
		if len(moves) == 0 {
			return -1
		}
		move := moves[rand.Intn(len(moves))]
		engine.ApplyMove(simState, &move, genome)
	}
	return -1
}

// backpropagate credits a rollout's outcome up the path from node to the
// root, incrementing visit counts and adding a win for whichever node's
// PlayerID matches the winner.
func backpropagate(node *Node, winner int8) {
	for n := node; n != nil; n = n.Parent {
		n.Visits++
		if winner >= 0 && uint8(winner) == n.PlayerID {
			n.Wins += 1.0
		}
	}
}

// SearchParams bundles the tunable knobs of a single Search call.
type SearchParams struct {
	Iterations       int
	ExplorationParam float64
}

// SearchWithParams is Search with its arguments bundled into a struct,
// for call sites that build the configuration separately from the call.
func SearchWithParams(state *engine.GameState, genome *engine.Genome, params SearchParams) *engine.LegalMove {
	return Search(state, genome, params.Iterations, params.ExplorationParam)
}
