package mcts

import (
	"math"
	"sync"

	"github.com/cardgenome/evolve/engine"
)

// Node is one position in the Monte Carlo search tree: a game state
// reached by one candidate move, with UCT statistics accumulated across
// playouts.
type Node struct {
	State        *engine.GameState
	Move         *engine.LegalMove
	Parent       *Node
	Children     []*Node
	Visits       int
	Wins         float64
	UntriedMoves []engine.LegalMove
	PlayerID     uint8
}

const (
	initialChildCapacity = 10
	initialMoveCapacity  = 20
)

// pool recycles tree nodes across searches to keep rollout-heavy MCTS off
// the per-node allocator.
var pool = sync.Pool{
	New: func() interface{} {
		return &Node{
			Children:     make([]*Node, 0, initialChildCapacity),
			UntriedMoves: make([]engine.LegalMove, 0, initialMoveCapacity),
		}
	},
}

// GetNode checks out a zeroed node from the pool.
func GetNode() *Node {
	n := pool.Get().(*Node)
	n.Reset()
	return n
}

// PutNode returns a node and its entire subtree to the pool.
func PutNode(n *Node) {
	if n == nil {
		return
	}
	for _, child := range n.Children {
		PutNode(child)
	}
	pool.Put(n)
}

// Reset clears a node's fields so a pooled instance can be reused as if
// freshly allocated.
func (n *Node) Reset() {
	n.State = nil
	n.Move = nil
	n.Parent = nil
	n.Children = n.Children[:0]
	n.Visits = 0
	n.Wins = 0
	n.UntriedMoves = n.UntriedMoves[:0]
	n.PlayerID = 0
}

// UCB1 is the Upper Confidence Bound for Trees score used to balance
// exploitation of known-good children against exploration of untested
// ones; an unvisited node scores +Inf so it is always tried first.
func (n *Node) UCB1(explorationParam float64) float64 {
	if n.Visits == 0 {
		return math.Inf(1)
	}
	exploitation := n.Wins / float64(n.Visits)
	exploration := explorationParam * math.Sqrt(math.Log(float64(n.Parent.Visits))/float64(n.Visits))
	return exploitation + exploration
}

// bestAmong picks the child maximizing a per-child score; Children must
// be non-empty.
func bestAmong(children []*Node, score func(*Node) float64) *Node {
	best := children[0]
	bestScore := score(best)
	for _, child := range children[1:] {
		if s := score(child); s > bestScore {
			bestScore = s
			best = child
		}
	}
	return best
}

// BestChild returns the child with the highest UCB1 score.
func (n *Node) BestChild(explorationParam float64) *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return bestAmong(n.Children, func(c *Node) float64 { return c.UCB1(explorationParam) })
}

// MostVisitedChild returns the child with the most accumulated visits —
// the conventional final move choice once search budget is exhausted.
func (n *Node) MostVisitedChild() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return bestAmong(n.Children, func(c *Node) float64 { return float64(c.Visits) })
}

// IsFullyExpanded reports whether every legal move from this node has
// already been tried at least once.
func (n *Node) IsFullyExpanded() bool {
	return len(n.UntriedMoves) == 0
}

// IsTerminal reports whether this node's state ends the game. A nil
// state (pooled-but-unassigned) counts as terminal so a caller can never
// expand past it.
func (n *Node) IsTerminal() bool {
	return n.State == nil || n.State.WinnerID >= 0
}
