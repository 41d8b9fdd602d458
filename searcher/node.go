package searcher

import (
	"fmt"
	"math"

	"github.com/tetraptych/synapsen/game"
)

// node is a node in the shared search tree. Statistics aggregate over every
// determinization that passed through it; wins are always from the viewpoint
// of playerJustMoved. The parent pointer is informational only — children
// own their subtrees, dropping the root frees the tree.
type node struct {
	move     game.Move
	parent   *node
	children []*node
	wins     float64
	visits   int
	// avails counts how often this node's move was legal when the parent
	// was visited. Used in place of the parent visit count in UCB1.
	avails          int
	playerJustMoved game.PlayerID // NoPlayer for the root
	talonClosed     bool
	talonClosedBy   game.PlayerID
	val             valuation
}

func newRoot(strategy Strategy) *node {
	return &node{avails: 1, val: strategy.valuation()}
}

// untriedMoves returns the legal moves for which no child exists yet.
func (n *node) untriedMoves(legalMoves []game.Move) []game.Move {
	var untried []game.Move
	for _, m := range legalMoves {
		tried := false
		for _, child := range n.children {
			if child.move.Same(m) {
				tried = true
				break
			}
		}
		if !tried {
			untried = append(untried, m)
		}
	}
	return untried
}

// ucbSelectChild picks the child maximizing the UCB1 score among the
// children whose move is legal in the current determinization. Every legal
// child has its availability count incremented, not just the winner: across
// determinizations children are not all visited on every pass, so
// availability cannot be reconstructed from visits.
func (n *node) ucbSelectChild(legalMoves []game.Move, exploration float64) *node {
	var legalChildren []*node
	for _, child := range n.children {
		for _, m := range legalMoves {
			if child.move.Same(m) {
				legalChildren = append(legalChildren, child)
				break
			}
		}
	}
	if len(legalChildren) == 0 {
		panic("searcher: no legal children to select from")
	}

	var selected *node
	best := math.Inf(-1)
	for _, child := range legalChildren {
		if child.visits == 0 {
			panic("searcher: cannot compute UCB1 for an unvisited child")
		}
		// Rescale mean reward into [0, 1] using the strategy's range.
		exploit := (child.wins/float64(child.visits) - n.val.min) / (n.val.max - n.val.min)
		score := exploit + exploration*math.Sqrt(math.Log(float64(child.avails))/float64(child.visits))
		if score > best {
			best = score
			selected = child
		}
	}

	for _, child := range legalChildren {
		child.avails++
	}
	return selected
}

// addChild appends a child for move m. The child's talon snapshot is the
// parent's snapshot extended by the move itself: closing is sticky, and the
// closer is inherited if already known.
func (n *node) addChild(m game.Move, playerJustMoved game.PlayerID, talonClosed bool, talonClosedBy game.PlayerID) *node {
	closedBy := talonClosedBy
	if closedBy == game.NoPlayer && m.CloseTalon {
		closedBy = playerJustMoved
	}
	child := &node{
		move:            m,
		parent:          n,
		avails:          1,
		playerJustMoved: playerJustMoved,
		talonClosed:     talonClosed || m.CloseTalon,
		talonClosedBy:   closedBy,
		val:             n.val,
	}
	n.children = append(n.children, child)
	return child
}

// update records one visit and, for non-root nodes, the transformed result
// of the terminal state from the mover's viewpoint.
func (n *node) update(terminal game.State) {
	n.visits++
	if n.playerJustMoved != game.NoPlayer {
		n.wins += n.val.transform(terminal.GetResult(n.playerJustMoved))
	}
}

func (n *node) String() string {
	mean := 0.0
	if n.visits > 0 {
		mean = n.wins / float64(n.visits)
	}
	return fmt.Sprintf("[M:%-20s E/W/V/A: %.3f / %.2f / %6d / %6d]", n.move, mean, n.wins, n.visits, n.avails)
}
