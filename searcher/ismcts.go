package searcher

import (
	"errors"
	"fmt"
	"sort"

	"golang.org/x/exp/rand"

	"github.com/tetraptych/synapsen/game"
)

// ErrTerminalState is returned when a search is requested on a state with
// no legal moves. The engine must not be asked to select among zero moves.
var ErrTerminalState = errors.New("searcher: root state is terminal")

// Option configures an ISMCTS engine.
type Option func(*ISMCTS)

// WithIterations sets the iteration budget per search.
func WithIterations(iterations int) Option {
	return func(s *ISMCTS) {
		if iterations > 0 {
			s.iterations = iterations
		}
	}
}

// WithExploration sets the UCB1 exploration constant.
func WithExploration(exploration float64) Option {
	return func(s *ISMCTS) {
		if exploration > 0 {
			s.exploration = exploration
		}
	}
}

// WithStrategy sets the valuation strategy.
func WithStrategy(strategy Strategy) Option {
	return func(s *ISMCTS) {
		s.strategy = strategy
	}
}

// WithOmniscience makes determinization a plain clone, letting the search
// see true hidden information. A deliberately unfair difficulty tier.
func WithOmniscience() Option {
	return func(s *ISMCTS) {
		s.omniscient = true
	}
}

// WithMetrics enables metric collection.
func WithMetrics() Option {
	return func(s *ISMCTS) {
		s.metrics = NewCollector()
	}
}

// ISMCTS runs Information Set Monte Carlo Tree Search: every iteration
// resolves the unknown parts of the root state into a concrete guess and
// descends a single tree shared across all such guesses. Single-threaded;
// all randomness comes from the rng passed at construction.
type ISMCTS struct {
	iterations  int
	exploration float64
	strategy    Strategy
	omniscient  bool
	rng         *rand.Rand
	metrics     Collector
	lastMetric  SearchMetric
	root        *node
}

// NewISMCTS returns an engine drawing randomness from rng.
func NewISMCTS(rng *rand.Rand, options ...Option) *ISMCTS {
	if rng == nil {
		panic("searcher: nil rng")
	}
	s := &ISMCTS{ // Default values
		iterations:  DefaultIterations,
		exploration: DefaultExploration,
		strategy:    StrategyIdentity,
		rng:         rng,
		metrics:     NewDummyCollector(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// FindNextMove searches from rootstate and returns the most-visited root
// move, breaking ties by insertion order. The tree is built fresh on every
// call; rootstate is never mutated.
func (s *ISMCTS) FindNextMove(rootstate game.State) (game.Move, error) {
	if len(rootstate.GetMoves()) == 0 {
		return game.Move{}, ErrTerminalState
	}

	root := newRoot(s.strategy)
	s.metrics.Start(s.iterations, s.strategy)

	for i := 0; i < s.iterations; i++ {
		n := root

		// Determinize
		var state game.State
		if s.omniscient {
			state = rootstate.Clone()
		} else {
			state = rootstate.CloneAndRandomize(rootstate.PlayerToMove(), s.rng)
		}

		// Select
		moves := state.GetMoves()
		for len(moves) > 0 && len(n.untriedMoves(moves)) == 0 {
			n = n.ucbSelectChild(moves, s.exploration)
			state.DoMove(n.move)
			moves = state.GetMoves()
		}

		// Expand
		if untried := n.untriedMoves(moves); len(untried) > 0 {
			m := untried[s.rng.Intn(len(untried))]
			mover := state.PlayerToMove()
			state.DoMove(m)
			n = n.addChild(m, mover, state.TalonClosed(), state.TalonClosedBy())
		}

		// Simulate
		for moves = state.GetMoves(); len(moves) > 0; moves = state.GetMoves() {
			state.DoMove(moves[s.rng.Intn(len(moves))])
			s.metrics.AddRolloutMove()
		}

		// Backpropagate
		for ; n != nil; n = n.parent {
			n.update(state)
		}
	}

	s.root = root
	s.metrics.SetTreeNodes(treeSize(root))
	s.lastMetric = s.metrics.Complete()

	best := root.children[0]
	for _, child := range root.children[1:] {
		if child.visits > best.visits {
			best = child
		}
	}
	return best.move, nil
}

// LastSearchMetric returns the metrics of the most recent search. Zero
// unless the engine was built WithMetrics.
func (s *ISMCTS) LastSearchMetric() SearchMetric {
	return s.lastMetric
}

// ChildStat is one root child's aggregated statistics.
type ChildStat struct {
	Move        game.Move
	Expectation float64
	Wins        float64
	Visits      int
	Avails      int
}

// RootStats returns the most recent search's root children sorted by visit
// count descending.
func (s *ISMCTS) RootStats() []ChildStat {
	if s.root == nil {
		return nil
	}
	stats := make([]ChildStat, 0, len(s.root.children))
	for _, child := range s.root.children {
		stats = append(stats, ChildStat{
			Move:        child.move,
			Expectation: child.wins / float64(child.visits),
			Wins:        child.wins,
			Visits:      child.visits,
			Avails:      child.avails,
		})
	}
	sort.SliceStable(stats, func(i, j int) bool { return stats[i].Visits > stats[j].Visits })
	return stats
}

func (c ChildStat) String() string {
	return fmt.Sprintf("%-24s E: %.3f W/V/A: %.2f / %d / %d", c.Move, c.Expectation, c.Wins, c.Visits, c.Avails)
}

func treeSize(n *node) int {
	size := 1
	for _, child := range n.children {
		size += treeSize(child)
	}
	return size
}
