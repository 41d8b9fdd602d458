package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/tetraptych/synapsen/game"
)

func containsSame(moves []game.Move, m game.Move) bool {
	for _, x := range moves {
		if x.Same(m) {
			return true
		}
	}
	return false
}

func TestNewISMCTS(t *testing.T) {
	t.Run("nil rng panics", func(t *testing.T) {
		require.Panics(t, func() { NewISMCTS(nil) })
	})

	t.Run("options override the defaults", func(t *testing.T) {
		s := NewISMCTS(rand.New(rand.NewSource(1)),
			WithIterations(42),
			WithExploration(1.5),
			WithStrategy(StrategyWin),
			WithOmniscience(),
		)
		require.Equal(t, 42, s.iterations)
		require.Equal(t, 1.5, s.exploration)
		require.Equal(t, StrategyWin, s.strategy)
		require.True(t, s.omniscient)
	})

	t.Run("non-positive values keep the defaults", func(t *testing.T) {
		s := NewISMCTS(rand.New(rand.NewSource(1)), WithIterations(0), WithExploration(-1))
		require.Equal(t, DefaultIterations, s.iterations)
		require.Equal(t, DefaultExploration, s.exploration)
	})
}

func TestFindNextMove(t *testing.T) {
	t.Run("terminal root state is an error", func(t *testing.T) {
		s := NewISMCTS(rand.New(rand.NewSource(1)))
		_, err := s.FindNextMove(terminalState{})
		require.ErrorIs(t, err, ErrTerminalState)
	})

	t.Run("a single iteration already yields a legal move", func(t *testing.T) {
		rng := rand.New(rand.NewSource(2))
		state := game.NewGameState(rng)
		s := NewISMCTS(rng, WithIterations(1))

		m, err := s.FindNextMove(state)
		require.NoError(t, err)
		require.True(t, containsSame(state.GetMoves(), m))
	})

	t.Run("returns a legal move at any point of a hand", func(t *testing.T) {
		rng := rand.New(rand.NewSource(3))
		state := game.NewGameState(rng)
		s := NewISMCTS(rand.New(rand.NewSource(4)), WithIterations(30))

		for state.Winner() == game.NoPlayer {
			m, err := s.FindNextMove(state)
			require.NoError(t, err)
			require.True(t, containsSame(state.GetMoves(), m), "%v is not legal here", m)
			state.DoMove(findSame(state.GetMoves(), m))
		}
	})

	t.Run("does not mutate the root state", func(t *testing.T) {
		rng := rand.New(rand.NewSource(5))
		state := game.NewGameState(rng)
		hand := state.Hand(state.PlayerToMove())
		cardsLeft := state.CardsLeft()

		s := NewISMCTS(rng, WithIterations(50))
		_, err := s.FindNextMove(state)
		require.NoError(t, err)
		require.Equal(t, hand, state.Hand(state.PlayerToMove()))
		require.Equal(t, cardsLeft, state.CardsLeft())
	})

	t.Run("the same seed finds the same move", func(t *testing.T) {
		state := game.NewGameState(rand.New(rand.NewSource(6)))

		a := NewISMCTS(rand.New(rand.NewSource(7)), WithIterations(200))
		b := NewISMCTS(rand.New(rand.NewSource(7)), WithIterations(200))

		ma, err := a.FindNextMove(state)
		require.NoError(t, err)
		mb, err := b.FindNextMove(state)
		require.NoError(t, err)
		require.Equal(t, ma, mb)
	})

	t.Run("omniscient search also yields a legal move", func(t *testing.T) {
		rng := rand.New(rand.NewSource(8))
		state := game.NewGameState(rng)
		s := NewISMCTS(rng, WithIterations(50), WithOmniscience())

		m, err := s.FindNextMove(state)
		require.NoError(t, err)
		require.True(t, containsSame(state.GetMoves(), m))
	})
}

// Availability counts how often a move was legal when its parent was
// visited, so it can never trail the node's own visit count.
func TestAvailabilityNeverTrailsVisits(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	state := game.NewGameState(rng)
	s := NewISMCTS(rng, WithIterations(300))

	_, err := s.FindNextMove(state)
	require.NoError(t, err)
	require.GreaterOrEqual(t, s.root.avails, 1)

	var check func(n *node)
	check = func(n *node) {
		for _, child := range n.children {
			require.GreaterOrEqual(t, child.avails, child.visits, "%v", child.move)
			check(child)
		}
	}
	check(s.root)

	total := 0
	for _, child := range s.root.children {
		total += child.visits
	}
	require.Equal(t, 300, total, "every iteration visits exactly one root child")
}

func TestSearchMetrics(t *testing.T) {
	rng := rand.New(rand.NewSource(10))
	state := game.NewGameState(rng)
	s := NewISMCTS(rng, WithIterations(20), WithMetrics(), WithStrategy(StrategyWin))

	_, err := s.FindNextMove(state)
	require.NoError(t, err)

	metric := s.LastSearchMetric()
	require.Equal(t, 20, metric.Iterations)
	require.Equal(t, StrategyWin, metric.Strategy)
	require.Positive(t, metric.TreeNodes)
	require.Positive(t, metric.RolloutMoves)
	require.Positive(t, metric.Duration)
}

func TestRootStats(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	state := game.NewGameState(rng)
	s := NewISMCTS(rng, WithIterations(100))

	require.Nil(t, s.RootStats(), "no stats before the first search")

	best, err := s.FindNextMove(state)
	require.NoError(t, err)

	stats := s.RootStats()
	require.NotEmpty(t, stats)
	for i := 1; i < len(stats); i++ {
		require.GreaterOrEqual(t, stats[i-1].Visits, stats[i].Visits, "sorted by visits")
	}
	require.Equal(t, best, stats[0].Move, "the chosen move leads the table")
}

func findSame(moves []game.Move, m game.Move) game.Move {
	for _, x := range moves {
		if x.Same(m) {
			return x
		}
	}
	return m
}
