package gamemaster

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/tetraptych/synapsen/game"
	"github.com/tetraptych/synapsen/player"
	"github.com/tetraptych/synapsen/searcher"
)

// firstMover always submits the first legal move.
type firstMover struct{}

func (firstMover) SelectMove(state game.State) (game.Move, error) {
	moves := state.GetMoves()
	if len(moves) == 0 {
		return game.Move{}, errors.New("no moves")
	}
	return moves[0], nil
}

// failingPlayer simulates a seat that cannot produce a move.
type failingPlayer struct{}

func (failingPlayer) SelectMove(game.State) (game.Move, error) {
	return game.Move{}, errors.New("connection lost")
}

func TestRunFullHand(t *testing.T) {
	for seed := uint64(1); seed <= 5; seed++ {
		rng := rand.New(rand.NewSource(seed))
		state := game.NewGameState(rng)
		one := player.NewComputerForDifficulty(1, player.Trivial, searcher.StrategyIdentity, rng)
		two := player.NewComputerForDifficulty(2, player.Trivial, searcher.StrategyIdentity, rng)

		winner, result, err := NewLocalEngine(state, one, two).Run()

		require.NoError(t, err, "seed %d", seed)
		require.NotEqual(t, game.NoPlayer, winner, "seed %d", seed)
		require.Empty(t, state.GetMoves(), "seed %d: the hand is over", seed)
		require.Equal(t, winner, state.Winner(), "seed %d", seed)
		require.Positive(t, result, "seed %d: the winner's result is positive", seed)
		require.Contains(t, []float64{1, 2, 3}, result, "seed %d: results are 1 to 3 game points", seed)
		require.Equal(t, -result, state.GetResult(game.NextPlayer(winner)), "seed %d: zero-sum", seed)
	}
}

func TestRunScriptedHand(t *testing.T) {
	state := game.NewGameState(rand.New(rand.NewSource(1)))
	winner, result, err := NewLocalEngine(state, firstMover{}, firstMover{}).Run()

	require.NoError(t, err)
	require.NotEqual(t, game.NoPlayer, winner)
	require.Positive(t, result)
}

func TestRunPropagatesPlayerErrors(t *testing.T) {
	state := game.NewGameState(rand.New(rand.NewSource(1)))
	_, _, err := NewLocalEngine(state, failingPlayer{}, firstMover{}).Run()

	require.Error(t, err)
	require.Contains(t, err.Error(), "player 1")
}

func TestApply(t *testing.T) {
	t.Run("rejects a card the mover does not hold", func(t *testing.T) {
		state := game.NewGameState(rand.New(rand.NewSource(2)))
		e := NewLocalEngine(state, firstMover{}, firstMover{})

		stranger := state.Hand(2)[0]
		err := e.Apply(1, game.Move{Card: stranger})
		require.Error(t, err)
		require.Contains(t, err.Error(), "illegal move")
	})

	t.Run("fills in marriage points for a bare card submission", func(t *testing.T) {
		var state *game.GameState
		var marriage game.Move
		for seed := uint64(1); ; seed++ {
			require.Less(t, seed, uint64(1000), "some deal holds an immediate marriage")
			s := game.NewGameState(rand.New(rand.NewSource(seed)))
			found := false
			for _, m := range s.GetMoves() {
				if m.MarriagePoints > 0 && !m.CloseTalon {
					state, marriage, found = s, m, true
					break
				}
			}
			if found {
				break
			}
		}

		e := NewLocalEngine(state, firstMover{}, firstMover{})
		require.NoError(t, e.Apply(1, game.Move{Card: marriage.Card}))
		require.Equal(t, marriage.MarriagePoints, state.PointsTaken(1))
	})
}
