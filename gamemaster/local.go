package gamemaster

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/tetraptych/synapsen/game"
	"github.com/tetraptych/synapsen/player"
)

// Engine drives one hand of Schnapsen between two players, validating every
// submitted move against the state's legal moves before applying it.
type Engine struct {
	state   game.State
	players []player.Player // indexed by PlayerID, slot 0 unused
}

// NewLocalEngine wires a state and the two seats together.
func NewLocalEngine(state game.State, one, two player.Player) *Engine {
	return &Engine{
		state:   state,
		players: []player.Player{nil, one, two},
	}
}

// State returns the engine's current state.
func (e *Engine) State() game.State {
	return e.state
}

// Run executes the hand until a winner is decided and returns the winner
// together with its game-point result.
func (e *Engine) Run() (game.PlayerID, float64, error) {
	for e.state.Winner() == game.NoPlayer {
		mover := e.state.PlayerToMove()
		move, err := e.players[mover].SelectMove(e.state)
		if err != nil {
			return game.NoPlayer, 0, fmt.Errorf("player %d: %w", mover, err)
		}
		if err := e.Apply(mover, move); err != nil {
			return game.NoPlayer, 0, err
		}
	}

	winner := e.state.Winner()
	result := e.state.GetResult(winner)
	log.Info().
		Int("winner", int(winner)).
		Float64("gamePoints", result).
		Msg("hand over")
	return winner, result, nil
}

// Apply validates a submitted move against the current legal moves and
// applies it.
func (e *Engine) Apply(mover game.PlayerID, move game.Move) error {
	legal := e.state.GetMoves()
	if len(legal) == 0 {
		return fmt.Errorf("illegal move: no legal moves available")
	}
	// Apply the canonical legal move: submitted moves carry identity only,
	// marriage points come from move generation.
	for _, m := range legal {
		if m.Same(move) {
			log.Debug().
				Int("player", int(mover)).
				Stringer("move", m).
				Msg("applying move")
			e.state.DoMove(m)
			return nil
		}
	}
	return fmt.Errorf("illegal move %s by player %d", move, mover)
}
